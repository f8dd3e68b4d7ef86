// internal/app/system/limits/limits.go
package limits

// Request body size limits.
// These limits help prevent memory exhaustion from oversized requests.
const (
	// MaxTrackBodySize caps the tracking beacon payload; a legitimate body
	// is a single short session id.
	MaxTrackBodySize = 4 << 10 // 4 KB

	// MaxLoginBodySize caps the admin login payload.
	MaxLoginBodySize = 4 << 10 // 4 KB
)
