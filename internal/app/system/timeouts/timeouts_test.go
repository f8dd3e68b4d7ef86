// internal/app/system/timeouts/timeouts_test.go
package timeouts_test

import (
	"testing"
	"time"

	"github.com/driftline/beacon/internal/app/system/timeouts"
)

func TestConfigureOverridesOnlySetFields(t *testing.T) {
	t.Cleanup(timeouts.Reset)

	timeouts.Configure(timeouts.Config{Short: 1 * time.Second})

	if got := timeouts.Short(); got != 1*time.Second {
		t.Errorf("Short = %v, want 1s", got)
	}
	if got := timeouts.Ping(); got != timeouts.DefaultPing {
		t.Errorf("Ping = %v, want default %v", got, timeouts.DefaultPing)
	}

	timeouts.Reset()
	if got := timeouts.Short(); got != timeouts.DefaultShort {
		t.Errorf("after Reset, Short = %v, want default %v", got, timeouts.DefaultShort)
	}
}
