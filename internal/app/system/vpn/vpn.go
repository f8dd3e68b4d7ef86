// internal/app/system/vpn/vpn.go
// Package vpn scores the likelihood that a visitor IP belongs to a VPN,
// proxy, Tor exit, or hosting provider. Classification never errors: every
// internal failure degrades to the unknown verdict so tracking is never
// blocked on it.
package vpn

import (
	"context"
	"fmt"
	"strings"

	"github.com/driftline/beacon/internal/domain/models"
	"go.uber.org/zap"
)

// Detection method names accumulated in the verdict.
const (
	MethodTorExitNode   = "tor_exit_node"
	MethodISPAnalysis   = "isp_analysis"
	MethodReputationAPI = "reputation_api"
)

// Keyword groups for ISP/org analysis. Hosting keywords flag datacenter
// egress; service keywords flag the provider naming itself a VPN or proxy.
var (
	hostingKeywords = []string{
		"amazon", "aws", "google cloud", "azure", "microsoft corporation",
		"digitalocean", "linode", "ovh", "hetzner", "vultr", "hosting",
		"datacenter", "data center", "server",
	}
	serviceKeywords = []string{"vpn", "proxy"}
)

// Classifier combines the Tor exit set, ISP heuristics, and the optional
// reputation API into one verdict. Confidence is the max across matched
// methods, not a combination — multiple weak signals never compound.
type Classifier struct {
	tor *TorSet
	rep *ReputationClient
	log *zap.Logger
}

// New builds a Classifier. rep may be nil or disabled.
func New(tor *TorSet, rep *ReputationClient, logger *zap.Logger) *Classifier {
	return &Classifier{tor: tor, rep: rep, log: logger}
}

// Classify scores ip using the already-resolved location for ISP evidence.
func (c *Classifier) Classify(ctx context.Context, ip string, loc models.Location) models.VPNInfo {
	if ip == "" || ip == models.UnknownIP {
		return models.UnknownVPNInfo()
	}

	verdict := models.VPNInfo{VPNType: models.VPNTypeNone}

	if c.tor != nil && c.tor.Contains(ip) {
		verdict.IsVPN = true
		verdict.DetectionMethods = append(verdict.DetectionMethods, MethodTorExitNode)
		applyScore(&verdict, 0.95, models.VPNTypeTor)
		verdict.Details = "known Tor exit node"
	}

	if conf, vpnType, matched := classifyISP(loc.ISP); matched {
		verdict.IsVPN = true
		verdict.DetectionMethods = append(verdict.DetectionMethods, MethodISPAnalysis)
		applyScore(&verdict, conf, vpnType)
		if verdict.Details == "" {
			verdict.Details = "isp/org: " + loc.ISP
		}
	}

	if c.rep.Enabled() {
		score, err := c.rep.Score(ctx, ip)
		switch {
		case err != nil:
			c.log.Debug("vpn: reputation lookup failed", zap.String("ip", ip), zap.Error(err))
		case score > 0.5:
			verdict.IsVPN = true
			verdict.DetectionMethods = append(verdict.DetectionMethods, MethodReputationAPI)
			repType := models.VPNTypeProxy
			if score > 0.8 {
				repType = models.VPNTypeVPN
			}
			applyScore(&verdict, score, repType)
			if verdict.Details == "" {
				verdict.Details = fmt.Sprintf("reputation score %.2f", score)
			}
		}
	}

	return verdict
}

// applyScore raises confidence to the max of the seen signals; the type
// follows whichever signal holds the current max.
func applyScore(v *models.VPNInfo, conf float64, vpnType string) {
	if conf > 1 {
		conf = 1
	}
	if conf >= v.Confidence {
		v.Confidence = conf
		v.VPNType = vpnType
	}
}

// classifyISP matches the org name against the keyword groups. Service
// keywords ("vpn"/"proxy") outrank generic hosting providers.
func classifyISP(org string) (confidence float64, vpnType string, matched bool) {
	if org == "" || org == "Unknown" {
		return 0, "", false
	}
	lower := strings.ToLower(org)

	for _, kw := range serviceKeywords {
		if strings.Contains(lower, kw) {
			return 0.8, models.VPNTypeVPN, true
		}
	}
	for _, kw := range hostingKeywords {
		if strings.Contains(lower, kw) {
			return 0.7, models.VPNTypeHosting, true
		}
	}
	return 0, "", false
}
