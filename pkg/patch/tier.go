// Package patch provides the patchable data model: the action pointer
// registry, compatibility tiers, and the per-compile context holding every
// engine table as (baseline, current) pairs.
package patch

import (
	"fmt"
	"strings"
)

// Tier is a patch compatibility level. Tiers are ordered; a feature
// available at one tier is available at every higher tier, so tier checks
// are plain integer comparisons.
type Tier int

const (
	// TierBase is the vanilla v1.9 patch level: numeric action slots only.
	TierBase Tier = iota
	// TierExtended adds mnemonic code pointers, [STRINGS] and [PARS].
	TierExtended
	// TierExtended21 adds typed action arguments and extended flag fields.
	TierExtended21
)

var tierNames = map[Tier]string{
	TierBase:       "base",
	TierExtended:   "extended",
	TierExtended21: "extended21",
}

// String returns the tier's configuration name.
func (t Tier) String() string {
	if name, ok := tierNames[t]; ok {
		return name
	}
	return fmt.Sprintf("tier(%d)", int(t))
}

// ParseTier parses a tier configuration name (case-insensitive).
func ParseTier(s string) (Tier, error) {
	switch strings.ToLower(s) {
	case "base":
		return TierBase, nil
	case "extended":
		return TierExtended, nil
	case "extended21":
		return TierExtended21, nil
	}
	return TierBase, fmt.Errorf("invalid tier: %s (must be base, extended, or extended21)", s)
}
