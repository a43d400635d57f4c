package cleaner

import (
	"fmt"
	"strings"
)

// Policy selects which category of flagged contacts is removed from the
// output. Exactly one policy is active per run, chosen by the caller.
type Policy int

const (
	// KeepOwners removes rows whose flags mark the contact as a likely
	// renter. This is the default for owner-targeted campaigns.
	KeepOwners Policy = iota

	// KeepRenters removes rows whose flags mark the contact as a likely
	// owner, leaving renter contacts in the output.
	KeepRenters
)

// Occupancy phrases as DealMachine writes them into flags text. Matched
// as substrings against the lowercased flags, so "resident, likely
// renting; verified" still hits.
var (
	renterPhrases = []string{
		"resident, likely renting",
		"likely renting",
		"renter",
	}
	ownerPhrases = []string{
		"likely owner, resident",
		"likely owner",
		"likely owner, family",
	}
)

func (p Policy) String() string {
	switch p {
	case KeepRenters:
		return "renters"
	default:
		return "owners"
	}
}

// ParsePolicy converts a user-facing policy name to a Policy.
func ParsePolicy(s string) (Policy, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "owners", "keep-owners":
		return KeepOwners, nil
	case "renters", "keep-renters":
		return KeepRenters, nil
	default:
		return KeepOwners, fmt.Errorf("unknown policy %q (want owners or renters)", s)
	}
}

// Remove reports whether a row carrying the given flags should be
// removed under this policy. Missing flags never match: absence of a
// flag is not evidence of the excluded category.
func (p Policy) Remove(flags Value) bool {
	if !flags.Valid || flags.String == "" {
		return false
	}
	f := strings.ToLower(flags.String)

	phrases := renterPhrases
	if p == KeepRenters {
		phrases = ownerPhrases
	}
	for _, phrase := range phrases {
		if strings.Contains(f, phrase) {
			return true
		}
	}
	return false
}
