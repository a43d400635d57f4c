package cleaner

import (
	"regexp"
	"sort"
	"strconv"
	"strings"
)

// Pre-compiled header patterns for contact-slot columns. A slot i is a
// pair of columns contact_i_email / contact_i_flags; either one alone
// still counts, since exports sometimes carry flags without a populated
// email column (or vice versa).
var (
	slotEmailRe = regexp.MustCompile(`(?i)^contact_(\d+)_email$`)
	slotFlagsRe = regexp.MustCompile(`(?i)^contact_(\d+)_flags$`)
)

// DetectSlots scans column names and returns the sorted set of contact
// slot indices present in the header. An empty result means the file
// does not match the DealMachine per-contact schema; the pipeline still
// runs in pass-through mode and the caller should warn the user.
func DetectSlots(columns []string) []int {
	seen := make(map[int]bool)
	for _, c := range columns {
		name := strings.TrimSpace(c)
		for _, re := range []*regexp.Regexp{slotEmailRe, slotFlagsRe} {
			m := re.FindStringSubmatch(name)
			if m == nil {
				continue
			}
			if n, err := strconv.Atoi(m[1]); err == nil {
				seen[n] = true
			}
		}
	}

	idxs := make([]int, 0, len(seen))
	for n := range seen {
		idxs = append(idxs, n)
	}
	sort.Ints(idxs)
	return idxs
}

// slotColumns maps slot indices to the actual header names they were
// detected under, preserving whatever casing the export used.
type slotColumns struct {
	email map[int]string
	flags map[int]string
}

func findSlotColumns(columns []string) slotColumns {
	sc := slotColumns{
		email: make(map[int]string),
		flags: make(map[int]string),
	}
	for _, c := range columns {
		name := strings.TrimSpace(c)
		if m := slotEmailRe.FindStringSubmatch(name); m != nil {
			if n, err := strconv.Atoi(m[1]); err == nil {
				sc.email[n] = c
			}
		}
		if m := slotFlagsRe.FindStringSubmatch(name); m != nil {
			if n, err := strconv.Atoi(m[1]); err == nil {
				sc.flags[n] = c
			}
		}
	}
	return sc
}
