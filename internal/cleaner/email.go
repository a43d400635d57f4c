package cleaner

import (
	"regexp"
	"strings"
)

// emailPattern matches the general local@domain shape. Liberal enough to
// find addresses embedded in free text ("Jane Doe <jane@x.com>"), strict
// enough to skip fragments like "bad@".
const emailPattern = `[A-Za-z0-9._%+\-]+@[A-Za-z0-9.\-]+\.[A-Za-z]{2,}`

var (
	emailSearchRe = regexp.MustCompile(emailPattern)
	emailExactRe  = regexp.MustCompile(`^` + emailPattern + `$`)
)

// ExtractEmails returns every plausible email address found in a cell,
// lowercased, with duplicates within the cell removed in first-seen
// order. This is a search, not a full-cell match: display names,
// comma-joined lists, and other surrounding text are fine. Missing or
// empty input yields nil.
func ExtractEmails(cell Value) []string {
	if !cell.Valid {
		return nil
	}
	found := emailSearchRe.FindAllString(cell.String, -1)
	if len(found) == 0 {
		return nil
	}

	seen := make(map[string]bool, len(found))
	out := make([]string, 0, len(found))
	for _, e := range found {
		e = strings.ToLower(e)
		if seen[e] {
			continue
		}
		seen[e] = true
		out = append(out, e)
	}
	return out
}

// ValidEmail reports whether s looks like a deliverable address
// structurally. This is stricter than extraction: the whole string must
// be one address, dots and hyphens may not sit at part or label edges,
// and the TLD must be at least two characters. Syntax only; no DNS or
// SMTP checks.
func ValidEmail(s string) bool {
	s = strings.ToLower(strings.TrimSpace(s))
	if !emailExactRe.MatchString(s) {
		return false
	}
	if strings.HasPrefix(s, ".") || strings.HasSuffix(s, ".") {
		return false
	}
	if strings.Contains(s, "..") {
		return false
	}

	local, domain, ok := strings.Cut(s, "@")
	if !ok || local == "" || domain == "" {
		return false
	}
	if edged(local) || edged(domain) {
		return false
	}
	if !strings.Contains(domain, ".") {
		return false
	}

	labels := strings.Split(domain, ".")
	for _, lbl := range labels {
		if lbl == "" || strings.HasPrefix(lbl, "-") || strings.HasSuffix(lbl, "-") {
			return false
		}
	}
	return len(labels[len(labels)-1]) >= 2
}

// edged reports whether s starts or ends with a dot or hyphen.
func edged(s string) bool {
	for _, e := range []string{".", "-"} {
		if strings.HasPrefix(s, e) || strings.HasSuffix(s, e) {
			return true
		}
	}
	return false
}
