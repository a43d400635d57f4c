package cleaner

// Options controls which optional stages run. Ingestion, explosion, and
// the policy filter always run.
type Options struct {
	// Trim strips surrounding whitespace from every text cell before
	// slot detection.
	Trim bool

	// DropMissingEmail removes derived rows that carry no email.
	DropMissingEmail bool

	// FilterValidEmails removes rows whose email fails the structural
	// validity check. Rows with a missing email are not judged by this
	// stage; removing them is DropMissingEmail's job.
	FilterValidEmails bool

	// DedupeByEmail keeps only the first row seen for each distinct
	// email value.
	DedupeByEmail bool

	// Policy selects which flagged category is removed.
	Policy Policy
}

// DefaultOptions enables every cleanup stage and keeps owners, matching
// what a cold-email campaign export wants by default.
func DefaultOptions() Options {
	return Options{
		Trim:              true,
		DropMissingEmail:  true,
		FilterValidEmails: true,
		DedupeByEmail:     true,
		Policy:            KeepOwners,
	}
}

// Stage names as reported in diagnostics.
const (
	StageIngest       = "ingest"
	StageTrim         = "trim"
	StageExplode      = "explode"
	StageDropNoEmail  = "drop_missing_email"
	StageFilterValid  = "filter_valid_emails"
	StagePolicyFilter = "policy_filter"
	StageDedupe       = "dedupe_by_email"
)

// StageCount records the row count on either side of one stage.
type StageCount struct {
	Stage  string `json:"stage"`
	Before int    `json:"rows_before"`
	After  int    `json:"rows_after"`
}

// Result is the outcome of a successful run.
type Result struct {
	// Table holds the cleaned rows: original columns minus the per-slot
	// contact columns, plus Email and Flags.
	Table *Table

	// Slots is the sorted sequence of detected contact-slot indices.
	Slots []int

	// SchemaMismatch is set when no contact slots were detected. The
	// run still completes in pass-through mode; callers should surface
	// a warning.
	SchemaMismatch bool

	// Stages lists per-stage row counts in execution order.
	Stages []StageCount
}

func (r *Result) record(stage string, before, after int) {
	r.Stages = append(r.Stages, StageCount{Stage: stage, Before: before, After: after})
}

// Run executes the full pipeline on raw file bytes. The only possible
// error is ErrUnreadableFile; every other irregularity degrades to
// missing values and shows up in the stage counts instead.
func Run(data []byte, opts Options) (*Result, error) {
	t, err := Ingest(data)
	if err != nil {
		return nil, err
	}

	res := &Result{}
	res.record(StageIngest, len(t.Rows), len(t.Rows))

	if opts.Trim {
		t = Trim(t)
		res.record(StageTrim, len(t.Rows), len(t.Rows))
	}

	res.Slots = DetectSlots(t.Columns)
	res.SchemaMismatch = len(res.Slots) == 0

	before := len(t.Rows)
	t = Explode(t, res.Slots)
	res.record(StageExplode, before, len(t.Rows))

	if opts.DropMissingEmail {
		before = len(t.Rows)
		t = filterRows(t, func(r Row) bool {
			return r[ColEmail].Valid
		})
		res.record(StageDropNoEmail, before, len(t.Rows))
	}

	if opts.FilterValidEmails {
		before = len(t.Rows)
		t = filterRows(t, func(r Row) bool {
			e := r[ColEmail]
			if !e.Valid {
				return true
			}
			return ValidEmail(e.String)
		})
		res.record(StageFilterValid, before, len(t.Rows))
	}

	before = len(t.Rows)
	t = filterRows(t, func(r Row) bool {
		return !opts.Policy.Remove(r[ColFlags])
	})
	res.record(StagePolicyFilter, before, len(t.Rows))

	if opts.DedupeByEmail {
		before = len(t.Rows)
		t = dedupeByEmail(t)
		res.record(StageDedupe, before, len(t.Rows))
	}

	res.Table = t
	return res, nil
}

// dedupeByEmail keeps the first-encountered row for each distinct email
// in current row order. Comparison is byte-for-byte on the already
// lowercased value; rows with a missing email are all kept.
func dedupeByEmail(t *Table) *Table {
	seen := make(map[string]bool, len(t.Rows))
	return filterRows(t, func(r Row) bool {
		e := r[ColEmail]
		if !e.Valid {
			return true
		}
		if seen[e.String] {
			return false
		}
		seen[e.String] = true
		return true
	})
}
