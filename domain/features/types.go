package features

import (
	"sort"
	"strings"
)

// Well-known column names in the feature dataset. Only the first three are
// required; cluster and the frac_* composition columns are optional.
const (
	ColID       = "id"
	ColLength   = "length"
	ColIdentity = "identity_to_human"
	ColCluster  = "cluster"

	// CompositionPrefix marks per-amino-acid composition columns (frac_A,
	// frac_C, ...). The suffix is the amino-acid letter.
	CompositionPrefix = "frac_"
)

// Row is a single sequence entry in the feature table
type Row struct {
	ID              string
	Length          int
	IdentityToHuman float64
	Cluster         string             // empty when the table has no cluster column
	Composition     map[string]float64 // amino-acid letter -> fraction, nil when absent
}

// CompositionSum returns the sum of all composition fractions for the row.
// Upstream feature extraction should make this approximately 1.0; the viewer
// reports deviations but never rejects rows over them.
func (r Row) CompositionSum() float64 {
	sum := 0.0
	for _, frac := range r.Composition {
		sum += frac
	}
	return sum
}

// Table is the load-once, read-only feature table. Schema facts that vary
// between upstream pipeline runs (cluster labels, composition columns) are
// detected at load time and recorded here rather than assumed.
type Table struct {
	Rows               []Row
	HasCluster         bool
	CompositionColumns []string // amino-acid letters, sorted
	SourceFile         string   // which candidate file the loader resolved
	ParseErrors        int      // malformed numeric cells tolerated during load
}

// Get returns the row with the given id. Lookup is deterministic (first match
// in load order) and safe on an empty table.
func (t *Table) Get(id string) (Row, bool) {
	for _, row := range t.Rows {
		if row.ID == id {
			return row, true
		}
	}
	return Row{}, false
}

// IDs returns all sequence ids in load order
func (t *Table) IDs() []string {
	ids := make([]string, len(t.Rows))
	for i, row := range t.Rows {
		ids[i] = row.ID
	}
	return ids
}

// Clusters returns the distinct cluster labels in sorted order, or nil when
// the dataset has no cluster column
func (t *Table) Clusters() []string {
	if !t.HasCluster {
		return nil
	}
	seen := make(map[string]bool)
	for _, row := range t.Rows {
		if row.Cluster != "" {
			seen[row.Cluster] = true
		}
	}
	clusters := make([]string, 0, len(seen))
	for c := range seen {
		clusters = append(clusters, c)
	}
	sort.Strings(clusters)
	return clusters
}

// DuplicateIDs returns ids that appear more than once, in first-seen order.
// The id column is supposed to be unique; duplicates are an upstream defect
// worth surfacing.
func (t *Table) DuplicateIDs() []string {
	counts := make(map[string]int)
	for _, row := range t.Rows {
		counts[row.ID]++
	}
	var dups []string
	seen := make(map[string]bool)
	for _, row := range t.Rows {
		if counts[row.ID] > 1 && !seen[row.ID] {
			dups = append(dups, row.ID)
			seen[row.ID] = true
		}
	}
	return dups
}

// Filter describes the table query options exposed by the UI
type Filter struct {
	Query       string  // case-insensitive substring match on id
	Cluster     string  // exact cluster label match, ignored when empty
	MinIdentity float64 // keep rows with IdentityToHuman >= MinIdentity
}

// Select returns the rows matching the filter, preserving table order.
// The returned slice is a copy; the table itself is never mutated.
func (t *Table) Select(f Filter) []Row {
	query := strings.ToLower(f.Query)
	rows := make([]Row, 0, len(t.Rows))
	for _, row := range t.Rows {
		if query != "" && !strings.Contains(strings.ToLower(row.ID), query) {
			continue
		}
		if f.Cluster != "" && row.Cluster != f.Cluster {
			continue
		}
		if row.IdentityToHuman < f.MinIdentity {
			continue
		}
		rows = append(rows, row)
	}
	return rows
}

// SortRows stably sorts a row slice by the given column. Unknown columns fall
// back to identity, matching the UI default of identity-to-human descending.
func SortRows(rows []Row, column string, descending bool) {
	var less func(a, b Row) bool
	switch column {
	case ColID:
		less = func(a, b Row) bool { return a.ID < b.ID }
	case ColLength:
		less = func(a, b Row) bool { return a.Length < b.Length }
	case ColCluster:
		less = func(a, b Row) bool { return a.Cluster < b.Cluster }
	default:
		less = func(a, b Row) bool { return a.IdentityToHuman < b.IdentityToHuman }
	}
	sort.SliceStable(rows, func(i, j int) bool {
		if descending {
			return less(rows[j], rows[i])
		}
		return less(rows[i], rows[j])
	})
}
