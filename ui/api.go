package ui

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"tp53explorer/domain/features"
)

// sequenceJSON is the wire shape of one feature row
type sequenceJSON struct {
	ID              string             `json:"id"`
	Length          int                `json:"length"`
	IdentityToHuman float64            `json:"identity_to_human"`
	Cluster         string             `json:"cluster,omitempty"`
	Composition     map[string]float64 `json:"composition,omitempty"`
}

func toSequenceJSON(row features.Row, includeComposition bool) sequenceJSON {
	out := sequenceJSON{
		ID:              row.ID,
		Length:          row.Length,
		IdentityToHuman: row.IdentityToHuman,
		Cluster:         row.Cluster,
	}
	if includeComposition {
		out.Composition = row.Composition
	}
	return out
}

// requireTableJSON is the API counterpart of requireTable
func (a *App) requireTableJSON(w http.ResponseWriter) bool {
	if a.table != nil {
		return true
	}
	writeJSONError(w, http.StatusServiceUnavailable, a.dataNotice)
	return false
}

// handleSequencesJSON returns the filtered/sorted feature table as JSON
func (a *App) handleSequencesJSON(w http.ResponseWriter, r *http.Request) {
	if !a.requireTableJSON(w) {
		return
	}

	q := parseTableQuery(r)
	rows := a.selectRows(q)

	sequences := make([]sequenceJSON, 0, len(rows))
	for _, row := range rows {
		sequences = append(sequences, toSequenceJSON(row, false))
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"source_file": a.table.SourceFile,
		"has_cluster": a.table.HasCluster,
		"count":       len(sequences),
		"sequences":   sequences,
	})
}

// handleSequenceJSON returns one feature row, composition included
func (a *App) handleSequenceJSON(w http.ResponseWriter, r *http.Request) {
	if !a.requireTableJSON(w) {
		return
	}

	id := chi.URLParam(r, "id")
	row, ok := a.table.Get(id)
	if !ok {
		writeJSONError(w, http.StatusNotFound, "sequence not found: "+id)
		return
	}

	writeJSON(w, http.StatusOK, toSequenceJSON(row, true))
}

// handleSummaryJSON returns the dataset summary statistics
func (a *App) handleSummaryJSON(w http.ResponseWriter, r *http.Request) {
	if !a.requireTableJSON(w) {
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"source_file":          a.table.SourceFile,
		"row_count":            a.summary.RowCount,
		"has_cluster":          a.table.HasCluster,
		"composition_columns":  a.table.CompositionColumns,
		"identity":             a.summary.Identity,
		"length":               a.summary.Length,
		"length_identity_corr": a.summary.LengthIdentityCorr,
		"clusters":             a.summary.Clusters,
		"composition_flags":    a.summary.CompositionFlags,
	})
}

// handleFragmentSequences returns only the table rows for HTMX swaps
func (a *App) handleFragmentSequences(w http.ResponseWriter, r *http.Request) {
	if a.table == nil {
		http.Error(w, a.dataNotice, http.StatusServiceUnavailable)
		return
	}

	q := parseTableQuery(r)
	rows := a.selectRows(q)

	a.renderPartial(w, "sequence_rows", map[string]interface{}{
		"Rows":       rows,
		"HasCluster": a.table.HasCluster,
	})
}
