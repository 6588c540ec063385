package ui

import (
	"log"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"tp53explorer/domain/features"
)

// tableQuery is the parsed filter/sort state shared by the table page, the
// fragment endpoint, the JSON list, and the exports
type tableQuery struct {
	Filter     features.Filter
	SortColumn string
	Descending bool
}

// parseTableQuery extracts the table query from request parameters. The
// default matches the original viewer: identity-to-human, descending.
func parseTableQuery(r *http.Request) tableQuery {
	q := tableQuery{
		SortColumn: features.ColIdentity,
		Descending: true,
	}

	params := r.URL.Query()
	q.Filter.Query = params.Get("q")
	q.Filter.Cluster = params.Get("cluster")
	if raw := params.Get("min_identity"); raw != "" {
		if v, err := strconv.ParseFloat(raw, 64); err == nil {
			q.Filter.MinIdentity = v
		}
	}

	switch params.Get("sort") {
	case features.ColID:
		q.SortColumn = features.ColID
	case features.ColLength:
		q.SortColumn = features.ColLength
	case features.ColCluster:
		q.SortColumn = features.ColCluster
	}
	if params.Get("dir") == "asc" {
		q.Descending = false
	}

	return q
}

// selectRows applies the query to the loaded table
func (a *App) selectRows(q tableQuery) []features.Row {
	rows := a.table.Select(q.Filter)
	features.SortRows(rows, q.SortColumn, q.Descending)
	return rows
}

// requireTable renders the dataset-missing notice when no dataset was found.
// Returns false when the caller should stop.
func (a *App) requireTable(w http.ResponseWriter) bool {
	if a.table != nil {
		return true
	}
	a.renderTemplate(w, "error.html", map[string]interface{}{
		"Title":   "Dataset Missing",
		"Message": a.dataNotice,
	})
	return false
}

// handleOverview renders the overview page: figures plus dataset summary
func (a *App) handleOverview(w http.ResponseWriter, r *http.Request) {
	data := map[string]interface{}{
		"Title":   "Overview",
		"Figures": a.figures,
	}

	if a.table == nil {
		data["DataNotice"] = a.dataNotice
	} else {
		data["SourceFile"] = a.table.SourceFile
		data["Summary"] = a.summary
		data["HasCluster"] = a.table.HasCluster
		data["ParseErrors"] = a.table.ParseErrors
	}

	a.renderTemplate(w, "overview.html", data)
}

// handleSequences renders the sortable/filterable feature table
func (a *App) handleSequences(w http.ResponseWriter, r *http.Request) {
	if !a.requireTable(w) {
		return
	}

	q := parseTableQuery(r)
	rows := a.selectRows(q)

	data := map[string]interface{}{
		"Title":       "TP53 Database",
		"SourceFile":  a.table.SourceFile,
		"Rows":        rows,
		"Total":       len(a.table.Rows),
		"HasCluster":  a.table.HasCluster,
		"Clusters":    a.table.Clusters(),
		"Query":       q.Filter.Query,
		"Cluster":     q.Filter.Cluster,
		"MinIdentity": q.Filter.MinIdentity,
		"Sort":        q.SortColumn,
		"Dir":         direction(q.Descending),
		"RawQuery":    r.URL.RawQuery,
	}

	if isHTMX(r) {
		a.renderPartial(w, "sequence_rows", data)
		return
	}
	a.renderTemplate(w, "sequences.html", data)
}

func direction(descending bool) string {
	if descending {
		return "desc"
	}
	return "asc"
}

// compositionEntry pairs an amino-acid letter with its fraction for display
type compositionEntry struct {
	AminoAcid string
	Fraction  float64
}

// handleSequenceDetail renders the per-sequence detail view
func (a *App) handleSequenceDetail(w http.ResponseWriter, r *http.Request) {
	if !a.requireTable(w) {
		return
	}

	id := chi.URLParam(r, "id")
	row, ok := a.table.Get(id)
	if !ok {
		log.Printf("[handleSequenceDetail] Unknown sequence id: %s", id)
		a.renderTemplateStatus(w, http.StatusNotFound, "error.html", map[string]interface{}{
			"Title":   "Sequence Not Found",
			"Message": "No sequence with id '" + id + "' exists in the loaded dataset.",
		})
		return
	}

	composition := make([]compositionEntry, 0, len(a.table.CompositionColumns))
	for _, letter := range a.table.CompositionColumns {
		composition = append(composition, compositionEntry{
			AminoAcid: letter,
			Fraction:  row.Composition[letter],
		})
	}

	a.renderTemplate(w, "sequence_detail.html", map[string]interface{}{
		"Title":          "Explore: " + row.ID,
		"Row":            row,
		"HasCluster":     a.table.HasCluster,
		"Composition":    composition,
		"CompositionSum": row.CompositionSum(),
	})
}

// handleAbout renders the about page from embedded Markdown
func (a *App) handleAbout(w http.ResponseWriter, r *http.Request) {
	a.renderTemplate(w, "about.html", map[string]interface{}{
		"Title":   "About",
		"Content": a.aboutHTML,
	})
}

// handleFigure serves a known figure image from the images directory
func (a *App) handleFigure(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")
	path, err := a.gallery.Path(name)
	if err != nil {
		log.Printf("[handleFigure] Figure unavailable: %s (%v)", name, err)
		http.NotFound(w, r)
		return
	}
	http.ServeFile(w, r, path)
}
