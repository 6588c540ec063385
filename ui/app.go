package ui

import (
	"embed"
	"fmt"
	"html/template"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"golang.org/x/sync/errgroup"

	"tp53explorer/domain/features"
	"tp53explorer/internal"
	"tp53explorer/internal/analysis"
	"tp53explorer/internal/assets"
	apperrors "tp53explorer/internal/errors"
)

//go:embed templates/* static/* content/*
var embeddedFiles embed.FS

// App represents the UI application
type App struct {
	router    *chi.Mux
	templates *template.Template
	logger    *internal.Logger

	// Load-once dataset state. table is nil and dataNotice non-empty when no
	// candidate dataset file exists; every content page then renders the
	// notice instead of data.
	table      *features.Table
	summary    *analysis.DatasetSummary
	dataNotice string

	figures   []assets.FigureStatus
	gallery   *assets.Gallery
	aboutHTML template.HTML
}

// Config holds UI application configuration
type Config struct {
	Port                 string
	DataDir              string
	ImagesDir            string
	CompositionTolerance float64
}

// NewApp creates a new UI application. The feature table and the figure
// gallery are loaded concurrently; a missing dataset is not a startup error.
func NewApp(config Config) (*App, error) {
	funcMap := template.FuncMap{
		"mul": func(a, b float64) float64 { return a * b },
		"add": func(a, b int) int { return a + b },
	}
	templates, err := template.New("").Funcs(funcMap).ParseFS(embeddedFiles, "templates/*.html", "templates/fragments/*.html")
	if err != nil {
		return nil, fmt.Errorf("failed to parse templates: %w", err)
	}

	aboutHTML, err := renderAboutContent(embeddedFiles)
	if err != nil {
		return nil, fmt.Errorf("failed to render about content: %w", err)
	}

	app := &App{
		router:    chi.NewRouter(),
		templates: templates,
		logger:    internal.DefaultLogger,
		gallery:   assets.NewGallery(config.ImagesDir),
		aboutHTML: aboutHTML,
	}

	var g errgroup.Group
	g.Go(func() error {
		return app.loadDataset(config)
	})
	g.Go(func() error {
		app.figures = app.gallery.Probe()
		for _, fig := range app.figures {
			if !fig.Present {
				app.logger.Warn("Figure missing: %s", fig.Name)
			}
		}
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	app.setupMiddleware()
	app.setupRoutes()

	return app, nil
}

// loadDataset resolves and loads the feature table. ErrNoDataset degrades to
// a user-visible notice; any other load failure aborts startup.
func (a *App) loadDataset(config Config) error {
	loader := features.NewLoader(config.DataDir)
	table, err := loader.Load()
	if err != nil {
		if apperrors.GetCode(err) == apperrors.CodeDataMissing {
			a.dataNotice = fmt.Sprintf(
				"Could not find features file in '%s'. Please make sure your dataset is named one of: %v",
				config.DataDir, features.CandidateFiles)
			a.logger.Error("Dataset missing: %s", a.dataNotice)
			return nil
		}
		return fmt.Errorf("failed to load feature dataset: %w", err)
	}

	summary, err := analysis.Summarize(table, config.CompositionTolerance)
	if err != nil {
		return fmt.Errorf("failed to summarize feature dataset: %w", err)
	}

	a.table = table
	a.summary = summary
	a.logger.Info("Loaded features from: %s (%d rows)", table.SourceFile, len(table.Rows))
	return nil
}

// setupMiddleware configures HTTP middleware
func (a *App) setupMiddleware() {
	a.router.Use(middleware.Logger)
	a.router.Use(middleware.Recoverer)
	a.router.Use(middleware.Compress(5))

	// Serve static files
	staticFS := http.FileServer(http.FS(embeddedFiles))
	a.router.Handle("/static/*", http.StripPrefix("/", staticFS))
}

// setupRoutes configures the application routes
func (a *App) setupRoutes() {
	// Main pages
	a.router.Get("/", a.handleOverview)
	a.router.Get("/sequences", a.handleSequences)
	a.router.Get("/sequences/{id}", a.handleSequenceDetail)
	a.router.Get("/about", a.handleAbout)

	// Figure assets resolved from disk at request time
	a.router.Get("/figures/{name}", a.handleFigure)

	// JSON API
	a.router.Get("/api/sequences", a.handleSequencesJSON)
	a.router.Get("/api/sequences/{id}", a.handleSequenceJSON)
	a.router.Get("/api/summary", a.handleSummaryJSON)

	// HTMX fragment endpoints
	a.router.Get("/api/fragments/sequences", a.handleFragmentSequences)

	// Table exports
	a.router.Get("/api/export/csv", a.handleExportCSV)
	a.router.Get("/api/export/xlsx", a.handleExportXLSX)
}

// Start starts the HTTP server
func (a *App) Start(addr string) error {
	a.logger.Info("Starting TP53 Explorer UI server on %s", addr)
	return http.ListenAndServe(addr, a.router)
}

// Router exposes the chi mux, mainly for httptest
func (a *App) Router() http.Handler {
	return a.router
}

// HTMX helpers
func isHTMX(r *http.Request) bool {
	return r.Header.Get("HX-Request") == "true"
}
