package ui

import (
	"html/template"
	"log"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"genoscope/app"
	"genoscope/domain/core"
	"genoscope/domain/enrich"
	"genoscope/internal/analysis"
	"genoscope/models"
)

// App is the lightweight read-only run browser. It never triggers new
// enrichment runs; it only renders what the run service already holds.
type App struct {
	router *chi.Mux
	runs   *app.RunService
}

// AppConfig holds browser configuration
type AppConfig struct {
	Port string
}

// NewApp creates the run browser.
func NewApp(runs *app.RunService) *App {
	a := &App{
		router: chi.NewRouter(),
		runs:   runs,
	}

	a.router.Use(middleware.Logger)
	a.router.Use(middleware.Recoverer)
	a.router.Use(middleware.Compress(5))

	a.router.Get("/", a.handleIndex)
	a.router.Get("/runs/{id}", a.handleRunDetail)

	return a
}

// Start runs the browser on the given port.
func (a *App) Start(port string) error {
	addr := ":" + port
	log.Printf("[Browser] Listening on %s", addr)
	return http.ListenAndServe(addr, a.router)
}

var indexTemplate = template.Must(template.New("index").Parse(`<!DOCTYPE html>
<html><head><meta charset="utf-8"><title>Runs</title>
<style>body{font-family:sans-serif;max-width:860px;margin:40px auto}table{border-collapse:collapse;width:100%}td,th{border:1px solid #ccc;padding:6px 10px;text-align:left}</style>
</head><body>
<h2>Enrichment runs</h2>
{{if .Runs}}
<table>
<tr><th>Run</th><th>Species</th><th>Sources</th><th>Rows</th><th>Resolved</th><th>Created</th></tr>
{{range .Runs}}
<tr>
<td><a href="/runs/{{.ID}}">{{.ID}}</a></td>
<td>{{.Species}}</td>
<td>{{range .Sources}}{{.}} {{end}}</td>
<td>{{.RowCount}}</td>
<td>{{.Diagnostics.Resolved}} / {{.Diagnostics.Attempted}}</td>
<td>{{.CreatedAt.Format "2006-01-02 15:04"}}</td>
</tr>
{{end}}
</table>
{{else}}
<p>No runs yet.</p>
{{end}}
</body></html>`))

var detailTemplate = template.Must(template.New("detail").Parse(`<!DOCTYPE html>
<html><head><meta charset="utf-8"><title>Run {{.Run.ID}}</title>
<style>body{font-family:sans-serif;max-width:1060px;margin:40px auto}table{border-collapse:collapse;width:100%}td,th{border:1px solid #ccc;padding:5px 8px;text-align:left;font-size:14px}</style>
</head><body>
<h2>Run {{.Run.ID}}</h2>
<p>{{.Summary.Rows}} pathway(s), min p = {{printf "%.3g" .Summary.MinPValue}}</p>
<table>
<tr><th>Source</th><th>Term</th><th>Name</th><th>P-value</th><th>Count</th><th>Genes</th></tr>
{{range .Table}}
<tr>
<td>{{.Source}}</td>
<td>{{.TermID}}</td>
<td>{{.Name}}</td>
<td>{{printf "%.3g" .PValue}}</td>
<td>{{.IntersectionSize}}</td>
<td>{{range $i, $g := .Genes}}{{if $i}}; {{end}}{{$g}}{{end}}</td>
</tr>
{{end}}
</table>
<p><a href="/">Back</a></p>
</body></html>`))

func (a *App) handleIndex(w http.ResponseWriter, r *http.Request) {
	summaries, err := a.runs.ListRecent(r.Context(), 50)
	if err != nil {
		http.Error(w, "failed to list runs", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := indexTemplate.Execute(w, struct{ Runs []models.RunSummary }{summaries}); err != nil {
		log.Printf("[Browser] Failed to render index: %v", err)
	}
}

func (a *App) handleRunDetail(w http.ResponseWriter, r *http.Request) {
	id := core.RunID(chi.URLParam(r, "id"))

	run, table, err := a.runs.View(r.Context(), id)
	if err != nil {
		if core.IsNotFoundError(err) {
			http.NotFound(w, r)
			return
		}
		http.Error(w, "failed to load run", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	data := struct {
		Run     models.RunSummary
		Table   enrich.Table
		Summary analysis.TableSummary
	}{run.Summary(), table, analysis.Summarize(table)}
	if err := detailTemplate.Execute(w, data); err != nil {
		log.Printf("[Browser] Failed to render run %s: %v", id, err)
	}
}
