package ui

import (
	"bytes"
	"encoding/json"
	"log"
	"net/http"
)

// renderTemplate executes a template with the given data. The template is
// rendered to a buffer first so a mid-render failure becomes a clean 500
// instead of a truncated page.
func (a *App) renderTemplate(w http.ResponseWriter, templateName string, data interface{}) {
	a.renderTemplateStatus(w, http.StatusOK, templateName, data)
}

// renderTemplateStatus renders a template with an explicit status code, used
// by the not-found and dataset-missing pages
func (a *App) renderTemplateStatus(w http.ResponseWriter, status int, templateName string, data interface{}) {
	var buf bytes.Buffer
	if err := a.templates.ExecuteTemplate(&buf, templateName, data); err != nil {
		log.Printf("Template error for %s: %v", templateName, err)
		log.Printf("Template data type: %T", data)
		http.Error(w, "Template rendering failed", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	if _, err := buf.WriteTo(w); err != nil {
		log.Printf("Error writing template response: %v", err)
	}
}

// renderPartial renders a fragment template for HTMX swaps
func (a *App) renderPartial(w http.ResponseWriter, templateName string, data interface{}) {
	a.renderTemplate(w, templateName, data)
}

// writeJSON writes a JSON response with the given status code
func writeJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		log.Printf("Error writing JSON response: %v", err)
	}
}

// writeJSONError writes a JSON error body in the shape the UI scripts expect
func writeJSONError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]interface{}{"error": message})
}
