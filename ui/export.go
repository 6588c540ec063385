package ui

import (
	"encoding/csv"
	"fmt"
	"log"
	"net/http"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/xuri/excelize/v2"

	"tp53explorer/domain/features"
)

// exportName builds a unique download filename so repeated exports never
// collide in the user's download folder
func exportName(ext string) string {
	timestamp := time.Now().Format("20060102_150405")
	return fmt.Sprintf("tp53_features_%s_%s.%s", timestamp, uuid.New().String()[:8], ext)
}

// exportHeader returns the column header matching the loaded schema
func (a *App) exportHeader() []string {
	header := []string{features.ColID, features.ColLength, features.ColIdentity}
	if a.table.HasCluster {
		header = append(header, features.ColCluster)
	}
	for _, letter := range a.table.CompositionColumns {
		header = append(header, features.CompositionPrefix+letter)
	}
	return header
}

// exportRecord flattens one row in the same column order as exportHeader
func (a *App) exportRecord(row features.Row) []string {
	record := []string{
		row.ID,
		strconv.Itoa(row.Length),
		strconv.FormatFloat(row.IdentityToHuman, 'f', -1, 64),
	}
	if a.table.HasCluster {
		record = append(record, row.Cluster)
	}
	for _, letter := range a.table.CompositionColumns {
		record = append(record, strconv.FormatFloat(row.Composition[letter], 'f', -1, 64))
	}
	return record
}

// handleExportCSV streams the filtered/sorted table as a CSV download
func (a *App) handleExportCSV(w http.ResponseWriter, r *http.Request) {
	if a.table == nil {
		http.Error(w, a.dataNotice, http.StatusServiceUnavailable)
		return
	}

	q := parseTableQuery(r)
	rows := a.selectRows(q)

	w.Header().Set("Content-Type", "text/csv")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", exportName("csv")))

	writer := csv.NewWriter(w)
	if err := writer.Write(a.exportHeader()); err != nil {
		log.Printf("[handleExportCSV] Failed to write header: %v", err)
		return
	}
	for _, row := range rows {
		if err := writer.Write(a.exportRecord(row)); err != nil {
			log.Printf("[handleExportCSV] Failed to write row %s: %v", row.ID, err)
			return
		}
	}
	writer.Flush()
	if err := writer.Error(); err != nil {
		log.Printf("[handleExportCSV] Flush failed: %v", err)
	}
}

// handleExportXLSX writes the filtered/sorted table as an Excel download
func (a *App) handleExportXLSX(w http.ResponseWriter, r *http.Request) {
	if a.table == nil {
		http.Error(w, a.dataNotice, http.StatusServiceUnavailable)
		return
	}

	q := parseTableQuery(r)
	rows := a.selectRows(q)

	f := excelize.NewFile()
	defer f.Close()
	sheet := "Sheet1"

	header := a.exportHeader()
	headerCells := make([]interface{}, len(header))
	for i, h := range header {
		headerCells[i] = h
	}
	if err := f.SetSheetRow(sheet, "A1", &headerCells); err != nil {
		log.Printf("[handleExportXLSX] Failed to write header: %v", err)
		http.Error(w, "Export failed", http.StatusInternalServerError)
		return
	}

	for i, row := range rows {
		cells := make([]interface{}, 0, len(header))
		cells = append(cells, row.ID, row.Length, row.IdentityToHuman)
		if a.table.HasCluster {
			cells = append(cells, row.Cluster)
		}
		for _, letter := range a.table.CompositionColumns {
			cells = append(cells, row.Composition[letter])
		}
		axis := fmt.Sprintf("A%d", i+2)
		if err := f.SetSheetRow(sheet, axis, &cells); err != nil {
			log.Printf("[handleExportXLSX] Failed to write row %s: %v", row.ID, err)
			http.Error(w, "Export failed", http.StatusInternalServerError)
			return
		}
	}

	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", exportName("xlsx")))

	if err := f.Write(w); err != nil {
		log.Printf("[handleExportXLSX] Failed to write workbook: %v", err)
	}
}
