package features

import (
	"encoding/csv"
	"log"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"

	"tp53explorer/internal/errors"
)

// CandidateFiles are the dataset filenames the loader tries, in order. The
// clustered variant wins when both are present because it carries the extra
// cluster column from the upstream grouping step.
var CandidateFiles = []string{
	"tp53_features_with_similarity_clustered.csv",
	"tp53_features_with_similarity.csv",
	"tp53_features_with_similarity_clustered.xlsx",
	"tp53_features_with_similarity.xlsx",
}

// ErrNoDataset is returned when none of the candidate files exist. Callers
// render a user-facing notice and keep running; this is never a panic path.
var ErrNoDataset = errors.DataMissing("no feature dataset found in data directory")

// Loader resolves and reads the feature dataset from a data directory
type Loader struct {
	dataDir string
}

// NewLoader creates a loader rooted at the given data directory
func NewLoader(dataDir string) *Loader {
	return &Loader{dataDir: dataDir}
}

// Resolve returns the path of the first candidate file that exists, or
// ErrNoDataset when none do
func (l *Loader) Resolve() (string, error) {
	for _, name := range CandidateFiles {
		path := filepath.Join(l.dataDir, name)
		if _, err := os.Stat(path); err == nil {
			return path, nil
		}
	}
	return "", ErrNoDataset
}

// Load resolves the dataset file and reads it into an immutable Table
func (l *Loader) Load() (*Table, error) {
	path, err := l.Resolve()
	if err != nil {
		return nil, err
	}

	log.Printf("[Loader] Reading feature dataset: %s", path)

	var records [][]string
	if strings.EqualFold(filepath.Ext(path), ".xlsx") {
		records, err = readExcelRecords(path)
	} else {
		records, err = readCSVRecords(path)
	}
	if err != nil {
		return nil, errors.Wrapf(err, "failed to read dataset %s", path)
	}

	if len(records) < 2 {
		return nil, errors.InvalidInput("dataset must have a header row and at least one data row")
	}

	table, err := buildTable(records)
	if err != nil {
		return nil, err
	}
	table.SourceFile = filepath.Base(path)

	log.Printf("[Loader] Dataset loaded: %d rows, cluster=%v, composition columns=%d, parse errors=%d",
		len(table.Rows), table.HasCluster, len(table.CompositionColumns), table.ParseErrors)
	return table, nil
}

func readCSVRecords(path string) ([][]string, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	reader := csv.NewReader(file)
	reader.FieldsPerRecord = -1 // ragged rows are padded during build
	return reader.ReadAll()
}

func readExcelRecords(path string) ([][]string, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	// Upstream notebooks export to the default sheet
	return f.GetRows("Sheet1")
}

// buildTable converts raw string records into the typed feature table.
// Malformed numeric cells are zeroed and counted rather than failing the load.
func buildTable(records [][]string) (*Table, error) {
	header := records[0]
	colIndex := make(map[string]int, len(header))
	for i, name := range header {
		colIndex[strings.TrimSpace(name)] = i
	}

	idIdx, ok := colIndex[ColID]
	if !ok {
		return nil, errors.InvalidInput("dataset is missing required column: " + ColID)
	}
	lengthIdx, hasLength := colIndex[ColLength]
	identityIdx, hasIdentity := colIndex[ColIdentity]
	if !hasLength {
		return nil, errors.InvalidInput("dataset is missing required column: " + ColLength)
	}
	if !hasIdentity {
		return nil, errors.InvalidInput("dataset is missing required column: " + ColIdentity)
	}

	clusterIdx, hasCluster := colIndex[ColCluster]

	// Composition columns are optional and variable; collect whatever frac_*
	// columns this pipeline run produced.
	type compCol struct {
		letter string
		index  int
	}
	var compCols []compCol
	for name, idx := range colIndex {
		if strings.HasPrefix(name, CompositionPrefix) {
			letter := strings.TrimPrefix(name, CompositionPrefix)
			if letter != "" {
				compCols = append(compCols, compCol{letter: letter, index: idx})
			}
		}
	}
	sort.Slice(compCols, func(i, j int) bool { return compCols[i].letter < compCols[j].letter })

	table := &Table{
		HasCluster: hasCluster,
		Rows:       make([]Row, 0, len(records)-1),
	}
	for _, c := range compCols {
		table.CompositionColumns = append(table.CompositionColumns, c.letter)
	}

	cell := func(record []string, idx int) string {
		if idx < len(record) {
			return strings.TrimSpace(record[idx])
		}
		return ""
	}

	for _, record := range records[1:] {
		id := cell(record, idIdx)
		if id == "" {
			continue // blank trailing rows are common in exported spreadsheets
		}

		row := Row{ID: id}

		if v, err := strconv.Atoi(cell(record, lengthIdx)); err == nil {
			row.Length = v
		} else {
			table.ParseErrors++
			log.Printf("[Loader] Bad length value for %s: %q", id, cell(record, lengthIdx))
		}

		if v, err := strconv.ParseFloat(cell(record, identityIdx), 64); err == nil {
			row.IdentityToHuman = v
		} else {
			table.ParseErrors++
			log.Printf("[Loader] Bad identity value for %s: %q", id, cell(record, identityIdx))
		}

		if hasCluster {
			row.Cluster = cell(record, clusterIdx)
		}

		if len(compCols) > 0 {
			row.Composition = make(map[string]float64, len(compCols))
			for _, c := range compCols {
				raw := cell(record, c.index)
				if raw == "" {
					row.Composition[c.letter] = 0
					continue
				}
				v, err := strconv.ParseFloat(raw, 64)
				if err != nil {
					table.ParseErrors++
					log.Printf("[Loader] Bad composition value for %s/%s: %q", id, c.letter, raw)
					v = 0
				}
				row.Composition[c.letter] = v
			}
		}

		table.Rows = append(table.Rows, row)
	}

	if len(table.Rows) == 0 {
		return nil, errors.InvalidInput("dataset contains no data rows")
	}

	return table, nil
}
