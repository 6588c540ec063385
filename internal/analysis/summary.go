package analysis

import (
	"math"
	"sort"

	"github.com/montanaflynn/stats"
	"gonum.org/v1/gonum/stat"

	"tp53explorer/domain/features"
)

// ColumnSummary holds descriptive statistics for a single numeric column
type ColumnSummary struct {
	Mean   float64
	Median float64
	StdDev float64
	Min    float64
	Max    float64
	Q25    float64
	Q75    float64
}

// ClusterSummary aggregates the rows sharing one cluster label
type ClusterSummary struct {
	Label        string
	Count        int
	MeanIdentity float64
}

// CompositionFlag marks a row whose frac_* fractions do not sum to ~1.0
type CompositionFlag struct {
	ID        string
	Sum       float64
	Deviation float64
}

// DatasetSummary is the overview-page view of the loaded table
type DatasetSummary struct {
	RowCount           int
	Identity           ColumnSummary
	Length             ColumnSummary
	LengthIdentityCorr float64 // Pearson r between length and identity
	Clusters           []ClusterSummary
	CompositionFlags   []CompositionFlag
}

// Summarize computes descriptive statistics over the feature table. The
// tolerance bounds how far a row's composition sum may drift from 1.0 before
// it is flagged; flags are advisory, never enforced.
func Summarize(table *features.Table, tolerance float64) (*DatasetSummary, error) {
	identity := make([]float64, len(table.Rows))
	length := make([]float64, len(table.Rows))
	for i, row := range table.Rows {
		identity[i] = row.IdentityToHuman
		length[i] = float64(row.Length)
	}

	identitySummary, err := summarizeColumn(identity)
	if err != nil {
		return nil, err
	}
	lengthSummary, err := summarizeColumn(length)
	if err != nil {
		return nil, err
	}

	summary := &DatasetSummary{
		RowCount: len(table.Rows),
		Identity: identitySummary,
		Length:   lengthSummary,
	}

	// Correlation is undefined for constant or single-point columns
	if len(table.Rows) >= 2 {
		if r := stat.Correlation(length, identity, nil); !math.IsNaN(r) {
			summary.LengthIdentityCorr = r
		}
	}

	summary.Clusters = summarizeClusters(table)
	summary.CompositionFlags = FlagCompositions(table, tolerance)

	return summary, nil
}

func summarizeColumn(data []float64) (ColumnSummary, error) {
	summary := ColumnSummary{}

	mean, err := stats.Mean(data)
	if err != nil {
		return summary, err
	}
	median, err := stats.Median(data)
	if err != nil {
		return summary, err
	}
	min, err := stats.Min(data)
	if err != nil {
		return summary, err
	}
	max, err := stats.Max(data)
	if err != nil {
		return summary, err
	}
	q25, err := stats.Percentile(data, 25)
	if err != nil {
		// Percentile needs more than one sample; degrade to the single value
		q25 = median
	}
	q75, err := stats.Percentile(data, 75)
	if err != nil {
		q75 = median
	}

	stdDev := 0.0
	if len(data) > 1 {
		if sd, err := stats.StandardDeviation(data); err == nil {
			stdDev = sd
		}
	}

	summary.Mean = mean
	summary.Median = median
	summary.StdDev = stdDev
	summary.Min = min
	summary.Max = max
	summary.Q25 = q25
	summary.Q75 = q75
	return summary, nil
}

func summarizeClusters(table *features.Table) []ClusterSummary {
	if !table.HasCluster {
		return nil
	}

	byLabel := make(map[string][]float64)
	for _, row := range table.Rows {
		if row.Cluster == "" {
			continue
		}
		byLabel[row.Cluster] = append(byLabel[row.Cluster], row.IdentityToHuman)
	}

	labels := make([]string, 0, len(byLabel))
	for label := range byLabel {
		labels = append(labels, label)
	}
	sort.Strings(labels)

	summaries := make([]ClusterSummary, 0, len(labels))
	for _, label := range labels {
		values := byLabel[label]
		mean, err := stats.Mean(values)
		if err != nil {
			continue
		}
		summaries = append(summaries, ClusterSummary{
			Label:        label,
			Count:        len(values),
			MeanIdentity: mean,
		})
	}
	return summaries
}

// FlagCompositions returns the rows whose composition fractions deviate from
// 1.0 by more than the tolerance. Rows without composition columns are never
// flagged.
func FlagCompositions(table *features.Table, tolerance float64) []CompositionFlag {
	if len(table.CompositionColumns) == 0 {
		return nil
	}

	var flags []CompositionFlag
	for _, row := range table.Rows {
		sum := row.CompositionSum()
		deviation := math.Abs(sum - 1.0)
		if deviation > tolerance {
			flags = append(flags, CompositionFlag{
				ID:        row.ID,
				Sum:       sum,
				Deviation: deviation,
			})
		}
	}
	return flags
}
