// Command featurecheck loads the TP53 feature dataset the same way the web
// viewer does and prints a sanity report: resolved filename, schema facts,
// duplicate ids, composition checksum flags, and summary statistics.
//
// Exit status is 1 when no dataset can be found or duplicate ids exist.
package main

import (
	"fmt"
	"log"
	"os"

	"github.com/joho/godotenv"

	"tp53explorer/domain/features"
	"tp53explorer/internal/analysis"
	"tp53explorer/internal/config"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using system environment variables")
	}

	appConfig, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	loader := features.NewLoader(appConfig.Paths.DataDir)
	table, err := loader.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "❌ %v\n", err)
		fmt.Fprintf(os.Stderr, "Expected one of the following files under %s:\n", appConfig.Paths.DataDir)
		for _, name := range features.CandidateFiles {
			fmt.Fprintf(os.Stderr, "  - %s\n", name)
		}
		os.Exit(1)
	}

	fmt.Printf("Dataset:             %s\n", table.SourceFile)
	fmt.Printf("Rows:                %d\n", len(table.Rows))
	fmt.Printf("Cluster column:      %v\n", table.HasCluster)
	fmt.Printf("Composition columns: %d\n", len(table.CompositionColumns))
	fmt.Printf("Parse errors:        %d\n", table.ParseErrors)

	failed := false

	if dups := table.DuplicateIDs(); len(dups) > 0 {
		failed = true
		fmt.Printf("\n❌ Duplicate ids (%d):\n", len(dups))
		for _, id := range dups {
			fmt.Printf("  - %s\n", id)
		}
	} else {
		fmt.Println("\n✅ All ids are unique")
	}

	summary, err := analysis.Summarize(table, appConfig.Data.CompositionTolerance)
	if err != nil {
		log.Fatalf("Failed to summarize dataset: %v", err)
	}

	fmt.Printf("\nIdentity to human: mean %.2f%%, median %.2f%%, range %.2f–%.2f%%\n",
		summary.Identity.Mean, summary.Identity.Median, summary.Identity.Min, summary.Identity.Max)
	fmt.Printf("Length:            mean %.0f aa, median %.0f aa, range %.0f–%.0f aa\n",
		summary.Length.Mean, summary.Length.Median, summary.Length.Min, summary.Length.Max)
	fmt.Printf("Length ↔ identity correlation: r = %.3f\n", summary.LengthIdentityCorr)

	if table.HasCluster {
		fmt.Println("\nClusters:")
		for _, c := range summary.Clusters {
			fmt.Printf("  %-12s %3d members, mean identity %.2f%%\n", c.Label, c.Count, c.MeanIdentity)
		}
	}

	if len(summary.CompositionFlags) > 0 {
		fmt.Printf("\n⚠️  %d rows with composition sum off by more than %.3f:\n",
			len(summary.CompositionFlags), appConfig.Data.CompositionTolerance)
		for _, flag := range summary.CompositionFlags {
			fmt.Printf("  %-30s sum=%.4f (off by %.4f)\n", flag.ID, flag.Sum, flag.Deviation)
		}
	} else if len(table.CompositionColumns) > 0 {
		fmt.Println("\n✅ All composition sums within tolerance")
	}

	if failed {
		os.Exit(1)
	}
}
