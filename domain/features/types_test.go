package features

import (
	"math"
	"testing"
)

func sampleTable() *Table {
	return &Table{
		HasCluster:         true,
		CompositionColumns: []string{"A", "C"},
		Rows: []Row{
			{ID: "human_TP53", Length: 393, IdentityToHuman: 100.0, Cluster: "core", Composition: map[string]float64{"A": 0.6, "C": 0.4}},
			{ID: "elephant_TP53_RTG12", Length: 381, IdentityToHuman: 84.5, Cluster: "retro", Composition: map[string]float64{"A": 0.55, "C": 0.45}},
			{ID: "elephant_TP53_RTG3", Length: 250, IdentityToHuman: 61.2, Cluster: "retro", Composition: map[string]float64{"A": 0.5, "C": 0.48}},
		},
	}
}

func TestTable_Get(t *testing.T) {
	table := sampleTable()

	row, ok := table.Get("elephant_TP53_RTG12")
	if !ok {
		t.Fatal("Expected to find elephant_TP53_RTG12")
	}
	if row.Length != 381 {
		t.Errorf("Expected length 381, got %d", row.Length)
	}
	if row.IdentityToHuman != 84.5 {
		t.Errorf("Expected identity 84.5, got %f", row.IdentityToHuman)
	}

	if _, ok := table.Get("missing"); ok {
		t.Error("Expected lookup of unknown id to fail")
	}
}

func TestTable_GetOnEmptyTable(t *testing.T) {
	table := &Table{}
	if _, ok := table.Get("anything"); ok {
		t.Error("Expected lookup on empty table to fail, not panic")
	}
}

func TestTable_Select(t *testing.T) {
	table := sampleTable()

	tests := []struct {
		name     string
		filter   Filter
		expected []string
	}{
		{
			name:     "no filter returns all rows",
			filter:   Filter{},
			expected: []string{"human_TP53", "elephant_TP53_RTG12", "elephant_TP53_RTG3"},
		},
		{
			name:     "substring match on id is case-insensitive",
			filter:   Filter{Query: "ELEPHANT"},
			expected: []string{"elephant_TP53_RTG12", "elephant_TP53_RTG3"},
		},
		{
			name:     "cluster filter",
			filter:   Filter{Cluster: "core"},
			expected: []string{"human_TP53"},
		},
		{
			name:     "min identity filter",
			filter:   Filter{MinIdentity: 80},
			expected: []string{"human_TP53", "elephant_TP53_RTG12"},
		},
		{
			name:     "combined filters",
			filter:   Filter{Query: "elephant", MinIdentity: 80},
			expected: []string{"elephant_TP53_RTG12"},
		},
		{
			name:     "no match",
			filter:   Filter{Query: "mouse"},
			expected: []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rows := table.Select(tt.filter)
			if len(rows) != len(tt.expected) {
				t.Fatalf("Expected %d rows, got %d", len(tt.expected), len(rows))
			}
			for i, id := range tt.expected {
				if rows[i].ID != id {
					t.Errorf("Row %d: expected %s, got %s", i, id, rows[i].ID)
				}
			}
		})
	}
}

func TestSortRows(t *testing.T) {
	tests := []struct {
		name       string
		column     string
		descending bool
		firstID    string
	}{
		{name: "identity descending is the default order", column: ColIdentity, descending: true, firstID: "human_TP53"},
		{name: "identity ascending", column: ColIdentity, descending: false, firstID: "elephant_TP53_RTG3"},
		{name: "id ascending", column: ColID, descending: false, firstID: "elephant_TP53_RTG12"},
		{name: "length descending", column: ColLength, descending: true, firstID: "human_TP53"},
		{name: "cluster ascending", column: ColCluster, descending: false, firstID: "human_TP53"},
		{name: "unknown column falls back to identity", column: "bogus", descending: true, firstID: "human_TP53"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rows := sampleTable().Select(Filter{})
			SortRows(rows, tt.column, tt.descending)
			if rows[0].ID != tt.firstID {
				t.Errorf("Expected first row %s, got %s", tt.firstID, rows[0].ID)
			}
		})
	}
}

func TestTable_Clusters(t *testing.T) {
	table := sampleTable()
	clusters := table.Clusters()
	if len(clusters) != 2 || clusters[0] != "core" || clusters[1] != "retro" {
		t.Errorf("Expected [core retro], got %v", clusters)
	}

	plain := &Table{Rows: table.Rows}
	if clusters := plain.Clusters(); clusters != nil {
		t.Errorf("Expected nil clusters without cluster column, got %v", clusters)
	}
}

func TestTable_DuplicateIDs(t *testing.T) {
	table := &Table{Rows: []Row{
		{ID: "a"}, {ID: "b"}, {ID: "a"}, {ID: "c"}, {ID: "b"},
	}}
	dups := table.DuplicateIDs()
	if len(dups) != 2 || dups[0] != "a" || dups[1] != "b" {
		t.Errorf("Expected [a b], got %v", dups)
	}

	if dups := sampleTable().DuplicateIDs(); len(dups) != 0 {
		t.Errorf("Expected no duplicates, got %v", dups)
	}
}

func TestRow_CompositionSum(t *testing.T) {
	row := Row{Composition: map[string]float64{"A": 0.6, "C": 0.4}}
	if sum := row.CompositionSum(); math.Abs(sum-1.0) > 1e-9 {
		t.Errorf("Expected sum 1.0, got %f", sum)
	}

	empty := Row{}
	if sum := empty.CompositionSum(); sum != 0 {
		t.Errorf("Expected 0 for missing composition, got %f", sum)
	}
}
