package assets

import (
	"os"
	"path/filepath"
	"testing"

	apperrors "tp53explorer/internal/errors"
)

func writeImage(t *testing.T, dir, name string) {
	t.Helper()
	if err := os.WriteFile(filepath.Join(dir, name), []byte("png-bytes"), 0644); err != nil {
		t.Fatalf("Failed to write %s: %v", name, err)
	}
}

func TestGallery_Probe(t *testing.T) {
	dir := t.TempDir()
	writeImage(t, dir, "TP53_tree.png")
	writeImage(t, dir, "identity_barplot.png")

	statuses := NewGallery(dir).Probe()
	if len(statuses) != len(KnownFigures) {
		t.Fatalf("Expected %d statuses, got %d", len(KnownFigures), len(statuses))
	}

	byName := make(map[string]bool)
	for _, s := range statuses {
		byName[s.Name] = s.Present
	}

	if !byName["TP53_tree.png"] {
		t.Error("Expected tree figure to be present")
	}
	if byName["TP53_MSA_logo.png"] {
		t.Error("Expected logo figure to be missing")
	}
	if !byName["identity_barplot.png"] {
		t.Error("Expected barplot figure to be present")
	}
}

func TestGallery_ProbeEmptyDir(t *testing.T) {
	statuses := NewGallery(t.TempDir()).Probe()
	for _, s := range statuses {
		if s.Present {
			t.Errorf("Expected %s to be missing", s.Name)
		}
		if s.Missing == "" {
			t.Errorf("Expected a warning message for %s", s.Name)
		}
	}
}

func TestGallery_Path(t *testing.T) {
	dir := t.TempDir()
	writeImage(t, dir, "TP53_tree.png")
	gallery := NewGallery(dir)

	path, err := gallery.Path("TP53_tree.png")
	if err != nil {
		t.Fatalf("Path failed: %v", err)
	}
	if path != filepath.Join(dir, "TP53_tree.png") {
		t.Errorf("Unexpected path: %s", path)
	}

	// Known figure, file absent
	if _, err := gallery.Path("TP53_MSA_logo.png"); apperrors.GetCode(err) != apperrors.CodeNotFound {
		t.Errorf("Expected NOT_FOUND for absent file, got %v", err)
	}

	// Unknown name is rejected outright
	if _, err := gallery.Path("../etc/passwd"); apperrors.GetCode(err) != apperrors.CodeInvalidInput {
		t.Errorf("Expected INVALID_INPUT for unknown figure, got %v", err)
	}
}
