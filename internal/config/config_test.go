package config

import (
	"testing"

	apperrors "tp53explorer/internal/errors"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("PORT", "")
	t.Setenv("DATA_DIR", "")
	t.Setenv("IMAGES_DIR", "")
	t.Setenv("COMPOSITION_TOLERANCE", "")

	config, err := Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if config.Server.Port != "8080" {
		t.Errorf("Expected default port 8080, got %s", config.Server.Port)
	}
	if config.Paths.DataDir != "data" {
		t.Errorf("Expected default data dir, got %s", config.Paths.DataDir)
	}
	if config.Paths.ImagesDir != "images" {
		t.Errorf("Expected default images dir, got %s", config.Paths.ImagesDir)
	}
	if config.Data.CompositionTolerance != 0.02 {
		t.Errorf("Expected default tolerance 0.02, got %f", config.Data.CompositionTolerance)
	}
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("PORT", "9000")
	t.Setenv("DATA_DIR", "/srv/tp53/data")
	t.Setenv("IMAGES_DIR", "/srv/tp53/images")
	t.Setenv("COMPOSITION_TOLERANCE", "0.05")

	config, err := Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if config.Server.Port != "9000" {
		t.Errorf("Expected port 9000, got %s", config.Server.Port)
	}
	if config.Paths.DataDir != "/srv/tp53/data" {
		t.Errorf("Expected overridden data dir, got %s", config.Paths.DataDir)
	}
	if config.Data.CompositionTolerance != 0.05 {
		t.Errorf("Expected tolerance 0.05, got %f", config.Data.CompositionTolerance)
	}
}

func TestLoad_InvalidPort(t *testing.T) {
	t.Setenv("PORT", "not-a-port")

	_, err := Load()
	if err == nil {
		t.Fatal("Expected an error for non-numeric port")
	}
	if apperrors.GetCode(err) != apperrors.CodeConfigInvalid {
		t.Errorf("Expected CONFIG_INVALID code, got %s", apperrors.GetCode(err))
	}
}

func TestLoad_BadToleranceFallsBackToDefault(t *testing.T) {
	t.Setenv("COMPOSITION_TOLERANCE", "banana")

	config, err := Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if config.Data.CompositionTolerance != 0.02 {
		t.Errorf("Expected default tolerance on parse failure, got %f", config.Data.CompositionTolerance)
	}
}
