package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/iwvelando/mortgage-estimator/internal/config"
	"github.com/iwvelando/mortgage-estimator/pkg/constants"
	"go.uber.org/zap"
)

func TestInitializeLogger(t *testing.T) {
	tests := []struct {
		name     string
		logging  config.LoggingConfig
		override string
		wantErr  bool
	}{
		{"defaults", config.LoggingConfig{}, "", false},
		{"console debug", config.LoggingConfig{Level: "debug", Format: "console"}, "", false},
		{"override wins", config.LoggingConfig{Level: "bogus"}, "warn", false},
		{"bad level", config.LoggingConfig{Level: "loud"}, "", true},
		{"bad format", config.LoggingConfig{Format: "xml"}, "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			logger, err := initializeLogger(tt.logging, tt.override)
			if tt.wantErr {
				if err == nil {
					t.Fatal("expected error")
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if logger == nil {
				t.Fatal("expected logger")
			}
		})
	}
}

func TestInitializeLoggerCreatesLogFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "estimator.log")

	logger, err := initializeLogger(config.LoggingConfig{OutputFile: path}, "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	logger.Info("hello")
	_ = logger.Sync()

	if _, err := os.Stat(path); err != nil {
		t.Fatalf("expected log file to exist: %v", err)
	}
}

func TestLoadConfigurationFallsBackWhenDefaultMissing(t *testing.T) {
	missing := filepath.Join(t.TempDir(), "config.yaml")

	conf, err := loadConfiguration(missing, false)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if conf.Limits != config.Default().Limits {
		t.Errorf("expected default limits, got %+v", conf.Limits)
	}

	if _, err := loadConfiguration(missing, true); err == nil {
		t.Error("expected error for an explicitly named missing file")
	}
}

func TestLoadConfigurationExample(t *testing.T) {
	conf, err := loadConfiguration(filepath.Join("..", "..", constants.ExampleConfigFile), true)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if conf == nil {
		t.Fatal("expected configuration")
	}
}

func TestRunWorksheet(t *testing.T) {
	path := filepath.Join("..", "..", "worksheet.yaml.example")

	var pretty bytes.Buffer
	if err := runWorksheet(config.Default(), zap.NewNop(), path, constants.OutputFormatPretty, &pretty); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if pretty.Len() == 0 {
		t.Fatal("expected pretty output")
	}

	var csvOut bytes.Buffer
	if err := runWorksheet(config.Default(), zap.NewNop(), path, constants.OutputFormatCSV, &csvOut); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.HasPrefix(csvOut.String(), "section,field,value") {
		t.Errorf("expected CSV header, got %q", csvOut.String())
	}
}

func TestRunWorksheetMissingFile(t *testing.T) {
	var out bytes.Buffer
	err := runWorksheet(config.Default(), zap.NewNop(), filepath.Join(t.TempDir(), "none.yaml"), constants.OutputFormatPretty, &out)
	if err == nil {
		t.Fatal("expected error for missing worksheet")
	}
}
