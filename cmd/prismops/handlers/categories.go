// Package handlers implements the business logic for CLI commands.
//
// This package contains handler functions that are called by command
// definitions in the commands package. Handlers are framework-agnostic and
// can be tested independently of the CLI framework; their collaborators are
// created through factory variables that tests replace.
package handlers

import (
	"context"
	"fmt"
	"log"

	"github.com/hardev/prismops/internal/categories"
	"github.com/hardev/prismops/internal/config"
	"github.com/hardev/prismops/internal/prism"
	"github.com/hardev/prismops/internal/sheet"
)

// UpdateCategoriesOptions carries the flags of the update-categories command.
type UpdateCategoriesOptions struct {
	ConfigPath   string
	WorkbookPath string
	SheetName    string
}

// workbook is the slice of sheet.Workbook the handler needs.
type workbook interface {
	Records() ([]categories.Record, error)
	Mark(row int, status, timestamp string) error
	Close() error
}

// updateRunner interface for testing - matches categories.Orchestrator.
type updateRunner interface {
	Run(ctx context.Context, records []categories.Record) (*categories.Summary, error)
}

// Factory function variables - can be replaced in tests for dependency injection.
var (
	// loadConfigFile loads the key=value connection settings.
	loadConfigFile = config.Load

	// newUpdateClient creates the Prism client used for category updates.
	newUpdateClient = func(cfg *config.Config) categories.VMUpdater {
		return prism.NewClient(cfg.BaseURL, cfg.Username, cfg.Password)
	}

	// openWorkbook opens the update workbook.
	openWorkbook = func(path, sheetName string) (workbook, error) {
		return sheet.Open(path, sheetName)
	}

	// newOrchestrator creates the per-record update orchestrator.
	newOrchestrator = func(client categories.VMUpdater, sink categories.Sink) updateRunner {
		return categories.NewOrchestrator(client, sink)
	}
)

// UpdateCategories runs the bulk category-update workflow.
//
// Configuration and workbook problems are fatal and abort the run before any
// network call. Once the batch starts, every record is processed to a
// terminal state regardless of other records' failures; outcomes land in the
// workbook, not in the exit code.
func UpdateCategories(ctx context.Context, opts UpdateCategoriesOptions) error {
	cfg, err := loadConfigFile(opts.ConfigPath)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	wb, err := openWorkbook(opts.WorkbookPath, opts.SheetName)
	if err != nil {
		return fmt.Errorf("failed to open workbook: %w", err)
	}
	defer func() {
		_ = wb.Close()
	}()

	records, err := wb.Records()
	if err != nil {
		return fmt.Errorf("failed to read workbook rows: %w", err)
	}
	log.Printf("Loaded %d rows from %s (sheet %s)", len(records), opts.WorkbookPath, opts.SheetName)
	log.Printf("Using endpoint %s as %s", cfg.BaseURL, cfg.Username)

	orch := newOrchestrator(newUpdateClient(cfg), wb)
	summary, err := orch.Run(ctx, records)
	if err != nil {
		return err
	}

	fmt.Printf("\nUpdate complete: %d accepted, %d failed, %d skipped (of %d rows)\n",
		summary.Accepted, summary.Failed, summary.Skipped, len(records))
	return nil
}
