// Package categories drives the bulk category-update workflow: for every
// eligible workbook record it performs a read-modify-write cycle against the
// Prism VM API guarded by the resource's ETag, and records the outcome.
package categories

import (
	"context"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/hardev/prismops/internal/prism"
)

// eligibleSentinel is the exact marker an upstream reconciliation check
// writes into the match column. Comparison is case-sensitive.
const eligibleSentinel = "OK"

// timestampLayout is the audit format written next to each outcome: ddMMyyyy-HHmm.
const timestampLayout = "02012006-1504"

// Status values written to the workbook.
const (
	StatusAccepted         = "ACCEPTED"
	StatusFailedNoETag     = "FAILED (NO_ETAG)"
	StatusFailedNoResponse = "FAILED (N/A)"
)

// Record is one row of the update workbook.
type Record struct {
	Row        int    // workbook row the record came from
	Name       string // VM name, informational
	ExtID      string // VM external identifier
	Match      string // eligibility marker from the reconciliation check
	Categories string // raw comma-separated category extIds
}

// Eligible reports whether the record passed the upstream reconciliation
// check and may be acted on.
func (r Record) Eligible() bool {
	return strings.TrimSpace(r.Match) == eligibleSentinel
}

// ParseCategories splits the raw category list on commas, trimming
// whitespace and dropping empty entries. Duplicates are kept as-is.
func (r Record) ParseCategories() []string {
	var ids []string
	for _, part := range strings.Split(r.Categories, ",") {
		if id := strings.TrimSpace(part); id != "" {
			ids = append(ids, id)
		}
	}
	return ids
}

// Outcome is the terminal state of one processed record.
type Outcome struct {
	Record   Record
	Status   string
	Accepted bool
}

// VMUpdater is the slice of the Prism client the orchestrator needs.
type VMUpdater interface {
	GetVM(ctx context.Context, extID string) (*prism.VM, string, error)
	AssociateCategories(ctx context.Context, extID, etag string, categoryIDs []string) (string, error)
}

// Sink records the outcome of a processed record. Implementations must treat
// a missing destination as a logged no-op, never a failure.
type Sink interface {
	Mark(row int, status, timestamp string) error
}

// Summary totals one run.
type Summary struct {
	Processed int
	Accepted  int
	Failed    int
	Skipped   int
}

// Orchestrator applies category updates record by record.
type Orchestrator struct {
	client VMUpdater
	sink   Sink
	now    func() time.Time
}

// NewOrchestrator creates an orchestrator writing outcomes through sink.
func NewOrchestrator(client VMUpdater, sink Sink) *Orchestrator {
	return &Orchestrator{client: client, sink: sink, now: time.Now}
}

// Run processes records strictly in order, one record fully read, written
// and marked before the next begins. A record's failure is recorded in the
// sink and never aborts the batch; no record is retried.
func (o *Orchestrator) Run(ctx context.Context, records []Record) (*Summary, error) {
	summary := &Summary{}

	for _, rec := range records {
		if err := ctx.Err(); err != nil {
			return summary, err
		}

		if !rec.Eligible() {
			log.Printf("Skipping row %d: match status is %q, not %q", rec.Row, rec.Match, eligibleSentinel)
			summary.Skipped++
			continue
		}
		if rec.Name == "" || rec.ExtID == "" || strings.TrimSpace(rec.Categories) == "" {
			log.Printf("Skipping row %d: missing required data", rec.Row)
			summary.Skipped++
			continue
		}
		ids := rec.ParseCategories()
		if len(ids) == 0 {
			log.Printf("Skipping row %d: no category ids left after trimming", rec.Row)
			summary.Skipped++
			continue
		}

		summary.Processed++
		outcome := o.processRecord(ctx, rec, ids)
		if outcome.Accepted {
			summary.Accepted++
		} else {
			summary.Failed++
		}

		timestamp := o.now().Format(timestampLayout)
		if err := o.sink.Mark(rec.Row, outcome.Status, timestamp); err != nil {
			log.Printf("Warning: could not record outcome for row %d: %v", rec.Row, err)
		}
	}

	return summary, nil
}

// processRecord performs the read-modify-write cycle for one record.
func (o *Orchestrator) processRecord(ctx context.Context, rec Record, categoryIDs []string) Outcome {
	log.Printf("Processing VM %s (extId %s), %d categories", rec.Name, rec.ExtID, len(categoryIDs))

	_, etag, err := o.client.GetVM(ctx, rec.ExtID)
	if err != nil {
		log.Printf("GET failed for VM %s: %v", rec.Name, err)
		return Outcome{Record: rec, Status: failureStatus(err)}
	}
	if etag == "" {
		// A conditional write without a version token is unsafe; the record
		// is abandoned rather than written unconditionally.
		log.Printf("No ETag returned for VM %s, update abandoned", rec.Name)
		return Outcome{Record: rec, Status: StatusFailedNoETag}
	}

	updated, err := o.client.AssociateCategories(ctx, rec.ExtID, etag, categoryIDs)
	if err != nil {
		log.Printf("Category update failed for VM %s: %v", rec.Name, err)
		return Outcome{Record: rec, Status: failureStatus(err)}
	}

	if updated != "" {
		log.Printf("ACCEPTED: VM %s, updated ETag %s", rec.Name, updated)
	} else {
		log.Printf("ACCEPTED: VM %s", rec.Name)
	}
	return Outcome{Record: rec, Status: StatusAccepted, Accepted: true}
}

// failureStatus renders the audit status for a failed call: the literal HTTP
// status when a response was received, N/A when the transport gave none.
func failureStatus(err error) string {
	if code := prism.StatusCode(err); code != 0 {
		return fmt.Sprintf("FAILED (%d)", code)
	}
	return StatusFailedNoResponse
}
