package numbering

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"gearbook/internal/database"
	"gearbook/internal/domain"
)

// DefaultMaxAttempts bounds the optimistic retry loop. One shared bound
// for both document kinds.
const DefaultMaxAttempts = 10

// Allocator issues user-visible document numbers (INV-YYYYMM-NNNN,
// QUO-YYYY-NNNN), unique and monotonic per (org, kind, period).
//
// There is no atomic-increment primitive behind this: the allocator
// reads the highest issued number for the scope, proposes the next one
// and inserts the document under the store's unique constraint. A
// concurrent caller that claims the same number first makes the insert
// fail with a duplicate-key error, and the loop recomputes. Numbers are
// therefore unique but not gap-free under contention.
type Allocator struct {
	documents   DocumentRepository
	maxAttempts int
}

func NewAllocator(documents DocumentRepository, maxAttempts int) *Allocator {
	if maxAttempts <= 0 {
		maxAttempts = DefaultMaxAttempts
	}
	return &Allocator{documents: documents, maxAttempts: maxAttempts}
}

// CreateWithNumber assigns d.Number and persists d. On return d carries
// the number it was stored under. Duplicate-key failures are retried up
// to the bound; any other persistence error aborts immediately.
func (a *Allocator) CreateWithNumber(ctx context.Context, d *domain.Document, at time.Time) error {
	prefix, err := PeriodPrefix(d.Kind, at)
	if err != nil {
		return err
	}

	for attempt := 0; attempt < a.maxAttempts; attempt++ {
		last, err := a.documents.LastNumber(ctx, d.OrgID, d.Kind, prefix)
		if err != nil {
			return err
		}

		next, err := nextInSequence(prefix, last)
		if err != nil {
			return err
		}
		d.Number = next

		err = a.documents.Create(ctx, d)
		if err == nil {
			return nil
		}
		if !database.IsUniqueViolation(err) {
			return err
		}
		// lost the race for this number, recompute and try again
	}

	return ErrAllocationExhausted
}

// PeriodPrefix returns the scope prefix a number is allocated under:
// invoices reset monthly, quotations yearly.
func PeriodPrefix(kind domain.DocumentKind, at time.Time) (string, error) {
	switch kind {
	case domain.DocumentInvoice:
		return "INV-" + at.Format("200601") + "-", nil
	case domain.DocumentQuotation:
		return "QUO-" + at.Format("2006") + "-", nil
	}
	return "", ErrUnknownKind
}

// nextInSequence proposes the number after last within prefix. The
// numeric part is zero-padded to four digits and grows past 9999
// without truncation.
func nextInSequence(prefix, last string) (string, error) {
	n := 0
	if last != "" {
		raw := strings.TrimPrefix(last, prefix)
		v, err := strconv.Atoi(raw)
		if err != nil {
			return "", fmt.Errorf("malformed document number %q: %w", last, err)
		}
		n = v
	}
	return fmt.Sprintf("%s%04d", prefix, n+1), nil
}
