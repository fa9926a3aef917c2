package numbering

import (
	"context"

	"gearbook/internal/domain"
)

// DocumentRepository is the slice of the document store the allocator
// needs. Create must fail with a duplicate-key error when the (org,
// kind, number) unique constraint rejects the row.
type DocumentRepository interface {
	LastNumber(ctx context.Context, orgID int64, kind domain.DocumentKind, prefix string) (string, error)
	Create(ctx context.Context, d *domain.Document) error
}
