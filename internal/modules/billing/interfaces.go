package billing

import (
	"context"
	"time"

	"gearbook/internal/domain"
)

// Numberer allocates the document's sequential number and persists it in
// one step; see the numbering module.
type Numberer interface {
	CreateWithNumber(ctx context.Context, d *domain.Document, at time.Time) error
}

type DocumentRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Document, error)
	ListByOrg(ctx context.Context, orgID int64, kind domain.DocumentKind) ([]domain.Document, error)
	UpdateStatus(ctx context.Context, id int64, status domain.DocumentStatus) error
}
