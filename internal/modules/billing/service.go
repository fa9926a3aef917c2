package billing

import (
	"context"
	"errors"
	"time"

	"gearbook/internal/domain"

	"gorm.io/gorm"
)

type Service struct {
	numberer  Numberer
	documents DocumentRepository
}

func NewService(numberer Numberer, documents DocumentRepository) *Service {
	return &Service{numberer: numberer, documents: documents}
}

// CreateDocument issues a new invoice or quotation. The number is
// allocated by the numbering module against the issue date's period;
// the document is persisted with the number in the same call.
func (s *Service) CreateDocument(ctx context.Context, orgID, userID int64, kind domain.DocumentKind, req CreateDocumentRequest) (*domain.Document, error) {
	if req.Amount < 0 {
		return nil, ErrValidation
	}

	issueDate := time.Now().UTC()
	if req.IssueDate != "" {
		parsed, err := time.Parse("2006-01-02", req.IssueDate)
		if err != nil {
			return nil, ErrValidation
		}
		issueDate = parsed.UTC()
	}

	var dueDate *time.Time
	if req.DueDate != "" {
		parsed, err := time.Parse("2006-01-02", req.DueDate)
		if err != nil {
			return nil, ErrValidation
		}
		if parsed.Before(issueDate) {
			return nil, ErrValidation
		}
		v := parsed.UTC()
		dueDate = &v
	}

	d := &domain.Document{
		OrgID:        orgID,
		Kind:         kind,
		CustomerName: req.CustomerName,
		Amount:       req.Amount,
		IssueDate:    issueDate,
		DueDate:      dueDate,
		Status:       domain.DocumentDraft,
		Notes:        req.Notes,
		CreatedBy:    userID,
	}
	if err := s.numberer.CreateWithNumber(ctx, d, issueDate); err != nil {
		return nil, err
	}
	return d, nil
}

func (s *Service) GetDocument(ctx context.Context, orgID, id int64, kind domain.DocumentKind) (*domain.Document, error) {
	d, err := s.documents.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	if d.OrgID != orgID || d.Kind != kind {
		return nil, ErrNotFound
	}
	return d, nil
}

func (s *Service) ListDocuments(ctx context.Context, orgID int64, kind domain.DocumentKind) ([]domain.Document, error) {
	return s.documents.ListByOrg(ctx, orgID, kind)
}

func (s *Service) UpdateStatus(ctx context.Context, orgID, id int64, kind domain.DocumentKind, status domain.DocumentStatus) (*domain.Document, error) {
	if !status.ValidFor(kind) {
		return nil, ErrValidation
	}

	d, err := s.GetDocument(ctx, orgID, id, kind)
	if err != nil {
		return nil, err
	}

	if err := s.documents.UpdateStatus(ctx, d.ID, status); err != nil {
		return nil, err
	}
	return s.GetDocument(ctx, orgID, id, kind)
}
