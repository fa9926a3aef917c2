package repository

import (
	"context"
	"errors"
	"time"

	"gearbook/internal/domain"

	"gorm.io/gorm"
)

type DocumentRepository struct {
	db *gorm.DB
}

func NewDocumentRepository(db *gorm.DB) *DocumentRepository {
	return &DocumentRepository{db: db}
}

type documentModel struct {
	ID           int64      `gorm:"column:id;primaryKey"`
	OrgID        int64      `gorm:"column:org_id;uniqueIndex:idx_document_number"`
	Kind         string     `gorm:"column:kind;uniqueIndex:idx_document_number"`
	Number       string     `gorm:"column:number;uniqueIndex:idx_document_number"`
	CustomerName string     `gorm:"column:customer_name"`
	Amount       float64    `gorm:"column:amount"`
	IssueDate    time.Time  `gorm:"column:issue_date"`
	DueDate      *time.Time `gorm:"column:due_date"`
	Status       string     `gorm:"column:status"`
	Notes        *string    `gorm:"column:notes"`
	CreatedBy    int64      `gorm:"column:created_by"`
	CreatedAt    time.Time  `gorm:"column:created_at"`
	UpdatedAt    time.Time  `gorm:"column:updated_at"`
}

func (documentModel) TableName() string { return "documents" }

func toDomainDocument(m documentModel) *domain.Document {
	return &domain.Document{
		ID:           m.ID,
		OrgID:        m.OrgID,
		Kind:         domain.DocumentKind(m.Kind),
		Number:       m.Number,
		CustomerName: m.CustomerName,
		Amount:       m.Amount,
		IssueDate:    m.IssueDate,
		DueDate:      m.DueDate,
		Status:       domain.DocumentStatus(m.Status),
		Notes:        strOrEmpty(m.Notes),
		CreatedBy:    m.CreatedBy,
		CreatedAt:    m.CreatedAt,
		UpdatedAt:    m.UpdatedAt,
	}
}

func toDocumentModel(d *domain.Document) documentModel {
	return documentModel{
		ID:           d.ID,
		OrgID:        d.OrgID,
		Kind:         string(d.Kind),
		Number:       d.Number,
		CustomerName: d.CustomerName,
		Amount:       d.Amount,
		IssueDate:    d.IssueDate,
		DueDate:      d.DueDate,
		Status:       string(d.Status),
		Notes:        strOrNil(d.Notes),
		CreatedBy:    d.CreatedBy,
		CreatedAt:    d.CreatedAt,
		UpdatedAt:    d.UpdatedAt,
	}
}

// Create inserts the document. The unique index on (org_id, kind, number)
// is the ground truth for sequence allocation: a lost race comes back as
// a duplicate-key error.
func (r *DocumentRepository) Create(ctx context.Context, d *domain.Document) error {
	m := toDocumentModel(d)
	tx := r.db.WithContext(ctx).Create(&m)
	if tx.Error != nil {
		return tx.Error
	}
	*d = *toDomainDocument(m)
	return nil
}

// LastNumber returns the highest issued number for the scope, "" when the
// scope has no documents yet. The numeric part outgrows its four-digit
// padding, so longer numbers must rank above shorter ones before the
// lexicographic tiebreak; plain `number DESC` would put 9999 above 10000.
func (r *DocumentRepository) LastNumber(ctx context.Context, orgID int64, kind domain.DocumentKind, prefix string) (string, error) {
	var m documentModel
	tx := r.db.WithContext(ctx).
		Where("org_id = ? AND kind = ? AND number LIKE ?", orgID, string(kind), prefix+"%").
		Order("LENGTH(number) DESC, number DESC").
		First(&m)
	if tx.Error != nil {
		if errors.Is(tx.Error, gorm.ErrRecordNotFound) {
			return "", nil
		}
		return "", tx.Error
	}
	return m.Number, nil
}

func (r *DocumentRepository) GetByID(ctx context.Context, id int64) (*domain.Document, error) {
	var m documentModel
	tx := r.db.WithContext(ctx).First(&m, id)
	if tx.Error != nil {
		return nil, tx.Error
	}
	return toDomainDocument(m), nil
}

func (r *DocumentRepository) ListByOrg(ctx context.Context, orgID int64, kind domain.DocumentKind) ([]domain.Document, error) {
	var models []documentModel
	tx := r.db.WithContext(ctx).
		Where("org_id = ? AND kind = ?", orgID, string(kind)).
		Order("number DESC").
		Find(&models)
	if tx.Error != nil {
		return nil, tx.Error
	}

	out := make([]domain.Document, 0, len(models))
	for _, m := range models {
		out = append(out, *toDomainDocument(m))
	}
	return out, nil
}

func (r *DocumentRepository) UpdateStatus(ctx context.Context, id int64, status domain.DocumentStatus) error {
	return r.db.WithContext(ctx).
		Model(&documentModel{}).
		Where("id = ?", id).
		Updates(map[string]any{
			"status":     string(status),
			"updated_at": time.Now().UTC(),
		}).Error
}
