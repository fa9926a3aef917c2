package repository

import (
	"context"
	"testing"
	"time"

	"gearbook/internal/database"
	"gearbook/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func openTestDB(t *testing.T) *gorm.DB {
	db, err := database.Connect(":memory:")
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	// a pooled second connection would open its own empty in-memory db
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, AutoMigrate(db))
	return db
}

func storedInvoice(orgID int64, number string) *domain.Document {
	return &domain.Document{
		OrgID:        orgID,
		Kind:         domain.DocumentInvoice,
		Number:       number,
		CustomerName: "Acme Corp",
		Amount:       100,
		IssueDate:    time.Date(2025, 3, 15, 0, 0, 0, 0, time.UTC),
		Status:       domain.DocumentDraft,
	}
}

func TestLastNumber_EmptyScope(t *testing.T) {
	repo := NewDocumentRepository(openTestDB(t))

	last, err := repo.LastNumber(context.Background(), 1, domain.DocumentInvoice, "INV-202503-")
	require.NoError(t, err)
	assert.Equal(t, "", last)
}

func TestLastNumber_RanksLongerNumbersAboveShorter(t *testing.T) {
	repo := NewDocumentRepository(openTestDB(t))
	ctx := context.Background()

	for _, number := range []string{"INV-202503-9999", "INV-202503-10000"} {
		require.NoError(t, repo.Create(ctx, storedInvoice(1, number)))
	}

	last, err := repo.LastNumber(ctx, 1, domain.DocumentInvoice, "INV-202503-")
	require.NoError(t, err)
	assert.Equal(t, "INV-202503-10000", last)
}

func TestLastNumber_ScopedByOrgKindAndPrefix(t *testing.T) {
	repo := NewDocumentRepository(openTestDB(t))
	ctx := context.Background()

	require.NoError(t, repo.Create(ctx, storedInvoice(1, "INV-202503-0007")))
	require.NoError(t, repo.Create(ctx, storedInvoice(1, "INV-202504-0042")))
	require.NoError(t, repo.Create(ctx, storedInvoice(2, "INV-202503-0099")))

	quotation := storedInvoice(1, "QUO-2025-0500")
	quotation.Kind = domain.DocumentQuotation
	require.NoError(t, repo.Create(ctx, quotation))

	last, err := repo.LastNumber(ctx, 1, domain.DocumentInvoice, "INV-202503-")
	require.NoError(t, err)
	assert.Equal(t, "INV-202503-0007", last)
}

func TestDocumentCreate_RejectsDuplicateNumber(t *testing.T) {
	repo := NewDocumentRepository(openTestDB(t))
	ctx := context.Background()

	require.NoError(t, repo.Create(ctx, storedInvoice(1, "INV-202503-0001")))

	err := repo.Create(ctx, storedInvoice(1, "INV-202503-0001"))
	require.Error(t, err)
	assert.True(t, database.IsUniqueViolation(err))
}
