package domain

import "time"

type DocumentKind string

const (
	DocumentInvoice   DocumentKind = "invoice"
	DocumentQuotation DocumentKind = "quotation"
)

type DocumentStatus string

const (
	DocumentDraft    DocumentStatus = "draft"
	DocumentSent     DocumentStatus = "sent"
	DocumentPaid     DocumentStatus = "paid"
	DocumentVoid     DocumentStatus = "void"
	DocumentAccepted DocumentStatus = "accepted"
	DocumentDeclined DocumentStatus = "declined"
)

// ValidFor reports whether the status belongs to the given document kind.
// Invoices move through draft/sent/paid/void, quotations through
// draft/sent/accepted/declined.
func (s DocumentStatus) ValidFor(kind DocumentKind) bool {
	switch s {
	case DocumentDraft, DocumentSent:
		return true
	case DocumentPaid, DocumentVoid:
		return kind == DocumentInvoice
	case DocumentAccepted, DocumentDeclined:
		return kind == DocumentQuotation
	}
	return false
}

// Document is an invoice or quotation. Number is the user-visible
// sequential identifier (INV-YYYYMM-NNNN or QUO-YYYY-NNNN), unique per
// (org, kind).
type Document struct {
	ID           int64          `json:"id"`
	OrgID        int64          `json:"org_id"`
	Kind         DocumentKind   `json:"kind"`
	Number       string         `json:"number"`
	CustomerName string         `json:"customer_name" validate:"required"`
	Amount       float64        `json:"amount" validate:"gte=0"`
	IssueDate    time.Time      `json:"issue_date"`
	DueDate      *time.Time     `json:"due_date,omitempty"`
	Status       DocumentStatus `json:"status"`
	Notes        string         `json:"notes,omitempty"`
	CreatedBy    int64          `json:"created_by"`
	CreatedAt    time.Time      `json:"created_at"`
	UpdatedAt    time.Time      `json:"updated_at"`
}
