package billing

type CreateDocumentRequest struct {
	CustomerName string  `json:"customer_name" binding:"required"`
	Amount       float64 `json:"amount"`
	IssueDate    string  `json:"issue_date"`
	DueDate      string  `json:"due_date"`
	Notes        string  `json:"notes"`
}

type UpdateStatusRequest struct {
	Status string `json:"status" binding:"required"`
}
