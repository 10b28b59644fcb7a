package dto

import (
	"time"

	"github.com/bizbooks/bizbooks_backend/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CreateBankAccountRequest defines the data needed to register a bank account.
type CreateBankAccountRequest struct {
	Name          string `json:"name" binding:"required,max=100"`
	AccountNumber string `json:"accountNumber" binding:"required,max=50"`
	GLAccountID   string `json:"glAccountID" binding:"required"`
}

// StatementLineInput is one externally parsed statement row.
type StatementLineInput struct {
	TransactionDate time.Time       `json:"transactionDate" binding:"required"`
	Description     string          `json:"description"`
	Debit           decimal.Decimal `json:"debit"`
	Credit          decimal.Decimal `json:"credit"`
	Balance         decimal.Decimal `json:"balance"`
}

// ImportStatementRequest defines the data for a statement import. Parsing the
// bank's file format happens upstream; this endpoint takes structured lines.
type ImportStatementRequest struct {
	BankAccountID string               `json:"bankAccountID" binding:"required"`
	FromDate      time.Time            `json:"fromDate" binding:"required"`
	ToDate        time.Time            `json:"toDate" binding:"required"`
	Lines         []StatementLineInput `json:"lines" binding:"required,min=1,dive"`
}

// MatchLineRequest defines the data to match a statement line to a journal line.
type MatchLineRequest struct {
	StatementLineID *string         `json:"statementLineID"`
	JournalLineID   string          `json:"journalLineID" binding:"required"`
	Amount          decimal.Decimal `json:"amount" binding:"required"`
}

// ReconcileRequest defines the inputs for a reconciliation pass.
// ReconciledLineIDs carries the journal lines the caller checked off; each is
// persisted as a match before the balance comparison runs.
type ReconcileRequest struct {
	BankAccountID     string          `json:"bankAccountID" binding:"required"`
	AsOf              time.Time       `json:"asOf" binding:"required"`
	StatementBalance  decimal.Decimal `json:"statementBalance" binding:"required"`
	ReconciledLineIDs []string        `json:"reconciledLineIDs"`
}

// BankAccountResponse defines the data returned for a bank account.
type BankAccountResponse struct {
	BankAccountID string    `json:"bankAccountID"`
	Name          string    `json:"name"`
	AccountNumber string    `json:"accountNumber"`
	GLAccountID   string    `json:"glAccountID"`
	CreatedAt     time.Time `json:"createdAt"`
}

// StatementLineResponse defines the data returned for a statement line.
type StatementLineResponse struct {
	LineID          string          `json:"lineID"`
	TransactionDate time.Time       `json:"transactionDate"`
	Description     string          `json:"description"`
	Debit           decimal.Decimal `json:"debit"`
	Credit          decimal.Decimal `json:"credit"`
	Balance         decimal.Decimal `json:"balance"`
	IsMatched       bool            `json:"isMatched"`
}

// StatementResponse defines the data returned for an imported statement.
type StatementResponse struct {
	StatementID   string                  `json:"statementID"`
	BankAccountID string                  `json:"bankAccountID"`
	FromDate      time.Time               `json:"fromDate"`
	ToDate        time.Time               `json:"toDate"`
	Lines         []StatementLineResponse `json:"lines,omitempty"`
}

// ReconciliationResponse defines the data returned for a reconciliation pass.
type ReconciliationResponse struct {
	BankAccountID           string                    `json:"bankAccountID"`
	AsOf                    time.Time                 `json:"asOf"`
	StatementBalance        decimal.Decimal           `json:"statementBalance"`
	BookBalance             decimal.Decimal           `json:"bookBalance"`
	Difference              decimal.Decimal           `json:"difference"`
	Balanced                bool                      `json:"balanced"`
	UnreconciledLines       []domain.UnreconciledLine `json:"unreconciledLines"`
	UnmatchedStatementLines []StatementLineResponse   `json:"unmatchedStatementLines"`
}

// ToBankAccountResponse converts a domain.BankAccount to BankAccountResponse DTO.
func ToBankAccountResponse(b *domain.BankAccount) BankAccountResponse {
	return BankAccountResponse{
		BankAccountID: b.BankAccountID,
		Name:          b.Name,
		AccountNumber: b.AccountNumber,
		GLAccountID:   b.GLAccountID,
		CreatedAt:     b.CreatedAt,
	}
}

// ToBankAccountResponses converts a slice of domain.BankAccount to []BankAccountResponse.
func ToBankAccountResponses(accounts []domain.BankAccount) []BankAccountResponse {
	responses := make([]BankAccountResponse, len(accounts))
	for i, b := range accounts {
		responses[i] = ToBankAccountResponse(&b)
	}
	return responses
}

// ToStatementLineResponse converts a domain.BankStatementLine to StatementLineResponse DTO.
func ToStatementLineResponse(l *domain.BankStatementLine) StatementLineResponse {
	return StatementLineResponse{
		LineID:          l.LineID,
		TransactionDate: l.TransactionDate,
		Description:     l.Description,
		Debit:           l.Debit,
		Credit:          l.Credit,
		Balance:         l.Balance,
		IsMatched:       l.IsMatched,
	}
}

// ToStatementResponse converts a domain.BankStatement plus its lines to StatementResponse DTO.
func ToStatementResponse(s *domain.BankStatement, lines []domain.BankStatementLine) StatementResponse {
	lineResponses := make([]StatementLineResponse, len(lines))
	for i, l := range lines {
		lineResponses[i] = ToStatementLineResponse(&l)
	}
	return StatementResponse{
		StatementID:   s.StatementID,
		BankAccountID: s.BankAccountID,
		FromDate:      s.FromDate,
		ToDate:        s.ToDate,
		Lines:         lineResponses,
	}
}

// ToReconciliationResponse converts a domain.ReconciliationResult to ReconciliationResponse DTO.
func ToReconciliationResponse(r *domain.ReconciliationResult) ReconciliationResponse {
	statementLines := make([]StatementLineResponse, len(r.UnmatchedStatementLines))
	for i, l := range r.UnmatchedStatementLines {
		statementLines[i] = ToStatementLineResponse(&l)
	}
	return ReconciliationResponse{
		BankAccountID:           r.BankAccountID,
		AsOf:                    r.AsOf,
		StatementBalance:        r.StatementBalance,
		BookBalance:             r.BookBalance,
		Difference:              r.Difference,
		Balanced:                r.Balanced,
		UnreconciledLines:       r.Unreconciled,
		UnmatchedStatementLines: statementLines,
	}
}
