package mapping

import (
	"github.com/bizbooks/bizbooks_backend/internal/core/domain"
	"github.com/bizbooks/bizbooks_backend/internal/models"
)

// ToModelBankAccount converts a domain BankAccount to a model BankAccount
func ToModelBankAccount(d domain.BankAccount) models.BankAccount {
	return models.BankAccount{
		BankAccountID: d.BankAccountID,
		TenantID:      d.TenantID,
		Name:          d.Name,
		AccountNumber: d.AccountNumber,
		GLAccountID:   d.GLAccountID,
		AuditFields:   ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainBankAccount converts a model BankAccount to a domain BankAccount
func ToDomainBankAccount(m models.BankAccount) domain.BankAccount {
	return domain.BankAccount{
		BankAccountID: m.BankAccountID,
		TenantID:      m.TenantID,
		Name:          m.Name,
		AccountNumber: m.AccountNumber,
		GLAccountID:   m.GLAccountID,
		AuditFields:   ToDomainAuditFields(m.AuditFields),
	}
}

// ToDomainBankAccountSlice converts model bank accounts to domain form
func ToDomainBankAccountSlice(ms []models.BankAccount) []domain.BankAccount {
	ds := make([]domain.BankAccount, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainBankAccount(m)
	}
	return ds
}

// ToModelBankStatement converts a domain BankStatement to its model
func ToModelBankStatement(d domain.BankStatement) models.BankStatement {
	return models.BankStatement{
		StatementID:   d.StatementID,
		TenantID:      d.TenantID,
		BankAccountID: d.BankAccountID,
		FromDate:      d.FromDate,
		ToDate:        d.ToDate,
		AuditFields:   ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainBankStatement converts a model BankStatement to domain form
func ToDomainBankStatement(m models.BankStatement) domain.BankStatement {
	return domain.BankStatement{
		StatementID:   m.StatementID,
		TenantID:      m.TenantID,
		BankAccountID: m.BankAccountID,
		FromDate:      m.FromDate,
		ToDate:        m.ToDate,
		AuditFields:   ToDomainAuditFields(m.AuditFields),
	}
}

// ToModelStatementLine converts a domain BankStatementLine to its model
func ToModelStatementLine(d domain.BankStatementLine) models.BankStatementLine {
	return models.BankStatementLine{
		LineID:          d.LineID,
		StatementID:     d.StatementID,
		TransactionDate: d.TransactionDate,
		Description:     d.Description,
		Debit:           d.Debit,
		Credit:          d.Credit,
		Balance:         d.Balance,
		IsMatched:       d.IsMatched,
		AuditFields:     ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainStatementLine converts a model BankStatementLine to its domain form
func ToDomainStatementLine(m models.BankStatementLine) domain.BankStatementLine {
	return domain.BankStatementLine{
		LineID:          m.LineID,
		StatementID:     m.StatementID,
		TransactionDate: m.TransactionDate,
		Description:     m.Description,
		Debit:           m.Debit,
		Credit:          m.Credit,
		Balance:         m.Balance,
		IsMatched:       m.IsMatched,
		AuditFields:     ToDomainAuditFields(m.AuditFields),
	}
}

// ToDomainStatementLineSlice converts model statement lines to domain form
func ToDomainStatementLineSlice(ms []models.BankStatementLine) []domain.BankStatementLine {
	ds := make([]domain.BankStatementLine, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainStatementLine(m)
	}
	return ds
}

// ToModelReconciliationMatch converts a domain ReconciliationMatch to its model
func ToModelReconciliationMatch(d domain.ReconciliationMatch) models.ReconciliationMatch {
	return models.ReconciliationMatch{
		MatchID:         d.MatchID,
		TenantID:        d.TenantID,
		StatementLineID: d.StatementLineID,
		JournalLineID:   d.JournalLineID,
		Amount:          d.Amount,
		MatchedAt:       d.MatchedAt,
		AuditFields:     ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainReconciliationMatch converts a model ReconciliationMatch to domain form
func ToDomainReconciliationMatch(m models.ReconciliationMatch) domain.ReconciliationMatch {
	return domain.ReconciliationMatch{
		MatchID:         m.MatchID,
		TenantID:        m.TenantID,
		StatementLineID: m.StatementLineID,
		JournalLineID:   m.JournalLineID,
		Amount:          m.Amount,
		MatchedAt:       m.MatchedAt,
		AuditFields:     ToDomainAuditFields(m.AuditFields),
	}
}

// ToModelInvoice converts a domain Invoice to a model Invoice
func ToModelInvoice(d domain.Invoice) models.Invoice {
	return models.Invoice{
		InvoiceID:         d.InvoiceID,
		TenantID:          d.TenantID,
		Kind:              string(d.Kind),
		Number:            d.Number,
		PartnerName:       d.PartnerName,
		IssueDate:         d.IssueDate,
		DueDate:           d.DueDate,
		Total:             d.Total,
		OutstandingAmount: d.OutstandingAmount,
		Status:            string(d.Status),
		AuditFields:       ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainInvoice converts a model Invoice to a domain Invoice
func ToDomainInvoice(m models.Invoice) domain.Invoice {
	return domain.Invoice{
		InvoiceID:         m.InvoiceID,
		TenantID:          m.TenantID,
		Kind:              domain.InvoiceKind(m.Kind),
		Number:            m.Number,
		PartnerName:       m.PartnerName,
		IssueDate:         m.IssueDate,
		DueDate:           m.DueDate,
		Total:             m.Total,
		OutstandingAmount: m.OutstandingAmount,
		Status:            domain.InvoiceStatus(m.Status),
		AuditFields:       ToDomainAuditFields(m.AuditFields),
	}
}

// ToDomainInvoiceSlice converts a slice of model Invoices to domain Invoices
func ToDomainInvoiceSlice(ms []models.Invoice) []domain.Invoice {
	ds := make([]domain.Invoice, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainInvoice(m)
	}
	return ds
}
