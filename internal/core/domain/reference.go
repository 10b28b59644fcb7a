package domain

// ReferenceType tags the business document a journal entry or reconciliation match
// points back to. The set is closed: unknown kinds are rejected at the boundary
// rather than dispatched dynamically.
type ReferenceType string

const (
	RefInvoice         ReferenceType = "INVOICE"
	RefPurchaseInvoice ReferenceType = "PURCHASE_INVOICE"
	RefReceipt         ReferenceType = "RECEIPT"
	RefPayment         ReferenceType = "PAYMENT"
	RefExpense         ReferenceType = "EXPENSE"
	RefCash            ReferenceType = "CASH"
	RefAdjustment      ReferenceType = "ADJUSTMENT"
	RefManual          ReferenceType = "MANUAL"
)

// Valid reports whether t is a known business-document kind.
func (t ReferenceType) Valid() bool {
	switch t {
	case RefInvoice, RefPurchaseInvoice, RefReceipt, RefPayment, RefExpense, RefCash, RefAdjustment, RefManual:
		return true
	}
	return false
}
