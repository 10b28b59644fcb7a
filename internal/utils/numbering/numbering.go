// Package numbering formats sequential document numbers. Allocation of the
// underlying counter is the repository's job; this package only renders and
// derives numbers.
package numbering

import "fmt"

// Document type identifiers used as sequence scopes alongside the tenant ID.
const (
	DocTypeJournalEntry    = "JournalEntry"
	DocTypeInvoice         = "Invoice"
	DocTypePurchaseInvoice = "PurchaseInvoice"
)

// Prefixes per document type.
const (
	PrefixJournalEntry    = "JE"
	PrefixInvoice         = "INV"
	PrefixPurchaseInvoice = "PINV"
	prefixReversal        = "REV"
)

// Format renders a document number as <prefix>-<year>-<zero-padded sequence>,
// e.g. Format("JE", 2026, 42, 5) -> "JE-2026-00042".
func Format(prefix string, year int, sequence int64, padding int) string {
	return fmt.Sprintf("%s-%d-%0*d", prefix, year, padding, sequence)
}

// ReversalNumber derives the number of a reversing entry from the original's.
func ReversalNumber(originalNumber string) string {
	return prefixReversal + "-" + originalNumber
}

// PrefixFor returns the number prefix for a document type. Unknown types fall
// back to the document type itself so numbers stay readable rather than failing.
func PrefixFor(docType string) string {
	switch docType {
	case DocTypeJournalEntry:
		return PrefixJournalEntry
	case DocTypeInvoice:
		return PrefixInvoice
	case DocTypePurchaseInvoice:
		return PrefixPurchaseInvoice
	}
	return docType
}
