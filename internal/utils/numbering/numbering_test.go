package numbering

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFormat(t *testing.T) {
	assert.Equal(t, "JE-2026-00042", Format(PrefixJournalEntry, 2026, 42, 5))
	assert.Equal(t, "INV-2026-00001", Format(PrefixInvoice, 2026, 1, 5))
	assert.Equal(t, "PINV-2026-007", Format(PrefixPurchaseInvoice, 2026, 7, 3))
	// Sequences wider than the padding are never truncated.
	assert.Equal(t, "JE-2026-123456", Format(PrefixJournalEntry, 2026, 123456, 5))
}

func TestReversalNumber(t *testing.T) {
	assert.Equal(t, "REV-JE-2026-00042", ReversalNumber("JE-2026-00042"))
}

func TestPrefixFor(t *testing.T) {
	assert.Equal(t, "JE", PrefixFor(DocTypeJournalEntry))
	assert.Equal(t, "INV", PrefixFor(DocTypeInvoice))
	assert.Equal(t, "PINV", PrefixFor(DocTypePurchaseInvoice))
	assert.Equal(t, "SomethingElse", PrefixFor("SomethingElse"))
}
