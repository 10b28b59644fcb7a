package domain_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/bizbooks/bizbooks_backend/internal/core/domain"
)

func TestLineType_Opposite(t *testing.T) {
	assert.Equal(t, domain.Credit, domain.Debit.Opposite())
	assert.Equal(t, domain.Debit, domain.Credit.Opposite())
}

func TestAccountType_NormalSide(t *testing.T) {
	tests := []struct {
		accountType domain.AccountType
		want        domain.LineType
	}{
		{domain.Asset, domain.Debit},
		{domain.Expense, domain.Debit},
		{domain.COGS, domain.Debit},
		{domain.Liability, domain.Credit},
		{domain.Equity, domain.Credit},
		{domain.Income, domain.Credit},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, tt.accountType.NormalSide(), "normal side of %s", tt.accountType)
	}
}

func TestJournalLine_SignedAmount(t *testing.T) {
	hundred := decimal.NewFromInt(100)
	tests := []struct {
		name        string
		lineType    domain.LineType
		accountType domain.AccountType
		want        decimal.Decimal
	}{
		{"debit to asset is positive", domain.Debit, domain.Asset, hundred},
		{"credit to asset is negative", domain.Credit, domain.Asset, hundred.Neg()},
		{"credit to income is positive", domain.Credit, domain.Income, hundred},
		{"debit to income is negative", domain.Debit, domain.Income, hundred.Neg()},
		{"debit to cogs is positive", domain.Debit, domain.COGS, hundred},
		{"credit to liability is positive", domain.Credit, domain.Liability, hundred},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			line := domain.JournalLine{LineType: tt.lineType, Amount: hundred}
			assert.True(t, line.SignedAmount(tt.accountType).Equal(tt.want))
		})
	}
}

func TestJournalEntry_IsReversal(t *testing.T) {
	entry := domain.JournalEntry{}
	assert.False(t, entry.IsReversal())

	target := "some-entry-id"
	entry.ReversesEntryID = &target
	assert.True(t, entry.IsReversal())
}

func TestMovementType_IsInbound(t *testing.T) {
	assert.True(t, domain.MovementPurchase.IsInbound())
	assert.True(t, domain.MovementAdjustmentIn.IsInbound())
	assert.True(t, domain.MovementOpeningBalance.IsInbound())
	assert.False(t, domain.MovementSale.IsInbound())
	assert.False(t, domain.MovementAdjustmentOut.IsInbound())
}

func TestBucketFor(t *testing.T) {
	tests := []struct {
		daysOverdue int
		want        domain.AgingBucket
	}{
		{-10, domain.BucketCurrent},
		{0, domain.BucketCurrent},
		{1, domain.Bucket1To30},
		{30, domain.Bucket1To30},
		{31, domain.Bucket31To60},
		{60, domain.Bucket31To60},
		{61, domain.Bucket61To90},
		{90, domain.Bucket61To90},
		{91, domain.BucketOver90},
		{365, domain.BucketOver90},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, domain.BucketFor(tt.daysOverdue), "bucket for %d days overdue", tt.daysOverdue)
	}
}
