package accounting

import (
	"fmt"

	"github.com/bizbooks/bizbooks_backend/internal/apperrors"
	"github.com/bizbooks/bizbooks_backend/internal/core/domain"
	"github.com/shopspring/decimal"
)

// Tolerance is the two-decimal accounting precision: debit and credit totals that
// differ by less than this are considered equal.
var Tolerance = decimal.RequireFromString("0.01")

// CalculateSignedAmount applies the correct sign to a line amount based on account
// type and line side. Used in both services and repositories to keep the
// accounting convention in one place.
//
// DEBIT to ASSET/EXPENSE/COGS -> positive; CREDIT -> negative.
// CREDIT to LIABILITY/EQUITY/INCOME -> positive; DEBIT -> negative.
func CalculateSignedAmount(line domain.JournalLine, accountType domain.AccountType) (decimal.Decimal, error) {
	if !accountType.Valid() {
		return decimal.Zero, fmt.Errorf("unknown account type %q for account %s", accountType, line.AccountID)
	}
	return line.SignedAmount(accountType), nil
}

// ValidateEntryBalance checks the double-entry invariant for a set of lines:
// at least two lines, every amount strictly positive, and total debits equal to
// total credits within Tolerance. The balance failure wraps ErrUnbalancedEntry so
// callers can match it with errors.Is.
func ValidateEntryBalance(lines []domain.JournalLine) error {
	if len(lines) < 2 {
		return fmt.Errorf("%w: journal entry must have at least two lines", apperrors.ErrValidation)
	}

	debits := decimal.Zero
	credits := decimal.Zero
	for _, line := range lines {
		if line.Amount.LessThanOrEqual(decimal.Zero) {
			return fmt.Errorf("%w: line amount must be positive for account %s", apperrors.ErrValidation, line.AccountID)
		}
		switch line.LineType {
		case domain.Debit:
			debits = debits.Add(line.Amount)
		case domain.Credit:
			credits = credits.Add(line.Amount)
		default:
			return fmt.Errorf("%w: line type must be DEBIT or CREDIT, got %q", apperrors.ErrValidation, line.LineType)
		}
	}

	if debits.Sub(credits).Abs().GreaterThanOrEqual(Tolerance) {
		return fmt.Errorf("%w: debits sum to %s, credits sum to %s",
			apperrors.ErrUnbalancedEntry, debits.StringFixed(2), credits.StringFixed(2))
	}
	return nil
}

// NetChangeByAccount folds a line set into per-account normal-balance-signed deltas.
func NetChangeByAccount(lines []domain.JournalLine, accountTypes map[string]domain.AccountType) (map[string]decimal.Decimal, error) {
	changes := make(map[string]decimal.Decimal, len(lines))
	for _, line := range lines {
		accountType, ok := accountTypes[line.AccountID]
		if !ok {
			return nil, fmt.Errorf("account type not found for account %s", line.AccountID)
		}
		signed, err := CalculateSignedAmount(line, accountType)
		if err != nil {
			return nil, err
		}
		changes[line.AccountID] = changes[line.AccountID].Add(signed)
	}
	return changes, nil
}
