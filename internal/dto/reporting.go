package dto

import (
	"time"

	"github.com/bizbooks/bizbooks_backend/internal/core/domain"
)

// PeriodReportRequest carries the date range for period reports (trial balance,
// profit and loss).
type PeriodReportRequest struct {
	FromDate time.Time `form:"fromDate" binding:"required" time_format:"2006-01-02"`
	ToDate   time.Time `form:"toDate" binding:"required" time_format:"2006-01-02"`
}

// AsOfReportRequest carries the cut-off date for point-in-time reports
// (balance sheet, aging).
type AsOfReportRequest struct {
	AsOf time.Time `form:"asOf" binding:"required" time_format:"2006-01-02"`
}

// AgingReportRequest carries the cut-off date and invoice kind for an aging report.
type AgingReportRequest struct {
	AsOf time.Time          `form:"asOf" binding:"required" time_format:"2006-01-02"`
	Kind domain.InvoiceKind `form:"kind" binding:"required,oneof=SALES PURCHASE"`
}
