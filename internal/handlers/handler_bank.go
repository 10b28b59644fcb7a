package handlers

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	portssvc "github.com/bizbooks/bizbooks_backend/internal/core/ports/services"
	"github.com/bizbooks/bizbooks_backend/internal/dto"
	"github.com/bizbooks/bizbooks_backend/internal/middleware"
)

// bankHandler handles HTTP requests for bank accounts, statements and
// reconciliation.
type bankHandler struct {
	bankService portssvc.BankSvcFacade
}

func newBankHandler(bs portssvc.BankSvcFacade) *bankHandler {
	return &bankHandler{bankService: bs}
}

// registerBankRoutes registers routes related to bank reconciliation.
func registerBankRoutes(rg *gin.RouterGroup, bankService portssvc.BankSvcFacade) {
	h := newBankHandler(bankService)

	banks := rg.Group("/bank-accounts")
	{
		banks.POST("", h.createBankAccount)
		banks.GET("", h.listBankAccounts)
		banks.GET("/:id/balance", h.getBalance)
		banks.GET("/:id/unreconciled", h.getUnreconciledTransactions)
		banks.POST("/reconcile", h.reconcile)
	}

	statements := rg.Group("/bank-statements")
	{
		statements.POST("", h.importStatement)
		statements.GET("/:id", h.getStatement)
	}

	matches := rg.Group("/reconciliation-matches")
	{
		matches.POST("", h.matchLine)
		matches.DELETE("/:id", h.unmatchLine)
	}
}

func (h *bankHandler) createBankAccount(c *gin.Context) {
	var req dto.CreateBankAccountRequest
	if !bindJSON(c, &req) {
		return
	}
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	account, err := h.bankService.CreateBankAccount(c.Request.Context(), req, userID)
	if err != nil {
		respondError(c, err, "create bank account")
		return
	}
	c.JSON(http.StatusCreated, dto.ToBankAccountResponse(account))
}

func (h *bankHandler) listBankAccounts(c *gin.Context) {
	accounts, err := h.bankService.ListBankAccounts(c.Request.Context())
	if err != nil {
		respondError(c, err, "list bank accounts")
		return
	}
	c.JSON(http.StatusOK, gin.H{"bankAccounts": dto.ToBankAccountResponses(accounts)})
}

func (h *bankHandler) getBalance(c *gin.Context) {
	var req dto.AsOfReportRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid query parameters: " + err.Error()})
		return
	}

	balance, err := h.bankService.GetBalance(c.Request.Context(), c.Param("id"), req.AsOf)
	if err != nil {
		respondError(c, err, "get bank balance")
		return
	}
	c.JSON(http.StatusOK, gin.H{"bankAccountID": c.Param("id"), "asOf": req.AsOf, "balance": balance})
}

func (h *bankHandler) getUnreconciledTransactions(c *gin.Context) {
	lines, bookBalance, err := h.bankService.GetUnreconciledTransactions(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err, "list unreconciled transactions")
		return
	}
	c.JSON(http.StatusOK, gin.H{"bookBalance": bookBalance, "lines": lines})
}

func (h *bankHandler) importStatement(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.ImportStatementRequest
	if !bindJSON(c, &req) {
		return
	}
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	statement, err := h.bankService.ImportStatement(c.Request.Context(), req, userID)
	if err != nil {
		respondError(c, err, "import statement")
		return
	}

	logger.Info("Statement imported", slog.String("statement_id", statement.StatementID))
	c.JSON(http.StatusCreated, dto.ToStatementResponse(statement, nil))
}

func (h *bankHandler) getStatement(c *gin.Context) {
	statement, lines, err := h.bankService.GetStatementByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err, "get statement")
		return
	}
	c.JSON(http.StatusOK, dto.ToStatementResponse(statement, lines))
}

func (h *bankHandler) matchLine(c *gin.Context) {
	var req dto.MatchLineRequest
	if !bindJSON(c, &req) {
		return
	}
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	match, err := h.bankService.MatchLine(c.Request.Context(), req, userID)
	if err != nil {
		respondError(c, err, "match line")
		return
	}
	c.JSON(http.StatusCreated, gin.H{"matchID": match.MatchID})
}

func (h *bankHandler) unmatchLine(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}
	if err := h.bankService.UnmatchLine(c.Request.Context(), c.Param("id"), userID); err != nil {
		respondError(c, err, "unmatch line")
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *bankHandler) reconcile(c *gin.Context) {
	var req dto.ReconcileRequest
	if !bindJSON(c, &req) {
		return
	}
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	result, err := h.bankService.Reconcile(c.Request.Context(), req, userID)
	if err != nil {
		respondError(c, err, "reconcile bank account")
		return
	}
	c.JSON(http.StatusOK, dto.ToReconciliationResponse(result))
}
