package handlers

import (
	"log/slog"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	portssvc "github.com/bizbooks/bizbooks_backend/internal/core/ports/services"
	"github.com/bizbooks/bizbooks_backend/internal/dto"
	"github.com/bizbooks/bizbooks_backend/internal/middleware"
)

// journalHandler handles HTTP requests for the posting engine.
type journalHandler struct {
	postingService portssvc.PostingSvcFacade
}

func newJournalHandler(ps portssvc.PostingSvcFacade) *journalHandler {
	return &journalHandler{postingService: ps}
}

// registerJournalRoutes registers routes related to journal entries.
func registerJournalRoutes(rg *gin.RouterGroup, postingService portssvc.PostingSvcFacade) {
	h := newJournalHandler(postingService)

	entries := rg.Group("/journal-entries")
	{
		entries.POST("", h.postEntry)
		entries.GET("", h.listEntries)
		entries.GET("/:id", h.getEntry)
		entries.POST("/:id/reverse", h.reverseEntry)
		entries.POST("/:id/void", h.voidEntry)
	}

	accounts := rg.Group("/accounts")
	{
		accounts.GET("/:id/lines", h.listAccountLines)
	}
}

func (h *journalHandler) postEntry(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.CreateEntryRequest
	if !bindJSON(c, &req) {
		return
	}
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	entry, err := h.postingService.Post(c.Request.Context(), req, userID)
	if err != nil {
		respondError(c, err, "post journal entry")
		return
	}

	logger.Info("Journal entry posted", slog.String("entry_number", entry.EntryNumber))
	c.JSON(http.StatusCreated, dto.ToEntryResponse(entry))
}

func (h *journalHandler) listEntries(c *gin.Context) {
	var req dto.ListEntriesRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid query parameters: " + err.Error()})
		return
	}

	entries, nextToken, err := h.postingService.ListEntries(c.Request.Context(), req)
	if err != nil {
		respondError(c, err, "list journal entries")
		return
	}
	c.JSON(http.StatusOK, dto.ToListEntriesResponse(entries, nextToken))
}

func (h *journalHandler) getEntry(c *gin.Context) {
	entry, err := h.postingService.GetEntryByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err, "get journal entry")
		return
	}
	c.JSON(http.StatusOK, dto.ToEntryResponse(entry))
}

func (h *journalHandler) reverseEntry(c *gin.Context) {
	var req dto.ReverseEntryRequest
	if !bindJSON(c, &req) {
		return
	}
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	reversal, err := h.postingService.Reverse(c.Request.Context(), c.Param("id"), req.Reason, userID)
	if err != nil {
		respondError(c, err, "reverse journal entry")
		return
	}
	c.JSON(http.StatusCreated, dto.ToEntryResponse(reversal))
}

func (h *journalHandler) voidEntry(c *gin.Context) {
	var req dto.VoidEntryRequest
	if !bindJSON(c, &req) {
		return
	}
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	if err := h.postingService.Void(c.Request.Context(), c.Param("id"), req.Reason, userID); err != nil {
		respondError(c, err, "void journal entry")
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *journalHandler) listAccountLines(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "50"))
	var nextToken *string
	if token := c.Query("nextToken"); token != "" {
		nextToken = &token
	}

	lines, next, err := h.postingService.ListLinesByAccountID(c.Request.Context(), c.Param("id"), limit, nextToken)
	if err != nil {
		respondError(c, err, "list account lines")
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"lines":     dto.ToEntryLineResponses(lines),
		"nextToken": next,
	})
}
