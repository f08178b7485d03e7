package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/quizforge/quizforge-backend/internal/middleware"
	"github.com/quizforge/quizforge-backend/internal/model"
	"github.com/quizforge/quizforge-backend/internal/response"
	"github.com/quizforge/quizforge-backend/internal/service"
	"github.com/quizforge/quizforge-backend/internal/validator"
)

// SummaryHandler handles summary endpoints.
type SummaryHandler struct {
	summaryService *service.SummaryService
}

// NewSummaryHandler creates a new SummaryHandler.
func NewSummaryHandler(summaryService *service.SummaryService) *SummaryHandler {
	return &SummaryHandler{summaryService: summaryService}
}

// Create godoc
// POST /api/v1/summaries
// Generates a summary from the requested source.
func (h *SummaryHandler) Create(c *gin.Context) {
	claims := middleware.GetClaims(c)
	if claims == nil {
		response.Fail(c, http.StatusUnauthorized, response.ErrTokenRequired)
		return
	}

	var req model.CreateSummaryRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	summary, err := h.summaryService.Create(c.Request.Context(), claims.Subject, req)
	if err != nil {
		failGeneration(c, err)
		return
	}

	response.Success(c, http.StatusCreated, gin.H{"summary": summary})
}

// List godoc
// GET /api/v1/summaries?page=&per_page=
// Lists the user's summaries, newest first.
func (h *SummaryHandler) List(c *gin.Context) {
	claims := middleware.GetClaims(c)
	if claims == nil {
		response.Fail(c, http.StatusUnauthorized, response.ErrTokenRequired)
		return
	}

	page, perPage := pagination(c)
	summaries, total, err := h.summaryService.List(c.Request.Context(), claims.Subject, perPage, (page-1)*perPage)
	if err != nil {
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}

	response.SuccessWithPagination(c, http.StatusOK, gin.H{"summaries": summaries}, paginationMeta(page, perPage, total))
}

// Get godoc
// GET /api/v1/summaries/:id
// Returns one summary with its body and related questions.
func (h *SummaryHandler) Get(c *gin.Context) {
	claims := middleware.GetClaims(c)
	if claims == nil {
		response.Fail(c, http.StatusUnauthorized, response.ErrTokenRequired)
		return
	}

	summary, err := h.summaryService.Get(c.Request.Context(), c.Param("id"), claims.Subject)
	if err != nil {
		failOwnership(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"summary": summary})
}

// Delete godoc
// DELETE /api/v1/summaries/:id
// Removes a summary owned by the user.
func (h *SummaryHandler) Delete(c *gin.Context) {
	claims := middleware.GetClaims(c)
	if claims == nil {
		response.Fail(c, http.StatusUnauthorized, response.ErrTokenRequired)
		return
	}

	if err := h.summaryService.Delete(c.Request.Context(), c.Param("id"), claims.Subject); err != nil {
		failOwnership(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{})
}
