package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/quizforge/quizforge-backend/internal/content"
	"github.com/quizforge/quizforge-backend/internal/generation"
	"github.com/quizforge/quizforge-backend/internal/llm"
	"github.com/quizforge/quizforge-backend/internal/middleware"
	"github.com/quizforge/quizforge-backend/internal/model"
	"github.com/quizforge/quizforge-backend/internal/response"
	"github.com/quizforge/quizforge-backend/internal/service"
	"github.com/quizforge/quizforge-backend/internal/validator"
)

// QuizHandler handles quiz endpoints.
type QuizHandler struct {
	quizService *service.QuizService
}

// NewQuizHandler creates a new QuizHandler.
func NewQuizHandler(quizService *service.QuizService) *QuizHandler {
	return &QuizHandler{quizService: quizService}
}

// Create godoc
// POST /api/v1/quizzes
// Generates a quiz from the requested source.
func (h *QuizHandler) Create(c *gin.Context) {
	claims := middleware.GetClaims(c)
	if claims == nil {
		response.Fail(c, http.StatusUnauthorized, response.ErrTokenRequired)
		return
	}

	var req model.CreateQuizRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	quiz, err := h.quizService.Create(c.Request.Context(), claims.Subject, req)
	if err != nil {
		failGeneration(c, err)
		return
	}

	response.Success(c, http.StatusCreated, gin.H{"quiz": quiz})
}

// List godoc
// GET /api/v1/quizzes?page=&per_page=
// Lists the user's quizzes, newest first.
func (h *QuizHandler) List(c *gin.Context) {
	claims := middleware.GetClaims(c)
	if claims == nil {
		response.Fail(c, http.StatusUnauthorized, response.ErrTokenRequired)
		return
	}

	page, perPage := pagination(c)
	quizzes, total, err := h.quizService.List(c.Request.Context(), claims.Subject, perPage, (page-1)*perPage)
	if err != nil {
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}

	response.SuccessWithPagination(c, http.StatusOK, gin.H{"quizzes": quizzes}, paginationMeta(page, perPage, total))
}

// Get godoc
// GET /api/v1/quizzes/:id
// Returns one quiz with its full question set, answer key included.
func (h *QuizHandler) Get(c *gin.Context) {
	claims := middleware.GetClaims(c)
	if claims == nil {
		response.Fail(c, http.StatusUnauthorized, response.ErrTokenRequired)
		return
	}

	quiz, err := h.quizService.Get(c.Request.Context(), c.Param("id"), claims.Subject)
	if err != nil {
		failOwnership(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"quiz": quiz})
}

// GetForAttempt godoc
// GET /api/v1/quizzes/:id/attempt
// Returns the sanitized, shuffled quiz for taking.
func (h *QuizHandler) GetForAttempt(c *gin.Context) {
	claims := middleware.GetClaims(c)
	if claims == nil {
		response.Fail(c, http.StatusUnauthorized, response.ErrTokenRequired)
		return
	}

	view, err := h.quizService.GetForAttempt(c.Request.Context(), c.Param("id"), claims.Subject)
	if err != nil {
		failOwnership(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"quiz": view})
}

// Delete godoc
// DELETE /api/v1/quizzes/:id
// Removes a quiz owned by the user.
func (h *QuizHandler) Delete(c *gin.Context) {
	claims := middleware.GetClaims(c)
	if claims == nil {
		response.Fail(c, http.StatusUnauthorized, response.ErrTokenRequired)
		return
	}

	if err := h.quizService.Delete(c.Request.Context(), c.Param("id"), claims.Subject); err != nil {
		failOwnership(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{})
}

// failOwnership maps lookup errors for owned resources.
func failOwnership(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrNotOwner):
		response.Fail(c, http.StatusForbidden, response.ErrForbidden)
	case errors.Is(err, service.ErrQuizNotFound),
		errors.Is(err, service.ErrAttemptNotFound),
		errors.Is(err, service.ErrSummaryNotFound):
		response.Fail(c, http.StatusNotFound, response.ErrNotFound)
	default:
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
	}
}

// failGeneration maps content and model failures during generation.
func failGeneration(c *gin.Context, err error) {
	var (
		emptyContent *content.EmptyContentError
		fetchErr     *content.FetchError
		rateLimit    *llm.RateLimitError
		timeout      *llm.TimeoutError
		unavailable  *llm.UnavailableError
		emptyOutput  *llm.EmptyResponseError
		malformed    *generation.MalformedOutputError
		badIDs       *generation.IDAssignmentError
	)
	switch {
	case errors.Is(err, service.ErrMissingContent):
		response.Fail(c, http.StatusBadRequest, response.ErrMissingContent)
	case errors.Is(err, service.ErrNoMistakes):
		response.Fail(c, http.StatusNotFound, response.ErrNoMistakes)
	case errors.Is(err, service.ErrIncompleteMistakeData):
		response.Fail(c, http.StatusUnprocessableEntity, response.ErrMistakeDataBroken)
	case errors.As(err, &emptyContent), errors.As(err, &fetchErr):
		response.Fail(c, http.StatusBadGateway, response.ErrContentUnavailable)
	case errors.As(err, &rateLimit):
		response.Fail(c, http.StatusTooManyRequests, response.ErrProviderRateLimit)
	case errors.As(err, &timeout):
		response.Fail(c, http.StatusGatewayTimeout, response.ErrProviderTimeout)
	case errors.As(err, &unavailable):
		response.Fail(c, http.StatusBadGateway, response.ErrProviderUnavailable)
	case errors.As(err, &emptyOutput), errors.As(err, &malformed), errors.As(err, &badIDs):
		response.Fail(c, http.StatusBadGateway, response.ErrGenerationFailed)
	default:
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
	}
}

// pagination reads page/per_page query params with sane bounds.
func pagination(c *gin.Context) (page, perPage int) {
	page, _ = strconv.Atoi(c.DefaultQuery("page", "1"))
	perPage, _ = strconv.Atoi(c.DefaultQuery("per_page", "20"))
	if page < 1 {
		page = 1
	}
	if perPage < 1 || perPage > 100 {
		perPage = 20
	}
	return page, perPage
}

func paginationMeta(page, perPage, total int) *response.Pagination {
	totalPages := total / perPage
	if total%perPage > 0 {
		totalPages++
	}
	return &response.Pagination{
		Page:       page,
		PerPage:    perPage,
		TotalItems: total,
		TotalPages: totalPages,
	}
}
