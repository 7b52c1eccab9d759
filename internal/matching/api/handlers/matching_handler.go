package handlers

import (
	"errors"
	"net/http"

	"maestro_marketplace/internal/matching/app"
	"maestro_marketplace/internal/matching/domain"
	"maestro_marketplace/internal/matching/repository"
	"maestro_marketplace/pkg/logger"
	"maestro_marketplace/pkg/middlewares"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// MatchingHandler search and task REST handlers
type MatchingHandler struct {
	SearchUC *app.SearchUseCase
	TaskUC   *app.TaskUseCase
}

// NewMatchingHandler create matching handler
func NewMatchingHandler(searchUC *app.SearchUseCase, taskUC *app.TaskUseCase) *MatchingHandler {
	return &MatchingHandler{
		SearchUC: searchUC,
		TaskUC:   taskUC,
	}
}

type searchRequest struct {
	Category string             `json:"category"`
	Tags     []string           `json:"tags"`
	Location string             `json:"location"`
	Keyword  string             `json:"keyword"`
	Analyze  bool               `json:"analyze"`
	Analysis *domain.AIAnalysis `json:"analysis"`
}

func (r searchRequest) criteria(searchUC *app.SearchUseCase) domain.Criteria {
	criteria := domain.Criteria{
		Category:   domain.ServiceCategory(r.Category),
		Tags:       r.Tags,
		Location:   r.Location,
		Keyword:    r.Keyword,
		AIAnalysis: r.Analysis,
	}
	// enrichment on demand; its failure silently leaves the plain fields
	if r.Analyze && r.Analysis == nil && r.Keyword != "" {
		analysis := searchUC.Analyze(r.Keyword)
		criteria.AIAnalysis = &analysis
	}
	return criteria
}

// SearchSpecialists godoc
// @Summary Rank specialists against a search query
// @Tags matching
// @Accept json
// @Produce json
// @Success 200 {array} domain.Specialist
// @Failure 500 {object} string "Internal Server Error"
// @Router /search/specialists [post]
func (h *MatchingHandler) SearchSpecialists(c *fiber.Ctx) error {
	var req searchRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(http.StatusBadRequest).JSON(fiber.Map{"error": "bad request"})
	}

	result, err := h.SearchUC.SearchSpecialists(c.Context(), req.criteria(h.SearchUC))
	if err != nil {
		logger.Log.Error("specialist search failed", zap.Error(err))
		return c.Status(http.StatusInternalServerError).JSON(fiber.Map{"error": "search unavailable"})
	}
	return c.JSON(result)
}

// SearchTasks godoc
// @Summary Rank open tasks against a search query
// @Tags matching
// @Accept json
// @Produce json
// @Success 200 {array} domain.Task
// @Failure 500 {object} string "Internal Server Error"
// @Router /search/tasks [post]
func (h *MatchingHandler) SearchTasks(c *fiber.Ctx) error {
	var req searchRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(http.StatusBadRequest).JSON(fiber.Map{"error": "bad request"})
	}

	result, err := h.SearchUC.SearchTasks(c.Context(), req.criteria(h.SearchUC))
	if err != nil {
		logger.Log.Error("task search failed", zap.Error(err))
		return c.Status(http.StatusInternalServerError).JSON(fiber.Map{"error": "search unavailable"})
	}
	return c.JSON(result)
}

// Analyze godoc
// @Summary Structure a free-text request
// @Tags matching
// @Accept json
// @Produce json
// @Success 200 {object} domain.AIAnalysis
// @Router /analyze [post]
func (h *MatchingHandler) Analyze(c *fiber.Ctx) error {
	var req struct {
		Query string `json:"query"`
	}
	if err := c.BodyParser(&req); err != nil || req.Query == "" {
		return c.Status(http.StatusBadRequest).JSON(fiber.Map{"error": "bad request"})
	}
	return c.JSON(h.SearchUC.Analyze(req.Query))
}

// CreateTask godoc
// @Summary Post a new task
// @Tags tasks
// @Accept json
// @Produce json
// @Success 200 {object} domain.Task
// @Failure 400 {object} string "Bad Request"
// @Router /tasks [post]
func (h *MatchingHandler) CreateTask(c *fiber.Ctx) error {
	var task domain.Task
	if err := c.BodyParser(&task); err != nil {
		return c.Status(http.StatusBadRequest).JSON(fiber.Map{"error": "bad request"})
	}
	task.ClientID, _ = c.Locals(middlewares.TokenMemberID).(string)

	if err := h.TaskUC.CreateTask(c.Context(), &task); err != nil {
		return c.Status(http.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}
	return c.JSON(task)
}

// ListOpenTasks godoc
// @Summary Open tasks, newest first
// @Tags tasks
// @Produce json
// @Success 200 {array} domain.Task
// @Router /tasks [get]
func (h *MatchingHandler) ListOpenTasks(c *fiber.Ctx) error {
	tasks, err := h.TaskUC.ListOpenTasks(c.Context())
	if err != nil {
		logger.Log.Error("task listing failed", zap.Error(err))
		return c.Status(http.StatusInternalServerError).JSON(fiber.Map{"error": "tasks unavailable"})
	}
	return c.JSON(tasks)
}

type respondRequest struct {
	Message string `json:"message"`
	Price   int64  `json:"price"`
}

// RespondToTask godoc
// @Summary File a bid on an open task
// @Tags tasks
// @Accept json
// @Produce json
// @Param id path string true "task id"
// @Success 200 {object} domain.TaskResponse
// @Failure 402 {object} string "Insufficient funds"
// @Router /tasks/{id}/responses [post]
func (h *MatchingHandler) RespondToTask(c *fiber.Ctx) error {
	var req respondRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(http.StatusBadRequest).JSON(fiber.Map{"error": "bad request"})
	}
	specialistID, _ := c.Locals(middlewares.TokenMemberID).(string)

	response, err := h.TaskUC.RespondToTask(c.Context(), c.Params("id"), specialistID, req.Message, req.Price)
	if err != nil {
		if errors.Is(err, repository.ErrInsufficientFunds) {
			return c.Status(http.StatusPaymentRequired).JSON(fiber.Map{"error": "INSUFFICIENT_FUNDS"})
		}
		return c.Status(http.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}
	return c.JSON(response)
}

// ListResponses godoc
// @Summary All bids on a task
// @Tags tasks
// @Produce json
// @Param id path string true "task id"
// @Success 200 {array} domain.TaskResponse
// @Router /tasks/{id}/responses [get]
func (h *MatchingHandler) ListResponses(c *fiber.Ctx) error {
	responses, err := h.TaskUC.ListResponses(c.Context(), c.Params("id"))
	if err != nil {
		logger.Log.Error("response listing failed", zap.Error(err))
		return c.Status(http.StatusInternalServerError).JSON(fiber.Map{"error": "responses unavailable"})
	}
	return c.JSON(responses)
}

// AssignSpecialist godoc
// @Summary Accept a specialist's bid
// @Tags tasks
// @Accept json
// @Produce json
// @Param id path string true "task id"
// @Success 200 {object} map[string]interface{}
// @Router /tasks/{id}/assign [post]
func (h *MatchingHandler) AssignSpecialist(c *fiber.Ctx) error {
	var req struct {
		SpecialistID string `json:"specialist_id"`
	}
	if err := c.BodyParser(&req); err != nil || req.SpecialistID == "" {
		return c.Status(http.StatusBadRequest).JSON(fiber.Map{"error": "bad request"})
	}

	if err := h.TaskUC.AssignSpecialist(c.Context(), c.Params("id"), req.SpecialistID); err != nil {
		return c.Status(http.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}
	return c.JSON(fiber.Map{"assigned": req.SpecialistID})
}
