package controller

import (
	"code-assistant-be/internal/dto"
	"code-assistant-be/internal/pkg/serverutils"
	"code-assistant-be/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type IAssistantController interface {
	RegisterRoutes(r fiber.Router)
	Search(ctx *fiber.Ctx) error
	Explain(ctx *fiber.Ctx) error
	Chat(ctx *fiber.Ctx) error
	History(ctx *fiber.Ctx) error
	Reload(ctx *fiber.Ctx) error
}

type assistantController struct {
	service   service.IAssistantService
	indexer   service.IIndexerService
	jwtSecret string // empty means the API is open
}

func NewAssistantController(svc service.IAssistantService, indexer service.IIndexerService, jwtSecret string) IAssistantController {
	return &assistantController{
		service:   svc,
		indexer:   indexer,
		jwtSecret: jwtSecret,
	}
}

func (c *assistantController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/assistant/v1")
	if c.jwtSecret != "" {
		h.Use(serverutils.JwtMiddleware(c.jwtSecret))
	}
	h.Post("search", c.Search)
	h.Post("explain", c.Explain)
	h.Post("chat", c.Chat)
	h.Get("session/:id/history", c.History)
	h.Post("reload", c.Reload)
}

// sessionID returns the client's session id, minting one for a first turn.
func sessionID(given string) string {
	if given != "" {
		return given
	}
	return uuid.NewString()
}

func (c *assistantController) Search(ctx *fiber.Ctx) error {
	var req dto.SearchRequest
	if err := ctx.BodyParser(&req); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(serverutils.ErrorResponse(400, "Invalid request body"))
	}
	if err := serverutils.ValidateRequest(req); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(serverutils.ErrorResponse(400, err.Error()))
	}

	res, err := c.service.CodeSearch(ctx.Context(), sessionID(req.SessionId), req.UserInput, req.TopK)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Search results", res))
}

func (c *assistantController) Explain(ctx *fiber.Ctx) error {
	var req dto.ExplainRequest
	if err := ctx.BodyParser(&req); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(serverutils.ErrorResponse(400, "Invalid request body"))
	}
	if err := serverutils.ValidateRequest(req); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(serverutils.ErrorResponse(400, err.Error()))
	}

	res, err := c.service.ExplainFunction(ctx.Context(), sessionID(req.SessionId), req.UserInput)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Function explanation", res))
}

func (c *assistantController) Chat(ctx *fiber.Ctx) error {
	var req dto.ChatRequest
	if err := ctx.BodyParser(&req); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(serverutils.ErrorResponse(400, "Invalid request body"))
	}
	if err := serverutils.ValidateRequest(req); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(serverutils.ErrorResponse(400, err.Error()))
	}

	res, err := c.service.Chat(ctx.Context(), sessionID(req.SessionId), req.UserInput)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Assistant reply", res))
}

func (c *assistantController) History(ctx *fiber.Ctx) error {
	id := ctx.Params("id")

	res, err := c.service.GetHistory(id)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Session history", res))
}

func (c *assistantController) Reload(ctx *fiber.Ctx) error {
	if err := c.indexer.RequestReload(ctx.Context(), "admin endpoint"); err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse[any]("Reload requested", nil))
}
