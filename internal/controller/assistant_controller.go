package controller

import (
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/yamanekazuki/hr-qa-assistant/internal/dto"
	"github.com/yamanekazuki/hr-qa-assistant/internal/pkg/serverutils"
	"github.com/yamanekazuki/hr-qa-assistant/internal/service"
)

type IAssistantController interface {
	Ask(ctx *fiber.Ctx) error
	SessionState(ctx *fiber.Ctx) error
	SetGranularity(ctx *fiber.Ctx) error
	SetQueryText(ctx *fiber.Ctx) error
	FAQ(ctx *fiber.Ctx) error
	MatchFAQ(ctx *fiber.Ctx) error
}

type assistantController struct {
	assistantService service.IAssistantService
}

func NewAssistantController(assistantService service.IAssistantService) IAssistantController {
	return &assistantController{assistantService: assistantService}
}

func (c *assistantController) Ask(ctx *fiber.Ctx) error {
	userID, err := currentUserID(ctx)
	if err != nil {
		return err
	}

	var req dto.AskRequest
	if err := ctx.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}
	if err := serverutils.ValidateRequest(&req); err != nil {
		return err
	}

	state, err := c.assistantService.Ask(ctx.Context(), userID, &req)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Query processed", state))
}

func (c *assistantController) SessionState(ctx *fiber.Ctx) error {
	userID, err := currentUserID(ctx)
	if err != nil {
		return err
	}
	state := c.assistantService.SessionState(userID)
	return ctx.JSON(serverutils.SuccessResponse("Session state", state))
}

func (c *assistantController) SetGranularity(ctx *fiber.Ctx) error {
	userID, err := currentUserID(ctx)
	if err != nil {
		return err
	}

	var req dto.SetGranularityRequest
	if err := ctx.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}
	if err := serverutils.ValidateRequest(&req); err != nil {
		return err
	}

	state := c.assistantService.SetGranularity(userID, &req)
	return ctx.JSON(serverutils.SuccessResponse("Granularity updated", state))
}

func (c *assistantController) SetQueryText(ctx *fiber.Ctx) error {
	userID, err := currentUserID(ctx)
	if err != nil {
		return err
	}

	var req dto.SetQueryTextRequest
	if err := ctx.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}

	state := c.assistantService.SetQueryText(userID, &req)
	return ctx.JSON(serverutils.SuccessResponse("Query text updated", state))
}

func (c *assistantController) FAQ(ctx *fiber.Ctx) error {
	limit, _ := strconv.Atoi(ctx.Query("limit", "8"))
	items := c.assistantService.FAQ(limit)
	return ctx.JSON(serverutils.SuccessResponse("FAQ items", items))
}

func (c *assistantController) MatchFAQ(ctx *fiber.Ctx) error {
	query := strings.TrimSpace(ctx.Query("q"))
	if query == "" {
		return fiber.NewError(fiber.StatusBadRequest, "query parameter 'q' is required")
	}
	match := c.assistantService.MatchFAQ(query)
	return ctx.JSON(serverutils.SuccessResponse("FAQ match", match))
}

func currentUserID(ctx *fiber.Ctx) (uuid.UUID, error) {
	raw, _ := ctx.Locals("user_id").(string)
	userID, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, fiber.NewError(fiber.StatusUnauthorized, "invalid user identity")
	}
	return userID, nil
}
