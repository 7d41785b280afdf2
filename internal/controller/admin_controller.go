package controller

import (
	"strconv"

	"github.com/gofiber/fiber/v2"

	"github.com/yamanekazuki/hr-qa-assistant/internal/pkg/serverutils"
	"github.com/yamanekazuki/hr-qa-assistant/internal/service"
)

type IAdminController interface {
	History(ctx *fiber.Ctx) error
	Stats(ctx *fiber.Ctx) error
	Logs(ctx *fiber.Ctx) error
}

type adminController struct {
	adminService service.IAdminService
}

func NewAdminController(adminService service.IAdminService) IAdminController {
	return &adminController{adminService: adminService}
}

// AdminOnly guards the operator endpoints; it runs after JwtMiddleware has
// populated the role claim.
func AdminOnly(ctx *fiber.Ctx) error {
	if role, _ := ctx.Locals("role").(string); role != "admin" {
		return fiber.NewError(fiber.StatusForbidden, "administrator access required")
	}
	return ctx.Next()
}

func (c *adminController) History(ctx *fiber.Ctx) error {
	limit, _ := strconv.Atoi(ctx.Query("limit", "20"))
	offset, _ := strconv.Atoi(ctx.Query("offset", "0"))

	history, err := c.adminService.History(ctx.Context(), limit, offset)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Query history", history))
}

func (c *adminController) Stats(ctx *fiber.Ctx) error {
	stats, err := c.adminService.Stats(ctx.Context())
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Usage stats", stats))
}

func (c *adminController) Logs(ctx *fiber.Ctx) error {
	level := ctx.Query("level", "")
	limit, _ := strconv.Atoi(ctx.Query("limit", "100"))
	offset, _ := strconv.Atoi(ctx.Query("offset", "0"))

	logs, err := c.adminService.Logs(level, limit, offset)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Application logs", logs))
}
