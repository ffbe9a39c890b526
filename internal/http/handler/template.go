package handler

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"rangeapi/internal/http/middleware"
	"rangeapi/internal/model"
	"rangeapi/internal/service"
)

// TemplateHandler serves the four template collections. Bodies may arrive as
// YAML; the YAMLBody middleware rewrites them to JSON before parsing.
type TemplateHandler struct {
	svc service.TemplateService
}

// NewTemplateHandler constructs a TemplateHandler.
func NewTemplateHandler(svc service.TemplateService) *TemplateHandler {
	return &TemplateHandler{svc: svc}
}

// templateError translates service errors into the response envelope.
func templateError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, service.ErrInvalidID):
		return writeError(c, fiber.StatusBadRequest, "INVALID_ID", "id is not a valid uuid4")
	case errors.Is(err, service.ErrTemplateNotFound):
		return writeError(c, fiber.StatusNotFound, "NOT_FOUND", "template not found")
	case errors.Is(err, service.ErrValidation):
		return writeError(c, fiber.StatusUnprocessableEntity, "UNPROCESSABLE_ENTITY", err.Error())
	default:
		return writeError(c, fiber.StatusInternalServerError, "INTERNAL_ERROR", "internal server error")
	}
}

// standaloneOnly reads the listing filter, defaulting to true.
func standaloneOnly(c *fiber.Ctx) bool {
	return c.Query("standalone_only", "true") != "false"
}

// --- range templates ---

// CreateRangeTemplate uploads a range template.
//
//	@Summary	Upload a range template
//	@Tags		templates
//	@Accept		json
//	@Produce	json
//	@Success	201	{object}	model.RangeTemplate
//	@Router		/api/v1/templates/ranges [post]
func (h *TemplateHandler) CreateRangeTemplate(c *fiber.Ctx) error {
	var tpl model.RangeTemplate
	if err := c.BodyParser(&tpl); err != nil {
		return writeError(c, fiber.StatusBadRequest, "BAD_REQUEST", "invalid request body")
	}
	stored, err := h.svc.CreateRangeTemplate(c.UserContext(), middleware.CurrentUser(c), &tpl)
	if err != nil {
		return templateError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(stored)
}

// ListRangeTemplates lists range template headers owned by the caller.
//
//	@Summary	List range templates
//	@Tags		templates
//	@Produce	json
//	@Param		standalone_only	query	bool	false	"only templates not embedded in a parent"
//	@Success	200	{array}	model.TemplateHeader
//	@Failure	404
//	@Router		/api/v1/templates/ranges [get]
func (h *TemplateHandler) ListRangeTemplates(c *fiber.Ctx) error {
	headers, err := h.svc.ListRangeTemplates(c.UserContext(), middleware.CurrentUser(c), standaloneOnly(c))
	if err != nil {
		return templateError(c, err)
	}
	return c.JSON(headers)
}

// GetRangeTemplate fetches one range template.
//
//	@Summary	Get a range template
//	@Tags		templates
//	@Produce	json
//	@Param		id	path	string	true	"template id (uuid4)"
//	@Success	200	{object}	model.RangeTemplate
//	@Router		/api/v1/templates/ranges/{id} [get]
func (h *TemplateHandler) GetRangeTemplate(c *fiber.Ctx) error {
	tpl, err := h.svc.GetRangeTemplate(c.UserContext(), middleware.CurrentUser(c), c.Params("id"))
	if err != nil {
		return templateError(c, err)
	}
	return c.JSON(tpl)
}

// DeleteRangeTemplate removes a range template.
//
//	@Summary	Delete a range template
//	@Tags		templates
//	@Param		id	path	string	true	"template id (uuid4)"
//	@Success	204
//	@Router		/api/v1/templates/ranges/{id} [delete]
func (h *TemplateHandler) DeleteRangeTemplate(c *fiber.Ctx) error {
	if err := h.svc.DeleteRangeTemplate(c.UserContext(), middleware.CurrentUser(c), c.Params("id")); err != nil {
		return templateError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// --- vpc templates ---

func (h *TemplateHandler) CreateVPCTemplate(c *fiber.Ctx) error {
	var tpl model.VPCTemplate
	if err := c.BodyParser(&tpl); err != nil {
		return writeError(c, fiber.StatusBadRequest, "BAD_REQUEST", "invalid request body")
	}
	stored, err := h.svc.CreateVPCTemplate(c.UserContext(), middleware.CurrentUser(c), &tpl)
	if err != nil {
		return templateError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(stored)
}

func (h *TemplateHandler) ListVPCTemplates(c *fiber.Ctx) error {
	headers, err := h.svc.ListVPCTemplates(c.UserContext(), middleware.CurrentUser(c), standaloneOnly(c))
	if err != nil {
		return templateError(c, err)
	}
	return c.JSON(headers)
}

func (h *TemplateHandler) GetVPCTemplate(c *fiber.Ctx) error {
	tpl, err := h.svc.GetVPCTemplate(c.UserContext(), middleware.CurrentUser(c), c.Params("id"))
	if err != nil {
		return templateError(c, err)
	}
	return c.JSON(tpl)
}

func (h *TemplateHandler) DeleteVPCTemplate(c *fiber.Ctx) error {
	if err := h.svc.DeleteVPCTemplate(c.UserContext(), middleware.CurrentUser(c), c.Params("id")); err != nil {
		return templateError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// --- subnet templates ---

func (h *TemplateHandler) CreateSubnetTemplate(c *fiber.Ctx) error {
	var tpl model.SubnetTemplate
	if err := c.BodyParser(&tpl); err != nil {
		return writeError(c, fiber.StatusBadRequest, "BAD_REQUEST", "invalid request body")
	}
	stored, err := h.svc.CreateSubnetTemplate(c.UserContext(), middleware.CurrentUser(c), &tpl)
	if err != nil {
		return templateError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(stored)
}

func (h *TemplateHandler) ListSubnetTemplates(c *fiber.Ctx) error {
	headers, err := h.svc.ListSubnetTemplates(c.UserContext(), middleware.CurrentUser(c), standaloneOnly(c))
	if err != nil {
		return templateError(c, err)
	}
	return c.JSON(headers)
}

func (h *TemplateHandler) GetSubnetTemplate(c *fiber.Ctx) error {
	tpl, err := h.svc.GetSubnetTemplate(c.UserContext(), middleware.CurrentUser(c), c.Params("id"))
	if err != nil {
		return templateError(c, err)
	}
	return c.JSON(tpl)
}

func (h *TemplateHandler) DeleteSubnetTemplate(c *fiber.Ctx) error {
	if err := h.svc.DeleteSubnetTemplate(c.UserContext(), middleware.CurrentUser(c), c.Params("id")); err != nil {
		return templateError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// --- host templates ---

func (h *TemplateHandler) CreateHostTemplate(c *fiber.Ctx) error {
	var tpl model.HostTemplate
	if err := c.BodyParser(&tpl); err != nil {
		return writeError(c, fiber.StatusBadRequest, "BAD_REQUEST", "invalid request body")
	}
	stored, err := h.svc.CreateHostTemplate(c.UserContext(), middleware.CurrentUser(c), &tpl)
	if err != nil {
		return templateError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(stored)
}

func (h *TemplateHandler) ListHostTemplates(c *fiber.Ctx) error {
	headers, err := h.svc.ListHostTemplates(c.UserContext(), middleware.CurrentUser(c), standaloneOnly(c))
	if err != nil {
		return templateError(c, err)
	}
	return c.JSON(headers)
}

func (h *TemplateHandler) GetHostTemplate(c *fiber.Ctx) error {
	tpl, err := h.svc.GetHostTemplate(c.UserContext(), middleware.CurrentUser(c), c.Params("id"))
	if err != nil {
		return templateError(c, err)
	}
	return c.JSON(tpl)
}

func (h *TemplateHandler) DeleteHostTemplate(c *fiber.Ctx) error {
	if err := h.svc.DeleteHostTemplate(c.UserContext(), middleware.CurrentUser(c), c.Params("id")); err != nil {
		return templateError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
