package handler

import (
	"encoding/base64"
	"errors"
	"strconv"

	"github.com/gofiber/fiber/v2"

	"rangeapi/internal/http/middleware"
	"rangeapi/internal/model"
	"rangeapi/internal/service"
)

// RangeHandler serves deploy, destroy and read operations for ranges.
type RangeHandler struct {
	svc service.RangeService
}

// NewRangeHandler constructs a RangeHandler.
func NewRangeHandler(svc service.RangeService) *RangeHandler {
	return &RangeHandler{svc: svc}
}

type deployRequest struct {
	TemplateIDs []string `json:"template_ids"`
	Region      string   `json:"region"`
}

// masterKeyFromCtx decodes the enc_key cookie issued at login.
func masterKeyFromCtx(c *fiber.Ctx) ([]byte, error) {
	raw := c.Cookies(middleware.MasterKeyCookie)
	if raw == "" {
		return nil, errors.New("missing enc_key cookie")
	}
	return base64.StdEncoding.DecodeString(raw)
}

func rangeError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, service.ErrInvalidID):
		return writeError(c, fiber.StatusBadRequest, "INVALID_ID", "id is not a valid uuid4")
	case errors.Is(err, service.ErrInvalidRegion):
		return writeError(c, fiber.StatusUnprocessableEntity, "UNPROCESSABLE_ENTITY", "unsupported region")
	case errors.Is(err, service.ErrValidation):
		return writeError(c, fiber.StatusUnprocessableEntity, "UNPROCESSABLE_ENTITY", err.Error())
	case errors.Is(err, service.ErrTemplateNotFound):
		return writeError(c, fiber.StatusNotFound, "NOT_FOUND", "template not found")
	case errors.Is(err, service.ErrRangeNotFound):
		return writeError(c, fiber.StatusNotFound, "NOT_FOUND", "range not found")
	case errors.Is(err, service.ErrForbidden):
		return writeError(c, fiber.StatusForbidden, "FORBIDDEN", "not the owner of this template")
	case errors.Is(err, service.ErrNoCredentials):
		return writeError(c, fiber.StatusBadRequest, "NO_CREDENTIALS", "no cloud credentials configured for this provider")
	case errors.Is(err, service.ErrDecryptFailed):
		return writeError(c, fiber.StatusBadRequest, "DECRYPT_FAILED", "failed to decrypt cloud credentials, please log in again")
	default:
		return writeError(c, fiber.StatusInternalServerError, "INTERNAL_ERROR", "internal server error")
	}
}

// Deploy builds cloud infrastructure from one or more range templates.
//
//	@Summary	Deploy ranges
//	@Tags		ranges
//	@Accept		json
//	@Produce	json
//	@Param		body	body		deployRequest	true	"template ids and region"
//	@Success	201		{array}		model.Range
//	@Failure	400
//	@Failure	403
//	@Router		/api/v1/ranges/deploy [post]
func (h *RangeHandler) Deploy(c *fiber.Ctx) error {
	var req deployRequest
	if err := c.BodyParser(&req); err != nil {
		return writeError(c, fiber.StatusBadRequest, "BAD_REQUEST", "invalid request body")
	}
	if len(req.TemplateIDs) == 0 {
		return writeError(c, fiber.StatusUnprocessableEntity, "UNPROCESSABLE_ENTITY", "template_ids must not be empty")
	}
	region := model.Region(req.Region)
	if req.Region == "" {
		region = model.RegionUSEast1
	}

	masterKey, err := masterKeyFromCtx(c)
	if err != nil {
		return writeError(c, fiber.StatusBadRequest, "MISSING_KEY", "enc_key cookie is missing or malformed")
	}

	deployed := make([]*model.Range, 0, len(req.TemplateIDs))
	for _, id := range req.TemplateIDs {
		rng, err := h.svc.Deploy(c.UserContext(), middleware.CurrentUser(c), masterKey, id, region)
		if err != nil {
			return rangeError(c, err)
		}
		deployed = append(deployed, rng)
	}
	return c.Status(fiber.StatusCreated).JSON(deployed)
}

// List returns the caller's deployed ranges.
//
//	@Summary	List deployed ranges
//	@Tags		ranges
//	@Produce	json
//	@Param		limit	query	int	false	"page size"
//	@Param		offset	query	int	false	"page offset"
//	@Success	200	{object}	service.RangeListResult
//	@Router		/api/v1/ranges [get]
func (h *RangeHandler) List(c *fiber.Ctx) error {
	limit, err := strconv.Atoi(c.Query("limit", "10"))
	if err != nil {
		return writeError(c, fiber.StatusBadRequest, "INVALID_LIMIT", "invalid limit")
	}
	offset, err := strconv.Atoi(c.Query("offset", "0"))
	if err != nil {
		return writeError(c, fiber.StatusBadRequest, "INVALID_OFFSET", "invalid offset")
	}

	res, err := h.svc.List(c.UserContext(), middleware.CurrentUser(c), limit, offset)
	if err != nil {
		return rangeError(c, err)
	}
	return c.JSON(res)
}

// Get returns one deployed range.
//
//	@Summary	Get a deployed range
//	@Tags		ranges
//	@Produce	json
//	@Param		id	path	string	true	"range id (uuid4)"
//	@Success	200	{object}	model.Range
//	@Router		/api/v1/ranges/{id} [get]
func (h *RangeHandler) Get(c *fiber.Ctx) error {
	rng, err := h.svc.Get(c.UserContext(), middleware.CurrentUser(c), c.Params("id"))
	if err != nil {
		return rangeError(c, err)
	}
	return c.JSON(rng)
}

// Destroy tears down a deployed range.
//
//	@Summary	Destroy a deployed range
//	@Tags		ranges
//	@Param		id	path	string	true	"range id (uuid4)"
//	@Success	204
//	@Router		/api/v1/ranges/{id} [delete]
func (h *RangeHandler) Destroy(c *fiber.Ctx) error {
	masterKey, err := masterKeyFromCtx(c)
	if err != nil {
		return writeError(c, fiber.StatusBadRequest, "MISSING_KEY", "enc_key cookie is missing or malformed")
	}

	if err := h.svc.Destroy(c.UserContext(), middleware.CurrentUser(c), masterKey, c.Params("id")); err != nil {
		return rangeError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
