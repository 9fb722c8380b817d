package handlers

import (
	"encoding/base64"
	"errors"
	"strconv"

	"github.com/fathima-sithara/files-service/internal/middleware"
	"github.com/fathima-sithara/files-service/internal/models"
	"github.com/fathima-sithara/files-service/internal/services"
	"github.com/fathima-sithara/files-service/internal/utils"
	"github.com/gofiber/fiber/v2"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type FilesHandler struct {
	svc *services.FilesService
}

func NewFilesHandler(svc *services.FilesService) *FilesHandler {
	return &FilesHandler{svc: svc}
}

type uploadReq struct {
	Name     string `json:"name"`
	Type     string `json:"type"`
	ParentID string `json:"parentId"`
	IsPublic bool   `json:"isPublic"`
	Data     string `json:"data"`
}

// Upload handles POST /files. The payload is validated here once; the
// service only ever sees well-formed input.
func (h *FilesHandler) Upload(c *fiber.Ctx) error {
	user := c.Locals(middleware.UserKey).(*models.User)

	var req uploadReq
	if err := c.BodyParser(&req); err != nil {
		return utils.JSONError(c, fiber.StatusBadRequest, "Missing name")
	}
	var data []byte
	if req.Data != "" {
		var err error
		data, err = base64.StdEncoding.DecodeString(req.Data)
		if err != nil {
			return utils.JSONError(c, fiber.StatusBadRequest, "Missing data")
		}
	}

	entry, err := h.svc.Upload(c.Context(), user.ID, services.UploadInput{
		Name:     req.Name,
		Type:     req.Type,
		ParentID: req.ParentID,
		IsPublic: req.IsPublic,
		Data:     data,
	})
	switch {
	case errors.Is(err, services.ErrMissingName):
		return utils.JSONError(c, fiber.StatusBadRequest, "Missing name")
	case errors.Is(err, services.ErrInvalidType):
		return utils.JSONError(c, fiber.StatusBadRequest, "Missing type")
	case errors.Is(err, services.ErrMissingData):
		return utils.JSONError(c, fiber.StatusBadRequest, "Missing data")
	case errors.Is(err, services.ErrParentNotFound):
		return utils.JSONError(c, fiber.StatusBadRequest, "Parent not found")
	case errors.Is(err, services.ErrParentNotFolder):
		return utils.JSONError(c, fiber.StatusBadRequest, "Parent is not a folder")
	case err != nil:
		return utils.JSONError(c, fiber.StatusInternalServerError, "Service unavailable")
	}
	return c.Status(fiber.StatusCreated).JSON(entry)
}

// Show handles GET /files/:id.
func (h *FilesHandler) Show(c *fiber.Ctx) error {
	user := c.Locals(middleware.UserKey).(*models.User)
	entry, err := h.svc.Get(c.Context(), c.Params("id"), user.ID)
	if errors.Is(err, services.ErrNotFound) {
		return utils.JSONError(c, fiber.StatusNotFound, "Not found")
	}
	if err != nil {
		return utils.JSONError(c, fiber.StatusInternalServerError, "Service unavailable")
	}
	return c.JSON(entry)
}

// Index handles GET /files?parentId=&page=.
func (h *FilesHandler) Index(c *fiber.Ctx) error {
	user := c.Locals(middleware.UserKey).(*models.User)
	page, err := strconv.ParseInt(c.Query("page", "0"), 10, 64)
	if err != nil {
		page = 0
	}
	entries, err := h.svc.List(c.Context(), c.Query("parentId"), page, user.ID)
	if err != nil {
		return utils.JSONError(c, fiber.StatusInternalServerError, "Service unavailable")
	}
	return c.JSON(entries)
}

// Publish handles PUT /files/:id/publish.
func (h *FilesHandler) Publish(c *fiber.Ctx) error {
	return h.setVisibility(c, true)
}

// Unpublish handles PUT /files/:id/unpublish.
func (h *FilesHandler) Unpublish(c *fiber.Ctx) error {
	return h.setVisibility(c, false)
}

func (h *FilesHandler) setVisibility(c *fiber.Ctx, public bool) error {
	user := c.Locals(middleware.UserKey).(*models.User)
	entry, err := h.svc.SetVisibility(c.Context(), c.Params("id"), user.ID, public)
	if errors.Is(err, services.ErrNotFound) {
		return utils.JSONError(c, fiber.StatusNotFound, "Not found")
	}
	if err != nil {
		return utils.JSONError(c, fiber.StatusInternalServerError, "Service unavailable")
	}
	return c.JSON(entry)
}

// Data handles GET /files/:id/data?size=. The token is optional: public
// entries are served to anyone, private ones to their owner only.
func (h *FilesHandler) Data(c *fiber.Ctx) error {
	var requester *primitive.ObjectID
	if user, ok := c.Locals(middleware.UserKey).(*models.User); ok {
		requester = &user.ID
	}
	width := 0
	switch c.Query("size") {
	case "500":
		width = 500
	case "200":
		width = 200
	case "100":
		width = 100
	}

	data, contentType, err := h.svc.Data(c.Context(), c.Params("id"), requester, width)
	if errors.Is(err, services.ErrNotFound) {
		return utils.JSONError(c, fiber.StatusNotFound, "Not found")
	}
	if err != nil {
		return utils.JSONError(c, fiber.StatusInternalServerError, "Service unavailable")
	}
	c.Set(fiber.HeaderContentType, contentType)
	return c.Send(data)
}
