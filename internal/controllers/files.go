package controllers

import (
	"encoding/base64"
	"encoding/json"
	"mime"
	"path/filepath"
	"strconv"

	"github.com/Callmevbdu/alx-files-manager/internal/domain"
	"github.com/Callmevbdu/alx-files-manager/internal/middlewares"
	"github.com/Callmevbdu/alx-files-manager/internal/services"

	"github.com/gofiber/fiber/v3"
)

// FilesController handles the file upload, listing, visibility, and
// content endpoints. It only translates between HTTP and the services;
// all decisions live in the service layer.
type FilesController struct {
	files    *services.FileService
	sessions domain.SessionStore
}

type FilesControllerDependencies struct {
	Files    *services.FileService
	Sessions domain.SessionStore
}

func NewFilesController(deps FilesControllerDependencies) *FilesController {
	return &FilesController{
		files:    deps.Files,
		sessions: deps.Sessions,
	}
}

type uploadRequest struct {
	Name     string          `json:"name"`
	Type     string          `json:"type"`
	ParentID json.RawMessage `json:"parentId"`
	IsPublic bool            `json:"isPublic"`
	Data     string          `json:"data"`
}

type fileResponse struct {
	ID       string           `json:"id"`
	UserID   string           `json:"userId"`
	Name     string           `json:"name"`
	Type     domain.FileType  `json:"type"`
	IsPublic bool             `json:"isPublic"`
	ParentID domain.ParentRef `json:"parentId"`
}

func toFileResponse(f domain.File) fileResponse {
	return fileResponse{
		ID:       f.ID,
		UserID:   f.UserID,
		Name:     f.Name,
		Type:     f.Type,
		IsPublic: f.IsPublic,
		ParentID: f.Parent,
	}
}

func (ctrl *FilesController) PostUpload(c fiber.Ctx) error {
	var req uploadRequest
	if err := c.Bind().Body(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}

	parent, err := domain.ParseParentRef(string(req.ParentID))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Parent not found"})
	}

	var data []byte
	if req.Data != "" {
		data, err = base64.StdEncoding.DecodeString(req.Data)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid data"})
		}
	}

	file, err := ctrl.files.Create(c.RequestCtx(), services.CreateFileParams{
		UserID:   middlewares.UserID(c),
		Name:     req.Name,
		Type:     domain.FileType(req.Type),
		Parent:   parent,
		IsPublic: req.IsPublic,
		Data:     data,
	})
	if err != nil {
		return writeError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(toFileResponse(file))
}

func (ctrl *FilesController) GetShow(c fiber.Ctx) error {
	file, err := ctrl.files.Get(c.RequestCtx(), middlewares.UserID(c), c.Params("id"))
	if err != nil {
		return writeError(c, err)
	}

	return c.JSON(toFileResponse(file))
}

func (ctrl *FilesController) GetIndex(c fiber.Ctx) error {
	parent, err := domain.ParseParentRef(c.Query("parentId"))
	if err != nil {
		// Parent existence is never validated on listing; an unusable
		// parent yields an empty page.
		return c.JSON([]fileResponse{})
	}

	page, err := strconv.Atoi(c.Query("page"))
	if err != nil || page < 0 {
		page = 0
	}

	files, err := ctrl.files.List(c.RequestCtx(), middlewares.UserID(c), parent, page)
	if err != nil {
		return writeError(c, err)
	}

	responses := make([]fileResponse, 0, len(files))
	for _, f := range files {
		responses = append(responses, toFileResponse(f))
	}

	return c.JSON(responses)
}

func (ctrl *FilesController) PutPublish(c fiber.Ctx) error {
	return ctrl.setVisibility(c, true)
}

func (ctrl *FilesController) PutUnpublish(c fiber.Ctx) error {
	return ctrl.setVisibility(c, false)
}

func (ctrl *FilesController) setVisibility(c fiber.Ctx, isPublic bool) error {
	file, err := ctrl.files.SetVisibility(c.RequestCtx(), middlewares.UserID(c), c.Params("id"), isPublic)
	if err != nil {
		return writeError(c, err)
	}

	return c.JSON(toFileResponse(file))
}

// GetFile serves raw content. Authentication is optional here: public
// files are served to anonymous callers, and an invalid token simply
// degrades to anonymous access.
func (ctrl *FilesController) GetFile(c fiber.Ctx) error {
	requesterID := ""
	if token := c.Get(middlewares.TokenHeader); token != "" {
		if userID, ok, err := ctrl.sessions.Resolve(c.RequestCtx(), token); err == nil && ok {
			requesterID = userID
		}
	}

	size, err := strconv.Atoi(c.Query("size"))
	if err != nil {
		size = 0
	}

	data, err := ctrl.files.Data(c.RequestCtx(), requesterID, c.Params("id"), size)
	if err != nil {
		return writeError(c, err)
	}

	contentType := mime.TypeByExtension(filepath.Ext(data.Name))
	if contentType == "" {
		contentType = fiber.MIMEOctetStream
	}

	c.Set(fiber.HeaderContentType, contentType)

	return c.Send(data.Data)
}
