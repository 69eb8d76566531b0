package controller

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"clipnote-be/internal/dto"
	"clipnote-be/internal/pkg/serverutils"
	"clipnote-be/internal/service"
)

type NoteController struct {
	noteService service.INoteService
}

func NewNoteController(noteService service.INoteService) *NoteController {
	return &NoteController{noteService: noteService}
}

func (c *NoteController) RegisterRoutes(r fiber.Router) {
	notes := r.Group("/notes", serverutils.JwtMiddleware)
	notes.Get("/", c.List)
	notes.Post("/", c.Create)
	notes.Put("/:id", c.Update)
	notes.Delete("/:id", c.Delete)
}

func (c *NoteController) List(ctx *fiber.Ctx) error {
	userID, err := serverutils.UserIDFromCtx(ctx)
	if err != nil {
		return err
	}

	notes, err := c.noteService.List(ctx.Context(), userID)
	if err != nil {
		return err
	}

	items := make([]dto.NoteItem, 0, len(notes))
	for _, n := range notes {
		items = append(items, dto.NoteItem{Id: n.Id, Text: n.Text, CreatedAt: n.CreatedAt})
	}
	return ctx.JSON(serverutils.SuccessResponse("notes retrieved", items))
}

func (c *NoteController) Create(ctx *fiber.Ctx) error {
	userID, err := serverutils.UserIDFromCtx(ctx)
	if err != nil {
		return err
	}

	var req dto.CreateNoteRequest
	if err := ctx.BodyParser(&req); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(serverutils.ErrorResponse(fiber.StatusBadRequest, "invalid request body"))
	}

	note, err := c.noteService.Create(ctx.Context(), userID, req.Text)
	if err != nil {
		if errors.Is(err, service.ErrEmptyText) {
			return ctx.Status(fiber.StatusBadRequest).JSON(serverutils.ErrorResponse(fiber.StatusBadRequest, err.Error()))
		}
		return err
	}

	return ctx.Status(fiber.StatusCreated).JSON(serverutils.SuccessResponse("note created", dto.CreateNoteResponse{Id: note.Id}))
}

func (c *NoteController) Update(ctx *fiber.Ctx) error {
	userID, err := serverutils.UserIDFromCtx(ctx)
	if err != nil {
		return err
	}
	noteID, err := uuid.Parse(ctx.Params("id"))
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(serverutils.ErrorResponse(fiber.StatusBadRequest, "invalid note id"))
	}

	var req dto.UpdateNoteRequest
	if err := ctx.BodyParser(&req); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(serverutils.ErrorResponse(fiber.StatusBadRequest, "invalid request body"))
	}

	note, err := c.noteService.Update(ctx.Context(), userID, noteID, req.Text)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrEmptyText):
			return ctx.Status(fiber.StatusBadRequest).JSON(serverutils.ErrorResponse(fiber.StatusBadRequest, err.Error()))
		case errors.Is(err, service.ErrNotFound):
			return ctx.Status(fiber.StatusNotFound).JSON(serverutils.ErrorResponse(fiber.StatusNotFound, "note not found"))
		}
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("note updated", dto.NoteItem{Id: note.Id, Text: note.Text, CreatedAt: note.CreatedAt}))
}

func (c *NoteController) Delete(ctx *fiber.Ctx) error {
	userID, err := serverutils.UserIDFromCtx(ctx)
	if err != nil {
		return err
	}
	noteID, err := uuid.Parse(ctx.Params("id"))
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(serverutils.ErrorResponse(fiber.StatusBadRequest, "invalid note id"))
	}

	if err := c.noteService.Delete(ctx.Context(), userID, noteID); err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse[any]("note deleted", nil))
}
