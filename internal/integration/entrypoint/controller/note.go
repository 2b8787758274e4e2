package controller

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/expense-tracker/backend/internal/application/usecase/note"
	domainerror "github.com/expense-tracker/backend/internal/domain/error"
	"github.com/expense-tracker/backend/internal/integration/entrypoint/dto"
)

// NoteController handles quick note endpoints.
type NoteController struct {
	listUseCase   *note.ListNotesUseCase
	createUseCase *note.CreateNoteUseCase
	updateUseCase *note.UpdateNoteUseCase
	deleteUseCase *note.DeleteNoteUseCase
}

// NewNoteController creates a new note controller instance.
func NewNoteController(
	listUseCase *note.ListNotesUseCase,
	createUseCase *note.CreateNoteUseCase,
	updateUseCase *note.UpdateNoteUseCase,
	deleteUseCase *note.DeleteNoteUseCase,
) *NoteController {
	return &NoteController{
		listUseCase:   listUseCase,
		createUseCase: createUseCase,
		updateUseCase: updateUseCase,
		deleteUseCase: deleteUseCase,
	}
}

// List handles GET /notes requests.
func (c *NoteController) List(ctx *gin.Context) {
	userID, ok := requireUser(ctx)
	if !ok {
		return
	}

	notes, err := c.listUseCase.Execute(ctx.Request.Context(), userID)
	if err != nil {
		respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToNoteListResponse(notes))
}

// Create handles POST /notes requests.
func (c *NoteController) Create(ctx *gin.Context) {
	userID, ok := requireUser(ctx)
	if !ok {
		return
	}

	var req dto.CreateNoteRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		invalidBody(ctx, string(domainerror.ErrCodeEmptyNoteText), err)
		return
	}

	created, err := c.createUseCase.Execute(ctx.Request.Context(), req.ToCreateNoteInput(userID))
	if err != nil {
		respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.ToNoteResponse(created))
}

// Update handles PUT /notes/:id requests.
func (c *NoteController) Update(ctx *gin.Context) {
	userID, ok := requireUser(ctx)
	if !ok {
		return
	}

	noteID, ok := pathID(ctx, "id", string(domainerror.ErrCodeNoteNotFound))
	if !ok {
		return
	}

	var req dto.UpdateNoteRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		invalidBody(ctx, string(domainerror.ErrCodeEmptyNoteText), err)
		return
	}

	updated, err := c.updateUseCase.Execute(ctx.Request.Context(), req.ToUpdateNoteInput(userID, noteID))
	if err != nil {
		respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToNoteResponse(updated))
}

// Delete handles DELETE /notes/:id requests.
func (c *NoteController) Delete(ctx *gin.Context) {
	userID, ok := requireUser(ctx)
	if !ok {
		return
	}

	noteID, ok := pathID(ctx, "id", string(domainerror.ErrCodeNoteNotFound))
	if !ok {
		return
	}

	if err := c.deleteUseCase.Execute(ctx.Request.Context(), userID, noteID); err != nil {
		respondError(ctx, err)
		return
	}

	ctx.Status(http.StatusNoContent)
}
