package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/csdwebpro/notesphp/internal/errors"
	"github.com/csdwebpro/notesphp/internal/service"
)

// NoteHandler handles note endpoints for the authenticated user.
type NoteHandler struct {
	noteService service.NoteService
}

// NewNoteHandler creates a new note handler.
func NewNoteHandler(noteService service.NoteService) *NoteHandler {
	return &NoteHandler{noteService: noteService}
}

// CreateNoteRequest represents a note creation request.
type CreateNoteRequest struct {
	Title    string `json:"title" validate:"required"`
	Content  string `json:"content"`
	Category string `json:"category"`
}

// UpdateNoteRequest represents a note update request.
type UpdateNoteRequest struct {
	Title    string `json:"title" validate:"required"`
	Content  string `json:"content"`
	Category string `json:"category"`
}

func noteID(c echo.Context) (uint, error) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil || id < 1 {
		return 0, echo.NewHTTPError(http.StatusBadRequest, "invalid note id")
	}
	return uint(id), nil
}

func domainError(err error) error {
	httpErr := errors.MapErrorToHTTP(err)
	return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
}

// CreateNote godoc
// @Summary Create a note
// @Tags notes
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body CreateNoteRequest true "Note payload"
// @Success 201 {object} model.Note
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Router /notes [post]
func (h *NoteHandler) CreateNote(c echo.Context) error {
	var req CreateNoteRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	claims, err := sessionClaims(c)
	if err != nil {
		return domainError(err)
	}

	note, err := h.noteService.CreateNote(c.Request().Context(), claims.UserID, req.Title, req.Content, req.Category)
	if err != nil {
		return domainError(err)
	}
	return c.JSON(http.StatusCreated, note)
}

// GetNote godoc
// @Summary Get a note by id
// @Tags notes
// @Produce json
// @Security BearerAuth
// @Param id path int true "Note ID"
// @Success 200 {object} model.Note
// @Failure 400 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /notes/{id} [get]
func (h *NoteHandler) GetNote(c echo.Context) error {
	id, err := noteID(c)
	if err != nil {
		return err
	}
	claims, err := sessionClaims(c)
	if err != nil {
		return domainError(err)
	}

	note, err := h.noteService.GetNote(c.Request().Context(), claims.UserID, id)
	if err != nil {
		return domainError(err)
	}
	return c.JSON(http.StatusOK, note)
}

// ListNotes godoc
// @Summary List notes, most recently updated first
// @Tags notes
// @Produce json
// @Security BearerAuth
// @Param category query string false "Filter by category"
// @Success 200 {array} model.Note
// @Failure 401 {object} errors.ErrorResponse
// @Router /notes [get]
func (h *NoteHandler) ListNotes(c echo.Context) error {
	claims, err := sessionClaims(c)
	if err != nil {
		return domainError(err)
	}

	notes, err := h.noteService.ListNotes(c.Request().Context(), claims.UserID, c.QueryParam("category"))
	if err != nil {
		return domainError(err)
	}
	return c.JSON(http.StatusOK, notes)
}

// UpdateNote godoc
// @Summary Update a note
// @Tags notes
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Note ID"
// @Param request body UpdateNoteRequest true "Note payload"
// @Success 200 {object} model.Note
// @Failure 400 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /notes/{id} [put]
func (h *NoteHandler) UpdateNote(c echo.Context) error {
	id, err := noteID(c)
	if err != nil {
		return err
	}

	var req UpdateNoteRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	claims, err := sessionClaims(c)
	if err != nil {
		return domainError(err)
	}

	note, err := h.noteService.UpdateNote(c.Request().Context(), claims.UserID, id, req.Title, req.Content, req.Category)
	if err != nil {
		return domainError(err)
	}
	return c.JSON(http.StatusOK, note)
}

// DeleteNote godoc
// @Summary Soft-delete a note
// @Tags notes
// @Produce json
// @Security BearerAuth
// @Param id path int true "Note ID"
// @Success 200 {object} map[string]string
// @Failure 400 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /notes/{id} [delete]
func (h *NoteHandler) DeleteNote(c echo.Context) error {
	id, err := noteID(c)
	if err != nil {
		return err
	}
	claims, err := sessionClaims(c)
	if err != nil {
		return domainError(err)
	}

	if err := h.noteService.DeleteNote(c.Request().Context(), claims.UserID, id); err != nil {
		return domainError(err)
	}
	return c.JSON(http.StatusOK, map[string]string{
		"message": "note deleted successfully",
	})
}

// SearchNotes godoc
// @Summary Search notes by title or content substring
// @Tags notes
// @Produce json
// @Security BearerAuth
// @Param q query string false "Search query"
// @Success 200 {array} model.Note
// @Failure 401 {object} errors.ErrorResponse
// @Router /notes/search [get]
func (h *NoteHandler) SearchNotes(c echo.Context) error {
	claims, err := sessionClaims(c)
	if err != nil {
		return domainError(err)
	}

	notes, err := h.noteService.SearchNotes(c.Request().Context(), claims.UserID, c.QueryParam("q"))
	if err != nil {
		return domainError(err)
	}
	return c.JSON(http.StatusOK, notes)
}

// ListCategories godoc
// @Summary Per-category note counts
// @Tags notes
// @Produce json
// @Security BearerAuth
// @Success 200 {array} model.CategoryCount
// @Failure 401 {object} errors.ErrorResponse
// @Router /notes/categories [get]
func (h *NoteHandler) ListCategories(c echo.Context) error {
	claims, err := sessionClaims(c)
	if err != nil {
		return domainError(err)
	}

	counts, err := h.noteService.ListCategories(c.Request().Context(), claims.UserID)
	if err != nil {
		return domainError(err)
	}
	return c.JSON(http.StatusOK, counts)
}
