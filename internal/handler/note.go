package handler

import (
	"net/http"
	"strconv"

	"github.com/notemind/notemind/internal/constants"
	"github.com/notemind/notemind/internal/dto"
	"github.com/notemind/notemind/internal/middleware"
	"github.com/notemind/notemind/internal/service"
	"github.com/notemind/notemind/pkg/validation"
	"github.com/gin-gonic/gin"
)

type NoteHandler struct {
	noteService    *service.NoteService
	summaryService *service.SummaryService
}

func NewNoteHandler(noteService *service.NoteService, summaryService *service.SummaryService) *NoteHandler {
	return &NoteHandler{
		noteService:    noteService,
		summaryService: summaryService,
	}
}

// pathID parses the :id segment. Returns 0 and writes the response on failure.
func pathID(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		c.JSON(http.StatusBadRequest, constants.BuildErrorResponse(constants.MsgBadRequest, gin.H{"id": "must be a positive integer"}))
		return 0, false
	}
	return uint(id), true
}

func (h *NoteHandler) Create(c *gin.Context) {
	var req dto.CreateNoteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, constants.BuildErrorResponse(constants.MsgBadRequest, validation.FormatBindingError(err)))
		return
	}

	note, err := h.noteService.Create(c.Request.Context(), middleware.CurrentUserID(c), &req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, constants.BuildDataResponse(note))
}

func (h *NoteHandler) List(c *gin.Context) {
	var filter dto.NoteFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		c.JSON(http.StatusBadRequest, constants.BuildErrorResponse(constants.MsgBadRequest, validation.FormatBindingError(err)))
		return
	}

	notes, err := h.noteService.List(c.Request.Context(), middleware.CurrentUserID(c), &filter)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, constants.BuildListResponse(len(notes), notes))
}

func (h *NoteHandler) Get(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	note, err := h.noteService.Get(c.Request.Context(), middleware.CurrentUserID(c), id)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, constants.BuildDataResponse(note))
}

func (h *NoteHandler) Update(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	var req dto.UpdateNoteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, constants.BuildErrorResponse(constants.MsgBadRequest, validation.FormatBindingError(err)))
		return
	}

	note, err := h.noteService.Update(c.Request.Context(), middleware.CurrentUserID(c), id, &req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, constants.BuildDataResponse(note))
}

func (h *NoteHandler) Delete(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	if err := h.noteService.Delete(c.Request.Context(), middleware.CurrentUserID(c), id); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, constants.BuildSuccessResponse("Note deleted"))
}

// Summarize generates (or serves a cached) summary for the note
func (h *NoteHandler) Summarize(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	// The body is optional; an empty body means the default length.
	var req dto.SummarizeRequest
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, constants.BuildErrorResponse(constants.MsgBadRequest, validation.FormatBindingError(err)))
			return
		}
	}

	summary, err := h.summaryService.Summarize(c.Request.Context(), middleware.CurrentUserID(c), id, req.Length)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, constants.BuildDataResponse(summary))
}
