package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rise-labs/shelf-backend/internal/metrics"
	"github.com/rise-labs/shelf-backend/internal/model"
	"github.com/rise-labs/shelf-backend/internal/service"
	"go.uber.org/zap"
)

type BookHandler struct {
	svc     *service.BookService
	metrics *metrics.Metrics
	log     *zap.SugaredLogger
}

func NewBookHandler(svc *service.BookService, m *metrics.Metrics, log *zap.SugaredLogger) *BookHandler {
	return &BookHandler{svc: svc, metrics: m, log: log}
}

// CreateBook godoc
// @Summary Add a book unless one with the same name exists
// @Tags books
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body model.Book true "Book"
// @Success 200 {object} model.BookStatus
// @Failure 400 {object} model.ErrorResponse
// @Failure 401 {object} model.ErrorResponse
// @Failure 500 {object} model.ErrorResponse
// @Router /create_book [post]
func (h *BookHandler) CreateBook(c *gin.Context) {
	var req model.Book
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}

	status, err := h.svc.CreateBook(c.Request.Context(), req)
	if err != nil {
		writeError(c, h.log, err)
		return
	}
	h.metrics.ObserveBookInsert(status.Success)
	c.JSON(http.StatusOK, status)
}

// GetBooks godoc
// @Summary List books
// @Tags books
// @Produce json
// @Security BearerAuth
// @Success 200 {array} model.Book
// @Failure 401 {object} model.ErrorResponse
// @Failure 500 {object} model.ErrorResponse
// @Router /get_book [get]
func (h *BookHandler) GetBooks(c *gin.Context) {
	books, err := h.svc.ListBooks(c.Request.Context())
	if err != nil {
		writeError(c, h.log, err)
		return
	}
	if books == nil {
		books = []model.Book{}
	}
	c.JSON(http.StatusOK, books)
}

// UpdateBook godoc
// @Summary Replace an existing book
// @Tags books
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id query string true "Book ID"
// @Param request body model.Book true "Book"
// @Success 200 {object} model.BookStatus
// @Failure 400 {object} model.ErrorResponse
// @Failure 404 {object} model.BookStatus
// @Failure 409 {object} model.BookStatus
// @Failure 500 {object} model.ErrorResponse
// @Router /update_book [put]
func (h *BookHandler) UpdateBook(c *gin.Context) {
	var req model.Book
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}

	status, err := h.svc.UpdateBook(c.Request.Context(), c.Query("id"), req)
	switch {
	case err == nil:
		c.JSON(http.StatusOK, status)
	case errors.Is(err, service.ErrNotFound):
		c.JSON(http.StatusNotFound, status)
	case errors.Is(err, service.ErrConflict):
		c.JSON(http.StatusConflict, status)
	default:
		writeError(c, h.log, err)
	}
}

// DeleteBook godoc
// @Summary Delete a book
// @Tags books
// @Produce json
// @Security BearerAuth
// @Param id query string true "Book ID"
// @Success 200 {object} model.BookStatus
// @Failure 400 {object} model.ErrorResponse
// @Failure 500 {object} model.ErrorResponse
// @Router /delete_book [delete]
func (h *BookHandler) DeleteBook(c *gin.Context) {
	status, err := h.svc.DeleteBook(c.Request.Context(), c.Query("id"))
	if err != nil {
		writeError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, status)
}
