package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rise-labs/shelf-backend/internal/model"
	"github.com/rise-labs/shelf-backend/internal/service"
	"go.uber.org/zap"
)

type TodoHandler struct {
	svc *service.TodoService
	log *zap.SugaredLogger
}

func NewTodoHandler(svc *service.TodoService, log *zap.SugaredLogger) *TodoHandler {
	return &TodoHandler{svc: svc, log: log}
}

// CreateTodos godoc
// @Summary Create todos
// @Tags todos
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body model.CreateTodoRequest true "Todos"
// @Success 201 {array} model.Todo
// @Failure 400 {object} model.ErrorResponse
// @Failure 500 {object} model.ErrorResponse
// @Router /create_todo [post]
func (h *TodoHandler) CreateTodos(c *gin.Context) {
	var req model.CreateTodoRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}

	todos, err := h.svc.CreateTodos(c.Request.Context(), req.Todos)
	if err != nil {
		writeError(c, h.log, err)
		return
	}
	c.JSON(http.StatusCreated, todos)
}

// GetTodos godoc
// @Summary List todos
// @Tags todos
// @Produce json
// @Security BearerAuth
// @Success 200 {array} model.Todo
// @Failure 500 {object} model.ErrorResponse
// @Router /get_todo [get]
func (h *TodoHandler) GetTodos(c *gin.Context) {
	todos, err := h.svc.ListTodos(c.Request.Context())
	if err != nil {
		writeError(c, h.log, err)
		return
	}
	if todos == nil {
		todos = []model.Todo{}
	}
	c.JSON(http.StatusOK, todos)
}

// UpdateTodo godoc
// @Summary Replace a todo
// @Tags todos
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id query string true "Todo ID"
// @Param request body model.Todo true "Todo"
// @Success 200 {object} model.Todo
// @Failure 400 {object} model.ErrorResponse
// @Failure 404 {object} model.ErrorResponse
// @Failure 500 {object} model.ErrorResponse
// @Router /update_todo [put]
func (h *TodoHandler) UpdateTodo(c *gin.Context) {
	var req model.Todo
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}

	todo, err := h.svc.UpdateTodo(c.Request.Context(), c.Query("id"), req)
	if err != nil {
		writeError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, todo)
}

// DeleteTodo godoc
// @Summary Delete a todo
// @Tags todos
// @Produce json
// @Security BearerAuth
// @Param id query string true "Todo ID"
// @Success 200 {object} model.Todo
// @Failure 400 {object} model.ErrorResponse
// @Failure 404 {object} model.ErrorResponse
// @Failure 500 {object} model.ErrorResponse
// @Router /delete_todo [delete]
func (h *TodoHandler) DeleteTodo(c *gin.Context) {
	todo, err := h.svc.DeleteTodo(c.Request.Context(), c.Query("id"))
	if err != nil {
		writeError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, todo)
}
