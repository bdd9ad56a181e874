package api

import (
	"errors"                       // Sentinel error checks
	"net/http"                     // HTTP status codes
	"strconv"                      // String conversion
	"todo_app/internal/middleware" // Resolved identity accessor
	"todo_app/internal/service"    // Core todo service

	"github.com/gin-gonic/gin"   // Gin web framework
	"github.com/sirupsen/logrus" // Logging library
)

// ListTodosHandler returns all todos owned by the authenticated user
func ListTodosHandler(todos service.TodoService) gin.HandlerFunc {
	return func(c *gin.Context) {
		ident := middleware.CurrentIdentity(c) // Resolved caller, nil if anonymous
		// Fetch the caller's todos
		list, err := todos.List(c.Request.Context(), ident)
		if err != nil {
			// Anonymous callers get unauthorized
			if errors.Is(err, service.ErrUnauthorized) {
				c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
				return
			}
			// Log the error with context
			logrus.WithFields(logrus.Fields{"error": err.Error()}).Error("Failed to list todos")
			// Return internal server error with no store detail
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list todos"})
			return
		}
		// Return the ordered list, possibly empty
		c.JSON(http.StatusOK, gin.H{"todos": list})
	}
}

// CreateTodoHandler creates a new todo for the authenticated user
func CreateTodoHandler(todos service.TodoService) gin.HandlerFunc {
	return func(c *gin.Context) {
		ident := middleware.CurrentIdentity(c) // Resolved caller
		var req service.CreateTodoRequest      // Bind JSON request to struct
		if err := c.ShouldBindJSON(&req); err != nil {
			// If binding fails (e.g., missing title), return bad request
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
			return
		}
		// Create the todo
		todo, err := todos.Create(c.Request.Context(), ident, req)
		if err != nil {
			// Anonymous callers get unauthorized
			if errors.Is(err, service.ErrUnauthorized) {
				c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
				return
			}
			// Log the error with context
			logrus.WithFields(logrus.Fields{"error": err.Error()}).Error("Failed to create todo")
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create todo"})
			return
		}
		// Return the created todo
		c.JSON(http.StatusCreated, gin.H{"todo": todo})
	}
}

// UpdateTodoHandler applies a partial update to one of the caller's todos
func UpdateTodoHandler(todos service.TodoService) gin.HandlerFunc {
	return func(c *gin.Context) {
		ident := middleware.CurrentIdentity(c) // Resolved caller
		// Parse the target id from the path
		id, err := strconv.ParseUint(c.Param("id"), 10, 32)
		if err != nil {
			// If the id is not a number, return bad request
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid todo id"})
			return
		}
		var req service.UpdateTodoRequest // Bind JSON request to struct
		if err := c.ShouldBindJSON(&req); err != nil {
			// If binding fails, return bad request
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
			return
		}
		// Apply the patch; a foreign or nonexistent id is a silent no-op
		if err := todos.Update(c.Request.Context(), ident, uint(id), req); err != nil {
			// Anonymous callers get unauthorized
			if errors.Is(err, service.ErrUnauthorized) {
				c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
				return
			}
			// Log the error with context
			logrus.WithFields(logrus.Fields{"todo_id": id, "error": err.Error()}).Error("Failed to update todo")
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update todo"})
			return
		}
		// Return success; matched and unmatched look identical on purpose
		c.JSON(http.StatusOK, gin.H{"success": true})
	}
}

// DeleteTodoHandler deletes one of the caller's todos
func DeleteTodoHandler(todos service.TodoService) gin.HandlerFunc {
	return func(c *gin.Context) {
		ident := middleware.CurrentIdentity(c) // Resolved caller
		// Parse the target id from the path
		id, err := strconv.ParseUint(c.Param("id"), 10, 32)
		if err != nil {
			// If the id is not a number, return bad request
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid todo id"})
			return
		}
		// Delete; a foreign or nonexistent id is a silent no-op
		if err := todos.Delete(c.Request.Context(), ident, uint(id)); err != nil {
			// Anonymous callers get unauthorized
			if errors.Is(err, service.ErrUnauthorized) {
				c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
				return
			}
			// Log the error with context
			logrus.WithFields(logrus.Fields{"todo_id": id, "error": err.Error()}).Error("Failed to delete todo")
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete todo"})
			return
		}
		// Return success; matched and unmatched look identical on purpose
		c.JSON(http.StatusOK, gin.H{"success": true})
	}
}
