package api

import (
	"net/http" // HTTP status codes

	"github.com/gin-gonic/gin" // Gin web framework
)

// Minimal page shells. The client application renders everything; these
// exist so the route guard has concrete pages to protect.

// HomePageHandler serves the main application view
func HomePageHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Data(http.StatusOK, "text/html; charset=utf-8", []byte("<!doctype html><title>My Todos</title><div id=\"app\"></div>"))
	}
}

// SignInPageHandler serves the sign-in entry point
func SignInPageHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Data(http.StatusOK, "text/html; charset=utf-8", []byte("<!doctype html><title>Sign in</title><div id=\"app\"></div>"))
	}
}

// SignUpPageHandler serves the sign-up entry point
func SignUpPageHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Data(http.StatusOK, "text/html; charset=utf-8", []byte("<!doctype html><title>Sign up</title><div id=\"app\"></div>"))
	}
}
