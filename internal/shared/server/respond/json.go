package respond

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// JSON writes payload with status.
func JSON(c *gin.Context, status int, payload any) {
	c.JSON(status, payload)
}

func OK(c *gin.Context, payload any) {
	JSON(c, http.StatusOK, payload)
}

// Created answers a successful insert with the stored record.
func Created(c *gin.Context, payload any) {
	JSON(c, http.StatusCreated, payload)
}

// NoContent answers deletes and other bodiless successes.
func NoContent(c *gin.Context) {
	c.Status(http.StatusNoContent)
}
