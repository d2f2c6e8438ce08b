package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// errorBody is the JSON envelope of every failed API call.
type errorBody struct {
	OK      int    `json:"ok"`
	Code    int    `json:"code"`
	Message string `json:"message"`
	Tip     string `json:"tip,omitempty"`
}

func ok(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, data)
}

func created(c *gin.Context, data interface{}) {
	c.JSON(http.StatusCreated, data)
}

func noContent(c *gin.Context) {
	c.Status(http.StatusNoContent)
}

func badRequest(c *gin.Context, message string) {
	abort(c, http.StatusBadRequest, message, "")
}

func notFound(c *gin.Context, message string) {
	abort(c, http.StatusNotFound, message, "")
}

func abort(c *gin.Context, status int, message, tip string) {
	c.AbortWithStatusJSON(status, errorBody{Code: status, Message: message, Tip: tip})
}
