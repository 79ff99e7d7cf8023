// Package response writes the {success, data|message, errors} envelope every
// endpoint answers with.
package response

import (
	"errors"
	"net/http"

	"github.com/Traorelacina/Glory-event/apperror"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type Envelope struct {
	Success bool              `json:"success"`
	Data    any               `json:"data,omitempty"`
	Message string            `json:"message,omitempty"`
	Errors  map[string]string `json:"errors,omitempty"`
}

func OK(c *gin.Context, data any) {
	c.JSON(http.StatusOK, Envelope{Success: true, Data: data})
}

func Created(c *gin.Context, data any) {
	c.JSON(http.StatusCreated, Envelope{Success: true, Data: data})
}

func Message(c *gin.Context, msg string) {
	c.JSON(http.StatusOK, Envelope{Success: true, Message: msg})
}

// Error maps err to its HTTP status and aborts the request.
// Internal causes are logged, never sent to the client.
func Error(c *gin.Context, err error) {
	kind := apperror.KindOf(err)
	body := Envelope{Success: false, Message: "Une erreur interne est survenue"}

	var appErr *apperror.Error
	if errors.As(err, &appErr) {
		body.Message = appErr.Message
		body.Errors = appErr.Fields
	}
	if kind == apperror.KindInternal {
		zap.L().Error("request failed",
			zap.String("method", c.Request.Method),
			zap.String("path", c.FullPath()),
			zap.Error(err),
		)
	}
	c.AbortWithStatusJSON(kind.HTTPStatus(), body)
}
