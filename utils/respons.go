package utils

import (
	"github.com/gin-gonic/gin"
)

type JSONResponse struct {
	Status  bool              `json:"status"`
	Message string            `json:"message"`
	Data    interface{}       `json:"data,omitempty"`
	Errors  map[string]string `json:"errors,omitempty"`
}

func RespondJSON(c *gin.Context, code int, message string, data interface{}) {
	c.JSON(code, JSONResponse{
		Status:  code >= 200 && code < 300,
		Message: message,
		Data:    data,
	})
}

func RespondError(c *gin.Context, code int, err error) {
	c.JSON(code, JSONResponse{
		Status:  false,
		Message: err.Error(),
	})
}

// RespondValidation reports field-level problems with a 400.
func RespondValidation(c *gin.Context, message string, fields map[string]string) {
	c.JSON(400, JSONResponse{
		Status:  false,
		Message: message,
		Errors:  fields,
	})
}
