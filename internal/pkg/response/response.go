package response

import "github.com/gin-gonic/gin"

// Every endpoint answers with the same envelope:
// {"success":true,"data":...} on the happy path, otherwise
// {"success":false,"error":{"code","message","details"}} where code is a
// stable identifier clients switch on (EMAIL_TAKEN, EMPTY_SELECTION,
// NUMBER_ALLOCATION_EXHAUSTED, ...).

type ErrorBody struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Details any    `json:"details,omitempty"`
}

func Success(c *gin.Context, status int, data any) {
	c.JSON(status, gin.H{
		"success": true,
		"data":    data,
	})
}

func Error(c *gin.Context, status int, code, message string) {
	c.JSON(status, gin.H{
		"success": false,
		"error":   ErrorBody{Code: code, Message: message},
	})
}

// ErrorWithDetails attaches structured context to the error, such as the
// validator's field-to-tag violation map.
func ErrorWithDetails(c *gin.Context, status int, code, message string, details any) {
	c.JSON(status, gin.H{
		"success": false,
		"error":   ErrorBody{Code: code, Message: message, Details: details},
	})
}
