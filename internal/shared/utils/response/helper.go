package response

import "github.com/gin-gonic/gin"

// RespondJSON writes the standard response envelope. Every handler in the
// service goes through it so clients see one shape for success and error
// alike; data and errors are mutually exclusive in practice but neither is
// enforced here.
func RespondJSON(c *gin.Context, status string, code int, message string, data interface{}, errors interface{}) {
	c.JSON(code, StandardApiResponse{
		Status:     status,
		StatusCode: code,
		Message:    message,
		Data:       data,
		Errors:     errors,
	})
}
