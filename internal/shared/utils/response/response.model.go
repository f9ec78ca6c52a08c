// Package response defines the JSON envelope shared by every HTTP handler.
package response

// StandardApiResponse is the envelope for all API responses.
type StandardApiResponse struct {
	Status     string      `json:"status"`           // "success" or "error"
	StatusCode int         `json:"status_code"`      // mirrors the HTTP status
	Message    string      `json:"message"`          // human-readable summary
	Data       interface{} `json:"data,omitempty"`   // payload on success
	Errors     interface{} `json:"errors,omitempty"` // validation or failure details
}
