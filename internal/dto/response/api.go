package response

// APIResponse is the bare envelope every endpoint shares.
type APIResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
}
