package dto

// LoginRequest is the payload for POST /api/login.
type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// LoginResponse is returned on a successful login.
type LoginResponse struct {
	Success   bool   `json:"success"`
	SessionID string `json:"session_id"`
	Username  string `json:"username"`
}

// FailureResponse is returned when a login is refused.
type FailureResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}
