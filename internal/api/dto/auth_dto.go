package dto

// LoginRequest payload.
type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// LoginResponse payload. No token is issued; userId is a boolean gate for
// the dashboard.
type LoginResponse struct {
	Message string `json:"message"`
	UserID  string `json:"userId"`
}
