package dto

// Data Transfer Objects for signup and token exchange

// SignupRequest: payload for passwordless registration
type SignupRequest struct {
	Username string `json:"username" binding:"required,min=3,max=50"`
	Email    string `json:"email" binding:"required,email"`
}

// SignupResponse echoes the registered identity. The confirmation code
// itself only travels through the delivery channel, never this response.
type SignupResponse struct {
	Username string `json:"username"`
	Email    string `json:"email"`
}

// TokenRequest: payload for exchanging a confirmation code for a token
type TokenRequest struct {
	Username         string `json:"username" binding:"required"`
	ConfirmationCode string `json:"confirmation_code" binding:"required"`
}

// TokenResponse carries the signed access token
type TokenResponse struct {
	Token string `json:"token"`
}
