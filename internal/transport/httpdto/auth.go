package httpdto

// CredentialsRequest is used for POST /signup and POST /login
type CredentialsRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// LoginResponse is returned after successful login
type LoginResponse struct {
	AccessToken string `json:"access_token"`
}
