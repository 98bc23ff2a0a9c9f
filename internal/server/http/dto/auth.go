package dto

// AuthRequest describes registration and login payloads. Role is only
// consulted during registration.
type AuthRequest struct {
	Login    string `json:"login"`
	Password string `json:"password"`
	Role     string `json:"role"`
}
