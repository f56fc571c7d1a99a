package model

type RegisterRequest struct {
	FullName       string `json:"fullName" validate:"required"`
	Email          string `json:"email" validate:"required,email"`
	Password       string `json:"password" validate:"required,min=6"`
	ProfilePicture string `json:"profilePicture,omitempty"`
}

type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// TokenPayload is the login response payload: the bearer token every
// subsequent authenticated call carries.
type TokenPayload struct {
	Token string `json:"token"`
}
