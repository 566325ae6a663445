package dto

// SignupRequest is the JSON body for POST /users.
type SignupRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=6"`
}

// LoginRequest is the JSON body for POST /users/login.
type LoginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// UserResponse is the serialized user. The password hash and the
// token set never appear here.
type UserResponse struct {
	ID    string `json:"id"`
	Email string `json:"email"`
}
