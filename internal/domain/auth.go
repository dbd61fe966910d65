package domain

// Credentials is the body of a login request.
type Credentials struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// Registration is the body of a register request.
type Registration struct {
	FullName string `json:"fullName" validate:"required,min=1,max=100"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,password"`
}

// PasswordReset is the body of a forgot-password request.
type PasswordReset struct {
	Email string `json:"email" validate:"required,email"`
}

// Session is returned by login and register.
type Session struct {
	Token string `json:"token"`
	User  User   `json:"user"`
}
