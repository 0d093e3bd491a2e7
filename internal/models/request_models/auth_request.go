package request_models

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type RegisterRequest struct {
	AccountProfile
	Password             string `json:"password" binding:"required,min=8,max=72"`
	PasswordConfirmation string `json:"password_confirmation" binding:"required,eqfield=Password"`
}

type ForgotPasswordRequest struct {
	Email string `json:"email" binding:"required,email"`
}

type VerifyResetTokenRequest struct {
	Token string `json:"token" binding:"required"`
}

type ResetPasswordRequest struct {
	Token                string `json:"token" binding:"required"`
	Password             string `json:"password" binding:"required,min=8,max=72"`
	PasswordConfirmation string `json:"password_confirmation" binding:"required,eqfield=Password"`
}

type CheckEmailRequest struct {
	Email string `form:"email" binding:"required,email"`
}
