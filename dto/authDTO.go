package dto

type SignupRequest struct {
	Email            string `json:"email" binding:"required"`
	Password         string `json:"password" binding:"required"`
	Name             string `json:"name"`
	SecurityQuestion string `json:"securityQuestion" binding:"required"`
	SecurityAnswer   string `json:"securityAnswer" binding:"required"`
}

type SigninRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type SecurityQuestionRequest struct {
	Email string `json:"email" binding:"required,email"`
}

type ResetPasswordRequest struct {
	Email          string `json:"email" binding:"required,email"`
	SecurityAnswer string `json:"securityAnswer" binding:"required"`
	NewPassword    string `json:"newPassword" binding:"required"`
}
