package model

import "time"

type User struct {
	UserID    string    `json:"userId"`
	Name      string    `json:"name,omitempty"`
	Email     string    `json:"email"`
	Password  string    `json:"-"`
	Role      string    `json:"role"` // "user" or "admin"
	CreatedAt time.Time `json:"createdAt"`
}

// SecurityCredential is the password-recovery side channel created at
// sign-up. The answer is kept as a bcrypt digest of the case-folded,
// trimmed text; the raw secret is never stored.
type SecurityCredential struct {
	Email              string `json:"email"`
	SecurityQuestion   string `json:"securityQuestion"`
	SecurityAnswerHash string `json:"-"`
}
