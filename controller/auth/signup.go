package auth

import (
	"errors"
	"net"
	"regexp"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"mindmap/dto"
	"mindmap/model"
	"mindmap/services"
	"mindmap/store"
)

func SignUpController(router *gin.Engine, st store.DocumentStore, security *services.SecurityService) {
	router.POST("/auth/signup", func(c *gin.Context) {
		Signup(c, st, security)
	})
}

func Signup(c *gin.Context, st store.DocumentStore, security *services.SecurityService) {
	var request dto.SignupRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		c.JSON(400, gin.H{"error": err.Error()})
		return
	}
	if err := isValidEmail(request.Email); err != nil {
		c.JSON(400, gin.H{"error": err.Error()})
		return
	}

	ctx := c.Request.Context()
	exists, err := services.UserExists(ctx, st, request.Email)
	if err != nil {
		c.JSON(500, gin.H{"error": "Failed to check existing email"})
		return
	}
	if exists {
		c.JSON(400, gin.H{"error": "Email is already registered"})
		return
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(request.Password), bcrypt.DefaultCost)
	if err != nil {
		c.JSON(500, gin.H{"error": "Failed to hash password"})
		return
	}

	docid := uuid.New().String()

	newUser := model.User{
		UserID:    docid,
		Name:      request.Name,
		Email:     request.Email,
		Password:  string(hashedPassword),
		Role:      "user",
		CreatedAt: time.Now(),
	}

	if err := st.Create(ctx, "Users", docid, services.UserDoc(newUser)); err != nil {
		c.JSON(500, gin.H{"error": "Failed to create user"})
		return
	}

	// the recovery side channel is part of the account; without it the
	// sign-up did not happen
	if err := security.SaveCredential(ctx, docid, request.Email, request.SecurityQuestion, request.SecurityAnswer); err != nil {
		st.Delete(ctx, "Users", docid)
		c.JSON(500, gin.H{"error": "Failed to store security question"})
		return
	}

	c.JSON(201, gin.H{
		"message": "User registered successfully",
		"userId":  docid,
	})
}

func isValidEmail(email string) error {
	const emailRegex = `^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`
	re := regexp.MustCompile(emailRegex)
	if !re.MatchString(email) {
		return errors.New("invalid email format")
	}

	parts := strings.Split(email, "@")
	if len(parts) != 2 {
		return errors.New("invalid email structure")
	}
	domain := parts[1]

	mxRecords, err := net.LookupMX(domain)
	if err != nil || len(mxRecords) == 0 {
		return errors.New("email domain does not have valid MX records")
	}

	return nil
}
