package services

import (
	"testing"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
)

func TestAccessTokenRoundTrip(t *testing.T) {
	t.Setenv("JWT_SECRET_KEY", "test-secret")

	tokenString, err := CreateAccessToken("u1", "user")
	if err != nil {
		t.Fatalf("CreateAccessToken failed: %v", err)
	}

	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		return []byte("test-secret"), nil
	})
	if err != nil || !token.Valid {
		t.Fatalf("token does not parse back: %v", err)
	}

	claims := token.Claims.(jwt.MapClaims)
	if claims["userId"] != "u1" {
		t.Errorf("expected userId u1, got %v", claims["userId"])
	}
	if claims["role"] != "user" {
		t.Errorf("expected role user, got %v", claims["role"])
	}
	if issuer, _ := claims.GetIssuer(); issuer != "mindmap" {
		t.Errorf("expected issuer mindmap, got %v", issuer)
	}
}

func TestRefreshTokenUsesOwnSecret(t *testing.T) {
	t.Setenv("JWT_SECRET_KEY", "access-secret")
	t.Setenv("JWT_REFRESH_SECRET_KEY", "refresh-secret")

	tokenString, err := CreateRefreshToken("u1")
	if err != nil {
		t.Fatalf("CreateRefreshToken failed: %v", err)
	}

	if _, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		return []byte("access-secret"), nil
	}); err == nil {
		t.Errorf("refresh token verifiable with the access secret")
	}

	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		return []byte("refresh-secret"), nil
	})
	if err != nil || !token.Valid {
		t.Fatalf("refresh token does not parse with its own secret: %v", err)
	}
}

func TestHashRefreshToken(t *testing.T) {
	hash, err := HashRefreshToken("some-long-refresh-token")
	if err != nil {
		t.Fatalf("HashRefreshToken failed: %v", err)
	}
	if hash == "some-long-refresh-token" {
		t.Fatalf("token stored unhashed")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(hash), []byte("something else")); err == nil {
		t.Errorf("hash matches a different input")
	}
}
