package services

import (
	"context"
	"fmt"
	"strings"

	"golang.org/x/crypto/bcrypt"

	"mindmap/model"
	"mindmap/store"
)

const securityCollection = "userSecurity"

// SecurityService owns the password-recovery side channel: one
// security question per account, created at sign-up and read-only
// afterwards. Answers are compared against a bcrypt digest of the
// case-folded, trimmed text; the raw answer is never stored.
type SecurityService struct {
	store store.DocumentStore
}

func NewSecurityService(st store.DocumentStore) *SecurityService {
	return &SecurityService{store: st}
}

func normalizeAnswer(answer string) string {
	return strings.ToLower(strings.TrimSpace(answer))
}

func (s *SecurityService) SaveCredential(ctx context.Context, userID, email, question, answer string) error {
	hash, err := bcrypt.GenerateFromPassword([]byte(normalizeAnswer(answer)), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("hash security answer: %w", err)
	}
	return s.store.Create(ctx, securityCollection, userID, map[string]interface{}{
		"email":            email,
		"securityQuestion": question,
		"securityAnswer":   string(hash),
	})
}

func (s *SecurityService) GetSecurityQuestion(ctx context.Context, email string) (string, error) {
	cred, err := s.credentialByEmail(ctx, email)
	if err != nil {
		return "", err
	}
	return cred.SecurityQuestion, nil
}

func (s *SecurityService) VerifyAnswer(ctx context.Context, email, answer string) error {
	cred, err := s.credentialByEmail(ctx, email)
	if err != nil {
		return err
	}
	if bcrypt.CompareHashAndPassword([]byte(cred.SecurityAnswerHash), []byte(normalizeAnswer(answer))) != nil {
		return ErrWrongAnswer
	}
	return nil
}

func (s *SecurityService) credentialByEmail(ctx context.Context, email string) (model.SecurityCredential, error) {
	snaps, err := s.store.Query(ctx, securityCollection, store.Filter{Path: "email", Value: email})
	if err != nil {
		return model.SecurityCredential{}, fmt.Errorf("lookup security record: %w", err)
	}
	if len(snaps) == 0 {
		return model.SecurityCredential{}, ErrEmailNotFound
	}
	data := snaps[0].Data
	cred := model.SecurityCredential{}
	cred.Email, _ = data["email"].(string)
	cred.SecurityQuestion, _ = data["securityQuestion"].(string)
	cred.SecurityAnswerHash, _ = data["securityAnswer"].(string)
	return cred, nil
}
