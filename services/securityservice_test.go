package services

import (
	"context"
	"errors"
	"testing"

	"mindmap/store"
)

func newSecurityEnv(t *testing.T) (*store.MemoryStore, *SecurityService) {
	t.Helper()
	st := store.NewMemoryStore()
	svc := NewSecurityService(st)
	if err := svc.SaveCredential(context.Background(), "u1", "a@b.com", "First pet?", "  Rex  "); err != nil {
		t.Fatalf("SaveCredential failed: %v", err)
	}
	return st, svc
}

func TestSecurityAnswerIsNotStoredInPlaintext(t *testing.T) {
	st, _ := newSecurityEnv(t)

	data, err := st.Get(context.Background(), "userSecurity", "u1")
	if err != nil {
		t.Fatalf("credential doc missing: %v", err)
	}
	stored, _ := data["securityAnswer"].(string)
	if stored == "rex" || stored == "Rex" || stored == "  Rex  " {
		t.Errorf("answer stored as plaintext: %q", stored)
	}
}

func TestGetSecurityQuestion(t *testing.T) {
	_, svc := newSecurityEnv(t)

	question, err := svc.GetSecurityQuestion(context.Background(), "a@b.com")
	if err != nil {
		t.Fatalf("GetSecurityQuestion failed: %v", err)
	}
	if question != "First pet?" {
		t.Errorf("expected 'First pet?', got %q", question)
	}

	if _, err := svc.GetSecurityQuestion(context.Background(), "missing@b.com"); !errors.Is(err, ErrEmailNotFound) {
		t.Errorf("expected ErrEmailNotFound, got %v", err)
	}
}

func TestVerifyAnswerCaseFoldsAndTrims(t *testing.T) {
	_, svc := newSecurityEnv(t)
	ctx := context.Background()

	for _, answer := range []string{"rex", "REX", " Rex "} {
		if err := svc.VerifyAnswer(ctx, "a@b.com", answer); err != nil {
			t.Errorf("answer %q should verify, got %v", answer, err)
		}
	}

	if err := svc.VerifyAnswer(ctx, "a@b.com", "fido"); !errors.Is(err, ErrWrongAnswer) {
		t.Errorf("expected ErrWrongAnswer, got %v", err)
	}
	if err := svc.VerifyAnswer(ctx, "missing@b.com", "rex"); !errors.Is(err, ErrEmailNotFound) {
		t.Errorf("expected ErrEmailNotFound, got %v", err)
	}
}
