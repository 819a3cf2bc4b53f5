package services

import (
	"errors"
	"testing"
	"time"

	"github.com/GuilhermeFusuma/portifolio/errs"
)

var testSecret = []byte("test-secret-key")

func TestResetTokenRoundTrip(t *testing.T) {
	svc := NewTokenService(testSecret, time.Hour, 0)

	token, err := svc.IssueResetToken("user@example.com")
	if err != nil {
		t.Fatalf("IssueResetToken returned error: %v", err)
	}

	email, err := svc.VerifyResetToken(token)
	if err != nil {
		t.Fatalf("VerifyResetToken returned error: %v", err)
	}
	if email != "user@example.com" {
		t.Errorf("VerifyResetToken = %q, want %q", email, "user@example.com")
	}
}

func TestSessionTokenRoundTrip(t *testing.T) {
	svc := NewTokenService(testSecret, 0, 0)

	token, err := svc.IssueSessionToken(42)
	if err != nil {
		t.Fatalf("IssueSessionToken returned error: %v", err)
	}

	userID, err := svc.VerifySessionToken(token)
	if err != nil {
		t.Fatalf("VerifySessionToken returned error: %v", err)
	}
	if userID != 42 {
		t.Errorf("VerifySessionToken = %d, want 42", userID)
	}
}

func TestExpiredTokenRejected(t *testing.T) {
	svc := NewTokenService(testSecret, 0, 0)

	token, err := svc.issue(purposeReset, "user@example.com", -time.Minute)
	if err != nil {
		t.Fatalf("issue returned error: %v", err)
	}

	if _, err := svc.VerifyResetToken(token); !errors.Is(err, errs.ErrTokenExpired) {
		t.Errorf("VerifyResetToken err = %v, want ErrTokenExpired", err)
	}
}

func TestTamperedTokenRejected(t *testing.T) {
	svc := NewTokenService(testSecret, 0, 0)

	token, err := svc.IssueResetToken("user@example.com")
	if err != nil {
		t.Fatalf("IssueResetToken returned error: %v", err)
	}

	tampered := token[:len(token)-2] + "xx"
	if _, err := svc.VerifyResetToken(tampered); !errors.Is(err, errs.ErrTokenInvalid) {
		t.Errorf("VerifyResetToken err = %v, want ErrTokenInvalid", err)
	}
}

func TestWrongSecretRejected(t *testing.T) {
	issuer := NewTokenService(testSecret, 0, 0)
	verifier := NewTokenService([]byte("another-secret"), 0, 0)

	token, err := issuer.IssueResetToken("user@example.com")
	if err != nil {
		t.Fatalf("IssueResetToken returned error: %v", err)
	}

	if _, err := verifier.VerifyResetToken(token); !errors.Is(err, errs.ErrTokenInvalid) {
		t.Errorf("VerifyResetToken err = %v, want ErrTokenInvalid", err)
	}
}

func TestPurposesDoNotCrossOver(t *testing.T) {
	svc := NewTokenService(testSecret, 0, 0)

	resetToken, err := svc.IssueResetToken("user@example.com")
	if err != nil {
		t.Fatalf("IssueResetToken returned error: %v", err)
	}
	sessionToken, err := svc.IssueSessionToken(7)
	if err != nil {
		t.Fatalf("IssueSessionToken returned error: %v", err)
	}

	if _, err := svc.VerifySessionToken(resetToken); !errors.Is(err, errs.ErrTokenInvalid) {
		t.Errorf("reset token accepted as session token, err = %v", err)
	}
	if _, err := svc.VerifyResetToken(sessionToken); !errors.Is(err, errs.ErrTokenInvalid) {
		t.Errorf("session token accepted as reset token, err = %v", err)
	}
}
