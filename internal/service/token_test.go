package service

import (
	"errors"
	"strings"
	"testing"
	"time"

	apperrors "github.com/notemind/notemind/internal/errors"
)

func TestTokenService_IssueAndVerify(t *testing.T) {
	t.Parallel()

	svc := NewTokenService("super-secret", 30*24*time.Hour)

	token, err := svc.Issue(42)
	if err != nil {
		t.Fatalf("Issue error: %v", err)
	}

	userID, err := svc.Verify(token)
	if err != nil {
		t.Fatalf("Verify error: %v", err)
	}
	if userID != 42 {
		t.Errorf("user ID mismatch: got %d want 42", userID)
	}
}

func TestTokenService_Expired(t *testing.T) {
	t.Parallel()

	svc := NewTokenService("super-secret", -1*time.Second)

	token, err := svc.Issue(7)
	if err != nil {
		t.Fatalf("Issue error: %v", err)
	}

	_, err = svc.Verify(token)
	if !errors.Is(err, apperrors.ErrUnauthorized) {
		t.Errorf("expected ErrUnauthorized for expired token, got %v", err)
	}
}

func TestTokenService_WrongSecret(t *testing.T) {
	t.Parallel()

	issuer := NewTokenService("right-secret", time.Hour)
	verifier := NewTokenService("wrong-secret", time.Hour)

	token, err := issuer.Issue(7)
	if err != nil {
		t.Fatalf("Issue error: %v", err)
	}

	_, err = verifier.Verify(token)
	if !errors.Is(err, apperrors.ErrUnauthorized) {
		t.Errorf("expected ErrUnauthorized for wrong secret, got %v", err)
	}
}

func TestTokenService_TamperedToken(t *testing.T) {
	t.Parallel()

	svc := NewTokenService("super-secret", time.Hour)

	token, err := svc.Issue(7)
	if err != nil {
		t.Fatalf("Issue error: %v", err)
	}

	// Flip the leading byte of header, payload and signature in turn;
	// no variant may verify.
	segments := strings.Split(token, ".")
	if len(segments) != 3 {
		t.Fatalf("expected 3 token segments, got %d", len(segments))
	}

	for i := range segments {
		tampered := make([]string, 3)
		copy(tampered, segments)

		flipped := []byte(tampered[i])
		if flipped[0] == 'A' {
			flipped[0] = 'B'
		} else {
			flipped[0] = 'A'
		}
		tampered[i] = string(flipped)

		mutated := strings.Join(tampered, ".")
		if _, err := svc.Verify(mutated); !errors.Is(err, apperrors.ErrUnauthorized) {
			t.Fatalf("token with tampered segment %d verified", i)
		}
	}
}

func TestTokenService_Malformed(t *testing.T) {
	t.Parallel()

	svc := NewTokenService("super-secret", time.Hour)

	for _, token := range []string{"", "not.a.jwt", "garbage"} {
		if _, err := svc.Verify(token); !errors.Is(err, apperrors.ErrUnauthorized) {
			t.Errorf("Verify(%q): expected ErrUnauthorized, got %v", token, err)
		}
	}
}
