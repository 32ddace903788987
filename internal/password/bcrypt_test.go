package password_test

import (
	"errors"
	"strings"
	"testing"

	"github.com/ErlanBelekov/task-tracker/internal/password"
	"golang.org/x/crypto/bcrypt"
)

func TestBcryptHasher_RoundTrip(t *testing.T) {
	h := password.NewBcryptHasher(bcrypt.MinCost)

	hash, err := h.Hash("Password1!")
	if err != nil {
		t.Fatalf("hash: %v", err)
	}
	if hash == "Password1!" || !strings.HasPrefix(hash, "$2") {
		t.Fatalf("hash %q does not look like bcrypt", hash)
	}
	if err := h.Compare(hash, "Password1!"); err != nil {
		t.Errorf("compare correct password: %v", err)
	}
}

func TestBcryptHasher_WrongPassword_ReturnsErrMismatch(t *testing.T) {
	h := password.NewBcryptHasher(bcrypt.MinCost)

	hash, err := h.Hash("Password1!")
	if err != nil {
		t.Fatalf("hash: %v", err)
	}
	if err := h.Compare(hash, "Password2!"); !errors.Is(err, password.ErrMismatch) {
		t.Errorf("want ErrMismatch, got %v", err)
	}
}

func TestBcryptHasher_SaltsEveryHash(t *testing.T) {
	h := password.NewBcryptHasher(bcrypt.MinCost)

	a, _ := h.Hash("Password1!")
	b, _ := h.Hash("Password1!")
	if a == b {
		t.Error("two hashes of the same password are identical")
	}
}

func TestBcryptHasher_MalformedHash_IsNotMismatch(t *testing.T) {
	h := password.NewBcryptHasher(bcrypt.MinCost)

	err := h.Compare("not-a-bcrypt-hash", "Password1!")
	if err == nil || errors.Is(err, password.ErrMismatch) {
		t.Errorf("want non-mismatch error, got %v", err)
	}
}
