package helpers

import (
	"strings"
	"testing"

	"golang.org/x/crypto/bcrypt"
)

func TestHashPassword_NotPlaintext(t *testing.T) {
	t.Parallel()

	hash, err := HashPassword("secret123", bcrypt.MinCost)
	if err != nil {
		t.Fatalf("HashPassword error: %v", err)
	}
	if hash == "secret123" {
		t.Fatal("hash equals the plaintext")
	}
	if !strings.HasPrefix(hash, "$2") {
		t.Fatalf("unexpected hash format: %q", hash)
	}
}

func TestHashPassword_DistinctSalts(t *testing.T) {
	t.Parallel()

	h1, err := HashPassword("secret123", bcrypt.MinCost)
	if err != nil {
		t.Fatalf("HashPassword error: %v", err)
	}
	h2, err := HashPassword("secret123", bcrypt.MinCost)
	if err != nil {
		t.Fatalf("HashPassword error: %v", err)
	}
	if h1 == h2 {
		t.Fatal("two hashes of the same password are identical")
	}
}

func TestCheckPassword(t *testing.T) {
	t.Parallel()

	hash, err := HashPassword("secret123", bcrypt.MinCost)
	if err != nil {
		t.Fatalf("HashPassword error: %v", err)
	}
	if !CheckPassword(hash, "secret123") {
		t.Fatal("correct password rejected")
	}
	if CheckPassword(hash, "secret124") {
		t.Fatal("wrong password accepted")
	}
	if CheckPassword("not-a-hash", "secret123") {
		t.Fatal("garbage hash accepted")
	}
}

func TestHashPassword_ClampsCost(t *testing.T) {
	t.Parallel()

	// Out-of-range costs fall back to the default instead of failing.
	hash, err := HashPassword("secret123", 99)
	if err != nil {
		t.Fatalf("HashPassword error: %v", err)
	}
	cost, err := bcrypt.Cost([]byte(hash))
	if err != nil {
		t.Fatalf("Cost error: %v", err)
	}
	if cost != bcrypt.DefaultCost {
		t.Fatalf("cost = %d, want %d", cost, bcrypt.DefaultCost)
	}
}
