package utils

import "testing"

func TestHashAndVerifyPassword(t *testing.T) {
	hash, err := HashPassword("secret123", 4) // min cost keeps the test fast
	if err != nil {
		t.Fatalf("HashPassword failed: %v", err)
	}
	if hash == "secret123" {
		t.Fatal("hash equals the plain password")
	}
	if !VerifyPassword(hash, "secret123") {
		t.Error("VerifyPassword rejected the correct password")
	}
	if VerifyPassword(hash, "wrong-password") {
		t.Error("VerifyPassword accepted a wrong password")
	}
	if VerifyPassword("not-a-bcrypt-hash", "secret123") {
		t.Error("VerifyPassword accepted a malformed hash")
	}
}
