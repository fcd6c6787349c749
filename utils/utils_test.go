package utils

import "testing"

func TestPasswordHash(t *testing.T) {
	hash, err := HashPassword("secret123")
	if err != nil {
		t.Fatalf("HashPassword: %v", err)
	}
	if !CheckPasswordHash("secret123", hash) {
		t.Errorf("expected password to match its hash")
	}
	if CheckPasswordHash("secret124", hash) {
		t.Errorf("expected different password not to match")
	}
}

func TestIsValidEmail(t *testing.T) {
	cases := map[string]bool{
		"ann@example.com":        true,
		"a.b+c@mail.example.org": true,
		"":                       false,
		"ann":                    false,
		"ann@localhost":          false,
		"Ann <ann@example.com>":  false,
		"ann@example.com extra":  false,
	}
	for email, want := range cases {
		if got := IsValidEmail(email); got != want {
			t.Errorf("IsValidEmail(%q) = %v, want %v", email, got, want)
		}
	}
}
