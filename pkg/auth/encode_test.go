package auth

import "testing"

func TestEncodePassword_KnownVector(t *testing.T) {
	// base64(sha256("SuperSecret" + "member@example.com"))
	want := "w2T+Apw4TO+QoOuQBx0ttzhvK4OHklGXMrvohxabgCs="

	if got := EncodePassword("member@example.com", "SuperSecret"); got != want {
		t.Errorf("EncodePassword = %q, want %q", got, want)
	}
}

func TestEncodePassword_Deterministic(t *testing.T) {
	first := EncodePassword("member@example.com", "SuperSecret")
	second := EncodePassword("member@example.com", "SuperSecret")

	if first != second {
		t.Errorf("two identical calls diverged: %q vs %q", first, second)
	}
}

func TestEncodePassword_UsernameLowercased(t *testing.T) {
	lower := EncodePassword("member@example.com", "SuperSecret")
	mixed := EncodePassword("Member@Example.com", "SuperSecret")

	if lower != mixed {
		t.Errorf("username case should not affect the secret: %q vs %q", lower, mixed)
	}
}

func TestEncodePassword_PasswordCaseSensitive(t *testing.T) {
	a := EncodePassword("member@example.com", "SuperSecret")
	b := EncodePassword("member@example.com", "supersecret")

	if a == b {
		t.Error("password case must affect the secret")
	}
}

func TestEncodePassword_NeverRawPassword(t *testing.T) {
	if EncodePassword("member@example.com", "SuperSecret") == "SuperSecret" {
		t.Error("secret must never be the raw password")
	}
}
