package security

import (
	"strings"
	"testing"
)

func TestFingerprint(t *testing.T) {
	token := "6qrZcUqja7812RVdnEKjpzOL4CvHBFG"

	fp := Fingerprint(token)
	if len(fp) != 16 {
		t.Errorf("len(Fingerprint()) = %d, want 16", len(fp))
	}
	if strings.Contains(token, fp) {
		t.Error("Fingerprint() must not contain the secret")
	}
	if Fingerprint(token) != fp {
		t.Error("Fingerprint() must be deterministic")
	}
	if Fingerprint(token+"x") == fp {
		t.Error("Fingerprint() of different secrets should differ")
	}
}

func TestFingerprint_Empty(t *testing.T) {
	if got := Fingerprint(""); got != "<empty>" {
		t.Errorf("Fingerprint(\"\") = %q, want %q", got, "<empty>")
	}
}
