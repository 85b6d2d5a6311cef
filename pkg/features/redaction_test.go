package features

import (
	"testing"
)

func TestRedactor_DefaultMasksEmails(t *testing.T) {
	r, err := NewRedactor(nil, "")
	if err != nil {
		t.Fatalf("NewRedactor: %v", err)
	}

	tests := []struct {
		in   string
		want string
	}{
		{"password reset for alice@example.com", "password reset for [REDACTED]"},
		{"cc Bob.Smith+tag@Sub.Example.ORG please", "cc [REDACTED] please"},
		{"two: a@b.io and c@d.io", "two: [REDACTED] and [REDACTED]"},
		{"no addresses here", "no addresses here"},
		{"", ""},
	}
	for _, tt := range tests {
		if got := r.Redact(tt.in); got != tt.want {
			t.Errorf("Redact(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestRedactor_CustomPatternsAndReplacement(t *testing.T) {
	r, err := NewRedactor([]string{`\b\d{16}\b`, `token=\S+`}, "<masked>")
	if err != nil {
		t.Fatalf("NewRedactor: %v", err)
	}

	got := r.Redact("card 4111111111111111 with token=abc123 used")
	want := "card <masked> with <masked> used"
	if got != want {
		t.Errorf("Redact = %q, want %q", got, want)
	}

	// Custom patterns replace the defaults entirely.
	if got := r.Redact("mail alice@example.com"); got != "mail alice@example.com" {
		t.Errorf("default pattern leaked into custom set: %q", got)
	}
}

func TestRedactor_InvalidPattern(t *testing.T) {
	if _, err := NewRedactor([]string{`valid`, `[unclosed`}, ""); err == nil {
		t.Error("expected compile error for invalid pattern")
	}
}
