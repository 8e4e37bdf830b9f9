package logger

import (
	"strings"
	"testing"
)

func TestSanitizeKVsRedactsContactPII(t *testing.T) {
	out := sanitizeKVs([]interface{}{
		"email", "alice@example.com",
		"phone_number", "91234567",
		"contact_id", "0a1b2c3d",
		"contact_name", "Alice Tan",
	})
	if len(out) != 8 {
		t.Fatalf("sanitizeKVs: expected 8 entries, got %d", len(out))
	}
	if out[1] != "[REDACTED]" {
		t.Fatalf("email: expected redaction, got %v", out[1])
	}
	if out[3] != "[REDACTED]" {
		t.Fatalf("phone_number: expected redaction, got %v", out[3])
	}
	if out[5] != "0a1b2c3d" {
		t.Fatalf("contact_id: expected passthrough, got %v", out[5])
	}
	hashed, ok := out[7].(string)
	if !ok || !strings.HasPrefix(hashed, "hash:") {
		t.Fatalf("contact_name: expected hash, got %v", out[7])
	}
}

func TestSanitizeKVsOddLength(t *testing.T) {
	out := sanitizeKVs([]interface{}{"status", 201, "dangling"})
	if len(out) != 3 || out[2] != "dangling" {
		t.Fatalf("sanitizeKVs: unexpected output %v", out)
	}
}

func TestNewModes(t *testing.T) {
	for _, mode := range []string{"development", "production", "test", ""} {
		log, err := New(mode)
		if err != nil {
			t.Fatalf("New(%q): %v", mode, err)
		}
		log.With("component", "test").Debug("hello")
		log.Sync()
	}
}

func TestScrubNested(t *testing.T) {
	got := scrub("form", map[string]interface{}{
		"name":        "Alice Tan",
		"email":       "alice@example.com",
		"dateOfBirth": "05-01-1990",
		"tags":        []interface{}{"a", map[string]interface{}{"phone": "91234567"}},
	})
	m, ok := got.(map[string]interface{})
	if !ok {
		t.Fatalf("scrub: expected map, got %T", got)
	}
	if m["email"] != "[REDACTED]" || m["name"] != "Alice Tan" {
		t.Fatalf("scrub: unexpected %v", m)
	}
	inner := m["tags"].([]interface{})[1].(map[string]interface{})
	if inner["phone"] != "[REDACTED]" {
		t.Fatalf("scrub: nested phone not redacted: %v", inner)
	}
}

func TestHashValueStable(t *testing.T) {
	a := hashValue("10.0.0.1")
	if a != hashValue("10.0.0.1") || a == hashValue("10.0.0.2") {
		t.Fatalf("hashValue: not stable/distinct")
	}
	if hashValue("") != "" {
		t.Fatalf("hashValue(empty): expected empty")
	}
}
