package hash

import (
	"crypto/sha256"
	"regexp"
	"strings"
	"testing"
)

var contentIDPattern = regexp.MustCompile(`^sha256-[0-9a-f]{64}$`)

func TestContentID(t *testing.T) {
	t.Run("known digest of empty input", func(t *testing.T) {
		got := ContentID(nil)
		want := "sha256-e3b0c44298fc1c149afbf4c8996fb92427ae41e4649b934ca495991b7852b855"
		if got != want {
			t.Errorf("ContentID(nil) = %s, want %s", got, want)
		}
	})

	t.Run("deterministic", func(t *testing.T) {
		data := []byte(`{"plan_id":"sha256-PLACEHOLDER"}`)
		if ContentID(data) != ContentID(append([]byte(nil), data...)) {
			t.Error("ContentID inconsistent for equal input")
		}
	})

	t.Run("different input produces different id", func(t *testing.T) {
		if ContentID([]byte("content A")) == ContentID([]byte("content B")) {
			t.Error("different content produced same id")
		}
	})

	t.Run("well formed", func(t *testing.T) {
		for _, in := range []string{"", "a", "hello world", strings.Repeat("x", 4096)} {
			id := ContentID([]byte(in))
			if !contentIDPattern.MatchString(id) {
				t.Errorf("ContentID(%q) = %q, not well formed", in, id)
			}
		}
	})

	t.Run("hasher matches package function", func(t *testing.T) {
		data := []byte("hello world")
		if NewSHA256Hasher().ContentID(data) != ContentID(data) {
			t.Error("SHA256Hasher.ContentID differs from ContentID")
		}
	})
}

func TestParseContentID(t *testing.T) {
	valid := ContentID([]byte("hello world"))

	tests := []struct {
		name      string
		id        string
		wantError bool
	}{
		{"valid", valid, false},
		{"missing prefix", strings.TrimPrefix(valid, Prefix), true},
		{"wrong prefix", "sha512-" + strings.TrimPrefix(valid, Prefix), true},
		{"placeholder", "sha256-PLACEHOLDER", true},
		{"too short", valid[:len(valid)-1], true},
		{"uppercase hex", Prefix + strings.ToUpper(strings.TrimPrefix(valid, Prefix)), true},
		{"non hex", Prefix + strings.Repeat("g", 64), true},
		{"empty", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseContentID(tt.id)
			if (err != nil) != tt.wantError {
				t.Errorf("ParseContentID(%q) error = %v, wantError %v", tt.id, err, tt.wantError)
			}
		})
	}

	t.Run("decodes digest", func(t *testing.T) {
		digest, err := ParseContentID(valid)
		if err != nil {
			t.Fatalf("ParseContentID failed: %v", err)
		}
		if digest != sha256.Sum256([]byte("hello world")) {
			t.Error("decoded digest does not match sha256 of input")
		}
	})
}

func TestCIDv1(t *testing.T) {
	a, err := CIDv1([]byte("plan"))
	if err != nil {
		t.Fatalf("CIDv1 failed: %v", err)
	}
	b, err := CIDv1([]byte("plan"))
	if err != nil {
		t.Fatalf("CIDv1 failed: %v", err)
	}
	if a != b {
		t.Errorf("CIDv1 inconsistent: %s vs %s", a, b)
	}
	// base32 multibase prefix for CIDv1
	if !strings.HasPrefix(a, "b") {
		t.Errorf("expected base32 CIDv1, got %s", a)
	}
	c, err := CIDv1([]byte("other plan"))
	if err != nil {
		t.Fatalf("CIDv1 failed: %v", err)
	}
	if a == c {
		t.Error("different content produced same CID")
	}
}

func TestFakeHasher(t *testing.T) {
	hasher := NewFakeHasher()

	t.Run("returns default id for unknown content", func(t *testing.T) {
		if id := hasher.ContentID([]byte("unknown")); id != "sha256-fake" {
			t.Errorf("Expected default id 'sha256-fake', got: %s", id)
		}
	})

	t.Run("returns configured id for known content", func(t *testing.T) {
		hasher.SetID("known", "sha256-custom")
		if id := hasher.ContentID([]byte("known")); id != "sha256-custom" {
			t.Errorf("Expected id sha256-custom, got: %s", id)
		}
	})

	t.Run("records calls", func(t *testing.T) {
		if len(hasher.Calls) != 2 {
			t.Fatalf("expected 2 recorded calls, got %d", len(hasher.Calls))
		}
		if string(hasher.Calls[1]) != "known" {
			t.Errorf("expected last call 'known', got %q", hasher.Calls[1])
		}
	})
}
