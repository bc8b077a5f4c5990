package planner

import (
	"crypto/ed25519"
	"crypto/rand"
	"encoding/base64"
	"errors"
	"strings"
	"testing"

	"github.com/danieljhkim/rtt-planner/internal/hash"
)

func buildEncoded(t *testing.T) (*Plan, []byte) {
	t.Helper()
	plan, err := NewBuilder(hash.NewSHA256Hasher(), "").Build(sampleRoutes())
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}
	data, err := Encode(plan)
	if err != nil {
		t.Fatalf("Encode failed: %v", err)
	}
	return plan, data
}

func signPlan(t *testing.T, plan *Plan, unsignedFile []byte, priv ed25519.PrivateKey) []byte {
	t.Helper()
	sig := base64.StdEncoding.EncodeToString(ed25519.Sign(priv, unsignedFile))
	data, err := Encode(plan.Signed(Signature{Alg: "ed25519", KeyID: "dev", Sig: sig}))
	if err != nil {
		t.Fatalf("Encode failed: %v", err)
	}
	return data
}

func TestVerify_Unsigned(t *testing.T) {
	plan, data := buildEncoded(t)

	result, err := Verify(data, hash.NewSHA256Hasher(), VerifyOptions{})
	if err != nil {
		t.Fatalf("Verify failed: %v", err)
	}
	if result.Plan.ID != plan.ID {
		t.Errorf("verified plan_id = %s, want %s", result.Plan.ID, plan.ID)
	}
	if result.Signed || result.SignatureVerified {
		t.Error("unsigned plan reported as signed")
	}
}

func TestVerify_Tampered(t *testing.T) {
	_, data := buildEncoded(t)
	tampered := strings.Replace(string(data), "tool.fetch", "tool.exfiltrate", 1)

	_, err := Verify([]byte(tampered), hash.NewSHA256Hasher(), VerifyOptions{})
	if !errors.Is(err, ErrIntegrity) {
		t.Fatalf("expected ErrIntegrity, got %v", err)
	}
}

func TestVerify_MalformedID(t *testing.T) {
	_, data := buildEncoded(t)
	plan, _ := ParsePlan(data)
	plan.ID = PlaceholderID
	bad, _ := Encode(plan)

	_, err := Verify(bad, hash.NewSHA256Hasher(), VerifyOptions{})
	if !errors.Is(err, ErrIntegrity) {
		t.Fatalf("expected ErrIntegrity, got %v", err)
	}
}

func TestVerify_NotJSON(t *testing.T) {
	_, err := Verify([]byte("not json"), hash.NewSHA256Hasher(), VerifyOptions{})
	if !errors.Is(err, ErrParse) {
		t.Fatalf("expected ErrParse, got %v", err)
	}
}

func TestVerify_RequireSignature(t *testing.T) {
	_, data := buildEncoded(t)

	_, err := Verify(data, hash.NewSHA256Hasher(), VerifyOptions{RequireSignature: true})
	if !errors.Is(err, ErrSignature) {
		t.Fatalf("expected ErrSignature, got %v", err)
	}
}

func TestVerify_SignedWithKey(t *testing.T) {
	pub, priv, err := ed25519.GenerateKey(rand.Reader)
	if err != nil {
		t.Fatalf("GenerateKey failed: %v", err)
	}
	plan, unsigned := buildEncoded(t)
	signed := signPlan(t, plan, unsigned, priv)

	t.Run("valid signature", func(t *testing.T) {
		result, err := Verify(signed, hash.NewSHA256Hasher(), VerifyOptions{PublicKey: pub, RequireSignature: true})
		if err != nil {
			t.Fatalf("Verify failed: %v", err)
		}
		if !result.Signed || !result.SignatureVerified {
			t.Errorf("result = %+v, want signed and verified", result)
		}
	})

	t.Run("signed without key only checks integrity", func(t *testing.T) {
		result, err := Verify(signed, hash.NewSHA256Hasher(), VerifyOptions{})
		if err != nil {
			t.Fatalf("Verify failed: %v", err)
		}
		if !result.Signed || result.SignatureVerified {
			t.Errorf("result = %+v, want signed but not verified", result)
		}
	})

	t.Run("wrong key", func(t *testing.T) {
		otherPub, _, _ := ed25519.GenerateKey(rand.Reader)
		_, err := Verify(signed, hash.NewSHA256Hasher(), VerifyOptions{PublicKey: otherPub})
		if !errors.Is(err, ErrSignature) {
			t.Fatalf("expected ErrSignature, got %v", err)
		}
	})

	t.Run("unsupported algorithm", func(t *testing.T) {
		p, _ := ParsePlan(signed)
		p.Sign.Alg = "rsa"
		data, _ := Encode(p)
		_, err := Verify(data, hash.NewSHA256Hasher(), VerifyOptions{PublicKey: pub})
		if !errors.Is(err, ErrSignature) {
			t.Fatalf("expected ErrSignature, got %v", err)
		}
	})

	t.Run("signature not base64", func(t *testing.T) {
		data, _ := Encode(plan.Signed(Signature{Alg: "ed25519", KeyID: "dev", Sig: "ABCDEF!"}))
		_, err := Verify(data, hash.NewSHA256Hasher(), VerifyOptions{PublicKey: pub})
		if !errors.Is(err, ErrSignature) {
			t.Fatalf("expected ErrSignature, got %v", err)
		}
	})
}

func TestParsePublicKey(t *testing.T) {
	pub, _, err := ed25519.GenerateKey(rand.Reader)
	if err != nil {
		t.Fatalf("GenerateKey failed: %v", err)
	}
	encoded := base64.StdEncoding.EncodeToString(pub)

	tests := []struct {
		name      string
		input     string
		wantError bool
	}{
		{"prefixed", "ed25519:" + encoded, false},
		{"bare", encoded, false},
		{"trailing newline", encoded + "\n", false},
		{"wrong key type", "rsa:" + encoded, true},
		{"not base64", "ed25519:***", true},
		{"wrong length", base64.StdEncoding.EncodeToString([]byte("short")), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParsePublicKey(tt.input)
			if (err != nil) != tt.wantError {
				t.Fatalf("ParsePublicKey error = %v, wantError %v", err, tt.wantError)
			}
			if !tt.wantError && !got.Equal(pub) {
				t.Error("parsed key does not match")
			}
		})
	}
}
