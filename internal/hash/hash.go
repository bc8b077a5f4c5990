// Package hash provides content hashing for plan identity.
//
// Plans are identified by the SHA-256 digest of their canonical encoding,
// rendered as "sha256-<hex>". The package provides a real implementation
// using crypto/sha256, a fake implementation for testing, and a CIDv1
// helper for reporting the content address of written plan files.
package hash

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"strings"

	"github.com/ipfs/go-cid"
	"github.com/multiformats/go-multihash"
)

// Prefix is the algorithm tag prepended to every content identifier.
const Prefix = "sha256-"

// digestHexLen is the length of a hex-encoded SHA-256 digest.
const digestHexLen = sha256.Size * 2

// Hasher provides an abstraction for content identifier derivation.
type Hasher interface {
	// ContentID returns the identifier for the given bytes.
	ContentID(data []byte) string
}

// SHA256Hasher implements Hasher using SHA-256.
type SHA256Hasher struct{}

// NewSHA256Hasher creates a new SHA256Hasher.
func NewSHA256Hasher() *SHA256Hasher {
	return &SHA256Hasher{}
}

// ContentID returns "sha256-" followed by the hex-encoded digest of data.
func (h *SHA256Hasher) ContentID(data []byte) string {
	return ContentID(data)
}

// ContentID returns "sha256-" followed by the hex-encoded digest of data.
func ContentID(data []byte) string {
	sum := sha256.Sum256(data)
	return Prefix + hex.EncodeToString(sum[:])
}

// ParseContentID checks that id is "sha256-" followed by exactly 64
// lowercase hex characters and returns the decoded digest.
func ParseContentID(id string) ([sha256.Size]byte, error) {
	var digest [sha256.Size]byte
	hexPart, ok := strings.CutPrefix(id, Prefix)
	if !ok {
		return digest, fmt.Errorf("content id %q: missing %q prefix", id, Prefix)
	}
	if len(hexPart) != digestHexLen {
		return digest, fmt.Errorf("content id %q: digest is %d characters, want %d", id, len(hexPart), digestHexLen)
	}
	if strings.ToLower(hexPart) != hexPart {
		return digest, fmt.Errorf("content id %q: digest must be lowercase hex", id)
	}
	decoded, err := hex.DecodeString(hexPart)
	if err != nil {
		return digest, fmt.Errorf("content id %q: %w", id, err)
	}
	copy(digest[:], decoded)
	return digest, nil
}

// CIDv1 returns a CIDv1 string using the "raw" multicodec and a sha2-256
// multihash of data.
func CIDv1(data []byte) (string, error) {
	sum, err := multihash.Sum(data, multihash.SHA2_256, -1)
	if err != nil {
		return "", fmt.Errorf("failed to compute multihash: %w", err)
	}
	return cid.NewCidV1(cid.Raw, sum).String(), nil
}

// FakeHasher implements Hasher with predetermined identifiers for testing.
type FakeHasher struct {
	ids   map[string]string
	Calls [][]byte
}

// NewFakeHasher creates a new FakeHasher.
func NewFakeHasher() *FakeHasher {
	return &FakeHasher{
		ids: make(map[string]string),
	}
}

// SetID sets the identifier returned for specific content (for testing).
func (h *FakeHasher) SetID(content, id string) {
	h.ids[content] = id
}

// ContentID records the input and returns the predetermined identifier.
func (h *FakeHasher) ContentID(data []byte) string {
	h.Calls = append(h.Calls, append([]byte(nil), data...))
	if id, ok := h.ids[string(data)]; ok {
		return id
	}
	// Default id if not set
	return "sha256-fake"
}
