package security

import (
	"crypto/rand"
	"crypto/subtle"
	"encoding/base64"
	"errors"
	"fmt"
	"strings"

	"golang.org/x/crypto/argon2"
)

var ErrInvalidParams = errors.New("invalid argon2 parameters")

// Params are the argon2id cost settings. Memory is in KiB.
type Params struct {
	Memory     uint32
	Iterations uint32
	Threads    uint8
	SaltLength uint32
	KeyLength  uint32
}

// DefaultParams: m=19 MiB, t=2, p=1.
var DefaultParams = Params{
	Memory:     19 * 1024,
	Iterations: 2,
	Threads:    1,
	SaltLength: 16,
	KeyLength:  32,
}

// upper bounds accepted when verifying a stored hash
const (
	maxMemory     = 1 << 20
	maxIterations = 64
	maxKeyLength  = 1024
)

type Argon2Hasher struct {
	params Params
}

func NewArgon2Hasher(p Params) *Argon2Hasher {
	return &Argon2Hasher{params: p}
}

// Hash returns a PHC formatted argon2id hash with a fresh random salt.
func (h *Argon2Hasher) Hash(plain string) (string, error) {
	p := h.params
	if p.Memory == 0 || p.Iterations == 0 || p.Threads == 0 || p.KeyLength == 0 || p.SaltLength == 0 {
		return "", ErrInvalidParams
	}

	salt := make([]byte, p.SaltLength)
	if _, err := rand.Read(salt); err != nil {
		return "", fmt.Errorf("read salt: %w", err)
	}

	key := argon2.IDKey([]byte(plain), salt, p.Iterations, p.Memory, p.Threads, p.KeyLength)

	return fmt.Sprintf(
		"$argon2id$v=%d$m=%d,t=%d,p=%d$%s$%s",
		argon2.Version,
		p.Memory, p.Iterations, p.Threads,
		base64.RawStdEncoding.EncodeToString(salt),
		base64.RawStdEncoding.EncodeToString(key),
	), nil
}

// Verify recomputes the hash with the salt and cost stored in encoded.
// A malformed encoded hash is a mismatch.
func (h *Argon2Hasher) Verify(plain, encoded string) bool {
	p, salt, key, err := decodeHash(encoded)
	if err != nil {
		return false
	}

	other := argon2.IDKey([]byte(plain), salt, p.Iterations, p.Memory, p.Threads, uint32(len(key)))

	return subtle.ConstantTimeCompare(key, other) == 1
}

func decodeHash(encoded string) (Params, []byte, []byte, error) {
	parts := strings.Split(encoded, "$")
	if len(parts) != 6 || parts[0] != "" || parts[1] != "argon2id" {
		return Params{}, nil, nil, errors.New("not an argon2id hash")
	}

	var version int
	if _, err := fmt.Sscanf(parts[2], "v=%d", &version); err != nil || version != argon2.Version {
		return Params{}, nil, nil, errors.New("unsupported argon2 version")
	}

	var p Params
	if _, err := fmt.Sscanf(parts[3], "m=%d,t=%d,p=%d", &p.Memory, &p.Iterations, &p.Threads); err != nil {
		return Params{}, nil, nil, fmt.Errorf("parse params: %w", err)
	}
	if p.Memory == 0 || p.Memory > maxMemory || p.Iterations == 0 || p.Iterations > maxIterations || p.Threads == 0 {
		return Params{}, nil, nil, ErrInvalidParams
	}

	salt, err := base64.RawStdEncoding.DecodeString(parts[4])
	if err != nil || len(salt) == 0 {
		return Params{}, nil, nil, errors.New("bad salt encoding")
	}

	key, err := base64.RawStdEncoding.DecodeString(parts[5])
	if err != nil || len(key) == 0 || len(key) > maxKeyLength {
		return Params{}, nil, nil, errors.New("bad key encoding")
	}

	p.SaltLength = uint32(len(salt))
	p.KeyLength = uint32(len(key))

	return p, salt, key, nil
}
