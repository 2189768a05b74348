// Package cryptox turns passwords into the credential strings stored on
// accounts and verifies them at login.
package cryptox

import (
	"crypto/subtle"
	"encoding/base64"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/dmitrijs2005/cyberdefense/internal/common"
	"golang.org/x/crypto/argon2"
)

// Hasher encodes a password for storage and checks a candidate against a
// stored credential.
type Hasher interface {
	Encode(password string) (string, error)
	Verify(password, stored string) bool
}

// Mode names a Hasher implementation in configuration.
type Mode string

const (
	ModePlain    Mode = "plain"
	ModeArgon2id Mode = "argon2id"
)

// NewHasher returns the Hasher for mode with default parameters.
func NewHasher(mode Mode) (Hasher, error) {
	switch mode {
	case ModePlain:
		return Plain{}, nil
	case ModeArgon2id, "":
		return NewArgon2(DefaultArgon2Params), nil
	default:
		return nil, fmt.Errorf("unknown password mode %q", mode)
	}
}

// Plain stores the password verbatim, as the web demo does. Verification
// is a constant-time comparison.
type Plain struct{}

func (Plain) Encode(password string) (string, error) { return password, nil }

func (Plain) Verify(password, stored string) bool {
	return subtle.ConstantTimeCompare([]byte(password), []byte(stored)) == 1
}

// Argon2Params are the argon2id cost parameters. Memory is in KiB.
type Argon2Params struct {
	Time        uint32
	Memory      uint32
	Parallelism uint8
	SaltLength  uint32
	KeyLength   uint32
}

// DefaultArgon2Params match the vault's master-key derivation cost.
var DefaultArgon2Params = Argon2Params{
	Time:        1,
	Memory:      64 * 1024,
	Parallelism: 4,
	SaltLength:  16,
	KeyLength:   32,
}

const argon2ID = "argon2id"

// Argon2 encodes credentials as PHC strings:
//
//	$argon2id$v=19$m=65536,t=1,p=4$<salt>$<hash>
//
// with standard base64 (unpadded) salt and hash.
type Argon2 struct {
	params Argon2Params
}

func NewArgon2(p Argon2Params) *Argon2 {
	return &Argon2{params: p}
}

func (a *Argon2) Encode(password string) (string, error) {
	if a.params.SaltLength == 0 || a.params.KeyLength == 0 {
		return "", errors.New("argon2: salt and key length must be positive")
	}
	salt := common.GenerateRandByteArray(int(a.params.SaltLength))
	hash := argon2.IDKey([]byte(password), salt, a.params.Time, a.params.Memory, a.params.Parallelism, a.params.KeyLength)

	return fmt.Sprintf("$%s$v=%d$m=%d,t=%d,p=%d$%s$%s",
		argon2ID, argon2.Version,
		a.params.Memory, a.params.Time, a.params.Parallelism,
		base64.RawStdEncoding.EncodeToString(salt),
		base64.RawStdEncoding.EncodeToString(hash),
	), nil
}

// Verify recomputes the hash with the parameters embedded in stored.
// A malformed stored credential never verifies.
func (a *Argon2) Verify(password, stored string) bool {
	p, salt, hash, err := parsePHC(stored)
	if err != nil {
		return false
	}
	candidate := argon2.IDKey([]byte(password), salt, p.Time, p.Memory, p.Parallelism, uint32(len(hash)))
	return subtle.ConstantTimeCompare(candidate, hash) == 1
}

func parsePHC(s string) (Argon2Params, []byte, []byte, error) {
	var p Argon2Params

	parts := strings.Split(s, "$")
	if len(parts) != 6 || parts[0] != "" || parts[1] != argon2ID {
		return p, nil, nil, errors.New("argon2: invalid PHC string")
	}
	if parts[2] != "v="+strconv.Itoa(argon2.Version) {
		return p, nil, nil, errors.New("argon2: unsupported version")
	}

	for _, kv := range strings.Split(parts[3], ",") {
		k, v, ok := strings.Cut(kv, "=")
		if !ok {
			return p, nil, nil, errors.New("argon2: invalid parameter")
		}
		n, err := strconv.ParseUint(v, 10, 32)
		if err != nil || n == 0 {
			return p, nil, nil, fmt.Errorf("argon2: invalid parameter %q", k)
		}
		switch k {
		case "m":
			p.Memory = uint32(n)
		case "t":
			p.Time = uint32(n)
		case "p":
			if n > 255 {
				return p, nil, nil, errors.New("argon2: parallelism out of range")
			}
			p.Parallelism = uint8(n)
		default:
			return p, nil, nil, fmt.Errorf("argon2: unknown parameter %q", k)
		}
	}
	if p.Memory == 0 || p.Time == 0 || p.Parallelism == 0 {
		return p, nil, nil, errors.New("argon2: missing parameters")
	}

	salt, err := base64.RawStdEncoding.DecodeString(parts[4])
	if err != nil || len(salt) == 0 {
		return p, nil, nil, errors.New("argon2: invalid salt")
	}
	hash, err := base64.RawStdEncoding.DecodeString(parts[5])
	if err != nil || len(hash) == 0 {
		return p, nil, nil, errors.New("argon2: invalid hash")
	}
	return p, salt, hash, nil
}
