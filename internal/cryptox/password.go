// Package cryptox hashes and verifies user passwords with argon2id.
//
// Hashes are stored in the PHC string format so the parameters travel with
// the hash and can be raised later without invalidating existing records:
//
//	$argon2id$v=19$m=65536,t=1,p=4$<salt>$<key>
package cryptox

import (
	"crypto/subtle"
	"encoding/base64"
	"errors"
	"fmt"
	"strings"

	"github.com/dmitrijs2005/visadesk/internal/common"
	"golang.org/x/crypto/argon2"
)

var ErrMalformedHash = errors.New("malformed password hash")

// Params are the argon2id cost parameters.
type Params struct {
	Time    uint32
	Memory  uint32 // KiB
	Threads uint8
	KeyLen  uint32
	SaltLen int
}

// DefaultParams is the cost used for stored user passwords.
var DefaultParams = Params{Time: 1, Memory: 64 * 1024, Threads: 4, KeyLen: 32, SaltLen: 32}

// DeriveKey runs argon2id over password and salt with the given parameters.
func DeriveKey(password, salt []byte, p Params) []byte {
	return argon2.IDKey(password, salt, p.Time, p.Memory, p.Threads, p.KeyLen)
}

// HashPassword returns the encoded argon2id hash of password using a fresh
// random salt.
func HashPassword(password []byte, p Params) string {
	salt := common.GenerateRandByteArray(p.SaltLen)
	key := DeriveKey(password, salt, p)
	defer common.WipeByteArray(key)

	return fmt.Sprintf("$argon2id$v=%d$m=%d,t=%d,p=%d$%s$%s",
		argon2.Version, p.Memory, p.Time, p.Threads,
		base64.RawStdEncoding.EncodeToString(salt),
		base64.RawStdEncoding.EncodeToString(key))
}

// VerifyPassword reports whether password matches the encoded hash. The
// comparison is constant-time.
func VerifyPassword(encoded string, password []byte) (bool, error) {
	p, salt, key, err := decodeHash(encoded)
	if err != nil {
		return false, err
	}
	candidate := DeriveKey(password, salt, p)
	defer common.WipeByteArray(candidate)

	return subtle.ConstantTimeCompare(key, candidate) == 1, nil
}

func decodeHash(encoded string) (Params, []byte, []byte, error) {
	var p Params

	parts := strings.Split(encoded, "$")
	if len(parts) != 6 || parts[1] != "argon2id" {
		return p, nil, nil, ErrMalformedHash
	}

	var version int
	if _, err := fmt.Sscanf(parts[2], "v=%d", &version); err != nil {
		return p, nil, nil, fmt.Errorf("%w: %v", ErrMalformedHash, err)
	}
	if version != argon2.Version {
		return p, nil, nil, fmt.Errorf("%w: unsupported version %d", ErrMalformedHash, version)
	}

	if _, err := fmt.Sscanf(parts[3], "m=%d,t=%d,p=%d", &p.Memory, &p.Time, &p.Threads); err != nil {
		return p, nil, nil, fmt.Errorf("%w: %v", ErrMalformedHash, err)
	}

	salt, err := base64.RawStdEncoding.DecodeString(parts[4])
	if err != nil {
		return p, nil, nil, fmt.Errorf("%w: salt: %v", ErrMalformedHash, err)
	}
	key, err := base64.RawStdEncoding.DecodeString(parts[5])
	if err != nil {
		return p, nil, nil, fmt.Errorf("%w: key: %v", ErrMalformedHash, err)
	}

	p.SaltLen = len(salt)
	p.KeyLen = uint32(len(key))
	return p, salt, key, nil
}
