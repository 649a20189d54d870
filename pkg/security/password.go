package security

import (
	"crypto/rand"
	"crypto/sha256"
	"crypto/subtle"
	"encoding/base64"
	"fmt"
	"strconv"
	"strings"

	"golang.org/x/crypto/argon2"
	"golang.org/x/crypto/pbkdf2"

	"github.com/angelmondragon/teastore-backend/pkg/config"
)

// ErrInvalidHash signals a stored password hash in an unknown or broken format.
var ErrInvalidHash = fmt.Errorf("invalid password hash")

const (
	argonPrefix  = "$argon2id$"
	legacyPrefix = "pbkdf2_sha256$"
)

// ArgonParams are the Argon2id settings recorded in each hash string.
type ArgonParams struct {
	Memory      uint32
	Time        uint32
	Parallelism uint8
	SaltLen     uint32
	KeyLen      uint32
}

// HashPassword encodes password as
// $argon2id$v=19$m=<kb>,t=<passes>,p=<threads>$<salt>$<key>.
func HashPassword(password string, cfg config.PasswordConfig) (string, error) {
	if password == "" {
		return "", fmt.Errorf("password cannot be empty")
	}
	params := paramsFromConfig(cfg)
	salt := make([]byte, params.SaltLen)
	if _, err := rand.Read(salt); err != nil {
		return "", fmt.Errorf("generate salt: %w", err)
	}
	key := argon2.IDKey([]byte(password), salt, params.Time, params.Memory, params.Parallelism, params.KeyLen)
	return fmt.Sprintf("%sv=%d$m=%d,t=%d,p=%d$%s$%s",
		argonPrefix, argon2.Version, params.Memory, params.Time, params.Parallelism,
		b64.EncodeToString(salt), b64.EncodeToString(key)), nil
}

var b64 = base64.RawStdEncoding

// VerifyPassword checks password against an Argon2id hash or a
// pbkdf2_sha256 hash carried over from accounts created before the switch.
func VerifyPassword(password, encoded string) (bool, error) {
	switch {
	case strings.HasPrefix(encoded, argonPrefix):
		params, salt, key, err := decodeArgon(encoded)
		if err != nil {
			return false, err
		}
		computed := argon2.IDKey([]byte(password), salt, params.Time, params.Memory, params.Parallelism, params.KeyLen)
		return subtle.ConstantTimeCompare(key, computed) == 1, nil
	case strings.HasPrefix(encoded, legacyPrefix):
		return verifyLegacy(password, encoded)
	default:
		return false, ErrInvalidHash
	}
}

// NeedsRehash reports whether encoded should be replaced with a fresh hash
// under the current settings.
func NeedsRehash(encoded string, cfg config.PasswordConfig) bool {
	if !strings.HasPrefix(encoded, argonPrefix) {
		return true
	}
	params, salt, key, err := decodeArgon(encoded)
	if err != nil {
		return true
	}
	want := paramsFromConfig(cfg)
	return params.Memory != want.Memory ||
		params.Time != want.Time ||
		params.Parallelism != want.Parallelism ||
		uint32(len(salt)) != want.SaltLen ||
		uint32(len(key)) != want.KeyLen
}

func decodeArgon(encoded string) (ArgonParams, []byte, []byte, error) {
	parts := strings.Split(strings.TrimPrefix(encoded, argonPrefix), "$")
	if len(parts) != 4 {
		return ArgonParams{}, nil, nil, ErrInvalidHash
	}
	var version int
	if _, err := fmt.Sscanf(parts[0], "v=%d", &version); err != nil || version != argon2.Version {
		return ArgonParams{}, nil, nil, ErrInvalidHash
	}
	var params ArgonParams
	if _, err := fmt.Sscanf(parts[1], "m=%d,t=%d,p=%d", &params.Memory, &params.Time, &params.Parallelism); err != nil {
		return ArgonParams{}, nil, nil, ErrInvalidHash
	}
	salt, err := b64.DecodeString(parts[2])
	if err != nil {
		return ArgonParams{}, nil, nil, ErrInvalidHash
	}
	key, err := b64.DecodeString(parts[3])
	if err != nil || len(key) == 0 {
		return ArgonParams{}, nil, nil, ErrInvalidHash
	}
	params.SaltLen = uint32(len(salt))
	params.KeyLen = uint32(len(key))
	return params, salt, key, nil
}

// verifyLegacy handles pbkdf2_sha256$<iterations>$<salt>$<base64 key>.
func verifyLegacy(password, encoded string) (bool, error) {
	parts := strings.Split(encoded, "$")
	if len(parts) != 4 {
		return false, ErrInvalidHash
	}
	iterations, err := strconv.Atoi(parts[1])
	if err != nil || iterations <= 0 {
		return false, ErrInvalidHash
	}
	key, err := base64.StdEncoding.DecodeString(parts[3])
	if err != nil || len(key) == 0 {
		return false, ErrInvalidHash
	}
	computed := pbkdf2.Key([]byte(password), []byte(parts[2]), iterations, len(key), sha256.New)
	return subtle.ConstantTimeCompare(key, computed) == 1, nil
}

func paramsFromConfig(cfg config.PasswordConfig) ArgonParams {
	return ArgonParams{
		Memory:      uint32(clamp(cfg.ArgonMemoryKB, 8, 512*1024)),
		Time:        uint32(clamp(cfg.ArgonTime, 1, 10)),
		Parallelism: uint8(clamp(cfg.ArgonParallelism, 1, 255)),
		SaltLen:     uint32(clamp(cfg.ArgonSaltLen, 8, 64)),
		KeyLen:      uint32(clamp(cfg.ArgonKeyLen, 16, 64)),
	}
}

func clamp(value, lo, hi int) int {
	return min(max(value, lo), hi)
}
