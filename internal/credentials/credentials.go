// Package credentials turns plaintext secrets into storable credential
// records and verifies secrets against stored records, across hashing-scheme
// versions.
//
// Every record carries an explicit scheme tag so verification can dispatch
// on it. New hashes always use the current scheme (argon2id); records hashed
// under the legacy scheme (bcrypt) keep validating, so a scheme upgrade
// never forces a mass password reset. A user's stored scheme rotates only
// when they next change their password.
package credentials

import (
	"crypto/rand"
	"crypto/subtle"
	"encoding/base64"
	"errors"
	"fmt"
	"strings"

	"golang.org/x/crypto/argon2"
	"golang.org/x/crypto/bcrypt"

	"github.com/calmouapp/calmou/internal/common"
)

const (
	// SchemeBcrypt is the legacy scheme; existing records only.
	SchemeBcrypt = "bcrypt"
	// SchemeArgon2id is the current preferred scheme.
	SchemeArgon2id = "argon2id"
)

// Record is the stored replacement for a plaintext password: a hash in the
// scheme's native encoding plus the scheme tag. Records are created whole
// and replaced whole, never partially mutated.
type Record struct {
	Hash   string
	Scheme string
}

// Config sets the argon2id work factor. It is fixed configuration: changing
// it affects new hashes only.
type Config struct {
	MemoryKB    uint32
	Time        uint32
	Parallelism uint8
	SaltLength  uint32
	KeyLength   uint32
}

// DefaultConfig returns the production work factor.
func DefaultConfig() Config {
	return Config{
		MemoryKB:    64 * 1024,
		Time:        3,
		Parallelism: 2,
		SaltLength:  16,
		KeyLength:   32,
	}
}

// Service hashes and verifies passwords. Hashing is CPU-bound and
// deliberately expensive; callers must not hold a pooled database
// connection while calling into it.
type Service struct {
	cfg Config
}

func New(cfg Config) (*Service, error) {
	if cfg.MemoryKB < 8*1024 || cfg.Time < 1 || cfg.Parallelism < 1 {
		return nil, errors.New("credentials: work factor below safe minimum")
	}
	if cfg.SaltLength < 16 || cfg.KeyLength < 16 {
		return nil, errors.New("credentials: salt/key length below safe minimum")
	}
	return &Service{cfg: cfg}, nil
}

// Hash produces a record under the current preferred scheme.
func (s *Service) Hash(plaintext string) (Record, error) {
	salt := make([]byte, s.cfg.SaltLength)
	if _, err := rand.Read(salt); err != nil {
		return Record{}, err
	}

	hash := argon2.IDKey([]byte(plaintext), salt, s.cfg.Time, s.cfg.MemoryKB, s.cfg.Parallelism, s.cfg.KeyLength)

	encoded := fmt.Sprintf("$argon2id$v=%d$m=%d,t=%d,p=%d$%s$%s",
		argon2.Version, s.cfg.MemoryKB, s.cfg.Time, s.cfg.Parallelism,
		base64.RawStdEncoding.EncodeToString(salt),
		base64.RawStdEncoding.EncodeToString(hash),
	)

	return Record{Hash: encoded, Scheme: SchemeArgon2id}, nil
}

// Verify reports whether plaintext matches the stored record, dispatching on
// the record's scheme tag. It never rewrites the record. An unrecognized or
// malformed scheme tag yields common.ErrUnsupportedScheme; callers must
// report it externally as a generic authentication failure.
func (s *Service) Verify(plaintext string, rec Record) (bool, error) {
	switch rec.Scheme {
	case SchemeArgon2id:
		return verifyArgon2id(plaintext, rec.Hash)
	case SchemeBcrypt:
		err := bcrypt.CompareHashAndPassword([]byte(rec.Hash), []byte(plaintext))
		if err == nil {
			return true, nil
		}
		if errors.Is(err, bcrypt.ErrMismatchedHashAndPassword) {
			return false, nil
		}
		return false, err
	default:
		return false, common.ErrUnsupportedScheme
	}
}

func verifyArgon2id(plaintext, encoded string) (bool, error) {
	parts := strings.Split(encoded, "$")
	if len(parts) != 6 || parts[1] != "argon2id" {
		return false, fmt.Errorf("%w: malformed argon2id hash", common.ErrUnsupportedScheme)
	}

	var version int
	if _, err := fmt.Sscanf(parts[2], "v=%d", &version); err != nil {
		return false, fmt.Errorf("%w: %v", common.ErrUnsupportedScheme, err)
	}
	if version != argon2.Version {
		return false, fmt.Errorf("%w: argon2 version %d", common.ErrUnsupportedScheme, version)
	}

	var memory, time uint32
	var parallelism uint8
	if _, err := fmt.Sscanf(parts[3], "m=%d,t=%d,p=%d", &memory, &time, &parallelism); err != nil {
		return false, fmt.Errorf("%w: %v", common.ErrUnsupportedScheme, err)
	}

	salt, err := base64.RawStdEncoding.DecodeString(parts[4])
	if err != nil {
		return false, fmt.Errorf("%w: %v", common.ErrUnsupportedScheme, err)
	}
	hash, err := base64.RawStdEncoding.DecodeString(parts[5])
	if err != nil {
		return false, fmt.Errorf("%w: %v", common.ErrUnsupportedScheme, err)
	}

	computed := argon2.IDKey([]byte(plaintext), salt, time, memory, parallelism, uint32(len(hash)))

	return subtle.ConstantTimeCompare(hash, computed) == 1, nil
}

// HashBcrypt exists for migration tooling and tests that need to produce a
// legacy record; application code always hashes through Hash.
func HashBcrypt(plaintext string, cost int) (Record, error) {
	h, err := bcrypt.GenerateFromPassword([]byte(plaintext), cost)
	if err != nil {
		return Record{}, err
	}
	return Record{Hash: string(h), Scheme: SchemeBcrypt}, nil
}
