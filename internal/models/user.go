package models

import (
	"time"

	"github.com/calmouapp/calmou/internal/credentials"
)

// User is the account record. Email is globally unique; the credential
// record is never stored or compared in plaintext.
type User struct {
	ID         int64
	Name       string
	Email      string
	Credential credentials.Record
	Config     map[string]any

	// Optional profile fields.
	CPF         *string
	DateOfBirth *time.Time
	BloodType   *string
	Allergies   *string
	PhotoRef    *string

	CreatedAt time.Time
}

// NewUser is the registration candidate. Password is plaintext here and
// only here; it is hashed before anything touches storage.
type NewUser struct {
	Name     string
	Email    string
	Password string
	Config   map[string]any
}

// UserPatch carries optional account updates. A nil field means "leave
// unchanged", not "clear". When Password is present and non-empty the
// stored credential record is replaced wholesale; otherwise it is left
// untouched byte-for-byte.
type UserPatch struct {
	Name     *string
	Email    *string
	Password *string
	Config   map[string]any
}

// ProfilePatch mutates only non-credential profile fields; it can never
// touch email or the credential record.
type ProfilePatch struct {
	Name        *string
	CPF         *string
	DateOfBirth *time.Time
	BloodType   *string
	Allergies   *string
	PhotoRef    *string
}
