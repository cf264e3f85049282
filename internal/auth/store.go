package auth

import (
	"crypto/sha256"
	"crypto/subtle"
	"encoding/hex"
	"fmt"
	"os"

	"golang.org/x/crypto/pbkdf2"
	"gopkg.in/yaml.v3"
)

// PBKDF2 parameters for stored passwords.
const (
	pbkdf2Iterations = 390000
	pbkdf2KeyLength  = 32
)

// CredentialEntry is one user record in the credential store file.
type CredentialEntry struct {
	// Name is the username.
	Name string `yaml:"name"`

	// PasswordHash is the hex-encoded PBKDF2-SHA256 hash of the password.
	PasswordHash string `yaml:"password_hash"`

	// Salt is the hex-encoded salt used to derive the hash.
	Salt string `yaml:"salt"`

	// Groups are the group memberships granted to the user.
	Groups []string `yaml:"groups"`
}

// storeFile is the on-disk shape of the credential store.
type storeFile struct {
	Users []CredentialEntry `yaml:"users"`
}

// storedUser is a decoded credential record.
type storedUser struct {
	hash   []byte
	salt   []byte
	groups []string
}

// CredentialStore holds local user credentials. It is immutable after
// construction and safe for concurrent reads.
type CredentialStore struct {
	users map[string]storedUser
}

// NewCredentialStore builds a store from entries. Hashes and salts must be
// hex encoded.
func NewCredentialStore(entries []CredentialEntry) (*CredentialStore, error) {
	users := make(map[string]storedUser, len(entries))
	for _, entry := range entries {
		if entry.Name == "" {
			return nil, fmt.Errorf("credential entry with empty name")
		}
		hash, err := hex.DecodeString(entry.PasswordHash)
		if err != nil {
			return nil, fmt.Errorf("user %s: decode password hash: %w", entry.Name, err)
		}
		salt, err := hex.DecodeString(entry.Salt)
		if err != nil {
			return nil, fmt.Errorf("user %s: decode salt: %w", entry.Name, err)
		}
		users[entry.Name] = storedUser{
			hash:   hash,
			salt:   salt,
			groups: append([]string(nil), entry.Groups...),
		}
	}
	return &CredentialStore{users: users}, nil
}

// LoadCredentialStore reads a YAML credential store file.
func LoadCredentialStore(path string) (*CredentialStore, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read credential store: %w", err)
	}

	var file storeFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("parse credential store: %w", err)
	}

	return NewCredentialStore(file.Users)
}

// HashPassword derives the stored hash for a password and salt.
func HashPassword(password string, salt []byte) []byte {
	return pbkdf2.Key([]byte(password), salt, pbkdf2Iterations, pbkdf2KeyLength, sha256.New)
}

// Verify checks a username/password pair and returns the user's groups.
// Comparison is constant time; unknown users burn a derivation against a
// fixed salt so lookups cannot be distinguished by timing.
func (s *CredentialStore) Verify(username, password string) ([]string, error) {
	user, ok := s.users[username]
	if !ok {
		HashPassword(password, []byte("horao-no-such-user"))
		return nil, ErrInvalidCredentials
	}

	derived := HashPassword(password, user.salt)
	if subtle.ConstantTimeCompare(derived, user.hash) != 1 {
		return nil, ErrInvalidCredentials
	}

	return append([]string(nil), user.groups...), nil
}

// Len returns the number of users in the store.
func (s *CredentialStore) Len() int {
	return len(s.users)
}
