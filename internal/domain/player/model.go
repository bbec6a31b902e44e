package player

import (
	"crypto/rand"
	"errors"
	"strings"
)

// Max length constants for user-editable fields.
const (
	MaxNameLength = 100
)

// Business rule constants
const (
	StatusActive    = "active"
	StatusSuspended = "suspended"
	StatusArchived  = "archived"

	// PassportCodeLength is the length of the shareable player code
	// printed on court check-in sheets and used for match lookups.
	PassportCodeLength = 8
)

// passportAlphabet excludes ambiguous characters (0/O, 1/I/L).
const passportAlphabet = "ABCDEFGHJKMNPQRSTUVWXYZ23456789"

// Domain errors
var (
	ErrAlreadyArchived = errors.New("player is already archived")
	ErrNotArchived     = errors.New("player is not archived")
)

// Player holds the profile of one community member. Every account with
// the player role has exactly one Player; coaches keep theirs.
type Player struct {
	ID           string
	AccountID    string
	Name         string
	Email        string
	PassportCode string
	Status       string
}

// Validate checks if the Player has valid data.
// PRE: Player struct is initialized
// POST: Returns error if validation fails, nil otherwise
// INVARIANT: Email must contain '@', Name must not be empty
func (p *Player) Validate() error {
	if strings.TrimSpace(p.Name) == "" {
		return errors.New("player name cannot be empty")
	}
	if len(p.Name) > MaxNameLength {
		return errors.New("player name cannot exceed 100 characters")
	}
	if !strings.Contains(p.Email, "@") {
		return errors.New("player email must be valid")
	}
	if len(p.PassportCode) != PassportCodeLength {
		return errors.New("passport code must be 8 characters")
	}
	if p.Status != StatusActive && p.Status != StatusSuspended && p.Status != StatusArchived {
		return errors.New("status must be 'active', 'suspended', or 'archived'")
	}
	return nil
}

// IsActive returns true if the player is currently active.
// INVARIANT: Status field is not mutated
func (p *Player) IsActive() bool {
	return p.Status == StatusActive
}

// Archive sets the player status to archived.
// PRE: Player is not already archived
// POST: Status is set to archived
func (p *Player) Archive() error {
	if p.Status == StatusArchived {
		return ErrAlreadyArchived
	}
	p.Status = StatusArchived
	return nil
}

// Restore sets the player status back to active.
// PRE: Player is currently archived
// POST: Status is set to active
func (p *Player) Restore() error {
	if p.Status != StatusArchived {
		return ErrNotArchived
	}
	p.Status = StatusActive
	return nil
}

// NewPassportCode generates a random 8-character passport code from the
// unambiguous alphabet.
// POST: Returns a code of PassportCodeLength characters
func NewPassportCode() (string, error) {
	buf := make([]byte, PassportCodeLength)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	out := make([]byte, PassportCodeLength)
	for i, b := range buf {
		out[i] = passportAlphabet[int(b)%len(passportAlphabet)]
	}
	return string(out), nil
}
