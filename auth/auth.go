// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package auth

import (
	"crypto/hmac"
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"strconv"

	"github.com/danielhkuo/un-design/groups"
	"github.com/danielhkuo/un-design/models"
)

// Shared access codes
const (
	AdminPassword = "930522"
	UserPassword  = "2525land"
)

// Participant voter IDs, inclusive
const (
	MinVoterID = 1101
	MaxVoterID = 1440
)

var (
	ErrValidation = errors.New("validation error")

	ErrInvalidAccessCode = fmt.Errorf("%w: ACCESS CODE IS INVALID", ErrValidation)
	ErrVoterIDOutOfRange = fmt.Errorf("%w: ID MUST BE BETWEEN %d AND %d", ErrValidation, MinVoterID, MaxVoterID)
)

// Message is the text shown on the gate page for a login error
func Message(err error) string {
	switch {
	case errors.Is(err, ErrVoterIDOutOfRange):
		return fmt.Sprintf("ID MUST BE BETWEEN %d AND %d", MinVoterID, MaxVoterID)
	case errors.Is(err, ErrInvalidAccessCode):
		return "ACCESS CODE IS INVALID"
	default:
		return ""
	}
}

// Login checks an access code and voter ID.
// The admin code needs no voter ID. The participant code needs a numeric
// ID between MinVoterID and MaxVoterID; the group is derived from it.
func Login(password, voterID string) (models.Identity, error) {
	switch password {
	case AdminPassword:
		return models.Identity{VoterID: models.AdminVoterID, IsAdmin: true}, nil
	case UserPassword:
		if !ValidVoterID(voterID) {
			return models.Identity{}, ErrVoterIDOutOfRange
		}
		return models.Identity{
			VoterID: voterID,
			Group:   groups.Resolve(voterID),
		}, nil
	default:
		return models.Identity{}, ErrInvalidAccessCode
	}
}

// ValidVoterID reports whether voterID may log in as a participant
func ValidVoterID(voterID string) bool {
	if !groups.IsNumeric(voterID) {
		return false
	}
	id, err := strconv.Atoi(voterID)
	if err != nil {
		return false
	}
	return id >= MinVoterID && id <= MaxVoterID
}

// GenerateKey returns byteLen random bytes, used for the CSRF key when
// none is configured
func GenerateKey(byteLen int) ([]byte, error) {
	b := make([]byte, byteLen)
	_, err := rand.Read(b)
	if err != nil {
		return nil, fmt.Errorf("failed to generate key: %w", err)
	}
	return b, nil
}

// HashIP creates a one-way hash of an IP address for privacy
// Includes salt to prevent rainbow table attacks
func HashIP(ip, salt string) string {
	h := hmac.New(sha256.New, []byte(salt))
	h.Write([]byte(ip))
	sum := h.Sum(nil)
	// Return first 16 hex chars (64 bits) - enough for deduplication
	return hex.EncodeToString(sum[:8])
}
