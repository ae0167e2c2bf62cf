package util

import (
	"crypto/rand"
	"errors"
	"fmt"
	"strings"
	"time"
)

// ErrEmptyRegistrationNumber is returned when a verify URL is requested for
// a blank registration number.
var ErrEmptyRegistrationNumber = errors.New("registration number must not be empty")

// registrationAlphabet omits characters that read ambiguously when a
// merchant transcribes the number (0/O, 1/I/L).
const registrationAlphabet = "ABCDEFGHJKMNPQRSTUVWXYZ23456789"

const registrationSuffixLen = 8

// GenerateRegistrationNumber returns a new public badge identifier of the
// form VF-<year>-<random suffix>, e.g. VF-2026-K7Q2M4XR. Uniqueness is
// enforced by the badge table's unique index; callers retry on collision.
func GenerateRegistrationNumber() (string, error) {
	buf := make([]byte, registrationSuffixLen)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("failed to generate registration number: %w", err)
	}

	var sb strings.Builder
	sb.Grow(registrationSuffixLen)
	for _, b := range buf {
		sb.WriteByte(registrationAlphabet[int(b)%len(registrationAlphabet)])
	}

	return fmt.Sprintf("VF-%d-%s", time.Now().Year(), sb.String()), nil
}

// BuildVerifyURL embeds a registration number into the public verify base
// path. Pure function; the only failure mode is a blank input.
func BuildVerifyURL(baseURL, registrationNumber string) (string, error) {
	if strings.TrimSpace(registrationNumber) == "" {
		return "", ErrEmptyRegistrationNumber
	}
	return fmt.Sprintf("%s/%s", strings.TrimRight(baseURL, "/"), registrationNumber), nil
}
