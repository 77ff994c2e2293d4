package auth

import (
	"crypto/sha512"
	"crypto/subtle"
	"encoding/base64"
	"fmt"
	"strconv"
	"strings"

	"golang.org/x/crypto/bcrypt"
	"golang.org/x/crypto/pbkdf2"
)

// legacyPrefix marks digests produced by the deprecated pbkdf2-sha512 scheme.
// They are verified but never produced; users migrating from the old system
// keep working without a password reset.
const legacyPrefix = "$pbkdf2-sha512$"

// HashPassword hashes a password using bcrypt
func HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("failed to hash password: %w", err)
	}
	return string(hash), nil
}

// VerifyPassword checks if a password matches the stored digest. Both bcrypt
// and the legacy pbkdf2-sha512 format are accepted. Verification failures
// return false, never an error.
func VerifyPassword(hash, password string) bool {
	if strings.HasPrefix(hash, legacyPrefix) {
		return verifyLegacy(hash, password)
	}
	err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password))
	return err == nil
}

// verifyLegacy checks a passlib-style digest: $pbkdf2-sha512$rounds$salt$checksum
// with salt and checksum in adapted base64 ('.' instead of '+', no padding).
func verifyLegacy(hash, password string) bool {
	parts := strings.Split(strings.TrimPrefix(hash, legacyPrefix), "$")
	if len(parts) != 3 {
		return false
	}

	rounds, err := strconv.Atoi(parts[0])
	if err != nil || rounds <= 0 {
		return false
	}

	salt, err := decodeAdaptedBase64(parts[1])
	if err != nil {
		return false
	}
	want, err := decodeAdaptedBase64(parts[2])
	if err != nil {
		return false
	}

	got := pbkdf2.Key([]byte(password), salt, rounds, len(want), sha512.New)
	return subtle.ConstantTimeCompare(got, want) == 1
}

func decodeAdaptedBase64(s string) ([]byte, error) {
	return base64.RawStdEncoding.DecodeString(strings.ReplaceAll(s, ".", "+"))
}
