package security

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"regexp"
	"strings"
	"unicode"
)

var (
	// RgxAadhaar is a 12 digit Aadhaar number.
	RgxAadhaar = regexp.MustCompile(`^[0-9]{12}$`)

	// RgxPan is a PAN: five letters, four digits, one letter.
	RgxPan = regexp.MustCompile(`^[A-Z]{5}[0-9]{4}[A-Z]$`)
)

// IdentifierHasher derives deterministic one-way digests of national identifiers.
// A keyed HMAC is used because the identifier space is small enough to enumerate.
type IdentifierHasher struct {
	key []byte
}

func NewIdentifierHasher(key string) *IdentifierHasher {
	return &IdentifierHasher{key: []byte(key)}
}

func (h *IdentifierHasher) Hash(value string) string {
	mac := hmac.New(sha256.New, h.key)
	mac.Write([]byte(value))
	return hex.EncodeToString(mac.Sum(nil))
}

func NormalizeAadhaar(value string) string {
	return strings.TrimSpace(value)
}

func NormalizePan(value string) string {
	return strings.ToUpper(strings.TrimSpace(value))
}

// MaskAadhaar reveals only the last four digits. The value must already be valid.
func MaskAadhaar(aadhaar string) string {
	return "XXXX-XXXX-" + aadhaar[len(aadhaar)-4:]
}

// MaskPan reveals only the first five characters. The value must already be valid.
func MaskPan(pan string) string {
	return pan[:5] + "****"
}

// PanMatchesSurname reports whether the fifth PAN character is the surname initial,
// which is how PANs are issued to individuals.
func PanMatchesSurname(pan, lastName string) bool {
	lastName = strings.TrimSpace(lastName)
	if len(pan) < 5 || lastName == "" {
		return false
	}

	initial := unicode.ToUpper([]rune(lastName)[0])
	return rune(pan[4]) == initial
}
