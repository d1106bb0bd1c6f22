package validator

import (
	"net/mail"
	"regexp"
	"strings"
	"time"
	"unicode/utf8"
)

var (
	RgxEmail       = regexp.MustCompile("^[a-zA-Z0-9.!#$%&'*+/=?^_`{|}~-]+@[a-zA-Z0-9](?:[a-zA-Z0-9-]{0,61}[a-zA-Z0-9])?(?:\\.[a-zA-Z0-9](?:[a-zA-Z0-9-]{0,61}[a-zA-Z0-9])?)*$")
	RgxPhoneNumber = regexp.MustCompile(`^[0-9]{10}$`)
	RgxUsername    = regexp.MustCompile(`^[a-zA-Z0-9_.]{3,30}$`)
)

func NotBlank(value string) bool {
	return strings.TrimSpace(value) != ""
}

func MinRunes(value string, n int) bool {
	return utf8.RuneCountInString(strings.TrimSpace(value)) >= n
}

func MaxRunes(value string, n int) bool {
	return utf8.RuneCountInString(value) <= n
}

func Matches(value string, rx *regexp.Regexp) bool {
	return rx.MatchString(value)
}

func IsEmail(value string) bool {
	if len(value) > 254 || !RgxEmail.MatchString(value) {
		return false
	}

	_, err := mail.ParseAddress(value)
	return err == nil
}

// IsAdult reports whether someone born on dob is at least age years old at now.
func IsAdult(dob, now time.Time, age int) bool {
	return !dob.AddDate(age, 0, 0).After(now)
}
