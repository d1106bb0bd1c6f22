package service

import (
	"database/sql"
	"strings"
	"time"

	"github.com/cradoe/banking-api/internal/models"
	"github.com/cradoe/banking-api/internal/validator"
)

const (
	dateOfBirthLayout = "2006-01-02"
	minimumAge        = 18
)

type Profile struct {
	Username         string
	FirstName        string
	LastName         string
	Email            string
	PhoneNumber      string
	PermanentAddress string
	DateOfBirth      string
}

type RegisterInput struct {
	Profile
	Password string
}

// ProfileUpdate is a partial update: nil fields are left as they are.
type ProfileUpdate struct {
	Username         *string
	FirstName        *string
	LastName         *string
	Email            *string
	PhoneNumber      *string
	PermanentAddress *string
	DateOfBirth      *string
	Password         *string
	// Role is only honoured on admin updates.
	Role *string
}

func normalizeProfile(p *Profile) {
	p.Username = strings.TrimSpace(p.Username)
	p.FirstName = strings.TrimSpace(p.FirstName)
	p.LastName = strings.TrimSpace(p.LastName)
	p.Email = strings.ToLower(strings.TrimSpace(p.Email))
	p.PhoneNumber = strings.TrimSpace(p.PhoneNumber)
	p.PermanentAddress = strings.TrimSpace(p.PermanentAddress)
	p.DateOfBirth = strings.TrimSpace(p.DateOfBirth)
}

func checkName(v *validator.Validator, value, label string) {
	v.Check(validator.NotBlank(value), label+" is required")
	v.Check(validator.MaxRunes(value, 50), label+" must not be more than 50 characters")
}

func checkEmail(v *validator.Validator, value string) {
	v.Check(validator.NotBlank(value), "Email is required")
	v.Check(validator.IsEmail(value), "Must be a valid email address")
}

func checkPhoneNumber(v *validator.Validator, value string) {
	v.Check(validator.Matches(value, validator.RgxPhoneNumber), "Phone number must be exactly 10 digits")
}

func checkAddress(v *validator.Validator, value string) {
	v.Check(validator.MinRunes(value, 5), "Permanent address must be at least 5 characters")
	v.Check(validator.MaxRunes(value, 200), "Permanent address must not be more than 200 characters")
}

func checkUsername(v *validator.Validator, value string) {
	if value == "" {
		return
	}
	v.Check(validator.Matches(value, validator.RgxUsername), "Username must be 3 to 30 letters, digits, dots or underscores")
}

func checkDateOfBirth(v *validator.Validator, value string, now time.Time) time.Time {
	dob, err := time.Parse(dateOfBirthLayout, value)
	if err != nil {
		v.AddError("Date of birth must be in YYYY-MM-DD format")
		return time.Time{}
	}

	v.Check(validator.IsAdult(dob, now, minimumAge), "Account holder must be at least 18 years old")
	return dob
}

func (s *Service) checkPassword(v *validator.Validator, password string) {
	v.Check(validator.NotBlank(password), "Password is required")

	for _, message := range s.passwords.Strength(password) {
		v.AddError(message)
	}
}

func nullString(value string) sql.NullString {
	return sql.NullString{String: value, Valid: value != ""}
}

// profilePatch validates the present fields of update and returns the change to apply
// to the locked account row. Password hashing happens here, before any row is locked.
func (s *Service) profilePatch(update ProfileUpdate, allowRole bool) (func(account *models.Account), error) {
	var v validator.Validator
	var changes []func(account *models.Account)

	if update.Username != nil {
		value := strings.TrimSpace(*update.Username)
		checkUsername(&v, value)
		changes = append(changes, func(a *models.Account) { a.Username = nullString(value) })
	}
	if update.FirstName != nil {
		value := strings.TrimSpace(*update.FirstName)
		checkName(&v, value, "First name")
		changes = append(changes, func(a *models.Account) { a.FirstName = value })
	}
	if update.LastName != nil {
		value := strings.TrimSpace(*update.LastName)
		checkName(&v, value, "Last name")
		changes = append(changes, func(a *models.Account) { a.LastName = value })
	}
	if update.Email != nil {
		value := strings.ToLower(strings.TrimSpace(*update.Email))
		checkEmail(&v, value)
		changes = append(changes, func(a *models.Account) { a.Email = value })
	}
	if update.PhoneNumber != nil {
		value := strings.TrimSpace(*update.PhoneNumber)
		checkPhoneNumber(&v, value)
		changes = append(changes, func(a *models.Account) { a.PhoneNumber = value })
	}
	if update.PermanentAddress != nil {
		value := strings.TrimSpace(*update.PermanentAddress)
		checkAddress(&v, value)
		changes = append(changes, func(a *models.Account) { a.PermanentAddress = value })
	}
	if update.DateOfBirth != nil {
		dob := checkDateOfBirth(&v, strings.TrimSpace(*update.DateOfBirth), s.now())
		changes = append(changes, func(a *models.Account) { a.DateOfBirth = dob })
	}
	if update.Role != nil {
		role := *update.Role
		if !allowRole {
			v.AddError("Role cannot be changed")
		} else {
			v.Check(role == models.RoleUser || role == models.RoleAdmin, "Role must be user or admin")
		}
		changes = append(changes, func(a *models.Account) { a.Role = role })
	}
	if update.Password != nil {
		s.checkPassword(&v, *update.Password)
	}

	if v.HasErrors() {
		return nil, &ValidationError{Errors: v.Errors}
	}

	if update.Password != nil {
		hash, err := s.passwords.Hash(*update.Password)
		if err != nil {
			return nil, err
		}
		changes = append(changes, func(a *models.Account) { a.PasswordHash = hash })
	}

	return func(account *models.Account) {
		for _, change := range changes {
			change(account)
		}
	}, nil
}
