package user

import (
	"strings"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/shareit-rental/service-booking/internal/platform/apperror"
)

var validate = validator.New()

// User is a registered participant: an item owner, a booker, or both.
type User struct {
	id        int64
	name      string
	email     string
	createdAt time.Time
	updatedAt time.Time
}

// NewUser creates a user with a validated email.
func NewUser(name, email string, now time.Time) (*User, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, apperror.NewValidationError("user name is required")
	}
	email, err := normalizeEmail(email)
	if err != nil {
		return nil, err
	}
	now = now.UTC()
	return &User{name: name, email: email, createdAt: now, updatedAt: now}, nil
}

// Reconstruct rebuilds a User from persistence.
func Reconstruct(id int64, name, email string, createdAt, updatedAt time.Time) *User {
	return &User{id: id, name: name, email: email, createdAt: createdAt, updatedAt: updatedAt}
}

func (u *User) ID() int64            { return u.id }
func (u *User) Name() string         { return u.name }
func (u *User) Email() string        { return u.email }
func (u *User) CreatedAt() time.Time { return u.createdAt }
func (u *User) UpdatedAt() time.Time { return u.updatedAt }

// AssignID records the identifier generated by the store.
func (u *User) AssignID(id int64) { u.id = id }

// Update applies a partial update; nil fields are kept.
func (u *User) Update(name, email *string, now time.Time) error {
	if name != nil {
		n := strings.TrimSpace(*name)
		if n == "" {
			return apperror.NewValidationError("user name must not be blank")
		}
		u.name = n
	}
	if email != nil {
		e, err := normalizeEmail(*email)
		if err != nil {
			return err
		}
		u.email = e
	}
	u.updatedAt = now.UTC()
	return nil
}

func normalizeEmail(raw string) (string, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", apperror.NewValidationError("email is required")
	}
	if err := validate.Var(raw, "email"); err != nil {
		return "", apperror.NewValidationError("invalid email: " + raw)
	}
	return strings.ToLower(raw), nil
}
