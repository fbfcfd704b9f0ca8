package http

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/netpc/contacts-api/internal/contacts/domain"
)

type birthDateProbe struct {
	BirthDate domain.Date `validate:"birth_date"`
}

func TestValidateBirthDate(t *testing.T) {
	v := NewValidator()
	now := time.Now()

	t.Run("PastDateAccepted", func(t *testing.T) {
		d := domain.DateOf(now.AddDate(-30, 0, 0))
		assert.NoError(t, v.Struct(birthDateProbe{BirthDate: d}))
	})

	t.Run("YesterdayAccepted", func(t *testing.T) {
		d := domain.DateOf(now.AddDate(0, 0, -1))
		assert.NoError(t, v.Struct(birthDateProbe{BirthDate: d}))
	})

	t.Run("TodayRejected", func(t *testing.T) {
		d := domain.DateOf(now)
		assert.Error(t, v.Struct(birthDateProbe{BirthDate: d}))
	})

	t.Run("FutureRejected", func(t *testing.T) {
		d := domain.DateOf(now.AddDate(0, 0, 1))
		assert.Error(t, v.Struct(birthDateProbe{BirthDate: d}))
	})

	t.Run("Exactly150YearsAgoRejected", func(t *testing.T) {
		d := domain.DateOf(now.AddDate(-150, 0, 0))
		assert.Error(t, v.Struct(birthDateProbe{BirthDate: d}))
	})

	t.Run("JustUnder150YearsAccepted", func(t *testing.T) {
		d := domain.DateOf(now.AddDate(-150, 0, 1))
		assert.NoError(t, v.Struct(birthDateProbe{BirthDate: d}))
	})

	t.Run("ZeroRejected", func(t *testing.T) {
		assert.Error(t, v.Struct(birthDateProbe{}))
	})
}

type passwordProbe struct {
	Password string `validate:"password_complexity"`
}

func TestValidatePasswordComplexity(t *testing.T) {
	v := NewValidator()

	valid := []string{"Secret123!", "Aa1!aaaa", "Złożone1!"}
	for _, p := range valid {
		assert.NoError(t, v.Struct(passwordProbe{Password: p}), "password %q should pass", p)
	}

	invalid := []string{"secret123!", "SECRET123!", "Secretive!", "Secret1234", ""}
	for _, p := range invalid {
		assert.Error(t, v.Struct(passwordProbe{Password: p}), "password %q should fail", p)
	}
}

type phoneProbe struct {
	Phone string `validate:"phone_chars"`
}

func TestValidatePhoneChars(t *testing.T) {
	v := NewValidator()

	valid := []string{"+48 123 456 789", "(22) 123-45-67", "123456789"}
	for _, p := range valid {
		assert.NoError(t, v.Struct(phoneProbe{Phone: p}), "phone %q should pass", p)
	}

	invalid := []string{"123abc789", "123;456", ""}
	for _, p := range invalid {
		assert.Error(t, v.Struct(phoneProbe{Phone: p}), "phone %q should fail", p)
	}
}
