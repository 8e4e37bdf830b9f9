package contact

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"
)

const (
	// DateLayout is the storage and API rendering of a date of birth.
	DateLayout = "2006-01-02"
	// FormDateLayout is the MM-dd-yyyy layout accepted from the HTML form.
	FormDateLayout = "01-02-2006"
)

type Contact struct {
	ID          string    `json:"id"`
	Name        string    `json:"name" validate:"min=3,max=64"`
	Email       string    `json:"email" validate:"omitempty,mailbox"`
	PhoneNumber string    `json:"phoneNumber" validate:"omitempty,min=7"`
	DateOfBirth time.Time `json:"dateOfBirth" validate:"required,past"`
	Age         int       `json:"age" validate:"min=10,max=100"`
}

// NewContact returns an empty contact carrying a freshly generated id.
func NewContact() *Contact {
	return NewContactFrom(DefaultIDGenerator)
}

func NewContactFrom(gen IDGenerator) *Contact {
	if gen == nil {
		gen = DefaultIDGenerator
	}
	return &Contact{ID: gen.NewID()}
}

// NewContactWithID rebuilds a contact around an existing id. The age is
// derived from dob, never taken from the caller.
func NewContactWithID(id, name, email, phoneNumber string, dob time.Time) *Contact {
	c := &Contact{
		ID:          id,
		Name:        name,
		Email:       email,
		PhoneNumber: phoneNumber,
	}
	c.SetDateOfBirth(dob)
	return c
}

// SetDateOfBirth stores dob and recomputes Age. A zero dob clears both.
func (c *Contact) SetDateOfBirth(dob time.Time) {
	c.SetDateOfBirthAt(dob, time.Now())
}

// SetDateOfBirthAt is SetDateOfBirth with an explicit reference date.
func (c *Contact) SetDateOfBirthAt(dob, now time.Time) {
	c.DateOfBirth = dob
	c.Age = AgeAt(dob, now)
}

// AgeAt returns the number of whole years elapsed between dob and now.
// Month and day are compared as calendar values, so a Feb 29 birthday only
// completes a year on Mar 1 in non-leap years.
func AgeAt(dob, now time.Time) int {
	if dob.IsZero() {
		return 0
	}
	by, bm, bd := dob.Date()
	ny, nm, nd := now.In(dob.Location()).Date()
	years := ny - by
	if years > 0 && (nm < bm || (nm == bm && nd < bd)) {
		years--
	} else if years < 0 && (nm > bm || (nm == bm && nd > bd)) {
		years++
	}
	return years
}

// ParseFormDate parses an MM-dd-yyyy value. Blank input yields the zero time.
func ParseFormDate(raw string) (time.Time, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return time.Time{}, nil
	}
	t, err := time.ParseInLocation(FormDateLayout, raw, time.Local)
	if err != nil {
		return time.Time{}, fmt.Errorf("parse date of birth %q: %w", raw, err)
	}
	return t, nil
}

// FormDate renders the date of birth the way the form expects it back.
func (c *Contact) FormDate() string {
	if c == nil || c.DateOfBirth.IsZero() {
		return ""
	}
	return c.DateOfBirth.Format(FormDateLayout)
}

type contactJSON struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Email       string `json:"email,omitempty"`
	PhoneNumber string `json:"phoneNumber,omitempty"`
	DateOfBirth string `json:"dateOfBirth,omitempty"`
	Age         int    `json:"age"`
}

func (c Contact) MarshalJSON() ([]byte, error) {
	out := contactJSON{
		ID:          c.ID,
		Name:        c.Name,
		Email:       c.Email,
		PhoneNumber: c.PhoneNumber,
		Age:         c.Age,
	}
	if !c.DateOfBirth.IsZero() {
		out.DateOfBirth = c.DateOfBirth.Format(DateLayout)
	}
	return json.Marshal(out)
}

// UnmarshalJSON ignores any encoded age and derives it from dateOfBirth.
func (c *Contact) UnmarshalJSON(data []byte) error {
	var in contactJSON
	if err := json.Unmarshal(data, &in); err != nil {
		return err
	}
	var dob time.Time
	if strings.TrimSpace(in.DateOfBirth) != "" {
		t, err := time.ParseInLocation(DateLayout, in.DateOfBirth, time.Local)
		if err != nil {
			return fmt.Errorf("decode dateOfBirth: %w", err)
		}
		dob = t
	}
	*c = *NewContactWithID(in.ID, in.Name, in.Email, in.PhoneNumber, dob)
	return nil
}
