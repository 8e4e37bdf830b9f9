package contact

import (
	"context"
	"errors"
	"net/mail"
	"reflect"
	"strings"
	"sync"
	"time"

	"github.com/go-playground/validator/v10"
)

// FieldError describes one failed constraint on a submitted contact.
type FieldError struct {
	Field   string `json:"field"`
	Tag     string `json:"tag"`
	Message string `json:"message"`
}

type FieldErrors []FieldError

func (fe FieldErrors) Error() string {
	msgs := make([]string, 0, len(fe))
	for _, e := range fe {
		msgs = append(msgs, e.Field+": "+e.Message)
	}
	return strings.Join(msgs, "; ")
}

// For returns the messages recorded against field, in order.
func (fe FieldErrors) For(field string) []string {
	var out []string
	for _, e := range fe {
		if e.Field == field {
			out = append(out, e.Message)
		}
	}
	return out
}

func (fe FieldErrors) Has(field string) bool { return len(fe.For(field)) > 0 }

var messages = map[string]string{
	"name.min":             "Name must be between 3 and 64 characters",
	"name.max":             "Name must be between 3 and 64 characters",
	"email.mailbox":        "Invalid Email",
	"phoneNumber.min":      "Phone number must be at least 7 digit.",
	"dateOfBirth.required": "Date of Birth must be mandatory",
	"dateOfBirth.past":     "Date of birth must not be future",
	"age.min":              "Must be above 10 years old",
	"age.max":              "Must be below 100 years old",
}

type nowKey struct{}

var (
	validateOnce sync.Once
	validate     *validator.Validate
)

func validatorInstance() *validator.Validate {
	validateOnce.Do(func() {
		v := validator.New(validator.WithRequiredStructEnabled())
		v.RegisterTagNameFunc(func(f reflect.StructField) string {
			name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
			if name == "-" || name == "" {
				return f.Name
			}
			return name
		})
		_ = v.RegisterValidationCtx("past", func(ctx context.Context, fl validator.FieldLevel) bool {
			t, ok := fl.Field().Interface().(time.Time)
			if !ok {
				return false
			}
			now, _ := ctx.Value(nowKey{}).(time.Time)
			if now.IsZero() {
				now = time.Now()
			}
			return t.Before(now)
		})
		// Bare addresses only, with any RFC 5322 domain ("a@b" included).
		_ = v.RegisterValidation("mailbox", func(fl validator.FieldLevel) bool {
			raw := fl.Field().String()
			addr, err := mail.ParseAddress(raw)
			return err == nil && addr.Address == raw
		})
		validate = v
	})
	return validate
}

// Validate checks c against its field constraints as of now. It returns nil
// when the contact is acceptable.
func Validate(c *Contact, now time.Time) FieldErrors {
	if c == nil {
		return FieldErrors{{Field: "contact", Tag: "required", Message: "Contact is required"}}
	}
	ctx := context.WithValue(context.Background(), nowKey{}, now)
	err := validatorInstance().StructCtx(ctx, c)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return FieldErrors{{Field: "contact", Tag: "invalid", Message: err.Error()}}
	}
	out := make(FieldErrors, 0, len(verrs))
	for _, ve := range verrs {
		field := ve.Field()
		msg, ok := messages[field+"."+ve.Tag()]
		if !ok {
			msg = ve.Error()
		}
		out = append(out, FieldError{Field: field, Tag: ve.Tag(), Message: msg})
	}
	return out
}
