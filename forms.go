package ecellweb

import (
	"errors"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	// Report json names so field errors match the request body.
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// ContactForm is the body of POST /api/contact.
type ContactForm struct {
	Name    string `json:"name" form:"name" validate:"required"`
	Email   string `json:"email" form:"email" validate:"required,email"`
	Subject string `json:"subject" form:"subject"`
	Phone   string `json:"phone" form:"phone"`
	Message string `json:"message" form:"message" validate:"required"`
	Type    string `json:"type" form:"type" validate:"omitempty,oneof=general event partnership media alumni student"`
}

// NewsletterForm is the body of POST /api/newsletter.
type NewsletterForm struct {
	Email     string   `json:"email" form:"email" validate:"required,email"`
	Name      string   `json:"name" form:"name" validate:"omitempty,min=2"`
	Interests []string `json:"interests" form:"interests" validate:"omitempty,max=10,dive,max=50"`
}

// RegistrationForm is the body of POST /api/events/register.
type RegistrationForm struct {
	EventID      string     `json:"eventId" form:"eventId" validate:"required"`
	Name         string     `json:"name" form:"name" validate:"required,min=2"`
	Email        string     `json:"email" form:"email" validate:"required,email"`
	Phone        string     `json:"phone" form:"phone" validate:"required,min=10"`
	Department   string     `json:"department" form:"department" validate:"required"`
	Year         string     `json:"year" form:"year" validate:"required"`
	Experience   string     `json:"experience" form:"experience" validate:"omitempty,oneof=beginner intermediate advanced"`
	Expectations string     `json:"expectations" form:"expectations" validate:"max=2000"`
	TeamMembers  []Teammate `json:"teamMembers" validate:"omitempty,max=5,dive"`
}

func (f *ContactForm) trim() {
	f.Name = strings.TrimSpace(f.Name)
	f.Email = strings.TrimSpace(f.Email)
	f.Subject = strings.TrimSpace(f.Subject)
	f.Phone = strings.TrimSpace(f.Phone)
	f.Message = strings.TrimSpace(f.Message)
	f.Type = strings.TrimSpace(f.Type)
}

func (f *NewsletterForm) trim() {
	f.Email = strings.TrimSpace(f.Email)
	f.Name = strings.TrimSpace(f.Name)
}

func (f *RegistrationForm) trim() {
	f.EventID = strings.TrimSpace(f.EventID)
	f.Name = strings.TrimSpace(f.Name)
	f.Email = strings.TrimSpace(f.Email)
	f.Phone = strings.TrimSpace(f.Phone)
	f.Department = strings.TrimSpace(f.Department)
	f.Year = strings.TrimSpace(f.Year)
}

type trimmer interface{ trim() }

// bindForm decodes the request into form and validates it. The returned map
// holds one failed rule per field and is nil when the form is valid; err is
// only set when the body could not be decoded.
func bindForm(c echo.Context, form trimmer) (fields map[string]string, err error) {
	if err := c.Bind(form); err != nil {
		return nil, err
	}
	form.trim()
	return fieldErrors(validate.Struct(form)), nil
}

// fieldErrors maps validation failures to field path -> failed rule, e.g.
// "teamMembers[0].email" -> "email".
func fieldErrors(err error) map[string]string {
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return map[string]string{"_": err.Error()}
	}
	fields := make(map[string]string, len(verrs))
	for _, fe := range verrs {
		name := fe.Namespace()
		if _, rest, ok := strings.Cut(name, "."); ok {
			name = rest
		}
		fields[name] = fe.Tag()
	}
	return fields
}
