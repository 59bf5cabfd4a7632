package validation

import (
	"errors"
	"fmt"
	"reflect"
	"sort"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/julianstephens/facultyboard/internal/models"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())

	// Report fields by their json name so messages match what forms show.
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name, _, _ := strings.Cut(fld.Tag.Get("json"), ",")
		if name == "" || name == "-" {
			return fld.Name
		}
		return name
	})

	_ = v.RegisterValidation("faculty_status", func(fl validator.FieldLevel) bool {
		return models.Status(fl.Field().String()).Valid()
	})
	_ = v.RegisterValidation("weekday", func(fl validator.FieldLevel) bool {
		return models.Day(fl.Field().String()).Valid()
	})
	return v
}

// FacultyInput is what the add/edit faculty form submits.
type FacultyInput struct {
	Name       string `json:"name" validate:"required,min=2,max=100"`
	Department string `json:"department" validate:"required,min=2,max=100"`
	Email      string `json:"email" validate:"required,email"`
	Phone      string `json:"phone" validate:"omitempty,max=32"`
	Status     string `json:"status" validate:"required,faculty_status"`
}

// FacultyInputFrom pre-fills a form from an existing record.
func FacultyInputFrom(f models.Faculty) FacultyInput {
	return FacultyInput{
		Name:       f.Name,
		Department: f.Department,
		Email:      f.Email,
		Phone:      f.Phone,
		Status:     string(f.Status),
	}
}

// Normalize trims surrounding whitespace from every field.
func (in FacultyInput) Normalize() FacultyInput {
	in.Name = strings.TrimSpace(in.Name)
	in.Department = strings.TrimSpace(in.Department)
	in.Email = strings.TrimSpace(in.Email)
	in.Phone = strings.TrimSpace(in.Phone)
	in.Status = strings.TrimSpace(in.Status)
	return in
}

func (in FacultyInput) Faculty() models.Faculty {
	return models.Faculty{
		Name:       in.Name,
		Department: in.Department,
		Email:      in.Email,
		Phone:      in.Phone,
		Status:     models.Status(in.Status),
	}
}

// PeriodInput is what the period editor submits. CourseTitle may be left
// empty for catalog courses. PreviousID names the period being edited, so a
// move to another slot replaces it.
type PeriodInput struct {
	Day          string `json:"day" validate:"required,weekday"`
	PeriodNumber int    `json:"periodNumber" validate:"required,min=1,max=8"`
	CourseCode   string `json:"courseCode" validate:"required,max=16"`
	CourseTitle  string `json:"courseTitle" validate:"max=120"`
	Location     string `json:"location" validate:"max=64"`
	PreviousID   string `json:"previousId"`
}

func (in PeriodInput) Normalize() PeriodInput {
	in.Day = strings.TrimSpace(in.Day)
	in.CourseCode = strings.ToUpper(strings.TrimSpace(in.CourseCode))
	in.CourseTitle = strings.TrimSpace(in.CourseTitle)
	in.Location = strings.TrimSpace(in.Location)
	return in
}

// FieldErrors maps a field's json name to a readable problem.
type FieldErrors map[string]string

func (fe FieldErrors) Error() string {
	fields := make([]string, 0, len(fe))
	for f := range fe {
		fields = append(fields, f)
	}
	sort.Strings(fields)

	parts := make([]string, 0, len(fields))
	for _, f := range fields {
		parts = append(parts, f+" "+fe[f])
	}
	return strings.Join(parts, "; ")
}

// Struct validates one of the input types. Rule violations come back as
// FieldErrors.
func Struct(input any) error {
	err := validate.Struct(input)
	if err == nil {
		return nil
	}

	var ve validator.ValidationErrors
	if !errors.As(err, &ve) {
		return err
	}

	out := make(FieldErrors, len(ve))
	for _, fe := range ve {
		out[fe.Field()] = message(fe)
	}
	return out
}

// Field validates a single value against a tag list, for form fields that
// check themselves as the user types.
func Field(value any, tag string) error {
	err := validate.Var(value, tag)
	if err == nil {
		return nil
	}
	var ve validator.ValidationErrors
	if errors.As(err, &ve) && len(ve) > 0 {
		return errors.New(message(ve[0]))
	}
	return err
}

func message(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "email":
		return "must be a valid email address"
	case "faculty_status":
		return "must be one of available, absent, substituting, substituted"
	case "weekday":
		return "must be a weekday (Monday to Friday)"
	case "min":
		if fe.Kind() == reflect.String {
			return fmt.Sprintf("must be at least %s characters", fe.Param())
		}
		return "must be at least " + fe.Param()
	case "max":
		if fe.Kind() == reflect.String {
			return fmt.Sprintf("must be at most %s characters", fe.Param())
		}
		return "must be at most " + fe.Param()
	default:
		return "failed " + fe.Tag()
	}
}
