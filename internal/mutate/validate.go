package mutate

import (
	"reflect"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"

	"frameflow-cli/internal/model"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" || name == "" {
			return fld.Name
		}
		return name
	})
	return v
}

// ProjectInput is the user-supplied part of a project (new-project form, CLI flags, quick add).
type ProjectInput struct {
	Title       string            `json:"title" validate:"required,max=200"`
	Idea        string            `json:"idea" validate:"required"`
	ContentType model.ContentType `json:"contentType" validate:"oneof=short vlog cinematic tutorial"`
	Platform    model.Platform    `json:"platform" validate:"oneof=youtube instagram tiktok x facebook other"`
	Deadline    *time.Time        `json:"deadline"`
}

// Validate trims text fields in place and checks the form rules.
// It runs before any AI call so a bad form never reaches the network.
func (in *ProjectInput) Validate() error {
	in.Title = strings.TrimSpace(in.Title)
	in.Idea = strings.TrimSpace(in.Idea)
	return asValidationError(validate.Struct(in))
}

func ValidateTheme(t model.ThemeSettings) error {
	return asValidationError(validate.Struct(t))
}

type scheduleInput struct {
	Segment     string `json:"segment" validate:"required"`
	DurationMin *int   `json:"durationMin" validate:"omitempty,gte=0"`
	Platform    string `json:"platform" validate:"omitempty,oneof=youtube instagram tiktok x facebook other"`
}
