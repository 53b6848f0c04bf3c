package translation

import (
	"strings"
	"unicode/utf8"

	"github.com/heartmarshall/pidgin-backend/internal/domain"
)

// TranslateInput holds the parameters for a translation request.
type TranslateInput struct {
	Text      string
	Direction domain.Direction
	Mode      domain.TranslateMode
}

func (i *TranslateInput) applyDefaults() {
	if i.Direction == "" {
		i.Direction = domain.DirectionEngToPidgin
	}
	if i.Mode == "" {
		i.Mode = domain.TranslateModeAuto
	}
}

// Validate checks all fields and collects all errors.
func (i *TranslateInput) Validate(maxLen int) error {
	var errs []domain.FieldError

	if strings.TrimSpace(i.Text) == "" {
		errs = append(errs, domain.FieldError{Field: "text", Message: "required"})
	} else if utf8.RuneCountInString(i.Text) > maxLen {
		errs = append(errs, domain.FieldError{Field: "text", Message: "too long"})
	}
	if !i.Direction.IsValid() {
		errs = append(errs, domain.FieldError{Field: "direction", Message: "must be eng-to-pidgin or pidgin-to-eng"})
	}
	if !i.Mode.IsValid() {
		errs = append(errs, domain.FieldError{Field: "mode", Message: "must be auto, local or remote"})
	}

	if len(errs) > 0 {
		return domain.NewValidationErrors(errs)
	}
	return nil
}
