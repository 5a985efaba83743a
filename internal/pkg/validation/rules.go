package validation

import (
	"regexp"
	"sync"

	"github.com/go-playground/validator/v10"
	"github.com/yigit/marksheet/internal/app/models"
)

// Validation rule patterns
var (
	// SectionPattern accepts short section tokens such as "A" or "B2"
	SectionPattern = `^[A-Za-z0-9]{1,8}$`
)

// CompiledPatterns caches compiled regex patterns
var CompiledPatterns = struct {
	Section *regexp.Regexp
}{
	Section: regexp.MustCompile(SectionPattern),
}

var (
	instance *validator.Validate
	once     sync.Once
)

// Validator returns the shared validator with the marksheet rules registered
func Validator() *validator.Validate {
	once.Do(func() {
		v := validator.New(validator.WithRequiredStructEnabled())
		if err := Register(v); err != nil {
			panic(err)
		}
		instance = v
	})
	return instance
}

// Register adds the exam_type, subject and section rules to v. It is also
// applied to gin's binding engine so request DTOs can use the same tags.
func Register(v *validator.Validate) error {
	rules := map[string]validator.Func{
		"exam_type": func(fl validator.FieldLevel) bool {
			return models.ExamType(fl.Field().String()).Valid()
		},
		"subject": func(fl validator.FieldLevel) bool {
			return models.Subject(fl.Field().String()).Valid()
		},
		"section": func(fl validator.FieldLevel) bool {
			return CompiledPatterns.Section.MatchString(fl.Field().String())
		},
	}
	for tag, fn := range rules {
		if err := v.RegisterValidation(tag, fn); err != nil {
			return err
		}
	}
	return nil
}
