package quiz

import (
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"
)

var (
	validateOnce sync.Once
	validate     *validator.Validate
)

func quizValidator() *validator.Validate {
	validateOnce.Do(func() {
		validate = validator.New(validator.WithRequiredStructEnabled())
		validate.RegisterStructValidation(validateQuestion, Question{})
	})
	return validate
}

// validateQuestion checks that the correct index addresses an option.
func validateQuestion(sl validator.StructLevel) {
	q := sl.Current().Interface().(Question)
	if q.CorrectAnswer >= len(q.Options) {
		sl.ReportError(q.CorrectAnswer, "CorrectAnswer", "correctAnswer", "option_index", "")
	}
}

// ValidationError lists every rule a quiz violated.
type ValidationError struct {
	Problems []string
	Err      error
}

func (e *ValidationError) Error() string {
	return "invalid quiz: " + strings.Join(e.Problems, "; ")
}

func (e *ValidationError) Unwrap() error { return e.Err }

// Validate checks q for structural problems that would break a session.
func Validate(q *Quiz) error {
	if q == nil {
		return &ValidationError{Problems: []string{"quiz is nil"}}
	}
	err := quizValidator().Struct(q)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return fmt.Errorf("validate quiz: %w", err)
	}
	problems := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		problems = append(problems, describe(fe))
	}
	return &ValidationError{Problems: problems, Err: err}
}

func describe(fe validator.FieldError) string {
	field := strings.TrimPrefix(fe.Namespace(), "Quiz.")
	switch fe.Tag() {
	case "required":
		return field + " is required"
	case "min":
		return fmt.Sprintf("%s needs at least %s entries", field, fe.Param())
	case "oneof":
		return fmt.Sprintf("%s must be one of [%s]", field, fe.Param())
	case "option_index":
		return fmt.Sprintf("%s %v does not address an option", field, fe.Value())
	case "gte", "lte":
		return fmt.Sprintf("%s %v out of range", field, fe.Value())
	default:
		return fmt.Sprintf("%s failed %s", field, fe.Tag())
	}
}
