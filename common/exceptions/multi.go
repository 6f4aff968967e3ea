package exceptions

import "strings"

type MultiError interface {
	error
	Unwrap() []error
}

type multiError struct {
	errors []error
}

func (e *multiError) Error() string {
	messages := make([]string, 0, len(e.errors))
	for _, err := range e.errors {
		messages = append(messages, err.Error())
	}
	return strings.Join(messages, " | ")
}

func (e *multiError) Unwrap() []error {
	return e.errors
}

// Errors joins the non-nil errors, returning nil when none remain and the
// error itself when only one does.
func Errors(errors ...error) error {
	var filtered []error
	for _, err := range errors {
		if err != nil {
			filtered = append(filtered, err)
		}
	}
	switch len(filtered) {
	case 0:
		return nil
	case 1:
		return filtered[0]
	}
	return &multiError{filtered}
}
