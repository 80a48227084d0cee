package extension

import (
	"errors"
	"fmt"
	"strings"

	"github.com/germanamz/grok-launcher/pkg/launcher"
)

// UnknownErrorMessage is shown when a response failed to parse and carried no
// API error text.
const UnknownErrorMessage = "Unknown error, please check logs for more info"

// FieldError describes one preference that could not be used.
type FieldError struct {
	Key   string
	Value string
	Err   error
}

func (e FieldError) Error() string {
	if e.Key == "" {
		return e.Err.Error()
	}
	if e.Value == "" {
		return fmt.Sprintf("%s %v", e.Key, e.Err)
	}
	return fmt.Sprintf("%s %q %v", e.Key, e.Value, e.Err)
}

func (e FieldError) Unwrap() error { return e.Err }

// ConfigurationError collects every preference problem found for a query.
type ConfigurationError struct {
	Problems []FieldError
}

func (e *ConfigurationError) Error() string {
	msgs := make([]string, 0, len(e.Problems))
	for _, p := range e.Problems {
		msgs = append(msgs, p.Error())
	}
	return strings.Join(msgs, "; ")
}

// RequestError reports a transport failure, timeout or non-2xx status.
type RequestError struct {
	Err error
}

func (e *RequestError) Error() string { return e.Err.Error() }

func (e *RequestError) Unwrap() error { return e.Err }

// ResponseError reports a 2xx body that could not be used. Message is the
// text shown to the user: the API's own error text when it could be
// extracted, UnknownErrorMessage otherwise.
type ResponseError struct {
	Message string
	Err     error
}

func (e *ResponseError) Error() string { return e.Message }

func (e *ResponseError) Unwrap() error { return e.Err }

// ProcessingError reports a failure while extracting or formatting candidate text.
type ProcessingError struct {
	Err error
}

func (e *ProcessingError) Error() string { return e.Err.Error() }

func (e *ProcessingError) Unwrap() error { return e.Err }

// ErrorItem converts err into the single result item shown for it. The
// item's action copies the error text. Errors outside the taxonomy are
// presented as processing failures.
func ErrorItem(icon string, err error) launcher.Item {
	var (
		cfgErr  *ConfigurationError
		reqErr  *RequestError
		respErr *ResponseError
		prefix  = "Failed to process response: "
	)

	switch {
	case errors.As(err, &cfgErr):
		prefix = "Failed to parse preferences: "
	case errors.As(err, &reqErr):
		prefix = "Request failed: "
	case errors.As(err, &respErr):
		prefix = "Failed to parse response: "
	}

	msg := err.Error()
	return launcher.Item{
		Icon:   icon,
		Name:   prefix + msg,
		Action: launcher.CopyToClipboard(msg),
	}
}
