package utils

import (
	"log/slog"
	"os"
	"regexp"
)

var (
	// The API key travels as a URL query parameter on every Document AI
	// request, so logged URLs and error strings must have it masked.
	keyPattern    = regexp.MustCompile(`([?&])(api[_\-]?[kK]ey|key)=([^&\s"]+)`)
	bearerPattern = regexp.MustCompile(`Bearer\s+([A-Za-z0-9_\-\.]+)`)
)

// MaskSensitiveData masks API keys and bearer tokens in strings to prevent
// accidental logging of credentials in error messages and URLs.
func MaskSensitiveData(s string) string {
	if s == "" {
		return s
	}
	s = keyPattern.ReplaceAllString(s, `${1}${2}=***MASKED***`)
	s = bearerPattern.ReplaceAllString(s, `Bearer ***MASKED***`)
	return s
}

// MaskSensitiveError wraps an error and masks sensitive data when the error
// is converted to a string.
func MaskSensitiveError(err error) error {
	if err == nil {
		return nil
	}
	return &maskedError{err: err}
}

type maskedError struct {
	err error
}

func (e *maskedError) Error() string {
	return MaskSensitiveData(e.err.Error())
}

func (e *maskedError) Unwrap() error {
	return e.err
}

func ExitOnError(msg string, err error) {
	slog.Error(msg, "err", MaskSensitiveError(err))
	os.Exit(1)
}
