package fanfou

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/go-resty/resty/v2"
)

// ErrNoStatus is returned by DeleteLastStatus when the user has not posted.
var ErrNoStatus = errors.New("no status to delete")

// APIError is a non-2xx response from the API.
type APIError struct {
	StatusCode int
	Request    string
	Message    string
}

func (e *APIError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("fanfou: http %d", e.StatusCode)
	}

	return "fanfou: " + e.Message
}

// AuthError is a rejected credential or token (HTTP 401).
type AuthError struct {
	Message string
}

func (e *AuthError) Error() string {
	if e.Message == "" {
		return "fanfou: authentication failed"
	}

	return "fanfou: authentication failed: " + e.Message
}

// IsAuth reports whether err is an AuthError.
func IsAuth(err error) bool {
	var authErr *AuthError
	return errors.As(err, &authErr)
}

type errorBody struct {
	Request string `json:"request"`
	Error   string `json:"error"`
}

func mapHTTPError(resp *resty.Response) error {
	if resp.IsSuccess() {
		return nil
	}

	raw := strings.TrimSpace(string(resp.Body()))

	var body errorBody
	msg := raw

	if err := json.Unmarshal(resp.Body(), &body); err == nil && body.Error != "" {
		msg = body.Error
	}

	if msg == "" {
		msg = http.StatusText(resp.StatusCode())
	}

	if resp.StatusCode() == http.StatusUnauthorized {
		return &AuthError{Message: msg}
	}

	return &APIError{
		StatusCode: resp.StatusCode(),
		Request:    body.Request,
		Message:    msg,
	}
}
