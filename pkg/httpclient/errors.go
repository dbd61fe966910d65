package httpclient

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	apperrors "github.com/hungrynow/hungrynow/pkg/errors"
)

// ErrorBody is the error document returned by the HungryNow backend:
// {"message": "...", "code": "..."}.
type ErrorBody struct {
	Code    string `json:"code,omitempty"`
	Message string `json:"message"`
}

// ParseResponseError reads a non-2xx response and turns it into an AppError
// whose Message is safe to show to a user. The body's "message" is preferred;
// a short plain-text body is used verbatim; otherwise the status text is used.
// The body is fully consumed and closed.
func ParseResponseError(resp *http.Response) error {
	defer func() { _ = resp.Body.Close() }()

	bodyBytes, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return fmt.Errorf("status %d (failed to read body: %w)", resp.StatusCode, err)
	}

	message := ""
	code := ""
	var body ErrorBody
	if json.Unmarshal(bodyBytes, &body) == nil {
		message = body.Message
		code = body.Code
	} else if text := strings.TrimSpace(string(bodyBytes)); text != "" && len(text) <= 200 && !strings.HasPrefix(text, "<") {
		message = text
	}
	if message == "" {
		message = http.StatusText(resp.StatusCode)
	}
	if message == "" {
		message = fmt.Sprintf("request failed with status %d", resp.StatusCode)
	}

	appErr := apperrors.FromStatus(resp.StatusCode, message)
	if code != "" {
		appErr.Code = code
	}
	return appErr
}

// IsClientError returns true if the HTTP status code is a 4xx client error.
func IsClientError(status int) bool {
	return status >= 400 && status < 500
}
