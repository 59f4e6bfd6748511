package api

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/juju/errors"

	"CovidDash/internal/result"
)

// Body is a response body read as text, plus its JSON form when the text
// parses as JSON.
type Body struct {
	Text   string
	Parsed any
	IsJSON bool
}

// Normalize reduces a round trip to exactly one Result. Transport errors,
// non-2xx statuses and unreadable bodies all become Err with a human
// readable reason; nothing here panics or returns a nil-and-nil pair.
func Normalize(resp *http.Response, transportErr error) result.Result[Body] {
	if transportErr != nil {
		return result.Err[Body](transportReason(transportErr))
	}
	if resp == nil {
		return result.Err[Body]("no response")
	}

	body := parseBody(readText(resp.Body))
	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return result.Err[Body](failureReason(resp.StatusCode, body))
	}
	return result.Ok(body)
}

// Decode turns a successful body into T. An empty body decodes to the zero
// value so that domain checks (such as "no rows") see it.
func Decode[T any](r result.Result[Body]) result.Result[T] {
	return result.Then(r, func(b Body) result.Result[T] {
		var v T
		if strings.TrimSpace(b.Text) == "" {
			return result.Ok(v)
		}
		if err := json.Unmarshal([]byte(b.Text), &v); err != nil {
			return result.Err[T](fmt.Sprintf("malformed response: %v", err))
		}
		return result.Ok(v)
	})
}

// readText never fails: a broken or panicking body reader yields "".
func readText(body io.ReadCloser) (text string) {
	if body == nil {
		return ""
	}
	defer func() {
		if r := recover(); r != nil {
			text = ""
		}
		_ = body.Close()
	}()

	raw, err := io.ReadAll(body)
	if err != nil {
		return ""
	}
	return string(raw)
}

func parseBody(text string) Body {
	body := Body{Text: text}
	if strings.TrimSpace(text) == "" {
		return body
	}
	var parsed any
	if err := json.Unmarshal([]byte(text), &parsed); err != nil {
		body.Parsed = text
		return body
	}
	body.Parsed = parsed
	body.IsJSON = true
	return body
}

// failureReason prefers "detail", then "error", then the status code.
func failureReason(status int, body Body) string {
	if obj, ok := body.Parsed.(map[string]any); ok {
		for _, key := range []string{"detail", "error"} {
			if msg, ok := describe(obj[key]); ok {
				return msg
			}
		}
	}
	return fmt.Sprintf("HTTP %d", status)
}

// describe renders a structured field as text; false when the field is
// absent or falsy (null, false, 0, "").
func describe(v any) (string, bool) {
	switch val := v.(type) {
	case nil:
		return "", false
	case string:
		return val, val != ""
	case bool:
		if !val {
			return "", false
		}
	case float64:
		if val == 0 {
			return "", false
		}
	}
	raw, err := json.Marshal(v)
	if err != nil {
		return "", false
	}
	return string(raw), true
}

func transportReason(err error) string {
	var urlErr *url.Error
	if errors.As(err, &urlErr) && urlErr.Err != nil {
		return urlErr.Err.Error()
	}
	return err.Error()
}
