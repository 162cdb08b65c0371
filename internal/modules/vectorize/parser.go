package vectorize

import (
	"encoding/base64"
	"io"
	"mime"
	"net/http"
	"strconv"
	"strings"

	jsoniter "github.com/json-iterator/go"
	"github.com/reusedev/vector-hub/internal/consts"
)

type ResultParser struct{}

// Parse classifies the upstream reply. Non-success statuses come back as
// *UpstreamError with the upstream JSON payload preserved. Success bodies
// are relayed as literal text or base64 depending on the declared
// content type, which is authoritative: errors arrive as JSON no matter
// which output format was requested, so the requested format must never
// drive this branch.
func (p *ResultParser) Parse(resp *http.Response) (*Result, error) {
	charged := parseCredits(resp.Header.Get(consts.CreditsChargedHeader))
	calculated := parseCredits(resp.Header.Get(consts.CreditsCalculatedHeader))
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return nil, &UpstreamError{
			StatusCode:        resp.StatusCode,
			Body:              errorPayload(body),
			CreditsCharged:    charged,
			CreditsCalculated: calculated,
		}
	}
	contentType := resp.Header.Get("Content-Type")
	if contentType == "" {
		contentType = "application/octet-stream"
	}
	ret := &Result{
		ContentType:       contentType,
		CreditsCharged:    charged,
		CreditsCalculated: calculated,
	}
	if TextLike(contentType) {
		ret.Content = string(body)
	} else {
		ret.Content = base64.StdEncoding.EncodeToString(body)
		ret.IsBase64 = true
	}
	return ret, nil
}

// TextLike reports whether a declared content type is relayed as literal
// text: any text/* media type, or SVG.
func TextLike(contentType string) bool {
	mediaType, _, err := mime.ParseMediaType(contentType)
	if err != nil {
		mediaType = strings.TrimSpace(strings.ToLower(contentType))
	}
	return strings.HasPrefix(mediaType, "text/") || mediaType == "image/svg+xml"
}

// parseCredits defaults absent or malformed credit headers to 0.
func parseCredits(value string) float64 {
	if value == "" {
		return 0
	}
	f, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return 0
	}
	return f
}

// errorPayload keeps upstream JSON error bodies verbatim and wraps
// anything else in a minimal error object.
func errorPayload(body []byte) []byte {
	trimmed := strings.TrimSpace(string(body))
	if trimmed != "" && jsoniter.Valid(body) {
		return body
	}
	message := trimmed
	if message == "" {
		message = "upstream request failed"
	}
	wrapped, err := jsoniter.Marshal(map[string]any{
		"error": map[string]string{"message": message},
	})
	if err != nil {
		return []byte(`{"error":{"message":"upstream request failed"}}`)
	}
	return wrapped
}
