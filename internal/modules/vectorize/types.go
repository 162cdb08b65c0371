package vectorize

import (
	"fmt"

	"github.com/reusedev/vector-hub/internal/consts"
)

// Request is one vectorization job for the upstream API. Exactly one of
// ImageBytes and ImageURL must be set.
type Request struct {
	ImageBytes []byte
	FileName   string
	MimeType   string
	ImageURL   string

	Mode         consts.Mode
	OutputFormat consts.OutputFormat
}

func (r *Request) Valid() error {
	if len(r.ImageBytes) == 0 && r.ImageURL == "" {
		return fmt.Errorf("must fill image or image.url")
	}
	if len(r.ImageBytes) > 0 && r.ImageURL != "" {
		return fmt.Errorf("image and image.url are mutually exclusive")
	}
	if !r.Mode.Valid() {
		return fmt.Errorf("invalid mode: %s, must be one of 'production', 'preview', 'test', 'test_preview'", r.Mode)
	}
	if !r.OutputFormat.Valid() {
		return fmt.Errorf("invalid output format: %s, must be one of 'svg', 'eps', 'pdf', 'dxf', 'png'", r.OutputFormat)
	}
	return nil
}

// Result is the wire contract relayed to the caller. Content holds the
// upstream body verbatim for text-like payloads and its base64 encoding
// otherwise, with IsBase64 telling the two apart.
type Result struct {
	Content           string  `json:"content"`
	ContentType       string  `json:"contentType"`
	IsBase64          bool    `json:"isBase64"`
	CreditsCharged    float64 `json:"creditsCharged"`
	CreditsCalculated float64 `json:"creditsCalculated"`
}

// UpstreamError carries a non-success upstream reply through to the
// caller without losing the diagnostic payload.
type UpstreamError struct {
	StatusCode        int
	Body              []byte
	CreditsCharged    float64
	CreditsCalculated float64
}

func (e *UpstreamError) Error() string {
	return fmt.Sprintf("upstream status %d: %s", e.StatusCode, string(e.Body))
}
