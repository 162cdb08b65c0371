package consts

const (
	VectorizerBaseURL = "https://api.vectorizer.ai/api/v1"

	VectorizePath = "vectorize"
	AccountPath   = "account"

	CreditsChargedHeader    = "X-Credits-Charged"
	CreditsCalculatedHeader = "X-Credits-Calculated"

	SessionTokenHeader = "X-Session-Token"
)

type Mode string

const (
	Production  Mode = "production"
	Preview     Mode = "preview"
	Test        Mode = "test"
	TestPreview Mode = "test_preview"
)

func (m Mode) String() string {
	return string(m)
}

func (m Mode) Valid() bool {
	switch m {
	case Production, Preview, Test, TestPreview:
		return true
	}
	return false
}

type OutputFormat string

const (
	SVG OutputFormat = "svg"
	EPS OutputFormat = "eps"
	PDF OutputFormat = "pdf"
	DXF OutputFormat = "dxf"
	PNG OutputFormat = "png"
)

func (f OutputFormat) String() string {
	return string(f)
}

func (f OutputFormat) Valid() bool {
	switch f {
	case SVG, EPS, PDF, DXF, PNG:
		return true
	}
	return false
}
