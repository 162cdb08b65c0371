package client

import "github.com/reusedev/vector-hub/internal/consts"

// AccountStatus is the normalized view of the upstream account reply.
// Missing or malformed fields fall back to safe defaults instead of
// failing the caller.
type AccountStatus struct {
	SubscriptionPlan  string  `json:"subscriptionPlan"`
	SubscriptionState string  `json:"subscriptionState"`
	Credits           float64 `json:"credits"`
}

type VectorizeOptions struct {
	Mode         consts.Mode
	OutputFormat consts.OutputFormat
}

// Artifact is a decoded vectorization result, ready to display or save.
type Artifact struct {
	Data              []byte
	ContentType       string
	CreditsCharged    float64
	CreditsCalculated float64
}

type wireResult struct {
	Content           string  `json:"content"`
	ContentType       string  `json:"contentType"`
	IsBase64          bool    `json:"isBase64"`
	CreditsCharged    float64 `json:"creditsCharged"`
	CreditsCalculated float64 `json:"creditsCalculated"`
}

type authConfig struct {
	AuthRequired bool `json:"authRequired"`
}

type loginResult struct {
	Success bool   `json:"success"`
	Token   string `json:"token"`
	Error   string `json:"error"`
}
