package credential

import (
	"encoding/base64"

	"github.com/reusedev/vector-hub/config"
)

// Pair is the upstream API identity. It is read once from config and
// never written back, logged, or exposed to clients.
type Pair struct {
	ID     string
	Secret string
}

func Resolve() (Pair, bool) {
	cfg := config.GConfig
	if cfg == nil || cfg.APIId == "" || cfg.APISecret == "" {
		return Pair{}, false
	}
	return Pair{ID: cfg.APIId, Secret: cfg.APISecret}, true
}

func (p Pair) AuthorizationHeader() string {
	return "Basic " + base64.StdEncoding.EncodeToString([]byte(p.ID+":"+p.Secret))
}
