package vectorize

import (
	"context"
	"io"
	"net/http"
	"time"

	"github.com/reusedev/vector-hub/internal/consts"
	"github.com/reusedev/vector-hub/internal/modules/credential"
	"github.com/reusedev/vector-hub/internal/modules/http_client"
	"github.com/reusedev/vector-hub/internal/modules/logs"
	"github.com/reusedev/vector-hub/internal/modules/metrics"
	"github.com/reusedev/vector-hub/tools"
)

type AccountRequester struct {
	ctx     context.Context
	pair    credential.Pair
	baseURL string
}

func NewAccountRequester(ctx context.Context, pair credential.Pair, baseURL string) *AccountRequester {
	return &AccountRequester{ctx: ctx, pair: pair, baseURL: baseURL}
}

// Do reads the upstream account endpoint and hands the status code and
// JSON body through untouched. Field normalization belongs to the
// consumer, not this layer.
func (r *AccountRequester) Do() (int, []byte, error) {
	client := http_client.NewWithTimeout(30 * time.Second)
	req, err := client.NewRequest(
		http.MethodGet,
		tools.FullURL(r.baseURL, consts.AccountPath),
		http_client.WithHeader("Authorization", r.pair.AuthorizationHeader()),
		http_client.WithContext(r.ctx),
	)
	if err != nil {
		return 0, nil, err
	}
	reqAt := time.Now()
	resp, err := client.Do(req)
	respAt := time.Now()
	if err != nil {
		return 0, nil, err
	}
	defer resp.Body.Close()
	logs.Logger.Info().
		Str("path", consts.AccountPath).
		Str("method", req.Method).
		Int("status_code", resp.StatusCode).
		Dur("req_consume_ms", respAt.Sub(reqAt)).
		Msg("account request")
	metrics.UpstreamDuration.WithLabelValues(consts.AccountPath).Observe(respAt.Sub(reqAt).Seconds())
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return 0, nil, err
	}
	return resp.StatusCode, body, nil
}
