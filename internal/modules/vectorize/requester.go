package vectorize

import (
	"context"
	"net/http"
	"time"

	"github.com/reusedev/vector-hub/internal/consts"
	"github.com/reusedev/vector-hub/internal/modules/credential"
	"github.com/reusedev/vector-hub/internal/modules/http_client"
	"github.com/reusedev/vector-hub/internal/modules/logs"
	"github.com/reusedev/vector-hub/internal/modules/metrics"
	"github.com/reusedev/vector-hub/tools"
)

type Requester struct {
	ctx     context.Context
	pair    credential.Pair
	baseURL string
	Request *Request
	Parser  *ResultParser
}

func NewRequester(ctx context.Context, pair credential.Pair, baseURL string, request *Request) *Requester {
	return &Requester{
		ctx:     ctx,
		pair:    pair,
		baseURL: baseURL,
		Request: request,
		Parser:  &ResultParser{},
	}
}

func (r *Requester) Do() (*Result, error) {
	// vectorization can run long on large inputs; the default client
	// timeout is too tight
	client := http_client.NewWithTimeout(3 * time.Minute)
	body, contentType, err := r.Request.BodyContentType()
	if err != nil {
		return nil, err
	}
	req, err := client.NewRequest(
		http.MethodPost,
		tools.FullURL(r.baseURL, consts.VectorizePath),
		http_client.WithHeader("Authorization", r.pair.AuthorizationHeader()),
		http_client.WithHeader("Content-Type", contentType),
		http_client.WithBody(body),
		http_client.WithContext(r.ctx),
	)
	if err != nil {
		return nil, err
	}
	reqAt := time.Now()
	resp, err := client.Do(req)
	respAt := time.Now()
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	logs.Logger.Info().
		Str("path", consts.VectorizePath).
		Str("method", req.Method).
		Str("mode", r.Request.Mode.String()).
		Str("output_format", r.Request.OutputFormat.String()).
		Int("status_code", resp.StatusCode).
		Dur("req_consume_ms", respAt.Sub(reqAt)).
		Msg("vectorize request")
	metrics.UpstreamDuration.WithLabelValues(consts.VectorizePath).Observe(respAt.Sub(reqAt).Seconds())
	return r.Parser.Parse(resp)
}
