package gateway

import (
	"context"
	"log/slog"
	"unicode/utf8"

	"github.com/rickgao/coinfeed/internal/config"
	"github.com/rickgao/coinfeed/internal/model"
	"github.com/rickgao/coinfeed/internal/upstream"
)

// Configuration keys.
const (
	BaseURLKey      = "services.python.base_url"
	DouyinPathKey   = "services.python.douyin_path"
	CaptionPathKey  = "services.python.caption_path"
	TrendingPathKey = "services.python.trending_path"
)

// MaxLoggedBody is the number of characters of a failed response body kept
// in the log record.
const MaxLoggedBody = 2000

// Gateway invokes tool service endpoints.
type Gateway struct {
	baseURL string
	cfg     config.Lookup
	http    *upstream.Client
	logger  *slog.Logger
}

// New resolves the base URL from cfg once. An absent or non-string value
// becomes "" and requests then fail at the HTTP layer.
func New(cfg config.Lookup, opts ...upstream.Option) *Gateway {
	uc := upstream.NewClient("python", opts...)
	return &Gateway{
		baseURL: config.String(cfg, BaseURLKey, ""),
		cfg:     cfg,
		http:    uc,
		logger:  uc.Logger(),
	}
}

// BaseURL returns the resolved base URL.
func (g *Gateway) BaseURL() string {
	return g.baseURL
}

// DownloadVideo calls the Douyin downloader endpoint.
func (g *Gateway) DownloadVideo(ctx context.Context) model.GatewayResult {
	return g.call(ctx, g.endpoint(DouyinPathKey))
}

// GenerateCaption calls the caption generator endpoint.
func (g *Gateway) GenerateCaption(ctx context.Context) model.GatewayResult {
	return g.call(ctx, g.endpoint(CaptionPathKey))
}

// TrendingKeywords calls the trending keywords endpoint.
func (g *Gateway) TrendingKeywords(ctx context.Context) model.GatewayResult {
	return g.call(ctx, g.endpoint(TrendingPathKey))
}

func (g *Gateway) endpoint(pathKey string) string {
	return g.baseURL + config.String(g.cfg, pathKey, "")
}

// call GETs url and copies a non-empty JSON object body into the result.
func (g *Gateway) call(ctx context.Context, url string) model.GatewayResult {
	resp, err := g.http.Get(ctx, url, nil)
	if err != nil {
		var status any
		if resp.StatusCode != 0 {
			status = resp.StatusCode
		}
		g.logger.Error("python service call failed: "+url,
			"status", status,
			"body", truncate(string(resp.Body), MaxLoggedBody),
			"request_id", resp.RequestID,
			"err", err,
		)
		return model.GatewayResult{}
	}

	var obj map[string]any
	if err := resp.DecodeJSON(&obj); err != nil || len(obj) == 0 {
		return model.GatewayResult{}
	}

	result := make(model.GatewayResult, len(obj))
	for k, v := range obj {
		result[k] = v
	}
	return result
}

// truncate keeps at most n characters (runes) of s.
func truncate(s string, n int) string {
	if utf8.RuneCountInString(s) <= n {
		return s
	}
	i := 0
	for pos := range s {
		if i == n {
			return s[:pos]
		}
		i++
	}
	return s
}
