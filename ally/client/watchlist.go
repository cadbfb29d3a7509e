package client

import (
	"context"
	"net/http"
	"strings"

	"github.com/tradebot/goally/ally/types"
	"github.com/tradebot/goally/pkg/ratelimit"
)

// WatchlistCalls 自选列表分组（180 次/分钟）
type WatchlistCalls struct {
	c *Client
}

// Watchlists 列出全部自选列表
func (w *WatchlistCalls) Watchlists(ctx context.Context) *types.Value {
	return w.c.call(ctx, ratelimit.GroupWatchlist, http.MethodGet, EndpointWatchlists, nil)
}

// Create 创建自选列表
func (w *WatchlistCalls) Create(ctx context.Context, id string, symbols []string) *types.Value {
	return w.c.call(ctx, ratelimit.GroupWatchlist, http.MethodPost, EndpointWatchlists, &callOptions{
		Params: map[string]string{
			"id":      id,
			"symbols": strings.Join(symbols, ","),
		},
	})
}

// ByID 按 ID 查询自选列表
func (w *WatchlistCalls) ByID(ctx context.Context, id string) *types.Value {
	return w.c.call(ctx, ratelimit.GroupWatchlist, http.MethodGet, watchlistPath(id), nil)
}

// Delete 删除自选列表
func (w *WatchlistCalls) Delete(ctx context.Context, id string) *types.Value {
	return w.c.call(ctx, ratelimit.GroupWatchlist, http.MethodDelete, watchlistPath(id), nil)
}

// AddSymbols 向自选列表追加代码
func (w *WatchlistCalls) AddSymbols(ctx context.Context, id string, symbols []string) *types.Value {
	return w.c.call(ctx, ratelimit.GroupWatchlist, http.MethodPost, watchlistSymbolsPath(id), &callOptions{
		Params: map[string]string{
			"symbols": strings.Join(symbols, ","),
		},
	})
}

// RemoveSymbol 从自选列表移除单个代码
func (w *WatchlistCalls) RemoveSymbol(ctx context.Context, id, symbol string) *types.Value {
	return w.c.call(ctx, ratelimit.GroupWatchlist, http.MethodDelete, watchlistSymbolsPath(id), &callOptions{
		Params: map[string]string{
			"symbols": symbol,
		},
	})
}
