package client

import (
	"context"
	"net/http"
	"strings"

	"github.com/tradebot/goally/ally/types"
	"github.com/tradebot/goally/pkg/ratelimit"
)

// MarketCalls 行情分组（60 次/分钟）
type MarketCalls struct {
	c *Client
}

// Clock 查询市场时钟（pre/open/close）
func (m *MarketCalls) Clock(ctx context.Context) *types.Value {
	return m.c.call(ctx, ratelimit.GroupMarket, http.MethodGet, EndpointMarketClock, nil)
}

// Quotes 查询报价。多代码时上游返回数组，单代码返回单个对象，
// 调用方用 Value.Elements 统一遍历。fids 可选，限定返回字段。
func (m *MarketCalls) Quotes(ctx context.Context, symbols []string, fids ...string) *types.Value {
	params := map[string]string{
		"symbols": strings.Join(symbols, ","),
	}
	if len(fids) > 0 {
		params["fids"] = strings.Join(fids, ",")
	}
	return m.c.call(ctx, ratelimit.GroupMarket, http.MethodGet, EndpointMarketQuotes, &callOptions{Params: params})
}
