// Package client Ally Invest REST API 客户端。
// 每个出站调用都经过同一条流水线：取得所属分组的速率准入（可能阻塞）、
// 通过认证会话发请求、把响应归一化成类型化的值树。调用方永远拿到值，
// 不会从这一层收到传输异常。
package client

import (
	"net/http"
	"strings"

	"github.com/go-resty/resty/v2"

	"github.com/tradebot/goally/pkg/ratelimit"
)

// Client Ally Invest API 客户端。
// 按端点分组暴露调用集，分组之间的速率预算互相独立。
type Client struct {
	endpoint string
	rest     *resty.Client
	limits   *ratelimit.Manager

	Account   *AccountCalls
	Trade     *TradeCalls
	Market    *MarketCalls
	Member    *MemberCalls
	Utility   *UtilityCalls
	Watchlist *WatchlistCalls
}

// New 创建客户端。session 是外部提供的认证会话（OAuth1 签名的
// http.Client）；endpoint 为空时使用默认基地址。
func New(endpoint string, session *http.Client) *Client {
	if endpoint == "" {
		endpoint = DefaultEndpoint
	}
	endpoint = strings.TrimSuffix(endpoint, "/")

	rest := resty.NewWithClient(session).
		SetBaseURL(endpoint).
		SetHeader("Accept", "*/*").
		SetHeader("Connection", "keep-alive").
		SetHeader("User-Agent", "goally")

	c := &Client{
		endpoint: endpoint,
		rest:     rest,
		limits:   ratelimit.NewManager(),
	}
	c.Account = &AccountCalls{c: c}
	c.Trade = &TradeCalls{c: c}
	c.Market = &MarketCalls{c: c}
	c.Member = &MemberCalls{c: c}
	c.Utility = &UtilityCalls{c: c}
	c.Watchlist = &WatchlistCalls{c: c}
	return c
}

// Endpoint 返回基地址
func (c *Client) Endpoint() string { return c.endpoint }

// Limits 返回分组速率管理器（状态页用）
func (c *Client) Limits() *ratelimit.Manager { return c.limits }
