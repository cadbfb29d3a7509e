package client

import (
	"context"
	"net/http"
	"strconv"

	"github.com/tradebot/goally/ally/fixml"
	"github.com/tradebot/goally/ally/types"
	"github.com/tradebot/goally/pkg/ratelimit"
)

// TradeCalls 交易分组（40 次/分钟，预算最紧）
type TradeCalls struct {
	c *Client
}

// overrideHeaders 下单与撤单的风险提示确认头。
// warnOnOrders 为 false 时置 TKI_OVERRIDE=true，跳过交易确认提示。
func overrideHeaders(warnOnOrders bool) map[string]string {
	return map[string]string{
		"TKI_OVERRIDE": strconv.FormatBool(!warnOnOrders),
	}
}

// Orders 查询账户的订单状态列表
func (t *TradeCalls) Orders(ctx context.Context, accountID string) *types.Value {
	return t.c.call(ctx, ratelimit.GroupTrade, http.MethodGet, ordersPath(accountID), nil)
}

// PostOrder 提交订单。渲染失败（不支持的订单类型、非股票标的）是
// 致命错误直接返回；传输层的失败照常折叠进返回值。
func (t *TradeCalls) PostOrder(ctx context.Context, accountID string, o *types.Order, warnOnOrders bool) (*types.Value, error) {
	body, err := fixml.Render(o)
	if err != nil {
		return nil, err
	}
	return t.c.call(ctx, ratelimit.GroupTrade, http.MethodPost, ordersPath(accountID), &callOptions{
		Body:    body,
		Headers: overrideHeaders(warnOnOrders),
	}), nil
}

// CancelOrder 撤单。订单必须带有原订单 ID（通常由 fixml.Parse 从
// 订单状态报文恢复）。
func (t *TradeCalls) CancelOrder(ctx context.Context, accountID string, o *types.Order, warnOnOrders bool) (*types.Value, error) {
	body, err := fixml.RenderCancel(o)
	if err != nil {
		return nil, err
	}
	return t.c.call(ctx, ratelimit.GroupTrade, http.MethodPost, ordersPath(accountID), &callOptions{
		Body:    body,
		Headers: overrideHeaders(warnOnOrders),
	}), nil
}

// Preview 预览订单，不提交成交
func (t *TradeCalls) Preview(ctx context.Context, accountID string, o *types.Order) (*types.Value, error) {
	body, err := fixml.Render(o)
	if err != nil {
		return nil, err
	}
	return t.c.call(ctx, ratelimit.GroupTrade, http.MethodPost, ordersPreviewPath(accountID), &callOptions{
		Body: body,
	}), nil
}
