package client

import (
	"context"
	"net/http"

	"github.com/tradebot/goally/ally/types"
	"github.com/tradebot/goally/pkg/ratelimit"
)

// UtilityCalls 工具分组（300 次/分钟，预算最松）
type UtilityCalls struct {
	c *Client
}

// Status 查询 API 状态
func (u *UtilityCalls) Status(ctx context.Context) *types.Value {
	return u.c.call(ctx, ratelimit.GroupUtility, http.MethodGet, EndpointUtilityStatus, nil)
}

// Version 查询 API 版本
func (u *UtilityCalls) Version(ctx context.Context) *types.Value {
	return u.c.call(ctx, ratelimit.GroupUtility, http.MethodGet, EndpointUtilityVersion, nil)
}
