package client

import (
	"context"
	"net/http"

	"github.com/tradebot/goally/ally/types"
	"github.com/tradebot/goally/pkg/ratelimit"
)

// MemberCalls 会员分组（180 次/分钟）
type MemberCalls struct {
	c *Client
}

// Profile 查询会员资料
func (m *MemberCalls) Profile(ctx context.Context) *types.Value {
	return m.c.call(ctx, ratelimit.GroupMember, http.MethodGet, EndpointMemberProfile, nil)
}
