package client

import (
	"context"
	"net/http"

	"github.com/tradebot/goally/ally/types"
	"github.com/tradebot/goally/pkg/ratelimit"
)

// AccountCalls 账户分组（180 次/分钟）
type AccountCalls struct {
	c *Client
}

// HistoryRange 账户历史查询的时间范围
type HistoryRange string

const (
	HistoryRangeAll          HistoryRange = "all"
	HistoryRangeToday        HistoryRange = "today"
	HistoryRangeCurrentWeek  HistoryRange = "current_week"
	HistoryRangeCurrentMonth HistoryRange = "current_month"
	HistoryRangeLastMonth    HistoryRange = "last_month"
)

// HistoryTransactions 账户历史查询的交易过滤
type HistoryTransactions string

const (
	HistoryTransactionsAll         HistoryTransactions = "all"
	HistoryTransactionsBookkeeping HistoryTransactions = "bookkeeping"
	HistoryTransactionsTrade       HistoryTransactions = "trade"
)

// Accounts 列出全部账户
func (a *AccountCalls) Accounts(ctx context.Context) *types.Value {
	return a.c.call(ctx, ratelimit.GroupAccount, http.MethodGet, EndpointAccounts, nil)
}

// Balances 列出全部账户的余额
func (a *AccountCalls) Balances(ctx context.Context) *types.Value {
	return a.c.call(ctx, ratelimit.GroupAccount, http.MethodGet, EndpointAccountBalances, nil)
}

// AccountByID 按账户 ID 查询账户
func (a *AccountCalls) AccountByID(ctx context.Context, id string) *types.Value {
	return a.c.call(ctx, ratelimit.GroupAccount, http.MethodGet, accountPath(id), nil)
}

// BalancesByID 按账户 ID 查询余额
func (a *AccountCalls) BalancesByID(ctx context.Context, id string) *types.Value {
	return a.c.call(ctx, ratelimit.GroupAccount, http.MethodGet, accountBalancesPath(id), nil)
}

// History 查询账户历史
func (a *AccountCalls) History(ctx context.Context, id string, rng HistoryRange, txns HistoryTransactions) *types.Value {
	return a.c.call(ctx, ratelimit.GroupAccount, http.MethodGet, accountHistoryPath(id), &callOptions{
		Params: map[string]string{
			"range":        string(rng),
			"transactions": string(txns),
		},
	})
}

// Holdings 查询账户持仓
func (a *AccountCalls) Holdings(ctx context.Context, id string) *types.Value {
	return a.c.call(ctx, ratelimit.GroupAccount, http.MethodGet, accountHoldingsPath(id), nil)
}
