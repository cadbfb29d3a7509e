package broker

import (
	"github.com/shopspring/decimal"

	"github.com/tradebot/goally/ally/types"
)

// TickAttrib 行情 tick 的附加属性
type TickAttrib struct {
	CanAutoExecute bool
	PastLimit      bool
	PreOpen        bool
}

// Wrapper 回调接口。Broker 把拉回来的数据推给它，实现方决定展示
// 或落库；所有方法都在调用 Broker 的同一 goroutine 上执行。
type Wrapper interface {
	NextValidID(orderID int)
	ManagedAccounts(accounts []string)
	UpdateAccountValue(key, value, currency, account string)
	UpdatePortfolio(inst types.Instrument, position decimal.Decimal, marketPrice, marketValue, averageCost, unrealizedPNL, realizedPNL float64, account string)
	SymbolSamples(reqID string, instruments []types.Instrument)
	TickPrice(reqID string, tickType int, price float64, attrib TickAttrib)
	Error(reqID string, err error)
	Stop()
}

// NopWrapper 空实现，嵌入后按需覆写
type NopWrapper struct{}

func (NopWrapper) NextValidID(int) {}
func (NopWrapper) ManagedAccounts([]string) {}
func (NopWrapper) UpdateAccountValue(key, value, currency, account string) {}
func (NopWrapper) UpdatePortfolio(types.Instrument, decimal.Decimal, float64, float64, float64, float64, float64, string) {
}
func (NopWrapper) SymbolSamples(string, []types.Instrument) {}
func (NopWrapper) TickPrice(string, int, float64, TickAttrib) {}
func (NopWrapper) Error(string, error) {}
func (NopWrapper) Stop() {}
