// Package broker 把底层 API 客户端组装成面向策略的门面：
// 账户引导、全局撤单、持仓同步、快照行情。
package broker

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/tradebot/goally/ally/client"
	"github.com/tradebot/goally/ally/fixml"
	"github.com/tradebot/goally/ally/types"
	"github.com/tradebot/goally/internal/store"
	"github.com/tradebot/goally/pkg/logger"
)

// PositionStore 持仓落库接口，由 internal/store 实现。
// 注意持久化策略不属于这一层的契约：门面只管推快照。
type PositionStore interface {
	UpsertAccount(id string) error
	SetCashBalance(id string, balance decimal.Decimal) error
	UpsertPosition(p store.Position) error
}

// Broker 经纪门面
type Broker struct {
	client   *client.Client
	wrapper  Wrapper
	store    PositionStore
	accounts []string
}

// New 创建门面。store 可以为 nil（不落库）。
func New(c *client.Client, w Wrapper, store PositionStore) *Broker {
	if w == nil {
		w = NopWrapper{}
	}
	return &Broker{client: c, wrapper: w, store: store}
}

// Accounts 返回最近一次 Run 引导到的账户列表
func (b *Broker) Accounts() []string { return b.accounts }

// Connect 探活上游 API。REST 没有长连接，这里只校验一次工具端点。
func (b *Broker) Connect(ctx context.Context) error {
	r := b.client.Utility.Status(ctx)
	if errText := r.Get("response", "error").Text(); errText != "" && errText != "Success" {
		return fmt.Errorf("上游探活失败: %s", errText)
	}
	return nil
}

// Disconnect 通知 wrapper 停止。没有连接可断，语义上是回调侧的收尾。
func (b *Broker) Disconnect() {
	b.wrapper.Stop()
}

// Run 引导托管账户列表并通知 wrapper
func (b *Broker) Run(ctx context.Context) error {
	r := b.client.Account.Accounts(ctx)
	if errText := r.Get("response", "error").Text(); errText != "" && errText != "Success" {
		return fmt.Errorf("获取账户列表失败: %s", errText)
	}

	b.accounts = b.accounts[:0]
	for _, summary := range r.Get("response", "accounts", "accountsummary").Elements() {
		if acct := summary.Get("account").Text(); acct != "" {
			b.accounts = append(b.accounts, acct)
		}
	}

	b.wrapper.NextValidID(29)
	b.wrapper.ManagedAccounts(b.accounts)
	logger.Infof("托管账户引导完成，共 %d 个", len(b.accounts))
	return nil
}

// GlobalCancel 对每个托管账户拉订单状态，逐条从 FIXML 报文恢复订单
// 并发出撤单。恢复是有损的，但足以撤单（这正是 Parse 的设计目标）。
func (b *Broker) GlobalCancel(ctx context.Context) error {
	for _, acct := range b.accounts {
		r := b.client.Trade.Orders(ctx, acct)
		for _, status := range r.Get("response", "orderstatus", "order").Elements() {
			msg := status.Get("fixmlmessage").Str()
			if msg == "" {
				continue
			}

			order, err := types.NewOrder(types.NewStock(""), types.TIFDay)
			if err != nil {
				return err
			}
			fixml.Parse(msg, order)

			if _, err := b.client.Trade.CancelOrder(ctx, order.Account, order, true); err != nil {
				b.wrapper.Error(uuid.NewString(), err)
				continue
			}
			logger.Warnf("Global Cancel: %s", order)
		}
	}
	return nil
}

// AccountUpdates 拉账户余额与持仓，推给 wrapper，顺带刷新本地持仓库
func (b *Broker) AccountUpdates(ctx context.Context, account string) error {
	r := b.client.Account.AccountByID(ctx, account)
	if errText := r.Get("response", "error").Text(); errText != "" && errText != "Success" {
		return fmt.Errorf("获取账户 %s 失败: %s", account, errText)
	}

	cash := r.Get("response", "accountbalance", "money", "cashavailable")
	b.wrapper.UpdateAccountValue("CashBalance", cash.Text(), "USD", account)

	if b.store != nil {
		if err := b.store.UpsertAccount(account); err != nil {
			return err
		}
		if err := b.store.SetCashBalance(account, decimal.NewFromFloat(cash.Float())); err != nil {
			return err
		}
	}

	for _, holding := range r.Get("response", "accountholdings", "holding").Elements() {
		instData := holding.Get("instrument")
		inst := types.Instrument{
			Symbol:   instData.Get("sym").Text(),
			Currency: "USD",
		}
		if instData.Get("sectyp").Text() == "CS" {
			inst.SecType = types.SecTypeStock
		}

		qty := decimal.NewFromFloat(holding.Get("qty").Float())
		b.wrapper.UpdatePortfolio(inst, qty,
			holding.Get("price").Float(),
			holding.Get("marketvalue").Float(),
			holding.Get("purchaseprice").Float(),
			holding.Get("gainloss").Float(),
			0, account)

		if b.store != nil {
			err := b.store.UpsertPosition(store.Position{
				Symbol:        inst.Symbol,
				AccountID:     account,
				SecType:       string(inst.SecType),
				Currency:      inst.Currency,
				Quantity:      qty,
				LastTrade:     holding.Get("price").Float(),
				MarketValue:   holding.Get("marketvalue").Float(),
				PurchasePrice: holding.Get("purchaseprice").Float(),
				GainLoss:      holding.Get("gainloss").Float(),
			})
			if err != nil {
				return err
			}
		}
	}
	return nil
}

// MarketData 拉一次快照报价，按买卖中间价推 tick。
// preOpen / canAutoExecute 由市场时钟的当前状态决定。
func (b *Broker) MarketData(ctx context.Context, inst types.Instrument) error {
	reqID := uuid.NewString()

	r := b.client.Market.Quotes(ctx, []string{inst.Symbol})
	quote := r.Get("response", "quotes", "quote")
	bid := quote.Get("bid").Float()
	ask := quote.Get("ask").Float()

	c := b.client.Market.Clock(ctx)
	current := c.Get("response", "status", "current").Str()

	attrib := TickAttrib{
		PreOpen:        current == "pre",
		CanAutoExecute: current == "open",
	}
	b.wrapper.TickPrice(reqID, 0, (bid+ask)/2, attrib)
	return nil
}

// MatchingSymbols 本地合成标的样本（上游没有真正的搜索端点）
func (b *Broker) MatchingSymbols(pattern string) {
	b.wrapper.SymbolSamples(uuid.NewString(), []types.Instrument{types.NewStock(pattern)})
}
