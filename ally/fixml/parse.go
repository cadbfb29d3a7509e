package fixml

import (
	"regexp"
	"strconv"

	"github.com/shopspring/decimal"

	"github.com/tradebot/goally/ally/types"
)

// 字段恢复用的属性模式。各模式独立搜索，互不依赖。
var (
	reSym    = regexp.MustCompile(`Sym="(\w+)"`)
	reOrigID = regexp.MustCompile(`OrdID="([A-Z]{3}-\d+)"`)
	reAcct   = regexp.MustCompile(`Acct="([A-Z0-9]{8}).?"`)
	reQty    = regexp.MustCompile(`\bQty="([0-9.]+)"`)
	rePx     = regexp.MustCompile(`Px="([0-9.]+)"`)
	reTyp    = regexp.MustCompile(`\bTyp="(\d)"`)
	reTIF    = regexp.MustCompile(`TmInForce="(\d)"`)
	reSide   = regexp.MustCompile(`Side="(\d)"`)
	reSecTyp = regexp.MustCompile(`SecTyp="(\w{2,})"`)
)

// Parse 从订单状态报文里恢复字段，写回 o。
//
// 这是部分的、有损的重建：目标只是恢复到足以重新发出撤单的程度，
// 不是 Render 的逆函数。没命中的模式静默保留字段原值（策略如此，
// 不报错）。Side 码 1 同时对应 BUY 和 COVER，反查按声明顺序取第一个，
// 所以 COVER 永远恢复成 BUY。
func Parse(msg string, o *types.Order) {
	if m := reSym.FindStringSubmatch(msg); m != nil {
		o.Instrument.Symbol = m[1]
	}
	if m := reOrigID.FindStringSubmatch(msg); m != nil {
		o.OrigID = m[1]
	}
	if m := reAcct.FindStringSubmatch(msg); m != nil {
		o.Account = m[1]
	}
	if m := reQty.FindStringSubmatch(msg); m != nil {
		if qty, err := decimal.NewFromString(m[1]); err == nil {
			o.TotalQuantity = qty
		}
	}
	if m := rePx.FindStringSubmatch(msg); m != nil {
		if px, err := strconv.ParseFloat(m[1], 64); err == nil {
			o.LimitPrice = px
		}
	}

	if m := reTyp.FindStringSubmatch(msg); m != nil {
		if code, err := strconv.Atoi(m[1]); err == nil {
			if kind, ok := types.OrderKindFromCode(code); ok {
				o.Kind = kind
			}
		}
	}
	if m := reTIF.FindStringSubmatch(msg); m != nil {
		if code, err := strconv.Atoi(m[1]); err == nil {
			if tif, ok := types.TIFFromCode(code); ok {
				o.TIF = tif
			}
		}
	}
	if m := reSide.FindStringSubmatch(msg); m != nil {
		if code, err := strconv.Atoi(m[1]); err == nil {
			if action, ok := types.ActionFromCode(code); ok {
				o.Action = action
			}
		}
	}
	if m := reSecTyp.FindStringSubmatch(msg); m != nil {
		if st, ok := types.SecTypeFromCFI(m[1]); ok {
			o.Instrument.SecType = st
		}
	}
}
