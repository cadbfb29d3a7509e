// Package fixml 渲染与解析 Ally Invest 下单接口使用的 FIXML 子集。
// 线格式是固定的文本模板：一个声明 FIX 命名空间的根元素，内含恰好一个
// Order 或 OrdCxlReq 元素、一个 Instrmt 子元素和一个 OrdQty 子元素，
// 属性顺序固定，价格一律保留两位小数。
package fixml

import (
	"fmt"

	"github.com/tradebot/goally/ally/types"
)

// Namespace FIXML 根元素声明的 FIX 命名空间
const Namespace = "http://www.fixprotocol.org/FIXML-5-0-SP2"

// Render 把订单渲染为完整的 FIXML 下单报文。
// 期权交易未实现：非股票标的在这里报错（上游即是渲染期致命路径，
// 调用方如需更早失败应自行先检查标的类型）。
func Render(o *types.Order) (string, error) {
	if o.Instrument.SecType != types.SecTypeStock {
		return "", fmt.Errorf("option trades not implemented")
	}

	order, err := renderOrder(o)
	if err != nil {
		return "", err
	}

	return fmt.Sprintf(`<FIXML xmlns="%s">%s</FIXML>`, Namespace, order), nil
}

// RenderCancel 把订单渲染为 FIXML 撤单请求（OrdCxlReq）。
// OrigID 必填：没有原订单 ID 的撤单无从路由。
func RenderCancel(o *types.Order) (string, error) {
	if o.OrigID == "" {
		return "", fmt.Errorf("cancel requires an origin order id")
	}

	cxl, err := renderCancelRequest(o)
	if err != nil {
		return "", err
	}

	return fmt.Sprintf(`<FIXML xmlns="%s">%s</FIXML>`, Namespace, cxl), nil
}

// renderInstrument 渲染 Instrmt 子元素。
// 现金类（CS）不带 CFI 属性，其余按期权格式带 CFI 码。
func renderInstrument(inst types.Instrument) string {
	cfi := inst.SecType.CFI()
	if cfi == "CS" {
		return fmt.Sprintf(`<Instrmt SecTyp="CS" Sym="%s"/>`, inst.Symbol)
	}
	return fmt.Sprintf(`<Instrmt SecTyp="OPT" CFI="%s" Sym="%s"/>`, cfi, inst.Symbol)
}

// coreAttrs 查出路由属性的协议码（有效期与方向）。
// 订单类型码由各渲染分支自行决定，类型不在渲染集合里不算"未知枚举"，
// 而是"未实现的订单类型"，错误语义不同。
func coreAttrs(o *types.Order) (tif, side int, err error) {
	if tif, err = o.TIF.Code(); err != nil {
		return
	}
	side, err = o.Action.Code()
	return
}

// renderOrder 渲染 Order 元素，按订单类型分支决定价格属性。
// 属性顺序固定：TmInForce, Typ, [Px], [StopPx], Side, Acct。
func renderOrder(o *types.Order) (string, error) {
	tif, side, err := coreAttrs(o)
	if err != nil {
		return "", err
	}
	inst := renderInstrument(o.Instrument)

	typ, err := o.Kind.Code()
	if err != nil {
		return "", fmt.Errorf("order type %q not implemented", string(o.Kind))
	}

	switch o.Kind {
	case types.OrderKindMarket:
		return fmt.Sprintf(`
    <Order TmInForce="%d" Typ="%d" Side="%d" Acct="%s">
        %s
        <OrdQty Qty="%s"/>
    </Order>
`, tif, typ, side, o.Account, inst, o.TotalQuantity), nil

	case types.OrderKindLimit:
		return fmt.Sprintf(`
    <Order TmInForce="%d" Typ="%d" Px="%.2f" Side="%d" Acct="%s">
        %s
        <OrdQty Qty="%s"/>
    </Order>
`, tif, typ, o.LimitPrice, side, o.Account, inst, o.TotalQuantity), nil

	case types.OrderKindStop:
		return fmt.Sprintf(`
    <Order TmInForce="%d" Typ="%d" StopPx="%.2f" Side="%d" Acct="%s">
        %s
        <OrdQty Qty="%s"/>
    </Order>
`, tif, typ, o.StopPrice, side, o.Account, inst, o.TotalQuantity), nil

	case types.OrderKindStopLimit:
		return fmt.Sprintf(`
    <Order TmInForce="%d" Typ="%d" Px="%.2f" StopPx="%.2f" Side="%d" Acct="%s">
        %s
        <OrdQty Qty="%s"/>
    </Order>
`, tif, typ, o.LimitPrice, o.StopPrice, side, o.Account, inst, o.TotalQuantity), nil
	}

	return "", fmt.Errorf("order type %q not implemented", string(o.Kind))
}

// renderCancelRequest 渲染 OrdCxlReq 元素。
// 与 Order 的分支规则一致，额外在 Side 之后、Acct 之前带 OrigID。
func renderCancelRequest(o *types.Order) (string, error) {
	tif, side, err := coreAttrs(o)
	if err != nil {
		return "", err
	}
	inst := renderInstrument(o.Instrument)

	typ, err := o.Kind.Code()
	if err != nil {
		return "", fmt.Errorf("order type %q not implemented", string(o.Kind))
	}

	switch o.Kind {
	case types.OrderKindMarket:
		return fmt.Sprintf(`
    <OrdCxlReq TmInForce="%d" Typ="%d" Side="%d" OrigID="%s" Acct="%s">
        %s
        <OrdQty Qty="%s"/>
    </OrdCxlReq>`, tif, typ, side, o.OrigID, o.Account, inst, o.TotalQuantity), nil

	case types.OrderKindLimit:
		return fmt.Sprintf(`
    <OrdCxlReq TmInForce="%d" Typ="%d" Px="%.2f" Side="%d" OrigID="%s" Acct="%s">
        %s
        <OrdQty Qty="%s"/>
    </OrdCxlReq>`, tif, typ, o.LimitPrice, side, o.OrigID, o.Account, inst, o.TotalQuantity), nil

	case types.OrderKindStop:
		return fmt.Sprintf(`
    <OrdCxlReq TmInForce="%d" Typ="%d" StopPx="%.2f" Side="%d" OrigID="%s" Acct="%s">
        %s
        <OrdQty Qty="%s"/>
    </OrdCxlReq>`, tif, typ, o.StopPrice, side, o.OrigID, o.Account, inst, o.TotalQuantity), nil

	case types.OrderKindStopLimit:
		return fmt.Sprintf(`
    <OrdCxlReq TmInForce="%d" Typ="%d" Px="%.2f" StopPx="%.2f" Side="%d" OrigID="%s" Acct="%s">
        %s
        <OrdQty Qty="%s"/>
    </OrdCxlReq>`, tif, typ, o.LimitPrice, o.StopPrice, side, o.OrigID, o.Account, inst, o.TotalQuantity), nil
	}

	return "", fmt.Errorf("order type %q not implemented", string(o.Kind))
}
