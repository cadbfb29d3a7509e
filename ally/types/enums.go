package types

import "fmt"

// Action 订单方向
type Action string

const (
	ActionBuy   Action = "BUY"
	ActionSell  Action = "SELL"
	ActionShort Action = "SHORT"
	ActionCover Action = "COVER"
)

// OrderKind 订单类型
type OrderKind string

const (
	OrderKindMarket    OrderKind = "MKT"
	OrderKindLimit     OrderKind = "LMT"
	OrderKindStop      OrderKind = "STP"
	OrderKindStopLimit OrderKind = "STP LMT"
	OrderKindCancel    OrderKind = "CXL"
)

// TIF 订单有效期（time-in-force）
type TIF string

const (
	TIFDay             TIF = "DAY"
	TIFGoodTilCanceled TIF = "GTC"
	TIFMarketOnClose   TIF = "MOC"
)

// SecType 证券类型
type SecType string

const (
	SecTypeStock SecType = "STK"
	SecTypeCall  SecType = "CALL"
	SecTypePut   SecType = "PUT"
)

// 字段映射表：符号值 <-> FIXML 协议码。
// 表是封闭且有序的：反查按声明顺序扫描，第一个命中的码胜出。
// 注意 BUY 和 COVER 共用 Side 码 1，因此反查永远解出 BUY（上游如此，
// 是已记录的歧义，不要"修复"）。

type actionEntry struct {
	Action Action
	Code   int
}

var actionCodes = []actionEntry{
	{ActionBuy, 1},
	{ActionSell, 2},
	{ActionShort, 5},
	{ActionCover, 1},
}

type orderKindEntry struct {
	Kind OrderKind
	Code int
}

var orderKindCodes = []orderKindEntry{
	{OrderKindMarket, 1},
	{OrderKindLimit, 2},
	{OrderKindStop, 3},
	{OrderKindStopLimit, 4},
}

type tifEntry struct {
	TIF  TIF
	Code int
}

var tifCodes = []tifEntry{
	{TIFDay, 0},
	{TIFGoodTilCanceled, 1},
	{TIFMarketOnClose, 7},
}

type secTypeEntry struct {
	SecType SecType
	CFI     string
}

var secTypeCFI = []secTypeEntry{
	{SecTypeCall, "OC"},
	{SecTypePut, "OP"},
	{SecTypeStock, "CS"},
}

// Code 返回方向对应的 Side 协议码，封闭集之外的值报错
func (a Action) Code() (int, error) {
	for _, e := range actionCodes {
		if e.Action == a {
			return e.Code, nil
		}
	}
	return 0, fmt.Errorf("unknown action %q", string(a))
}

// ActionFromCode 按声明顺序反查 Side 码，第一个命中胜出
func ActionFromCode(code int) (Action, bool) {
	for _, e := range actionCodes {
		if e.Code == code {
			return e.Action, true
		}
	}
	return "", false
}

// Code 返回订单类型对应的 Typ 协议码，封闭集之外的值报错
func (k OrderKind) Code() (int, error) {
	for _, e := range orderKindCodes {
		if e.Kind == k {
			return e.Code, nil
		}
	}
	return 0, fmt.Errorf("unknown order kind %q", string(k))
}

// OrderKindFromCode 按声明顺序反查 Typ 码
func OrderKindFromCode(code int) (OrderKind, bool) {
	for _, e := range orderKindCodes {
		if e.Code == code {
			return e.Kind, true
		}
	}
	return "", false
}

// Code 返回有效期对应的 TmInForce 协议码，封闭集之外的值报错
func (t TIF) Code() (int, error) {
	for _, e := range tifCodes {
		if e.TIF == t {
			return e.Code, nil
		}
	}
	return 0, fmt.Errorf("unknown time-in-force %q", string(t))
}

// TIFFromCode 按声明顺序反查 TmInForce 码
func TIFFromCode(code int) (TIF, bool) {
	for _, e := range tifCodes {
		if e.Code == code {
			return e.TIF, true
		}
	}
	return "", false
}

// CFI 返回证券类型对应的 CFI 码；未映射的类型按现金类（CS）处理
func (s SecType) CFI() string {
	for _, e := range secTypeCFI {
		if e.SecType == s {
			return e.CFI
		}
	}
	return "CS"
}

// SecTypeFromCFI 按声明顺序反查 CFI 码
func SecTypeFromCFI(cfi string) (SecType, bool) {
	for _, e := range secTypeCFI {
		if e.CFI == cfi {
			return e.SecType, true
		}
	}
	return "", false
}
