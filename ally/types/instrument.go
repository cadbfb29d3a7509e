package types

// Instrument 交易标的（合约）
// 绑定到订单的渲染路径之后不再修改。
type Instrument struct {
	Symbol          string  // 代码，非空
	SecType         SecType // 证券类型
	Currency        string  // 币种
	Exchange        string  // 交易所
	PrimaryExchange string  // 主交易所
}

// NewStock 创建一个美股标的，币种与主交易所取上游默认值
func NewStock(symbol string) Instrument {
	return Instrument{
		Symbol:          symbol,
		SecType:         SecTypeStock,
		Currency:        "USD",
		PrimaryExchange: "NYSE",
	}
}
