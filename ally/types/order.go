package types

import (
	"fmt"
	"math"
	"math/big"

	"github.com/shopspring/decimal"
)

// 未赋值哨兵。价格与数量默认保持哨兵值，直到调用方显式赋值。
var (
	// UnsetPrice 价格未赋值哨兵（保留的浮点最大值）
	UnsetPrice = math.MaxFloat64

	// UnsetQuantity 数量未赋值哨兵（2^127-1）
	UnsetQuantity = decimal.NewFromBigInt(
		new(big.Int).Sub(new(big.Int).Lsh(big.NewInt(1), 127), big.NewInt(1)), 0)
)

// Order 订单意图
// 由调用方创建、短生命周期、每次交易动作各一个；编解码不持有状态、
// 也不修改订单。
type Order struct {
	Account       string          // 账户 ID
	Instrument    Instrument      // 交易标的
	Action        Action          // 方向
	TotalQuantity decimal.Decimal // 总数量（>= 0）
	Kind          OrderKind       // 订单类型
	LimitPrice    float64         // 限价，默认 UnsetPrice
	StopPrice     float64         // 止损价，默认 UnsetPrice
	TIF           TIF             // 有效期
	Transmit      bool            // true 为实盘提交，false 为预览
	OrigID        string          // 原订单 ID，仅撤单需要
}

// NewOrder 创建订单并检查构造期不变量。
// MOC 只对股票合约有效，违反时在构造期直接失败，不会延迟到渲染期。
func NewOrder(inst Instrument, tif TIF) (*Order, error) {
	if tif == TIFMarketOnClose && inst.SecType != SecTypeStock {
		return nil, fmt.Errorf("market on close valid only for stock instruments")
	}
	return &Order{
		Instrument:    inst,
		Action:        ActionBuy,
		TotalQuantity: UnsetQuantity,
		Kind:          OrderKindLimit,
		LimitPrice:    UnsetPrice,
		StopPrice:     UnsetPrice,
		TIF:           tif,
	}, nil
}

func (o *Order) String() string {
	return fmt.Sprintf("Order(Account=%s, Symbol=%s, Action=%s, Qty=%s, Type=%s, Px=%v, TIF=%s, OrigId=%s)",
		o.Account, o.Instrument.Symbol, o.Action, o.TotalQuantity, o.Kind, o.LimitPrice, o.TIF, o.OrigID)
}
