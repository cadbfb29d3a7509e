package store

import (
	"database/sql"
	"errors"
	"path/filepath"
	"testing"

	"github.com/shopspring/decimal"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(filepath.Join(t.TempDir(), "goally.db"))
	if err != nil {
		t.Fatalf("Open 报错: %v", err)
	}
	t.Cleanup(func() { _ = s.Close() })
	return s
}

// TestAccountRoundTrip 账户写入、余额更新、读回
func TestAccountRoundTrip(t *testing.T) {
	s := openTestStore(t)

	if err := s.UpsertAccount("3LB85910"); err != nil {
		t.Fatalf("UpsertAccount 报错: %v", err)
	}
	// 重复 upsert 不报错
	if err := s.UpsertAccount("3LB85910"); err != nil {
		t.Fatalf("重复 UpsertAccount 报错: %v", err)
	}

	bal := decimal.RequireFromString("1234.5")
	if err := s.SetCashBalance("3LB85910", bal); err != nil {
		t.Fatalf("SetCashBalance 报错: %v", err)
	}

	a, err := s.AccountByID("3LB85910")
	if err != nil {
		t.Fatalf("AccountByID 报错: %v", err)
	}
	// 落库保留两位小数
	if a.CashBalance.StringFixed(2) != "1234.50" {
		t.Errorf("CashBalance = %s, 期望 1234.50", a.CashBalance)
	}

	if _, err := s.AccountByID("missing"); !errors.Is(err, sql.ErrNoRows) {
		t.Errorf("缺失账户应返回 sql.ErrNoRows, 实际: %v", err)
	}
}

// TestPositionUpsert 持仓整行覆盖，同键不重复
func TestPositionUpsert(t *testing.T) {
	s := openTestStore(t)

	if err := s.UpsertAccount("3LB85910"); err != nil {
		t.Fatal(err)
	}

	p := Position{
		Symbol:    "AAPL",
		AccountID: "3LB85910",
		SecType:   "STK",
		Currency:  "USD",
		Quantity:  decimal.NewFromInt(10),
		LastTrade: 191.25,
	}
	if err := s.UpsertPosition(p); err != nil {
		t.Fatalf("UpsertPosition 报错: %v", err)
	}

	p.Quantity = decimal.NewFromInt(15)
	p.LastTrade = 192.0
	if err := s.UpsertPosition(p); err != nil {
		t.Fatalf("覆盖 UpsertPosition 报错: %v", err)
	}
	if err := s.UpsertPosition(Position{
		Symbol: "GM", AccountID: "3LB85910", Quantity: decimal.NewFromInt(5),
	}); err != nil {
		t.Fatal(err)
	}

	got, err := s.Positions("3LB85910")
	if err != nil {
		t.Fatalf("Positions 报错: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("持仓条数 = %d, 期望 2", len(got))
	}
	// 代码升序
	if got[0].Symbol != "AAPL" || got[1].Symbol != "GM" {
		t.Errorf("排序错误: %s, %s", got[0].Symbol, got[1].Symbol)
	}
	if !got[0].Quantity.Equal(decimal.NewFromInt(15)) || got[0].LastTrade != 192.0 {
		t.Errorf("覆盖后的持仓不对: %+v", got[0])
	}

	if other, err := s.Positions("other"); err != nil || len(other) != 0 {
		t.Errorf("其他账户应无持仓: %v, %v", other, err)
	}
}
