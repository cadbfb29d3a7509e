// Package store 本地持仓库：账户与持仓的 sqlite 镜像。
// 经纪侧永远是事实来源，这里只是对账用的本地快照。
package store

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/shopspring/decimal"
	_ "modernc.org/sqlite"
)

// Account 账户快照
type Account struct {
	ID          string
	CashBalance decimal.Decimal
	CreatedAt   int64
	UpdatedAt   int64
}

// Position 持仓快照
type Position struct {
	Symbol          string
	AccountID       string
	SecType         string
	Currency        string
	Exchange        string
	PrimaryExchange string
	Quantity        decimal.Decimal
	LastTrade       float64
	MarketValue     float64
	PurchasePrice   float64
	GainLoss        float64
}

// Store sqlite 持仓库
type Store struct {
	db *sql.DB
}

// Open 打开（必要时创建）持仓库并执行建表迁移
func Open(path string) (*Store, error) {
	if dir := filepath.Dir(path); dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("mkdir db dir: %w", err)
		}
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	// SQLite：单连接更稳定
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)

	s := &Store{db: db}
	if err := s.migrate(); err != nil {
		_ = db.Close()
		return nil, err
	}
	return s, nil
}

func (s *Store) migrate() error {
	const schema = `
CREATE TABLE IF NOT EXISTS account (
	id           TEXT PRIMARY KEY,
	cash_balance TEXT,
	created_at   INTEGER NOT NULL,
	updated_at   INTEGER NOT NULL
);
CREATE TABLE IF NOT EXISTS position (
	symbol           TEXT NOT NULL,
	account_id       TEXT NOT NULL REFERENCES account(id),
	sec_type         TEXT,
	currency         TEXT,
	exchange         TEXT,
	primary_exchange TEXT,
	quantity         TEXT NOT NULL DEFAULT '0',
	last_trade       REAL,
	market_value     REAL,
	purchase_price   REAL,
	gain_loss        REAL,
	PRIMARY KEY (symbol, account_id)
);`
	_, err := s.db.Exec(schema)
	return err
}

// Close 关闭底层连接
func (s *Store) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

// UpsertAccount 插入或刷新账户
func (s *Store) UpsertAccount(id string) error {
	now := time.Now().Unix()
	_, err := s.db.Exec(`
INSERT INTO account (id, created_at, updated_at) VALUES (?, ?, ?)
ON CONFLICT(id) DO UPDATE SET updated_at = excluded.updated_at`,
		id, now, now)
	return err
}

// SetCashBalance 更新账户现金余额，落库保留两位小数
func (s *Store) SetCashBalance(id string, balance decimal.Decimal) error {
	_, err := s.db.Exec(`
UPDATE account SET cash_balance = ?, updated_at = ? WHERE id = ?`,
		balance.StringFixed(2), time.Now().Unix(), id)
	return err
}

// AccountByID 按 ID 读账户，不存在返回 sql.ErrNoRows
func (s *Store) AccountByID(id string) (*Account, error) {
	row := s.db.QueryRow(`
SELECT id, COALESCE(cash_balance, '0'), created_at, updated_at FROM account WHERE id = ?`, id)

	var a Account
	var cash string
	if err := row.Scan(&a.ID, &cash, &a.CreatedAt, &a.UpdatedAt); err != nil {
		return nil, err
	}
	bal, err := decimal.NewFromString(cash)
	if err != nil {
		return nil, fmt.Errorf("bad cash balance %q: %w", cash, err)
	}
	a.CashBalance = bal
	return &a, nil
}

// UpsertPosition 插入或整行覆盖持仓
func (s *Store) UpsertPosition(p Position) error {
	_, err := s.db.Exec(`
INSERT INTO position (symbol, account_id, sec_type, currency, exchange, primary_exchange,
	quantity, last_trade, market_value, purchase_price, gain_loss)
VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
ON CONFLICT(symbol, account_id) DO UPDATE SET
	sec_type = excluded.sec_type,
	currency = excluded.currency,
	exchange = excluded.exchange,
	primary_exchange = excluded.primary_exchange,
	quantity = excluded.quantity,
	last_trade = excluded.last_trade,
	market_value = excluded.market_value,
	purchase_price = excluded.purchase_price,
	gain_loss = excluded.gain_loss`,
		p.Symbol, p.AccountID, p.SecType, p.Currency, p.Exchange, p.PrimaryExchange,
		p.Quantity.String(), p.LastTrade, p.MarketValue, p.PurchasePrice, p.GainLoss)
	return err
}

// Positions 按账户列出持仓（代码升序）
func (s *Store) Positions(accountID string) ([]Position, error) {
	rows, err := s.db.Query(`
SELECT symbol, account_id, COALESCE(sec_type, ''), COALESCE(currency, ''),
	COALESCE(exchange, ''), COALESCE(primary_exchange, ''), quantity,
	COALESCE(last_trade, 0), COALESCE(market_value, 0),
	COALESCE(purchase_price, 0), COALESCE(gain_loss, 0)
FROM position WHERE account_id = ? ORDER BY symbol`, accountID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Position
	for rows.Next() {
		var p Position
		var qty string
		if err := rows.Scan(&p.Symbol, &p.AccountID, &p.SecType, &p.Currency,
			&p.Exchange, &p.PrimaryExchange, &qty,
			&p.LastTrade, &p.MarketValue, &p.PurchasePrice, &p.GainLoss); err != nil {
			return nil, err
		}
		q, err := decimal.NewFromString(qty)
		if err != nil {
			return nil, fmt.Errorf("bad quantity %q: %w", qty, err)
		}
		p.Quantity = q
		out = append(out, p)
	}
	return out, rows.Err()
}
