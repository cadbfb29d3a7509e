package broker

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/shopspring/decimal"

	"github.com/tradebot/goally/ally/client"
	"github.com/tradebot/goally/ally/types"
)

// recordWrapper 记录回调参数的测试桩
type recordWrapper struct {
	NopWrapper

	accounts   []string
	nextID     int
	values     map[string]string
	portfolio  []string
	tickPrices []float64
	tickAttrib TickAttrib
	stopped    bool
}

func (r *recordWrapper) NextValidID(id int)             { r.nextID = id }
func (r *recordWrapper) ManagedAccounts(accts []string) { r.accounts = accts }

func (r *recordWrapper) UpdateAccountValue(key, value, currency, account string) {
	if r.values == nil {
		r.values = make(map[string]string)
	}
	r.values[key] = value
}

func (r *recordWrapper) UpdatePortfolio(inst types.Instrument, position decimal.Decimal, marketPrice, marketValue, averageCost, unrealizedPNL, realizedPNL float64, account string) {
	r.portfolio = append(r.portfolio, inst.Symbol)
}

func (r *recordWrapper) TickPrice(reqID string, tickType int, price float64, attrib TickAttrib) {
	r.tickPrices = append(r.tickPrices, price)
	r.tickAttrib = attrib
}

func (r *recordWrapper) Stop() { r.stopped = true }

func newTestBroker(t *testing.T, handler http.HandlerFunc) (*Broker, *recordWrapper, *httptest.Server) {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	w := &recordWrapper{}
	return New(client.New(srv.URL, srv.Client()), w, nil), w, srv
}

// TestConnectDisconnect 探活走工具端点，断开通知 wrapper 停止
func TestConnectDisconnect(t *testing.T) {
	b, w, _ := newTestBroker(t, func(rw http.ResponseWriter, r *http.Request) {
		rw.Write([]byte(`{"response":{"error":"Success"}}`))
	})

	if err := b.Connect(context.Background()); err != nil {
		t.Fatalf("Connect 报错: %v", err)
	}
	b.Disconnect()
	if !w.stopped {
		t.Error("Disconnect 应通知 wrapper 停止")
	}
}

// TestConnectFailure 探活失败返回上游错误文本
func TestConnectFailure(t *testing.T) {
	b, _, _ := newTestBroker(t, func(rw http.ResponseWriter, r *http.Request) {
		rw.WriteHeader(http.StatusServiceUnavailable)
		rw.Write([]byte("Maintenance window"))
	})

	if err := b.Connect(context.Background()); err == nil {
		t.Error("上游不可用时 Connect 应报错")
	}
}

// TestRunNumericErrorBody 非 200 的纯数字响应体定型成整数叶子，
// 错误检查必须照样识别，不能当成功
func TestRunNumericErrorBody(t *testing.T) {
	b, _, _ := newTestBroker(t, func(rw http.ResponseWriter, r *http.Request) {
		rw.WriteHeader(http.StatusTooManyRequests)
		rw.Write([]byte("429"))
	})

	if err := b.Run(context.Background()); err == nil {
		t.Error("数字错误体的 Run 应报错")
	}
	if err := b.Connect(context.Background()); err == nil {
		t.Error("数字错误体的 Connect 应报错")
	}
	if err := b.AccountUpdates(context.Background(), "3LB85910"); err == nil {
		t.Error("数字错误体的 AccountUpdates 应报错")
	}
}

// TestRunBootstrapsAccounts 引导托管账户并通知 wrapper
func TestRunBootstrapsAccounts(t *testing.T) {
	b, w, _ := newTestBroker(t, func(rw http.ResponseWriter, r *http.Request) {
		rw.Write([]byte(`{"response":{"error":"Success","accounts":{"accountsummary":{"account":"3LB85910"}}}}`))
	})

	if err := b.Run(context.Background()); err != nil {
		t.Fatalf("Run 报错: %v", err)
	}
	if w.nextID != 29 {
		t.Errorf("NextValidID = %d, 期望 29", w.nextID)
	}
	if len(w.accounts) != 1 || w.accounts[0] != "3LB85910" {
		t.Errorf("托管账户 = %v", w.accounts)
	}
	if got := b.Accounts(); len(got) != 1 || got[0] != "3LB85910" {
		t.Errorf("Accounts() = %v", got)
	}
}

// TestGlobalCancel 从订单状态报文恢复订单并对每条发出撤单
func TestGlobalCancel(t *testing.T) {
	const fixmlMsg = `<FIXML xmlns=\"http://www.fixprotocol.org/FIXML-5-0-SP2\"><Order OrdID=\"SVI-12345678\" TmInForce=\"1\" Typ=\"2\" Px=\"100.00\" Side=\"1\" Acct=\"3LB85910\"><Instrmt SecTyp=\"CS\" Sym=\"AAPL\"/><OrdQty Qty=\"1\"/></Order></FIXML>`

	var cancels []string
	b, _, _ := newTestBroker(t, func(rw http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodPost {
			body, _ := io.ReadAll(r.Body)
			cancels = append(cancels, string(body))
			rw.Write([]byte(`{"response":{"error":"Success"}}`))
			return
		}
		switch {
		case strings.Contains(r.URL.Path, "/orders"):
			rw.Write([]byte(`{"response":{"error":"Success","orderstatus":{"order":{"fixmlmessage":"` + fixmlMsg + `"}}}}`))
		default:
			rw.Write([]byte(`{"response":{"error":"Success","accounts":{"accountsummary":{"account":"3LB85910"}}}}`))
		}
	})

	if err := b.Run(context.Background()); err != nil {
		t.Fatal(err)
	}
	if err := b.GlobalCancel(context.Background()); err != nil {
		t.Fatalf("GlobalCancel 报错: %v", err)
	}

	if len(cancels) != 1 {
		t.Fatalf("撤单次数 = %d, 期望 1", len(cancels))
	}
	cxl := cancels[0]
	if !strings.Contains(cxl, "<OrdCxlReq ") {
		t.Errorf("撤单请求体应是 OrdCxlReq: %s", cxl)
	}
	if !strings.Contains(cxl, `OrigID="SVI-12345678"`) {
		t.Errorf("撤单应带恢复出的原订单 ID: %s", cxl)
	}
	if !strings.Contains(cxl, `Sym="AAPL"`) || !strings.Contains(cxl, `Acct="3LB85910"`) {
		t.Errorf("撤单应带恢复出的标的与账户: %s", cxl)
	}
}

// TestAccountUpdates 余额与持仓推给 wrapper
func TestAccountUpdates(t *testing.T) {
	b, w, _ := newTestBroker(t, func(rw http.ResponseWriter, r *http.Request) {
		rw.Write([]byte(`{"response":{"error":"Success",` +
			`"accountbalance":{"money":{"cashavailable":"1234.56"}},` +
			`"accountholdings":{"holding":[` +
			`{"instrument":{"sym":"AAPL","sectyp":"CS"},"qty":"10","price":"191.25","marketvalue":"1912.50","purchaseprice":"150.00","gainloss":"412.50"},` +
			`{"instrument":{"sym":"GM","sectyp":"CS"},"qty":"5","price":"38.50","marketvalue":"192.50","purchaseprice":"40.00","gainloss":"-7.50"}]}}}`))
	})

	if err := b.AccountUpdates(context.Background(), "3LB85910"); err != nil {
		t.Fatalf("AccountUpdates 报错: %v", err)
	}

	if got := w.values["CashBalance"]; got != "1234.56" {
		t.Errorf("CashBalance = %q", got)
	}
	if len(w.portfolio) != 2 || w.portfolio[0] != "AAPL" || w.portfolio[1] != "GM" {
		t.Errorf("持仓回调 = %v", w.portfolio)
	}
}

// TestMarketData 用买卖中间价推 tick，盘前状态带 PreOpen 属性
func TestMarketData(t *testing.T) {
	b, w, _ := newTestBroker(t, func(rw http.ResponseWriter, r *http.Request) {
		if strings.Contains(r.URL.Path, "clock") {
			rw.Write([]byte(`{"response":{"status":{"current":"pre"}}}`))
			return
		}
		rw.Write([]byte(`{"response":{"quotes":{"quote":{"symbol":"AAPL","bid":"190.00","ask":"191.00"}}}}`))
	})

	if err := b.MarketData(context.Background(), types.NewStock("AAPL")); err != nil {
		t.Fatalf("MarketData 报错: %v", err)
	}

	if len(w.tickPrices) != 1 || w.tickPrices[0] != 190.5 {
		t.Errorf("tick 价格 = %v, 期望中间价 190.5", w.tickPrices)
	}
	if !w.tickAttrib.PreOpen || w.tickAttrib.CanAutoExecute {
		t.Errorf("盘前属性错误: %+v", w.tickAttrib)
	}
}
