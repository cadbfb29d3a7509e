package server

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"

	"github.com/shopspring/decimal"

	"github.com/tradebot/goally/ally/client"
	"github.com/tradebot/goally/internal/store"
)

func newTestServer(t *testing.T, st *store.Store, upstream http.HandlerFunc) *Server {
	t.Helper()
	if upstream == nil {
		upstream = func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(`{"response":{"error":"Success"}}`))
		}
	}
	api := httptest.NewServer(upstream)
	t.Cleanup(api.Close)

	s, err := New(Config{Bind: "127.0.0.1:0"}, client.New(api.URL, api.Client()), st)
	if err != nil {
		t.Fatalf("New 报错: %v", err)
	}
	return s
}

func doGet(t *testing.T, s *Server, path string) *httptest.ResponseRecorder {
	t.Helper()
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	s.router().ServeHTTP(rec, req)
	return rec
}

// TestNewRequiresBind 监听地址必填
func TestNewRequiresBind(t *testing.T) {
	if _, err := New(Config{}, nil, nil); err == nil {
		t.Error("空监听地址应报错")
	}
}

// TestHealthz 健康检查
func TestHealthz(t *testing.T) {
	s := newTestServer(t, nil, nil)
	rec := doGet(t, s, "/healthz")
	if rec.Code != http.StatusOK {
		t.Errorf("状态码 = %d", rec.Code)
	}
}

// TestLimits 每个分组一条，带余量与复位时刻
func TestLimits(t *testing.T) {
	s := newTestServer(t, nil, nil)
	rec := doGet(t, s, "/limits")
	if rec.Code != http.StatusOK {
		t.Fatalf("状态码 = %d", rec.Code)
	}

	var body struct {
		Limits []struct {
			Group     string `json:"group"`
			Remaining int    `json:"remaining"`
			Reset     string `json:"reset"`
		} `json:"limits"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("响应解析失败: %v", err)
	}
	if len(body.Limits) != 6 {
		t.Fatalf("分组条数 = %d, 期望 6", len(body.Limits))
	}
	for _, l := range body.Limits {
		if l.Group == "trade" && l.Remaining != 40 {
			t.Errorf("交易组余量 = %d, 期望 40", l.Remaining)
		}
	}
}

// TestPositions 持仓接口要求 account 参数，按账户过滤
func TestPositions(t *testing.T) {
	st, err := store.Open(filepath.Join(t.TempDir(), "goally.db"))
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { _ = st.Close() })

	if err := st.UpsertAccount("3LB85910"); err != nil {
		t.Fatal(err)
	}
	if err := st.UpsertPosition(store.Position{
		Symbol: "AAPL", AccountID: "3LB85910", SecType: "STK",
		Quantity: decimal.NewFromInt(10), LastTrade: 191.25,
	}); err != nil {
		t.Fatal(err)
	}

	s := newTestServer(t, st, nil)

	if rec := doGet(t, s, "/positions"); rec.Code != http.StatusBadRequest {
		t.Errorf("缺 account 参数应 400, 实际 %d", rec.Code)
	}

	rec := doGet(t, s, "/positions?account=3LB85910")
	if rec.Code != http.StatusOK {
		t.Fatalf("状态码 = %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), `"symbol":"AAPL"`) {
		t.Errorf("响应缺少持仓: %s", rec.Body.String())
	}
}

// TestPositionsDisabled 没有持仓库时返回 503
func TestPositionsDisabled(t *testing.T) {
	s := newTestServer(t, nil, nil)
	if rec := doGet(t, s, "/positions?account=x"); rec.Code != http.StatusServiceUnavailable {
		t.Errorf("无持仓库应 503, 实际 %d", rec.Code)
	}
}

// TestProfilePassthrough 会员资料透传，保持上游键序
func TestProfilePassthrough(t *testing.T) {
	s := newTestServer(t, nil, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"response":{"userdata":{"zeta":"1","alpha":"2"},"error":"Success"}}`))
	})

	rec := doGet(t, s, "/profile")
	if rec.Code != http.StatusOK {
		t.Fatalf("状态码 = %d", rec.Code)
	}
	body := rec.Body.String()
	if strings.Index(body, "zeta") > strings.Index(body, "alpha") {
		t.Errorf("键序应保持上游顺序: %s", body)
	}
}
