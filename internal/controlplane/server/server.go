// Package server 控制面：暴露健康、持仓快照、速率预算与会员资料的
// 只读 HTTP 接口，给运维和看板用。
package server

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/tradebot/goally/ally/client"
	"github.com/tradebot/goally/internal/store"
	"github.com/tradebot/goally/pkg/logger"
	"github.com/tradebot/goally/pkg/ratelimit"
)

// Config 控制面配置
type Config struct {
	Bind string // 监听地址，例如 127.0.0.1:8787
}

// Server 控制面服务
type Server struct {
	cfg    Config
	client *client.Client
	store  *store.Store
}

// New 创建控制面服务。store 可以为 nil（不暴露持仓接口）。
func New(cfg Config, c *client.Client, st *store.Store) (*Server, error) {
	if cfg.Bind == "" {
		return nil, errors.New("bind address is required")
	}
	return &Server{cfg: cfg, client: c, store: st}, nil
}

func (s *Server) router() *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	r := gin.New()
	r.Use(gin.Recovery())

	r.GET("/healthz", s.handleHealthz)
	r.GET("/limits", s.handleLimits)
	r.GET("/positions", s.handlePositions)
	r.GET("/profile", s.handleProfile)
	return r
}

// Run 启动监听，ctx 取消时优雅退出
func (s *Server) Run(ctx context.Context) error {
	srv := &http.Server{
		Addr:    s.cfg.Bind,
		Handler: s.router(),
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.ListenAndServe()
	}()
	logger.Infof("控制面已监听 %s", s.cfg.Bind)

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	}
}

func (s *Server) handleHealthz(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"ok": true})
}

// handleLimits 每个端点分组的剩余预算与窗口复位时刻
func (s *Server) handleLimits(c *gin.Context) {
	limits := s.client.Limits()
	out := make([]gin.H, 0, len(ratelimit.Groups()))
	for _, g := range ratelimit.Groups() {
		out = append(out, gin.H{
			"group":     string(g),
			"remaining": limits.Remaining(g),
			"reset":     limits.ResetTime(g).UTC().Format(time.RFC3339),
		})
	}
	c.JSON(http.StatusOK, gin.H{"limits": out})
}

// handlePositions 本地持仓快照，按 ?account= 过滤
func (s *Server) handlePositions(c *gin.Context) {
	if s.store == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "position store disabled"})
		return
	}
	account := c.Query("account")
	if account == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "account query parameter required"})
		return
	}
	positions, err := s.store.Positions(account)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	out := make([]gin.H, 0, len(positions))
	for _, p := range positions {
		out = append(out, gin.H{
			"symbol":         p.Symbol,
			"sec_type":       p.SecType,
			"quantity":       p.Quantity.String(),
			"last_trade":     p.LastTrade,
			"market_value":   p.MarketValue,
			"purchase_price": p.PurchasePrice,
			"gain_loss":      p.GainLoss,
		})
	}
	c.JSON(http.StatusOK, gin.H{"account": account, "positions": out})
}

// handleProfile 会员资料透传（归一化后的值树按原键序输出）
func (s *Server) handleProfile(c *gin.Context) {
	val := s.client.Member.Profile(c.Request.Context())
	data, err := val.MarshalJSON()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.Data(http.StatusOK, "application/json", data)
}
