package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/shopspring/decimal"

	allyclient "github.com/tradebot/goally/ally/client"
	"github.com/tradebot/goally/ally/types"
	"github.com/tradebot/goally/internal/broker"
	"github.com/tradebot/goally/internal/controlplane/server"
	"github.com/tradebot/goally/internal/store"
	"github.com/tradebot/goally/pkg/config"
	"github.com/tradebot/goally/pkg/logger"
	"github.com/tradebot/goally/pkg/secretstore"
	"github.com/tradebot/goally/pkg/shutdown"
)

// logWrapper 把回调打进结构化日志
type logWrapper struct {
	broker.NopWrapper
}

func (logWrapper) ManagedAccounts(accounts []string) {
	logger.Infof("托管账户: %v", accounts)
}

func (logWrapper) UpdateAccountValue(key, value, currency, account string) {
	logger.WithField("account", account).Infof("%s = %s %s", key, value, currency)
}

func (logWrapper) UpdatePortfolio(inst types.Instrument, position decimal.Decimal, marketPrice, marketValue, averageCost, unrealizedPNL, realizedPNL float64, account string) {
	logger.WithField("account", account).Infof("持仓 %s qty=%s px=%.2f mv=%.2f",
		inst.Symbol, position, marketPrice, marketValue)
}

func (logWrapper) Error(reqID string, err error) {
	logger.WithField("req", reqID).Errorf("%v", err)
}

func run() error {
	configPath := flag.String("config", "", "配置文件路径（yaml）")
	globalCancel := flag.Bool("global-cancel", false, "启动时撤掉全部在途订单后退出")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		return err
	}

	if err := logger.Init(logger.Config{
		Level:      cfg.LogLevel,
		OutputFile: cfg.LogFile,
		MaxSize:    100,
		MaxBackups: 3,
		MaxAge:     7,
		Compress:   true,
	}); err != nil {
		return err
	}

	// 凭据优先从本地凭据库取，缺失时回退环境变量
	creds := secretstore.FromEnv()
	if !creds.Complete() {
		ss, err := secretstore.Open(secretstore.OpenOptions{Path: cfg.SecretStorePath, ReadOnly: true})
		if err != nil {
			return fmt.Errorf("打开凭据库失败: %w", err)
		}
		creds, err = ss.LoadCredentials()
		_ = ss.Close()
		if err != nil {
			return err
		}
	}
	if !creds.Complete() {
		return fmt.Errorf("OAuth 凭据不完整：请配置凭据库或环境变量")
	}

	session, err := allyclient.NewOAuth1Session(allyclient.OAuthCredentials{
		ConsumerKey:    creds.ConsumerKey,
		ConsumerSecret: creds.ConsumerSecret,
		Token:          creds.Token,
		TokenSecret:    creds.TokenSecret,
	})
	if err != nil {
		return err
	}

	client := allyclient.New(cfg.Endpoint, session)

	st, err := store.Open(cfg.DBPath)
	if err != nil {
		return fmt.Errorf("打开持仓库失败: %w", err)
	}

	down := shutdown.NewManager()
	down.OnShutdown(func(context.Context) {
		if err := st.Close(); err != nil {
			logger.Warnf("关闭持仓库失败: %v", err)
		}
	})

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	b := broker.New(client, logWrapper{}, st)
	if err := b.Connect(ctx); err != nil {
		return err
	}
	defer b.Disconnect()

	if err := b.Run(ctx); err != nil {
		return err
	}

	if *globalCancel {
		err := b.GlobalCancel(ctx)
		gracefulExit(down)
		return err
	}

	// 控制面按配置启动
	if cfg.ControlBind != "" {
		srv, err := server.New(server.Config{Bind: cfg.ControlBind}, client, st)
		if err != nil {
			return err
		}
		go func() {
			if err := srv.Run(ctx); err != nil {
				logger.Errorf("控制面退出: %v", err)
			}
		}()
	}

	// 同步一轮账户与持仓，然后等退出信号
	for _, acct := range b.Accounts() {
		if err := b.AccountUpdates(ctx, acct); err != nil {
			logger.Warnf("账户同步失败 %s: %v", acct, err)
		}
	}

	<-ctx.Done()
	logger.Infof("收到退出信号，关闭中...")
	gracefulExit(down)
	return nil
}

func gracefulExit(down *shutdown.Manager) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	down.Shutdown(ctx)
}

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
