package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	allyclient "github.com/tradebot/goally/ally/client"
	"github.com/tradebot/goally/ally/types"
	"github.com/tradebot/goally/pkg/config"
	"github.com/tradebot/goally/pkg/secretstore"
)

// 行情轮询间隔。行情组预算 60 次/分钟，轮询间隔别低于 1 秒。
const pollInterval = 2 * time.Second

var (
	titleStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("212"))
	headerStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("245"))
	upStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("82"))
	downStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))
	dimStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
)

// quoteRow 单个代码的一行快照
type quoteRow struct {
	Symbol string
	Bid    float64
	Ask    float64
	Last   float64
	Change float64
}

// quotesMsg 一轮轮询的结果
type quotesMsg struct {
	rows []quoteRow
	err  error
}

type tickMsg time.Time

type model struct {
	client  *allyclient.Client
	symbols []string
	rows    []quoteRow
	lastErr error
	updated time.Time
}

func (m model) Init() tea.Cmd {
	return tea.Batch(m.fetch, tick())
}

func tick() tea.Cmd {
	return tea.Tick(pollInterval, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

// fetch 拉一轮报价。上游单代码时返回单对象、多代码返回数组，
// Elements 统一成切片。
func (m model) fetch() tea.Msg {
	ctx, cancel := context.WithTimeout(context.Background(), pollInterval)
	defer cancel()

	r := m.client.Market.Quotes(ctx, m.symbols)
	if errText := r.Get("response", "error").Text(); errText != "" && errText != "Success" {
		return quotesMsg{err: fmt.Errorf("%s", errText)}
	}

	var rows []quoteRow
	for _, q := range r.Get("response", "quotes", "quote").Elements() {
		rows = append(rows, quoteRow{
			Symbol: strings.ToUpper(symbolText(q)),
			Bid:    q.Get("bid").Float(),
			Ask:    q.Get("ask").Float(),
			Last:   q.Get("last").Float(),
			Change: q.Get("chg").Float(),
		})
	}
	return quotesMsg{rows: rows}
}

func symbolText(q *types.Value) string {
	if s := q.Get("symbol").Text(); s != "" {
		return s
	}
	return q.Get("sym").Text()
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		}
	case tickMsg:
		return m, tea.Batch(m.fetch, tick())
	case quotesMsg:
		if msg.err != nil {
			m.lastErr = msg.err
			return m, nil
		}
		m.lastErr = nil
		m.rows = msg.rows
		m.updated = time.Now()
	}
	return m, nil
}

func (m model) View() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("goally quote watcher"))
	b.WriteString("\n\n")
	b.WriteString(headerStyle.Render(fmt.Sprintf("%-8s %10s %10s %10s %10s", "SYMBOL", "BID", "ASK", "LAST", "CHG")))
	b.WriteString("\n")

	for _, row := range m.rows {
		style := upStyle
		if row.Change < 0 {
			style = downStyle
		}
		b.WriteString(fmt.Sprintf("%-8s %10.2f %10.2f %10.2f %s\n",
			row.Symbol, row.Bid, row.Ask, row.Last,
			style.Render(fmt.Sprintf("%10.2f", row.Change))))
	}

	if m.lastErr != nil {
		b.WriteString("\n" + downStyle.Render("错误: "+m.lastErr.Error()) + "\n")
	}
	if !m.updated.IsZero() {
		b.WriteString("\n" + dimStyle.Render("更新于 "+m.updated.Format("15:04:05")+"  (q 退出)") + "\n")
	}
	return b.String()
}

func main() {
	configPath := flag.String("config", "", "配置文件路径（yaml）")
	flag.Parse()

	symbols := flag.Args()
	if len(symbols) == 0 {
		fmt.Fprintln(os.Stderr, "用法: quote-watcher [-config path] SYMBOL [SYMBOL...]")
		os.Exit(1)
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	creds := secretstore.FromEnv()
	if !creds.Complete() {
		ss, err := secretstore.Open(secretstore.OpenOptions{Path: cfg.SecretStorePath, ReadOnly: true})
		if err != nil {
			fmt.Fprintln(os.Stderr, "打开凭据库失败:", err)
			os.Exit(1)
		}
		creds, err = ss.LoadCredentials()
		_ = ss.Close()
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
	}

	session, err := allyclient.NewOAuth1Session(allyclient.OAuthCredentials{
		ConsumerKey:    creds.ConsumerKey,
		ConsumerSecret: creds.ConsumerSecret,
		Token:          creds.Token,
		TokenSecret:    creds.TokenSecret,
	})
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	m := model{
		client:  allyclient.New(cfg.Endpoint, session),
		symbols: symbols,
	}

	if _, err := tea.NewProgram(m).Run(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
