package client

import "fmt"

// API 端点常量。相对路径，不带 .json 后缀（后缀由 call 统一追加）。
const (
	// DefaultEndpoint 默认的 API 基地址
	DefaultEndpoint = "https://devapi.invest.ally.com/v1/"

	// ResponseFormat 统一追加在路径后的响应格式后缀
	ResponseFormat = ".json"

	// Account endpoints
	EndpointAccounts        = "accounts"
	EndpointAccountBalances = "accounts/balances"

	// Market endpoints
	EndpointMarketClock  = "market/clock"
	EndpointMarketQuotes = "market/ext/quotes"

	// Member endpoints
	EndpointMemberProfile = "member/profile"

	// Utility endpoints
	EndpointUtilityStatus  = "utility/status"
	EndpointUtilityVersion = "utility/version"

	// Watchlist endpoints
	EndpointWatchlists = "watchlists"
)

func accountPath(id string) string          { return fmt.Sprintf("accounts/%s", id) }
func accountBalancesPath(id string) string  { return fmt.Sprintf("accounts/%s/balances", id) }
func accountHistoryPath(id string) string   { return fmt.Sprintf("accounts/%s/history", id) }
func accountHoldingsPath(id string) string  { return fmt.Sprintf("accounts/%s/holdings", id) }
func ordersPath(id string) string           { return fmt.Sprintf("accounts/%s/orders", id) }
func ordersPreviewPath(id string) string    { return fmt.Sprintf("accounts/%s/orders/preview", id) }
func watchlistPath(id string) string        { return fmt.Sprintf("watchlists/%s", id) }
func watchlistSymbolsPath(id string) string { return fmt.Sprintf("watchlists/%s/symbols", id) }
