package client

import (
	"net/http"
	"strings"

	"github.com/dghubble/oauth1"
	"github.com/pkg/errors"
)

// OAuthCredentials OAuth1 四元组。
// 券商 API 用预授权的 consumer/token 对做请求签名，没有回调流程。
type OAuthCredentials struct {
	ConsumerKey    string
	ConsumerSecret string
	Token          string
	TokenSecret    string
}

// Validate 检查四元组是否齐全
func (c OAuthCredentials) Validate() error {
	if strings.TrimSpace(c.ConsumerKey) == "" ||
		strings.TrimSpace(c.ConsumerSecret) == "" ||
		strings.TrimSpace(c.Token) == "" ||
		strings.TrimSpace(c.TokenSecret) == "" {
		return errors.New("oauth credentials incomplete")
	}
	return nil
}

// NewOAuth1Session 构建对每个请求做 OAuth1 签名的 http.Client。
// 会话是外部协作者：调度器本身只拿到一个认证过的 *http.Client，
// 不关心签名细节。
func NewOAuth1Session(creds OAuthCredentials) (*http.Client, error) {
	if err := creds.Validate(); err != nil {
		return nil, err
	}
	cfg := oauth1.NewConfig(creds.ConsumerKey, creds.ConsumerSecret)
	token := oauth1.NewToken(creds.Token, creds.TokenSecret)
	return cfg.Client(oauth1.NoContext, token), nil
}
