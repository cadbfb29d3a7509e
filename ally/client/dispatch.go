package client

import (
	"context"
	"fmt"
	"net/http"

	"github.com/go-resty/resty/v2"
	"github.com/google/uuid"

	"github.com/tradebot/goally/ally/types"
	"github.com/tradebot/goally/pkg/logger"
	"github.com/tradebot/goally/pkg/ratelimit"
)

// callOptions 单次调用的可选项
type callOptions struct {
	Params  map[string]string // 查询参数
	Body    string            // 请求体（FIXML 文本）
	Headers map[string]string // 额外请求头
}

// call 统一的请求流水线：速率准入 -> 传输 -> 校验 -> 归一化。
// 步骤各自独立可测。任何失败都折叠成带 response.error 的值返回，
// 这一层永远不向调用方抛传输错误。
func (c *Client) call(ctx context.Context, group ratelimit.Group, method, path string, opt *callOptions) *types.Value {
	reqID := uuid.NewString()
	log := logger.WithField("req", reqID)

	// 准入可能阻塞：窗口内没有余量时挂起，等最老的调用过期
	if err := c.limits.Wait(ctx, group); err != nil {
		return errorValue(err.Error())
	}

	r := c.rest.R().SetContext(ctx)
	if opt != nil {
		if len(opt.Headers) > 0 {
			r.SetHeaders(opt.Headers)
		}
		if len(opt.Params) > 0 {
			r.SetQueryParams(opt.Params)
		}
		if opt.Body != "" {
			r.SetBody(opt.Body)
		}
	}

	var (
		resp *resty.Response
		err  error
	)
	uri := path + ResponseFormat
	switch method {
	case http.MethodGet:
		resp, err = r.Get(uri)
	case http.MethodPost:
		resp, err = r.Post(uri)
	case http.MethodDelete:
		resp, err = r.Delete(uri)
	default:
		log.Warnf("不支持的请求方法 %s %s", method, uri)
		return errorValue(fmt.Sprintf("unsupported method %s", method))
	}
	if err != nil {
		log.Warnf("请求失败 %s %s: %v", method, uri, err)
		return errorValue(err.Error())
	}

	if resp.StatusCode() != http.StatusOK {
		log.Warnf("非 200 响应 %s %s: %d", method, uri, resp.StatusCode())
		return errorValue(string(resp.Body()))
	}

	val, err := DecodeJSON(resp.Body())
	if err != nil {
		log.Warnf("响应解码失败 %s %s: %v", method, uri, err)
		return errorValue(string(resp.Body()))
	}
	return val
}

// errorValue 把原始错误文本包装成固定的 response.error 形状。
// 错误文本同样经过重新定型，和正常响应的叶子保持一致。
func errorValue(text string) *types.Value {
	inner := types.NewMap()
	inner.Set("error", retypeString(text))
	root := types.NewMap()
	root.Set("response", inner)
	return root
}
