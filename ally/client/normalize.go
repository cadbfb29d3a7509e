package client

import (
	"bytes"
	"encoding/json"
	"fmt"
	"regexp"
	"strconv"

	"github.com/tradebot/goally/ally/types"
)

// 字符串叶子重新定型用的模式
var (
	reFloat = regexp.MustCompile(`^[-+]?[0-9]*\.[0-9]+$`)
	reInt   = regexp.MustCompile(`^[0-9]+$`)
)

// retypeString 把字符串叶子重新定型：
// "true"/"false" -> Bool，带符号小数 -> Float，无符号整数 -> Int，
// 其余保持 String。
func retypeString(s string) *types.Value {
	switch {
	case s == "true":
		return types.BoolValue(true)
	case s == "false":
		return types.BoolValue(false)
	case reFloat.MatchString(s):
		if f, err := strconv.ParseFloat(s, 64); err == nil {
			return types.FloatValue(f)
		}
	case reInt.MatchString(s):
		if i, err := strconv.ParseInt(s, 10, 64); err == nil {
			return types.IntValue(i)
		}
	}
	return types.StringValue(s)
}

// DecodeJSON 解码 JSON 响应体并归一化成值树。
// 用 token 流逐个构建节点，Map 保持原始键序；不展平、不丢结构。
func DecodeJSON(data []byte) (*types.Value, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	val, err := decodeValue(dec)
	if err != nil {
		return nil, err
	}
	return val, nil
}

func decodeValue(dec *json.Decoder) (*types.Value, error) {
	tok, err := dec.Token()
	if err != nil {
		return nil, err
	}
	return decodeToken(dec, tok)
}

func decodeToken(dec *json.Decoder, tok json.Token) (*types.Value, error) {
	switch t := tok.(type) {
	case json.Delim:
		switch t {
		case '{':
			return decodeObject(dec)
		case '[':
			return decodeArray(dec)
		}
		return nil, fmt.Errorf("unexpected delimiter %q", t.String())
	case string:
		return retypeString(t), nil
	case bool:
		return types.BoolValue(t), nil
	case json.Number:
		if i, err := t.Int64(); err == nil {
			return types.IntValue(i), nil
		}
		f, err := t.Float64()
		if err != nil {
			return nil, err
		}
		return types.FloatValue(f), nil
	case nil:
		return types.Null(), nil
	}
	return nil, fmt.Errorf("unexpected token %v", tok)
}

func decodeObject(dec *json.Decoder) (*types.Value, error) {
	obj := types.NewMap()
	for dec.More() {
		keyTok, err := dec.Token()
		if err != nil {
			return nil, err
		}
		key, ok := keyTok.(string)
		if !ok {
			return nil, fmt.Errorf("non-string object key %v", keyTok)
		}
		val, err := decodeValue(dec)
		if err != nil {
			return nil, err
		}
		obj.Set(key, val)
	}
	// 消费收尾的 '}'
	if _, err := dec.Token(); err != nil {
		return nil, err
	}
	return obj, nil
}

func decodeArray(dec *json.Decoder) (*types.Value, error) {
	arr := types.NewArray()
	for dec.More() {
		val, err := decodeValue(dec)
		if err != nil {
			return nil, err
		}
		arr.Append(val)
	}
	// 消费收尾的 ']'
	if _, err := dec.Token(); err != nil {
		return nil, err
	}
	return arr, nil
}

// Normalize 归一化一棵已解码的 map/slice 树（测试与内部合成响应用；
// 注意 Go 的 map 没有稳定键序，线上路径一律走 DecodeJSON）。
func Normalize(raw any) *types.Value {
	switch t := raw.(type) {
	case map[string]any:
		obj := types.NewMap()
		for _, k := range sortedKeys(t) {
			obj.Set(k, Normalize(t[k]))
		}
		return obj
	case []any:
		arr := types.NewArray()
		for _, el := range t {
			arr.Append(Normalize(el))
		}
		return arr
	case string:
		return retypeString(t)
	case bool:
		return types.BoolValue(t)
	case float64:
		return types.FloatValue(t)
	case int:
		return types.IntValue(int64(t))
	case int64:
		return types.IntValue(t)
	case nil:
		return types.Null()
	}
	return types.StringValue(fmt.Sprint(raw))
}

func sortedKeys(m map[string]any) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	// 保持确定性输出即可
	for i := 1; i < len(keys); i++ {
		for j := i; j > 0 && keys[j] < keys[j-1]; j-- {
			keys[j], keys[j-1] = keys[j-1], keys[j]
		}
	}
	return keys
}
