package types

import (
	"encoding/json"
	"reflect"
	"testing"
)

// TestValueMapOrder Map 保持键的插入顺序，序列化也按同一顺序
func TestValueMapOrder(t *testing.T) {
	v := NewMap().
		Set("zebra", IntValue(1)).
		Set("apple", IntValue(2)).
		Set("mid", IntValue(3))

	want := []string{"zebra", "apple", "mid"}
	if !reflect.DeepEqual(v.Keys(), want) {
		t.Errorf("Keys() = %v, 期望 %v", v.Keys(), want)
	}

	// 重复 Set 不改变顺序
	v.Set("apple", IntValue(9))
	if !reflect.DeepEqual(v.Keys(), want) {
		t.Errorf("重复 Set 之后 Keys() = %v, 期望不变", v.Keys())
	}
	if v.Get("apple").Int() != 9 {
		t.Error("重复 Set 应该覆盖值")
	}

	b, err := json.Marshal(v)
	if err != nil {
		t.Fatalf("Marshal 报错: %v", err)
	}
	if string(b) != `{"zebra":1,"apple":9,"mid":3}` {
		t.Errorf("意外的序列化结果: %s", b)
	}
}

// TestValueGetNilSafe 任意一级缺失都返回 nil，取值得零值，不 panic
func TestValueGetNilSafe(t *testing.T) {
	v := NewMap().Set("response", NewMap().Set("error", StringValue("Success")))

	if got := v.Get("response", "error").Str(); got != "Success" {
		t.Errorf("Get 路径取值 = %q", got)
	}
	if v.Get("response", "missing", "deeper") != nil {
		t.Error("缺失路径应返回 nil")
	}
	if v.Get("nope").Int() != 0 || v.Get("nope").Float() != 0 || v.Get("nope").Str() != "" {
		t.Error("nil 节点取值应得零值")
	}

	var nilV *Value
	if nilV.Get("x") != nil || nilV.Kind() != KindNull {
		t.Error("nil 接收者应安全")
	}
}

// TestValueText 定型后的叶子转回原始文本；容器与空节点得空串
func TestValueText(t *testing.T) {
	cases := []struct {
		v    *Value
		want string
	}{
		{StringValue("Success"), "Success"},
		{IntValue(429), "429"},
		{FloatValue(191.25), "191.25"},
		{BoolValue(false), "false"},
		{Null(), ""},
		{NewMap(), ""},
		{nil, ""},
	}
	for _, tc := range cases {
		if got := tc.v.Text(); got != tc.want {
			t.Errorf("Text() = %q, 期望 %q", got, tc.want)
		}
	}
}

// TestValueElements 单条记录和数组统一成切片遍历
func TestValueElements(t *testing.T) {
	single := NewMap().Set("sym", StringValue("AAPL"))
	if got := single.Elements(); len(got) != 1 || got[0] != single {
		t.Error("单个 Map 应包装成单元素切片")
	}

	arr := NewArray().
		Append(NewMap().Set("sym", StringValue("AAPL"))).
		Append(NewMap().Set("sym", StringValue("GM")))
	if got := arr.Elements(); len(got) != 2 || got[1].Get("sym").Str() != "GM" {
		t.Error("数组应原样展开")
	}

	var nilV *Value
	if nilV.Elements() != nil {
		t.Error("nil 节点应展开成 nil 切片")
	}
}
