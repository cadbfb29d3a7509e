package types

import (
	"bytes"
	"encoding/json"
	"strconv"
)

// ValueKind 归一化响应节点的类型标签
type ValueKind int

const (
	KindNull ValueKind = iota
	KindMap
	KindArray
	KindBool
	KindInt
	KindFloat
	KindString
)

// Value 归一化后的响应树节点：显式的标签联合
// （Map/Array/Bool/Int/Float/String），代替上游的反射式属性访问。
// Map 保持键的插入顺序。每次调用产生全新的树，调用之间不复用。
type Value struct {
	kind ValueKind

	keys []string
	m    map[string]*Value
	arr  []*Value

	b bool
	i int64
	f float64
	s string
}

// Null 空节点
func Null() *Value { return &Value{kind: KindNull} }

// NewMap 创建空的有序 Map 节点
func NewMap() *Value {
	return &Value{kind: KindMap, m: make(map[string]*Value)}
}

// NewArray 创建空的数组节点
func NewArray() *Value { return &Value{kind: KindArray} }

// BoolValue 布尔叶子
func BoolValue(b bool) *Value { return &Value{kind: KindBool, b: b} }

// IntValue 整数叶子
func IntValue(i int64) *Value { return &Value{kind: KindInt, i: i} }

// FloatValue 浮点叶子
func FloatValue(f float64) *Value { return &Value{kind: KindFloat, f: f} }

// StringValue 字符串叶子
func StringValue(s string) *Value { return &Value{kind: KindString, s: s} }

// Kind 返回节点类型标签
func (v *Value) Kind() ValueKind {
	if v == nil {
		return KindNull
	}
	return v.kind
}

// Set 设置 Map 键值，保持首次插入的顺序
func (v *Value) Set(key string, val *Value) *Value {
	if v.kind != KindMap {
		return v
	}
	if _, ok := v.m[key]; !ok {
		v.keys = append(v.keys, key)
	}
	v.m[key] = val
	return v
}

// Append 追加数组元素
func (v *Value) Append(val *Value) *Value {
	if v.kind == KindArray {
		v.arr = append(v.arr, val)
	}
	return v
}

// Keys 返回 Map 的键（插入顺序）
func (v *Value) Keys() []string {
	if v == nil {
		return nil
	}
	return v.keys
}

// Len 返回 Map 或数组的长度
func (v *Value) Len() int {
	if v == nil {
		return 0
	}
	switch v.kind {
	case KindMap:
		return len(v.keys)
	case KindArray:
		return len(v.arr)
	}
	return 0
}

// At 返回数组的第 i 个元素，越界返回 nil
func (v *Value) At(i int) *Value {
	if v == nil || v.kind != KindArray || i < 0 || i >= len(v.arr) {
		return nil
	}
	return v.arr[i]
}

// Get 沿键路径向下取节点，任何一级缺失都返回 nil，对 nil 接收者安全
func (v *Value) Get(path ...string) *Value {
	cur := v
	for _, key := range path {
		if cur == nil || cur.kind != KindMap {
			return nil
		}
		cur = cur.m[key]
	}
	return cur
}

// Bool 返回布尔值，非布尔节点返回零值
func (v *Value) Bool() bool {
	if v == nil || v.kind != KindBool {
		return false
	}
	return v.b
}

// Int 返回整数值，非整数节点返回零值
func (v *Value) Int() int64 {
	if v == nil {
		return 0
	}
	switch v.kind {
	case KindInt:
		return v.i
	case KindFloat:
		return int64(v.f)
	}
	return 0
}

// Float 返回浮点值；整数节点提升为浮点
func (v *Value) Float() float64 {
	if v == nil {
		return 0
	}
	switch v.kind {
	case KindFloat:
		return v.f
	case KindInt:
		return float64(v.i)
	}
	return 0
}

// Str 返回字符串值，非字符串节点返回空串
func (v *Value) Str() string {
	if v == nil || v.kind != KindString {
		return ""
	}
	return v.s
}

// Text 把标量叶子按原样转回文本。归一化可能已把上游的字符串定型成
// 数字或布尔，判断"字段是否存在且是什么"时用它，不要用 Str。
// 容器与空节点返回空串。
func (v *Value) Text() string {
	switch v.Kind() {
	case KindString:
		return v.s
	case KindInt:
		return strconv.FormatInt(v.i, 10)
	case KindFloat:
		return strconv.FormatFloat(v.f, 'g', -1, 64)
	case KindBool:
		return strconv.FormatBool(v.b)
	}
	return ""
}

// Elements 以切片形式逐一返回节点：数组返回其元素；单个 Map 包装成
// 单元素切片。上游把"单条记录"和"多条记录"混用同一字段（单条时不是
// 数组），调用方用它统一遍历。
func (v *Value) Elements() []*Value {
	if v == nil {
		return nil
	}
	if v.kind == KindArray {
		return v.arr
	}
	return []*Value{v}
}

// MarshalJSON 按插入顺序输出 Map 键
func (v *Value) MarshalJSON() ([]byte, error) {
	if v == nil {
		return []byte("null"), nil
	}
	switch v.kind {
	case KindNull:
		return []byte("null"), nil
	case KindBool:
		return strconv.AppendBool(nil, v.b), nil
	case KindInt:
		return strconv.AppendInt(nil, v.i, 10), nil
	case KindFloat:
		return json.Marshal(v.f)
	case KindString:
		return json.Marshal(v.s)
	case KindArray:
		var buf bytes.Buffer
		buf.WriteByte('[')
		for i, el := range v.arr {
			if i > 0 {
				buf.WriteByte(',')
			}
			b, err := el.MarshalJSON()
			if err != nil {
				return nil, err
			}
			buf.Write(b)
		}
		buf.WriteByte(']')
		return buf.Bytes(), nil
	case KindMap:
		var buf bytes.Buffer
		buf.WriteByte('{')
		for i, k := range v.keys {
			if i > 0 {
				buf.WriteByte(',')
			}
			kb, err := json.Marshal(k)
			if err != nil {
				return nil, err
			}
			buf.Write(kb)
			buf.WriteByte(':')
			vb, err := v.m[k].MarshalJSON()
			if err != nil {
				return nil, err
			}
			buf.Write(vb)
		}
		buf.WriteByte('}')
		return buf.Bytes(), nil
	}
	return []byte("null"), nil
}
