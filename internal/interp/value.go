// Package interp is the tree-walking evaluator: runtime values, the
// environment chain, and statement execution over the arena AST.
package interp

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// ValueKind identifies the runtime type of a Value.
type ValueKind uint8

const (
	VKNone ValueKind = iota
	VKNumber
	VKString
	VKBool
	VKList
	VKFunction
	VKNative
	VKClass
	VKInstance
)

// String returns the type name used in runtime error messages.
func (k ValueKind) String() string {
	switch k {
	case VKNone:
		return "NoneType"
	case VKNumber:
		return "number"
	case VKString:
		return "str"
	case VKBool:
		return "bool"
	case VKList:
		return "list"
	case VKFunction:
		return "function"
	case VKNative:
		return "built-in function"
	case VKClass:
		return "class"
	case VKInstance:
		return "object"
	default:
		return fmt.Sprintf("ValueKind(%d)", k)
	}
}

// Value is a closed tagged union; only the field matching Kind is set.
// The zero Value is None.
type Value struct {
	Kind   ValueKind
	Num    float64
	Str    string
	Bool   bool
	List   []Value
	Fn     *Function
	Native *Native
	Class  *Class
	Inst   *Instance
}

func None() Value                     { return Value{} }
func Number(f float64) Value          { return Value{Kind: VKNumber, Num: f} }
func String(s string) Value           { return Value{Kind: VKString, Str: s} }
func Bool(b bool) Value               { return Value{Kind: VKBool, Bool: b} }
func List(items []Value) Value        { return Value{Kind: VKList, List: items} }
func FuncValue(f *Function) Value     { return Value{Kind: VKFunction, Fn: f} }
func NativeValue(n *Native) Value     { return Value{Kind: VKNative, Native: n} }
func ClassValue(c *Class) Value       { return Value{Kind: VKClass, Class: c} }
func InstanceValue(i *Instance) Value { return Value{Kind: VKInstance, Inst: i} }

// TypeName is the name shown in TypeError messages.
func (v Value) TypeName() string { return v.Kind.String() }

// IsNone reports whether v is None.
func (v Value) IsNone() bool { return v.Kind == VKNone }

// Truthy: 0, "", False, None and the empty list are false.
func (v Value) Truthy() bool {
	switch v.Kind {
	case VKNone:
		return false
	case VKNumber:
		return v.Num != 0 && !math.IsNaN(v.Num)
	case VKString:
		return v.Str != ""
	case VKBool:
		return v.Bool
	case VKList:
		return len(v.List) > 0
	default:
		return true
	}
}

// numeric reports the value as a float when it is a number, a boolean or
// a string holding a float.
func (v Value) numeric() (float64, bool) {
	switch v.Kind {
	case VKNumber:
		return v.Num, true
	case VKBool:
		if v.Bool {
			return 1, true
		}
		return 0, true
	case VKString:
		f, err := strconv.ParseFloat(v.Str, 64)
		if err != nil && !isRangeErr(err) {
			return 0, false
		}
		return f, true
	default:
		return 0, false
	}
}

func isRangeErr(err error) bool {
	return errors.Is(err, strconv.ErrRange)
}

// String returns the printed form of v.
func (v Value) String() string {
	switch v.Kind {
	case VKNone:
		return "None"
	case VKNumber:
		return FormatNumber(v.Num)
	case VKString:
		return v.Str
	case VKBool:
		if v.Bool {
			return "True"
		}
		return "False"
	case VKList:
		var sb strings.Builder
		sb.WriteByte('[')
		for i, item := range v.List {
			if i > 0 {
				sb.WriteString(", ")
			}
			sb.WriteString(item.String())
		}
		sb.WriteByte(']')
		return sb.String()
	case VKFunction:
		return "<function " + v.Fn.Name + ">"
	case VKNative:
		return "<built-in function " + v.Native.Name + ">"
	case VKClass:
		return "<class " + v.Class.Name + ">"
	case VKInstance:
		return "<" + v.Inst.Class.Name + " object>"
	default:
		return "<invalid>"
	}
}

// FormatNumber prints the shortest decimal form without an exponent.
func FormatNumber(f float64) string {
	switch {
	case math.IsNaN(f):
		return "NaN"
	case math.IsInf(f, 1):
		return "inf"
	case math.IsInf(f, -1):
		return "-inf"
	}
	return strconv.FormatFloat(f, 'f', -1, 64)
}
