package interp

import (
	"math"
	"strings"

	"myton/internal/ast"
	"myton/internal/source"
)

func unsupported(span source.Span, op string, l, r Value) *RuntimeError {
	return typeError(span, "unsupported operand type(s) for %s: '%s' and '%s'", op, l.TypeName(), r.TypeName())
}

func binary(op ast.BinaryOp, l, r Value, span source.Span) (Value, *RuntimeError) {
	switch op {
	case ast.BinAdd:
		return add(l, r, span)
	case ast.BinSub, ast.BinDiv, ast.BinMod:
		a, okA := l.numeric()
		b, okB := r.numeric()
		if !okA || !okB {
			return Value{}, unsupported(span, op.String(), l, r)
		}
		switch op {
		case ast.BinSub:
			return Number(a - b), nil
		case ast.BinDiv:
			return Number(a / b), nil
		default:
			return Number(math.Mod(a, b)), nil
		}
	case ast.BinMul:
		return mul(l, r, span)
	case ast.BinEq:
		return Bool(equal(l, r)), nil
	case ast.BinNotEq:
		return Bool(!equal(l, r)), nil
	case ast.BinStrictEq:
		return Bool(l.Kind == r.Kind && equal(l, r)), nil
	case ast.BinLess, ast.BinLessEq, ast.BinGreater, ast.BinGreaterEq:
		return ordering(op, l, r, span)
	}
	return Value{}, unsupported(span, op.String(), l, r)
}

func add(l, r Value, span source.Span) (Value, *RuntimeError) {
	if l.IsNone() || r.IsNone() {
		return Value{}, unsupported(span, "+", l, r)
	}
	a, okA := l.numeric()
	b, okB := r.numeric()
	if okA && okB {
		return Number(a + b), nil
	}
	return String(l.String() + r.String()), nil
}

func mul(l, r Value, span source.Span) (Value, *RuntimeError) {
	if l.IsNone() {
		return Value{}, unsupported(span, "*", l, r)
	}
	n, ok := r.numeric()
	if !ok {
		return Value{}, unsupported(span, "*", l, r)
	}
	switch l.Kind {
	case VKNumber:
		return Number(l.Num * n), nil
	case VKString:
		count := repeatCount(n)
		if err := checkRepeat(len(l.Str), count, span); err != nil {
			return Value{}, err
		}
		return String(strings.Repeat(l.Str, count)), nil
	case VKList:
		count := repeatCount(n)
		if err := checkRepeat(len(l.List), count, span); err != nil {
			return Value{}, err
		}
		if len(l.List) == 0 {
			return List(nil), nil
		}
		out := make([]Value, 0, len(l.List)*count)
		for range count {
			out = append(out, l.List...)
		}
		return List(out), nil
	}
	return Value{}, unsupported(span, "*", l, r)
}

// maxRepeatLen bounds the result of string and list repetition, in bytes
// or elements.
const maxRepeatLen = 1 << 26

func checkRepeat(size, count int, span source.Span) *RuntimeError {
	if size == 0 || count == 0 {
		return nil
	}
	if int64(size)*int64(count) > maxRepeatLen {
		return typeError(span, "repeated sequence too long (%d x %d)", size, count)
	}
	return nil
}

func repeatCount(n float64) int {
	if math.IsNaN(n) || n <= 0 {
		return 0
	}
	if n > math.MaxInt32 {
		return math.MaxInt32
	}
	return int(math.Trunc(n))
}

func isReference(k ValueKind) bool {
	switch k {
	case VKFunction, VKNative, VKClass, VKInstance:
		return true
	}
	return false
}

// equal compares reference kinds by identity and everything else by its
// coerced key.
func equal(l, r Value) bool {
	if isReference(l.Kind) || isReference(r.Kind) {
		if l.Kind != r.Kind {
			return false
		}
		switch l.Kind {
		case VKFunction:
			return l.Fn == r.Fn
		case VKNative:
			return l.Native == r.Native
		case VKClass:
			return l.Class == r.Class
		default:
			return l.Inst == r.Inst
		}
	}
	if isNaN(l) || isNaN(r) {
		return false
	}
	return equalityKey(l) == equalityKey(r)
}

func isNaN(v Value) bool {
	return v.Kind == VKNumber && math.IsNaN(v.Num)
}

func equalityKey(v Value) string {
	if v.Kind == VKBool {
		if v.Bool {
			return "1"
		}
		return "0"
	}
	return v.String()
}

type order uint8

const (
	orderOK order = iota
	orderNone     // same type without an ordering: compares False
	orderMismatch // TypeError
)

func ordering(op ast.BinaryOp, l, r Value, span source.Span) (Value, *RuntimeError) {
	if l.IsNone() {
		return Value{}, unsupported(span, op.String(), l, r)
	}
	c, res := compare(l, r)
	switch res {
	case orderMismatch:
		return Value{}, unsupported(span, op.String(), l, r)
	case orderNone:
		return Bool(false), nil
	}
	switch op {
	case ast.BinLess:
		return Bool(c < 0), nil
	case ast.BinLessEq:
		return Bool(c <= 0), nil
	case ast.BinGreater:
		return Bool(c > 0), nil
	default:
		return Bool(c >= 0), nil
	}
}

func isNumberLike(k ValueKind) bool { return k == VKNumber || k == VKBool }

func compare(l, r Value) (int, order) {
	if isNumberLike(l.Kind) && isNumberLike(r.Kind) {
		a, _ := l.numeric()
		b, _ := r.numeric()
		switch {
		case math.IsNaN(a) || math.IsNaN(b):
			return 0, orderNone
		case a < b:
			return -1, orderOK
		case a > b:
			return 1, orderOK
		}
		return 0, orderOK
	}
	if l.Kind != r.Kind {
		return 0, orderMismatch
	}
	switch l.Kind {
	case VKString:
		return strings.Compare(l.Str, r.Str), orderOK
	case VKList:
		for i := 0; i < len(l.List) && i < len(r.List); i++ {
			c, res := compare(l.List[i], r.List[i])
			if res != orderOK {
				return 0, res
			}
			if c != 0 {
				return c, orderOK
			}
		}
		switch {
		case len(l.List) < len(r.List):
			return -1, orderOK
		case len(l.List) > len(r.List):
			return 1, orderOK
		}
		return 0, orderOK
	}
	return 0, orderNone
}

func unary(op ast.UnaryOp, v Value, span source.Span) (Value, *RuntimeError) {
	if op == ast.UnaryNot {
		return Bool(!v.Truthy()), nil
	}
	n, ok := v.numeric()
	if !ok {
		return Value{}, typeError(span, "bad operand type for unary -: '%s'", v.TypeName())
	}
	return Number(-n), nil
}
