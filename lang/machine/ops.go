package machine

import (
	"math"

	"github.com/mna/jymbol/lang/ast"
	"github.com/mna/jymbol/lang/value"
)

func asNumber(v value.Value) (float64, error) {
	n, ok := v.(value.Number)
	if !ok {
		return 0, value.NewError(value.Type, "expected a number, got %s", v.Type())
	}
	return float64(n), nil
}

// asInt64 coerces v to a 64-bit signed integer for bitwise/shift operators
// (§4.4: "for shifts/bitwise, coerce to 64-bit signed").
func asInt64(v value.Value) (int64, error) {
	f, err := asNumber(v)
	if err != nil {
		return 0, err
	}
	return int64(f), nil
}

func boolValue(b bool) value.Value {
	if b {
		return value.SymTrue
	}
	return value.SymFalse
}

// applyUnOp implements the unary arithmetic operators (§4.4, §6).
func applyUnOp(op ast.Op, x value.Value) (value.Value, error) {
	if op == ast.OpNot {
		xi, err := asInt64(x)
		if err != nil {
			return nil, err
		}
		return value.Number(float64(^xi)), nil
	}

	xf, err := asNumber(x)
	if err != nil {
		return nil, err
	}
	switch op {
	case ast.OpNeg:
		return value.Number(-xf), nil
	case ast.OpAbs:
		return value.Number(math.Abs(xf)), nil
	case ast.OpSqrt:
		return value.Number(math.Sqrt(xf)), nil
	case ast.OpTrunc:
		return value.Number(math.Trunc(xf)), nil
	case ast.OpFract:
		return value.Number(xf - math.Trunc(xf)), nil
	case ast.OpRound:
		return value.Number(math.Round(xf)), nil
	case ast.OpFloor:
		return value.Number(math.Floor(xf)), nil
	case ast.OpCeil:
		return value.Number(math.Ceil(xf)), nil
	default:
		return nil, value.NewError(value.Compile, "unexpected unary operator %s", op)
	}
}

// applyBinOp implements the binary arithmetic/bitwise/comparison operators
// (§4.4, §6, §8).
func applyBinOp(op ast.Op, x, y value.Value) (value.Value, error) {
	switch op {
	case ast.OpEq:
		return boolValue(value.Equal(x, y)), nil
	case ast.OpNe:
		return boolValue(!value.Equal(x, y)), nil
	}

	switch op {
	case ast.OpShl, ast.OpShr, ast.OpAnd, ast.OpOr, ast.OpXor:
		xi, err := asInt64(x)
		if err != nil {
			return nil, err
		}
		yi, err := asInt64(y)
		if err != nil {
			return nil, err
		}
		switch op {
		case ast.OpShl:
			return value.Number(float64(xi << uint(yi&63))), nil
		case ast.OpShr:
			return value.Number(float64(xi >> uint(yi&63))), nil
		case ast.OpAnd:
			return value.Number(float64(xi & yi)), nil
		case ast.OpOr:
			return value.Number(float64(xi | yi)), nil
		case ast.OpXor:
			return value.Number(float64(xi ^ yi)), nil
		}
	}

	xf, err := asNumber(x)
	if err != nil {
		return nil, err
	}
	yf, err := asNumber(y)
	if err != nil {
		return nil, err
	}
	switch op {
	case ast.OpAdd:
		return value.Number(xf + yf), nil
	case ast.OpSub:
		return value.Number(xf - yf), nil
	case ast.OpMul:
		return value.Number(xf * yf), nil
	case ast.OpDiv:
		return value.Number(xf / yf), nil
	case ast.OpMod:
		return value.Number(math.Mod(xf, yf)), nil
	case ast.OpPow:
		return value.Number(math.Pow(xf, yf)), nil
	case ast.OpLt:
		return boolValue(xf < yf), nil
	case ast.OpGt:
		return boolValue(xf > yf), nil
	case ast.OpLe:
		return boolValue(xf <= yf), nil
	case ast.OpGe:
		return boolValue(xf >= yf), nil
	default:
		return nil, value.NewError(value.Compile, "unexpected binary operator %s", op)
	}
}
