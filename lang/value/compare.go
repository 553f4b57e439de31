package value

// typeRank gives the stable fallback ordering used when comparing values of
// different types (§3, "cross-type comparisons fall back to a stable type
// ordering").
func typeRank(v Value) int {
	switch v.(type) {
	case Number:
		return 0
	case Symbol:
		return 1
	case Str:
		return 2
	case Compound:
		return 3
	case Closure:
		return 4
	case NativeFunction:
		return 5
	default:
		return 6
	}
}

// Compare orders two values: numbers as floats, symbols/strings
// lexicographically, compounds by tag then element-wise, and falls back to
// the stable type ordering across differing types. It returns negative if
// x < y, positive if x > y, and zero if equal.
func Compare(x, y Value) int {
	if rx, ry := typeRank(x), typeRank(y); rx != ry {
		return rx - ry
	}

	switch x := x.(type) {
	case Number:
		y := y.(Number)
		switch {
		case x < y:
			return -1
		case x > y:
			return 1
		default:
			return 0
		}
	case Symbol:
		y := y.(Symbol)
		return compareStrings(x.String(), y.String())
	case Str:
		y := y.(Str)
		return compareStrings(string(x), string(y))
	case Compound:
		y := y.(Compound)
		if x.Tag != y.Tag {
			return compareStrings(x.Tag.String(), y.Tag.String())
		}
		for i := 0; i < len(x.Values) && i < len(y.Values); i++ {
			if c := Compare(x.Values[i], y.Values[i]); c != 0 {
				return c
			}
		}
		return len(x.Values) - len(y.Values)
	default:
		return 0
	}
}

func compareStrings(a, b string) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}

// Equal reports whether x and y compare as bitwise-equal (§8: "$eq ... iff
// bitwise-equal floats, with NaN != NaN"). For numbers this uses IEEE
// equality directly rather than Compare's total order, so that NaN is never
// equal to anything, including itself.
func Equal(x, y Value) bool {
	if nx, ok := x.(Number); ok {
		ny, ok := y.(Number)
		return ok && float64(nx) == float64(ny)
	}
	if typeRank(x) != typeRank(y) {
		return false
	}
	return Compare(x, y) == 0
}
