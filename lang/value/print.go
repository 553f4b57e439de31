package value

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Print returns the printed representation of v, per §6: numbers with a
// zero fractional part print as integer digits, strings re-apply escape
// sequences, symbols print as their name, well-formed cons chains print as
// "(a b c)", quote-family compounds print with their prefix sigils, other
// compounds print as "(#tag v1 v2 ...)", and nil/true/false print as their
// symbol names.
func Print(v Value) string {
	var sb strings.Builder
	print1(&sb, v)
	return sb.String()
}

func print1(sb *strings.Builder, v Value) {
	switch v := v.(type) {
	case Number:
		sb.WriteString(printNumber(float64(v)))
	case Str:
		sb.WriteString(printString(string(v)))
	case Symbol:
		sb.WriteString(v.String())
	case Compound:
		printCompound(sb, v)
	case Closure:
		fmt.Fprintf(sb, "<closure %d>", v.FnID)
	case NativeFunction:
		fmt.Fprintf(sb, "<native-function %d>", v.FnID)
	default:
		if v == nil {
			sb.WriteString("nil")
			return
		}
		sb.WriteString(v.String())
	}
}

func printNumber(f float64) string {
	if math.Trunc(f) == f && !math.IsInf(f, 0) {
		return strconv.FormatFloat(f, 'f', -1, 64)
	}
	return strconv.FormatFloat(f, 'g', -1, 64)
}

func printString(s string) string {
	var sb strings.Builder
	sb.WriteByte('"')
	for _, r := range s {
		switch r {
		case '"':
			sb.WriteString(`\"`)
		case '\\':
			sb.WriteString(`\\`)
		case '\n':
			sb.WriteString(`\n`)
		case '\r':
			sb.WriteString(`\r`)
		case '\t':
			sb.WriteString(`\t`)
		default:
			sb.WriteRune(r)
		}
	}
	sb.WriteByte('"')
	return sb.String()
}

var quotePrefix = map[Symbol]string{
	SymQuote:           "'",
	SymQuasiquote:      "`",
	SymUnquote:         ",",
	SymUnquoteSplicing: ",@",
}

func printCompound(sb *strings.Builder, c Compound) {
	if prefix, ok := quotePrefix[c.Tag]; ok && len(c.Values) == 1 {
		sb.WriteString(prefix)
		print1(sb, c.Values[0])
		return
	}

	if c.Tag == SymCons && len(c.Values) == 2 {
		if elems, err := Iterate(c); err == nil {
			sb.WriteByte('(')
			for i, e := range elems {
				if i > 0 {
					sb.WriteByte(' ')
				}
				print1(sb, e)
			}
			sb.WriteByte(')')
			return
		}
	}

	sb.WriteString("(#")
	sb.WriteString(c.Tag.String())
	for _, e := range c.Values {
		sb.WriteByte(' ')
		print1(sb, e)
	}
	sb.WriteByte(')')
}
