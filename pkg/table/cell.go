package table

import (
	"fmt"
	"strconv"
)

// CellString returns the canonical text form of a cell value. Integers are
// printed in base 10 and floats in their shortest exact form.
func CellString(v any) string {
	switch v := v.(type) {
	case nil:
		return ""
	case string:
		return v
	case fmt.Stringer:
		return v.String()
	case int:
		return strconv.Itoa(v)
	case int32:
		return strconv.FormatInt(int64(v), 10)
	case int64:
		return strconv.FormatInt(v, 10)
	case uint:
		return strconv.FormatUint(uint64(v), 10)
	case uint32:
		return strconv.FormatUint(uint64(v), 10)
	case uint64:
		return strconv.FormatUint(v, 10)
	case float32:
		return strconv.FormatFloat(float64(v), 'f', -1, 32)
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(v)
	default:
		return fmt.Sprint(v)
	}
}

// Strings converts the page's rows to text.
func (p *Page) Strings() [][]string {
	out := make([][]string, len(p.Rows))
	for i, row := range p.Rows {
		out[i] = make([]string, len(row))
		for j, c := range row {
			out[i][j] = CellString(c.Value)
		}
	}
	return out
}
