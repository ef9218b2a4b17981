package fix64

import (
	"strconv"
	"strings"
	"unicode"

	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

// defaultDecimals is enough to render every distinct Q31.32 value
// distinguishably; the full fraction would need 32 decimals.
const defaultDecimals = 10

// String renders the exact decimal value with up to 10 decimals,
// trailing zeros trimmed. The conversion stays in integer arithmetic;
// going through float64 would lose the low bits of large values.
func (q Q) String() string {
	s := q.StringFixed(defaultDecimals)
	s = strings.TrimRight(s, "0")
	s = strings.TrimSuffix(s, ".")
	return s
}

// StringFixed renders the value with exactly n decimals, truncated.
func (q Q) StringFixed(n uint) string {
	neg := q < 0
	u := uint64(q)
	if neg {
		u = uint64(-q) // MinVal wraps to itself; the uint64 magnitude is still right
	}

	var b strings.Builder
	if neg {
		b.WriteByte('-')
	}
	b.WriteString(strconv.FormatUint(u>>Shift, 10))
	if n == 0 {
		return b.String()
	}
	b.WriteByte('.')
	frac := u & (Scale - 1)
	for i := uint(0); i < n; i++ {
		frac *= 10
		b.WriteByte(byte('0' + frac>>Shift))
		frac &= Scale - 1
	}
	return b.String()
}

// Sprint renders like StringFixed but with the decimal mark of the
// printer's locale.
func (q Q) Sprint(p *message.Printer, n uint) string {
	s := q.StringFixed(n)
	if mark := DecimalMark(p); mark != "." {
		s = strings.Replace(s, ".", mark, 1)
	}
	return s
}

// DecimalMark reports the decimal separator of the printer's locale by
// formatting a probe value; x/text does not expose it directly.
func DecimalMark(p *message.Printer) string {
	s := p.Sprint(number.Decimal(0.5))
	for _, r := range s {
		if !unicode.IsDigit(r) {
			return string(r)
		}
	}
	return "."
}
