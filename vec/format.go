package vec

import (
	"golang.org/x/text/message"

	"github.com/pdok/fixvec/fix64"
)

// String renders the vector as "<X, Y>" with the default scalar formatting.
func (v Vec2) String() string {
	return "<" + v.x.String() + ", " + v.y.String() + ">"
}

// Sprint renders "<X, Y>" with n decimals per component in the printer's
// locale. When the locale writes decimals with a comma the components are
// separated by a semicolon instead, so the string stays unambiguous.
// That approximates the list-separator conventions of full localization
// frameworks; x/text does not expose a list separator itself.
func (v Vec2) Sprint(p *message.Printer, n uint) string {
	sep := ", "
	if fix64.DecimalMark(p) == "," {
		sep = "; "
	}
	return "<" + v.x.Sprint(p, n) + sep + v.y.Sprint(p, n) + ">"
}
