package constraint

// Operator is a comparison operator in the queueing service's filter
// expression syntax. The token values are the wire format.
type Operator string

const (
	Equals        Operator = "=="
	NotEquals     Operator = "!="
	Greater       Operator = ">"
	GreaterEquals Operator = ">="
	Less          Operator = "<"
	LessEquals    Operator = "<="

	// Is and IsNot are the meta-comparison operators: they compare
	// without evaluation, so undefined attributes compare equal to
	// undefined instead of erroring.
	Is    Operator = "=?="
	IsNot Operator = "=!="
)

// operators lists every valid operator, longest token first so the
// expression parser can match greedily.
var operators = []Operator{Is, IsNot, Equals, NotEquals, GreaterEquals, LessEquals, Greater, Less}

// Valid reports whether op is one of the closed operator set.
func (op Operator) Valid() bool {
	switch op {
	case Equals, NotEquals, Greater, GreaterEquals, Less, LessEquals, Is, IsNot:
		return true
	}
	return false
}
