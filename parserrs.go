package rpnsolve

import "strconv"

// OperatorError reports an operator that is not in the table, an operator
// where an operand belongs, or two operands with nothing between them. It
// implements InputError.
type OperatorError struct {
	// Col is the column of the offending token.
	Col int
	// Operator is the token that was not understood. If Missing is set, it
	// is the token found where an operator was expected.
	Operator string
	// Unary is whether the parser expected an operand at the time. There
	// are no unary operators, only signed number literals.
	Unary bool
	// Missing indicates that an operand followed another with no operator
	// between them.
	Missing bool
}

func (err *OperatorError) Error() string {
	if err.Missing {
		return errpos(err.Col, "missing operator before "+strconv.Quote(err.Operator))
	}
	s := "binary"
	if err.Unary {
		s = "unary"
	}
	return errpos(err.Col, "unknown "+s+" operator "+strconv.Quote(err.Operator))
}

func (err *OperatorError) Pos() int {
	return err.Col
}

// BracketError reports a close bracket of the wrong kind, a close bracket
// with nothing open, or an open bracket still open at the end of input. It
// implements InputError.
type BracketError struct {
	// Col is the column of the close bracket, or one past the last rune if
	// the input ended first.
	Col int
	// Left is the open bracket, or empty if none was open.
	Left string
	// Right is the close bracket, or empty at the end of input.
	Right string
}

func (err *BracketError) Error() string {
	if err.Left == "" {
		return errpos(err.Col, "close bracket "+err.Right+" with no open bracket")
	}
	if err.Right == "" {
		return errpos(err.Col, "open bracket "+err.Left+" with no close bracket")
	}
	return errpos(err.Col, "mismatched bracket: "+err.Left+"expr"+err.Right)
}

func (err *BracketError) Pos() int {
	return err.Col
}

// EmptyExpressionError reports that the input, a bracketed group, or the right
// operand of an operator is empty. It implements InputError.
type EmptyExpressionError struct {
	// Col is the position of the token that ended the subexpression.
	Col int
	// End is the token that ended the subexpression.
	End string
}

func (err *EmptyExpressionError) Error() string {
	if err.End == "" {
		if err.Col <= 1 {
			return errpos(err.Col, "no expression")
		}
		return errpos(err.Col, "no expression at end")
	}
	return errpos(err.Col, "no expression up to "+strconv.Quote(err.End))
}

func (err *EmptyExpressionError) Pos() int {
	return err.Col
}

// errpos is a shortcut to create an error message with a position.
func errpos(pos int, msg string) string {
	return strconv.Itoa(pos) + ": " + msg
}

// InputError is an error with position information. Every error resulting from
// invalid input to ParseInfix implements InputError.
type InputError interface {
	error
	// Pos returns the position of the error as the number of runes up to and
	// including the start of the token that caused the error.
	Pos() int
}

var (
	_ InputError = (*OperatorError)(nil)
	_ InputError = (*BracketError)(nil)
	_ InputError = (*EmptyExpressionError)(nil)
	_ InputError = (*LexError)(nil)
)
