// Package calc evaluates plain arithmetic without executing any code.
//
// Expressions are parsed with go/parser and folded with go/constant, so the
// accepted language is a strict subset of Go constant expressions: integer
// and decimal literals, unary + and -, the binary operators + - * / %, and
// parentheses. Identifiers, calls and every other node are rejected.
package calc

import (
	"errors"
	"fmt"
	"go/ast"
	"go/constant"
	"go/parser"
	"go/token"
	"math"
	"strconv"
	"strings"
)

var (
	ErrDivisionByZero = errors.New("division by zero")
	ErrUnsupported    = errors.New("unsupported expression")
	ErrEmpty          = errors.New("empty expression")
	ErrOverflow       = errors.New("result out of range")
)

const maxExprLen = 256

// Eval parses and evaluates expr, returning its value formatted for display.
func Eval(expr string) (string, error) {
	v, err := Value(expr)
	if err != nil {
		return "", err
	}
	return Format(v), nil
}

// Value parses and evaluates expr as an exact constant.
func Value(expr string) (constant.Value, error) {
	expr = strings.TrimSpace(expr)
	if expr == "" {
		return nil, ErrEmpty
	}
	if len(expr) > maxExprLen {
		return nil, fmt.Errorf("%w: longer than %d characters", ErrUnsupported, maxExprLen)
	}

	node, err := parser.ParseExpr(expr)
	if err != nil {
		return nil, fmt.Errorf("invalid expression %q: %w", expr, err)
	}
	v, err := eval(node)
	if err != nil {
		return nil, err
	}
	if constant.ToInt(v).Kind() != constant.Int {
		if f, _ := constant.Float64Val(v); math.IsInf(f, 0) {
			return nil, ErrOverflow
		}
	}
	return v, nil
}

func eval(node ast.Expr) (constant.Value, error) {
	switch n := node.(type) {
	case *ast.BasicLit:
		if n.Kind != token.INT && n.Kind != token.FLOAT {
			return nil, fmt.Errorf("%w: literal %s", ErrUnsupported, n.Value)
		}
		v := constant.MakeFromLiteral(n.Value, n.Kind, 0)
		if v.Kind() == constant.Unknown {
			return nil, fmt.Errorf("%w: literal %s", ErrUnsupported, n.Value)
		}
		return v, nil

	case *ast.ParenExpr:
		return eval(n.X)

	case *ast.UnaryExpr:
		if n.Op != token.ADD && n.Op != token.SUB {
			return nil, fmt.Errorf("%w: operator %s", ErrUnsupported, n.Op)
		}
		x, err := eval(n.X)
		if err != nil {
			return nil, err
		}
		return constant.UnaryOp(n.Op, x, 0), nil

	case *ast.BinaryExpr:
		x, err := eval(n.X)
		if err != nil {
			return nil, err
		}
		y, err := eval(n.Y)
		if err != nil {
			return nil, err
		}
		return binary(n.Op, x, y)

	default:
		return nil, fmt.Errorf("%w: %T", ErrUnsupported, node)
	}
}

func binary(op token.Token, x, y constant.Value) (constant.Value, error) {
	switch op {
	case token.ADD, token.SUB, token.MUL:
		return constant.BinaryOp(x, op, y), nil
	case token.QUO:
		if constant.Sign(y) == 0 {
			return nil, ErrDivisionByZero
		}
		return constant.BinaryOp(x, op, y), nil
	case token.REM:
		x, y = constant.ToInt(x), constant.ToInt(y)
		if x.Kind() != constant.Int || y.Kind() != constant.Int {
			return nil, fmt.Errorf("%w: %% needs integer operands", ErrUnsupported)
		}
		if constant.Sign(y) == 0 {
			return nil, ErrDivisionByZero
		}
		return constant.BinaryOp(x, op, y), nil
	default:
		return nil, fmt.Errorf("%w: operator %s", ErrUnsupported, op)
	}
}

// Format renders v as an integer when it is integral and as the shortest
// decimal otherwise.
func Format(v constant.Value) string {
	if i := constant.ToInt(v); i.Kind() == constant.Int {
		return i.ExactString()
	}
	f, _ := constant.Float64Val(v)
	return strconv.FormatFloat(f, 'g', -1, 64)
}
