package normalize

import (
	"rnorm/internal/ast"
	"rnorm/internal/diag"
	"rnorm/internal/rawtree"
)

var unaryFlavors = map[rawtree.Kind]ast.OpFlavor{
	rawtree.KindPlus:        ast.FlavorArithmetic,
	rawtree.KindMinus:       ast.FlavorArithmetic,
	rawtree.KindExclamation: ast.FlavorLogical,
	rawtree.KindTilde:       ast.FlavorModelFormula,
	rawtree.KindQuestion:    ast.FlavorHelp,
}

var binaryFlavors = map[rawtree.Kind]ast.OpFlavor{
	rawtree.KindPlus:  ast.FlavorArithmetic,
	rawtree.KindMinus: ast.FlavorArithmetic,
	rawtree.KindTimes: ast.FlavorArithmetic,
	rawtree.KindDiv:   ast.FlavorArithmetic,
	rawtree.KindExp:   ast.FlavorArithmetic,
	rawtree.KindColon: ast.FlavorArithmetic,

	rawtree.KindLT: ast.FlavorComparison,
	rawtree.KindLE: ast.FlavorComparison,
	rawtree.KindGT: ast.FlavorComparison,
	rawtree.KindGE: ast.FlavorComparison,
	rawtree.KindEQ: ast.FlavorComparison,
	rawtree.KindNE: ast.FlavorComparison,

	rawtree.KindAnd:  ast.FlavorLogical,
	rawtree.KindAnd2: ast.FlavorLogical,
	rawtree.KindOr:   ast.FlavorLogical,
	rawtree.KindOr2:  ast.FlavorLogical,

	rawtree.KindTilde: ast.FlavorModelFormula,

	rawtree.KindLeftAssign:  ast.FlavorAssignment,
	rawtree.KindRightAssign: ast.FlavorAssignment,
	rawtree.KindEqualAssign: ast.FlavorAssignment,

	rawtree.KindQuestion: ast.FlavorHelp,
	rawtree.KindSpecial:  ast.FlavorSpecial,
	rawtree.KindPipe:     ast.FlavorPipe,
	rawtree.KindPipeBind: ast.FlavorPipe,
}

// tryUnary matches `op operand` for the prefix operators.
func tryUnary(c *Context, tokens []*rawtree.Token) (*ast.Node, bool, error) {
	if len(tokens) != 2 {
		return nil, false, nil
	}
	op := tokens[0]
	flavor, ok := unaryFlavors[op.Kind]
	if !ok {
		return nil, false, nil
	}
	operand, err := c.operand(tokens[1], diag.NrmMissingOperand, "operand of "+op.Text)
	if err != nil {
		return nil, true, err
	}
	return c.leaf(op, ast.KindUnaryOp, ast.UnaryOpData{
		Op:      op.Text,
		Flavor:  flavor,
		Operand: operand,
	}), true, nil
}

// tryBinary matches `lhs op rhs`. The node sits on the operator token.
func tryBinary(c *Context, tokens []*rawtree.Token) (*ast.Node, bool, error) {
	if len(tokens) != 3 {
		return nil, false, nil
	}
	op := tokens[1]
	flavor, ok := binaryFlavors[op.Kind]
	if !ok {
		return nil, false, nil
	}
	lhs, err := c.operand(tokens[0], diag.NrmMissingOperand, "left operand of "+op.Text)
	if err != nil {
		return nil, true, err
	}
	rhs, err := c.operand(tokens[2], diag.NrmMissingOperand, "right operand of "+op.Text)
	if err != nil {
		return nil, true, err
	}
	return c.leaf(op, ast.KindBinaryOp, ast.BinaryOpData{
		Op:     op.Text,
		Flavor: flavor,
		Left:   lhs,
		Right:  rhs,
	}), true, nil
}

// trySymbol matches a namespaced symbol `pkg::name` or `pkg:::name`.
func trySymbol(c *Context, tokens []*rawtree.Token) (*ast.Node, bool, error) {
	if len(tokens) != 3 || !tokens[2].Kind.IsSymbol() {
		return nil, false, nil
	}
	return c.symbol(tokens[2], tokens[0], tokens[1]), true, nil
}
