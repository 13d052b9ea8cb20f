// File: render.go
// Title: Explorer Content Rendering
// Description: Turns a parse into the plain text shown by the explorer
//              tabs: an indented node outline, numbered source lines with
//              the error location marked, and a token listing.
// Author: msto63
// Version: v0.1.0
// Created: 2025-03-27
// Modified: 2025-03-28
//
// Change History:
// - 2025-03-27 v0.1.0: Initial rendering
// - 2025-03-28 v0.1.0: Caret line under the failing column

package explorer

import (
	"fmt"
	"strings"

	"github.com/msto63/smython/foundation/smython/ast"
	"github.com/msto63/smython/foundation/smython/parser"
	"github.com/msto63/smython/foundation/smython/token"
)

// TreeLines renders a tree as one line per node, indented by depth
func TreeLines(root ast.Node) []string {
	var lines []string
	depth := 0
	ast.Inspect(root, func(n ast.Node) bool {
		if n == nil {
			depth--
			return false
		}
		lines = append(lines, strings.Repeat("  ", depth)+nodeLabel(n)+"  "+n.Position().String())
		depth++
		return true
	})
	return lines
}

func nodeLabel(node ast.Node) string {
	name := fmt.Sprintf("%T", node)[len("*ast."):]
	switch n := node.(type) {
	case *ast.Var:
		return name + " " + n.Name
	case *ast.Lit:
		return ast.Dump(n)
	case *ast.Attribute:
		return name + " ." + n.Name
	case *ast.Unary:
		return name + " " + n.Op.String()
	case *ast.Binary:
		return name + " " + n.Op.Symbol()
	case *ast.BoolOp:
		return name + " " + n.Op.String()
	case *ast.Comparison:
		ops := make([]string, len(n.Ops))
		for i, op := range n.Ops {
			ops[i] = op.String()
		}
		return name + " " + strings.Join(ops, " ")
	case *ast.Param:
		return name + " " + n.Name
	case *ast.Keyword:
		return name + " " + n.Name
	case *ast.Def:
		return name + " " + n.Name
	case *ast.Class:
		return name + " " + n.Name
	case *ast.Decorator:
		return name + " @" + strings.Join(n.Name, ".")
	case *ast.Except:
		if n.Name != "" {
			return name + " as " + n.Name
		}
	case *ast.Import, *ast.From, *ast.Global, *ast.Nonlocal:
		return ast.Dump(n)
	}
	return name
}

// SourceLines numbers the lines of source. When serr is set, the failing
// line is flagged and followed by a caret under the reported column.
func SourceLines(source string, serr *parser.SyntaxError) []string {
	src := strings.Split(strings.TrimSuffix(source, "\n"), "\n")
	width := len(fmt.Sprint(len(src)))
	lines := make([]string, 0, len(src)+1)
	for i, text := range src {
		mark := " "
		if serr != nil && serr.Pos.Line == i+1 {
			mark = ">"
		}
		lines = append(lines, fmt.Sprintf("%s%*d | %s", mark, width, i+1, text))
		if mark == ">" && serr.Pos.Column > 0 {
			lines = append(lines, fmt.Sprintf(" %*s | %s^", width, "", strings.Repeat(" ", serr.Pos.Column-1)))
		}
	}
	return lines
}

// TokenLines renders one token per line with its position
func TokenLines(tokens []token.Token) []string {
	lines := make([]string, len(tokens))
	for i, t := range tokens {
		lines[i] = fmt.Sprintf("%-7s %s", t.Pos, t)
	}
	return lines
}
