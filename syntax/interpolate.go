package syntax

import (
	"fmt"
	"strings"

	"inkc/ast"
)

// Interpolate splits string literal into text and embedded "{expr}" parts.
// Doubled braces stand for literal ones. Strings without embedded
// expressions stay plain literals.
func Interpolate(s string) (ast.Expression, error) {
	if !strings.ContainsAny(s, "{}") {
		return ast.StringLiteral(s), nil
	}

	var (
		parts   ast.InterpolatedString
		text    strings.Builder
		hasExpr bool
	)
	flush := func() {
		if text.Len() > 0 {
			parts = append(parts, ast.InterpPart{Text: text.String()})
			text.Reset()
		}
	}

	for i := 0; i < len(s); i++ {
		c := s[i]
		switch {
		case c == '{' && i+1 < len(s) && s[i+1] == '{':
			text.WriteByte('{')
			i++
		case c == '}' && i+1 < len(s) && s[i+1] == '}':
			text.WriteByte('}')
			i++
		case c == '{':
			end := strings.IndexByte(s[i+1:], '}')
			if end < 0 {
				return nil, fmt.Errorf("unterminated interpolation in %q: %w", s, ErrSyntax)
			}
			inner := strings.TrimSpace(s[i+1 : i+1+end])
			if inner == "" {
				return nil, fmt.Errorf("empty interpolation in %q: %w", s, ErrSyntax)
			}
			expr, err := ParseExpression(inner)
			if err != nil {
				return nil, fmt.Errorf("interpolation %q: %w", inner, err)
			}
			flush()
			parts = append(parts, ast.InterpPart{Expr: expr})
			hasExpr = true
			i += end + 1
		default:
			text.WriteByte(c)
		}
	}
	flush()

	if !hasExpr {
		return ast.StringLiteral(parts.String()), nil
	}
	return parts, nil
}
