package scanner

import (
	"strings"
)

const (
	// Separator splits a segment name into tokens
	Separator = "-"
	// EscapePrefix marks segments that are never matched
	EscapePrefix = "_"
)

// Plural returns the container directory name for a literal token.
// There is no irregular form: "theme" -> "themes", "glass" -> "glasss".
func Plural(token string) string {
	return token + "s"
}

// IsEscaped reports whether a segment is excluded from matching.
func IsEscaped(name string) bool {
	return strings.HasPrefix(name, EscapePrefix)
}

// MatchFileName matches a file name against the whole of g.
// The name must split into exactly len(g) tokens.
func MatchFileName(g Grammar, name string) ([]string, bool) {
	if IsEscaped(name) {
		return nil, false
	}

	parts := strings.Split(name, Separator)
	if len(parts) != len(g) {
		return nil, false
	}

	captures := make([]string, 0, g.ExpectedCaptures())
	for i, part := range parts {
		var ok bool
		captures, ok = matchToken(g[i], part, captures)
		if !ok {
			return nil, false
		}
	}

	return captures, true
}

// MatchDirName matches a directory name against a prefix of g.
//
// A name of k tokens consumes the first k nodes, so k may not exceed
// len(g). Node k-1 decides how the directory is read: a literal must appear
// in its plural (container) form, a wildcard or pattern may not be the last
// node of g, and a directory wildcard always accepts its token.
func MatchDirName(g Grammar, name string) (DirMatch, bool) {
	if IsEscaped(name) || len(g) == 0 {
		return DirMatch{}, false
	}

	parts := strings.Split(name, Separator)
	k := len(parts)
	if k > len(g) {
		return DirMatch{}, false
	}

	captures := make([]string, 0, k)
	for i, part := range parts[:k-1] {
		var ok bool
		captures, ok = matchDirToken(g[i], part, captures)
		if !ok {
			return DirMatch{}, false
		}
	}

	last, part := g[k-1], parts[k-1]
	switch last.Kind {
	case NodeLiteral:
		if part != Plural(last.Token) {
			return DirMatch{}, false
		}
	case NodeWildcard, NodePattern:
		if k == len(g) {
			return DirMatch{}, false
		}
		var ok bool
		captures, ok = matchToken(last, part, captures)
		if !ok {
			return DirMatch{}, false
		}
	case NodeDirWildcard:
		if part == "" {
			return DirMatch{}, false
		}
		captures = append(captures, part)
	default:
		return DirMatch{}, false
	}

	return DirMatch{Captures: captures, Consumed: k}, true
}

// matchDirToken is matchToken for the leading tokens of a directory name,
// where a directory wildcard reads like a plain wildcard.
func matchDirToken(node Node, token string, captures []string) ([]string, bool) {
	if node.Kind == NodeDirWildcard {
		node = Wildcard()
	}
	return matchToken(node, token, captures)
}

// matchToken checks a single token against node and appends its captures.
func matchToken(node Node, token string, captures []string) ([]string, bool) {
	switch node.Kind {
	case NodeLiteral:
		if token != node.Token {
			return captures, false
		}
		return captures, true

	case NodePattern:
		if node.Expr == nil {
			return captures, false
		}
		m := node.Expr.FindStringSubmatch(token)
		if m == nil {
			return captures, false
		}
		return append(captures, m[1:]...), true

	case NodeWildcard:
		if token == "" {
			return captures, false
		}
		return append(captures, token), true

	default:
		// Directory wildcards never match a file token
		return captures, false
	}
}
