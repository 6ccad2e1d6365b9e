// Package scanner provides path grammar matching for theme repositories.
// It reads dash-delimited directory and file names as tokens of a small
// positional grammar (literals, wildcards, directory wildcards and regular
// expressions) and turns a directory tree into entries carrying the values
// captured along the way.
package scanner

import (
	"errors"
	"fmt"
	"regexp"
)

// NodeKind represents the type of a grammar node.
type NodeKind int

const (
	// NodeLiteral must equal its token exactly (e.g., "theme")
	NodeLiteral NodeKind = iota
	// NodePattern must satisfy a regular expression; sub-groups are captured
	NodePattern
	// NodeWildcard matches any single dash-token and captures it
	NodeWildcard
	// NodeDirWildcard captures one token of a directory name and may end
	// a directory match; it never matches in a file name
	NodeDirWildcard
)

func (k NodeKind) String() string {
	switch k {
	case NodeLiteral:
		return "literal"
	case NodePattern:
		return "pattern"
	case NodeWildcard:
		return "wildcard"
	case NodeDirWildcard:
		return "dirwildcard"
	default:
		return fmt.Sprintf("NodeKind(%d)", int(k))
	}
}

// Node is one position of a Grammar.
type Node struct {
	// Kind is the node type
	Kind NodeKind
	// Token is the expected token for literal nodes
	Token string
	// Expr is the expression for pattern nodes
	Expr *regexp.Regexp
}

// Literal returns a node that matches token exactly.
func Literal(token string) Node {
	return Node{Kind: NodeLiteral, Token: token}
}

// Pattern returns a node that matches tokens satisfying re.
func Pattern(re *regexp.Regexp) Node {
	return Node{Kind: NodePattern, Expr: re}
}

// MustPattern compiles expr and returns a pattern node. It panics if the
// expression does not compile.
func MustPattern(expr string) Node {
	return Pattern(regexp.MustCompile(expr))
}

// Wildcard returns a node that captures any single token.
func Wildcard() Node {
	return Node{Kind: NodeWildcard}
}

// DirWildcard returns a node that captures a directory token, even as the
// final node of a grammar.
func DirWildcard() Node {
	return Node{Kind: NodeDirWildcard}
}

// Captures returns the number of values the node contributes to a match.
func (n Node) Captures() int {
	switch n.Kind {
	case NodeWildcard, NodeDirWildcard:
		return 1
	case NodePattern:
		if n.Expr == nil {
			return 0
		}
		return n.Expr.NumSubexp()
	default:
		return 0
	}
}

func (n Node) String() string {
	switch n.Kind {
	case NodeLiteral:
		return n.Token
	case NodePattern:
		if n.Expr == nil {
			return "/<nil>/"
		}
		return "/" + n.Expr.String() + "/"
	case NodeWildcard:
		return "*"
	case NodeDirWildcard:
		return "**"
	default:
		return n.Kind.String()
	}
}

// ErrEmptyGrammar is returned when a grammar has no nodes.
var ErrEmptyGrammar = errors.New("grammar has no nodes")

// Grammar is an ordered sequence of nodes, one per dash-token position of
// the flattened name.
type Grammar []Node

// ExpectedCaptures returns the number of captures a complete match produces.
func (g Grammar) ExpectedCaptures() int {
	total := 0
	for _, n := range g {
		total += n.Captures()
	}
	return total
}

// Validate checks that the grammar can be used for matching.
func (g Grammar) Validate() error {
	if len(g) == 0 {
		return ErrEmptyGrammar
	}
	for i, n := range g {
		switch n.Kind {
		case NodeLiteral:
			if n.Token == "" {
				return fmt.Errorf("node %d: empty literal", i)
			}
		case NodePattern:
			if n.Expr == nil {
				return fmt.Errorf("node %d: pattern without expression", i)
			}
		case NodeWildcard, NodeDirWildcard:
		default:
			return fmt.Errorf("node %d: unknown kind %v", i, n.Kind)
		}
	}
	return nil
}

func (g Grammar) String() string {
	s := ""
	for i, n := range g {
		if i > 0 {
			s += Separator
		}
		s += n.String()
	}
	return s
}

// Entry is a matched path with the values captured for it, in grammar order.
type Entry struct {
	// Path is the path of the matched file or directory
	Path string
	// Captures are the captured values, ancestors first
	Captures []string
}

// DirMatch is the result of matching a directory name against a grammar prefix.
type DirMatch struct {
	// Captures are the values captured from the directory name
	Captures []string
	// Consumed is the number of grammar nodes the directory satisfied
	Consumed int
}

// EventKind represents the type of a scan event.
type EventKind int

const (
	// EventUnreadable is emitted when a directory cannot be listed
	EventUnreadable EventKind = iota
	// EventEscaped is emitted when a segment is skipped for its escape prefix
	EventEscaped
	// EventFileMatched is emitted for every matching file
	EventFileMatched
	// EventDirMatched is emitted for every matching directory
	EventDirMatched
	// EventDescend is emitted before descending into a directory
	EventDescend
)

func (k EventKind) String() string {
	switch k {
	case EventUnreadable:
		return "unreadable"
	case EventEscaped:
		return "escaped"
	case EventFileMatched:
		return "file-matched"
	case EventDirMatched:
		return "dir-matched"
	case EventDescend:
		return "descend"
	default:
		return fmt.Sprintf("EventKind(%d)", int(k))
	}
}

// Event describes something that happened during a scan.
type Event struct {
	Kind     EventKind
	Path     string
	Captures []string
	Err      error
}

// Observer receives scan events. Observers are called synchronously.
type Observer interface {
	Observe(Event)
}

// ObserverFunc adapts a function to the Observer interface.
type ObserverFunc func(Event)

// Observe calls f(e).
func (f ObserverFunc) Observe(e Event) {
	f(e)
}

type nopObserver struct{}

func (nopObserver) Observe(Event) {}
