package config

import (
	"fmt"
	"log/slog"
	"math"
	"sort"
	"strconv"
	"strings"

	"github.com/goccy/go-yaml/ast"
)

// Kind discriminates the three node shapes a YAML document can contain.
type Kind int

const (
	KindScalar Kind = iota
	KindMapping
	KindSequence
)

// String returns a human-readable name for the kind.
func (k Kind) String() string {
	switch k {
	case KindScalar:
		return "scalar"
	case KindMapping:
		return "mapping"
	case KindSequence:
		return "sequence"
	default:
		return "unknown"
	}
}

// Position identifies a location in a configuration source.
type Position struct {
	File   string
	Line   int
	Column int
}

// String renders the position as "file:line:column".
func (p Position) String() string {
	file := p.File
	if file == "" {
		file = "config"
	}

	return fmt.Sprintf("%s:%d:%d", file, p.Line, p.Column)
}

// LogAttr returns a grouped slog attribute describing the position.
func (p Position) LogAttr() slog.Attr {
	return slog.Group("at",
		slog.String("file", p.File),
		slog.Int("line", p.Line),
		slog.Int("column", p.Column),
	)
}

// Node is an order-preserving view of a parsed YAML value.
//
// Exactly one of Value, Entries, or Items is meaningful, selected by Kind.
// Scalar values are normalized to string, int64, float64, bool, or nil.
type Node struct {
	Kind    Kind
	Pos     Position
	Value   any
	Entries []Entry
	Items   []*Node
}

// Entry is one key/value pair of a mapping node, in declaration order.
type Entry struct {
	Key   string
	Pos   Position
	Value *Node
}

// Get returns the value node for the given mapping key.
func (n *Node) Get(key string) (*Node, bool) {
	if n == nil || n.Kind != KindMapping {
		return nil, false
	}

	for _, e := range n.Entries {
		if e.Key == key {
			return e.Value, true
		}
	}

	return nil, false
}

// Has reports whether the mapping node contains the given key.
func (n *Node) Has(key string) bool {
	_, ok := n.Get(key)

	return ok
}

// Keys returns the mapping keys in declaration order.
func (n *Node) Keys() []string {
	if n == nil || n.Kind != KindMapping {
		return nil
	}

	keys := make([]string, len(n.Entries))
	for i, e := range n.Entries {
		keys[i] = e.Key
	}

	return keys
}

// ExtraKeys returns the mapping keys not present in allowed, sorted for
// deterministic error messages.
func (n *Node) ExtraKeys(allowed ...string) []string {
	var extra []string

	for _, k := range n.Keys() {
		found := false

		for _, a := range allowed {
			if k == a {
				found = true

				break
			}
		}

		if !found {
			extra = append(extra, k)
		}
	}

	sort.Strings(extra)

	return extra
}

// StringValue returns the scalar value as a string.
// Non-string scalars are rendered with their canonical formatting.
func (n *Node) StringValue() (string, bool) {
	if n == nil || n.Kind != KindScalar {
		return "", false
	}

	switch v := n.Value.(type) {
	case string:
		return v, true
	case nil:
		return "", true
	default:
		return scalarString(v), true
	}
}

// IntValue returns the scalar value as an int.
func (n *Node) IntValue() (int, bool) {
	if n == nil || n.Kind != KindScalar {
		return 0, false
	}

	i, ok := n.Value.(int64)
	if !ok || i < math.MinInt || i > math.MaxInt {
		return 0, false
	}

	return int(i), true
}

// BoolValue returns the scalar value as a bool.
func (n *Node) BoolValue() (bool, bool) {
	if n == nil || n.Kind != KindScalar {
		return false, false
	}

	b, ok := n.Value.(bool)

	return b, ok
}

// String renders the node as a compact flow-style snapshot for diagnostics.
func (n *Node) String() string {
	var sb strings.Builder

	n.render(&sb)

	return sb.String()
}

func (n *Node) render(sb *strings.Builder) {
	if n == nil {
		sb.WriteString("~")

		return
	}

	switch n.Kind {
	case KindScalar:
		switch v := n.Value.(type) {
		case nil:
			sb.WriteString("~")
		case string:
			sb.WriteString(strconv.Quote(v))
		default:
			sb.WriteString(scalarString(v))
		}

	case KindMapping:
		sb.WriteString("{")

		for i, e := range n.Entries {
			if i > 0 {
				sb.WriteString(", ")
			}

			sb.WriteString(e.Key)
			sb.WriteString(": ")
			e.Value.render(sb)
		}

		sb.WriteString("}")

	case KindSequence:
		sb.WriteString("[")

		for i, item := range n.Items {
			if i > 0 {
				sb.WriteString(", ")
			}

			item.render(sb)
		}

		sb.WriteString("]")
	}
}

// LogAttrs returns the standard attributes attached to node-shaped errors:
// the node's source position and a compact structural snapshot.
func (n *Node) LogAttrs() []slog.Attr {
	if n == nil {
		return nil
	}

	return []slog.Attr{
		n.Pos.LogAttr(),
		slog.String("node", n.String()),
	}
}

func scalarString(v any) string {
	switch s := v.(type) {
	case int64:
		return strconv.FormatInt(s, 10)
	case float64:
		return strconv.FormatFloat(s, 'g', -1, 64)
	case bool:
		return strconv.FormatBool(s)
	default:
		return fmt.Sprintf("%v", s)
	}
}

// fromAST converts a goccy ast node into a Node tree.
func fromAST(file string, node ast.Node) (*Node, error) {
	pos := positionOf(file, node)

	switch n := node.(type) {
	case *ast.NullNode:
		return &Node{Kind: KindScalar, Pos: pos, Value: nil}, nil

	case *ast.StringNode:
		return &Node{Kind: KindScalar, Pos: pos, Value: n.Value}, nil

	case *ast.LiteralNode:
		return &Node{Kind: KindScalar, Pos: pos, Value: n.Value.Value}, nil

	case *ast.IntegerNode:
		return &Node{Kind: KindScalar, Pos: pos, Value: normalizeInt(n.Value)}, nil

	case *ast.FloatNode:
		return &Node{Kind: KindScalar, Pos: pos, Value: n.Value}, nil

	case *ast.BoolNode:
		return &Node{Kind: KindScalar, Pos: pos, Value: n.Value}, nil

	case *ast.MappingNode:
		out := &Node{Kind: KindMapping, Pos: pos}

		for _, mv := range n.Values {
			entry, err := entryFromAST(file, mv)
			if err != nil {
				return nil, err
			}

			out.Entries = append(out.Entries, entry)
		}

		return out, nil

	case *ast.MappingValueNode:
		// A single-pair mapping is parsed as a bare MappingValueNode.
		entry, err := entryFromAST(file, n)
		if err != nil {
			return nil, err
		}

		return &Node{Kind: KindMapping, Pos: pos, Entries: []Entry{entry}}, nil

	case *ast.SequenceNode:
		out := &Node{Kind: KindSequence, Pos: pos}

		for _, item := range n.Values {
			child, err := fromAST(file, item)
			if err != nil {
				return nil, err
			}

			out.Items = append(out.Items, child)
		}

		return out, nil

	case *ast.AnchorNode:
		return fromAST(file, n.Value)

	case *ast.TagNode:
		return fromAST(file, n.Value)

	default:
		return nil, ErrDocument.
			With(
				pos.LogAttr(),
				slog.String("yaml", node.String()),
			)
	}
}

func entryFromAST(file string, mv *ast.MappingValueNode) (Entry, error) {
	key, err := keyString(file, mv.Key)
	if err != nil {
		return Entry{}, err
	}

	value, err := fromAST(file, mv.Value)
	if err != nil {
		return Entry{}, err
	}

	return Entry{
		Key:   key,
		Pos:   positionOf(file, mv.Key),
		Value: value,
	}, nil
}

func keyString(file string, key ast.MapKeyNode) (string, error) {
	switch k := key.(type) {
	case *ast.StringNode:
		return k.Value, nil

	case *ast.IntegerNode:
		return scalarString(normalizeInt(k.Value)), nil

	case *ast.BoolNode:
		return scalarString(k.Value), nil

	default:
		return "", ErrDocument.
			With(
				positionOf(file, key).LogAttr(),
				slog.String("key", key.String()),
			)
	}
}

func normalizeInt(v any) any {
	switch i := v.(type) {
	case int:
		return int64(i)
	case int64:
		return i
	case uint64:
		if i > math.MaxInt64 {
			return float64(i)
		}

		return int64(i)
	default:
		return v
	}
}

func positionOf(file string, node ast.Node) Position {
	pos := Position{File: file}

	if node == nil {
		return pos
	}

	if tok := node.GetToken(); tok != nil && tok.Position != nil {
		pos.Line = tok.Position.Line
		pos.Column = tok.Position.Column
	}

	return pos
}
