package kdl

import (
	"strings"
	"unicode/utf8"
)

// SlashdashMarker is the text prepended to a node's leading formatting to
// comment it out.
const SlashdashMarker = "/- "

const defaultIndentUnit = "    "

const newlineChars = "\n\r\f\u0085\u2028\u2029"

// Document is an ordered sequence of nodes. At the top level of a file
// Trailing holds the text after the last node; inside a children block it
// holds the text before the closing brace.
type Document struct {
	Nodes    []*Node
	Trailing string
}

// Node is a single KDL node with its formatting.
type Node struct {
	Leading        string
	Name           Identifier
	Entries        []*Entry
	BeforeChildren string
	Children       *Document
	Trailing       string
}

// Identifier is a node name or property key.
type Identifier struct {
	Value string
	Raw   string
}

// Entry is an argument (Key == nil) or a property of a node.
type Entry struct {
	Leading string
	Key     *Identifier
	Value   Value
}

// ValueKind classifies entry values.
type ValueKind int

const (
	KindString ValueKind = iota
	KindNumber
	KindBool
	KindNull
)

// Value is an entry value. Str holds the decoded string for KindString and
// the literal text for the other kinds.
type Value struct {
	Kind ValueKind
	Str  string
	Raw  string
}

// StringValue returns a quoted string value.
func StringValue(s string) Value {
	return Value{Kind: KindString, Str: s, Raw: Quote(s)}
}

// NewNode creates a node with the given name and string arguments. The
// node has no formatting yet; AppendChild supplies it.
func NewNode(name string, args ...string) *Node {
	n := &Node{Name: Identifier{Value: name, Raw: FormatIdentifier(name)}}
	for _, a := range args {
		n.Entries = append(n.Entries, &Entry{Leading: " ", Value: StringValue(a)})
	}
	return n
}

// String serializes the document.
func (d *Document) String() string {
	var b strings.Builder
	d.writeTo(&b)
	return b.String()
}

// String serializes the node including its leading and trailing text.
func (n *Node) String() string {
	var b strings.Builder
	n.writeTo(&b)
	return b.String()
}

func (d *Document) writeTo(b *strings.Builder) {
	for _, n := range d.Nodes {
		n.writeTo(b)
	}
	b.WriteString(d.Trailing)
}

func (n *Node) writeTo(b *strings.Builder) {
	b.WriteString(n.Leading)
	if n.Name.Raw != "" {
		b.WriteString(n.Name.Raw)
	} else {
		b.WriteString(FormatIdentifier(n.Name.Value))
	}
	for _, e := range n.Entries {
		b.WriteString(e.Leading)
		if e.Key != nil {
			if e.Key.Raw != "" {
				b.WriteString(e.Key.Raw)
			} else {
				b.WriteString(FormatIdentifier(e.Key.Value))
			}
			b.WriteByte('=')
		}
		if e.Value.Raw != "" {
			b.WriteString(e.Value.Raw)
		} else {
			b.WriteString(Quote(e.Value.Str))
		}
	}
	if n.Children != nil {
		b.WriteString(n.BeforeChildren)
		b.WriteByte('{')
		n.Children.writeTo(b)
		b.WriteByte('}')
	}
	b.WriteString(n.Trailing)
}

// Arguments returns the node's active positional values.
func (n *Node) Arguments() []Value {
	var args []Value
	for _, e := range n.Entries {
		if e.Key == nil && !e.Commented() {
			args = append(args, e.Value)
		}
	}
	return args
}

// StringArguments returns the active positional values that are strings.
func (n *Node) StringArguments() []string {
	var out []string
	for _, v := range n.Arguments() {
		if v.Kind == KindString {
			out = append(out, v.Str)
		}
	}
	return out
}

// Commented reports whether the node is slashdashed.
func (n *Node) Commented() bool {
	return endsWithMarker(n.Leading)
}

// Commented reports whether the entry is slashdashed.
func (e *Entry) Commented() bool {
	return endsWithMarker(e.Leading)
}

// Comment slashdashes the node. It is a no-op for nodes already commented.
func (n *Node) Comment() bool {
	if n.Commented() {
		return false
	}
	n.Leading += SlashdashMarker
	return true
}

// Uncomment removes one slashdash marker from the node.
func (n *Node) Uncomment() bool {
	if !n.Commented() {
		return false
	}
	trimmed := strings.TrimRight(n.Leading, " \t")
	n.Leading = strings.TrimSuffix(trimmed, "/-")
	return true
}

func endsWithMarker(s string) bool {
	return strings.HasSuffix(strings.TrimRight(s, " \t"), "/-")
}

// Indent returns the whitespace the node's line starts with.
func (n *Node) Indent() string {
	line := n.Leading
	if i := strings.LastIndexAny(line, newlineChars); i >= 0 {
		line = line[i+1:]
	}
	end := 0
	for end < len(line) && (line[end] == ' ' || line[end] == '\t') {
		end++
	}
	return line[:end]
}

// EnsureChildren returns the node's children block, creating an empty one.
func (n *Node) EnsureChildren() *Document {
	if n.Children == nil {
		n.BeforeChildren = " "
		n.Children = &Document{Trailing: n.Indent()}
	}
	return n.Children
}

// AppendChild appends child as the last node of n's children block. The
// child takes the indentation of the last child on its own line, or one level
// deeper than n when there is none. Only the block's closing text may be
// adjusted; existing children keep their formatting.
func (n *Node) AppendChild(child *Node) {
	indent := n.Indent()
	childIndent := n.childIndent()

	doc := n.EnsureChildren()

	var prev string
	if len(doc.Nodes) > 0 {
		prev = doc.Nodes[len(doc.Nodes)-1].Trailing
	}
	lead := childIndent
	if !endsWithNewline(prev) {
		lead = "\n" + lead
	}
	child.Leading = lead + child.Leading
	child.Trailing = "\n"
	if strings.TrimSpace(doc.Trailing) == "" {
		doc.Trailing = closingIndent(doc, indent)
	}
	doc.Nodes = append(doc.Nodes, child)
}

func (n *Node) childIndent() string {
	if n.Children != nil {
		for i := len(n.Children.Nodes) - 1; i >= 0; i-- {
			if c := n.Children.Nodes[i]; containsNewline(c.Leading) {
				return c.Indent()
			}
		}
	}
	indent := n.Indent()
	return indent + indentUnit(indent)
}

// closingIndent is the whitespace-only text to keep before the block's
// closing brace once a child ending in a newline is appended.
func closingIndent(doc *Document, indent string) string {
	i := strings.LastIndexAny(doc.Trailing, newlineChars)
	if i < 0 || len(doc.Nodes) == 0 {
		return indent
	}
	_, size := utf8.DecodeRuneInString(doc.Trailing[i:])
	return doc.Trailing[i+size:]
}

// Remove deletes the node at index i. The complete lines of its leading
// text, comments included, move to whatever follows it.
func (d *Document) Remove(i int) {
	lead := d.Nodes[i].Leading
	if j := strings.LastIndexAny(lead, newlineChars); j >= 0 {
		kept := lead[:j+1]
		if i+1 < len(d.Nodes) {
			d.Nodes[i+1].Leading = kept + d.Nodes[i+1].Leading
		} else {
			d.Trailing = kept + d.Trailing
		}
	}
	d.Nodes = append(d.Nodes[:i], d.Nodes[i+1:]...)
}

func indentUnit(indent string) string {
	if strings.Contains(indent, "\t") {
		return "\t"
	}
	return defaultIndentUnit
}

func endsWithNewline(s string) bool {
	if s == "" {
		return false
	}
	r := s[len(s)-1]
	return r == '\n' || r == '\r' || strings.HasSuffix(s, "\u2028") || strings.HasSuffix(s, "\u2029") || strings.HasSuffix(s, "\u0085")
}

func containsNewline(s string) bool {
	return strings.ContainsAny(s, newlineChars)
}
