package kdl

import (
	"fmt"
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"
)

// ParseError reports malformed KDL with a 1-based position.
type ParseError struct {
	Line   int
	Column int
	Msg    string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("line %d, column %d: %s", e.Line, e.Column, e.Msg)
}

// Parse parses src into a document.
func Parse(src string) (*Document, error) {
	p := &parser{src: src}
	doc, err := p.document(false)
	if err != nil {
		return nil, err
	}
	return doc, nil
}

type parser struct {
	src string
	pos int
}

func (p *parser) errorf(format string, args ...interface{}) error {
	line, col := 1, 1
	for _, r := range p.src[:p.pos] {
		if r == '\n' {
			line++
			col = 1
			continue
		}
		col++
	}
	return &ParseError{Line: line, Column: col, Msg: fmt.Sprintf(format, args...)}
}

func (p *parser) eof() bool { return p.pos >= len(p.src) }

func (p *parser) peek() rune {
	if p.eof() {
		return utf8.RuneError
	}
	r, _ := utf8.DecodeRuneInString(p.src[p.pos:])
	return r
}

func (p *parser) hasPrefix(s string) bool {
	return strings.HasPrefix(p.src[p.pos:], s)
}

func (p *parser) advance() {
	_, size := utf8.DecodeRuneInString(p.src[p.pos:])
	p.pos += size
}

// document parses nodes until EOF or, inside a children block, until '}'.
// The closing brace is left for the caller.
func (p *parser) document(inChildren bool) (*Document, error) {
	doc := &Document{}
	for {
		lead, err := p.linespace()
		if err != nil {
			return nil, err
		}
		if p.eof() {
			if inChildren {
				return nil, p.errorf("unclosed children block")
			}
			doc.Trailing = lead
			return doc, nil
		}
		if p.peek() == '}' {
			if !inChildren {
				return nil, p.errorf("unexpected '}'")
			}
			doc.Trailing = lead
			return doc, nil
		}
		for p.hasPrefix("/-") {
			p.pos += 2
			more, err := p.linespace()
			if err != nil {
				return nil, err
			}
			lead += "/-" + more
		}
		if p.eof() || p.peek() == '}' {
			return nil, p.errorf("slashdash must be followed by a node")
		}
		node, err := p.node()
		if err != nil {
			return nil, err
		}
		node.Leading = lead
		doc.Nodes = append(doc.Nodes, node)
	}
}

func (p *parser) node() (*Node, error) {
	name, err := p.identifier()
	if err != nil {
		return nil, err
	}
	n := &Node{Name: name}

	var pending string
	for {
		ws, err := p.nodespace()
		if err != nil {
			return nil, err
		}
		pending += ws

		switch {
		case p.eof(), p.peek() == '}':
			n.Trailing = pending
			return n, nil
		case p.peek() == ';':
			p.pos++
			n.Trailing = pending + ";"
			return n, nil
		case isNewline(p.peek()):
			n.Trailing = pending + p.newline()
			return n, nil
		case p.hasPrefix("//"):
			n.Trailing = pending + p.lineComment()
			if !p.eof() && isNewline(p.peek()) {
				n.Trailing += p.newline()
			}
			return n, nil
		case p.hasPrefix("/-"):
			start := p.pos
			p.pos += 2
			if _, err := p.nodespace(); err != nil {
				return nil, err
			}
			if p.peek() == '{' {
				if _, err := p.childrenBlock(); err != nil {
					return nil, err
				}
			} else {
				if _, err := p.entry(); err != nil {
					return nil, err
				}
			}
			pending += p.src[start:p.pos]
		case p.peek() == '{':
			if n.Children != nil {
				return nil, p.errorf("node %q has more than one children block", n.Name.Value)
			}
			children, err := p.childrenBlock()
			if err != nil {
				return nil, err
			}
			n.BeforeChildren = pending
			n.Children = children
			pending = ""
		default:
			if n.Children != nil {
				return nil, p.errorf("unexpected entry after children block of %q", n.Name.Value)
			}
			if pending == "" {
				return nil, p.errorf("expected whitespace before entry")
			}
			e, err := p.entry()
			if err != nil {
				return nil, err
			}
			e.Leading = pending
			pending = ""
			n.Entries = append(n.Entries, e)
		}
	}
}

func (p *parser) childrenBlock() (*Document, error) {
	p.pos++ // '{'
	doc, err := p.document(true)
	if err != nil {
		return nil, err
	}
	p.pos++ // '}'
	return doc, nil
}

func (p *parser) entry() (*Entry, error) {
	start := p.pos
	typ, err := p.annotation()
	if err != nil {
		return nil, err
	}

	var first Value
	switch {
	case p.peek() == '"' || p.isRawStringStart():
		s, err := p.stringLiteral()
		if err != nil {
			return nil, err
		}
		first = Value{Kind: KindString, Str: s}
	default:
		tok := p.bareToken()
		if tok == "" {
			return nil, p.errorf("unexpected character %q", p.peek())
		}
		first = bareValue(tok)
	}

	if typ == "" && p.peek() == '=' {
		if first.Kind != KindString {
			return nil, p.errorf("invalid property key %q", p.src[start:p.pos])
		}
		key := &Identifier{Value: first.Str, Raw: p.src[start:p.pos]}
		p.pos++
		valStart := p.pos
		if _, err := p.annotation(); err != nil {
			return nil, err
		}
		var v Value
		if p.peek() == '"' || p.isRawStringStart() {
			s, err := p.stringLiteral()
			if err != nil {
				return nil, err
			}
			v = Value{Kind: KindString, Str: s}
		} else {
			tok := p.bareToken()
			if tok == "" {
				return nil, p.errorf("expected value for property %q", key.Value)
			}
			v = bareValue(tok)
		}
		v.Raw = p.src[valStart:p.pos]
		return &Entry{Key: key, Value: v}, nil
	}

	first.Raw = p.src[start:p.pos]
	return &Entry{Value: first}, nil
}

func bareValue(tok string) Value {
	switch tok {
	case "true", "false", "#true", "#false":
		return Value{Kind: KindBool, Str: tok}
	case "null", "#null":
		return Value{Kind: KindNull, Str: tok}
	}
	if looksNumeric(tok) {
		return Value{Kind: KindNumber, Str: tok}
	}
	return Value{Kind: KindString, Str: tok}
}

func looksNumeric(tok string) bool {
	s := strings.TrimLeft(tok, "+-")
	if s == "" {
		return false
	}
	return s[0] >= '0' && s[0] <= '9'
}

// identifier parses a node name with an optional type annotation.
func (p *parser) identifier() (Identifier, error) {
	start := p.pos
	if _, err := p.annotation(); err != nil {
		return Identifier{}, err
	}
	var value string
	if p.peek() == '"' || p.isRawStringStart() {
		s, err := p.stringLiteral()
		if err != nil {
			return Identifier{}, err
		}
		value = s
	} else {
		value = p.bareToken()
		if value == "" {
			return Identifier{}, p.errorf("expected node name, found %q", p.peek())
		}
	}
	return Identifier{Value: value, Raw: p.src[start:p.pos]}, nil
}

func (p *parser) annotation() (string, error) {
	if p.peek() != '(' {
		return "", nil
	}
	p.pos++
	var name string
	if p.peek() == '"' || p.isRawStringStart() {
		s, err := p.stringLiteral()
		if err != nil {
			return "", err
		}
		name = s
	} else {
		name = p.bareToken()
	}
	if p.peek() != ')' {
		return "", p.errorf("unterminated type annotation")
	}
	p.pos++
	if name == "" {
		return "", p.errorf("empty type annotation")
	}
	return name, nil
}

func (p *parser) bareToken() string {
	start := p.pos
	for !p.eof() {
		r := p.peek()
		if !isIdentifierChar(r) {
			break
		}
		if r == '/' {
			break
		}
		p.advance()
	}
	return p.src[start:p.pos]
}

func (p *parser) isRawStringStart() bool {
	if !p.hasPrefix("r") && !p.hasPrefix("#") {
		return false
	}
	i := p.pos
	if p.src[i] == 'r' {
		i++
	}
	for i < len(p.src) && p.src[i] == '#' {
		i++
	}
	return i < len(p.src) && p.src[i] == '"' && i > p.pos
}

func (p *parser) stringLiteral() (string, error) {
	if p.isRawStringStart() {
		return p.rawString()
	}
	p.pos++ // opening quote
	var b strings.Builder
	for {
		if p.eof() {
			return "", p.errorf("unterminated string")
		}
		r := p.peek()
		switch r {
		case '"':
			p.pos++
			return b.String(), nil
		case '\\':
			p.pos++
			if err := p.escape(&b); err != nil {
				return "", err
			}
		default:
			b.WriteRune(r)
			p.advance()
		}
	}
}

func (p *parser) escape(b *strings.Builder) error {
	if p.eof() {
		return p.errorf("unterminated escape")
	}
	r := p.peek()
	switch r {
	case 'n':
		b.WriteByte('\n')
	case 'r':
		b.WriteByte('\r')
	case 't':
		b.WriteByte('\t')
	case '\\':
		b.WriteByte('\\')
	case '/':
		b.WriteByte('/')
	case '"':
		b.WriteByte('"')
	case 'b':
		b.WriteByte('\b')
	case 'f':
		b.WriteByte('\f')
	case 's':
		b.WriteByte(' ')
	case 'u':
		p.pos++
		if p.peek() != '{' {
			return p.errorf("invalid unicode escape")
		}
		end := strings.IndexByte(p.src[p.pos:], '}')
		if end < 0 {
			return p.errorf("unterminated unicode escape")
		}
		hex := p.src[p.pos+1 : p.pos+end]
		code, err := strconv.ParseUint(hex, 16, 32)
		if err != nil || len(hex) == 0 || len(hex) > 6 {
			return p.errorf("invalid unicode escape %q", hex)
		}
		b.WriteRune(rune(code))
		p.pos += end + 1
		return nil
	default:
		if unicode.IsSpace(r) {
			for !p.eof() && unicode.IsSpace(p.peek()) {
				p.advance()
			}
			return nil
		}
		return p.errorf("invalid escape \\%c", r)
	}
	p.advance()
	return nil
}

func (p *parser) rawString() (string, error) {
	if p.src[p.pos] == 'r' {
		p.pos++
	}
	hashes := 0
	for p.src[p.pos] == '#' {
		hashes++
		p.pos++
	}
	p.pos++ // opening quote
	closing := "\"" + strings.Repeat("#", hashes)
	end := strings.Index(p.src[p.pos:], closing)
	if end < 0 {
		return "", p.errorf("unterminated raw string")
	}
	s := p.src[p.pos : p.pos+end]
	p.pos += end + len(closing)
	return s, nil
}

// linespace consumes whitespace, newlines and comments between nodes.
func (p *parser) linespace() (string, error) {
	start := p.pos
	for !p.eof() {
		r := p.peek()
		switch {
		case isWhitespace(r) || isNewline(r):
			p.advance()
		case p.hasPrefix("//"):
			p.lineComment()
		case p.hasPrefix("/*"):
			if err := p.blockComment(); err != nil {
				return "", err
			}
		default:
			return p.src[start:p.pos], nil
		}
	}
	return p.src[start:p.pos], nil
}

// nodespace consumes whitespace, block comments and line continuations
// inside a node.
func (p *parser) nodespace() (string, error) {
	start := p.pos
	for !p.eof() {
		r := p.peek()
		switch {
		case isWhitespace(r):
			p.advance()
		case p.hasPrefix("/*"):
			if err := p.blockComment(); err != nil {
				return "", err
			}
		case r == '\\':
			p.pos++
			for !p.eof() && isWhitespace(p.peek()) {
				p.advance()
			}
			if p.hasPrefix("//") {
				p.lineComment()
			}
			if p.eof() {
				break
			}
			if !isNewline(p.peek()) {
				return "", p.errorf("line continuation must be followed by a newline")
			}
			p.newline()
		default:
			return p.src[start:p.pos], nil
		}
	}
	return p.src[start:p.pos], nil
}

func (p *parser) lineComment() string {
	start := p.pos
	for !p.eof() && !isNewline(p.peek()) {
		p.advance()
	}
	return p.src[start:p.pos]
}

func (p *parser) blockComment() error {
	depth := 0
	for !p.eof() {
		switch {
		case p.hasPrefix("/*"):
			depth++
			p.pos += 2
		case p.hasPrefix("*/"):
			depth--
			p.pos += 2
			if depth == 0 {
				return nil
			}
		default:
			p.advance()
		}
	}
	return p.errorf("unterminated block comment")
}

func (p *parser) newline() string {
	start := p.pos
	if p.hasPrefix("\r\n") {
		p.pos += 2
	} else {
		p.advance()
	}
	return p.src[start:p.pos]
}

func isNewline(r rune) bool {
	switch r {
	case '\n', '\r', '\f', '\u0085', '\u2028', '\u2029':
		return true
	}
	return false
}

func isWhitespace(r rune) bool {
	if isNewline(r) {
		return false
	}
	return r == ' ' || r == '\t' || r == '\ufeff' || unicode.Is(unicode.Zs, r)
}

func isIdentifierChar(r rune) bool {
	if r == utf8.RuneError || isWhitespace(r) || isNewline(r) || r < 0x20 {
		return false
	}
	return !strings.ContainsRune(`\/(){}<>;[]=,"`, r)
}
