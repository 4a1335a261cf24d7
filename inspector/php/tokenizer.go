package php

import (
	"strings"

	sitter "github.com/smacker/go-tree-sitter"
	"github.com/viant/phplint/token"
)

// leaves are named nodes emitted as a single token regardless of their children
var leaves = map[string]token.Kind{
	"variable_name":   token.Variable,
	"name":            token.String,
	"encapsed_string": token.DoubleQuotedString,
	"heredoc":         token.Heredoc,
	"string":          token.ConstantEncapsedString,
	"nowdoc":          token.ConstantEncapsedString,
	"comment":         token.Comment,
	"text":            token.InlineHTML,
	"php_tag":         token.OpenTag,
}

var punctuation = map[string]token.Kind{
	"{":        token.OpenCurlyBracket,
	"}":        token.CloseCurlyBracket,
	"(":        token.OpenParenthesis,
	")":        token.CloseParenthesis,
	"->":       token.ObjectOperator,
	"?->":      token.NullsafeObjectOperator,
	"::":       token.DoubleColon,
	"function": token.Function,
}

// owners are declarations whose body opens a condition
var owners = map[string]token.Kind{
	"function_definition":                    token.Function,
	"method_declaration":                     token.Function,
	"anonymous_function":                     token.Closure,
	"anonymous_function_creation_expression": token.Closure,
	"class_declaration":                      token.Class,
	"anonymous_class":                        token.Class,
	"interface_declaration":                  token.Interface,
	"trait_declaration":                      token.Trait,
	"enum_declaration":                       token.Enum,
}

var keywords = map[token.Kind]string{
	token.Function:  "function",
	token.Closure:   "function",
	token.Class:     "class",
	token.Interface: "interface",
	token.Trait:     "trait",
	token.Enum:      "enum",
}

// tokenizer flattens tree-sitter syntax tree into a token sequence
type tokenizer struct {
	src        []byte
	tokens     []*token.Token
	members    map[int]token.Visibility
	offset     uint32
	lastEnd    sitter.Point
	level      int
	conditions []token.Condition
	snapshot   []token.Condition
	member     *token.Visibility
}

func newTokenizer(src []byte) *tokenizer {
	return &tokenizer{src: src, members: map[int]token.Visibility{}}
}

func (t *tokenizer) walk(n *sitter.Node) {
	if n == nil {
		return
	}
	nodeType := n.Type()
	if kind, ok := leaves[nodeType]; ok && n.IsNamed() {
		t.emit(n, kind)
		return
	}
	if n.ChildCount() == 0 {
		t.emit(n, kindOf(n))
		return
	}
	switch nodeType {
	case "property_declaration", "property_promotion_parameter":
		visibility := declaredVisibility(n, t.src)
		prev := t.member
		t.member = &visibility
		t.walkChildren(n)
		t.member = prev
		return
	}
	if kind, ok := owners[nodeType]; ok {
		t.walkOwner(n, kind)
		return
	}
	t.walkChildren(n)
}

func (t *tokenizer) walkChildren(n *sitter.Node) {
	for i := 0; i < int(n.ChildCount()); i++ {
		t.walk(n.Child(i))
	}
}

// walkOwner emits declaration tokens, records scope of the keyword token and opens a condition for the body
func (t *tokenizer) walkOwner(n *sitter.Node, kind token.Kind) {
	body := n.ChildByFieldName("body")
	owner := -1
	for i := 0; i < int(n.ChildCount()); i++ {
		child := n.Child(i)
		if body != nil && sameNode(child, body) {
			t.walkBody(child, owner, kind)
			continue
		}
		size := len(t.tokens)
		t.walk(child)
		if owner < 0 && !child.IsNamed() && child.Type() == keywords[kind] && len(t.tokens) > size {
			owner = len(t.tokens) - 1
			t.tokens[owner].Kind = kind
		}
	}
}

func (t *tokenizer) walkBody(body *sitter.Node, owner int, kind token.Kind) {
	opener, closer := -1, -1
	pushed := false
	count := int(body.ChildCount())
	for i := 0; i < count; i++ {
		child := body.Child(i)
		brace := !child.IsNamed() && child.ChildCount() == 0
		last := i == count-1
		if brace && last && child.Type() == "}" && pushed {
			t.pop()
			pushed = false
		}
		size := len(t.tokens)
		t.walk(child)
		emitted := len(t.tokens) > size
		if !brace || !emitted {
			continue
		}
		switch {
		case child.Type() == "{" && opener < 0:
			opener = len(t.tokens) - 1
			if owner >= 0 {
				t.push(token.Condition{Kind: kind, Position: owner})
				pushed = true
			}
		case child.Type() == "}" && last:
			closer = len(t.tokens) - 1
		}
	}
	if pushed {
		t.pop()
	}
	if owner >= 0 && opener >= 0 && closer > opener {
		t.tokens[owner].ScopeOpener = opener
		t.tokens[owner].ScopeCloser = closer
	}
}

func (t *tokenizer) emit(n *sitter.Node, kind token.Kind) {
	start, end := n.StartByte(), n.EndByte()
	if end <= start || start < t.offset || int(end) > len(t.src) {
		return
	}
	t.gap(start)
	t.append(kind, string(t.src[start:end]), n.StartPoint())
	if kind == token.Variable && t.member != nil {
		t.members[len(t.tokens)-1] = *t.member
	}
	t.offset = end
	t.lastEnd = n.EndPoint()
}

// gap emits source bytes not covered by any leaf, typically whitespace
func (t *tokenizer) gap(start uint32) {
	if start <= t.offset {
		return
	}
	content := string(t.src[t.offset:start])
	kind := token.Whitespace
	if strings.TrimSpace(content) != "" {
		kind = token.Other
	}
	t.append(kind, content, t.lastEnd)
}

func (t *tokenizer) flush() {
	end := uint32(len(t.src))
	t.gap(end)
	t.offset = end
}

func (t *tokenizer) append(kind token.Kind, content string, point sitter.Point) {
	if kind == token.CloseCurlyBracket && t.level > 0 {
		t.level--
	}
	t.tokens = append(t.tokens, &token.Token{
		Kind:       kind,
		Content:    content,
		Line:       int(point.Row) + 1,
		Column:     int(point.Column) + 1,
		Level:      t.level,
		Conditions: t.currentConditions(),
	})
	if kind == token.OpenCurlyBracket {
		t.level++
	}
}

func (t *tokenizer) push(condition token.Condition) {
	t.conditions = append(t.conditions, condition)
	t.snapshot = nil
}

func (t *tokenizer) pop() {
	if len(t.conditions) > 0 {
		t.conditions = t.conditions[:len(t.conditions)-1]
		t.snapshot = nil
	}
}

// currentConditions returns a copy shared by consecutive tokens until conditions change
func (t *tokenizer) currentConditions() []token.Condition {
	if len(t.conditions) == 0 {
		return nil
	}
	if t.snapshot == nil {
		t.snapshot = append([]token.Condition{}, t.conditions...)
	}
	return t.snapshot
}

func kindOf(n *sitter.Node) token.Kind {
	if n.IsNamed() {
		return token.Other
	}
	if kind, ok := punctuation[n.Type()]; ok {
		return kind
	}
	return token.Other
}

// declaredVisibility returns visibility modifier of a property, public if none or var
func declaredVisibility(n *sitter.Node, src []byte) token.Visibility {
	for i := 0; i < int(n.NamedChildCount()); i++ {
		child := n.NamedChild(i)
		switch child.Type() {
		case "visibility_modifier":
			modifier, _, _ := strings.Cut(strings.ToLower(strings.TrimSpace(child.Content(src))), "(")
			switch visibility := token.Visibility(modifier); visibility {
			case token.Public, token.Protected, token.Private:
				return visibility
			}
			return token.Public
		case "var_modifier":
			return token.Public
		}
	}
	return token.Public
}

func sameNode(a, b *sitter.Node) bool {
	return a.StartByte() == b.StartByte() && a.EndByte() == b.EndByte() && a.Type() == b.Type()
}
