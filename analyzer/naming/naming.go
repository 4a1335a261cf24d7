// Package naming reports variables that do not follow camel caps naming.
package naming

import (
	"regexp"
	"strings"

	"github.com/viant/phplint/analyzer/config"
	"github.com/viant/phplint/analyzer/diagnostic"
	"github.com/viant/phplint/token"
)

const (
	CodeNotCamelCaps          = "NotCamelCaps"
	CodePublicHasUnderscore   = "PublicHasUnderscore"
	CodeMemberVarNotCamelCaps = "MemberVarNotCamelCaps"
	CodeStringVarNotCamelCaps = "StringVarNotCamelCaps"

	notCamelCapsMessage        = `Variable "%v" is not in valid camel caps format`
	publicHasUnderscoreMessage = `Public member variable "%v" must not contain a leading underscore`
	memberNotCamelCapsMessage  = `Member variable "%v" is not in valid camel caps format`
)

var reserved = map[string]bool{
	"_SERVER":              true,
	"_GET":                 true,
	"_POST":                true,
	"_REQUEST":             true,
	"_SESSION":             true,
	"_ENV":                 true,
	"_COOKIE":              true,
	"_FILES":               true,
	"GLOBALS":              true,
	"http_response_header": true,
	"HTTP_RAW_POST_DATA":   true,
	"php_errormsg":         true,
}

// sigil not preceded by an escape character, followed by an identifier; any non-ASCII rune is an identifier character
var interpolated = regexp.MustCompile(`[^\\]\$([a-zA-Z_\x{7f}-\x{10FFFF}][a-zA-Z0-9_\x{7f}-\x{10FFFF}]*)`)

// IsReserved returns true for language reserved variable names (case-sensitive)
func IsReserved(name string) bool {
	return reserved[name]
}

// Decision is the classification of a single variable occurrence
type Decision struct {
	Original        string // Name without sigil
	Candidate       string // Name validated against camel caps
	Reserved        bool
	Exempt          bool
	StripUnderscore bool
	CamelCaps       bool
}

// Violation returns true if the occurrence has to be reported
func (d *Decision) Violation() bool {
	return !d.Reserved && !d.Exempt && !d.CamelCaps
}

// Check implements variable naming check
type Check struct {
	allowed map[string]bool
}

// New creates a naming check, allowed names are bare variable names exempt from camel caps check
func New(allowed ...string) *Check {
	ret := &Check{allowed: map[string]bool{}}
	for _, name := range allowed {
		ret.allowed[name] = true
	}
	return ret
}

// Name returns check name
func (c *Check) Name() string {
	return config.ValidVariableName
}

// Kinds returns token kinds the check listens for
func (c *Check) Kinds() []token.Kind {
	return []token.Kind{token.Variable, token.DoubleQuotedString, token.Heredoc}
}

// Inspect reports token at pos
func (c *Check) Inspect(stream *token.Stream, pos int) []*diagnostic.Diagnostic {
	tok := stream.Token(pos)
	if tok == nil {
		return nil
	}
	switch tok.Kind {
	case token.Variable:
		if stream.IsMember(pos) {
			return c.inspectMember(stream, tok)
		}
		return c.inspectVariable(stream, tok)
	case token.DoubleQuotedString, token.Heredoc:
		return c.inspectString(tok)
	}
	return nil
}

// Classify classifies plain variable reference at pos
func (c *Check) Classify(stream *token.Stream, pos int) *Decision {
	tok := stream.Token(pos)
	if tok == nil {
		return nil
	}
	name := strings.TrimLeft(tok.Content, "$")
	ret := &Decision{Original: name, Candidate: name, Reserved: IsReserved(name)}
	if ret.Reserved {
		return ret
	}
	if strings.HasPrefix(name, "_") && inClass(stream, pos) {
		ret.StripUnderscore = true
		ret.Candidate = name[1:]
	}
	ret.CamelCaps = IsCamelCaps(ret.Candidate, false, false, false)
	ret.Exempt = c.allowed[ret.Candidate]
	return ret
}

// inClass returns true if variable resolves within class body or is referenced as Type::$var
func inClass(stream *token.Stream, pos int) bool {
	if prev := stream.Token(stream.PreviousNonWhitespace(pos)); prev != nil && prev.Kind == token.DoubleColon {
		return true
	}
	return stream.HasCondition(pos, token.ClassLike...)
}

func (c *Check) inspectVariable(stream *token.Stream, tok *token.Token) []*diagnostic.Diagnostic {
	decision := c.Classify(stream, tok.Position)
	if decision.Reserved {
		return nil
	}
	var ret []*diagnostic.Diagnostic
	if property := propertyAccess(stream, tok.Position); property != nil {
		original := property.Content
		if !IsCamelCaps(strings.TrimPrefix(original, "_"), false, false, false) {
			ret = append(ret, diagnostic.New(diagnostic.Error, c.Name(), CodeNotCamelCaps, notCamelCapsMessage, property, original))
		}
	}
	if decision.Violation() {
		ret = append(ret, diagnostic.New(diagnostic.Error, c.Name(), CodeNotCamelCaps, notCamelCapsMessage, tok, decision.Original))
	}
	return ret
}

// propertyAccess returns the property name token of $var->name or $var?->name, nil for method calls or no member access
func propertyAccess(stream *token.Stream, pos int) *token.Token {
	operator := stream.NextNonWhitespace(pos)
	if tok := stream.Token(operator); tok == nil || !tok.Is(token.ObjectOperator, token.NullsafeObjectOperator) {
		return nil
	}
	property := stream.Token(stream.NextNonWhitespace(operator))
	if property == nil || property.Kind != token.String {
		return nil
	}
	if bracket := stream.Token(stream.NextNonWhitespace(property.Position)); bracket != nil && bracket.Kind == token.OpenParenthesis {
		return nil
	}
	return property
}

func (c *Check) inspectMember(stream *token.Stream, tok *token.Token) []*diagnostic.Diagnostic {
	name := strings.TrimLeft(tok.Content, "$")
	visibility, _ := stream.MemberVisibility(tok.Position)
	public := visibility == token.Public
	hasUnderscore := strings.HasPrefix(name, "_")
	if public && hasUnderscore {
		return []*diagnostic.Diagnostic{
			diagnostic.New(diagnostic.Error, c.Name(), CodePublicHasUnderscore, publicHasUnderscoreMessage, tok, name),
		}
	}
	if !public && !hasUnderscore {
		return nil
	}
	if IsCamelCaps(name, false, !public, false) {
		return nil
	}
	return []*diagnostic.Diagnostic{
		diagnostic.New(diagnostic.Error, c.Name(), CodeMemberVarNotCamelCaps, memberNotCamelCapsMessage, tok, name),
	}
}

func (c *Check) inspectString(tok *token.Token) []*diagnostic.Diagnostic {
	var ret []*diagnostic.Diagnostic
	for _, match := range interpolated.FindAllStringSubmatch(tok.Content, -1) {
		name := match[1]
		if IsReserved(name) || IsCamelCaps(name, false, false, false) {
			continue
		}
		ret = append(ret, diagnostic.New(diagnostic.Error, c.Name(), CodeStringVarNotCamelCaps, notCamelCapsMessage, tok, name))
	}
	return ret
}
