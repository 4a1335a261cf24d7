package token

import (
	"errors"
	"fmt"
)

var (
	// ErrOutOfRange is returned when a position falls outside the stream
	ErrOutOfRange = errors.New("position out of range")
	// ErrMalformedTokenStream is returned when tokenizer metadata is inconsistent
	ErrMalformedTokenStream = errors.New("malformed token stream")
)

// Stream is a read-only, indexed view over tokens of a single file
type Stream struct {
	Filename string
	tokens   []*Token
	members  map[int]Visibility
}

// NewStream creates a stream, token positions are reassigned to their slice index
func NewStream(filename string, tokens []*Token, members map[int]Visibility) *Stream {
	for i, tok := range tokens {
		tok.Position = i
	}
	if members == nil {
		members = map[int]Visibility{}
	}
	return &Stream{Filename: filename, tokens: tokens, members: members}
}

// Len returns number of tokens
func (s *Stream) Len() int {
	return len(s.tokens)
}

// At returns token at pos
func (s *Stream) At(pos int) (*Token, error) {
	if pos < 0 || pos >= len(s.tokens) {
		return nil, fmt.Errorf("%w: %d (stream size %d)", ErrOutOfRange, pos, len(s.tokens))
	}
	return s.tokens[pos], nil
}

// Token returns token at pos or nil when pos is out of range
func (s *Stream) Token(pos int) *Token {
	if pos < 0 || pos >= len(s.tokens) {
		return nil
	}
	return s.tokens[pos]
}

// Tokens returns all tokens, callers must not modify them
func (s *Stream) Tokens() []*Token {
	return s.tokens
}

// FindNext scans forward from `from` (exclusive, -1 for stream start) to `until` (exclusive, -1 for stream end)
// for the first token whose kind is in kinds, or not in kinds when exclude is set. It returns -1 if nothing matched.
func (s *Stream) FindNext(kinds []Kind, from, until int, exclude bool) int {
	start := from + 1
	if start < 0 {
		start = 0
	}
	if until < 0 || until > len(s.tokens) {
		until = len(s.tokens)
	}
	for i := start; i < until; i++ {
		if s.tokens[i].Kind.in(kinds) != exclude {
			return i
		}
	}
	return -1
}

// FindPrevious scans backward from `from` (exclusive, Len() for stream end) to `until` (exclusive, -1 for stream start)
func (s *Stream) FindPrevious(kinds []Kind, from, until int, exclude bool) int {
	start := from - 1
	if start >= len(s.tokens) {
		start = len(s.tokens) - 1
	}
	if until < -1 {
		until = -1
	}
	for i := start; i > until; i-- {
		if s.tokens[i].Kind.in(kinds) != exclude {
			return i
		}
	}
	return -1
}

// NextNonWhitespace returns position of the first non whitespace token after from
func (s *Stream) NextNonWhitespace(from int) int {
	return s.FindNext(Whitespaces, from, -1, true)
}

// PreviousNonWhitespace returns position of the first non whitespace token before from
func (s *Stream) PreviousNonWhitespace(from int) int {
	return s.FindPrevious(Whitespaces, from, -1, true)
}

// HasCondition returns true if any scope enclosing pos is of one of kinds
func (s *Stream) HasCondition(pos int, kinds ...Kind) bool {
	tok := s.Token(pos)
	if tok == nil {
		return false
	}
	for _, condition := range tok.Conditions {
		if condition.Kind.in(kinds) {
			return true
		}
	}
	return false
}

// MemberVisibility returns declared visibility of a member variable token
func (s *Stream) MemberVisibility(pos int) (Visibility, bool) {
	visibility, ok := s.members[pos]
	return visibility, ok
}

// IsMember returns true if token at pos declares a member variable
func (s *Stream) IsMember(pos int) bool {
	_, ok := s.members[pos]
	return ok
}

// Validate checks structural consistency of tokenizer metadata
func (s *Stream) Validate() error {
	size := len(s.tokens)
	for i, tok := range s.tokens {
		if tok.Level < 0 {
			return fmt.Errorf("%w: negative level %d at %d", ErrMalformedTokenStream, tok.Level, i)
		}
		for _, condition := range tok.Conditions {
			if condition.Position < 0 || condition.Position >= i {
				return fmt.Errorf("%w: condition %v of token %d at %d", ErrMalformedTokenStream, condition.Kind, i, condition.Position)
			}
		}
		if !tok.HasScope() {
			continue
		}
		if tok.ScopeOpener >= size || tok.ScopeCloser >= size || tok.ScopeCloser <= tok.ScopeOpener {
			return fmt.Errorf("%w: invalid scope (%d, %d) of token %d", ErrMalformedTokenStream, tok.ScopeOpener, tok.ScopeCloser, i)
		}
		opener, closer := s.tokens[tok.ScopeOpener], s.tokens[tok.ScopeCloser]
		if opener.Kind != OpenCurlyBracket || closer.Kind != CloseCurlyBracket {
			return fmt.Errorf("%w: scope of token %d is not delimited by curly brackets", ErrMalformedTokenStream, i)
		}
		if opener.Level != closer.Level {
			return fmt.Errorf("%w: unbalanced scope of token %d, opener level %d, closer level %d", ErrMalformedTokenStream, i, opener.Level, closer.Level)
		}
	}
	for pos := range s.members {
		if pos < 0 || pos >= size || s.tokens[pos].Kind != Variable {
			return fmt.Errorf("%w: member declaration at %d is not a variable", ErrMalformedTokenStream, pos)
		}
	}
	return nil
}
