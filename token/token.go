package token

// Visibility represents declared member visibility
type Visibility string

const (
	Public    Visibility = "public"
	Protected Visibility = "protected"
	Private   Visibility = "private"
)

// Condition is an enclosing scope owner
type Condition struct {
	Kind     Kind // Owner kind (class, function, ...)
	Position int  // Position of the owner keyword token
}

// Token represents a single pre-lexed source token
type Token struct {
	Kind        Kind
	Content     string
	Position    int         // Index in the stream
	Line        int         // 1-based line
	Column      int         // 1-based column
	Level       int         // Number of enclosing curly-brace scopes
	Conditions  []Condition // Enclosing scope owners, outermost first
	ScopeOpener int         // Body opener position, only meaningful when HasScope
	ScopeCloser int         // Body closer position, only meaningful when HasScope
}

// HasScope returns true if token owns a body, an opener always follows its owner
func (t *Token) HasScope() bool {
	return t.ScopeOpener > t.Position
}

// Is returns true if token kind is one of kinds
func (t *Token) Is(kinds ...Kind) bool {
	return t.Kind.in(kinds)
}
