package token

// Kind identifies the lexical category of a token
type Kind int

const (
	Other Kind = iota
	Whitespace
	Comment
	InlineHTML
	OpenTag
	Variable
	String // bare identifier
	Function
	Closure
	Class
	Interface
	Trait
	Enum
	ObjectOperator
	NullsafeObjectOperator
	DoubleColon
	OpenParenthesis
	CloseParenthesis
	OpenCurlyBracket
	CloseCurlyBracket
	DoubleQuotedString
	Heredoc
	ConstantEncapsedString
)

var kindNames = map[Kind]string{
	Other:                  "T_OTHER",
	Whitespace:             "T_WHITESPACE",
	Comment:                "T_COMMENT",
	InlineHTML:             "T_INLINE_HTML",
	OpenTag:                "T_OPEN_TAG",
	Variable:               "T_VARIABLE",
	String:                 "T_STRING",
	Function:               "T_FUNCTION",
	Closure:                "T_CLOSURE",
	Class:                  "T_CLASS",
	Interface:              "T_INTERFACE",
	Trait:                  "T_TRAIT",
	Enum:                   "T_ENUM",
	ObjectOperator:         "T_OBJECT_OPERATOR",
	NullsafeObjectOperator: "T_NULLSAFE_OBJECT_OPERATOR",
	DoubleColon:            "T_DOUBLE_COLON",
	OpenParenthesis:        "T_OPEN_PARENTHESIS",
	CloseParenthesis:       "T_CLOSE_PARENTHESIS",
	OpenCurlyBracket:       "T_OPEN_CURLY_BRACKET",
	CloseCurlyBracket:      "T_CLOSE_CURLY_BRACKET",
	DoubleQuotedString:     "T_DOUBLE_QUOTED_STRING",
	Heredoc:                "T_HEREDOC",
	ConstantEncapsedString: "T_CONSTANT_ENCAPSED_STRING",
}

func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return "T_UNKNOWN"
}

// ClassLike lists kinds whose body makes a variable a class-scoped one
var ClassLike = []Kind{Class, Interface, Trait}

// Whitespaces is the skip set used by most forward and backward scans
var Whitespaces = []Kind{Whitespace}

func (k Kind) in(kinds []Kind) bool {
	for _, candidate := range kinds {
		if candidate == k {
			return true
		}
	}
	return false
}
