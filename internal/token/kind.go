package token

// Kind represents the category of a source token.
type Kind uint8

const (
	// Invalid indicates an erroneous or zero value token.
	Invalid Kind = iota
	// Punctuator covers operators and delimiters.
	Punctuator
	// Keyword covers reserved words, including this and super.
	Keyword
	// Identifier covers names, contextual keywords among them.
	Identifier
	// PrivateIdentifier is a #name class member.
	PrivateIdentifier
	// Boolean is true or false.
	Boolean
	// Null is the null literal.
	Null
	// Numeric covers number and bigint literals.
	Numeric
	// String covers quoted string literals.
	String
	// Template is one chunk of a template literal.
	Template
	// RegularExpression is a /pattern/flags literal.
	RegularExpression
	// JSXText is raw text between JSX tags.
	JSXText
	// LineComment is a // comment.
	LineComment
	// BlockComment is a /* */ comment.
	BlockComment
	// Hashbang is a leading #! line.
	Hashbang
)

var kindNames = [...]string{
	Invalid:           "Invalid",
	Punctuator:        "Punctuator",
	Keyword:           "Keyword",
	Identifier:        "Identifier",
	PrivateIdentifier: "PrivateIdentifier",
	Boolean:           "Boolean",
	Null:              "Null",
	Numeric:           "Numeric",
	String:            "String",
	Template:          "Template",
	RegularExpression: "RegularExpression",
	JSXText:           "JSXText",
	LineComment:       "Line",
	BlockComment:      "Block",
	Hashbang:          "Shebang",
}

func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return "Kind(?)"
}

// IsComment reports whether k is one of the comment kinds.
func (k Kind) IsComment() bool {
	return k == LineComment || k == BlockComment || k == Hashbang
}
