package token

// reserved words of ECMAScript, plus the strict-mode future reserved words.
// Contextual words (as, async, await, from, of, type, ...) stay identifiers.
var keywords = map[string]struct{}{
	"break": {}, "case": {}, "catch": {}, "class": {}, "const": {},
	"continue": {}, "debugger": {}, "default": {}, "delete": {}, "do": {},
	"else": {}, "enum": {}, "export": {}, "extends": {}, "finally": {},
	"for": {}, "function": {}, "if": {}, "import": {}, "in": {},
	"instanceof": {}, "new": {}, "return": {}, "super": {}, "switch": {},
	"this": {}, "throw": {}, "try": {}, "typeof": {}, "var": {}, "void": {},
	"while": {}, "with": {},

	"implements": {}, "interface": {}, "let": {}, "package": {},
	"private": {}, "protected": {}, "public": {}, "static": {}, "yield": {},
}

// LookupWord classifies a word-like token.
// Регистр важен: "If" остаётся идентификатором.
func LookupWord(word string) Kind {
	switch word {
	case "true", "false":
		return Boolean
	case "null":
		return Null
	}
	if _, ok := keywords[word]; ok {
		return Keyword
	}
	return Identifier
}
