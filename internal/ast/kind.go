package ast

// Kind tags a node with its ESTree type name.
type Kind uint8

const (
	// KindOther is any grammar node the rules never look at; Node.Text keeps
	// the parser's own type name.
	KindOther Kind = iota
	Program

	Identifier
	PrivateIdentifier
	Literal
	TemplateLiteral
	TaggedTemplateExpression
	ThisExpression
	Super

	ArrayExpression
	ObjectExpression
	Property
	SpreadElement
	ArrayPattern
	ObjectPattern
	AssignmentPattern
	RestElement

	CallExpression
	NewExpression
	MemberExpression
	TSNonNullExpression
	TSAsExpression
	BinaryExpression
	LogicalExpression
	AssignmentExpression
	UnaryExpression
	ConditionalExpression
	AwaitExpression
	SequenceExpression

	ArrowFunctionExpression
	FunctionExpression
	FunctionDeclaration
	TSFunctionType
	MethodDefinition

	ImportDeclaration
	ImportSpecifier
	ImportDefaultSpecifier
	ImportNamespaceSpecifier
	ExportNamedDeclaration
	ExportSpecifier
	ExportDefaultDeclaration
	TSExportAssignment

	TSInterfaceDeclaration
	TSTypeLiteral
	TSTupleType
	TSTypeParameterDeclaration
	TSTypeParameter
	TSTypeParameterInstantiation
	TSTypeAnnotation
	TSTypeAliasDeclaration
	TSEnumDeclaration

	JSXElement
	JSXOpeningElement
	JSXClosingElement
	JSXAttribute
	JSXSpreadAttribute
	JSXExpressionContainer
	JSXText

	IfStatement
	WhileStatement
	DoWhileStatement
	ForStatement
	ForInStatement
	ForOfStatement
	BlockStatement
	ExpressionStatement
	ReturnStatement
	VariableDeclaration
	VariableDeclarator
	ClassDeclaration
	ClassBody

	// JSON containers are produced by JSON-aware parsers only.
	JSONArrayExpression
	JSONObjectExpression

	kindCount
)

var kindNames = [...]string{
	KindOther:                    "Other",
	Program:                      "Program",
	Identifier:                   "Identifier",
	PrivateIdentifier:            "PrivateIdentifier",
	Literal:                      "Literal",
	TemplateLiteral:              "TemplateLiteral",
	TaggedTemplateExpression:     "TaggedTemplateExpression",
	ThisExpression:               "ThisExpression",
	Super:                        "Super",
	ArrayExpression:              "ArrayExpression",
	ObjectExpression:             "ObjectExpression",
	Property:                     "Property",
	SpreadElement:                "SpreadElement",
	ArrayPattern:                 "ArrayPattern",
	ObjectPattern:                "ObjectPattern",
	AssignmentPattern:            "AssignmentPattern",
	RestElement:                  "RestElement",
	CallExpression:               "CallExpression",
	NewExpression:                "NewExpression",
	MemberExpression:             "MemberExpression",
	TSNonNullExpression:          "TSNonNullExpression",
	TSAsExpression:               "TSAsExpression",
	BinaryExpression:             "BinaryExpression",
	LogicalExpression:            "LogicalExpression",
	AssignmentExpression:         "AssignmentExpression",
	UnaryExpression:              "UnaryExpression",
	ConditionalExpression:        "ConditionalExpression",
	AwaitExpression:              "AwaitExpression",
	SequenceExpression:           "SequenceExpression",
	ArrowFunctionExpression:      "ArrowFunctionExpression",
	FunctionExpression:           "FunctionExpression",
	FunctionDeclaration:          "FunctionDeclaration",
	TSFunctionType:               "TSFunctionType",
	MethodDefinition:             "MethodDefinition",
	ImportDeclaration:            "ImportDeclaration",
	ImportSpecifier:              "ImportSpecifier",
	ImportDefaultSpecifier:       "ImportDefaultSpecifier",
	ImportNamespaceSpecifier:     "ImportNamespaceSpecifier",
	ExportNamedDeclaration:       "ExportNamedDeclaration",
	ExportSpecifier:              "ExportSpecifier",
	ExportDefaultDeclaration:     "ExportDefaultDeclaration",
	TSExportAssignment:           "TSExportAssignment",
	TSInterfaceDeclaration:       "TSInterfaceDeclaration",
	TSTypeLiteral:                "TSTypeLiteral",
	TSTupleType:                  "TSTupleType",
	TSTypeParameterDeclaration:   "TSTypeParameterDeclaration",
	TSTypeParameter:              "TSTypeParameter",
	TSTypeParameterInstantiation: "TSTypeParameterInstantiation",
	TSTypeAnnotation:             "TSTypeAnnotation",
	TSTypeAliasDeclaration:       "TSTypeAliasDeclaration",
	TSEnumDeclaration:            "TSEnumDeclaration",
	JSXElement:                   "JSXElement",
	JSXOpeningElement:            "JSXOpeningElement",
	JSXClosingElement:            "JSXClosingElement",
	JSXAttribute:                 "JSXAttribute",
	JSXSpreadAttribute:           "JSXSpreadAttribute",
	JSXExpressionContainer:       "JSXExpressionContainer",
	JSXText:                      "JSXText",
	IfStatement:                  "IfStatement",
	WhileStatement:               "WhileStatement",
	DoWhileStatement:             "DoWhileStatement",
	ForStatement:                 "ForStatement",
	ForInStatement:               "ForInStatement",
	ForOfStatement:               "ForOfStatement",
	BlockStatement:               "BlockStatement",
	ExpressionStatement:          "ExpressionStatement",
	ReturnStatement:              "ReturnStatement",
	VariableDeclaration:          "VariableDeclaration",
	VariableDeclarator:           "VariableDeclarator",
	ClassDeclaration:             "ClassDeclaration",
	ClassBody:                    "ClassBody",
	JSONArrayExpression:          "JSONArrayExpression",
	JSONObjectExpression:         "JSONObjectExpression",
}

func (k Kind) String() string {
	if k < kindCount {
		return kindNames[k]
	}
	return "Kind(?)"
}

// KindCount is the size of a table indexed by Kind.
const KindCount = int(kindCount)

// LookupKind maps an ESTree type name back to its Kind.
func LookupKind(name string) (Kind, bool) {
	for k := Kind(1); k < kindCount; k++ {
		if kindNames[k] == name {
			return k, true
		}
	}
	return KindOther, false
}

// IsFunction reports whether k introduces a function scope.
func (k Kind) IsFunction() bool {
	switch k {
	case ArrowFunctionExpression, FunctionExpression, FunctionDeclaration:
		return true
	}
	return false
}

// IsLoopOrIf reports whether k is a control-flow statement with a body.
func (k Kind) IsLoopOrIf() bool {
	switch k {
	case IfStatement, WhileStatement, DoWhileStatement, ForStatement, ForInStatement, ForOfStatement:
		return true
	}
	return false
}
