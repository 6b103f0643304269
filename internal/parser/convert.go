package parser

import (
	"strings"

	sitter "github.com/smacker/go-tree-sitter"

	"layoutlint/internal/ast"
)

// convert maps one grammar node onto the ESTree vocabulary the rules use.
// Grammar nodes without a counterpart become ast.KindOther and keep their
// grammar name in Node.Text.
func (b *builder) convert(n *sitter.Node) ast.NodeID {
	if n == nil || n.IsMissing() || isComment(n) {
		return ast.NoNodeID
	}
	switch n.Type() {
	case "program":
		return b.generic(ast.Program, n)

	// statements
	case "expression_statement":
		ks := b.kids(n)
		id, nd := b.alloc(ast.ExpressionStatement, n)
		nd.Kids, nd.Expr = ks.ids, ks.first()
		return id
	case "statement_block":
		return b.generic(ast.BlockStatement, n)
	case "if_statement":
		return b.ifStatement(n)
	case "while_statement":
		return b.loop(ast.WhileStatement, n)
	case "do_statement":
		return b.loop(ast.DoWhileStatement, n)
	case "for_statement":
		return b.loop(ast.ForStatement, n)
	case "for_in_statement":
		if hasAnon(n, "of") {
			return b.loop(ast.ForOfStatement, n)
		}
		return b.loop(ast.ForInStatement, n)
	case "return_statement":
		return b.generic(ast.ReturnStatement, n)
	case "lexical_declaration", "variable_declaration":
		return b.variableDeclaration(n)
	case "variable_declarator":
		return b.variableDeclarator(n)
	case "class_declaration":
		return b.generic(ast.ClassDeclaration, n)
	case "class_body":
		return b.generic(ast.ClassBody, n)
	case "ambient_declaration":
		return b.ambient(n)

	// functions
	case "function_declaration", "generator_function_declaration":
		return b.function(ast.FunctionDeclaration, n, n)
	case "function_expression", "function", "generator_function":
		return b.function(ast.FunctionExpression, n, n)
	case "arrow_function":
		return b.function(ast.ArrowFunctionExpression, n, n)
	case "method_definition":
		return b.method(n)
	case "required_parameter", "optional_parameter":
		return b.parameter(n)

	// modules
	case "import_statement":
		return b.importDeclaration(n)
	case "export_statement":
		return b.exportStatement(n)
	case "export_specifier":
		return b.generic(ast.ExportSpecifier, n)

	// expressions
	case "parenthesized_expression":
		if inner := soleNamed(n); inner != nil {
			return b.convert(inner)
		}
	case "call_expression":
		return b.call(n)
	case "new_expression":
		return b.newExpression(n)
	case "member_expression":
		return b.member(n, n.ChildByFieldName("property"), false)
	case "subscript_expression":
		return b.member(n, n.ChildByFieldName("index"), true)
	case "non_null_expression":
		return b.wrapper(ast.TSNonNullExpression, n)
	case "await_expression":
		return b.wrapper(ast.AwaitExpression, n)
	case "as_expression":
		return b.wrapper(ast.TSAsExpression, n)
	case "binary_expression":
		return b.binary(n)
	case "assignment_expression", "augmented_assignment_expression":
		return b.assignment(ast.AssignmentExpression, n)
	case "assignment_pattern":
		return b.assignment(ast.AssignmentPattern, n)
	case "unary_expression":
		ks := b.kids(n)
		id, nd := b.alloc(ast.UnaryExpression, n)
		nd.Kids, nd.Expr = ks.ids, ks.field(n, "argument")
		if op := n.ChildByFieldName("operator"); op != nil {
			nd.Operator = op.Type()
		}
		return id
	case "ternary_expression":
		ks := b.kids(n)
		id, nd := b.alloc(ast.ConditionalExpression, n)
		nd.Kids = ks.ids
		nd.Test = ks.field(n, "condition")
		nd.Consequent = ks.field(n, "consequence")
		nd.Alternate = ks.field(n, "alternative")
		return id
	case "sequence_expression":
		return b.generic(ast.SequenceExpression, n)
	case "object":
		return b.container(ast.ObjectExpression, n)
	case "object_pattern":
		return b.container(ast.ObjectPattern, n)
	case "array":
		return b.container(ast.ArrayExpression, n)
	case "array_pattern":
		return b.container(ast.ArrayPattern, n)
	case "pair", "pair_pattern", "object_assignment_pattern":
		return b.generic(ast.Property, n)
	case "shorthand_property_identifier", "shorthand_property_identifier_pattern":
		id, nd := b.alloc(ast.Property, n)
		nd.Text = b.textOf(n)
		return id
	case "spread_element":
		return b.generic(ast.SpreadElement, n)
	case "rest_pattern":
		return b.generic(ast.RestElement, n)

	// leaves
	case "identifier", "property_identifier", "type_identifier", "statement_identifier", "undefined":
		id, nd := b.alloc(ast.Identifier, n)
		nd.Text = b.textOf(n)
		return id
	case "private_property_identifier":
		id, nd := b.alloc(ast.PrivateIdentifier, n)
		nd.Text = b.textOf(n)
		return id
	case "this":
		id, _ := b.alloc(ast.ThisExpression, n)
		return id
	case "super":
		id, _ := b.alloc(ast.Super, n)
		return id
	case "string":
		id, nd := b.alloc(ast.Literal, n)
		nd.Text = stringValue(b.textOf(n))
		return id
	case "number", "regex", "true", "false", "null":
		id, nd := b.alloc(ast.Literal, n)
		nd.Text = b.textOf(n)
		return id
	case "template_string":
		return b.template(n)

	// TypeScript
	case "type_annotation":
		return b.generic(ast.TSTypeAnnotation, n)
	case "interface_declaration":
		return b.interfaceDeclaration(n)
	case "object_type":
		id, _ := b.allocList(ast.TSTypeLiteral, n, b.members(n))
		return id
	case "tuple_type":
		return b.container(ast.TSTupleType, n)
	case "type_parameters":
		return b.container(ast.TSTypeParameterDeclaration, n)
	case "type_parameter":
		return b.generic(ast.TSTypeParameter, n)
	case "type_arguments":
		return b.container(ast.TSTypeParameterInstantiation, n)
	case "function_type":
		return b.function(ast.TSFunctionType, n, n)
	case "type_alias_declaration":
		ks := b.kids(n)
		id, nd := b.alloc(ast.TSTypeAliasDeclaration, n)
		nd.Kids, nd.ID = ks.ids, ks.field(n, "name")
		nd.TypeParams = ks.field(n, "type_parameters")
		return id
	case "enum_declaration":
		ks := b.kids(n)
		id, nd := b.alloc(ast.TSEnumDeclaration, n)
		nd.Kids, nd.ID = ks.ids, ks.field(n, "name")
		nd.Const = hasAnon(n, "const")
		return id

	// JSX
	case "jsx_element":
		return b.generic(ast.JSXElement, n)
	case "jsx_opening_element", "jsx_self_closing_element":
		ks := b.kids(n)
		id, nd := b.alloc(ast.JSXOpeningElement, n)
		nd.Kids = ks.ids
		nd.List = ks.ofType("jsx_attribute", "jsx_expression")
		return id
	case "jsx_closing_element":
		return b.generic(ast.JSXClosingElement, n)
	case "jsx_attribute":
		return b.generic(ast.JSXAttribute, n)
	case "jsx_expression":
		return b.generic(ast.JSXExpressionContainer, n)
	case "jsx_text":
		id, nd := b.alloc(ast.JSXText, n)
		nd.Text = b.textOf(n)
		return id
	}
	return b.generic(ast.KindOther, n)
}

func (b *builder) generic(kind ast.Kind, n *sitter.Node) ast.NodeID {
	ks := b.kids(n)
	id, nd := b.alloc(kind, n)
	nd.Kids = ks.ids
	if kind == ast.KindOther {
		nd.Text = n.Type()
	}
	return id
}

// container is a node whose named children are its item list.
func (b *builder) container(kind ast.Kind, n *sitter.Node) ast.NodeID {
	id, _ := b.allocList(kind, n, b.list(n))
	return id
}

func (b *builder) allocList(kind ast.Kind, n *sitter.Node, items []ast.NodeID) (ast.NodeID, *ast.Node) {
	id, nd := b.alloc(kind, n)
	nd.Kids, nd.List = items, items
	return id, nd
}

func (b *builder) wrapper(kind ast.Kind, n *sitter.Node) ast.NodeID {
	ks := b.kids(n)
	id, nd := b.alloc(kind, n)
	nd.Kids, nd.Expr = ks.ids, ks.first()
	return id
}

func (b *builder) ifStatement(n *sitter.Node) ast.NodeID {
	test := b.convert(n.ChildByFieldName("condition"))
	cons := b.convert(n.ChildByFieldName("consequence"))
	var alt ast.NodeID
	if clause := n.ChildByFieldName("alternative"); clause != nil {
		if clause.Type() == "else_clause" {
			alt = b.convert(soleNamed(clause))
		} else {
			alt = b.convert(clause)
		}
	}
	id, nd := b.alloc(ast.IfStatement, n)
	nd.Test, nd.Consequent, nd.Alternate = test, cons, alt
	nd.Kids = nonZero(test, cons, alt)
	return id
}

func (b *builder) loop(kind ast.Kind, n *sitter.Node) ast.NodeID {
	ks := b.kids(n)
	id, nd := b.alloc(kind, n)
	nd.Kids = ks.ids
	nd.Body = ks.field(n, "body")
	nd.Test = ks.field(n, "condition")
	return id
}

func (b *builder) variableDeclaration(n *sitter.Node) ast.NodeID {
	ks := b.kids(n)
	id, nd := b.alloc(ast.VariableDeclaration, n)
	nd.Kids = ks.ids
	nd.List = ks.ofType("variable_declarator")
	nd.Operator = "var"
	if kind := n.ChildByFieldName("kind"); kind != nil {
		nd.Operator = b.textOf(kind)
	} else if n.ChildCount() > 0 && !n.Child(0).IsNamed() {
		nd.Operator = n.Child(0).Type()
	}
	nd.Const = nd.Operator == "const"
	return id
}

// variableDeclarator stretches the binding over its type annotation, as
// ESTree identifiers include their annotation.
func (b *builder) variableDeclarator(n *sitter.Node) ast.NodeID {
	name := b.convert(n.ChildByFieldName("name"))
	typ := b.convert(n.ChildByFieldName("type"))
	init := b.convert(n.ChildByFieldName("value"))
	b.annotate(name, typ)

	id, nd := b.alloc(ast.VariableDeclarator, n)
	nd.ID, nd.Init = name, init
	nd.Kids = nonZero(name, init)
	return id
}

func (b *builder) annotate(target, typ ast.NodeID) {
	if !target.IsValid() || !typ.IsValid() {
		return
	}
	t := b.nodes.Get(target)
	t.TypeAnnotation = typ
	t.Kids = append(t.Kids, typ)
	if end := b.nodes.Get(typ).Span.End; end > t.Span.End {
		t.Span.End = end
	}
}

// parameter unwraps required_parameter and optional_parameter: the result
// is the pattern itself, or an AssignmentPattern when a default is present.
func (b *builder) parameter(n *sitter.Node) ast.NodeID {
	pattern := b.convert(n.ChildByFieldName("pattern"))
	if !pattern.IsValid() {
		return b.generic(ast.KindOther, n)
	}
	typ := b.convert(n.ChildByFieldName("type"))
	value := b.convert(n.ChildByFieldName("value"))
	b.annotate(pattern, typ)

	if !value.IsValid() {
		b.nodes.Get(pattern).Span = b.spanOf(n)
		return pattern
	}
	if start := n.StartByte(); start < b.nodes.Get(pattern).Span.Start {
		b.nodes.Get(pattern).Span.Start = start
	}
	id, nd := b.alloc(ast.AssignmentPattern, n)
	nd.Left, nd.Right = pattern, value
	nd.Kids = []ast.NodeID{pattern, value}
	return id
}

func (b *builder) ambient(n *sitter.Node) ast.NodeID {
	inner := soleNamed(n)
	if inner == nil {
		return b.generic(ast.KindOther, n)
	}
	id := b.convert(inner)
	if !id.IsValid() {
		return b.generic(ast.KindOther, n)
	}
	nd := b.nodes.Get(id)
	nd.Declare = true
	nd.Span = b.spanOf(n)
	return id
}

// function handles declarations, expressions, arrows and function types.
// span is the grammar node whose range the result covers.
func (b *builder) function(kind ast.Kind, n, span *sitter.Node) ast.NodeID {
	name := b.convert(n.ChildByFieldName("name"))
	tparams := b.convert(n.ChildByFieldName("type_parameters"))
	var params []ast.NodeID
	if ps := n.ChildByFieldName("parameters"); ps != nil {
		params = b.list(ps)
	} else if p := b.convert(n.ChildByFieldName("parameter")); p.IsValid() {
		params = []ast.NodeID{p}
	}
	ret := b.convert(n.ChildByFieldName("return_type"))
	body := b.convert(n.ChildByFieldName("body"))

	id, nd := b.alloc(kind, span)
	nd.ID, nd.TypeParams, nd.List, nd.ReturnType, nd.Body = name, tparams, params, ret, body
	nd.Async = hasAnon(n, "async")
	nd.Kids = nonZero(name, tparams)
	nd.Kids = append(nd.Kids, params...)
	nd.Kids = append(nd.Kids, nonZero(ret, body)...)
	return id
}

// method produces a MethodDefinition (or Property inside object literals)
// whose value is a FunctionExpression starting at the parameter list.
func (b *builder) method(n *sitter.Node) ast.NodeID {
	kind := ast.MethodDefinition
	if p := n.Parent(); p != nil && p.Type() == "object" {
		kind = ast.Property
	}
	start := n.ChildByFieldName("type_parameters")
	if start == nil {
		start = n.ChildByFieldName("parameters")
	}
	fn := b.function(ast.FunctionExpression, n, n)
	fnNode := b.nodes.Get(fn)
	key := fnNode.ID
	fnNode.ID = ast.NoNodeID
	if len(fnNode.Kids) > 0 && fnNode.Kids[0] == key {
		fnNode.Kids = fnNode.Kids[1:]
	}
	if start != nil {
		fnNode.Span.Start = start.StartByte()
	}

	id, nd := b.alloc(kind, n)
	nd.Kids = nonZero(key, fn)
	nd.Body = fn
	nd.Async = hasAnon(n, "async")
	return id
}

func (b *builder) call(n *sitter.Node) ast.NodeID {
	callee := b.convert(n.ChildByFieldName("function"))
	targs := b.convert(n.ChildByFieldName("type_arguments"))
	args := n.ChildByFieldName("arguments")

	if args != nil && args.Type() == "template_string" {
		quasi := b.convert(args)
		id, nd := b.alloc(ast.TaggedTemplateExpression, n)
		nd.Tag, nd.TypeArgs, nd.Quasi = callee, targs, quasi
		nd.Kids = nonZero(callee, targs, quasi)
		return id
	}

	list := b.list(args)
	id, nd := b.alloc(ast.CallExpression, n)
	nd.Callee, nd.TypeArgs, nd.List = callee, targs, list
	nd.Optional = firstOfType(n, "optional_chain") != nil
	nd.Kids = append(nonZero(callee, targs), list...)
	return id
}

func (b *builder) newExpression(n *sitter.Node) ast.NodeID {
	callee := b.convert(n.ChildByFieldName("constructor"))
	targs := b.convert(n.ChildByFieldName("type_arguments"))
	list := b.list(n.ChildByFieldName("arguments"))
	id, nd := b.alloc(ast.NewExpression, n)
	nd.Callee, nd.TypeArgs, nd.List = callee, targs, list
	nd.Kids = append(nonZero(callee, targs), list...)
	return id
}

func (b *builder) member(n, prop *sitter.Node, computed bool) ast.NodeID {
	object := b.convert(n.ChildByFieldName("object"))
	property := b.convert(prop)
	id, nd := b.alloc(ast.MemberExpression, n)
	nd.Object, nd.Property, nd.Computed = object, property, computed
	nd.Optional = firstOfType(n, "optional_chain") != nil
	nd.Kids = nonZero(object, property)
	return id
}

func (b *builder) binary(n *sitter.Node) ast.NodeID {
	left := b.convert(n.ChildByFieldName("left"))
	right := b.convert(n.ChildByFieldName("right"))
	op := ""
	if o := n.ChildByFieldName("operator"); o != nil {
		op = o.Type()
	}
	kind := ast.BinaryExpression
	switch op {
	case "&&", "||", "??":
		kind = ast.LogicalExpression
	}
	id, nd := b.alloc(kind, n)
	nd.Left, nd.Right, nd.Operator = left, right, op
	nd.Kids = nonZero(left, right)
	return id
}

func (b *builder) assignment(kind ast.Kind, n *sitter.Node) ast.NodeID {
	left := b.convert(n.ChildByFieldName("left"))
	right := b.convert(n.ChildByFieldName("right"))
	id, nd := b.alloc(kind, n)
	nd.Left, nd.Right = left, right
	nd.Kids = nonZero(left, right)
	if o := n.ChildByFieldName("operator"); o != nil {
		nd.Operator = o.Type()
	}
	return id
}

func (b *builder) template(n *sitter.Node) ast.NodeID {
	var exprs []ast.NodeID
	for i := 0; i < int(n.NamedChildCount()); i++ {
		c := n.NamedChild(i)
		if c.Type() != "template_substitution" {
			continue
		}
		exprs = append(exprs, b.list(c)...)
	}
	id, nd := b.alloc(ast.TemplateLiteral, n)
	nd.Kids = exprs
	return id
}

func (b *builder) importDeclaration(n *sitter.Node) ast.NodeID {
	var specs []ast.NodeID
	if clause := firstOfType(n, "import_clause"); clause != nil {
		for i := 0; i < int(clause.NamedChildCount()); i++ {
			c := clause.NamedChild(i)
			switch c.Type() {
			case "identifier":
				specs = append(specs, b.specifier(ast.ImportDefaultSpecifier, c, c))
			case "namespace_import":
				specs = append(specs, b.specifier(ast.ImportNamespaceSpecifier, c, firstOfType(c, "identifier")))
			case "named_imports":
				for j := 0; j < int(c.NamedChildCount()); j++ {
					s := c.NamedChild(j)
					if s.Type() != "import_specifier" {
						continue
					}
					local := s.ChildByFieldName("alias")
					if local == nil {
						local = s.ChildByFieldName("name")
					}
					specs = append(specs, b.specifier(ast.ImportSpecifier, s, local))
				}
			}
		}
	}
	src := b.convert(n.ChildByFieldName("source"))
	id, nd := b.alloc(ast.ImportDeclaration, n)
	nd.List, nd.Source = specs, src
	nd.Kids = append(append([]ast.NodeID(nil), specs...), nonZero(src)...)
	return id
}

// specifier records the local binding name in Text.
func (b *builder) specifier(kind ast.Kind, n, local *sitter.Node) ast.NodeID {
	ks := b.kids(n)
	if kind == ast.ImportDefaultSpecifier {
		ks = kidSet{}
	}
	id, nd := b.alloc(kind, n)
	nd.Kids = ks.ids
	if local != nil {
		nd.Text = b.textOf(local)
	}
	return id
}

func (b *builder) exportStatement(n *sitter.Node) ast.NodeID {
	switch {
	case hasAnon(n, "default"):
		ks := b.kids(n)
		id, nd := b.alloc(ast.ExportDefaultDeclaration, n)
		nd.Kids = ks.ids
		nd.Declaration = ks.field(n, "declaration")
		if !nd.Declaration.IsValid() {
			nd.Declaration = ks.field(n, "value")
		}
		return id
	case hasAnon(n, "="):
		return b.wrapper(ast.TSExportAssignment, n)
	}

	decl := b.convert(n.ChildByFieldName("declaration"))
	var specs []ast.NodeID
	clause := firstOfType(n, "export_clause")
	if clause != nil {
		specs = b.list(clause)
	}
	src := b.convert(n.ChildByFieldName("source"))
	if !decl.IsValid() && clause == nil {
		// export * from '...'
		id, nd := b.alloc(ast.KindOther, n)
		nd.Text = "export_all"
		nd.Source = src
		nd.Kids = nonZero(src)
		return id
	}
	id, nd := b.alloc(ast.ExportNamedDeclaration, n)
	nd.Declaration, nd.List, nd.Source = decl, specs, src
	nd.Kids = append(nonZero(decl), specs...)
	nd.Kids = append(nd.Kids, nonZero(src)...)
	return id
}

func (b *builder) interfaceDeclaration(n *sitter.Node) ast.NodeID {
	name := b.convert(n.ChildByFieldName("name"))
	tparams := b.convert(n.ChildByFieldName("type_parameters"))
	var heritage ast.NodeID
	if ext := firstOfType(n, "extends_type_clause"); ext != nil {
		heritage = b.convert(ext)
	}
	members := b.members(n.ChildByFieldName("body"))

	id, nd := b.alloc(ast.TSInterfaceDeclaration, n)
	nd.ID, nd.TypeParams, nd.List = name, tparams, members
	nd.Kids = append(nonZero(name, tparams, heritage), members...)
	return id
}

// stringValue strips the quotes of a string literal; escapes stay raw.
func stringValue(raw string) string {
	if len(raw) >= 2 && (raw[0] == '"' || raw[0] == '\'') && raw[len(raw)-1] == raw[0] {
		return raw[1 : len(raw)-1]
	}
	return strings.Trim(raw, `"'`)
}
