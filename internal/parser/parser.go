package parser

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	sitter "github.com/smacker/go-tree-sitter"
	"github.com/smacker/go-tree-sitter/javascript"
	"github.com/smacker/go-tree-sitter/typescript/tsx"
	"github.com/smacker/go-tree-sitter/typescript/typescript"

	"layoutlint/internal/ast"
	"layoutlint/internal/source"
	"layoutlint/internal/token"
)

var (
	// ErrSyntax is returned (wrapped in *SyntaxError) when the grammar
	// recovered from an error; no tree is produced for such files.
	ErrSyntax = errors.New("syntax error")
	// ErrUnsupported marks files whose extension has no grammar.
	ErrUnsupported = errors.New("unsupported file type")
)

// Language selects the tree-sitter grammar.
type Language uint8

const (
	// LangAuto picks the grammar from the file extension.
	LangAuto Language = iota
	LangTypeScript
	LangTSX
	LangJavaScript
)

func (l Language) String() string {
	switch l {
	case LangTypeScript:
		return "typescript"
	case LangTSX:
		return "tsx"
	case LangJavaScript:
		return "javascript"
	default:
		return "auto"
	}
}

// ParseLanguage maps a flag value onto a Language.
func ParseLanguage(s string) (Language, error) {
	switch strings.ToLower(s) {
	case "", "auto":
		return LangAuto, nil
	case "ts", "typescript":
		return LangTypeScript, nil
	case "tsx":
		return LangTSX, nil
	case "js", "jsx", "javascript":
		return LangJavaScript, nil
	}
	return LangAuto, fmt.Errorf("unknown language %q", s)
}

// LanguageFor returns the grammar used for path, or false when the
// extension is not part of the JavaScript/TypeScript family.
func LanguageFor(path string) (Language, bool) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".ts", ".mts", ".cts":
		return LangTypeScript, true
	case ".tsx":
		return LangTSX, true
	case ".js", ".jsx", ".mjs", ".cjs":
		return LangJavaScript, true
	}
	return LangAuto, false
}

// IsTypeScriptPath reports whether path names a TypeScript module.
func IsTypeScriptPath(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".ts", ".tsx", ".mts", ".cts":
		return true
	}
	return false
}

func (l Language) grammar() *sitter.Language {
	switch l {
	case LangTSX:
		return tsx.GetLanguage()
	case LangJavaScript:
		return javascript.GetLanguage()
	default:
		return typescript.GetLanguage()
	}
}

type Options struct {
	Language Language
}

// SyntaxError points at the first node the grammar could not accept.
type SyntaxError struct {
	Path string
	Pos  source.LineCol
	Span source.Span
	Near string
}

func (e *SyntaxError) Error() string {
	if e.Near == "" {
		return fmt.Sprintf("%s:%d:%d: %v", e.Path, e.Pos.Line, e.Pos.Col, ErrSyntax)
	}
	return fmt.Sprintf("%s:%d:%d: %v near %q", e.Path, e.Pos.Line, e.Pos.Col, ErrSyntax, e.Near)
}

func (e *SyntaxError) Unwrap() error { return ErrSyntax }

// Parse builds the ESTree-shaped tree and token stream for file.
// A fresh tree-sitter parser is created per call, so Parse is safe to run
// from several goroutines at once.
func Parse(ctx context.Context, file *source.File, opts Options) (*ast.Tree, error) {
	lang := opts.Language
	if lang == LangAuto {
		var ok bool
		if lang, ok = LanguageFor(file.Path); !ok {
			return nil, fmt.Errorf("%s: %w", file.Path, ErrUnsupported)
		}
	}

	p := sitter.NewParser()
	defer p.Close()
	p.SetLanguage(lang.grammar())

	st, err := p.ParseCtx(ctx, nil, file.Content)
	if err != nil {
		return nil, fmt.Errorf("%s: tree-sitter parse failed: %w", file.Path, err)
	}
	defer st.Close()

	root := st.RootNode()
	if root == nil {
		return nil, fmt.Errorf("%s: tree-sitter returned nil root", file.Path)
	}
	if root.HasError() {
		return nil, syntaxError(file, root)
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var lx lexer
	lx.file = file
	lx.collect(root)

	b := newBuilder(file)
	tree := &ast.Tree{
		File:   file,
		Nodes:  b.nodes,
		Tokens: token.NewStream(file, lx.tokens, lx.comments),
	}
	tree.Root = b.convert(root)
	tree.LinkParents()
	return tree, nil
}

func syntaxError(file *source.File, root *sitter.Node) error {
	bad := firstError(root)
	if bad == nil {
		bad = root
	}
	span := source.Span{File: file.ID, Start: bad.StartByte(), End: bad.EndByte()}
	near := file.Text(span)
	if i := strings.IndexByte(near, '\n'); i >= 0 {
		near = near[:i]
	}
	if len(near) > 24 {
		near = near[:24]
	}
	return &SyntaxError{
		Path: file.Path,
		Pos:  file.LineCol(span.Start),
		Span: span,
		Near: near,
	}
}

// firstError finds the leftmost ERROR or MISSING node.
func firstError(n *sitter.Node) *sitter.Node {
	if n.IsMissing() || n.Type() == "ERROR" {
		return n
	}
	if !n.HasError() {
		return nil
	}
	for i := 0; i < int(n.ChildCount()); i++ {
		if bad := firstError(n.Child(i)); bad != nil {
			return bad
		}
	}
	return nil
}
