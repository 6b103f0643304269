package rules

import "layoutlint/internal/lint"

// All returns one instance of every rule.
func All() []lint.Rule {
	return []lint.Rule{
		ListNewline{},
		ObjectNewline{},
		Chaining{},
		IndentBinaryOps{},
		Curly{},
		IfNewline{},
		ImportDedupe{},
		TopLevelFunction{},
		NoTopLevelAwait{},
		NoConstEnum{},
		NoImportDist{},
		NoImportNodeModulesByPath{},
		NoTSExportEqual{},
		IndentUnindent{},
	}
}

// Registry returns a registry holding All.
func Registry() *lint.Registry {
	return lint.NewRegistry(All()...)
}
