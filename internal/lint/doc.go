// Package lint runs layout rules over a parsed tree.
//
// A Rule describes itself through Meta and, once per pass, builds a
// Listeners table from its options. Run walks the tree depth-first a single
// time and calls every listener registered for the node's kind, in rule
// order. Rules report through Context, which renders message templates and
// attaches the rule's severity.
package lint
