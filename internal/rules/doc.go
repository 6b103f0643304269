// Package rules holds the layout checks. Every rule is a lint.Rule; All
// returns them in registration order.
package rules
