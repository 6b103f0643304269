package main

import (
	"encoding/json"
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/fatih/color"
	"github.com/mattn/go-runewidth"
	"github.com/spf13/cobra"

	"layoutlint/internal/lint"
	"layoutlint/internal/rules"
)

var rulesCmd = &cobra.Command{
	Use:   "rules [rule...]",
	Short: "List the available rules",
	Args:  cobra.ArbitraryArgs,
	RunE:  runRules,
}

func init() {
	rulesCmd.Flags().String("format", "pretty", "output format (pretty|json)")
	rulesCmd.Flags().BoolP("verbose", "v", false, "show messages and options")
}

type ruleInfo struct {
	Name        string            `json:"name"`
	Description string            `json:"description"`
	Fixable     bool              `json:"fixable"`
	Default     bool              `json:"default"`
	Severity    string            `json:"severity"`
	Deprecated  bool              `json:"deprecated,omitempty"`
	ReplacedBy  []string          `json:"replaced_by,omitempty"`
	Messages    map[string]string `json:"messages"`
	Options     map[string]string `json:"options,omitempty"`
}

func describeRule(r lint.Rule) ruleInfo {
	m := r.Meta()
	info := ruleInfo{
		Name:        m.Name,
		Description: m.Description,
		Fixable:     m.Fixable,
		Default:     m.Default,
		Severity:    strings.ToLower(m.DefaultSeverity.String()),
		Deprecated:  m.Deprecated,
		ReplacedBy:  m.ReplacedBy,
		Messages:    m.Messages,
	}
	if len(m.Schema) > 0 {
		info.Options = make(map[string]string, len(m.Schema))
		for k, t := range m.Schema {
			info.Options[k] = t.String()
		}
	}
	return info
}

func runRules(cmd *cobra.Command, args []string) error {
	reg := rules.Registry()
	format, err := cmd.Flags().GetString("format")
	if err != nil {
		return err
	}
	verbose, err := cmd.Flags().GetBool("verbose")
	if err != nil {
		return err
	}
	colorMode, err := cmd.Root().PersistentFlags().GetString("color")
	if err != nil {
		return err
	}
	useColor, err := resolveColor(colorMode)
	if err != nil {
		return err
	}

	selected := reg.All()
	if len(args) > 0 {
		selected = selected[:0:0]
		for _, name := range args {
			r, ok := reg.Get(name)
			if !ok {
				return fmt.Errorf("unknown rule %q", name)
			}
			selected = append(selected, r)
		}
	}
	infos := make([]ruleInfo, len(selected))
	for i, r := range selected {
		infos[i] = describeRule(r)
	}

	switch format {
	case "json":
		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		return enc.Encode(infos)
	case "pretty", "":
		return printRules(cmd.OutOrStdout(), infos, verbose, useColor)
	default:
		return fmt.Errorf("invalid format %q (expected pretty|json)", format)
	}
}

func printRules(w io.Writer, infos []ruleInfo, verbose, useColor bool) error {
	name := color.New(color.Bold)
	dim := color.New(color.FgHiBlack)
	flag := color.New(color.FgGreen)
	for _, c := range []*color.Color{name, dim, flag} {
		if useColor {
			c.EnableColor()
		} else {
			c.DisableColor()
		}
	}

	width := 0
	for _, info := range infos {
		width = max(width, runewidth.StringWidth(info.Name))
	}
	var b strings.Builder
	for _, info := range infos {
		marks := []string{"   ", "   "}
		if info.Fixable {
			marks[0] = flag.Sprint("fix")
		}
		if info.Default {
			marks[1] = flag.Sprint("on ")
		}
		fmt.Fprintf(&b, "%s %s  %s  %s", marks[0], marks[1],
			name.Sprint(runewidth.FillRight(info.Name, width)), info.Description)
		if info.Deprecated {
			b.WriteString(dim.Sprint(" (deprecated"))
			if len(info.ReplacedBy) > 0 {
				b.WriteString(dim.Sprintf(", use %s", strings.Join(info.ReplacedBy, ", ")))
			}
			b.WriteString(dim.Sprint(")"))
		}
		b.WriteByte('\n')
		if !verbose {
			continue
		}
		for _, id := range sortedKeys(info.Messages) {
			fmt.Fprintf(&b, "          %s %s\n", dim.Sprintf("%s:", id), info.Messages[id])
		}
		for _, opt := range sortedKeys(info.Options) {
			fmt.Fprintf(&b, "          option %s: %s\n", opt, info.Options[opt])
		}
	}
	_, err := io.WriteString(w, b.String())
	return err
}

func sortedKeys(m map[string]string) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
