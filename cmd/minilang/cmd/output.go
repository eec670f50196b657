package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"sort"
	"strings"

	mdwerror "github.com/msto63/minilang/foundation/core/error"
	"github.com/msto63/minilang/foundation/lang/ast"
	"github.com/msto63/minilang/foundation/lang/diag"
	"github.com/msto63/minilang/internal/chomsky/service"
	"gopkg.in/yaml.v3"
)

const (
	formatText = "text"
	formatJSON = "json"
	formatYAML = "yaml"
)

func validateFormat(format string) error {
	switch format {
	case formatText, formatJSON, formatYAML:
		return nil
	}
	return mdwerror.Newf("unbekanntes Format %q (text, json, yaml)", format).
		WithCode(mdwerror.CodeInvalidInput)
}

// encode writes v as JSON or YAML
func encode(w io.Writer, format string, v interface{}) error {
	switch format {
	case formatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(v)
	case formatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(v); err != nil {
			return err
		}
		return enc.Close()
	default:
		return validateFormat(format)
	}
}

func printDiagnostics(w io.Writer, name string, diags []diag.Diagnostic) {
	for _, d := range diags {
		loc := locationStyle.Render(fmt.Sprintf("%s:%d:", name, d.Line))
		kind := warnStyle.Render(string(d.Kind))
		if d.Kind == diag.KindSyntax {
			kind = errorStyle.Render(string(d.Kind))
		}
		fmt.Fprintf(w, "%s %s: %s\n", loc, kind, d.Message)
	}
}

// printReport prints the text form of a check
func printReport(w io.Writer, resp *service.CheckResponse) {
	printDiagnostics(w, resp.Name, resp.Diagnostics)

	switch {
	case resp.OK:
		fmt.Fprintf(w, "%s %s: %d Anweisungen, %d Variablen\n",
			okStyle.Render("OK"), resp.Name, resp.Tally.Statements, len(resp.Symbols))
	case resp.SyntaxError != "":
		fmt.Fprintf(w, "%s %s: Syntaxfehler\n", errorStyle.Render("FEHLER"), resp.Name)
	default:
		fmt.Fprintf(w, "%s %s: %d semantische Fehler\n",
			errorStyle.Render("FEHLER"), resp.Name, resp.SemanticErrors)
	}
	if resp.RunID != "" {
		fmt.Fprintf(w, "%s %s\n", keyStyle.Render("Run:"), resp.RunID)
	}
}

func printTally(w io.Writer, t ast.Tally) {
	rows := []struct {
		label string
		value int
	}{
		{"statements", t.Statements},
		{"declarations", t.Declarations},
		{"sets", t.Sets},
		{"prints", t.Prints},
		{"plus", t.Plus},
		{"minus", t.Minus},
		{"star", t.Star},
		{"slash", t.Slash},
		{"nodes", t.Nodes},
	}
	for _, row := range rows {
		fmt.Fprintf(w, "%s %d\n", keyStyle.Render(fmt.Sprintf("%-13s", row.label)), row.value)
	}
}

func printSymbols(w io.Writer, symbols map[string]string) {
	names := make([]string, 0, len(symbols))
	for name := range symbols {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		fmt.Fprintf(w, "  %s %s\n", keyStyle.Render(fmt.Sprintf("%-16s", name)), symbols[name])
	}
}

func shorten(s string, n int) string {
	s = strings.Join(strings.Fields(s), " ")
	if len(s) <= n {
		return s
	}
	return s[:n-3] + "..."
}
