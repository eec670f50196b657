package cmd

import (
	"fmt"

	"github.com/msto63/minilang/foundation/lang/ast"
	"github.com/msto63/minilang/foundation/lang/diag"
	"github.com/msto63/minilang/foundation/lang/parser"
	"github.com/spf13/cobra"
)

var parseFormat string

var parseCmd = &cobra.Command{
	Use:   "parse [datei]",
	Short: "Gibt den Syntaxbaum eines Programms aus",
	Long: `Parst ein Programm und gibt den Syntaxbaum aus.
Es findet keine semantische Analyse statt.

Beispiele:
  minilang parse prog.ml
  minilang parse --format yaml prog.ml`,
	Args: cobra.MaximumNArgs(1),
	RunE: runParse,
}

func init() {
	rootCmd.AddCommand(parseCmd)
	parseCmd.Flags().StringVarP(&parseFormat, "format", "f", formatText, "Ausgabeformat (text, json, yaml)")
}

// parseInput reads and parses the input. A syntax error is printed and
// reported as ErrProblemsFound.
func parseInput(cmd *cobra.Command, args []string) (*ast.Node, error) {
	name, source, err := readInput(cmd, args)
	if err != nil {
		return nil, err
	}
	tree, err := newEngine().Parse(name, source)
	if err != nil {
		if se, ok := parser.AsSyntaxError(err); ok {
			printDiagnostics(cmd.OutOrStdout(), name, []diag.Diagnostic{{
				Line:    se.Line,
				Kind:    diag.KindSyntax,
				Message: se.Message,
			}})
			return nil, ErrProblemsFound
		}
		return nil, err
	}
	return tree, nil
}

func runParse(cmd *cobra.Command, args []string) error {
	if err := validateFormat(parseFormat); err != nil {
		return err
	}
	tree, err := parseInput(cmd, args)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	var data []byte
	switch parseFormat {
	case formatJSON:
		data, err = ast.ExportJSON(tree)
	case formatYAML:
		data, err = ast.ExportYAML(tree)
	default:
		_, err = fmt.Fprint(out, ast.Format(tree))
		return err
	}
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(out, string(data))
	return err
}
