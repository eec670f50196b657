package cmd

import (
	"fmt"
	"sort"
	"strings"

	mdwerror "github.com/msto63/minilang/foundation/core/error"
	"github.com/msto63/minilang/foundation/lang/ast"
	"github.com/spf13/cobra"
)

var (
	countFormat string
	countKind   string
)

var counters = map[string]ast.Counter{
	"set":         (*ast.Node).CountSet,
	"plus":        (*ast.Node).CountPlus,
	"minus":       (*ast.Node).CountMinus,
	"star":        (*ast.Node).CountStar,
	"slash":       (*ast.Node).CountSlash,
	"declaration": (*ast.Node).CountDeclaration,
	"print":       (*ast.Node).CountPrint,
	"node":        (*ast.Node).CountNode,
}

var traceCmd = &cobra.Command{
	Use:   "trace [datei]",
	Short: "Gibt den Trace des Syntaxbaums aus",
	Long: `Durchläuft den Syntaxbaum in Nachordnung und gibt die Schritte aus:

  L  zum linken Kind absteigen    u  vom linken Kind zurück
  R  zum rechten Kind absteigen   U  vom rechten Kind zurück
  N  Knoten besucht`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		tree, err := parseInput(cmd, args)
		if err != nil {
			return err
		}
		out := cmd.OutOrStdout()
		if err := ast.GenerateTrace(out, tree); err != nil {
			return err
		}
		_, err = fmt.Fprintln(out)
		return err
	},
}

var countCmd = &cobra.Command{
	Use:   "count [datei]",
	Short: "Zählt Anweisungen und Operatoren",
	Long: `Zählt Anweisungen, Operatoren und Knoten des Syntaxbaums.

Mit --kind wird nur ein Zähler ausgegeben:
  set, plus, minus, star, slash, declaration, print, node`,
	Args: cobra.MaximumNArgs(1),
	RunE: runCount,
}

func init() {
	rootCmd.AddCommand(traceCmd)
	rootCmd.AddCommand(countCmd)
	countCmd.Flags().StringVarP(&countFormat, "format", "f", formatText, "Ausgabeformat (text, json, yaml)")
	countCmd.Flags().StringVarP(&countKind, "kind", "k", "", "Nur diesen Zähler ausgeben")
}

func runCount(cmd *cobra.Command, args []string) error {
	if err := validateFormat(countFormat); err != nil {
		return err
	}
	var counter ast.Counter
	if countKind != "" {
		var ok bool
		if counter, ok = counters[countKind]; !ok {
			kinds := make([]string, 0, len(counters))
			for k := range counters {
				kinds = append(kinds, k)
			}
			sort.Strings(kinds)
			return mdwerror.Newf("unbekannter Zähler %q (%s)", countKind, strings.Join(kinds, ", ")).
				WithCode(mdwerror.CodeInvalidInput)
		}
	}

	tree, err := parseInput(cmd, args)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if counter != nil {
		n := ast.TraceAndCount(tree, counter)
		if countFormat == formatText {
			_, err = fmt.Fprintln(out, n)
			return err
		}
		return encode(out, countFormat, map[string]int{countKind: n})
	}

	tally := ast.Count(tree)
	if countFormat == formatText {
		printTally(out, tally)
		return nil
	}
	return encode(out, countFormat, tally)
}
