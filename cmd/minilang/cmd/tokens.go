package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var tokensFormat string

type tokenView struct {
	Type   string `json:"type" yaml:"type"`
	Lexeme string `json:"lexeme" yaml:"lexeme"`
	Line   int    `json:"line" yaml:"line"`
}

var tokensCmd = &cobra.Command{
	Use:   "tokens [datei]",
	Short: "Gibt die Token-Folge des Lexers aus",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := validateFormat(tokensFormat); err != nil {
			return err
		}
		name, source, err := readInput(cmd, args)
		if err != nil {
			return err
		}
		toks, err := newEngine().Tokens(name, source)
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		if tokensFormat != formatText {
			views := make([]tokenView, len(toks))
			for i, t := range toks {
				views[i] = tokenView{Type: t.Type.String(), Lexeme: t.Lexeme, Line: t.Line}
			}
			return encode(out, tokensFormat, views)
		}
		for _, t := range toks {
			fmt.Fprintln(out, t.String())
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(tokensCmd)
	tokensCmd.Flags().StringVarP(&tokensFormat, "format", "f", formatText, "Ausgabeformat (text, json, yaml)")
}
