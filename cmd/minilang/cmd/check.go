package cmd

import (
	"context"

	"github.com/msto63/minilang/internal/chomsky/service"
	"github.com/spf13/cobra"
)

var (
	checkFormat string
	checkSave   bool
	checkTree   bool
)

var checkCmd = &cobra.Command{
	Use:   "check [datei]",
	Short: "Prüft ein Programm (Syntax und Semantik)",
	Long: `Prüft ein Programm vollständig: Lexer, Parser und semantische Analyse.

Syntaxfehler brechen die Analyse ab. Semantische Fehler (doppelte
Deklaration, nicht deklarierte Variable) werden alle gemeldet.
Der Exit-Status ist 1, wenn Fehler gefunden wurden.

Beispiele:
  minilang check prog.ml
  minilang check --format json prog.ml
  minilang check --save prog.ml     # Run in der Historie speichern
  cat prog.ml | minilang check`,
	Args: cobra.MaximumNArgs(1),
	RunE: runCheck,
}

func init() {
	rootCmd.AddCommand(checkCmd)
	checkCmd.Flags().StringVarP(&checkFormat, "format", "f", formatText, "Ausgabeformat (text, json, yaml)")
	checkCmd.Flags().BoolVar(&checkSave, "save", false, "Run in der Historie speichern (auch wenn store.enabled=false)")
	checkCmd.Flags().BoolVar(&checkTree, "tree", false, "Syntaxbaum in JSON/YAML-Ausgabe aufnehmen")
}

func runCheck(cmd *cobra.Command, args []string) error {
	if err := validateFormat(checkFormat); err != nil {
		return err
	}
	name, source, err := readInput(cmd, args)
	if err != nil {
		return err
	}

	cfg := service.Config{
		MaxInputLength: appConfig.Engine.MaxInputLength,
		CacheMaxItems:  1,
		Logger:         logger,
	}
	if appConfig.Store.Enabled || checkSave {
		s, err := openStore()
		if err != nil {
			return err
		}
		cfg.Store = s
	}
	svc := service.NewService(cfg)
	defer svc.Close()

	resp, err := svc.Check(context.Background(), &service.CheckRequest{
		Name:        name,
		Source:      source,
		IncludeTree: checkTree,
	})
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if checkFormat == formatText {
		printReport(out, resp)
	} else if err := encode(out, checkFormat, resp); err != nil {
		return err
	}

	if !resp.OK {
		return ErrProblemsFound
	}
	return nil
}
