package cmd

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/msto63/minilang/internal/chomsky/store"
	"github.com/spf13/cobra"
)

var (
	historyLimit  int
	historyFormat string
	historyAddr   string
	showFormat    string
	showAddr      string
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Listet gespeicherte Runs",
	Long: `Listet die zuletzt gespeicherten Runs, neueste zuerst.

Ohne --addr wird die lokale Datenbank (store.path) gelesen,
mit --addr der laufende Server gefragt.

Beispiele:
  minilang history --limit 5
  minilang history --addr localhost:9300`,
	Args: cobra.NoArgs,
	RunE: runHistory,
}

var showCmd = &cobra.Command{
	Use:   "show <id>",
	Short: "Zeigt einen gespeicherten Run",
	Args:  cobra.ExactArgs(1),
	RunE:  runShow,
}

func init() {
	rootCmd.AddCommand(historyCmd)
	rootCmd.AddCommand(showCmd)
	historyCmd.Flags().IntVarP(&historyLimit, "limit", "n", 20, "Maximale Anzahl Runs")
	historyCmd.Flags().StringVarP(&historyFormat, "format", "f", formatText, "Ausgabeformat (text, json, yaml)")
	historyCmd.Flags().StringVar(&historyAddr, "addr", "", "gRPC-Adresse eines laufenden Servers")
	showCmd.Flags().StringVarP(&showFormat, "format", "f", formatText, "Ausgabeformat (text, json, yaml)")
	showCmd.Flags().StringVar(&showAddr, "addr", "", "gRPC-Adresse eines laufenden Servers")
}

func runHistory(cmd *cobra.Command, args []string) error {
	if err := validateFormat(historyFormat); err != nil {
		return err
	}

	var runs []*store.Run
	if historyAddr != "" {
		client, closeFn, err := dialAnalyzer(historyAddr)
		if err != nil {
			return err
		}
		defer closeFn()
		if runs, err = client.History(context.Background(), historyLimit); err != nil {
			return err
		}
	} else {
		s, err := openStore()
		if err != nil {
			return err
		}
		defer s.Close()
		if runs, err = s.List(context.Background(), historyLimit); err != nil {
			return err
		}
	}

	out := cmd.OutOrStdout()
	if historyFormat != formatText {
		return encode(out, historyFormat, runs)
	}
	if len(runs) == 0 {
		fmt.Fprintln(out, "Keine Runs gespeichert.")
		return nil
	}
	for _, run := range runs {
		status := okStyle.Render("OK    ")
		if !run.OK {
			status = errorStyle.Render("FEHLER")
		}
		fmt.Fprintf(out, "%s  %s  %s  %s\n",
			locationStyle.Render(run.ID),
			run.CreatedAt.Local().Format(time.DateTime),
			status,
			run.Name,
		)
	}
	return nil
}

func runShow(cmd *cobra.Command, args []string) error {
	if err := validateFormat(showFormat); err != nil {
		return err
	}

	var run *store.Run
	if showAddr != "" {
		client, closeFn, err := dialAnalyzer(showAddr)
		if err != nil {
			return err
		}
		defer closeFn()
		if run, err = client.GetRun(context.Background(), args[0]); err != nil {
			return err
		}
	} else {
		s, err := openStore()
		if err != nil {
			return err
		}
		defer s.Close()
		if run, err = s.Get(context.Background(), args[0]); err != nil {
			return err
		}
	}

	out := cmd.OutOrStdout()
	if showFormat != formatText {
		return encode(out, showFormat, run)
	}
	printRun(out, run)
	return nil
}

func printRun(w io.Writer, run *store.Run) {
	fmt.Fprintln(w, headerStyle.Render("Run "+run.ID))
	fmt.Fprintf(w, "%s %s\n", keyStyle.Render("Name:     "), run.Name)
	fmt.Fprintf(w, "%s %s\n", keyStyle.Render("Erstellt: "), run.CreatedAt.Local().Format(time.DateTime))
	fmt.Fprintf(w, "%s %s\n", keyStyle.Render("Hash:     "), run.SourceHash)
	fmt.Fprintf(w, "%s %s\n", keyStyle.Render("Trace:    "), shorten(run.Trace, 60))
	fmt.Fprintln(w)
	printDiagnostics(w, run.Name, run.Diagnostics)
	if len(run.Symbols) > 0 {
		fmt.Fprintln(w, headerStyle.Render("Symbole"))
		printSymbols(w, run.Symbols)
	}
	if run.OK {
		fmt.Fprintln(w, okStyle.Render("OK"))
	}
}
