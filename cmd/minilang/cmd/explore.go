package cmd

import (
	"context"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	mdwerror "github.com/msto63/minilang/foundation/core/error"
	"github.com/msto63/minilang/internal/tui/explorer"
	"github.com/msto63/minilang/pkg/core/logging"
	"github.com/spf13/cobra"
)

var exploreCmd = &cobra.Command{
	Use:   "explore [datei]",
	Short: "Startet den interaktiven Explorer",
	Long: `Zeigt Quelltext, Syntaxbaum, Trace, Symbole und Diagnosen
in einer Terminal-Oberfläche.

Navigation:
  Tab / 1-5   Ansicht wechseln
  r           Datei neu laden (mit --watch automatisch beim Speichern)
  g / G       Anfang / Ende
  q           Beenden`,
	Args: cobra.MaximumNArgs(1),
	RunE: runExplore,
}

var exploreWatch bool

func init() {
	rootCmd.AddCommand(exploreCmd)
	exploreCmd.Flags().BoolVarP(&exploreWatch, "watch", "w", false, "Datei beobachten und bei Änderungen neu prüfen")
}

func runExplore(cmd *cobra.Command, args []string) error {
	name, source, err := readInput(cmd, args)
	if err != nil {
		return err
	}

	cfg := explorer.Config{
		Name:   name,
		Source: source,
		Engine: newEngine(),
	}
	if len(args) == 1 && args[0] != "-" {
		path := args[0]
		cfg.Reload = func() (string, error) {
			data, err := os.ReadFile(path)
			if err != nil {
				return "", mdwerror.Wrap(err, "Datei lesen").WithDetail("path", path)
			}
			return string(data), nil
		}
	}

	p := tea.NewProgram(
		explorer.New(cfg),
		tea.WithAltScreen(),
		tea.WithContext(cmd.Context()),
	)
	if exploreWatch && cfg.Reload != nil {
		w, err := explorer.NewWatcher(args[0], func() { p.Send(explorer.ReloadMsg{}) }, logging.Wrap(logger, "explorer"))
		if err != nil {
			return err
		}
		ctx, cancel := context.WithCancel(cmd.Context())
		defer cancel()
		go w.Run(ctx)
	}

	if _, err := p.Run(); err != nil {
		return mdwerror.Wrap(err, "Explorer")
	}
	return nil
}
