package cmd

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	mdwerror "github.com/msto63/minilang/foundation/core/error"
	mdwlog "github.com/msto63/minilang/foundation/core/log"
	"github.com/msto63/minilang/foundation/lang"
	"github.com/msto63/minilang/internal/chomsky/store"
	"github.com/msto63/minilang/pkg/core/config"
	"github.com/msto63/minilang/pkg/core/logging"
	"github.com/spf13/cobra"
)

// ErrProblemsFound is returned when a checked program has syntax or
// semantic errors. The diagnostics have already been printed.
var ErrProblemsFound = errors.New("program has errors")

var (
	cfgFile   string
	verbose   bool
	logLevel  string
	logFormat string

	appConfig *config.Config
	logger    *mdwlog.Logger
)

var rootCmd = &cobra.Command{
	Use:   "minilang",
	Short: "minilang - Front end für eine kleine imperative Sprache",
	Long: `minilang prüft Programme einer kleinen imperativen Sprache.

Die Sprache kennt Deklarationen (int, string), Zuweisungen (set),
Ausgaben (print, println) und Ausdrücke mit + - * / und Klammern.

Pipeline:
  Lexer -> Parser -> Syntaxbaum -> Semantische Analyse -> Trace/Zählung

Ohne Datei-Argument wird das Programm von stdin gelesen.`,
	SilenceUsage:      true,
	SilenceErrors:     true,
	PersistentPreRunE: setup,
}

// Execute runs the CLI and returns the process exit status
func Execute() int {
	err := rootCmd.Execute()
	switch {
	case err == nil:
		return 0
	case errors.Is(err, ErrProblemsFound):
		return 1
	default:
		printError(rootCmd.ErrOrStderr(), err)
		return 2
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "Config-Datei (default: $MINILANG_CONFIG oder ./configs/config.toml)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Verbose Output (Debug-Logs)")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "Log-Level (trace, debug, info, warn, error)")
	rootCmd.PersistentFlags().StringVar(&logFormat, "log-format", "", "Log-Format (json, text, console, logfmt)")
}

// setup loads the configuration and builds the logger before every command
func setup(cmd *cobra.Command, args []string) error {
	var err error
	if cfgFile != "" {
		appConfig, err = config.Load(cfgFile)
	} else {
		appConfig, err = config.LoadFromEnv()
	}
	if err != nil {
		return err
	}

	// Commands print their results on stdout; logs stay quiet on stderr
	// unless asked for.
	level := "warn"
	if cmd.Name() == "serve" {
		level = appConfig.General.LogLevel
	}
	if logLevel != "" {
		level = logLevel
	}
	if verbose {
		level = "debug"
	}
	format := appConfig.General.LogFormat
	if logFormat != "" {
		format = logFormat
	}

	logger = logging.NewLogger(logging.LoggerConfig{
		ServiceName: appConfig.General.Name,
		Level:       level,
		Format:      format,
		Output:      cmd.ErrOrStderr(),
	})
	mdwlog.SetDefault(logger)
	return nil
}

func newEngine() *lang.Engine {
	return lang.New(lang.Options{
		Logger:         logger,
		MaxInputLength: appConfig.Engine.MaxInputLength,
	})
}

func openStore() (*store.SQLiteRunStore, error) {
	return store.Open(store.Config{
		Path:   appConfig.Store.Path,
		Logger: logger,
	})
}

// readInput reads the program from the file argument or from stdin
func readInput(cmd *cobra.Command, args []string) (name, source string, err error) {
	if len(args) == 0 || args[0] == "-" {
		data, err := io.ReadAll(cmd.InOrStdin())
		if err != nil {
			return "", "", mdwerror.Wrap(err, "stdin lesen").WithCode(mdwerror.CodeInvalidInput)
		}
		return "<stdin>", string(data), nil
	}

	data, err := os.ReadFile(args[0])
	if err != nil {
		code := mdwerror.CodeInvalidInput
		if errors.Is(err, os.ErrNotExist) {
			code = mdwerror.CodeNotFound
		}
		return "", "", mdwerror.Wrap(err, "Datei lesen").WithCode(code).WithDetail("path", args[0])
	}
	return filepath.Base(args[0]), string(data), nil
}

func printError(w io.Writer, err error) {
	fmt.Fprintln(w, errorStyle.Render("Fehler:")+" "+err.Error())
}
