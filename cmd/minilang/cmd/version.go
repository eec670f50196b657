package cmd

import (
	"fmt"
	"runtime"

	"github.com/msto63/minilang/pkg/core/version"
	"github.com/spf13/cobra"
)

var versionFormat string

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Zeigt die Version an",
	RunE: func(cmd *cobra.Command, args []string) error {
		info := version.Get("minilang")
		out := cmd.OutOrStdout()
		if versionFormat != formatText {
			return encode(out, versionFormat, info)
		}
		fmt.Fprintf(out, "minilang v%s\n", info.Version)
		fmt.Fprintf(out, "  Sprache:    %s\n", info.Language)
		fmt.Fprintf(out, "  Git Commit: %s\n", info.Commit)
		fmt.Fprintf(out, "  Build Date: %s\n", info.BuildDate)
		fmt.Fprintf(out, "  Go Version: %s\n", info.GoVersion)
		fmt.Fprintf(out, "  OS/Arch:    %s/%s\n", runtime.GOOS, runtime.GOARCH)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
	versionCmd.Flags().StringVarP(&versionFormat, "format", "f", formatText, "Ausgabeformat (text, json, yaml)")
}
