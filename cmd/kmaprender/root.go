package main

import (
	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
)

func newRootCmd() *cobra.Command {
	var verbose bool

	root := &cobra.Command{
		Use:           "kmaprender",
		Short:         "Render embedded K-map widget markup",
		SilenceUsage:  true,
		SilenceErrors: true,
		Long: `kmaprender builds the install container the K-map client script
expects, from layered preset files and command-line overrides.

Examples:
  kmaprender render --preset course.yaml --preset q1.json --set size=4
  kmaprender inspect --encoded '<div class="kmap-cl-install">...</div>'
  kmaprender schema`,
	}
	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")

	newLogger := func(cmd *cobra.Command) *log.Logger {
		logger := log.NewWithOptions(cmd.ErrOrStderr(), log.Options{Prefix: "kmap"})
		if verbose {
			logger.SetLevel(log.DebugLevel)
		}
		return logger
	}

	root.AddCommand(newRenderCmd(newLogger))
	root.AddCommand(newInspectCmd())
	root.AddCommand(newSchemaCmd())
	return root
}
