package main

import (
	"fmt"
	"slices"

	"github.com/charmbracelet/log"
	kmap "github.com/goliatone/go-kmap"
	"github.com/goliatone/go-kmap/layering"
	"github.com/spf13/cobra"
)

type renderFlags struct {
	presets []string
	sets    []string
	options []string
	apiTest string
	encode  bool
}

func newRenderCmd(newLogger func(*cobra.Command) *log.Logger) *cobra.Command {
	flags := &renderFlags{}
	cmd := &cobra.Command{
		Use:   "render",
		Short: "Print the install container markup",
		Long: `Render merges the given presets, weakest first, applies --set and
--option overrides on top and prints the install container markup.

Unknown property names are logged and make the command fail after the
markup is printed.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runRender(cmd, newLogger(cmd), flags)
		},
	}
	cmd.Flags().StringArrayVarP(&flags.presets, "preset", "p", nil, "preset file (.json, .yaml, .toml); repeat weakest first")
	cmd.Flags().StringArrayVarP(&flags.sets, "set", "s", nil, "property override as key=value")
	cmd.Flags().StringArrayVarP(&flags.options, "option", "o", nil, "extra client option as key=value")
	cmd.Flags().StringVar(&flags.apiTest, "api-test", "", "test results endpoint")
	cmd.Flags().BoolVar(&flags.encode, "encode", false, "base64 encode the payload")
	return cmd
}

func runRender(cmd *cobra.Command, logger *log.Logger, flags *renderFlags) error {
	rejected := 0
	diagnostics := kmap.CharmLogger(logger)
	k := kmap.New(kmap.WithLogger(kmap.DiagnosticLoggerFunc(func(d kmap.Diagnostic) {
		rejected++
		diagnostics.LogDiagnostic(d)
	})))

	layers := make([]kmap.Settings, 0, len(flags.presets))
	for _, path := range flags.presets {
		settings, err := loadPreset(path)
		if err != nil {
			return err
		}
		logger.Debug("loaded preset", "path", path)
		layers = append(layers, settings)
	}
	// MergeLayers wants the strongest layer first.
	slices.Reverse(layers)
	if err := k.Apply(layering.MergeLayers(layers...)); err != nil {
		return fmt.Errorf("apply presets: %w", err)
	}

	if flags.apiTest != "" {
		if result := k.API().SetTest(flags.apiTest); !result.Applied() {
			return fmt.Errorf("--api-test: %w", result.Err())
		}
	}
	for _, arg := range flags.sets {
		key, value, err := parseAssignment(arg, textProperties)
		if err != nil {
			return fmt.Errorf("--set: %w", err)
		}
		k.Set(key, value)
	}
	for _, arg := range flags.options {
		key, value, err := parseAssignment(arg, nil)
		if err != nil {
			return fmt.Errorf("--option: %w", err)
		}
		k.Option(key, value)
	}
	if flags.encode {
		k.Set(kmap.PropertyEncode, true)
	}

	fmt.Fprintln(cmd.OutOrStdout(), k.Render())

	if rejected > 0 {
		return fmt.Errorf("%d setting(s) rejected", rejected)
	}
	return nil
}
