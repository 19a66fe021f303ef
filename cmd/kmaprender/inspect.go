package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"strings"

	kmap "github.com/goliatone/go-kmap"
	"github.com/spf13/cobra"
)

func newInspectCmd() *cobra.Command {
	var encoded bool
	cmd := &cobra.Command{
		Use:   "inspect <markup|->",
		Short: "Decode install container markup into indented JSON",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			markup := args[0]
			if markup == "-" {
				data, err := io.ReadAll(cmd.InOrStdin())
				if err != nil {
					return fmt.Errorf("read markup: %w", err)
				}
				markup = strings.TrimSpace(string(data))
			}
			payload, err := kmap.DecodePayload(markup, encoded)
			if err != nil {
				return err
			}
			data, err := payload.MarshalJSON()
			if err != nil {
				return err
			}
			var out bytes.Buffer
			if err := json.Indent(&out, data, "", "  "); err != nil {
				return err
			}
			out.WriteByte('\n')
			_, err = cmd.OutOrStdout().Write(out.Bytes())
			return err
		},
	}
	cmd.Flags().BoolVar(&encoded, "encoded", false, "payload is base64 encoded")
	return cmd
}
