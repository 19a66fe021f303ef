package main

import (
	"encoding/json"
	"fmt"

	kmap "github.com/goliatone/go-kmap"
	"github.com/goliatone/go-kmap/schema/openapi"
	"github.com/spf13/cobra"
)

func newSchemaCmd() *cobra.Command {
	var format string
	cmd := &cobra.Command{
		Use:   "schema",
		Short: "Print the recognized properties or the payload schema",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			var opts []kmap.Option
			switch kmap.SchemaFormat(format) {
			case kmap.SchemaFormatOpenAPI:
				opts = append(opts, openapi.Option())
			case kmap.SchemaFormatDescriptors:
			default:
				return fmt.Errorf("unknown schema format %q", format)
			}
			doc, err := kmap.New(opts...).Schema()
			if err != nil {
				return err
			}
			data, err := json.MarshalIndent(doc.Document, "", "  ")
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), string(data))
			return nil
		},
	}
	cmd.Flags().StringVarP(&format, "format", "f", string(kmap.SchemaFormatOpenAPI), "openapi or descriptors")
	return cmd
}
