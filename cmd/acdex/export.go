package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	aircraftrepo "github.com/kailas-cloud/acdex/internal/repository/aircraft"
)

func newExportCmd(opts *rootOptions) *cobra.Command {
	var out string

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Write the loaded catalog to a file",
		Long: `Write the loaded catalog to a file. The format follows the extension:
.yaml/.yml, .json, .msgpack or .msgpack.zst.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			a, err := opts.setup()
			if err != nil {
				return err
			}
			defer a.Close()

			cat, err := a.loadCatalog(cmd.Context())
			if err != nil {
				return err
			}
			if err := aircraftrepo.WriteFile(out, cat.All()); err != nil {
				return fmt.Errorf("export: %w", err)
			}
			a.logger.Info("Catalog exported", zap.String("path", out), zap.Int("records", cat.Len()))
			fmt.Fprintf(cmd.OutOrStdout(), "wrote %d records to %s\n", cat.Len(), out)
			return nil
		},
	}
	cmd.Flags().StringVarP(&out, "out", "o", "", "output file")
	_ = cmd.MarkFlagRequired("out")
	return cmd
}
