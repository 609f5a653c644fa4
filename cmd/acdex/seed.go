package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/kailas-cloud/acdex/internal/config"
	aircraftrepo "github.com/kailas-cloud/acdex/internal/repository/aircraft"
)

func newSeedCmd(opts *rootOptions) *cobra.Command {
	var prefix string

	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Write the catalog into Redis hashes",
		Long: `Write the catalog into Redis hashes, replacing any records stored under
the key prefix. The source is --catalog when given and the embedded dataset
otherwise; a redis catalog.source falls back to the embedded dataset.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			a, err := opts.setup()
			if err != nil {
				return err
			}
			defer a.Close()

			if a.cfg.Catalog.Source == config.SourceRedis {
				a.cfg.Catalog.Source = config.SourceEmbedded
			}
			if prefix == "" {
				prefix = a.cfg.Catalog.KeyPrefix
			}

			ctx := a.withLogger(cmd.Context())
			cat, err := a.loadCatalog(ctx)
			if err != nil {
				return err
			}
			store, err := a.openStore(ctx)
			if err != nil {
				return err
			}
			if err := aircraftrepo.NewStoreSource(store, prefix).Save(ctx, cat.All()); err != nil {
				return fmt.Errorf("seed: %w", err)
			}
			a.logger.Info("Catalog seeded", zap.String("prefix", prefix), zap.Int("records", cat.Len()))
			fmt.Fprintf(cmd.OutOrStdout(), "seeded %d records under %s\n", cat.Len(), prefix)
			return nil
		},
	}
	cmd.Flags().StringVar(&prefix, "prefix", "", "Redis key prefix (overrides catalog.key_prefix)")
	return cmd
}
