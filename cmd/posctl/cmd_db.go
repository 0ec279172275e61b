package main

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/spf13/cobra"

	"github.com/jhoicas/accupos-api/internal/infrastructure/postgres"
	"github.com/jhoicas/accupos-api/internal/infrastructure/seed"
	"github.com/jhoicas/accupos-api/pkg/config"
)

// bootDB carga la configuración y abre el pool.
func bootDB(ctx context.Context) (*pgxpool.Pool, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	return postgres.NewPool(ctx, cfg.DB)
}

// posctl migrate
var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Aplica las migraciones pendientes",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		pool, err := bootDB(ctx)
		if err != nil {
			return err
		}
		defer pool.Close()

		applied, err := postgres.Migrate(ctx, pool)
		if err != nil {
			return err
		}
		if len(applied) == 0 {
			fmt.Fprintln(cmd.OutOrStdout(), "Sin migraciones pendientes.")
			return nil
		}
		for _, name := range applied {
			fmt.Fprintln(cmd.OutOrStdout(), "aplicada:", name)
		}
		return nil
	},
}

// posctl seed
var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Carga el catálogo y los clientes demo",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		pool, err := bootDB(ctx)
		if err != nil {
			return err
		}
		defer pool.Close()

		res, err := postgres.Seed(ctx, pool, seed.Products(), seed.Customers())
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "productos insertados: %d, clientes insertados: %d\n", res.Products, res.Customers)
		return nil
	},
}
