// posctl tareas de operación sobre la base PostgreSQL del punto de venta.
//
// Uso:
//
//	posctl migrate   aplica las migraciones embebidas pendientes
//	posctl seed      carga catálogo y clientes demo (no pisa filas existentes)
//	posctl version
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// version se inyecta con -ldflags "-X main.version=...".
var version = "dev"

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:           "posctl",
	Short:         "posctl: operación de AccuPOS",
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.AddCommand(migrateCmd)
	rootCmd.AddCommand(seedCmd)
	rootCmd.AddCommand(versionCmd)
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Muestra la versión",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintln(cmd.OutOrStdout(), "posctl", version)
	},
}
