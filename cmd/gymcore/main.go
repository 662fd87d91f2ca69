// Command gymcore runs the gymcore API and its maintenance tasks.
//
//	gymcore serve              # HTTP + gRPC health
//	gymcore migrate            # run pending migrations
//	gymcore migrate:rollback
//	gymcore migrate:status
//	gymcore seed               # demo gym, member and plans
//	gymcore route:list
//	gymcore admin:create --gym 1 --email root@gym.test --password ...
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	_ "github.com/gymstack/gymcore/database/migrations"
	_ "github.com/gymstack/gymcore/database/seeders"
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:           "gymcore",
	Short:         "Multi-tenant gym management API",
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(routeListCmd)

	rootCmd.AddCommand(migrateCmd)
	rootCmd.AddCommand(migrateRollbackCmd)
	rootCmd.AddCommand(migrateStatusCmd)
	rootCmd.AddCommand(seedCmd)

	rootCmd.AddCommand(adminCreateCmd)
}
