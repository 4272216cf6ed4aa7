// seed loads demo data and bootstraps admin users and the notification topic.
//
// Usage (from backend directory):
//
//	DB_USER=... DB_PASSWORD=... DB_HOST=... DB_PORT=... DB_NAME=... go run ./cmd/seed demo
//	go run ./cmd/seed admin --email admin@benela.dev --name "Benela Admin" --password ...
//	NOTIFICATION_TOPIC=admin-notifications go run ./cmd/seed topic
package main

import (
	"fmt"
	"os"

	"github.com/benela/benela_backend/config"
	"github.com/benela/benela_backend/models"
	"github.com/spf13/cobra"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "seed",
		Short:         "Seed the Benela database",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.AddCommand(
		newDemoCmd(),
		newAdminCmd(),
		newTopicCmd(),
	)
	return root
}

// connect opens the DB and migrates so seeding works against an empty schema.
func connect() error {
	config.ConnectDatabaseWithRetry()
	if config.GetDB() == nil {
		return fmt.Errorf("database not initialized; set DB_* env vars")
	}
	return models.MigrateTable()
}
