package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/foodnest/foodnest/config"
	"github.com/foodnest/foodnest/database/seeders"
	"github.com/foodnest/foodnest/pkg/database"
)

// bootDB loads config and opens the database connection.
func bootDB(ctx context.Context) (*database.DB, error) {
	if err := config.Load(); err != nil {
		return nil, err
	}
	return database.Connect(ctx, config.MongoURI(), config.MongoDatabase())
}

// foodnest db:index
var dbIndexCmd = &cobra.Command{
	Use:   "db:index",
	Short: "Create the MongoDB indexes the application relies on",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		db, err := bootDB(ctx)
		if err != nil {
			return err
		}
		defer db.Close(context.Background())

		fmt.Println("Creating indexes…")
		return db.EnsureIndexes(ctx)
	},
}

// foodnest db:seed
var dbSeedCmd = &cobra.Command{
	Use:   "db:seed",
	Short: "Run all database seeders",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		db, err := bootDB(ctx)
		if err != nil {
			return err
		}
		defer db.Close(context.Background())

		fmt.Println("Running seeders…")
		return seeders.RunAll(ctx, db)
	},
}
