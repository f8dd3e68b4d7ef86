// cmd/beaconwipe/main.go
// beaconwipe drops every collection in the beacon database. It refuses to
// act without --confirm: a bare invocation only lists what would be lost.
package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/driftline/beacon/internal/app/store/cleanup"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
	"go.uber.org/zap"
)

var confirm bool

var rootCmd = &cobra.Command{
	Use:   "beaconwipe",
	Short: "Drop every collection in the beacon database",
	Long: `beaconwipe enumerates the collections in the configured MongoDB database
and drops each one. All visitor records are permanently lost.

Without --confirm it only prints the collections that would be dropped.

Configuration comes from flags, BEACON_* environment variables, or a
config file, the same sources the server reads.`,
	RunE: runWipe,
}

func init() {
	rootCmd.Flags().BoolVar(&confirm, "confirm", false, "actually drop the collections")
	rootCmd.Flags().String("mongo_uri", "mongodb://localhost:27017", "MongoDB connection URI")
	rootCmd.Flags().String("mongo_database", "beacon", "MongoDB database name")

	viper.BindPFlag("mongo_uri", rootCmd.Flags().Lookup("mongo_uri"))
	viper.BindPFlag("mongo_database", rootCmd.Flags().Lookup("mongo_database"))
	viper.SetEnvPrefix("BEACON")
	viper.AutomaticEnv()
}

func runWipe(cmd *cobra.Command, args []string) error {
	logger, err := zap.NewProduction()
	if err != nil {
		return err
	}
	defer logger.Sync()

	uri := viper.GetString("mongo_uri")
	dbName := viper.GetString("mongo_database")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return fmt.Errorf("connect to %s: %w", uri, err)
	}
	defer client.Disconnect(context.Background())

	if err := client.Ping(ctx, readpref.Primary()); err != nil {
		return fmt.Errorf("ping %s: %w", uri, err)
	}
	db := client.Database(dbName)

	if !confirm {
		names, err := cleanup.Collections(ctx, db)
		if err != nil {
			return err
		}
		fmt.Printf("WARNING: this would permanently drop %d collection(s) from %q:\n", len(names), dbName)
		for _, name := range names {
			fmt.Printf("  - %s\n", name)
		}
		fmt.Println("Re-run with --confirm to proceed. Nothing was dropped.")
		return nil
	}

	dropped, err := cleanup.Drop(ctx, db, logger)
	if err != nil {
		return fmt.Errorf("drop collections: %w", err)
	}
	fmt.Printf("Dropped %d collection(s) from %q.\n", len(dropped), dbName)
	return nil
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
