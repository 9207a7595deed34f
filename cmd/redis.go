package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"hzfm/catalog"
)

var redisCmd = &cobra.Command{
	Use:   "redis",
	Short: "Check the shared metadata cache",
	Long:  `Ping Redis and report whether a cached metadata table is present.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		if !cfg.RedisEnabled() {
			return fmt.Errorf("REDIS_HOST is not set")
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Redis: %s:%s, DB: %d\n", cfg.RedisHost, cfg.RedisPort, cfg.RedisDB)

		client, err := catalog.ConnectRedis(cmd.Context(), cfg)
		if err != nil {
			return err
		}
		defer client.Close()
		fmt.Fprintln(cmd.OutOrStdout(), "connected")

		ttl, ok, err := catalog.NewRedisCache(client, cfg.CatalogTTL).TTL(cmd.Context())
		if err != nil {
			return err
		}
		if !ok {
			fmt.Fprintf(cmd.OutOrStdout(), "%s: not cached\n", catalog.SnapshotKey)
			return nil
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%s: cached, expires in %s\n", catalog.SnapshotKey, ttl)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(redisCmd)
}
