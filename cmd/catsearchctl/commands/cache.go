package commands

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/kailas-cloud/catsearch/internal/app"
	searchcacheuc "github.com/kailas-cloud/catsearch/internal/usecase/searchcache"
)

func newCacheCommand(load func() (*session, error)) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cache",
		Args:  cobra.NoArgs,
		Short: "Search cache maintenance",
	}

	cmd.AddCommand(
		newEvictExpiredCommand(load),
		newClearCommand(load),
	)

	return cmd
}

func newEvictExpiredCommand(load func() (*session, error)) *cobra.Command {
	var maxAge time.Duration

	cmd := &cobra.Command{
		Use:   "evict-expired",
		Args:  cobra.NoArgs,
		Short: "Delete cached results not searched within --max-age",
		Long:  `Delete cached results not searched within --max-age. Defaults to cache.max_age_sec from the config.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			sess, err := load()
			if err != nil {
				return err
			}
			if !cmd.Flags().Changed("max-age") {
				maxAge = sess.cfg.Cache.MaxAge()
			}
			return withCache(cmd, sess, func(svc *searchcacheuc.Service) error {
				n, err := svc.EvictExpired(cmd.Context(), maxAge)
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "evicted %d cached results older than %s\n", n, maxAge)
				return nil
			})
		},
	}
	cmd.Flags().DurationVar(&maxAge, "max-age", 24*time.Hour, "maximum time since the last search")

	return cmd
}

func newClearCommand(load func() (*session, error)) *cobra.Command {
	return &cobra.Command{
		Use:   "clear",
		Args:  cobra.NoArgs,
		Short: "Delete every cached result",
		RunE: func(cmd *cobra.Command, _ []string) error {
			sess, err := load()
			if err != nil {
				return err
			}
			return withCache(cmd, sess, func(svc *searchcacheuc.Service) error {
				n, err := svc.EvictAll(cmd.Context())
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "evicted %d cached results\n", n)
				return nil
			})
		},
	}
}

func withCache(cmd *cobra.Command, sess *session, fn func(svc *searchcacheuc.Service) error) error {
	store, closeStore, err := app.OpenCache(cmd.Context(), sess.cfg, sess.logger)
	if err != nil {
		return err
	}
	defer closeStore()

	return fn(searchcacheuc.New(store, nil, nil, sess.logger))
}
