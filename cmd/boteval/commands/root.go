package commands

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/phzwart/boteval/pkg/store"
)

var (
	appConfig  Config
	logger     *zap.Logger
	configPath string
	verbose    bool
)

func NewRootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:   "boteval",
		Short: "Collect and compare model evaluations",
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := LoadConfig(configPath)
			if err != nil {
				return err
			}
			appConfig = cfg

			if verbose {
				logger, _ = zap.NewDevelopment()
			} else {
				logger, _ = zap.NewProduction()
			}
			return nil
		},
	}

	root.PersistentFlags().StringVar(&configPath, "config", "", "config file path")
	root.PersistentFlags().BoolVar(&verbose, "verbose", false, "enable verbose logging")

	root.AddCommand(newCompareCommand())
	root.AddCommand(newGatherCommand())
	root.AddCommand(newAnnotateCommand())
	root.AddCommand(newReviewCommand())
	root.AddCommand(newQuestionsCommand())
	root.AddCommand(newListCommand())

	return root
}

// buildStore assembles the configured backend, wrapping it in the
// read-through cache when enabled.
func buildStore(ctx context.Context) (store.Store, error) {
	var (
		st  store.Store
		err error
	)
	switch appConfig.Store.Backend {
	case "", "fs":
		root := appConfig.Store.Root
		if root == "" {
			root = "."
		}
		st, err = store.NewFS(root)
	case "s3":
		if appConfig.Store.Bucket == "" {
			return nil, fmt.Errorf("store.bucket is required for the s3 backend")
		}
		st, err = store.NewS3(ctx, store.S3Options{
			Endpoint:  appConfig.Store.Endpoint,
			Region:    appConfig.Store.Region,
			Bucket:    appConfig.Store.Bucket,
			AccessKey: appConfig.Store.AccessKey,
			SecretKey: appConfig.Store.SecretKey,
		})
	default:
		return nil, fmt.Errorf("unknown store backend %q", appConfig.Store.Backend)
	}
	if err != nil {
		return nil, err
	}

	if appConfig.Cache.Enabled {
		ttl := time.Duration(appConfig.Cache.TTLMinutes) * time.Minute
		st, err = store.NewCached(st, appConfig.Cache.Dir, ttl)
		if err != nil {
			return nil, err
		}
	}
	return st, nil
}
