// Package commands implements the saur-cli command tree.
package commands

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	client "github.com/peteraglen/saur-go-client"
	"github.com/peteraglen/saur-go-client/internal/config"
	"github.com/peteraglen/saur-go-client/internal/credentials"
)

type fetchFunc func(ctx context.Context, c *client.Client) (map[string]any, error)

// NewRootCommand builds the saur-cli command tree.
func NewRootCommand(cfg *config.Config, logger *zap.Logger, version string) *cobra.Command {
	root := &cobra.Command{
		Use:          "saur-cli",
		Short:        "Query SAUR water consumption data",
		Version:      version,
		SilenceUsage: true,
	}

	root.PersistentFlags().StringVar(&cfg.CredentialsFile, "credentials", cfg.CredentialsFile, "Path to the credentials file")
	root.PersistentFlags().BoolVar(&cfg.DevMode, "dev", cfg.DevMode, "Target the local development API")

	root.AddCommand(
		&cobra.Command{
			Use:   "weekly YEAR MONTH DAY",
			Short: "Consumption of the week containing the given day",
			Args:  cobra.ExactArgs(3),
			RunE: func(cmd *cobra.Command, args []string) error {
				n, err := parseInts(args)
				if err != nil {
					return err
				}
				return run(cmd, cfg, logger, func(ctx context.Context, c *client.Client) (map[string]any, error) {
					return c.GetWeeklyData(ctx, n[0], n[1], n[2])
				})
			},
		},
		&cobra.Command{
			Use:   "monthly YEAR MONTH",
			Short: "Consumption of the given month",
			Args:  cobra.ExactArgs(2),
			RunE: func(cmd *cobra.Command, args []string) error {
				n, err := parseInts(args)
				if err != nil {
					return err
				}
				return run(cmd, cfg, logger, func(ctx context.Context, c *client.Client) (map[string]any, error) {
					return c.GetMonthlyData(ctx, n[0], n[1])
				})
			},
		},
		&cobra.Command{
			Use:   "last",
			Short: "Last known meter index",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, _ []string) error {
				return run(cmd, cfg, logger, func(ctx context.Context, c *client.Client) (map[string]any, error) {
					return c.GetLastKnownData(ctx)
				})
			},
		},
		&cobra.Command{
			Use:   "delivery-points",
			Short: "Delivery points of the subscription",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, _ []string) error {
				return run(cmd, cfg, logger, func(ctx context.Context, c *client.Client) (map[string]any, error) {
					return c.GetDeliveryPointsData(ctx)
				})
			},
		},
	)

	return root
}

// run loads the credentials, performs fetch, prints the result as JSON and
// writes the refreshed token and section id back to the credentials file.
func run(cmd *cobra.Command, cfg *config.Config, logger *zap.Logger, fetch fetchFunc) error {
	creds, err := credentials.Load(cfg.CredentialsFile)
	if err != nil {
		return err
	}

	opts := []client.Option{
		client.WithToken(creds.Token),
		client.WithSectionID(creds.UniqueID),
		client.WithDevMode(cfg.DevMode),
		client.WithBaseURL(cfg.BaseURL),
		client.WithRequestTimeout(cfg.Timeout),
		client.WithMaxRetries(cfg.MaxRetries),
		client.WithRequestLogger(client.NewZapLogger(logger)),
	}

	var data map[string]any

	err = client.WithClient(cmd.Context(), creds.Login, creds.Password, func(ctx context.Context, c *client.Client) error {
		var fetchErr error
		data, fetchErr = fetch(ctx, c)

		// A token obtained before a failing data call is still worth keeping.
		if c.Token() != creds.Token || c.SectionID() != creds.UniqueID {
			creds.Token = c.Token()
			creds.UniqueID = c.SectionID()

			if saveErr := credentials.Save(cfg.CredentialsFile, creds); saveErr != nil {
				logger.Warn("saur.credentials_save_failed", zap.Error(saveErr))
			} else {
				logger.Debug("saur.credentials_saved", zap.String("file", cfg.CredentialsFile))
			}
		}

		return fetchErr
	}, opts...)
	if err != nil {
		return err
	}

	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")

	return enc.Encode(data)
}

func parseInts(args []string) ([]int, error) {
	out := make([]int, len(args))

	for i, a := range args {
		n, err := strconv.Atoi(a)
		if err != nil {
			return nil, fmt.Errorf("argument %q is not an integer", a)
		}
		out[i] = n
	}

	return out, nil
}
