package controllers

import (
	"context"
	"fmt"

	logger "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/rios0rios0/gerritforge/internal/domain/entities"
	"github.com/rios0rios0/gerritforge/internal/infrastructure/repositories/gerrit"
)

// loadSettings reads the configuration named by --config, or the first one
// found in the default locations. Without a file the environment alone
// configures the run.
func loadSettings(ctx context.Context, cmd *cobra.Command) (*entities.Settings, error) {
	cfgPath, _ := cmd.Flags().GetString("config")
	if cfgPath == "" {
		found, err := entities.FindConfigFile()
		if err != nil {
			logger.Debugf("No config file, configuring from the environment: %v", err)
		}
		cfgPath = found
	}
	if cfgPath != "" {
		logger.Infof("Using config file: %s", cfgPath)
	}

	settings, err := entities.NewSettings(ctx, cfgPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	return settings, nil
}

// flushMetrics pushes the request metrics of this run when a Pushgateway
// is configured. Failures only warn.
func flushMetrics(ctx context.Context, settings *entities.Settings) {
	if settings.PushgatewayURL == "" {
		return
	}
	if err := gerrit.PushMetrics(ctx, settings.PushgatewayURL); err != nil {
		logger.Warnf("Could not push metrics: %v", err)
	}
}

func addRepositoryFlags(cmd *cobra.Command) {
	cmd.Flags().StringP("repository", "r", "", "Repository (project) name")
	cmd.Flags().StringP("branch", "b", "", "Logical branch, e.g. main%topic=deps")
	_ = cmd.MarkFlagRequired("repository")
}

func addChangeFlag(cmd *cobra.Command) {
	cmd.Flags().IntP("change", "n", 0, "Change number")
	_ = cmd.MarkFlagRequired("change")
}
