package controllers

import (
	"errors"
	"io/fs"

	logger "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/rios0rios0/submodsync/config"
	"github.com/rios0rios0/submodsync/internal/domain/entities"
)

// buildRuntimeContext constructs the RuntimeContext once per invocation
// from the config file (explicit, discovered, or defaults) plus CLI flag
// overrides. Components never read process globals themselves.
func buildRuntimeContext(cmd *cobra.Command) (entities.RuntimeContext, error) {
	configPath, _ := cmd.Flags().GetString("config")

	cfg, err := loadConfig(configPath)
	if err != nil {
		return entities.RuntimeContext{}, err
	}

	rc := cfg.RuntimeContext()

	if manifest, _ := cmd.Flags().GetString("manifest"); manifest != "" {
		rc.ManifestPath = manifest
	}
	if workspace, _ := cmd.Flags().GetString("workspace"); workspace != "" {
		rc.WorkspaceRoot = workspace
	}
	if token, _ := cmd.Flags().GetString("token"); token != "" {
		rc.Auth = entities.RemoteAuth{Token: token}
	}
	if verbose, _ := cmd.Flags().GetBool("verbose"); verbose {
		logger.SetLevel(logger.DebugLevel)
	}

	return rc, nil
}

// loadConfig resolves the effective configuration. An explicitly named file
// that fails to load is an error; absence of any config file is not.
func loadConfig(path string) (*config.Config, error) {
	if path != "" {
		return config.Load(path)
	}

	found, err := config.FindConfigFile()
	if err != nil {
		return config.Default(), nil
	}

	logger.Debugf("Using config file: %s", found)
	cfg, loadErr := config.Load(found)
	if loadErr != nil && errors.Is(loadErr, fs.ErrNotExist) {
		return config.Default(), nil
	}
	return cfg, loadErr
}
