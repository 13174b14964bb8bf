package main

import (
	"os"

	logger "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/rios0rios0/submodsync/internal"
)

type flagAdder interface {
	AddFlags(cmd *cobra.Command)
}

func buildRootCommand() *cobra.Command {
	//nolint:exhaustruct // Minimal Command initialization with required fields only
	cmd := &cobra.Command{
		Use:   "submodsync",
		Short: "Selective submodule access checker and initializer",
		Long: `A CLI tool that reconciles a declared manifest of git submodules
against remote accessibility and local checkout state.

It probes each remote without transferring content, inspects the
on-disk checkouts, and materializes or updates only the subset that
is both accessible and safe to touch. Checkouts with uncommitted
local changes are never overwritten implicitly.

Commands:
  check-access     Probe all declared remotes and report accessibility
  init-accessible  Materialize the accessible, safe subset
  diagnose         Explain access and checkout problems with fix suggestions`,
		RunE: func(command *cobra.Command, _ []string) error {
			return command.Help()
		},
	}

	// Global persistent flags
	cmd.PersistentFlags().StringP("config", "c", "",
		"Path to config file (default: auto-detect)")
	cmd.PersistentFlags().String("manifest", "",
		"Path to the submodule manifest (.gitmodules or YAML; overrides config)")
	cmd.PersistentFlags().String("workspace", "",
		"Workspace root the checkouts live under (overrides config)")
	cmd.PersistentFlags().String("token", "",
		"Auth token for HTTPS remotes")
	cmd.PersistentFlags().BoolP("verbose", "v", false,
		"Enable verbose output")

	return cmd
}

func addSubcommands(rootCmd *cobra.Command, appContext *internal.AppContext) {
	for _, controller := range appContext.GetControllers() {
		bind := controller.GetBind()
		ctrl := controller // capture for closure
		//nolint:exhaustruct // Minimal Command initialization with required fields only
		subCmd := &cobra.Command{
			Use:           bind.Use,
			Short:         bind.Short,
			Long:          bind.Long,
			SilenceUsage:  true,
			SilenceErrors: true,
			RunE: func(command *cobra.Command, arguments []string) error {
				return ctrl.Execute(command, arguments)
			},
		}

		// Add controller-specific flags
		if adder, ok := ctrl.(flagAdder); ok {
			adder.AddFlags(subCmd)
		}

		rootCmd.AddCommand(subCmd)
	}
}

func main() {
	//nolint:exhaustruct // Minimal TextFormatter initialization with required fields only
	logger.SetFormatter(&logger.TextFormatter{
		ForceColors:   true,
		FullTimestamp: true,
	})
	if os.Getenv("DEBUG") == "true" {
		logger.SetLevel(logger.DebugLevel)
	}

	cobraRoot := buildRootCommand()

	// Inject controllers via DIG
	appContext := injectAppContext()
	addSubcommands(cobraRoot, appContext)

	if err := cobraRoot.Execute(); err != nil {
		logger.Errorf("%s", err)
		os.Exit(1)
	}
}
