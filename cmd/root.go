package cmd

import (
	"fmt"

	"sales_manager/internal/config"
	"sales_manager/internal/sales"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

// Version of the sales manager.
const Version = "1.0.0"

// RootOptions holds state shared by every subcommand.
type RootOptions struct {
	viper  *viper.Viper
	Config *config.Config
	Output string
}

// ValidOutputs lists the accepted --output values.
var ValidOutputs = []string{"table", "json", "yaml"}

// NewRootCommand creates the root command of the sales CLI.
func NewRootCommand() *cobra.Command {
	opts := &RootOptions{viper: viper.New()}
	config.SetDefaults(opts.viper)
	config.InitEnv(opts.viper)

	cmd := &cobra.Command{
		Use:   "sales",
		Short: "manage sale records",
		Long: fmt.Sprintf(`sales (v%s)

Keeps a list of sales (name and value) in a persisted slot and exposes it
through an HTTP API and a command line interface. Settings can be given as
flags or as SALES_<FLAG> environment variables (e.g. SALES_STORAGE=sqlite).`, Version),
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			if err := opts.viper.BindPFlags(cmd.Flags()); err != nil {
				return err
			}
			cfg, err := config.Load(opts.viper)
			if err != nil {
				return err
			}
			opts.Config = cfg
			return nil
		},
	}

	cmd.PersistentFlags().String("storage", config.StorageFile, "storage backend (memory|file|sqlite)")
	cmd.PersistentFlags().String("storage-path", "", "directory for the file backend or database file for sqlite")
	cmd.PersistentFlags().String("slot", sales.DefaultSlot, "storage key holding the sales collection")
	cmd.PersistentFlags().String("log-level", "info", "log level (debug, info, warn, error)")

	cmd.AddCommand(NewServeCommand(opts))
	cmd.AddCommand(NewListCommand(opts))
	cmd.AddCommand(NewAddCommand(opts))
	cmd.AddCommand(NewEditCommand(opts))
	cmd.AddCommand(NewDeleteCommand(opts))
	cmd.AddCommand(NewResetCommand(opts))
	cmd.AddCommand(&cobra.Command{
		Use:   "version",
		Short: "Print the version number",
		Run: func(cmd *cobra.Command, _ []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "sales v%s\n", Version)
		},
	})

	return cmd
}

// openService wires logger, storage and service from the loaded config.
// The returned func flushes the logger and closes the storage.
func (o *RootOptions) openService(cmd *cobra.Command) (*sales.Service, *zap.Logger, func(), error) {
	logger, err := o.Config.NewLogger()
	if err != nil {
		return nil, nil, nil, err
	}

	storage, closeStorage, err := o.Config.OpenStorage(cmd.Context(), logger)
	if err != nil {
		_ = logger.Sync()
		return nil, nil, nil, fmt.Errorf("unable to open %s storage: %w", o.Config.Storage, err)
	}

	svc := sales.NewService(storage, logger, sales.WithSlot(o.Config.Slot))
	cleanup := func() {
		closeStorage()
		_ = logger.Sync()
	}
	return svc, logger, cleanup, nil
}
