package cmd

import (
	"fmt"
	"slices"

	"sales_manager/internal/sales"

	"github.com/spf13/cobra"
)

// NewListCommand prints the collection.
func NewListCommand(opts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List all sales",
		Args:  cobra.NoArgs,
		PreRunE: func(_ *cobra.Command, _ []string) error {
			if !slices.Contains(ValidOutputs, opts.Output) {
				return fmt.Errorf("invalid output %q: must be one of %v", opts.Output, ValidOutputs)
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, _ []string) error {
			svc, _, cleanup, err := opts.openService(cmd)
			if err != nil {
				return err
			}
			defer cleanup()

			list, err := svc.Load()
			if err != nil {
				return err
			}
			return writeSales(cmd.OutOrStdout(), opts.Output, list)
		},
	}
	cmd.Flags().StringVarP(&opts.Output, "output", "o", "table", "output format (table|json|yaml)")
	return cmd
}

// NewAddCommand creates a sale.
func NewAddCommand(opts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "add NAME VALUE",
		Short: "Add a new sale",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return opts.mutate(cmd, func(svc *sales.Service) ([]sales.Sale, error) {
				return svc.CreateSale(args[0], args[1])
			}, "Salvo com sucesso!")
		},
	}
}

// NewEditCommand updates an existing sale.
func NewEditCommand(opts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "edit ID NAME VALUE",
		Short: "Change name and value of a sale",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			return opts.mutate(cmd, func(svc *sales.Service) ([]sales.Sale, error) {
				return svc.UpdateSale(args[0], args[1], args[2])
			}, "Alterações salvas com sucesso!")
		},
	}
}

// NewDeleteCommand removes a sale.
func NewDeleteCommand(opts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "delete ID",
		Short: "Delete a sale",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return opts.mutate(cmd, func(svc *sales.Service) ([]sales.Sale, error) {
				return svc.DeleteSale(args[0])
			}, "Venda excluída com sucesso!")
		},
	}
}

// NewResetCommand restores the sample data.
func NewResetCommand(opts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "reset",
		Short: "Replace all sales with the sample data",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return opts.mutate(cmd, func(svc *sales.Service) ([]sales.Sale, error) {
				return svc.Reset()
			}, "Dados de exemplo restaurados.")
		},
	}
}

func (o *RootOptions) mutate(cmd *cobra.Command, op func(*sales.Service) ([]sales.Sale, error), done string) error {
	svc, _, cleanup, err := o.openService(cmd)
	if err != nil {
		return err
	}
	defer cleanup()

	list, err := op(svc)
	if err != nil {
		return describeError(err)
	}

	fmt.Fprintln(cmd.OutOrStdout(), done)
	return writeSales(cmd.OutOrStdout(), "table", list)
}
