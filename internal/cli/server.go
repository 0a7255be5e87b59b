package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/rlam13/tio/internal/output"
)

var serverCmd = &cobra.Command{
	Use:   "server",
	Short: "Show Tenable.io server properties and status",
	RunE:  runServer,
}

func runServer(cmd *cobra.Command, args []string) error {
	client, err := newClient(cmd)
	if err != nil {
		return err
	}

	ctx := cmd.Context()
	out := cmd.OutOrStdout()

	props, err := client.ServerProperties(ctx)
	if err != nil {
		return err
	}
	fmt.Fprintln(out)
	fmt.Fprintln(out, "SERVER PROPERTIES:")
	if err := output.JSON(out, props); err != nil {
		return fmt.Errorf("printing server properties: %w", err)
	}

	status, err := client.ServerStatus(ctx)
	if err != nil {
		return err
	}
	fmt.Fprintln(out)
	fmt.Fprintln(out, "SERVER STATUS:")
	fmt.Fprintln(out, status.Status)
	fmt.Fprintln(out)

	return nil
}
