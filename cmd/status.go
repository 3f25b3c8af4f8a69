package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
)

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Check whether the backend is reachable",
	Long: `Run one health check against the backend and print its status.

Exits with code 1 when the backend is not connected.`,
	Args: cobra.NoArgs,
	RunE: runStatus,
}

// errDisconnected makes the command exit non-zero without extra output.
var errDisconnected = &exitError{code: 1}

type exitError struct{ code int }

func (e *exitError) Error() string { return fmt.Sprintf("exit status %d", e.code) }

func runStatus(cmd *cobra.Command, _ []string) error {
	rt, err := consoleRuntime(cmd)
	if err != nil {
		return err
	}
	defer rt.Close()

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	st := rt.prober.Probe(ctx)

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Backend:  %s\n", rt.client.BaseURL())
	fmt.Fprintf(out, "Status:   %s\n", st.Label)
	if st.HTTPStatus != 0 {
		fmt.Fprintf(out, "HTTP:     %d\n", st.HTTPStatus)
	}
	if st.Telegram != nil {
		fmt.Fprintf(out, "Telegram: %t\n", *st.Telegram)
	}

	if !st.Connected {
		return errDisconnected
	}
	return nil
}
