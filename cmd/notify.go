package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/nhle/tgift/internal/backend"
	"github.com/nhle/tgift/internal/i18n"
)

var notifyCmd = &cobra.Command{
	Use:   "notify",
	Short: "Ask the backend to push a test alert",
	Args:  cobra.NoArgs,
	RunE:  runNotify,
}

func init() {
	notifyCmd.Flags().String("title", "", "Headline of the test alert (default is localized)")
	notifyCmd.Flags().String("message", "", "Body of the test alert (default is localized)")
}

func runNotify(cmd *cobra.Command, _ []string) error {
	rt, err := consoleRuntime(cmd)
	if err != nil {
		return err
	}
	defer rt.Close()

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	tr := i18n.New(rt.uiLanguage(ctx))
	title, _ := cmd.Flags().GetString("title")
	if title == "" {
		title = tr.T("testNotificationTitle")
	}
	message, _ := cmd.Flags().GetString("message")
	if message == "" {
		message = tr.T("testNotificationMessage")
	}

	n := backend.TestNotification(title, message, time.Now())
	if err := rt.client.SendTestNotification(ctx, n); err != nil {
		return fmt.Errorf("sending test alert: %w", err)
	}

	fmt.Fprintln(cmd.OutOrStdout(), tr.T("testNotificationSuccess"))
	return nil
}
