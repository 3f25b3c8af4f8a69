package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/nhle/tgift/internal/credential"
	"github.com/nhle/tgift/internal/i18n"
)

var registerCmd = &cobra.Command{
	Use:   "register",
	Short: "Register this device for push alerts",
	Long: `Register this device with the backend using the stored push token.

Examples:
  tgift register
  tgift register --token ExponentPushToken[xxxxxxxx]
  tgift register --list`,
	Args: cobra.NoArgs,
	RunE: runRegister,
}

func init() {
	registerCmd.Flags().String("token", "", "Store this push token in the keyring before registering")
	registerCmd.Flags().Bool("list", false, "List registered devices instead of registering")
}

func runRegister(cmd *cobra.Command, _ []string) error {
	rt, err := consoleRuntime(cmd)
	if err != nil {
		return err
	}
	defer rt.Close()

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	out := cmd.OutOrStdout()

	if list, _ := cmd.Flags().GetBool("list"); list {
		devices, err := rt.registrar.Devices(ctx)
		if err != nil {
			return fmt.Errorf("listing devices: %w", err)
		}
		for _, d := range devices {
			fmt.Fprintf(out, "%s\t%s\t%s\n", d.ID, d.Name, d.RegisteredAt.Format(time.RFC3339))
		}
		return nil
	}

	if token, _ := cmd.Flags().GetString("token"); strings.TrimSpace(token) != "" {
		if err := rt.creds.Set(credential.KeyPushToken, strings.TrimSpace(token)); err != nil {
			return fmt.Errorf("storing push token: %w", err)
		}
	}

	tr := i18n.New(rt.uiLanguage(ctx))
	res, err := rt.registrar.Register(ctx)
	if err != nil {
		return fmt.Errorf("%s: %w", tr.T("deviceRegistrationFailed"), err)
	}
	if res.Skipped {
		fmt.Fprintln(out, tr.T("registrationSkipped", i18n.Vars{"reason": res.Token}))
		return nil
	}

	fmt.Fprintln(out, tr.T("deviceRegistered"))
	fmt.Fprintf(out, "Device ID: %s\n", res.DeviceID)
	return nil
}
