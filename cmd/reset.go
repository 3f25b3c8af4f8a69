package cmd

import (
	"context"
	"errors"
	"fmt"

	"github.com/charmbracelet/huh"
	"github.com/spf13/cobra"

	"github.com/nhle/tgift/internal/credential"
	"github.com/nhle/tgift/internal/i18n"
)

var resetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Clear cached alerts, settings and device registration",
	Args:  cobra.NoArgs,
	RunE:  runReset,
}

func init() {
	resetCmd.Flags().BoolP("yes", "y", false, "Skip the confirmation prompt")
}

func runReset(cmd *cobra.Command, _ []string) error {
	rt, err := consoleRuntime(cmd)
	if err != nil {
		return err
	}
	defer rt.Close()

	ctx := context.Background()
	tr := i18n.New(rt.uiLanguage(ctx))

	if yes, _ := cmd.Flags().GetBool("yes"); !yes {
		confirmed := false
		form := huh.NewForm(huh.NewGroup(
			huh.NewConfirm().
				Title(tr.T("clearDataTitle")).
				Description(tr.T("clearDataMessage")).
				Affirmative(tr.T("resetApp")).
				Negative(tr.T("cancel")).
				Value(&confirmed),
		))
		if err := form.Run(); err != nil {
			return err
		}
		if !confirmed {
			return nil
		}
	}

	if _, err := rt.settings.ClearAll(ctx); err != nil {
		return fmt.Errorf("%s: %w", tr.T("appResetFailed"), err)
	}
	if err := rt.creds.Delete(credential.KeyPushToken); err != nil && !errors.Is(err, credential.ErrNotFound) {
		return fmt.Errorf("removing push token: %w", err)
	}

	fmt.Fprintln(cmd.OutOrStdout(), tr.T("appResetSuccess"))
	return nil
}
