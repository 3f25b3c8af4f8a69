package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/nhle/tgift/internal/feed"
	"github.com/nhle/tgift/internal/i18n"
	"github.com/nhle/tgift/internal/model"
)

var fetchCmd = &cobra.Command{
	Use:   "fetch",
	Short: "Fetch alerts once and print the newest",
	Long: `Fetch the alert list from the backend, merge it into the local cache
and print the newest alerts. When the backend cannot be reached the
failure is logged and the cached alerts are printed.

Examples:
  tgift fetch
  tgift fetch --format json
  tgift fetch --format yaml --offline`,
	Args: cobra.NoArgs,
	RunE: runFetch,
}

func init() {
	fetchCmd.Flags().String("format", "table", "Output format: table, json or yaml")
	fetchCmd.Flags().Bool("offline", false, "Print the cached alerts without contacting the backend")
}

func runFetch(cmd *cobra.Command, _ []string) error {
	format, _ := cmd.Flags().GetString("format")
	offline, _ := cmd.Flags().GetBool("offline")

	switch format {
	case "table", "json", "yaml":
	default:
		return fmt.Errorf("unknown format %q (want table, json or yaml)", format)
	}

	rt, err := consoleRuntime(cmd)
	if err != nil {
		return err
	}
	defer rt.Close()

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	list := rt.cache.Load(ctx)
	if !offline {
		// A failed fetch is logged and the cached list is printed as is.
		merged := rt.fetcher.Fetch(ctx, list)
		rt.logger.Debug().Int("new", feed.NewCount(list, merged)).Msg("fetched")
		list = merged
	}

	if len(list) > model.MaxDisplayed {
		list = list[:model.MaxDisplayed]
	}

	out := cmd.OutOrStdout()
	switch format {
	case "json":
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(list)
	case "yaml":
		enc := yaml.NewEncoder(out)
		enc.SetIndent(2)
		defer enc.Close()
		return enc.Encode(list)
	default:
		tr := i18n.New(rt.uiLanguage(ctx))
		return writeTable(out, tr, list, time.Now())
	}
}

// writeTable renders list as a bordered table with relative times.
func writeTable(w io.Writer, tr *i18n.Translator, list []model.Notification, now time.Time) error {
	if len(list) == 0 {
		_, err := fmt.Fprintf(w, "%s\n%s\n", tr.T("noGiftNews"), tr.T("noGiftNewsDesc"))
		return err
	}

	rows := make([][]string, 0, len(list))
	for _, n := range list {
		rows = append(rows, []string{
			tr.RelativeTime(n.Time(), now),
			n.Title(),
			n.Message,
		})
	}

	t := table.New().
		Border(lipgloss.NormalBorder()).
		Headers("WHEN", "TITLE", "MESSAGE").
		Rows(rows...)

	_, err := fmt.Fprintln(w, t.Render())
	return err
}
