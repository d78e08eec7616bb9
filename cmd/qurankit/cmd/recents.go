package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/qurankit/qurankit/internal/config"
	"github.com/qurankit/qurankit/internal/recents"
)

func newRecentsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "recents",
		Short: "Manage recent searches",
		Long: `List or clear the recent search queries recorded by
'qurankit search' and the interactive suggest prompt.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runRecentsList(cmd)
		},
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "clear",
		Short: "Clear recent searches",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runRecentsClear(cmd)
		},
	})

	return cmd
}

func openRecents() (*recents.List, error) {
	cfg, err := config.Load(dataDir)
	if err != nil {
		return nil, err
	}
	return recents.New(cfg.RecentsPath(), cfg.Recents.MaxEntries), nil
}

func runRecentsList(cmd *cobra.Command) error {
	list, err := openRecents()
	if err != nil {
		return err
	}

	entries, err := list.Entries()
	if err != nil {
		return fmt.Errorf("failed to read recent searches: %w", err)
	}
	if len(entries) == 0 {
		fmt.Fprintln(cmd.OutOrStdout(), "no recent searches")
		return nil
	}

	for _, e := range entries {
		fmt.Fprintf(cmd.OutOrStdout(), "%s  %s\n", e.At.Local().Format("2006-01-02 15:04"), e.Query)
	}
	return nil
}

func runRecentsClear(cmd *cobra.Command) error {
	list, err := openRecents()
	if err != nil {
		return err
	}
	if err := list.Clear(); err != nil {
		return fmt.Errorf("failed to clear recent searches: %w", err)
	}
	fmt.Fprintln(cmd.OutOrStdout(), "recent searches cleared")
	return nil
}
