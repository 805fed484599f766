package cmd

import (
	"fmt"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"
	"github.com/yi-nology/merchant_console/biz/dal/model"
	"github.com/yi-nology/merchant_console/biz/service"
)

var (
	journalLimit     int
	journalSysID     string
	journalRetention time.Duration
)

var journalCmd = &cobra.Command{
	Use:   "journal",
	Short: "Show the most recent console commands",
	Args:  cobra.NoArgs,
	RunE: withSession(func(cmd *cobra.Command, args []string, sess *session) error {
		var (
			records []model.ActionRecord
			err     error
		)
		if journalSysID != "" {
			records, err = sess.ctrl.JournalFor(cmd.Context(), journalSysID, journalLimit)
		} else {
			records, err = sess.ctrl.Journal(cmd.Context(), journalLimit)
		}
		if err != nil {
			return err
		}
		tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
		fmt.Fprintln(tw, "TIME\tCOMMAND\tSYS_ID\tOUTCOME\tMS\tOPERATOR\tMESSAGE")
		for _, r := range records {
			fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%d\t%s\t%s\n",
				r.CreatedAt.Local().Format(time.DateTime), r.Command, r.SysID, r.Outcome, r.DurationMs, r.Operator, firstLine(r.Message))
		}
		if err := tw.Flush(); err != nil {
			return err
		}
		counts, err := sess.journal.Outcomes(cmd.Context())
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "total: %s=%d %s=%d %s=%d\n",
			model.OutcomeOK, counts[model.OutcomeOK],
			model.OutcomeFailed, counts[model.OutcomeFailed],
			model.OutcomeIgnored, counts[model.OutcomeIgnored])
		return nil
	}),
}

var journalPruneCmd = &cobra.Command{
	Use:   "prune",
	Short: "Delete journal entries older than the retention window",
	Args:  cobra.NoArgs,
	RunE: withSession(func(cmd *cobra.Command, args []string, sess *session) error {
		if sess.journal == nil {
			return service.ErrJournalDisabled
		}
		removed, err := sess.journal.Prune(cmd.Context(), journalRetention)
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "removed %d journal entries older than %s\n", removed, journalRetention)
		return nil
	}),
}

func init() {
	rootCmd.AddCommand(journalCmd)
	journalCmd.AddCommand(journalPruneCmd)

	journalCmd.Flags().IntVarP(&journalLimit, "limit", "n", 20, "number of entries to show")
	journalCmd.Flags().StringVar(&journalSysID, "sys-id", "", "only entries that acted on this system id")
	journalPruneCmd.Flags().DurationVar(&journalRetention, "retention", 30*24*time.Hour, "keep entries younger than this")
}

func firstLine(s string) string {
	for i, r := range s {
		if r == '\n' {
			return s[:i] + " ..."
		}
	}
	return s
}
