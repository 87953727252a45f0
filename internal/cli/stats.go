package cli

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/mamadbah2/suraksha/internal/repository/sheets"
	"github.com/mamadbah2/suraksha/internal/scheduler"
	"github.com/mamadbah2/suraksha/internal/service/reporting"
	whatsappsvc "github.com/mamadbah2/suraksha/internal/service/whatsapp"
	whatsappclient "github.com/mamadbah2/suraksha/pkg/clients/whatsapp"
)

func init() {
	rootCmd.AddCommand(statsCmd)
	rootCmd.AddCommand(historyCmd)
	rootCmd.AddCommand(reportCmd)

	statsCmd.Flags().String("month", "", "Month to summarize (YYYY-MM); defaults to the current month")
	reportCmd.Flags().Bool("send", false, "Deliver the report to the owner on WhatsApp and export to Google Sheets")
}

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show income and customers for a month",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		month, _ := cmd.Flags().GetString("month")
		if month != "" {
			if _, err := time.Parse("2006-01", month); err != nil {
				return fmt.Errorf("month must be formatted as YYYY-MM")
			}
		}

		s, err := openSession(cmd)
		if err != nil {
			return err
		}
		defer s.Close()

		stats := s.store.CurrentMonthStats(time.Now().In(s.cfg.Reporting.Location()))
		if month != "" {
			stats = s.store.StatsForMonth(month)
		}
		fmt.Fprintln(cmd.OutOrStdout(), reporting.FormatStats(stats))
		return nil
	},
}

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Show totals for every month with records",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		s, err := openSession(cmd)
		if err != nil {
			return err
		}
		defer s.Close()

		fmt.Fprintln(cmd.OutOrStdout(), reporting.FormatHistory(s.store.MonthlyHistory()))
		return nil
	},
}

var reportCmd = &cobra.Command{
	Use:   "report",
	Short: "Print the business report, optionally sending it",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		s, err := openSession(cmd)
		if err != nil {
			return err
		}
		defer s.Close()

		reportingSvc := reporting.NewService(s.store, nil, s.logger.Named("svc.reporting"))
		send, _ := cmd.Flags().GetBool("send")
		if !send {
			fmt.Fprintln(cmd.OutOrStdout(), reportingSvc.BuildMonthlyReport(time.Now().In(s.cfg.Reporting.Location())))
			return nil
		}

		if !s.cfg.WhatsApp.Enabled() || s.cfg.WhatsApp.OwnerID == "" {
			return fmt.Errorf("sending needs WHATSAPP_TOKEN, WHATSAPP_PHONE_NUMBER_ID and WHATSAPP_OWNER_ID")
		}
		if s.cfg.Sheets.Enabled() {
			sheetsRepo, err := sheets.NewGoogleSheetRepository(cmd.Context(), s.cfg.Sheets, s.logger.Named("repo.sheets"))
			if err != nil {
				return err
			}
			reportingSvc = reporting.NewService(s.store, sheetsRepo, s.logger.Named("svc.reporting"))
		}
		messaging := whatsappsvc.NewMetaWhatsAppService(s.cfg.WhatsApp, whatsappclient.NewClient(s.cfg.WhatsApp), nil, s.logger.Named("svc.whatsapp"))
		sched := scheduler.NewScheduler(*s.cfg, reportingSvc, messaging, s.logger.Named("scheduler"))
		if err := sched.SendReport(cmd.Context()); err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), "Report sent")
		return nil
	},
}
