package cli

import (
	"fmt"
	"io"
	"text/tabwriter"
	"time"

	"github.com/gin-gonic/gin/binding"
	"github.com/spf13/cobra"

	"github.com/mamadbah2/suraksha/internal/domain/models"
)

func init() {
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(addCmd)
	rootCmd.AddCommand(updateCmd)
	rootCmd.AddCommand(deleteCmd)
	rootCmd.AddCommand(searchCmd)

	for _, cmd := range []*cobra.Command{addCmd, updateCmd} {
		cmd.Flags().String("name", "", "Customer name")
		cmd.Flags().String("phone", "", "Customer phone number")
		cmd.Flags().String("address", "", "Service address")
		cmd.Flags().String("date", "", "Service date (YYYY-MM-DD)")
		cmd.Flags().String("type", "", "Service type: sump, tank or both")
		cmd.Flags().Float64("price", 0, "Amount charged")
		cmd.Flags().String("notes", "", "Free-form notes")
	}
}

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List all service records, newest first",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		s, err := openSession(cmd)
		if err != nil {
			return err
		}
		defer s.Close()

		printRecords(cmd.OutOrStdout(), s.store.List())
		return nil
	},
}

var searchCmd = &cobra.Command{
	Use:   "search QUERY",
	Short: "Find records by name, phone or address",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := openSession(cmd)
		if err != nil {
			return err
		}
		defer s.Close()

		found := s.store.Search(args[0])
		if len(found) == 0 {
			fmt.Fprintf(cmd.OutOrStdout(), "No records match %q\n", args[0])
			return nil
		}
		printRecords(cmd.OutOrStdout(), found)
		return nil
	},
}

var addCmd = &cobra.Command{
	Use:   "add",
	Short: "Record a completed service",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}

		flags := cmd.Flags()
		input := models.RecordInput{}
		input.Name, _ = flags.GetString("name")
		input.Phone, _ = flags.GetString("phone")
		input.Address, _ = flags.GetString("address")
		input.ServiceDate, _ = flags.GetString("date")
		serviceType, _ := flags.GetString("type")
		input.ServiceType = models.ServiceType(serviceType)
		input.Price, _ = flags.GetFloat64("price")
		input.Notes, _ = flags.GetString("notes")
		if input.ServiceDate == "" {
			input.ServiceDate = time.Now().In(cfg.Reporting.Location()).Format("2006-01-02")
		}

		if err := binding.Validator.ValidateStruct(&input); err != nil {
			return fmt.Errorf("invalid record: %w", err)
		}

		s, err := openSessionWith(cmd, cfg)
		if err != nil {
			return err
		}
		defer s.Close()

		record := s.store.Create(cmd.Context(), input)
		fmt.Fprintf(cmd.OutOrStdout(), "Saved %s (%s)\n", record.Name, record.ID)
		return nil
	},
}

var updateCmd = &cobra.Command{
	Use:   "update ID",
	Short: "Change fields of an existing record",
	Long:  `Only the flags given on the command line are changed.`,
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		patch := patchFromFlags(cmd)
		if patch.Empty() {
			return fmt.Errorf("nothing to update: pass at least one field flag")
		}
		if err := binding.Validator.ValidateStruct(&patch); err != nil {
			return fmt.Errorf("invalid update: %w", err)
		}

		s, err := openSession(cmd)
		if err != nil {
			return err
		}
		defer s.Close()

		if err := s.store.Update(cmd.Context(), args[0], patch); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Updated %s\n", args[0])
		return nil
	},
}

var deleteCmd = &cobra.Command{
	Use:   "delete ID",
	Short: "Remove a record",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := openSession(cmd)
		if err != nil {
			return err
		}
		defer s.Close()

		if err := s.store.Delete(cmd.Context(), args[0]); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Deleted %s\n", args[0])
		return nil
	},
}

func patchFromFlags(cmd *cobra.Command) models.RecordPatch {
	flags := cmd.Flags()
	var patch models.RecordPatch

	str := func(name string) *string {
		if !flags.Changed(name) {
			return nil
		}
		v, _ := flags.GetString(name)
		return &v
	}
	patch.Name = str("name")
	patch.Phone = str("phone")
	patch.Address = str("address")
	patch.ServiceDate = str("date")
	patch.Notes = str("notes")
	if v := str("type"); v != nil {
		t := models.ServiceType(*v)
		patch.ServiceType = &t
	}
	if flags.Changed("price") {
		v, _ := flags.GetFloat64("price")
		patch.Price = &v
	}
	return patch
}

func printRecords(w io.Writer, list []models.ServiceRecord) {
	tw := tabwriter.NewWriter(w, 0, 8, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tNAME\tPHONE\tADDRESS\tDATE\tTYPE\tPRICE")
	for _, r := range list {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\t%s\t%g\n", r.ID, r.Name, r.Phone, r.Address, r.ServiceDate, r.ServiceType, r.Price)
	}
	_ = tw.Flush()
}
