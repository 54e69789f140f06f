package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"text/tabwriter"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"revenue-advance/internal/adapter/csvin"
	"revenue-advance/internal/config"
	"revenue-advance/internal/domain/loan"
	"revenue-advance/internal/infrastructure/db"
	portfoliouc "revenue-advance/internal/usecase/portfolio"
)

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func scoreCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "score [file.csv]",
		Short: "Score a transaction ledger offline, nothing is stored",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := os.Open(args[0])
			if err != nil {
				return err
			}
			defer f.Close()

			records, err := csvin.Read(f)
			if err != nil {
				return err
			}
			dto, err := portfoliouc.Evaluate(records)
			if err != nil {
				return err
			}
			return writeJSON(cmd.OutOrStdout(), dto)
		},
	}
}

func scheduleCmd() *cobra.Command {
	var asJSON bool
	cmd := &cobra.Command{
		Use:   "schedule [amount]",
		Short: "Print the repayment schedule for an approved amount",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			amount, err := decimal.NewFromString(args[0])
			if err != nil || !amount.IsPositive() {
				return fmt.Errorf("amount must be a positive number, got %q", args[0])
			}
			sched := loan.RepaymentSchedule(amount)
			if asJSON {
				return writeJSON(cmd.OutOrStdout(), sched)
			}

			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "MONTH\tAMOUNT DUE")
			total := decimal.Zero
			for _, in := range sched {
				fmt.Fprintf(tw, "%d\t%s\n", in.Month, in.AmountDue.StringFixed(2))
				total = total.Add(in.AmountDue)
			}
			fmt.Fprintf(tw, "TOTAL\t%s\n", total.StringFixed(2))
			return tw.Flush()
		},
	}
	cmd.Flags().BoolVarP(&asJSON, "json", "j", false, "output as JSON")
	return cmd
}

func migrateCmd() *cobra.Command {
	var envFile, driver, sqlitePath string
	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Create or update the database schema for the configured DB_DRIVER",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := config.LoadDotEnv(envFile); err != nil {
				return err
			}
			cfg := config.Load()
			if driver != "" {
				cfg.DBDriver = driver
			}
			if sqlitePath != "" {
				cfg.SQLitePath = sqlitePath
			}
			if err := cfg.Validate(); err != nil {
				return err
			}

			gdb, err := db.OpenGorm(cfg)
			if err != nil {
				return fmt.Errorf("open database: %w", err)
			}
			sqlDB, err := gdb.DB()
			if err != nil {
				return err
			}
			defer sqlDB.Close()

			if err := db.AutoMigrate(gdb); err != nil {
				return fmt.Errorf("auto-migrate: %w", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "schema up to date (%s)\n", cfg.DBDriver)
			return nil
		},
	}
	cmd.Flags().StringVar(&envFile, "env-file", ".env", "dotenv file to load if present")
	cmd.Flags().StringVar(&driver, "driver", "", "override DB_DRIVER (mysql or sqlite)")
	cmd.Flags().StringVar(&sqlitePath, "sqlite-path", "", "override SQLITE_PATH")
	return cmd
}
