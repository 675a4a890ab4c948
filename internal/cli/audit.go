package cli

import (
	"fmt"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"storefront/internal/config"
	"storefront/internal/database"
	"storefront/internal/pkg/format"
	"storefront/internal/repository"
)

func newAuditCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "audit",
		Short: "Inspect and prune recorded checkout attempts",
	}
	cmd.AddCommand(newAuditPruneCmd())
	cmd.AddCommand(newAuditListCmd())
	return cmd
}

func openAttempts() (*config.Config, *repository.CheckoutAttemptRepository, func(), error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, nil, nil, err
	}
	db, err := database.Connect(cfg.DatabaseURL, zap.NewNop())
	if err != nil {
		return nil, nil, nil, fmt.Errorf("db connect: %w", err)
	}
	if err := repository.Migrate(db); err != nil {
		return nil, nil, nil, fmt.Errorf("migrate: %w", err)
	}
	closeDB := func() {
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	}
	return cfg, repository.NewCheckoutAttemptRepository(db), closeDB, nil
}

func newAuditPruneCmd() *cobra.Command {
	var olderThan time.Duration

	cmd := &cobra.Command{
		Use:   "prune",
		Short: "Delete checkout attempts older than the retention window",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, repo, closeDB, err := openAttempts()
			if err != nil {
				return err
			}
			defer closeDB()

			retention := cfg.AuditRetention
			if olderThan > 0 {
				retention = olderThan
			}

			n, err := repo.DeleteOlderThan(cmd.Context(), time.Now().Add(-retention))
			if err != nil {
				return fmt.Errorf("prune checkout attempts: %w", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "audit prune completed: checkout_attempts=%d\n", n)
			return nil
		},
	}

	cmd.Flags().DurationVar(&olderThan, "older-than", 0, "retention window (defaults to AUDIT_RETENTION)")
	return cmd
}

func newAuditListCmd() *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "list",
		Short: "Show the most recent checkout attempts",
		RunE: func(cmd *cobra.Command, args []string) error {
			_, repo, closeDB, err := openAttempts()
			if err != nil {
				return err
			}
			defer closeDB()

			rows, err := repo.ListRecent(cmd.Context(), limit)
			if err != nil {
				return fmt.Errorf("list checkout attempts: %w", err)
			}

			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "CREATED\tEXPERIENCE\tSLOT\tEMAIL\tGUESTS\tTOTAL\tRESULT")
			for _, a := range rows {
				result := "failed: " + a.ErrorMessage
				if a.Success && a.BookingID != nil {
					result = fmt.Sprintf("booking #%d", *a.BookingID)
				}
				fmt.Fprintf(w, "%s\t%d\t%d\t%s\t%d\t%s\t%s\n",
					a.CreatedAt.Format(time.RFC3339), a.ExperienceID, a.SlotID,
					a.CustomerEmail, a.NumberOfGuests, format.Money(a.Total), result)
			}
			return w.Flush()
		},
	}

	cmd.Flags().IntVar(&limit, "limit", 50, "number of attempts to show")
	return cmd
}
