// stripe-migrate copies billing configuration (webhooks, products, plans,
// coupons and active subscriptions) from one Stripe account to another, and
// can cancel every subscription in an account.
package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/vocdoni/stripe-migrate/migrate"
	"github.com/vocdoni/stripe-migrate/stripe"
)

func main() {
	log := newLogger()
	defer func() { _ = log.Sync() }()

	root := newRootCommand(log)
	if err := root.Execute(); err != nil {
		// a single highlighted line, no stack trace
		log.Errorf("%v", err)
		os.Exit(1)
	}
}

// newLogger builds the console logger every command reports through.
func newLogger() *zap.SugaredLogger {
	config := zap.NewDevelopmentConfig()
	config.DisableCaller = true
	config.DisableStacktrace = true
	config.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
	logger, err := config.Build()
	if err != nil {
		fmt.Fprintf(os.Stderr, "could not create logger: %v\n", err)
		os.Exit(1)
	}
	return logger.Sugar()
}

func newRootCommand(log *zap.SugaredLogger) *cobra.Command {
	root := &cobra.Command{
		Use:           "stripe-migrate",
		Short:         "Migrate Stripe entities from one account to another",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.AddCommand(
		newMigrateCommand(log, "webhooks", "Migrate webhook endpoints to a new Stripe account",
			func(m *migrate.Migrator) error {
				_, err := m.WebhookEndpoints()
				return err
			}),
		newMigrateCommand(log, "products", "Migrate active products to a new Stripe account",
			func(m *migrate.Migrator) error {
				_, err := m.Products()
				return err
			}),
		newMigrateCommand(log, "plans", "Migrate active plans to a new Stripe account",
			func(m *migrate.Migrator) error {
				_, err := m.Plans()
				return err
			}),
		newMigrateCommand(log, "coupons", "Migrate non-expired coupons to a new Stripe account",
			func(m *migrate.Migrator) error {
				_, err := m.Coupons()
				return err
			}),
		newSubscriptionsCommand(log),
		newCancelCommand(log),
	)
	return root
}

// accountKeys reads and validates the --from/--to secret keys, falling back
// to the STRIPE_MIGRATE_FROM/STRIPE_MIGRATE_TO environment variables.
func accountKeys(cmd *cobra.Command) (from, to string, err error) {
	if err := viper.BindPFlags(cmd.Flags()); err != nil {
		return "", "", err
	}
	from = viper.GetString("from")
	to = viper.GetString("to")
	if from == "" {
		return "", "", fmt.Errorf("<from> argument is required")
	}
	if to == "" {
		return "", "", fmt.Errorf("<to> argument is required")
	}
	return from, to, nil
}

func newMigrateCommand(log *zap.SugaredLogger, use, short string, run func(*migrate.Migrator) error) *cobra.Command {
	cmd := &cobra.Command{
		Use:   use,
		Short: short,
		RunE: func(cmd *cobra.Command, _ []string) error {
			from, to, err := accountKeys(cmd)
			if err != nil {
				return err
			}
			return run(migrate.New(stripe.New(from), stripe.New(to), log))
		},
	}
	cmd.Flags().String("from", "", "Stripe secret key from the old account")
	cmd.Flags().String("to", "", "Stripe secret key from the new account")
	return cmd
}

func newSubscriptionsCommand(log *zap.SugaredLogger) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "subscriptions",
		Short: "Migrate active subscriptions to a new Stripe account",
		RunE: func(cmd *cobra.Command, _ []string) error {
			from, to, err := accountKeys(cmd)
			if err != nil {
				return err
			}
			opts := migrate.SubscriptionOptions{
				CustomerIDs:     splitIDs(viper.GetString("customerIds")),
				OmitCustomerIDs: splitIDs(viper.GetString("omitCustomerIds")),
				DryRun:          viper.GetBool("dry-run"),
			}
			m := migrate.New(stripe.New(from), stripe.New(to), log)
			_, err = m.Subscriptions(opts)
			return err
		},
	}
	cmd.Flags().String("from", "", "Stripe secret key from the old account")
	cmd.Flags().String("to", "", "Stripe secret key from the new account")
	cmd.Flags().String("customerIds", "", "Only migrate customers with these customer IDs (comma separated)")
	cmd.Flags().String("omitCustomerIds", "", "Omit customers with these customer IDs (comma separated)")
	cmd.Flags().Bool("dry-run", false, "Mock customers from the old account and simulate on the new")
	return cmd
}

func newCancelCommand(log *zap.SugaredLogger) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cancel-subscriptions",
		Short: "Cancel all subscriptions in an account",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := viper.BindPFlags(cmd.Flags()); err != nil {
				return err
			}
			key := viper.GetString("key")
			if key == "" {
				return fmt.Errorf("<key> argument is required")
			}
			return migrate.CancelSubscriptions(log, stripe.New(key))
		},
	}
	cmd.Flags().String("key", "", "Stripe secret key for the account")
	return cmd
}

// splitIDs parses a comma-separated flag value, dropping empty entries.
func splitIDs(value string) []string {
	var ids []string
	for _, id := range strings.Split(value, ",") {
		if id = strings.TrimSpace(id); id != "" {
			ids = append(ids, id)
		}
	}
	return ids
}

func init() {
	viper.SetEnvPrefix("STRIPE_MIGRATE")
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	viper.AutomaticEnv()
}
