package cmd

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/mpago/go-mpago/config"
	"github.com/mpago/go-mpago/filter"
	"github.com/mpago/go-mpago/mercadopago"
	"github.com/mpago/go-mpago/payments"
)

var (
	cfgFile string
	cfg     *config.Config
	logger  zerolog.Logger
	client  *mercadopago.Client

	appVersion   = "dev"
	appBuildTime = "unknown"

	// Command flags
	filterExpr string
	preset     string
	dryRun     bool
	noConfirm  bool
	beginDate  string
	endDate    string

	createAmount      float64
	createDescription string
	createPayerEmail  string
	createMethod      string
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "mpago",
	Short: "A tool to inspect and manage MercadoPago payments",
	Long: `mpago is a CLI tool that allows you to create, search, inspect and
cancel payments in your MercadoPago account using filter expressions.`,
	PersistentPreRunE: initializeApp,
}

// SetVersion records build information for the version command.
func SetVersion(version, buildTime string) {
	appVersion = version
	appBuildTime = buildTime
	rootCmd.Version = fmt.Sprintf("%s (built %s)", version, buildTime)
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is ./config.yaml)")
	rootCmd.PersistentFlags().BoolVarP(&dryRun, "dry-run", "d", false, "perform a dry run without making changes")

	// Add subcommands
	rootCmd.AddCommand(checkCmd)
	rootCmd.AddCommand(createCmd)
	rootCmd.AddCommand(getCmd)
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(cancelCmd)
}

// initializeApp initializes the configuration and the API client
func initializeApp(cmd *cobra.Command, args []string) error {
	// Load configuration
	var err error
	cfg, err = config.Load(cfgFile)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	// Setup logger
	logger = setupLogger(cfg.Logging)

	// Override dry-run from command line if specified
	if cmd.Flags().Changed("dry-run") {
		cfg.Safety.DryRun = dryRun
	}

	client, err = mercadopago.NewBuilder(cfg.MercadoPago.AccessToken).
		BaseURL(cfg.MercadoPago.BaseURL).
		HTTPClient(&http.Client{Timeout: time.Duration(cfg.MercadoPago.TimeoutSecs) * time.Second}).
		Logger(logger).
		Build()
	if err != nil {
		return fmt.Errorf("failed to create MercadoPago client: %w", err)
	}

	return nil
}

// setupLogger configures the zerolog logger
func setupLogger(cfg config.LoggingConfig) zerolog.Logger {
	// Set log level
	level := zerolog.InfoLevel
	switch strings.ToLower(cfg.Level) {
	case "debug":
		level = zerolog.DebugLevel
	case "warn":
		level = zerolog.WarnLevel
	case "error":
		level = zerolog.ErrorLevel
	}

	zerolog.SetGlobalLevel(level)

	// Configure output format
	if cfg.Format == "json" {
		return zerolog.New(os.Stderr).With().Timestamp().Logger()
	}

	// Console format
	output := zerolog.ConsoleWriter{
		Out:        os.Stderr,
		TimeFormat: time.RFC3339,
		NoColor:    !cfg.Color,
	}

	return zerolog.New(output).With().Timestamp().Logger()
}

// checkCmd represents the check command
var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "Check the configured credentials",
	Long:  `Verify that the configured access token is accepted by the MercadoPago API.`,
	RunE:  runCheck,
}

func runCheck(cmd *cobra.Command, args []string) error {
	fmt.Printf("Checking credentials against %s...\n", cfg.MercadoPago.BaseURL)

	if err := client.CheckCredentials(context.Background()); err != nil {
		return fmt.Errorf("credential check failed: %w", err)
	}

	fmt.Println("✓ Access token accepted!")
	return nil
}

// createCmd represents the create command
var createCmd = &cobra.Command{
	Use:   "create",
	Short: "Create a payment",
	Long:  `Create a payment for the given amount and payer email.`,
	RunE:  runCreate,
}

func init() {
	createCmd.Flags().Float64VarP(&createAmount, "amount", "a", 0, "transaction amount (required)")
	createCmd.Flags().StringVarP(&createPayerEmail, "email", "e", "", "payer email (required)")
	createCmd.Flags().StringVar(&createDescription, "description", "", "payment description")
	createCmd.Flags().StringVarP(&createMethod, "method", "m", string(payments.MethodPix), "payment method id")
	createCmd.MarkFlagRequired("amount")
	createCmd.MarkFlagRequired("email")
}

func runCreate(cmd *cobra.Command, args []string) error {
	amount := mercadopago.AmountFromFloat(createAmount)

	if cfg.Safety.DryRun {
		logger.Info().
			Str("amount", amount.String()).
			Str("email", createPayerEmail).
			Str("method", createMethod).
			Msg("DRY RUN: would create payment")
		return nil
	}

	payment, err := payments.Create(
		createDescription,
		payments.Payer{Email: createPayerEmail},
		payments.MethodID(createMethod),
		amount,
	).Send(context.Background(), client)
	if err != nil {
		return fmt.Errorf("failed to create payment: %w", err)
	}

	fmt.Printf("Payment %d created (status: %s)\n", payment.ID, payment.Status)
	if payment.PointOfInteraction != nil && payment.PointOfInteraction.TransactionData != nil {
		if qr := payment.PointOfInteraction.TransactionData.QRCode; qr != "" {
			fmt.Printf("\nPix copy-and-paste code:\n%s\n", qr)
		}
	}
	return nil
}

// getCmd represents the get command
var getCmd = &cobra.Command{
	Use:   "get <payment-id>",
	Short: "Show one payment",
	Args:  cobra.ExactArgs(1),
	RunE:  runGet,
}

func runGet(cmd *cobra.Command, args []string) error {
	var id int64
	if _, err := fmt.Sscanf(args[0], "%d", &id); err != nil {
		return fmt.Errorf("invalid payment id %q", args[0])
	}

	payment, err := payments.NewGetBuilder(id).Send(context.Background(), client)
	if err != nil {
		return err
	}

	fmt.Printf("Payment %d\n", payment.ID)
	fmt.Printf("  Status:      %s (%s)\n", payment.Status, payment.StatusDetail)
	fmt.Printf("  Amount:      %s %s\n", payment.TransactionAmount.String(), payment.CurrencyID)
	fmt.Printf("  Method:      %s\n", payment.PaymentMethodID)
	fmt.Printf("  Payer:       %s\n", payment.Payer.Email)
	fmt.Printf("  Created:     %s\n", payment.DateCreated)
	if payment.Description != "" {
		fmt.Printf("  Description: %s\n", payment.Description)
	}
	if payment.ExternalReference != "" {
		fmt.Printf("  Reference:   %s\n", payment.ExternalReference)
	}
	return nil
}

// listCmd represents the list command
var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List payments matching the filter criteria",
	Long:  `List payments in your account that match the specified filter criteria.`,
	RunE:  runList,
}

func init() {
	listCmd.Flags().StringVarP(&filterExpr, "filter", "f", "", "filter expression")
	listCmd.Flags().StringVarP(&preset, "preset", "p", "", "use a preset filter from config")
	listCmd.Flags().StringVar(&beginDate, "begin", "NOW-30DAYS", "search window start")
	listCmd.Flags().StringVar(&endDate, "end", "NOW", "search window end")
}

func runList(cmd *cobra.Command, args []string) error {
	matched, err := searchPayments(context.Background())
	if err != nil {
		return err
	}

	if len(matched) == 0 {
		fmt.Println("No payments found matching the filter criteria.")
		return nil
	}

	fmt.Printf("\nFound %d payments:\n", len(matched))
	fmt.Println(strings.Repeat("-", 80))

	for _, p := range matched {
		fmt.Printf("• %d  %s %s  [%s]  %s\n",
			p.ID, p.TransactionAmount.String(), p.CurrencyID, p.Status, p.Payer.Email)
		if cfg.Safety.ShowDetails {
			if p.Description != "" {
				fmt.Printf("  Description: %s\n", p.Description)
			}
			fmt.Printf("  Method: %s  Created: %s\n", p.PaymentMethodID, p.DateCreated)
			if p.ExternalReference != "" {
				fmt.Printf("  Reference: %s\n", p.ExternalReference)
			}
		}
	}

	return nil
}

// cancelCmd represents the cancel command
var cancelCmd = &cobra.Command{
	Use:   "cancel",
	Short: "Cancel payments matching the filter criteria",
	Long: `Cancel pending or in-process payments that match the specified filter
criteria. Approved payments cannot be cancelled.`,
	RunE: runCancel,
}

func init() {
	cancelCmd.Flags().StringVarP(&filterExpr, "filter", "f", "", "filter expression")
	cancelCmd.Flags().StringVarP(&preset, "preset", "p", "", "use a preset filter from config")
	cancelCmd.Flags().BoolVar(&noConfirm, "no-confirm", false, "skip confirmation prompt")
	cancelCmd.Flags().StringVar(&beginDate, "begin", "NOW-30DAYS", "search window start")
	cancelCmd.Flags().StringVar(&endDate, "end", "NOW", "search window end")
}

func runCancel(cmd *cobra.Command, args []string) error {
	ctx := context.Background()
	matched, err := searchPayments(ctx)
	if err != nil {
		return err
	}

	// Only pending-ish payments can be cancelled.
	var cancellable []payments.PaymentSummary
	for _, p := range matched {
		switch p.Status {
		case payments.StatusPending, payments.StatusInProcess, payments.StatusAuthorized:
			cancellable = append(cancellable, p)
		}
	}

	if len(cancellable) == 0 {
		fmt.Println("No cancellable payments found.")
		return nil
	}

	fmt.Printf("\n%d payments will be cancelled:\n", len(cancellable))
	for _, p := range cancellable {
		fmt.Printf("• %d  %s %s  [%s]\n", p.ID, p.TransactionAmount.String(), p.CurrencyID, p.Status)
	}

	if cfg.Safety.DryRun {
		logger.Info().Int("count", len(cancellable)).Msg("DRY RUN: no payments were cancelled")
		return nil
	}

	if cfg.Safety.ConfirmCancel && !noConfirm {
		fmt.Printf("\nAre you sure you want to cancel %d payments? [y/N]: ", len(cancellable))
		var response string
		fmt.Scanln(&response)
		if strings.ToLower(strings.TrimSpace(response)) != "y" {
			logger.Info().Msg("Cancellation aborted")
			return nil
		}
	}

	for _, p := range cancellable {
		cancelled, err := p.Cancel(ctx, client)
		if err != nil {
			logger.Error().Err(err).Int64("payment_id", p.ID).Msg("Failed to cancel payment")
			continue
		}
		logger.Info().Int64("payment_id", cancelled.ID).Msg("Payment cancelled")
	}

	return nil
}

// searchPayments fetches the search window and applies the filter
// expression locally.
func searchPayments(ctx context.Context) ([]payments.PaymentSummary, error) {
	expr, err := getFilterExpression()
	if err != nil {
		return nil, err
	}

	logger.Info().Str("filter", expr).Msg("Searching payments")

	f, err := filter.Compile(expr)
	if err != nil {
		return nil, fmt.Errorf("invalid filter expression: %w", err)
	}

	all, err := payments.NewSearchBuilder(payments.SearchOptions{
		Sort:      payments.SortDateCreated,
		Criteria:  payments.CriteriaDescending,
		Range:     payments.RangeDateCreated,
		BeginDate: beginDate,
		EndDate:   endDate,
	}).FetchAll(ctx, client)
	if err != nil {
		return nil, err
	}

	return f.Apply(all)
}

// getFilterExpression determines the filter expression to use
func getFilterExpression() (string, error) {
	// Priority: command line filter > preset > match everything
	if filterExpr != "" {
		return filterExpr, nil
	}

	if preset != "" {
		if expression, ok := cfg.Filter[preset]; ok {
			return expression, nil
		}
		return "", fmt.Errorf("preset '%s' not found in config", preset)
	}

	return "true", nil
}
