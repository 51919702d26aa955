package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strconv"
	"syscall"

	"github.com/joho/godotenv"

	"ledgerguard/internal/config"
	"ledgerguard/internal/domain"
	"ledgerguard/internal/fraud"
	"ledgerguard/internal/gateway"
	"ledgerguard/internal/log"
	"ledgerguard/internal/report"
	"ledgerguard/internal/usecase"
)

const (
	backendCSV    = "csv"
	backendSQLite = "sqlite"
)

// errReported means the failure was already written to stdout; main only
// sets the exit code.
var errReported = errors.New("failure already reported")

func main() {
	// A missing .env is fine; the environment and defaults still apply.
	_ = godotenv.Load()

	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "Invalid configuration: %v\n", err)
		os.Exit(2)
	}

	logCfg := log.DefaultConfig()
	logCfg.Level = log.ParseLevel(cfg.LogLevel)
	logger := log.New(logCfg)
	log.SetDefault(logger)

	if len(os.Args) < 2 {
		printUsage()
		os.Exit(2)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var err error
	args := os.Args[2:]
	switch os.Args[1] {
	case "scan":
		err = runScan(ctx, os.Stdout, cfg, logger, args)
	case "report":
		err = runReport(ctx, os.Stdout, cfg, logger, args)
	case "add":
		err = runAdd(ctx, os.Stdout, cfg, logger, args)
	case "import":
		err = runImport(ctx, os.Stdout, cfg, logger, args)
	case "split":
		err = runSplit(ctx, os.Stdout, cfg, logger, args)
	case "help", "-h", "--help":
		printUsage()
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n\n", os.Args[1])
		printUsage()
		os.Exit(2)
	}

	if errors.Is(err, errReported) {
		os.Exit(1)
	}
	if err != nil {
		logger.Error("Command failed", log.FieldOperation, os.Args[1], log.FieldError, err)
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Println("ledgerguard")
	fmt.Println("\nUsage:")
	fmt.Println("  ledgerguard <command> [options]")
	fmt.Println("\nCommands:")
	fmt.Println("  scan      Run fraud detection over a ledger")
	fmt.Println("  report    Print category, top-expense and monthly totals")
	fmt.Println("  add       Append one transaction to a CSV ledger")
	fmt.Println("  import    Copy a CSV ledger into the shared SQLite ledger")
	fmt.Println("  split     Share expenses within a group (run 'ledgerguard split help')")
	fmt.Println("  help      Show this help message")
	fmt.Println("\nRun 'ledgerguard <command> -h' for more information on a command.")
}

// ledgerFlags are shared by commands that read a ledger.
type ledgerFlags struct {
	backend *string
	file    *string
	db      *string
	owner   *string
}

func addLedgerFlags(fs *flag.FlagSet, cfg *config.Config) ledgerFlags {
	return ledgerFlags{
		backend: fs.String("from", backendCSV, "Ledger backend to read: csv or sqlite"),
		file:    fs.String("file", cfg.CSVPath, "Path to the CSV ledger"),
		db:      fs.String("db", cfg.SQLiteDBPath, "Path to the SQLite ledger"),
		owner:   fs.String("owner", "", "Only read rows belonging to this owner (sqlite)"),
	}
}

// open returns the repository selected by the flags, the filter to read it
// with and a cleanup func.
func (f ledgerFlags) open(logger *log.Logger) (usecase.TransactionRepository, domain.LedgerFilter, func(), error) {
	switch *f.backend {
	case backendCSV:
		filter := domain.LedgerFilter{Source: *f.file, Owner: *f.owner}
		return gateway.NewCSVTransactionRepository(logger), filter, func() {}, nil
	case backendSQLite:
		repo, err := gateway.NewSQLiteTransactionRepository(*f.db, logger)
		if err != nil {
			return nil, domain.LedgerFilter{}, nil, err
		}
		filter := domain.LedgerFilter{Source: *f.db, Owner: *f.owner}
		return repo, filter, func() { repo.Close() }, nil
	default:
		return nil, domain.LedgerFilter{}, nil, fmt.Errorf("unknown backend %q: must be %s or %s", *f.backend, backendCSV, backendSQLite)
	}
}

func runScan(ctx context.Context, out io.Writer, cfg *config.Config, logger *log.Logger, args []string) error {
	fs := flag.NewFlagSet("scan", flag.ExitOnError)
	ledger := addLedgerFlags(fs, cfg)
	format := fs.String("format", cfg.OutputFormat, "Output format: text or json")
	parallel := fs.Bool("parallel", cfg.ParallelDetectors, "Run detectors concurrently")
	maxBatch := fs.Int("max", cfg.MaxBatchSize, "Refuse batches larger than this; 0 means no limit")
	fs.Parse(args)

	repo, filter, closeRepo, err := ledger.open(logger)
	if err != nil {
		return err
	}
	defer closeRepo()

	engine := fraud.NewEngine(fraud.Options{Parallel: *parallel, MaxTransactions: *maxBatch})
	detection := usecase.NewDetectionUseCase(repo, engine, logger)

	rep, err := detection.Detect(ctx, filter)
	if rep == nil {
		return err
	}
	return writeScan(out, *format, rep, err)
}

// writeScan prints the outcome of a scan exactly once. A failed analysis
// returns errReported; "no data" is not a failure.
func writeScan(out io.Writer, format string, rep *domain.FraudReport, runErr error) error {
	var err error
	if format == config.FormatJSON {
		err = fraud.RenderJSON(out, rep)
	} else {
		err = fraud.Render(out, rep.Warnings, runErr)
	}
	if err != nil {
		return err
	}
	if runErr != nil && !errors.Is(runErr, fraud.ErrNoData) {
		return errReported
	}
	return nil
}

func runReport(ctx context.Context, out io.Writer, cfg *config.Config, logger *log.Logger, args []string) error {
	fs := flag.NewFlagSet("report", flag.ExitOnError)
	ledger := addLedgerFlags(fs, cfg)
	fs.Parse(args)

	repo, filter, closeRepo, err := ledger.open(logger)
	if err != nil {
		return err
	}
	defer closeRepo()

	summary, err := usecase.NewReportUseCase(repo, logger).Summarize(ctx, filter)
	if err != nil {
		return err
	}
	return report.Render(out, summary)
}

func runAdd(ctx context.Context, out io.Writer, cfg *config.Config, logger *log.Logger, args []string) error {
	fs := flag.NewFlagSet("add", flag.ExitOnError)
	file := fs.String("file", cfg.CSVPath, "Path to the CSV ledger")
	date := fs.String("date", "", "Transaction date, yyyy-mm-dd (required)")
	category := fs.String("category", "", "Category (required)")
	text := fs.String("text", "", "Description, optionally with HH:MM and @location (required)")
	amount := fs.String("amount", "", "Amount (required)")
	fs.Parse(args)

	if *date == "" || *category == "" || *text == "" || *amount == "" {
		return errors.New("-date, -category, -text and -amount are required")
	}
	value, err := strconv.ParseFloat(*amount, 64)
	if err != nil {
		return fmt.Errorf("invalid amount %q: %w", *amount, err)
	}

	recorder := usecase.NewRecordUseCase(gateway.NewCSVTransactionRepository(logger), logger)
	n, err := recorder.Add(ctx, domain.LedgerFilter{Source: *file}, domain.Transaction{
		Date:        *date,
		Category:    *category,
		Description: *text,
		Amount:      value,
	})
	if err != nil {
		return err
	}

	fmt.Fprintf(out, "added (%d transactions in %s)\n", n, *file)
	return nil
}

func runImport(ctx context.Context, out io.Writer, cfg *config.Config, logger *log.Logger, args []string) error {
	fs := flag.NewFlagSet("import", flag.ExitOnError)
	file := fs.String("file", cfg.CSVPath, "Path to the CSV ledger to import")
	db := fs.String("db", cfg.SQLiteDBPath, "Path to the SQLite ledger")
	owner := fs.String("owner", "", "Owner to file the imported rows under (required)")
	fs.Parse(args)

	if *owner == "" {
		return errors.New("-owner is required")
	}

	store, err := gateway.NewSQLiteTransactionRepository(*db, logger)
	if err != nil {
		return err
	}
	defer store.Close()

	importer := usecase.NewImportUseCase(gateway.NewCSVTransactionRepository(logger), store, logger)
	n, err := importer.Import(ctx,
		domain.LedgerFilter{Source: *file},
		domain.LedgerFilter{Source: *db, Owner: *owner})
	if err != nil {
		return err
	}

	fmt.Fprintf(out, "Imported %d transactions from %s for %s\n", n, *file, *owner)
	return nil
}
