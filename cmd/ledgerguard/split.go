package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"ledgerguard/internal/config"
	"ledgerguard/internal/domain"
	"ledgerguard/internal/gateway"
	"ledgerguard/internal/log"
	"ledgerguard/internal/splitter"
	"ledgerguard/internal/usecase"
)

func printSplitUsage(out io.Writer) {
	fmt.Fprintln(out, "Usage:")
	fmt.Fprintln(out, "  ledgerguard split <action> [options]")
	fmt.Fprintln(out, "\nActions:")
	fmt.Fprintln(out, "  members         List members and balances")
	fmt.Fprintln(out, "  add-member      Add a member (-name)")
	fmt.Fprintln(out, "  remove-member   Remove a settled member (-name)")
	fmt.Fprintln(out, "  expense         Record an expense (-payer -amount -with [-mode -percent -date -desc])")
	fmt.Fprintln(out, "  balances        Show current balances")
	fmt.Fprintln(out, "  history         Show expense history")
	fmt.Fprintln(out, "  settle          Record a repayment (-from -to -amount [-date])")
	fmt.Fprintln(out, "  settlements     Show settlement history")
	fmt.Fprintln(out, "  suggest         Suggest transfers that settle all balances")
}

func runSplit(ctx context.Context, out io.Writer, cfg *config.Config, logger *log.Logger, args []string) error {
	if len(args) == 0 || args[0] == "help" || args[0] == "-h" {
		printSplitUsage(out)
		return nil
	}
	action, args := args[0], args[1:]

	fs := flag.NewFlagSet("split "+action, flag.ContinueOnError)
	fs.SetOutput(out)
	db := fs.String("db", cfg.SQLiteDBPath, "Path to the SQLite database")
	name := fs.String("name", "", "Member name")
	payer := fs.String("payer", "", "Member who paid")
	amount := fs.Float64("amount", 0, "Amount")
	date := fs.String("date", time.Now().Format(time.DateOnly), "Date, yyyy-mm-dd")
	desc := fs.String("desc", "", "Description")
	mode := fs.String("mode", string(domain.SplitEqual), "Split type: equal or percent")
	with := fs.String("with", "", "Comma-separated participants")
	percent := fs.String("percent", "", "Comma-separated percentages, one per participant")
	from := fs.String("from", "", "Member paying back")
	to := fs.String("to", "", "Member receiving")
	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return nil
		}
		return err
	}

	store, err := gateway.NewSQLiteSplitRepository(*db, logger)
	if err != nil {
		return err
	}
	defer store.Close()
	uc := usecase.NewSplitUseCase(store, logger)

	switch action {
	case "add-member":
		if err := uc.AddMember(ctx, *name); err != nil {
			return err
		}
		fmt.Fprintf(out, "added %s\n", *name)
	case "remove-member":
		if err := uc.RemoveMember(ctx, *name); err != nil {
			return err
		}
		fmt.Fprintf(out, "removed %s\n", *name)
	case "expense":
		pcts, err := parsePercentages(*percent)
		if err != nil {
			return err
		}
		_, err = uc.RecordExpense(ctx, splitter.ExpenseRequest{
			Payer:        *payer,
			Amount:       *amount,
			Date:         *date,
			Description:  *desc,
			Mode:         domain.SplitMode(*mode),
			Participants: splitList(*with),
			Percentages:  pcts,
		})
		if err != nil {
			return err
		}
		fmt.Fprintln(out, "expense recorded")
	case "settle":
		if err := uc.Settle(ctx, domain.Settlement{Date: *date, From: *from, To: *to, Amount: *amount}); err != nil {
			return err
		}
		fmt.Fprintln(out, "settlement recorded")
	case "members", "balances", "history", "settlements", "suggest":
		state, err := uc.State(ctx)
		if err != nil {
			return err
		}
		return renderSplitView(out, action, state)
	default:
		printSplitUsage(out)
		return fmt.Errorf("unknown split action %q", action)
	}
	return nil
}

func renderSplitView(out io.Writer, action string, state *domain.SplitState) error {
	switch action {
	case "members":
		return splitter.RenderMembers(out, state.Members)
	case "balances":
		return splitter.RenderBalances(out, state.Members)
	case "history":
		return splitter.RenderHistory(out, state.Expenses)
	case "settlements":
		return splitter.RenderSettlements(out, state.Settlements)
	default:
		return splitter.RenderSuggestions(out, state.Members)
	}
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

func parsePercentages(s string) ([]float64, error) {
	var out []float64
	for _, part := range splitList(s) {
		v, err := strconv.ParseFloat(part, 64)
		if err != nil {
			return nil, fmt.Errorf("percentage %q: %w", part, splitter.ErrInvalidPercentages)
		}
		out = append(out, v)
	}
	return out, nil
}
