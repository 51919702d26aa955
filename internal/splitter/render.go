package splitter

import (
	"fmt"
	"io"
	"strings"

	"ledgerguard/internal/domain"
)

// Empty-state messages.
const (
	NoMembersYet   = "no members yet"
	NoMembers      = "no members"
	NoExpensesYet  = "no expenses yet"
	NoSettlements  = "no settlements"
	AlreadySettled = "balances already settled"
)

// RenderMembers lists members with their 1-based position and balance.
func RenderMembers(w io.Writer, members []domain.SplitMember) error {
	if len(members) == 0 {
		return writeLine(w, NoMembersYet)
	}
	var b strings.Builder
	b.WriteString("\nmembers\n")
	for i, m := range members {
		fmt.Fprintf(&b, "%d. %s (balance %.2f)\n", i+1, m.Name, m.Balance)
	}
	return flush(w, &b)
}

// RenderBalances writes one aligned line per member.
func RenderBalances(w io.Writer, members []domain.SplitMember) error {
	if len(members) == 0 {
		return writeLine(w, NoMembers)
	}
	var b strings.Builder
	b.WriteString("\ncurrent balances\n")
	for _, m := range members {
		fmt.Fprintf(&b, "%-15s : %.2f\n", m.Name, m.Balance)
	}
	return flush(w, &b)
}

// RenderHistory writes every expense followed by its shares.
func RenderHistory(w io.Writer, expenses []domain.SplitExpense) error {
	if len(expenses) == 0 {
		return writeLine(w, NoExpensesYet)
	}
	var b strings.Builder
	b.WriteString("\nexpense history\n")
	for _, e := range expenses {
		fmt.Fprintf(&b, "%s %s paid %.2f for %s\n", e.Date, e.Payer, e.Amount, e.Description)
		for _, s := range e.Shares {
			fmt.Fprintf(&b, "  -> %s owes %.2f\n", s.Name, s.Amount)
		}
	}
	return flush(w, &b)
}

// RenderSettlements writes the settlement log.
func RenderSettlements(w io.Writer, settlements []domain.Settlement) error {
	if len(settlements) == 0 {
		return writeLine(w, NoSettlements)
	}
	var b strings.Builder
	b.WriteString("\nsettlement history\n")
	for _, s := range settlements {
		fmt.Fprintf(&b, "%s %s paid %s %.2f\n", s.Date, s.From, s.To, s.Amount)
	}
	return flush(w, &b)
}

// RenderSuggestions writes the transfers Suggest proposes for members.
func RenderSuggestions(w io.Writer, members []domain.SplitMember) error {
	if len(members) == 0 {
		return writeLine(w, NoMembers)
	}
	transfers := Suggest(members)
	if len(transfers) == 0 {
		return writeLine(w, AlreadySettled)
	}
	var b strings.Builder
	b.WriteString("\nsuggested settlements\n")
	for _, t := range transfers {
		fmt.Fprintf(&b, "%s should receive %.2f from %s\n", t.To, t.Amount, t.From)
	}
	return flush(w, &b)
}

func writeLine(w io.Writer, line string) error {
	_, err := fmt.Fprintln(w, line)
	return err
}

func flush(w io.Writer, b *strings.Builder) error {
	_, err := io.WriteString(w, b.String())
	return err
}
