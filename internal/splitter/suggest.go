package splitter

import (
	"github.com/shopspring/decimal"

	"ledgerguard/internal/domain"
)

type party struct {
	name   string
	amount decimal.Decimal
}

// Suggest pairs creditors with debtors in member order and proposes
// transfers until one side runs out. Balances within a cent of zero are
// treated as settled. An empty result means nothing is owed.
func Suggest(members []domain.SplitMember) []domain.Transfer {
	var creditors, debtors []party
	for _, m := range members {
		bal := decimal.NewFromFloat(m.Balance)
		switch {
		case bal.GreaterThan(epsilon):
			creditors = append(creditors, party{m.Name, bal})
		case bal.LessThan(epsilon.Neg()):
			debtors = append(debtors, party{m.Name, bal.Neg()})
		}
	}

	var transfers []domain.Transfer
	c, d := 0, 0
	for c < len(creditors) && d < len(debtors) {
		pay := decimal.Min(creditors[c].amount, debtors[d].amount)
		transfers = append(transfers, domain.Transfer{
			From:   debtors[d].name,
			To:     creditors[c].name,
			Amount: pay.InexactFloat64(),
		})
		creditors[c].amount = creditors[c].amount.Sub(pay)
		debtors[d].amount = debtors[d].amount.Sub(pay)
		if creditors[c].amount.LessThanOrEqual(epsilon) {
			c++
		}
		if debtors[d].amount.LessThanOrEqual(epsilon) {
			d++
		}
	}
	return transfers
}
