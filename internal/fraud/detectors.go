package fraud

import (
	"fmt"
	"math"
	"slices"

	"ledgerguard/internal/domain"
)

// Detection thresholds.
const (
	HighAmountFactor = 3.0

	GlobalSpikeFactor = 4.0
	GlobalSpikeFloor  = 500.0

	DormantGapDays = 45
	DormantFloor   = 2000.0

	OddHourEarliest = 5
	OddHourLatest   = 22
	OddHourFloor    = 300.0

	WeekendSpikeFactor = 2.0
	WeekendSpikeFloor  = 1000.0

	GeoShiftMaxDays = 2
	GeoShiftFloor   = 500.0

	VelocityDayCount  = 8
	VelocityDayFactor = 5.0

	MicroVelocityCount = 6

	BurstCategoryCount = 4
	BurstCategorySum   = 2000.0

	ThresholdSplitCount = 3

	NewCategorySum = 1500.0

	EscalatingMaxDays = 3

	DuplicateMinCluster = 3
	AmountTolerance     = 0.01
)

// detector inspects the batch and its aggregates and returns warnings in
// the order it found them.
type detector struct {
	kind domain.WarningKind
	run  func(txs []domain.Transaction, agg *Aggregates) []domain.Warning
}

// pipeline lists the detectors in report order: per-record rules, per-day,
// per-day-category, per-category, sequential triples, duplicate clusters.
var pipeline = []detector{
	{domain.KindHighAmount, detectHighAmount},
	{domain.KindGlobalSpike, detectGlobalSpike},
	{domain.KindDormantBurst, detectDormantBurst},
	{domain.KindOddHour, detectOddHour},
	{domain.KindWeekendSpike, detectWeekendSpike},
	{domain.KindGeoShift, detectGeoShift},
	{domain.KindVelocityDay, detectVelocityDay},
	{domain.KindMicroVelocity, detectMicroVelocity},
	{domain.KindBurstCategory, detectBurstCategory},
	{domain.KindThresholdSplit, detectThresholdSplit},
	{domain.KindNewCategory, detectNewCategory},
	{domain.KindEscalating, detectEscalating},
	{domain.KindDuplicateCluster, detectDuplicateClusters},
}

func recordWarning(kind domain.WarningKind, tx domain.Transaction, detail string, refs ...int) domain.Warning {
	return domain.Warning{
		Kind: kind,
		Refs: refs,
		Line: fmt.Sprintf("[%s] %s %s %s %.2f %s", kind, tx.Date, tx.Category, tx.Description, tx.Amount, detail),
	}
}

func detectHighAmount(txs []domain.Transaction, _ *Aggregates) []domain.Warning {
	var out []domain.Warning
	for i, tx := range txs {
		month := MonthKey(tx.Date)
		sum := 0.0
		cnt := 0
		for j, other := range txs {
			if j == i {
				continue
			}
			if MonthKey(other.Date) == month && other.Category == tx.Category {
				sum += other.Amount
				cnt++
			}
		}
		if cnt == 0 {
			continue
		}
		avg := sum / float64(cnt)
		if avg > 0 && tx.Amount >= HighAmountFactor*avg {
			out = append(out, recordWarning(domain.KindHighAmount, tx, fmt.Sprintf("(>= 3x monthly avg %.2f)", avg), i))
		}
	}
	return out
}

func detectGlobalSpike(txs []domain.Transaction, agg *Aggregates) []domain.Warning {
	var out []domain.Warning
	avg := agg.AverageAll
	if avg <= 0 {
		return nil
	}
	for i, tx := range txs {
		if tx.Amount >= GlobalSpikeFactor*avg && tx.Amount >= GlobalSpikeFloor {
			out = append(out, recordWarning(domain.KindGlobalSpike, tx, fmt.Sprintf("(>=4x overall avg %.2f)", avg), i))
		}
	}
	return out
}

// detectDormantBurst compares dates as strings when picking earlier
// transactions, so only well-formed YYYY-MM-DD dates order chronologically.
func detectDormantBurst(txs []domain.Transaction, _ *Aggregates) []domain.Warning {
	var out []domain.Warning
	for i, tx := range txs {
		gap := -1
		for j, other := range txs {
			if j == i || !(other.Date < tx.Date) {
				continue
			}
			d := DayDistance(tx.Date, other.Date)
			if gap < 0 || d < gap {
				gap = d
			}
		}
		if gap > 0 && gap >= DormantGapDays && tx.Amount >= DormantFloor {
			out = append(out, recordWarning(domain.KindDormantBurst, tx, fmt.Sprintf("(gap %d days)", gap), i))
		}
	}
	return out
}

func detectOddHour(txs []domain.Transaction, _ *Aggregates) []domain.Warning {
	var out []domain.Warning
	for i, tx := range txs {
		hour, ok := ExtractHour(tx.Description)
		if !ok {
			continue
		}
		if (hour < OddHourEarliest || hour > OddHourLatest) && tx.Amount >= OddHourFloor {
			out = append(out, recordWarning(domain.KindOddHour, tx, fmt.Sprintf("(time %02d:xx)", hour), i))
		}
	}
	return out
}

func detectWeekendSpike(txs []domain.Transaction, agg *Aggregates) []domain.Warning {
	var out []domain.Warning
	for i, tx := range txs {
		if !IsWeekend(tx.Date) {
			continue
		}
		cat := agg.Category(tx.Category)
		if cat == nil || cat.WeekdayCount == 0 {
			continue
		}
		avg := cat.WeekdaySum / float64(cat.WeekdayCount)
		if avg > 0 && tx.Amount >= WeekendSpikeFactor*avg && tx.Amount >= WeekendSpikeFloor {
			out = append(out, recordWarning(domain.KindWeekendSpike, tx, fmt.Sprintf("(weekday avg %.2f)", avg), i))
		}
	}
	return out
}

// detectGeoShift walks the batch in order and compares every located
// sighting with the merchant's previous one only. It is the sole writer of
// the merchant table.
func detectGeoShift(txs []domain.Transaction, agg *Aggregates) []domain.Warning {
	var out []domain.Warning
	prev := make(map[string]int)
	for i, tx := range txs {
		merchant := MerchantBase(tx.Description)
		loc, ok := ExtractLocation(tx.Description)
		if merchant == "" || !ok {
			continue
		}
		entry := agg.Merchant(merchant)
		if entry == nil {
			continue
		}
		if entry.Seen && entry.Location != loc &&
			DayDistance(tx.Date, entry.Date) <= GeoShiftMaxDays && tx.Amount >= GeoShiftFloor {
			out = append(out, recordWarning(domain.KindGeoShift, tx, fmt.Sprintf("(%s -> %s)", entry.Location, loc), prev[merchant], i))
		}
		entry.Location = loc
		entry.Date = tx.Date
		entry.Seen = true
		prev[merchant] = i
	}
	return out
}

func detectVelocityDay(_ []domain.Transaction, agg *Aggregates) []domain.Warning {
	var out []domain.Warning
	for _, day := range agg.Days {
		if day.Count >= VelocityDayCount || day.Sum >= VelocityDayFactor*agg.AverageAll {
			out = append(out, domain.Warning{
				Kind: domain.KindVelocityDay,
				Refs: slices.Clone(day.Refs),
				Line: fmt.Sprintf("[%s] %s count %d total %.2f", domain.KindVelocityDay, day.Date, day.Count, day.Sum),
			})
		}
	}
	return out
}

func detectMicroVelocity(_ []domain.Transaction, agg *Aggregates) []domain.Warning {
	var out []domain.Warning
	for _, day := range agg.Days {
		if day.SmallCount >= MicroVelocityCount {
			out = append(out, domain.Warning{
				Kind: domain.KindMicroVelocity,
				Refs: slices.Clone(day.Refs),
				Line: fmt.Sprintf("[%s] %s %d sub-20 transactions", domain.KindMicroVelocity, day.Date, day.SmallCount),
			})
		}
	}
	return out
}

func detectBurstCategory(_ []domain.Transaction, agg *Aggregates) []domain.Warning {
	var out []domain.Warning
	for _, dc := range agg.DayCategories {
		if dc.Count >= BurstCategoryCount && dc.Sum >= BurstCategorySum {
			out = append(out, domain.Warning{
				Kind: domain.KindBurstCategory,
				Refs: slices.Clone(dc.Refs),
				Line: fmt.Sprintf("[%s] %s %s count %d sum %.2f", domain.KindBurstCategory, dc.Date, dc.Category, dc.Count, dc.Sum),
			})
		}
	}
	return out
}

func detectThresholdSplit(_ []domain.Transaction, agg *Aggregates) []domain.Warning {
	var out []domain.Warning
	for _, dc := range agg.DayCategories {
		if dc.NearThresholdCount >= ThresholdSplitCount {
			out = append(out, domain.Warning{
				Kind: domain.KindThresholdSplit,
				Refs: slices.Clone(dc.Refs),
				Line: fmt.Sprintf("[%s] %s %s %d payments near 1000", domain.KindThresholdSplit, dc.Date, dc.Category, dc.NearThresholdCount),
			})
		}
	}
	return out
}

func detectNewCategory(_ []domain.Transaction, agg *Aggregates) []domain.Warning {
	var out []domain.Warning
	for _, cat := range agg.Categories {
		if cat.TotalCount == 1 && cat.TotalSum >= NewCategorySum {
			out = append(out, domain.Warning{
				Kind: domain.KindNewCategory,
				Refs: slices.Clone(cat.Refs),
				Line: fmt.Sprintf("[%s] %s first spend %.2f", domain.KindNewCategory, cat.Category, cat.TotalSum),
			})
		}
	}
	return out
}

// detectEscalating only looks at neighbours in batch order.
func detectEscalating(txs []domain.Transaction, _ *Aggregates) []domain.Warning {
	var out []domain.Warning
	for i := 0; i+2 < len(txs); i++ {
		a, b, c := txs[i], txs[i+1], txs[i+2]
		if a.Category != b.Category || b.Category != c.Category {
			continue
		}
		if !(a.Amount < b.Amount && b.Amount < c.Amount) {
			continue
		}
		if DayDistance(c.Date, a.Date) > EscalatingMaxDays {
			continue
		}
		out = append(out, domain.Warning{
			Kind: domain.KindEscalating,
			Refs: []int{i, i + 1, i + 2},
			Line: fmt.Sprintf("[%s] %s/%s/%s %s amounts %.2f->-%.2f->-%.2f",
				domain.KindEscalating, a.Date, b.Date, c.Date, a.Category, a.Amount, b.Amount, c.Amount),
		})
	}
	return out
}

func detectDuplicateClusters(txs []domain.Transaction, _ *Aggregates) []domain.Warning {
	var out []domain.Warning
	for _, cluster := range DuplicateClusters(txs) {
		rep := txs[cluster[0]]
		out = append(out, domain.Warning{
			Kind: domain.KindDuplicateCluster,
			Refs: cluster,
			Line: fmt.Sprintf("[duplicate×%d] %s %s %s %.2f", len(cluster), rep.Date, rep.Category, rep.Description, rep.Amount),
		})
	}
	return out
}

// DuplicateClusters partitions the batch into reportable duplicate groups.
// The first unclaimed index of a group is its representative; members are
// compared with the representative, never with each other.
func DuplicateClusters(txs []domain.Transaction) [][]int {
	claimed := make([]bool, len(txs))
	var clusters [][]int
	for i, tx := range txs {
		if claimed[i] {
			continue
		}
		month := MonthKey(tx.Date)
		members := []int{i}
		for j := i + 1; j < len(txs); j++ {
			if claimed[j] {
				continue
			}
			other := txs[j]
			if MonthKey(other.Date) == month &&
				other.Date == tx.Date &&
				other.Category == tx.Category &&
				other.Description == tx.Description &&
				math.Abs(tx.Amount-other.Amount) < AmountTolerance {
				members = append(members, j)
			}
		}
		if len(members) < DuplicateMinCluster {
			continue
		}
		for _, m := range members {
			claimed[m] = true
		}
		clusters = append(clusters, members)
	}
	return clusters
}
