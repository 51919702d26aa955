package fraud

import (
	"errors"
	"fmt"

	"ledgerguard/internal/domain"
)

// ErrCapacity is returned when a batch is larger than the engine may aggregate.
var ErrCapacity = errors.New("aggregate capacity exceeded")

const (
	smallAmount       = 20.0
	nearThresholdLow  = 900.0
	nearThresholdHigh = 1000.0
)

// DayAggregate holds running totals for one date.
type DayAggregate struct {
	Date       string
	Sum        float64
	Count      int
	SmallCount int
	Refs       []int
}

type dayCategoryKey struct {
	date     string
	category string
}

// DayCategoryAggregate holds running totals for one (date, category) pair.
type DayCategoryAggregate struct {
	Date               string
	Category           string
	Sum                float64
	Count              int
	NearThresholdCount int
	Refs               []int
}

// CategoryAggregate holds running totals for one category.
// The weekday fields only count transactions not dated on a weekend.
type CategoryAggregate struct {
	Category     string
	TotalSum     float64
	TotalCount   int
	WeekdaySum   float64
	WeekdayCount int
	Refs         []int
}

// MerchantLocation is the last location a merchant was seen at.
// Seen stays false until a description with an @location is processed.
type MerchantLocation struct {
	Merchant string
	Location string
	Date     string
	Seen     bool
}

// Aggregates are the derived tables of one batch, in first-seen order.
type Aggregates struct {
	Days          []*DayAggregate
	DayCategories []*DayCategoryAggregate
	Categories    []*CategoryAggregate
	Merchants     []*MerchantLocation

	// AverageAll is the mean amount over the whole batch.
	AverageAll float64

	categories map[string]*CategoryAggregate
	merchants  map[string]*MerchantLocation
}

// BuildAggregates makes a single pass over txs. A positive limit caps the
// batch size; exceeding it fails the whole build.
func BuildAggregates(txs []domain.Transaction, limit int) (*Aggregates, error) {
	if limit > 0 && len(txs) > limit {
		return nil, fmt.Errorf("%d transactions, limit %d: %w", len(txs), limit, ErrCapacity)
	}

	agg := &Aggregates{
		categories: make(map[string]*CategoryAggregate),
		merchants:  make(map[string]*MerchantLocation),
	}
	days := make(map[string]*DayAggregate)
	dayCats := make(map[dayCategoryKey]*DayCategoryAggregate)

	total := 0.0
	for i, tx := range txs {
		total += tx.Amount

		day, ok := days[tx.Date]
		if !ok {
			day = &DayAggregate{Date: tx.Date}
			days[tx.Date] = day
			agg.Days = append(agg.Days, day)
		}
		day.Sum += tx.Amount
		day.Count++
		if tx.Amount < smallAmount {
			day.SmallCount++
		}
		day.Refs = append(day.Refs, i)

		key := dayCategoryKey{date: tx.Date, category: tx.Category}
		dc, ok := dayCats[key]
		if !ok {
			dc = &DayCategoryAggregate{Date: tx.Date, Category: tx.Category}
			dayCats[key] = dc
			agg.DayCategories = append(agg.DayCategories, dc)
		}
		dc.Sum += tx.Amount
		dc.Count++
		if tx.Amount >= nearThresholdLow && tx.Amount < nearThresholdHigh {
			dc.NearThresholdCount++
		}
		dc.Refs = append(dc.Refs, i)

		cat, ok := agg.categories[tx.Category]
		if !ok {
			cat = &CategoryAggregate{Category: tx.Category}
			agg.categories[tx.Category] = cat
			agg.Categories = append(agg.Categories, cat)
		}
		cat.TotalSum += tx.Amount
		cat.TotalCount++
		if !IsWeekend(tx.Date) {
			cat.WeekdaySum += tx.Amount
			cat.WeekdayCount++
		}
		cat.Refs = append(cat.Refs, i)

		merchant := MerchantBase(tx.Description)
		if _, ok := agg.merchants[merchant]; !ok {
			m := &MerchantLocation{Merchant: merchant}
			agg.merchants[merchant] = m
			agg.Merchants = append(agg.Merchants, m)
		}
	}

	if len(txs) > 0 {
		agg.AverageAll = total / float64(len(txs))
	}
	return agg, nil
}

// Category returns the aggregate for a category, or nil.
func (a *Aggregates) Category(name string) *CategoryAggregate {
	return a.categories[name]
}

// Merchant returns the location entry for a merchant base, or nil.
func (a *Aggregates) Merchant(name string) *MerchantLocation {
	return a.merchants[name]
}
