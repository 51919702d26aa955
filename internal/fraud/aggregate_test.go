package fraud

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ledgerguard/internal/domain"
)

func tx(date, category, text string, amount float64) domain.Transaction {
	return domain.Transaction{Date: date, Category: category, Description: text, Amount: amount}
}

func TestBuildAggregates(t *testing.T) {
	txs := []domain.Transaction{
		tx("2024-03-08", "food", "bread @Rome", 5),        // Friday
		tx("2024-03-08", "food", "dinner", 950),           // Friday
		tx("2024-03-09", "food", "market @Milan", 12),     // Saturday
		tx("2024-03-08", "travel", "train", 40),           // Friday
		tx("bad-date", "travel", "bread @Turin", 1000),    // Monday fallback
	}

	agg, err := BuildAggregates(txs, 0)
	require.NoError(t, err)

	require.Len(t, agg.Days, 3)
	assert.Equal(t, "2024-03-08", agg.Days[0].Date)
	assert.Equal(t, 3, agg.Days[0].Count)
	assert.InDelta(t, 995.0, agg.Days[0].Sum, 1e-9)
	assert.Equal(t, 1, agg.Days[0].SmallCount)
	assert.Equal(t, []int{0, 1, 3}, agg.Days[0].Refs)
	assert.Equal(t, "2024-03-09", agg.Days[1].Date)
	assert.Equal(t, "bad-date", agg.Days[2].Date)

	require.Len(t, agg.DayCategories, 4)
	assert.Equal(t, "food", agg.DayCategories[0].Category)
	assert.Equal(t, 2, agg.DayCategories[0].Count)
	assert.Equal(t, 1, agg.DayCategories[0].NearThresholdCount)
	assert.Equal(t, 0, agg.DayCategories[3].NearThresholdCount, "1000 is outside [900, 1000)")

	food := agg.Category("food")
	require.NotNil(t, food)
	assert.Equal(t, 3, food.TotalCount)
	assert.Equal(t, 2, food.WeekdayCount)
	assert.InDelta(t, 955.0, food.WeekdaySum, 1e-9)

	travel := agg.Category("travel")
	require.NotNil(t, travel)
	assert.Equal(t, 2, travel.WeekdayCount, "malformed dates count as weekdays")

	require.Len(t, agg.Merchants, 4)
	assert.Equal(t, "bread ", agg.Merchants[0].Merchant)
	assert.False(t, agg.Merchants[0].Seen)
	assert.Empty(t, agg.Merchants[0].Location)
	assert.Same(t, agg.Merchants[0], agg.Merchant("bread "))

	assert.InDelta(t, 2007.0/5, agg.AverageAll, 1e-9)
}

func TestBuildAggregates_Capacity(t *testing.T) {
	txs := []domain.Transaction{
		tx("2024-03-08", "food", "a", 1),
		tx("2024-03-08", "food", "b", 2),
	}

	agg, err := BuildAggregates(txs, 1)
	assert.Nil(t, agg)
	assert.ErrorIs(t, err, ErrCapacity)

	agg, err = BuildAggregates(txs, 2)
	require.NoError(t, err)
	assert.Len(t, agg.Days, 1)
}
