package billcheck

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"medfin-engine/internal/model"
)

func bill(id string, balance int64, items ...model.LineItem) model.Bill {
	return model.Bill{
		BillID:         id,
		Provider:       "General Hospital",
		PatientBalance: decimal.NewFromInt(balance),
		LineItems:      items,
	}
}

func item(code, date string, amount int64) model.LineItem {
	return model.LineItem{Code: code, ServiceDate: date, Amount: decimal.NewFromInt(amount)}
}

func TestDetectExactDuplicate(t *testing.T) {
	a := New(DefaultTables())
	findings := a.Analyze([]model.Bill{bill("b1", 4000,
		item("93000", "2026-05-01", 2200),
		item("93000", "2026-05-01", 2200),
	)})

	require.Len(t, findings, 1)
	f := findings[0]
	assert.Equal(t, FindingDuplicate, f.FindingType)
	assert.Equal(t, "b1", f.BillID)
	assert.True(t, f.Amount.Equal(decimal.NewFromInt(2200)))
	assert.Equal(t, 0.95, f.Confidence)
}

func TestDetectNearDuplicate(t *testing.T) {
	a := New(DefaultTables())
	findings := a.Analyze([]model.Bill{bill("b1", 1000,
		item("93000", "2026-05-01", 1000),
		item("93000", "2026-05-01", 950),
	)})

	require.Len(t, findings, 1)
	assert.Equal(t, FindingDuplicate, findings[0].FindingType)
	assert.Equal(t, 0.75, findings[0].Confidence)
}

func TestDistinctAmountsAreNotDuplicates(t *testing.T) {
	a := New(DefaultTables())
	findings := a.Analyze([]model.Bill{bill("b1", 1000,
		item("93000", "2026-05-01", 1000),
		item("93000", "2026-05-01", 400),
	)})
	assert.Empty(t, findings)
}

func TestDetectUnbundling(t *testing.T) {
	a := New(DefaultTables())
	findings := a.Analyze([]model.Bill{bill("b1", 600,
		item("99214", "2026-05-01", 250),
		item("99213", "2026-05-01", 150),
	)})

	require.Len(t, findings, 1)
	f := findings[0]
	assert.Equal(t, FindingUnbundling, f.FindingType)
	assert.Equal(t, "99213", f.Code)
	assert.True(t, f.Amount.Equal(decimal.NewFromInt(150)))
	assert.Equal(t, 0.80, f.Confidence)
}

func TestDetectPreventiveWithCostShare(t *testing.T) {
	a := New(DefaultTables())
	findings := a.Analyze([]model.Bill{bill("b1", 180,
		item("99395", "2026-05-01", 180),
	)})

	require.Len(t, findings, 1)
	assert.Equal(t, FindingPreventive, findings[0].FindingType)
	assert.Equal(t, 0.70, findings[0].Confidence)
}

func TestPreventiveIgnoredWhenNoBalance(t *testing.T) {
	a := New(DefaultTables())
	findings := a.Analyze([]model.Bill{bill("b1", 0,
		item("99395", "2026-05-01", 180),
	)})
	assert.Empty(t, findings)
}

func TestSyntheticTables(t *testing.T) {
	a := New(Tables{
		BundlingRules:   map[string][]string{"P1": {"C1"}},
		PreventiveCodes: map[string]struct{}{},
	})
	findings := a.Analyze([]model.Bill{bill("b1", 300,
		item("P1", "2026-05-01", 200),
		item("C1", "2026-05-01", 100),
	)})
	require.Len(t, findings, 1)
	assert.Equal(t, FindingUnbundling, findings[0].FindingType)
}

func TestNoLineItemsNoFindings(t *testing.T) {
	a := New(DefaultTables())
	assert.Empty(t, a.Analyze([]model.Bill{bill("b1", 5000)}))
}
