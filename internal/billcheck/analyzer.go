package billcheck

import (
	"fmt"

	"github.com/shopspring/decimal"

	"medfin-engine/internal/model"
)

// Finding types.
const (
	FindingDuplicate  = "duplicate_charge"
	FindingUnbundling = "unbundling"
	FindingPreventive = "preventive_billed"
)

// Finding is one detected billing error on a single bill.
type Finding struct {
	FindingType string          `json:"finding_type"`
	BillID      string          `json:"bill_id"`
	Provider    string          `json:"provider"`
	Code        string          `json:"code"`
	Description string          `json:"description"`
	Amount      decimal.Decimal `json:"amount"`
	Confidence  float64         `json:"confidence"`
}

// Analyzer detects line-item errors in itemized bills.
type Analyzer struct {
	tables Tables
}

func New(tables Tables) *Analyzer {
	return &Analyzer{tables: tables}
}

// Analyze runs all detectors over every bill and concatenates findings
// in bill order. Bills without line items yield no findings.
func (a *Analyzer) Analyze(bills []model.Bill) []Finding {
	var findings []Finding
	for i := range bills {
		b := &bills[i]
		if len(b.LineItems) == 0 {
			continue
		}
		findings = append(findings, a.detectDuplicates(b)...)
		findings = append(findings, a.detectUnbundling(b)...)
		findings = append(findings, a.detectPreventive(b)...)
	}
	return findings
}

// detectDuplicates flags exact repeats (same code, date, and amount) at
// confidence 0.95, and same-day same-code charges within 10% of each
// other at 0.75.
func (a *Analyzer) detectDuplicates(b *model.Bill) []Finding {
	var findings []Finding
	type key struct{ code, date, amount string }
	seen := map[key]int{}
	for _, item := range b.LineItems {
		k := key{item.Code, item.ServiceDate, item.Amount.String()}
		seen[k]++
		if seen[k] == 2 {
			findings = append(findings, Finding{
				FindingType: FindingDuplicate,
				BillID:      b.BillID,
				Provider:    b.Provider,
				Code:        item.Code,
				Description: fmt.Sprintf("Charge %s billed twice on %s for $%s", item.Code, item.ServiceDate, item.Amount.StringFixed(2)),
				Amount:      item.Amount,
				Confidence:  0.95,
			})
		}
	}

	// Near-duplicates: same code and date, amounts within 10%.
	for i := 0; i < len(b.LineItems); i++ {
		for j := i + 1; j < len(b.LineItems); j++ {
			x, y := b.LineItems[i], b.LineItems[j]
			if x.Code != y.Code || x.ServiceDate != y.ServiceDate || x.Amount.Equal(y.Amount) {
				continue
			}
			lo, hi := x.Amount, y.Amount
			if lo.GreaterThan(hi) {
				lo, hi = hi, lo
			}
			if hi.Sign() > 0 && hi.Sub(lo).LessThanOrEqual(hi.Mul(decimal.NewFromFloat(0.10))) {
				findings = append(findings, Finding{
					FindingType: FindingDuplicate,
					BillID:      b.BillID,
					Provider:    b.Provider,
					Code:        x.Code,
					Description: fmt.Sprintf("Charge %s appears twice on %s with near-identical amounts", x.Code, x.ServiceDate),
					Amount:      lo,
					Confidence:  0.75,
				})
			}
		}
	}
	return findings
}

// detectUnbundling flags component codes billed alongside a parent code
// whose payment already covers them.
func (a *Analyzer) detectUnbundling(b *model.Bill) []Finding {
	present := map[string]decimal.Decimal{}
	for _, item := range b.LineItems {
		present[item.Code] = item.Amount
	}
	var findings []Finding
	for _, item := range b.LineItems {
		bundled, ok := a.tables.BundlingRules[item.Code]
		if !ok {
			continue
		}
		for _, child := range bundled {
			amt, hit := present[child]
			if !hit {
				continue
			}
			findings = append(findings, Finding{
				FindingType: FindingUnbundling,
				BillID:      b.BillID,
				Provider:    b.Provider,
				Code:        child,
				Description: fmt.Sprintf("Code %s is included in %s and should not be billed separately", child, item.Code),
				Amount:      amt,
				Confidence:  0.80,
			})
		}
	}
	return findings
}

// detectPreventive flags preventive services on bills that still carry a
// patient balance. Preventive care should be covered at 100%.
func (a *Analyzer) detectPreventive(b *model.Bill) []Finding {
	if b.PatientBalance.Sign() <= 0 {
		return nil
	}
	var findings []Finding
	for _, item := range b.LineItems {
		if _, ok := a.tables.PreventiveCodes[item.Code]; !ok {
			continue
		}
		findings = append(findings, Finding{
			FindingType: FindingPreventive,
			BillID:      b.BillID,
			Provider:    b.Provider,
			Code:        item.Code,
			Description: fmt.Sprintf("Preventive service %s billed with patient cost share", item.Code),
			Amount:      item.Amount,
			Confidence:  0.70,
		})
	}
	return findings
}
