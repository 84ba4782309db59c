package models

import "time"

const weekEndingLayout = "2006-01-02"

// SummaryPlaceholder is the executive summary value before the first
// successful generation.
const SummaryPlaceholder = "Pending generation..."

// SeedReport builds the draft newsletter for the ISO week containing the
// given instant, with one weekly record per known entity and the standing
// group defaults filled in.
func SeedReport(at time.Time) NewsletterReport {
	year, week := at.ISOWeek()

	records := make([]WeeklyRecord, 0, len(groupEntities))
	for _, entity := range groupEntities {
		records = append(records, seedRecord(entity))
	}

	return NewsletterReport{
		WeekNumber:       week,
		Year:             year,
		WeekEnding:       weekEndingSaturday(at).Format(weekEndingLayout),
		ExecutiveSummary: SummaryPlaceholder,
		Records:          records,
		Cashflow: CashflowSummary{
			Opening:       1250000,
			CashIn:        292000,
			CashOut:       315000,
			Closing:       1227000,
			Receivables30: 145000,
			Receivables60: 38000,
		},
		Priorities: []string{
			"Resolve cross-border feed logistics for Chicoa.",
			"Finalize cold storage expansion in Harare for Lake Harvest Distribution.",
			"Improve fulfillment in Pende Malawi hub.",
		},
		SupportRequired: []string{
			"Approve $45K Capex for solar aeration at Kariba Harvest hub.",
			"Review alternate feed supplier contracts for Q2.",
		},
		ESMS: ESMS{
			Environmental: []string{
				"Water quality within ISO standards.",
				"Effluent monitoring systems calibrated.",
			},
			Social: []string{
				"Zero LTIs (Lost Time Injuries) recorded.",
				"Community outreach in Beira launched.",
			},
			Compliance: []string{
				"All licensing up to date.",
			},
		},
	}
}

func seedRecord(entity Entity) WeeklyRecord {
	record := WeeklyRecord{
		EntityID: entity.ID,
		Status:   StatusHealthy,
		Operational: Operational{
			Win:       "On-schedule operations maintained.",
			Challenge: "Minor logistics delays noted.",
		},
	}

	if entity.Type == EntityFarm {
		record.KPIs = KPISet{
			Revenue:       45000,
			RevenueTarget: 50000,
			Farm: &FarmMetrics{
				Production:       12.5,
				ProductionTarget: 13.0,
				Mortality:        2.1,
				FCR:              1.45,
			},
		}
		return record
	}

	record.KPIs = KPISet{
		Revenue:       95000,
		RevenueTarget: 90000,
		Distribution: &DistributionMetrics{
			SalesVolume:     28.5,
			SalesTarget:     27.0,
			FulfillmentRate: 96,
		},
	}
	return record
}

// weekEndingSaturday returns the Saturday of the ISO week containing t.
func weekEndingSaturday(t time.Time) time.Time {
	daysSinceMonday := (int(t.Weekday()) + 6) % 7
	monday := t.AddDate(0, 0, -daysSinceMonday)
	return monday.AddDate(0, 0, 5)
}
