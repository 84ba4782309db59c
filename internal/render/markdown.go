package render

import (
	"fmt"
	"strings"

	"github.com/mvuvi-group/pulse/internal/domain/models"
)

// Markdown serializes the full newsletter into its exportable markdown
// document. The output is a pure function of the report value: identical
// input produces byte-identical output.
func Markdown(report models.NewsletterReport, entities []models.Entity) string {
	names := make(map[string]string, len(entities))
	for _, e := range entities {
		names[e.ID] = e.Name
	}

	var md strings.Builder

	md.WriteString("# Mvuvi Group - Weekly Executive Summary\n\n")
	fmt.Fprintf(&md, "**Week Ending:** %s | **Week:** %d | **Year:** %d\n\n",
		report.WeekEnding, report.WeekNumber, report.Year)

	fmt.Fprintf(&md, "## Executive Overview\n\n%s\n\n", report.ExecutiveSummary)

	md.WriteString("## Operations Snapshot\n\n")
	md.WriteString("| Entity | Status | Revenue | Target | Variance | Key Metrics | Win | Challenge |\n")
	md.WriteString("| :--- | :--- | :--- | :--- | :--- | :--- | :--- | :--- |\n")

	for _, rec := range report.Records {
		name, ok := names[rec.EntityID]
		if !ok {
			name = rec.EntityID
		}
		variance := VariancePercent(rec.KPIs.Revenue, rec.KPIs.RevenueTarget)
		fmt.Fprintf(&md, "| %s | %s | %s | %s | %.1f%% | %s | %s | %s |\n",
			name,
			strings.ToUpper(string(rec.Status)),
			Thousands(rec.KPIs.Revenue),
			Thousands(rec.KPIs.RevenueTarget),
			variance,
			keyMetrics(rec.KPIs),
			rec.Operational.Win,
			rec.Operational.Challenge)
	}

	md.WriteString("\n## Group Financials\n\n")
	fmt.Fprintf(&md, "- **Opening Cash Position:** %s\n", Thousands(report.Cashflow.Opening))
	fmt.Fprintf(&md, "- **Weekly Inflow:** +%s\n", Thousands(report.Cashflow.CashIn))
	fmt.Fprintf(&md, "- **Weekly Outflow:** -%s\n", Thousands(report.Cashflow.CashOut))
	fmt.Fprintf(&md, "- **Closing Cash Position:** **%s**\n\n", Thousands(report.Cashflow.Closing))

	md.WriteString("### Receivables Aging\n\n")
	fmt.Fprintf(&md, "- **30-60 Days:** %s\n", Thousands(report.Cashflow.Receivables30))
	fmt.Fprintf(&md, "- **60+ Days:** %s\n\n", Thousands(report.Cashflow.Receivables60))

	md.WriteString("## Priorities & Support\n\n")
	md.WriteString("### Top Priorities\n\n")
	writeBullets(&md, report.Priorities)
	md.WriteString("\n### Executive Support Required\n\n")
	writeBullets(&md, report.SupportRequired)

	md.WriteString("\n## ESMS & Social Impact\n\n")
	md.WriteString("### Social Impact\n\n")
	writeBullets(&md, report.ESMS.Social)
	md.WriteString("\n### Environmental\n\n")
	writeBullets(&md, report.ESMS.Environmental)

	md.WriteString("\n---\n*Confidential - Mvuvi Group Executive Intelligence Suite*")

	return md.String()
}

// keyMetrics picks the table cell for the type-specific KPI block. The branch
// is on block presence, so a farm with zero production still shows the farm
// metrics.
func keyMetrics(kpis models.KPISet) string {
	if kpis.Farm != nil {
		return fmt.Sprintf("Prod: %st, Mort: %s%%", metric(kpis.Farm.Production), metric(kpis.Farm.Mortality))
	}
	if kpis.Distribution != nil {
		return fmt.Sprintf("Sales: %st, Full: %s%%", metric(kpis.Distribution.SalesVolume), metric(kpis.Distribution.FulfillmentRate))
	}
	return ""
}

func writeBullets(md *strings.Builder, lines []string) {
	for _, line := range lines {
		fmt.Fprintf(md, "- %s\n", line)
	}
}
