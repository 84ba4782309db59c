package report

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mvuvi-group/pulse/internal/domain/models"
)

var seedTime = time.Date(2026, 1, 14, 12, 0, 0, 0, time.UTC)

func newTestService() *Service {
	return NewService(models.SeedReport(seedTime), nil)
}

func recordIDs(report models.NewsletterReport) []string {
	ids := make([]string, 0, len(report.Records))
	for _, rec := range report.Records {
		ids = append(ids, rec.EntityID)
	}
	return ids
}

func entityIDs() []string {
	ids := make([]string, 0)
	for _, e := range models.Entities() {
		ids = append(ids, e.ID)
	}
	return ids
}

func TestSnapshotIsACopy(t *testing.T) {
	svc := newTestService()

	snap := svc.Snapshot()
	snap.Records[0].KPIs.Revenue = 1
	snap.Priorities[0] = "tampered"

	fresh := svc.Snapshot()
	assert.Equal(t, 45000.0, fresh.Records[0].KPIs.Revenue)
	assert.NotEqual(t, "tampered", fresh.Priorities[0])
}

func TestUpdateRecordMergesAndPreservesOrder(t *testing.T) {
	svc := newTestService()
	before := svc.Snapshot()

	status := models.StatusCritical
	win := "Record harvest volumes."
	updated, err := svc.UpdateRecord("zm-farm", RecordPatch{Status: &status, Win: &win})
	require.NoError(t, err)

	assert.Equal(t, entityIDs(), recordIDs(updated))
	assert.Equal(t, recordIDs(before), recordIDs(updated))

	rec := updated.Records[1]
	assert.Equal(t, "zm-farm", rec.EntityID)
	assert.Equal(t, models.StatusCritical, rec.Status)
	assert.Equal(t, "Record harvest volumes.", rec.Operational.Win)
	// Untouched field survives the merge.
	assert.Equal(t, "Minor logistics delays noted.", rec.Operational.Challenge)

	// Prior snapshot is unaffected: updates replace, they do not mutate.
	assert.Equal(t, models.StatusHealthy, before.Records[1].Status)
}

func TestUpdateRecordUnknownEntity(t *testing.T) {
	svc := newTestService()
	before := svc.Snapshot()

	_, err := svc.UpdateRecord("nope", RecordPatch{})
	assert.ErrorIs(t, err, ErrUnknownEntity)
	assert.Equal(t, before, svc.Snapshot())
}

func TestUpdateKPIUniversalField(t *testing.T) {
	svc := newTestService()

	updated, err := svc.UpdateKPI("mz-farm", "revenue", 61000)
	require.NoError(t, err)

	assert.Equal(t, 61000.0, updated.Records[0].KPIs.Revenue)
	// Sibling fields untouched.
	assert.Equal(t, 50000.0, updated.Records[0].KPIs.RevenueTarget)
	assert.Equal(t, 12.5, updated.Records[0].KPIs.Farm.Production)
}

func TestUpdateKPIAcceptsNegativeAndOverTarget(t *testing.T) {
	svc := newTestService()

	updated, err := svc.UpdateKPI("mz-farm", "revenue", -500)
	require.NoError(t, err)
	assert.Equal(t, -500.0, updated.Records[0].KPIs.Revenue)

	updated, err = svc.UpdateKPI("mz-farm", "production", 9999)
	require.NoError(t, err)
	assert.Equal(t, 9999.0, updated.Records[0].KPIs.Farm.Production)
}

func TestUpdateKPIFieldPresenceInvariant(t *testing.T) {
	svc := newTestService()

	// Farm record never gains distribution fields.
	_, err := svc.UpdateKPI("mz-farm", "salesVolume", 10)
	assert.ErrorIs(t, err, ErrFieldNotApplicable)

	// Distribution record never gains farm fields.
	_, err = svc.UpdateKPI("mw-dist", "production", 10)
	assert.ErrorIs(t, err, ErrFieldNotApplicable)

	_, err = svc.UpdateKPI("mz-farm", "bogus", 10)
	assert.ErrorIs(t, err, ErrFieldNotApplicable)

	// Failed updates leave the draft untouched.
	snap := svc.Snapshot()
	assert.Nil(t, snap.Records[0].KPIs.Distribution)
	assert.Nil(t, snap.Records[4].KPIs.Farm)
}

func TestUpdateKPINewCustomersStaysWithinBlock(t *testing.T) {
	svc := newTestService()

	updated, err := svc.UpdateKPI("mw-dist", "newCustomers", 4)
	require.NoError(t, err)

	dist := updated.Records[4].KPIs.Distribution
	require.NotNil(t, dist)
	require.NotNil(t, dist.NewCustomers)
	assert.Equal(t, 4.0, *dist.NewCustomers)
	assert.Nil(t, updated.Records[4].KPIs.Farm)
}

func TestUpdateCashflowReplacesWithoutDerivingClosing(t *testing.T) {
	svc := newTestService()

	cf := models.CashflowSummary{Opening: 1250000, CashIn: 292000, CashOut: 315000, Closing: 500}
	updated := svc.UpdateCashflow(cf)

	// Closing stays whatever was entered, never opening + in - out.
	assert.Equal(t, 500.0, updated.Cashflow.Closing)
}

func TestListReplacements(t *testing.T) {
	svc := newTestService()

	updated := svc.UpdatePriorities([]string{"only one"})
	assert.Equal(t, []string{"only one"}, updated.Priorities)

	updated = svc.UpdateSupportRequired(nil)
	assert.Empty(t, updated.SupportRequired)

	updated = svc.UpdateESMS(models.ESMS{Social: []string{"new note"}})
	assert.Equal(t, []string{"new note"}, updated.ESMS.Social)
	assert.Empty(t, updated.ESMS.Environmental)
}

func TestSetExecutiveSummaryOverwrites(t *testing.T) {
	svc := newTestService()

	updated := svc.SetExecutiveSummary("  verbatim, untrimmed  ")
	assert.Equal(t, "  verbatim, untrimmed  ", updated.ExecutiveSummary)
}

func TestIdentifierSetInvariantAcrossUpdates(t *testing.T) {
	svc := newTestService()

	_, err := svc.UpdateKPI("zw-dist", "fulfillmentRate", 98)
	require.NoError(t, err)
	svc.UpdateCashflow(models.CashflowSummary{})
	svc.UpdatePriorities([]string{})
	svc.SetExecutiveSummary("x")

	assert.Equal(t, entityIDs(), recordIDs(svc.Snapshot()))
}

func TestStartWeekReplacesDraft(t *testing.T) {
	svc := newTestService()
	svc.SetExecutiveSummary("old summary")

	next := svc.StartWeek(seedTime.AddDate(0, 0, 7))

	assert.Equal(t, models.SummaryPlaceholder, next.ExecutiveSummary)
	assert.Equal(t, 4, next.WeekNumber)
	assert.Equal(t, entityIDs(), recordIDs(next))
}
