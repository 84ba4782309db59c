package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSeedReportOneRecordPerEntity(t *testing.T) {
	report := SeedReport(time.Date(2026, 1, 14, 0, 0, 0, 0, time.UTC))

	entities := Entities()
	require.Len(t, report.Records, len(entities))
	for i, entity := range entities {
		assert.Equal(t, entity.ID, report.Records[i].EntityID)
	}
}

func TestSeedReportWeekFields(t *testing.T) {
	// Wednesday of ISO week 3, 2026.
	report := SeedReport(time.Date(2026, 1, 14, 0, 0, 0, 0, time.UTC))

	assert.Equal(t, 3, report.WeekNumber)
	assert.Equal(t, 2026, report.Year)
	assert.Equal(t, "2026-01-17", report.WeekEnding)
	assert.Equal(t, SummaryPlaceholder, report.ExecutiveSummary)
}

func TestSeedReportMetricBlocksMatchEntityType(t *testing.T) {
	report := SeedReport(time.Now())

	for _, rec := range report.Records {
		entity, ok := EntityByID(rec.EntityID)
		require.True(t, ok)

		if entity.Type == EntityFarm {
			assert.NotNil(t, rec.KPIs.Farm, entity.ID)
			assert.Nil(t, rec.KPIs.Distribution, entity.ID)
		} else {
			assert.Nil(t, rec.KPIs.Farm, entity.ID)
			assert.NotNil(t, rec.KPIs.Distribution, entity.ID)
		}
	}
}

func TestWeekEndingIsSaturdayForEveryWeekday(t *testing.T) {
	// Sweep a full week around the seed date; all land on the same Saturday.
	for day := 12; day <= 18; day++ {
		report := SeedReport(time.Date(2026, 1, day, 9, 0, 0, 0, time.UTC))
		assert.Equal(t, "2026-01-17", report.WeekEnding, "day %d", day)
	}
}

func TestCloneIsDeep(t *testing.T) {
	report := SeedReport(time.Now())
	clone := report.Clone()

	clone.Records[0].KPIs.Farm.Production = -1
	clone.Priorities[0] = "tampered"
	clone.ESMS.Social[0] = "tampered"

	assert.Equal(t, 12.5, report.Records[0].KPIs.Farm.Production)
	assert.NotEqual(t, "tampered", report.Priorities[0])
	assert.NotEqual(t, "tampered", report.ESMS.Social[0])
}
