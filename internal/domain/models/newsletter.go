package models

// Status captures the operational health of one entity for the week.
type Status string

const (
	StatusHealthy  Status = "healthy"
	StatusCaution  Status = "caution"
	StatusCritical Status = "critical"
)

// FarmMetrics holds the KPI block that only exists on farm records.
type FarmMetrics struct {
	Production       float64 `json:"production"`
	ProductionTarget float64 `json:"productionTarget"`
	Mortality        float64 `json:"mortality"`
	FCR              float64 `json:"fcr"`
}

// DistributionMetrics holds the KPI block that only exists on distribution
// hub records. NewCustomers is optional even within the block.
type DistributionMetrics struct {
	SalesVolume     float64  `json:"salesVolume"`
	SalesTarget     float64  `json:"salesTarget"`
	FulfillmentRate float64  `json:"fulfillmentRate"`
	NewCustomers    *float64 `json:"newCustomers,omitempty"`
}

// KPISet carries the universal revenue figures plus exactly one of the two
// type-specific metric blocks. Consumers branch on which block is present,
// never on zero values.
type KPISet struct {
	Revenue       float64              `json:"revenue"`
	RevenueTarget float64              `json:"revenueTarget"`
	Farm          *FarmMetrics         `json:"farm,omitempty"`
	Distribution  *DistributionMetrics `json:"distribution,omitempty"`
}

// Operational holds the free-text narrative for one entity.
type Operational struct {
	Win       string `json:"win"`
	Challenge string `json:"challenge"`
}

// WeeklyRecord is one entity's KPI and narrative data for the reporting week.
type WeeklyRecord struct {
	EntityID    string      `json:"entityId"`
	Status      Status      `json:"status"`
	KPIs        KPISet      `json:"kpis"`
	Operational Operational `json:"operational"`
}

// Clone returns a deep copy of the record.
func (r WeeklyRecord) Clone() WeeklyRecord {
	out := r
	if r.KPIs.Farm != nil {
		farm := *r.KPIs.Farm
		out.KPIs.Farm = &farm
	}
	if r.KPIs.Distribution != nil {
		dist := *r.KPIs.Distribution
		if dist.NewCustomers != nil {
			nc := *dist.NewCustomers
			dist.NewCustomers = &nc
		}
		out.KPIs.Distribution = &dist
	}
	return out
}

// CashflowSummary holds the group cash position. Closing is an independently
// entered figure, never recomputed from opening, inflow and outflow.
type CashflowSummary struct {
	Opening       float64 `json:"opening"`
	CashIn        float64 `json:"cashIn"`
	CashOut       float64 `json:"cashOut"`
	Closing       float64 `json:"closing"`
	Receivables30 float64 `json:"receivables30"`
	Receivables60 float64 `json:"receivables60"`
}

// ESMS holds the environmental, social and compliance note lists.
type ESMS struct {
	Environmental []string `json:"environmental"`
	Social        []string `json:"social"`
	Compliance    []string `json:"compliance"`
}

// Clone returns a deep copy of the ESMS block.
func (e ESMS) Clone() ESMS {
	return ESMS{
		Environmental: cloneLines(e.Environmental),
		Social:        cloneLines(e.Social),
		Compliance:    cloneLines(e.Compliance),
	}
}

// NewsletterReport is the aggregate root for one week's newsletter.
type NewsletterReport struct {
	WeekNumber       int             `json:"weekNumber"`
	Year             int             `json:"year"`
	WeekEnding       string          `json:"weekEnding"`
	ExecutiveSummary string          `json:"executiveSummary"`
	Records          []WeeklyRecord  `json:"records"`
	Cashflow         CashflowSummary `json:"cashflow"`
	Priorities       []string        `json:"priorities"`
	SupportRequired  []string        `json:"supportRequired"`
	ESMS             ESMS            `json:"esms"`
}

// Clone returns a deep copy of the report, so an update can swap in a fully
// built replacement without readers ever observing a half-applied edit.
func (n NewsletterReport) Clone() NewsletterReport {
	out := n
	out.Records = make([]WeeklyRecord, len(n.Records))
	for i, rec := range n.Records {
		out.Records[i] = rec.Clone()
	}
	out.Priorities = cloneLines(n.Priorities)
	out.SupportRequired = cloneLines(n.SupportRequired)
	out.ESMS = n.ESMS.Clone()
	return out
}

func cloneLines(in []string) []string {
	if in == nil {
		return nil
	}
	out := make([]string, len(in))
	copy(out, in)
	return out
}
