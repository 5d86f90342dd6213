package schema

import "time"

// GroupValue pairs a group label with its (possibly missing) value. It is
// the unit the max-of-group selection works on.
type GroupValue struct {
	Group string   `json:"group"`
	Value *float64 `json:"value"`
}

// CPIFinding is the latest-year CPI comparison for one category
// (section 1: Canada vs the OECD average).
type CPIFinding struct {
	Category      string   `json:"category"`
	CategoryLabel string   `json:"category_label"`
	Year          int      `json:"year"`
	CanCPI        *float64 `json:"can_cpi"`
	OECDCPI       *float64 `json:"oecd_cpi"`
	Relation      Relation `json:"relation"`
	Sentence      string   `json:"sentence"`
}

// CPIResult holds section 1 output.
type CPIResult struct {
	Findings []CPIFinding `json:"findings"`
	Notices  []string     `json:"notices,omitempty"`
}

// ExpenditureFinding is the latest-year expenditure comparison for one
// category (section 2: share and growth, Canada vs the OECD average).
type ExpenditureFinding struct {
	Category      string   `json:"category"`
	CategoryLabel string   `json:"category_label"`
	Year          int      `json:"year"`
	CanShare      *float64 `json:"can_exp_share"`
	OECDShare     *float64 `json:"oecd_exp_share"`
	ShareRelation Relation `json:"share_relation"`

	CanGrowth      *float64 `json:"can_exp_growth"`
	OECDGrowth     *float64 `json:"oecd_exp_growth"`
	GrowthRelation Relation `json:"growth_relation"`

	Sentence string `json:"sentence"`
}

// ExpenditureResult holds section 2 output.
type ExpenditureResult struct {
	Year     int                  `json:"year"`
	Findings []ExpenditureFinding `json:"findings"`
	Notices  []string             `json:"notices,omitempty"`
}

// ClusterCount is the number of countries assigned to one cluster.
type ClusterCount struct {
	Cluster   int `json:"cluster"`
	Countries int `json:"countries"`
}

// ClusterMember is one row of the membership table.
type ClusterMember struct {
	Country     string `json:"country"`
	CountryName string `json:"country_name"`
	Cluster     int    `json:"cluster"`
}

// ClustersResult holds section 3 output. CanadaPresent false means Canada
// was absent from the assignment table; the section reports that instead of
// failing.
type ClustersResult struct {
	CountryCount  int             `json:"country_count"`
	Counts        []ClusterCount  `json:"counts"`
	CanadaPresent bool            `json:"canada_present"`
	CanadaCluster int             `json:"canada_cluster"`
	Peers         []string        `json:"peers,omitempty"` // "Name (ISO3)", sorted
	Members       []ClusterMember `json:"members"`
	Sentence      string          `json:"sentence"`
}

// ClusterCPIFinding is the latest-year CPI standing of Canada against the
// cluster averages for one category (section 4).
type ClusterCPIFinding struct {
	Category      string   `json:"category"`
	CategoryLabel string   `json:"category_label"`
	Year          int      `json:"year"`
	CanCPI        *float64 `json:"can_cpi"`
	// Max is the maximum-valued competitor group; only meaningful when
	// Complete is true.
	Max      GroupValue `json:"max"`
	Complete bool       `json:"complete"`
	Sentence string     `json:"sentence"`
}

// ClusterCPIResult holds section 4 output.
type ClusterCPIResult struct {
	Findings []ClusterCPIFinding `json:"findings"`
	Notices  []string            `json:"notices,omitempty"`
}

// ClusterExpFinding is the latest-year expenditure standing of Canada
// against the cluster averages for one category (section 5).
type ClusterExpFinding struct {
	Category      string   `json:"category"`
	CategoryLabel string   `json:"category_label"`
	Year          int      `json:"year"`
	CanShare      *float64 `json:"can_exp_share"`
	CanGrowth     *float64 `json:"can_exp_growth"`

	MaxShare GroupValue `json:"max_share"`
	Complete bool       `json:"complete"`
	Sentence string     `json:"sentence"`
}

// ClusterExpResult holds section 5 output.
type ClusterExpResult struct {
	Year     int                 `json:"year"`
	Findings []ClusterExpFinding `json:"findings"`
	Notices  []string            `json:"notices,omitempty"`
}

// CategoryInfo pairs a COICOP code with its display label.
type CategoryInfo struct {
	Code  string `json:"code"`
	Label string `json:"label"`
}

// OverviewResult summarizes the loaded dataset.
type OverviewResult struct {
	CountryCount int            `json:"country_count"`
	MinYear      int            `json:"min_year"`
	MaxYear      int            `json:"max_year"`
	Categories   []CategoryInfo `json:"categories"`
	SeriesRows   int            `json:"series_rows"`
	ClusterRows  int            `json:"cluster_rows"`
}

// CacheStatus holds status information about the dataset cache store.
type CacheStatus struct {
	Backend         string    `json:"backend"`
	Connected       bool      `json:"connected"`
	TotalEntries    int       `json:"total_entries"`
	LastEntryTime   time.Time `json:"last_entry_time,omitempty"`
	OldestEntryTime time.Time `json:"oldest_entry_time,omitempty"`
	TableSizeBytes  int64     `json:"table_size_bytes,omitempty"`
}

// HistoryStatus holds status information about the run-history store.
type HistoryStatus struct {
	Backend     string    `json:"backend"`
	Connected   bool      `json:"connected"`
	TotalRuns   int       `json:"total_runs"`
	LastRunTime time.Time `json:"last_run_time,omitempty"`
}

// RunRecord is one recorded section run in the history store.
type RunRecord struct {
	ID         int64     `json:"id"`
	Section    Section   `json:"section"`
	DataDir    string    `json:"data_dir"`
	Categories string    `json:"categories"` // comma-separated, as selected
	FromYear   int       `json:"from_year"`
	ToYear     int       `json:"to_year"`
	Findings   int       `json:"findings"`
	StartedAt  time.Time `json:"started_at"`
	DurationMs int64     `json:"duration_ms"`
}
