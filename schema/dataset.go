package schema

import (
	"sort"
	"time"
)

// CanadaGroup is the group label the cluster tables use for Canada itself.
const CanadaGroup = "Canada"

// CanadaISO3 is Canada's ISO3 code in the cluster assignment table.
const CanadaISO3 = "CAN"

// SeriesRow is one year/category observation comparing Canada against the
// OECD average. Any numeric field may be nil: the value was absent in the
// source data and must be treated as incomparable, never as zero.
type SeriesRow struct {
	Year     int      `json:"year"`
	Category string   `json:"category"`
	CanCPI   *float64 `json:"can_cpi"`
	OECDCPI  *float64 `json:"oecd_cpi"`

	CanExpShare  *float64 `json:"can_exp_share"`
	OECDExpShare *float64 `json:"oecd_exp_share"`

	CanExpGrowth  *float64 `json:"can_exp_growth"`
	OECDExpGrowth *float64 `json:"oecd_exp_growth"`
}

// ClusterAssignment maps one country to its precomputed cluster.
// Clusters are consumed here, never computed.
type ClusterAssignment struct {
	Country string `json:"country"` // ISO3 code
	Cluster int    `json:"cluster"` // small non-negative integer
}

// ClusterSeriesRow is one year/category CPI average for a group, where a
// group is either Canada or one of the numbered clusters.
type ClusterSeriesRow struct {
	Year     int      `json:"year"`
	Category string   `json:"category"`
	Group    string   `json:"group"` // "Canada" or "Cluster N"
	AvgCPI   *float64 `json:"avg_cpi"`
}

// ClusterExpenditureRow is one year/category expenditure observation for a
// group.
type ClusterExpenditureRow struct {
	Year         int      `json:"year"`
	Category     string   `json:"category"`
	Group        string   `json:"group"`
	AvgExpShare  *float64 `json:"avg_exp_share"`
	AvgExpGrowth *float64 `json:"avg_exp_growth"`
}

// Dataset holds every table the dashboard consumes. It is loaded once per
// invocation (or restored from the cache) and is read-only afterwards.
type Dataset struct {
	Series       []SeriesRow             `json:"series"`
	Clusters     []ClusterAssignment     `json:"clusters"`
	ClusterCPI   []ClusterSeriesRow      `json:"cluster_cpi"`
	ClusterExp   []ClusterExpenditureRow `json:"cluster_exp"`
	LoadedAt     time.Time               `json:"loaded_at"`
	SourceDir    string                  `json:"source_dir"`
	SourceStamp  string                  `json:"source_stamp"`
}

// MinYear returns the smallest year present in the Canada-vs-OECD series.
// The second return is false when the series is empty.
func (d *Dataset) MinYear() (int, bool) {
	return boundYear(d.Series, func(a, b int) bool { return a < b })
}

// MaxYear returns the largest year present in the Canada-vs-OECD series.
func (d *Dataset) MaxYear() (int, bool) {
	return boundYear(d.Series, func(a, b int) bool { return a > b })
}

func boundYear(rows []SeriesRow, better func(a, b int) bool) (int, bool) {
	if len(rows) == 0 {
		return 0, false
	}
	best := rows[0].Year
	for _, r := range rows[1:] {
		if better(r.Year, best) {
			best = r.Year
		}
	}
	return best, true
}

// Categories returns the sorted distinct category codes present in the
// Canada-vs-OECD series.
func (d *Dataset) Categories() []string {
	seen := make(map[string]struct{})
	for _, r := range d.Series {
		if r.Category != "" {
			seen[r.Category] = struct{}{}
		}
	}
	cats := make([]string, 0, len(seen))
	for c := range seen {
		cats = append(cats, c)
	}
	sort.Strings(cats)
	return cats
}

// CountryCount returns the number of distinct countries in the cluster
// assignment table.
func (d *Dataset) CountryCount() int {
	seen := make(map[string]struct{})
	for _, a := range d.Clusters {
		seen[a.Country] = struct{}{}
	}
	return len(seen)
}

// CanadaCluster returns Canada's cluster id. The second return is false when
// Canada is absent from the assignment table; callers must report that
// rather than fail.
func (d *Dataset) CanadaCluster() (int, bool) {
	for _, a := range d.Clusters {
		if a.Country == CanadaISO3 {
			return a.Cluster, true
		}
	}
	return 0, false
}

// Float64 returns a pointer to v. Convenience for building rows in tests and
// converters.
func Float64(v float64) *float64 {
	return &v
}
