package core

import (
	"fmt"
	"sort"

	"github.com/sperez1989/basket/schema"
)

// DeriveCPI builds section 1: the latest-year CPI comparison per selected
// category, Canada vs the OECD average. Categories with no rows in the
// filtered window produce a notice, not an error.
func DeriveCPI(rows []schema.SeriesRow, cats []string) schema.CPIResult {
	var result schema.CPIResult
	for _, cat := range cats {
		label := schema.CategoryLabel(cat)

		var catRows []schema.SeriesRow
		for _, r := range rows {
			if r.Category == cat {
				catRows = append(catRows, r)
			}
		}
		if len(catRows) == 0 {
			result.Notices = append(result.Notices,
				fmt.Sprintf("No CPI data available for %s in the selected year range.", label))
			continue
		}

		latest, _ := latestSeriesYear(catRows)
		row := rowAtYear(catRows, latest)

		finding := schema.CPIFinding{
			Category:      cat,
			CategoryLabel: label,
			Year:          latest,
			CanCPI:        row.CanCPI,
			OECDCPI:       row.OECDCPI,
			Relation:      Compare(row.CanCPI, row.OECDCPI),
		}
		finding.Sentence = CPISentence(finding)
		result.Findings = append(result.Findings, finding)
	}
	return result
}

// rowAtYear returns the first row matching the year. Input data carries one
// row per (year, category), so "first" is unambiguous.
func rowAtYear(rows []schema.SeriesRow, year int) schema.SeriesRow {
	for _, r := range rows {
		if r.Year == year {
			return r
		}
	}
	return rows[0]
}

// DeriveExpenditure builds section 2: expenditure share and growth at the
// top of the selected year range, Canada vs the OECD average.
func DeriveExpenditure(rows []schema.SeriesRow, cats []string, yr YearRange) schema.ExpenditureResult {
	result := schema.ExpenditureResult{Year: yr.To}

	var lastRows []schema.SeriesRow
	for _, r := range rows {
		if r.Year == yr.To {
			lastRows = append(lastRows, r)
		}
	}
	if len(lastRows) == 0 {
		result.Notices = append(result.Notices,
			"No expenditure data available for the selected year range.")
		return result
	}

	for _, cat := range cats {
		var row *schema.SeriesRow
		for i := range lastRows {
			if lastRows[i].Category == cat {
				row = &lastRows[i]
				break
			}
		}
		if row == nil {
			continue
		}

		finding := schema.ExpenditureFinding{
			Category:       cat,
			CategoryLabel:  schema.CategoryLabel(cat),
			Year:           yr.To,
			CanShare:       row.CanExpShare,
			OECDShare:      row.OECDExpShare,
			ShareRelation:  Compare(row.CanExpShare, row.OECDExpShare),
			CanGrowth:      row.CanExpGrowth,
			OECDGrowth:     row.OECDExpGrowth,
			GrowthRelation: Compare(row.CanExpGrowth, row.OECDExpGrowth),
		}
		finding.Sentence = ExpenditureSentence(finding)
		result.Findings = append(result.Findings, finding)
	}
	return result
}

// DeriveClusters builds section 3: cluster membership counts, Canada's
// cluster and its peer countries. Canada missing from the assignment table
// is reported, never raised.
func DeriveClusters(ds *schema.Dataset) schema.ClustersResult {
	result := schema.ClustersResult{CountryCount: ds.CountryCount()}

	countByCluster := make(map[int]int)
	for _, a := range ds.Clusters {
		countByCluster[a.Cluster]++
	}
	clusterIDs := make([]int, 0, len(countByCluster))
	for id := range countByCluster {
		clusterIDs = append(clusterIDs, id)
	}
	sort.Ints(clusterIDs)
	for _, id := range clusterIDs {
		result.Counts = append(result.Counts, schema.ClusterCount{Cluster: id, Countries: countByCluster[id]})
	}

	for _, a := range ds.Clusters {
		result.Members = append(result.Members, schema.ClusterMember{
			Country:     a.Country,
			CountryName: schema.CountryName(a.Country),
			Cluster:     a.Cluster,
		})
	}
	sort.Slice(result.Members, func(i, j int) bool {
		if result.Members[i].Cluster != result.Members[j].Cluster {
			return result.Members[i].Cluster < result.Members[j].Cluster
		}
		return result.Members[i].Country < result.Members[j].Country
	})

	canadaCluster, present := ds.CanadaCluster()
	result.CanadaPresent = present
	if present {
		result.CanadaCluster = canadaCluster
		for _, a := range ds.Clusters {
			if a.Cluster == canadaCluster && a.Country != schema.CanadaISO3 {
				result.Peers = append(result.Peers, schema.CountryDisplay(a.Country))
			}
		}
		sort.Strings(result.Peers)
	}
	result.Sentence = ClustersSentence(result)
	return result
}

// DeriveClusterCPI builds section 4: Canada's latest-year CPI against the
// cluster averages per selected category.
func DeriveClusterCPI(rows []schema.ClusterSeriesRow, cats []string) schema.ClusterCPIResult {
	var result schema.ClusterCPIResult
	if len(rows) == 0 {
		result.Notices = append(result.Notices,
			"No CPI time-series data available for the selected filters.")
		return result
	}

	for _, cat := range cats {
		var catRows []schema.ClusterSeriesRow
		for _, r := range rows {
			if r.Category == cat {
				catRows = append(catRows, r)
			}
		}
		if len(catRows) == 0 {
			continue
		}

		latest, _ := latestClusterSeriesYear(catRows)

		var canCPI *float64
		var competitors []schema.GroupValue
		for _, r := range catRows {
			if r.Year != latest {
				continue
			}
			if r.Group == schema.CanadaGroup {
				canCPI = r.AvgCPI
				continue
			}
			// First-encountered order is the documented tie-break for the
			// max-of-group selection below.
			competitors = append(competitors, schema.GroupValue{Group: r.Group, Value: r.AvgCPI})
		}

		finding := schema.ClusterCPIFinding{
			Category:      cat,
			CategoryLabel: schema.CategoryLabel(cat),
			Year:          latest,
			CanCPI:        canCPI,
		}
		if max, ok := MaxCompetitor(competitors); ok && present(canCPI) {
			finding.Max = max
			finding.Complete = true
		}
		finding.Sentence = ClusterCPISentence(finding)
		result.Findings = append(result.Findings, finding)
	}
	return result
}

// DeriveClusterExpenditure builds section 5: Canada's latest-year
// expenditure share and growth against the cluster averages per selected
// category.
func DeriveClusterExpenditure(rows []schema.ClusterExpenditureRow, cats []string) schema.ClusterExpResult {
	var result schema.ClusterExpResult
	if len(rows) == 0 {
		result.Notices = append(result.Notices,
			"No expenditure data available for the selected filters.")
		return result
	}

	latest, _ := latestClusterExpYear(rows)
	result.Year = latest

	for _, cat := range cats {
		var canShare, canGrowth *float64
		var canadaSeen bool
		var competitors []schema.GroupValue
		for _, r := range rows {
			if r.Category != cat || r.Year != latest {
				continue
			}
			if r.Group == schema.CanadaGroup {
				canadaSeen = true
				canShare = r.AvgExpShare
				canGrowth = r.AvgExpGrowth
				continue
			}
			competitors = append(competitors, schema.GroupValue{Group: r.Group, Value: r.AvgExpShare})
		}
		if !canadaSeen && len(competitors) == 0 {
			continue
		}

		finding := schema.ClusterExpFinding{
			Category:      cat,
			CategoryLabel: schema.CategoryLabel(cat),
			Year:          latest,
			CanShare:      canShare,
			CanGrowth:     canGrowth,
		}
		if max, ok := MaxCompetitor(competitors); ok && present(canShare) && present(canGrowth) {
			finding.MaxShare = max
			finding.Complete = true
		}
		finding.Sentence = ClusterExpSentence(finding)
		result.Findings = append(result.Findings, finding)
	}
	return result
}

// DeriveOverview summarizes the loaded dataset (the dashboard's overview
// box).
func DeriveOverview(ds *schema.Dataset) schema.OverviewResult {
	minYear, _ := ds.MinYear()
	maxYear, _ := ds.MaxYear()

	var cats []schema.CategoryInfo
	for _, code := range ds.Categories() {
		cats = append(cats, schema.CategoryInfo{Code: code, Label: schema.CategoryLabel(code)})
	}

	return schema.OverviewResult{
		CountryCount: ds.CountryCount(),
		MinYear:      minYear,
		MaxYear:      maxYear,
		Categories:   cats,
		SeriesRows:   len(ds.Series),
		ClusterRows:  len(ds.Clusters),
	}
}
