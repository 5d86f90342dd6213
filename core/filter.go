package core

import "github.com/sperez1989/basket/schema"

// YearRange is an inclusive year interval.
type YearRange struct {
	From int
	To   int
}

// Contains reports whether a year falls inside the interval.
func (yr YearRange) Contains(year int) bool {
	return year >= yr.From && year <= yr.To
}

// ClampYearRange resolves the requested interval against the data bounds.
// A zero endpoint means "use the data bound". The result is always a valid
// interval inside [minYear, maxYear].
func ClampYearRange(from, to, minYear, maxYear int) YearRange {
	if from == 0 || from < minYear {
		from = minYear
	}
	if to == 0 || to > maxYear {
		to = maxYear
	}
	if from > to {
		from = to
	}
	return YearRange{From: from, To: to}
}

// categorySet builds a membership set from the selected category codes.
func categorySet(cats []string) map[string]struct{} {
	set := make(map[string]struct{}, len(cats))
	for _, c := range cats {
		set[c] = struct{}{}
	}
	return set
}

// FilterSeries returns exactly the Canada-vs-OECD rows whose year lies in
// the interval and whose category is selected. Pure and stateless;
// re-executed per invocation.
func FilterSeries(rows []schema.SeriesRow, cats []string, yr YearRange) []schema.SeriesRow {
	set := categorySet(cats)
	var out []schema.SeriesRow
	for _, r := range rows {
		if _, ok := set[r.Category]; !ok {
			continue
		}
		if !yr.Contains(r.Year) {
			continue
		}
		out = append(out, r)
	}
	return out
}

// FilterClusterSeries filters the cluster CPI table the same way.
func FilterClusterSeries(rows []schema.ClusterSeriesRow, cats []string, yr YearRange) []schema.ClusterSeriesRow {
	set := categorySet(cats)
	var out []schema.ClusterSeriesRow
	for _, r := range rows {
		if _, ok := set[r.Category]; !ok {
			continue
		}
		if !yr.Contains(r.Year) {
			continue
		}
		out = append(out, r)
	}
	return out
}

// FilterClusterExpenditure filters the cluster expenditure table the same way.
func FilterClusterExpenditure(rows []schema.ClusterExpenditureRow, cats []string, yr YearRange) []schema.ClusterExpenditureRow {
	set := categorySet(cats)
	var out []schema.ClusterExpenditureRow
	for _, r := range rows {
		if _, ok := set[r.Category]; !ok {
			continue
		}
		if !yr.Contains(r.Year) {
			continue
		}
		out = append(out, r)
	}
	return out
}

// latestSeriesYear returns the largest year in the filtered series rows.
func latestSeriesYear(rows []schema.SeriesRow) (int, bool) {
	if len(rows) == 0 {
		return 0, false
	}
	latest := rows[0].Year
	for _, r := range rows[1:] {
		if r.Year > latest {
			latest = r.Year
		}
	}
	return latest, true
}

// latestClusterSeriesYear returns the largest year in filtered cluster CPI rows.
func latestClusterSeriesYear(rows []schema.ClusterSeriesRow) (int, bool) {
	if len(rows) == 0 {
		return 0, false
	}
	latest := rows[0].Year
	for _, r := range rows[1:] {
		if r.Year > latest {
			latest = r.Year
		}
	}
	return latest, true
}

// latestClusterExpYear returns the largest year in filtered cluster
// expenditure rows.
func latestClusterExpYear(rows []schema.ClusterExpenditureRow) (int, bool) {
	if len(rows) == 0 {
		return 0, false
	}
	latest := rows[0].Year
	for _, r := range rows[1:] {
		if r.Year > latest {
			latest = r.Year
		}
	}
	return latest, true
}
