// Package chartgen renders PNG charts for the dashboard sections using
// github.com/wcharczuk/go-chart.
package chartgen

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/sperez1989/basket/schema"
	"github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"
)

const (
	chartWidth  = 900
	chartHeight = 500
)

// hexToColor parses a "#RRGGBB" string into a drawing color. Falls back to
// gray on malformed input so a bad palette entry never breaks rendering.
func hexToColor(hex string) drawing.Color {
	s := strings.TrimPrefix(hex, "#")
	if len(s) != 6 {
		return chart.ColorAlternateGray
	}
	v, err := strconv.ParseUint(s, 16, 32)
	if err != nil {
		return chart.ColorAlternateGray
	}
	return drawing.Color{
		R: uint8(v >> 16),
		G: uint8(v >> 8),
		B: uint8(v),
		A: 255,
	}
}

// lineStyle returns the stroke style for a time series line.
func lineStyle(col drawing.Color) chart.Style {
	return chart.Style{
		StrokeColor: col,
		StrokeWidth: 2.0,
	}
}

// groupColor picks the color for a cluster series group. Canada keeps its
// fixed color; "Cluster N" always gets palette slot N, regardless of which
// clusters appear in the data.
func groupColor(group string) drawing.Color {
	if group == schema.CanadaGroup {
		return hexToColor(schema.CanadaColorHex)
	}
	if n, ok := schema.GroupClusterNumber(group); ok {
		return hexToColor(schema.ClusterColorHex(n))
	}
	return chart.ColorAlternateGray
}

// seriesPoints collects the non-missing (year, value) pairs for one line.
func seriesPoints(years []int, values []*float64) (xs, ys []float64) {
	for i, v := range values {
		if v == nil {
			continue
		}
		xs = append(xs, float64(years[i]))
		ys = append(ys, *v)
	}
	return xs, ys
}

// writeChart renders a chart to a PNG file under dir.
func writeChart(ch chart.Chart, dir, name string) (string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("failed to create charts directory: %w", err)
	}
	path := filepath.Join(dir, name)
	f, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("failed to create chart file: %w", err)
	}
	defer func() { _ = f.Close() }()

	if err := ch.Render(chart.PNG, f); err != nil {
		return "", fmt.Errorf("failed to render chart %s: %w", name, err)
	}
	return path, nil
}

// writeBarChart renders a bar chart to a PNG file under dir.
func writeBarChart(ch chart.BarChart, dir, name string) (string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("failed to create charts directory: %w", err)
	}
	path := filepath.Join(dir, name)
	f, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("failed to create chart file: %w", err)
	}
	defer func() { _ = f.Close() }()

	if err := ch.Render(chart.PNG, f); err != nil {
		return "", fmt.Errorf("failed to render chart %s: %w", name, err)
	}
	return path, nil
}

// safeName turns a category code into a file name fragment.
func safeName(code string) string {
	return strings.ToLower(strings.ReplaceAll(code, "/", "_"))
}

// RenderCPICharts writes one CPI-over-time line chart per selected category,
// with a Canada line and an OECD average line. Categories with fewer than
// two plottable points per line are skipped silently. Returns the paths of
// the charts written.
func RenderCPICharts(rows []schema.SeriesRow, cats []string, dir string) ([]string, error) {
	var written []string
	for _, cat := range cats {
		var years []int
		var can, oecd []*float64
		for _, r := range rows {
			if r.Category != cat {
				continue
			}
			years = append(years, r.Year)
			can = append(can, r.CanCPI)
			oecd = append(oecd, r.OECDCPI)
		}

		var series []chart.Series
		if xs, ys := seriesPoints(years, can); len(xs) >= 2 {
			series = append(series, chart.ContinuousSeries{
				Name:    "Canada",
				XValues: xs,
				YValues: ys,
				Style:   lineStyle(hexToColor(schema.CanadaColorHex)),
			})
		}
		if xs, ys := seriesPoints(years, oecd); len(xs) >= 2 {
			series = append(series, chart.ContinuousSeries{
				Name:    "OECD average",
				XValues: xs,
				YValues: ys,
				Style:   lineStyle(hexToColor(schema.OECDColorHex)),
			})
		}
		if len(series) == 0 {
			continue
		}

		ch := chart.Chart{
			Title:      fmt.Sprintf("CPI: %s", schema.CategoryLabel(cat)),
			Width:      chartWidth,
			Height:     chartHeight,
			Background: chart.Style{Padding: chart.Box{Top: 40, Left: 16, Right: 16, Bottom: 16}},
			XAxis:      chart.XAxis{Name: "Year"},
			YAxis:      chart.YAxis{Name: "CPI (% change)"},
			Series:     series,
		}
		ch.Elements = []chart.Renderable{chart.Legend(&ch)}

		path, err := writeChart(ch, dir, fmt.Sprintf("cpi_%s.png", safeName(cat)))
		if err != nil {
			return written, err
		}
		written = append(written, path)
	}
	return written, nil
}

// RenderExpenditureCharts writes two bar charts for the expenditure findings:
// one for shares, one for growth, each with a Canada and an OECD bar per
// category. Missing values are skipped.
func RenderExpenditureCharts(findings []schema.ExpenditureFinding, dir string) ([]string, error) {
	var shareValues, growthValues []chart.Value
	canColor := hexToColor(schema.CanadaColorHex)
	oecdColor := hexToColor(schema.OECDColorHex)

	for _, f := range findings {
		if f.CanShare != nil {
			shareValues = append(shareValues, chart.Value{
				Label: fmt.Sprintf("CAN %s", f.Category),
				Value: *f.CanShare,
				Style: chart.Style{FillColor: canColor, StrokeColor: canColor},
			})
		}
		if f.OECDShare != nil {
			shareValues = append(shareValues, chart.Value{
				Label: fmt.Sprintf("OECD %s", f.Category),
				Value: *f.OECDShare,
				Style: chart.Style{FillColor: oecdColor, StrokeColor: oecdColor},
			})
		}
		if f.CanGrowth != nil {
			growthValues = append(growthValues, chart.Value{
				Label: fmt.Sprintf("CAN %s", f.Category),
				Value: *f.CanGrowth,
				Style: chart.Style{FillColor: canColor, StrokeColor: canColor},
			})
		}
		if f.OECDGrowth != nil {
			growthValues = append(growthValues, chart.Value{
				Label: fmt.Sprintf("OECD %s", f.Category),
				Value: *f.OECDGrowth,
				Style: chart.Style{FillColor: oecdColor, StrokeColor: oecdColor},
			})
		}
	}

	var written []string
	if len(shareValues) > 0 {
		ch := chart.BarChart{
			Title:      "Expenditure share: Canada vs OECD",
			Width:      chartWidth,
			Height:     chartHeight,
			Background: chart.Style{Padding: chart.Box{Top: 40}},
			BarWidth:   50,
			Bars:       shareValues,
		}
		path, err := writeBarChart(ch, dir, "expenditure_share.png")
		if err != nil {
			return written, err
		}
		written = append(written, path)
	}
	if len(growthValues) > 0 {
		ch := chart.BarChart{
			Title:      "Expenditure growth: Canada vs OECD",
			Width:      chartWidth,
			Height:     chartHeight,
			Background: chart.Style{Padding: chart.Box{Top: 40}},
			BarWidth:   50,
			Bars:       growthValues,
		}
		path, err := writeBarChart(ch, dir, "expenditure_growth.png")
		if err != nil {
			return written, err
		}
		written = append(written, path)
	}
	return written, nil
}

// RenderClusterCountsChart writes a bar chart of countries per cluster.
func RenderClusterCountsChart(counts []schema.ClusterCount, dir string) ([]string, error) {
	if len(counts) == 0 {
		return nil, nil
	}
	var values []chart.Value
	for _, c := range counts {
		col := hexToColor(schema.ClusterColorHex(c.Cluster))
		values = append(values, chart.Value{
			Label: fmt.Sprintf("Cluster %d", c.Cluster),
			Value: float64(c.Countries),
			Style: chart.Style{FillColor: col, StrokeColor: col},
		})
	}
	ch := chart.BarChart{
		Title:      "Countries per cluster",
		Width:      chartWidth,
		Height:     chartHeight,
		Background: chart.Style{Padding: chart.Box{Top: 40}},
		BarWidth:   60,
		Bars:       values,
	}
	path, err := writeBarChart(ch, dir, "cluster_counts.png")
	if err != nil {
		return nil, err
	}
	return []string{path}, nil
}

// RenderClusterCPICharts writes one CPI-over-time line chart per selected
// category, with a line per group (Canada plus each cluster average).
func RenderClusterCPICharts(rows []schema.ClusterSeriesRow, cats []string, dir string) ([]string, error) {
	var written []string
	for _, cat := range cats {
		byGroup := make(map[string][]schema.ClusterSeriesRow)
		var groupOrder []string
		for _, r := range rows {
			if r.Category != cat {
				continue
			}
			if _, seen := byGroup[r.Group]; !seen {
				groupOrder = append(groupOrder, r.Group)
			}
			byGroup[r.Group] = append(byGroup[r.Group], r)
		}

		var series []chart.Series
		for _, group := range groupOrder {
			groupRows := byGroup[group]
			years := make([]int, len(groupRows))
			values := make([]*float64, len(groupRows))
			for i, r := range groupRows {
				years[i] = r.Year
				values[i] = r.AvgCPI
			}
			xs, ys := seriesPoints(years, values)
			if len(xs) < 2 {
				continue
			}
			series = append(series, chart.ContinuousSeries{
				Name:    schema.GroupLabel(group),
				XValues: xs,
				YValues: ys,
				Style:   lineStyle(groupColor(group)),
			})
		}
		if len(series) == 0 {
			continue
		}

		ch := chart.Chart{
			Title:      fmt.Sprintf("CPI by cluster: %s", schema.CategoryLabel(cat)),
			Width:      chartWidth,
			Height:     chartHeight,
			Background: chart.Style{Padding: chart.Box{Top: 40, Left: 16, Right: 16, Bottom: 16}},
			XAxis:      chart.XAxis{Name: "Year"},
			YAxis:      chart.YAxis{Name: "CPI (% change)"},
			Series:     series,
		}
		ch.Elements = []chart.Renderable{chart.Legend(&ch)}

		path, err := writeChart(ch, dir, fmt.Sprintf("cluster_cpi_%s.png", safeName(cat)))
		if err != nil {
			return written, err
		}
		written = append(written, path)
	}
	return written, nil
}

// RenderClusterExpCharts writes one bar chart per selected category showing
// the latest-year expenditure share per group.
func RenderClusterExpCharts(rows []schema.ClusterExpenditureRow, cats []string, year int, dir string) ([]string, error) {
	var written []string
	for _, cat := range cats {
		var values []chart.Value
		for _, r := range rows {
			if r.Category != cat || r.Year != year || r.AvgExpShare == nil {
				continue
			}
			col := groupColor(r.Group)
			values = append(values, chart.Value{
				Label: schema.GroupLabel(r.Group),
				Value: *r.AvgExpShare,
				Style: chart.Style{FillColor: col, StrokeColor: col},
			})
		}
		if len(values) == 0 {
			continue
		}

		ch := chart.BarChart{
			Title:      fmt.Sprintf("Expenditure share by cluster: %s (%d)", schema.CategoryLabel(cat), year),
			Width:      chartWidth,
			Height:     chartHeight,
			Background: chart.Style{Padding: chart.Box{Top: 40}},
			BarWidth:   60,
			Bars:       values,
		}
		path, err := writeBarChart(ch, dir, fmt.Sprintf("cluster_expenditure_%s.png", safeName(cat)))
		if err != nil {
			return written, err
		}
		written = append(written, path)
	}
	return written, nil
}
