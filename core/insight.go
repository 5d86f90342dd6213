// Package core has the loading, filtering and insight logic behind every
// dashboard section.
package core

import (
	"fmt"
	"math"

	"github.com/sperez1989/basket/schema"
)

// Compare derives the directional relation between two scalars. The outcome
// is exhaustive: above iff a > b, below iff a < b, similar iff a == b, and
// incomparable iff either side is missing. NaN counts as missing, so a
// malformed source value can never masquerade as "similar".
func Compare(a, b *float64) schema.Relation {
	if !present(a) || !present(b) {
		return schema.RelationIncomparable
	}
	switch {
	case *a > *b:
		return schema.RelationAbove
	case *a < *b:
		return schema.RelationBelow
	default:
		return schema.RelationSimilar
	}
}

// MaxCompetitor returns the group with the strictly greatest non-missing
// value. Exact ties are broken by first-encountered input order, which is
// deterministic because callers build the slice in a fixed group order.
// The second return is false when every value is missing or the slice is
// empty.
func MaxCompetitor(values []schema.GroupValue) (schema.GroupValue, bool) {
	var best schema.GroupValue
	found := false
	for _, v := range values {
		if !present(v.Value) {
			continue
		}
		if !found || *v.Value > *best.Value {
			best = v
			found = true
		}
	}
	return best, found
}

// present reports whether a scalar carries a usable value.
func present(v *float64) bool {
	return v != nil && !math.IsNaN(*v)
}

// Sentence formats. CPI and growth figures print with two decimals, shares
// with four, matching the source dashboard.
const (
	cpiFormat   = "%.2f%%"
	shareFormat = "%.4f"
)

// CPISentence words the latest-year CPI comparison for one category.
func CPISentence(f schema.CPIFinding) string {
	word, ok := schema.CPIVocabulary.Word(f.Relation)
	if !ok {
		return fmt.Sprintf("In %d, CPI for %s cannot be directly compared due to missing data.", f.Year, f.CategoryLabel)
	}
	return fmt.Sprintf("In %d, Canada's CPI for %s is %s the OECD average ("+cpiFormat+" vs "+cpiFormat+").",
		f.Year, f.CategoryLabel, word, *f.CanCPI, *f.OECDCPI)
}

// ExpenditureSentence words the latest-year share and growth comparison for
// one category. Share and growth degrade independently when data is missing.
func ExpenditureSentence(f schema.ExpenditureFinding) string {
	sharePart := "an expenditure share that cannot be compared due to missing data"
	if word, ok := schema.ShareVocabulary.Word(f.ShareRelation); ok {
		sharePart = fmt.Sprintf("%s the OECD average", word)
	}

	growthPart := "growth that cannot be compared due to missing data"
	if word, ok := schema.GrowthVocabulary.Word(f.GrowthRelation); ok {
		growthPart = fmt.Sprintf("spending growing %s the OECD average", word)
	}

	return fmt.Sprintf("In %s, Canada shows %s, and %s in %d.", f.CategoryLabel, sharePart, growthPart, f.Year)
}

// ClustersSentence words Canada's cluster membership.
func ClustersSentence(r schema.ClustersResult) string {
	if !r.CanadaPresent {
		return "Canada is not present in the clustering results."
	}
	return fmt.Sprintf("Canada belongs to cluster %d, together with %d countries.", r.CanadaCluster, len(r.Peers))
}

// ClusterCPISentence words Canada's latest-year CPI standing against the
// cluster averages for one category.
func ClusterCPISentence(f schema.ClusterCPIFinding) string {
	if !f.Complete {
		return fmt.Sprintf("Data for Canada or some clusters is missing in %d, so comparisons are limited.", f.Year)
	}
	return fmt.Sprintf("In %d, Canada's CPI for %s is "+cpiFormat+". The highest inflation among clusters is in %s at "+cpiFormat+".",
		f.Year, f.CategoryLabel, *f.CanCPI, f.Max.Group, *f.Max.Value)
}

// ClusterExpSentence words Canada's latest-year expenditure standing against
// the cluster averages for one category.
func ClusterExpSentence(f schema.ClusterExpFinding) string {
	if !f.Complete {
		return fmt.Sprintf("Data for Canada or some clusters is missing in %d, so detailed comparisons are limited.", f.Year)
	}
	return fmt.Sprintf("In %d, Canada's expenditure share in %s is "+shareFormat+" of total spending. "+
		"The highest share among clusters is in %s at "+shareFormat+". "+
		"Canada's spending growth in this category is "+cpiFormat+", relative to the cluster averages.",
		f.Year, f.CategoryLabel, *f.CanShare, f.MaxShare.Group, *f.MaxShare.Value, *f.CanGrowth)
}
