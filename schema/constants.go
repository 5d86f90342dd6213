package schema

// Custom string types for type safety.
type (
	// OutputMode represents the format of the output.
	OutputMode string

	// Relation represents the directional outcome of a scalar comparison.
	Relation string

	// Section represents a dashboard section rendered by a command.
	Section string

	// DatabaseBackend represents the database backend for caching and history.
	DatabaseBackend string
)

// All output modes supported.
const (
	TextOut    OutputMode = "text" // default
	CSVOut     OutputMode = "csv"
	JSONOut    OutputMode = "json"
	ParquetOut OutputMode = "parquet"
)

// All comparison outcomes supported. Compare in core guarantees these are
// exhaustive: no scalar pair maps to anything else.
const (
	RelationAbove        Relation = "above"
	RelationBelow        Relation = "below"
	RelationSimilar      Relation = "similar"
	RelationIncomparable Relation = "incomparable"
)

// All dashboard sections supported.
const (
	OverviewSection    Section = "overview"
	CPISection         Section = "cpi"
	ExpenditureSection Section = "expenditure"
	ClustersSection    Section = "clusters"
	ClusterCPISection  Section = "cluster-cpi"
	ClusterExpSection  Section = "cluster-expenditure"
)

// All database backends supported.
const (
	SQLiteBackend     DatabaseBackend = "sqlite" // default
	MySQLBackend      DatabaseBackend = "mysql"
	PostgreSQLBackend DatabaseBackend = "postgresql"
	NoneBackend       DatabaseBackend = "none"
)

// ValidOutputModes lists all valid output modes.
var ValidOutputModes = map[OutputMode]struct{}{
	TextOut:    {},
	CSVOut:     {},
	JSONOut:    {},
	ParquetOut: {},
}

// ValidDatabaseBackends lists all valid database backends.
var ValidDatabaseBackends = map[DatabaseBackend]struct{}{
	SQLiteBackend:     {},
	MySQLBackend:      {},
	PostgreSQLBackend: {},
	NoneBackend:       {},
}

// AllSections lists the sections in the order the dashboard presents them.
var AllSections = []Section{
	OverviewSection,
	CPISection,
	ExpenditureSection,
	ClustersSection,
	ClusterCPISection,
	ClusterExpSection,
}

// Vocabulary maps the three comparable relations to section-specific wording.
// Every section shares the same comparison function and differs only in the
// words interpolated into its sentences.
type Vocabulary struct {
	Greater string
	Less    string
	Equal   string
}

// Word returns the vocabulary entry for a relation. The second return is
// false for RelationIncomparable, which has no wording of its own: the
// caller must emit a missing-data sentence instead.
func (v Vocabulary) Word(r Relation) (string, bool) {
	switch r {
	case RelationAbove:
		return v.Greater, true
	case RelationBelow:
		return v.Less, true
	case RelationSimilar:
		return v.Equal, true
	default:
		return "", false
	}
}

// Wordings used by the dashboard sections.
var (
	// CPIVocabulary words the latest-year CPI comparison.
	CPIVocabulary = Vocabulary{Greater: "above", Less: "below", Equal: "very close to"}

	// ShareVocabulary words the expenditure share comparison.
	ShareVocabulary = Vocabulary{
		Greater: "a higher expenditure share than",
		Less:    "a lower expenditure share than",
		Equal:   "a similar expenditure share to",
	}

	// GrowthVocabulary words the expenditure growth comparison.
	GrowthVocabulary = Vocabulary{Greater: "faster than", Less: "slower than", Equal: "at a similar pace to"}
)
