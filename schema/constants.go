package schema

// Custom string types for type safety.
type (
	// OutputMode represents the format of the output.
	OutputMode string

	// StatsVariant represents the flavor of box score requested upstream.
	StatsVariant string

	// DatabaseBackend represents the database backend for caching and history.
	DatabaseBackend string
)

// All output modes supported.
const (
	CSVOut     OutputMode = "csv"
	TextOut    OutputMode = "text" // default
	JSONOut    OutputMode = "json"
	ParquetOut OutputMode = "parquet"
)

// All stats variants supported.
const (
	TraditionalVariant StatsVariant = "traditional" // default
	AdvancedVariant    StatsVariant = "advanced"
)

// All database backends supported.
const (
	SQLiteBackend     DatabaseBackend = "sqlite" // default for cache
	MySQLBackend      DatabaseBackend = "mysql"
	PostgreSQLBackend DatabaseBackend = "postgresql"
	RedisBackend      DatabaseBackend = "redis" // cache only
	NoneBackend       DatabaseBackend = "none"
)

// DefaultTeamName is the box score team filter used when none is given.
const DefaultTeamName = "Nuggets"

// RegulationPeriodMinutes is the fixed length of a period, overtime included.
const RegulationPeriodMinutes = 12.0

// RegularSeasonThreshold is the exclusive lower bound on SEASON_ID for regular season games.
// Preseason ids start with 1 (e.g. 12023), regular season with 2 (e.g. 22023).
const RegularSeasonThreshold = 20000

// ValidOutputModes lists all valid output modes.
var ValidOutputModes = map[OutputMode]struct{}{
	CSVOut:     {},
	TextOut:    {},
	JSONOut:    {},
	ParquetOut: {},
}

// ValidStatsVariants lists all valid stats variants.
var ValidStatsVariants = map[StatsVariant]struct{}{
	TraditionalVariant: {},
	AdvancedVariant:    {},
}

// ValidCacheBackends lists all valid cache backends.
var ValidCacheBackends = map[DatabaseBackend]struct{}{
	SQLiteBackend:     {},
	MySQLBackend:      {},
	PostgreSQLBackend: {},
	RedisBackend:      {},
	NoneBackend:       {},
}

// ValidHistoryBackends lists all valid history backends.
var ValidHistoryBackends = map[DatabaseBackend]struct{}{
	SQLiteBackend:     {},
	MySQLBackend:      {},
	PostgreSQLBackend: {},
	NoneBackend:       {},
}

// TraditionalStatColumns is the column order for traditional box scores.
var TraditionalStatColumns = []string{
	"fieldGoalsMade",
	"fieldGoalsAttempted",
	"fieldGoalsPercentage",
	"threePointersMade",
	"threePointersAttempted",
	"threePointersPercentage",
	"freeThrowsMade",
	"freeThrowsAttempted",
	"freeThrowsPercentage",
	"reboundsOffensive",
	"reboundsDefensive",
	"reboundsTotal",
	"assists",
	"steals",
	"blocks",
	"turnovers",
	"foulsPersonal",
	"points",
	"plusMinusPoints",
}

// AdvancedStatColumns is the column order for advanced box scores.
var AdvancedStatColumns = []string{
	"estimatedOffensiveRating",
	"offensiveRating",
	"estimatedDefensiveRating",
	"defensiveRating",
	"estimatedNetRating",
	"netRating",
	"assistPercentage",
	"assistToTurnover",
	"assistRatio",
	"offensiveReboundPercentage",
	"defensiveReboundPercentage",
	"reboundPercentage",
	"turnoverRatio",
	"effectiveFieldGoalPercentage",
	"trueShootingPercentage",
	"usagePercentage",
	"estimatedUsagePercentage",
	"estimatedPace",
	"pace",
	"pacePer40",
	"possessions",
	"PIE",
}

// KnownStatColumns returns the known column order for a variant.
func KnownStatColumns(variant StatsVariant) []string {
	switch variant {
	case AdvancedVariant:
		return AdvancedStatColumns
	default:
		return TraditionalStatColumns
	}
}
