package contract

import (
	"fmt"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/huangsam/hoopstat/schema"
)

// Default values for configuration.
const (
	DefaultTeamID    = 1610612743 // Denver Nuggets
	DefaultPrecision = 1
	MaxPrecision     = 3
	DefaultDelay     = 2 * time.Second
	DefaultTimeout   = 30 * time.Second
	DefaultCacheTTL  = 24 * time.Hour
	DefaultBaseURL   = "https://stats.nba.com/stats"

	// NoGameCap keeps every listed game. A cap of 0 lists none.
	NoGameCap = -1
)

// DateTimeFormat is the default date time representation.
var DateTimeFormat = time.RFC3339

// Config holds the runtime configuration for every command.
// This struct remains the "final, validated" config.
type Config struct {
	Season     string // normalized to YYYY-YY
	TeamID     int
	MaxGames   int // NoGameCap keeps every game
	TeamName   string
	PlayerSlug string
	Variant    schema.StatsVariant
	GameIDs    []string
	Delay      time.Duration

	Clocks  []string
	Periods []int

	Output     schema.OutputMode
	OutputFile string
	Precision  int
	Width      int // Terminal width override (0 = auto-detect)
	UseColors  bool

	BaseURL string
	Timeout time.Duration

	CacheBackend   schema.DatabaseBackend
	CacheDBConnect string // Please use env var as this is plaintext
	CacheTTL       time.Duration

	HistoryBackend   schema.DatabaseBackend
	HistoryDBConnect string // Please use env var as this is plaintext
}

// ConfigRawInput holds the raw inputs from all sources (flags, env, config file).
// Viper unmarshals into this struct.
type ConfigRawInput struct {
	// --- Fields from rootCmd.PersistentFlags() ---
	Output           string `mapstructure:"output"`
	OutputFile       string `mapstructure:"output-file"`
	Precision        int    `mapstructure:"precision"`
	Width            int    `mapstructure:"width"`
	Color            string `mapstructure:"color"`
	BaseURL          string `mapstructure:"base-url"`
	Timeout          string `mapstructure:"timeout"`
	CacheBackend     string `mapstructure:"cache-backend"`
	CacheDBConnect   string `mapstructure:"cache-db-connect"`
	CacheTTL         string `mapstructure:"cache-ttl"`
	HistoryBackend   string `mapstructure:"history-backend"`
	HistoryDBConnect string `mapstructure:"history-db-connect"`

	// --- Fields from gamesCmd and boxscoresCmd flags ---
	Season   string `mapstructure:"season"`
	TeamID   int    `mapstructure:"team-id"`
	MaxGames int    `mapstructure:"max-games"`

	// --- Fields from boxscoresCmd.Flags() ---
	TeamName string `mapstructure:"team-name"`
	Player   string `mapstructure:"player"`
	Variant  string `mapstructure:"variant"`
	GameIDs  string `mapstructure:"game-ids"`
	Delay    string `mapstructure:"delay"`

	// --- Fields from timeaxisCmd.Flags() ---
	Clocks  string `mapstructure:"clocks"`
	Periods string `mapstructure:"periods"`
}

// Clone returns a deep copy of the Config struct.
func (c *Config) Clone() *Config {
	clone := *c
	clone.GameIDs = slices.Clone(c.GameIDs)
	clone.Clocks = slices.Clone(c.Clocks)
	clone.Periods = slices.Clone(c.Periods)
	return &clone
}

// ProcessAndValidate performs all parsing and validation on the raw inputs
// and updates the final Config struct.
func ProcessAndValidate(cfg *Config, input *ConfigRawInput) error {
	if err := validateOutputInputs(cfg, input); err != nil {
		return err
	}
	if err := validateQueryInputs(cfg, input); err != nil {
		return err
	}
	if err := processTimeAxisInputs(cfg, input); err != nil {
		return err
	}
	if err := validateBackendConfigs(cfg, input); err != nil {
		return err
	}
	return nil
}

// ValidateGameQuery checks the inputs needed to list a team's games.
// Commands that list games call it after ProcessAndValidate.
func ValidateGameQuery(cfg *Config) error {
	if cfg.Season == "" {
		return fmt.Errorf("--season is required (e.g. 2023-2024)")
	}
	if cfg.TeamID <= 0 {
		return fmt.Errorf("--team-id must be greater than 0 (received %d)", cfg.TeamID)
	}
	return nil
}

// RevalidateSeason normalizes a season override, as supplied by MCP tool arguments.
func RevalidateSeason(cfg *Config, season string) error {
	if season == "" {
		return nil
	}
	normalized, err := NormalizeSeason(season)
	if err != nil {
		return err
	}
	cfg.Season = normalized
	return nil
}

// ValidateDatabaseConnectionString validates the format of database connection strings
// for MySQL, PostgreSQL and Redis backends.
func ValidateDatabaseConnectionString(backend schema.DatabaseBackend, connStr string) error {
	switch backend {
	case schema.SQLiteBackend, schema.NoneBackend:
		return nil
	case schema.MySQLBackend:
		if connStr == "" {
			return fmt.Errorf("a connection string is required when using %s backend", backend)
		}
		if !strings.Contains(connStr, "@tcp(") {
			return fmt.Errorf("MySQL connection string must contain '@tcp(' for host:port specification")
		}
		if !strings.Contains(connStr, "/") {
			return fmt.Errorf("MySQL connection string must contain '/' followed by database name")
		}
	case schema.PostgreSQLBackend:
		if connStr == "" {
			return fmt.Errorf("a connection string is required when using %s backend", backend)
		}
		if !strings.Contains(connStr, "host=") {
			return fmt.Errorf("PostgreSQL connection string must contain 'host=' parameter")
		}
		if !strings.Contains(connStr, "dbname=") {
			return fmt.Errorf("PostgreSQL connection string must contain 'dbname=' parameter")
		}
	case schema.RedisBackend:
		if connStr != "" && !strings.HasPrefix(connStr, "redis://") && !strings.HasPrefix(connStr, "rediss://") {
			return fmt.Errorf("Redis connection string must be a redis:// or rediss:// URL")
		}
	}
	return nil
}

// validateOutputInputs processes output and presentation fields.
func validateOutputInputs(cfg *Config, input *ConfigRawInput) error {
	cfg.OutputFile = input.OutputFile
	cfg.Width = input.Width

	colors, err := ParseBoolString(input.Color)
	if err != nil {
		return fmt.Errorf("invalid --color value: %w", err)
	}
	cfg.UseColors = colors

	if input.Precision < 0 || input.Precision > MaxPrecision {
		return fmt.Errorf("precision must be between 0 and %d (received %d)", MaxPrecision, input.Precision)
	}
	cfg.Precision = input.Precision

	cfg.Output = schema.OutputMode(strings.ToLower(input.Output))
	if _, ok := schema.ValidOutputModes[cfg.Output]; !ok {
		return fmt.Errorf("invalid output format '%s'. must be text, csv, json, parquet", input.Output)
	}
	if cfg.Output == schema.ParquetOut && cfg.OutputFile == "" {
		return fmt.Errorf("--output-file is required for parquet output")
	}

	cfg.BaseURL = strings.TrimSuffix(input.BaseURL, "/")
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultBaseURL
	}

	cfg.Timeout, err = parseDurationInput("timeout", input.Timeout, DefaultTimeout)
	if err != nil {
		return err
	}
	if cfg.Timeout <= 0 {
		return fmt.Errorf("timeout must be greater than 0 (received %s)", cfg.Timeout)
	}
	return nil
}

// validateQueryInputs processes the game finder and box score fields.
func validateQueryInputs(cfg *Config, input *ConfigRawInput) error {
	cfg.Season = ""
	if input.Season != "" {
		season, err := NormalizeSeason(input.Season)
		if err != nil {
			return err
		}
		cfg.Season = season
	}
	cfg.TeamID = input.TeamID

	if input.MaxGames < NoGameCap {
		return fmt.Errorf("max-games must be %d (all games) or a count of at least 0 (received %d)", NoGameCap, input.MaxGames)
	}
	cfg.MaxGames = input.MaxGames

	cfg.TeamName = strings.TrimSpace(input.TeamName)
	if cfg.TeamName == "" {
		cfg.TeamName = schema.DefaultTeamName
	}
	cfg.PlayerSlug = strings.TrimSpace(input.Player)

	cfg.Variant = schema.StatsVariant(strings.ToLower(input.Variant))
	if cfg.Variant == "" {
		cfg.Variant = schema.TraditionalVariant
	}
	if _, ok := schema.ValidStatsVariants[cfg.Variant]; !ok {
		return fmt.Errorf("invalid variant '%s'. must be traditional, advanced", input.Variant)
	}

	cfg.GameIDs = splitCSV(input.GameIDs)

	delay, err := parseDurationInput("delay", input.Delay, DefaultDelay)
	if err != nil {
		return err
	}
	if delay < 0 {
		return fmt.Errorf("delay cannot be negative (received %s)", delay)
	}
	cfg.Delay = delay
	return nil
}

// processTimeAxisInputs parses the comma separated clock and period lists.
// Length agreement is checked by the clock normalizer itself.
func processTimeAxisInputs(cfg *Config, input *ConfigRawInput) error {
	cfg.Clocks = splitCSV(input.Clocks)
	cfg.Periods = nil
	for _, p := range splitCSV(input.Periods) {
		period, err := strconv.Atoi(p)
		if err != nil {
			return fmt.Errorf("invalid period %q: %w", p, err)
		}
		cfg.Periods = append(cfg.Periods, period)
	}
	return nil
}

// validateBackendConfigs validates cache and history backend configurations.
func validateBackendConfigs(cfg *Config, input *ConfigRawInput) error {
	// --- Cache Backend Validation ---
	cfg.CacheBackend = schema.DatabaseBackend(strings.ToLower(input.CacheBackend))
	if cfg.CacheBackend == "" {
		cfg.CacheBackend = schema.SQLiteBackend
	}
	if _, ok := schema.ValidCacheBackends[cfg.CacheBackend]; !ok {
		return fmt.Errorf("invalid cache backend '%s'. must be sqlite, mysql, postgresql, redis, none", input.CacheBackend)
	}
	cfg.CacheDBConnect = input.CacheDBConnect
	if err := ValidateDatabaseConnectionString(cfg.CacheBackend, cfg.CacheDBConnect); err != nil {
		return err
	}

	ttl, err := parseDurationInput("cache-ttl", input.CacheTTL, DefaultCacheTTL)
	if err != nil {
		return err
	}
	if ttl < 0 {
		return fmt.Errorf("cache-ttl cannot be negative (received %s)", ttl)
	}
	cfg.CacheTTL = ttl

	// --- History Backend Validation ---
	cfg.HistoryBackend = schema.DatabaseBackend(strings.ToLower(input.HistoryBackend))
	if cfg.HistoryBackend == "" {
		cfg.HistoryBackend = schema.NoneBackend
	}
	if _, ok := schema.ValidHistoryBackends[cfg.HistoryBackend]; !ok {
		return fmt.Errorf("invalid history backend '%s'. must be sqlite, mysql, postgresql, none", input.HistoryBackend)
	}
	cfg.HistoryDBConnect = input.HistoryDBConnect
	if err := ValidateDatabaseConnectionString(cfg.HistoryBackend, cfg.HistoryDBConnect); err != nil {
		return err
	}

	// Cache and history must not share one SQLite file
	if cfg.CacheBackend == schema.SQLiteBackend && cfg.HistoryBackend == schema.SQLiteBackend {
		cacheDBPath := cfg.CacheDBConnect
		if cacheDBPath == "" {
			cacheDBPath = GetCacheDBFilePath()
		}
		historyDBPath := cfg.HistoryDBConnect
		if historyDBPath == "" {
			historyDBPath = GetHistoryDBFilePath()
		}
		if cacheDBPath == historyDBPath {
			return fmt.Errorf("cache and history storage must use different SQLite database files. Both resolve to %q", cacheDBPath)
		}
	}

	return nil
}

// parseDurationInput parses a Go duration, falling back to def when raw is empty.
func parseDurationInput(name, raw string, def time.Duration) (time.Duration, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return def, nil
	}
	d, err := time.ParseDuration(raw)
	if err != nil {
		return 0, fmt.Errorf("invalid --%s value %q: %w", name, raw, err)
	}
	return d, nil
}

// splitCSV splits a comma separated list, dropping blanks.
func splitCSV(s string) []string {
	var out []string
	for part := range strings.SplitSeq(s, ",") {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}
