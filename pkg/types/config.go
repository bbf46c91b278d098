package types

import "errors"

// Config holds everything a run needs: where the snapshot lives, how the
// theme query filters submissions, how the allocator orders its pending set
// and the fixed dictionaries.
type Config struct {
	Backend    string           `json:"backend" yaml:"backend" mapstructure:"backend"`
	Database   string           `json:"database" yaml:"database" mapstructure:"database"`
	Query      QueryConfig      `json:"query" yaml:"query" mapstructure:"query"`
	Allocation AllocationConfig `json:"allocation" yaml:"allocation" mapstructure:"allocation"`
	Catalog    Catalog          `json:"catalog" yaml:"catalog" mapstructure:"catalog"`
}

// QueryConfig selects the submissions read from the snapshot.
type QueryConfig struct {
	ThemeQuestionID int      `json:"theme_question_id" yaml:"theme_question_id" mapstructure:"theme_question_id"`
	ExcludeTypes    []int    `json:"exclude_types" yaml:"exclude_types" mapstructure:"exclude_types"`
	ExcludeStates   []string `json:"exclude_states" yaml:"exclude_states" mapstructure:"exclude_states"`
}

// AllocationConfig tunes the greedy pass.
type AllocationConfig struct {
	Order string `json:"order" yaml:"order" mapstructure:"order"`
}

// Supported backend names.
const (
	BackendSQLite = "sqlite"
)

// Processing orders for abstracts with more than one candidate theme.
const (
	// OrderReverse takes the most recently discovered abstract first.
	OrderReverse = "reverse"
	// OrderInput takes abstracts in the order they were discovered.
	OrderInput = "input"
)

// Defaults matching the ADASS 2020 conference database.
const (
	DefaultThemeQuestionID = 3
	DefaultTutorialType    = 14
)

// Config validation errors.
var (
	ErrBackendEmpty   = errors.New("backend must not be empty")
	ErrBackendUnknown = errors.New("unknown backend")
	ErrDatabaseEmpty  = errors.New("database path must not be empty")
	ErrOrderUnknown   = errors.New("unknown processing order")
	ErrCatalogEmpty   = errors.New("catalog must define at least one theme")
	ErrDuplicateTheme = errors.New("duplicate theme id in catalog")
	ErrDuplicateType  = errors.New("duplicate submission type id in catalog")
	ErrPrefixInvalid  = errors.New("submission type prefix must be a single uppercase letter")
)

var knownBackends = map[string]bool{
	BackendSQLite: true,
}

var knownOrders = map[string]bool{
	OrderReverse: true,
	OrderInput:   true,
}

// DefaultConfig returns a Config with the built-in catalog and query filters.
// Database is left empty; callers set it from flags or config.yaml.
func DefaultConfig() Config {
	return Config{
		Backend: BackendSQLite,
		Query: QueryConfig{
			ThemeQuestionID: DefaultThemeQuestionID,
			ExcludeTypes:    []int{DefaultTutorialType},
			ExcludeStates:   []string{"deleted", "withdrawn"},
		},
		Allocation: AllocationConfig{Order: OrderReverse},
		Catalog:    DefaultCatalog(),
	}
}

// Validate checks that the Config is well-formed. It returns a sentinel error
// from this package on failure.
func (c Config) Validate() error {
	if c.Backend == "" {
		return ErrBackendEmpty
	}
	if !knownBackends[c.Backend] {
		return ErrBackendUnknown
	}
	if c.Database == "" {
		return ErrDatabaseEmpty
	}
	if !knownOrders[c.Allocation.Order] {
		return ErrOrderUnknown
	}
	return c.Catalog.Validate()
}
