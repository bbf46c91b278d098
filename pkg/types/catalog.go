package types

// ThemeEntry is one entry of the fixed theme dictionary.
type ThemeEntry struct {
	ID    int    `json:"id" yaml:"id" mapstructure:"id"`
	Label string `json:"label" yaml:"label" mapstructure:"label"`
}

// SubmissionType maps a submission type to the single-letter PID prefix.
type SubmissionType struct {
	ID     int    `json:"id" yaml:"id" mapstructure:"id"`
	Name   string `json:"name" yaml:"name" mapstructure:"name"`
	Prefix string `json:"prefix" yaml:"prefix" mapstructure:"prefix"`
}

// Catalog holds the fixed dictionaries the allocator and the report use.
// The order of Themes is the dictionary order: it drives tie-breaking and
// display renumbering.
type Catalog struct {
	Themes []ThemeEntry     `json:"themes" yaml:"themes" mapstructure:"themes"`
	Types  []SubmissionType `json:"types" yaml:"types" mapstructure:"types"`
}

// ThemeIDs returns the theme IDs in dictionary order.
func (c Catalog) ThemeIDs() []int {
	ids := make([]int, len(c.Themes))
	for i, t := range c.Themes {
		ids[i] = t.ID
	}
	return ids
}

// Label returns the label of a theme.
func (c Catalog) Label(themeID int) (string, bool) {
	for _, t := range c.Themes {
		if t.ID == themeID {
			return t.Label, true
		}
	}
	return "", false
}

// Prefix returns the PID prefix of a submission type.
func (c Catalog) Prefix(typeID int) (string, bool) {
	for _, st := range c.Types {
		if st.ID == typeID {
			return st.Prefix, true
		}
	}
	return "", false
}

// Validate checks that the catalog has at least one theme, that theme and
// type IDs are unique, and that every prefix is a single uppercase letter.
func (c Catalog) Validate() error {
	if len(c.Themes) == 0 {
		return ErrCatalogEmpty
	}
	seen := make(map[int]bool, len(c.Themes))
	for _, t := range c.Themes {
		if seen[t.ID] {
			return ErrDuplicateTheme
		}
		seen[t.ID] = true
	}
	seenTypes := make(map[int]bool, len(c.Types))
	for _, st := range c.Types {
		if seenTypes[st.ID] {
			return ErrDuplicateType
		}
		seenTypes[st.ID] = true
		if len(st.Prefix) != 1 || st.Prefix[0] < 'A' || st.Prefix[0] > 'Z' {
			return ErrPrefixInvalid
		}
	}
	return nil
}

// DefaultCatalog returns the ADASS 2020 theme dictionary and submission
// types, as configured in the conference database.
func DefaultCatalog() Catalog {
	return Catalog{
		Themes: []ThemeEntry{
			{7, "Science Platforms and Data Lakes"},
			{8, "Cloud Computing at Different Scales"},
			{9, "Cross-Discipline Projects"},
			{20, "Multi-Messenger Astronomy"},
			{21, "Machine Learning, Statistics, and Algorithms"},
			{22, "Time-Domain Ecosystem"},
			{23, "Citizen Science Projects in Astronomy"},
			{24, "Data Processing Pipelines and Science-Ready Data"},
			{25, "Data Interoperability"},
			{26, "Open Source Software and Community Development in Astronomy"},
			{27, "Other"},
		},
		Types: []SubmissionType{
			{13, "Poster", "P"},
			{3, "Talk", "O"},
			{4, "BoF", "B"},
			{15, "Focus Demo", "D"},
			{1, "Invited Talk", "I"},
			{17, "Software Prize Talk", "H"},
			{18, "Poster / Talk Waiting List", "P"},
		},
	}
}
