// Package report renders an allocation as the paper ID listing organisers
// review and later load back into the conference database.
//
// The text form looks like:
//
//	# ID, Title; PID
//	# Theme 1: Science Platforms and Data Lakes
//	 42, "Serving petabytes"     ; O1-42
//	  7, "A poster"              ; P1-7
//
// A PID is the submission type prefix, the theme display index, a dash and
// the abstract ID.
package report

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"unicode/utf8"

	"github.com/mesh-intelligence/themes/internal/allocator"
	"github.com/mesh-intelligence/themes/pkg/types"
)

// Header is the first line of every text report.
const Header = "# ID, Title; PID"

// Entry is one abstract in the report.
type Entry struct {
	AbstractID int    `json:"abstract_id"`
	Title      string `json:"title"`
	PaperID    string `json:"paper_id"`
}

// Section is one theme with its display index and entries.
type Section struct {
	Index   int     `json:"index"`
	ThemeID int     `json:"theme_id"`
	Label   string  `json:"label"`
	Entries []Entry `json:"entries"`
}

// Report is a rendered allocation.
type Report struct {
	RunID    string    `json:"run_id,omitempty"`
	Sections []Section `json:"sections"`
}

// Build resolves titles and PIDs for every member of the assignment.
// A member with a submission type missing from the catalog, or with a line
// break in its title, is a *types.InvalidInputError; a member missing from abstracts is a
// *types.DataConsistencyError.
func Build(a types.Assignment, abstracts []types.Abstract, c types.Catalog) (Report, error) {
	byID := make(map[int]types.Abstract, len(abstracts))
	for _, abs := range abstracts {
		byID[abs.ID] = abs
	}

	themes := allocator.Renumber(a)
	sections := make([]Section, len(themes))
	for i, dt := range themes {
		s := Section{Index: dt.Index, ThemeID: dt.ID, Label: dt.Label, Entries: []Entry{}}
		for _, id := range dt.Members {
			abs, ok := byID[id]
			if !ok {
				return Report{}, &types.DataConsistencyError{AbstractID: id, Reason: "assigned but not among the abstracts"}
			}
			if strings.ContainsAny(abs.Title, "\r\n") {
				return Report{}, &types.InvalidInputError{AbstractID: id, Reason: "title contains a line break"}
			}
			prefix, ok := c.Prefix(abs.TypeID)
			if !ok {
				return Report{}, &types.InvalidInputError{
					AbstractID: id,
					Reason:     fmt.Sprintf("submission type %d has no PID prefix", abs.TypeID),
				}
			}
			s.Entries = append(s.Entries, Entry{
				AbstractID: id,
				Title:      abs.Title,
				PaperID:    FormatPaperID(prefix, dt.Index, id),
			})
		}
		sections[i] = s
	}

	return Report{Sections: sections}, nil
}

// FormatPaperID returns the PID for an abstract, e.g. "P3-42".
func FormatPaperID(prefix string, index, abstractID int) string {
	return fmt.Sprintf("%s%d-%d", prefix, index, abstractID)
}

// WriteText writes the report in its aligned text form.
func (r Report) WriteText(w io.Writer) error {
	width := 0
	for _, s := range r.Sections {
		for _, e := range s.Entries {
			width = max(width, utf8.RuneCountInString(e.Title)+2)
		}
	}

	if _, err := fmt.Fprintln(w, Header); err != nil {
		return err
	}
	for _, s := range r.Sections {
		if _, err := fmt.Fprintf(w, "# Theme %d: %s\n", s.Index, s.Label); err != nil {
			return err
		}
		for _, e := range s.Entries {
			quoted := `"` + e.Title + `"`
			if _, err := fmt.Fprintf(w, "%3d, %-*s; %s\n", e.AbstractID, width, quoted, e.PaperID); err != nil {
				return err
			}
		}
	}
	return nil
}

// WriteJSON writes the report as indented JSON.
func (r Report) WriteJSON(w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(r)
}

// Len returns the number of entries across all sections.
func (r Report) Len() int {
	n := 0
	for _, s := range r.Sections {
		n += len(s.Entries)
	}
	return n
}
