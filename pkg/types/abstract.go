package types

// Row is a single tuple returned by the theme query. An abstract tagged with
// N candidate themes appears as N rows sharing AbstractID, Title and TypeID.
type Row struct {
	AbstractID int
	Title      string
	TypeID     int
	ThemeID    int
}

// Abstract is a conference submission eligible for theme classification.
type Abstract struct {
	ID         int    // Submission ID, assigned by the conference database.
	Title      string // Display title.
	TypeID     int    // Submission type, used only to pick the PID prefix.
	Candidates []int  // Candidate theme IDs, ordered, without duplicates.
}

// HasCandidate reports whether themeID is one of the abstract's candidates.
func (a Abstract) HasCandidate(themeID int) bool {
	for _, c := range a.Candidates {
		if c == themeID {
			return true
		}
	}
	return false
}

// Theme is a topical bucket that abstracts are grouped into.
type Theme struct {
	ID      int    // Stable identifier from the conference database.
	Label   string // Human-readable name from the catalog.
	Members []int  // Assigned abstract IDs, in assignment order.
}

// Assignment is the result of an allocation: every catalog theme in
// dictionary order with the abstracts assigned to it.
type Assignment struct {
	Themes []Theme
}

// Members returns the abstracts assigned to themeID, or nil if the theme is
// not part of the assignment.
func (a Assignment) Members(themeID int) []int {
	for _, t := range a.Themes {
		if t.ID == themeID {
			return t.Members
		}
	}
	return nil
}

// ThemeOf returns the theme an abstract was assigned to.
func (a Assignment) ThemeOf(abstractID int) (int, bool) {
	for _, t := range a.Themes {
		for _, m := range t.Members {
			if m == abstractID {
				return t.ID, true
			}
		}
	}
	return 0, false
}

// Len returns the total number of assigned abstracts.
func (a Assignment) Len() int {
	n := 0
	for _, t := range a.Themes {
		n += len(t.Members)
	}
	return n
}

// PaperID binds a PID such as "P3-42" to its abstract. Title is the title
// the PID was issued for and may be empty.
type PaperID struct {
	AbstractID int
	Title      string
	PID        string
}
