package domain

// SuiteListing is one suite from a binary's listing output
type SuiteListing struct {
	Name  string
	Cases []string
}

// Listing is the full hierarchy a binary lists
type Listing struct {
	BinaryPath string
	Suites     []SuiteListing
}

// TotalCases returns the number of cases across all suites
func (l Listing) TotalCases() int {
	total := 0
	for _, s := range l.Suites {
		total += len(s.Cases)
	}
	return total
}

// CaseNames returns every case as a qualified Suite::case name
func (l Listing) CaseNames() []string {
	var names []string
	for _, s := range l.Suites {
		for _, c := range s.Cases {
			names = append(names, s.Name+"::"+c)
		}
	}
	return names
}
