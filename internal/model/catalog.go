package model

// CandidateRepo is one repository listed in the dependents input.
type CandidateRepo struct {
	Name  string `json:"name"`
	Stars int    `json:"stars"`
	Img   string `json:"img,omitempty"`
}

// CatalogEntry is a candidate that passed the property-test threshold.
type CatalogEntry struct {
	CandidateRepo
	PropertyTestCount int `json:"property_test_count"`
}

// Catalog is the persisted result of the catalog builder.
// It is the single source of truth between runs.
type Catalog struct {
	Repos          []CatalogEntry `json:"repos"`
	BelowThreshold []string       `json:"below_threshold,omitempty"`
}

// Done reports the names that were already analyzed.
func (c Catalog) Done() map[string]struct{} {
	done := make(map[string]struct{}, len(c.Repos)+len(c.BelowThreshold))
	for _, entry := range c.Repos {
		done[entry.Name] = struct{}{}
	}

	for _, name := range c.BelowThreshold {
		done[name] = struct{}{}
	}

	return done
}

// DependentsFile mirrors the JSON emitted by github-dependents-info.
type DependentsFile struct {
	Repos []CandidateRepo `json:"all_public_dependent_repos"`
}

// RepoStatus is the outcome of analyzing one candidate repository.
type RepoStatus int

// Available RepoStatus values.
const (
	Recorded RepoStatus = iota
	BelowThreshold
	Skipped
)

func (s RepoStatus) String() string {
	switch s {
	case Recorded:
		return "recorded"
	case BelowThreshold:
		return "below threshold"
	case Skipped:
		return "skipped"
	default:
		return "unknown"
	}
}

// RepoOutcome reports the analysis of one candidate.
type RepoOutcome struct {
	Name   string
	Count  int
	Status RepoStatus
	Err    error
}
