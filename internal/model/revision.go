package model

import "strconv"

// RevisionLocator is a parsed reference to one commit of a hosted repository.
type RevisionLocator struct {
	URL      string // the reference as given
	BaseURL  string // https://github.com/owner/repo
	CloneURL string // BaseURL + ".git"
	Name     string // owner_repo
	SHA      string
}

// Permalink returns a link to line of path at the locator's revision.
func (r RevisionLocator) Permalink(path Path, line int) string {
	return r.BaseURL + "/blob/" + r.SHA + "/" + string(path) + "#L" + strconv.Itoa(line)
}
