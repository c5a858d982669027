package rules

import (
	"fmt"

	"library_lending/models"
)

// Hierarchy is an arena of domains addressed by id. Parent links are plain
// ids, so a misconstructed graph cannot send a walk into an untracked
// pointer chase: every walk caps its iteration count and fails with
// ErrDomainCycle on a repeated id.
type Hierarchy struct {
	byID map[string]models.Domain
}

// NewHierarchy builds an arena from a snapshot of all domains.
func NewHierarchy(domains []models.Domain) *Hierarchy {
	h := &Hierarchy{byID: make(map[string]models.Domain, len(domains))}
	for _, d := range domains {
		h.byID[d.ID] = d
	}
	return h
}

// Domain looks up one arena entry.
func (h *Hierarchy) Domain(id string) (models.Domain, bool) {
	d, ok := h.byID[id]
	return d, ok
}

// AncestorsOf walks the parent chain upward from id, nearest parent first,
// excluding the domain itself. Unknown ids resolve to an empty chain once
// the walk leaves the arena.
func (h *Hierarchy) AncestorsOf(id string) ([]models.Domain, error) {
	var chain []models.Domain
	seen := map[string]struct{}{id: {}}
	cur, ok := h.byID[id]
	if !ok {
		return nil, fmt.Errorf("domain %s: %w", id, ErrNotFound)
	}
	for cur.ParentID != nil {
		parent, ok := h.byID[*cur.ParentID]
		if !ok {
			break
		}
		if _, dup := seen[parent.ID]; dup {
			return nil, fmt.Errorf("walking ancestors of %s: %w", id, ErrDomainCycle)
		}
		seen[parent.ID] = struct{}{}
		chain = append(chain, parent)
		cur = parent
	}
	return chain, nil
}

// IsAncestor reports whether ancestorID appears in the ancestor chain of id.
func (h *Hierarchy) IsAncestor(ancestorID, id string) (bool, error) {
	chain, err := h.AncestorsOf(id)
	if err != nil {
		return false, err
	}
	for _, d := range chain {
		if d.ID == ancestorID {
			return true, nil
		}
	}
	return false, nil
}

// AllDomainIDs returns the full domain set of a book: its explicit domains
// plus every ancestor of each, deduplicated by id.
func (h *Hierarchy) AllDomainIDs(b models.Book) (map[string]struct{}, error) {
	all := make(map[string]struct{}, len(b.ExplicitDomains))
	for _, d := range b.ExplicitDomains {
		all[d.ID] = struct{}{}
		chain, err := h.AncestorsOf(d.ID)
		if err != nil {
			return nil, err
		}
		for _, a := range chain {
			all[a.ID] = struct{}{}
		}
	}
	return all, nil
}

// DescendantIDs returns every domain under rootID, not including rootID
// itself. Children are derived from the parent links, never stored.
func (h *Hierarchy) DescendantIDs(rootID string) []string {
	children := make(map[string][]string, len(h.byID))
	for _, d := range h.byID {
		if d.ParentID != nil {
			children[*d.ParentID] = append(children[*d.ParentID], d.ID)
		}
	}
	var out []string
	queue := []string{rootID}
	seen := map[string]struct{}{rootID: {}}
	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]
		for _, c := range children[cur] {
			if _, dup := seen[c]; dup {
				continue
			}
			seen[c] = struct{}{}
			out = append(out, c)
			queue = append(queue, c)
		}
	}
	return out
}

// WouldCycle reports whether reparenting id under newParentID would create
// a cycle, i.e. whether id is reachable walking upward from newParentID.
func (h *Hierarchy) WouldCycle(id, newParentID string) (bool, error) {
	if id == newParentID {
		return true, nil
	}
	chain, err := h.AncestorsOf(newParentID)
	if err != nil {
		return false, err
	}
	for _, d := range chain {
		if d.ID == id {
			return true, nil
		}
	}
	return false, nil
}
