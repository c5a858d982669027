package rules

// ValidateCataloguing checks a book's assigned domain set: the count must
// not exceed maxDomains, and no two distinct assigned domains may be in
// ancestor/descendant relation. Duplicate ids are skipped, not flagged.
// The first violating pair aborts the whole check.
func ValidateCataloguing(h *Hierarchy, domainIDs []string, maxDomains int) error {
	if len(domainIDs) > maxDomains {
		return &DomainConstraintError{Count: len(domainIDs), Max: maxDomains}
	}
	for _, a := range domainIDs {
		for _, b := range domainIDs {
			if a == b {
				continue
			}
			isAnc, err := h.IsAncestor(a, b)
			if err != nil {
				return err
			}
			if isAnc {
				nameA, nameB := a, b
				if d, ok := h.Domain(a); ok {
					nameA = d.Name
				}
				if d, ok := h.Domain(b); ok {
					nameB = d.Name
				}
				return &DomainHierarchyError{Ancestor: nameA, Descendant: nameB}
			}
		}
	}
	return nil
}
