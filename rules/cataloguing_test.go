package rules

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateCataloguingDomainCount(t *testing.T) {
	h := testTree()

	// exactly at the threshold passes
	err := ValidateCataloguing(h, []string{"cs", "physics"}, 2)
	assert.NoError(t, err)

	// one over fails
	err = ValidateCataloguing(h, []string{"cs", "physics", "ai"}, 2)
	var dc *DomainConstraintError
	require.ErrorAs(t, err, &dc)
	assert.Equal(t, 3, dc.Count)
	assert.Equal(t, 2, dc.Max)
}

func TestValidateCataloguingAncestorPair(t *testing.T) {
	h := testTree()

	err := ValidateCataloguing(h, []string{"science", "ai"}, 5)
	var dh *DomainHierarchyError
	require.ErrorAs(t, err, &dh)

	// order of the list must not matter
	err = ValidateCataloguing(h, []string{"ai", "science"}, 5)
	assert.ErrorAs(t, err, &dh)
}

func TestValidateCataloguingSiblingsAllowed(t *testing.T) {
	h := testTree()

	err := ValidateCataloguing(h, []string{"cs", "physics"}, 5)
	assert.NoError(t, err)
}

func TestValidateCataloguingDuplicatesSkipped(t *testing.T) {
	h := testTree()

	// duplicate ids are not a hierarchy violation
	err := ValidateCataloguing(h, []string{"cs", "cs"}, 5)
	assert.NoError(t, err)
}

func TestValidateCataloguingEmpty(t *testing.T) {
	h := testTree()

	assert.NoError(t, ValidateCataloguing(h, nil, 3))
}
