package rules

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"library_lending/models"
)

func dom(id, name string, parentID string) models.Domain {
	d := models.Domain{ID: id, Name: name}
	if parentID != "" {
		d.ParentID = &parentID
	}
	return d
}

// science -> cs -> ai, science -> physics
func testTree() *Hierarchy {
	return NewHierarchy([]models.Domain{
		dom("science", "Science", ""),
		dom("cs", "Computer Science", "science"),
		dom("ai", "Artificial Intelligence", "cs"),
		dom("physics", "Physics", "science"),
	})
}

func TestAncestorsOfNearestFirst(t *testing.T) {
	h := testTree()

	chain, err := h.AncestorsOf("ai")
	require.NoError(t, err)
	require.Len(t, chain, 2)
	assert.Equal(t, "cs", chain[0].ID)
	assert.Equal(t, "science", chain[1].ID)
}

func TestAncestorsOfExcludesSelf(t *testing.T) {
	h := testTree()

	chain, err := h.AncestorsOf("science")
	require.NoError(t, err)
	assert.Empty(t, chain)

	chain, err = h.AncestorsOf("cs")
	require.NoError(t, err)
	for _, d := range chain {
		assert.NotEqual(t, "cs", d.ID)
	}
}

func TestAncestorsOfUnknownDomain(t *testing.T) {
	h := testTree()

	_, err := h.AncestorsOf("nope")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestAncestorsOfDetectsCycle(t *testing.T) {
	h := NewHierarchy([]models.Domain{
		dom("a", "A", "b"),
		dom("b", "B", "c"),
		dom("c", "C", "a"),
	})

	_, err := h.AncestorsOf("a")
	assert.ErrorIs(t, err, ErrDomainCycle)
}

func TestIsAncestor(t *testing.T) {
	h := testTree()

	ok, err := h.IsAncestor("science", "ai")
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = h.IsAncestor("ai", "science")
	require.NoError(t, err)
	assert.False(t, ok)

	ok, err = h.IsAncestor("physics", "ai")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestAllDomainIDsTransitiveClosure(t *testing.T) {
	h := testTree()
	book := models.Book{ID: "b1", ExplicitDomains: []models.Domain{dom("ai", "Artificial Intelligence", "cs")}}

	all, err := h.AllDomainIDs(book)
	require.NoError(t, err)

	// superset of the explicit domains
	assert.Contains(t, all, "ai")
	// closed under ancestry
	assert.Contains(t, all, "cs")
	assert.Contains(t, all, "science")
	assert.NotContains(t, all, "physics")
}

func TestAllDomainIDsDeduplicates(t *testing.T) {
	h := testTree()
	book := models.Book{ID: "b1", ExplicitDomains: []models.Domain{
		dom("cs", "Computer Science", "science"),
		dom("physics", "Physics", "science"),
	}}

	all, err := h.AllDomainIDs(book)
	require.NoError(t, err)
	assert.Len(t, all, 3) // cs, physics, science once
}

func TestDescendantIDs(t *testing.T) {
	h := testTree()

	ids := h.DescendantIDs("science")
	assert.ElementsMatch(t, []string{"cs", "ai", "physics"}, ids)
	assert.Empty(t, h.DescendantIDs("ai"))
}

func TestWouldCycle(t *testing.T) {
	h := testTree()

	ok, err := h.WouldCycle("science", "ai")
	require.NoError(t, err)
	assert.True(t, ok, "moving the root under its own descendant must be refused")

	ok, err = h.WouldCycle("physics", "cs")
	require.NoError(t, err)
	assert.False(t, ok)

	ok, err = h.WouldCycle("cs", "cs")
	require.NoError(t, err)
	assert.True(t, ok)
}
