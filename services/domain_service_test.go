package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"library_lending/rules"
)

func TestCreateDomainWithParent(t *testing.T) {
	m := newMemStore()
	svc := NewDomainService(m)

	root, err := svc.Create(context.Background(), "Science", nil)
	require.NoError(t, err)

	child, err := svc.Create(context.Background(), "Physics", &root.ID)
	require.NoError(t, err)
	require.NotNil(t, child.ParentID)
	assert.Equal(t, root.ID, *child.ParentID)

	ghost := "ghost"
	_, err = svc.Create(context.Background(), "Orphan", &ghost)
	assert.ErrorIs(t, err, rules.ErrNotFound)
}

func TestReparentRefusesCycle(t *testing.T) {
	m := newMemStore()
	m.addDomain("science", "Science", "")
	m.addDomain("cs", "Computer Science", "science")
	m.addDomain("ai", "Artificial Intelligence", "cs")
	svc := NewDomainService(m)

	// moving the root under its own descendant would close a cycle
	ai := "ai"
	err := svc.Reparent(context.Background(), "science", &ai)
	assert.ErrorIs(t, err, rules.ErrDomainCycle)
	assert.Nil(t, m.domains["science"].ParentID)

	// a sideways move is fine
	science := "science"
	require.NoError(t, svc.Reparent(context.Background(), "ai", &science))
	assert.Equal(t, "science", *m.domains["ai"].ParentID)

	// detaching to the root is always allowed
	require.NoError(t, svc.Reparent(context.Background(), "cs", nil))
	assert.Nil(t, m.domains["cs"].ParentID)
}
