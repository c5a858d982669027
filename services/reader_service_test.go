package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"library_lending/rules"
)

func TestRegisterRequiresContact(t *testing.T) {
	m := newMemStore()
	svc := NewReaderService(m)

	_, err := svc.Register(context.Background(), RegisterReaderInput{
		FirstName: "Ana", LastName: "Pop", Password: "secret",
	})
	assert.Error(t, err)
}

func TestRegisterInheritsStaffFromSharedAccount(t *testing.T) {
	m := newMemStore()
	staff := m.addReader("r1", true)
	staff.AccountID = "acc-1"
	svc := NewReaderService(m)

	reader, err := svc.Register(context.Background(), RegisterReaderInput{
		FirstName: "Ana", LastName: "Pop", Email: "ana@lib.test",
		Password: "secret", IsLibraryStaff: false, AccountID: "acc-1",
	})
	require.NoError(t, err)
	assert.True(t, reader.IsLibraryStaff, "staff status inherited from the shared account")

	// the inheritance is one-directional: a plain account stays plain
	plain, err := svc.Register(context.Background(), RegisterReaderInput{
		FirstName: "Ion", LastName: "Pop", Email: "ion@lib.test",
		Password: "secret", AccountID: "acc-2",
	})
	require.NoError(t, err)
	assert.False(t, plain.IsLibraryStaff)
}

func TestRegisterStaffDoesNotUpgradeExisting(t *testing.T) {
	m := newMemStore()
	existing := m.addReader("r1", false)
	existing.AccountID = "acc-1"
	svc := NewReaderService(m)

	_, err := svc.Register(context.Background(), RegisterReaderInput{
		FirstName: "Ana", LastName: "Pop", Email: "ana@lib.test",
		Password: "secret", IsLibraryStaff: true, AccountID: "acc-1",
	})
	require.NoError(t, err)
	assert.False(t, m.readers["r1"].IsLibraryStaff, "existing members keep their status")
}

func TestAuthenticate(t *testing.T) {
	m := newMemStore()
	svc := NewReaderService(m)

	created, err := svc.Register(context.Background(), RegisterReaderInput{
		FirstName: "Ana", LastName: "Pop", Email: "ana@lib.test", Password: "secret",
	})
	require.NoError(t, err)

	got, err := svc.Authenticate(context.Background(), "ana@lib.test", "secret")
	require.NoError(t, err)
	assert.Equal(t, created.ID, got.ID)

	_, err = svc.Authenticate(context.Background(), "ana@lib.test", "wrong")
	assert.ErrorIs(t, err, rules.ErrNotFound)

	_, err = svc.Authenticate(context.Background(), "ghost@lib.test", "secret")
	assert.ErrorIs(t, err, rules.ErrNotFound)
}
