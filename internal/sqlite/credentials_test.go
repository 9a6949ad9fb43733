package sqlite

import (
	"context"
	"testing"

	"github.com/rpggio/projectadmin/internal/domain/session"
	"github.com/stretchr/testify/require"
)

func TestCredentialStore_LoadEmpty(t *testing.T) {
	store := NewCredentialStore(NewTestDB(t))

	_, err := store.Load(context.Background())
	require.ErrorIs(t, err, session.ErrNoCredentials)
}

func TestCredentialStore_SaveLoadClear(t *testing.T) {
	store := NewCredentialStore(NewTestDB(t))
	ctx := context.Background()

	creds := session.Credentials{Token: "tok-1", Username: "ada", Role: session.RoleAdmin}
	require.NoError(t, store.Save(ctx, creds))

	loaded, err := store.Load(ctx)
	require.NoError(t, err)
	require.Equal(t, creds, loaded)

	// Saving again replaces the row
	creds.Token = ""
	require.NoError(t, store.Save(ctx, creds))
	loaded, err = store.Load(ctx)
	require.NoError(t, err)
	require.Empty(t, loaded.Token)
	require.Equal(t, "ada", loaded.Username)

	require.NoError(t, store.Clear(ctx))
	_, err = store.Load(ctx)
	require.ErrorIs(t, err, session.ErrNoCredentials)
}
