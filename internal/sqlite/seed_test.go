package sqlite

import (
	"context"
	"testing"

	"github.com/rpggio/projectadmin/internal/domain/session"
	"github.com/rpggio/projectadmin/internal/repository"
	"github.com/stretchr/testify/require"
)

func TestSeed(t *testing.T) {
	db := NewTestDB(t)
	ctx := context.Background()

	require.NoError(t, Seed(ctx, db))
	require.NoError(t, Seed(ctx, db), "seeding twice is a no-op")

	managers, err := NewUserRepository(db).ListByRole(ctx, session.RoleManager)
	require.NoError(t, err)
	require.Len(t, managers, 2)

	page, err := NewProjectRepository(db).List(ctx, repository.ListProjectsOptions{Limit: 12})
	require.NoError(t, err)
	require.Len(t, page.Projects, 12)
	require.Equal(t, 15, page.Summary.Total)
	require.Equal(t, 5, page.Summary.Completed)

	user, err := NewUserRepository(db).Authenticate(ctx, SeedAdminEmail, SeedPassword)
	require.NoError(t, err)
	require.Equal(t, session.RoleAdmin, user.Role)
}
