package sqlite

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rpggio/projectadmin/internal/domain/project"
	"github.com/rpggio/projectadmin/internal/domain/session"
	"github.com/rpggio/projectadmin/internal/repository"
)

// SeedPassword is the password of every seeded account.
const SeedPassword = "password"

// Seeded accounts, one per role.
const (
	SeedAdminEmail   = "admin@example.com"
	SeedManagerEmail = "grace@example.com"
	SeedMemberEmail  = "member@example.com"
)

// Seed fills an empty database with demo teams, users and projects. It does
// nothing when any user already exists.
func Seed(ctx context.Context, db *DB) error {
	var users int
	if err := db.QueryRowContext(ctx, `SELECT COUNT(*) FROM users`).Scan(&users); err != nil {
		return fmt.Errorf("failed to count users: %w", err)
	}
	if users > 0 {
		return nil
	}

	teamRepo := NewTeamRepository(db)
	userRepo := NewUserRepository(db)
	projectRepo := NewProjectRepository(db)

	teams := []project.Team{
		{ID: "team-platform", Name: "Platform"},
		{ID: "team-mobile", Name: "Mobile"},
		{ID: "team-data", Name: "Data"},
	}
	for i := range teams {
		if err := teamRepo.Create(ctx, &teams[i]); err != nil && !errors.Is(err, repository.ErrConflict) {
			return fmt.Errorf("seed team %s: %w", teams[i].Name, err)
		}
	}

	accounts := []session.User{
		{ID: "user-admin", Name: "Ada Admin", Email: SeedAdminEmail, Role: session.RoleAdmin},
		{ID: "user-grace", Name: "Grace Hopper", Email: SeedManagerEmail, Role: session.RoleManager},
		{ID: "user-linus", Name: "Linus Torvalds", Email: "linus@example.com", Role: session.RoleManager},
		{ID: "user-member", Name: "Bob Member", Email: SeedMemberEmail, Role: session.RoleMember},
	}
	for i := range accounts {
		if err := userRepo.Create(ctx, &accounts[i], SeedPassword); err != nil {
			return fmt.Errorf("seed user %s: %w", accounts[i].Email, err)
		}
	}

	base := time.Date(2025, 1, 15, 0, 0, 0, 0, time.UTC)
	statuses := []project.Status{project.StatusInProgress, project.StatusCompleted, project.StatusOnHold}
	for i := 0; i < 15; i++ {
		deadline := base.AddDate(0, i, 0)
		proj := &project.Project{
			ID:          fmt.Sprintf("project-%02d", i+1),
			Name:        fmt.Sprintf("Project %02d", i+1),
			Description: fmt.Sprintf("Demo project %d", i+1),
			Manager:     &project.Manager{ID: accounts[1+i%2].ID},
			Status:      statuses[i%len(statuses)],
			Deadline:    &deadline,
		}
		if i%4 != 3 {
			proj.Team = &project.Team{ID: teams[i%len(teams)].ID}
		}
		if err := projectRepo.Create(ctx, proj); err != nil {
			return fmt.Errorf("seed project %s: %w", proj.Name, err)
		}
	}

	return nil
}
