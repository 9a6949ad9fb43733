package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/rpggio/projectadmin/internal/domain/project"
	"github.com/rpggio/projectadmin/internal/repository"
)

// ProjectRepository implements repository.ProjectRepository for SQLite
type ProjectRepository struct {
	db *DB
}

// NewProjectRepository creates a new ProjectRepository
func NewProjectRepository(db *DB) *ProjectRepository {
	return &ProjectRepository{db: db}
}

// Create creates a new project
func (r *ProjectRepository) Create(ctx context.Context, proj *project.Project) error {
	query := `
		INSERT INTO projects (id, name, description, team_id, manager_id, status, deadline)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`

	_, err := r.db.ExecContext(ctx, query,
		proj.ID,
		proj.Name,
		proj.Description,
		teamIDArg(proj.Team),
		managerIDArg(proj.Manager),
		string(proj.Status),
		deadlineArg(proj.Deadline),
	)
	if isForeignKeyViolation(err) {
		return repository.ErrForeignKeyViolation
	}
	if isUniqueViolation(err) {
		return repository.ErrConflict
	}
	if err != nil {
		return fmt.Errorf("failed to create project: %w", err)
	}

	return nil
}

const selectProject = `
	SELECT p.id, p.name, p.description, p.team_id, t.name, p.manager_id, u.name, p.status, p.deadline
	FROM projects p
	LEFT JOIN teams t ON t.id = p.team_id
	LEFT JOIN users u ON u.id = p.manager_id
`

type rowScanner interface {
	Scan(dest ...any) error
}

func scanProject(row rowScanner) (*project.Project, error) {
	var (
		proj                   project.Project
		teamID, teamName       sql.NullString
		managerID, managerName sql.NullString
		status                 string
		deadline               sql.NullString
	)
	if err := row.Scan(
		&proj.ID,
		&proj.Name,
		&proj.Description,
		&teamID,
		&teamName,
		&managerID,
		&managerName,
		&status,
		&deadline,
	); err != nil {
		return nil, err
	}

	proj.Status = project.Status(status)
	if teamID.Valid {
		proj.Team = &project.Team{ID: teamID.String, Name: teamName.String}
	}
	if managerID.Valid {
		proj.Manager = &project.Manager{ID: managerID.String, Name: managerName.String}
	}
	if deadline.Valid {
		d, err := time.Parse(time.RFC3339, deadline.String)
		if err != nil {
			return nil, fmt.Errorf("invalid stored deadline %q: %w", deadline.String, err)
		}
		proj.Deadline = &d
	}
	return &proj, nil
}

// Get retrieves a project by ID with its team and manager populated
func (r *ProjectRepository) Get(ctx context.Context, id string) (*project.Project, error) {
	proj, err := scanProject(r.db.QueryRowContext(ctx, selectProject+` WHERE p.id = ?`, id))
	if err == sql.ErrNoRows {
		return nil, repository.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get project: %w", err)
	}
	return proj, nil
}

// Update replaces every writable field of a project
func (r *ProjectRepository) Update(ctx context.Context, proj *project.Project) error {
	query := `
		UPDATE projects
		SET name = ?, description = ?, team_id = ?, manager_id = ?, status = ?, deadline = ?
		WHERE id = ?
	`

	result, err := r.db.ExecContext(ctx, query,
		proj.Name,
		proj.Description,
		teamIDArg(proj.Team),
		managerIDArg(proj.Manager),
		string(proj.Status),
		deadlineArg(proj.Deadline),
		proj.ID,
	)
	if isForeignKeyViolation(err) {
		return repository.ErrForeignKeyViolation
	}
	if err != nil {
		return fmt.Errorf("failed to update project: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return repository.ErrNotFound
	}

	return nil
}

// Delete removes a project
func (r *ProjectRepository) Delete(ctx context.Context, id string) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM projects WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to delete project: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return repository.ErrNotFound
	}

	return nil
}

// List returns one page of projects matching the filter, newest first, plus a
// summary computed over the whole filtered set.
func (r *ProjectRepository) List(ctx context.Context, opts repository.ListProjectsOptions) (project.Page, error) {
	where, args, err := projectConditions(opts.Filter)
	if err != nil {
		return project.Page{}, err
	}

	summaryQuery := `
		SELECT
			COUNT(*),
			COALESCE(SUM(CASE WHEN p.status = 'Completed' THEN 1 ELSE 0 END), 0),
			COALESCE(SUM(CASE WHEN p.status = 'In Progress' THEN 1 ELSE 0 END), 0),
			COALESCE(SUM(CASE WHEN p.status = 'On Hold' THEN 1 ELSE 0 END), 0)
		FROM projects p
	` + where

	var page project.Page
	err = r.db.QueryRowContext(ctx, summaryQuery, args...).Scan(
		&page.Summary.Total,
		&page.Summary.Completed,
		&page.Summary.InProgress,
		&page.Summary.OnHold,
	)
	if err != nil {
		return project.Page{}, fmt.Errorf("failed to summarize projects: %w", err)
	}

	query := selectProject + where + ` ORDER BY p.created_at DESC, p.rowid DESC`
	if opts.Limit > 0 {
		query += ` LIMIT ? OFFSET ?`
		args = append(args, opts.Limit, opts.Offset)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return project.Page{}, fmt.Errorf("failed to list projects: %w", err)
	}
	defer rows.Close()

	page.Projects = []project.Project{}
	for rows.Next() {
		proj, err := scanProject(rows)
		if err != nil {
			return project.Page{}, fmt.Errorf("failed to scan project: %w", err)
		}
		page.Projects = append(page.Projects, *proj)
	}

	if err = rows.Err(); err != nil {
		return project.Page{}, fmt.Errorf("error iterating project rows: %w", err)
	}

	return page, nil
}

func projectConditions(f project.Filter) (string, []any, error) {
	var (
		conditions []string
		args       []any
	)

	if search := strings.ToLower(strings.TrimSpace(f.Search)); search != "" {
		like := "%" + search + "%"
		conditions = append(conditions, "(LOWER(p.name) LIKE ? OR LOWER(p.description) LIKE ?)")
		args = append(args, like, like)
	}
	if f.Status != "" {
		conditions = append(conditions, "p.status = ?")
		args = append(args, string(f.Status))
	}
	if f.TeamID != "" {
		conditions = append(conditions, "p.team_id = ?")
		args = append(args, f.TeamID)
	}
	if f.ManagerID != "" {
		conditions = append(conditions, "p.manager_id = ?")
		args = append(args, f.ManagerID)
	}
	if from, err := project.ParseDeadline(f.From); err != nil {
		return "", nil, fmt.Errorf("%w: from: %v", repository.ErrInvalidInput, err)
	} else if from != nil {
		conditions = append(conditions, "p.deadline >= ?")
		args = append(args, from.Format(time.RFC3339))
	}
	if to, err := project.ParseDeadline(f.To); err != nil {
		return "", nil, fmt.Errorf("%w: to: %v", repository.ErrInvalidInput, err)
	} else if to != nil {
		// inclusive of the whole "to" day
		conditions = append(conditions, "p.deadline < ?")
		args = append(args, to.AddDate(0, 0, 1).Format(time.RFC3339))
	}

	if len(conditions) == 0 {
		return "", args, nil
	}
	return " WHERE " + strings.Join(conditions, " AND "), args, nil
}

func teamIDArg(t *project.Team) any {
	if t == nil || t.ID == "" {
		return nil
	}
	return t.ID
}

func managerIDArg(m *project.Manager) any {
	if m == nil {
		return ""
	}
	return m.ID
}

func deadlineArg(d *time.Time) any {
	if d == nil {
		return nil
	}
	return d.UTC().Format(time.RFC3339)
}
