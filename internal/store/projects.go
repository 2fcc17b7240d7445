package store

import (
	"database/sql"
	"errors"

	"github.com/Joules-bit-spec/student-portfolio/internal/models"
	"github.com/lib/pq"
)

var ErrProjectNotFound = errors.New("project not found")

const foreignKeyViolationCode = "23503"

func isForeignKeyViolation(err error) bool {
	var pqErr *pq.Error
	return errors.As(err, &pqErr) && pqErr.Code == foreignKeyViolationCode
}

const projectColumns = `id, title, description, image_file, date_posted, user_id`

func scanProject(row rowScanner) (*models.Project, error) {
	var project models.Project
	var description, imageFile sql.NullString

	err := row.Scan(
		&project.ID,
		&project.Title,
		&description,
		&imageFile,
		&project.DatePosted,
		&project.UserID,
	)
	if err != nil {
		return nil, err
	}

	if description.Valid {
		project.Description = &description.String
	}
	if imageFile.Valid {
		project.ImageFile = &imageFile.String
	}

	return &project, nil
}

// CreateProject inserts a project owned by ownerID and returns its id. The
// owner reference must resolve to an existing user.
func CreateProject(db *sql.DB, ownerID int, title string, description, imageFile *string) (int, error) {
	var projectID int
	err := db.QueryRow(
		`INSERT INTO projects (title, description, image_file, user_id)
		 VALUES ($1, $2, $3, $4)
		 RETURNING id`,
		title,
		description,
		imageFile,
		ownerID,
	).Scan(&projectID)
	if err != nil {
		if isForeignKeyViolation(err) {
			return 0, ErrUserNotFound
		}
		return 0, err
	}

	return projectID, nil
}

func GetProjectByID(db *sql.DB, projectID int) (*models.Project, error) {
	project, err := scanProject(db.QueryRow(
		`SELECT `+projectColumns+` FROM projects WHERE id = $1`,
		projectID,
	))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrProjectNotFound
		}
		return nil, err
	}
	return project, nil
}

// ListProjectsByOwner returns every project owned by ownerID in insertion order.
func ListProjectsByOwner(db *sql.DB, ownerID int) ([]models.Project, error) {
	rows, err := db.Query(
		`SELECT `+projectColumns+` FROM projects WHERE user_id = $1 ORDER BY id ASC`,
		ownerID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var projects []models.Project
	for rows.Next() {
		project, scanErr := scanProject(rows)
		if scanErr != nil {
			return nil, scanErr
		}
		projects = append(projects, *project)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return projects, nil
}

// UpdateProject changes title and description. Ownership never changes here.
func UpdateProject(db *sql.DB, projectID int, title string, description *string) error {
	result, err := db.Exec(
		`UPDATE projects SET title = $1, description = $2 WHERE id = $3`,
		title,
		description,
		projectID,
	)
	if err != nil {
		return err
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rowsAffected == 0 {
		return ErrProjectNotFound
	}

	return nil
}

// DeleteProject removes a project row. It returns the stored image filename
// and whether other projects still reference the same file, so the caller can
// decide on disk cleanup. Image files are content-addressed and may be shared.
func DeleteProject(db *sql.DB, projectID int) (imageFile string, stillReferenced bool, err error) {
	tx, err := db.Begin()
	if err != nil {
		return "", false, err
	}
	defer tx.Rollback()

	var image sql.NullString
	err = tx.QueryRow(
		`DELETE FROM projects WHERE id = $1 RETURNING image_file`,
		projectID,
	).Scan(&image)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return "", false, ErrProjectNotFound
		}
		return "", false, err
	}

	if image.Valid && image.String != "" {
		var usageCount int
		if err := tx.QueryRow(
			`SELECT COUNT(*) FROM projects WHERE image_file = $1`,
			image.String,
		).Scan(&usageCount); err != nil {
			return "", false, err
		}
		imageFile = image.String
		stillReferenced = usageCount > 0
	}

	if err := tx.Commit(); err != nil {
		return "", false, err
	}

	return imageFile, stillReferenced, nil
}

// ListProjects returns one admin page of all projects (with owner usernames)
// plus the total count.
func ListProjects(db *sql.DB, limit, offset int, pattern string) ([]models.Project, map[int]string, int, error) {
	var totalCount int
	countQuery := `
		SELECT COUNT(*)
		FROM projects p
		JOIN users u ON u.id = p.user_id
		WHERE $1 = ''
		   OR lower(p.title) LIKE $1
		   OR lower(COALESCE(p.description, '')) LIKE $1
		   OR lower(u.username) LIKE $1
	`
	if err := db.QueryRow(countQuery, pattern).Scan(&totalCount); err != nil {
		return nil, nil, 0, err
	}

	query := `
		SELECT p.id, p.title, p.description, p.image_file, p.date_posted, p.user_id, u.username
		FROM projects p
		JOIN users u ON u.id = p.user_id
		WHERE $1 = ''
		   OR lower(p.title) LIKE $1
		   OR lower(COALESCE(p.description, '')) LIKE $1
		   OR lower(u.username) LIKE $1
		ORDER BY p.id ASC
		LIMIT $2 OFFSET $3
	`
	rows, err := db.Query(query, pattern, limit, offset)
	if err != nil {
		return nil, nil, 0, err
	}
	defer rows.Close()

	var projects []models.Project
	owners := make(map[int]string)
	for rows.Next() {
		var project models.Project
		var description, imageFile sql.NullString
		var ownerUsername string

		if scanErr := rows.Scan(
			&project.ID,
			&project.Title,
			&description,
			&imageFile,
			&project.DatePosted,
			&project.UserID,
			&ownerUsername,
		); scanErr != nil {
			return nil, nil, 0, scanErr
		}

		if description.Valid {
			project.Description = &description.String
		}
		if imageFile.Valid {
			project.ImageFile = &imageFile.String
		}

		projects = append(projects, project)
		owners[project.UserID] = ownerUsername
	}
	if err := rows.Err(); err != nil {
		return nil, nil, 0, err
	}

	return projects, owners, totalCount, nil
}
