package store

import (
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/Joules-bit-spec/student-portfolio/internal/models"
	"github.com/lib/pq"
)

var (
	// ErrDuplicateIdentity reports a username or email already taken at registration.
	ErrDuplicateIdentity = errors.New("username or email already exists")
	ErrUserNotFound      = errors.New("user not found")
)

const uniqueViolationCode = "23505"

func isUniqueViolation(err error) bool {
	var pqErr *pq.Error
	return errors.As(err, &pqErr) && pqErr.Code == uniqueViolationCode
}

const userColumns = `id, username, email, password, course, bio, phone, address, skills, experience, education, profile_picture, is_admin, created_at, updated_at`

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanUser(row rowScanner) (*models.User, error) {
	var user models.User
	var course, bio, phone, address, skills, experience, education, picture sql.NullString

	err := row.Scan(
		&user.ID,
		&user.Username,
		&user.Email,
		&user.Password,
		&course,
		&bio,
		&phone,
		&address,
		&skills,
		&experience,
		&education,
		&picture,
		&user.IsAdmin,
		&user.CreatedAt,
		&user.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	if course.Valid {
		user.Course = &course.String
	}
	if bio.Valid {
		user.Bio = &bio.String
	}
	if phone.Valid {
		user.Phone = &phone.String
	}
	if address.Valid {
		user.Address = &address.String
	}
	if skills.Valid {
		user.Skills = &skills.String
	}
	if experience.Valid {
		user.Experience = &experience.String
	}
	if education.Valid {
		user.Education = &education.String
	}
	if picture.Valid {
		user.ProfilePicture = &picture.String
	}

	return &user, nil
}

// CreateUser inserts a new account with an already-hashed password and returns
// its id. The raw password must never reach this function.
func CreateUser(db *sql.DB, username, email, passwordHash string) (int, error) {
	var userID int
	err := db.QueryRow(
		`INSERT INTO users (username, email, password) VALUES ($1, $2, $3) RETURNING id`,
		username,
		email,
		passwordHash,
	).Scan(&userID)
	if err != nil {
		if isUniqueViolation(err) {
			return 0, ErrDuplicateIdentity
		}
		return 0, err
	}

	return userID, nil
}

func GetUserByID(db *sql.DB, userID int) (*models.User, error) {
	user, err := scanUser(db.QueryRow(
		`SELECT `+userColumns+` FROM users WHERE id = $1`,
		userID,
	))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return user, nil
}

func GetUserByEmail(db *sql.DB, email string) (*models.User, error) {
	user, err := scanUser(db.QueryRow(
		`SELECT `+userColumns+` FROM users WHERE lower(email) = lower($1)`,
		email,
	))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return user, nil
}

func GetUserByUsername(db *sql.DB, username string) (*models.User, error) {
	user, err := scanUser(db.QueryRow(
		`SELECT `+userColumns+` FROM users WHERE lower(username) = lower($1)`,
		username,
	))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return user, nil
}

// ProfileFields carries a partial profile update. Nil fields are left untouched.
type ProfileFields struct {
	Username   *string
	Course     *string
	Bio        *string
	Phone      *string
	Address    *string
	Skills     *string
	Experience *string
	Education  *string
}

// UpdateUserProfile applies the non-nil fields to the user's row. A username
// collision surfaces as ErrDuplicateIdentity.
func UpdateUserProfile(db *sql.DB, userID int, fields ProfileFields) error {
	var assignments []string
	var args []interface{}

	add := func(column string, value *string) {
		if value == nil {
			return
		}
		args = append(args, *value)
		assignments = append(assignments, fmt.Sprintf("%s = $%d", column, len(args)))
	}

	add("username", fields.Username)
	add("course", fields.Course)
	add("bio", fields.Bio)
	add("phone", fields.Phone)
	add("address", fields.Address)
	add("skills", fields.Skills)
	add("experience", fields.Experience)
	add("education", fields.Education)

	if len(assignments) == 0 {
		return nil
	}

	assignments = append(assignments, "updated_at = CURRENT_TIMESTAMP")
	args = append(args, userID)
	query := fmt.Sprintf(
		`UPDATE users SET %s WHERE id = $%d`,
		strings.Join(assignments, ", "),
		len(args),
	)

	result, err := db.Exec(query, args...)
	if err != nil {
		if isUniqueViolation(err) {
			return ErrDuplicateIdentity
		}
		return err
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rowsAffected == 0 {
		return ErrUserNotFound
	}

	return nil
}

// SetProfilePicture points the user's profile-picture reference at a stored filename.
func SetProfilePicture(db *sql.DB, userID int, filename string) error {
	result, err := db.Exec(
		`UPDATE users SET profile_picture = $1, updated_at = CURRENT_TIMESTAMP WHERE id = $2`,
		filename,
		userID,
	)
	if err != nil {
		return err
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rowsAffected == 0 {
		return ErrUserNotFound
	}

	return nil
}

// ListUsers returns one admin page of users plus the total count.
func ListUsers(db *sql.DB, limit, offset int, pattern string) ([]models.User, int, error) {
	var totalCount int
	countQuery := `
		SELECT COUNT(*)
		FROM users
		WHERE $1 = ''
		   OR lower(username) LIKE $1
		   OR lower(email) LIKE $1
		   OR lower(COALESCE(course, '')) LIKE $1
	`
	if err := db.QueryRow(countQuery, pattern).Scan(&totalCount); err != nil {
		return nil, 0, err
	}

	query := `
		SELECT ` + userColumns + `
		FROM users
		WHERE $1 = ''
		   OR lower(username) LIKE $1
		   OR lower(email) LIKE $1
		   OR lower(COALESCE(course, '')) LIKE $1
		ORDER BY id ASC
		LIMIT $2 OFFSET $3
	`
	rows, err := db.Query(query, pattern, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var users []models.User
	for rows.Next() {
		user, scanErr := scanUser(rows)
		if scanErr != nil {
			return nil, 0, scanErr
		}
		users = append(users, *user)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}

	return users, totalCount, nil
}
