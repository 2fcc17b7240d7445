package database

import (
	"fmt"
	"log"
)

// CreateTables creates all required tables in the database
func CreateTables() {
	createUsersTable()
	createProjectsTable()
}

// createUsersTable creates the users table
func createUsersTable() {
	query := `
	CREATE TABLE IF NOT EXISTS users (
		id SERIAL PRIMARY KEY,
		username VARCHAR(150) UNIQUE NOT NULL,
		email VARCHAR(150) UNIQUE NOT NULL,
		password VARCHAR(200) NOT NULL,
		course VARCHAR(100),
		bio TEXT,
		phone VARCHAR(20),
		address TEXT,
		skills TEXT,
		experience TEXT,
		education TEXT,
		profile_picture VARCHAR(255),
		is_admin BOOLEAN DEFAULT FALSE,
		created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
		updated_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
	);
	`

	_, err := DB.Exec(query)
	if err != nil {
		log.Fatal("Failed to create users table:", err)
	}

	ensureUsersSchema()
	fmt.Println("Users table created successfully")
}

// createProjectsTable creates the projects table. Deleting a user
// cascade-deletes their projects; the rule is explicit here and the
// account-deletion flow relies on it.
func createProjectsTable() {
	query := `
	CREATE TABLE IF NOT EXISTS projects (
		id SERIAL PRIMARY KEY,
		title VARCHAR(150) NOT NULL,
		description TEXT,
		image_file VARCHAR(255),
		date_posted TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
		user_id INTEGER NOT NULL REFERENCES users(id) ON DELETE CASCADE
	);
	`

	_, err := DB.Exec(query)
	if err != nil {
		log.Fatal("Failed to create projects table:", err)
	}

	ensureProjectsSchema()
	fmt.Println("Projects table created successfully")
}

func ensureUsersSchema() {
	if _, err := DB.Exec(`CREATE INDEX IF NOT EXISTS users_lower_username_idx ON users(lower(username))`); err != nil {
		log.Fatal("Failed to ensure users username index:", err)
	}

	if _, err := DB.Exec(`CREATE INDEX IF NOT EXISTS users_lower_email_idx ON users(lower(email))`); err != nil {
		log.Fatal("Failed to ensure users email index:", err)
	}
}

func ensureProjectsSchema() {
	if _, err := DB.Exec(`CREATE INDEX IF NOT EXISTS projects_user_id_idx ON projects(user_id, id)`); err != nil {
		log.Fatal("Failed to ensure projects owner index:", err)
	}

	if _, err := DB.Exec(`CREATE INDEX IF NOT EXISTS projects_date_posted_idx ON projects(date_posted DESC, id DESC)`); err != nil {
		log.Fatal("Failed to ensure projects date index:", err)
	}
}
