package db

// SchemaSQL is the complete schema for fresh installs.
//
// This is the single source of truth for the database schema. Tests use
// it via GetSchemaSQL() instead of hardcoding CREATE TABLE statements,
// so repository code referencing a column that does not exist here fails
// immediately with "no such column".
//
// Spaces are stored as one JSON document per row: a design space is
// read and written whole, so a document column keeps every mutation a
// single-row atomic replace. The denormalized name/timestamp columns
// exist only for listing without decoding every document.
const SchemaSQL = `
-- Design spaces (one JSON document per space)
CREATE TABLE IF NOT EXISTS spaces (
	id TEXT PRIMARY KEY,
	name TEXT NOT NULL,
	document TEXT NOT NULL,
	created_at DATETIME NOT NULL,
	updated_at DATETIME NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_spaces_created ON spaces(created_at);

-- Activity log (audit trail of canvas mutations)
CREATE TABLE IF NOT EXISTS activity_log (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	space_id TEXT NOT NULL,
	entity_type TEXT NOT NULL,
	entity_id TEXT,
	action TEXT NOT NULL CHECK(action IN ('create', 'update', 'delete', 'merge')),
	detail TEXT,
	created_at DATETIME DEFAULT CURRENT_TIMESTAMP
);

CREATE INDEX IF NOT EXISTS idx_activity_space ON activity_log(space_id, id);
`

// InitSchema creates the database schema
func InitSchema() error {
	db, err := GetDB()
	if err != nil {
		return err
	}

	// Check if schema_version table exists to determine if this is a fresh install
	var tableCount int
	err = db.QueryRow("SELECT COUNT(*) FROM sqlite_master WHERE type='table' AND name='schema_version'").Scan(&tableCount)
	if err != nil {
		return err
	}

	if tableCount == 0 {
		// Fresh install - create the schema and mark all migrations applied
		if _, err := db.Exec(SchemaSQL); err != nil {
			return err
		}
		_, err = db.Exec(`
			CREATE TABLE IF NOT EXISTS schema_version (
				version INTEGER PRIMARY KEY,
				applied_at DATETIME DEFAULT CURRENT_TIMESTAMP
			)
		`)
		if err != nil {
			return err
		}
		for _, migration := range migrations {
			if _, err := db.Exec("INSERT INTO schema_version (version) VALUES (?)", migration.Version); err != nil {
				return err
			}
		}
		return nil
	}

	// schema_version table exists - run any pending migrations
	return RunMigrations()
}

// GetSchemaSQL returns the authoritative schema SQL for use by tests.
// Tests should use this instead of hardcoding their own schema to prevent drift.
func GetSchemaSQL() string {
	return SchemaSQL
}
