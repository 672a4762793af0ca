package store

// runMigrations creates the session schema.
func (s *Store) runMigrations() error {
	migrations := []string{
		// One row per fired gesture.
		`CREATE TABLE IF NOT EXISTS dispatches (
			id TEXT PRIMARY KEY,
			seq INTEGER NOT NULL,
			gesture TEXT NOT NULL,
			action TEXT NOT NULL,
			at_unix_ns INTEGER NOT NULL
		)`,

		`CREATE INDEX IF NOT EXISTS idx_dispatches_seq ON dispatches(seq)`,
		`CREATE INDEX IF NOT EXISTS idx_dispatches_gesture ON dispatches(gesture)`,
	}

	for _, migration := range migrations {
		if _, err := s.db.Exec(migration); err != nil {
			return err
		}
	}

	return nil
}
