// Package testdb connects Postgres integration tests to a migrated database
// and isolates each test in a transaction that is rolled back afterwards.
//
// Tests are skipped when no database URL is configured, except in CI where a
// missing database is a failure:
//
//	func TestLessonStore(t *testing.T) {
//	    db := testdb.Open(t)
//	    testdb.WithTx(t, db, func(t *testing.T, tx *sql.Tx) {
//	        lessons := postgres.NewPostgresLessonStore(tx, nil)
//	        // ...
//	    })
//	}
package testdb
