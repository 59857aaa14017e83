// Package postgres provides PostgreSQL-specific implementations for the data
// storage interfaces defined in the internal/store package.
// It handles the details of database connections, query execution, schema
// migrations, and data mapping between domain entities and database records.
//
// List-valued fields (lesson summaries, worksheet questions) are stored as JSONB.
// lesson_id columns carry no foreign key: deleting a lesson orphans its materials.
package postgres
