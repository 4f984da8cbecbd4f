// Package history records workflow runs: the question asked, the answer
// and citations produced, and how long each stage took. Records persist
// in memory, SQLite, or PostgreSQL.
package history
