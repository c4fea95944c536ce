// Package jobstore keeps the status of asynchronous extraction jobs.
//
// A Store maps job IDs to Jobs and forgets every job once its TTL has
// passed since the last Put. Three backends implement it:
//
//   - MemoryStore: a mutex-guarded map with lazy expiry and Sweep.
//   - RedisStore: one key per job written with SET ... EX.
//   - SQLiteStore: a single table with an expires_at column.
//
// Open builds the backend named in a Config. Stores are values passed to
// their users; the package holds no global state.
package jobstore
