// Package storage provides JSON-based persistence for dataset snapshots.
//
// The storage package keeps the previous run's unified dataset on disk so
// a run can report which concerts appeared since the last run. Snapshots
// are stored as a single snapshot.json file under the data directory.
package storage
