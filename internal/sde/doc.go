// Package sde is the leaf dependency of the attribute engine: it
// resolves numeric item type, attribute, and effect ids to static,
// read-only data. Three Store implementations share one interface —
// SQLiteStore for a local SDE mirror, PostgresStore for a shared
// database, and CachingStore decorating either with Redis — so the
// rest of the engine depends only on Store and never on a concrete
// backend.
package sde
