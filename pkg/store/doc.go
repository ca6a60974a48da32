// Package store persists scene documents for the HTTP API.
//
// A [Document] bundles a validated scene with optional animation specs and
// bookkeeping fields. Three backends implement [Store]:
//
//   - [MemoryStore]: process-local, used by tests and `scenepatch serve`
//     without a database.
//   - [MongoStore]: one BSON document per scene in a MongoDB collection.
//   - [PostgresStore]: one JSONB row per scene.
//
// Ids are random UUIDs assigned on first Put.
package store
