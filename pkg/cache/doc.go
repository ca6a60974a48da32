// Package cache stores rendered artifacts keyed by the content that
// produced them.
//
// # Backends
//
//   - [FileCache]: one JSON entry file per key under a directory, used by
//     the CLI (default ~/.cache/scenepatch).
//   - [RedisCache]: shared cache for the HTTP server.
//   - [NullCache]: never stores anything; used with --no-cache.
//
// All backends implement [Cache] and are safe for concurrent use.
//
// # Keys
//
// Keys are derived from content, not names: a [Keyer] hashes the
// canonical scene JSON and the render options, so an edited scene never
// hits a stale artifact. Redis keys additionally carry the configured
// prefix.
package cache
