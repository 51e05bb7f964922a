// Package store provides SQLite-backed durable storage for the POS
// synchronization core.
//
// The store is deliberately simple: one table mapping a collection name
// to a JSON blob holding that collection's full record set. Higher
// components read-modify-write whole collections through this contract;
// no component assumes another's in-memory copy is current.
//
// Writes that belong to one logical operation (e.g. all collections
// touched by order creation) go through WriteMany, which upserts every
// blob in a single transaction. Replace swaps the entire database
// content atomically and backs full-state import.
//
// Blob contents are opaque here. Decoding, and the graceful degradation
// of a malformed blob to an empty collection, are the core package's
// concern.
//
// # Database Configuration
//
//   - WAL mode: concurrent reads during writes
//   - synchronous=NORMAL: balance durability/performance
//   - busy_timeout=5000: wait for locks up to 5 seconds
//   - foreign_keys=ON
package store
