// Package core implements the order/table/queue synchronization engine
// that every view surface (POS terminals, kitchen display, queue
// monitor, admin console) attaches to.
//
// ARCHITECTURE:
//
// Coarse single-writer:
// A Core owns the state store, the event bus, and every sub-component
// (order lifecycle, table occupancy, queue ticketing, stock ledger,
// audit trail, offline sync queue). One mutex serializes all mutating
// operations, so each operation observes and produces a consistent
// store. Reads re-fetch from the store; no component trusts another's
// in-memory copy.
//
// Operation shape:
// 1. Validate input (Invalid error, no side effects on failure)
// 2. Read the collections involved
// 3. Compute every updated collection in memory
// 4. Persist them in one WriteMany transaction
// 5. Publish the resulting events on the bus
//
// Because publish always follows commit, a subscriber that receives an
// event is guaranteed the store already reflects it.
//
// Ordering:
// Audit entries and offline sync entries are stamped with a monotonic
// logical clock (Clock.Next()), never ordered by wall time.
//
// Failure handling:
// A malformed stored blob degrades to an empty collection with a Warn
// log. Unknown ids on updates return a NotFound error rather than
// silently doing nothing. Stock adjustments floor at zero; an order
// whose quantities exceed available stock is accepted, not rejected.
package core
