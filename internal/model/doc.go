// Package model defines the entities shared by every component of the
// synchronization core: menu items, orders, tables, staff, customers,
// the walk-in queue, audit entries, and offline sync entries.
//
// All monetary amounts are integer cents (santim) of Ethiopian birr.
// Derived amounts are computed once at order creation and never
// recomputed, so the invariant
//
//	Total == Subtotal - Discount + ServiceCharge + Tip
//
// holds for the lifetime of an order.
//
// Entities are plain data. State machine rules (order status chain,
// table occupancy) live next to their enums in status.go; all mutation
// goes through the core package.
package model
