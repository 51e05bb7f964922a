// Package bus implements the in-process publish/subscribe fan-out that
// keeps every attached view (POS, kitchen display, queue monitor,
// admin console) consistent without polling.
//
// The event set is closed: one Go type per topic, each carrying its
// specific payload. Delivery is synchronous and in subscription order,
// so a subscriber that receives OrderCreated is guaranteed the state
// store already reflects that order - publishers always write before
// they publish.
//
// A panicking handler is isolated and logged; it never blocks delivery
// to the remaining subscribers. There is no persistence and no replay:
// a subscriber only sees events published after it subscribed.
package bus
