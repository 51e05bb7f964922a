package model

import (
	"encoding/json"
	"time"
)

// Cents is a monetary amount in integer cents (santim). All arithmetic
// on money happens in cents; formatting to birr is a display concern.
type Cents int64

// Takeaway is the table sentinel for walk-in orders that occupy no
// table. Takeaway orders are the only orders issued queue tickets.
const Takeaway = "Takeaway"

// ModifierOption is one selectable variation of a modifier group, with
// an optional price delta.
type ModifierOption struct {
	Label string `json:"label"`
	Price Cents  `json:"price"`
}

// ModifierGroup bundles options a customer picks from when ordering an
// item (e.g. spice level, side choice).
type ModifierGroup struct {
	Name        string           `json:"name"`
	Options     []ModifierOption `json:"options"`
	Required    bool             `json:"required,omitempty"`
	MultiSelect bool             `json:"multiSelect,omitempty"`
}

// Hours is a time-of-day availability window in whole hours, inclusive
// start, exclusive end. A zero Hours means always available.
type Hours struct {
	Start int `json:"start"`
	End   int `json:"end"`
}

// Contains reports whether t falls inside the window. Windows may wrap
// midnight (Start > End).
func (h Hours) Contains(t time.Time) bool {
	if h.Start == 0 && h.End == 0 {
		return true
	}
	hr := t.Hour()
	if h.Start <= h.End {
		return hr >= h.Start && hr < h.End
	}
	return hr >= h.Start || hr < h.End
}

// MenuItem is a sellable item. Items are never deleted, only archived.
// Stock is mutated exclusively through the stock ledger and never goes
// below zero.
type MenuItem struct {
	ID          string          `json:"id"`
	Name        string          `json:"name"`
	Price       Cents           `json:"price"`
	Category    string          `json:"category"`
	Stock       int             `json:"stock"`
	Description string          `json:"description,omitempty"`
	Archived    bool            `json:"archived,omitempty"`
	Modifiers   []ModifierGroup `json:"modifiers,omitempty"`
	Available   Hours           `json:"availableHours,omitzero"`
}

// SelectedModifier records one modifier choice on a line item.
type SelectedModifier struct {
	Group  string         `json:"group"`
	Option ModifierOption `json:"option"`
}

// Line is one entry of an order's item list.
type Line struct {
	ItemID    string             `json:"itemId"`
	Name      string             `json:"name"`
	UnitPrice Cents              `json:"unitPrice"`
	Quantity  int                `json:"quantity"`
	Modifiers []SelectedModifier `json:"modifiers,omitempty"`
}

// Amount returns the line total: (unit price + modifier deltas) × qty.
func (l Line) Amount() Cents {
	unit := l.UnitPrice
	for _, m := range l.Modifiers {
		unit += m.Option.Price
	}
	return unit * Cents(l.Quantity)
}

// Order is a committed customer order. After creation only Status may
// change (plus StaffID on staff deactivation); money fields are frozen
// at creation and satisfy
//
//	Total == Subtotal - Discount + ServiceCharge + Tip
type Order struct {
	ID            string        `json:"id"`
	BranchID      string        `json:"branchId"`
	TableID       string        `json:"tableId"` // table id or Takeaway
	Lines         []Line        `json:"items"`
	Subtotal      Cents         `json:"subtotal"`
	ServiceCharge Cents         `json:"serviceCharge"`
	Discount      Cents         `json:"discount,omitempty"`
	Tip           Cents         `json:"tip,omitempty"`
	Total         Cents         `json:"total"`
	Status        OrderStatus   `json:"status"`
	Payment       PaymentMethod `json:"paymentMethod"`
	CreatedAt     time.Time     `json:"createdAt"`
	StaffID       string        `json:"staffId"`
	CustomerID    string        `json:"customerId,omitempty"`
	Ticket        int           `json:"ticketNumber,omitempty"`
}

// Takeaway reports whether the order occupies no table.
func (o Order) Takeaway() bool { return o.TableID == Takeaway }

// Table is a dining table. Tables are seeded once and cycle through
// statuses forever. Invariant: Occupied implies both CurrentOrderID
// and OccupiedSince are set; Available implies both are clear.
type Table struct {
	ID              string      `json:"id"`
	Name            string      `json:"name"`
	Status          TableStatus `json:"status"`
	OccupiedSince   *time.Time  `json:"occupiedSince,omitempty"`
	CurrentOrderID  string      `json:"currentOrderId,omitempty"`
	AssignedStaffID string      `json:"assignedStaffId,omitempty"`
}

// QueueState is the whole walk-in ticket queue: two monotonically
// non-decreasing counters with 0 ≤ CurrentServing ≤ LastIssued.
type QueueState struct {
	CurrentServing int `json:"currentServing"`
	LastIssued     int `json:"lastIssued"`
}

// Waiting returns the number of issued but unserved tickets.
func (q QueueState) Waiting() int { return q.LastIssued - q.CurrentServing }

// AttendanceKind tags an attendance record.
type AttendanceKind string

const (
	AttendanceIn         AttendanceKind = "IN"
	AttendanceOut        AttendanceKind = "OUT"
	AttendanceBreakStart AttendanceKind = "BREAK_START"
	AttendanceBreakEnd   AttendanceKind = "BREAK_END"
)

// AttendanceRecord is one clock-in/out or break event.
type AttendanceRecord struct {
	ID   string         `json:"id"`
	Kind AttendanceKind `json:"type"`
	At   time.Time      `json:"timestamp"`
}

// ManagerReview is a periodic performance note left by a manager.
type ManagerReview struct {
	ID        string    `json:"id"`
	ManagerID string    `json:"managerId"`
	Rating    int       `json:"rating"`
	Comment   string    `json:"comment"`
	At        time.Time `json:"timestamp"`
}

// ReviewKind distinguishes guest feedback from internal performance
// reviews in the shared reviews collection.
type ReviewKind string

const (
	ReviewCustomer ReviewKind = "CUSTOMER"
	ReviewManager  ReviewKind = "MANAGER"
)

// ValidReviewKind reports whether k is a known kind.
func ValidReviewKind(k ReviewKind) bool {
	return k == ReviewCustomer || k == ReviewManager
}

// Review is one entry of the standalone feedback collection: guest
// reviews left at the counter and manager write-ups, both optionally
// tied to a staff member. Staff-embedded ManagerReviews carry the HR
// history; this collection feeds the reviews board.
type Review struct {
	ID      string     `json:"id"`
	Rating  int        `json:"rating"`
	Comment string     `json:"comment"`
	StaffID string     `json:"staffId,omitempty"`
	Kind    ReviewKind `json:"type"`
	At      time.Time  `json:"timestamp"`
}

// Staff is an employee record. Tip accumulators are mutated only by
// order creation; everything else by staff management operations.
type Staff struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	PINHash string `json:"pinHash"` // bcrypt hash of the POS access PIN
	Role    Role   `json:"role"`
	Active  bool   `json:"active"`
	Phone   string `json:"phone,omitempty"`
	OnBreak bool   `json:"isOnBreak,omitempty"`

	Salary      Cents `json:"salary"`
	Bonus       Cents `json:"bonus,omitempty"`
	Deductions  Cents `json:"deductions,omitempty"`
	TotalTips   Cents `json:"totalTips"`
	MonthlyTips Cents `json:"monthlyTips"`

	Attendance []AttendanceRecord `json:"attendance"`
	Reviews    []ManagerReview    `json:"reviews"`
}

// Customer is a loyalty program member. Points accrue only through
// order creation: one point per 100 birr of order total.
type Customer struct {
	ID            string    `json:"id"`
	Name          string    `json:"name"`
	Phone         string    `json:"phone"`
	LastOrderAt   time.Time `json:"lastOrderDate"`
	LoyaltyPoints int       `json:"loyaltyPoints"`
	Notes         string    `json:"notes,omitempty"`
}

// Branch is a restaurant location. The service charge rate is a
// fraction of subtotal (0.10 = 10%) and varies per branch.
type Branch struct {
	ID                string  `json:"id" yaml:"id"`
	Name              string  `json:"name" yaml:"name"`
	Location          string  `json:"location" yaml:"location"`
	ServiceChargeRate float64 `json:"serviceChargeRate" yaml:"service_charge_rate"`
}

// AuditEntry is one line of the append-only action log. Seq comes from
// the core's logical clock and orders entries deterministically; the
// wall-clock timestamp is informational only.
type AuditEntry struct {
	ID     string    `json:"id"`
	Seq    int64     `json:"seq"`
	Actor  string    `json:"actor"`
	Action string    `json:"action"`
	Detail string    `json:"details"`
	At     time.Time `json:"timestamp"`
}

// SyncEntry is one buffered offline mutation, replayed in Seq order on
// reconnection.
type SyncEntry struct {
	ID         string          `json:"id"`
	Seq        int64           `json:"seq"`
	Action     string          `json:"action"`
	Payload    json.RawMessage `json:"payload"`
	EnqueuedAt time.Time       `json:"enqueuedAt"`
}
