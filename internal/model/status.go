package model

// OrderStatus is the lifecycle state of an order.
//
// The main chain is strictly forward:
//
//	Pending → Cooking → Ready → Served
//
// Held is a side state: an order is created directly into Held and
// leaves it only through an explicit resume, which moves it to Pending.
// There is no transition out of Served.
type OrderStatus string

const (
	OrderPending OrderStatus = "Pending"
	OrderCooking OrderStatus = "Cooking"
	OrderReady   OrderStatus = "Ready"
	OrderServed  OrderStatus = "Served"
	OrderHeld    OrderStatus = "Held"
)

// orderRank positions each status on the main chain. Held is not on the
// chain and has no rank.
var orderRank = map[OrderStatus]int{
	OrderPending: 1,
	OrderCooking: 2,
	OrderReady:   3,
	OrderServed:  4,
}

// ValidOrderStatus reports whether s is a known status.
func ValidOrderStatus(s OrderStatus) bool {
	_, ok := orderRank[s]
	return ok || s == OrderHeld
}

// CanAdvance reports whether an order may move from one status to
// another. Any strictly forward move along the main chain is allowed
// (a kitchen display may jump Ready → Served directly). Held is never
// a valid source or target here; held orders are resumed, not advanced.
func CanAdvance(from, to OrderStatus) bool {
	fr, ok := orderRank[from]
	if !ok {
		return false
	}
	tr, ok := orderRank[to]
	if !ok {
		return false
	}
	return tr > fr
}

// TableStatus is the occupancy state of a table.
//
//	Available → Reserved → Available        (reservation cancelled)
//	Available → Occupied → Cleaning → Available
//	Occupied  → Available                   (force-clear)
type TableStatus string

const (
	TableAvailable TableStatus = "Available"
	TableOccupied  TableStatus = "Occupied"
	TableReserved  TableStatus = "Reserved"
	TableCleaning  TableStatus = "Cleaning"
)

var tableTransitions = map[TableStatus][]TableStatus{
	TableAvailable: {TableReserved, TableOccupied},
	TableReserved:  {TableAvailable, TableOccupied},
	TableOccupied:  {TableCleaning, TableAvailable},
	TableCleaning:  {TableAvailable},
}

// ValidTableStatus reports whether s is a known status.
func ValidTableStatus(s TableStatus) bool {
	_, ok := tableTransitions[s]
	return ok
}

// CanOccupyTransition reports whether a table may move from one status
// to another.
func CanOccupyTransition(from, to TableStatus) bool {
	for _, next := range tableTransitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

// Role is a staff member's position.
type Role string

const (
	RoleAdmin       Role = "Admin"
	RoleManager     Role = "Manager"
	RoleWaiter      Role = "Staff"
	RoleKitchen     Role = "Kitchen"
	RoleCashier     Role = "Cashier"
	RoleStorekeeper Role = "Storekeeper"
)

// Managerial reports whether the role carries manager approval rights.
func (r Role) Managerial() bool {
	return r == RoleAdmin || r == RoleManager
}

// PaymentMethod identifies how an order was settled.
type PaymentMethod string

const (
	PayCash     PaymentMethod = "Cash"
	PayTelebirr PaymentMethod = "Telebirr"
	PayAmole    PaymentMethod = "Amole"
	PayCBEBirr  PaymentMethod = "CBE Birr"
)
