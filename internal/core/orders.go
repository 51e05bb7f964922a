package core

import (
	"context"
	"fmt"
	"math"
	"time"

	"github.com/addisware/addispos/internal/bus"
	"github.com/addisware/addispos/internal/model"
)

// OrderDraft is the input to order creation: the cart a terminal has
// built, plus settlement details. Line items may still be edited on
// the terminal; once committed through CreateOrder the order is
// permanent and only its status may change.
type OrderDraft struct {
	BranchID   string
	TableID    string // table id, or model.Takeaway
	Lines      []model.Line
	Payment    model.PaymentMethod
	StaffID    string
	CustomerID string
	Tip        model.Cents
	Discount   model.Cents

	// Hold creates the order directly into the Held side state. Held
	// orders receive no queue ticket until resumed.
	Hold bool
}

var knownPayments = map[model.PaymentMethod]bool{
	model.PayCash:     true,
	model.PayTelebirr: true,
	model.PayAmole:    true,
	model.PayCBEBirr:  true,
}

// CreateOrder commits a draft: it decrements stock for every line
// (floored at zero), occupies the target table for dine-in, credits
// the owning staff member's tip accumulators, credits loyalty points
// to a known customer, issues a queue ticket to non-held takeaway
// orders, appends an audit entry, and buffers the mutation while
// offline. Every touched collection is persisted in one transaction
// before any event is published.
//
// Validation failures leave no side effects.
func (c *Core) CreateOrder(ctx context.Context, draft OrderDraft) (model.Order, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if err := validateDraft(draft); err != nil {
		return model.Order{}, err
	}
	branch, err := c.branchFor(draft.BranchID)
	if err != nil {
		return model.Order{}, err
	}

	menu, err := readList[model.MenuItem](ctx, c, colMenu)
	if err != nil {
		return model.Order{}, err
	}
	orders, err := readList[model.Order](ctx, c, colOrders)
	if err != nil {
		return model.Order{}, err
	}
	tables, err := readList[model.Table](ctx, c, colTables)
	if err != nil {
		return model.Order{}, err
	}
	staff, err := readList[model.Staff](ctx, c, colStaff)
	if err != nil {
		return model.Order{}, err
	}
	queue, err := c.readQueue(ctx)
	if err != nil {
		return model.Order{}, err
	}

	// Money is frozen now; Status is the only field mutated later.
	subtotal := model.Cents(0)
	for _, l := range draft.Lines {
		subtotal += l.Amount()
	}
	if draft.Discount > subtotal {
		return model.Order{}, invalid("order", "discount %d exceeds subtotal %d", draft.Discount, subtotal)
	}
	serviceCharge := model.Cents(math.Round(float64(subtotal) * branch.ServiceChargeRate))
	total := subtotal - draft.Discount + serviceCharge + draft.Tip

	status := model.OrderPending
	if draft.Hold {
		status = model.OrderHeld
	}

	now := c.now()
	order := model.Order{
		ID:            c.ids.NewID(),
		BranchID:      branch.ID,
		TableID:       draft.TableID,
		Lines:         draft.Lines,
		Subtotal:      subtotal,
		ServiceCharge: serviceCharge,
		Discount:      draft.Discount,
		Tip:           draft.Tip,
		Total:         total,
		Status:        status,
		Payment:       draft.Payment,
		CreatedAt:     now,
		StaffID:       draft.StaffID,
		CustomerID:    draft.CustomerID,
	}

	tableDirty := false
	if !order.Takeaway() {
		i := tableIndex(tables, draft.TableID)
		if i < 0 {
			return model.Order{}, notFound("table", draft.TableID)
		}
		if tables[i].Status != model.TableAvailable {
			return model.Order{}, invalid("table", "table %s is %s, not Available", draft.TableID, tables[i].Status)
		}
		tables[i].Status = model.TableOccupied
		tables[i].CurrentOrderID = order.ID
		tables[i].OccupiedSince = &now
		tableDirty = true
	}

	queueDirty := false
	if order.Takeaway() && !draft.Hold {
		queue.LastIssued++
		order.Ticket = queue.LastIssued
		queueDirty = true
	}

	// Stock ledger: each line adjusted independently, floored at zero.
	// Quantities exceeding stock are absorbed, not rejected.
	for _, l := range draft.Lines {
		if i := itemIndex(menu, l.ItemID); i >= 0 {
			menu[i].Stock = max(0, menu[i].Stock-l.Quantity)
		}
	}

	actor := draft.StaffID
	staffDirty := false
	if i := staffIndex(staff, draft.StaffID); i >= 0 {
		actor = staff[i].Name
		if draft.Tip > 0 {
			staff[i].TotalTips += draft.Tip
			staff[i].MonthlyTips += draft.Tip
			staffDirty = true
		}
	}

	customers, customersDirty, err := c.creditLoyalty(ctx, order, now)
	if err != nil {
		return model.Order{}, err
	}

	blobs := make(map[string][]byte)
	if blobs[colOrders], err = encode(colOrders, append(orders, order)); err != nil {
		return model.Order{}, err
	}
	if blobs[colMenu], err = encode(colMenu, menu); err != nil {
		return model.Order{}, err
	}
	if tableDirty {
		if blobs[colTables], err = encode(colTables, tables); err != nil {
			return model.Order{}, err
		}
	}
	if queueDirty {
		if blobs[colQueue], err = encode(colQueue, queue); err != nil {
			return model.Order{}, err
		}
	}
	if staffDirty {
		if blobs[colStaff], err = encode(colStaff, staff); err != nil {
			return model.Order{}, err
		}
	}
	if customersDirty {
		if blobs[colCustomers], err = encode(colCustomers, customers); err != nil {
			return model.Order{}, err
		}
	}
	if blobs[colLogs], err = c.appendAudit(ctx, actor, "Create Order",
		fmt.Sprintf("Order #%s created. Total: %d", order.ID, order.Total)); err != nil {
		return model.Order{}, err
	}
	if sq, err := c.syncBlob(ctx, ActionCreateOrder, order); err != nil {
		return model.Order{}, err
	} else if sq != nil {
		blobs[colSyncQueue] = sq
	}

	if err := c.store.WriteMany(ctx, blobs); err != nil {
		return model.Order{}, err
	}

	c.bus.Publish(bus.StockChanged{Menu: menu})
	if tableDirty {
		c.bus.Publish(bus.TableStateChanged{Tables: tables})
	}
	if staffDirty {
		c.bus.Publish(bus.StaffChanged{Staff: staff})
	}
	c.bus.Publish(bus.OrderCreated{Order: order})
	// Unconditional: a takeaway order may have issued a ticket.
	c.bus.Publish(bus.QueueChanged{Queue: queue})

	return order, nil
}

// HoldOrder commits a draft directly into the Held side state. The
// order receives its side effects once, now; resuming later only
// re-enters the main chain.
func (c *Core) HoldOrder(ctx context.Context, draft OrderDraft) (model.Order, error) {
	draft.Hold = true
	return c.CreateOrder(ctx, draft)
}

// AdvanceStatus moves an order forward along the main chain
// (Pending → Cooking → Ready → Served). Skipping ahead is allowed;
// moving backward, advancing a Held order, or leaving Served is not.
func (c *Core) AdvanceStatus(ctx context.Context, orderID string, next model.OrderStatus, actor string) (model.Order, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if !model.ValidOrderStatus(next) {
		return model.Order{}, invalid("order", "unknown status %q", next)
	}

	orders, err := readList[model.Order](ctx, c, colOrders)
	if err != nil {
		return model.Order{}, err
	}
	i := orderIndex(orders, orderID)
	if i < 0 {
		return model.Order{}, notFound("order", orderID)
	}

	from := orders[i].Status
	if from == model.OrderHeld {
		return model.Order{}, invalid("order", "order %s is held; resume it instead", orderID)
	}
	if !model.CanAdvance(from, next) {
		return model.Order{}, invalid("order", "cannot move order %s from %s to %s", orderID, from, next)
	}
	orders[i].Status = next
	order := orders[i]

	actor, err = c.actorName(ctx, actor)
	if err != nil {
		return model.Order{}, err
	}

	blobs := make(map[string][]byte)
	if blobs[colOrders], err = encode(colOrders, orders); err != nil {
		return model.Order{}, err
	}
	if blobs[colLogs], err = c.appendAudit(ctx, actor, "Update Status",
		fmt.Sprintf("Order #%s %s -> %s", orderID, from, next)); err != nil {
		return model.Order{}, err
	}
	if sq, err := c.syncBlob(ctx, ActionUpdateOrderStatus, order); err != nil {
		return model.Order{}, err
	} else if sq != nil {
		blobs[colSyncQueue] = sq
	}

	if err := c.store.WriteMany(ctx, blobs); err != nil {
		return model.Order{}, err
	}

	c.bus.Publish(bus.OrderStatusChanged{Order: order, From: from, To: next})
	return order, nil
}

// ResumeOrder moves a Held order back into Pending. A takeaway order
// is issued its deferred queue ticket now; no other creation side
// effect is repeated.
func (c *Core) ResumeOrder(ctx context.Context, orderID, actor string) (model.Order, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	orders, err := readList[model.Order](ctx, c, colOrders)
	if err != nil {
		return model.Order{}, err
	}
	i := orderIndex(orders, orderID)
	if i < 0 {
		return model.Order{}, notFound("order", orderID)
	}
	if orders[i].Status != model.OrderHeld {
		return model.Order{}, invalid("order", "order %s is %s, not Held", orderID, orders[i].Status)
	}

	orders[i].Status = model.OrderPending

	queue, err := c.readQueue(ctx)
	if err != nil {
		return model.Order{}, err
	}
	queueDirty := false
	if orders[i].Takeaway() && orders[i].Ticket == 0 {
		queue.LastIssued++
		orders[i].Ticket = queue.LastIssued
		queueDirty = true
	}
	order := orders[i]

	actor, err = c.actorName(ctx, actor)
	if err != nil {
		return model.Order{}, err
	}

	blobs := make(map[string][]byte)
	if blobs[colOrders], err = encode(colOrders, orders); err != nil {
		return model.Order{}, err
	}
	if queueDirty {
		if blobs[colQueue], err = encode(colQueue, queue); err != nil {
			return model.Order{}, err
		}
	}
	if blobs[colLogs], err = c.appendAudit(ctx, actor, "Resume Order",
		fmt.Sprintf("Order #%s resumed", orderID)); err != nil {
		return model.Order{}, err
	}
	if sq, err := c.syncBlob(ctx, ActionUpdateOrderStatus, order); err != nil {
		return model.Order{}, err
	} else if sq != nil {
		blobs[colSyncQueue] = sq
	}

	if err := c.store.WriteMany(ctx, blobs); err != nil {
		return model.Order{}, err
	}

	c.bus.Publish(bus.OrderStatusChanged{Order: order, From: model.OrderHeld, To: model.OrderPending})
	if queueDirty {
		c.bus.Publish(bus.QueueChanged{Queue: queue})
	}
	return order, nil
}

// Orders returns every order, oldest first.
func (c *Core) Orders(ctx context.Context) ([]model.Order, error) {
	return readList[model.Order](ctx, c, colOrders)
}

// creditLoyalty awards points for an order carrying a customer id:
// one point per 100 birr of total, plus a last-order timestamp bump.
// An unknown customer id earns nothing.
func (c *Core) creditLoyalty(ctx context.Context, order model.Order, now time.Time) ([]model.Customer, bool, error) {
	if order.CustomerID == "" {
		return nil, false, nil
	}
	customers, err := readList[model.Customer](ctx, c, colCustomers)
	if err != nil {
		return nil, false, err
	}
	for i := range customers {
		if customers[i].ID == order.CustomerID {
			customers[i].LoyaltyPoints += int(order.Total / 10000) // 1 point per 100 birr
			customers[i].LastOrderAt = now
			return customers, true, nil
		}
	}
	return nil, false, nil
}

func validateDraft(draft OrderDraft) error {
	if len(draft.Lines) == 0 {
		return invalid("order", "at least one line item is required")
	}
	for _, l := range draft.Lines {
		if l.Quantity <= 0 {
			return invalid("order", "line %s: quantity must be positive, got %d", l.ItemID, l.Quantity)
		}
	}
	if draft.StaffID == "" {
		return invalid("order", "staff id is required")
	}
	if draft.TableID == "" {
		return invalid("order", "table id (or Takeaway) is required")
	}
	if !knownPayments[draft.Payment] {
		return invalid("order", "unknown payment method %q", draft.Payment)
	}
	if draft.Tip < 0 {
		return invalid("order", "tip must not be negative")
	}
	if draft.Discount < 0 {
		return invalid("order", "discount must not be negative")
	}
	return nil
}

// actorName resolves a staff id to the member's name for the audit
// trail; an unknown id passes through as-is.
func (c *Core) actorName(ctx context.Context, id string) (string, error) {
	staff, err := readList[model.Staff](ctx, c, colStaff)
	if err != nil {
		return "", err
	}
	if i := staffIndex(staff, id); i >= 0 {
		return staff[i].Name, nil
	}
	return id, nil
}

func (c *Core) branchFor(id string) (model.Branch, error) {
	if id == "" {
		return c.branches[0], nil
	}
	for _, b := range c.branches {
		if b.ID == id {
			return b, nil
		}
	}
	return model.Branch{}, notFound("branch", id)
}

func orderIndex(orders []model.Order, id string) int {
	for i := range orders {
		if orders[i].ID == id {
			return i
		}
	}
	return -1
}

func itemIndex(menu []model.MenuItem, id string) int {
	for i := range menu {
		if menu[i].ID == id {
			return i
		}
	}
	return -1
}

func tableIndex(tables []model.Table, id string) int {
	for i := range tables {
		if tables[i].ID == id {
			return i
		}
	}
	return -1
}

func staffIndex(staff []model.Staff, id string) int {
	for i := range staff {
		if staff[i].ID == id {
			return i
		}
	}
	return -1
}
