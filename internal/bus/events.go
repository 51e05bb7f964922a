package bus

import "github.com/addisware/addispos/internal/model"

// Topic identifies an event stream.
type Topic string

const (
	TopicOrderCreated        Topic = "order-created"
	TopicOrderStatusChanged  Topic = "order-status-changed"
	TopicTableStateChanged   Topic = "table-state-changed"
	TopicStockChanged        Topic = "stock-changed"
	TopicQueueChanged        Topic = "queue-changed"
	TopicConnectivityChanged Topic = "connectivity-changed"
	TopicStaffChanged        Topic = "staff-changed"
)

// Event is implemented by every published payload. The set of
// implementations is closed; each topic has exactly one payload type.
type Event interface {
	Topic() Topic
}

// OrderCreated fires once per committed order.
type OrderCreated struct {
	Order model.Order
}

func (OrderCreated) Topic() Topic { return TopicOrderCreated }

// OrderStatusChanged fires on every order status transition, including
// a hold being resumed.
type OrderStatusChanged struct {
	Order model.Order
	From  model.OrderStatus
	To    model.OrderStatus
}

func (OrderStatusChanged) Topic() Topic { return TopicOrderStatusChanged }

// TableStateChanged carries the full table collection after any table
// mutation (status, assignment, or clearing).
type TableStateChanged struct {
	Tables []model.Table
}

func (TableStateChanged) Topic() Topic { return TopicTableStateChanged }

// StockChanged carries the full menu collection after any stock
// adjustment or menu edit.
type StockChanged struct {
	Menu []model.MenuItem
}

func (StockChanged) Topic() Topic { return TopicStockChanged }

// QueueChanged carries the queue counters after ticket issuance or a
// serving-pointer advance.
type QueueChanged struct {
	Queue model.QueueState
}

func (QueueChanged) Topic() Topic { return TopicQueueChanged }

// ConnectivityChanged fires on every online/offline flip.
type ConnectivityChanged struct {
	Online bool
}

func (ConnectivityChanged) Topic() Topic { return TopicConnectivityChanged }

// StaffChanged carries the full staff collection after any staff
// mutation.
type StaffChanged struct {
	Staff []model.Staff
}

func (StaffChanged) Topic() Topic { return TopicStaffChanged }
