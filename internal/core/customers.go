package core

import (
	"context"
	"strings"

	"github.com/addisware/addispos/internal/model"
)

// Customers returns every loyalty program member.
func (c *Core) Customers(ctx context.Context) ([]model.Customer, error) {
	return readList[model.Customer](ctx, c, colCustomers)
}

// SaveCustomer upserts a customer record. Loyalty points are only ever
// mutated by order creation; this operation carries profile edits.
func (c *Core) SaveCustomer(ctx context.Context, customer model.Customer) (model.Customer, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if customer.Phone == "" {
		return model.Customer{}, invalid("customer", "phone is required")
	}

	customers, err := readList[model.Customer](ctx, c, colCustomers)
	if err != nil {
		return model.Customer{}, err
	}

	if customer.ID == "" {
		customer.ID = c.ids.NewID()
	}
	found := false
	for i := range customers {
		if customers[i].ID == customer.ID {
			customers[i] = customer
			found = true
			break
		}
	}
	if !found {
		customers = append(customers, customer)
	}

	blobs := make(map[string][]byte)
	if blobs[colCustomers], err = encode(colCustomers, customers); err != nil {
		return model.Customer{}, err
	}
	if sq, err := c.syncBlob(ctx, ActionUpdateCustomer, customer); err != nil {
		return model.Customer{}, err
	} else if sq != nil {
		blobs[colSyncQueue] = sq
	}

	if err := c.store.WriteMany(ctx, blobs); err != nil {
		return model.Customer{}, err
	}
	return customer, nil
}

// FindCustomerByPhone returns the first customer whose phone contains
// the given digits. Partial matches let a cashier search mid-order.
func (c *Core) FindCustomerByPhone(ctx context.Context, phone string) (model.Customer, bool, error) {
	if phone == "" {
		return model.Customer{}, false, nil
	}
	customers, err := readList[model.Customer](ctx, c, colCustomers)
	if err != nil {
		return model.Customer{}, false, err
	}
	for _, cust := range customers {
		if strings.Contains(cust.Phone, phone) {
			return cust, true, nil
		}
	}
	return model.Customer{}, false, nil
}
