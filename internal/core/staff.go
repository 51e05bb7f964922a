package core

import (
	"context"
	"fmt"

	"github.com/addisware/addispos/internal/bus"
	"github.com/addisware/addispos/internal/model"
)

// Staff returns the full roster, deactivated members included.
func (c *Core) Staff(ctx context.Context) ([]model.Staff, error) {
	return readList[model.Staff](ctx, c, colStaff)
}

// AddStaff adds a member to the roster, hashing the given PIN. An
// empty id is filled in.
func (c *Core) AddStaff(ctx context.Context, member model.Staff, pin, actor string) (model.Staff, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if member.Name == "" {
		return model.Staff{}, invalid("staff", "name is required")
	}
	if pin == "" {
		return model.Staff{}, invalid("staff", "pin is required")
	}

	hash, err := model.HashPIN(pin)
	if err != nil {
		return model.Staff{}, fmt.Errorf("hash pin: %w", err)
	}
	member.PINHash = hash
	member.Active = true
	if member.Attendance == nil {
		member.Attendance = []model.AttendanceRecord{}
	}
	if member.Reviews == nil {
		member.Reviews = []model.ManagerReview{}
	}

	staff, err := readList[model.Staff](ctx, c, colStaff)
	if err != nil {
		return model.Staff{}, err
	}
	if member.ID == "" {
		member.ID = c.ids.NewID()
	} else if staffIndex(staff, member.ID) >= 0 {
		return model.Staff{}, invalid("staff", "id %s already exists", member.ID)
	}
	staff = append(staff, member)

	if err := c.saveStaff(ctx, staff, actor, "HR", fmt.Sprintf("Added new staff: %s", member.Name)); err != nil {
		return model.Staff{}, err
	}
	return member, nil
}

// UpdateStaff replaces an existing member's record. The PIN hash and
// tip accumulators pass through as given; use AddStaff/CreateOrder
// flows to change them.
func (c *Core) UpdateStaff(ctx context.Context, member model.Staff, actor string) (model.Staff, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	staff, err := readList[model.Staff](ctx, c, colStaff)
	if err != nil {
		return model.Staff{}, err
	}
	i := staffIndex(staff, member.ID)
	if i < 0 {
		return model.Staff{}, notFound("staff", member.ID)
	}
	staff[i] = member

	if err := c.saveStaff(ctx, staff, actor, "HR", fmt.Sprintf("Updated staff: %s", member.Name)); err != nil {
		return model.Staff{}, err
	}
	return member, nil
}

// VerifyPIN returns the active staff member whose PIN matches, if any.
func (c *Core) VerifyPIN(ctx context.Context, pin string) (model.Staff, bool, error) {
	staff, err := readList[model.Staff](ctx, c, colStaff)
	if err != nil {
		return model.Staff{}, false, err
	}
	for _, m := range staff {
		if m.Active && model.CheckPIN(m.PINHash, pin) {
			return m, true, nil
		}
	}
	return model.Staff{}, false, nil
}

// VerifyManagerPIN reports whether the PIN belongs to an active member
// with manager approval rights.
func (c *Core) VerifyManagerPIN(ctx context.Context, pin string) (bool, error) {
	m, ok, err := c.VerifyPIN(ctx, pin)
	if err != nil || !ok {
		return false, err
	}
	return m.Role.Managerial(), nil
}

// ClockIn records the start of a shift. A member already clocked in
// today is left unchanged.
func (c *Core) ClockIn(ctx context.Context, staffID string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	staff, err := readList[model.Staff](ctx, c, colStaff)
	if err != nil {
		return err
	}
	i := staffIndex(staff, staffID)
	if i < 0 {
		return notFound("staff", staffID)
	}

	now := c.now()
	att := staff[i].Attendance
	if n := len(att); n > 0 {
		last := att[n-1]
		sameDay := last.At.Year() == now.Year() && last.At.YearDay() == now.YearDay()
		if sameDay && last.Kind != model.AttendanceOut {
			return nil
		}
	}

	staff[i].Attendance = append(att, model.AttendanceRecord{
		ID:   c.ids.NewID(),
		Kind: model.AttendanceIn,
		At:   now,
	})
	return c.saveStaff(ctx, staff, staff[i].Name, "Clock In", "Started shift")
}

// ClockOut records the end of a shift and ends any open break.
func (c *Core) ClockOut(ctx context.Context, staffID string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	staff, err := readList[model.Staff](ctx, c, colStaff)
	if err != nil {
		return err
	}
	i := staffIndex(staff, staffID)
	if i < 0 {
		return notFound("staff", staffID)
	}

	staff[i].Attendance = append(staff[i].Attendance, model.AttendanceRecord{
		ID:   c.ids.NewID(),
		Kind: model.AttendanceOut,
		At:   c.now(),
	})
	staff[i].OnBreak = false
	return c.saveStaff(ctx, staff, staff[i].Name, "Clock Out", "Ended shift")
}

// ToggleBreak flips a member's break state and records it.
func (c *Core) ToggleBreak(ctx context.Context, staffID string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	staff, err := readList[model.Staff](ctx, c, colStaff)
	if err != nil {
		return err
	}
	i := staffIndex(staff, staffID)
	if i < 0 {
		return notFound("staff", staffID)
	}

	kind := model.AttendanceBreakStart
	detail := "Started Break"
	if staff[i].OnBreak {
		kind = model.AttendanceBreakEnd
		detail = "Ended Break"
	}
	staff[i].OnBreak = !staff[i].OnBreak
	staff[i].Attendance = append(staff[i].Attendance, model.AttendanceRecord{
		ID:   c.ids.NewID(),
		Kind: kind,
		At:   c.now(),
	})
	return c.saveStaff(ctx, staff, staff[i].Name, "Break", detail)
}

// AddManagerReview appends a performance review to a member's record.
func (c *Core) AddManagerReview(ctx context.Context, staffID string, review model.ManagerReview, actor string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if review.Rating < 1 || review.Rating > 5 {
		return invalid("review", "rating must be 1-5, got %d", review.Rating)
	}

	staff, err := readList[model.Staff](ctx, c, colStaff)
	if err != nil {
		return err
	}
	i := staffIndex(staff, staffID)
	if i < 0 {
		return notFound("staff", staffID)
	}

	if review.ID == "" {
		review.ID = c.ids.NewID()
	}
	if review.At.IsZero() {
		review.At = c.now()
	}
	staff[i].Reviews = append(staff[i].Reviews, review)
	return c.saveStaff(ctx, staff, actor, "HR", fmt.Sprintf("Review added for %s", staff[i].Name))
}

// DeactivateStaff retires a member: open (unserved) orders move to the
// replacement if one is given, table assignments move or clear, and
// the account is deactivated. One transaction covers all of it.
func (c *Core) DeactivateStaff(ctx context.Context, staffID, replacementID, actor string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	staff, err := readList[model.Staff](ctx, c, colStaff)
	if err != nil {
		return err
	}
	i := staffIndex(staff, staffID)
	if i < 0 {
		return notFound("staff", staffID)
	}
	if replacementID != "" && staffIndex(staff, replacementID) < 0 {
		return notFound("staff", replacementID)
	}

	blobs := make(map[string][]byte)

	reassigned := 0
	if replacementID != "" {
		orders, err := readList[model.Order](ctx, c, colOrders)
		if err != nil {
			return err
		}
		for j := range orders {
			if orders[j].StaffID == staffID && orders[j].Status != model.OrderServed {
				orders[j].StaffID = replacementID
				reassigned++
			}
		}
		if reassigned > 0 {
			if blobs[colOrders], err = encode(colOrders, orders); err != nil {
				return err
			}
		}
	}

	tables, err := readList[model.Table](ctx, c, colTables)
	if err != nil {
		return err
	}
	tablesDirty := false
	for j := range tables {
		if tables[j].AssignedStaffID == staffID {
			tables[j].AssignedStaffID = replacementID
			tablesDirty = true
		}
	}
	if tablesDirty {
		if blobs[colTables], err = encode(colTables, tables); err != nil {
			return err
		}
	}

	staff[i].Active = false
	if blobs[colStaff], err = encode(colStaff, staff); err != nil {
		return err
	}
	if blobs[colLogs], err = c.appendAudit(ctx, actor, "Staff Deactivation",
		fmt.Sprintf("Deactivated %s, moved %d open orders", staff[i].Name, reassigned)); err != nil {
		return err
	}
	if sq, err := c.syncBlob(ctx, ActionUpdateStaff, staff); err != nil {
		return err
	} else if sq != nil {
		blobs[colSyncQueue] = sq
	}

	if err := c.store.WriteMany(ctx, blobs); err != nil {
		return err
	}

	c.bus.Publish(bus.StaffChanged{Staff: staff})
	if tablesDirty {
		c.bus.Publish(bus.TableStateChanged{Tables: tables})
	}
	return nil
}

// saveStaff persists the roster with its audit entry and offline sync
// record, then fans it out. Must be called with c.mu held.
func (c *Core) saveStaff(ctx context.Context, staff []model.Staff, actor, action, detail string) error {
	blobs := make(map[string][]byte)
	var err error
	if blobs[colStaff], err = encode(colStaff, staff); err != nil {
		return err
	}
	if blobs[colLogs], err = c.appendAudit(ctx, actor, action, detail); err != nil {
		return err
	}
	if sq, err := c.syncBlob(ctx, ActionUpdateStaff, staff); err != nil {
		return err
	} else if sq != nil {
		blobs[colSyncQueue] = sq
	}

	if err := c.store.WriteMany(ctx, blobs); err != nil {
		return err
	}
	c.bus.Publish(bus.StaffChanged{Staff: staff})
	return nil
}
