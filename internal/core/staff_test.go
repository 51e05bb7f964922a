package core

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/addisware/addispos/internal/model"
)

func TestAddStaffAndVerifyPIN(t *testing.T) {
	c := newTestCore(t)
	ctx := context.Background()

	member, err := c.AddStaff(ctx, model.Staff{
		Name: "Hanna Bekele", Role: model.RoleCashier,
	}, "4321", "s2")
	require.NoError(t, err)
	assert.True(t, member.Active)
	assert.NotEmpty(t, member.PINHash)
	assert.NotEqual(t, "4321", member.PINHash)

	got, ok, err := c.VerifyPIN(ctx, "4321")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, member.ID, got.ID)

	_, ok, err = c.VerifyPIN(ctx, "0000")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestAddStaffValidation(t *testing.T) {
	c := newTestCore(t)
	ctx := context.Background()

	_, err := c.AddStaff(ctx, model.Staff{}, "1111", "s2")
	assert.True(t, IsInvalid(err))

	_, err = c.AddStaff(ctx, model.Staff{Name: "X"}, "", "s2")
	assert.True(t, IsInvalid(err))

	_, err = c.AddStaff(ctx, model.Staff{ID: "s1", Name: "Dup"}, "1111", "s2")
	assert.True(t, IsInvalid(err))
}

func TestVerifyManagerPIN(t *testing.T) {
	c := newTestCore(t)
	ctx := context.Background()

	_, err := c.AddStaff(ctx, model.Staff{Name: "W", Role: model.RoleWaiter}, "1111", "s2")
	require.NoError(t, err)
	_, err = c.AddStaff(ctx, model.Staff{Name: "M", Role: model.RoleManager}, "2222", "s2")
	require.NoError(t, err)

	ok, err := c.VerifyManagerPIN(ctx, "2222")
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = c.VerifyManagerPIN(ctx, "1111")
	require.NoError(t, err)
	assert.False(t, ok, "waiter PIN carries no approval rights")

	ok, err = c.VerifyManagerPIN(ctx, "9999")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestClockInOnceADay(t *testing.T) {
	c := newTestCore(t)
	ctx := context.Background()

	require.NoError(t, c.ClockIn(ctx, "s1"))
	require.NoError(t, c.ClockIn(ctx, "s1"), "second clock-in same day is a no-op")

	staff, err := c.Staff(ctx)
	require.NoError(t, err)
	require.Len(t, staff[0].Attendance, 1)
	assert.Equal(t, model.AttendanceIn, staff[0].Attendance[0].Kind)
	assert.Equal(t, fixedNow, staff[0].Attendance[0].At)
}

func TestClockOutEndsBreak(t *testing.T) {
	c := newTestCore(t)
	ctx := context.Background()

	require.NoError(t, c.ClockIn(ctx, "s1"))
	require.NoError(t, c.ToggleBreak(ctx, "s1"))

	staff, err := c.Staff(ctx)
	require.NoError(t, err)
	assert.True(t, staff[0].OnBreak)

	require.NoError(t, c.ClockOut(ctx, "s1"))
	staff, err = c.Staff(ctx)
	require.NoError(t, err)
	assert.False(t, staff[0].OnBreak)
	require.Len(t, staff[0].Attendance, 3)
	assert.Equal(t, model.AttendanceOut, staff[0].Attendance[2].Kind)

	// Clocked out then back in on the same day re-opens the shift.
	require.NoError(t, c.ClockIn(ctx, "s1"))
	staff, err = c.Staff(ctx)
	require.NoError(t, err)
	assert.Len(t, staff[0].Attendance, 4)
}

func TestToggleBreakRecordsBothEnds(t *testing.T) {
	c := newTestCore(t)
	ctx := context.Background()

	require.NoError(t, c.ToggleBreak(ctx, "s1"))
	require.NoError(t, c.ToggleBreak(ctx, "s1"))

	staff, err := c.Staff(ctx)
	require.NoError(t, err)
	assert.False(t, staff[0].OnBreak)
	require.Len(t, staff[0].Attendance, 2)
	assert.Equal(t, model.AttendanceBreakStart, staff[0].Attendance[0].Kind)
	assert.Equal(t, model.AttendanceBreakEnd, staff[0].Attendance[1].Kind)
}

func TestAddManagerReview(t *testing.T) {
	c := newTestCore(t)
	ctx := context.Background()

	err := c.AddManagerReview(ctx, "s1", model.ManagerReview{
		Rating: 4, Comment: "Handles the lunch rush well",
	}, "Tigist Alemu")
	require.NoError(t, err)

	staff, err := c.Staff(ctx)
	require.NoError(t, err)
	require.Len(t, staff[0].Reviews, 1)
	assert.Equal(t, 4, staff[0].Reviews[0].Rating)
	assert.Equal(t, fixedNow, staff[0].Reviews[0].At)

	err = c.AddManagerReview(ctx, "s1", model.ManagerReview{Rating: 6}, "Tigist Alemu")
	assert.True(t, IsInvalid(err))
	err = c.AddManagerReview(ctx, "s99", model.ManagerReview{Rating: 3}, "Tigist Alemu")
	assert.True(t, IsNotFound(err))
}

func TestDeactivateStaffReassignsOpenWork(t *testing.T) {
	c := newTestCore(t)
	ctx := context.Background()

	// s1 owns one open dine-in order and one served takeaway, plus a
	// table assignment.
	open, err := c.CreateOrder(ctx, dineInDraft())
	require.NoError(t, err)
	served, err := c.CreateOrder(ctx, takeawayDraft())
	require.NoError(t, err)
	_, err = c.AdvanceStatus(ctx, served.ID, model.OrderServed, "s1")
	require.NoError(t, err)
	_, err = c.AssignTable(ctx, "t2", "s1")
	require.NoError(t, err)

	require.NoError(t, c.DeactivateStaff(ctx, "s1", "s2", "Tigist Alemu"))

	staff, err := c.Staff(ctx)
	require.NoError(t, err)
	assert.False(t, staff[0].Active)

	orders, err := c.Orders(ctx)
	require.NoError(t, err)
	for _, o := range orders {
		switch o.ID {
		case open.ID:
			assert.Equal(t, "s2", o.StaffID, "open order moves to replacement")
		case served.ID:
			assert.Equal(t, "s1", o.StaffID, "served orders keep their history")
		}
	}

	tables, err := c.Tables(ctx)
	require.NoError(t, err)
	assert.Equal(t, "s2", tables[1].AssignedStaffID)
}

func TestDeactivateStaffWithoutReplacementClearsTables(t *testing.T) {
	c := newTestCore(t)
	ctx := context.Background()

	_, err := c.AssignTable(ctx, "t1", "s1")
	require.NoError(t, err)

	require.NoError(t, c.DeactivateStaff(ctx, "s1", "", "Tigist Alemu"))

	tables, err := c.Tables(ctx)
	require.NoError(t, err)
	assert.Empty(t, tables[0].AssignedStaffID)
}

func TestDeactivateStaffErrors(t *testing.T) {
	c := newTestCore(t)
	ctx := context.Background()

	err := c.DeactivateStaff(ctx, "s99", "", "x")
	assert.True(t, IsNotFound(err))
	err = c.DeactivateStaff(ctx, "s1", "s99", "x")
	assert.True(t, IsNotFound(err))
}

func TestUpdateStaff(t *testing.T) {
	c := newTestCore(t)
	ctx := context.Background()

	staff, err := c.Staff(ctx)
	require.NoError(t, err)
	member := staff[0]
	member.Role = model.RoleCashier

	got, err := c.UpdateStaff(ctx, member, "Tigist Alemu")
	require.NoError(t, err)
	assert.Equal(t, model.RoleCashier, got.Role)

	member.ID = "s99"
	_, err = c.UpdateStaff(ctx, member, "Tigist Alemu")
	assert.True(t, IsNotFound(err))
}
