//go:build unit

package commands_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"loanerdesk/internal/domain/inspection"
	"loanerdesk/internal/domain/reservation"
	"loanerdesk/internal/domain/vehicle"
	"loanerdesk/internal/infra"
	"loanerdesk/internal/notifier"
	"loanerdesk/internal/pkg/clock"
	"loanerdesk/internal/usecase/commands"
	"loanerdesk/internal/usecase/queries"
	"loanerdesk/internal/usecase/shared"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// In-memory fakes standing in for the transactional repositories. The fake
// unit of work runs the callback directly; retry and isolation behavior is
// covered by the database tests.

type fakeState struct {
	reservations map[string]*shared.ReservationSnapshot
	customers    map[string]shared.NewCustomer
	vehicles     map[string]shared.NewVehicle
	inspections  []inspection.Record
	eligibility  int
}

func newFakeState() *fakeState {
	return &fakeState{
		reservations: make(map[string]*shared.ReservationSnapshot),
		customers:    make(map[string]shared.NewCustomer),
		vehicles:     make(map[string]shared.NewVehicle),
	}
}

func (s *fakeState) addReservation(id, customerID, vehicleID string, start, end string, status reservation.Status) {
	sd, _ := reservation.ParseDate(start)
	ed, _ := reservation.ParseDate(end)
	dates, _ := reservation.NewDateRange(sd, ed)
	s.reservations[id] = &shared.ReservationSnapshot{
		ID:         id,
		CustomerID: customerID,
		VehicleID:  vehicleID,
		AdvisorID:  "SA-001",
		Dates:      dates,
		Status:     status,
	}
}

type fakeUoW struct{ state *fakeState }

func (u *fakeUoW) Within(ctx context.Context, fn func(ctx context.Context, tx shared.Tx) error) error {
	return fn(ctx, &fakeTx{state: u.state})
}

func (u *fakeUoW) WithinReadOnly(ctx context.Context, fn func(ctx context.Context, tx shared.Tx) error) error {
	return fn(ctx, &fakeTx{state: u.state})
}

type fakeTx struct{ state *fakeState }

func (t *fakeTx) Reservations() shared.ReservationRepository { return &fakeReservationRepo{t.state} }
func (t *fakeTx) Customers() shared.CustomerRepository       { return &fakeCustomerRepo{t.state} }
func (t *fakeTx) Vehicles() shared.VehicleRepository         { return &fakeVehicleRepo{t.state} }
func (t *fakeTx) Inspections() shared.InspectionRepository   { return &fakeInspectionRepo{t.state} }
func (t *fakeTx) Eligibility() shared.EligibilityRepository  { return &fakeEligibilityRepo{t.state} }
func (t *fakeTx) Views() shared.ReservationViews             { return &fakeViews{t.state} }

var errFakeNotFound = infra.WrapRepoErr("not found", errors.New("not found"), infra.KindNotFound)

type fakeReservationRepo struct{ state *fakeState }

func (r *fakeReservationRepo) Create(_ context.Context, res *reservation.Reservation) error {
	r.state.reservations[res.ID()] = &shared.ReservationSnapshot{
		ID:         res.ID(),
		CustomerID: res.CustomerID(),
		VehicleID:  res.VehicleID(),
		AdvisorID:  res.AdvisorID(),
		Dates:      res.Dates(),
		Status:     res.Status(),
	}
	return nil
}

func (r *fakeReservationRepo) FindSnapshot(_ context.Context, id string) (*shared.ReservationSnapshot, error) {
	snap, ok := r.state.reservations[id]
	if !ok {
		return nil, errFakeNotFound
	}
	cp := *snap
	return &cp, nil
}

func (r *fakeReservationRepo) FindConflicts(_ context.Context, vehicleID string, dates reservation.DateRange, excludeID *string) ([]shared.ConflictingReservation, error) {
	var out []shared.ConflictingReservation
	for _, snap := range r.state.reservations {
		if snap.VehicleID != vehicleID {
			continue
		}
		if excludeID != nil && snap.ID == *excludeID {
			continue
		}
		if snap.Dates.Overlaps(dates) {
			out = append(out, shared.ConflictingReservation{
				ReservationID: snap.ID,
				CustomerID:    snap.CustomerID,
				StartDate:     snap.Dates.Start(),
				EndDate:       snap.Dates.End(),
			})
		}
	}
	return out, nil
}

func (r *fakeReservationRepo) UpdateDetails(_ context.Context, id string, upd shared.ReservationUpdate) error {
	snap, ok := r.state.reservations[id]
	if !ok {
		return errFakeNotFound
	}
	snap.VehicleID = upd.VehicleID
	snap.AdvisorID = upd.AdvisorID
	snap.Dates = upd.Dates
	snap.Status = upd.Status
	return nil
}

func (r *fakeReservationRepo) UpdateStatus(_ context.Context, id string, status reservation.Status) error {
	snap, ok := r.state.reservations[id]
	if !ok {
		return errFakeNotFound
	}
	snap.Status = status
	return nil
}

func (r *fakeReservationRepo) MarkCheckedOut(_ context.Context, id string, _ time.Time) error {
	return r.UpdateStatus(context.Background(), id, reservation.StatusInUse)
}

func (r *fakeReservationRepo) MarkCheckedIn(_ context.Context, id string, _ time.Time) error {
	return r.UpdateStatus(context.Background(), id, reservation.StatusReturned)
}

func (r *fakeReservationRepo) Delete(_ context.Context, id string) error {
	if _, ok := r.state.reservations[id]; !ok {
		return errFakeNotFound
	}
	delete(r.state.reservations, id)
	return nil
}

type fakeCustomerRepo struct{ state *fakeState }

func (r *fakeCustomerRepo) Exists(_ context.Context, id string) (bool, error) {
	_, ok := r.state.customers[id]
	return ok, nil
}

func (r *fakeCustomerRepo) Create(_ context.Context, cust shared.NewCustomer) error {
	r.state.customers[cust.ID] = cust
	return nil
}

func (r *fakeCustomerRepo) Update(_ context.Context, id string, cust shared.NewCustomer) error {
	if _, ok := r.state.customers[id]; !ok {
		return errFakeNotFound
	}
	cust.ID = id
	r.state.customers[id] = cust
	return nil
}

type fakeVehicleRepo struct{ state *fakeState }

func (r *fakeVehicleRepo) Create(_ context.Context, v shared.NewVehicle) error {
	r.state.vehicles[v.ID] = v
	return nil
}

func (r *fakeVehicleRepo) Update(_ context.Context, id string, v shared.NewVehicle) error {
	if _, ok := r.state.vehicles[id]; !ok {
		return errFakeNotFound
	}
	v.ID = id
	r.state.vehicles[id] = v
	return nil
}

func (r *fakeVehicleRepo) ApplyInspection(_ context.Context, id string, status vehicle.Status, odometer int32, fuel vehicle.FuelLevel) error {
	v, ok := r.state.vehicles[id]
	if !ok {
		return errFakeNotFound
	}
	v.Status = status
	v.CurrentOdometer = odometer
	v.CurrentFuelLevel = fuel
	r.state.vehicles[id] = v
	return nil
}

type fakeInspectionRepo struct{ state *fakeState }

func (r *fakeInspectionRepo) Create(_ context.Context, _ string, rec inspection.Record) error {
	r.state.inspections = append(r.state.inspections, rec)
	return nil
}

type fakeEligibilityRepo struct{ state *fakeState }

func (r *fakeEligibilityRepo) Create(_ context.Context, _ string, _ reservation.Eligibility, _ string) error {
	r.state.eligibility++
	return nil
}

type fakeViews struct{ state *fakeState }

func (v *fakeViews) FindByID(_ context.Context, id string) (*queries.ReservationView, error) {
	snap, ok := v.state.reservations[id]
	if !ok {
		return nil, errFakeNotFound
	}
	return &queries.ReservationView{
		ReservationID: snap.ID,
		CustomerID:    snap.CustomerID,
		VehicleID:     snap.VehicleID,
		AdvisorID:     snap.AdvisorID,
		StartDate:     snap.Dates.Start(),
		EndDate:       snap.Dates.End(),
		Status:        snap.Status.String(),
	}, nil
}

type publishedEvent struct {
	action notifier.Action
	view   *queries.ReservationView
}

type spyPublisher struct{ events []publishedEvent }

func (p *spyPublisher) Publish(action notifier.Action, view *queries.ReservationView) {
	p.events = append(p.events, publishedEvent{action: action, view: view})
}

func newCommands(state *fakeState) (commands.ReservationCommands, *spyPublisher) {
	pub := &spyPublisher{}
	clk := clock.NewMockClock(time.Date(2024, 6, 1, 9, 0, 0, 0, time.UTC))
	return commands.NewReservationCommands(&fakeUoW{state: state}, pub, clk), pub
}

func createInput(start, end string) commands.CreateReservationInput {
	sd, _ := reservation.ParseDate(start)
	ed, _ := reservation.ParseDate(end)
	custID := "CUST-1001"
	return commands.CreateReservationInput{
		VehicleID:  "LV-001",
		AdvisorID:  "SA-001",
		StartDate:  sd,
		EndDate:    ed,
		CustomerID: &custID,
	}
}

func TestCreateReservation(t *testing.T) {
	t.Run("books a free vehicle and broadcasts", func(t *testing.T) {
		state := newFakeState()
		state.customers["CUST-1001"] = shared.NewCustomer{ID: "CUST-1001"}
		cmds, pub := newCommands(state)

		view, err := cmds.Create(context.Background(), createInput("2024-06-01", "2024-06-05"))
		require.NoError(t, err)
		require.NotNil(t, view)
		assert.Equal(t, "reserved", view.Status)

		require.Len(t, pub.events, 1)
		assert.Equal(t, notifier.ActionCreate, pub.events[0].action)
		assert.Equal(t, view, pub.events[0].view)
	})

	t.Run("overlapping booking is rejected with the conflicts", func(t *testing.T) {
		state := newFakeState()
		state.customers["CUST-1001"] = shared.NewCustomer{ID: "CUST-1001"}
		state.addReservation("RES-existing", "CUST-1002", "LV-001", "2024-06-01", "2024-06-05", reservation.StatusReserved)
		cmds, pub := newCommands(state)

		_, err := cmds.Create(context.Background(), createInput("2024-06-04", "2024-06-07"))
		require.Error(t, err)
		assert.ErrorIs(t, err, commands.ErrReservationConflict)

		var conflictErr *commands.ConflictError
		require.ErrorAs(t, err, &conflictErr)
		require.Len(t, conflictErr.Conflicts, 1)
		assert.Equal(t, "RES-existing", conflictErr.Conflicts[0].ReservationID)

		assert.Empty(t, pub.events, "no broadcast on failure")
	})

	t.Run("cancelled booking still blocks the range", func(t *testing.T) {
		state := newFakeState()
		state.customers["CUST-1001"] = shared.NewCustomer{ID: "CUST-1001"}
		state.addReservation("RES-cancelled", "CUST-1002", "LV-001", "2024-06-01", "2024-06-05", reservation.StatusCancelled)
		cmds, _ := newCommands(state)

		_, err := cmds.Create(context.Background(), createInput("2024-06-02", "2024-06-04"))
		assert.ErrorIs(t, err, commands.ErrReservationConflict)
	})

	t.Run("back to back bookings share a boundary day", func(t *testing.T) {
		state := newFakeState()
		state.customers["CUST-1001"] = shared.NewCustomer{ID: "CUST-1001"}
		state.addReservation("RES-existing", "CUST-1002", "LV-001", "2024-06-01", "2024-06-05", reservation.StatusReserved)
		cmds, _ := newCommands(state)

		_, err := cmds.Create(context.Background(), createInput("2024-06-05", "2024-06-08"))
		assert.NoError(t, err)
	})

	t.Run("inline customer is created when missing", func(t *testing.T) {
		state := newFakeState()
		cmds, _ := newCommands(state)

		in := createInput("2024-06-01", "2024-06-05")
		in.CustomerID = nil
		in.Customer = &commands.NewCustomerInput{FirstName: "Alice", LastName: "Nguyen"}

		view, err := cmds.Create(context.Background(), in)
		require.NoError(t, err)
		require.Len(t, state.customers, 1)
		assert.NotEmpty(t, view.CustomerID)
	})

	t.Run("bare customer reference must already exist", func(t *testing.T) {
		state := newFakeState()
		cmds, _ := newCommands(state)

		_, err := cmds.Create(context.Background(), createInput("2024-06-01", "2024-06-05"))
		assert.ErrorIs(t, err, commands.ErrCustomerNotFound)
	})

	t.Run("neither customer form given", func(t *testing.T) {
		state := newFakeState()
		cmds, _ := newCommands(state)

		in := createInput("2024-06-01", "2024-06-05")
		in.CustomerID = nil
		_, err := cmds.Create(context.Background(), in)
		assert.ErrorIs(t, err, commands.ErrCustomerRequired)
	})

	t.Run("missing required fields", func(t *testing.T) {
		state := newFakeState()
		cmds, _ := newCommands(state)

		in := createInput("2024-06-01", "2024-06-05")
		in.VehicleID = ""
		_, err := cmds.Create(context.Background(), in)
		assert.ErrorIs(t, err, commands.ErrMissingRequiredFields)
	})

	t.Run("start after end", func(t *testing.T) {
		state := newFakeState()
		state.customers["CUST-1001"] = shared.NewCustomer{ID: "CUST-1001"}
		cmds, _ := newCommands(state)

		_, err := cmds.Create(context.Background(), createInput("2024-06-05", "2024-06-01"))
		assert.ErrorIs(t, err, commands.ErrInvalidDateRange)
	})
}

func TestUpdateReservation(t *testing.T) {
	t.Run("merges absent fields from the current row", func(t *testing.T) {
		state := newFakeState()
		state.addReservation("RES-1", "CUST-1001", "LV-001", "2024-06-01", "2024-06-05", reservation.StatusReserved)
		cmds, pub := newCommands(state)

		end, _ := reservation.ParseDate("2024-06-06")
		view, err := cmds.Update(context.Background(), "RES-1", commands.UpdateReservationInput{EndDate: &end})
		require.NoError(t, err)
		assert.Equal(t, "2024-06-06", view.EndDate.String())
		assert.Equal(t, "LV-001", view.VehicleID)

		require.Len(t, pub.events, 1)
		assert.Equal(t, notifier.ActionUpdate, pub.events[0].action)
	})

	t.Run("own booking does not conflict with itself", func(t *testing.T) {
		state := newFakeState()
		state.addReservation("RES-1", "CUST-1001", "LV-001", "2024-06-01", "2024-06-05", reservation.StatusReserved)
		cmds, _ := newCommands(state)

		end, _ := reservation.ParseDate("2024-06-07")
		_, err := cmds.Update(context.Background(), "RES-1", commands.UpdateReservationInput{EndDate: &end})
		assert.NoError(t, err)
	})

	t.Run("moving onto another booking conflicts", func(t *testing.T) {
		state := newFakeState()
		state.addReservation("RES-1", "CUST-1001", "LV-001", "2024-06-01", "2024-06-05", reservation.StatusReserved)
		state.addReservation("RES-2", "CUST-1002", "LV-002", "2024-06-01", "2024-06-05", reservation.StatusReserved)
		cmds, _ := newCommands(state)

		vehicleID := "LV-002"
		_, err := cmds.Update(context.Background(), "RES-1", commands.UpdateReservationInput{VehicleID: &vehicleID})
		assert.ErrorIs(t, err, commands.ErrReservationConflict)
	})

	t.Run("unknown reservation", func(t *testing.T) {
		state := newFakeState()
		cmds, _ := newCommands(state)

		_, err := cmds.Update(context.Background(), "RES-missing", commands.UpdateReservationInput{})
		assert.ErrorIs(t, err, commands.ErrReservationNotFound)
	})
}

func TestUpdateStatus(t *testing.T) {
	t.Run("sets any valid status without transition checks", func(t *testing.T) {
		state := newFakeState()
		state.addReservation("RES-1", "CUST-1001", "LV-001", "2024-06-01", "2024-06-05", reservation.StatusReturned)
		cmds, _ := newCommands(state)

		view, err := cmds.UpdateStatus(context.Background(), "RES-1", "reserved")
		require.NoError(t, err)
		assert.Equal(t, "reserved", view.Status)
	})

	t.Run("rejects unknown status", func(t *testing.T) {
		state := newFakeState()
		state.addReservation("RES-1", "CUST-1001", "LV-001", "2024-06-01", "2024-06-05", reservation.StatusReserved)
		cmds, _ := newCommands(state)

		_, err := cmds.UpdateStatus(context.Background(), "RES-1", "pending")
		assert.ErrorIs(t, err, commands.ErrInvalidInput)
	})
}

func TestCheckOutAndCheckIn(t *testing.T) {
	setup := func() (*fakeState, commands.ReservationCommands, *spyPublisher) {
		state := newFakeState()
		state.addReservation("RES-1", "CUST-1001", "LV-001", "2024-06-01", "2024-06-05", reservation.StatusReserved)
		state.vehicles["LV-001"] = shared.NewVehicle{ID: "LV-001", Status: vehicle.StatusAvailable, CurrentOdometer: 12000, CurrentFuelLevel: vehicle.FuelFull}
		cmds, pub := newCommands(state)
		return state, cmds, pub
	}

	t.Run("checkout records pre-check and marks vehicle in use", func(t *testing.T) {
		state, cmds, pub := setup()

		view, err := cmds.CheckOut(context.Background(), "RES-1", commands.InspectionInput{
			Odometer:  12010,
			FuelLevel: "3/4",
		})
		require.NoError(t, err)
		assert.Equal(t, "in-use", view.Status)

		v := state.vehicles["LV-001"]
		assert.Equal(t, vehicle.StatusInUse, v.Status)
		assert.Equal(t, int32(12010), v.CurrentOdometer)
		assert.Equal(t, vehicle.FuelThreeQuarters, v.CurrentFuelLevel)

		require.Len(t, state.inspections, 1)
		assert.Equal(t, inspection.TypePreCheck, state.inspections[0].Type)

		require.Len(t, pub.events, 1)
		assert.Equal(t, notifier.ActionUpdate, pub.events[0].action)
	})

	t.Run("checkin records post-check and releases vehicle", func(t *testing.T) {
		state, cmds, _ := setup()

		_, err := cmds.CheckOut(context.Background(), "RES-1", commands.InspectionInput{Odometer: 12010, FuelLevel: "3/4"})
		require.NoError(t, err)

		view, err := cmds.CheckIn(context.Background(), "RES-1", commands.InspectionInput{Odometer: 12180, FuelLevel: "half"})
		require.NoError(t, err)
		assert.Equal(t, "returned", view.Status)

		v := state.vehicles["LV-001"]
		assert.Equal(t, vehicle.StatusAvailable, v.Status)
		assert.Equal(t, int32(12180), v.CurrentOdometer)

		require.Len(t, state.inspections, 2)
		assert.Equal(t, inspection.TypePostCheck, state.inspections[1].Type)
	})

	t.Run("invalid fuel level", func(t *testing.T) {
		_, cmds, _ := setup()
		_, err := cmds.CheckOut(context.Background(), "RES-1", commands.InspectionInput{Odometer: 1, FuelLevel: "overfull"})
		assert.ErrorIs(t, err, commands.ErrInvalidInput)
	})

	t.Run("unknown reservation", func(t *testing.T) {
		_, cmds, _ := setup()
		_, err := cmds.CheckOut(context.Background(), "RES-404", commands.InspectionInput{Odometer: 1, FuelLevel: "full"})
		assert.ErrorIs(t, err, commands.ErrReservationNotFound)
	})
}

func TestDeleteReservation(t *testing.T) {
	t.Run("returns the deleted view for the broadcast", func(t *testing.T) {
		state := newFakeState()
		state.addReservation("RES-1", "CUST-1001", "LV-001", "2024-06-01", "2024-06-05", reservation.StatusReserved)
		cmds, pub := newCommands(state)

		view, err := cmds.Delete(context.Background(), "RES-1")
		require.NoError(t, err)
		assert.Equal(t, "RES-1", view.ReservationID)
		assert.Empty(t, state.reservations)

		require.Len(t, pub.events, 1)
		assert.Equal(t, notifier.ActionDelete, pub.events[0].action)
		assert.Equal(t, view, pub.events[0].view)
	})

	t.Run("unknown reservation", func(t *testing.T) {
		state := newFakeState()
		cmds, _ := newCommands(state)

		_, err := cmds.Delete(context.Background(), "RES-missing")
		assert.ErrorIs(t, err, commands.ErrReservationNotFound)
	})
}
