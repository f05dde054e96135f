//go:build e2e

package reservation_test

import (
	"context"
	"net/http"
	"sync"
	"testing"

	"loanerdesk/internal/usecase/queries"
	"loanerdesk/internal/usecase/shared"
	"loanerdesk/tests/common/builder"
	"loanerdesk/tests/common/httptest"
	"loanerdesk/tests/e2e"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
)

const (
	reservationsURL = "/api/reservations"
	vehiclesURL     = "/api/vehicles"
)

type ReservationSuite struct {
	e2e.SharedSuite
}

func TestReservationSuite(t *testing.T) {
	t.Parallel()
	suite.Run(t, new(ReservationSuite))
}

func (s *ReservationSuite) createReservation(startDate, endDate string) queries.ReservationView {
	t := s.T()

	req := builder.NewReservationBuilder().
		With(func(b *builder.ReservationBuilder) {
			b.StartDate = startDate
			b.EndDate = endDate
		}).
		BuildCreateRequestDTO()

	w := httptest.PerformRequest(t, s.Router, http.MethodPost, reservationsURL, req)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var created queries.ReservationView
	require.NoError(t, httptest.DecodeResponseBody(t, w.Body, &created))
	require.NotEmpty(t, created.ReservationID)
	return created
}

// =============================================================================
// TestCreateReservation
// =============================================================================

func (s *ReservationSuite) TestCreateReservation() {
	s.Run("Normal case: reservation created with inline customer and checklist", func() {
		t := s.T()

		created := s.createReservation("2024-06-01", "2024-06-05")

		w := httptest.PerformRequest(t, s.Router, http.MethodGet, reservationsURL+"/"+created.ReservationID, nil)
		require.Equal(t, http.StatusOK, w.Code)

		var actual queries.ReservationView
		require.NoError(t, httptest.DecodeResponseBody(t, w.Body, &actual))

		expected := created
		expected.Inspections = nil

		opts := []cmp.Option{
			cmpopts.IgnoreFields(queries.ReservationView{}, "CreatedAt", "UpdatedAt", "Inspections"),
			cmpopts.IgnoreFields(queries.CustomerSummary{}, "DateOfBirth"),
		}
		if diff := cmp.Diff(&expected, &actual, opts...); diff != "" {
			t.Errorf("reservation view mismatch (-want +got):\n%s", diff)
		}

		require.Equal(t, "reserved", actual.Status)
		require.True(t, actual.Eligibility.AgeVerified)
		require.True(t, actual.Eligibility.WaiverSigned)
		require.False(t, actual.Eligibility.InsuranceVerified)
	})

	s.Run("Normal case: existing customer referenced by ID only", func() {
		t := s.T()

		body := map[string]any{
			"customerId":        "CUST-1002",
			"vehicleId":         "LV-002",
			"assignedAdvisorId": "SA-002",
			"startDate":         "2024-07-01",
			"endDate":           "2024-07-03",
		}
		w := httptest.PerformRequest(t, s.Router, http.MethodPost, reservationsURL, body)
		require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

		var created queries.ReservationView
		require.NoError(t, httptest.DecodeResponseBody(t, w.Body, &created))
		require.Equal(t, "CUST-1002", created.CustomerID)
		require.NotNil(t, created.Customer)
		require.Equal(t, "Alice", created.Customer.FirstName)
	})

	s.Run("Error case: unknown bare customer reference is rejected", func() {
		t := s.T()

		body := map[string]any{
			"customerId":        "CUST-9999",
			"vehicleId":         "LV-002",
			"assignedAdvisorId": "SA-001",
			"startDate":         "2024-07-01",
			"endDate":           "2024-07-03",
		}
		w := httptest.PerformRequest(t, s.Router, http.MethodPost, reservationsURL, body)
		httptest.AssertErrorResponse(t, w, http.StatusBadRequest, "Customer does not exist")
	})

	s.Run("Error case: overlapping range returns the conflicting bookings", func() {
		t := s.T()

		existing := s.createReservation("2024-06-01", "2024-06-05")

		req := builder.NewReservationBuilder().
			With(func(b *builder.ReservationBuilder) {
				b.StartDate = "2024-06-04"
				b.EndDate = "2024-06-07"
			}).
			BuildCreateRequestDTO()

		w := httptest.PerformRequest(t, s.Router, http.MethodPost, reservationsURL, req)
		require.Equal(t, http.StatusConflict, w.Code, w.Body.String())

		var body struct {
			Error     string                           `json:"error"`
			Conflicts []shared.ConflictingReservation `json:"conflicts"`
		}
		require.NoError(t, httptest.DecodeResponseBody(t, w.Body, &body))
		require.Len(t, body.Conflicts, 1)
		require.Equal(t, existing.ReservationID, body.Conflicts[0].ReservationID)
		require.Equal(t, "2024-06-01", body.Conflicts[0].StartDate.String())
	})

	s.Run("Normal case: back-to-back booking on the boundary day succeeds", func() {
		t := s.T()

		s.createReservation("2024-06-01", "2024-06-05")

		req := builder.NewReservationBuilder().
			With(func(b *builder.ReservationBuilder) {
				b.StartDate = "2024-06-05"
				b.EndDate = "2024-06-08"
			}).
			BuildCreateRequestDTO()

		w := httptest.PerformRequest(t, s.Router, http.MethodPost, reservationsURL, req)
		require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	})

	s.Run("Error case: cancelled booking still blocks the range", func() {
		t := s.T()

		existing := s.createReservation("2024-06-01", "2024-06-05")

		w := httptest.PerformRequest(t, s.Router, http.MethodPatch,
			reservationsURL+"/"+existing.ReservationID+"/status",
			map[string]string{"status": "cancelled"})
		require.Equal(t, http.StatusOK, w.Code)

		req := builder.NewReservationBuilder().
			With(func(b *builder.ReservationBuilder) {
				b.StartDate = "2024-06-02"
				b.EndDate = "2024-06-04"
			}).
			BuildCreateRequestDTO()

		w = httptest.PerformRequest(t, s.Router, http.MethodPost, reservationsURL, req)
		require.Equal(t, http.StatusConflict, w.Code, w.Body.String())
	})

	s.Run("Race case: concurrent overlapping bookings admit exactly one", func() {
		t := s.T()

		req := builder.NewReservationBuilder().BuildCreateRequestDTO()

		const racers = 2
		codes := make(chan int, racers)
		var wg sync.WaitGroup
		for range racers {
			wg.Add(1)
			go func() {
				defer wg.Done()
				w := httptest.PerformRequest(t, s.Router, http.MethodPost, reservationsURL, req)
				codes <- w.Code
			}()
		}
		wg.Wait()
		close(codes)

		var created, conflicted int
		for code := range codes {
			switch code {
			case http.StatusCreated:
				created++
			case http.StatusConflict:
				conflicted++
			}
		}
		require.Equal(t, 1, created, "exactly one booking wins the range")
		require.Equal(t, 1, conflicted, "the loser sees the winner's booking")
	})

	s.Run("Error case: start date after end date", func() {
		t := s.T()

		req := builder.NewReservationBuilder().
			With(func(b *builder.ReservationBuilder) {
				b.StartDate = "2024-06-09"
				b.EndDate = "2024-06-02"
			}).
			BuildCreateRequestDTO()

		w := httptest.PerformRequest(t, s.Router, http.MethodPost, reservationsURL, req)
		httptest.AssertErrorResponse(t, w, http.StatusBadRequest, "Start date must not be after end date")
	})
}

// =============================================================================
// TestListReservations
// =============================================================================

func (s *ReservationSuite) TestListReservations() {
	s.Run("Normal case: list ordered by start date with status filter", func() {
		t := s.T()

		s.createReservation("2024-06-10", "2024-06-12")
		early := s.createReservation("2024-06-01", "2024-06-05")

		w := httptest.PerformRequest(t, s.Router, http.MethodGet, reservationsURL, nil)
		require.Equal(t, http.StatusOK, w.Code)

		var views []queries.ReservationView
		require.NoError(t, httptest.DecodeResponseBody(t, w.Body, &views))
		require.Len(t, views, 2)
		require.Equal(t, early.ReservationID, views[0].ReservationID, "earliest start date comes first")

		w = httptest.PerformRequest(t, s.Router, http.MethodGet, reservationsURL+"?status=in-use", nil)
		require.Equal(t, http.StatusOK, w.Code)
		var filtered []queries.ReservationView
		require.NoError(t, httptest.DecodeResponseBody(t, w.Body, &filtered))
		require.Empty(t, filtered)
	})
}

// =============================================================================
// TestUpdateReservation
// =============================================================================

func (s *ReservationSuite) TestUpdateReservation() {
	s.Run("Normal case: absent fields keep their current values", func() {
		t := s.T()

		created := s.createReservation("2024-06-01", "2024-06-05")

		w := httptest.PerformRequest(t, s.Router, http.MethodPut,
			reservationsURL+"/"+created.ReservationID,
			map[string]string{"endDate": "2024-06-07"})
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())

		var updated queries.ReservationView
		require.NoError(t, httptest.DecodeResponseBody(t, w.Body, &updated))
		require.Equal(t, "2024-06-01", updated.StartDate.String())
		require.Equal(t, "2024-06-07", updated.EndDate.String())
		require.Equal(t, created.VehicleID, updated.VehicleID)
		require.Equal(t, created.CustomerID, updated.CustomerID)
	})

	s.Run("Normal case: extending a booking does not conflict with itself", func() {
		t := s.T()

		created := s.createReservation("2024-06-01", "2024-06-05")

		w := httptest.PerformRequest(t, s.Router, http.MethodPut,
			reservationsURL+"/"+created.ReservationID,
			map[string]string{"startDate": "2024-06-02", "endDate": "2024-06-06"})
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	})

	s.Run("Error case: moving onto another booking conflicts", func() {
		t := s.T()

		s.createReservation("2024-06-01", "2024-06-05")

		moved := s.createReservation("2024-06-10", "2024-06-12")
		w := httptest.PerformRequest(t, s.Router, http.MethodPut,
			reservationsURL+"/"+moved.ReservationID,
			map[string]string{"startDate": "2024-06-03", "endDate": "2024-06-06"})
		require.Equal(t, http.StatusConflict, w.Code, w.Body.String())
	})

	s.Run("Error case: unknown reservation", func() {
		t := s.T()

		w := httptest.PerformRequest(t, s.Router, http.MethodPut,
			reservationsURL+"/RES-nonexistent",
			map[string]string{"endDate": "2024-06-07"})
		httptest.AssertErrorResponse(t, w, http.StatusNotFound, "Reservation not found")
	})
}

// =============================================================================
// TestUpdateStatus
// =============================================================================

func (s *ReservationSuite) TestUpdateStatus() {
	s.Run("Normal case: status set directly", func() {
		t := s.T()

		created := s.createReservation("2024-06-01", "2024-06-05")

		w := httptest.PerformRequest(t, s.Router, http.MethodPatch,
			reservationsURL+"/"+created.ReservationID+"/status",
			map[string]string{"status": "cancelled"})
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())

		var updated queries.ReservationView
		require.NoError(t, httptest.DecodeResponseBody(t, w.Body, &updated))
		require.Equal(t, "cancelled", updated.Status)
	})

	s.Run("Error case: unknown status value", func() {
		t := s.T()

		created := s.createReservation("2024-06-01", "2024-06-05")

		w := httptest.PerformRequest(t, s.Router, http.MethodPatch,
			reservationsURL+"/"+created.ReservationID+"/status",
			map[string]string{"status": "pending"})
		require.Equal(t, http.StatusBadRequest, w.Code)
	})
}

// =============================================================================
// TestCheckOutCheckIn - full lifecycle with vehicle side effects
// =============================================================================

func (s *ReservationSuite) TestCheckOutCheckIn() {
	s.Run("Normal case: full checkout and check-in cycle", func() {
		t := s.T()

		created := s.createReservation("2024-06-01", "2024-06-05")

		// Checkout with the pre-check inspection.
		w := httptest.PerformRequest(t, s.Router, http.MethodPost,
			reservationsURL+"/"+created.ReservationID+"/checkout",
			map[string]any{
				"odometer":    12010,
				"fuelLevel":   "3/4",
				"notes":       "Small scratch on rear bumper",
				"inspectedBy": "SA-001",
			})
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())

		var afterCheckout queries.ReservationView
		require.NoError(t, httptest.DecodeResponseBody(t, w.Body, &afterCheckout))
		require.Equal(t, "in-use", afterCheckout.Status)
		require.NotNil(t, afterCheckout.CheckOutAt)
		require.Nil(t, afterCheckout.CheckInAt)

		// The vehicle mirrors the inspection reading.
		w = httptest.PerformRequest(t, s.Router, http.MethodGet, vehiclesURL+"/LV-001", nil)
		require.Equal(t, http.StatusOK, w.Code)
		var v queries.VehicleView
		require.NoError(t, httptest.DecodeResponseBody(t, w.Body, &v))
		require.Equal(t, "in-use", v.Status)
		require.Equal(t, int32(12010), v.CurrentOdometer)
		require.Equal(t, "3/4", v.CurrentFuelLevel)

		// Check in with the post-check inspection.
		w = httptest.PerformRequest(t, s.Router, http.MethodPost,
			reservationsURL+"/"+created.ReservationID+"/checkin",
			map[string]any{
				"odometer":    12180,
				"fuelLevel":   "half",
				"inspectedBy": "SA-002",
			})
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())

		var afterCheckin queries.ReservationView
		require.NoError(t, httptest.DecodeResponseBody(t, w.Body, &afterCheckin))
		require.Equal(t, "returned", afterCheckin.Status)
		require.NotNil(t, afterCheckin.CheckInAt)

		w = httptest.PerformRequest(t, s.Router, http.MethodGet, vehiclesURL+"/LV-001", nil)
		require.Equal(t, http.StatusOK, w.Code)
		require.NoError(t, httptest.DecodeResponseBody(t, w.Body, &v))
		require.Equal(t, "available", v.Status)
		require.Equal(t, int32(12180), v.CurrentOdometer)
		require.Equal(t, "half", v.CurrentFuelLevel)

		// Detail fetch carries both inspections, newest first.
		w = httptest.PerformRequest(t, s.Router, http.MethodGet, reservationsURL+"/"+created.ReservationID, nil)
		require.Equal(t, http.StatusOK, w.Code)
		var detail queries.ReservationView
		require.NoError(t, httptest.DecodeResponseBody(t, w.Body, &detail))
		require.Len(t, detail.Inspections, 2)
		require.Equal(t, "post-check", detail.Inspections[0].Type)
		require.Equal(t, "pre-check", detail.Inspections[1].Type)
		require.NotNil(t, detail.Inspections[1].Notes)
		require.Equal(t, "Small scratch on rear bumper", *detail.Inspections[1].Notes)
	})

	s.Run("Error case: unknown reservation", func() {
		t := s.T()

		w := httptest.PerformRequest(t, s.Router, http.MethodPost,
			reservationsURL+"/RES-nonexistent/checkout",
			map[string]any{"odometer": 100, "fuelLevel": "full"})
		httptest.AssertErrorResponse(t, w, http.StatusNotFound, "Reservation not found")
	})

	s.Run("Error case: fuel level outside the allowed set", func() {
		t := s.T()

		created := s.createReservation("2024-06-01", "2024-06-05")

		w := httptest.PerformRequest(t, s.Router, http.MethodPost,
			reservationsURL+"/"+created.ReservationID+"/checkout",
			map[string]any{"odometer": 100, "fuelLevel": "overfull"})
		require.Equal(t, http.StatusBadRequest, w.Code)
	})
}

// =============================================================================
// TestDeleteReservation
// =============================================================================

func (s *ReservationSuite) TestDeleteReservation() {
	s.Run("Normal case: row removed but inspection history survives", func() {
		t := s.T()

		created := s.createReservation("2024-06-01", "2024-06-05")

		w := httptest.PerformRequest(t, s.Router, http.MethodPost,
			reservationsURL+"/"+created.ReservationID+"/checkout",
			map[string]any{"odometer": 12010, "fuelLevel": "3/4"})
		require.Equal(t, http.StatusOK, w.Code)

		w = httptest.PerformRequest(t, s.Router, http.MethodDelete, reservationsURL+"/"+created.ReservationID, nil)
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())

		var body struct {
			Message string                  `json:"message"`
			Data    queries.ReservationView `json:"data"`
		}
		require.NoError(t, httptest.DecodeResponseBody(t, w.Body, &body))
		require.Equal(t, created.ReservationID, body.Data.ReservationID)

		w = httptest.PerformRequest(t, s.Router, http.MethodGet, reservationsURL+"/"+created.ReservationID, nil)
		require.Equal(t, http.StatusNotFound, w.Code)

		// Inspection and eligibility rows are kept as orphaned history.
		var inspectionCount, eligibilityCount int
		err := s.DB.QueryRow(context.Background(),
			"SELECT COUNT(*) FROM inspections WHERE reservation_id = $1", created.ReservationID).Scan(&inspectionCount)
		require.NoError(t, err)
		require.Equal(t, 1, inspectionCount)

		err = s.DB.QueryRow(context.Background(),
			"SELECT COUNT(*) FROM eligibility_verification WHERE reservation_id = $1", created.ReservationID).Scan(&eligibilityCount)
		require.NoError(t, err)
		require.Equal(t, 1, eligibilityCount)
	})

	s.Run("Error case: unknown reservation", func() {
		t := s.T()

		w := httptest.PerformRequest(t, s.Router, http.MethodDelete, reservationsURL+"/RES-nonexistent", nil)
		httptest.AssertErrorResponse(t, w, http.StatusNotFound, "Reservation not found")
	})
}

// =============================================================================
// TestCustomerSearch
// =============================================================================

func (s *ReservationSuite) TestCustomerSearch() {
	s.Run("Normal case: search matches name and license fragments", func() {
		t := s.T()

		w := httptest.PerformRequest(t, s.Router, http.MethodGet, "/api/customers/search/smi", nil)
		require.Equal(t, http.StatusOK, w.Code)

		var matches []queries.CustomerView
		require.NoError(t, httptest.DecodeResponseBody(t, w.Body, &matches))
		require.Len(t, matches, 1)
		require.Equal(t, "CUST-1001", matches[0].CustomerID)

		w = httptest.PerformRequest(t, s.Router, http.MethodGet, "/api/customers/search/D7654", nil)
		require.Equal(t, http.StatusOK, w.Code)
		require.NoError(t, httptest.DecodeResponseBody(t, w.Body, &matches))
		require.Len(t, matches, 1)
		require.Equal(t, "CUST-1002", matches[0].CustomerID)
	})
}
