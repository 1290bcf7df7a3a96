//go:build unit

package api_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"rentworks/internal/domain/rental"
	"rentworks/internal/handler/api"
	"rentworks/internal/pkg/errs"
	"rentworks/internal/usecase/commands"
	"rentworks/internal/usecase/queries"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"
)

type stubCommands struct {
	view *queries.RentalView
	err  error

	lastCreate *commands.CreateRentalParams
	lastDamage *bool
	lastReason *string
}

func (s *stubCommands) CreateRental(_ context.Context, params commands.CreateRentalParams) (*queries.RentalView, error) {
	s.lastCreate = &params
	return s.view, s.err
}

func (s *stubCommands) ConfirmRental(_ context.Context, _ uuid.UUID) (*queries.RentalView, error) {
	return s.view, s.err
}

func (s *stubCommands) PickupRental(_ context.Context, _ uuid.UUID) (*queries.RentalView, error) {
	return s.view, s.err
}

func (s *stubCommands) ReturnRental(_ context.Context, _ uuid.UUID, damageReported bool) (*queries.RentalView, error) {
	s.lastDamage = &damageReported
	return s.view, s.err
}

func (s *stubCommands) CancelRental(_ context.Context, _ uuid.UUID, reason string) (*queries.RentalView, error) {
	s.lastReason = &reason
	return s.view, s.err
}

type stubQueries struct {
	view         *queries.RentalView
	items        []*queries.RentalListItem
	availability *queries.AvailabilityResult
	quote        *queries.QuoteView
	err          error
}

func (s *stubQueries) GetRental(_ context.Context, _ uuid.UUID) (*queries.RentalView, error) {
	return s.view, s.err
}

func (s *stubQueries) ListRentals(_ context.Context, _ queries.RentalFilter) ([]*queries.RentalListItem, error) {
	return s.items, s.err
}

func (s *stubQueries) CheckAvailability(_ context.Context, _ queries.AvailabilityParams) (*queries.AvailabilityResult, error) {
	return s.availability, s.err
}

func (s *stubQueries) PreviewQuote(_ context.Context, _ queries.QuoteParams) (*queries.QuoteView, error) {
	return s.quote, s.err
}

type RentalHandlerTestSuite struct {
	suite.Suite
	router   *gin.Engine
	commands *stubCommands
	queries  *stubQueries
}

func (s *RentalHandlerTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	s.router = gin.New()

	s.commands = &stubCommands{}
	s.queries = &stubQueries{}
	rentalHandler := api.NewRentalHandler(s.commands, s.queries)
	quoteHandler := api.NewQuoteHandler(s.queries)

	s.router.POST("/rentals", rentalHandler.CreateRental)
	s.router.GET("/rentals", rentalHandler.ListRentals)
	s.router.GET("/rentals/:id", rentalHandler.GetRental)
	s.router.POST("/rentals/:id/confirm", rentalHandler.ConfirmRental)
	s.router.POST("/rentals/:id/pickup", rentalHandler.PickupRental)
	s.router.POST("/rentals/:id/return", rentalHandler.ReturnRental)
	s.router.POST("/rentals/:id/cancel", rentalHandler.CancelRental)
	s.router.GET("/quotes", quoteHandler.PreviewQuote)
	s.router.GET("/resources/availability", quoteHandler.CheckAvailability)
}

func TestRentalHandlerSuite(t *testing.T) {
	suite.Run(t, new(RentalHandlerTestSuite))
}

func (s *RentalHandlerTestSuite) perform(method, url string, body any) *httptest.ResponseRecorder {
	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		s.Require().NoError(err)
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, url, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	rec := httptest.NewRecorder()
	s.router.ServeHTTP(rec, req)
	return rec
}

func sampleView() *queries.RentalView {
	equipmentID := uuid.New()
	return &queries.RentalView{
		ID:            uuid.New(),
		EquipmentID:   &equipmentID,
		StartDate:     time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC),
		EndDate:       time.Date(2026, 3, 17, 0, 0, 0, 0, time.UTC),
		PricingPeriod: "weekly",
		RateCents:     5000,
		SubtotalCents: 10000,
		TotalCents:    10000,
		DepositCents:  2000,
		DepositStatus: "held",
		Status:        "pending",
		CreatedAt:     time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC),
		UpdatedAt:     time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC),
	}
}

func validCreateBody() map[string]any {
	return map[string]any{
		"equipment_id":   uuid.New().String(),
		"pricing_period": "weekly",
		"start_date":     "2026-03-10",
		"end_date":       "2026-03-17",
	}
}

func (s *RentalHandlerTestSuite) TestCreateRental() {
	s.Run("returns 201 with the created rental", func() {
		s.commands.view = sampleView()

		rec := s.perform(http.MethodPost, "/rentals", validCreateBody())

		s.Equal(http.StatusCreated, rec.Code)
		s.Contains(rec.Body.String(), `"status":"pending"`)
		s.Contains(rec.Body.String(), `"startDate":"2026-03-10"`)
		s.Require().NotNil(s.commands.lastCreate)
		s.Equal(rental.PeriodWeekly, s.commands.lastCreate.Period)
	})

	s.Run("rejects malformed dates", func() {
		body := validCreateBody()
		body["start_date"] = "10/03/2026"

		rec := s.perform(http.MethodPost, "/rentals", body)
		s.Equal(http.StatusBadRequest, rec.Code)
	})

	s.Run("rejects unknown pricing period", func() {
		body := validCreateBody()
		body["pricing_period"] = "daily"

		rec := s.perform(http.MethodPost, "/rentals", body)
		s.Equal(http.StatusBadRequest, rec.Code)
	})

	s.Run("maps a booking conflict to 409 with the blocking ids", func() {
		blocking := uuid.New()
		s.commands.view = nil
		s.commands.err = &commands.ConflictError{
			ResourceKey:          "equipment:x",
			ConflictingRentalIDs: []uuid.UUID{blocking},
		}

		rec := s.perform(http.MethodPost, "/rentals", validCreateBody())

		s.Equal(http.StatusConflict, rec.Code)
		s.Contains(rec.Body.String(), "conflictingRentalIds")
		s.Contains(rec.Body.String(), blocking.String())
	})

	s.Run("maps a missing resource to 404", func() {
		s.commands.err = errs.Mark(errs.New("equipment not found"), errs.ErrResourceNotFound)

		rec := s.perform(http.MethodPost, "/rentals", validCreateBody())
		s.Equal(http.StatusNotFound, rec.Code)
	})
}

func (s *RentalHandlerTestSuite) TestGetRental() {
	s.Run("returns the rental", func() {
		s.queries.view = sampleView()

		rec := s.perform(http.MethodGet, "/rentals/"+s.queries.view.ID.String(), nil)

		s.Equal(http.StatusOK, rec.Code)
		s.Contains(rec.Body.String(), s.queries.view.ID.String())
	})

	s.Run("rejects a malformed id", func() {
		rec := s.perform(http.MethodGet, "/rentals/not-a-uuid", nil)
		s.Equal(http.StatusBadRequest, rec.Code)
	})

	s.Run("maps not found to 404", func() {
		s.queries.view = nil
		s.queries.err = errs.Mark(errs.New("rental not found"), errs.ErrRentalNotFound)

		rec := s.perform(http.MethodGet, "/rentals/"+uuid.New().String(), nil)
		s.Equal(http.StatusNotFound, rec.Code)
	})
}

func (s *RentalHandlerTestSuite) TestTransitions() {
	s.Run("confirm returns the updated rental", func() {
		view := sampleView()
		view.Status = "confirmed"
		s.commands.view = view

		rec := s.perform(http.MethodPost, "/rentals/"+view.ID.String()+"/confirm", nil)

		s.Equal(http.StatusOK, rec.Code)
		s.Contains(rec.Body.String(), `"status":"confirmed"`)
	})

	s.Run("maps an illegal transition to 422 with both statuses", func() {
		s.commands.view = nil
		s.commands.err = errs.Mark(&rental.InvalidTransitionError{
			From:      rental.StatusCompleted,
			Requested: rental.StatusConfirmed,
		}, errs.ErrInvalidTransition)

		rec := s.perform(http.MethodPost, "/rentals/"+uuid.New().String()+"/confirm", nil)

		s.Equal(http.StatusUnprocessableEntity, rec.Code)
		s.Contains(rec.Body.String(), `"currentStatus":"completed"`)
		s.Contains(rec.Body.String(), `"requestedStatus":"confirmed"`)
	})

	s.Run("return forwards the damage flag", func() {
		view := sampleView()
		view.Status = "completed"
		s.commands.view = view
		s.commands.err = nil

		rec := s.perform(http.MethodPost, "/rentals/"+view.ID.String()+"/return", map[string]any{
			"damage_reported": true,
		})

		s.Equal(http.StatusOK, rec.Code)
		s.Require().NotNil(s.commands.lastDamage)
		s.True(*s.commands.lastDamage)
	})

	s.Run("return without a body defaults to no damage", func() {
		view := sampleView()
		view.Status = "completed"
		s.commands.view = view

		rec := s.perform(http.MethodPost, "/rentals/"+view.ID.String()+"/return", nil)

		s.Equal(http.StatusOK, rec.Code)
		s.Require().NotNil(s.commands.lastDamage)
		s.False(*s.commands.lastDamage)
	})

	s.Run("cancel forwards the reason", func() {
		view := sampleView()
		view.Status = "cancelled"
		s.commands.view = view

		rec := s.perform(http.MethodPost, "/rentals/"+view.ID.String()+"/cancel", map[string]any{
			"reason": "schedule moved",
		})

		s.Equal(http.StatusOK, rec.Code)
		s.Require().NotNil(s.commands.lastReason)
		s.Equal("schedule moved", *s.commands.lastReason)
	})
}

func (s *RentalHandlerTestSuite) TestListRentals() {
	s.Run("returns all rentals", func() {
		s.queries.items = []*queries.RentalListItem{
			{ID: uuid.New(), Status: "pending", PricingPeriod: "weekly"},
			{ID: uuid.New(), Status: "active", PricingPeriod: "monthly", Overdue: true},
		}

		rec := s.perform(http.MethodGet, "/rentals", nil)

		s.Equal(http.StatusOK, rec.Code)
		s.Contains(rec.Body.String(), `"overdue":true`)
	})

	s.Run("rejects a malformed filter id", func() {
		rec := s.perform(http.MethodGet, "/rentals?equipment_id=nope", nil)
		s.Equal(http.StatusBadRequest, rec.Code)
	})
}

func (s *RentalHandlerTestSuite) TestPreviewQuote() {
	s.Run("returns the priced quote", func() {
		s.queries.quote = &queries.QuoteView{
			StartDate:        time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC),
			EndDate:          time.Date(2026, 3, 17, 0, 0, 0, 0, time.UTC),
			PricingPeriod:    "weekly",
			Days:             8,
			Periods:          2,
			PrimaryRateCents: 5000,
			PrimarySubCents:  10000,
			SubtotalCents:    10000,
			TotalCents:       10000,
		}

		url := "/quotes?equipment_id=" + uuid.New().String() +
			"&pricing_period=weekly&start_date=2026-03-10&end_date=2026-03-17"
		rec := s.perform(http.MethodGet, url, nil)

		s.Equal(http.StatusOK, rec.Code)
		s.Contains(rec.Body.String(), `"periods":2`)
		s.Contains(rec.Body.String(), `"totalCents":10000`)
	})

	s.Run("requires a pricing period", func() {
		url := "/quotes?equipment_id=" + uuid.New().String() +
			"&start_date=2026-03-10&end_date=2026-03-17"
		rec := s.perform(http.MethodGet, url, nil)
		s.Equal(http.StatusBadRequest, rec.Code)
	})
}

func (s *RentalHandlerTestSuite) TestCheckAvailability() {
	s.Run("reports a free window", func() {
		s.queries.availability = &queries.AvailabilityResult{Available: true}

		url := "/resources/availability?equipment_id=" + uuid.New().String() +
			"&start_date=2026-03-10&end_date=2026-03-17"
		rec := s.perform(http.MethodGet, url, nil)

		s.Equal(http.StatusOK, rec.Code)
		s.Contains(rec.Body.String(), `"available":true`)
		s.Contains(rec.Body.String(), `"conflictingRentalIds":[]`)
	})

	s.Run("reports the blockers on an occupied window", func() {
		blocking := uuid.New()
		s.queries.availability = &queries.AvailabilityResult{
			Available:            false,
			ConflictingRentalIDs: []uuid.UUID{blocking},
		}

		url := "/resources/availability?product_id=" + uuid.New().String() +
			"&start_date=2026-03-10&end_date=2026-03-17"
		rec := s.perform(http.MethodGet, url, nil)

		s.Equal(http.StatusOK, rec.Code)
		s.Contains(rec.Body.String(), `"available":false`)
		s.Contains(rec.Body.String(), blocking.String())
	})
}
