package api

import (
	"context"
	"errors"
	"net/http"

	"rentworks/internal/domain/rental"
	reqdto "rentworks/internal/handler/dto/request"
	resdto "rentworks/internal/handler/dto/response"
	"rentworks/internal/handler/httperr"
	"rentworks/internal/pkg/errs"
	"rentworks/internal/usecase/commands"
	"rentworks/internal/usecase/queries"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type RentalHandler struct {
	rentalCommands commands.RentalCommands
	rentalQueries  queries.RentalQueries
}

func NewRentalHandler(rentalCommands commands.RentalCommands, rentalQueries queries.RentalQueries) *RentalHandler {
	return &RentalHandler{
		rentalCommands: rentalCommands,
		rentalQueries:  rentalQueries,
	}
}

func (h *RentalHandler) CreateRental(c *gin.Context) {
	var req reqdto.CreateRentalRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid request format", nil)
		return
	}

	params, err := req.ToParams()
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, err.Error(), nil)
		return
	}

	view, err := h.rentalCommands.CreateRental(c.Request.Context(), params)
	if err != nil {
		abortRentalError(c, err)
		return
	}

	c.JSON(http.StatusCreated, resdto.FromRentalView(view))
}

func (h *RentalHandler) GetRental(c *gin.Context) {
	id, ok := rentalID(c)
	if !ok {
		return
	}

	view, err := h.rentalQueries.GetRental(c.Request.Context(), id)
	if err != nil {
		abortRentalError(c, err)
		return
	}

	c.JSON(http.StatusOK, resdto.FromRentalView(view))
}

func (h *RentalHandler) ListRentals(c *gin.Context) {
	var query reqdto.ListRentalsQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid query parameters", nil)
		return
	}

	filter, err := query.ToFilter()
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, err.Error(), nil)
		return
	}

	items, err := h.rentalQueries.ListRentals(c.Request.Context(), filter)
	if err != nil {
		abortRentalError(c, err)
		return
	}

	response := make([]*resdto.RentalListResponse, len(items))
	for i, item := range items {
		response[i] = resdto.FromRentalListItem(item)
	}

	c.JSON(http.StatusOK, response)
}

func (h *RentalHandler) ConfirmRental(c *gin.Context) {
	h.applyTransition(c, h.rentalCommands.ConfirmRental)
}

func (h *RentalHandler) PickupRental(c *gin.Context) {
	h.applyTransition(c, h.rentalCommands.PickupRental)
}

func (h *RentalHandler) ReturnRental(c *gin.Context) {
	id, ok := rentalID(c)
	if !ok {
		return
	}

	var req reqdto.ReturnRentalRequest
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid request format", nil)
			return
		}
	}

	view, err := h.rentalCommands.ReturnRental(c.Request.Context(), id, req.DamageReported)
	if err != nil {
		abortRentalError(c, err)
		return
	}

	c.JSON(http.StatusOK, resdto.FromRentalView(view))
}

func (h *RentalHandler) CancelRental(c *gin.Context) {
	id, ok := rentalID(c)
	if !ok {
		return
	}

	var req reqdto.CancelRentalRequest
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid request format", nil)
			return
		}
	}

	view, err := h.rentalCommands.CancelRental(c.Request.Context(), id, req.GetReason())
	if err != nil {
		abortRentalError(c, err)
		return
	}

	c.JSON(http.StatusOK, resdto.FromRentalView(view))
}

func (h *RentalHandler) applyTransition(c *gin.Context, op func(ctx context.Context, id uuid.UUID) (*queries.RentalView, error)) {
	id, ok := rentalID(c)
	if !ok {
		return
	}

	view, err := op(c.Request.Context(), id)
	if err != nil {
		abortRentalError(c, err)
		return
	}

	c.JSON(http.StatusOK, resdto.FromRentalView(view))
}

func rentalID(c *gin.Context) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid rental ID format", nil)
		return uuid.Nil, false
	}
	return id, true
}

func abortRentalError(c *gin.Context, err error) {
	var conflictErr *commands.ConflictError
	var transitionErr *rental.InvalidTransitionError

	switch {
	case errors.As(err, &conflictErr):
		httperr.AbortWithError(c, http.StatusConflict, err, "Requested dates are unavailable", gin.H{
			"conflictingRentalIds": conflictErr.ConflictingRentalIDs,
		})
	case errors.As(err, &transitionErr):
		httperr.AbortWithError(c, http.StatusUnprocessableEntity, err, "Invalid rental transition", gin.H{
			"currentStatus":   transitionErr.From.String(),
			"requestedStatus": transitionErr.Requested.String(),
		})
	case errors.Is(err, errs.ErrRentalNotFound):
		httperr.AbortWithError(c, http.StatusNotFound, err, "Rental not found", nil)
	case errors.Is(err, errs.ErrResourceNotFound):
		httperr.AbortWithError(c, http.StatusNotFound, err, "Resource not found", nil)
	case errors.Is(err, errs.ErrAccessoryNotFound):
		httperr.AbortWithError(c, http.StatusNotFound, err, "Accessory not found", nil)
	case errors.Is(err, errs.ErrInvalidDateRange):
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid date range", nil)
	case errors.Is(err, errs.ErrInvalidRentalInput):
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid rental input", nil)
	default:
		httperr.AbortWithError(c, http.StatusInternalServerError, err, "Internal server error", nil)
	}
}
