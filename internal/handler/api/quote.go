package api

import (
	"net/http"

	reqdto "rentworks/internal/handler/dto/request"
	resdto "rentworks/internal/handler/dto/response"
	"rentworks/internal/handler/httperr"
	"rentworks/internal/usecase/queries"

	"github.com/gin-gonic/gin"
)

// QuoteHandler serves the stateless preview surface: price quotes and
// availability checks. Neither endpoint persists anything.
type QuoteHandler struct {
	rentalQueries queries.RentalQueries
}

func NewQuoteHandler(rentalQueries queries.RentalQueries) *QuoteHandler {
	return &QuoteHandler{rentalQueries: rentalQueries}
}

func (h *QuoteHandler) PreviewQuote(c *gin.Context) {
	var query reqdto.QuoteQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid query parameters", nil)
		return
	}

	params, err := query.ToParams()
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, err.Error(), nil)
		return
	}

	view, err := h.rentalQueries.PreviewQuote(c.Request.Context(), params)
	if err != nil {
		abortRentalError(c, err)
		return
	}

	c.JSON(http.StatusOK, resdto.FromQuoteView(view))
}

func (h *QuoteHandler) CheckAvailability(c *gin.Context) {
	var query reqdto.AvailabilityQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid query parameters", nil)
		return
	}

	params, err := query.ToParams()
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, err.Error(), nil)
		return
	}

	result, err := h.rentalQueries.CheckAvailability(c.Request.Context(), params)
	if err != nil {
		abortRentalError(c, err)
		return
	}

	c.JSON(http.StatusOK, resdto.FromAvailabilityResult(result))
}
