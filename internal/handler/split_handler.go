package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/duosplit/receipt-split-service/internal/domain"
	"github.com/duosplit/receipt-split-service/internal/model"
	"github.com/duosplit/receipt-split-service/internal/service"
	"github.com/duosplit/receipt-split-service/internal/split"
)

// SplitHandler handles HTTP requests for split state operations. The
// browser holds the current state and sends it whole with every
// request; the server returns the next state.
type SplitHandler struct {
	splitService  *service.SplitService
	currencyGlyph string
}

// NewSplitHandler creates a new split handler.
func NewSplitHandler(splitService *service.SplitService, currencyGlyph string) *SplitHandler {
	return &SplitHandler{
		splitService:  splitService,
		currencyGlyph: currencyGlyph,
	}
}

// RegisterRoutes registers the split endpoints on the given router
// group.
func (h *SplitHandler) RegisterRoutes(router *gin.RouterGroup) {
	splitGroup := router.Group("/split")
	{
		splitGroup.POST("", h.CreateSplit)
		splitGroup.PUT("/items/:index/price", h.UpdatePrice)
		splitGroup.PUT("/items/:index/attribution", h.UpdateAttribution)
		splitGroup.PUT("/who-paid", h.UpdateWhoPaid)
		splitGroup.POST("/settlement", h.Settlement)
	}
}

// CreateSplit handles the POST /v1/split endpoint
// @Summary Create a split state from a receipt
// @Description Build the initial item assignment for an extracted receipt, recalling remembered attributions
// @Tags split
// @Accept json
// @Produce json
// @Param request body model.SplitRequest true "Compact receipt JSON"
// @Success 200 {object} model.StateResponse "Initial split state"
// @Failure 400 {object} model.ErrorResponse "Bad request"
// @Failure 500 {object} model.ErrorResponse "Internal server error"
// @Router /v1/split [post]
func (h *SplitHandler) CreateSplit(c *gin.Context) {
	var req model.SplitRequest
	if err := bindJSON(c, &req); err != nil {
		respondBadRequest(c, err.Error())
		return
	}

	receipt, err := domain.ParseReceipt([]byte(req.Receipt))
	if err != nil {
		respondBadRequest(c, ErrInvalidInput, newErrorDetail("receipt", err.Error()))
		return
	}

	state, err := h.splitService.InitializeSplit(c.Request.Context(), receipt)
	if err != nil {
		respondInternalServerError(c, ErrInternalServer)
		return
	}

	respondSuccess(c, model.StateResponse{State: state})
}

// UpdatePrice handles the PUT /v1/split/items/:index/price endpoint
// @Summary Edit the price of one item
// @Description Apply a user-typed price to one item; unparseable input leaves the state unchanged
// @Tags split
// @Accept json
// @Produce json
// @Param index path int true "Item index"
// @Param request body model.PriceUpdateRequest true "Current state and typed price"
// @Success 200 {object} model.StateResponse "Updated split state"
// @Failure 400 {object} model.ErrorResponse "Bad request"
// @Failure 404 {object} model.ErrorResponse "Item index out of range"
// @Router /v1/split/items/{index}/price [put]
func (h *SplitHandler) UpdatePrice(c *gin.Context) {
	index, err := getIndexParam(c, "index")
	if err != nil {
		respondBadRequest(c, err.Error())
		return
	}

	var req model.PriceUpdateRequest
	if err := bindJSON(c, &req); err != nil {
		respondBadRequest(c, err.Error())
		return
	}

	state, err := h.splitService.UpdatePrice(req.State, index, req.Price)
	if err != nil {
		if service.IsIndexError(err) {
			respondNotFound(c, ErrInvalidIndex)
			return
		}
		respondInternalServerError(c, ErrInternalServer)
		return
	}

	respondSuccess(c, model.StateResponse{State: state})
}

// UpdateAttribution handles the PUT /v1/split/items/:index/attribution endpoint
// @Summary Reassign one item
// @Description Assign one item to a person (or both) and remember the choice for similar labels
// @Tags split
// @Accept json
// @Produce json
// @Param index path int true "Item index"
// @Param request body model.AttributionUpdateRequest true "Current state and new attribution"
// @Success 200 {object} model.StateResponse "Updated split state"
// @Failure 400 {object} model.ErrorResponse "Bad request"
// @Failure 404 {object} model.ErrorResponse "Item index out of range"
// @Router /v1/split/items/{index}/attribution [put]
func (h *SplitHandler) UpdateAttribution(c *gin.Context) {
	index, err := getIndexParam(c, "index")
	if err != nil {
		respondBadRequest(c, err.Error())
		return
	}

	var req model.AttributionUpdateRequest
	if err := bindJSON(c, &req); err != nil {
		respondBadRequest(c, err.Error())
		return
	}

	attribution, err := split.ParseAttribution(req.Attribution)
	if err != nil {
		respondBadRequest(c, ErrInvalidInput, newErrorDetail("attribution", err.Error()))
		return
	}

	state, err := h.splitService.UpdateAttribution(c.Request.Context(), req.State, index, attribution)
	if err != nil {
		if service.IsIndexError(err) {
			respondNotFound(c, ErrInvalidIndex)
			return
		}
		respondInternalServerError(c, ErrInternalServer)
		return
	}

	respondSuccess(c, model.StateResponse{State: state})
}

// UpdateWhoPaid handles the PUT /v1/split/who-paid endpoint
// @Summary Select who paid the receipt
// @Tags split
// @Accept json
// @Produce json
// @Param request body model.WhoPaidRequest true "Current state and payer"
// @Success 200 {object} model.StateResponse "Updated split state"
// @Failure 400 {object} model.ErrorResponse "Bad request"
// @Router /v1/split/who-paid [put]
func (h *SplitHandler) UpdateWhoPaid(c *gin.Context) {
	var req model.WhoPaidRequest
	if err := bindJSON(c, &req); err != nil {
		respondBadRequest(c, err.Error())
		return
	}

	payer, err := split.ParseAttribution(req.Payer)
	if err != nil {
		respondBadRequest(c, ErrInvalidInput, newErrorDetail("payer", err.Error()))
		return
	}

	state := h.splitService.UpdateWhoPaid(req.State, payer)
	respondSuccess(c, model.StateResponse{State: state})
}

// Settlement handles the POST /v1/split/settlement endpoint
// @Summary Compute the settlement
// @Description Report who owes whom and how much for the given split state
// @Tags split
// @Accept json
// @Produce json
// @Param request body model.SettlementRequest true "Current state"
// @Success 200 {object} model.SettlementResponse "Computed settlement"
// @Failure 400 {object} model.ErrorResponse "Bad request"
// @Router /v1/split/settlement [post]
func (h *SplitHandler) Settlement(c *gin.Context) {
	var req model.SettlementRequest
	if err := bindJSON(c, &req); err != nil {
		respondBadRequest(c, err.Error())
		return
	}

	settlement, total := h.splitService.Settlement(req.State)
	respondSuccess(c, model.SettlementResponse{
		Debtor:    settlement.Debtor,
		Amount:    settlement.Amount.String(),
		Formatted: settlement.Amount.Format(h.currencyGlyph),
		Total:     total.String(),
	})
}
