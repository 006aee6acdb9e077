package handlers

import (
	"net/http"

	"gigflow_backend/internal/services"
	"gigflow_backend/internal/services/dto"

	"github.com/gin-gonic/gin"
)

type BidHandler struct {
	*BaseHandler
	facade *services.GigBidFacade
}

func NewBidHandler(base *BaseHandler, facade *services.GigBidFacade) *BidHandler {
	return &BidHandler{
		BaseHandler: base,
		facade:      facade,
	}
}

func (h *BidHandler) RegisterRoutes(r *gin.RouterGroup) {
	bids := r.Group("/bids")
	bids.Use(h.RequireAuth())
	{
		bids.POST("", h.CreateBid)
		bids.GET("/my", h.ListMyBids)
		bids.GET("/:gigId", h.ListBidsForGig)
		bids.PATCH("/:bidId/hire", h.Hire)
	}
}

func (h *BidHandler) CreateBid(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	var req dto.CreateBidRequest
	if !h.BindJSON(c, &req) {
		return
	}

	bid, err := h.facade.CreateBid(c.Request.Context(), userID, &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, bid)
}

// ListBidsForGig is the owner's view of every bid on a gig.
func (h *BidHandler) ListBidsForGig(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	bids, err := h.facade.ListBidsForGig(c.Request.Context(), c.Param("gigId"), userID)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, bids)
}

func (h *BidHandler) ListMyBids(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	bids, err := h.facade.ListMyBids(c.Request.Context(), userID)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, bids)
}

func (h *BidHandler) Hire(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	bid, err := h.facade.Hire(c.Request.Context(), c.Param("bidId"), userID)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, bid)
}
