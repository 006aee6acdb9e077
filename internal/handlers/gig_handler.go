package handlers

import (
	"net/http"

	"gigflow_backend/internal/middleware"
	"gigflow_backend/internal/models"
	"gigflow_backend/internal/services"
	"gigflow_backend/internal/services/dto"

	"github.com/gin-gonic/gin"
)

type GigHandler struct {
	*BaseHandler
	facade *services.GigBidFacade
}

func NewGigHandler(base *BaseHandler, facade *services.GigBidFacade) *GigHandler {
	return &GigHandler{
		BaseHandler: base,
		facade:      facade,
	}
}

func (h *GigHandler) RegisterRoutes(r *gin.RouterGroup) {
	public := r.Group("/gigs")
	public.Use(h.OptionalAuth())
	{
		public.GET("", h.ListGigs)
		public.GET("/:gigId", h.GetGig)
	}

	protected := r.Group("/gigs")
	protected.Use(h.RequireAuth())
	{
		protected.POST("", h.CreateGig)
		protected.PATCH("/:gigId/status", h.UpdateStatus)
	}
}

func (h *GigHandler) CreateGig(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	var req dto.CreateGigRequest
	if !h.BindJSON(c, &req) {
		return
	}

	gig, err := h.facade.CreateGig(c.Request.Context(), userID, &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gig)
}

// ListGigs is public; ownerOnly=true needs a signed-in user.
func (h *GigHandler) ListGigs(c *gin.Context) {
	var req dto.ListGigsRequest
	if !h.BindQuery(c, &req) {
		return
	}

	resp, err := h.facade.ListGigs(c.Request.Context(), middleware.GetUserID(c), &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

func (h *GigHandler) GetGig(c *gin.Context) {
	gig, err := h.facade.GetGig(c.Request.Context(), c.Param("gigId"))
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gig)
}

func (h *GigHandler) UpdateStatus(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	var req dto.UpdateGigStatusRequest
	if !h.BindJSON(c, &req) {
		return
	}

	gig, err := h.facade.SetGigStatus(c.Request.Context(), c.Param("gigId"), models.GigStatus(req.Status), userID)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gig)
}
