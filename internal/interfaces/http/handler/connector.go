package handler

import (
	connectorapp "github.com/crm/backend/internal/application/connector"
	"github.com/crm/backend/internal/domain/connector"
	"github.com/crm/backend/internal/interfaces/http/dto"
	"github.com/gin-gonic/gin"
)

// ConnectorHandler serves provider search and status endpoints
type ConnectorHandler struct {
	BaseHandler
	searchService *connectorapp.SearchService
}

// NewConnectorHandler creates a new ConnectorHandler
func NewConnectorHandler(searchService *connectorapp.SearchService, base BaseHandler) *ConnectorHandler {
	return &ConnectorHandler{
		BaseHandler:   base,
		searchService: searchService,
	}
}

// Search handles POST /api/v1/connectors/:provider/search
func (h *ConnectorHandler) Search(c *gin.Context) {
	var uri dto.ProviderURI
	if err := c.ShouldBindUri(&uri); err != nil {
		h.BadRequest(c, err)
		return
	}

	var req dto.SearchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err)
		return
	}

	appReq := connectorapp.SearchRequest{
		Provider: connector.Provider(uri.Provider),
		Query:    req.Query,
		Filters:  req.Filters,
	}
	if req.Location != nil {
		appReq.Location = &connector.GeoPoint{
			Lat: req.Location.Lat,
			Lng: req.Location.Lng,
		}
	}

	resp, err := h.searchService.Search(c.Request.Context(), h.getUserID(c), appReq)
	if err != nil {
		h.Error(c, err)
		return
	}
	h.Success(c, resp)
}

// Status handles GET /api/v1/connectors/:provider/status
func (h *ConnectorHandler) Status(c *gin.Context) {
	var uri dto.ProviderURI
	if err := c.ShouldBindUri(&uri); err != nil {
		h.BadRequest(c, err)
		return
	}

	status, err := h.searchService.Status(c.Request.Context(), h.getUserID(c), connector.Provider(uri.Provider))
	if err != nil {
		h.Error(c, err)
		return
	}
	h.Success(c, status)
}

// StatusAll handles GET /api/v1/connectors/status
func (h *ConnectorHandler) StatusAll(c *gin.Context) {
	statuses := h.searchService.StatusAll(c.Request.Context(), h.getUserID(c))
	h.Success(c, statuses)
}
