package handler

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/bkpsdm/asn-monitor-api/internal/models"
	"github.com/bkpsdm/asn-monitor-api/internal/service"
	appErrors "github.com/bkpsdm/asn-monitor-api/pkg/errors"
	"github.com/bkpsdm/asn-monitor-api/pkg/response"
)

// ASNHandler wires personnel record services to HTTP routes.
type ASNHandler struct {
	records *service.ASNService
}

// NewASNHandler constructs a new ASNHandler.
func NewASNHandler(records *service.ASNService) *ASNHandler {
	return &ASNHandler{records: records}
}

func parseID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "invalid id"))
		return 0, false
	}
	return id, true
}

// List godoc
// @Summary List personnel records
// @Tags ASN
// @Produce json
// @Param search query string false "Search by name/NIP"
// @Param page query int false "Page number"
// @Param limit query int false "Page size (0 = all)"
// @Success 200 {array} models.ASN
// @Router /asns [get]
func (h *ASNHandler) List(c *gin.Context) {
	filter := models.ASNFilter{
		Search: strings.TrimSpace(c.Query("search")),
	}
	if page, err := strconv.Atoi(c.DefaultQuery("page", "1")); err == nil {
		filter.Page = page
	}
	if size, err := strconv.Atoi(c.DefaultQuery("limit", "0")); err == nil {
		filter.PageSize = size
	}

	records, err := h.records.List(c.Request.Context(), filter)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, records)
}

// Get godoc
// @Summary Get one personnel record
// @Tags ASN
// @Produce json
// @Param id path int true "Record ID"
// @Success 200 {object} models.ASN
// @Failure 404 {object} response.ErrorBody
// @Router /asns/{id} [get]
func (h *ASNHandler) Get(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	record, err := h.records.Get(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, record)
}

// Create godoc
// @Summary Create a personnel record
// @Tags ASN
// @Accept json
// @Produce json
// @Param payload body service.CreateASNRequest true "Record payload"
// @Success 201 {object} models.ASN
// @Failure 400 {object} response.ErrorBody
// @Router /asns [post]
func (h *ASNHandler) Create(c *gin.Context) {
	var req service.CreateASNRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid record payload"))
		return
	}
	record, err := h.records.Create(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, record)
}

// Update godoc
// @Summary Patch a personnel record
// @Tags ASN
// @Accept json
// @Produce json
// @Param id path int true "Record ID"
// @Param payload body service.UpdateASNRequest true "Fields to change"
// @Success 200 {object} models.ASN
// @Failure 404 {object} response.ErrorBody
// @Router /asns/{id} [patch]
func (h *ASNHandler) Update(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	var req service.UpdateASNRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid record payload"))
		return
	}
	record, err := h.records.Update(c.Request.Context(), id, req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, record)
}

// Delete godoc
// @Summary Delete a personnel record
// @Tags ASN
// @Param id path int true "Record ID"
// @Success 204
// @Router /asns/{id} [delete]
func (h *ASNHandler) Delete(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	if err := h.records.Delete(c.Request.Context(), id); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}

// Export godoc
// @Summary Export all personnel records as CSV
// @Tags ASN
// @Produce text/csv
// @Success 200
// @Router /asns/export [get]
func (h *ASNHandler) Export(c *gin.Context) {
	payload, err := h.records.ExportCSV(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Attachment(c, "data-asn.csv", "text/csv", payload)
}
