package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/manish9869/onehealth-api/internal/repository"
	"github.com/manish9869/onehealth-api/internal/usecase"
)

// CatalogHandler exposes the medicine, treatment and condition master data.
type CatalogHandler struct {
	catalog *usecase.CatalogService
	logger  *zap.Logger
}

// NewCatalogHandler builds a new catalog handler instance.
func NewCatalogHandler(catalog *usecase.CatalogService, logger *zap.Logger) *CatalogHandler {
	return &CatalogHandler{catalog: catalog, logger: logger}
}

// CatalogRequest defines the payload shared by medicines and conditions.
type CatalogRequest struct {
	Name        string  `json:"name" binding:"required"`
	Description *string `json:"description"`
}

// TreatmentRequest adds the cost field to the catalog payload. Cost is raw
// text; non-numeric values bill as zero.
type TreatmentRequest struct {
	Name        string  `json:"name" binding:"required"`
	Description *string `json:"description"`
	Cost        string  `json:"cost"`
}

var catalogErrorCases = []ErrorCase{
	{Err: usecase.ErrCatalogNameRequired, Status: http.StatusBadRequest, Message: "name is required"},
	{Err: repository.ErrNotFound, Status: http.StatusNotFound, Message: "catalog entry not found"},
}

// CreateMedicine godoc
// @Summary Add a medicine
// @Tags Catalog
// @Accept json
// @Produce json
// @Param request body CatalogRequest true "Medicine"
// @Success 201 {object} Envelope{data=CatalogEntryView}
// @Router /medicines [post]
func (h *CatalogHandler) CreateMedicine(c *gin.Context) {
	var req CatalogRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, NewErrorResponse(c, "invalid medicine payload"))
		return
	}

	medicine, err := h.catalog.CreateMedicine(c.Request.Context(), req.Name, req.Description)
	if err != nil {
		RespondWithMappedError(c, err, catalogErrorCases, http.StatusInternalServerError, "medicine create failed")
		return
	}

	c.JSON(http.StatusCreated, OK(CatalogEntryView{ID: medicine.ID, Name: medicine.Name, Description: medicine.Description}))
}

// UpdateMedicine godoc
// @Summary Update a medicine
// @Tags Catalog
// @Accept json
// @Produce json
// @Param id path int true "Medicine ID"
// @Param request body CatalogRequest true "Medicine"
// @Success 200 {object} Envelope{data=CatalogEntryView}
// @Failure 404 {object} ErrorResponse
// @Router /medicines/{id} [put]
func (h *CatalogHandler) UpdateMedicine(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	var req CatalogRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, NewErrorResponse(c, "invalid medicine payload"))
		return
	}

	medicine, err := h.catalog.UpdateMedicine(c.Request.Context(), id, req.Name, req.Description)
	if err != nil {
		RespondWithMappedError(c, err, catalogErrorCases, http.StatusInternalServerError, "medicine update failed")
		return
	}

	c.JSON(http.StatusOK, OK(CatalogEntryView{ID: medicine.ID, Name: medicine.Name, Description: medicine.Description}))
}

// DeleteMedicine godoc
// @Summary Remove a medicine
// @Tags Catalog
// @Produce json
// @Param id path int true "Medicine ID"
// @Success 200 {object} MessageResponse
// @Router /medicines/{id} [delete]
func (h *CatalogHandler) DeleteMedicine(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	if err := h.catalog.DeleteMedicine(c.Request.Context(), id); err != nil {
		RespondWithMappedError(c, err, catalogErrorCases, http.StatusInternalServerError, "medicine delete failed")
		return
	}
	c.JSON(http.StatusOK, MessageResponse{Message: "medicine removed"})
}

// GetMedicine godoc
// @Summary Get a medicine
// @Tags Catalog
// @Produce json
// @Param id path int true "Medicine ID"
// @Success 200 {object} Envelope{data=CatalogEntryView}
// @Failure 404 {object} ErrorResponse
// @Router /medicines/{id} [get]
func (h *CatalogHandler) GetMedicine(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	medicine, err := h.catalog.GetMedicine(c.Request.Context(), id)
	if err != nil {
		RespondWithMappedError(c, err, catalogErrorCases, http.StatusInternalServerError, "medicine lookup failed")
		return
	}
	c.JSON(http.StatusOK, OK(CatalogEntryView{ID: medicine.ID, Name: medicine.Name, Description: medicine.Description}))
}

// ListMedicines godoc
// @Summary List medicines
// @Tags Catalog
// @Produce json
// @Success 200 {object} Envelope{data=[]CatalogEntryView}
// @Router /medicines [get]
func (h *CatalogHandler) ListMedicines(c *gin.Context) {
	medicines, err := h.catalog.ListMedicines(c.Request.Context())
	if err != nil {
		h.logger.Error("medicine listing failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, NewErrorResponse(c, "medicine listing failed"))
		return
	}

	views := make([]CatalogEntryView, 0, len(medicines))
	for _, medicine := range medicines {
		views = append(views, CatalogEntryView{ID: medicine.ID, Name: medicine.Name, Description: medicine.Description})
	}
	c.JSON(http.StatusOK, OK(views))
}

// CreateTreatment godoc
// @Summary Add a treatment
// @Tags Catalog
// @Accept json
// @Produce json
// @Param request body TreatmentRequest true "Treatment"
// @Success 201 {object} Envelope{data=CatalogEntryView}
// @Router /treatments [post]
func (h *CatalogHandler) CreateTreatment(c *gin.Context) {
	var req TreatmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, NewErrorResponse(c, "invalid treatment payload"))
		return
	}

	treatment, err := h.catalog.CreateTreatment(c.Request.Context(), req.Name, req.Description, req.Cost)
	if err != nil {
		RespondWithMappedError(c, err, catalogErrorCases, http.StatusInternalServerError, "treatment create failed")
		return
	}

	c.JSON(http.StatusCreated, OK(CatalogEntryView{ID: treatment.ID, Name: treatment.Name, Description: treatment.Description, Cost: treatment.Cost}))
}

// UpdateTreatment godoc
// @Summary Update a treatment
// @Tags Catalog
// @Accept json
// @Produce json
// @Param id path int true "Treatment ID"
// @Param request body TreatmentRequest true "Treatment"
// @Success 200 {object} Envelope{data=CatalogEntryView}
// @Failure 404 {object} ErrorResponse
// @Router /treatments/{id} [put]
func (h *CatalogHandler) UpdateTreatment(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	var req TreatmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, NewErrorResponse(c, "invalid treatment payload"))
		return
	}

	treatment, err := h.catalog.UpdateTreatment(c.Request.Context(), id, req.Name, req.Description, req.Cost)
	if err != nil {
		RespondWithMappedError(c, err, catalogErrorCases, http.StatusInternalServerError, "treatment update failed")
		return
	}

	c.JSON(http.StatusOK, OK(CatalogEntryView{ID: treatment.ID, Name: treatment.Name, Description: treatment.Description, Cost: treatment.Cost}))
}

// DeleteTreatment godoc
// @Summary Remove a treatment
// @Tags Catalog
// @Produce json
// @Param id path int true "Treatment ID"
// @Success 200 {object} MessageResponse
// @Router /treatments/{id} [delete]
func (h *CatalogHandler) DeleteTreatment(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	if err := h.catalog.DeleteTreatment(c.Request.Context(), id); err != nil {
		RespondWithMappedError(c, err, catalogErrorCases, http.StatusInternalServerError, "treatment delete failed")
		return
	}
	c.JSON(http.StatusOK, MessageResponse{Message: "treatment removed"})
}

// GetTreatment godoc
// @Summary Get a treatment
// @Tags Catalog
// @Produce json
// @Param id path int true "Treatment ID"
// @Success 200 {object} Envelope{data=CatalogEntryView}
// @Failure 404 {object} ErrorResponse
// @Router /treatments/{id} [get]
func (h *CatalogHandler) GetTreatment(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	treatment, err := h.catalog.GetTreatment(c.Request.Context(), id)
	if err != nil {
		RespondWithMappedError(c, err, catalogErrorCases, http.StatusInternalServerError, "treatment lookup failed")
		return
	}
	c.JSON(http.StatusOK, OK(CatalogEntryView{ID: treatment.ID, Name: treatment.Name, Description: treatment.Description, Cost: treatment.Cost}))
}

// ListTreatments godoc
// @Summary List treatments
// @Tags Catalog
// @Produce json
// @Success 200 {object} Envelope{data=[]CatalogEntryView}
// @Router /treatments [get]
func (h *CatalogHandler) ListTreatments(c *gin.Context) {
	treatments, err := h.catalog.ListTreatments(c.Request.Context())
	if err != nil {
		h.logger.Error("treatment listing failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, NewErrorResponse(c, "treatment listing failed"))
		return
	}

	views := make([]CatalogEntryView, 0, len(treatments))
	for _, treatment := range treatments {
		views = append(views, CatalogEntryView{ID: treatment.ID, Name: treatment.Name, Description: treatment.Description, Cost: treatment.Cost})
	}
	c.JSON(http.StatusOK, OK(views))
}

// CreateCondition godoc
// @Summary Add a medical condition
// @Tags Catalog
// @Accept json
// @Produce json
// @Param request body CatalogRequest true "Condition"
// @Success 201 {object} Envelope{data=CatalogEntryView}
// @Router /medical-condition [post]
func (h *CatalogHandler) CreateCondition(c *gin.Context) {
	var req CatalogRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, NewErrorResponse(c, "invalid condition payload"))
		return
	}

	condition, err := h.catalog.CreateCondition(c.Request.Context(), req.Name, req.Description)
	if err != nil {
		RespondWithMappedError(c, err, catalogErrorCases, http.StatusInternalServerError, "condition create failed")
		return
	}

	c.JSON(http.StatusCreated, OK(CatalogEntryView{ID: condition.ID, Name: condition.Name, Description: condition.Description}))
}

// UpdateCondition godoc
// @Summary Update a medical condition
// @Tags Catalog
// @Accept json
// @Produce json
// @Param id path int true "Condition ID"
// @Param request body CatalogRequest true "Condition"
// @Success 200 {object} Envelope{data=CatalogEntryView}
// @Failure 404 {object} ErrorResponse
// @Router /medical-condition/{id} [put]
func (h *CatalogHandler) UpdateCondition(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	var req CatalogRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, NewErrorResponse(c, "invalid condition payload"))
		return
	}

	condition, err := h.catalog.UpdateCondition(c.Request.Context(), id, req.Name, req.Description)
	if err != nil {
		RespondWithMappedError(c, err, catalogErrorCases, http.StatusInternalServerError, "condition update failed")
		return
	}

	c.JSON(http.StatusOK, OK(CatalogEntryView{ID: condition.ID, Name: condition.Name, Description: condition.Description}))
}

// DeleteCondition godoc
// @Summary Remove a medical condition
// @Tags Catalog
// @Produce json
// @Param id path int true "Condition ID"
// @Success 200 {object} MessageResponse
// @Router /medical-condition/{id} [delete]
func (h *CatalogHandler) DeleteCondition(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	if err := h.catalog.DeleteCondition(c.Request.Context(), id); err != nil {
		RespondWithMappedError(c, err, catalogErrorCases, http.StatusInternalServerError, "condition delete failed")
		return
	}
	c.JSON(http.StatusOK, MessageResponse{Message: "condition removed"})
}

// GetCondition godoc
// @Summary Get a medical condition
// @Tags Catalog
// @Produce json
// @Param id path int true "Condition ID"
// @Success 200 {object} Envelope{data=CatalogEntryView}
// @Failure 404 {object} ErrorResponse
// @Router /medical-condition/{id} [get]
func (h *CatalogHandler) GetCondition(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	condition, err := h.catalog.GetCondition(c.Request.Context(), id)
	if err != nil {
		RespondWithMappedError(c, err, catalogErrorCases, http.StatusInternalServerError, "condition lookup failed")
		return
	}
	c.JSON(http.StatusOK, OK(CatalogEntryView{ID: condition.ID, Name: condition.Name, Description: condition.Description}))
}

// ListConditions godoc
// @Summary List medical conditions
// @Tags Catalog
// @Produce json
// @Success 200 {object} Envelope{data=[]CatalogEntryView}
// @Router /medical-condition [get]
func (h *CatalogHandler) ListConditions(c *gin.Context) {
	conditions, err := h.catalog.ListConditions(c.Request.Context())
	if err != nil {
		h.logger.Error("condition listing failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, NewErrorResponse(c, "condition listing failed"))
		return
	}

	views := make([]CatalogEntryView, 0, len(conditions))
	for _, condition := range conditions {
		views = append(views, CatalogEntryView{ID: condition.ID, Name: condition.Name, Description: condition.Description})
	}
	c.JSON(http.StatusOK, OK(views))
}
