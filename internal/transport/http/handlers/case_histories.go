package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/manish9869/onehealth-api/internal/core/domain"
	"github.com/manish9869/onehealth-api/internal/repository"
	"github.com/manish9869/onehealth-api/internal/usecase"
)

// CaseHistoryHandler exposes the case history endpoints.
type CaseHistoryHandler struct {
	cases  *usecase.CaseHistoryService
	logger *zap.Logger
}

// NewCaseHistoryHandler builds a new case history handler instance.
func NewCaseHistoryHandler(cases *usecase.CaseHistoryService, logger *zap.Logger) *CaseHistoryHandler {
	return &CaseHistoryHandler{cases: cases, logger: logger}
}

// CaseHistoryRequest defines the case entry payload.
type CaseHistoryRequest struct {
	PatientID    int64   `json:"patient_id" binding:"required"`
	StaffID      int64   `json:"staff_id" binding:"required"`
	Notes        *string `json:"notes"`
	CaseDate     string  `json:"case_date"`
	ConditionIDs []int64 `json:"condition_ids"`
	TreatmentIDs []int64 `json:"treatment_ids"`
	MedicineIDs  []int64 `json:"medicine_ids"`
}

// CatalogEntryView is a linked catalog entry in API output.
type CatalogEntryView struct {
	ID          int64   `json:"id"`
	Name        string  `json:"name"`
	Description *string `json:"description,omitempty"`
	Cost        string  `json:"cost,omitempty"`
}

// CaseHistoryView is the API representation of a case history.
type CaseHistoryView struct {
	ID         int64              `json:"id"`
	PatientID  int64              `json:"patient_id"`
	StaffID    int64              `json:"staff_id"`
	Notes      *string            `json:"notes,omitempty"`
	CaseDate   time.Time          `json:"case_date"`
	Conditions []CatalogEntryView `json:"conditions"`
	Treatments []CatalogEntryView `json:"treatments"`
	Medicines  []CatalogEntryView `json:"medicines"`
	CreatedAt  time.Time          `json:"created_at"`
	UpdatedAt  time.Time          `json:"updated_at"`
}

var caseErrorCases = []ErrorCase{
	{Err: usecase.ErrCaseUnknownPatient, Status: http.StatusBadRequest, Message: "unknown patient"},
	{Err: repository.ErrNotFound, Status: http.StatusNotFound, Message: "case history not found"},
}

// Create godoc
// @Summary Create a case history
// @Tags CaseHistory
// @Accept json
// @Produce json
// @Param request body CaseHistoryRequest true "Case entry"
// @Success 201 {object} Envelope{data=CaseHistoryView}
// @Failure 400 {object} ErrorResponse
// @Router /case-history [post]
func (h *CaseHistoryHandler) Create(c *gin.Context) {
	input, ok := h.bindCase(c)
	if !ok {
		return
	}

	caseHistory, err := h.cases.Create(c.Request.Context(), *input)
	if err != nil {
		RespondWithMappedError(c, err, caseErrorCases, http.StatusInternalServerError, "case history create failed")
		return
	}

	c.JSON(http.StatusCreated, OK(newCaseHistoryView(*caseHistory)))
}

// Update godoc
// @Summary Update a case history
// @Tags CaseHistory
// @Accept json
// @Produce json
// @Param id path int true "Case ID"
// @Param request body CaseHistoryRequest true "Case entry"
// @Success 200 {object} Envelope{data=CaseHistoryView}
// @Failure 404 {object} ErrorResponse
// @Router /case-history/{id} [put]
func (h *CaseHistoryHandler) Update(c *gin.Context) {
	caseID, ok := pathID(c, "id")
	if !ok {
		return
	}

	input, ok := h.bindCase(c)
	if !ok {
		return
	}

	caseHistory, err := h.cases.Update(c.Request.Context(), caseID, *input)
	if err != nil {
		RespondWithMappedError(c, err, caseErrorCases, http.StatusInternalServerError, "case history update failed")
		return
	}

	c.JSON(http.StatusOK, OK(newCaseHistoryView(*caseHistory)))
}

// Delete godoc
// @Summary Delete a case history
// @Tags CaseHistory
// @Produce json
// @Param id path int true "Case ID"
// @Success 200 {object} MessageResponse
// @Failure 404 {object} ErrorResponse
// @Router /case-history/{id} [delete]
func (h *CaseHistoryHandler) Delete(c *gin.Context) {
	caseID, ok := pathID(c, "id")
	if !ok {
		return
	}

	if err := h.cases.Delete(c.Request.Context(), caseID); err != nil {
		RespondWithMappedError(c, err, caseErrorCases, http.StatusInternalServerError, "case history delete failed")
		return
	}

	c.JSON(http.StatusOK, MessageResponse{Message: "case history deleted"})
}

// Get godoc
// @Summary Get a case history
// @Tags CaseHistory
// @Produce json
// @Param id path int true "Case ID"
// @Success 200 {object} Envelope{data=CaseHistoryView}
// @Failure 404 {object} ErrorResponse
// @Router /case-history/{id} [get]
func (h *CaseHistoryHandler) Get(c *gin.Context) {
	caseID, ok := pathID(c, "id")
	if !ok {
		return
	}

	caseHistory, err := h.cases.Get(c.Request.Context(), caseID)
	if err != nil {
		RespondWithMappedError(c, err, caseErrorCases, http.StatusInternalServerError, "case history lookup failed")
		return
	}

	c.JSON(http.StatusOK, OK(newCaseHistoryView(*caseHistory)))
}

// ListByPatient godoc
// @Summary List case histories for a patient
// @Tags CaseHistory
// @Produce json
// @Param patientID path int true "Patient ID"
// @Success 200 {object} Envelope{data=[]CaseHistoryView}
// @Router /case-history/patient/{patientID} [get]
func (h *CaseHistoryHandler) ListByPatient(c *gin.Context) {
	patientID, ok := pathID(c, "patientID")
	if !ok {
		return
	}

	cases, err := h.cases.ListByPatient(c.Request.Context(), patientID)
	if err != nil {
		h.logger.Error("case history listing failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, NewErrorResponse(c, "case history listing failed"))
		return
	}

	views := make([]CaseHistoryView, 0, len(cases))
	for _, caseHistory := range cases {
		views = append(views, newCaseHistoryView(caseHistory))
	}

	c.JSON(http.StatusOK, OK(views))
}

func (h *CaseHistoryHandler) bindCase(c *gin.Context) (*usecase.CaseHistoryInput, bool) {
	var req CaseHistoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, NewErrorResponse(c, "invalid case history payload"))
		return nil, false
	}

	input := usecase.CaseHistoryInput{
		PatientID:    req.PatientID,
		StaffID:      req.StaffID,
		Notes:        req.Notes,
		ConditionIDs: req.ConditionIDs,
		TreatmentIDs: req.TreatmentIDs,
		MedicineIDs:  req.MedicineIDs,
	}

	if req.CaseDate != "" {
		caseDate, err := time.Parse("2006-01-02", req.CaseDate)
		if err != nil {
			c.JSON(http.StatusBadRequest, NewErrorResponse(c, "case_date must be YYYY-MM-DD"))
			return nil, false
		}
		input.CaseDate = caseDate
	}

	return &input, true
}

func newCaseHistoryView(caseHistory domain.CaseHistory) CaseHistoryView {
	view := CaseHistoryView{
		ID:         caseHistory.ID,
		PatientID:  caseHistory.PatientID,
		StaffID:    caseHistory.StaffID,
		Notes:      caseHistory.Notes,
		CaseDate:   caseHistory.CaseDate,
		Conditions: make([]CatalogEntryView, 0, len(caseHistory.Conditions)),
		Treatments: make([]CatalogEntryView, 0, len(caseHistory.Treatments)),
		Medicines:  make([]CatalogEntryView, 0, len(caseHistory.Medicines)),
		CreatedAt:  caseHistory.CreatedAt,
		UpdatedAt:  caseHistory.UpdatedAt,
	}

	for _, condition := range caseHistory.Conditions {
		view.Conditions = append(view.Conditions, CatalogEntryView{ID: condition.ID, Name: condition.Name, Description: condition.Description})
	}
	for _, treatment := range caseHistory.Treatments {
		view.Treatments = append(view.Treatments, CatalogEntryView{ID: treatment.ID, Name: treatment.Name, Description: treatment.Description, Cost: treatment.Cost})
	}
	for _, medicine := range caseHistory.Medicines {
		view.Medicines = append(view.Medicines, CatalogEntryView{ID: medicine.ID, Name: medicine.Name, Description: medicine.Description})
	}

	return view
}
