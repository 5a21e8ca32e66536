package handlers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/manish9869/onehealth-api/internal/core/domain"
	"github.com/manish9869/onehealth-api/internal/core/port"
	"github.com/manish9869/onehealth-api/internal/repository"
	"github.com/manish9869/onehealth-api/internal/usecase"
)

// PatientHandler exposes the customer CRUD endpoints.
type PatientHandler struct {
	patients *usecase.PatientService
	logger   *zap.Logger
}

// NewPatientHandler builds a new patient handler instance.
func NewPatientHandler(patients *usecase.PatientService, logger *zap.Logger) *PatientHandler {
	return &PatientHandler{patients: patients, logger: logger}
}

// PatientRequest defines the registration/update payload.
type PatientRequest struct {
	FullName        string  `json:"full_name" binding:"required"`
	Email           string  `json:"email" binding:"required,email"`
	Mobile          string  `json:"mobile" binding:"required"`
	AltMobile       *string `json:"alt_mobile"`
	Address         *string `json:"address"`
	DOB             *string `json:"dob"`
	InsurancePolicy *string `json:"insurance_policy"`
	Password        *string `json:"password"`
}

// PatientView is the API representation of a patient.
type PatientView struct {
	ID              int64      `json:"id"`
	FullName        string     `json:"full_name"`
	Email           string     `json:"email"`
	Mobile          string     `json:"mobile"`
	AltMobile       *string    `json:"alt_mobile,omitempty"`
	Address         *string    `json:"address,omitempty"`
	DOB             *string    `json:"dob,omitempty"`
	InsurancePolicy *string    `json:"insurance_policy,omitempty"`
	PortalEnabled   bool       `json:"portal_enabled"`
	CreatedAt       time.Time  `json:"created_at"`
	UpdatedAt       time.Time  `json:"updated_at"`
}

// PatientPageView is one page of patients with the unpaged total.
type PatientPageView struct {
	Patients []PatientView `json:"patients"`
	Total    int           `json:"total"`
}

var patientErrorCases = []ErrorCase{
	{Err: usecase.ErrPatientRequiredFields, Status: http.StatusBadRequest, Message: "full name, email and mobile are required"},
	{Err: usecase.ErrPatientEmailTaken, Status: http.StatusConflict, Message: "email already registered"},
	{Err: repository.ErrNotFound, Status: http.StatusNotFound, Message: "patient not found"},
}

// Create godoc
// @Summary Register a patient
// @Tags Patients
// @Accept json
// @Produce json
// @Param request body PatientRequest true "Patient"
// @Success 201 {object} Envelope{data=PatientView}
// @Failure 400 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse
// @Router /customers [post]
func (h *PatientHandler) Create(c *gin.Context) {
	input, ok := h.bindPatient(c)
	if !ok {
		return
	}

	patient, err := h.patients.Register(c.Request.Context(), *input)
	if err != nil {
		RespondWithMappedError(c, err, patientErrorCases, http.StatusInternalServerError, "patient registration failed")
		return
	}

	c.JSON(http.StatusCreated, OK(newPatientView(*patient)))
}

// Update godoc
// @Summary Update a patient
// @Tags Patients
// @Accept json
// @Produce json
// @Param id path int true "Patient ID"
// @Param request body PatientRequest true "Patient"
// @Success 200 {object} Envelope{data=PatientView}
// @Failure 404 {object} ErrorResponse
// @Router /customers/{id} [put]
func (h *PatientHandler) Update(c *gin.Context) {
	patientID, ok := pathID(c, "id")
	if !ok {
		return
	}

	input, ok := h.bindPatient(c)
	if !ok {
		return
	}

	patient, err := h.patients.Update(c.Request.Context(), patientID, *input)
	if err != nil {
		RespondWithMappedError(c, err, patientErrorCases, http.StatusInternalServerError, "patient update failed")
		return
	}

	c.JSON(http.StatusOK, OK(newPatientView(*patient)))
}

// Delete godoc
// @Summary Delete a patient
// @Tags Patients
// @Produce json
// @Param id path int true "Patient ID"
// @Success 200 {object} MessageResponse
// @Failure 404 {object} ErrorResponse
// @Router /customers/{id} [delete]
func (h *PatientHandler) Delete(c *gin.Context) {
	patientID, ok := pathID(c, "id")
	if !ok {
		return
	}

	if err := h.patients.Delete(c.Request.Context(), patientID); err != nil {
		RespondWithMappedError(c, err, patientErrorCases, http.StatusInternalServerError, "patient delete failed")
		return
	}

	c.JSON(http.StatusOK, MessageResponse{Message: "patient deleted"})
}

// Get godoc
// @Summary Get a patient
// @Tags Patients
// @Produce json
// @Param id path int true "Patient ID"
// @Success 200 {object} Envelope{data=PatientView}
// @Failure 404 {object} ErrorResponse
// @Router /customers/{id} [get]
func (h *PatientHandler) Get(c *gin.Context) {
	patientID, ok := pathID(c, "id")
	if !ok {
		return
	}

	patient, err := h.patients.Get(c.Request.Context(), patientID)
	if err != nil {
		RespondWithMappedError(c, err, patientErrorCases, http.StatusInternalServerError, "patient lookup failed")
		return
	}

	c.JSON(http.StatusOK, OK(newPatientView(*patient)))
}

// List godoc
// @Summary List patients
// @Tags Patients
// @Produce json
// @Param search query string false "Search by name, email or mobile"
// @Param limit query int false "Page size"
// @Param offset query int false "Page offset"
// @Success 200 {object} Envelope{data=PatientPageView}
// @Router /customers [get]
func (h *PatientHandler) List(c *gin.Context) {
	filter := port.PatientFilter{
		Search: c.Query("search"),
		Limit:  queryInt(c, "limit", 50),
		Offset: queryInt(c, "offset", 0),
	}

	page, err := h.patients.List(c.Request.Context(), filter)
	if err != nil {
		h.logger.Error("patient listing failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, NewErrorResponse(c, "patient listing failed"))
		return
	}

	views := make([]PatientView, 0, len(page.Patients))
	for _, patient := range page.Patients {
		views = append(views, newPatientView(patient))
	}

	c.JSON(http.StatusOK, OK(PatientPageView{Patients: views, Total: page.Total}))
}

func (h *PatientHandler) bindPatient(c *gin.Context) (*usecase.PatientInput, bool) {
	var req PatientRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, NewErrorResponse(c, "invalid patient payload"))
		return nil, false
	}

	input := usecase.PatientInput{
		FullName:        req.FullName,
		Email:           req.Email,
		Mobile:          req.Mobile,
		AltMobile:       req.AltMobile,
		Address:         req.Address,
		InsurancePolicy: req.InsurancePolicy,
		Password:        req.Password,
	}

	if req.DOB != nil && *req.DOB != "" {
		dob, err := time.Parse("2006-01-02", *req.DOB)
		if err != nil {
			c.JSON(http.StatusBadRequest, NewErrorResponse(c, "dob must be YYYY-MM-DD"))
			return nil, false
		}
		input.DOB = &dob
	}

	return &input, true
}

func newPatientView(patient domain.Patient) PatientView {
	view := PatientView{
		ID:              patient.ID,
		FullName:        patient.FullName,
		Email:           patient.Email,
		Mobile:          patient.Mobile,
		AltMobile:       patient.AltMobile,
		Address:         patient.Address,
		InsurancePolicy: patient.InsurancePolicy,
		PortalEnabled:   patient.PasswordHash != nil,
		CreatedAt:       patient.CreatedAt,
		UpdatedAt:       patient.UpdatedAt,
	}
	if patient.DOB != nil {
		dob := patient.DOB.Format("2006-01-02")
		view.DOB = &dob
	}
	return view
}

// pathID parses a positive integer path parameter, responding 400 on failure.
func pathID(c *gin.Context, name string) (int64, bool) {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil || id <= 0 {
		c.JSON(http.StatusBadRequest, NewErrorResponse(c, "invalid "+name))
		return 0, false
	}
	return id, true
}

func queryInt(c *gin.Context, name string, fallback int) int {
	raw := c.Query(name)
	if raw == "" {
		return fallback
	}
	value, err := strconv.Atoi(raw)
	if err != nil || value < 0 {
		return fallback
	}
	return value
}
