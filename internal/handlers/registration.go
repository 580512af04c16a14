package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/makaka119911-oss/Tatiana-Server/internal/config"
	"github.com/makaka119911-oss/Tatiana-Server/internal/models"
	"github.com/makaka119911-oss/Tatiana-Server/internal/notify"
	"github.com/makaka119911-oss/Tatiana-Server/internal/storage"
	"github.com/makaka119911-oss/Tatiana-Server/internal/util"
)

// defaultTestType is stored when neither the request nor its payload names
// a test type.
const defaultTestType = "regular"

// RegistrationHandler owns the ingestion endpoints: registration form
// submissions and test results.
type RegistrationHandler struct {
	log      *zap.Logger
	store    storage.Store
	notifier notify.Notifier
}

func NewRegistrationHandler(log *zap.Logger, store storage.Store, notifier notify.Notifier) *RegistrationHandler {
	return &RegistrationHandler{log: log, store: store, notifier: notifier}
}

// Submit handles POST /register. Validation runs before any write; the
// notification is dispatched only after the insert committed and cannot
// affect the response.
func (h *RegistrationHandler) Submit(c *gin.Context) {
	var req models.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "invalid request body"})
		return
	}

	if field, ok := missingRegistrationField(&req); !ok {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: field + " is required"})
		return
	}

	reg := &models.Registration{
		RegistrationID: util.NewRegistrationID(),
		LastName:       req.LastName,
		FirstName:      req.FirstName,
		Age:            req.Age,
		Phone:          req.Phone,
		Telegram:       req.Telegram,
		Photo:          req.Photo,
	}

	if err := h.store.SaveRegistration(c.Request.Context(), reg); err != nil {
		h.log.Error("Failed to save registration", zap.Error(err))
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{Error: "failed to save registration"})
		return
	}

	h.notifier.RegistrationCreated(reg)

	c.JSON(http.StatusCreated, models.RegisterResponse{
		Success:        true,
		RegistrationID: reg.RegistrationID,
		Message:        "registration saved",
	})
}

// SubmitTestResult handles POST /test-result. The referenced registration
// is looked up before the insert; an unknown id is rejected with 404 and
// nothing is written.
func (h *RegistrationHandler) SubmitTestResult(c *gin.Context) {
	var req models.TestResultRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "invalid request body"})
		return
	}

	if req.RegistrationID == "" {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "registrationId is required"})
		return
	}
	if req.Level == "" {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "level is required"})
		return
	}
	if config.Conf.Ingest.RequireScore && req.Score == 0 {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "score is required"})
		return
	}

	reg, err := h.store.GetRegistration(c.Request.Context(), req.RegistrationID)
	if errors.Is(err, storage.ErrRegistrationNotFound) {
		c.JSON(http.StatusNotFound, models.ErrorResponse{Error: "registration not found"})
		return
	}
	if err != nil {
		h.log.Error("Failed to look up registration", zap.Error(err))
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{Error: "failed to save test result"})
		return
	}

	res := &models.TestResult{
		RegistrationID: reg.RegistrationID,
		Level:          req.Level,
		Score:          req.Score,
		TestType:       resolveTestType(&req),
		TestData:       string(req.TestData),
	}

	if err := h.store.SaveTestResult(c.Request.Context(), res); err != nil {
		h.log.Error("Failed to save test result", zap.Error(err))
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{Error: "failed to save test result"})
		return
	}

	h.notifier.TestResultSubmitted(reg, res)

	c.JSON(http.StatusCreated, models.StatusResponse{
		Success: true,
		Message: "test result saved",
	})
}

// missingRegistrationField reports the first required field the request
// left empty, in the order the form presents them. Age keeps the original
// falsy semantics: zero counts as absent.
func missingRegistrationField(req *models.RegisterRequest) (string, bool) {
	switch {
	case req.LastName == "":
		return "lastName", false
	case req.FirstName == "":
		return "firstName", false
	case req.Age == 0:
		return "age", false
	case req.Phone == "":
		return "phone", false
	case req.Telegram == "":
		return "telegram", false
	}
	return "", true
}

// resolveTestType prefers the explicit request field, then a test_type key
// inside the opaque payload, then the default. Clients historically sent
// the type inside testData only.
func resolveTestType(req *models.TestResultRequest) string {
	if req.TestType != "" {
		return req.TestType
	}
	if len(req.TestData) > 0 {
		var payload struct {
			TestType string `json:"test_type"`
		}
		if err := json.Unmarshal(req.TestData, &payload); err == nil && payload.TestType != "" {
			return payload.TestType
		}
	}
	return defaultTestType
}
