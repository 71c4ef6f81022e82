package handlers

import (
	"encoding/json"
	"net/http"

	"marketplace/models"
	"marketplace/services/onboarding"
	"marketplace/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// OnboardingHandler serves the professional registration wizard.
type OnboardingHandler struct {
	Service onboarding.OnboardingService
}

func NewOnboardingHandler(svc onboarding.OnboardingService) *OnboardingHandler {
	return &OnboardingHandler{Service: svc}
}

// StartHandler handles POST /api/onboarding with the account step as body.
func (h *OnboardingHandler) StartHandler(c *gin.Context) {
	var account models.OnboardingAccount
	if !bindJSON(c, &account) {
		return
	}
	state, err := h.Service.Start(c.Request.Context(), account)
	if err != nil {
		utils.RespondError(c, "Failed to start onboarding", err)
		return
	}
	getLogger(c).Info("Onboarding started", zap.String("sessionID", state.SessionID))
	c.JSON(http.StatusCreated, state)
}

// StateHandler handles GET /api/onboarding/:sessionID.
func (h *OnboardingHandler) StateHandler(c *gin.Context) {
	state, err := h.Service.State(c.Request.Context(), c.Param("sessionID"))
	if err != nil {
		utils.RespondError(c, "Onboarding session not found", err)
		return
	}
	c.JSON(http.StatusOK, state)
}

// SubmitStepHandler handles PUT /api/onboarding/:sessionID/:step. The body is
// passed through undecoded; the service validates it per step.
func (h *OnboardingHandler) SubmitStepHandler(c *gin.Context) {
	body, err := c.GetRawData()
	if err != nil {
		c.JSON(http.StatusBadRequest, utils.ErrorResponse{Message: "Invalid request", Details: err.Error()})
		return
	}
	state, err := h.Service.SubmitStep(c.Request.Context(), c.Param("sessionID"), c.Param("step"), json.RawMessage(body))
	if err != nil {
		utils.RespondError(c, "Failed to save step", err)
		return
	}
	c.JSON(http.StatusOK, state)
}

// UploadDocumentHandler handles POST /api/onboarding/:sessionID/documents as
// multipart form data with "kind" and "file" parts.
func (h *OnboardingHandler) UploadDocumentHandler(c *gin.Context) {
	f, name, err := formFile(c)
	if err != nil {
		utils.RespondError(c, "Invalid upload", err)
		return
	}
	defer f.Close()

	ref, err := h.Service.UploadDocument(c.Request.Context(), c.Param("sessionID"), c.PostForm("kind"), f, name)
	if err != nil {
		utils.RespondError(c, "Failed to upload document", err)
		return
	}
	c.JSON(http.StatusCreated, ref)
}

// FinalizeHandler handles POST /api/onboarding/:sessionID/finalize and signs
// the new professional in.
func (h *OnboardingHandler) FinalizeHandler(c *gin.Context) {
	resp, err := h.Service.Finalize(c.Request.Context(), c.Param("sessionID"))
	if err != nil {
		utils.RespondError(c, "Failed to complete onboarding", err)
		return
	}
	getLogger(c).Info("Professional onboarded", zap.String("userID", resp.ID))
	c.JSON(http.StatusCreated, resp)
}
