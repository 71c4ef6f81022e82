package handlers

import (
	"net/http"
	"strings"

	"marketplace/middleware"
	"marketplace/models"
	"marketplace/services/listing"
	"marketplace/services/professional"
	"marketplace/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// ProfessionalHandler serves the signed-in professional's dashboard: profile,
// verification documents and listings.
type ProfessionalHandler struct {
	Professionals professional.ProfessionalService
	Listings      listing.ListingService
}

func NewProfessionalHandler(ps professional.ProfessionalService, ls listing.ListingService) *ProfessionalHandler {
	return &ProfessionalHandler{Professionals: ps, Listings: ls}
}

func (h *ProfessionalHandler) GetProfileHandler(c *gin.Context) {
	p, err := h.Professionals.GetProfile(c.Request.Context(), middleware.UserID(c))
	if err != nil {
		utils.RespondError(c, "Failed to load profile", err)
		return
	}
	c.JSON(http.StatusOK, p)
}

// UpdateProfileHandler handles PATCH /api/professional/profile. Absent fields are left unchanged.
func (h *ProfessionalHandler) UpdateProfileHandler(c *gin.Context) {
	var patch models.ProfilePatch
	if !bindJSON(c, &patch) {
		return
	}
	p, err := h.Professionals.UpdateProfile(c.Request.Context(), middleware.UserID(c), patch)
	if err != nil {
		utils.RespondError(c, "Failed to update profile", err)
		return
	}
	c.JSON(http.StatusOK, p)
}

// SubmitDocumentHandler handles POST /api/professional/documents (multipart "kind" and "file").
func (h *ProfessionalHandler) SubmitDocumentHandler(c *gin.Context) {
	f, name, err := formFile(c)
	if err != nil {
		utils.RespondError(c, "Invalid upload", err)
		return
	}
	defer f.Close()

	doc, err := h.Professionals.SubmitDocument(c.Request.Context(), middleware.UserID(c), c.PostForm("kind"), f, name)
	if err != nil {
		utils.RespondError(c, "Failed to submit document", err)
		return
	}
	getLogger(c).Info("Verification document submitted", zap.String("documentID", doc.ID), zap.String("kind", doc.Kind))
	c.JSON(http.StatusCreated, doc)
}

func (h *ProfessionalHandler) ListDocumentsHandler(c *gin.Context) {
	docs, err := h.Professionals.ListDocuments(c.Request.Context(), middleware.UserID(c))
	if err != nil {
		utils.RespondError(c, "Failed to list documents", err)
		return
	}
	c.JSON(http.StatusOK, docs)
}

// ListListingsHandler handles GET /api/professional/listings: every status, newest first.
func (h *ProfessionalHandler) ListListingsHandler(c *gin.Context) {
	page, size, ok := pageParams(c)
	if !ok {
		return
	}
	res, err := h.Listings.ListMine(c.Request.Context(), middleware.UserID(c), page, size)
	if err != nil {
		utils.RespondError(c, "Failed to list listings", err)
		return
	}
	c.JSON(http.StatusOK, res)
}

func (h *ProfessionalHandler) CreateListingHandler(c *gin.Context) {
	var in models.ListingInput
	if !bindJSON(c, &in) {
		return
	}
	l, err := h.Listings.Create(c.Request.Context(), middleware.UserID(c), in)
	if err != nil {
		utils.RespondError(c, "Failed to create listing", err)
		return
	}
	c.JSON(http.StatusCreated, l)
}

func (h *ProfessionalHandler) UpdateListingHandler(c *gin.Context) {
	var in models.ListingInput
	if !bindJSON(c, &in) {
		return
	}
	l, err := h.Listings.Update(c.Request.Context(), middleware.UserID(c), c.Param("id"), in)
	if err != nil {
		utils.RespondError(c, "Failed to update listing", err)
		return
	}
	c.JSON(http.StatusOK, l)
}

func (h *ProfessionalHandler) DeleteListingHandler(c *gin.Context) {
	if err := h.Listings.Delete(c.Request.Context(), middleware.UserID(c), c.Param("id")); err != nil {
		utils.RespondError(c, "Failed to delete listing", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Listing deleted"})
}

func (h *ProfessionalHandler) PublishListingHandler(c *gin.Context) {
	l, err := h.Listings.Publish(c.Request.Context(), middleware.UserID(c), c.Param("id"))
	if err != nil {
		utils.RespondError(c, "Failed to publish listing", err)
		return
	}
	c.JSON(http.StatusOK, l)
}

func (h *ProfessionalHandler) UnpublishListingHandler(c *gin.Context) {
	l, err := h.Listings.Unpublish(c.Request.Context(), middleware.UserID(c), c.Param("id"))
	if err != nil {
		utils.RespondError(c, "Failed to unpublish listing", err)
		return
	}
	c.JSON(http.StatusOK, l)
}

// AddMediaHandler handles POST /api/professional/listings/:id/media (multipart "file").
func (h *ProfessionalHandler) AddMediaHandler(c *gin.Context) {
	f, name, err := formFile(c)
	if err != nil {
		utils.RespondError(c, "Invalid upload", err)
		return
	}
	defer f.Close()

	l, err := h.Listings.AddMedia(c.Request.Context(), middleware.UserID(c), c.Param("id"), f, name)
	if err != nil {
		utils.RespondError(c, "Failed to add media", err)
		return
	}
	c.JSON(http.StatusCreated, l)
}

// RemoveMediaHandler handles DELETE /api/professional/listings/:id/media/*publicID.
// Storage IDs contain slashes, hence the wildcard.
func (h *ProfessionalHandler) RemoveMediaHandler(c *gin.Context) {
	publicID := strings.TrimPrefix(c.Param("publicID"), "/")
	l, err := h.Listings.RemoveMedia(c.Request.Context(), middleware.UserID(c), c.Param("id"), publicID)
	if err != nil {
		utils.RespondError(c, "Failed to remove media", err)
		return
	}
	c.JSON(http.StatusOK, l)
}
