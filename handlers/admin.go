package handlers

import (
	"mime"
	"net/http"

	"marketplace/middleware"
	"marketplace/models"
	"marketplace/services/admin"
	"marketplace/utils"

	"github.com/gabriel-vasile/mimetype"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// AdminHandler encapsulates back-office operations.
type AdminHandler struct {
	Service admin.AdminService
}

func NewAdminHandler(svc admin.AdminService) *AdminHandler {
	return &AdminHandler{Service: svc}
}

// ListUsersHandler handles GET /api/admin/users?q=&role=&status=&page=&pageSize=.
func (h *AdminHandler) ListUsersHandler(c *gin.Context) {
	page, size, ok := pageParams(c)
	if !ok {
		return
	}
	res, err := h.Service.ListUsers(c.Request.Context(), models.UserFilter{
		Query:    c.Query("q"),
		Role:     c.Query("role"),
		Status:   c.Query("status"),
		Page:     page,
		PageSize: size,
	})
	if err != nil {
		utils.RespondError(c, "Failed to fetch users", err)
		return
	}
	c.JSON(http.StatusOK, res)
}

func (h *AdminHandler) GetUserHandler(c *gin.Context) {
	u, err := h.Service.GetUser(c.Request.Context(), c.Param("id"))
	if err != nil {
		utils.RespondError(c, "User not found", err)
		return
	}
	c.JSON(http.StatusOK, u)
}

// UpdateUserHandler handles PATCH /api/admin/users/:id (role and/or status).
func (h *AdminHandler) UpdateUserHandler(c *gin.Context) {
	var upd models.UserUpdate
	if !bindJSON(c, &upd) {
		return
	}
	actor := middleware.UserID(c)
	u, err := h.Service.UpdateUser(c.Request.Context(), actor, c.Param("id"), upd)
	if err != nil {
		utils.RespondError(c, "Failed to update user", err)
		return
	}
	getLogger(c).Info("User updated by admin", zap.String("adminID", actor), zap.String("userID", u.ID),
		zap.String("role", u.Role), zap.String("status", u.Status))
	c.JSON(http.StatusOK, u)
}

func (h *AdminHandler) DeleteUserHandler(c *gin.Context) {
	actor, id := middleware.UserID(c), c.Param("id")
	if err := h.Service.DeleteUser(c.Request.Context(), actor, id); err != nil {
		utils.RespondError(c, "Failed to delete user", err)
		return
	}
	getLogger(c).Info("User deleted by admin", zap.String("adminID", actor), zap.String("userID", id))
	c.JSON(http.StatusOK, gin.H{"message": "User deleted"})
}

// ListDocumentsHandler handles GET /api/admin/documents?status=pending.
func (h *AdminHandler) ListDocumentsHandler(c *gin.Context) {
	page, size, ok := pageParams(c)
	if !ok {
		return
	}
	res, err := h.Service.ListDocuments(c.Request.Context(), c.Query("status"), page, size)
	if err != nil {
		utils.RespondError(c, "Failed to fetch documents", err)
		return
	}
	c.JSON(http.StatusOK, res)
}

func (h *AdminHandler) ApproveDocumentHandler(c *gin.Context) {
	doc, err := h.Service.ApproveDocument(c.Request.Context(), middleware.UserID(c), c.Param("id"))
	if err != nil {
		utils.RespondError(c, "Failed to approve document", err)
		return
	}
	c.JSON(http.StatusOK, doc)
}

// RejectDocumentHandler handles POST /api/admin/documents/:id/reject with {"reason": "..."}.
func (h *AdminHandler) RejectDocumentHandler(c *gin.Context) {
	var req struct {
		Reason string `json:"reason"`
	}
	if !bindJSON(c, &req) {
		return
	}
	doc, err := h.Service.RejectDocument(c.Request.Context(), middleware.UserID(c), c.Param("id"), req.Reason)
	if err != nil {
		utils.RespondError(c, "Failed to reject document", err)
		return
	}
	c.JSON(http.StatusOK, doc)
}

// DocumentURLHandler returns a short-lived signed link to the stored file.
func (h *AdminHandler) DocumentURLHandler(c *gin.Context) {
	url, err := h.Service.DocumentURL(c.Request.Context(), c.Param("id"))
	if err != nil {
		utils.RespondError(c, "Failed to sign document URL", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"url": url})
}

// DocumentFileHandler streams the decrypted document for in-browser review.
func (h *AdminHandler) DocumentFileHandler(c *gin.Context) {
	doc, data, err := h.Service.DocumentFile(c.Request.Context(), c.Param("id"))
	if err != nil {
		utils.RespondError(c, "Failed to load document", err)
		return
	}
	c.Header("Content-Disposition", mime.FormatMediaType("inline", map[string]string{"filename": doc.FileName}))
	c.Header("Cache-Control", "no-store")
	c.Data(http.StatusOK, mimetype.Detect(data).String(), data)
}

func (h *AdminHandler) CreateSectorHandler(c *gin.Context) {
	var in models.SectorInput
	if !bindJSON(c, &in) {
		return
	}
	s, err := h.Service.CreateSector(c.Request.Context(), in)
	if err != nil {
		utils.RespondError(c, "Failed to create sector", err)
		return
	}
	c.JSON(http.StatusCreated, s)
}

func (h *AdminHandler) UpdateSectorHandler(c *gin.Context) {
	var in models.SectorInput
	if !bindJSON(c, &in) {
		return
	}
	s, err := h.Service.UpdateSector(c.Request.Context(), c.Param("id"), in)
	if err != nil {
		utils.RespondError(c, "Failed to update sector", err)
		return
	}
	c.JSON(http.StatusOK, s)
}

func (h *AdminHandler) DeleteSectorHandler(c *gin.Context) {
	if err := h.Service.DeleteSector(c.Request.Context(), c.Param("id")); err != nil {
		utils.RespondError(c, "Failed to delete sector", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Sector deleted"})
}

func (h *AdminHandler) CreateCategoryHandler(c *gin.Context) {
	var in models.CategoryInput
	if !bindJSON(c, &in) {
		return
	}
	cat, err := h.Service.CreateCategory(c.Request.Context(), in)
	if err != nil {
		utils.RespondError(c, "Failed to create category", err)
		return
	}
	c.JSON(http.StatusCreated, cat)
}

func (h *AdminHandler) UpdateCategoryHandler(c *gin.Context) {
	var in models.CategoryInput
	if !bindJSON(c, &in) {
		return
	}
	cat, err := h.Service.UpdateCategory(c.Request.Context(), c.Param("id"), in)
	if err != nil {
		utils.RespondError(c, "Failed to update category", err)
		return
	}
	c.JSON(http.StatusOK, cat)
}

func (h *AdminHandler) DeleteCategoryHandler(c *gin.Context) {
	if err := h.Service.DeleteCategory(c.Request.Context(), c.Param("id")); err != nil {
		utils.RespondError(c, "Failed to delete category", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Category deleted"})
}

func (h *AdminHandler) CreateSubCategoryHandler(c *gin.Context) {
	var in models.SubCategoryInput
	if !bindJSON(c, &in) {
		return
	}
	sc, err := h.Service.CreateSubCategory(c.Request.Context(), in)
	if err != nil {
		utils.RespondError(c, "Failed to create subcategory", err)
		return
	}
	c.JSON(http.StatusCreated, sc)
}

func (h *AdminHandler) UpdateSubCategoryHandler(c *gin.Context) {
	var in models.SubCategoryInput
	if !bindJSON(c, &in) {
		return
	}
	sc, err := h.Service.UpdateSubCategory(c.Request.Context(), c.Param("id"), in)
	if err != nil {
		utils.RespondError(c, "Failed to update subcategory", err)
		return
	}
	c.JSON(http.StatusOK, sc)
}

func (h *AdminHandler) DeleteSubCategoryHandler(c *gin.Context) {
	if err := h.Service.DeleteSubCategory(c.Request.Context(), c.Param("id")); err != nil {
		utils.RespondError(c, "Failed to delete subcategory", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Subcategory deleted"})
}
