package handlers

import (
	"context"
	"net/http"

	"marketplace/models"
	"marketplace/services/catalog"
	"marketplace/services/navigation"
	"marketplace/services/taxonomy"
	"marketplace/utils"

	"github.com/gin-gonic/gin"
)

// Browser runs catalog queries; *catalog.Service implements it.
type Browser interface {
	Browse(ctx context.Context, f catalog.Filter) (*catalog.BrowseResult, error)
	Defaults() catalog.Defaults
}

// Menu builds the site navigation; *navigation.Service implements it.
type Menu interface {
	Menu(ctx context.Context) ([]navigation.MenuSector, error)
}

// TaxonomyReader is the read side of the taxonomy store.
type TaxonomyReader interface {
	Sectors(ctx context.Context) ([]models.Sector, error)
	Categories(ctx context.Context, sectorID string) ([]models.ServiceCategory, error)
	Children(ctx context.Context, categoryID, parentID string) ([]models.ServiceSubCategory, error)
}

type ListingGetter interface {
	Get(ctx context.Context, id string) (*models.ServiceListing, error)
}

// CatalogHandler serves the public browsing endpoints.
type CatalogHandler struct {
	Catalog  Browser
	Nav      Menu
	Taxonomy TaxonomyReader
	Listings ListingGetter
}

func NewCatalogHandler(b Browser, nav Menu, tax TaxonomyReader, listings ListingGetter) *CatalogHandler {
	return &CatalogHandler{Catalog: b, Nav: nav, Taxonomy: tax, Listings: listings}
}

// BrowseHandler handles GET /api/services and the /api/services/:sector/...
// path forms. Path segments take precedence over taxonomy query parameters.
func (h *CatalogHandler) BrowseHandler(c *gin.Context) {
	path := taxonomy.Path{
		Sector:      c.Param("sector"),
		Category:    c.Param("category"),
		SubCategory: c.Param("subcategory"),
	}
	f, err := catalog.ParseFilter(path, c.Request.URL.Query(), h.Catalog.Defaults())
	if err != nil {
		utils.RespondError(c, "Invalid catalog filter", err)
		return
	}
	res, err := h.Catalog.Browse(c.Request.Context(), f)
	if err != nil {
		utils.RespondError(c, "Failed to browse services", err)
		return
	}
	c.JSON(http.StatusOK, res)
}

// NavigationHandler handles GET /api/navigation.
func (h *CatalogHandler) NavigationHandler(c *gin.Context) {
	menu, err := h.Nav.Menu(c.Request.Context())
	if err != nil {
		utils.RespondError(c, "Failed to build navigation", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"sectors": menu})
}

func (h *CatalogHandler) SectorsHandler(c *gin.Context) {
	sectors, err := h.Taxonomy.Sectors(c.Request.Context())
	if err != nil {
		utils.RespondError(c, "Failed to load sectors", err)
		return
	}
	c.JSON(http.StatusOK, sectors)
}

func (h *CatalogHandler) CategoriesHandler(c *gin.Context) {
	cats, err := h.Taxonomy.Categories(c.Request.Context(), c.Param("sectorID"))
	if err != nil {
		utils.RespondError(c, "Failed to load categories", err)
		return
	}
	c.JSON(http.StatusOK, cats)
}

// SubCategoriesHandler returns one level of the subcategory tree: the top
// level, or the children of ?parent=.
func (h *CatalogHandler) SubCategoriesHandler(c *gin.Context) {
	subs, err := h.Taxonomy.Children(c.Request.Context(), c.Param("categoryID"), c.Query("parent"))
	if err != nil {
		utils.RespondError(c, "Failed to load subcategories", err)
		return
	}
	c.JSON(http.StatusOK, subs)
}

// GetListingHandler handles GET /api/listings/:id. Only published listings are visible.
func (h *CatalogHandler) GetListingHandler(c *gin.Context) {
	l, err := h.Listings.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		utils.RespondError(c, "Listing not found", err)
		return
	}
	c.JSON(http.StatusOK, l)
}
