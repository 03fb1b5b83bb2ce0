package handlers

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
)

// ListCatalog - GET /api/catalog?region=
// Каталог шоу, сгруппированный по регионам и странам
func (h *Handlers) ListCatalog(c *gin.Context) {
	resp, err := h.services.Catalog.List(c.Request.Context(), c.Query("region"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// CatalogStats - GET /api/catalog/stats?region=
func (h *Handlers) CatalogStats(c *gin.Context) {
	stats, err := h.services.Catalog.Stats(c.Request.Context(), c.Query("region"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, stats)
}

// ListRegions - GET /api/catalog/regions
func (h *Handlers) ListRegions(c *gin.Context) {
	names, err := h.services.Catalog.RegionNames(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"regions": names})
}

// GetShow - GET /api/shows/:id
func (h *Handlers) GetShow(c *gin.Context) {
	show, err := h.services.Catalog.GetShow(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, show)
}

const maxSearchPage = 10000

// SearchShows - GET /api/shows/search?q=&region=&page=&pageSize=
// Полнотекстовый поиск по городу, площадке и стране
func (h *Handlers) SearchShows(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("pageSize", "20"))

	if page < 1 || page > maxSearchPage {
		c.JSON(http.StatusBadRequest, gin.H{"error": fmt.Sprintf("page must be between 1 and %d", maxSearchPage)})
		return
	}
	if pageSize < 1 || pageSize > 50 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "pageSize must be between 1 and 50"})
		return
	}

	resp, err := h.services.Catalog.Search(c.Request.Context(), c.Query("q"), c.Query("region"), page, pageSize)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}
