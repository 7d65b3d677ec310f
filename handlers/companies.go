package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"

	"github.com/firmdex/firmdex-api/internal/models"
	"github.com/firmdex/firmdex-api/internal/store"
)

// companyFilters maps list query parameters to document fields.
var companyFilters = map[string]string{
	"name":    "name",
	"country": "incorporationCountry",
}

type CompanyHandler struct {
	store store.Store[models.Company]
}

func NewCompanyHandler(s store.Store[models.Company]) *CompanyHandler {
	return &CompanyHandler{store: s}
}

// Register mounts the company CRUD under /companies; every route requires a
// bearer token.
func (h *CompanyHandler) Register(rg *gin.RouterGroup, auth gin.HandlerFunc) {
	g := rg.Group("/companies", auth)
	g.GET("", h.List)
	g.POST("", h.Create)
	g.GET("/:id", h.Get)
	g.PUT("/:id", h.Update)
	g.DELETE("/:id", h.Delete)
}

type createCompanyRequest struct {
	Name                 string `json:"name" binding:"required"`
	LegalNumber          string `json:"legalNumber" binding:"required"`
	IncorporationCountry string `json:"incorporationCountry" binding:"required"`
	Website              string `json:"website"`
}

func (h *CompanyHandler) Create(c *gin.Context) {
	var req createCompanyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		message(c, http.StatusBadRequest, "name, legalNumber and incorporationCountry are required")
		return
	}
	company := &models.Company{
		Name:                 req.Name,
		LegalNumber:          req.LegalNumber,
		IncorporationCountry: req.IncorporationCountry,
		Website:              req.Website,
	}
	created, err := h.store.Insert(c.Request.Context(), company)
	if err != nil {
		if errors.Is(err, store.ErrDuplicate) {
			message(c, http.StatusBadRequest, "A company with this legal number already exists")
			return
		}
		serverError(c, err)
		return
	}
	c.JSON(http.StatusCreated, created)
}

func (h *CompanyHandler) List(c *gin.Context) {
	q := store.ParseListQuery(c.Request.URL.Query(), companyFilters)
	page, err := h.store.List(c.Request.Context(), q)
	if err != nil {
		serverError(c, err)
		return
	}
	c.JSON(http.StatusOK, page)
}

func (h *CompanyHandler) Get(c *gin.Context) {
	company, err := h.store.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		storeError(c, err, "Company")
		return
	}
	c.JSON(http.StatusOK, company)
}

type updateCompanyRequest struct {
	Name                 *string `json:"name"`
	LegalNumber          *string `json:"legalNumber"`
	IncorporationCountry *string `json:"incorporationCountry"`
	Website              *string `json:"website"`
}

func (h *CompanyHandler) Update(c *gin.Context) {
	var req updateCompanyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		message(c, http.StatusBadRequest, "Invalid request body")
		return
	}
	set := bson.M{}
	for field, v := range map[string]*string{
		"name":                 req.Name,
		"legalNumber":          req.LegalNumber,
		"incorporationCountry": req.IncorporationCountry,
	} {
		if v != nil {
			if *v == "" {
				message(c, http.StatusBadRequest, field+" cannot be empty")
				return
			}
			set[field] = *v
		}
	}
	if req.Website != nil {
		set["website"] = *req.Website
	}
	updated, err := h.store.UpdateByID(c.Request.Context(), c.Param("id"), set)
	if err != nil {
		if errors.Is(err, store.ErrDuplicate) {
			message(c, http.StatusBadRequest, "A company with this legal number already exists")
			return
		}
		storeError(c, err, "Company")
		return
	}
	c.JSON(http.StatusOK, updated)
}

func (h *CompanyHandler) Delete(c *gin.Context) {
	if err := h.store.DeleteByID(c.Request.Context(), c.Param("id")); err != nil {
		storeError(c, err, "Company")
		return
	}
	message(c, http.StatusOK, "Company deleted")
}
