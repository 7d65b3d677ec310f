package handlers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/firmdex/firmdex-api/internal/models"
	"github.com/firmdex/firmdex-api/internal/store"
)

var productFilters = map[string]string{
	"name":     "name",
	"category": "category",
}

type ProductHandler struct {
	products  store.Store[models.Product]
	companies store.Store[models.Company]
}

func NewProductHandler(products store.Store[models.Product], companies store.Store[models.Company]) *ProductHandler {
	return &ProductHandler{products: products, companies: companies}
}

func (h *ProductHandler) Register(rg *gin.RouterGroup, auth gin.HandlerFunc) {
	g := rg.Group("/products", auth)
	g.GET("", h.List)
	g.POST("", h.Create)
	g.GET("/:id", h.Get)
	g.PUT("/:id", h.Update)
	g.DELETE("/:id", h.Delete)
}

type createProductRequest struct {
	Name          string   `json:"name" binding:"required"`
	Category      string   `json:"category" binding:"required"`
	ProductAmount *float64 `json:"productAmount" binding:"required"`
	AmountUnit    string   `json:"amountUnit" binding:"required"`
	Company       string   `json:"company" binding:"required"`
}

func (h *ProductHandler) Create(c *gin.Context) {
	var req createProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		message(c, http.StatusBadRequest, "name, category, productAmount, amountUnit and company are required")
		return
	}
	companyID, err := primitive.ObjectIDFromHex(req.Company)
	if err != nil {
		message(c, http.StatusBadRequest, "Invalid Company ID")
		return
	}
	product := &models.Product{
		Name:          req.Name,
		Category:      req.Category,
		ProductAmount: *req.ProductAmount,
		AmountUnit:    req.AmountUnit,
		CompanyID:     companyID,
	}
	created, err := h.products.Insert(c.Request.Context(), product)
	if err != nil {
		serverError(c, err)
		return
	}
	if err := h.expand(c.Request.Context(), []*models.Product{created}); err != nil {
		serverError(c, err)
		return
	}
	c.JSON(http.StatusCreated, created)
}

func (h *ProductHandler) List(c *gin.Context) {
	q := store.ParseListQuery(c.Request.URL.Query(), productFilters)
	page, err := h.products.List(c.Request.Context(), q)
	if err != nil {
		serverError(c, err)
		return
	}
	if err := h.expand(c.Request.Context(), page.Items); err != nil {
		serverError(c, err)
		return
	}
	c.JSON(http.StatusOK, page)
}

func (h *ProductHandler) Get(c *gin.Context) {
	product, err := h.products.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		storeError(c, err, "Product")
		return
	}
	if err := h.expand(c.Request.Context(), []*models.Product{product}); err != nil {
		serverError(c, err)
		return
	}
	c.JSON(http.StatusOK, product)
}

type updateProductRequest struct {
	Name          *string  `json:"name"`
	Category      *string  `json:"category"`
	ProductAmount *float64 `json:"productAmount"`
	AmountUnit    *string  `json:"amountUnit"`
	Company       *string  `json:"company"`
}

func (h *ProductHandler) Update(c *gin.Context) {
	var req updateProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		message(c, http.StatusBadRequest, "Invalid request body")
		return
	}
	set := bson.M{}
	for field, v := range map[string]*string{
		"name":       req.Name,
		"category":   req.Category,
		"amountUnit": req.AmountUnit,
	} {
		if v != nil {
			if *v == "" {
				message(c, http.StatusBadRequest, field+" cannot be empty")
				return
			}
			set[field] = *v
		}
	}
	if req.ProductAmount != nil {
		set["productAmount"] = *req.ProductAmount
	}
	if req.Company != nil {
		companyID, err := primitive.ObjectIDFromHex(*req.Company)
		if err != nil {
			message(c, http.StatusBadRequest, "Invalid Company ID")
			return
		}
		set["company"] = companyID
	}
	updated, err := h.products.UpdateByID(c.Request.Context(), c.Param("id"), set)
	if err != nil {
		storeError(c, err, "Product")
		return
	}
	if err := h.expand(c.Request.Context(), []*models.Product{updated}); err != nil {
		serverError(c, err)
		return
	}
	c.JSON(http.StatusOK, updated)
}

func (h *ProductHandler) Delete(c *gin.Context) {
	if err := h.products.DeleteByID(c.Request.Context(), c.Param("id")); err != nil {
		storeError(c, err, "Product")
		return
	}
	message(c, http.StatusOK, "Product deleted")
}

// expand replaces each product's company reference with the full document.
// Dangling references stay nil: deleting a company never breaks its products.
func (h *ProductHandler) expand(ctx context.Context, items []*models.Product) error {
	ids := make([]primitive.ObjectID, 0, len(items))
	seen := map[primitive.ObjectID]bool{}
	for _, p := range items {
		if !p.CompanyID.IsZero() && !seen[p.CompanyID] {
			seen[p.CompanyID] = true
			ids = append(ids, p.CompanyID)
		}
	}
	companies, err := h.companies.FindByIDs(ctx, ids)
	if err != nil {
		return err
	}
	for _, p := range items {
		p.Company = companies[p.CompanyID]
	}
	return nil
}
