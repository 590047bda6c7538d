package controller

import (
	"net/http"
	"product-api/pkg/auth"
	"product-api/pkg/logger"
	"product-api/pkg/model"
	productService "product-api/service-api/internal/service/product"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// ProductController handles product-related HTTP requests
type ProductController struct {
	productService productService.Service
}

// NewProductController creates a new product controller
func NewProductController(productService productService.Service) *ProductController {
	return &ProductController{
		productService: productService,
	}
}

// GetProducts lists every product
func (pc *ProductController) GetProducts(c *gin.Context) {
	actor, ok := currentUser(c)
	if !ok {
		return
	}

	products, err := pc.productService.List(c.Request.Context(), actor)
	if err != nil {
		respondError(c, err, "list products")
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": model.ToResources(products)})
}

// CreateProduct creates a product owned by the authenticated user
func (pc *ProductController) CreateProduct(c *gin.Context) {
	actor, ok := currentUser(c)
	if !ok {
		return
	}

	var req model.ProductRequest
	if err := bindJSON(c, &req); err != nil {
		respondInvalidJSON(c, err)
		return
	}

	product, err := pc.productService.Create(c.Request.Context(), actor, &req)
	if err != nil {
		respondError(c, err, "create product")
		return
	}

	logger.Infof("product %s created by %s", product.ID, actor.ID)
	c.JSON(http.StatusCreated, gin.H{"data": product.ToResource()})
}

// GetProduct returns a single product
func (pc *ProductController) GetProduct(c *gin.Context) {
	actor, ok := currentUser(c)
	if !ok {
		return
	}

	// malformed ids cannot match any product
	productID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"message": msgNotFound})
		return
	}

	product, err := pc.productService.Get(c.Request.Context(), actor, productID)
	if err != nil {
		respondError(c, err, "get product")
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": product.ToResource()})
}

// UpdateProduct handles both PUT and PATCH; only supplied fields change
func (pc *ProductController) UpdateProduct(c *gin.Context) {
	actor, ok := currentUser(c)
	if !ok {
		return
	}

	productID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"message": msgNotFound})
		return
	}

	var req model.ProductRequest
	if err := bindJSON(c, &req); err != nil {
		respondInvalidJSON(c, err)
		return
	}

	product, err := pc.productService.Update(c.Request.Context(), actor, productID, &req)
	if err != nil {
		respondError(c, err, "update product")
		return
	}

	logger.Infof("product %s updated by %s", product.ID, actor.ID)
	c.JSON(http.StatusOK, gin.H{"data": product.ToResource()})
}

// DeleteProduct removes a product
func (pc *ProductController) DeleteProduct(c *gin.Context) {
	actor, ok := currentUser(c)
	if !ok {
		return
	}

	productID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"message": msgNotFound})
		return
	}

	err = pc.productService.Delete(c.Request.Context(), actor, productID)
	if err != nil {
		respondError(c, err, "delete product")
		return
	}

	logger.Infof("product %s deleted by %s", productID, actor.ID)
	c.Status(http.StatusNoContent)
}

func currentUser(c *gin.Context) (*model.User, bool) {
	user, ok := auth.CurrentUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"message": "Unauthenticated."})
	}
	return user, ok
}
