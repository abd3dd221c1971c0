package handlers

import (
	"io"
	"mime/multipart"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/kumawatvinit/ShopSpot/internal/application"
	"github.com/kumawatvinit/ShopSpot/pkg/response"
)

// maxPhotoBytes caps product photo uploads at 2MB.
const maxPhotoBytes = 2 << 20

type ProductHandler struct {
	Svc    *application.CatalogService
	Logger *logrus.Logger
}

func NewProductHandler(svc *application.CatalogService, logger *logrus.Logger) *ProductHandler {
	return &ProductHandler{Svc: svc, Logger: logger}
}

// productInput reads the multipart form fields shared by create and update.
func productInput(c *gin.Context) application.ProductInput {
	price, _ := strconv.ParseInt(c.PostForm("price"), 10, 64)
	quantity, _ := strconv.Atoi(c.PostForm("quantity"))
	shipping, _ := strconv.ParseBool(c.PostForm("shipping"))
	return application.ProductInput{
		Name:        c.PostForm("name"),
		Description: c.PostForm("description"),
		PriceCents:  price,
		CategoryID:  c.PostForm("category"),
		Quantity:    quantity,
		Shipping:    shipping,
	}
}

// photoFile opens an optional photo upload, enforcing the size cap. A nil
// reader means no photo was supplied.
func photoFile(c *gin.Context) (io.ReadCloser, *multipart.FileHeader, bool) {
	fh, err := c.FormFile("photo")
	if err != nil {
		return nil, nil, true
	}
	if fh.Size > maxPhotoBytes {
		response.Error[any](c, http.StatusBadRequest, "Image size should be less than 2MB", nil)
		return nil, nil, false
	}
	f, err := fh.Open()
	if err != nil {
		response.Error[any](c, http.StatusInternalServerError, "Error in reading image", err.Error())
		return nil, nil, false
	}
	return f, fh, true
}

// Create POST /create-product (admin, multipart)
func (h *ProductHandler) Create(c *gin.Context) {
	in := productInput(c)

	photo, fh, ok := photoFile(c)
	if !ok {
		return
	}

	var r io.Reader
	var filename, contentType string
	if photo != nil {
		defer func() { _ = photo.Close() }()
		r = photo
		filename = fh.Filename
		contentType = fh.Header.Get("Content-Type")
	}

	p, err := h.Svc.CreateProduct(c.Request.Context(), in, r, filename, contentType)
	if err != nil {
		fail(c, err, "Error in product creation")
		return
	}
	response.Success(c, http.StatusCreated, gin.H{"product": p}, "Product created successfully", nil)
}

// Update PUT /update-product/:pid (admin, multipart)
func (h *ProductHandler) Update(c *gin.Context) {
	in := productInput(c)

	photo, fh, ok := photoFile(c)
	if !ok {
		return
	}

	var r io.Reader
	var filename, contentType string
	if photo != nil {
		defer func() { _ = photo.Close() }()
		r = photo
		filename = fh.Filename
		contentType = fh.Header.Get("Content-Type")
	}

	p, err := h.Svc.UpdateProduct(c.Request.Context(), c.Param("pid"), in, r, filename, contentType)
	if err != nil {
		fail(c, err, "Error in product update")
		return
	}
	response.Success(c, http.StatusOK, gin.H{"product": p}, "Product updated successfully", nil)
}

// List GET /products
func (h *ProductHandler) List(c *gin.Context) {
	products, err := h.Svc.ListProducts(c.Request.Context())
	if err != nil {
		fail(c, err, "Error in getting products")
		return
	}
	response.Success(c, http.StatusOK, gin.H{"products": products}, "Products fetched successfully",
		gin.H{"total": len(products)})
}

// Get GET /single-product/:slug
func (h *ProductHandler) Get(c *gin.Context) {
	p, err := h.Svc.GetProductBySlug(c.Request.Context(), c.Param("slug"))
	if err != nil {
		fail(c, err, "Error in getting product")
		return
	}
	response.Success(c, http.StatusOK, gin.H{"product": p}, "Product fetched successfully", nil)
}

// Delete DELETE /delete-product/:pid (admin)
func (h *ProductHandler) Delete(c *gin.Context) {
	if err := h.Svc.DeleteProduct(c.Request.Context(), c.Param("pid")); err != nil {
		fail(c, err, "Error in deleting product")
		return
	}
	response.Success[any](c, http.StatusOK, nil, "Product deleted successfully", nil)
}
