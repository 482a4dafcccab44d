package controllers

import (
	"net/http"

	"github.com/shringarlabs/shringar/app/repositories"
	"github.com/shringarlabs/shringar/app/services"
	"github.com/shringarlabs/shringar/pkg/bind"
	"github.com/shringarlabs/shringar/pkg/response"
	"github.com/shringarlabs/shringar/pkg/router"
)

type ProductController struct {
	service *services.ProductService
}

func NewProductController() *ProductController {
	return &ProductController{service: services.NewProductService()}
}

func (c *ProductController) Index(w http.ResponseWriter, r *http.Request) {
	page, limit := bind.Page(r)
	query := repositories.ProductQuery{
		Category: bind.Query(r, "category", ""),
		Tag:      bind.Query(r, "tag", ""),
		MinPrice: int64(bind.QueryInt(r, "minPrice", 0)),
		MaxPrice: int64(bind.QueryInt(r, "maxPrice", 0)),
		Page:     page,
		Limit:    limit,
	}
	switch bind.Query(r, "inStock", "") {
	case "true":
		yes := true
		query.InStock = &yes
	case "false":
		no := false
		query.InStock = &no
	}

	products, pagination, err := c.service.List(query)
	if err != nil {
		response.Error(w, err)
		return
	}
	response.Paginated(w, products, pagination)
}

func (c *ProductController) Featured(w http.ResponseWriter, r *http.Request) {
	products, err := c.service.Featured()
	if err != nil {
		response.Error(w, err)
		return
	}
	response.Success(w, products)
}

func (c *ProductController) Show(w http.ResponseWriter, r *http.Request) {
	product, err := c.service.Get(router.Param(r, "slug"))
	if err != nil {
		response.Error(w, err)
		return
	}
	response.Success(w, product)
}

func (c *ProductController) Store(w http.ResponseWriter, r *http.Request) {
	var input services.ProductInput
	if err := bind.JSON(r, &input); err != nil {
		response.Error(w, err)
		return
	}
	product, err := c.service.Create(input)
	if err != nil {
		response.Error(w, err)
		return
	}
	response.Created(w, product)
}

func (c *ProductController) Update(w http.ResponseWriter, r *http.Request) {
	var input services.ProductInput
	if err := bind.JSON(r, &input); err != nil {
		response.Error(w, err)
		return
	}
	product, err := c.service.Update(router.Param(r, "slug"), input)
	if err != nil {
		response.Error(w, err)
		return
	}
	response.Success(w, product)
}

func (c *ProductController) SetStock(w http.ResponseWriter, r *http.Request) {
	var input struct {
		InStock *bool `json:"inStock"`
	}
	if err := bind.JSON(r, &input); err != nil {
		response.Error(w, err)
		return
	}
	if input.InStock == nil {
		response.BadRequest(w, "inStock is required")
		return
	}
	product, err := c.service.SetStock(router.Param(r, "slug"), *input.InStock)
	if err != nil {
		response.Error(w, err)
		return
	}
	response.Success(w, product)
}

func (c *ProductController) Destroy(w http.ResponseWriter, r *http.Request) {
	if err := c.service.Delete(router.Param(r, "slug")); err != nil {
		response.Error(w, err)
		return
	}
	response.NoContent(w)
}

// UploadImage accepts a multipart "image" file and stores it on the
// configured disk.
func (c *ProductController) UploadImage(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(10 << 20); err != nil {
		response.BadRequest(w, "malformed multipart body")
		return
	}
	file, header, err := r.FormFile("image")
	if err != nil {
		response.BadRequest(w, "image file is required")
		return
	}
	defer file.Close()

	product, err := c.service.UploadImage(router.Param(r, "slug"), header.Filename, file)
	if err != nil {
		response.Error(w, err)
		return
	}
	response.Success(w, product)
}
