package controllers

import (
	"github.com/kataras/iris/v12"
	"github.com/kataras/iris/v12/mvc"

	"github.com/example/storefront/internal/server/response"
	"github.com/example/storefront/internal/service"
)

// ProductController 商品目录接口（MVC），挂载在 /products 下
type ProductController struct {
	Ctx      iris.Context
	Products *service.ProductService
}

// Register 在 party 上挂载商品控制器
func Register(party iris.Party, products *service.ProductService) {
	mvc.New(party).Register(products).Handle(new(ProductController))
}

// Get 处理 GET /products?q=&category=
func (c *ProductController) Get() {
	list, err := c.Products.List(c.Ctx.Request().Context(), service.ProductFilter{
		Query:    c.Ctx.URLParamTrim("q"),
		Category: c.Ctx.URLParamTrim("category"),
	})
	if err != nil {
		response.Error(c.Ctx, err)
		return
	}
	response.OK(c.Ctx, iris.StatusOK, list)
}

// GetCategories 处理 GET /products/categories
func (c *ProductController) GetCategories() {
	list, err := c.Products.Categories(c.Ctx.Request().Context())
	if err != nil {
		response.Error(c.Ctx, err)
		return
	}
	response.OK(c.Ctx, iris.StatusOK, list)
}

// GetBy 处理 GET /products/{id}
func (c *ProductController) GetBy(id int64) {
	p, err := c.Products.Get(c.Ctx.Request().Context(), id)
	if err != nil {
		response.Error(c.Ctx, err)
		return
	}
	response.OK(c.Ctx, iris.StatusOK, p)
}
