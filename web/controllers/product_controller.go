package controllers

import (
	"strings"

	"github.com/kataras/iris/v12"
	"github.com/kataras/iris/v12/mvc"

	"github.com/vanshrane27/electrohub-showcase/internal/service"
)

// ProductController 前台商品接口（MVC），挂载在 /api/products
type ProductController struct {
	Ctx            iris.Context
	ProductService *service.ProductService
}

// BeforeActivation 带横线的路径需要手动绑定
func (c *ProductController) BeforeActivation(b mvc.BeforeActivation) {
	b.Handle("GET", "/best-sellers", "BestSellers")
	b.Handle("GET", "/new-arrivals", "NewArrivals")
}

// Get 处理 GET /api/products，支持 category/min_price/max_price/in_stock/sort
func (c *ProductController) Get() {
	opts, err := service.ParseListQuery(service.ListQuery{
		Category: c.Ctx.URLParam("category"),
		MinPrice: c.Ctx.URLParam("min_price"),
		MaxPrice: c.Ctx.URLParam("max_price"),
		InStock:  c.Ctx.URLParam("in_stock"),
		Sort:     c.Ctx.URLParam("sort"),
	})
	if err != nil {
		ReplyError(c.Ctx, err)
		return
	}
	list := c.ProductService.List(opts)
	if q := strings.ToLower(strings.TrimSpace(c.Ctx.URLParam("q"))); q != "" {
		filtered := list[:0:0]
		for _, p := range list {
			if strings.Contains(strings.ToLower(p.Name), q) {
				filtered = append(filtered, p)
			}
		}
		list = filtered
	}
	Reply(c.Ctx, iris.Map{"items": list, "total": len(list)})
}

// GetBy 处理 GET /api/products/{id}，附带同分类推荐
func (c *ProductController) GetBy(id string) {
	d, err := c.ProductService.Detail(id)
	if err != nil {
		ReplyError(c.Ctx, err)
		return
	}
	Reply(c.Ctx, d)
}

// BestSellers 畅销商品
func (c *ProductController) BestSellers() {
	Reply(c.Ctx, c.ProductService.BestSellers())
}

// NewArrivals 新品
func (c *ProductController) NewArrivals() {
	Reply(c.Ctx, c.ProductService.NewArrivals())
}
