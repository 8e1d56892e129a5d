package httpapi

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"memopad/internal/cart"
	"memopad/internal/catalog"
	"memopad/internal/domain"
	"memopad/internal/gateway"
	"memopad/internal/order"
)

// Describer генерация описания товара
type Describer interface {
	GenerateDescription(ctx context.Context, name string, price int64) string
}

type Server struct {
	engine  *gin.Engine
	catalog *catalog.Store
	cart    *cart.Cart
	orders  *order.Service
	assist  Describer
}

func NewServer(cat *catalog.Store, c *cart.Cart, orders *order.Service, assist Describer) *Server {
	r := gin.New()
	r.Use(gin.Logger(), gin.Recovery())
	s := &Server{engine: r, catalog: cat, cart: c, orders: orders, assist: assist}
	s.registerRoutes()
	return s
}

func (s *Server) Engine() *gin.Engine { return s.engine }

func (s *Server) registerRoutes() {
	// Swagger UI
	s.engine.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	v1 := s.engine.Group("/api/v1")
	{
		products := v1.Group("/products")
		products.GET("", s.listProducts)
		products.POST("", s.createProduct)
		products.DELETE(":id", s.deleteProduct)
		products.POST("/describe", s.describeProduct)

		cartGroup := v1.Group("/cart")
		cartGroup.GET("", s.getCart)
		cartGroup.POST("/items", s.addCartItem)
		cartGroup.PATCH("/items/:index", s.updateCartItem)
		cartGroup.DELETE("/items/:index", s.removeCartItem)

		orders := v1.Group("/orders")
		orders.GET("", s.listOrders)
		orders.POST("", s.checkout)

		v1.GET("/stats", s.stats)
		v1.POST("/refresh", s.refresh)
	}
}

// Product handlers

type createProductReq struct {
	ID          string                `json:"id"`
	Name        string                `json:"name"`
	Price       int64                 `json:"price"`
	Sizes       []domain.Size         `json:"sizes"`
	StockBySize map[domain.Size]int64 `json:"stockBySize"`
	Image       string                `json:"image"`
	Description string                `json:"description"`
}

// @Summary List products
// @Tags products
// @Produce json
// @Param q query string false "Name substring filter"
// @Success 200 {array} domain.Product
// @Router /products [get]
func (s *Server) listProducts(c *gin.Context) {
	products := s.catalog.List(catalog.Filter{NameSubstring: c.Query("q")})
	c.JSON(http.StatusOK, products)
}

// @Summary Create product
// @Tags products
// @Accept json
// @Produce json
// @Param input body createProductReq true "Product"
// @Success 201 {object} domain.Product
// @Failure 400 {object} map[string]string
// @Failure 409 {object} map[string]string
// @Failure 502 {object} map[string]string
// @Router /products [post]
func (s *Server) createProduct(c *gin.Context) {
	var req createProductReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid json"})
		return
	}
	if req.ID == "" {
		req.ID = uuid.NewString()
	}
	p := domain.Product{
		ID:          req.ID,
		Name:        req.Name,
		Price:       req.Price,
		Sizes:       req.Sizes,
		StockBySize: req.StockBySize,
		Image:       req.Image,
		Description: req.Description,
		CreatedAt:   time.Now().UnixMilli(),
	}
	if err := p.Validate(); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if err := s.catalog.Add(c, p); err != nil {
		c.JSON(mapErrorToStatus(err), gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusCreated, p)
}

// @Summary Delete product
// @Tags products
// @Param id path string true "Product ID"
// @Param confirm query bool true "Explicit confirmation"
// @Success 204
// @Failure 400 {object} map[string]string
// @Failure 502 {object} map[string]string
// @Router /products/{id} [delete]
func (s *Server) deleteProduct(c *gin.Context) {
	// удаление необратимо, требуем явного подтверждения
	if c.Query("confirm") != "true" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "confirmation required"})
		return
	}
	if err := s.catalog.Remove(c, c.Param("id")); err != nil {
		c.JSON(mapErrorToStatus(err), gin.H{"error": err.Error()})
		return
	}
	c.Status(http.StatusNoContent)
}

type describeReq struct {
	Name  string `json:"name"`
	Price int64  `json:"price"`
}

// @Summary Suggest product description
// @Tags products
// @Accept json
// @Produce json
// @Param input body describeReq true "Product name and price"
// @Success 200 {object} map[string]string
// @Failure 400 {object} map[string]string
// @Router /products/describe [post]
func (s *Server) describeProduct(c *gin.Context) {
	var req describeReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid json"})
		return
	}
	if req.Name == "" || req.Price <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "name and price are required"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"description": s.assist.GenerateDescription(c, req.Name, req.Price)})
}

// Cart handlers

type cartView struct {
	Items []domain.OrderItem `json:"items"`
	Total int64              `json:"total"`
}

// @Summary Current cart
// @Tags cart
// @Produce json
// @Success 200 {object} cartView
// @Router /cart [get]
func (s *Server) getCart(c *gin.Context) {
	items := s.cart.Items()
	c.JSON(http.StatusOK, cartView{Items: items, Total: order.ComputeTotal(items)})
}

type addCartItemReq struct {
	ProductID string `json:"productId"`
}

// @Summary Add product to cart
// @Tags cart
// @Accept json
// @Produce json
// @Param input body addCartItemReq true "Product reference"
// @Success 201 {object} domain.OrderItem
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Failure 409 {object} map[string]string
// @Router /cart/items [post]
func (s *Server) addCartItem(c *gin.Context) {
	var req addCartItemReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid json"})
		return
	}
	p, err := s.catalog.Get(req.ProductID)
	if err != nil {
		c.JSON(mapErrorToStatus(err), gin.H{"error": err.Error()})
		return
	}
	item, err := s.cart.Add(*p)
	if err != nil {
		c.JSON(mapErrorToStatus(err), gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusCreated, item)
}

type updateCartItemReq struct {
	Size     *domain.Size `json:"size"`
	Price    *int64       `json:"price"`
	Quantity *int64       `json:"quantity"`
}

// @Summary Update cart line
// @Tags cart
// @Accept json
// @Produce json
// @Param index path int true "Line index"
// @Param input body updateCartItemReq true "Fields to change"
// @Success 200 {object} cartView
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /cart/items/{index} [patch]
func (s *Server) updateCartItem(c *gin.Context) {
	index, err := strconv.Atoi(c.Param("index"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid index"})
		return
	}
	var req updateCartItemReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid json"})
		return
	}
	if req.Size != nil {
		if err := s.cart.SetSize(index, *req.Size); err != nil {
			c.JSON(mapErrorToStatus(err), gin.H{"error": err.Error()})
			return
		}
	}
	if req.Price != nil {
		if err := s.cart.SetPrice(index, *req.Price); err != nil {
			c.JSON(mapErrorToStatus(err), gin.H{"error": err.Error()})
			return
		}
	}
	if req.Quantity != nil {
		if err := s.cart.SetQuantity(index, *req.Quantity); err != nil {
			c.JSON(mapErrorToStatus(err), gin.H{"error": err.Error()})
			return
		}
	}
	items := s.cart.Items()
	c.JSON(http.StatusOK, cartView{Items: items, Total: order.ComputeTotal(items)})
}

// @Summary Remove cart line
// @Tags cart
// @Param index path int true "Line index"
// @Success 204
// @Failure 400 {object} map[string]string
// @Router /cart/items/{index} [delete]
func (s *Server) removeCartItem(c *gin.Context) {
	index, err := strconv.Atoi(c.Param("index"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid index"})
		return
	}
	// индекс вне границ — no-op, клиент мог прислать устаревший индекс
	s.cart.Remove(index)
	c.Status(http.StatusNoContent)
}

// Order handlers

type checkoutReq struct {
	CustomerName    string `json:"customerName"`
	CustomerPhone   string `json:"customerPhone"`
	CustomerAddress string `json:"customerAddress"`
}

// @Summary Confirm order from current cart
// @Tags orders
// @Accept json
// @Produce json
// @Param input body checkoutReq true "Customer info"
// @Success 201 {object} domain.Order
// @Failure 400 {object} map[string]string
// @Failure 502 {object} map[string]string
// @Router /orders [post]
func (s *Server) checkout(c *gin.Context) {
	var req checkoutReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid json"})
		return
	}
	o, err := s.orders.Checkout(c, order.CustomerInfo{
		Name:    req.CustomerName,
		Phone:   req.CustomerPhone,
		Address: req.CustomerAddress,
	})
	if err != nil {
		c.JSON(mapErrorToStatus(err), gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusCreated, o)
}

// @Summary Order history
// @Tags orders
// @Produce json
// @Success 200 {array} domain.Order
// @Router /orders [get]
func (s *Server) listOrders(c *gin.Context) {
	c.JSON(http.StatusOK, s.orders.History())
}

// @Summary Dashboard counters
// @Tags stats
// @Produce json
// @Success 200 {object} domain.Stats
// @Router /stats [get]
func (s *Server) stats(c *gin.Context) {
	products, itemsInStock := s.catalog.Counts()
	c.JSON(http.StatusOK, domain.Stats{
		TotalProducts:     products,
		TotalItemsInStock: itemsInStock,
		TotalOrders:       int64(len(s.orders.History())),
	})
}

// @Summary Re-fetch catalog and order history
// @Tags stats
// @Produce json
// @Success 204
// @Failure 502 {object} map[string]string
// @Router /refresh [post]
func (s *Server) refresh(c *gin.Context) {
	s.orders.RefreshHistory(c)
	if err := s.catalog.Refresh(c); err != nil {
		c.JSON(mapErrorToStatus(err), gin.H{"error": err.Error()})
		return
	}
	c.Status(http.StatusNoContent)
}

func mapErrorToStatus(err error) int {
	switch {
	case errors.Is(err, catalog.ErrNotFound), errors.Is(err, cart.ErrNoSuchLine):
		return http.StatusNotFound
	case errors.Is(err, catalog.ErrDuplicateID), errors.Is(err, cart.ErrOutOfStock):
		return http.StatusConflict
	case errors.Is(err, cart.ErrInvalidValue),
		errors.Is(err, order.ErrMissingField),
		errors.Is(err, order.ErrEmptyCart):
		return http.StatusBadRequest
	case errors.Is(err, gateway.ErrFetchFailed),
		errors.Is(err, gateway.ErrParseFailed),
		errors.Is(err, gateway.ErrRejectedByStore):
		return http.StatusBadGateway
	}
	return http.StatusInternalServerError
}
