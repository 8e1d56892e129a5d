package gateway

import (
	"context"
	"net/http"
	"net/url"

	"memopad/internal/domain"
)

// FetchProducts полный список товаров
func (c *Client) FetchProducts(ctx context.Context) ([]domain.Product, error) {
	var products []domain.Product
	if err := c.fetchJSON(ctx, "products", &products); err != nil {
		return nil, err
	}
	return products, nil
}

// FetchOrders история заказов
func (c *Client) FetchOrders(ctx context.Context) ([]domain.Order, error) {
	var orders []domain.Order
	if err := c.fetchJSON(ctx, "orders", &orders); err != nil {
		return nil, err
	}
	return orders, nil
}

// AddProduct сохраняет новый товар
func (c *Client) AddProduct(ctx context.Context, p domain.Product) error {
	return c.write(ctx, http.MethodPost, "add_product", nil, p)
}

// DeleteProduct удаляет товар по id
func (c *Client) DeleteProduct(ctx context.Context, id string) error {
	params := url.Values{}
	params.Set("id", id)
	return c.write(ctx, http.MethodDelete, "delete_product", params, nil)
}

// PlaceOrder сохраняет подтверждённый заказ
func (c *Client) PlaceOrder(ctx context.Context, o domain.Order) error {
	return c.write(ctx, http.MethodPost, "place_order", nil, o)
}
