package salesapi

import (
	"context"

	"github.com/vfg2006/sales-dashboard-api/internal/domain"
)

func (c *Client) GetSales(ctx context.Context) ([]domain.SaleRecord, error) {
	sales := make([]domain.SaleRecord, 0)
	if _, err := c.get(ctx, salesPath, nil, &sales); err != nil {
		return nil, err
	}
	return sales, nil
}

func (c *Client) GetProducts(ctx context.Context) ([]domain.Product, error) {
	return getAll[domain.Product](ctx, c, productsPath)
}

func (c *Client) GetCategories(ctx context.Context) ([]domain.Category, error) {
	categories := make([]domain.Category, 0)
	if _, err := c.get(ctx, categoriesPath, nil, &categories); err != nil {
		return nil, err
	}
	return categories, nil
}

func (c *Client) GetUsers(ctx context.Context) ([]domain.Seller, error) {
	users := make([]domain.Seller, 0)
	if _, err := c.get(ctx, usersPath, nil, &users); err != nil {
		return nil, err
	}
	return users, nil
}
