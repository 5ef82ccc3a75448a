// Package repository contém as implementações de leitura das coleções de vendas no PostgreSQL
package repository

import (
	"context"
	"database/sql"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/pkg/errors"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"

	"github.com/vfg2006/sales-dashboard-api/infrastructure/database/postgres"
	"github.com/vfg2006/sales-dashboard-api/internal/domain"
)

const (
	salesTable      = "sale s"
	saleLinesTable  = "ligne_vente lv"
	productsTable   = "product p"
	categoriesTable = "category c"
	usersTable      = "users u"
)

// SnapshotRepository lê do banco do backend de vendas as coleções usadas pelos dashboards.
// Nunca escreve.
type SnapshotRepository struct {
	conn postgres.Queryer
}

func NewSnapshotRepository(conn postgres.Queryer) *SnapshotRepository {
	return &SnapshotRepository{
		conn: conn,
	}
}

func salesQuery() squirrel.SelectBuilder {
	return squirrel.
		Select(
			"s.id",
			"s.sale_date",
			"COALESCE(s.total_amount, 0)",
			"s.status",
			"s.user_id",
			"COALESCE(u.username, '')",
		).
		From(salesTable).
		LeftJoin("users u ON u.id = s.user_id").
		OrderBy("s.id ASC").
		PlaceholderFormat(squirrel.Dollar)
}

func saleLinesQuery() squirrel.SelectBuilder {
	return squirrel.
		Select(
			"lv.sale_id",
			"lv.product_id",
			"COALESCE(p.title, '')",
			"COALESCE(lv.quantity, 0)",
			"COALESCE(lv.unit_price, 0)",
			"COALESCE(lv.line_total, 0)",
		).
		From(saleLinesTable).
		Join("sale s ON s.id = lv.sale_id").
		LeftJoin("product p ON p.id = lv.product_id").
		OrderBy("lv.sale_id ASC", "lv.id ASC").
		PlaceholderFormat(squirrel.Dollar)
}

func productsQuery() squirrel.SelectBuilder {
	return squirrel.
		Select("p.id", "COALESCE(p.title, '')", "p.price", "COALESCE(p.stock, 0)", "p.category_id").
		From(productsTable).
		OrderBy("p.id ASC").
		PlaceholderFormat(squirrel.Dollar)
}

func categoriesQuery() squirrel.SelectBuilder {
	return squirrel.
		Select("c.id", "c.name").
		From(categoriesTable).
		OrderBy("c.id ASC").
		PlaceholderFormat(squirrel.Dollar)
}

func usersQuery() squirrel.SelectBuilder {
	return squirrel.
		Select("u.id", "u.username", "u.email", "u.role", "u.active").
		From(usersTable).
		OrderBy("u.id ASC").
		PlaceholderFormat(squirrel.Dollar)
}

func (r *SnapshotRepository) GetSales(ctx context.Context) ([]domain.SaleRecord, error) {
	query, args, err := salesQuery().ToSql()
	if err != nil {
		return nil, errors.Wrap(err, "erro ao construir a query de vendas")
	}

	rows, err := r.conn.Query(ctx, query, args...)
	if err != nil {
		return nil, errors.Wrap(err, "erro ao executar a query de vendas")
	}
	defer rows.Close()

	sales := make([]domain.SaleRecord, 0)
	index := make(map[int64]int)

	for rows.Next() {
		var (
			sale     domain.SaleRecord
			saleDate time.Time
			status   sql.NullString
			sellerID sql.NullInt64
		)

		if err := rows.Scan(&sale.ID, &saleDate, &sale.TotalAmount, &status, &sellerID, &sale.SellerUsername); err != nil {
			return nil, errors.Wrap(err, "erro ao escanear venda")
		}

		sale.SaleDate = saleDate.Format(time.DateOnly)
		sale.Status = domain.SaleStatus(status.String)
		sale.SellerID = sellerID.Int64
		sale.Lines = make([]domain.SaleLine, 0)

		index[sale.ID] = len(sales)
		sales = append(sales, sale)
	}

	if err := rows.Err(); err != nil {
		return nil, errors.Wrap(err, "erro durante a iteração de vendas")
	}

	if len(sales) == 0 {
		return sales, nil
	}

	if err := r.attachLines(ctx, sales, index); err != nil {
		return nil, err
	}

	return sales, nil
}

func (r *SnapshotRepository) attachLines(ctx context.Context, sales []domain.SaleRecord, index map[int64]int) error {
	query, args, err := saleLinesQuery().ToSql()
	if err != nil {
		return errors.Wrap(err, "erro ao construir a query de itens")
	}

	rows, err := r.conn.Query(ctx, query, args...)
	if err != nil {
		return errors.Wrap(err, "erro ao executar a query de itens")
	}
	defer rows.Close()

	skipped := 0
	for rows.Next() {
		var (
			saleID int64
			line   domain.SaleLine
		)

		if err := rows.Scan(&saleID, &line.ProductID, &line.ProductTitle, &line.Quantity, &line.UnitPrice, &line.LineTotal); err != nil {
			return errors.Wrap(err, "erro ao escanear item de venda")
		}

		if !attachLine(sales, index, saleID, line) {
			skipped++
		}
	}

	if err := rows.Err(); err != nil {
		return errors.Wrap(err, "erro durante a iteração de itens")
	}

	if skipped > 0 {
		logrus.WithField("skipped_lines", skipped).Debug("Itens de vendas criadas após a leitura das vendas foram ignorados")
	}

	return nil
}

// attachLine anexa o item à venda carregada. Itens de vendas inseridas entre as duas leituras ficam de fora.
func attachLine(sales []domain.SaleRecord, index map[int64]int, saleID int64, line domain.SaleLine) bool {
	pos, ok := index[saleID]
	if !ok {
		return false
	}
	sales[pos].Lines = append(sales[pos].Lines, line)
	return true
}

func (r *SnapshotRepository) GetProducts(ctx context.Context) ([]domain.Product, error) {
	query, args, err := productsQuery().ToSql()
	if err != nil {
		return nil, errors.Wrap(err, "erro ao construir a query de produtos")
	}

	rows, err := r.conn.Query(ctx, query, args...)
	if err != nil {
		return nil, errors.Wrap(err, "erro ao executar a query de produtos")
	}
	defer rows.Close()

	products := make([]domain.Product, 0)
	for rows.Next() {
		var (
			product    domain.Product
			price      decimal.NullDecimal
			categoryID sql.NullInt64
		)

		if err := rows.Scan(&product.ID, &product.Title, &price, &product.Stock, &categoryID); err != nil {
			return nil, errors.Wrap(err, "erro ao escanear produto")
		}

		product.Price = price.Decimal
		product.CategoryID = categoryID.Int64
		products = append(products, product)
	}

	if err := rows.Err(); err != nil {
		return nil, errors.Wrap(err, "erro durante a iteração de produtos")
	}

	return products, nil
}

func (r *SnapshotRepository) GetCategories(ctx context.Context) ([]domain.Category, error) {
	query, args, err := categoriesQuery().ToSql()
	if err != nil {
		return nil, errors.Wrap(err, "erro ao construir a query de categorias")
	}

	rows, err := r.conn.Query(ctx, query, args...)
	if err != nil {
		return nil, errors.Wrap(err, "erro ao executar a query de categorias")
	}
	defer rows.Close()

	categories := make([]domain.Category, 0)
	for rows.Next() {
		var category domain.Category
		if err := rows.Scan(&category.ID, &category.Name); err != nil {
			return nil, errors.Wrap(err, "erro ao escanear categoria")
		}
		categories = append(categories, category)
	}

	if err := rows.Err(); err != nil {
		return nil, errors.Wrap(err, "erro durante a iteração de categorias")
	}

	return categories, nil
}

func (r *SnapshotRepository) GetUsers(ctx context.Context) ([]domain.Seller, error) {
	query, args, err := usersQuery().ToSql()
	if err != nil {
		return nil, errors.Wrap(err, "erro ao construir a query de usuários")
	}

	rows, err := r.conn.Query(ctx, query, args...)
	if err != nil {
		return nil, errors.Wrap(err, "erro ao executar a query de usuários")
	}
	defer rows.Close()

	users := make([]domain.Seller, 0)
	for rows.Next() {
		var (
			user  domain.Seller
			email sql.NullString
			role  string
		)

		if err := rows.Scan(&user.ID, &user.Username, &email, &role, &user.Active); err != nil {
			return nil, errors.Wrap(err, "erro ao escanear usuário")
		}

		user.Email = email.String
		user.Role = domain.UserRole(role)
		users = append(users, user)
	}

	if err := rows.Err(); err != nil {
		return nil, errors.Wrap(err, "erro durante a iteração de usuários")
	}

	return users, nil
}
