package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/almacen-api/internal/domain"
	"github.com/jhoicas/almacen-api/internal/domain/entity"
	"github.com/jhoicas/almacen-api/internal/domain/repository"
)

var _ repository.ProductRepository = (*ProductRepo)(nil)

const productColumns = "id, id_code, description, unit_cost, product_type_id, min_stock, max_stock, created_at, updated_at"

// ProductRepo implementación del puerto ProductRepository sobre PostgreSQL (usable con pool o tx).
type ProductRepo struct {
	q Querier
}

// NewProductRepository construye el adaptador de persistencia para productos. Pasar pool o tx (Querier).
func NewProductRepository(q Querier) *ProductRepo {
	return &ProductRepo{q: q}
}

// Create persiste un nuevo producto. id_code duplicado → ErrDuplicate.
func (r *ProductRepo) Create(product *entity.Product) error {
	query := `
		INSERT INTO products (id, id_code, description, unit_cost, product_type_id, min_stock, max_stock, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`
	_, err := r.q.Exec(context.Background(), query,
		product.ID, product.IDCode, product.Description, product.UnitCost,
		product.ProductTypeID, product.MinStock, product.MaxStock,
		product.CreatedAt, product.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("create product: %w", err)
	}
	return nil
}

// GetByID obtiene un producto por id. Devuelve nil si no existe.
func (r *ProductRepo) GetByID(id string) (*entity.Product, error) {
	return r.getWhere("id = $1", id, "")
}

// GetByIDCode obtiene un producto por su código único.
func (r *ProductRepo) GetByIDCode(idCode string) (*entity.Product, error) {
	return r.getWhere("id_code = $1", idCode, "")
}

// GetForUpdate obtiene el producto y bloquea su fila (SELECT FOR UPDATE) para
// serializar las operaciones compuestas sobre el mismo producto.
func (r *ProductRepo) GetForUpdate(id string) (*entity.Product, error) {
	return r.getWhere("id = $1", id, " FOR UPDATE")
}

func (r *ProductRepo) getWhere(cond, arg, suffix string) (*entity.Product, error) {
	query := "SELECT " + productColumns + " FROM products WHERE " + cond + suffix
	var p entity.Product
	err := r.q.QueryRow(context.Background(), query, arg).Scan(
		&p.ID, &p.IDCode, &p.Description, &p.UnitCost, &p.ProductTypeID,
		&p.MinStock, &p.MaxStock, &p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get product: %w", err)
	}
	return &p, nil
}

// Update reescribe los campos mutables del producto.
func (r *ProductRepo) Update(product *entity.Product) error {
	query := `
		UPDATE products
		SET description = $2, unit_cost = $3, product_type_id = $4,
		    min_stock = $5, max_stock = $6, updated_at = $7
		WHERE id = $1`
	_, err := r.q.Exec(context.Background(), query,
		product.ID, product.Description, product.UnitCost, product.ProductTypeID,
		product.MinStock, product.MaxStock, product.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update product: %w", err)
	}
	return nil
}

// List lista productos filtrando por q (código o descripción) y tipo,
// ordenados por id_code. limit <= 0 lista sin límite.
func (r *ProductRepo) List(q, typeID string, limit, offset int) ([]*entity.Product, error) {
	query := "SELECT " + productColumns + " FROM products"
	var args []any
	pos := 1
	where := ""
	if q != "" {
		where = fmt.Sprintf(" WHERE (id_code ILIKE $%d OR description ILIKE $%d)", pos, pos)
		args = append(args, "%"+q+"%")
		pos++
	}
	if typeID != "" {
		if where == "" {
			where = fmt.Sprintf(" WHERE product_type_id = $%d", pos)
		} else {
			where += fmt.Sprintf(" AND product_type_id = $%d", pos)
		}
		args = append(args, typeID)
		pos++
	}
	query += where + " ORDER BY id_code"
	if limit > 0 {
		query += fmt.Sprintf(" LIMIT $%d OFFSET $%d", pos, pos+1)
		args = append(args, limit, offset)
	}

	rows, err := r.q.Query(context.Background(), query, args...)
	if err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}
	defer rows.Close()
	var list []*entity.Product
	for rows.Next() {
		var p entity.Product
		if err := rows.Scan(&p.ID, &p.IDCode, &p.Description, &p.UnitCost, &p.ProductTypeID,
			&p.MinStock, &p.MaxStock, &p.CreatedAt, &p.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan product: %w", err)
		}
		list = append(list, &p)
	}
	return list, rows.Err()
}

var _ repository.ProductTypeRepository = (*ProductTypeRepo)(nil)

// ProductTypeRepo implementación de ProductTypeRepository sobre PostgreSQL.
type ProductTypeRepo struct {
	q Querier
}

// NewProductTypeRepository construye el adaptador. Pasar pool o tx (Querier).
func NewProductTypeRepository(q Querier) *ProductTypeRepo {
	return &ProductTypeRepo{q: q}
}

// Create persiste un tipo. Nombre duplicado → ErrDuplicate.
func (r *ProductTypeRepo) Create(pt *entity.ProductType) error {
	_, err := r.q.Exec(context.Background(),
		`INSERT INTO product_types (id, name) VALUES ($1, $2)`, pt.ID, pt.Name)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("create product type: %w", err)
	}
	return nil
}

// GetByName obtiene un tipo por nombre. Devuelve nil si no existe.
func (r *ProductTypeRepo) GetByName(name string) (*entity.ProductType, error) {
	var pt entity.ProductType
	err := r.q.QueryRow(context.Background(),
		`SELECT id, name FROM product_types WHERE name = $1`, name).Scan(&pt.ID, &pt.Name)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get product type: %w", err)
	}
	return &pt, nil
}

// List lista los tipos ordenados por nombre.
func (r *ProductTypeRepo) List() ([]*entity.ProductType, error) {
	rows, err := r.q.Query(context.Background(), `SELECT id, name FROM product_types ORDER BY name`)
	if err != nil {
		return nil, fmt.Errorf("list product types: %w", err)
	}
	defer rows.Close()
	var list []*entity.ProductType
	for rows.Next() {
		var pt entity.ProductType
		if err := rows.Scan(&pt.ID, &pt.Name); err != nil {
			return nil, fmt.Errorf("scan product type: %w", err)
		}
		list = append(list, &pt)
	}
	return list, rows.Err()
}
