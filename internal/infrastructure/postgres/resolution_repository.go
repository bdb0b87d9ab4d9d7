package postgres

import (
	"context"
	"fmt"

	"github.com/jhoicas/almacen-api/internal/domain/entity"
	"github.com/jhoicas/almacen-api/internal/domain/repository"
)

var _ repository.ResolutionRepository = (*ResolutionRepo)(nil)

// ResolutionRepo implementación del diario de resoluciones sobre PostgreSQL.
// Append-only: solo INSERT y SELECT.
type ResolutionRepo struct {
	q Querier
}

// NewResolutionRepository construye el adaptador. Pasar pool o tx (Querier).
func NewResolutionRepository(q Querier) *ResolutionRepo {
	return &ResolutionRepo{q: q}
}

// Create inserta una resolución con su snapshot.
func (r *ResolutionRepo) Create(res *entity.Resolution) error {
	query := `
		INSERT INTO discrepancy_resolutions (id, product_id, discrepancy_type, note, stock_at, unit_cost_at, resolved_by, resolved_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`
	_, err := r.q.Exec(context.Background(), query,
		res.ID, res.ProductID, res.DiscrepancyType, nullStr(res.Note),
		res.StockAt, res.UnitCostAt, nullStr(res.ResolvedBy), res.ResolvedAt,
	)
	if err != nil {
		return fmt.Errorf("create resolution: %w", err)
	}
	return nil
}

// ListAll lista todas las resoluciones. El detector recibe el diario completo
// y decide por snapshot exacto cuáles siguen suprimiendo.
func (r *ResolutionRepo) ListAll() ([]*entity.Resolution, error) {
	query := `
		SELECT id, product_id, discrepancy_type, COALESCE(note, ''), stock_at, unit_cost_at, resolved_by, resolved_at
		FROM discrepancy_resolutions
		ORDER BY resolved_at`
	rows, err := r.q.Query(context.Background(), query)
	if err != nil {
		return nil, fmt.Errorf("list resolutions: %w", err)
	}
	defer rows.Close()
	var list []*entity.Resolution
	for rows.Next() {
		var res entity.Resolution
		var resolvedBy *string
		if err := rows.Scan(&res.ID, &res.ProductID, &res.DiscrepancyType, &res.Note,
			&res.StockAt, &res.UnitCostAt, &resolvedBy, &res.ResolvedAt); err != nil {
			return nil, fmt.Errorf("scan resolution: %w", err)
		}
		res.ResolvedBy = strVal(resolvedBy)
		list = append(list, &res)
	}
	return list, rows.Err()
}
