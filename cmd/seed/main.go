// seed importa el inventario inicial desde un CSV limpio con columnas
// codigo, descripcion, costo_unitario, tipo, existencias.
//
// Crea tipos y productos que no existan y, por cada fila con existencias
// positivas, registra un movimiento IN de saldo inicial. El stock nunca se
// escribe directo: nace del libro igual que cualquier otro movimiento.
//
// Uso: go run ./cmd/seed [ruta/inventario.csv]
// Por defecto busca inventario.csv en el directorio actual.
package main

import (
	"context"
	"encoding/csv"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/almacen-api/internal/domain/entity"
	"github.com/jhoicas/almacen-api/internal/infrastructure/postgres"
	"github.com/jhoicas/almacen-api/pkg/config"
)

func main() {
	csvPath := "inventario.csv"
	if len(os.Args) > 1 {
		csvPath = os.Args[1]
	}
	f, err := os.Open(csvPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Abrir CSV: %v\n", err)
		os.Exit(1)
	}
	defer f.Close()

	records, err := csv.NewReader(f).ReadAll()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Leer CSV: %v\n", err)
		os.Exit(1)
	}
	if len(records) < 2 {
		fmt.Fprintln(os.Stderr, "CSV sin filas de datos")
		os.Exit(1)
	}
	cols := indexColumns(records[0])
	for _, required := range []string{"codigo", "descripcion"} {
		if _, ok := cols[required]; !ok {
			fmt.Fprintf(os.Stderr, "CSV sin columna %q\n", required)
			os.Exit(1)
		}
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Cargar configuración: %v\n", err)
		os.Exit(1)
	}
	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Conexión a PostgreSQL: %v\n", err)
		os.Exit(1)
	}
	defer pool.Close()
	if err := postgres.Migrate(ctx, pool); err != nil {
		fmt.Fprintf(os.Stderr, "Aplicar esquema: %v\n", err)
		os.Exit(1)
	}

	productRepo := postgres.NewProductRepository(pool)
	typeRepo := postgres.NewProductTypeRepository(pool)
	movRepo := postgres.NewMovementRepository(pool)

	var created, skipped, opened int
	typeIDs := map[string]string{} // nombre -> id

	for i, row := range records[1:] {
		code := strings.TrimSpace(cell(row, cols, "codigo"))
		description := strings.TrimSpace(cell(row, cols, "descripcion"))
		if code == "" || description == "" {
			fmt.Fprintf(os.Stderr, "fila %d: codigo o descripcion vacíos, se omite\n", i+2)
			continue
		}

		existing, err := productRepo.GetByIDCode(code)
		if err != nil {
			fmt.Fprintf(os.Stderr, "fila %d: %v\n", i+2, err)
			os.Exit(1)
		}
		if existing != nil {
			skipped++
			continue
		}

		var typeID *string
		if typeName := strings.TrimSpace(cell(row, cols, "tipo")); typeName != "" {
			id, err := ensureType(typeRepo, typeIDs, typeName)
			if err != nil {
				fmt.Fprintf(os.Stderr, "fila %d: tipo %q: %v\n", i+2, typeName, err)
				os.Exit(1)
			}
			typeID = &id
		}

		var unitCost *decimal.Decimal
		if raw := strings.TrimSpace(cell(row, cols, "costo_unitario")); raw != "" {
			d, err := decimal.NewFromString(raw)
			if err != nil {
				fmt.Fprintf(os.Stderr, "fila %d: costo_unitario %q inválido, se deja nulo\n", i+2, raw)
			} else {
				unitCost = &d
			}
		}

		now := time.Now().UTC()
		product := &entity.Product{
			ID:            uuid.New().String(),
			IDCode:        code,
			Description:   description,
			UnitCost:      unitCost,
			ProductTypeID: typeID,
			CreatedAt:     now,
			UpdatedAt:     now,
		}
		if err := productRepo.Create(product); err != nil {
			fmt.Fprintf(os.Stderr, "fila %d: crear producto: %v\n", i+2, err)
			os.Exit(1)
		}
		created++

		// Saldo inicial: un movimiento IN por fila con existencias positivas.
		if raw := strings.TrimSpace(cell(row, cols, "existencias")); raw != "" {
			qty, err := strconv.ParseInt(raw, 10, 64)
			if err != nil {
				fmt.Fprintf(os.Stderr, "fila %d: existencias %q inválidas, se omiten\n", i+2, raw)
				continue
			}
			if qty <= 0 {
				continue
			}
			movement := &entity.Movement{
				ID:        uuid.New().String(),
				ProductID: product.ID,
				Kind:      entity.MovementKindIN,
				Reason:    entity.ReasonOpeningBalance,
				Quantity:  qty,
				UnitCost:  unitCost,
				Note:      "Saldo inicial importado",
				MovedAt:   now,
				CreatedAt: now,
			}
			if err := movRepo.Create(movement); err != nil {
				fmt.Fprintf(os.Stderr, "fila %d: movimiento inicial: %v\n", i+2, err)
				os.Exit(1)
			}
			opened++
		}
	}

	fmt.Printf("Importación terminada: %d productos creados, %d existentes omitidos, %d saldos iniciales\n",
		created, skipped, opened)
}

// ensureType devuelve el id del tipo, creándolo si no existe.
func ensureType(repo *postgres.ProductTypeRepo, cache map[string]string, name string) (string, error) {
	if id, ok := cache[name]; ok {
		return id, nil
	}
	pt, err := repo.GetByName(name)
	if err != nil {
		return "", err
	}
	if pt == nil {
		pt = &entity.ProductType{ID: uuid.New().String(), Name: name}
		if err := repo.Create(pt); err != nil {
			return "", err
		}
	}
	cache[name] = pt.ID
	return pt.ID, nil
}

func indexColumns(header []string) map[string]int {
	cols := make(map[string]int, len(header))
	for i, h := range header {
		cols[strings.ToLower(strings.TrimSpace(h))] = i
	}
	return cols
}

func cell(row []string, cols map[string]int, name string) string {
	i, ok := cols[name]
	if !ok || i >= len(row) {
		return ""
	}
	return row[i]
}
