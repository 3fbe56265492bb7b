// seed crea el esquema de la base y carga datos de demostración:
// un usuario administrador, ubicaciones básicas, dos productos y una
// recepción ya validada con su stock inicial.
//
// Uso: go run ./cmd/seed
// Idempotente: los inserts usan ON CONFLICT DO NOTHING.
package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
	"golang.org/x/crypto/bcrypt"

	"github.com/stockmaster/warehouse-api/internal/domain/entity"
	"github.com/stockmaster/warehouse-api/internal/infrastructure/postgres"
	"github.com/stockmaster/warehouse-api/pkg/config"
	"github.com/stockmaster/warehouse-api/pkg/logger"
)

// schema sentencias DDL, una por Exec (pgx no acepta multi-statement con
// el protocolo extendido).
var schema = []string{
	`CREATE TABLE IF NOT EXISTS users (
		id            TEXT PRIMARY KEY,
		name          TEXT NOT NULL,
		email         TEXT NOT NULL UNIQUE,
		login_id      TEXT NOT NULL UNIQUE,
		password_hash TEXT NOT NULL,
		role          TEXT NOT NULL,
		created_at    TIMESTAMPTZ NOT NULL DEFAULT now(),
		updated_at    TIMESTAMPTZ NOT NULL DEFAULT now()
	)`,
	`CREATE TABLE IF NOT EXISTS locations (
		id         TEXT PRIMARY KEY,
		name       TEXT NOT NULL,
		short_code TEXT NOT NULL DEFAULT '',
		type       TEXT NOT NULL,
		address    TEXT NOT NULL DEFAULT '',
		parent_id  TEXT REFERENCES locations(id),
		created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
		updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
	)`,
	`CREATE TABLE IF NOT EXISTS products (
		id          TEXT PRIMARY KEY,
		sku         TEXT NOT NULL UNIQUE,
		name        TEXT NOT NULL,
		category    TEXT NOT NULL DEFAULT '',
		unit        TEXT NOT NULL DEFAULT 'Units',
		price       NUMERIC(14,2) NOT NULL DEFAULT 0,
		min_stock   NUMERIC(14,3) NOT NULL DEFAULT 0,
		total_stock NUMERIC(14,3) NOT NULL DEFAULT 0,
		created_at  TIMESTAMPTZ NOT NULL DEFAULT now(),
		updated_at  TIMESTAMPTZ NOT NULL DEFAULT now()
	)`,
	`CREATE TABLE IF NOT EXISTS stock (
		product_id  TEXT NOT NULL REFERENCES products(id),
		location_id TEXT NOT NULL REFERENCES locations(id),
		quantity    NUMERIC(14,3) NOT NULL DEFAULT 0 CHECK (quantity >= 0),
		updated_at  TIMESTAMPTZ NOT NULL DEFAULT now(),
		PRIMARY KEY (product_id, location_id)
	)`,
	`CREATE TABLE IF NOT EXISTS operations (
		id                      TEXT PRIMARY KEY,
		reference               TEXT NOT NULL UNIQUE,
		type                    TEXT NOT NULL,
		status                  TEXT NOT NULL,
		schedule_date           TIMESTAMPTZ NOT NULL,
		source_location_id      TEXT REFERENCES locations(id),
		destination_location_id TEXT REFERENCES locations(id),
		contact                 TEXT NOT NULL DEFAULT '',
		responsible             TEXT NOT NULL DEFAULT '',
		created_at              TIMESTAMPTZ NOT NULL DEFAULT now(),
		updated_at              TIMESTAMPTZ NOT NULL DEFAULT now()
	)`,
	`CREATE TABLE IF NOT EXISTS operation_items (
		operation_id TEXT NOT NULL REFERENCES operations(id) ON DELETE CASCADE,
		line_no      INT NOT NULL,
		product_id   TEXT NOT NULL REFERENCES products(id),
		quantity     NUMERIC(14,3) NOT NULL CHECK (quantity > 0),
		PRIMARY KEY (operation_id, line_no)
	)`,
	`CREATE TABLE IF NOT EXISTS operation_sequences (
		op_type TEXT PRIMARY KEY,
		value   INT NOT NULL
	)`,
	`CREATE INDEX IF NOT EXISTS idx_operations_type_status ON operations(type, status)`,
	`CREATE INDEX IF NOT EXISTS idx_operation_items_product ON operation_items(product_id)`,
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "cargar configuración: %v\n", err)
		os.Exit(1)
	}
	log := logger.New(logger.Config{Env: cfg.App.Env, Level: "info"})

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	for _, stmt := range schema {
		if _, err := pool.Exec(ctx, stmt); err != nil {
			log.Fatal().Err(err).Msg("crear esquema")
		}
	}
	log.Info().Msg("esquema creado")

	now := time.Now()

	// Usuario administrador (login admin123 / Password@123)
	hash, err := bcrypt.GenerateFromPassword([]byte("Password@123"), bcrypt.DefaultCost)
	if err != nil {
		log.Fatal().Err(err).Msg("hashear password")
	}
	if _, err := pool.Exec(ctx, `
		INSERT INTO users (id, name, email, login_id, password_hash, role, created_at, updated_at)
		VALUES ($1, 'Admin', 'admin@stockmaster.local', 'admin123', $2, $3, $4, $4)
		ON CONFLICT (login_id) DO NOTHING`,
		uuid.New().String(), string(hash), entity.RoleManager, now,
	); err != nil {
		log.Fatal().Err(err).Msg("seed usuario admin")
	}

	// Ubicaciones: bodega principal, proveedor y cliente
	warehouseID := seedLocation(ctx, pool, log, "Main Warehouse", "WH", entity.LocationTypeWarehouse)
	vendorID := seedLocation(ctx, pool, log, "Azure Interior", "AZI", entity.LocationTypeVendor)
	seedLocation(ctx, pool, log, "Local Client", "LC", entity.LocationTypeCustomer)

	// Productos de demostración
	deskID := seedProduct(ctx, pool, log, "DESK001", "Office Desk", "Furniture", "350.00")
	seedProduct(ctx, pool, log, "CHR001", "Ergo Chair", "Furniture", "120.00")

	// Historial: recepción WH/IN/0001 validada con 50 escritorios en bodega.
	// El contador de secuencias arranca desde esta referencia.
	qty := decimal.NewFromInt(50)
	opID := uuid.New().String()
	tag, err := pool.Exec(ctx, `
		INSERT INTO operations (id, reference, type, status, schedule_date, source_location_id, destination_location_id, contact, responsible, created_at, updated_at)
		VALUES ($1, 'WH/IN/0001', $2, $3, $4, $5, $6, 'Azure Interior', 'Admin', $4, $4)
		ON CONFLICT (reference) DO NOTHING`,
		opID, entity.OperationTypeReceipt, entity.StatusDone, now, vendorID, warehouseID,
	)
	if err != nil {
		log.Fatal().Err(err).Msg("seed operación inicial")
	}
	if tag.RowsAffected() > 0 {
		if _, err := pool.Exec(ctx, `
			INSERT INTO operation_items (operation_id, line_no, product_id, quantity)
			VALUES ($1, 1, $2, $3)`,
			opID, deskID, qty,
		); err != nil {
			log.Fatal().Err(err).Msg("seed línea de operación")
		}
		if _, err := pool.Exec(ctx, `
			INSERT INTO stock (product_id, location_id, quantity, updated_at)
			VALUES ($1, $2, $3, $4)
			ON CONFLICT (product_id, location_id) DO NOTHING`,
			deskID, warehouseID, qty, now,
		); err != nil {
			log.Fatal().Err(err).Msg("seed stock inicial")
		}
		if _, err := pool.Exec(ctx,
			`UPDATE products SET total_stock = $2 WHERE id = $1`,
			deskID, qty,
		); err != nil {
			log.Fatal().Err(err).Msg("seed total de producto")
		}
	}

	log.Info().Msg("datos de demostración cargados")
}

// seedLocation inserta la ubicación si no existe (por código) y devuelve su ID.
func seedLocation(ctx context.Context, pool *pgxpool.Pool, log *logger.Logger, name, code, locType string) string {
	id := uuid.New().String()
	if _, err := pool.Exec(ctx, `
		INSERT INTO locations (id, name, short_code, type, created_at, updated_at)
		SELECT $1, $2, $3, $4, now(), now()
		WHERE NOT EXISTS (SELECT 1 FROM locations WHERE short_code = $3)`,
		id, name, code, locType,
	); err != nil {
		log.Fatal().Err(err).Str("location", name).Msg("seed ubicación")
	}
	var existingID string
	if err := pool.QueryRow(ctx,
		`SELECT id FROM locations WHERE short_code = $1`, code,
	).Scan(&existingID); err != nil {
		log.Fatal().Err(err).Str("location", name).Msg("leer ubicación")
	}
	return existingID
}

// seedProduct inserta el producto si no existe (por SKU) y devuelve su ID.
func seedProduct(ctx context.Context, pool *pgxpool.Pool, log *logger.Logger, sku, name, category, price string) string {
	priceDec, err := decimal.NewFromString(price)
	if err != nil {
		log.Fatal().Err(err).Str("sku", sku).Msg("precio inválido")
	}
	if _, err := pool.Exec(ctx, `
		INSERT INTO products (id, sku, name, category, unit, price, min_stock, total_stock, created_at, updated_at)
		VALUES ($1, $2, $3, $4, 'Units', $5, 10, 0, now(), now())
		ON CONFLICT (sku) DO NOTHING`,
		uuid.New().String(), sku, name, category, priceDec,
	); err != nil {
		log.Fatal().Err(err).Str("sku", sku).Msg("seed producto")
	}
	var id string
	if err := pool.QueryRow(ctx, `SELECT id FROM products WHERE sku = $1`, sku).Scan(&id); err != nil {
		log.Fatal().Err(err).Str("sku", sku).Msg("leer producto")
	}
	return id
}
