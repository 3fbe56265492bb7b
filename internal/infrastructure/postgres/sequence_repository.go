package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/stockmaster/warehouse-api/internal/domain/operation"
	"github.com/stockmaster/warehouse-api/internal/domain/repository"
)

var _ repository.SequenceRepository = (*SequenceRepo)(nil)

// SequenceRepo contador atómico de referencias por tipo de operación.
// El upsert-incremento en una sola sentencia serializa la asignación: dos
// creaciones concurrentes del mismo tipo nunca reciben el mismo número.
type SequenceRepo struct {
	q Querier
}

// NewSequenceRepository construye el adaptador del contador. Pasar pool o tx (Querier).
func NewSequenceRepository(q Querier) *SequenceRepo {
	return &SequenceRepo{q: q}
}

// Next devuelve el siguiente número de secuencia para el tipo dado.
// La primera asignación de un tipo siembra el contador desde la referencia
// más reciente en operations, para continuar numeraciones previas a la
// tabla de secuencias en vez de reiniciar en 0001.
func (r *SequenceRepo) Next(opType string) (int, error) {
	query := `
		INSERT INTO operation_sequences (op_type, value)
		VALUES ($1, 1)
		ON CONFLICT (op_type)
		DO UPDATE SET value = operation_sequences.value + 1
		RETURNING value`
	var value int
	if err := r.q.QueryRow(context.Background(), query, opType).Scan(&value); err != nil {
		return 0, fmt.Errorf("next sequence: %w", err)
	}
	if value != 1 {
		return value, nil
	}
	return r.seedFromExisting(opType, value)
}

// seedFromExisting busca la última referencia emitida para el tipo y salta
// el contador recién creado por encima de ella.
func (r *SequenceRepo) seedFromExisting(opType string, value int) (int, error) {
	var lastRef string
	err := r.q.QueryRow(context.Background(),
		`SELECT reference FROM operations WHERE type = $1 ORDER BY created_at DESC LIMIT 1`,
		opType,
	).Scan(&lastRef)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return value, nil // tipo sin historial, arranca en 1
		}
		return 0, fmt.Errorf("seed sequence: %w", err)
	}
	seq, err := operation.SequenceFromReference(lastRef)
	if err != nil || seq < value {
		return value, nil
	}
	next := seq + 1
	if _, err := r.q.Exec(context.Background(),
		`UPDATE operation_sequences SET value = $2 WHERE op_type = $1`,
		opType, next,
	); err != nil {
		return 0, fmt.Errorf("seed sequence: %w", err)
	}
	return next, nil
}
