// Package operation contiene las reglas puras del motor de operaciones:
// formato de referencias y matriz de cambio del stock total por tipo de
// ubicación. Sin dependencias de persistencia.
package operation

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/stockmaster/warehouse-api/internal/domain/entity"
)

// Prefijos de referencia por tipo de operación.
const (
	PrefixReceipt    = "WH/IN"
	PrefixDelivery   = "WH/OUT"
	PrefixAdjustment = "WH/ADJ"
	PrefixDefault    = "WH/OPS"
)

// Prefix devuelve el prefijo de referencia para un tipo de operación.
func Prefix(opType string) string {
	switch opType {
	case entity.OperationTypeReceipt:
		return PrefixReceipt
	case entity.OperationTypeDelivery:
		return PrefixDelivery
	case entity.OperationTypeAdjustment:
		return PrefixAdjustment
	}
	return PrefixDefault
}

// FormatReference construye la referencia "{PREFIX}/{NNNN}" con el contador
// indicado. El sufijo se rellena a 4 dígitos; pasado 9999 el campo se
// ensancha en lugar de truncarse.
func FormatReference(opType string, seq int) string {
	return fmt.Sprintf("%s/%04d", Prefix(opType), seq)
}

// SequenceFromReference extrae el contador numérico de una referencia
// existente (último segmento tras "/"). Se usa para sembrar el contador
// por tipo a partir de datos previos a la tabla de secuencias.
func SequenceFromReference(reference string) (int, error) {
	parts := strings.Split(reference, "/")
	last := parts[len(parts)-1]
	n, err := strconv.Atoi(last)
	if err != nil || n < 0 {
		return 0, fmt.Errorf("referencia %q: sufijo no numérico", reference)
	}
	return n, nil
}
