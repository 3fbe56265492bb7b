package repository

// SequenceRepository puerto del contador de referencias por tipo de
// operación. Next debe ser un incremento atómico en el storage: es lo que
// serializa la asignación de referencias bajo creaciones concurrentes.
type SequenceRepository interface {
	Next(opType string) (int, error)
}
