package dto

// OperationKPIs conteos de operaciones activas de un tipo para el dashboard.
// Activa = estado distinto de DONE y CANCELLED. Late = activa con fecha
// programada en el pasado; Operations = activa con fecha hoy o futura.
type OperationKPIs struct {
	ToDo       int `json:"toDo"`
	Late       int `json:"late"`
	Operations int `json:"operations"`
	Waiting    int `json:"waiting"`
}

// InventoryKPIs tarjetas de inventario del dashboard.
type InventoryKPIs struct {
	TotalProducts int `json:"totalProducts"`
	LowStock      int `json:"lowStock"` // productos con totalStock < minStock
}

// ReceiptKPIs tarjetas de recepciones.
type ReceiptKPIs struct {
	ToReceive  int `json:"toReceive"`
	Late       int `json:"late"`
	Operations int `json:"operations"`
}

// DeliveryKPIs tarjetas de entregas; Waiting son entregas frenadas por stock.
type DeliveryKPIs struct {
	ToDeliver  int `json:"toDeliver"`
	Late       int `json:"late"`
	Waiting    int `json:"waiting"`
	Operations int `json:"operations"`
}

// DashboardResponse respuesta de GET /api/dashboard.
type DashboardResponse struct {
	Inventory  InventoryKPIs `json:"inventory"`
	Receipts   ReceiptKPIs   `json:"receipts"`
	Deliveries DeliveryKPIs  `json:"deliveries"`
}
