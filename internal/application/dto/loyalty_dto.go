package dto

// LoyaltyActionRequest acción sobre el programa de fidelidad de un cliente.
type LoyaltyActionRequest struct {
	Action string `json:"action"` // "add" | "redeem"
}

// LoyaltyResponse estado de fidelidad tras la acción, con mensaje para el staff.
type LoyaltyResponse struct {
	CustomerID string `json:"customer_id"`
	Points     int    `json:"points"`
	Carimbos   int    `json:"carimbos"`
	Rewards    int    `json:"rewards"`
	Completed  bool   `json:"completed"`
	Message    string `json:"message"`
}
