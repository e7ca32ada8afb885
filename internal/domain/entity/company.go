package entity

import "time"

// Company representa una organización/tenant del sistema. Todo producto, bodega
// y documento pertenece a exactamente una empresa; el motor valida esa
// pertenencia antes de mutar cualquier cosa.
type Company struct {
	ID        string
	Name      string
	NIT       string // NIT colombiano (con o sin dígito de verificación)
	Address   string
	Phone     string
	Email     string
	Status    string // active, suspended, inactive
	CreatedAt time.Time
	UpdatedAt time.Time
}
