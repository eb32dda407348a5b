package dto

// ErrorResponse respuesta de error uniforme de la API.
// Details lleva el detalle estructurado del error de dominio (producto,
// disponible vs solicitado, faltante) cuando existe.
type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Details any    `json:"details,omitempty"`
}

// Formato de fechas y timestamps de la API (ISO-8601, hora local).
const (
	DateFormat     = "2006-01-02"
	DateTimeFormat = "2006-01-02T15:04:05"
)
