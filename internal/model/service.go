package model

import "time"

// Service услуга из каталога барбершопа
type Service struct {
	ID              string    `json:"service_id"`
	ShopID          string    `json:"shop_id"`
	Name            string    `json:"name"`
	Description     string    `json:"description"`
	Price           int       `json:"price"`            // в копейках/центах
	DurationMinutes int       `json:"duration_minutes"` // только для отображения, слот всегда SlotMinutes
	CreatedAt       time.Time `json:"created_at"`
}

// DefaultServiceDuration длительность по умолчанию, если клиент её не передал
const DefaultServiceDuration = SlotMinutes
