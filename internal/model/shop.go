package model

import "time"

// Shop профиль барбершопа
type Shop struct {
	ID          string    `json:"shop_id"`
	OwnerUserID string    `json:"owner_user_id"` // пользователь с ролью barber
	Name        string    `json:"name"`
	Location    string    `json:"location"`
	Phone       string    `json:"phone"`
	About       string    `json:"about"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// UnknownShopName отображаемое имя для бронирований несуществующего барбершопа
const UnknownShopName = "Unknown Shop"
