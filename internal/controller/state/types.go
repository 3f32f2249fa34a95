package state

import (
	"time"

	"github.com/Freeeeeet/barber_booking/internal/model"
)

// UserState представляет текущий шаг пользователя в диалоге записи
type UserState string

const (
	StateNone            UserState = ""                 // Нет активного диалога
	StateChoosingService UserState = "choosing_service" // Слот выбран, ждём выбор услуги
)

// DefaultDraftTTL время жизни незавершённого выбора слота
const DefaultDraftTTL = 15 * time.Minute

// Draft выбранный пользователем слот, для которого ещё не выбрана услуга
type Draft struct {
	ShopID    string
	Date      model.Date
	Time      model.Clock
	CreatedAt time.Time
}

// UserData состояние диалога одного пользователя
type UserData struct {
	State UserState
	Draft Draft
}
