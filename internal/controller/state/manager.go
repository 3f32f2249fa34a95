package state

import (
	"sync"
	"time"
)

// Manager управляет состояниями пользователей бота
type Manager struct {
	mu     sync.RWMutex
	states map[int64]*UserData // telegramID -> UserData
	ttl    time.Duration
	now    func() time.Time
}

// NewManager создаёт новый менеджер состояний.
// ttl <= 0 означает DefaultDraftTTL.
func NewManager(ttl time.Duration) *Manager {
	if ttl <= 0 {
		ttl = DefaultDraftTTL
	}
	return &Manager{
		states: make(map[int64]*UserData),
		ttl:    ttl,
		now:    time.Now,
	}
}

// GetState получает текущее состояние пользователя
func (sm *Manager) GetState(telegramID int64) UserState {
	if _, ok := sm.GetDraft(telegramID); ok {
		return StateChoosingService
	}
	return StateNone
}

// SetDraft запоминает выбранный слот и переводит пользователя к выбору услуги
func (sm *Manager) SetDraft(telegramID int64, draft Draft) {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	draft.CreatedAt = sm.now()
	sm.states[telegramID] = &UserData{
		State: StateChoosingService,
		Draft: draft,
	}
}

// GetDraft возвращает незавершённый выбор слота, если он ещё не устарел
func (sm *Manager) GetDraft(telegramID int64) (Draft, bool) {
	sm.mu.RLock()
	defer sm.mu.RUnlock()

	userData, exists := sm.states[telegramID]
	if !exists || userData.State != StateChoosingService {
		return Draft{}, false
	}
	if sm.now().Sub(userData.Draft.CreatedAt) > sm.ttl {
		return Draft{}, false
	}
	return userData.Draft, true
}

// ClearState очищает состояние и данные пользователя
func (sm *Manager) ClearState(telegramID int64) {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	delete(sm.states, telegramID)
}

// Purge удаляет устаревшие черновики, возвращает число удалённых
func (sm *Manager) Purge() int {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	removed := 0
	now := sm.now()
	for id, userData := range sm.states {
		if now.Sub(userData.Draft.CreatedAt) > sm.ttl {
			delete(sm.states, id)
			removed++
		}
	}
	return removed
}
