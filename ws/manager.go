package ws

import (
	"sync"

	"jobhub_backend/internal/logger"
)

// Manager ведет реестр подключенных клиентов и job-комнат.
// Членство в комнате - явное состояние: BroadcastToJob доставляет
// только тем, кто сделал join_job_room и прошел авторизацию.
type Manager struct {
	mu      sync.RWMutex
	clients map[*Client]struct{}
	rooms   map[string]map[*Client]struct{} // jobID -> участники

	register   chan *Client
	unregister chan *Client
}

func NewManager() *Manager {
	return &Manager{
		clients:    make(map[*Client]struct{}),
		rooms:      make(map[string]map[*Client]struct{}),
		register:   make(chan *Client),
		unregister: make(chan *Client),
	}
}

func (m *Manager) Run() {
	for {
		select {
		case client := <-m.register:
			m.mu.Lock()
			m.clients[client] = struct{}{}
			total := len(m.clients)
			m.mu.Unlock()
			logger.Info("ws client connected", "user_id", client.UserID, "total", total)

		case client := <-m.unregister:
			m.removeClient(client)
		}
	}
}

func (m *Manager) removeClient(client *Client) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.clients[client]; !ok {
		return
	}
	delete(m.clients, client)
	for jobID, members := range m.rooms {
		if _, in := members[client]; in {
			delete(members, client)
			if len(members) == 0 {
				delete(m.rooms, jobID)
			}
		}
	}
	client.closeSend()
	logger.Info("ws client disconnected", "user_id", client.UserID, "total", len(m.clients))
}

// JoinRoom добавляет клиента в комнату job. Повторный join - no-op.
func (m *Manager) JoinRoom(jobID string, client *Client) {
	m.mu.Lock()
	defer m.mu.Unlock()

	members, ok := m.rooms[jobID]
	if !ok {
		members = make(map[*Client]struct{})
		m.rooms[jobID] = members
	}
	members[client] = struct{}{}
}

func (m *Manager) LeaveRoom(jobID string, client *Client) {
	m.mu.Lock()
	defer m.mu.Unlock()

	members, ok := m.rooms[jobID]
	if !ok {
		return
	}
	delete(members, client)
	if len(members) == 0 {
		delete(m.rooms, jobID)
	}
}

// BroadcastToJob рассылает payload всем участникам комнаты job в конверте
// new_message. Медленный клиент с заполненным каналом отключается,
// остальные получают сообщение без задержки.
func (m *Manager) BroadcastToJob(jobID string, payload any) {
	event := newMessageEvent(payload)

	m.mu.RLock()
	var stale []*Client
	for client := range m.rooms[jobID] {
		if !client.trySend(event) {
			stale = append(stale, client)
		}
	}
	m.mu.RUnlock()

	for _, client := range stale {
		logger.Warn("ws client dropped, send buffer full", "user_id", client.UserID, "job_id", jobID)
		m.removeClient(client)
	}
}

func (m *Manager) RoomSize(jobID string) int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.rooms[jobID])
}

func (m *Manager) ClientCount() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.clients)
}
