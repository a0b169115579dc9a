package service

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/freeeve/kriegspiel/internal/model"
)

type mockGameRepo struct {
	mu    sync.Mutex
	games map[string]*model.Game
}

func newMockGameRepo() *mockGameRepo {
	return &mockGameRepo{games: make(map[string]*model.Game)}
}

func (m *mockGameRepo) Create(_ context.Context, name, scenario string, currentPlayer int) (*model.Game, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	g := &model.Game{
		ID:            fmt.Sprintf("game-%d", len(m.games)+1),
		Name:          name,
		Scenario:      scenario,
		Status:        model.StatusActive,
		CurrentPlayer: currentPlayer,
		CreatedAt:     time.Now(),
	}
	m.games[g.ID] = g
	cp := *g
	return &cp, nil
}

func (m *mockGameRepo) FindByID(_ context.Context, id string) (*model.Game, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	g, ok := m.games[id]
	if !ok {
		return nil, nil
	}
	cp := *g
	return &cp, nil
}

func (m *mockGameRepo) List(_ context.Context, status string) ([]model.Game, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var result []model.Game
	for _, g := range m.games {
		if status == "" || g.Status == status {
			result = append(result, *g)
		}
	}
	return result, nil
}

func (m *mockGameRepo) UpdateProgress(_ context.Context, id string, currentPlayer, turn int) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if g, ok := m.games[id]; ok {
		g.CurrentPlayer = currentPlayer
		g.Turn = turn
	}
	return nil
}

func (m *mockGameRepo) SetFinished(_ context.Context, id string, winner, loser int) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if g, ok := m.games[id]; ok {
		now := time.Now()
		g.Status = model.StatusFinished
		g.Winner = &winner
		g.Loser = &loser
		g.FinishedAt = &now
	}
	return nil
}

type mockActionRepo struct {
	mu      sync.Mutex
	actions map[string][]model.Action
}

func newMockActionRepo() *mockActionRepo {
	return &mockActionRepo{actions: make(map[string][]model.Action)}
}

func (m *mockActionRepo) Append(_ context.Context, a *model.Action) (*model.Action, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	cp := *a
	cp.Seq = len(m.actions[a.GameID]) + 1
	cp.ID = fmt.Sprintf("%s-action-%d", a.GameID, cp.Seq)
	cp.CreatedAt = time.Now()
	m.actions[a.GameID] = append(m.actions[a.GameID], cp)
	return &cp, nil
}

func (m *mockActionRepo) ListByGame(_ context.Context, gameID string) ([]model.Action, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]model.Action(nil), m.actions[gameID]...), nil
}

func (m *mockActionRepo) Latest(_ context.Context, gameID string) (*model.Action, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	list := m.actions[gameID]
	if len(list) == 0 {
		return nil, nil
	}
	cp := list[len(list)-1]
	return &cp, nil
}

type mockBoardCache struct {
	mu        sync.Mutex
	snapshots map[string]json.RawMessage
}

func newMockBoardCache() *mockBoardCache {
	return &mockBoardCache{snapshots: make(map[string]json.RawMessage)}
}

func (m *mockBoardCache) SetSnapshot(_ context.Context, gameID string, snapshot json.RawMessage) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.snapshots[gameID] = snapshot
	return nil
}

func (m *mockBoardCache) GetSnapshot(_ context.Context, gameID string) (json.RawMessage, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.snapshots[gameID], nil
}

func (m *mockBoardCache) DeleteGame(_ context.Context, gameID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.snapshots, gameID)
	return nil
}

type recordingBroadcaster struct {
	mu     sync.Mutex
	events []string
}

func (b *recordingBroadcaster) BroadcastGameEvent(_ string, eventType string, _ any) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.events = append(b.events, eventType)
}
