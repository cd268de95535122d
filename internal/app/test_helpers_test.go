package app

import (
	"context"
	"errors"
	"sort"

	"github.com/example/sketch/internal/core/canvas"
	"github.com/example/sketch/internal/core/fuzzy"
	"github.com/example/sketch/internal/core/stream"
	"github.com/example/sketch/internal/models"
	"github.com/example/sketch/internal/ports/secondary"
)

// Ensure mocks implement the interfaces
var (
	_ secondary.SpaceRepository = (*mockSpaceRepository)(nil)
	_ secondary.ModelTransport  = (*mockTransport)(nil)
	_ secondary.ActivityLog     = (*mockActivityLog)(nil)
)

// mockSpaceRepository implements secondary.SpaceRepository for testing.
type mockSpaceRepository struct {
	spaces    map[string]*models.DesignSpace
	createErr error
	getErr    error
	updateErr error
	deleteErr error
	listErr   error
}

func newMockSpaceRepository() *mockSpaceRepository {
	return &mockSpaceRepository{spaces: make(map[string]*models.DesignSpace)}
}

func (m *mockSpaceRepository) Create(ctx context.Context, space *models.DesignSpace) error {
	if m.createErr != nil {
		return m.createErr
	}
	m.spaces[space.ID] = space.Clone()
	return nil
}

func (m *mockSpaceRepository) GetByID(ctx context.Context, id string) (*models.DesignSpace, error) {
	if m.getErr != nil {
		return nil, m.getErr
	}
	if space, ok := m.spaces[id]; ok {
		return space.Clone(), nil
	}
	return nil, errors.New("space not found")
}

func (m *mockSpaceRepository) Update(ctx context.Context, space *models.DesignSpace) error {
	if m.updateErr != nil {
		return m.updateErr
	}
	if _, ok := m.spaces[space.ID]; !ok {
		return errors.New("space not found")
	}
	m.spaces[space.ID] = space.Clone()
	return nil
}

func (m *mockSpaceRepository) Delete(ctx context.Context, id string) error {
	if m.deleteErr != nil {
		return m.deleteErr
	}
	if _, ok := m.spaces[id]; !ok {
		return errors.New("space not found")
	}
	delete(m.spaces, id)
	return nil
}

func (m *mockSpaceRepository) List(ctx context.Context) ([]*models.DesignSpace, error) {
	if m.listErr != nil {
		return nil, m.listErr
	}
	out := make([]*models.DesignSpace, 0, len(m.spaces))
	for _, space := range m.spaces {
		out = append(out, space.Clone())
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.Before(out[j].CreatedAt) })
	return out, nil
}

func (m *mockSpaceRepository) ReplaceAll(ctx context.Context, spaces []*models.DesignSpace) error {
	if m.updateErr != nil {
		return m.updateErr
	}
	m.spaces = make(map[string]*models.DesignSpace, len(spaces))
	for _, space := range spaces {
		m.spaces[space.ID] = space.Clone()
	}
	return nil
}

// mockTransport implements secondary.ModelTransport for testing. Stream
// replays the scripted events; Complete returns the scripted text.
type mockTransport struct {
	events      []stream.Event
	streamErr   error
	completeTxt string
	completeErr error
	lastRequest secondary.ModelRequest
}

func (m *mockTransport) Stream(ctx context.Context, req secondary.ModelRequest) (<-chan stream.Event, error) {
	m.lastRequest = req
	if m.streamErr != nil {
		return nil, m.streamErr
	}
	ch := make(chan stream.Event, len(m.events))
	for _, ev := range m.events {
		ch <- ev
	}
	close(ch)
	return ch, nil
}

func (m *mockTransport) Complete(ctx context.Context, req secondary.ModelRequest) (string, stream.Usage, error) {
	m.lastRequest = req
	if m.completeErr != nil {
		return "", stream.Usage{}, m.completeErr
	}
	return m.completeTxt, stream.Usage{InputTokens: 100, OutputTokens: 50}, nil
}

// mockActivityLog implements secondary.ActivityLog for testing.
type mockActivityLog struct {
	entries   []secondary.ActivityEntry
	recordErr error
}

func (m *mockActivityLog) Record(ctx context.Context, entry secondary.ActivityEntry) error {
	if m.recordErr != nil {
		return m.recordErr
	}
	m.entries = append(m.entries, entry)
	return nil
}

func (m *mockActivityLog) Recent(ctx context.Context, spaceID string, limit int) ([]secondary.ActivityEntry, error) {
	return m.entries, nil
}

// newTestEngine returns a merge engine with default fuzzy thresholds.
func newTestEngine() *canvas.Engine {
	return canvas.NewEngine(fuzzy.NewMatcher())
}

// seedSpace creates a space directly in the mock repository.
func seedSpace(repo *mockSpaceRepository, name string) *models.DesignSpace {
	space := models.NewDesignSpace(name)
	repo.spaces[space.ID] = space
	return space
}
