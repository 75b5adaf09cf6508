package ui

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

// mockModel is a test UI model
type mockModel struct {
	panicOnInit   bool
	panicOnUpdate bool
	panicOnView   bool
	updates       int
}

func (m *mockModel) Init() tea.Cmd {
	if m.panicOnInit {
		panic("init panic test")
	}
	return nil
}

func (m *mockModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	m.updates++
	if m.panicOnUpdate {
		panic("update panic test")
	}
	return m, tea.Quit
}

func (m *mockModel) View() string {
	if m.panicOnView {
		panic("view panic test")
	}
	return "Test UI"
}

func TestSafeModelPassThrough(t *testing.T) {
	inner := &mockModel{}
	sm := NewSafeModel(inner, zap.NewNop())

	assert.Nil(t, sm.Init())
	model, cmd := sm.Update(nil)
	assert.Same(t, sm, model)
	assert.NotNil(t, cmd)
	assert.Equal(t, 1, inner.updates)
	assert.Equal(t, "Test UI", sm.View())
	assert.Equal(t, 0, sm.panics)
}

func TestSafeModelRecovers(t *testing.T) {
	inner := &mockModel{panicOnInit: true, panicOnUpdate: true, panicOnView: true}
	sm := NewSafeModel(inner, nil)

	assert.NotPanics(t, func() {
		assert.Nil(t, sm.Init())

		model, cmd := sm.Update(nil)
		assert.Same(t, sm, model)
		assert.Nil(t, cmd)

		assert.Contains(t, sm.View(), "View crashed")
	})
	assert.Equal(t, 3, sm.panics)
}
