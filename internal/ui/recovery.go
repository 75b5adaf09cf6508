package ui

import (
	"runtime/debug"

	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"
)

// SafeModel wraps a model with panic recovery. A renderer choking on an
// unexpected payload is logged instead of tearing down the terminal.
type SafeModel struct {
	model  tea.Model
	logger *zap.Logger
	panics int
}

// NewSafeModel wraps model.
func NewSafeModel(model tea.Model, logger *zap.Logger) *SafeModel {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &SafeModel{model: model, logger: logger.Named("ui")}
}

// Init wraps the Init method with panic recovery
func (sm *SafeModel) Init() (cmd tea.Cmd) {
	defer sm.recoverFromPanic("Init", &cmd)
	return sm.model.Init()
}

// Update wraps the Update method with panic recovery
func (sm *SafeModel) Update(msg tea.Msg) (model tea.Model, cmd tea.Cmd) {
	model = sm
	defer sm.recoverFromPanic("Update", &cmd)
	sm.model, cmd = sm.model.Update(msg)
	return sm, cmd
}

// View wraps the View method with panic recovery
func (sm *SafeModel) View() (view string) {
	defer func() {
		if r := recover(); r != nil {
			sm.panics++
			sm.logger.Error("View panic recovered",
				zap.Any("panic", r),
				zap.String("stack", string(debug.Stack())))
			view = "UI Error: View crashed. Press Ctrl+C to exit."
		}
	}()
	return sm.model.View()
}

func (sm *SafeModel) recoverFromPanic(method string, cmd *tea.Cmd) {
	if r := recover(); r != nil {
		sm.panics++
		sm.logger.Error("UI method panic recovered",
			zap.String("method", method),
			zap.Any("panic", r),
			zap.String("stack", string(debug.Stack())))
		*cmd = nil
	}
}
