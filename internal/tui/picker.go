// Package tui provides the interactive gallery picker for choosing a
// label photo from disk.
package tui

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/filepicker"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/Veraticus/can-i-eat-this/internal/cli"
	"github.com/Veraticus/can-i-eat-this/internal/common"
	"github.com/Veraticus/can-i-eat-this/internal/source"
)

// ErrPickerCancelled is returned when the user quits without choosing
// an image.
var ErrPickerCancelled = errors.New("no image selected")

// pickerHeight keeps the file list readable without filling tall
// terminals.
const pickerHeight = 12

type clearErrorMsg struct{}

func clearErrorAfter(d time.Duration) tea.Cmd {
	return tea.Tick(d, func(time.Time) tea.Msg {
		return clearErrorMsg{}
	})
}

// pickerModel wraps the bubbles filepicker with image filtering and a
// quit binding.
type pickerModel struct {
	picker   filepicker.Model
	keys     KeyMap
	selected string
	errNote  string
	quitting bool
}

func newPickerModel(dir string) pickerModel {
	fp := filepicker.New()
	fp.CurrentDirectory = dir
	fp.AllowedTypes = source.ImageExtensions()
	fp.ShowPermissions = false
	fp.ShowSize = true
	fp.AutoHeight = false
	fp.Height = pickerHeight

	return pickerModel{
		picker: fp,
		keys:   DefaultKeyMap(),
	}
}

// Init implements tea.Model.
func (m pickerModel) Init() tea.Cmd {
	return m.picker.Init()
}

// Update implements tea.Model.
func (m pickerModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if key.Matches(msg, m.keys.Quit) {
			m.quitting = true
			return m, tea.Quit
		}
	case clearErrorMsg:
		m.errNote = ""
	}

	var cmd tea.Cmd
	m.picker, cmd = m.picker.Update(msg)

	if didSelect, path := m.picker.DidSelectFile(msg); didSelect {
		m.selected = path
		return m, tea.Quit
	}

	if didSelect, path := m.picker.DidSelectDisabledFile(msg); didSelect {
		m.errNote = filepath.Base(path) + " is not an image"
		return m, tea.Batch(cmd, clearErrorAfter(2*time.Second))
	}

	return m, cmd
}

// View implements tea.Model.
func (m pickerModel) View() string {
	if m.quitting || m.selected != "" {
		return ""
	}

	var b strings.Builder
	b.WriteString(cli.FormatTitle("Pick a label photo"))
	b.WriteString("\n")
	if m.errNote != "" {
		b.WriteString(cli.FormatWarning(m.errNote))
	} else {
		b.WriteString(cli.StyleSubtle("Browsing " + m.picker.CurrentDirectory))
	}
	b.WriteString("\n\n")
	b.WriteString(m.picker.View())
	b.WriteString("\n")
	b.WriteString(cli.StyleSubtle("enter: select  esc: up a directory  q: quit"))
	return b.String()
}

// outcome reports what the session produced once the program exits.
func (m pickerModel) outcome() (string, error) {
	if m.selected != "" {
		return m.selected, nil
	}
	return "", ErrPickerCancelled
}

// PickImage runs the interactive picker rooted at dir and returns the
// chosen image path. The picker renders on stderr so stdout stays
// reserved for report output.
func PickImage(ctx context.Context, dir string) (string, error) {
	images, err := source.ListImages(dir)
	if err != nil {
		return "", err
	}
	if len(images) == 0 {
		return "", fmt.Errorf("%w: no images under %s", common.ErrNoImage, dir)
	}

	p := tea.NewProgram(newPickerModel(dir), tea.WithOutput(os.Stderr), tea.WithContext(ctx))
	final, err := p.Run()
	if err != nil {
		return "", fmt.Errorf("picker failed: %w", err)
	}

	m, ok := final.(pickerModel)
	if !ok {
		return "", fmt.Errorf("picker returned unexpected model %T", final)
	}
	return m.outcome()
}
