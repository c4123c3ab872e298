package tui

import (
	"strings"

	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

const (
	focusContent = iota
	focusImages
	focusVideos
)

// composeModel is the post creation form: content plus comma-separated
// paths for image and video files.
type composeModel struct {
	content textarea.Model
	images  textinput.Model
	videos  textinput.Model
	focus   int
}

func newComposeModel() composeModel {
	content := textarea.New()
	content.Placeholder = "What's on your mind?"
	content.SetWidth(60)
	content.SetHeight(4)
	content.Focus()

	images := textinput.New()
	images.Placeholder = "image paths, comma separated (max 5)"
	images.Width = 60

	videos := textinput.New()
	videos.Placeholder = "video paths, comma separated (max 2)"
	videos.Width = 60

	return composeModel{
		content: content,
		images:  images,
		videos:  videos,
	}
}

func (m composeModel) Update(msg tea.Msg) (composeModel, tea.Cmd) {
	if key, ok := msg.(tea.KeyMsg); ok && key.Type == tea.KeyTab {
		m.focus = (m.focus + 1) % 3
		m.content.Blur()
		m.images.Blur()
		m.videos.Blur()
		switch m.focus {
		case focusContent:
			m.content.Focus()
		case focusImages:
			m.images.Focus()
		case focusVideos:
			m.videos.Focus()
		}
		return m, nil
	}

	var cmd tea.Cmd
	switch m.focus {
	case focusContent:
		m.content, cmd = m.content.Update(msg)
	case focusImages:
		m.images, cmd = m.images.Update(msg)
	case focusVideos:
		m.videos, cmd = m.videos.Update(msg)
	}
	return m, cmd
}

func (m composeModel) View() string {
	return lipgloss.JoinVertical(lipgloss.Left,
		titleStyle.Render("New post"),
		m.content.View(),
		"",
		m.images.View(),
		m.videos.View(),
		helpStyle.Render("tab: next field • ctrl+s: publish • esc: cancel"),
	)
}

func (m composeModel) Content() string {
	return strings.TrimSpace(m.content.Value())
}

func (m composeModel) ImagePaths() []string {
	return splitPaths(m.images.Value())
}

func (m composeModel) VideoPaths() []string {
	return splitPaths(m.videos.Value())
}

func splitPaths(value string) []string {
	var paths []string
	for _, part := range strings.Split(value, ",") {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			paths = append(paths, trimmed)
		}
	}
	return paths
}
