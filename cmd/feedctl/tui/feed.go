package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/wavefeed/wavefeed/client"
	"github.com/wavefeed/wavefeed/cmd/models"
)

type feedMode int

const (
	modeFeed feedMode = iota
	modeCompose
	modeComment
)

// FeedModel drives the feed UI. All feed state lives in the injected
// client.State and only gets touched from Update, never from commands.
type FeedModel struct {
	api     *client.Client
	state   *client.State
	mode    feedMode
	cursor  int
	spinner spinner.Model
	compose composeModel
	comment textinput.Model
	notice  string
	width   int
	height  int
}

func NewFeedModel(api *client.Client, state *client.State) FeedModel {
	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(colorPrimary)

	comment := textinput.New()
	comment.Placeholder = "Write a comment"
	comment.Width = 60

	state.Begin()
	return FeedModel{
		api:     api,
		state:   state,
		spinner: sp,
		comment: comment,
	}
}

// Messages
type postsLoadedMsg struct {
	posts []models.Post
}

type postMutatedMsg struct {
	post *models.Post
}

type postCreatedMsg struct{}

type postDeletedMsg struct {
	id uint
}

type requestFailedMsg struct {
	err error
}

// Commands
func fetchPostsCmd(api *client.Client) tea.Cmd {
	return func() tea.Msg {
		posts, err := api.FetchPosts()
		if err != nil {
			return requestFailedMsg{err: err}
		}
		return postsLoadedMsg{posts: posts}
	}
}

func toggleLikeCmd(api *client.Client, id uint) tea.Cmd {
	return func() tea.Msg {
		post, err := api.ToggleLike(id)
		if err != nil {
			return requestFailedMsg{err: err}
		}
		return postMutatedMsg{post: post}
	}
}

func addCommentCmd(api *client.Client, id uint, text string) tea.Cmd {
	return func() tea.Msg {
		post, err := api.AddComment(id, text)
		if err != nil {
			return requestFailedMsg{err: err}
		}
		return postMutatedMsg{post: post}
	}
}

func createPostCmd(api *client.Client, content string, images, videos []string) tea.Cmd {
	return func() tea.Msg {
		if _, err := api.CreatePost(content, images, videos); err != nil {
			return requestFailedMsg{err: err}
		}
		return postCreatedMsg{}
	}
}

func deletePostCmd(api *client.Client, id uint) tea.Cmd {
	return func() tea.Msg {
		if _, err := api.DeletePost(id); err != nil {
			return requestFailedMsg{err: err}
		}
		return postDeletedMsg{id: id}
	}
}

func (m FeedModel) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, fetchPostsCmd(m.api))
}

func (m FeedModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case postsLoadedMsg:
		m.state.SetPosts(msg.posts)
		if m.cursor >= len(msg.posts) {
			m.cursor = 0
		}
		return m, nil

	case postMutatedMsg:
		m.state.UpsertPost(msg.post)
		return m, nil

	case postCreatedMsg:
		m.notice = "Post created successfully!"
		m.state.Loading = false
		m.state.Begin()
		return m, fetchPostsCmd(m.api)

	case postDeletedMsg:
		m.state.RemovePost(msg.id)
		m.notice = "Post deleted successfully!"
		return m, nil

	case requestFailedMsg:
		m.state.Fail(msg.err.Error())
		return m, nil

	case tea.KeyMsg:
		switch m.mode {
		case modeCompose:
			return m.updateCompose(msg)
		case modeComment:
			return m.updateComment(msg)
		default:
			return m.updateFeed(msg)
		}
	}

	return m, nil
}

func (m FeedModel) updateFeed(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c":
		return m, tea.Quit

	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}

	case "down", "j":
		if m.cursor < len(m.state.Posts)-1 {
			m.cursor++
		}

	case "r":
		if !m.state.Begin() {
			return m, nil
		}
		m.notice = ""
		return m, fetchPostsCmd(m.api)

	case "l":
		post, ok := m.selectedPost()
		if !ok || !m.state.Begin() {
			return m, nil
		}
		return m, toggleLikeCmd(m.api, post.ID)

	case "c":
		if _, ok := m.selectedPost(); !ok {
			return m, nil
		}
		m.mode = modeComment
		m.comment.SetValue("")
		m.comment.Focus()
		return m, nil

	case "d":
		post, ok := m.selectedPost()
		if !ok || !m.state.Begin() {
			return m, nil
		}
		return m, deletePostCmd(m.api, post.ID)

	case "n":
		m.mode = modeCompose
		m.compose = newComposeModel()
		return m, nil
	}

	return m, nil
}

func (m FeedModel) updateCompose(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.mode = modeFeed
		return m, nil

	case "ctrl+s":
		if m.compose.Content() == "" {
			m.state.Fail("Content is required")
			return m, nil
		}
		if !m.state.Begin() {
			return m, nil
		}
		m.mode = modeFeed
		return m, createPostCmd(m.api, m.compose.Content(), m.compose.ImagePaths(), m.compose.VideoPaths())
	}

	var cmd tea.Cmd
	m.compose, cmd = m.compose.Update(msg)
	return m, cmd
}

func (m FeedModel) updateComment(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.mode = modeFeed
		return m, nil

	case "enter":
		post, ok := m.selectedPost()
		text := strings.TrimSpace(m.comment.Value())
		if !ok || text == "" {
			return m, nil
		}
		if !m.state.Begin() {
			return m, nil
		}
		m.mode = modeFeed
		return m, addCommentCmd(m.api, post.ID, text)
	}

	var cmd tea.Cmd
	m.comment, cmd = m.comment.Update(msg)
	return m, cmd
}

func (m FeedModel) selectedPost() (models.Post, bool) {
	if m.cursor < 0 || m.cursor >= len(m.state.Posts) {
		return models.Post{}, false
	}
	return m.state.Posts[m.cursor], true
}

func (m FeedModel) View() string {
	if m.mode == modeCompose {
		return m.compose.View()
	}

	var b strings.Builder
	b.WriteString(titleStyle.Render("Wavefeed"))
	b.WriteString("\n")

	if m.state.Loading {
		b.WriteString(m.spinner.View() + " working...\n\n")
	}
	if m.state.Err != "" {
		b.WriteString(errorStyle.Render(m.state.Err) + "\n\n")
	} else if m.notice != "" {
		b.WriteString(noticeStyle.Render(m.notice) + "\n\n")
	}

	if len(m.state.Posts) == 0 && !m.state.Loading {
		b.WriteString(metaStyle.Render("No posts yet. Press n to write one.") + "\n")
	}

	for i, post := range m.state.Posts {
		b.WriteString(m.renderPost(post, i == m.cursor))
		b.WriteString("\n")
	}

	if m.mode == modeComment {
		b.WriteString("\n" + m.comment.View() + "\n")
		b.WriteString(helpStyle.Render("enter: send • esc: cancel"))
	} else {
		b.WriteString(helpStyle.Render("n: new post • l: like • c: comment • d: delete • r: refresh • q: quit"))
	}

	return b.String()
}

func (m FeedModel) renderPost(post models.Post, selected bool) string {
	author := "unknown"
	if post.Author != nil {
		author = post.Author.Name
	}

	bundle := post.Media.Data()
	meta := fmt.Sprintf("%d likes • %d comments", len(post.Likes), len(post.Comments))
	if n := len(bundle.Images); n > 0 {
		meta += fmt.Sprintf(" • %d images", n)
	}
	if n := len(bundle.Videos); n > 0 {
		meta += fmt.Sprintf(" • %d videos", n)
	}

	lines := []string{
		authorStyle.Render(author) + metaStyle.Render("  "+post.CreatedAt.Format("Jan 2 15:04")),
		contentStyle.Render(post.Content),
		metaStyle.Render(meta),
	}
	for _, comment := range post.Comments {
		name := fmt.Sprintf("user %d", comment.AuthorID)
		if comment.Author != nil {
			name = comment.Author.Name
		}
		lines = append(lines, commentStyle.Render(name+": "+comment.Text))
	}

	card := lipgloss.JoinVertical(lipgloss.Left, lines...)
	if selected {
		return selectedCardStyle.Render(card)
	}
	return cardStyle.Render(card)
}
