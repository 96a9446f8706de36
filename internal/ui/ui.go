package ui

import (
	"context"
	"fmt"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/desertthunder/songbox/internal/models"
	"github.com/desertthunder/songbox/internal/services"
	"github.com/desertthunder/songbox/internal/session"
	"github.com/desertthunder/songbox/internal/tasks"
)

// ViewState represents the current view in the TUI.
type ViewState int

const (
	SignInView ViewState = iota
	LoadingView
	FeedView
	DetailView
)

// Model represents the TUI application state.
type Model struct {
	ctx     context.Context
	view    ViewState
	session *session.Manager
	api     *services.SongBoxService
	engine  *tasks.FeedEngine
	width   int
	height  int

	emailInput    textinput.Model
	passwordInput textinput.Model
	focusPassword bool
	signInErr     error

	feedList list.Model
	feed     *tasks.HomeResult

	detail   *models.Album
	comments *models.CommentPage

	progressChan chan tasks.ProgressUpdate
	progress     tasks.ProgressUpdate

	err  error
	help help.Model
	keys keyMap
}

// NewModel creates a new TUI model with the provided dependencies.
func NewModel(ctx context.Context, mgr *session.Manager, api *services.SongBoxService, engine *tasks.FeedEngine) *Model {
	email := textinput.New()
	email.Placeholder = "email"
	email.Focus()

	password := textinput.New()
	password.Placeholder = "password"
	password.EchoMode = textinput.EchoPassword
	password.EchoCharacter = '•'

	return &Model{
		ctx:           ctx,
		view:          SignInView,
		session:       mgr,
		api:           api,
		engine:        engine,
		emailInput:    email,
		passwordInput: password,
		help:          help.New(),
		keys:          newKeyMap(),
	}
}

// Init restores any persisted session before showing the sign-in form.
func (m *Model) Init() tea.Cmd {
	return tea.Batch(textinput.Blink, m.restoreSession())
}

// Update handles incoming messages and updates the model state.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		if m.feedList.Width() == 0 {
			m.feedList.SetSize(msg.Width-4, msg.Height-8)
		}
		return m, nil

	case tea.KeyMsg:
		switch m.view {
		case SignInView:
			return m.handleSignInKeys(msg)
		case FeedView:
			return m.handleFeedKeys(msg)
		case DetailView:
			return m.handleDetailKeys(msg)
		case LoadingView:
			if msg.String() == "q" || msg.String() == "ctrl+c" {
				return m, tea.Quit
			}
			return m, nil
		}

	case restoredMsg:
		if msg.snap.Status == session.StatusAuthenticated {
			m.view = LoadingView
			return m, m.fetchFeed()
		}
		return m, nil

	case signedInMsg:
		if msg.err != nil {
			m.signInErr = msg.err
			return m, nil
		}
		m.signInErr = nil
		m.view = LoadingView
		return m, m.fetchFeed()

	case feedFetchedMsg:
		if msg.err != nil {
			m.err = msg.err
			return m, tea.Quit
		}
		m.feed = msg.result
		m.feedList = list.New(feedItems(msg.result), list.NewDefaultDelegate(), 0, 0)
		m.feedList.Title = "SongBox"
		m.feedList.SetSize(m.width-4, m.height-8)
		m.view = FeedView
		if m.progressChan != nil {
			m.progressChan = nil
		}
		return m, nil

	case progressUpdateMsg:
		m.progress = tasks.ProgressUpdate(msg)
		return m, m.waitForProgress()

	case detailFetchedMsg:
		if msg.err != nil {
			m.err = msg.err
			m.view = FeedView
			return m, nil
		}
		m.detail = msg.album
		m.comments = msg.comments
		m.view = DetailView
		return m, nil
	}

	return m.updateActive(msg)
}

// View renders the UI based on the current view state.
func (m *Model) View() string {
	if m.err != nil && m.view != FeedView {
		return styles.err.Render(fmt.Sprintf("Error: %v\n\nPress q to quit", m.err))
	}

	switch m.view {
	case SignInView:
		return m.renderSignIn()
	case LoadingView:
		return m.renderLoading()
	case FeedView:
		return m.renderFeed()
	case DetailView:
		return m.renderDetail()
	default:
		return ""
	}
}

func feedItems(feed *tasks.HomeResult) []list.Item {
	items := make([]list.Item, 0, len(feed.TopAlbums)+len(feed.TopArtists)+len(feed.RecentlyListened))
	for _, album := range feed.TopAlbums {
		items = append(items, albumItem{album: album})
	}
	for _, artist := range feed.TopArtists {
		items = append(items, artistItem{artist: artist})
	}
	for _, song := range feed.RecentlyListened {
		items = append(items, songItem{song: song})
	}
	return items
}

func (m *Model) handleSignInKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c":
		return m, tea.Quit
	case "tab", "shift+tab":
		m.focusPassword = !m.focusPassword
		if m.focusPassword {
			m.emailInput.Blur()
			return m, m.passwordInput.Focus()
		}
		m.passwordInput.Blur()
		return m, m.emailInput.Focus()
	case "enter":
		if !m.focusPassword {
			m.focusPassword = true
			m.emailInput.Blur()
			return m, m.passwordInput.Focus()
		}
		return m, m.signIn(m.emailInput.Value(), m.passwordInput.Value())
	}

	var cmd tea.Cmd
	if m.focusPassword {
		m.passwordInput, cmd = m.passwordInput.Update(msg)
	} else {
		m.emailInput, cmd = m.emailInput.Update(msg)
	}
	return m, cmd
}

func (m *Model) handleFeedKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c":
		return m, tea.Quit
	case "enter":
		selected := m.feedList.SelectedItem()
		if selected != nil {
			if item, ok := selected.(albumItem); ok {
				return m, m.fetchDetail(item.album.ID)
			}
		}
	}

	var cmd tea.Cmd
	m.feedList, cmd = m.feedList.Update(msg)
	return m, cmd
}

func (m *Model) handleDetailKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c":
		return m, tea.Quit
	case "esc":
		m.view = FeedView
		m.detail = nil
		m.comments = nil
		return m, nil
	}
	return m, nil
}

func (m *Model) updateActive(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	switch m.view {
	case FeedView:
		m.feedList, cmd = m.feedList.Update(msg)
	case SignInView:
		if m.focusPassword {
			m.passwordInput, cmd = m.passwordInput.Update(msg)
		} else {
			m.emailInput, cmd = m.emailInput.Update(msg)
		}
	}
	return m, cmd
}

func (m *Model) restoreSession() tea.Cmd {
	return func() tea.Msg {
		return restoredMsg{snap: m.session.Restore(m.ctx)}
	}
}

func (m *Model) signIn(email, password string) tea.Cmd {
	return func() tea.Msg {
		snap, err := m.session.Login(m.ctx, email, password)
		return signedInMsg{snap: snap, err: err}
	}
}

func (m *Model) fetchFeed() tea.Cmd {
	m.progressChan = make(chan tasks.ProgressUpdate, 50)
	progress := m.progressChan

	fetch := func() tea.Msg {
		result, err := m.engine.Home(m.ctx, progress)
		return feedFetchedMsg{result: result, err: err}
	}

	return tea.Batch(fetch, m.waitForProgress())
}

func (m *Model) waitForProgress() tea.Cmd {
	return func() tea.Msg {
		if m.progressChan == nil {
			return nil
		}

		update, ok := <-m.progressChan
		if !ok {
			return nil
		}
		return progressUpdateMsg(update)
	}
}

func (m *Model) fetchDetail(albumID string) tea.Cmd {
	return func() tea.Msg {
		album, err := m.api.AlbumDetails(m.ctx, albumID)
		if err != nil {
			return detailFetchedMsg{err: err}
		}

		comments, err := m.api.Comments(m.ctx, "album", albumID, 1, 10)
		if err != nil {
			// detail still renders without comments
			comments = &models.CommentPage{}
		}

		return detailFetchedMsg{album: album, comments: comments}
	}
}

func (m *Model) renderSignIn() string {
	title := styles.title.Render("Sign in to SongBox")

	var errLine string
	if m.signInErr != nil {
		errLine = styles.err.Render(fmt.Sprintf("\n%v", m.signInErr))
	}

	helpKeys := []key.Binding{m.keys.tab, m.keys.enter, m.keys.quit}
	helpView := m.help.ShortHelpView(helpKeys)

	return fmt.Sprintf("%s\n\n%s\n%s%s\n\n%s", title, m.emailInput.View(), m.passwordInput.View(), errLine, helpView)
}

func (m *Model) renderLoading() string {
	title := styles.title.Render("Loading Home Feed")

	var phase string
	switch m.progress.Phase {
	case tasks.FetchAlbums:
		phase = "Fetching top albums..."
	case tasks.FetchArtists:
		phase = "Fetching top artists..."
	case tasks.FetchHistory:
		phase = "Fetching recently listened..."
	case tasks.FetchVideos:
		phase = "Fetching videos..."
	default:
		phase = "Loading..."
	}

	return fmt.Sprintf("%s\n\n%s\n%s", title, phase, m.progress.Message)
}

func (m *Model) renderFeed() string {
	var warn string
	if m.feed != nil && len(m.feed.Errors) > 0 {
		warn = styles.warn.Render(fmt.Sprintf("\n%d sections failed to load", len(m.feed.Errors)))
	}

	helpKeys := []key.Binding{m.keys.enter, m.keys.quit}
	helpView := m.help.ShortHelpView(helpKeys)
	return fmt.Sprintf("%s%s\n\n%s", m.feedList.View(), warn, helpView)
}

func (m *Model) renderDetail() string {
	if m.detail == nil {
		return styles.err.Render("No album selected\n\nPress esc to go back")
	}

	title := styles.title.Render(m.detail.Name)
	info := fmt.Sprintf("Artist: %s\n", m.detail.ArtistName())
	if m.detail.ReleaseDate != "" {
		info += fmt.Sprintf("Released: %s\n", m.detail.ReleaseDate)
	}
	if m.detail.RatingCount > 0 {
		info += fmt.Sprintf("Rating: %.1f ★ (%d)\n", m.detail.AverageRating, m.detail.RatingCount)
	}

	var comments string
	if m.comments != nil && len(m.comments.Comments) > 0 {
		comments = "\nComments:\n"
		for _, c := range models.SortCommentsByLikes(m.comments.Comments) {
			comments += fmt.Sprintf("  %s (+%d): %s\n", c.Username, c.Likes, c.Text)
		}
	}

	helpKeys := []key.Binding{m.keys.back, m.keys.quit}
	helpView := m.help.ShortHelpView(helpKeys)

	return fmt.Sprintf("%s\n%s%s\n%s", title, info, comments, helpView)
}
