package dashboard

import (
	"testing"

	tea "charm.land/bubbletea/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/spinlab/internal/catalog"
	"github.com/abhisek/spinlab/internal/engine"
	"github.com/abhisek/spinlab/internal/profiles"
	"github.com/abhisek/spinlab/internal/router"
	"github.com/abhisek/spinlab/internal/screen"
	"github.com/abhisek/spinlab/internal/screens/badges"
	"github.com/abhisek/spinlab/internal/screens/history"
	"github.com/abhisek/spinlab/internal/screens/onboarding"
	"github.com/abhisek/spinlab/internal/screens/tricks"
)

type fakeBackend struct{ e *engine.Engine }

func (b *fakeBackend) Do(fn func(*engine.Engine) error) error   { return fn(b.e) }
func (b *fakeBackend) View(fn func(*engine.Engine) error) error { return fn(b.e) }

func newBackend(t *testing.T) *fakeBackend {
	t.Helper()
	e, err := engine.New(catalog.Default(), engine.Options{})
	require.NoError(t, err)
	return &fakeBackend{e: e}
}

func TestRefreshReloadsProgress(t *testing.T) {
	b := newBackend(t)
	s := New(b)
	assert.Zero(t, s.dash.Overall.Completed)
	assert.Equal(t, MascotIdle, mascotFor(s.dash))

	require.NoError(t, b.Do(func(e *engine.Engine) error {
		_, err := e.MarkMastered("throw-down")
		return err
	}))
	s.Update(screen.RefreshMsg{})

	assert.Equal(t, 1, s.dash.Overall.Completed)
	assert.NotEmpty(t, s.dash.Pending)
	assert.Equal(t, MascotCelebrating, mascotFor(s.dash))
	assert.Contains(t, s.View(100, 30), "New badges")
}

func TestRefreshKeepsMenuSelection(t *testing.T) {
	s := New(newBackend(t))
	s.Update(tea.KeyPressMsg{Code: tea.KeyDown})
	s.Update(screen.RefreshMsg{})
	assert.Equal(t, 1, s.menu.Selected)
}

func TestMenuPushesScreens(t *testing.T) {
	s := New(newBackend(t))

	pushed := func() screen.Screen {
		t.Helper()
		_, cmd := s.Update(tea.KeyPressMsg{Code: tea.KeyEnter})
		require.NotNil(t, cmd)
		msg, ok := cmd().(router.PushScreenMsg)
		require.True(t, ok)
		return msg.Screen
	}

	assert.IsType(t, &tricks.Screen{}, pushed())
	s.Update(tea.KeyPressMsg{Code: tea.KeyDown})
	assert.IsType(t, &badges.Screen{}, pushed())
	s.Update(tea.KeyPressMsg{Code: tea.KeyDown})
	assert.IsType(t, &onboarding.Wizard{}, pushed())
}

func TestStreakAlertMascot(t *testing.T) {
	d := engine.Dashboard{Streak: engine.StreakView{Current: 4}}
	assert.Equal(t, MascotAlert, mascotFor(d))
	d.Streak.ActiveToday = true
	assert.Equal(t, MascotIdle, mascotFor(d))
}

func TestCompactViewHidesMascot(t *testing.T) {
	s := New(newBackend(t))
	assert.Contains(t, s.View(100, 30), "╭───╮")
	assert.NotContains(t, s.View(100, 16), "╭───╮")
	assert.Contains(t, s.View(100, 16), "TRICKS")
}

type historyBackend struct{ *fakeBackend }

func (historyBackend) History(int) ([]profiles.Activity, error) { return nil, nil }

func TestHistoryNeedsSource(t *testing.T) {
	s := New(newBackend(t))
	assert.True(t, s.menu.Items[2].Disabled)

	s = New(historyBackend{newBackend(t)})
	require.False(t, s.menu.Items[2].Disabled)
	s.menu.Selected = 2
	_, cmd := s.Update(tea.KeyPressMsg{Code: tea.KeyEnter})
	require.NotNil(t, cmd)
	msg, ok := cmd().(router.PushScreenMsg)
	require.True(t, ok)
	assert.IsType(t, &history.Screen{}, msg.Screen)
}
