package tui

import (
	"encoding/json"
	"net/http"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/require"

	"github.com/deAdler-alt/Skill-Sense/model"
)

func searchHandler(t *testing.T, calls *int) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		*calls++
		items := []map[string]any{}
		for i, score := range []float64{92.4, 77.0, 51.3} {
			items = append(items, map[string]any{
				"id":          i + 1,
				"name":        "Jan",
				"surname":     "Kowalski",
				"match_score": score,
				"reasoning":   "Dobre dopasowanie.",
				"skills":      []map[string]string{{"name": "Python"}},
			})
		}
		json.NewEncoder(w).Encode(map[string]any{
			"summary":  "Znalazłem 3 kandydatów.",
			"profiles": map[string]any{"total": 3, "page": 1, "limit": 3, "items": items},
		})
	})
}

func TestChatSeedsGreeting(t *testing.T) {
	client, _ := testClient(t, searchHandler(t, new(int)))
	m := newChat(client)

	require.Len(t, m.messages, 1)
	require.Equal(t, model.MessageAssistant, m.messages[0].Type)
	require.Equal(t, chatGreeting, m.messages[0].Content)
}

func TestChatSubmitAppendsInOrder(t *testing.T) {
	calls := 0
	client, _ := testClient(t, searchHandler(t, &calls))
	m := newChat(client)
	m.input.SetValue("python developer")

	m, cmd := m.Update(keyMsg("enter"))
	require.NotNil(t, cmd)
	require.True(t, m.inFlight)

	// the user message appears immediately, before the response arrives
	require.Len(t, m.messages, 2)
	require.Equal(t, model.MessageUser, m.messages[1].Type)
	require.Equal(t, "python developer", m.messages[1].Content)
	require.Empty(t, m.input.Value())

	m, _ = m.Update(cmd())
	require.False(t, m.inFlight)
	require.Equal(t, 1, calls)

	require.Len(t, m.messages, 4)
	require.Equal(t, model.MessageAssistant, m.messages[2].Type)
	require.Equal(t, "Znalazłem 3 kandydatów.", m.messages[2].Content)
	require.Equal(t, model.MessageResults, m.messages[3].Type)
	require.Len(t, m.messages[3].Results, 3)
	for _, p := range m.messages[3].Results {
		require.GreaterOrEqual(t, p.Score(), 0.0)
		require.LessOrEqual(t, p.Score(), 100.0)
	}
}

func TestChatBlankQueryRejected(t *testing.T) {
	client, _ := testClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("no network call expected")
	}))
	m := newChat(client)

	for _, input := range []string{"", "   ", "\t "} {
		m.input.SetValue(input)
		var cmd tea.Cmd
		m, cmd = m.Update(keyMsg("enter"))
		require.Nil(t, cmd)
		require.Len(t, m.messages, 1)
	}
}

func TestChatInFlightGuard(t *testing.T) {
	client, _ := testClient(t, searchHandler(t, new(int)))
	m := newChat(client)
	m.inFlight = true
	m.input.SetValue("golang")

	m, cmd := m.Update(keyMsg("enter"))
	require.Nil(t, cmd)
	require.Len(t, m.messages, 1)
}

func TestChatErrorAppendsFixedMessage(t *testing.T) {
	m := newChat(unreachableClient(t))
	m.input.SetValue("golang")

	m, cmd := m.Update(keyMsg("enter"))
	require.NotNil(t, cmd)

	m, _ = m.Update(cmd())
	require.False(t, m.inFlight)
	require.Len(t, m.messages, 3)
	last := m.messages[2]
	require.Equal(t, model.MessageAssistant, last.Type)
	require.Equal(t, chatErrorMsg, last.Content)
}

func TestChatCardSelectionOpensProfile(t *testing.T) {
	client, _ := testClient(t, searchHandler(t, new(int)))
	m := newChat(client)
	m.input.SetValue("python developer")

	m, cmd := m.Update(keyMsg("enter"))
	m, _ = m.Update(cmd())
	require.Equal(t, 0, m.cardCursor)

	m, _ = m.Update(keyMsg("ctrl+n"))
	require.Equal(t, 1, m.cardCursor)

	m, openCmd := m.Update(keyMsg("ctrl+o"))
	require.NotNil(t, openCmd)
	msg, ok := openCmd().(openProfileMsg)
	require.True(t, ok)
	require.Equal(t, 2, msg.profile.ID)
}
