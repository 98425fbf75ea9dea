package tui

import (
	"encoding/json"
	"net/http"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/deAdler-alt/Skill-Sense/model"
	"github.com/deAdler-alt/Skill-Sense/preview"
)

func listHandler(t *testing.T, calls *int) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/users":
			*calls++
			json.NewEncoder(w).Encode(map[string]any{
				"items": []map[string]any{
					{"id": 1, "name": "Jan", "surname": "Kowalski", "cv_filepath": "uploads/1.pdf"},
					{"id": 2, "name": "Anna", "surname": "Nowak"},
				},
			})
		case "/cv/1":
			w.Write([]byte("binary"))
		default:
			http.NotFound(w, r)
		}
	})
}

func loadedDirectory(t *testing.T) (directoryModel, *int) {
	t.Helper()
	calls := new(int)
	client, _ := testClient(t, listHandler(t, calls))
	m := newDirectory(client, 300*time.Millisecond)

	m, cmd := m.issueFetch()
	m, _ = m.Update(cmd())
	require.Len(t, m.profiles, 2)
	return m, calls
}

func TestDirectoryDebounceOnlyLatestTimerFires(t *testing.T) {
	calls := new(int)
	client, _ := testClient(t, listHandler(t, calls))
	m := newDirectory(client, 300*time.Millisecond)

	// three quick keystrokes schedule three timers
	for _, r := range []string{"s", "q", "l"} {
		m, _ = m.Update(keyMsg(r))
	}
	require.Equal(t, 3, m.debounceSeq)

	// superseded timers are ignored without issuing a request
	m, cmd := m.Update(debounceMsg{seq: 1})
	require.Nil(t, cmd)
	m, cmd = m.Update(debounceMsg{seq: 2})
	require.Nil(t, cmd)

	// the latest timer issues exactly one request
	m, cmd = m.Update(debounceMsg{seq: 3})
	require.NotNil(t, cmd)
	require.True(t, m.loading)

	m, _ = m.Update(cmd())
	require.Equal(t, 1, *calls)
	require.Len(t, m.profiles, 2)
}

func TestDirectoryStaleResponseDiscarded(t *testing.T) {
	m, _ := loadedDirectory(t)
	m.fetchSeq = 5

	stale := listResultMsg{seq: 3, items: []model.Profile{{ID: 99, Name: "Stale", Surname: "Result"}}}
	m, cmd := m.Update(stale)
	require.Nil(t, cmd)
	require.Len(t, m.profiles, 2)
	require.Equal(t, "Jan", m.profiles[0].Name)

	fresh := listResultMsg{seq: 5, items: []model.Profile{{ID: 10, Name: "Nowy", Surname: "Wynik"}}}
	m, _ = m.Update(fresh)
	require.Len(t, m.profiles, 1)
	require.Equal(t, "Nowy", m.profiles[0].Name)
}

func TestDirectorySelectWithDocumentFetchesPreview(t *testing.T) {
	m, _ := loadedDirectory(t)

	m, cmd := m.selectUnderCursor()
	require.NotNil(t, cmd)
	require.True(t, m.previewLoading)
	require.Equal(t, 1, m.selected.ID)

	msg, ok := cmd().(previewFetchedMsg)
	require.True(t, ok)
	require.Equal(t, 1, msg.profileID)
	require.NoError(t, msg.err)
	t.Cleanup(msg.handle.Release)
}

func TestDirectorySelectWithoutDocumentNeverFetches(t *testing.T) {
	m, _ := loadedDirectory(t)
	m.cursor = 1 // Anna has no cv_filepath

	m, cmd := m.selectUnderCursor()
	require.Nil(t, cmd)
	require.False(t, m.previewLoading)
	require.Equal(t, 2, m.selected.ID)
}

func TestDirectoryReselectReleasesPreviousHandle(t *testing.T) {
	m, _ := loadedDirectory(t)

	h, err := preview.Materialize([]byte("old document"))
	require.NoError(t, err)
	path := h.Path()
	m.handle = h

	m, _ = m.selectUnderCursor()
	_, statErr := os.Stat(path)
	require.True(t, os.IsNotExist(statErr))
	require.Nil(t, m.handle)
}

func TestDirectoryStalePreviewReleased(t *testing.T) {
	m, _ := loadedDirectory(t)
	selected := m.profiles[1]
	m.selected = &selected // selection moved to profile 2

	h, err := preview.Materialize([]byte("late document"))
	require.NoError(t, err)
	path := h.Path()

	m, _ = m.Update(previewFetchedMsg{profileID: 1, handle: h})
	_, statErr := os.Stat(path)
	require.True(t, os.IsNotExist(statErr))
	require.Nil(t, m.handle)
}

func TestDirectoryPreviewResponseSupersedesHeldHandle(t *testing.T) {
	m, _ := loadedDirectory(t)
	selected := m.profiles[0]
	m.selected = &selected

	// a handle from an earlier fetch of the same profile is still held
	held, err := preview.Materialize([]byte("first document"))
	require.NoError(t, err)
	heldPath := held.Path()
	m.handle = held

	late, err := preview.Materialize([]byte("second document"))
	require.NoError(t, err)
	latePath := late.Path()

	m, _ = m.Update(previewFetchedMsg{profileID: 1, handle: late})

	// only one materialized document may exist; the held one is released
	_, statErr := os.Stat(heldPath)
	require.True(t, os.IsNotExist(statErr))
	_, statErr = os.Stat(latePath)
	require.True(t, os.IsNotExist(statErr))
	require.Nil(t, m.handle)
	require.True(t, m.previewFailed)
}

func TestDirectoryTeardownReleasesHandle(t *testing.T) {
	m, _ := loadedDirectory(t)

	h, err := preview.Materialize([]byte("document"))
	require.NoError(t, err)
	path := h.Path()
	m.handle = h

	m.teardown()
	_, statErr := os.Stat(path)
	require.True(t, os.IsNotExist(statErr))
}

func TestDirectoryListFailureShowsError(t *testing.T) {
	m := newDirectory(unreachableClient(t), 300*time.Millisecond)

	m, cmd := m.issueFetch()
	m, _ = m.Update(cmd())
	require.True(t, m.listErr)
	require.False(t, m.loading)
}
