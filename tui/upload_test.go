package tui

import (
	"encoding/json"
	"net/http"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestUploadNoFileSelected(t *testing.T) {
	client, _ := testClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("no network call expected")
	}))
	m := newUpload(client)

	m, cmd := m.Update(keyMsg("enter"))
	require.Nil(t, cmd)
	require.Equal(t, "Proszę najpierw wybrać plik.", m.status)
}

func TestUploadSuccess(t *testing.T) {
	cvPath := filepath.Join(t.TempDir(), "cv.pdf")
	require.NoError(t, os.WriteFile(cvPath, []byte("%PDF-1.4"), 0o644))

	client, _ := testClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _, err := r.FormFile("file")
		require.NoError(t, err)
		json.NewEncoder(w).Encode(map[string]any{"id": 5, "name": "Piotr", "surname": "Nowak"})
	}))
	m := newUpload(client)
	m.path.SetValue(cvPath)

	m, cmd := m.Update(keyMsg("enter"))
	require.NotNil(t, cmd)
	require.True(t, m.uploading)
	require.Equal(t, "Wysyłanie i przetwarzanie pliku...", m.status)

	m, _ = m.Update(cmd())
	require.False(t, m.uploading)
	require.Equal(t, "Sukces! Utworzono profil dla: Piotr Nowak.", m.status)
	require.Empty(t, m.path.Value())
}

func TestUploadBackendDetailSurfaced(t *testing.T) {
	cvPath := filepath.Join(t.TempDir(), "cv.pdf")
	require.NoError(t, os.WriteFile(cvPath, []byte("%PDF-1.4"), 0o644))

	client, _ := testClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnprocessableEntity)
		json.NewEncoder(w).Encode(map[string]string{"detail": "Nieobsługiwany format pliku."})
	}))
	m := newUpload(client)
	m.path.SetValue(cvPath)

	m, cmd := m.Update(keyMsg("enter"))
	m, _ = m.Update(cmd())
	require.Equal(t, "Błąd: Nieobsługiwany format pliku.", m.status)
}

func TestUploadConnectivityFailure(t *testing.T) {
	cvPath := filepath.Join(t.TempDir(), "cv.pdf")
	require.NoError(t, os.WriteFile(cvPath, []byte("%PDF-1.4"), 0o644))

	m := newUpload(unreachableClient(t))
	m.path.SetValue(cvPath)

	m, cmd := m.Update(keyMsg("enter"))
	m, _ = m.Update(cmd())
	require.Equal(t, "Błąd: Nie udało się połączyć z serwerem.", m.status)
}

func TestUploadInFlightGuard(t *testing.T) {
	client, _ := testClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("no network call expected")
	}))
	m := newUpload(client)
	m.uploading = true
	m.path.SetValue("/tmp/cv.pdf")

	m, cmd := m.Update(keyMsg("enter"))
	require.Nil(t, cmd)
}

func TestUploadInFlightBlankEnterKeepsStatus(t *testing.T) {
	client, _ := testClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("no network call expected")
	}))
	m := newUpload(client)
	m.uploading = true
	m.status = "Wysyłanie i przetwarzanie pliku..."
	// the path was cleared when the upload started
	m.path.SetValue("")

	m, cmd := m.Update(keyMsg("enter"))
	require.Nil(t, cmd)
	require.Equal(t, "Wysyłanie i przetwarzanie pliku...", m.status)
}
