package commands

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kasflow-dev/kasflow/internal/config"
	"github.com/kasflow-dev/kasflow/internal/runlog"
)

func fetchProject(t *testing.T, baseURL string) *project {
	t.Helper()
	dir := t.TempDir()
	require.NoError(t, runInit(dir, "kaspa:qwallet"))

	cfgPath := filepath.Join(dir, config.FileName)
	cfg, err := config.Load(cfgPath)
	require.NoError(t, err)
	cfg.Explorer.BaseURL = baseURL
	cfg.Explorer.Cutoff = ""
	require.NoError(t, config.Save(cfgPath, cfg))

	p, err := openProject(dir)
	require.NoError(t, err)
	return p
}

func TestRunFetchEmptyHistoryWritesFiles(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, "[]")
	}))
	defer srv.Close()

	p := fetchProject(t, srv.URL)
	require.NoError(t, runFetch(context.Background(), p, "kaspa:qwallet", false))

	// Header-only files so downstream commands see an empty history
	// instead of a missing one.
	involving, err := p.data.ReadTransfersFile(p.data.InvolvingPath("kaspa:qwallet"))
	require.NoError(t, err)
	assert.Empty(t, involving)

	participants, err := p.data.ReadTransfersFile(p.data.ParticipantsPath("kaspa:qwallet"))
	require.NoError(t, err)
	assert.Empty(t, participants)

	entries, err := runlog.Read(p.dir)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, runlog.StatusOK, entries[0].Status)
	assert.Equal(t, 0, entries[0].Transactions)
}

func TestRunFetchFailedEmptyRunLeavesFilesAlone(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
	}))
	defer srv.Close()

	p := fetchProject(t, srv.URL)
	require.Error(t, runFetch(context.Background(), p, "kaspa:qwallet", false))

	assert.NoFileExists(t, p.data.InvolvingPath("kaspa:qwallet"))
	assert.NoFileExists(t, p.data.ParticipantsPath("kaspa:qwallet"))

	entries, err := runlog.Read(p.dir)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, runlog.StatusFailed, entries[0].Status)
}
