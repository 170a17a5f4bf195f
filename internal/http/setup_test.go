package http

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"sync"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/mikestefanello/backlite"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm/logger"

	"github.com/mrlokans/bookshelf/internal/database"
	"github.com/mrlokans/bookshelf/internal/database/books"
	"github.com/mrlokans/bookshelf/internal/database/catalog"
	"github.com/mrlokans/bookshelf/internal/database/settings"
	"github.com/mrlokans/bookshelf/internal/services"
)

type testEnv struct {
	db      *database.Database
	catalog *services.Catalog
	queue   *fakeQueue
	covers  *fakeCovers
	router  *gin.Engine
}

func setupTestEnv(t *testing.T) (*testEnv, func()) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	dbPath := "./test_http_" + strings.ReplaceAll(t.Name(), "/", "_") + ".db"
	db, err := database.NewDatabaseWithOptions(dbPath, database.Options{LogLevel: logger.Silent})
	require.NoError(t, err)

	svc := services.NewCatalog(
		books.NewRepository(db.DB),
		catalog.NewRepository(db.DB),
		settings.NewRepository(db.DB),
	)
	env := &testEnv{
		db:      db,
		catalog: svc,
		queue:   &fakeQueue{statuses: map[string]backlite.TaskStatus{}},
		covers:  &fakeCovers{},
	}
	env.router = NewRouter(RouterConfig{
		Books:     svc,
		Lookups:   svc,
		Settings:  svc,
		Database:  db,
		Covers:    env.covers,
		TaskQueue: env.queue,
		Version:   "test",
	})

	cleanup := func() {
		db.Close()
		os.Remove(dbPath)
	}
	return env, cleanup
}

func (env *testEnv) do(t *testing.T, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var reader *bytes.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(payload)
	} else {
		reader = bytes.NewReader(nil)
	}

	req, err := http.NewRequest(method, path, reader)
	require.NoError(t, err)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	w := httptest.NewRecorder()
	env.router.ServeHTTP(w, req)
	return w
}

func decode[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &v))
	return v
}

type fakeQueue struct {
	mu       sync.Mutex
	tasks    []backlite.Task
	err      error
	statuses map[string]backlite.TaskStatus
}

func (q *fakeQueue) Enqueue(_ context.Context, task backlite.Task) (string, error) {
	q.mu.Lock()
	defer q.mu.Unlock()
	if q.err != nil {
		return "", q.err
	}
	q.tasks = append(q.tasks, task)
	return "task-" + task.Config().Name, nil
}

func (q *fakeQueue) Status(_ context.Context, taskID string) (backlite.TaskStatus, error) {
	q.mu.Lock()
	defer q.mu.Unlock()
	status, ok := q.statuses[taskID]
	if !ok {
		return backlite.TaskStatusNotFound, nil
	}
	return status, nil
}

type fakeCovers struct {
	path  string
	err   error
	calls []string
}

func (f *fakeCovers) GetCover(_ context.Context, _ uint, coverURL string) (string, error) {
	f.calls = append(f.calls, coverURL)
	if f.err != nil {
		return "", f.err
	}
	if f.path == "" {
		return "", errors.New("no cover")
	}
	return f.path, nil
}
