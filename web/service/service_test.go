package service

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/atelier-moveis/atelier-backend/database"
	"github.com/atelier-moveis/atelier-backend/logger"
	"github.com/atelier-moveis/atelier-backend/objstore"

	"github.com/op/go-logging"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

func TestMain(m *testing.M) {
	os.Setenv("ATELIER_LOG_FOLDER", os.TempDir())
	logger.InitLogger(logging.ERROR)
	os.Exit(m.Run())
}

func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:svc_%s?mode=memory&cache=shared&_foreign_keys=on", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{Logger: gormlogger.Discard})
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	if err := database.Migrate(db); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return db
}

// fakeStore is an in-memory objstore.Store recording every call.
type fakeStore struct {
	mu      sync.Mutex
	objects map[string][]byte
	updated map[string]time.Time
	uploads []string
	deletes []string

	failUploadAt int // fail the n-th upload (1-based), 0 = never
	failDeletes  bool
	uploadCount  int
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		objects: make(map[string][]byte),
		updated: make(map[string]time.Time),
	}
}

func (f *fakeStore) Upload(_ context.Context, key, _ string, data []byte) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.uploadCount++
	if f.failUploadAt > 0 && f.uploadCount == f.failUploadAt {
		return "", errors.New("upload rejected")
	}
	f.objects[key] = data
	f.updated[key] = time.Now()
	f.uploads = append(f.uploads, key)
	return "https://cdn.example.com/object/public/produtos/" + key, nil
}

func (f *fakeStore) Delete(_ context.Context, key string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.deletes = append(f.deletes, key)
	if f.failDeletes {
		return errors.New("delete rejected")
	}
	delete(f.objects, key)
	delete(f.updated, key)
	return nil
}

func (f *fakeStore) List(_ context.Context, prefix string) ([]objstore.Object, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var objects []objstore.Object
	for key, data := range f.objects {
		if !strings.HasPrefix(key, prefix) {
			continue
		}
		objects = append(objects, objstore.Object{
			Key:       key,
			Size:      int64(len(data)),
			UpdatedAt: f.updated[key],
		})
	}
	return objects, nil
}

func (f *fakeStore) deleteCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.deletes)
}
