package adapter_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/agentlog/agentlog/pkg/adapter"
	"github.com/m-mizutani/gt"
)

func TestFileRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "activities.json")
	storage := adapter.NewFile(path)

	gt.NoError(t, storage.Write([]byte(`[{"id":"x"}]`)))

	data, err := storage.Read()
	gt.NoError(t, err)
	gt.Equal(t, string(data), `[{"id":"x"}]`)
}

func TestFileAbsentSlot(t *testing.T) {
	storage := adapter.NewFile(filepath.Join(t.TempDir(), "missing.json"))

	data, err := storage.Read()
	gt.NoError(t, err)
	gt.True(t, data == nil)
}

func TestFileCreatesParentDirs(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "dir", "activities.json")
	storage := adapter.NewFile(path)

	gt.NoError(t, storage.Write([]byte("[]")))

	_, err := os.Stat(path)
	gt.NoError(t, err)
}

func TestFileOverwrite(t *testing.T) {
	path := filepath.Join(t.TempDir(), "activities.json")
	storage := adapter.NewFile(path)

	gt.NoError(t, storage.Write([]byte("first")))
	gt.NoError(t, storage.Write([]byte("second")))

	data, err := storage.Read()
	gt.NoError(t, err)
	gt.Equal(t, string(data), "second")

	// No temp files left behind
	entries, err := os.ReadDir(filepath.Dir(path))
	gt.NoError(t, err)
	gt.Equal(t, len(entries), 1)
}

func TestFileRemove(t *testing.T) {
	path := filepath.Join(t.TempDir(), "activities.json")
	storage := adapter.NewFile(path)

	gt.NoError(t, storage.Write([]byte("[]")))
	gt.NoError(t, storage.Remove())

	data, err := storage.Read()
	gt.NoError(t, err)
	gt.True(t, data == nil)

	// Removing an absent slot is not an error
	gt.NoError(t, storage.Remove())
}

func TestMemoryRoundTrip(t *testing.T) {
	storage := adapter.NewMemory()

	data, err := storage.Read()
	gt.NoError(t, err)
	gt.True(t, data == nil)

	gt.NoError(t, storage.Write([]byte("payload")))

	data, err = storage.Read()
	gt.NoError(t, err)
	gt.Equal(t, string(data), "payload")

	gt.NoError(t, storage.Remove())
	data, err = storage.Read()
	gt.NoError(t, err)
	gt.True(t, data == nil)
}

func TestMemoryIsolation(t *testing.T) {
	storage := adapter.NewMemory()
	src := []byte("original")
	gt.NoError(t, storage.Write(src))

	src[0] = 'X'

	data, err := storage.Read()
	gt.NoError(t, err)
	gt.Equal(t, string(data), "original")

	data[0] = 'Y'
	again, err := storage.Read()
	gt.NoError(t, err)
	gt.Equal(t, string(again), "original")
}
