package storage

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"tokenScope/internal/model"
)

// JsonlStorage appends records to a JSONL file.
type JsonlStorage struct {
	path string
	mu   sync.Mutex
}

func NewJsonlStorage(path string) *JsonlStorage {
	return &JsonlStorage{path: path}
}

// PutActivityBatch appends a batch of activities as JSON lines.
func (s *JsonlStorage) PutActivityBatch(_ context.Context, activities []model.TokenActivity) error {
	if len(activities) == 0 {
		return nil
	}
	return s.appendLines(len(activities), func(i int) interface{} { return activities[i] })
}

// PutErrorBatch appends a batch of normalize errors as JSON lines.
func (s *JsonlStorage) PutErrorBatch(_ context.Context, errs []model.NormalizeError) error {
	if len(errs) == 0 {
		return nil
	}
	return s.appendLines(len(errs), func(i int) interface{} { return errs[i] })
}

func (s *JsonlStorage) appendLines(n int, item func(int) interface{}) error {
	dir := filepath.Dir(s.path)
	if dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create output dir: %w", err)
		}
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	file, err := os.OpenFile(s.path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return fmt.Errorf("open output file: %w", err)
	}
	defer file.Close()

	writer := bufio.NewWriter(file)
	for i := 0; i < n; i++ {
		line, err := json.Marshal(item(i))
		if err != nil {
			return fmt.Errorf("marshal record: %w", err)
		}
		if _, err := writer.Write(line); err != nil {
			return fmt.Errorf("write record: %w", err)
		}
		if err := writer.WriteByte('\n'); err != nil {
			return fmt.Errorf("write newline: %w", err)
		}
	}

	if err := writer.Flush(); err != nil {
		return fmt.Errorf("flush output: %w", err)
	}

	return nil
}
