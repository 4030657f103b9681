package store

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/gaphound/gaphound/models"
	"github.com/spf13/afero"
	yaml "gopkg.in/yaml.v3"
)

const (
	formatJSON = "json"
	formatYAML = "yaml"
)

// FileResultStore keeps one result file per story under a base directory.
// It operates on an afero.Fs so tests can run against an in-memory
// filesystem; use afero.NewOsFs() for real storage.
type FileResultStore struct {
	fs      afero.Fs
	baseDir string
	format  string
}

// NewFileResultStore creates a file-backed result store writing
// <baseDir>/<storyID>.<format>. Supported formats are "json" and "yaml";
// an empty format defaults to JSON.
func NewFileResultStore(fs afero.Fs, baseDir, format string) (*FileResultStore, error) {
	switch strings.ToLower(format) {
	case "":
		format = formatJSON
	case formatJSON, formatYAML:
		format = strings.ToLower(format)
	default:
		return nil, fmt.Errorf("unsupported result format: %s (supported: json, yaml)", format)
	}
	if err := fs.MkdirAll(baseDir, 0o755); err != nil {
		return nil, fmt.Errorf("create store directory %s: %w", baseDir, err)
	}
	return &FileResultStore{fs: fs, baseDir: baseDir, format: format}, nil
}

// Save writes the result atomically: marshal to a temp file, then rename over
// the story's result file.
func (s *FileResultStore) Save(result *models.HygieneResult) error {
	if result.StoryID == "" {
		return fmt.Errorf("result has no story id")
	}

	var data []byte
	var err error
	switch s.format {
	case formatYAML:
		data, err = yaml.Marshal(result)
	default:
		data, err = json.MarshalIndent(result, "", "  ")
	}
	if err != nil {
		return fmt.Errorf("marshal result for story %s: %w", result.StoryID, err)
	}

	path := s.resultPath(result.StoryID)
	tmp := path + ".tmp"
	if err := afero.WriteFile(s.fs, tmp, data, 0o644); err != nil {
		return fmt.Errorf("write result file: %w", err)
	}
	if err := s.fs.Rename(tmp, path); err != nil {
		return fmt.Errorf("replace result file: %w", err)
	}
	return nil
}

// Latest loads the stored result for a story.
func (s *FileResultStore) Latest(storyID string) (*models.HygieneResult, error) {
	data, err := afero.ReadFile(s.fs, s.resultPath(storyID))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("story %s: %w", storyID, ErrNotFound)
		}
		return nil, fmt.Errorf("read result for story %s: %w", storyID, err)
	}

	var result models.HygieneResult
	switch s.format {
	case formatYAML:
		err = yaml.Unmarshal(data, &result)
	default:
		err = json.Unmarshal(data, &result)
	}
	if err != nil {
		return nil, fmt.Errorf("decode result for story %s: %w", storyID, err)
	}
	return &result, nil
}

// Stories lists story ids by scanning the base directory.
func (s *FileResultStore) Stories() ([]string, error) {
	entries, err := afero.ReadDir(s.fs, s.baseDir)
	if err != nil {
		return nil, fmt.Errorf("read store directory: %w", err)
	}
	suffix := "." + s.format
	var ids []string
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), suffix) {
			continue
		}
		ids = append(ids, strings.TrimSuffix(entry.Name(), suffix))
	}
	sort.Strings(ids)
	return ids, nil
}

// Close is a no-op for the file backend.
func (s *FileResultStore) Close() error { return nil }

func (s *FileResultStore) resultPath(storyID string) string {
	return filepath.Join(s.baseDir, storyID+"."+s.format)
}
