package alarms

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"sync"

	"github.com/google/uuid"

	"github.com/oshokin/alarm-clock/internal/config"
	domain "github.com/oshokin/alarm-clock/internal/domain/alarm"
)

// idPrefix starts every generated alarm id.
const idPrefix = "alarm_"

// idLength is the number of random hex characters in a generated id.
const idLength = 8

// Repository defines the catalog operations over persisted alarms.
type Repository interface {
	ListAlarms(ctx context.Context) ([]domain.Alarm, error)
	CreateAlarm(ctx context.Context, draft *domain.Draft) (string, error)
	ToggleAlarm(ctx context.Context, id string) error
	DeleteAlarm(ctx context.Context, id string) error
}

// FileRepository persists the alarm list to a JSON file on disk.
type FileRepository struct {
	// path is the filesystem location of the JSON catalog.
	path string
	// newID generates candidate alarm ids.
	newID func() string
	// mu protects concurrent access to the catalog file.
	mu sync.Mutex
}

// Option configures a FileRepository.
type Option func(*FileRepository)

// WithIDGenerator overrides the id generator.
func WithIDGenerator(generate func() string) Option {
	return func(r *FileRepository) {
		if generate != nil {
			r.newID = generate
		}
	}
}

// NewFileRepository creates a repository that reads and writes JSON at the provided path.
func NewFileRepository(path string, opts ...Option) *FileRepository {
	r := &FileRepository{
		path:  filepath.Clean(path),
		newID: randomID,
	}

	for _, opt := range opts {
		opt(r)
	}

	return r
}

// Path returns the catalog file location.
func (r *FileRepository) Path() string {
	return r.path
}

// ListAlarms returns all stored alarms. A missing file is an empty catalog.
func (r *FileRepository) ListAlarms(_ context.Context) ([]domain.Alarm, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	return r.load()
}

// CreateAlarm validates the draft, stores a new enabled alarm and returns its id.
func (r *FileRepository) CreateAlarm(_ context.Context, draft *domain.Draft) (string, error) {
	if draft == nil {
		return "", fmt.Errorf("%w: empty draft", domain.ErrInvalidInput)
	}

	normalized := *draft
	if err := normalized.Normalize(); err != nil {
		return "", err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	alarms, err := r.load()
	if err != nil {
		return "", err
	}

	id := r.uniqueID(alarms)

	alarms = append(alarms, domain.Alarm{
		ID:        id,
		Hour:      normalized.Hour,
		Minute:    normalized.Minute,
		Label:     normalized.Label,
		Enabled:   true,
		Vibrate:   normalized.Vibrate,
		SoundFile: domain.DefaultSoundFile,
	})

	if err = r.save(alarms); err != nil {
		return "", err
	}

	return id, nil
}

// ToggleAlarm flips the enabled flag of the alarm with the given id.
func (r *FileRepository) ToggleAlarm(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	alarms, err := r.load()
	if err != nil {
		return err
	}

	index := slices.IndexFunc(alarms, func(a domain.Alarm) bool { return a.ID == id })
	if index < 0 {
		return fmt.Errorf("%w: alarm %q", domain.ErrNotFound, id)
	}

	alarms[index].Enabled = !alarms[index].Enabled

	return r.save(alarms)
}

// DeleteAlarm removes the alarm with the given id.
func (r *FileRepository) DeleteAlarm(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	alarms, err := r.load()
	if err != nil {
		return err
	}

	index := slices.IndexFunc(alarms, func(a domain.Alarm) bool { return a.ID == id })
	if index < 0 {
		return fmt.Errorf("%w: alarm %q", domain.ErrNotFound, id)
	}

	return r.save(slices.Delete(alarms, index, index+1))
}

// load reads the catalog. The caller holds mu.
func (r *FileRepository) load() ([]domain.Alarm, error) {
	contents, err := os.ReadFile(r.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return []domain.Alarm{}, nil
		}

		return nil, fmt.Errorf("read alarms file: %w", err)
	}

	if len(strings.TrimSpace(string(contents))) == 0 {
		return []domain.Alarm{}, nil
	}

	var records []record
	if err = json.Unmarshal(contents, &records); err != nil {
		return nil, fmt.Errorf("decode alarms file: %w", err)
	}

	alarms := make([]domain.Alarm, 0, len(records))
	for i := range records {
		alarms = append(alarms, records[i].toDomain())
	}

	return alarms, nil
}

// save writes the catalog through a temporary file. The caller holds mu.
func (r *FileRepository) save(alarms []domain.Alarm) error {
	stored := make([]record, 0, len(alarms))
	for i := range alarms {
		stored = append(stored, fromDomain(&alarms[i]))
	}

	data, err := json.MarshalIndent(stored, "", "  ")
	if err != nil {
		return fmt.Errorf("encode alarms: %w", err)
	}

	if dir := filepath.Dir(r.path); dir != "." {
		if err = os.MkdirAll(dir, 0o750); err != nil {
			return fmt.Errorf("create alarms directory: %w", err)
		}
	}

	tmp := r.path + ".tmp"
	if err = os.WriteFile(tmp, data, config.DefaultFilePermissions); err != nil {
		return fmt.Errorf("write alarms file: %w", err)
	}

	if err = os.Rename(tmp, r.path); err != nil {
		return fmt.Errorf("replace alarms file: %w", err)
	}

	return nil
}

// uniqueID returns a generated id not used by any stored alarm.
func (r *FileRepository) uniqueID(alarms []domain.Alarm) string {
	for {
		id := r.newID()
		if !slices.ContainsFunc(alarms, func(a domain.Alarm) bool { return a.ID == id }) {
			return id
		}
	}
}

// record is the on-disk shape of an alarm. Missing fields take defaults.
type record struct {
	ID        string `json:"id"`
	Hour      int    `json:"hour"`
	Minute    int    `json:"minute"`
	Label     string `json:"label"`
	Enabled   *bool  `json:"enabled"`
	Vibrate   *bool  `json:"vibrate"`
	SoundFile string `json:"sound_file"`
}

// fromDomain converts an alarm to its on-disk shape.
func fromDomain(a *domain.Alarm) record {
	return record{
		ID:        a.ID,
		Hour:      a.Hour,
		Minute:    a.Minute,
		Label:     a.Label,
		Enabled:   &a.Enabled,
		Vibrate:   &a.Vibrate,
		SoundFile: a.SoundFile,
	}
}

// toDomain applies defaults for missing fields.
func (r *record) toDomain() domain.Alarm {
	a := domain.Alarm{
		ID:        r.ID,
		Hour:      r.Hour,
		Minute:    r.Minute,
		Label:     r.Label,
		Enabled:   r.Enabled == nil || *r.Enabled,
		Vibrate:   r.Vibrate == nil || *r.Vibrate,
		SoundFile: r.SoundFile,
	}

	if strings.TrimSpace(a.Label) == "" {
		a.Label = domain.DefaultLabel
	}

	if a.SoundFile == "" {
		a.SoundFile = domain.DefaultSoundFile
	}

	return a
}

// randomID returns "alarm_" followed by eight random hex characters.
func randomID() string {
	raw := strings.ReplaceAll(uuid.NewString(), "-", "")

	return idPrefix + raw[:idLength]
}
