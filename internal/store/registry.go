package store

import (
	"fmt"
	"log/slog"
	"regexp"
	"sort"
	"sync"

	"github.com/google/uuid"

	"github.com/agenthands/chronicle/internal/core/model"
	"github.com/agenthands/chronicle/internal/driver"
)

var campaignIDPattern = regexp.MustCompile(`^[A-Za-z0-9_-]{1,64}$`)

// Registry owns the campaigns under a driver root, one directory each, and
// tracks which one is being played. It hands out a single Store per campaign
// so that all callers share that campaign's lock.
type Registry struct {
	driver driver.Driver
	logger *slog.Logger
	opts   []Option
	newID  func() string

	mu      sync.Mutex
	stores  map[string]*Store
	current string
}

func NewRegistry(d driver.Driver, logger *slog.Logger, opts ...Option) *Registry {
	if logger == nil {
		logger = slog.Default()
	}
	return &Registry{
		driver: d,
		logger: logger,
		opts:   opts,
		newID:  uuid.NewString,
		stores: make(map[string]*Store),
	}
}

func (r *Registry) handle(id string) *Store {
	if s, ok := r.stores[id]; ok {
		return s
	}
	s := New(r.driver, id, id, r.logger, r.opts...)
	r.stores[id] = s
	return s
}

// Create initializes a new campaign under a fresh id and makes it current.
func (r *Registry) Create(init CampaignInit) (*Store, model.CampaignMetadata, error) {
	if err := init.Validate(); err != nil {
		return nil, model.CampaignMetadata{}, fmt.Errorf("%w: %v", ErrValidation, err)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	id := r.newID()
	s := r.handle(id)
	meta, err := s.InitNewCampaign(init)
	if err != nil {
		delete(r.stores, id)
		return nil, model.CampaignMetadata{}, err
	}
	r.current = id
	r.logger.Info("campaign created", "campaign", id, "name", meta.Name)
	return s, meta, nil
}

// Open returns the handle of an existing campaign.
func (r *Registry) Open(id string) (*Store, error) {
	if !campaignIDPattern.MatchString(id) {
		return nil, notFound("campaign", id)
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.open(id)
}

func (r *Registry) open(id string) (*Store, error) {
	s := r.handle(id)
	if !s.Exists() {
		delete(r.stores, id)
		return nil, notFound("campaign", id)
	}
	return s, nil
}

// Load makes an existing campaign current and stamps it as played.
func (r *Registry) Load(id string) (*Store, error) {
	s, err := r.Open(id)
	if err != nil {
		return nil, err
	}
	if err := s.UpdateLastPlayed(); err != nil {
		return nil, err
	}
	r.mu.Lock()
	r.current = id
	r.mu.Unlock()
	r.logger.Info("campaign loaded", "campaign", id)
	return s, nil
}

// Current returns the campaign being played. With none selected it resumes
// the most recently played campaign.
func (r *Registry) Current() (*Store, error) {
	r.mu.Lock()
	id := r.current
	r.mu.Unlock()
	if id != "" {
		return r.Open(id)
	}

	metas, err := r.List()
	if err != nil {
		return nil, err
	}
	if len(metas) == 0 {
		return nil, fmt.Errorf("no campaign: %w", ErrNotFound)
	}
	return r.Load(metas[0].ID)
}

// List returns the metadata of every campaign, most recently played first.
// Directories without readable metadata are skipped.
func (r *Registry) List() ([]model.CampaignMetadata, error) {
	dirs, err := r.driver.ListDirs("")
	if err != nil {
		return nil, fmt.Errorf("failed to list campaigns: %w", err)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	metas := []model.CampaignMetadata{}
	for _, id := range dirs {
		if !campaignIDPattern.MatchString(id) {
			continue
		}
		s, err := r.open(id)
		if err != nil {
			continue
		}
		meta, err := s.Metadata()
		if err != nil {
			r.logger.Warn("skipping campaign with unreadable metadata", "campaign", id, "error", err)
			continue
		}
		metas = append(metas, meta)
	}
	sort.SliceStable(metas, func(i, j int) bool {
		return metas[i].LastPlayed.After(metas[j].LastPlayed)
	})
	return metas, nil
}

// Delete removes a campaign directory. Deleting the current campaign clears
// the selection.
func (r *Registry) Delete(id string) error {
	if !campaignIDPattern.MatchString(id) {
		return notFound("campaign", id)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	s, err := r.open(id)
	if err != nil {
		return err
	}
	s.mu.Lock()
	err = r.driver.RemoveAll(id)
	s.mu.Unlock()
	if err != nil {
		return fmt.Errorf("failed to delete campaign: %w", err)
	}
	delete(r.stores, id)
	if r.current == id {
		r.current = ""
	}
	r.logger.Info("campaign deleted", "campaign", id)
	return nil
}
