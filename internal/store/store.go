package store

import (
	"context"
	"errors"

	"github.com/me/slicecfg/pkg/model"
)

var (
	// ErrNotFound is returned by Update and Delete when the profile does not exist.
	ErrNotFound = errors.New("profile not found")
	// ErrDuplicateName is returned when another profile already uses the name.
	ErrDuplicateName = errors.New("profile name already exists")
)

// Store defines the persistence layer for slicer profiles.
type Store interface {
	// Profile CRUD
	CreateProfile(ctx context.Context, p *model.Profile) error
	GetProfile(ctx context.Context, id string) (*model.Profile, error)
	GetProfileByName(ctx context.Context, name string) (*model.Profile, error)
	ListProfiles(ctx context.Context, opts model.ListOptions) ([]*model.Profile, int, error)
	UpdateProfile(ctx context.Context, p *model.Profile) error
	DeleteProfile(ctx context.Context, id string) error

	// Lifecycle
	Close() error
	Migrate(ctx context.Context) error
}
