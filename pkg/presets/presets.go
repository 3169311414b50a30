package presets

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/matst80/slask-menu/pkg/types"
)

var ErrNotFound = errors.New("preset not found")

var validate = validator.New()

// Preset is a named, saved filter request, like "Vegetarian under 100".
type Preset struct {
	Name      string              `json:"name" validate:"required,max=64,excludesall=/?#"`
	Request   types.FilterRequest `json:"request"`
	CreatedAt time.Time           `json:"createdAt"`
	UpdatedAt time.Time           `json:"updatedAt"`
}

func NewPreset(name string, request types.FilterRequest) (Preset, error) {
	now := time.Now().UTC()
	request.Sanitize()
	p := Preset{
		Name:      strings.TrimSpace(name),
		Request:   request,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := p.Validate(); err != nil {
		return Preset{}, err
	}
	return p, nil
}

func (p *Preset) Validate() error {
	if err := validate.Struct(p); err != nil {
		return fmt.Errorf("invalid preset %q: %w", p.Name, err)
	}
	return nil
}

type Store interface {
	Save(ctx context.Context, preset Preset) error
	Get(ctx context.Context, name string) (Preset, error)
	List(ctx context.Context) ([]Preset, error)
	Delete(ctx context.Context, name string) error
}

// merge keeps the creation time of an already stored preset.
func merge(existing *Preset, preset Preset) Preset {
	if existing != nil && !existing.CreatedAt.IsZero() {
		preset.CreatedAt = existing.CreatedAt
	}
	if preset.UpdatedAt.IsZero() {
		preset.UpdatedAt = time.Now().UTC()
	}
	if preset.CreatedAt.IsZero() {
		preset.CreatedAt = preset.UpdatedAt
	}
	return preset
}
