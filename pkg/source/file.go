package source

import (
	"context"
	"fmt"
	"os"

	"github.com/matst80/slask-menu/pkg/common/jsoncompat"
	"github.com/matst80/slask-menu/pkg/types"
)

type FileSource struct {
	Path string
}

func NewFileSource(path string) *FileSource {
	return &FileSource{Path: path}
}

func (f *FileSource) Load(ctx context.Context) ([]types.MenuItem, error) {
	data, err := os.ReadFile(f.Path)
	if err != nil {
		return nil, err
	}
	var raw any
	if err = jsoncompat.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("parse %s: %w", f.Path, err)
	}
	return ToMenuItems(raw)
}
