package storage

import (
	"compress/gzip"
	"errors"
	"fmt"
	"io"
	"iter"
	"os"
	"path"
	"slices"

	"github.com/charmbracelet/log"
	"github.com/matst80/slask-menu/pkg/common/jsoncompat"
	"github.com/matst80/slask-menu/pkg/types"
)

const itemsFile = "menu.json.gz"
const presetsFile = "presets.json"

func (d *DiskStorage) ensureFolder(fileName string) error {
	return os.MkdirAll(path.Dir(fileName), 0o755)
}

func (d *DiskStorage) Exists(name string) bool {
	fileName, _ := d.GetFileName(name)
	f, err := os.Stat(fileName)
	return err == nil && !f.IsDir()
}

// writeAtomic writes through a temp file that is renamed into place, a failed
// write never leaves a half written file behind.
func (d *DiskStorage) writeAtomic(name string, write func(w io.Writer) error) error {
	fileName, tmpFileName := d.GetFileName(name)
	if err := d.ensureFolder(fileName); err != nil {
		return err
	}
	file, err := os.Create(tmpFileName)
	if err != nil {
		return err
	}
	if err = write(file); err != nil {
		_ = file.Close()
		_ = os.Remove(tmpFileName)
		return err
	}
	if err = file.Close(); err != nil {
		_ = os.Remove(tmpFileName)
		return err
	}
	if err = os.Rename(tmpFileName, fileName); err != nil {
		_ = os.Remove(tmpFileName)
		return err
	}
	return nil
}

func (d *DiskStorage) SaveGzippedJson(data any, name string) error {
	return d.writeAtomic(name, func(w io.Writer) error {
		zipWriter := gzip.NewWriter(w)
		if err := jsoncompat.NewEncoder(zipWriter).Encode(data); err != nil {
			_ = zipWriter.Close()
			return err
		}
		return zipWriter.Close()
	})
}

func (d *DiskStorage) LoadGzippedJson(data any, name string) error {
	fileName, _ := d.GetFileName(name)
	file, err := os.Open(fileName)
	if err != nil {
		return err
	}
	defer file.Close()

	zipReader, err := gzip.NewReader(file)
	if err != nil {
		return fmt.Errorf("open %s: %w", name, err)
	}
	defer zipReader.Close()

	err = jsoncompat.NewDecoder(zipReader).Decode(data)
	if err != nil && !errors.Is(err, io.EOF) {
		return fmt.Errorf("decode %s: %w", name, err)
	}
	return nil
}

func (d *DiskStorage) SaveJson(data any, name string) error {
	return d.writeAtomic(name, func(w io.Writer) error {
		return jsoncompat.NewEncoder(w).Encode(data)
	})
}

func (d *DiskStorage) LoadJson(data any, name string) error {
	fileName, _ := d.GetFileName(name)
	file, err := os.Open(fileName)
	if err != nil {
		return err
	}
	defer file.Close()

	err = jsoncompat.NewDecoder(file).Decode(data)
	if err != nil && !errors.Is(err, io.EOF) {
		return fmt.Errorf("decode %s: %w", name, err)
	}
	return nil
}

func (d *DiskStorage) SaveItems(items iter.Seq[types.MenuItem]) error {
	toStore := slices.Collect(items)
	log.Debug("saving menu snapshot", "items", len(toStore), "vendor", d.Vendor)
	return d.SaveGzippedJson(toStore, itemsFile)
}

// LoadItems reads the menu snapshot and hands it to every handler. A missing
// snapshot is reported as os.ErrNotExist.
func (d *DiskStorage) LoadItems(handlers ...types.ItemHandler) error {
	items := make([]types.MenuItem, 0)
	if err := d.LoadGzippedJson(&items, itemsFile); err != nil {
		return err
	}
	log.Info("loaded menu snapshot", "items", len(items), "vendor", d.Vendor)
	for _, h := range handlers {
		h.HandleItems(slices.Values(items))
	}
	return nil
}

func (d *DiskStorage) SavePresets(presets any) error {
	return d.SaveJson(presets, presetsFile)
}

func (d *DiskStorage) LoadPresets(output any) error {
	if !d.Exists(presetsFile) {
		return nil
	}
	return d.LoadJson(output, presetsFile)
}
