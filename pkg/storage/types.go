package storage

import (
	"fmt"
	"path"
	"time"
)

type DiskStorage struct {
	Vendor     string
	RootFolder string
}

func NewDiskStorage(vendor, rootFolder string) *DiskStorage {
	return &DiskStorage{
		Vendor:     vendor,
		RootFolder: rootFolder,
	}
}

func (ds *DiskStorage) GetFileName(name string) (string, string) {
	fileName := path.Join(ds.RootFolder, ds.Vendor, name)
	tmpFileName := fileName + ".tmp-" + fmt.Sprintf("%d", time.Now().UnixMilli())
	return fileName, tmpFileName
}
