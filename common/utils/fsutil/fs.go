package fsutil

import (
	"os"
	"path/filepath"

	"github.com/gabriel-vasile/mimetype"
	"github.com/rs/xid"
)

const defaultMIME = "application/octet-stream"

// DetectMIME sniffs the content type of the file at fp.
func DetectMIME(fp string) string {
	mt, err := mimetype.DetectFile(fp)
	if err != nil {
		return defaultMIME
	}
	return mt.String()
}

type File struct {
	*os.File
}

func (f *File) Remove() error {
	return os.Remove(f.Name())
}

func (f *File) CloseAndRemove() error {
	if err := f.Close(); err != nil {
		os.Remove(f.Name())
		return err
	}
	return f.Remove()
}

// CloseAndRename closes f and moves it over target. f is removed when
// either step fails.
func (f *File) CloseAndRename(target string) error {
	if err := f.Close(); err != nil {
		os.Remove(f.Name())
		return err
	}
	if err := os.Rename(f.Name(), target); err != nil {
		os.Remove(f.Name())
		return err
	}
	return nil
}

func CreateFile(fp string) (*File, error) {
	if err := os.MkdirAll(filepath.Dir(fp), os.ModePerm); err != nil {
		return nil, err
	}
	file, err := os.Create(fp)
	if err != nil {
		return nil, err
	}
	return &File{File: file}, nil
}

// CreatePartFile creates a hidden sibling of target, ".<name>.<id>.part", to
// write into before it replaces target.
func CreatePartFile(target string) (*File, error) {
	dir, name := filepath.Split(target)
	return CreateFile(filepath.Join(dir, "."+name+"."+xid.New().String()+".part"))
}
