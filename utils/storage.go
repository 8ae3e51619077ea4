package utils

import (
	"fmt"
	"io"
	"mime/multipart"
	"os"
	"path/filepath"
)

// PictureStore persists an uploaded image and returns its public URL.
type PictureStore interface {
	Save(fileHeader *multipart.FileHeader, filename string) (string, error)
}

// LocalPictureStore writes uploads to disk; files are served back through
// the static /uploads route.
type LocalPictureStore struct {
	Dir string
}

func NewLocalPictureStore(dir string) (*LocalPictureStore, error) {
	if err := os.MkdirAll(dir, os.ModePerm); err != nil {
		return nil, fmt.Errorf("failed to create upload dir %s: %w", dir, err)
	}
	return &LocalPictureStore{Dir: dir}, nil
}

func (l *LocalPictureStore) Save(fileHeader *multipart.FileHeader, filename string) (string, error) {
	destPath := filepath.Join(l.Dir, filename)

	file, err := fileHeader.Open()
	if err != nil {
		return "", err
	}
	defer file.Close()

	dst, err := os.Create(destPath)
	if err != nil {
		return "", err
	}
	defer dst.Close()

	if _, err := io.Copy(dst, file); err != nil {
		return "", err
	}

	return "/uploads/profile-pictures/" + filename, nil
}
