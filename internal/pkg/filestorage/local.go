package filestorage

import (
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"github.com/yigit/alumniportal/internal/pkg/logger"
)

var (
	// ErrInvalidPath is returned for references that do not belong to this storage
	ErrInvalidPath = errors.New("invalid file path")
	// ErrUnsupportedFileType is returned for uploads that are not images
	ErrUnsupportedFileType = errors.New("unsupported file type")
)

// imageExtensions are the only extensions stored, so the static media route
// never serves markup or scripts.
var imageExtensions = map[string]bool{
	".jpg":  true,
	".jpeg": true,
	".png":  true,
	".gif":  true,
	".webp": true,
}

// IsImageFilename reports whether name carries an allowed image extension
func IsImageFilename(name string) bool {
	return imageExtensions[strings.ToLower(filepath.Ext(name))]
}

// LocalStorage handles saving files to the local filesystem.
type LocalStorage struct {
	basePath string // root directory on disk
	baseURL  string // URL prefix the basePath is served under, e.g. /media
}

// NewLocalStorage creates a new LocalStorage instance, creating basePath if needed.
func NewLocalStorage(basePath, baseURL string) (*LocalStorage, error) {
	if err := os.MkdirAll(basePath, os.ModePerm); err != nil {
		logger.Error().Err(err).Str("path", basePath).Msg("Failed to create storage directory")
		return nil, fmt.Errorf("failed to create storage directory %s: %w", basePath, err)
	}

	return &LocalStorage{
		basePath: basePath,
		baseURL:  strings.TrimRight(baseURL, "/"),
	}, nil
}

// BasePath returns the storage root on disk
func (ls *LocalStorage) BasePath() string {
	return ls.basePath
}

// SaveFileWithPath saves a file to a subdirectory under a collision-free name
// and returns baseURL/subPath/name.
func (ls *LocalStorage) SaveFileWithPath(fileHeader *multipart.FileHeader, subPath string) (string, error) {
	if fileHeader == nil {
		return "", nil
	}

	if !IsImageFilename(fileHeader.Filename) {
		return "", fmt.Errorf("%w: %s", ErrUnsupportedFileType, fileHeader.Filename)
	}

	subPath = strings.Trim(path.Clean("/"+filepath.ToSlash(subPath)), "/")

	file, err := fileHeader.Open()
	if err != nil {
		logger.Error().Err(err).Str("filename", fileHeader.Filename).Msg("Failed to open uploaded file")
		return "", fmt.Errorf("failed to open uploaded file: %w", err)
	}
	defer file.Close()

	fullDirPath := filepath.Join(ls.basePath, filepath.FromSlash(subPath))
	if err := os.MkdirAll(fullDirPath, os.ModePerm); err != nil {
		logger.Error().Err(err).Str("path", fullDirPath).Msg("Failed to create subdirectory")
		return "", fmt.Errorf("failed to create subdirectory: %w", err)
	}

	ext := strings.ToLower(filepath.Ext(fileHeader.Filename))
	uniqueFilename := uuid.New().String() + ext
	dstPath := filepath.Join(fullDirPath, uniqueFilename)

	dst, err := os.Create(dstPath)
	if err != nil {
		logger.Error().Err(err).Str("path", dstPath).Msg("Failed to create destination file")
		return "", fmt.Errorf("failed to create destination file: %w", err)
	}
	defer dst.Close()

	if _, err = io.Copy(dst, file); err != nil {
		logger.Error().Err(err).Str("path", dstPath).Msg("Failed to copy uploaded file content")
		_ = os.Remove(dstPath)
		return "", fmt.Errorf("failed to save file content: %w", err)
	}

	ref := path.Join(subPath, uniqueFilename)
	if ls.baseURL != "" {
		ref = ls.baseURL + "/" + ref
	}

	logger.Debug().Str("filename", fileHeader.Filename).Str("ref", ref).Msg("File saved")
	return ref, nil
}

// DeleteFile removes a stored file. Missing files are not an error.
func (ls *LocalStorage) DeleteFile(fileRef string) error {
	if fileRef == "" {
		return nil
	}

	physicalPath, err := ls.physicalPath(fileRef)
	if err != nil {
		return err
	}

	if err := os.Remove(physicalPath); err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		logger.Error().Err(err).Str("path", physicalPath).Msg("Failed to delete file")
		return fmt.Errorf("failed to delete file: %w", err)
	}
	return nil
}

// physicalPath maps a reference back to a path inside basePath
func (ls *LocalStorage) physicalPath(fileRef string) (string, error) {
	rel := fileRef
	if ls.baseURL != "" {
		if !strings.HasPrefix(rel, ls.baseURL+"/") {
			return "", fmt.Errorf("%w: %s", ErrInvalidPath, fileRef)
		}
		rel = strings.TrimPrefix(rel, ls.baseURL+"/")
	}

	rel = path.Clean("/" + rel)
	if rel == "/" {
		return "", fmt.Errorf("%w: %s", ErrInvalidPath, fileRef)
	}
	return filepath.Join(ls.basePath, filepath.FromSlash(strings.TrimPrefix(rel, "/"))), nil
}
