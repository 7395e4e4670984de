package filestorage

import (
	"mime/multipart"
)

// FileStorage defines the interface for media storage operations
type FileStorage interface {
	// SaveFileWithPath stores the upload under subPath and returns its public reference
	SaveFileWithPath(fileHeader *multipart.FileHeader, subPath string) (string, error)

	// DeleteFile removes a file previously returned by SaveFileWithPath
	DeleteFile(fileRef string) error
}
