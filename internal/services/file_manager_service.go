package services

import (
	"context"
	"io"

	"whiteboardLabeler/internal/interfaces"
)

type FileManagerService struct {
	fileManager interfaces.FileManager
	bucket      string
}

func NewFileManagerService(fileManager interfaces.FileManager, bucket string) *FileManagerService {
	return &FileManagerService{
		fileManager: fileManager,
		bucket:      bucket,
	}
}

func (fs *FileManagerService) UploadExport(ctx context.Context, fileName string, file io.Reader, fileSize int64) (string, error) {
	return fs.fileManager.UploadFile(ctx, fileName, file, fileSize, "text/csv", fs.bucket)
}
