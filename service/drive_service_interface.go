package service

import "context"

// DriveServiceInterface defines the contract for Google Drive operations
type DriveServiceInterface interface {
	ExportSheetCSV(ctx context.Context, fileID string) ([]byte, error)
	DownloadImage(ctx context.Context, fileID string) ([]byte, error)
}
