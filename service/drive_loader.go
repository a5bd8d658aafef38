package service

import (
	"context"

	"catalogo-productos/logger"
	"catalogo-productos/models"
)

// DriveSheetLoader loads the catalog from a Google Sheet exported as CSV through Drive
type DriveSheetLoader struct {
	driveService DriveServiceInterface
	sheetID      string
}

// NewDriveSheetLoader creates a new DriveSheetLoader
func NewDriveSheetLoader(driveService DriveServiceInterface, sheetID string) *DriveSheetLoader {
	return &DriveSheetLoader{driveService: driveService, sheetID: sheetID}
}

// Ensure DriveSheetLoader implements ProductLoaderInterface
var _ ProductLoaderInterface = (*DriveSheetLoader)(nil)

// Source returns a drive: identifier of the sheet
func (l *DriveSheetLoader) Source() string { return "drive:" + l.sheetID }

// Load exports the sheet and parses it like any delimited-text export
func (l *DriveSheetLoader) Load(ctx context.Context) ([]models.Product, error) {
	logger.Log.Infof("📥 DriveSheetLoader: exporting sheet %s", l.sheetID)

	data, err := l.driveService.ExportSheetCSV(ctx, l.sheetID)
	if err != nil {
		return nil, &LoadError{Source: l.Source(), Err: err}
	}
	return parseAndReport(l.Source(), data)
}
