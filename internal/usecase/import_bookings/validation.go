package import_bookings

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/m04kA/SMC-FleetService/internal/domain"
)

// validateRequest проверяет базовую корректность запроса
func validateRequest(req *Request) error {
	if req.StaffID <= 0 {
		return fmt.Errorf("%w: staff_id must be positive", ErrInvalidInput)
	}
	if strings.TrimSpace(req.FileName) == "" {
		return fmt.Errorf("%w: file_name is required", ErrInvalidInput)
	}
	if len(req.Data) == 0 {
		return fmt.Errorf("%w: file data is empty", ErrInvalidInput)
	}
	return nil
}

// validateFile выполняет приёмочные проверки файла до разбора содержимого
// Отказ на этой стадии прерывает импорт целиком: ни одна строка не
// обрабатывается.
func validateFile(req *Request) error {
	ext := strings.ToLower(filepath.Ext(req.FileName))

	allowed := false
	for _, a := range domain.AllowedImportExtensions {
		if ext == a {
			allowed = true
			break
		}
	}
	if !allowed {
		return fmt.Errorf("%w: %s", ErrUnsupportedFileType, ext)
	}

	if len(req.Data) > domain.MaxImportFileSizeBytes {
		return fmt.Errorf("%w: %d bytes", ErrFileTooLarge, len(req.Data))
	}

	return nil
}
