package export_import_errors

import (
	"context"

	exportImportErrors "github.com/m04kA/SMC-FleetService/internal/usecase/export_import_errors"
)

type ExportImportErrorsUseCase interface {
	Execute(ctx context.Context, req *exportImportErrors.Request) (*exportImportErrors.Response, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
