package get_import_template

import (
	"context"

	getImportTemplate "github.com/m04kA/SMC-FleetService/internal/usecase/get_import_template"
)

type GetImportTemplateUseCase interface {
	Execute(ctx context.Context, req *getImportTemplate.Request) (*getImportTemplate.Response, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
