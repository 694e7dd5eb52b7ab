package export_import_errors

import "errors"

var (
	// ErrAccessDenied возвращается, когда у сотрудника нет прав на управление парком
	ErrAccessDenied = errors.New("export_import_errors: access denied")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("export_import_errors: invalid input data")

	// ErrInternal возвращается при внутренних ошибках
	ErrInternal = errors.New("export_import_errors: internal error")
)
