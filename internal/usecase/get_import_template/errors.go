package get_import_template

import "errors"

var (
	// ErrAccessDenied возвращается, когда у сотрудника нет прав на управление парком
	ErrAccessDenied = errors.New("get_import_template: access denied")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("get_import_template: invalid input data")

	// ErrInternal возвращается при внутренних ошибках
	ErrInternal = errors.New("get_import_template: internal error")
)
