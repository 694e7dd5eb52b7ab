package import_bookings

import "errors"

var (
	// ErrAccessDenied возвращается, когда у сотрудника нет прав на импорт
	ErrAccessDenied = errors.New("import_bookings: access denied")

	// ErrUnsupportedFileType возвращается при недопустимом расширении файла
	ErrUnsupportedFileType = errors.New("import_bookings: unsupported file type")

	// ErrFileTooLarge возвращается, когда файл превышает допустимый размер
	ErrFileTooLarge = errors.New("import_bookings: file is too large")

	// ErrFileNotParsable возвращается, когда файл не удаётся прочитать как таблицу
	// Отличается от импорта, в котором все строки не прошли валидацию:
	// тот завершается обычным итогом с ошибками по строкам
	ErrFileNotParsable = errors.New("import_bookings: file is not parsable")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("import_bookings: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("import_bookings: internal error")
)
