package import_bookings

import "github.com/m04kA/SMC-FleetService/internal/domain"

// Request модель запроса на импорт броней из файла
type Request struct {
	StaffID  int64  // ID сотрудника, выполняющего импорт
	FileName string // Имя загруженного файла (по нему проверяется расширение)
	Data     []byte // Содержимое файла
}

// ImportError одна ошибка импорта, адресуемая физическим номером строки файла
type ImportError struct {
	Row       int    // Номер строки в файле (1-based, заголовок = строка 1)
	Reference string // Номер брони из строки, «—» если ячейка не читается
	Message   string // Человекочитаемое описание ошибки
}

// Response итог импорта
// Сумма SuccessCount и FailedCount равна числу непустых строк данных файла.
// Итог не сохраняется: клиент при необходимости сразу выгружает отчёт об
// ошибках через export_import_errors.
type Response struct {
	SuccessCount int           // Строки, дошедшие до хранилища
	FailedCount  int           // Строки, отклонённые разбором или хранилищем
	Errors       []ImportError // Отсортированы по номеру строки
}

// parsedRow успешно разобранная строка файла
type parsedRow struct {
	row     int
	booking *domain.Booking
}

// rowFailure отказ обработки одной строки (разбор или фиксация)
type rowFailure struct {
	row       int
	field     string
	reference string
	message   string
}
