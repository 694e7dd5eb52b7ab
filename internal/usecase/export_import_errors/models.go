package export_import_errors

// Request модель запроса на выгрузку отчёта об ошибках импорта
// Итог импорта не сохраняется на сервере, поэтому список ошибок
// приходит от клиента целиком.
type Request struct {
	StaffID int64
	Errors  []ImportError
}

// ImportError одна ошибка импорта в отчёте
type ImportError struct {
	Row       int    // Номер строки исходного файла
	Reference string // Номер брони, «—» если не читается
	Message   string // Описание ошибки
}

// Response готовый отчёт
type Response struct {
	FileName string // Имя файла с текущей датой
	Data     []byte // Содержимое книги xlsx
}
