package get_import_template

// Request модель запроса на получение шаблона импорта
type Request struct {
	StaffID int64 // ID сотрудника, запросившего шаблон
}

// Response готовый шаблон
type Response struct {
	FileName string // Имя файла с текущей датой
	Data     []byte // Содержимое книги xlsx
}
