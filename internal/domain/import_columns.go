package domain

// ColumnKind defines how a cell of the import spreadsheet is parsed
type ColumnKind int

const (
	ColumnText ColumnKind = iota
	ColumnDate
	ColumnCurrency
	ColumnStatus
	ColumnDepositReturn
)

// ImportColumn describes a single column of the booking import spreadsheet
type ImportColumn struct {
	Header   string // Заголовок колонки в шаблоне (видит оператор)
	Field    string // Машинное имя поля для структурированных ошибок
	Kind     ColumnKind
	Required bool
}

// ImportColumns returns the ordered column schema of the booking import.
// Единственный источник правды о колонках: и генератор шаблона, и парсер
// строк обязаны использовать его. Порядок несущий - парсер адресует ячейки
// позиционно, без сопоставления заголовков.
func ImportColumns() []ImportColumn {
	return []ImportColumn{
		{Header: "Дата подтверждения", Field: "confirmed_at", Kind: ColumnDate, Required: true},
		{Header: "Номер брони", Field: "reference", Kind: ColumnText, Required: true},
		{Header: "Клиент", Field: "customer_name", Kind: ColumnText, Required: true},
		{Header: "Телефон", Field: "customer_phone", Kind: ColumnText, Required: false},
		{Header: "Госномер", Field: "license_plate", Kind: ColumnText, Required: true},
		{Header: "Дата выдачи", Field: "pickup_date", Kind: ColumnDate, Required: true},
		{Header: "Место выдачи", Field: "pickup_location", Kind: ColumnText, Required: true},
		{Header: "Дата возврата", Field: "dropoff_date", Kind: ColumnDate, Required: true},
		{Header: "Место возврата", Field: "dropoff_location", Kind: ColumnText, Required: true},
		{Header: "Стоимость", Field: "price", Kind: ColumnCurrency, Required: false},
		{Header: "Залог", Field: "deposit", Kind: ColumnCurrency, Required: false},
		{Header: "Возврат залога", Field: "deposit_return", Kind: ColumnDepositReturn, Required: false},
		{Header: "Статус", Field: "status", Kind: ColumnStatus, Required: false},
		{Header: "Примечания", Field: "notes", Kind: ColumnText, Required: false},
	}
}

// ImportStatusValues допустимые значения колонки "Статус" импортируемой
// таблицы. Сопоставление регистронезависимое, пустая ячейка трактуется
// как StatusConfirmed.
var ImportStatusValues = map[string]BookingStatus{
	"подтверждена": StatusConfirmed,
	"завершена":    StatusCompleted,
	"отменена":     StatusCancelled,
}
