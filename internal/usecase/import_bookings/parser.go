package import_bookings

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/m04kA/SMC-FleetService/internal/domain"
)

// referencePlaceholder подставляется в отчёт, когда номер брони не читается
const referencePlaceholder = "—"

// parseGrid разбирает грид первого листа на типизированные брони и
// построчные отказы. Строка 1 - заголовок, данные начинаются со строки 2.
// Номера строк физические (1-based) и сохраняются сквозь все стадии импорта.
// Полностью пустые строки пропускаются без исхода и не сдвигают нумерацию.
func parseGrid(grid [][]string) ([]parsedRow, []rowFailure) {
	columns := domain.ImportColumns()

	parsed := make([]parsedRow, 0, len(grid))
	failures := make([]rowFailure, 0)

	for i, cells := range grid {
		rowNum := i + 1
		if rowNum == 1 {
			continue
		}
		if isBlankRow(cells) {
			continue
		}

		booking, failure := parseRow(rowNum, cells, columns)
		if failure != nil {
			failures = append(failures, *failure)
			continue
		}
		parsed = append(parsed, parsedRow{row: rowNum, booking: booking})
	}

	return parsed, failures
}

// parseRow разбирает одну строку данных по колонкам ImportColumns
// Колонки проверяются слева направо, первый отказ завершает разбор строки:
// на строку приходится не более одной ошибки.
func parseRow(rowNum int, cells []string, columns []domain.ImportColumn) (*domain.Booking, *rowFailure) {
	booking := &domain.Booking{Status: domain.StatusConfirmed}

	for idx, col := range columns {
		raw := cellAt(cells, idx)

		if raw == "" {
			if col.Required {
				return nil, failureAt(rowNum, col.Field, cells,
					fmt.Sprintf("не заполнено обязательное поле «%s»", col.Header))
			}
			continue
		}

		switch col.Kind {
		case domain.ColumnDate:
			date, err := parseStrictDate(raw)
			if err != nil {
				return nil, failureAt(rowNum, col.Field, cells,
					fmt.Sprintf("поле «%s»: дата должна быть в формате ДД/ММ/ГГГГ", col.Header))
			}
			setDateField(booking, col.Field, date)

		case domain.ColumnCurrency:
			amount, err := parseCurrency(raw)
			if err != nil {
				return nil, failureAt(rowNum, col.Field, cells,
					fmt.Sprintf("поле «%s»: сумма должна быть неотрицательным числом", col.Header))
			}
			setCurrencyField(booking, col.Field, amount)

		case domain.ColumnStatus:
			status, ok := domain.ImportStatusValues[strings.ToLower(raw)]
			if !ok {
				return nil, failureAt(rowNum, col.Field, cells,
					fmt.Sprintf("поле «%s»: недопустимое значение «%s»", col.Header, raw))
			}
			booking.Status = status

		case domain.ColumnDepositReturn:
			// Полиморфная ячейка: строгая дата либо произвольная пометка,
			// отказом не бывает
			booking.DepositReturn = parseDepositReturn(raw)

		default:
			setTextField(booking, col.Field, raw)
		}
	}

	return booking, nil
}

// parseStrictDate разбирает дату строго в формате ДД/ММ/ГГГГ
// time.Parse принимает и однозначные день/месяц, поэтому двузначность
// обеспечивается проверкой длины.
func parseStrictDate(s string) (time.Time, error) {
	if len(s) != len(domain.ImportDateFormat) {
		return time.Time{}, fmt.Errorf("date %q does not match format", s)
	}
	return time.Parse(domain.ImportDateFormat, s)
}

// parseCurrency разбирает денежную сумму
// Запятая допускается как десятичный разделитель, пробелы (включая
// неразрывные) - как разделители разрядов. Отрицательные значения и NaN
// недопустимы.
func parseCurrency(s string) (float64, error) {
	cleaned := strings.NewReplacer(" ", "", " ", "", ",", ".").Replace(s)

	value, err := strconv.ParseFloat(cleaned, 64)
	if err != nil {
		return 0, fmt.Errorf("amount %q is not a number", s)
	}
	if math.IsNaN(value) || math.IsInf(value, 0) || value < 0 {
		return 0, fmt.Errorf("amount %q is out of range", s)
	}

	return value, nil
}

// parseDepositReturn разбирает ячейку «Возврат залога»
// Значение, читающееся как строгая дата, трактуется как дата возврата,
// любое другое непустое значение - как пометка оператора.
func parseDepositReturn(raw string) domain.DepositReturn {
	if date, err := parseStrictDate(raw); err == nil {
		return domain.DepositReturnedOn(date)
	}
	return domain.DepositReturnNote(raw)
}

// setDateField записывает разобранную дату в поле брони по ключу колонки
func setDateField(b *domain.Booking, field string, value time.Time) {
	switch field {
	case "confirmed_at":
		b.ConfirmedAt = value
	case "pickup_date":
		b.PickupDate = value
	case "dropoff_date":
		b.DropoffDate = value
	}
}

// setCurrencyField записывает разобранную сумму в поле брони по ключу колонки
func setCurrencyField(b *domain.Booking, field string, value float64) {
	switch field {
	case "price":
		b.Price = value
	case "deposit":
		b.Deposit = value
	}
}

// setTextField записывает текстовое значение в поле брони по ключу колонки
func setTextField(b *domain.Booking, field string, value string) {
	switch field {
	case "reference":
		b.Reference = value
	case "customer_name":
		b.CustomerName = value
	case "customer_phone":
		phone := value
		b.CustomerPhone = &phone
	case "license_plate":
		b.LicensePlate = value
	case "pickup_location":
		b.PickupLocation = value
	case "dropoff_location":
		b.DropoffLocation = value
	case "notes":
		notes := value
		b.Notes = &notes
	}
}

// failureAt собирает отказ строки, дочитывая номер брони для адресации
func failureAt(rowNum int, field string, cells []string, message string) *rowFailure {
	return &rowFailure{
		row:       rowNum,
		field:     field,
		reference: bestEffortReference(cells),
		message:   message,
	}
}

// bestEffortReference вытаскивает номер брони из строки для отчёта об ошибках
// Ошибка в другом поле не мешает прочитать номер; пустая или отсутствующая
// ячейка даёт плейсхолдер «—».
func bestEffortReference(cells []string) string {
	for idx, col := range domain.ImportColumns() {
		if col.Field == "reference" {
			if ref := cellAt(cells, idx); ref != "" {
				return ref
			}
			break
		}
	}
	return referencePlaceholder
}

// cellAt возвращает ячейку строки по индексу колонки
// Хвостовые пустые ячейки excelize отбрасывает, поэтому выход за длину
// строки равносилен пустой ячейке.
func cellAt(cells []string, idx int) string {
	if idx >= len(cells) {
		return ""
	}
	return strings.TrimSpace(cells[idx])
}

// isBlankRow определяет полностью пустую строку
func isBlankRow(cells []string) bool {
	for _, c := range cells {
		if strings.TrimSpace(c) != "" {
			return false
		}
	}
	return true
}
