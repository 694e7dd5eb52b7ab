package domain

import "time"

// DepositReturn describes what happened to the booking deposit.
// Ровно одно из полей заполнено: дата фактического возврата либо
// произвольная пометка оператора ("ожидает получения"). Пустое значение -
// залог ещё не возвращён и пометок нет.
type DepositReturn struct {
	Date *time.Time
	Note *string
}

// DepositReturnedOn returns a DepositReturn carrying the actual return date
func DepositReturnedOn(date time.Time) DepositReturn {
	return DepositReturn{Date: &date}
}

// DepositReturnNote returns a DepositReturn carrying a free-form operator note
func DepositReturnNote(note string) DepositReturn {
	return DepositReturn{Note: &note}
}

// IsZero returns true if neither a date nor a note is set
func (d DepositReturn) IsZero() bool {
	return d.Date == nil && d.Note == nil
}

// IsDate returns true if the deposit was returned on a known date
func (d DepositReturn) IsDate() bool {
	return d.Date != nil
}

// String renders the value the way it appears in spreadsheets:
// дата в формате ДД/ММ/ГГГГ, пометка как есть, пустая строка для нулевого значения.
func (d DepositReturn) String() string {
	switch {
	case d.Date != nil:
		return d.Date.Format(ImportDateFormat)
	case d.Note != nil:
		return *d.Note
	default:
		return ""
	}
}
