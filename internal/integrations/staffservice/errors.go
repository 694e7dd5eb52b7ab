package staffservice

import "errors"

var (
	// ErrStaffMemberNotFound возвращается, когда сотрудник не найден
	ErrStaffMemberNotFound = errors.New("staff member not found")

	// ErrInternal возвращается при внутренних ошибках клиента
	ErrInternal = errors.New("staffservice client: internal error")

	// ErrInvalidResponse возвращается при некорректном ответе от сервиса
	ErrInvalidResponse = errors.New("staffservice client: invalid response")
)
