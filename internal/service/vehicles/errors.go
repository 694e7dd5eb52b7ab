package vehicles

import "errors"

var (
	// ErrVehicleNotFound возвращается, когда автомобиль не найден
	ErrVehicleNotFound = errors.New("vehicle not found")

	// ErrGroupNotFound возвращается, когда группа автопарка не найдена
	ErrGroupNotFound = errors.New("vehicle group not found")

	// ErrVehicleAlreadyExists возвращается при дублировании госномера
	ErrVehicleAlreadyExists = errors.New("vehicle with this license plate already exists")

	// ErrVehicleHasActiveBookings возвращается при попытке удалить автомобиль с активными бронями
	ErrVehicleHasActiveBookings = errors.New("vehicle has active bookings")

	// ErrAccessDenied возвращается, когда у сотрудника нет прав доступа
	ErrAccessDenied = errors.New("access denied")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("invalid input data")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("service: internal error")
)
