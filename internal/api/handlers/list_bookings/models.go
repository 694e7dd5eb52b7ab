package list_bookings

import (
	"strconv"

	"github.com/m04kA/SMC-FleetService/internal/service/bookings/models"
)

// ToServiceRequest формирует запрос к сервису из query параметров
func ToServiceRequest(
	staffID int64,
	statusStr string,
	licensePlateStr string,
	referenceStr string,
	pickupFromStr string,
	pickupToStr string,
	limitStr string,
	offsetStr string,
) (*models.ListBookingsRequest, error) {
	req := &models.ListBookingsRequest{
		StaffID: staffID,
	}

	if statusStr != "" {
		req.Status = &statusStr
	}
	if licensePlateStr != "" {
		req.LicensePlate = &licensePlateStr
	}
	if referenceStr != "" {
		req.Reference = &referenceStr
	}

	// Даты периода выдачи проверяет сервис, здесь передаются как есть
	if pickupFromStr != "" {
		req.PickupFrom = &pickupFromStr
	}
	if pickupToStr != "" {
		req.PickupTo = &pickupToStr
	}

	if limitStr != "" {
		limit, err := strconv.ParseUint(limitStr, 10, 64)
		if err != nil {
			return nil, err
		}
		req.Limit = limit
	}
	if offsetStr != "" {
		offset, err := strconv.ParseUint(offsetStr, 10, 64)
		if err != nil {
			return nil, err
		}
		req.Offset = offset
	}

	return req, nil
}
