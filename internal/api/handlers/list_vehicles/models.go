package list_vehicles

import (
	"strconv"

	"github.com/m04kA/SMC-FleetService/internal/service/vehicles/models"
)

// ToServiceRequest формирует запрос к сервису из query параметров
func ToServiceRequest(
	staffID int64,
	groupIDStr string,
	statusStr string,
	limitStr string,
	offsetStr string,
) (*models.ListVehiclesRequest, error) {
	req := &models.ListVehiclesRequest{
		StaffID: staffID,
	}

	if groupIDStr != "" {
		groupID, err := strconv.ParseInt(groupIDStr, 10, 64)
		if err != nil {
			return nil, err
		}
		req.GroupID = &groupID
	}

	if statusStr != "" {
		req.Status = &statusStr
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
