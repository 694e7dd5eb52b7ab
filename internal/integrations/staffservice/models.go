package staffservice

// Права доступа сотрудников
const (
	PermissionManageFleet    = "fleet:manage"
	PermissionManageBookings = "bookings:manage"
)

// StaffMember модель сотрудника из StaffService
type StaffMember struct {
	ID          int64    `json:"id"`
	FullName    string   `json:"full_name"`
	Role        string   `json:"role"`
	Permissions []string `json:"permissions"`
}

// HasPermission проверяет наличие права доступа у сотрудника
func (m *StaffMember) HasPermission(permission string) bool {
	for _, p := range m.Permissions {
		if p == permission {
			return true
		}
	}
	return false
}

// ErrorResponse модель ошибки от StaffService
type ErrorResponse struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}
