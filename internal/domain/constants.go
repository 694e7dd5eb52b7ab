package domain

// Time format constants
const (
	DateFormat       = "2006-01-02" // YYYY-MM-DD (API и хранилище)
	ImportDateFormat = "02/01/2006" // ДД/ММ/ГГГГ (ячейки импортируемых таблиц)
)

// Import file constraints
const (
	MaxImportFileSizeBytes = 10 << 20 // 10 MiB
)

// AllowedImportExtensions расширения файлов, принимаемые импортом броней
var AllowedImportExtensions = []string{".xlsx", ".xlsm"}

// Business validation constants
const (
	MaxReferenceLength    = 64
	MaxCustomerNameLength = 200
	MaxPhoneLength        = 32
	MaxLicensePlateLength = 16
	MaxLocationLength     = 200
	MaxNotesLength        = 500
	MaxGroupNameLength    = 100

	MinVehicleYear = 1950
)

// ActiveBookingStatuses список статусов броней, занимающих автомобиль
// Используется при проверках перед удалением автомобиля из парка
var ActiveBookingStatuses = []BookingStatus{
	StatusConfirmed,
	StatusActive,
}
