package import_bookings

import (
	"errors"
	"io"
	"net/http"

	"github.com/m04kA/SMC-FleetService/internal/api/handlers"
	"github.com/m04kA/SMC-FleetService/internal/api/middleware"
	"github.com/m04kA/SMC-FleetService/internal/domain"
	importBookings "github.com/m04kA/SMC-FleetService/internal/usecase/import_bookings"
)

const (
	// importFileField имя поля multipart формы с файлом
	importFileField = "file"

	// multipartMemoryLimit порог, после которого multipart уходит во временные файлы
	multipartMemoryLimit = 10 << 20
)

const (
	msgMissingUserID   = "отсутствует ID пользователя"
	msgInvalidForm     = "некорректный multipart запрос"
	msgMissingFile     = "в запросе нет файла в поле file"
	msgForbidden       = "доступ запрещен"
	msgUnsupportedType = "недопустимый тип файла, ожидается .xlsx или .xlsm"
	msgFileTooLarge    = "файл превышает допустимый размер 10 МБ"
	msgNotParsable     = "не удалось прочитать файл как книгу xlsx"
	msgInvalidRequest  = "некорректный запрос"
)

type Handler struct {
	useCase ImportBookingsUseCase
	logger  Logger
}

func NewHandler(useCase ImportBookingsUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/fleet/bookings/import
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	// Получаем userID из контекста (через middleware Auth)
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("POST /fleet/bookings/import - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	// Ограничиваем чтение тела: допустимый файл плюс запас на рамки multipart
	r.Body = http.MaxBytesReader(w, r.Body, domain.MaxImportFileSizeBytes+1<<20)

	if err := r.ParseMultipartForm(multipartMemoryLimit); err != nil {
		var maxBytesErr *http.MaxBytesError
		if errors.As(err, &maxBytesErr) {
			h.logger.Warn("POST /fleet/bookings/import - Request body too large: user_id=%d", userID)
			handlers.RespondBadRequest(w, msgFileTooLarge)
			return
		}
		h.logger.Warn("POST /fleet/bookings/import - Invalid multipart form: %v", err)
		handlers.RespondBadRequest(w, msgInvalidForm)
		return
	}

	file, header, err := r.FormFile(importFileField)
	if err != nil {
		h.logger.Warn("POST /fleet/bookings/import - Missing file field: %v", err)
		handlers.RespondBadRequest(w, msgMissingFile)
		return
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		h.logger.Error("POST /fleet/bookings/import - Failed to read file: %v", err)
		handlers.RespondInternalError(w)
		return
	}

	// Запускаем импорт
	result, err := h.useCase.Execute(r.Context(), &importBookings.Request{
		StaffID:  userID,
		FileName: header.Filename,
		Data:     data,
	})
	if err != nil {
		switch {
		case errors.Is(err, importBookings.ErrAccessDenied):
			h.logger.Warn("POST /fleet/bookings/import - Access denied: user_id=%d", userID)
			handlers.RespondForbidden(w, msgForbidden)

		case errors.Is(err, importBookings.ErrUnsupportedFileType):
			h.logger.Warn("POST /fleet/bookings/import - Unsupported file type: file=%s", header.Filename)
			handlers.RespondBadRequest(w, msgUnsupportedType)

		case errors.Is(err, importBookings.ErrFileTooLarge):
			h.logger.Warn("POST /fleet/bookings/import - File too large: file=%s, size=%d",
				header.Filename, len(data))
			handlers.RespondBadRequest(w, msgFileTooLarge)

		case errors.Is(err, importBookings.ErrFileNotParsable):
			h.logger.Warn("POST /fleet/bookings/import - File not parsable: file=%s", header.Filename)
			handlers.RespondBadRequest(w, msgNotParsable)

		case errors.Is(err, importBookings.ErrInvalidInput):
			h.logger.Warn("POST /fleet/bookings/import - Invalid request: %v", err)
			handlers.RespondBadRequest(w, msgInvalidRequest)

		default:
			h.logger.Error("POST /fleet/bookings/import - Import failed: user_id=%d, error=%v", userID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /fleet/bookings/import - Import finished: user_id=%d, file=%s, success=%d, failed=%d",
		userID, header.Filename, result.SuccessCount, result.FailedCount)
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}
