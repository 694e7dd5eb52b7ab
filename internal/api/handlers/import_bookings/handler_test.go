package import_bookings

import (
	"bytes"
	"context"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-FleetService/internal/api/middleware"
	importBookings "github.com/m04kA/SMC-FleetService/internal/usecase/import_bookings"
)

type fakeUseCase struct {
	gotRequest *importBookings.Request
	response   *importBookings.Response
	err        error
}

func (f *fakeUseCase) Execute(_ context.Context, req *importBookings.Request) (*importBookings.Response, error) {
	f.gotRequest = req
	if f.err != nil {
		return nil, f.err
	}
	return f.response, nil
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

// newImportRequest собирает multipart запрос с файлом в поле file
func newImportRequest(t *testing.T, fileName string, content []byte) *http.Request {
	t.Helper()

	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)
	part, err := writer.CreateFormFile("file", fileName)
	require.NoError(t, err)
	_, err = part.Write(content)
	require.NoError(t, err)
	require.NoError(t, writer.Close())

	req := httptest.NewRequest(http.MethodPost, "/api/v1/fleet/bookings/import", body)
	req.Header.Set("Content-Type", writer.FormDataContentType())
	return req
}

// serve прогоняет запрос через Auth middleware и handler, как в боевом роутере
func serve(handler *Handler, req *http.Request) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	middleware.Auth(http.HandlerFunc(handler.Handle)).ServeHTTP(rec, req)
	return rec
}

func TestHandle_Success(t *testing.T) {
	uc := &fakeUseCase{
		response: &importBookings.Response{
			SuccessCount: 3,
			FailedCount:  1,
			Errors: []importBookings.ImportError{
				{Row: 4, Reference: "BR-1003", Message: "Стоимость: не число"},
			},
		},
	}
	handler := NewHandler(uc, nopLogger{})

	req := newImportRequest(t, "броня_март.xlsx", []byte("xlsx-bytes"))
	req.Header.Set("X-User-ID", "7")

	rec := serve(handler, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var resp ImportResultResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, 3, resp.SuccessCount)
	assert.Equal(t, 1, resp.FailedCount)
	require.Len(t, resp.Errors, 1)
	assert.Equal(t, 4, resp.Errors[0].Row)
	assert.Equal(t, "BR-1003", resp.Errors[0].Reference)

	// Use case получает staffID из заголовка и содержимое файла как есть
	require.NotNil(t, uc.gotRequest)
	assert.Equal(t, int64(7), uc.gotRequest.StaffID)
	assert.Equal(t, "броня_март.xlsx", uc.gotRequest.FileName)
	assert.Equal(t, []byte("xlsx-bytes"), uc.gotRequest.Data)
}

func TestHandle_EmptyErrorsSerializeAsArray(t *testing.T) {
	uc := &fakeUseCase{
		response: &importBookings.Response{SuccessCount: 2, FailedCount: 0},
	}
	handler := NewHandler(uc, nopLogger{})

	req := newImportRequest(t, "bookings.xlsx", []byte("xlsx-bytes"))
	req.Header.Set("X-User-ID", "7")

	rec := serve(handler, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"errors":[]`)
}

func TestHandle_MissingUserIDHeader(t *testing.T) {
	uc := &fakeUseCase{}
	handler := NewHandler(uc, nopLogger{})

	req := newImportRequest(t, "bookings.xlsx", []byte("xlsx-bytes"))

	rec := serve(handler, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Nil(t, uc.gotRequest, "use case must not run without user")
}

func TestHandle_MissingFileField(t *testing.T) {
	uc := &fakeUseCase{}
	handler := NewHandler(uc, nopLogger{})

	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)
	require.NoError(t, writer.WriteField("comment", "файл забыли"))
	require.NoError(t, writer.Close())

	req := httptest.NewRequest(http.MethodPost, "/api/v1/fleet/bookings/import", body)
	req.Header.Set("Content-Type", writer.FormDataContentType())
	req.Header.Set("X-User-ID", "7")

	rec := serve(handler, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Nil(t, uc.gotRequest)
}

func TestHandle_UseCaseErrors(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
	}{
		{"access denied", importBookings.ErrAccessDenied, http.StatusForbidden},
		{"unsupported file type", importBookings.ErrUnsupportedFileType, http.StatusBadRequest},
		{"file too large", importBookings.ErrFileTooLarge, http.StatusBadRequest},
		{"file not parsable", importBookings.ErrFileNotParsable, http.StatusBadRequest},
		{"invalid input", importBookings.ErrInvalidInput, http.StatusBadRequest},
		{"internal error", importBookings.ErrInternal, http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			handler := NewHandler(&fakeUseCase{err: tt.err}, nopLogger{})

			req := newImportRequest(t, "bookings.xlsx", []byte("xlsx-bytes"))
			req.Header.Set("X-User-ID", "7")

			rec := serve(handler, req)

			assert.Equal(t, tt.wantStatus, rec.Code)
		})
	}
}
