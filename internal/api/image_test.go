package api

import (
	"bytes"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/illineats/backend/internal/models"
	"github.com/illineats/backend/internal/service"
	"github.com/illineats/backend/internal/storage"
)

func multipartImage(t *testing.T, field, filename string, data []byte) (*bytes.Buffer, string) {
	t.Helper()
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	part, err := mw.CreateFormFile(field, filename)
	require.NoError(t, err)
	_, err = part.Write(data)
	require.NoError(t, err)
	require.NoError(t, mw.Close())
	return &buf, mw.FormDataContentType()
}

func TestUploadImage(t *testing.T) {
	ts := newTestServer(t, "")
	foodID := uuid.New()
	data := []byte("\x89PNG\r\n\x1a\nrest")

	ts.images.On("UploadImage", mock.Anything, ts.userID, foodID, "pasta.png", mock.Anything, int64(len(data))).
		Return(&models.FoodImage{ID: uuid.New(), FoodID: foodID, URL: "https://cdn.test/x.png"}, nil).Once()
	ts.images.On("UploadImage", mock.Anything, ts.userID, foodID, "pasta.png", mock.Anything, mock.Anything).
		Return(nil, storage.ErrUnavailable)

	send := func(field string) *httptest.ResponseRecorder {
		body, contentType := multipartImage(t, field, "pasta.png", data)
		req := httptest.NewRequest(http.MethodPost, "/api/v1/foods/"+foodID.String()+"/images", body)
		req.Header.Set("Content-Type", contentType)
		req.Header.Set("Authorization", "Bearer "+testToken)
		w := httptest.NewRecorder()
		ts.router.ServeHTTP(w, req)
		return w
	}

	w := send("image")
	assert.Equal(t, http.StatusCreated, w.Code)
	assert.Contains(t, w.Body.String(), `"url":"https://cdn.test/x.png"`)
	assert.NotContains(t, w.Body.String(), "objectKey")

	w = send("image")
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)

	w = send("photo")
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestUploadImageErrors(t *testing.T) {
	ts := newTestServer(t, "")
	foodID := uuid.New()
	ts.images.On("UploadImage", mock.Anything, ts.userID, foodID, mock.Anything, mock.Anything, mock.Anything).
		Return(nil, service.ErrUnsupportedImage)

	body, contentType := multipartImage(t, "image", "notes.txt", []byte("hello"))
	req := httptest.NewRequest(http.MethodPost, "/api/v1/foods/"+foodID.String()+"/images", body)
	req.Header.Set("Content-Type", contentType)
	req.Header.Set("Authorization", "Bearer "+testToken)
	w := httptest.NewRecorder()
	ts.router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.JSONEq(t, `{"error":"unsupported image type"}`, w.Body.String())
}

func TestImageListAndLike(t *testing.T) {
	ts := newTestServer(t, "")
	foodID, imageID := uuid.New(), uuid.New()
	ts.images.On("ListGrouped", mock.Anything, []uuid.UUID{foodID}).
		Return(map[string][]models.FoodImage{foodID.String(): {{ID: imageID, Likes: 2}}}, nil)
	ts.images.On("LikeImage", mock.Anything, imageID).Return(&models.FoodImage{ID: imageID, Likes: 3}, nil)
	ts.images.On("LikeImage", mock.Anything, mock.Anything).Return(nil, service.ErrImageNotFound)

	w := ts.do(http.MethodGet, "/api/v1/images?foodIds="+foodID.String(), nil, false)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"likes":2`)

	w = ts.do(http.MethodPost, "/api/v1/images/"+imageID.String()+"/like", nil, true)
	assert.Equal(t, http.StatusOK, w.Code)

	w = ts.do(http.MethodPost, "/api/v1/images/"+uuid.NewString()+"/like", nil, true)
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = ts.do(http.MethodPost, "/api/v1/images/"+imageID.String()+"/like", nil, false)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}
