package api

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"github.com/illineats/backend/internal/mocks"
	"github.com/illineats/backend/internal/service"
	"github.com/illineats/backend/internal/types"
)

const testToken = "good-token"

type testServer struct {
	router          *gin.Engine
	userID          uuid.UUID
	auth            *mocks.MockAuthService
	foods           *mocks.MockFoodService
	recommendations *mocks.MockRecommendationService
	users           *mocks.MockUserService
	reviews         *mocks.MockReviewService
	favorites       *mocks.MockFavoriteService
	images          *mocks.MockImageService
	subscriptions   *mocks.MockSubscriptionService
	importer        *mocks.MockImportService
}

func newTestServer(t *testing.T, adminKeyHash string) *testServer {
	t.Helper()
	gin.SetMode(gin.TestMode)

	ts := &testServer{
		router:          gin.New(),
		userID:          uuid.New(),
		auth:            new(mocks.MockAuthService),
		foods:           new(mocks.MockFoodService),
		recommendations: new(mocks.MockRecommendationService),
		users:           new(mocks.MockUserService),
		reviews:         new(mocks.MockReviewService),
		favorites:       new(mocks.MockFavoriteService),
		images:          new(mocks.MockImageService),
		subscriptions:   new(mocks.MockSubscriptionService),
		importer:        new(mocks.MockImportService),
	}

	claims := &types.TokenClaims{
		RegisteredClaims: jwt.RegisteredClaims{Subject: ts.userID.String()},
		Email:            "diner@illinois.edu",
	}
	ts.auth.On("ValidateToken", testToken).Return(claims, nil)
	ts.auth.On("ValidateToken", mock.Anything).Return(nil, service.ErrInvalidToken)

	RegisterRoutes(ts.router, Services{
		Auth:            ts.auth,
		Foods:           ts.foods,
		Recommendations: ts.recommendations,
		Users:           ts.users,
		Reviews:         ts.reviews,
		Favorites:       ts.favorites,
		Images:          ts.images,
		Subscriptions:   ts.subscriptions,
		Import:          ts.importer,
	}, Options{AdminKeyHash: adminKeyHash})
	return ts
}

// do sends a request with an optional JSON body; authed adds the test bearer token
func (ts *testServer) do(method, path string, body interface{}, authed bool) *httptest.ResponseRecorder {
	var reader io.Reader
	if body != nil {
		switch b := body.(type) {
		case string:
			reader = bytes.NewBufferString(b)
		default:
			data, _ := json.Marshal(b)
			reader = bytes.NewReader(data)
		}
	}
	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if authed {
		req.Header.Set("Authorization", "Bearer "+testToken)
	}
	w := httptest.NewRecorder()
	ts.router.ServeHTTP(w, req)
	return w
}

// doWithHeader sends an unauthenticated request carrying one extra header
func (ts *testServer) doWithHeader(method, path, body, key, value string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set(key, value)
	w := httptest.NewRecorder()
	ts.router.ServeHTTP(w, req)
	return w
}

func decode(t *testing.T, w *httptest.ResponseRecorder, v interface{}) {
	t.Helper()
	if err := json.Unmarshal(w.Body.Bytes(), v); err != nil {
		t.Fatalf("failed to unmarshal response %q: %v", w.Body.String(), err)
	}
}
