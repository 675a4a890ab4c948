package result

import (
	"context"
	"errors"
	"html/template"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"storefront/internal/backend"
	"storefront/internal/domain"
	"storefront/internal/middleware"
	"storefront/internal/navigation"
	"storefront/internal/pkg/jwt"
)

const testTemplates = `
{{define "result.html"}}{{if .Success}}OK #{{.Booking.ID}} {{.Title}}{{with .ReceiptURL}} receipt={{.}}{{end}}{{else}}FAIL {{.Error}}{{end}}{{end}}
{{define "receipt.html"}}{{if .Success}}RECEIPT #{{.Booking.ID}} {{.Title}}{{else}}FAIL {{.Error}}{{end}}{{end}}
`

const visitor = "visitor-1"

type MockBookingReader struct {
	mock.Mock
}

func (m *MockBookingReader) GetBooking(ctx context.Context, id int64) (*domain.Booking, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Booking), args.Error(1)
}

func (m *MockBookingReader) GetExperience(ctx context.Context, id int64) (*domain.Experience, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Experience), args.Error(1)
}

func setupRouter(t *testing.T, reader *MockBookingReader, tokens *jwt.Service) (*gin.Engine, navigation.Store) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	nav := navigation.NewMemoryStore(time.Minute)
	router := gin.New()
	router.SetHTMLTemplate(template.Must(template.New("").Parse(testTemplates)))
	router.Use(func(c *gin.Context) {
		c.Set(middleware.VisitorIDKey, visitor)
		c.Next()
	})
	NewHandler(reader, tokens, nav, zap.NewNop()).RegisterRoutes(router)
	return router, nav
}

func get(router *gin.Engine, path string) *httptest.ResponseRecorder {
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, httptest.NewRequest(http.MethodGet, path, nil))
	return resp
}

func TestShow_WithoutContextRedirectsHome(t *testing.T) {
	router, _ := setupRouter(t, new(MockBookingReader), jwt.New("secret", time.Hour))

	resp := get(router, "/result")

	assert.Equal(t, http.StatusSeeOther, resp.Code)
	assert.Equal(t, "/", resp.Header().Get("Location"))
}

func TestShow(t *testing.T) {
	exp := &domain.Experience{ID: 7, Title: "Sunset Kayak Tour"}

	cases := []struct {
		name string
		rc   navigation.ResultContext
		want string
	}{
		{
			name: "confirmation",
			rc:   navigation.ResultContext{Success: true, Booking: &domain.Booking{ID: 42}, Experience: exp, ReceiptToken: "abc"},
			want: "OK #42 Sunset Kayak Tour receipt=/receipts/abc",
		},
		{
			name: "server message",
			rc:   navigation.ResultContext{Success: false, Error: "Slot is fully booked", Experience: exp},
			want: "FAIL Slot is fully booked",
		},
		{
			name: "fallback message",
			rc:   navigation.ResultContext{Success: false},
			want: "FAIL We encountered an error while processing your booking. Please try again.",
		},
		{
			name: "success without booking",
			rc:   navigation.ResultContext{Success: true},
			want: "FAIL We encountered an error while processing your booking. Please try again.",
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			router, nav := setupRouter(t, new(MockBookingReader), jwt.New("secret", time.Hour))
			require.NoError(t, navigation.Save(context.Background(), nav, visitor, navigation.KeyResult, &tc.rc))

			resp := get(router, "/result")

			assert.Equal(t, http.StatusOK, resp.Code)
			assert.Contains(t, resp.Body.String(), tc.want)
		})
	}
}

func TestReceipt(t *testing.T) {
	tokens := jwt.New("secret", time.Hour)
	token, err := tokens.GenerateToken(42)
	require.NoError(t, err)

	reader := new(MockBookingReader)
	reader.On("GetBooking", mock.Anything, int64(42)).
		Return(&domain.Booking{ID: 42, ExperienceID: 7, TotalAmount: decimal.RequireFromString("99.98")}, nil)
	reader.On("GetExperience", mock.Anything, int64(7)).Return(&domain.Experience{ID: 7, Title: "Sunset Kayak Tour"}, nil)
	router, _ := setupRouter(t, reader, tokens)

	resp := get(router, "/receipts/"+token)

	assert.Equal(t, http.StatusOK, resp.Code)
	assert.Contains(t, resp.Body.String(), "RECEIPT #42 Sunset Kayak Tour")
}

func TestReceipt_ExperienceFailureStillRenders(t *testing.T) {
	tokens := jwt.New("secret", time.Hour)
	token, _ := tokens.GenerateToken(42)

	reader := new(MockBookingReader)
	reader.On("GetBooking", mock.Anything, int64(42)).Return(&domain.Booking{ID: 42, ExperienceID: 7}, nil)
	reader.On("GetExperience", mock.Anything, int64(7)).Return(nil, errors.New("down"))
	router, _ := setupRouter(t, reader, tokens)

	resp := get(router, "/receipts/"+token)

	assert.Equal(t, http.StatusOK, resp.Code)
	assert.Contains(t, resp.Body.String(), "RECEIPT #42")
}

func TestReceipt_Failures(t *testing.T) {
	tokens := jwt.New("secret", time.Hour)
	valid, _ := tokens.GenerateToken(42)
	foreign, _ := jwt.New("other", time.Hour).GenerateToken(42)

	cases := []struct {
		name    string
		token   string
		bookErr error
		status  int
		want    string
	}{
		{name: "garbage", token: "not-a-token", status: http.StatusNotFound, want: "Receipt link is invalid or has expired."},
		{name: "wrong key", token: foreign, status: http.StatusNotFound, want: "Receipt link is invalid or has expired."},
		{name: "booking gone", token: valid, bookErr: &backend.APIError{StatusCode: 404}, status: http.StatusNotFound, want: "Receipt link is invalid or has expired."},
		{name: "backend down", token: valid, bookErr: errors.New("connection refused"), status: http.StatusBadGateway, want: "Failed to load booking. Please try again later."},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			reader := new(MockBookingReader)
			if tc.bookErr != nil {
				reader.On("GetBooking", mock.Anything, int64(42)).Return(nil, tc.bookErr)
			}
			router, _ := setupRouter(t, reader, tokens)

			resp := get(router, "/receipts/"+tc.token)

			assert.Equal(t, tc.status, resp.Code)
			assert.Contains(t, resp.Body.String(), tc.want)
		})
	}
}
