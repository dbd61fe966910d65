package handler

import (
	"bytes"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hungrynow/hungrynow/internal/domain"
	"github.com/hungrynow/hungrynow/internal/mockserver/auth"
	"github.com/hungrynow/hungrynow/internal/mockserver/repository/memory"
	"github.com/hungrynow/hungrynow/internal/mockserver/service"
	"github.com/hungrynow/hungrynow/pkg/health"
	"github.com/hungrynow/hungrynow/pkg/httputil"
	"github.com/hungrynow/hungrynow/pkg/logger"
	"github.com/hungrynow/hungrynow/pkg/middleware"
)

const testPassword = "Abcdef1!"

// envelope mirrors httputil.Response with a raw data field.
type envelope struct {
	Data    json.RawMessage `json:"data"`
	Message string          `json:"message"`
}

type testServer struct {
	t      *testing.T
	srv    *httptest.Server
	client *http.Client
	token  string
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()
	l := logger.Discard()
	jwtManager := auth.NewJWTManager("test-secret", time.Hour)
	svc := Services{
		Users:  service.NewUserService(memory.NewUserRepository(), memory.NewAddressRepository(), jwtManager, l),
		Shop:   service.NewShopService(service.DemoCatalog(time.Now()), l),
		Images: service.NewImageStore(),
	}

	// The listener exists before Start, so upload URLs can point at it.
	srv := httptest.NewUnstartedServer(nil)
	srv.Config.Handler = NewRouter(svc, jwtManager, health.NewHandler(), l, RouterConfig{
		PublicURL: "http://" + srv.Listener.Addr().String(),
		CORS:      middleware.DefaultCORSConfig(),
	})
	srv.Start()
	t.Cleanup(srv.Close)

	return &testServer{t: t, srv: srv, client: srv.Client()}
}

func (ts *testServer) do(method, path string, body any) (int, envelope, httputil.ErrorResponse) {
	ts.t.Helper()
	var r io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		require.NoError(ts.t, err)
		r = bytes.NewReader(b)
	}
	req, err := http.NewRequest(method, ts.srv.URL+path, r)
	require.NoError(ts.t, err)
	req.Header.Set("Content-Type", "application/json")
	if ts.token != "" {
		req.Header.Set("Authorization", "Bearer "+ts.token)
	}
	resp, err := ts.client.Do(req)
	require.NoError(ts.t, err)
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	require.NoError(ts.t, err)
	var env envelope
	var errResp httputil.ErrorResponse
	if resp.StatusCode < 300 {
		require.NoError(ts.t, json.Unmarshal(raw, &env), string(raw))
	} else {
		require.NoError(ts.t, json.Unmarshal(raw, &errResp), string(raw))
	}
	return resp.StatusCode, env, errResp
}

func (ts *testServer) register() domain.Session {
	ts.t.Helper()
	status, env, _ := ts.do(http.MethodPost, "/api/auth/register", domain.Registration{
		FullName: "Alice Nguyen", Email: "alice@example.com", Password: testPassword,
	})
	require.Equal(ts.t, http.StatusCreated, status)
	var sess domain.Session
	require.NoError(ts.t, json.Unmarshal(env.Data, &sess))
	ts.token = sess.Token
	return sess
}

func decode[T any](t *testing.T, raw json.RawMessage) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(raw, &v))
	return v
}

func TestAuthFlow(t *testing.T) {
	ts := newTestServer(t)
	sess := ts.register()
	assert.Equal(t, "alice@example.com", sess.User.Email)

	status, env, _ := ts.do(http.MethodGet, "/api/users/profile", nil)
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, sess.User.ID, decode[domain.User](t, env.Data).ID)

	status, env, _ = ts.do(http.MethodPost, "/api/auth/logout", nil)
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, "null", string(env.Data))

	status, _, errResp := ts.do(http.MethodGet, "/api/users/profile", nil)
	assert.Equal(t, http.StatusUnauthorized, status, "a revoked token is rejected")
	assert.NotEmpty(t, errResp.Message)

	ts.token = ""
	status, env, _ = ts.do(http.MethodPost, "/api/auth/login", domain.Credentials{Email: "alice@example.com", Password: testPassword})
	require.Equal(t, http.StatusOK, status)
	assert.NotEmpty(t, decode[domain.Session](t, env.Data).Token)

	status, _, errResp = ts.do(http.MethodPost, "/api/auth/login", domain.Credentials{Email: "alice@example.com", Password: "Wrong123!"})
	assert.Equal(t, http.StatusUnauthorized, status)
	assert.Equal(t, "invalid email or password", errResp.Message)
}

func TestRegister_ValidationError(t *testing.T) {
	ts := newTestServer(t)

	status, _, errResp := ts.do(http.MethodPost, "/api/auth/register", domain.Registration{FullName: "A", Email: "not-an-email", Password: "short"})
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, "VALIDATION_ERROR", errResp.Code)
	assert.Contains(t, errResp.Fields, "email")
	assert.Contains(t, errResp.Fields, "password")
	assert.NotEmpty(t, errResp.Message)
}

func TestProtectedRoutesRequireToken(t *testing.T) {
	ts := newTestServer(t)

	for _, path := range []string{"/api/addresses", "/api/users/profile", "/api/cart", "/api/notifications"} {
		status, _, errResp := ts.do(http.MethodGet, path, nil)
		assert.Equal(t, http.StatusUnauthorized, status, path)
		assert.Equal(t, "UNAUTHORIZED", errResp.Code, path)
	}
}

func TestAddressEndpoints(t *testing.T) {
	ts := newTestServer(t)
	ts.register()

	status, env, _ := ts.do(http.MethodPost, "/api/addresses", domain.Address{Label: "Home", AddressDetail: "1 Main St", Latitude: 10.7, Longitude: 106.6})
	require.Equal(t, http.StatusCreated, status)
	home := decode[domain.Address](t, env.Data)
	assert.NotEmpty(t, home.ID)
	assert.True(t, home.IsDefault)

	status, env, _ = ts.do(http.MethodPost, "/api/addresses", domain.Address{Label: "Work", AddressDetail: "2 Side St", IsDefault: true})
	require.Equal(t, http.StatusCreated, status)
	work := decode[domain.Address](t, env.Data)

	status, env, _ = ts.do(http.MethodGet, "/api/addresses", nil)
	require.Equal(t, http.StatusOK, status)
	book := decode[[]domain.Address](t, env.Data)
	require.Len(t, book, 2)
	assert.False(t, book[0].IsDefault)
	assert.True(t, book[1].IsDefault)

	status, env, _ = ts.do(http.MethodPut, "/api/addresses/"+home.ID, map[string]any{"isDefault": true})
	require.Equal(t, http.StatusOK, status)
	assert.True(t, decode[domain.Address](t, env.Data).IsDefault)

	status, env, _ = ts.do(http.MethodDelete, "/api/addresses/"+work.ID, nil)
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, "null", string(env.Data))

	status, _, errResp := ts.do(http.MethodDelete, "/api/addresses/"+work.ID, nil)
	assert.Equal(t, http.StatusNotFound, status)
	assert.Contains(t, errResp.Message, "not found")

	status, _, errResp = ts.do(http.MethodPost, "/api/addresses", domain.Address{Label: "", AddressDetail: "x", Latitude: 200})
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Contains(t, errResp.Fields, "label")
	assert.Contains(t, errResp.Fields, "latitude")

	status, _, errResp = ts.do(http.MethodDelete, "/api/addresses/not-a-uuid", nil)
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, "INVALID_PARAMETER", errResp.Code)
}

func TestProfileEndpoints(t *testing.T) {
	ts := newTestServer(t)
	ts.register()

	status, env, _ := ts.do(http.MethodPut, "/api/users/profile", map[string]any{"phoneNumber": "+84901234567", "language": "en"})
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, "en", decode[domain.User](t, env.Data).Language)

	status, env, _ = ts.do(http.MethodPost, "/api/users/verify-phone", domain.PhoneVerification{IDToken: "sms-token"})
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, service.MsgPhoneVerified, env.Message)

	status, env, _ = ts.do(http.MethodPost, "/api/users/change-password", domain.PasswordChange{CurrentPassword: testPassword, NewPassword: "Newpass1!"})
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, service.MsgPasswordChanged, env.Message)

	status, _, errResp := ts.do(http.MethodPost, "/api/users/change-password", domain.PasswordChange{CurrentPassword: testPassword, NewPassword: "Another1!"})
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, "current password is incorrect", errResp.Message)
}

func TestForgotPassword_SameAnswerForUnknownEmail(t *testing.T) {
	ts := newTestServer(t)

	status, env, _ := ts.do(http.MethodPost, "/api/auth/forgot-password", domain.PasswordReset{Email: "nobody@example.com"})
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, service.MsgPasswordResetSent, env.Message)
}

func TestCatalogEndpoints(t *testing.T) {
	ts := newTestServer(t)

	status, env, _ := ts.do(http.MethodGet, "/api/categories", nil)
	require.Equal(t, http.StatusOK, status)
	assert.Len(t, decode[[]domain.Category](t, env.Data), 4)

	status, env, _ = ts.do(http.MethodGet, "/api/foods?categoryId=cat-noodles&search=pho", nil)
	require.Equal(t, http.StatusOK, status)
	foods := decode[[]domain.Food](t, env.Data)
	require.Len(t, foods, 1)
	assert.Equal(t, "food-pho-bo", foods[0].ID)

	status, _, _ = ts.do(http.MethodGet, "/api/foods/food-missing", nil)
	assert.Equal(t, http.StatusNotFound, status)

	resp, err := ts.client.Get(ts.srv.URL + "/api/categories")
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, "public, max-age=60", resp.Header.Get("Cache-Control"))
	assert.NotEmpty(t, resp.Header.Get(middleware.CorrelationHeader))
}

func TestCartAndVoucherEndpoints(t *testing.T) {
	ts := newTestServer(t)
	ts.register()

	_, _, _ = ts.do(http.MethodPost, "/api/cart/items", domain.CartItemInput{FoodID: "food-pho-bo", Quantity: 1})
	status, env, _ := ts.do(http.MethodPost, "/api/cart/items", domain.CartItemInput{FoodID: "food-pho-bo", Quantity: 2})
	require.Equal(t, http.StatusOK, status)
	cart := decode[domain.Cart](t, env.Data)
	require.Len(t, cart.Items, 1)
	assert.Equal(t, 3, cart.Items[0].Quantity)

	status, env, _ = ts.do(http.MethodPost, "/api/vouchers/apply", domain.VoucherApplication{Code: "WELCOME10", Subtotal: cart.Subtotal()})
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, float64(16500), decode[domain.AppliedVoucher](t, env.Data).Discount)

	status, env, _ = ts.do(http.MethodDelete, "/api/cart", nil)
	require.Equal(t, http.StatusOK, status)
	assert.Empty(t, decode[domain.Cart](t, env.Data).Items)
}

func TestRatingAndNotificationEndpoints(t *testing.T) {
	ts := newTestServer(t)
	ts.register()

	status, env, _ := ts.do(http.MethodPost, "/api/ratings", domain.RatingInput{FoodID: "food-tra-da", Stars: 4})
	require.Equal(t, http.StatusCreated, status)
	assert.Equal(t, "Alice Nguyen", decode[domain.Rating](t, env.Data).UserName)

	status, _, errResp := ts.do(http.MethodPost, "/api/ratings", domain.RatingInput{FoodID: "food-tra-da", Stars: 6})
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Contains(t, errResp.Fields, "stars")

	status, env, _ = ts.do(http.MethodGet, "/api/notifications", nil)
	require.Equal(t, http.StatusOK, status)
	list := decode[[]domain.Notification](t, env.Data)
	require.NotEmpty(t, list)

	status, env, _ = ts.do(http.MethodPut, "/api/notifications/"+list[0].ID+"/read", nil)
	require.Equal(t, http.StatusOK, status)
	assert.True(t, decode[domain.Notification](t, env.Data).IsRead)
}

func TestUploadImage(t *testing.T) {
	ts := newTestServer(t)
	ts.register()

	png := []byte("\x89PNG\r\n\x1a\n\x00\x00\x00\rIHDR")
	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	part, err := mw.CreateFormFile(ImageField, "avatar.png")
	require.NoError(t, err)
	_, err = part.Write(png)
	require.NoError(t, err)
	require.NoError(t, mw.Close())

	req, err := http.NewRequest(http.MethodPost, ts.srv.URL+"/api/upload/image", &body)
	require.NoError(t, err)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	req.Header.Set("Authorization", "Bearer "+ts.token)
	resp, err := ts.client.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	var out uploadResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	assert.Equal(t, "Image uploaded successfully", out.Message)
	require.True(t, strings.HasPrefix(out.ImageURL, ts.srv.URL+"/uploads/"), out.ImageURL)

	img, err := ts.client.Get(out.ImageURL)
	require.NoError(t, err)
	defer img.Body.Close()
	assert.Equal(t, "image/png", img.Header.Get("Content-Type"))
	served, err := io.ReadAll(img.Body)
	require.NoError(t, err)
	assert.Equal(t, png, served)
}

func TestUploadImage_MissingField(t *testing.T) {
	ts := newTestServer(t)
	ts.register()

	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	require.NoError(t, mw.WriteField("other", "x"))
	require.NoError(t, mw.Close())

	req, err := http.NewRequest(http.MethodPost, ts.srv.URL+"/api/upload/image", &body)
	require.NoError(t, err)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	req.Header.Set("Authorization", "Bearer "+ts.token)
	resp, err := ts.client.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	var errResp httputil.ErrorResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&errResp))
	assert.Contains(t, errResp.Message, `"image"`)
}

func TestHealthEndpoints(t *testing.T) {
	ts := newTestServer(t)

	for _, path := range []string{"/health/live", "/health/ready", "/metrics"} {
		resp, err := ts.client.Get(ts.srv.URL + path)
		require.NoError(t, err)
		resp.Body.Close()
		assert.Equal(t, http.StatusOK, resp.StatusCode, path)
	}
}
