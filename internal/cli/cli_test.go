package cli

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hungrynow/hungrynow/internal/api"
	"github.com/hungrynow/hungrynow/internal/app"
	"github.com/hungrynow/hungrynow/internal/config"
	"github.com/hungrynow/hungrynow/internal/mockserver/auth"
	"github.com/hungrynow/hungrynow/internal/mockserver/handler"
	"github.com/hungrynow/hungrynow/internal/mockserver/repository/memory"
	"github.com/hungrynow/hungrynow/internal/mockserver/service"
	"github.com/hungrynow/hungrynow/pkg/health"
	"github.com/hungrynow/hungrynow/pkg/logger"
	"github.com/hungrynow/hungrynow/pkg/middleware"
)

type harness struct {
	t      *testing.T
	srv    *httptest.Server
	cli    *CLI
	out    *bytes.Buffer
	errOut *bytes.Buffer
}

func newHarness(t *testing.T) *harness {
	t.Helper()
	l := logger.Discard()
	jwtManager := auth.NewJWTManager("cli-secret", time.Hour)
	svc := handler.Services{
		Users:  service.NewUserService(memory.NewUserRepository(), memory.NewAddressRepository(), jwtManager, l),
		Shop:   service.NewShopService(service.DemoCatalog(time.Now()), l),
		Images: service.NewImageStore(),
	}
	srv := httptest.NewServer(handler.NewRouter(svc, jwtManager, health.NewHandler(), l, handler.RouterConfig{
		PublicURL: "http://localhost",
		CORS:      middleware.DefaultCORSConfig(),
	}))
	t.Cleanup(srv.Close)

	a, err := app.New(context.Background(), &config.Client{
		APIBaseURL:   srv.URL + "/api",
		HTTPTimeout:  5 * time.Second,
		SessionStore: config.SessionStoreMemory,
	}, "hungrynow-cli-test", l)
	require.NoError(t, err)
	t.Cleanup(func() { _ = a.Close(context.Background()) })

	h := &harness{t: t, srv: srv, out: &bytes.Buffer{}, errOut: &bytes.Buffer{}}
	h.cli = New(a.Store, h.out, h.errOut)
	return h
}

// run executes one command and returns its stdout.
func (h *harness) run(args ...string) (string, error) {
	h.t.Helper()
	h.out.Reset()
	h.errOut.Reset()
	err := h.cli.Run(context.Background(), args)
	return h.out.String(), err
}

func (h *harness) mustRun(args ...string) string {
	h.t.Helper()
	out, err := h.run(args...)
	require.NoError(h.t, err, "stderr: %s", h.errOut.String())
	return out
}

func (h *harness) signUp() {
	h.t.Helper()
	h.mustRun("register", "-name", "Tran Thi B", "-email", "b@example.com", "-password", "Abcdef1!")
}

func TestRun_NoArgsPrintsUsage(t *testing.T) {
	h := newHarness(t)
	_, err := h.run()
	assert.ErrorIs(t, err, ErrUsage)
	assert.Contains(t, h.errOut.String(), "addresses")
}

func TestRun_UnknownCommand(t *testing.T) {
	h := newHarness(t)
	_, err := h.run("checkout")
	assert.ErrorIs(t, err, ErrUsage)
	assert.Contains(t, h.errOut.String(), `unknown command "checkout"`)
}

func TestRun_ProtectedCommandNeedsSession(t *testing.T) {
	h := newHarness(t)
	_, err := h.run("addresses")
	assert.ErrorIs(t, err, ErrNotSignedIn)
}

func TestRegister_ValidatesBeforeDispatch(t *testing.T) {
	h := newHarness(t)
	_, err := h.run("register", "-name", "A", "-email", "not-an-email", "-password", "short")
	assert.ErrorIs(t, err, ErrInvalidInput)
	assert.Contains(t, h.errOut.String(), "email:")
	assert.Contains(t, h.errOut.String(), "password:")
}

func TestLogin_WrongPasswordShowsServerMessage(t *testing.T) {
	h := newHarness(t)
	h.signUp()
	h.mustRun("logout")

	_, err := h.run("login", "-email", "b@example.com", "-password", "Wrong123!")
	require.Error(t, err)
	assert.Equal(t, "invalid email or password", err.Error())
	assert.True(t, api.IsRejected(err))
	assert.Equal(t, http.StatusUnauthorized, api.StatusCode(err))
}

func TestRun_BackendDownIsNotRejection(t *testing.T) {
	h := newHarness(t)
	h.srv.Close()

	_, err := h.run("categories")
	require.Error(t, err)
	assert.False(t, api.IsRejected(err))
	assert.Zero(t, api.StatusCode(err))
}

func TestAddresses_Flow(t *testing.T) {
	h := newHarness(t)
	h.signUp()

	out := h.mustRun("addresses", "add", "-label", "Home", "-detail", "1 Le Loi", "-lat", "10.77", "-lng", "106.70")
	assert.Contains(t, out, "Address added successfully")
	assert.Contains(t, out, "Home")

	out = h.mustRun("addresses", "add", "-label", "Work", "-detail", "2 Nguyen Hue", "-lat", "10.78", "-lng", "106.71", "-default")
	assert.Contains(t, out, "Work")

	out = h.mustRun("addresses")
	assert.Contains(t, out, "Loaded addresses successfully")
	assert.Equal(t, 1, bytes.Count([]byte(out), []byte("*")), out)

	_, err := h.run("addresses", "update", "-id", "missing")
	assert.ErrorIs(t, err, ErrUsage, "an update without fields is rejected locally")

	_, err = h.run("addresses", "delete", "missing")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid address id")
}

func TestCart_ApplyVoucher(t *testing.T) {
	h := newHarness(t)
	h.signUp()

	out := h.mustRun("cart", "add", "-food", "food-pho-bo", "-qty", "2")
	assert.Contains(t, out, "110.000đ")

	out = h.mustRun("vouchers", "apply", "-code", "welcome10")
	assert.Contains(t, out, "Voucher WELCOME10")
	assert.Contains(t, out, "99.000đ")

	_, err := h.run("cart", "add", "-food", "food-pho-bo", "-qty", "0")
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestCatalog_IsPublic(t *testing.T) {
	h := newHarness(t)

	out := h.mustRun("foods", "-search", "banh mi")
	assert.Contains(t, out, "Banh mi thit")
	assert.NotContains(t, out, "Pho bo")

	out = h.mustRun("food", "food-pho-bo")
	assert.Contains(t, out, "55.000đ")
}

func TestUnknownSubcommand(t *testing.T) {
	h := newHarness(t)
	h.signUp()
	_, err := h.run("cart", "checkout")
	assert.ErrorIs(t, err, ErrUsage)
	assert.Contains(t, h.errOut.String(), "add, clear, remove, show, update")
}

func TestWatch_PrintsActions(t *testing.T) {
	h := newHarness(t)
	var log bytes.Buffer
	stop := Watch(h.cli.store, &log)
	h.mustRun("categories")
	stop()

	assert.Contains(t, log.String(), "action catalog/fetchCategories/pending")
	assert.Contains(t, log.String(), "action catalog/fetchCategories/fulfilled")
}

func TestFormatVND(t *testing.T) {
	cases := map[float64]string{
		0:       "0đ",
		500:     "500đ",
		5000:    "5.000đ",
		110000:  "110.000đ",
		1250000: "1.250.000đ",
		-16500:  "-16.500đ",
	}
	for in, want := range cases {
		assert.Equal(t, want, formatVND(in))
	}
}
