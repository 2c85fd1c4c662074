package payment

import (
	"io"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func makeAppWithPaymentHandler(t *testing.T) (*fiber.App, env) {
	t.Helper()
	e := newEnv(t, 5)
	app := fiber.New()
	NewHandler(e.payments).RegisterPublicRoutes(app)
	return app, e
}

func TestCheckoutRoute_RedirectsToGateway(t *testing.T) {
	app, e := makeAppWithPaymentHandler(t)
	ord := placeSeededOrder(t, e, 1)

	req := httptest.NewRequest("POST", "/api/v1/checkout/"+ord.OID, nil)
	res, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusFound, res.StatusCode)
	assert.Equal(t, "https://checkout.example.com/cs_test_1", res.Header.Get("Location"))
}

func TestCheckoutRoute_UnknownOrder(t *testing.T) {
	app, _ := makeAppWithPaymentHandler(t)

	req := httptest.NewRequest("POST", "/api/v1/checkout/nosuchorder", nil)
	res, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusNotFound, res.StatusCode)
}

func TestPaymentSuccessRoute(t *testing.T) {
	app, e := makeAppWithPaymentHandler(t)
	ord := placeSeededOrder(t, e, 1)

	body := `{"order_oid":"` + ord.OID + `","session_id":"cs_test_1"}`
	req := httptest.NewRequest("POST", "/api/v1/payment-success", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	res, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, res.StatusCode)
	b, _ := io.ReadAll(res.Body)
	assert.Contains(t, string(b), OutcomePaid)

	// missing session id
	req2 := httptest.NewRequest("POST", "/api/v1/payment-success", strings.NewReader(`{"order_oid":"`+ord.OID+`"}`))
	req2.Header.Set("Content-Type", "application/json")
	res2, err := app.Test(req2)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusBadRequest, res2.StatusCode)

	// unknown order
	req3 := httptest.NewRequest("POST", "/api/v1/payment-success", strings.NewReader(`{"order_oid":"nosuchorder","session_id":"cs_test_1"}`))
	req3.Header.Set("Content-Type", "application/json")
	res3, err := app.Test(req3)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusNotFound, res3.StatusCode)
}
