package Controllers_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"

	"github.com/yeremiapane/tableservice-client/models"
	"github.com/yeremiapane/tableservice-client/realtime"
	"github.com/yeremiapane/tableservice-client/services"
	"github.com/yeremiapane/tableservice-client/utils"
)

func init() {
	gin.SetMode(gin.TestMode)
	utils.InitLogger()
}

// staticTokens satisfies the client token source without a store.
type staticTokens string

func (s staticTokens) AccessToken() string { return string(s) }

// nopSubscriber satisfies services.Subscriber for controllers whose push
// wiring is not under test.
type nopSubscriber struct{}

func (nopSubscriber) Subscribe(event string, handler func()) realtime.Subscription {
	return realtime.Subscription{}
}
func (nopSubscriber) Unsubscribe(sub realtime.Subscription) {}

var _ services.Subscriber = nopSubscriber{}

// signedToken builds an access token carrying the role claim the way the
// backend issues them. The signature is never verified client-side.
func signedToken(t *testing.T, role models.UserRole) string {
	claims := utils.CustomClaims{
		Subject: utils.TokenSubject{UserID: "u1", Role: role},
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("test-secret"))
	if err != nil {
		t.Fatalf("failed to sign token: %v", err)
	}
	return token
}

func doJSON(router *gin.Engine, method, path string, payload interface{}) *httptest.ResponseRecorder {
	var body *bytes.Buffer
	if payload != nil {
		raw, _ := json.Marshal(payload)
		body = bytes.NewBuffer(raw)
	} else {
		body = bytes.NewBuffer(nil)
	}
	req, _ := http.NewRequest(method, path, body)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func decodeEnvelope(t *testing.T, w *httptest.ResponseRecorder) utils.JSONResponse {
	var resp utils.JSONResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode response envelope: %v", err)
	}
	return resp
}
