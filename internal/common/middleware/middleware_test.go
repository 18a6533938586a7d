package middleware

import (
	"encoding/json"
	stderrors "errors"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"charity-lottery-backend/internal/common/errors"
	"charity-lottery-backend/internal/common/signature"
)

var fixedNow = time.Unix(1_700_000_000, 0)

func init() {
	gin.SetMode(gin.TestMode)
}

func newRouter(opts AuthOptions, extra ...gin.HandlerFunc) *gin.Engine {
	r := gin.New()
	r.Use(RequestID(), Recovery(), Errors())
	handlers := append([]gin.HandlerFunc{CallerAuth(opts)}, extra...)
	handlers = append(handlers, func(c *gin.Context) {
		caller, _ := CallerFrom(c)
		c.JSON(http.StatusOK, gin.H{"caller": caller.Hex()})
	})
	r.POST("/api/v1/lotteries/:id/participate", handlers...)
	return r
}

func decodeError(t *testing.T, w *httptest.ResponseRecorder) ErrorResponse {
	t.Helper()
	var resp ErrorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	return resp
}

func TestCallerAuthSigned(t *testing.T) {
	key, err := crypto.GenerateKey()
	require.NoError(t, err)
	account := crypto.PubkeyToAddress(key.PublicKey)
	path := "/api/v1/lotteries/abc/participate"
	body := `{"hashed_random":"0x01"}`

	sig, err := signature.Sign(key, http.MethodPost, path, fixedNow.Unix(), []byte(body))
	require.NoError(t, err)

	r := newRouter(AuthOptions{MaxSkew: time.Minute, Now: func() time.Time { return fixedNow }})

	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
	req.Header.Set(CallerHeader, account.Hex())
	req.Header.Set(SignatureHeader, sig)
	req.Header.Set(TimestampHeader, strconv.FormatInt(fixedNow.Unix(), 10))
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Contains(t, w.Body.String(), account.Hex())
	assert.NotEmpty(t, w.Header().Get(RequestIDHeader))
}

func TestCallerAuthRejects(t *testing.T) {
	key, err := crypto.GenerateKey()
	require.NoError(t, err)
	account := crypto.PubkeyToAddress(key.PublicKey)
	other := common.HexToAddress("0x00000000000000000000000000000000000000bb")
	path := "/api/v1/lotteries/abc/participate"
	body := `{"hashed_random":"0x01"}`

	sig, err := signature.Sign(key, http.MethodPost, path, fixedNow.Unix(), []byte(body))
	require.NoError(t, err)

	tests := []struct {
		name      string
		caller    string
		sig       string
		timestamp int64
		body      string
	}{
		{"missing caller", "", sig, fixedNow.Unix(), body},
		{"missing signature", account.Hex(), "", fixedNow.Unix(), body},
		{"wrong signer", other.Hex(), sig, fixedNow.Unix(), body},
		{"tampered body", account.Hex(), sig, fixedNow.Unix(), `{"hashed_random":"0x02"}`},
		{"stale timestamp", account.Hex(), sig, fixedNow.Add(-time.Hour).Unix(), body},
	}

	r := newRouter(AuthOptions{MaxSkew: time.Minute, Now: func() time.Time { return fixedNow }})
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(tt.body))
			if tt.caller != "" {
				req.Header.Set(CallerHeader, tt.caller)
			}
			if tt.sig != "" {
				req.Header.Set(SignatureHeader, tt.sig)
			}
			req.Header.Set(TimestampHeader, strconv.FormatInt(tt.timestamp, 10))
			w := httptest.NewRecorder()
			r.ServeHTTP(w, req)

			assert.Equal(t, http.StatusUnauthorized, w.Code)
			resp := decodeError(t, w)
			assert.False(t, resp.Success)
			assert.Equal(t, errors.ErrCodeUnauthorized, resp.Error.Code)
		})
	}
}

func TestCallerAuthZeroSkewUsesDefault(t *testing.T) {
	key, err := crypto.GenerateKey()
	require.NoError(t, err)
	path := "/api/v1/lotteries/abc/participate"
	body := `{"hashed_random":"0x01"}`
	r := newRouter(AuthOptions{Now: func() time.Time { return fixedNow }})

	for _, tt := range []struct {
		age  time.Duration
		want int
	}{
		{DefaultMaxSkew - time.Second, http.StatusOK},
		{DefaultMaxSkew + time.Second, http.StatusUnauthorized},
		{24 * time.Hour, http.StatusUnauthorized},
	} {
		ts := fixedNow.Add(-tt.age).Unix()
		sig, err := signature.Sign(key, http.MethodPost, path, ts, []byte(body))
		require.NoError(t, err)

		req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
		req.Header.Set(CallerHeader, crypto.PubkeyToAddress(key.PublicKey).Hex())
		req.Header.Set(SignatureHeader, sig)
		req.Header.Set(TimestampHeader, strconv.FormatInt(ts, 10))
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		assert.Equal(t, tt.want, w.Code, tt.age.String())
	}
}

func TestCallerAuthAllowUnsigned(t *testing.T) {
	r := newRouter(AuthOptions{AllowUnsigned: true})

	req := httptest.NewRequest(http.MethodPost, "/api/v1/lotteries/abc/participate", nil)
	req.Header.Set(CallerHeader, "0x00000000000000000000000000000000000000aa")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), common.HexToAddress("0xaa").Hex())
}

func TestRequireAccount(t *testing.T) {
	relay := common.HexToAddress("0x00000000000000000000000000000000000000cc")

	tests := []struct {
		name    string
		account common.Address
		caller  common.Address
		want    int
	}{
		{"relay", relay, relay, http.StatusOK},
		{"other caller", relay, common.HexToAddress("0xdd"), http.StatusForbidden},
		{"route closed", common.Address{}, relay, http.StatusForbidden},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := newRouter(AuthOptions{AllowUnsigned: true}, RequireAccount(tt.account, "deposits come from the payment relay"))

			req := httptest.NewRequest(http.MethodPost, "/api/v1/lotteries/abc/participate", nil)
			req.Header.Set(CallerHeader, tt.caller.Hex())
			w := httptest.NewRecorder()
			r.ServeHTTP(w, req)

			assert.Equal(t, tt.want, w.Code)
		})
	}
}

func TestErrorsRendersAppError(t *testing.T) {
	r := gin.New()
	r.Use(RequestID(), Errors())
	r.GET("/phase", func(c *gin.Context) {
		_ = c.Error(errors.NewRejectionError(errors.ErrCodeLotteryPhase, "phase", stderrors.New("commit window closed")))
	})
	r.GET("/plain", func(c *gin.Context) {
		_ = c.Error(stderrors.New("boom"))
	})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/phase", nil)
	req.Header.Set(RequestIDHeader, "req-1")
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusConflict, w.Code)
	resp := decodeError(t, w)
	assert.Equal(t, errors.ErrCodeLotteryPhase, resp.Error.Code)
	assert.Equal(t, "commit window closed", resp.Error.Message)
	assert.Equal(t, "req-1", resp.RequestID)

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/plain", nil))
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Equal(t, errors.ErrCodeInternal, decodeError(t, w).Error.Code)
}

func TestRecovery(t *testing.T) {
	r := gin.New()
	r.Use(RequestID(), Recovery())
	r.GET("/panic", func(c *gin.Context) {
		panic("kaboom")
	})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/panic", nil))

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Equal(t, errors.ErrCodeInternal, decodeError(t, w).Error.Code)
}

func TestHTTPStatus(t *testing.T) {
	tests := map[errors.ErrorCode]int{
		errors.ErrCodeValidation:      http.StatusBadRequest,
		errors.ErrCodeLotteryNotFound: http.StatusNotFound,
		errors.ErrCodeNotAuthorized:   http.StatusForbidden,
		errors.ErrCodeLotteryPhase:    http.StatusConflict,
		errors.ErrCodeLotteryState:    http.StatusConflict,
		errors.ErrCodeStorageError:    http.StatusInternalServerError,
	}
	for code, want := range tests {
		assert.Equal(t, want, HTTPStatus(errors.New(code, "x")), code)
	}
}
