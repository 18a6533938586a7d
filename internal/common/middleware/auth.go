package middleware

import (
	"bytes"
	"io"
	"strconv"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/gin-gonic/gin"

	"charity-lottery-backend/internal/common/errors"
	"charity-lottery-backend/internal/common/signature"
	"charity-lottery-backend/internal/common/validation"
)

const (
	callerKey = "caller"

	CallerHeader    = "X-Caller"
	SignatureHeader = "X-Signature"
	TimestampHeader = "X-Timestamp"

	// DefaultMaxSkew applies when AuthOptions.MaxSkew is not positive
	DefaultMaxSkew = 5 * time.Minute
)

// AuthOptions configures CallerAuth
type AuthOptions struct {
	// Trust X-Caller without a signature
	AllowUnsigned bool
	// Largest accepted distance between X-Timestamp and Now
	MaxSkew time.Duration
	Now           func() time.Time
}

// CallerAuth resolves the calling account from X-Caller and verifies
// X-Signature over the method, path, X-Timestamp and raw body.
func CallerAuth(opts AuthOptions) gin.HandlerFunc {
	if opts.Now == nil {
		opts.Now = time.Now
	}
	if opts.MaxSkew <= 0 {
		opts.MaxSkew = DefaultMaxSkew
	}

	return func(c *gin.Context) {
		caller, err := validation.ParseNonZeroAddress(c.GetHeader(CallerHeader), CallerHeader)
		if err != nil {
			abortWith(c, errors.NewUnauthorizedError(err.Error()))
			return
		}

		sig := c.GetHeader(SignatureHeader)
		if sig == "" && opts.AllowUnsigned {
			c.Set(callerKey, caller)
			c.Next()
			return
		}
		if sig == "" {
			abortWith(c, errors.NewUnauthorizedError(SignatureHeader+" header required"))
			return
		}

		ts, err := strconv.ParseInt(c.GetHeader(TimestampHeader), 10, 64)
		if err != nil {
			abortWith(c, errors.NewUnauthorizedError(TimestampHeader+" must be unix seconds"))
			return
		}
		skew := opts.Now().Sub(time.Unix(ts, 0))
		if skew < 0 {
			skew = -skew
		}
		if skew > opts.MaxSkew {
			abortWith(c, errors.NewUnauthorizedError("request timestamp outside allowed skew"))
			return
		}

		var body []byte
		if c.Request.Body != nil {
			body, err = io.ReadAll(c.Request.Body)
			if err != nil {
				abortWith(c, errors.New(errors.ErrCodeBadRequest, "Failed to read request body"))
				return
			}
			c.Request.Body = io.NopCloser(bytes.NewReader(body))
		}

		if err := signature.Verify(caller, sig, c.Request.Method, c.Request.URL.Path, ts, body); err != nil {
			abortWith(c, errors.NewUnauthorizedError(err.Error()))
			return
		}

		c.Set(callerKey, caller)
		c.Next()
	}
}

// RequireAccount lets only the given account through. A zero account
// closes the route.
func RequireAccount(account common.Address, reason string) gin.HandlerFunc {
	return func(c *gin.Context) {
		caller, ok := CallerFrom(c)
		if !ok {
			abortWith(c, errors.NewUnauthorizedError("caller required"))
			return
		}
		if account == (common.Address{}) || caller != account {
			abortWith(c, errors.NewForbiddenError(reason))
			return
		}
		c.Next()
	}
}

// CallerFrom returns the account resolved by CallerAuth
func CallerFrom(c *gin.Context) (common.Address, bool) {
	v, exists := c.Get(callerKey)
	if !exists {
		return common.Address{}, false
	}
	caller, ok := v.(common.Address)
	return caller, ok
}

func abortWith(c *gin.Context, appErr *errors.AppError) {
	SendError(c, appErr)
	c.Abort()
}
