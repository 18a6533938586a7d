package main

import (
	"bytes"
	"crypto/ecdsa"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/ethereum/go-ethereum/crypto"
	"gopkg.in/urfave/cli.v1"

	"charity-lottery-backend/internal/common/logger"
	"charity-lottery-backend/internal/common/middleware"
	"charity-lottery-backend/internal/common/signature"
	"charity-lottery-backend/internal/common/validation"
	"charity-lottery-backend/internal/features/lottery/contract"
	"charity-lottery-backend/internal/utils/random"
)

const apiPrefix = "/api/v1"

func keygen(c *cli.Context) error {
	if c.NArg() != 1 {
		return errors.New("usage: lotteryctl keygen KEYFILE")
	}
	key, err := crypto.GenerateKey()
	if err != nil {
		return err
	}
	if err := crypto.SaveECDSA(c.Args().First(), key); err != nil {
		return fmt.Errorf("save key: %w", err)
	}
	fmt.Fprintln(c.App.Writer, crypto.PubkeyToAddress(key.PublicKey).Hex())
	return nil
}

func secret(c *cli.Context) error {
	value, err := random.Secret()
	if err != nil {
		return err
	}
	fmt.Fprintln(c.App.Writer, value.Hex())
	return nil
}

func commit(c *cli.Context) error {
	value, err := validation.ParseUint256(c.String("secret"), "secret")
	if err != nil {
		return err
	}
	account, err := validation.ParseNonZeroAddress(c.String("account"), "account")
	if err != nil {
		return err
	}
	fmt.Fprintln(c.App.Writer, contract.Commit(value, account).Hex())
	return nil
}

func call(c *cli.Context) error {
	if c.NArg() < 2 || c.NArg() > 3 {
		return errors.New("usage: lotteryctl call [flags] METHOD PATH [BODY]")
	}
	if c.String("key") == "" {
		return errors.New("--key is required")
	}
	key, err := crypto.LoadECDSA(c.String("key"))
	if err != nil {
		return fmt.Errorf("load key: %w", err)
	}
	networks, err := LoadNetworks(c.String("networks"))
	if err != nil {
		return err
	}
	base, err := networks.Resolve(c.String("network"))
	if err != nil {
		return err
	}

	req, err := newSignedRequest(base, key, c.Args().Get(0), c.Args().Get(1), []byte(c.Args().Get(2)), time.Now())
	if err != nil {
		return err
	}
	logger.Debug().
		Str("method", req.Method).
		Str("url", req.URL.String()).
		Str("caller", req.Header.Get(middleware.CallerHeader)).
		Msg("Sending call")

	client := &http.Client{Timeout: 30 * time.Second}
	resp, err := client.Do(req)
	if err != nil {
		return fmt.Errorf("call %s: %w", req.URL, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("read response: %w", err)
	}
	fmt.Fprintln(c.App.Writer, strings.TrimSpace(string(body)))
	if resp.StatusCode >= http.StatusBadRequest {
		return fmt.Errorf("call failed: %s", resp.Status)
	}
	return nil
}

// newSignedRequest builds a call against base the way CallerAuth verifies
// it. Paths without the API prefix get it added.
func newSignedRequest(base *url.URL, key *ecdsa.PrivateKey, method, path string, body []byte, now time.Time) (*http.Request, error) {
	method = strings.ToUpper(method)
	if !strings.HasPrefix(path, "/") {
		path = "/" + path
	}
	if !strings.HasPrefix(path, apiPrefix+"/") {
		path = apiPrefix + path
	}
	target, err := base.Parse(path)
	if err != nil {
		return nil, fmt.Errorf("invalid path %q: %w", path, err)
	}

	ts := now.Unix()
	sig, err := signature.Sign(key, method, target.Path, ts, body)
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequest(method, target.String(), bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	if len(body) > 0 {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set(middleware.CallerHeader, crypto.PubkeyToAddress(key.PublicKey).Hex())
	req.Header.Set(middleware.SignatureHeader, sig)
	req.Header.Set(middleware.TimestampHeader, strconv.FormatInt(ts, 10))
	return req, nil
}
