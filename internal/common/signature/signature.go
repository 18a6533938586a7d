// Package signature signs and verifies API calls with Ethereum keys.
//
// A call is identified by its method, path, unix timestamp and raw body.
// The signed digest is the EIP-191 personal message hash of
// "METHOD\nPATH\nTIMESTAMP\nBODY", so wallets that implement personal_sign
// can produce it.
package signature

import (
	"crypto/ecdsa"
	"errors"
	"fmt"
	"strconv"

	"github.com/ethereum/go-ethereum/accounts"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/ethereum/go-ethereum/crypto"
)

var ErrInvalidSignature = errors.New("invalid signature")

// Message builds the text that gets signed for a call.
func Message(method, path string, timestamp int64, body []byte) []byte {
	msg := make([]byte, 0, len(method)+len(path)+len(body)+24)
	msg = append(msg, method...)
	msg = append(msg, '\n')
	msg = append(msg, path...)
	msg = append(msg, '\n')
	msg = strconv.AppendInt(msg, timestamp, 10)
	msg = append(msg, '\n')
	msg = append(msg, body...)
	return msg
}

// Sign returns the 0x-prefixed 65-byte signature for a call.
func Sign(key *ecdsa.PrivateKey, method, path string, timestamp int64, body []byte) (string, error) {
	sig, err := crypto.Sign(accounts.TextHash(Message(method, path, timestamp, body)), key)
	if err != nil {
		return "", fmt.Errorf("sign call: %w", err)
	}
	return hexutil.Encode(sig), nil
}

// Recover returns the account that produced sig for the call.
func Recover(sig string, method, path string, timestamp int64, body []byte) (common.Address, error) {
	raw, err := hexutil.Decode(sig)
	if err != nil || len(raw) != crypto.SignatureLength {
		return common.Address{}, ErrInvalidSignature
	}
	// wallets emit V as 27/28
	if raw[crypto.RecoveryIDOffset] >= 27 {
		raw[crypto.RecoveryIDOffset] -= 27
	}
	pub, err := crypto.SigToPub(accounts.TextHash(Message(method, path, timestamp, body)), raw)
	if err != nil {
		return common.Address{}, fmt.Errorf("%w: %v", ErrInvalidSignature, err)
	}
	return crypto.PubkeyToAddress(*pub), nil
}

// Verify checks that sig was produced by account for the call.
func Verify(account common.Address, sig string, method, path string, timestamp int64, body []byte) error {
	signer, err := Recover(sig, method, path, timestamp, body)
	if err != nil {
		return err
	}
	if signer != account {
		return fmt.Errorf("%w: signed by %s", ErrInvalidSignature, signer.Hex())
	}
	return nil
}
