package receipt

import (
	"crypto/sha256"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/gorilla/securecookie"
	"golang.org/x/crypto/hkdf"

	"github.com/example/table-reservations/internal/booking"
)

const (
	name    = "tablebook_receipt"
	keyInfo = "tablebook receipt keys v1"
)

var ErrInvalidReceipt = errors.New("invalid or expired receipt")

// Issuer turns confirmations into signed, encrypted tokens and back.
// A receipt is self-contained: nothing is stored on issue.
type Issuer struct {
	sc *securecookie.SecureCookie
}

// DeriveKeys expands one secret into the hash (HMAC-SHA256) and block (AES-256) keys.
func DeriveKeys(secret []byte) (hashKey, blockKey []byte, err error) {
	if len(secret) == 0 {
		return nil, nil, errors.New("receipt secret is empty")
	}
	r := hkdf.New(sha256.New, secret, nil, []byte(keyInfo))
	keys := make([]byte, 64)
	if _, err := io.ReadFull(r, keys); err != nil {
		return nil, nil, fmt.Errorf("derive receipt keys: %w", err)
	}
	return keys[:32], keys[32:], nil
}

func New(secret []byte, maxAge time.Duration) (*Issuer, error) {
	hashKey, blockKey, err := DeriveKeys(secret)
	if err != nil {
		return nil, err
	}
	sc := securecookie.New(hashKey, blockKey)
	sc.MaxAge(int(maxAge.Seconds()))
	sc.SetSerializer(securecookie.JSONEncoder{})
	return &Issuer{sc: sc}, nil
}

func (i *Issuer) Issue(c booking.Confirmation) (string, error) {
	token, err := i.sc.Encode(name, c)
	if err != nil {
		return "", fmt.Errorf("issue receipt: %w", err)
	}
	return token, nil
}

func (i *Issuer) Open(token string) (booking.Confirmation, error) {
	var c booking.Confirmation
	if err := i.sc.Decode(name, token, &c); err != nil {
		return booking.Confirmation{}, fmt.Errorf("%w: %v", ErrInvalidReceipt, err)
	}
	return c, nil
}
