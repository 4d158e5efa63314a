// Package flash signs one-shot messages into a cookie so they survive the
// redirect after a POST.
package flash

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"encoding/json"
	"errors"
	"strings"
	"time"

	"github.com/atikurraha/admin-frontend/pkg/view"
)

var (
	ErrInvalid = errors.New("invalid flash cookie")
	ErrExpired = errors.New("expired flash cookie")
)

const DefaultTTL = 2 * time.Minute

type Codec struct {
	Secret     []byte
	CookieName string
	Secure     bool
	TTL        time.Duration

	now func() time.Time
}

func NewCodec(secret []byte, cookieName string, secure bool) *Codec {
	return &Codec{Secret: secret, CookieName: cookieName, Secure: secure, TTL: DefaultTTL, now: time.Now}
}

type envelope struct {
	view.Flash
	IssuedAt int64 `json:"iat"`
}

// Encode produces base64(json).base64(hmac).
func (c *Codec) Encode(f view.Flash) (string, error) {
	b, err := json.Marshal(envelope{Flash: f, IssuedAt: c.clock().Unix()})
	if err != nil {
		return "", err
	}
	payload := base64.RawURLEncoding.EncodeToString(b)
	return payload + "." + sign(c.Secret, payload), nil
}

func (c *Codec) Decode(v string) (*view.Flash, error) {
	payload, sig, ok := strings.Cut(v, ".")
	if !ok || !verify(c.Secret, payload, sig) {
		return nil, ErrInvalid
	}
	raw, err := base64.RawURLEncoding.DecodeString(payload)
	if err != nil {
		return nil, ErrInvalid
	}
	var env envelope
	if err := json.Unmarshal(raw, &env); err != nil {
		return nil, ErrInvalid
	}
	if strings.TrimSpace(env.Message) == "" {
		return nil, ErrInvalid
	}
	if c.clock().Sub(time.Unix(env.IssuedAt, 0)) > c.ttl() {
		return nil, ErrExpired
	}
	f := env.Flash
	return &f, nil
}

func (c *Codec) CookieMaxAge() int {
	return int(c.ttl().Seconds())
}

func (c *Codec) ttl() time.Duration {
	if c.TTL <= 0 {
		return DefaultTTL
	}
	return c.TTL
}

func (c *Codec) clock() time.Time {
	if c.now == nil {
		return time.Now()
	}
	return c.now()
}

func sign(secret []byte, payload string) string {
	mac := hmac.New(sha256.New, secret)
	mac.Write([]byte(payload))
	return base64.RawURLEncoding.EncodeToString(mac.Sum(nil))
}

func verify(secret []byte, payload, sig string) bool {
	return hmac.Equal([]byte(sign(secret, payload)), []byte(sig))
}
