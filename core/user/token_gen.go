package user

import (
	"bytes"
	"crypto/hmac"
	"crypto/sha256"
	"crypto/subtle"
	"encoding/base32"
	"encoding/base64"
	"errors"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/jdfgtrompete/explicacoes/core"
)

// Password reset tokens are "<base32 day stamp>-<HMAC signature>". The
// signature covers the user's ID, password hash and last login, so a token
// dies as soon as the password changes or the user logs in again.

var (
	salt    = []byte("explicacoes.core.user.token_gen")
	NowFunc = time.Now // mockable

	errInvalidToken = errors.New("invalid token")
	errTokenExpired = errors.New("token expired")
)

var b32 = base32.StdEncoding.WithPadding(base32.NoPadding)

// EncodeUID base64 encodes given User ID
func EncodeUID(usr User) string {
	return base64.RawURLEncoding.EncodeToString([]byte(usr.ID))
}

func decodeUID(uid string) (string, error) {
	idBytes, err := base64.RawURLEncoding.DecodeString(uid)
	if err != nil {
		return "", err
	}
	return string(idBytes), nil
}

// MakeToken generates a password reset token for a given User.
func MakeToken(usr User) (string, error) {
	return tokenAt(usr, dayStamp(NowFunc()))
}

// verifyToken checks a password reset token's signature and age.
func verifyToken(usr User, token string) error {
	parts := strings.SplitN(token, "-", 2)
	if token == "" || len(parts) < 2 {
		return errInvalidToken
	}

	raw, err := b32.DecodeString(parts[0])
	if err != nil {
		return errInvalidToken
	}
	stamp, err := strconv.Atoi(string(raw))
	if err != nil {
		return errInvalidToken
	}

	// re-derive and compare in constant time; a mismatch means the token
	// was tampered with or the account state moved on
	expected, err := tokenAt(usr, stamp)
	if err != nil {
		return err
	}
	if subtle.ConstantTimeCompare([]byte(expected), []byte(token)) == 0 {
		return errInvalidToken
	}

	maxAgeDays := int(core.Conf.PasswordResetTimeoutDelta / (24 * time.Hour))
	if dayStamp(time.Now())-stamp > maxAgeDays {
		return errTokenExpired
	}
	return nil
}

func tokenAt(usr User, stamp int) (string, error) {
	sig, err := sign(signPayload(usr, stamp))
	if err != nil {
		return "", err
	}
	return b32.EncodeToString([]byte(strconv.Itoa(stamp))) + "-" + sig, nil
}

// dayStamp counts days since 2001-01-01; tokens expire on day granularity.
func dayStamp(t time.Time) int {
	ref := time.Date(2001, time.January, 1, 0, 0, 0, 0, time.UTC)
	return int(math.Ceil(t.Sub(ref).Hours() / 24))
}

func sign(payload []byte) (string, error) {
	key := sha256.Sum256(append(salt, core.Conf.SecretKey...))
	h := hmac.New(sha256.New, key[:])
	if _, err := h.Write(payload); err != nil {
		return "", err
	}
	return base64.RawURLEncoding.EncodeToString(h.Sum(nil)), nil
}

func signPayload(usr User, stamp int) []byte {
	var val bytes.Buffer
	val.WriteString(usr.ID)
	val.Write(usr.PasswordHash)
	if !usr.LastLogin.IsZero() {
		val.WriteString(usr.LastLogin.String())
	}
	val.WriteString(strconv.Itoa(stamp))
	return val.Bytes()
}
