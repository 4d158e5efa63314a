package apperr

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHTTPStatus(t *testing.T) {
	cases := []struct {
		err  error
		want int
	}{
		{InvalidErr("bad", nil), http.StatusBadRequest},
		{NotFoundErr("gone"), http.StatusNotFound},
		{ConflictErr("again"), http.StatusConflict},
		{UpstreamErr("Network error", errors.New("dial")), http.StatusBadGateway},
		{TimeoutErr("slow"), http.StatusGatewayTimeout},
		{Wrap(errors.New("x")), http.StatusInternalServerError},
		{errors.New("plain"), http.StatusInternalServerError},
		{fmt.Errorf("ctx: %w", NotFoundErr("gone")), http.StatusNotFound},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, HTTPStatus(tc.err), tc.err.Error())
	}
}

func TestPublicMessage(t *testing.T) {
	assert.Equal(t, "Network error", PublicMessage(UpstreamErr("Network error", errors.New("dial tcp"))))
	assert.Equal(t, defaultMessage, PublicMessage(errors.New("secret detail")))
	assert.Equal(t, defaultMessage, PublicMessage(Wrap(errors.New("secret detail"))))
}

func TestUnwrap(t *testing.T) {
	base := errors.New("root")
	assert.ErrorIs(t, UpstreamErr("m", base), base)
	assert.Nil(t, Wrap(nil))
}
