package validation

import (
	"errors"
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
)

type listQuery struct {
	Page   int    `form:"page" validate:"gte=1"`
	Search string `form:"q,omitempty" validate:"max=5"`
}

func TestFromBindError_Fields(t *testing.T) {
	q := listQuery{Page: 0, Search: "too long"}
	err := validator.New().Struct(q)

	fe := FromBindError(err, &q)
	assert.Equal(t, "Must be at least 1.", fe["page"])
	assert.Equal(t, "Must be at most 5.", fe["q"])
	assert.Equal(t, "page: Must be at least 1. q: Must be at most 5.", fe.String())
}

func TestFromBindError_Other(t *testing.T) {
	fe := FromBindError(errors.New("strconv.ParseInt: invalid syntax"), &listQuery{})
	assert.Equal(t, FieldErrors{"_": "Invalid request parameters."}, fe)
}
