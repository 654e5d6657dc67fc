package apperror

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestKindOf(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want Kind
	}{
		{name: "direct", err: Validation("data is required"), want: KindValidation},
		{name: "wrapped", err: fmt.Errorf("request failed: %w", IO(errors.New("disk full"), "failed to write")), want: KindIO},
		{name: "foreign", err: errors.New("boom"), want: KindInternal},
		{name: "unknown action", err: UnknownAction("rotate"), want: KindUnknownAction},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, KindOf(tc.err))
		})
	}
}

func TestErrorMessageAndUnwrap(t *testing.T) {
	inner := errors.New("unexpected EOF")
	err := Decode(inner, "failed to decode image")

	assert.Equal(t, "failed to decode image: unexpected EOF", err.Error())
	assert.ErrorIs(t, err, inner)
	assert.ErrorIs(t, err, &Error{Kind: KindDecode})
	assert.NotErrorIs(t, err, &Error{Kind: KindPath})
}

func TestStatusOf(t *testing.T) {
	assert.Equal(t, http.StatusBadRequest, StatusOf(InvalidDimension("width is zero")))
	assert.Equal(t, http.StatusNotFound, StatusOf(NotFound(nil, "missing")))
	assert.Equal(t, http.StatusNotFound, StatusOf(UnknownAction("x")))
	assert.Equal(t, http.StatusInternalServerError, StatusOf(IO(nil, "write")))
	assert.Equal(t, http.StatusInternalServerError, StatusOf(errors.New("boom")))
}
