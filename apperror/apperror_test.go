package apperror

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestKindOf(t *testing.T) {
	assert.Equal(t, KindValidation, KindOf(Validation("bad", nil)))
	assert.Equal(t, KindNotFound, KindOf(fmt.Errorf("wrapped: %w", NotFound("missing"))))
	assert.Equal(t, KindAuth, KindOf(Unauthorized("nope")))
	assert.Equal(t, KindInternal, KindOf(errors.New("boom")))
}

func TestHTTPStatus(t *testing.T) {
	assert.Equal(t, http.StatusUnprocessableEntity, KindValidation.HTTPStatus())
	assert.Equal(t, http.StatusNotFound, KindNotFound.HTTPStatus())
	assert.Equal(t, http.StatusUnauthorized, KindAuth.HTTPStatus())
	assert.Equal(t, http.StatusInternalServerError, KindInternal.HTTPStatus())
}

func TestInternalKeepsCause(t *testing.T) {
	cause := errors.New("connection refused")
	err := Internal("failed to count orders", cause)

	assert.ErrorIs(t, err, cause)
	assert.Equal(t, "failed to count orders: connection refused", err.Error())
	assert.False(t, Is(nil, KindInternal))
}
