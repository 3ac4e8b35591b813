package common

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestErrors(t *testing.T) {
	t.Parallel()
	errA := errors.New("first")
	errB := errors.New("second")
	errs := Errors{errA, errB}

	assert.Equal(t, "first, second", errs.Error())
	assert.ErrorIs(t, errs, errA)
	assert.ErrorIs(t, errs, errB)
}
