package errors

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFromErrorWrapsUnknownErrors(t *testing.T) {
	err := FromError(fmt.Errorf("boom"))
	assert.Equal(t, ErrInternal.Code, err.Code)
	assert.Equal(t, http.StatusInternalServerError, err.Status)
	assert.Nil(t, FromError(nil))
}

func TestCloneKeepsCodeAndMatchesTemplate(t *testing.T) {
	cloned := Clone(ErrHoliday, "2026-05-01 is a holiday")
	assert.Equal(t, "2026-05-01 is a holiday", cloned.Message)
	assert.Equal(t, ErrHoliday.Status, cloned.Status)
	assert.True(t, errors.Is(cloned, ErrHoliday))
	assert.False(t, errors.Is(cloned, ErrConflict))

	wrapped := fmt.Errorf("check-in: %w", cloned)
	assert.True(t, errors.Is(wrapped, ErrHoliday))
	assert.Equal(t, ErrHoliday.Code, FromError(wrapped).Code)
}
