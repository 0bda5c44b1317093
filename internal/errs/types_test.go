package errs_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/deppfellow/contact-repository/internal/errs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestError_Error(t *testing.T) {
	t.Run("Should surface the driver message verbatim for database errors", func(t *testing.T) {
		driverErr := errors.New("dial tcp 127.0.0.1:5432: connect: connection refused")
		err := errs.NewDatabaseError(driverErr, nil)
		assert.Equal(t, driverErr.Error(), err.Error())
		assert.Equal(t, errs.CodeDatabase, err.Code)
		assert.ErrorIs(t, err, driverErr)
	})
	t.Run("Should return the message for internal errors", func(t *testing.T) {
		err := errs.NewInternalError("no record with id 12", nil)
		assert.Equal(t, "no record with id 12", err.Error())
		assert.Equal(t, errs.CodeInternal, err.Code)
		assert.Nil(t, err.Unwrap())
	})
}

func TestError_Is(t *testing.T) {
	notFound := &errs.Error{Kind: errs.KindInternal, Code: "CONTACT_NOT_FOUND"}

	t.Run("Should match sentinels by kind", func(t *testing.T) {
		err := fmt.Errorf("getting contact: %w", errs.NewDatabaseError(errors.New("boom"), nil))
		assert.ErrorIs(t, err, errs.ErrDatabase)
		assert.NotErrorIs(t, err, errs.ErrInternal)
	})
	t.Run("Should match sentinels by code", func(t *testing.T) {
		code := "CONTACT_NOT_FOUND"
		err := errs.NewNotFoundError("no record with id 7", &code)
		assert.ErrorIs(t, err, notFound)
		assert.ErrorIs(t, err, errs.ErrInternal)
		other := errs.NewNotFoundError("missing", nil)
		assert.NotErrorIs(t, other, notFound)
	})
	t.Run("Should not match foreign error types", func(t *testing.T) {
		err := errs.NewInternalError("x", nil)
		assert.False(t, err.Is(errors.New("x")))
	})
}

func TestKindOf(t *testing.T) {
	t.Run("Should find the kind through wrapping", func(t *testing.T) {
		err := fmt.Errorf("outer: %w", errs.NewInternalError("inner", nil))
		assert.Equal(t, errs.KindInternal, errs.KindOf(err))
		assert.True(t, errs.IsInternal(err))
		assert.False(t, errs.IsDatabase(err))
	})
	t.Run("Should return empty kind for plain errors", func(t *testing.T) {
		assert.Equal(t, errs.Kind(""), errs.KindOf(errors.New("plain")))
		assert.Equal(t, errs.Kind(""), errs.KindOf(nil))
	})
}

func TestError_WithMessage(t *testing.T) {
	t.Run("Should copy without mutating the original", func(t *testing.T) {
		base := errs.NewNotFoundError("not found", nil)
		custom := base.WithMessage("no record with id 3")
		require.NotSame(t, base, custom)
		assert.Equal(t, "not found", base.Message)
		assert.Equal(t, "no record with id 3", custom.Message)
		assert.Equal(t, base.Code, custom.Code)
		assert.Equal(t, base.Kind, custom.Kind)
	})
}

func TestMakeUpperCaseWithUnderscores(t *testing.T) {
	assert.Equal(t, "UNDEFINED_TABLE", errs.MakeUpperCaseWithUnderscores("undefined table"))
}
