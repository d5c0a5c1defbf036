package errors_test

import (
	"fmt"
	"io"
	"testing"

	"codeberg.org/mutker/tempmon/internal/errors"
	"github.com/stretchr/testify/assert"
)

func TestErrorMessage(t *testing.T) {
	f := errors.New()

	assert.Equal(t, "Couldn't write to log file", f.New(errors.ErrWriteLog).Error())
	assert.Equal(t, "Couldn't write to log file: EOF", f.Wrap(errors.ErrWriteLog, io.EOF).Error())
	assert.Equal(t, "Invalid sample period: 0", f.WithData(errors.ErrInvalidPeriod, 0).Error())
	assert.Equal(t, "custom", f.WithMessage(errors.ErrInternal, "custom").Error())
	assert.Equal(t, "unknown_code", f.New(errors.ErrorCode("unknown_code")).Error())
}

func TestWrapUnwraps(t *testing.T) {
	err := errors.New().Wrap(errors.ErrReadInput, io.ErrUnexpectedEOF)

	assert.ErrorIs(t, err, io.ErrUnexpectedEOF)
	assert.Equal(t, errors.ErrReadInput, errors.CodeOf(err))
}

func TestHasCode(t *testing.T) {
	inner := errors.New().Wrap(errors.ErrWriteLog, io.ErrShortWrite)
	outer := fmt.Errorf("sampler: %w", inner)

	assert.True(t, errors.HasCode(outer, errors.ErrWriteLog))
	assert.False(t, errors.HasCode(outer, errors.ErrReadSensor))
	assert.Equal(t, errors.ErrWriteLog, errors.CodeOf(outer))
	assert.Equal(t, errors.ErrInternal, errors.CodeOf(io.EOF))
}
