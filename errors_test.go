package docmd_test

import (
	"errors"
	"testing"

	"github.com/pmarkowski/docmd"
	"github.com/stretchr/testify/assert"
)

func TestErrorf(t *testing.T) {
	t.Parallel()

	err := docmd.Errorf(docmd.ENOTFOUND, "page %q not found", "test")

	assert.Equal(t, docmd.ENOTFOUND, docmd.ErrorCode(err))
	assert.Equal(t, "page \"test\" not found", docmd.ErrorMessage(err))
}

func TestErrorCode_NilError(t *testing.T) {
	t.Parallel()

	assert.Empty(t, docmd.ErrorCode(nil))
}

func TestErrorCode_NonApplicationError(t *testing.T) {
	t.Parallel()

	assert.Equal(t, docmd.EINTERNAL, docmd.ErrorCode(errors.New("boom")))
}

func TestErrorMessage_NilError(t *testing.T) {
	t.Parallel()

	assert.Empty(t, docmd.ErrorMessage(nil))
}
