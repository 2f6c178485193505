package solverr

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestError_UnwrapAndIs(t *testing.T) {
	cause := errors.New("boom")
	err := Wrap(cause, CodeSolveFailed, "lp failed")

	assert.ErrorIs(t, err, cause)
	assert.True(t, Is(err, CodeSolveFailed))
	assert.False(t, Is(err, CodeFatal))
}

func TestConstructors_CarryContext(t *testing.T) {
	err := CapacityUnreachable(3)
	assert.Equal(t, 3, err.Day)
	assert.True(t, err.HasDay)
	assert.Equal(t, CodeCapacityUnreachable, err.Code)

	patientErr := MandatoryUnassignable(7)
	assert.Equal(t, 7, patientErr.Patient)
	assert.True(t, patientErr.HasPatient)
}

func TestInvariantViolation_Panics(t *testing.T) {
	assert.PanicsWithValue(t, &Error{Code: CodeFatal, Message: "invariant I1 violated: duplicate"}, func() {
		InvariantViolation("I1", "duplicate")
	})
}

func TestNilError_FormatsSafely(t *testing.T) {
	var err *Error
	assert.Equal(t, "<nil>", err.Error())
}
