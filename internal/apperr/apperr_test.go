package apperr

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestKindOfWrappedError(t *testing.T) {
	base := New(KindConflict, "payment_already_pending")
	wrapped := fmt.Errorf("create payment: %w", base)

	assert.Equal(t, KindConflict, KindOf(wrapped))
	assert.Equal(t, "payment_already_pending", MsgKeyOf(wrapped))
	assert.True(t, Is(wrapped, KindConflict))
	assert.False(t, Is(wrapped, KindValidation))
}

func TestKindOfForeignError(t *testing.T) {
	assert.Equal(t, KindInternal, KindOf(errors.New("boom")))
	assert.Equal(t, "", MsgKeyOf(errors.New("boom")))
}

func TestCodeFollowsKind(t *testing.T) {
	cases := map[Kind]string{
		KindTransport:  "TRANSPORT",
		KindValidation: "VALIDATION",
		KindState:      "STATE",
		KindConflict:   "CONFLICT",
		KindNotFound:   "NOT_FOUND",
		KindInternal:   "INTERNAL",
	}
	for kind, want := range cases {
		assert.Equal(t, want, New(kind, "k").Code())
	}
}

func TestUnwrapKeepsCause(t *testing.T) {
	cause := errors.New("duplicate key")
	err := Wrap(KindConflict, "payment_already_pending", cause)
	assert.ErrorIs(t, err, cause)
}

func TestConflictCarriesStatus(t *testing.T) {
	err := Conflict("payment_already_pending", "pending")
	assert.Equal(t, "pending", err.Status)
	assert.Equal(t, KindConflict, err.Kind)
}
