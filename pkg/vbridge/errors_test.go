package vbridge_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/vbridgekit/vbridge/pkg/vbridge"
)

func TestError_ErrorIncludesCause(t *testing.T) {
	cause := errors.New("underlying")
	e := &vbridge.Error{Kind: vbridge.ErrKindTypeMismatch, Msg: "bad type", Err: cause}
	assert.Equal(t, "bad type: underlying", e.Error())
	assert.ErrorIs(t, e, cause)
}

func TestError_ErrorWithoutCause(t *testing.T) {
	e := &vbridge.Error{Kind: vbridge.ErrKindReserved, Msg: "reserved"}
	assert.Equal(t, "reserved", e.Error())
	assert.Nil(t, e.Unwrap())
}

func TestErrKind_String(t *testing.T) {
	assert.Equal(t, "invalid_handle", vbridge.ErrKindInvalidHandle.String())
	assert.Equal(t, "type_mismatch", vbridge.ErrKindTypeMismatch.String())
	assert.Equal(t, "host_exception", vbridge.ErrKindHostException.String())
	assert.Equal(t, "reserved_handle", vbridge.ErrKindReserved.String())
	assert.Equal(t, "arity", vbridge.ErrKindArity.String())
}

func TestSentinels_MatchTheirKind(t *testing.T) {
	assert.Equal(t, vbridge.ErrKindInvalidHandle, vbridge.ErrInvalidHandle.Kind)
	assert.Equal(t, vbridge.ErrKindTypeMismatch, vbridge.ErrTypeMismatch.Kind)
	assert.Equal(t, vbridge.ErrKindReserved, vbridge.ErrReserved.Kind)
}
