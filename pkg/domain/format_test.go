package domain

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseModelFormat(t *testing.T) {
	f, err := ParseModelFormat("marcs")
	require.NoError(t, err)
	assert.Equal(t, FormatMARCS, f)

	f, err = ParseModelFormat("mesa")
	require.NoError(t, err)
	assert.Equal(t, FormatMESA, f)
}

func TestParseModelFormat_Unsupported(t *testing.T) {
	for _, in := range []string{"foo", "MARCS", "Mesa", "", " marcs"} {
		_, err := ParseModelFormat(in)

		var unsupported *UnsupportedModelTypeError
		require.True(t, errors.As(err, &unsupported), "input %q", in)
		assert.Equal(t, in, unsupported.Type)
		assert.ErrorIs(t, err, ErrUnsupportedModelType)
	}
}

func TestModelFormat_String(t *testing.T) {
	assert.Equal(t, "marcs", FormatMARCS.String())
	assert.Equal(t, "mesa", FormatMESA.String())
	assert.Equal(t, "unknown", ModelFormat(0).String())
	assert.Len(t, ModelFormats(), 2)
}

func TestErrorMessagesCarryContext(t *testing.T) {
	assert.Contains(t, (&UnsupportedModelTypeError{Type: "foo"}).Error(), `"foo"`)
	assert.Contains(t, (&InvalidTruncationError{Requested: -5}).Error(), "-5")

	parse := &ModelParseError{Format: FormatMESA, Path: "p.data", Line: 7, Err: errors.New("bad float")}
	assert.Equal(t, "mesa model p.data:7: bad float", parse.Error())
	assert.ErrorIs(t, parse, ErrModelParse)
}
