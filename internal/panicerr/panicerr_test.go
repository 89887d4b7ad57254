package panicerr

import (
	"errors"
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func Test_Recover(t *testing.T) {
	for _, tc := range []struct {
		name      string
		errStr    string
		wrapStr   string
		fun       func() error
		haveStack bool
	}{
		{
			name:   "normal",
			errStr: "",
			fun:    func() error { return nil },
		},
		{
			name:   "normal err",
			errStr: "bang",
			fun:    func() error { return errors.New("bang") },
		},
		{
			name:      "panic err",
			errStr:    "panic err paniced: bang",
			wrapStr:   "bang",
			haveStack: true,
			fun:       func() error { panic(errors.New("bang")) },
		},
		{
			name:      "string panic",
			errStr:    "string panic paniced: hello",
			haveStack: true,
			fun:       func() error { panic("hello") },
		},
		{
			name:   "exit",
			errStr: "exit called runtime.Goexit",
			fun:    func() error { runtime.Goexit(); return nil },
		},
	} {
		t.Run(tc.name, func(t *testing.T) {
			err := Recover(tc.name, tc.fun)
			if tc.errStr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Equal(t, tc.errStr, err.Error())
			if tc.wrapStr != "" {
				require.NotNil(t, errors.Unwrap(err))
				assert.Equal(t, tc.wrapStr, errors.Unwrap(err).Error())
			}
			if tc.haveStack {
				assert.True(t, IsPanic(err))
				assert.NotEmpty(t, PanicStack(err))
			} else {
				assert.True(t, IsExit(err) || !IsPanic(err))
			}
		})
	}
}

func Test_Call(t *testing.T) {
	assert.NoError(t, Call("ok", func() error { return nil }))

	err := Call("boom", func() error { panic("kaboom") })
	require.Error(t, err)
	assert.Equal(t, "boom paniced: kaboom", err.Error())
	assert.True(t, IsPanic(err))

	wrapped := errors.New("inner")
	err = Call("wrap", func() error { panic(wrapped) })
	assert.ErrorIs(t, err, wrapped)
}
