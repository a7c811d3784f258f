package ui

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lunixbochs/corntool/go/models"
)

func TestFormCodeRequest(t *testing.T) {
	st := DefaultState()
	f := NewForm(st)
	assert.Equal(t, "code", f.Get("mode"))
	assert.Equal(t, "x86_64", f.Get("arch"))
	assert.Equal(t, "no", f.Get("thumb"))

	f.Set("input", "90 90")
	f.Set("thumb", "yes")
	f.Set("rootfs", "")
	req, next, err := f.Request(st)
	require.NoError(t, err)
	code, ok := req.(*models.CodeRequest)
	require.True(t, ok)
	assert.Equal(t, "90 90", code.Input)
	assert.Equal(t, "hex", code.Format)
	assert.True(t, code.Thumb)
	assert.True(t, code.JSON)
	assert.Equal(t, ".", code.Rootfs)
	assert.Equal(t, "code", next.Mode)
	assert.Equal(t, *code, next.Code)
	// previous state is untouched
	assert.Equal(t, "", st.Code.Input)
}

func TestFormRunRequest(t *testing.T) {
	st := DefaultState()
	f := NewForm(st)
	f.Set("mode", "run")
	f.Set("rootfs", "/tmp/root")
	f.Set("args", `/bin/echo "hello world" x`)
	req, next, err := f.Request(st)
	require.NoError(t, err)
	run := req.(*models.RunRequest)
	assert.Equal(t, []string{"/bin/echo", "hello world", "x"}, run.Remainder)
	assert.Empty(t, run.Args)
	assert.Equal(t, "/tmp/root", run.Rootfs)
	assert.Equal(t, "run", next.Mode)

	f.Set("program", "/bin/echo")
	f.Set("args", "a b")
	req, _, err = f.Request(st)
	require.NoError(t, err)
	run = req.(*models.RunRequest)
	assert.Equal(t, "/bin/echo", run.Filename)
	assert.Equal(t, []string{"a", "b"}, run.Args)
	assert.Empty(t, run.Remainder)
}

func TestFormRunNeedsRootfs(t *testing.T) {
	st := DefaultState()
	f := NewForm(st)
	f.Set("mode", "run")
	f.Set("rootfs", "")
	_, _, err := f.Request(st)
	assert.IsType(t, &models.UsageError{}, err)
}

func TestFormBadValues(t *testing.T) {
	st := DefaultState()
	for key, value := range map[string]string{
		"mode":    "fuzz",
		"timeout": "soon",
		"root":    "maybe",
		"thumb":   "perhaps",
	} {
		f := NewForm(st)
		f.Set(key, value)
		_, _, err := f.Request(st)
		assert.IsType(t, &models.UsageError{}, err, key)
	}
}

func TestFormCommonOptions(t *testing.T) {
	st := DefaultState()
	f := NewForm(st)
	f.Set("input", "90")
	f.Set("timeout", "5")
	f.Set("root", "on")
	f.Set("verbose", "debug")
	f.Set("coverage", "out.cov")
	req, _, err := f.Request(st)
	require.NoError(t, err)
	code := req.(*models.CodeRequest)
	assert.Equal(t, 5, code.Timeout)
	assert.True(t, code.Root)
	assert.Equal(t, "debug", code.Verbose)
	assert.Equal(t, "out.cov", code.CoverageFile)
	assert.Equal(t, "drcov", code.CoverageFormat)

	// the saved state renders back into the same fields
	_, next, _ := f.Request(st)
	again := NewForm(next)
	assert.Equal(t, "5", again.Get("timeout"))
	assert.Equal(t, "yes", again.Get("root"))
}

func TestQuoteArgsRoundTrip(t *testing.T) {
	args := []string{"plain", "two words", `quo"te`, "it's", "a\tb", "a\nb", `back\slash`, "", "$(x);|&", "--flag=1"}
	st := DefaultState()
	st.Mode = "run"
	st.Run.Remainder = args
	f := NewForm(st)
	req, _, err := f.Request(st)
	require.NoError(t, err)
	assert.Equal(t, args, req.(*models.RunRequest).Remainder)
}

func TestQuoteArgs(t *testing.T) {
	assert.Equal(t, "/bin/echo -n", quoteArgs([]string{"/bin/echo", "-n"}))
	assert.Equal(t, `'a b' '' 'it'\''s'`, quoteArgs([]string{"a b", "", "it's"}))
}

func TestRouteLog(t *testing.T) {
	run := &models.RunRequest{}
	RouteLog(run, "/tmp/x.log")
	assert.True(t, run.NoConsole)
	assert.Equal(t, "/tmp/x.log", run.LogFile)

	code := &models.CodeRequest{}
	RouteLog(code, "y.log")
	assert.Equal(t, "y.log", code.LogFile)

	RouteLog(&models.ExamplesRequest{}, "z.log")
}

func TestFieldLabel(t *testing.T) {
	f := NewForm(DefaultState())
	assert.Equal(t, "mode", f.Field("mode").Label())
	assert.Equal(t, "arch (code)", f.Field("arch").Label())
	assert.Nil(t, f.Field("nope"))
	assert.Equal(t, "", f.Get("nope"))
}
