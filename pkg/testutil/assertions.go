package testutil

import (
	"fmt"
	"strings"
	"testing"

	"github.com/spf13/afero"

	"github.com/arthur-debert/printergen/pkg/errors"
)

// AssertErrorCode checks that err carries code.
func AssertErrorCode(t *testing.T, err error, code errors.ErrorCode, msgAndArgs ...interface{}) {
	t.Helper()

	if err == nil {
		t.Errorf("%sExpected error with code %s, got nil", formatMessage(msgAndArgs...), code)
		return
	}
	if got := errors.GetErrorCode(err); got != code {
		t.Errorf("%sExpected error code %s, got %s (%v)", formatMessage(msgAndArgs...), code, got, err)
	}
}

// AssertFileExists checks that path exists on fs.
func AssertFileExists(t *testing.T, fs afero.Fs, path string, msgAndArgs ...interface{}) {
	t.Helper()

	if ok, _ := afero.Exists(fs, path); !ok {
		t.Errorf("%sFile does not exist: %s", formatMessage(msgAndArgs...), path)
	}
}

// AssertNoFile checks that path does not exist on fs.
func AssertNoFile(t *testing.T, fs afero.Fs, path string, msgAndArgs ...interface{}) {
	t.Helper()

	if ok, _ := afero.Exists(fs, path); ok {
		t.Errorf("%sFile should not exist: %s", formatMessage(msgAndArgs...), path)
	}
}

// AssertPlistString checks a string value of a decoded plist.
func AssertPlistString(t *testing.T, d map[string]interface{}, key, want string, msgAndArgs ...interface{}) {
	t.Helper()

	got, ok := d[key].(string)
	if !ok {
		t.Errorf("%sKey %s is missing or not a string: %#v", formatMessage(msgAndArgs...), key, d[key])
		return
	}
	if got != want {
		t.Errorf("%s%s: expected %q, got %q", formatMessage(msgAndArgs...), key, want, got)
	}
}

// AssertScriptContains checks that the script stored at key contains every
// fragment.
func AssertScriptContains(t *testing.T, d map[string]interface{}, key string, fragments ...string) {
	t.Helper()

	script, ok := d[key].(string)
	if !ok {
		t.Errorf("Script %s is missing", key)
		return
	}
	for _, f := range fragments {
		if !strings.Contains(script, f) {
			t.Errorf("Script %s does not contain %q", key, f)
		}
	}
}

func formatMessage(msgAndArgs ...interface{}) string {
	if len(msgAndArgs) == 0 {
		return ""
	}
	if format, ok := msgAndArgs[0].(string); ok {
		if len(msgAndArgs) > 1 && strings.Contains(format, "%") {
			return fmt.Sprintf(format, msgAndArgs[1:]...) + "\n"
		}
	}
	parts := make([]string, len(msgAndArgs))
	for i, arg := range msgAndArgs {
		parts[i] = fmt.Sprint(arg)
	}
	return strings.Join(parts, " ") + "\n"
}
