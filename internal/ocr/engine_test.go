package ocr

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeRunner struct {
	out, errb []byte
	err       error
	gotName   string
	gotArgs   []string
}

func (f *fakeRunner) Run(_ context.Context, name string, args ...string) ([]byte, []byte, error) {
	f.gotName = name
	f.gotArgs = args
	return f.out, f.errb, f.err
}

func TestExtractText(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		r := &fakeRunner{out: []byte("Scanned  text\r\nwith noise\n\n\n\nend")}
		e := NewEngine(Config{Lang: "eng"}, nil).WithRunner(r)

		got := e.ExtractText(context.Background(), "/tmp/scan.png")
		assert.Equal(t, "Scanned text\nwith noise\n\nend", got)
		assert.Equal(t, "tesseract", r.gotName)
		assert.Equal(t, []string{"/tmp/scan.png", "stdout", "-l", "eng"}, r.gotArgs)
	})

	t.Run("failure degrades to empty", func(t *testing.T) {
		r := &fakeRunner{err: errors.New("exit status 1"), errb: []byte("bad image")}
		e := NewEngine(Config{}, nil).WithRunner(r)
		assert.Empty(t, e.ExtractText(context.Background(), "/tmp/broken.png"))
	})

	t.Run("tessdata dir passed through", func(t *testing.T) {
		r := &fakeRunner{out: []byte("ok")}
		e := NewEngine(Config{TessdataDir: "/opt/tessdata"}, nil).WithRunner(r)
		e.ExtractText(context.Background(), "/tmp/scan.png")
		assert.Contains(t, r.gotArgs, "--tessdata-dir")
		assert.Contains(t, r.gotArgs, "/opt/tessdata")
	})
}

func TestExecRunnerUsesEngineLogger(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))
	e := NewEngine(Config{}, logger)

	r, ok := e.runner.(execRunner)
	require.True(t, ok)
	assert.Same(t, logger, r.logger)

	// Running a command that cannot exist emits through that logger.
	_, _, err := r.Run(context.Background(), "definitely-not-a-binary-4871")
	require.Error(t, err)
	assert.Contains(t, buf.String(), "ocr.exec.failed")
}

func TestNormalize(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"crlf", "a\r\nb", "a\nb"},
		{"tabs and runs", "a\t\tb   c", "a b c"},
		{"blank line collapse", "a\n\n\n\nb", "a\n\nb"},
		{"trailing space trimmed", "line   \nnext", "line\nnext"},
		{"empty", "", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Normalize(tt.in))
		})
	}
}
