package llm

import (
	"bytes"
	"io"
	"strings"

	json "github.com/goccy/go-json"
)

// DoneFrame terminates every stream an Adapter returns.
const DoneFrame = "data: [DONE]\n\n"

// WriteFrame writes v as one `data: {json}` event.
func WriteFrame(w io.Writer, v any) error {
	raw, err := json.Marshal(v)
	if err != nil {
		return err
	}
	return writeRawFrame(w, raw)
}

func writeRawFrame(w io.Writer, raw []byte) error {
	var buf bytes.Buffer
	buf.Grow(len(raw) + 8)
	buf.WriteString("data: ")
	buf.Write(bytes.TrimSpace(raw))
	buf.WriteString("\n\n")
	_, err := w.Write(buf.Bytes())
	return err
}

type readCloser struct {
	io.Reader
	close func() error
}

func (r readCloser) Close() error { return r.close() }

// withDone forwards an upstream SSE body and appends DoneFrame when it ends.
func withDone(body io.ReadCloser) io.ReadCloser {
	return readCloser{Reader: io.MultiReader(body, strings.NewReader(DoneFrame)), close: body.Close}
}

// singleFrame wraps a complete JSON response as one event plus DoneFrame.
func singleFrame(raw []byte) io.ReadCloser {
	var buf bytes.Buffer
	_ = writeRawFrame(&buf, raw)
	buf.WriteString(DoneFrame)
	return io.NopCloser(&buf)
}
