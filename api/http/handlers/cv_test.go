package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/artem13815/cvpolish/pkg/cvparse"
	"github.com/artem13815/cvpolish/pkg/improve"
	"github.com/artem13815/cvpolish/pkg/render"
)

const cvText = `Jane Doe
jane.doe@example.com
Experience
2019 - 2021
Software Engineer
Acme Corp
Skills
Go, Rust, Docker
`

type fakeImprover struct{ err error }

func (f fakeImprover) Improve(_ context.Context, rec cvparse.Record) (cvparse.Record, error) {
	out := rec.Clone()
	for i := range out.Experiences {
		out.Experiences[i].Description = strings.ToUpper(out.Experiences[i].Description)
	}
	return out, f.err
}

type fakeRenderer struct{ err error }

func (f fakeRenderer) PDF(context.Context, cvparse.Record) ([]byte, error) {
	if f.err != nil {
		return nil, f.err
	}
	return []byte("%PDF-1.7"), nil
}

func newCVApp(imp Improver, r PDFRenderer) *fiber.App {
	h := NewCVHandler(cvparse.New(cvparse.WithIDGenerator(cvparse.SequentialIDs("t"))), imp, r,
		CVOptions{MaxBytes: 1 << 16, MinTextChars: 50}, nil)
	app := fiber.New()
	app.Post("/cv/parse", h.Parse)
	app.Post("/cv/prefill", h.Prefill)
	app.Post("/cv/improve", h.Improve)
	app.Post("/cv/pdf", h.PDF)
	return app
}

func doJSON(t *testing.T, app *fiber.App, path string, body any) (*http.Response, []byte) {
	t.Helper()
	var raw []byte
	switch b := body.(type) {
	case string:
		raw = []byte(b)
	default:
		var err error
		raw, err = json.Marshal(b)
		require.NoError(t, err)
	}
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(raw))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	out, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp, out
}

func multipartBody(t *testing.T, filename, content string) (*bytes.Buffer, string) {
	t.Helper()
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	fw, err := w.CreateFormFile("file", filename)
	require.NoError(t, err)
	_, err = fw.Write([]byte(content))
	require.NoError(t, err)
	require.NoError(t, w.Close())
	return &buf, w.FormDataContentType()
}

func TestCV_ParseText(t *testing.T) {
	app := newCVApp(nil, nil)
	resp, body := doJSON(t, app, "/cv/parse", map[string]string{"text": cvText})
	require.Equal(t, http.StatusOK, resp.StatusCode, string(body))

	var got ParseResponse
	require.NoError(t, json.Unmarshal(body, &got))
	assert.False(t, got.ManualEntry)
	assert.Equal(t, "Jane Doe", got.Record.PersonalInfo.Name)
	require.Len(t, got.Record.Experiences, 1)
	assert.Equal(t, "Software Engineer", got.Record.Experiences[0].Position)
	assert.Len(t, got.Record.Skills, 3)
}

func TestCV_ParseFile(t *testing.T) {
	app := newCVApp(nil, nil)
	buf, ct := multipartBody(t, "cv.txt", cvText)
	req := httptest.NewRequest(http.MethodPost, "/cv/parse", buf)
	req.Header.Set("Content-Type", ct)
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	buf, ct = multipartBody(t, "cv.odt", cvText)
	req = httptest.NewRequest(http.MethodPost, "/cv/parse", buf)
	req.Header.Set("Content-Type", ct)
	resp, err = app.Test(req, -1)
	require.NoError(t, err)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestCV_ParseTooShort(t *testing.T) {
	app := newCVApp(nil, nil)
	resp, _ := doJSON(t, app, "/cv/parse", map[string]string{"text": "Jane Doe"})
	assert.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode)
}

func TestCV_Prefill(t *testing.T) {
	app := newCVApp(nil, nil)
	resp, body := doJSON(t, app, "/cv/prefill", `{
		"existing": {"personalInfo": {"name": "Jane D."}, "skills": [{"id":"u1","name":"golang"}]},
		"parsed": {"personalInfo": {"name": "Jane Doe", "email": "jane@example.com"},
		           "skills": [{"id":"p1","name":"Go"},{"id":"p2","name":"SQL"}]}
	}`)
	require.Equal(t, http.StatusOK, resp.StatusCode, string(body))

	var got cvparse.Record
	require.NoError(t, json.Unmarshal(body, &got))
	assert.Equal(t, "Jane D.", got.PersonalInfo.Name)
	require.NotNil(t, got.PersonalInfo.Email)
	assert.Equal(t, "jane@example.com", *got.PersonalInfo.Email)
	require.Len(t, got.Skills, 2)
	assert.Equal(t, "SQL", got.Skills[1].Name)

	resp, _ = doJSON(t, app, "/cv/prefill", `{"parsed": {"skills": []}}`)
	assert.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode)
}

func TestCV_Improve(t *testing.T) {
	rec := `{"personalInfo":{"name":"Jane"},"experiences":[{"position":"Dev","company":"Acme","description":"built apis"}]}`

	resp, _ := doJSON(t, newCVApp(nil, nil), "/cv/improve", rec)
	assert.Equal(t, http.StatusServiceUnavailable, resp.StatusCode)

	resp, body := doJSON(t, newCVApp(fakeImprover{}, nil), "/cv/improve", rec)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var got cvparse.Record
	require.NoError(t, json.Unmarshal(body, &got))
	assert.Equal(t, "BUILT APIS", got.Experiences[0].Description)

	resp, _ = doJSON(t, newCVApp(fakeImprover{err: improve.ErrLLMUnavailable}, nil), "/cv/improve", rec)
	assert.Equal(t, http.StatusServiceUnavailable, resp.StatusCode)

	resp, _ = doJSON(t, newCVApp(fakeImprover{}, nil), "/cv/improve", `{"bogus":true}`)
	assert.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode)
}

func TestCV_PDF(t *testing.T) {
	rec := `{"personalInfo":{"name":"Jane"}}`

	resp, body := doJSON(t, newCVApp(nil, fakeRenderer{}), "/cv/pdf", rec)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "application/pdf", resp.Header.Get("Content-Type"))
	assert.Equal(t, "%PDF-1.7", string(body))

	resp, _ = doJSON(t, newCVApp(nil, fakeRenderer{err: render.ErrRendererUnavailable}), "/cv/pdf", rec)
	assert.Equal(t, http.StatusServiceUnavailable, resp.StatusCode)
}
