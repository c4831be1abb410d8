package textextract

import (
	"archive/zip"
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func docx(t *testing.T, body string) []byte {
	t.Helper()
	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	w, err := zw.Create("word/document.xml")
	require.NoError(t, err)
	_, err = w.Write([]byte(`<?xml version="1.0"?><w:document><w:body>` + body + `</w:body></w:document>`))
	require.NoError(t, err)
	require.NoError(t, zw.Close())
	return buf.Bytes()
}

func TestExtract_Docx(t *testing.T) {
	data := docx(t,
		`<w:p><w:r><w:t>Jane   Doe</w:t></w:r></w:p>`+
			`<w:p><w:r><w:t>Skills</w:t></w:r></w:p>`+
			`<w:p><w:r><w:t>Go &amp; Rust</w:t><w:br/><w:t>Docker</w:t></w:r></w:p>`)

	got, err := Extract("CV.DOCX", data)
	require.NoError(t, err)
	assert.Equal(t, "Jane Doe\nSkills\nGo & Rust\nDocker", got)
}

func TestExtract_DocxEntitiesAndBreaks(t *testing.T) {
	data := docx(t,
		`<w:p><w:r><w:t>L&#8217;Or&#xE9;al &lt;R&amp;D&gt;</w:t></w:r></w:p>`+
			`<w:p><w:r><w:t>Page one</w:t><w:br w:type="page"/><w:t>Page two</w:t></w:r></w:p>`+
			`<w:p><w:r><w:t>Line</w:t><w:cr/><w:t>Next</w:t></w:r></w:p>`)

	got, err := Extract("cv.docx", data)
	require.NoError(t, err)
	assert.Equal(t, "L’Oréal <R&D>\nPage one\nPage two\nLine\nNext", got)
}

func TestExtract_DocxWithoutDocument(t *testing.T) {
	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	_, err := zw.Create("other.xml")
	require.NoError(t, err)
	require.NoError(t, zw.Close())

	_, err = Extract("cv.docx", buf.Bytes())
	assert.Error(t, err)
}

func TestExtract_Txt(t *testing.T) {
	got, err := Extract("cv.txt", []byte("  Jane\tDoe \r\n\n\nExperience\n"))
	require.NoError(t, err)
	assert.Equal(t, "Jane Doe\nExperience", got)
}

func TestExtract_Errors(t *testing.T) {
	_, err := Extract("cv.odt", []byte("x"))
	assert.ErrorIs(t, err, ErrUnsupportedFormat)

	_, err = Extract("cv.pdf", []byte("not a pdf"))
	assert.ErrorIs(t, err, ErrUnreadable)

	_, err = Extract("cv.docx", []byte("not a zip"))
	assert.ErrorIs(t, err, ErrUnreadable)
}

func TestSupported(t *testing.T) {
	assert.True(t, Supported("a.PDF"))
	assert.True(t, Supported("a.docx"))
	assert.True(t, Supported("a.txt"))
	assert.False(t, Supported("a.doc"))
	assert.False(t, Supported("noext"))
}

func TestCheckLength(t *testing.T) {
	assert.NoError(t, CheckLength("abcdé", 5))
	assert.ErrorIs(t, CheckLength("  abcd  ", 5), ErrTextTooShort)
	assert.ErrorIs(t, CheckLength("", 1), ErrTextTooShort)
}
