// Package render turns a record into a printable document.
package render

import (
	"bytes"
	_ "embed"
	"fmt"
	"html/template"

	"github.com/artem13815/cvpolish/pkg/cvparse"
)

//go:embed template.html
var pageTemplate string

var pageTmpl = template.Must(template.New("cv").Funcs(template.FuncMap{
	"period": period,
}).Parse(pageTemplate))

// HTML renders rec as a standalone HTML page. Output depends only on rec.
func HTML(rec cvparse.Record) ([]byte, error) {
	var buf bytes.Buffer
	if err := pageTmpl.Execute(&buf, rec); err != nil {
		return nil, fmt.Errorf("render html: %w", err)
	}
	return buf.Bytes(), nil
}

func period(start string, end *string, current bool) string {
	if start == "" || start == cvparse.UnknownValue {
		start = ""
	}
	to := ""
	switch {
	case end != nil:
		to = *end
	case current:
		to = "Present"
	}
	switch {
	case start != "" && to != "":
		return start + " – " + to
	case start != "":
		return start
	default:
		return to
	}
}
