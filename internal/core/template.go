package core

import (
	"bytes"
	"text/template"

	"github.com/Masterminds/sprig/v3"
)

// ExecuteTemplate renders content with sprig functions available.
// missingkey=zero lets sprig's default handle optional values.
func ExecuteTemplate(content string, data interface{}) (string, error) {
	tmpl, err := template.New("zguest").Funcs(sprig.TxtFuncMap()).Option("missingkey=zero").Parse(content)
	if err != nil {
		return "", err
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return "", err
	}

	return buf.String(), nil
}
