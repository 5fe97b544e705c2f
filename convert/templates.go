package convert

import (
	"bytes"
	"fmt"
	"path/filepath"
	"strings"
	"text/template"

	sprig "github.com/go-task/slim-sprig/v3"

	"fsc/config"
)

// Values holds variables we make available for template expansion
type Values struct {
	Context string
	Name    string
	Dir     string
	Title   string
	ID      string
	Lang    string
}

func buildValues(c *Content, name config.TemplateFieldName) Values {
	v := Values{
		Context: string(name),
		Name:    strings.TrimSuffix(filepath.Base(c.SrcName), filepath.Ext(c.SrcName)),
		Dir:     filepath.ToSlash(filepath.Dir(c.SrcName)),
	}
	if v.Dir == "." {
		v.Dir = ""
	}
	if c.Doc != nil {
		v.Title = c.Doc.Title()
		v.ID = c.Doc.ID
		if opts := c.Doc.Options(); opts != nil {
			v.Lang = opts.Lang.String()
		}
	}
	return v
}

func expandTemplate(c *Content, name config.TemplateFieldName, field string) (string, error) {
	funcMap := sprig.FuncMap()

	tmpl, err := template.New(string(name)).Funcs(funcMap).Parse(field)
	if err != nil {
		return "", fmt.Errorf("unable to parse template field %s: %w", name, err)
	}

	buf := new(bytes.Buffer)
	if err := tmpl.Execute(buf, buildValues(c, name)); err != nil {
		return "", err
	}
	return buf.String(), nil
}
