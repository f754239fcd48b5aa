package convert

import (
	"bytes"
	"fmt"
	"path/filepath"
	"strings"
	"text/template"

	sprig "github.com/go-task/slim-sprig/v3"

	"docrender/config"
	"docrender/document"
)

// TitleField is data field exposed to templates as .Title.
const TitleField = "title"

// Values is a struct that holds variables we make available for template expansion
type Values struct {
	Context    string
	Title      string
	Language   string
	SourceFile string
	RunID      string
	// Blocks are document block ids in document order.
	Blocks []string
	// Fields are non empty scalar data fields.
	Fields map[string]string
}

func buildBlocks(blocks []document.Block) []string {
	result := make([]string, 0, len(blocks))
	for _, b := range blocks {
		result = append(result, b.ID)
	}
	return result
}

func buildFields(data document.Data) map[string]string {
	result := make(map[string]string, len(data))
	for k := range data {
		if v := data.Field(k); v != "" {
			result[k] = v
		}
	}
	return result
}

func expandTemplate(p *document.Payload, name config.TemplateFieldName, field, src, runID string) (string, error) {
	funcMap := sprig.FuncMap()

	tmpl, err := template.New(string(name)).Funcs(funcMap).Parse(field)
	if err != nil {
		return "", fmt.Errorf("unable to parse template field %s: %w", name, err)
	}

	values := Values{
		Context:    string(name),
		Title:      strings.TrimSpace(p.Data.Field(TitleField)),
		Language:   p.Options.Lang,
		SourceFile: strings.TrimSuffix(filepath.Base(src), filepath.Ext(src)),
		RunID:      runID,
		Blocks:     buildBlocks(p.Document.Blocks),
		Fields:     buildFields(p.Data),
	}

	buf := new(bytes.Buffer)
	if err := tmpl.Execute(buf, values); err != nil {
		return "", err
	}
	return buf.String(), nil
}
