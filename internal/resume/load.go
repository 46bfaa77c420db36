package resume

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/ledongthuc/pdf"
	"github.com/nguyenthenguyen/docx"
	"gopkg.in/yaml.v3"
)

// Load reads a resume from path. JSON and YAML files fill the structured
// fields; PDF, DOCX and plain-text files are reduced to Raw text.
func Load(path string) (Data, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return Data{}, fmt.Errorf("failed to read resume: %w", err)
	}

	var d Data
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".json":
		if err := json.Unmarshal(raw, &d); err != nil {
			return Data{}, fmt.Errorf("failed to parse resume %s: %w", path, err)
		}
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(raw, &d); err != nil {
			return Data{}, fmt.Errorf("failed to parse resume %s: %w", path, err)
		}
	case ".pdf":
		text, err := pdfText(raw)
		if err != nil {
			return Data{}, err
		}
		d.Raw = text
	case ".docx":
		text, err := docxText(raw)
		if err != nil {
			return Data{}, err
		}
		d.Raw = text
	default:
		d.Raw = string(raw)
	}

	if d.Raw == "" && d.Name == "" && len(d.Experience) == 0 {
		return Data{}, fmt.Errorf("resume %s is empty", path)
	}
	return d, nil
}

func pdfText(data []byte) (string, error) {
	r, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", fmt.Errorf("failed to read pdf: %w", err)
	}
	var b strings.Builder
	for i := 1; i <= r.NumPage(); i++ {
		page := r.Page(i)
		if page.V.IsNull() {
			continue
		}
		text, _ := page.GetPlainText(nil)
		b.WriteString(text)
	}
	return b.String(), nil
}

func docxText(data []byte) (string, error) {
	doc, err := docx.ReadDocxFromMemory(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", fmt.Errorf("failed to parse docx: %w", err)
	}
	defer doc.Close()
	return doc.Editable().GetContent(), nil
}

// Save writes d to path as YAML for .yaml/.yml files and as JSON otherwise.
// Document formats cannot be written back.
func Save(path string, d Data) error {
	var (
		data []byte
		err  error
	)
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".yaml", ".yml":
		data, err = yaml.Marshal(d)
	case ".pdf", ".docx":
		return fmt.Errorf("cannot write resume as %s; use .json or .yaml", ext)
	default:
		data, err = json.MarshalIndent(d, "", "  ")
		data = append(data, '\n')
	}
	if err != nil {
		return fmt.Errorf("failed to encode resume: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write resume: %w", err)
	}
	return nil
}
