// Package scaffold creates new story files on disk.
package scaffold

import (
	"bytes"
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"text/template"

	"github.com/Masterminds/sprig/v3"

	"github.com/tatianab/bby/internal/story"
)

//go:embed templates/*.tmpl
var templateFS embed.FS

// ErrExists is returned when the story file is already on disk.
var ErrExists = errors.New("story file already exists")

var templates = template.Must(
	template.New("").Funcs(sprig.TxtFuncMap()).ParseFS(templateFS, "templates/*.tmpl"),
)

// fileName turns a story name into a file name. Spaces become underscores.
var fileName = template.Must(
	template.New("file").Funcs(sprig.TxtFuncMap()).Parse(`{{ .Name | trim | replace " " "_" }}.{{ .Ext }}`),
)

// checkName rejects story names that would escape the target directory.
func checkName(name string) error {
	name = strings.TrimSpace(name)
	switch {
	case name == "":
		return fmt.Errorf("story name is required")
	case strings.ContainsAny(name, `/\`) || strings.Contains(name, ".."):
		return fmt.Errorf("story name %q must not contain path separators or ..", name)
	case name == ".":
		return fmt.Errorf("story name %q is not a valid directory name", name)
	}
	return nil
}

// Path returns where Create will write the story called name.
func Path(dir, name string, format story.Format) (string, error) {
	if err := checkName(name); err != nil {
		return "", err
	}

	var buf bytes.Buffer
	err := fileName.Execute(&buf, struct{ Name, Ext string }{Name: name, Ext: format.Ext()})
	if err != nil {
		return "", fmt.Errorf("naming story file: %w", err)
	}
	return filepath.Join(dir, strings.TrimSpace(name), buf.String()), nil
}

// Render produces the starter two-room story in the given format.
func Render(title string, format story.Format) ([]byte, error) {
	tmpl := templates.Lookup(fmt.Sprintf("story.%s.tmpl", format.Ext()))
	if tmpl == nil {
		return nil, fmt.Errorf("no template for story format %q", format)
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, struct{ Title string }{Title: title}); err != nil {
		return nil, fmt.Errorf("rendering story: %w", err)
	}
	return buf.Bytes(), nil
}

// Create writes the starter story for name under dir/name and returns the
// path of the new file.
func Create(dir, name string, format story.Format) (string, error) {
	data, err := Render(strings.TrimSpace(name), format)
	if err != nil {
		return "", err
	}
	return Write(dir, name, format, data)
}

// Write stores an already rendered story document under dir/name. The
// document must decode as a story in the given format. Existing files are
// never overwritten.
func Write(dir, name string, format story.Format, data []byte) (string, error) {
	if err := checkName(name); err != nil {
		return "", err
	}
	if _, err := story.Decode(bytes.NewReader(data), format); err != nil {
		return "", fmt.Errorf("checking story: %w", err)
	}

	path, err := Path(dir, name, format)
	if err != nil {
		return "", err
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return "", fmt.Errorf("creating story directory: %w", err)
	}

	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if errors.Is(err, fs.ErrExist) {
		return "", fmt.Errorf("%w: %s", ErrExists, path)
	}
	if err != nil {
		return "", fmt.Errorf("creating story file: %w", err)
	}

	if _, err := f.Write(data); err != nil {
		_ = f.Close()
		return "", fmt.Errorf("writing story file: %w", err)
	}
	if err := f.Close(); err != nil {
		return "", fmt.Errorf("writing story file: %w", err)
	}
	return path, nil
}
