package migration

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"text/template"
	"time"
	"unicode"
)

const versionLayout = "20060102150405"

var fileTemplate = template.Must(template.New("migration").Parse(`-- Migration: {{.Name}}{{if .Down}} (rollback){{end}}
-- Description: {{.Description}}

`))

// File describes a pair of migration files created on disk
type File struct {
	Version     string
	Name        string
	Description string
	UpPath      string
	DownPath    string
}

// Entry is one migration found in a source
type Entry struct {
	Version uint64
	Name    string
}

// String returns the file base name shared by the up and down files
func (e Entry) String() string {
	return strconv.FormatUint(e.Version, 10) + "_" + e.Name
}

// CreateMigration writes an empty up/down pair named after the current time
func CreateMigration(dir, name, description string, now time.Time) (*File, error) {
	slug := sanitizeName(name)
	if slug == "" {
		return nil, errors.New("migration name must contain letters or digits")
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create migrations directory: %w", err)
	}

	version := now.UTC().Format(versionLayout)
	base := version + "_" + slug
	f := &File{
		Version:     version,
		Name:        slug,
		Description: description,
		UpPath:      filepath.Join(dir, base+".up.sql"),
		DownPath:    filepath.Join(dir, base+".down.sql"),
	}

	if err := writeTemplate(f.UpPath, f, false); err != nil {
		return nil, err
	}
	if err := writeTemplate(f.DownPath, f, true); err != nil {
		_ = os.Remove(f.UpPath)
		return nil, err
	}
	return f, nil
}

func writeTemplate(path string, f *File, down bool) error {
	out, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", path, err)
	}
	defer out.Close()

	data := struct {
		*File
		Down bool
	}{f, down}
	if err := fileTemplate.Execute(out, data); err != nil {
		return fmt.Errorf("failed to render %s: %w", path, err)
	}
	return nil
}

// sanitizeName lower-cases name and joins its alphanumeric words with '_'
func sanitizeName(name string) string {
	words := strings.FieldsFunc(strings.ToLower(name), func(r rune) bool {
		return r == ' ' || r == '-' || r == '_'
	})
	for i, w := range words {
		words[i] = strings.Map(func(r rune) rune {
			if r < unicode.MaxASCII && (unicode.IsLetter(r) || unicode.IsDigit(r)) {
				return r
			}
			return -1
		}, w)
	}
	kept := words[:0]
	for _, w := range words {
		if w != "" {
			kept = append(kept, w)
		}
	}
	return strings.Join(kept, "_")
}

// ListMigrations returns the migrations in fsys ordered by version.
// Files that do not follow the <version>_<name>.up.sql pattern are ignored.
func ListMigrations(fsys fs.FS) ([]Entry, error) {
	files, err := fs.ReadDir(fsys, ".")
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return []Entry{}, nil
		}
		return nil, fmt.Errorf("failed to read migrations: %w", err)
	}

	entries := make([]Entry, 0, len(files)/2)
	for _, file := range files {
		if file.IsDir() {
			continue
		}
		base, ok := strings.CutSuffix(file.Name(), ".up.sql")
		if !ok {
			continue
		}
		rawVersion, name, ok := strings.Cut(base, "_")
		if !ok {
			continue
		}
		version, err := strconv.ParseUint(rawVersion, 10, 64)
		if err != nil {
			continue
		}
		entries = append(entries, Entry{Version: version, Name: name})
	}

	sort.Slice(entries, func(i, j int) bool { return entries[i].Version < entries[j].Version })
	return entries, nil
}
