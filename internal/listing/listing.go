package listing

import (
	"bytes"
	"encoding/json"
	"fmt"
	"html/template"
	"io"
	"strings"

	"github.com/muurk/k4tool/internal/k4"
)

// Supported output formats
const (
	FormatText = "text"
	FormatGrid = "grid"
	FormatHTML = "html"
	FormatJSON = "json"
)

// Formats lists the output formats in the order they are documented
var Formats = []string{FormatText, FormatGrid, FormatHTML, FormatJSON}

// Entry is one labelled patch name
type Entry struct {
	Label string `json:"label"`
	Name  string `json:"name"`
}

// Listing is the set of patch names of one bank dump, ready to render
type Listing struct {
	Title   string  `json:"title"`
	Singles []Entry `json:"singles"`
	Multis  []Entry `json:"multis"`
}

// New labels the names of a bank dump. title is usually the file name.
func New(title string, names *k4.BankNames) *Listing {
	return &Listing{
		Title:   title,
		Singles: label(names.Singles),
		Multis:  label(names.Multis),
	}
}

func label(names []string) []Entry {
	entries := make([]Entry, len(names))
	for i, name := range names {
		entries[i] = Entry{Label: k4.PatchLabel(i), Name: name}
	}
	return entries
}

// FormatError reports an unsupported output format
type FormatError struct {
	Format string
}

// Error implements the error interface
func (e *FormatError) Error() string {
	return fmt.Sprintf("unknown format %q (supported: %s)", e.Format, strings.Join(Formats, ", "))
}

// Write renders the listing in the named format.
func (l *Listing) Write(w io.Writer, format string) error {
	switch format {
	case FormatText:
		return l.WriteText(w)
	case FormatGrid:
		return l.WriteGrid(w)
	case FormatHTML:
		return l.WriteHTML(w)
	case FormatJSON:
		return l.WriteJSON(w)
	default:
		return &FormatError{Format: format}
	}
}

// Render returns the listing in the named format as a string.
func (l *Listing) Render(format string) (string, error) {
	var buf bytes.Buffer
	if err := l.Write(&buf, format); err != nil {
		return "", err
	}
	return buf.String(), nil
}

// ValidFormat reports whether format is one of Formats.
func ValidFormat(format string) bool {
	for _, f := range Formats {
		if f == format {
			return true
		}
	}
	return false
}

// WriteText writes one "A-1: NAME" line per patch, singles first.
func (l *Listing) WriteText(w io.Writer) error {
	var sb strings.Builder

	sb.WriteString("SINGLE PATCHES\n")
	for _, e := range l.Singles {
		fmt.Fprintf(&sb, "%s: %s\n", e.Label, e.Name)
	}

	sb.WriteString("\nMULTI PATCHES\n")
	for _, e := range l.Multis {
		fmt.Fprintf(&sb, "%s: %s\n", e.Label, e.Name)
	}

	_, err := io.WriteString(w, sb.String())
	return err
}

// WriteGrid lays each category out as 16 rows with one column per bank,
// the way the names appear on the K4's panel.
func (l *Listing) WriteGrid(w io.Writer) error {
	var sb strings.Builder

	sb.WriteString("SINGLE patches:\n")
	writeGrid(&sb, "S", l.Singles)

	sb.WriteString("\nMULTI patches:\n")
	writeGrid(&sb, "M", l.Multis)

	_, err := io.WriteString(w, sb.String())
	return err
}

func writeGrid(sb *strings.Builder, prefix string, entries []Entry) {
	banks := len(k4.BankLetters)
	for row := 0; row < k4.PatchesPerBank; row++ {
		for bank := 0; bank < banks; bank++ {
			i := bank*k4.PatchesPerBank + row
			if i >= len(entries) {
				continue
			}
			fmt.Fprintf(sb, "%s%-5s %-*s  ", prefix, entries[i].Label, k4.NameLength, entries[i].Name)
		}
		sb.WriteString("\n")
	}
}

// gridTable is a category arranged for the HTML template
type gridTable struct {
	Category string
	Banks    []string
	Rows     []gridRow
}

type gridRow struct {
	Number int
	Names  []string
}

func newGridTable(category string, entries []Entry) gridTable {
	t := gridTable{Category: category}
	for _, letter := range k4.BankLetters {
		t.Banks = append(t.Banks, string(letter))
	}
	for row := 0; row < k4.PatchesPerBank; row++ {
		r := gridRow{Number: row + 1}
		for bank := range t.Banks {
			i := bank*k4.PatchesPerBank + row
			if i < len(entries) {
				r.Names = append(r.Names, entries[i].Name)
			}
		}
		t.Rows = append(t.Rows, r)
	}
	return t
}

var htmlTemplate = template.Must(template.New("listing").Parse(`<h1>{{.Title}}</h1>
{{range .Tables}}<table>
<tr>
    <th>{{.Category}}</th>{{range .Banks}}
    <th>{{.}}</th>{{end}}
</tr>
{{range .Rows}}<tr>
    <td>{{.Number}}</td>{{range .Names}}
    <td>{{.}}</td>{{end}}
</tr>
{{end}}</table>
{{end}}`))

// WriteHTML writes a title and one table per category. Names are escaped.
func (l *Listing) WriteHTML(w io.Writer) error {
	data := struct {
		Title  string
		Tables []gridTable
	}{
		Title: l.Title,
		Tables: []gridTable{
			newGridTable("SINGLE", l.Singles),
			newGridTable("MULTI", l.Multis),
		},
	}
	if err := htmlTemplate.Execute(w, data); err != nil {
		return fmt.Errorf("failed to render HTML listing: %w", err)
	}
	return nil
}

// WriteJSON writes the listing as indented JSON.
func (l *Listing) WriteJSON(w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(l); err != nil {
		return fmt.Errorf("failed to encode JSON listing: %w", err)
	}
	return nil
}
