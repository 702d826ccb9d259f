// Package preview renders a CV record into the HTML document that the
// capture stage rasterizes.
package preview

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"strconv"
	"strings"
	"time"

	"cv-builder/internal/model"
)

// SurfaceID is the id of the element holding the rendered CV.
const SurfaceID = "cv-preview"

//go:embed templates/*.html
var templateFS embed.FS

var fontStacks = map[model.FontFamily]struct {
	Family string
	Query  string
}{
	model.FontRoboto:       {Family: "'Roboto', sans-serif", Query: "Roboto:wght@300;400;500;700"},
	model.FontLato:         {Family: "'Lato', sans-serif", Query: "Lato:wght@300;400;700"},
	model.FontMontserrat:   {Family: "'Montserrat', sans-serif", Query: "Montserrat:wght@300;400;500;700"},
	model.FontMerriweather: {Family: "'Merriweather', serif", Query: "Merriweather:wght@300;400;700"},
}

var tpl = template.Must(template.New("layout.html").Funcs(template.FuncMap{
	"formatDate": FormatDate,
	"lines":      DescriptionLines,
	"rgba":       hexToRGBA,
	"photo":      photoURL,
}).ParseFS(templateFS, "templates/*.html"))

type pageData struct {
	CV         model.CV
	Skills     []string
	Accent     string
	Template   string
	FontFamily template.CSS
	FontURL    template.URL
	SurfaceID  string
}

// Render executes the selected template. Unknown templates and fonts fall
// back to classic and lato.
func Render(cv model.CV, opts model.Options) (string, error) {
	name := opts.Template
	if !name.Valid() {
		name = model.TemplateClassic
	}
	font, ok := fontStacks[opts.Font]
	if !ok {
		font = fontStacks[model.FontLato]
	}
	accent := opts.AccentColor
	if accent == "" {
		accent = model.Palette[0]
	}

	data := pageData{
		CV:         cv,
		Skills:     cv.SkillList(),
		Accent:     accent,
		Template:   string(name),
		FontFamily: template.CSS(font.Family),
		FontURL:    template.URL("https://fonts.googleapis.com/css2?family=" + font.Query + "&display=swap"),
		SurfaceID:  SurfaceID,
	}

	var buf bytes.Buffer
	if err := tpl.ExecuteTemplate(&buf, "layout.html", data); err != nil {
		return "", fmt.Errorf("render %s template: %w", name, err)
	}
	return buf.String(), nil
}

// FormatDate turns "2021-07" into "Jul 2021". "present" in any case is
// printed as "Present"; anything unparseable is returned unchanged.
func FormatDate(s string) string {
	if s == "" {
		return ""
	}
	if strings.EqualFold(s, "present") {
		return "Present"
	}
	t, err := time.Parse("2006-01", s)
	if err != nil {
		return s
	}
	return t.Format("Jan 2006")
}

// DescriptionLines splits a free-text description into its non-blank lines.
func DescriptionLines(text string) []string {
	var out []string
	for _, line := range strings.Split(text, "\n") {
		if strings.TrimSpace(line) != "" {
			out = append(out, line)
		}
	}
	return out
}

func hexToRGBA(hex string, alpha float64) template.CSS {
	if len(hex) != 7 || hex[0] != '#' {
		return template.CSS("transparent")
	}
	var c [3]uint64
	for i := range c {
		v, err := strconv.ParseUint(hex[1+2*i:3+2*i], 16, 8)
		if err != nil {
			return template.CSS("transparent")
		}
		c[i] = v
	}
	return template.CSS(fmt.Sprintf("rgba(%d, %d, %d, %s)", c[0], c[1], c[2], strconv.FormatFloat(alpha, 'f', -1, 64)))
}

// photoURL lets embedded data URLs through the html/template URL filter.
func photoURL(s string) template.URL {
	switch {
	case strings.HasPrefix(s, "data:image/"), strings.HasPrefix(s, "https://"), strings.HasPrefix(s, "http://"):
		return template.URL(s)
	}
	return ""
}

// ValidPhotoURL reports whether s is a profile picture the templates will show.
func ValidPhotoURL(s string) bool { return photoURL(s) != "" }
