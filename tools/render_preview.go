package main

import (
	"fmt"
	"os"
	"path/filepath"

	"cv-builder/internal/model"
	"cv-builder/pkg/preview"
)

// Writes the preview HTML for a CV JSON file (or the sample CV) so template
// changes can be checked in a browser without running an export.
func main() {
	var cv model.CV
	if len(os.Args) < 2 {
		cv = model.SampleCV()
	} else {
		b, err := os.ReadFile(os.Args[1])
		if err != nil {
			fmt.Fprintf(os.Stderr, "read cv: %v\n", err)
			os.Exit(2)
		}
		if cv, err = model.DecodeCV(b); err != nil {
			fmt.Fprintf(os.Stderr, "decode cv: %v\n", err)
			os.Exit(2)
		}
	}

	outDir := filepath.Join("resume-data", "generated")
	if err := os.MkdirAll(outDir, 0o755); err != nil {
		fmt.Fprintf(os.Stderr, "create out dir: %v\n", err)
		os.Exit(2)
	}
	for _, t := range []model.Template{model.TemplateClassic, model.TemplateModern, model.TemplateProfessional} {
		opts := model.DefaultOptions()
		opts.Template = t
		html, err := preview.Render(cv, opts)
		if err != nil {
			fmt.Fprintf(os.Stderr, "render %s: %v\n", t, err)
			os.Exit(2)
		}
		outFile := filepath.Join(outDir, "preview_"+string(t)+".html")
		if err := os.WriteFile(outFile, []byte(html), 0o644); err != nil {
			fmt.Fprintf(os.Stderr, "write out: %v\n", err)
			os.Exit(2)
		}
		fmt.Printf("wrote %s\n", outFile)
	}
}
