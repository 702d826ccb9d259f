// Command export renders a CV JSON document to a paginated A4 PDF without
// starting the HTTP service.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"cv-builder/internal/model"
	"cv-builder/internal/usecase"
	"cv-builder/pkg/document"
	infra "cv-builder/pkg/infrastructure"
)

func main() {
	in := flag.String("in", "", "CV JSON file (default: built-in sample CV)")
	outDir := flag.String("out", ".", "output directory")
	tmpl := flag.String("template", string(model.TemplateProfessional), "template: classic, modern or professional")
	font := flag.String("font", string(model.FontLato), "font: roboto, lato, montserrat or merriweather")
	accent := flag.String("accent", model.Palette[0], "accent colour as #rrggbb")
	timeout := flag.Duration("timeout", 60*time.Second, "browser capture timeout")
	flag.Parse()

	var cv model.CV
	if *in == "" {
		cv = model.SampleCV()
	} else {
		b, err := os.ReadFile(*in)
		if err != nil {
			log.Fatalf("read %s: %v", *in, err)
		}
		if cv, err = model.DecodeCV(b); err != nil {
			log.Fatalf("invalid CV %s: %v", *in, err)
		}
	}

	opts := model.Options{Template: model.Template(*tmpl), Font: model.FontFamily(*font), AccentColor: *accent}
	if err := model.ValidateOptions(opts); err != nil {
		log.Fatal(err)
	}

	renderer := infra.NewChromedpRenderer(infra.ChromedpOptions{AllowCrossOrigin: true, Timeout: *timeout})
	exporter := usecase.NewExporter(renderer, nil, "cv-builder")

	res, err := exporter.ExportCV(context.Background(), cv, opts)
	if err != nil {
		log.Fatalf("export: %v", err)
	}

	path := filepath.Join(*outDir, res.FileName)
	if err := os.WriteFile(path, res.PDF, 0o644); err != nil {
		log.Fatalf("write %s: %v", path, err)
	}

	pages, err := document.PageCount(res.PDF)
	if err != nil {
		slog.Warn("could not read back PDF", "error", err)
		pages = res.Pages
	}
	fmt.Printf("wrote %s (%d pages)\n", path, pages)
}
