package model

import (
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/xeipuuv/gojsonschema"
)

//go:embed cv.schema.json
var cvSchema []byte

var schemaLoader = gojsonschema.NewBytesLoader(cvSchema)

var ErrInvalidOptions = errors.New("invalid display options")

// ValidateJSON validates a raw CV document against cv.schema.json.
func ValidateJSON(doc []byte) error {
	return validate(gojsonschema.NewBytesLoader(doc))
}

// DecodeCV validates doc and decodes it into a new record. Fields the
// document leaves out stay empty; entries without an id get one.
func DecodeCV(doc []byte) (CV, error) {
	if err := ValidateJSON(doc); err != nil {
		return CV{}, err
	}
	var cv CV
	if err := json.Unmarshal(doc, &cv); err != nil {
		return CV{}, fmt.Errorf("decode cv: %w", err)
	}
	cv.EnsureIDs()
	return cv, nil
}

// ValidateMap validates a generic map against cv.schema.json.
func ValidateMap(m map[string]interface{}) error {
	return validate(gojsonschema.NewGoLoader(m))
}

func validate(docLoader gojsonschema.JSONLoader) error {
	res, err := gojsonschema.Validate(schemaLoader, docLoader)
	if err != nil {
		return err
	}
	if res.Valid() {
		return nil
	}
	// collect errors
	msgs := make([]string, 0, len(res.Errors()))
	for _, e := range res.Errors() {
		msgs = append(msgs, e.String())
	}
	return fmt.Errorf("schema validation failed: %s", strings.Join(msgs, "; "))
}

var hexColor = regexp.MustCompile(`^#[0-9a-fA-F]{6}$`)

// ValidateOptions checks template, font and accent colour.
func ValidateOptions(o Options) error {
	if !o.Template.Valid() {
		return fmt.Errorf("%w: unknown template %q", ErrInvalidOptions, o.Template)
	}
	if !o.Font.Valid() {
		return fmt.Errorf("%w: unknown font %q", ErrInvalidOptions, o.Font)
	}
	if !hexColor.MatchString(o.AccentColor) {
		return fmt.Errorf("%w: accent colour %q is not #rrggbb", ErrInvalidOptions, o.AccentColor)
	}
	return nil
}
