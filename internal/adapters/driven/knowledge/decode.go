// Package knowledge provides sources for the pregnancy knowledge document.
package knowledge

import (
	"bytes"
	"encoding/json"
	"fmt"
	"mime"
	"path"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"

	"github.com/custodia-labs/bumpbook/internal/core/domain"
	"github.com/custodia-labs/bumpbook/internal/core/ports/driven"
)

// Format is a document encoding.
type Format string

// Supported formats.
const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
	FormatTOML Format = "toml"
)

// FormatFromPath picks a format from a file or URL path extension.
func FormatFromPath(p string) (Format, error) {
	switch strings.ToLower(path.Ext(p)) {
	case ".json":
		return FormatJSON, nil
	case ".yaml", ".yml":
		return FormatYAML, nil
	case ".toml":
		return FormatTOML, nil
	default:
		return "", fmt.Errorf("%q: %w", p, domain.ErrUnsupportedFormat)
	}
}

// FormatFromContentType picks a format from a Content-Type header.
func FormatFromContentType(contentType string) (Format, bool) {
	mediaType, _, err := mime.ParseMediaType(contentType)
	if err != nil {
		return "", false
	}
	switch mediaType {
	case "application/json":
		return FormatJSON, true
	case "application/yaml", "application/x-yaml", "text/yaml", "text/x-yaml":
		return FormatYAML, true
	case "application/toml":
		return FormatTOML, true
	default:
		return "", false
	}
}

// codec is one format's marshal and unmarshal pair.
type codec struct {
	marshal   func(any) ([]byte, error)
	unmarshal func([]byte, any) error
}

var codecs = map[Format]codec{
	FormatJSON: {marshal: json.Marshal, unmarshal: unmarshalJSON},
	FormatYAML: {marshal: yaml.Marshal, unmarshal: yaml.Unmarshal},
	FormatTOML: {marshal: toml.Marshal, unmarshal: toml.Unmarshal},
}

func unmarshalJSON(data []byte, v any) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	return dec.Decode(v)
}

// Decode parses data in the given format.
// Unknown fields are ignored so documents may carry extra metadata.
// Only a document that cannot be parsed at all is an error. A slice whose
// fields have the wrong shape is left out and recorded in DecodeProblems;
// the rest of the document is kept.
func Decode(data []byte, format Format) (*domain.KnowledgeDocument, error) {
	c, ok := codecs[format]
	if !ok {
		return nil, fmt.Errorf("format %q: %w", format, domain.ErrUnsupportedFormat)
	}

	var tree map[string]any
	if err := c.unmarshal(data, &tree); err != nil {
		return nil, fmt.Errorf("decode %s: %w", format, err)
	}

	d := &documentDecoder{codec: c}
	doc := &domain.KnowledgeDocument{}

	if nutrition, ok := d.table("nutrition", tree["nutritionalRequirements"]); ok {
		doc.Nutrition.DailyNeeds = decodeList[domain.Nutrient](d, "nutrition.dailyNeeds", nutrition["dailyNeeds"])
		doc.Nutrition.WeightGain = decodeList[domain.WeightGain](d, "nutrition.weightGain", nutrition["weightGain"])
	}
	if food, ok := d.table("foodSafety", tree["foodSafety"]); ok {
		doc.FoodSafety.UnsafeSeafood = decodeList[string](d, "foodSafety.unsafeSeafood", food["unsafeSeafood"])
		doc.FoodSafety.Avoid = decodeList[domain.AvoidItem](d, "foodSafety.avoid", food["avoid"])
	}
	if sickness, ok := d.table("morningSickness", tree["morningSickness"]); ok {
		doc.MorningSickness.Eat = decodeList[string](d, "morningSickness.eat", sickness["eat"])
		doc.MorningSickness.Avoid = decodeList[string](d, "morningSickness.avoid", sickness["avoid"])
		doc.MorningSickness.Tips = decodeList[string](d, "morningSickness.tips", sickness["tips"])
	}
	doc.Timeline = decodeList[domain.TimelineEntry](d, "timeline", tree["timeline"])
	doc.Symptoms = decodeList[domain.SymptomCategory](d, "symptoms", tree["symptoms"])
	doc.Medications = decodeList[domain.MedicationGroup](d, "medications", tree["medications"])

	doc.DecodeProblems = d.problems
	return doc, nil
}

// documentDecoder decodes one slice at a time and collects the failures.
type documentDecoder struct {
	codec    codec
	problems []domain.SliceError
}

func (d *documentDecoder) fail(path string, err error) {
	d.problems = append(d.problems, domain.SliceError{
		Slice: path,
		Err:   fmt.Errorf("%w: %v", domain.ErrMalformedSlice, err),
	})
}

// table returns raw as a map. A missing value is not a problem.
func (d *documentDecoder) table(path string, raw any) (map[string]any, bool) {
	if raw == nil {
		return nil, false
	}
	m, ok := raw.(map[string]any)
	if !ok {
		d.fail(path, fmt.Errorf("expected a table, got %T", raw))
		return nil, false
	}
	return m, true
}

// decodeList decodes each element of a list on its own, so one bad entry
// does not take its neighbours with it.
func decodeList[T any](d *documentDecoder, path string, raw any) []T {
	if raw == nil {
		return nil
	}

	items, ok := raw.([]any)
	if !ok {
		out, err := decodeValue[[]T](d.codec, raw)
		if err != nil {
			d.fail(path, err)
			return nil
		}
		return out
	}

	out := make([]T, 0, len(items))
	for i, item := range items {
		v, err := decodeValue[T](d.codec, item)
		if err != nil {
			d.fail(fmt.Sprintf("%s[%d]", path, i), err)
			continue
		}
		out = append(out, v)
	}
	return out
}

// decodeValue re-encodes raw in the source format and decodes it into T,
// so each format keeps its own conversion rules.
func decodeValue[T any](c codec, raw any) (T, error) {
	var wrapper struct {
		V T `json:"v" yaml:"v" toml:"v"`
	}
	data, err := c.marshal(map[string]any{"v": raw})
	if err != nil {
		return wrapper.V, err
	}
	if err := c.unmarshal(data, &wrapper); err != nil {
		return wrapper.V, err
	}
	return wrapper.V, nil
}

// NewSource returns an HTTP source for http(s) URLs and a file source otherwise.
// An empty location returns nil.
func NewSource(location string) (driven.KnowledgeSource, error) {
	switch {
	case location == "":
		return nil, nil
	case strings.HasPrefix(location, "http://"), strings.HasPrefix(location, "https://"):
		return NewHTTPSource(location, nil), nil
	default:
		src, err := NewFileSource(location)
		if err != nil {
			return nil, err
		}
		return src, nil
	}
}
