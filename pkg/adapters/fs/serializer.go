package fs

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"encoding/xml"
	"fmt"
	"io"
	"path/filepath"
	"strings"
	"unicode/utf8"

	"github.com/aretw0/carte/pkg/core"
	"github.com/tidwall/gjson"
	"github.com/tidwall/pretty"
	"gopkg.in/yaml.v3"
)

// Document is the decoded content of a backing file.
// Kind is empty when the format does not record it (CSV).
type Document struct {
	Kind    string
	Records []core.Model
}

// Serializer defines how to read and write a specific file format.
// Implementations must keep record order and attribute order intact.
type Serializer interface {
	// Parse reads a whole document from r. Records are tagged with kind.
	Parse(r io.Reader, kind string) (*Document, error)
	// Serialize converts the document to bytes.
	Serialize(doc Document) ([]byte, error)
}

// DefaultSerializers returns the standard set of serializers keyed by file extension.
func DefaultSerializers() map[string]Serializer {
	yml := NewYAMLSerializer()
	return map[string]Serializer{
		".json": NewJSONSerializer(),
		".yaml": yml,
		".yml":  yml,
		".xml":  NewXMLSerializer(),
		".csv":  NewCSVSerializer(),
	}
}

const (
	keyKind    = "kind"
	keyRecords = "records"
	xmlRoot    = "database"
)

// --- JSON Serializer ---

// JSONSerializer reads with gjson, which iterates object keys in document
// order, and writes tab-indented output through tidwall/pretty.
type JSONSerializer struct {
	Options *pretty.Options
}

// NewJSONSerializer creates a JSON serializer indenting with tabs.
func NewJSONSerializer() *JSONSerializer {
	opts := *pretty.DefaultOptions
	opts.Indent = "\t"
	return &JSONSerializer{Options: &opts}
}

func (s *JSONSerializer) Parse(r io.Reader, kind string) (*Document, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	if !gjson.ValidBytes(data) {
		return nil, fmt.Errorf("invalid json")
	}

	root := gjson.ParseBytes(data)
	if !root.IsObject() {
		return nil, fmt.Errorf("invalid json: top level must be an object")
	}

	doc := &Document{Kind: root.Get(keyKind).String()}
	records := root.Get(keyRecords)
	if !records.Exists() {
		return doc, nil
	}
	if !records.IsArray() {
		return nil, fmt.Errorf("invalid json: %q must be an array", keyRecords)
	}

	var parseErr error
	records.ForEach(func(idx, rec gjson.Result) bool {
		if !rec.IsObject() {
			parseErr = fmt.Errorf("invalid json: record %d is not an object", len(doc.Records))
			return false
		}
		m := core.Model{Kind: kind}
		rec.ForEach(func(key, value gjson.Result) bool {
			m.Attributes = append(m.Attributes, core.Attribute{Name: key.String(), Value: value.String()})
			return true
		})
		doc.Records = append(doc.Records, m)
		return true
	})
	if parseErr != nil {
		return nil, parseErr
	}

	return doc, nil
}

func (s *JSONSerializer) Serialize(doc Document) ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteString(`{"` + keyKind + `":`)
	if err := writeJSONString(&buf, doc.Kind); err != nil {
		return nil, err
	}
	buf.WriteString(`,"` + keyRecords + `":[`)
	for i, rec := range doc.Records {
		if i > 0 {
			buf.WriteByte(',')
		}
		buf.WriteByte('{')
		for j, a := range rec.Attributes {
			if j > 0 {
				buf.WriteByte(',')
			}
			if err := writeJSONString(&buf, a.Name); err != nil {
				return nil, err
			}
			buf.WriteByte(':')
			if err := writeJSONString(&buf, a.Value); err != nil {
				return nil, err
			}
		}
		buf.WriteByte('}')
	}
	buf.WriteString("]}")

	return pretty.PrettyOptions(buf.Bytes(), s.Options), nil
}

func writeJSONString(buf *bytes.Buffer, s string) error {
	if err := validUTF8(s); err != nil {
		return err
	}
	b, err := json.Marshal(s)
	if err != nil {
		return err
	}
	buf.Write(b)
	return nil
}

// validUTF8 rejects values the encoders would otherwise rewrite with U+FFFD.
func validUTF8(s string) error {
	if !utf8.ValidString(s) {
		return fmt.Errorf("cannot encode invalid UTF-8 value %q", s)
	}
	return nil
}

// --- YAML Serializer ---

// YAMLSerializer works on yaml.Node trees so mapping order survives a round trip.
type YAMLSerializer struct {
	Indent int
}

// NewYAMLSerializer creates a YAML serializer with two-space indentation.
func NewYAMLSerializer() *YAMLSerializer {
	return &YAMLSerializer{Indent: 2}
}

func (s *YAMLSerializer) Parse(r io.Reader, kind string) (*Document, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}

	var root yaml.Node
	if err := yaml.Unmarshal(data, &root); err != nil {
		return nil, fmt.Errorf("invalid yaml: %w", err)
	}
	if root.Kind != yaml.DocumentNode || len(root.Content) == 0 || root.Content[0].Kind != yaml.MappingNode {
		return nil, fmt.Errorf("invalid yaml: top level must be a mapping")
	}

	doc := &Document{}
	top := root.Content[0]
	for i := 0; i+1 < len(top.Content); i += 2 {
		key, value := top.Content[i], top.Content[i+1]
		switch key.Value {
		case keyKind:
			doc.Kind = value.Value
		case keyRecords:
			if value.Kind != yaml.SequenceNode {
				return nil, fmt.Errorf("invalid yaml: %q must be a sequence", keyRecords)
			}
			for n, item := range value.Content {
				if item.Kind != yaml.MappingNode {
					return nil, fmt.Errorf("invalid yaml: record %d is not a mapping", n)
				}
				m := core.Model{Kind: kind}
				for j := 0; j+1 < len(item.Content); j += 2 {
					m.Attributes = append(m.Attributes, core.Attribute{
						Name:  item.Content[j].Value,
						Value: item.Content[j+1].Value,
					})
				}
				doc.Records = append(doc.Records, m)
			}
		}
	}

	return doc, nil
}

func (s *YAMLSerializer) Serialize(doc Document) ([]byte, error) {
	records := &yaml.Node{Kind: yaml.SequenceNode, Tag: "!!seq"}
	for _, rec := range doc.Records {
		item := &yaml.Node{Kind: yaml.MappingNode, Tag: "!!map"}
		for _, a := range rec.Attributes {
			item.Content = append(item.Content, strNode(a.Name), strNode(a.Value))
		}
		records.Content = append(records.Content, item)
	}

	top := &yaml.Node{Kind: yaml.MappingNode, Tag: "!!map"}
	top.Content = append(top.Content,
		strNode(keyKind), strNode(doc.Kind),
		strNode(keyRecords), records,
	)

	var buf bytes.Buffer
	encoder := yaml.NewEncoder(&buf)
	encoder.SetIndent(s.Indent)
	if err := encoder.Encode(&yaml.Node{Kind: yaml.DocumentNode, Content: []*yaml.Node{top}}); err != nil {
		return nil, err
	}
	if err := encoder.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func strNode(v string) *yaml.Node {
	return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: v}
}

// --- XML Serializer ---

// XMLSerializer stores one element per record under a <database> root,
// with the record's attributes as XML attributes in order.
type XMLSerializer struct {
	Indent string
}

// NewXMLSerializer creates a tab-indented XML serializer.
func NewXMLSerializer() *XMLSerializer {
	return &XMLSerializer{Indent: "\t"}
}

func (s *XMLSerializer) Parse(r io.Reader, kind string) (*Document, error) {
	decoder := xml.NewDecoder(r)
	doc := &Document{}
	depth := 0
	seenRoot := false

	for {
		tok, err := decoder.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("invalid xml: %w", err)
		}

		switch t := tok.(type) {
		case xml.StartElement:
			depth++
			switch depth {
			case 1:
				if t.Name.Local != xmlRoot {
					return nil, fmt.Errorf("invalid xml: root element is <%s>, want <%s>", t.Name.Local, xmlRoot)
				}
				seenRoot = true
				for _, a := range t.Attr {
					if a.Name.Local == keyKind {
						doc.Kind = a.Value
					}
				}
			case 2:
				if doc.Kind == "" {
					doc.Kind = t.Name.Local
				} else if t.Name.Local != doc.Kind {
					return nil, fmt.Errorf("invalid xml: <%s> record in a %q document", t.Name.Local, doc.Kind)
				}
				m := core.Model{Kind: kind}
				for _, a := range t.Attr {
					m.Attributes = append(m.Attributes, core.Attribute{Name: a.Name.Local, Value: a.Value})
				}
				doc.Records = append(doc.Records, m)
			}
		case xml.EndElement:
			depth--
		}
	}

	if !seenRoot {
		return nil, fmt.Errorf("invalid xml: missing <%s> root", xmlRoot)
	}
	return doc, nil
}

func (s *XMLSerializer) Serialize(doc Document) ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteString(xml.Header)

	encoder := xml.NewEncoder(&buf)
	encoder.Indent("", s.Indent)

	root := xml.StartElement{Name: xml.Name{Local: xmlRoot}}
	if doc.Kind != "" {
		root.Attr = []xml.Attr{{Name: xml.Name{Local: keyKind}, Value: doc.Kind}}
	}
	if err := encoder.EncodeToken(root); err != nil {
		return nil, err
	}
	for _, rec := range doc.Records {
		el := xml.StartElement{Name: xml.Name{Local: doc.Kind}}
		for _, a := range rec.Attributes {
			if err := validUTF8(a.Value); err != nil {
				return nil, err
			}
			el.Attr = append(el.Attr, xml.Attr{Name: xml.Name{Local: a.Name}, Value: a.Value})
		}
		if err := encoder.EncodeToken(el); err != nil {
			return nil, err
		}
		if err := encoder.EncodeToken(el.End()); err != nil {
			return nil, err
		}
	}
	if err := encoder.EncodeToken(root.End()); err != nil {
		return nil, err
	}
	if err := encoder.Flush(); err != nil {
		return nil, err
	}
	buf.WriteByte('\n')
	return buf.Bytes(), nil
}

// --- CSV Serializer ---

// CSVSerializer writes a header made of every attribute name in first-seen
// order and one row per record.
//
// CAVEAT: an empty cell reads back as a missing attribute, and per-record
// attribute order follows the header. Use it for uniform records.
type CSVSerializer struct{}

// NewCSVSerializer creates a CSV serializer.
func NewCSVSerializer() *CSVSerializer {
	return &CSVSerializer{}
}

func (s *CSVSerializer) Parse(r io.Reader, kind string) (*Document, error) {
	rows, err := csv.NewReader(r).ReadAll()
	if err != nil {
		return nil, fmt.Errorf("invalid csv: %w", err)
	}

	doc := &Document{}
	if len(rows) == 0 {
		return doc, nil
	}

	headers := rows[0]
	for _, row := range rows[1:] {
		m := core.Model{Kind: kind}
		for i, h := range headers {
			if row[i] == "" {
				continue
			}
			m.Attributes = append(m.Attributes, core.Attribute{Name: h, Value: row[i]})
		}
		doc.Records = append(doc.Records, m)
	}
	return doc, nil
}

func (s *CSVSerializer) Serialize(doc Document) ([]byte, error) {
	var headers []string
	column := make(map[string]int)
	for _, rec := range doc.Records {
		for _, a := range rec.Attributes {
			if _, ok := column[a.Name]; !ok {
				column[a.Name] = len(headers)
				headers = append(headers, a.Name)
			}
		}
	}

	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	if len(headers) > 0 {
		if err := w.Write(headers); err != nil {
			return nil, err
		}
	}
	for _, rec := range doc.Records {
		row := make([]string, len(headers))
		for _, a := range rec.Attributes {
			row[column[a.Name]] = a.Value
		}
		if err := w.Write(row); err != nil {
			return nil, err
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// FormatOf returns the lower-cased extension used to pick a serializer.
func FormatOf(path string) string {
	return strings.ToLower(filepath.Ext(path))
}
