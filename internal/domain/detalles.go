package domain

import (
	"encoding/json"
	"fmt"
	"sort"
)

// DetallesKind discriminates the shapes a document's detalles field can take.
type DetallesKind int

const (
	// DetallesNone means the document has no details.
	DetallesNone DetallesKind = iota
	// DetallesAttributes is a mapping of attribute name to attribute value.
	DetallesAttributes
	// DetallesNotes is an ordered sequence of free-text lines.
	DetallesNotes
)

// Detalles is a tagged variant over the three shapes the stored detalles
// field takes: an attribute mapping, a note sequence, or nothing. Consumers
// switch on Kind instead of inspecting raw JSON shapes.
type Detalles struct {
	kind  DetallesKind
	attrs map[string]string
	notes []string
}

// AttributeDetails builds the mapping variant. An empty or nil map yields the
// none variant.
func AttributeDetails(attrs map[string]string) Detalles {
	if len(attrs) == 0 {
		return Detalles{}
	}
	return Detalles{kind: DetallesAttributes, attrs: attrs}
}

// NoteDetails builds the sequence variant. An empty or nil slice yields the
// none variant.
func NoteDetails(notes []string) Detalles {
	if len(notes) == 0 {
		return Detalles{}
	}
	return Detalles{kind: DetallesNotes, notes: notes}
}

// Kind reports which variant this value holds.
func (d Detalles) Kind() DetallesKind { return d.kind }

// Attributes returns the mapping for the attributes variant, nil otherwise.
func (d Detalles) Attributes() map[string]string {
	if d.kind != DetallesAttributes {
		return nil
	}
	return d.attrs
}

// Notes returns the sequence for the notes variant, nil otherwise.
func (d Detalles) Notes() []string {
	if d.kind != DetallesNotes {
		return nil
	}
	return d.notes
}

// AttributeNames returns the mapping's keys in sorted order, for stable
// rendering.
func (d Detalles) AttributeNames() []string {
	if d.kind != DetallesAttributes {
		return nil
	}
	names := make([]string, 0, len(d.attrs))
	for name := range d.attrs {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// IsZero reports the none variant. Lets encoding/json omit the field via
// omitzero.
func (d Detalles) IsZero() bool { return d.kind == DetallesNone }

// MarshalJSON writes the mapping as an object, the sequence as an array, and
// the none variant as null.
func (d Detalles) MarshalJSON() ([]byte, error) {
	switch d.kind {
	case DetallesAttributes:
		return json.Marshal(d.attrs)
	case DetallesNotes:
		return json.Marshal(d.notes)
	default:
		return []byte("null"), nil
	}
}

// UnmarshalJSON accepts an object (attribute mapping), an array of strings
// (notes), null (none), or a bare string, which becomes a single note. The
// last form matches documents written by older clients that stored the raw
// form value when it was not valid JSON.
func (d *Detalles) UnmarshalJSON(data []byte) error {
	var probe any
	if err := json.Unmarshal(data, &probe); err != nil {
		return err
	}

	switch v := probe.(type) {
	case nil:
		*d = Detalles{}
	case map[string]any:
		attrs := make(map[string]string, len(v))
		for name, value := range v {
			s, ok := value.(string)
			if !ok {
				s = fmt.Sprint(value)
			}
			attrs[name] = s
		}
		*d = AttributeDetails(attrs)
	case []any:
		notes := make([]string, 0, len(v))
		for _, value := range v {
			s, ok := value.(string)
			if !ok {
				s = fmt.Sprint(value)
			}
			notes = append(notes, s)
		}
		*d = NoteDetails(notes)
	case string:
		if v == "" {
			*d = Detalles{}
			return nil
		}
		*d = NoteDetails([]string{v})
	default:
		return fmt.Errorf("detalles: unsupported shape %T", probe)
	}

	return nil
}
