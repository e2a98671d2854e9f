package render

import (
	"bytes"
	"encoding/json"
	"math"

	"github.com/firefly-engineering/chartlit/internal/literal"
)

// RenderJSON writes v as JSON, keeping object fields in their current
// order. Functions and expressions become strings holding their source,
// undefined and non-finite numbers become null. An empty indent produces
// compact output.
func RenderJSON(v *literal.Value, indent string) ([]byte, error) {
	var buf bytes.Buffer
	if err := writeJSON(&buf, v); err != nil {
		return nil, err
	}
	if indent == "" {
		return buf.Bytes(), nil
	}
	var out bytes.Buffer
	if err := json.Indent(&out, buf.Bytes(), "", indent); err != nil {
		return nil, err
	}
	out.WriteByte('\n')
	return out.Bytes(), nil
}

func writeJSON(buf *bytes.Buffer, v *literal.Value) error {
	if v == nil {
		buf.WriteString("null")
		return nil
	}
	switch v.Kind {
	case literal.KindUndefined, literal.KindNull:
		buf.WriteString("null")
	case literal.KindBool:
		if v.Bool {
			buf.WriteString("true")
		} else {
			buf.WriteString("false")
		}
	case literal.KindNumber:
		if math.IsNaN(v.Num) || math.IsInf(v.Num, 0) {
			buf.WriteString("null")
			return nil
		}
		buf.WriteString(FormatNumber(v.Num, v.Float))
	case literal.KindString:
		return writeJSONString(buf, v.Str)
	case literal.KindFunction, literal.KindExpression:
		return writeJSONString(buf, v.Raw)
	case literal.KindArray:
		buf.WriteByte('[')
		for i, e := range v.Elems {
			if i > 0 {
				buf.WriteByte(',')
			}
			if err := writeJSON(buf, e); err != nil {
				return err
			}
		}
		buf.WriteByte(']')
	case literal.KindObject:
		buf.WriteByte('{')
		n := 0
		for _, f := range v.Fields {
			if f.Value != nil && f.Value.Kind == literal.KindUndefined {
				continue
			}
			if n > 0 {
				buf.WriteByte(',')
			}
			n++
			if err := writeJSONString(buf, f.Key); err != nil {
				return err
			}
			buf.WriteByte(':')
			if err := writeJSON(buf, f.Value); err != nil {
				return err
			}
		}
		buf.WriteByte('}')
	}
	return nil
}

func writeJSONString(buf *bytes.Buffer, s string) error {
	enc := json.NewEncoder(buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(s); err != nil {
		return err
	}
	// Encode terminates its output with a newline.
	buf.Truncate(buf.Len() - 1)
	return nil
}
