// ABOUTME: Hand-written easyjson codecs for Positioning and Bridge
// ABOUTME: Zero-reflection encoding used by the place command and trace output

package affix

import (
	"github.com/mailru/easyjson"
	"github.com/mailru/easyjson/jlexer"
	"github.com/mailru/easyjson/jwriter"

	"github.com/mauromedda/affix-go/pkg/affix/geom"
)

func writeVec(w *jwriter.Writer, v geom.Vec2) {
	w.RawString(`{"x":`)
	w.Float64(v.X)
	w.RawString(`,"y":`)
	w.Float64(v.Y)
	w.RawByte('}')
}

func writeRect(w *jwriter.Writer, r geom.Rect) {
	w.RawString(`{"left":`)
	w.Float64(r.Left)
	w.RawString(`,"top":`)
	w.Float64(r.Top)
	w.RawString(`,"width":`)
	w.Float64(r.Width)
	w.RawString(`,"height":`)
	w.Float64(r.Height)
	w.RawByte('}')
}

// MarshalEasyJSON implements easyjson.Marshaler. Rects are omitted until measured.
func (p Positioning) MarshalEasyJSON(w *jwriter.Writer) {
	w.RawString(`{"translation":`)
	writeVec(w, p.Translation)
	w.RawString(`,"scheme":`)
	w.String(string(p.Scheme))
	if p.Measured {
		w.RawString(`,"anchorRect":`)
		writeRect(w, p.AnchorRect)
		w.RawString(`,"popupRect":`)
		writeRect(w, p.PopupRect)
	}
	w.RawString(`,"measured":`)
	w.Bool(p.Measured)
	w.RawByte('}')
}

// MarshalJSON implements json.Marshaler.
func (p Positioning) MarshalJSON() ([]byte, error) {
	return easyjson.Marshal(p)
}

// UnmarshalEasyJSON implements easyjson.Unmarshaler.
func (p *Positioning) UnmarshalEasyJSON(in *jlexer.Lexer) {
	decodeObject(in, func(key string) {
		switch key {
		case "translation":
			p.Translation = readVec(in)
		case "scheme":
			p.Scheme = Edge(in.String())
		case "anchorRect":
			p.AnchorRect = readRect(in)
		case "popupRect":
			p.PopupRect = readRect(in)
		case "measured":
			p.Measured = in.Bool()
		default:
			in.SkipRecursive()
		}
	})
}

// UnmarshalJSON implements json.Unmarshaler.
func (p *Positioning) UnmarshalJSON(data []byte) error {
	return easyjson.Unmarshal(data, p)
}

// MarshalEasyJSON implements easyjson.Marshaler.
func (b Bridge) MarshalEasyJSON(w *jwriter.Writer) {
	w.RawString(`{"scheme":`)
	w.String(string(b.Scheme))
	w.RawString(`,"side":`)
	w.String(string(b.Side))
	w.RawString(`,"local":`)
	writeRect(w, b.Local)
	w.RawString(`,"offset":`)
	w.Float64(b.Offset)
	w.RawString(`,"rotation":`)
	w.Float64(b.Rotation)
	w.RawString(`,"transform":`)
	w.String(b.Transform)
	w.RawByte('}')
}

// MarshalJSON implements json.Marshaler.
func (b Bridge) MarshalJSON() ([]byte, error) {
	return easyjson.Marshal(b)
}

// Placement bundles a Positioning with its optional bridge for output.
type Placement struct {
	Positioning Positioning
	Bridge      *Bridge
}

// MarshalEasyJSON implements easyjson.Marshaler.
func (pl Placement) MarshalEasyJSON(w *jwriter.Writer) {
	w.RawString(`{"positioning":`)
	pl.Positioning.MarshalEasyJSON(w)
	if pl.Bridge != nil {
		w.RawString(`,"bridge":`)
		pl.Bridge.MarshalEasyJSON(w)
	}
	w.RawByte('}')
}

// MarshalJSON implements json.Marshaler.
func (pl Placement) MarshalJSON() ([]byte, error) {
	return easyjson.Marshal(pl)
}

func decodeObject(in *jlexer.Lexer, field func(key string)) {
	isTopLevel := in.IsStart()
	if in.IsNull() {
		if isTopLevel {
			in.Consumed()
		}
		in.Skip()
		return
	}
	in.Delim('{')
	for !in.IsDelim('}') {
		key := in.UnsafeFieldName(false)
		in.WantColon()
		if in.IsNull() {
			in.Skip()
			in.WantComma()
			continue
		}
		field(key)
		in.WantComma()
	}
	in.Delim('}')
	if isTopLevel {
		in.Consumed()
	}
}

func readVec(in *jlexer.Lexer) geom.Vec2 {
	var v geom.Vec2
	decodeObject(in, func(key string) {
		switch key {
		case "x":
			v.X = in.Float64()
		case "y":
			v.Y = in.Float64()
		default:
			in.SkipRecursive()
		}
	})
	return v
}

func readRect(in *jlexer.Lexer) geom.Rect {
	var r geom.Rect
	decodeObject(in, func(key string) {
		switch key {
		case "left":
			r.Left = in.Float64()
		case "top":
			r.Top = in.Float64()
		case "width":
			r.Width = in.Float64()
		case "height":
			r.Height = in.Float64()
		default:
			in.SkipRecursive()
		}
	})
	return r
}
