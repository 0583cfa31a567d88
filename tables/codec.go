package tables

import (
	"encoding/json"
	"io"

	"github.com/calmh/xdr"
)

// Binary table file layout: a four byte magic, a format version, then the
// table set as a flat XDR stream in field declaration order.
const (
	binaryMagic   = "LRXT"
	binaryVersion = 1
)

// WriteBinary encodes the table set as a compact binary stream.
func (ts *TableSet) WriteBinary(w io.Writer) error {
	m := &xdr.Marshaller{Data: make([]byte, ts.binarySize())}
	m.MarshalString(binaryMagic)
	m.MarshalUint32(binaryVersion)

	m.MarshalUint32(uint32(len(ts.Terms)))
	for _, t := range ts.Terms {
		m.MarshalString(t.Name)
		marshalInt(m, t.Stack)
	}

	m.MarshalUint32(uint32(len(ts.Nonterms)))
	for _, nt := range ts.Nonterms {
		m.MarshalString(nt.Name)
	}

	m.MarshalUint32(uint32(len(ts.Rules)))
	for _, r := range ts.Rules {
		marshalInt(m, r.Nonterm)
		marshalInt(m, r.Len)
		marshalInts(m, r.Args)
		marshalInt(m, r.Push)
	}

	m.MarshalUint32(uint32(len(ts.DFAs)))
	for i := range ts.DFAs {
		marshalDFA(m, &ts.DFAs[i])
	}

	marshalInt(m, ts.States)
	marshalInts(m, ts.Actions)
	marshalInts(m, ts.Shifts)
	marshalInts(m, ts.Gotos)
	marshalInt(m, ts.Stacks)
	marshalInt(m, ts.RootStack)

	if m.Error != nil {
		return m.Error
	}
	_, e := w.Write(m.Data)
	return e
}

// ReadBinary decodes a table set written by WriteBinary and validates it
// with Check.
func ReadBinary(r io.Reader) (*TableSet, error) {
	data, e := io.ReadAll(r)
	if e != nil {
		return nil, badHeaderError(e.Error())
	}

	u := &xdr.Unmarshaller{Data: data}
	if u.UnmarshalStringMax(len(binaryMagic)) != binaryMagic {
		if u.Error != nil {
			return nil, badHeaderError(u.Error.Error())
		}
		return nil, badHeaderError("bad magic")
	}
	if v := u.UnmarshalUint32(); v != binaryVersion {
		return nil, badHeaderError("unsupported version")
	}

	ts := &TableSet{}
	ts.Terms = make([]Term, u.UnmarshalUint32())
	for i := range ts.Terms {
		ts.Terms[i].Name = u.UnmarshalString()
		ts.Terms[i].Stack = unmarshalInt(u)
	}

	ts.Nonterms = make([]Nonterm, u.UnmarshalUint32())
	for i := range ts.Nonterms {
		ts.Nonterms[i].Name = u.UnmarshalString()
	}

	ts.Rules = make([]Rule, u.UnmarshalUint32())
	for i := range ts.Rules {
		ts.Rules[i].Nonterm = unmarshalInt(u)
		ts.Rules[i].Len = unmarshalInt(u)
		ts.Rules[i].Args = unmarshalInts(u)
		ts.Rules[i].Push = unmarshalInt(u)
	}

	ts.DFAs = make([]DFA, u.UnmarshalUint32())
	for i := range ts.DFAs {
		unmarshalDFA(u, &ts.DFAs[i])
	}

	ts.States = unmarshalInt(u)
	ts.Actions = unmarshalInts(u)
	ts.Shifts = unmarshalInts(u)
	ts.Gotos = unmarshalInts(u)
	ts.Stacks = unmarshalInt(u)
	ts.RootStack = unmarshalInt(u)

	if u.Error != nil {
		return nil, badHeaderError(u.Error.Error())
	}

	e = ts.Check()
	if e != nil {
		return nil, e
	}
	return ts, nil
}

// WriteJSON encodes the table set as indented JSON.
func (ts *TableSet) WriteJSON(w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "\t")
	return enc.Encode(ts)
}

// ReadJSON decodes a table set from JSON and validates it with Check.
func ReadJSON(r io.Reader) (*TableSet, error) {
	ts := &TableSet{}
	e := json.NewDecoder(r).Decode(ts)
	if e != nil {
		return nil, badHeaderError(e.Error())
	}

	e = ts.Check()
	if e != nil {
		return nil, e
	}
	return ts, nil
}

// binarySize returns the exact encoded length; the marshalling buffer must
// hold the complete stream up front.
func (ts *TableSet) binarySize() int {
	size := stringSize(binaryMagic) + 4 // magic, version

	size += 4
	for _, t := range ts.Terms {
		size += stringSize(t.Name) + 4
	}

	size += 4
	for _, nt := range ts.Nonterms {
		size += stringSize(nt.Name)
	}

	size += 4
	for _, r := range ts.Rules {
		size += 4 + 4 + intsSize(r.Args) + 4
	}

	size += 4
	for i := range ts.DFAs {
		dfa := &ts.DFAs[i]
		size += 4 + 8*len(dfa.Labels)
		size += 4 + 16*len(dfa.Edges)
		size += 4 + 12*len(dfa.States)
	}

	size += 4 + intsSize(ts.Actions) + intsSize(ts.Shifts) + intsSize(ts.Gotos) + 4 + 4
	return size
}

func stringSize(s string) int {
	return 4 + len(s) + xdr.Padding(len(s))
}

func intsSize(vs []int) int {
	return 4 + 4*len(vs)
}

func marshalDFA(m *xdr.Marshaller, dfa *DFA) {
	m.MarshalUint32(uint32(len(dfa.Labels)))
	for _, l := range dfa.Labels {
		marshalInt(m, int(l.Low))
		marshalInt(m, int(l.High))
	}
	m.MarshalUint32(uint32(len(dfa.Edges)))
	for _, ed := range dfa.Edges {
		marshalInt(m, ed.LowLabel)
		marshalInt(m, ed.HighLabel)
		marshalInt(m, ed.Target)
		m.MarshalBool(ed.Invert)
	}
	m.MarshalUint32(uint32(len(dfa.States)))
	for _, s := range dfa.States {
		marshalInt(m, s.LowEdge)
		marshalInt(m, s.HighEdge)
		marshalInt(m, s.Accept)
	}
}

func unmarshalDFA(u *xdr.Unmarshaller, dfa *DFA) {
	dfa.Labels = make([]Label, u.UnmarshalUint32())
	for i := range dfa.Labels {
		dfa.Labels[i].Low = byte(unmarshalInt(u))
		dfa.Labels[i].High = byte(unmarshalInt(u))
	}
	dfa.Edges = make([]Edge, u.UnmarshalUint32())
	for i := range dfa.Edges {
		dfa.Edges[i].LowLabel = unmarshalInt(u)
		dfa.Edges[i].HighLabel = unmarshalInt(u)
		dfa.Edges[i].Target = unmarshalInt(u)
		dfa.Edges[i].Invert = u.UnmarshalBool()
	}
	dfa.States = make([]LexState, u.UnmarshalUint32())
	for i := range dfa.States {
		dfa.States[i].LowEdge = unmarshalInt(u)
		dfa.States[i].HighEdge = unmarshalInt(u)
		dfa.States[i].Accept = unmarshalInt(u)
	}
}

// Negative values (NoStack, AcceptNone, AcceptDiscard) survive the uint32
// round trip through two's complement.
func marshalInt(m *xdr.Marshaller, v int) {
	m.MarshalUint32(uint32(int32(v)))
}

func unmarshalInt(u *xdr.Unmarshaller) int {
	return int(int32(u.UnmarshalUint32()))
}

func marshalInts(m *xdr.Marshaller, vs []int) {
	m.MarshalUint32(uint32(len(vs)))
	for _, v := range vs {
		marshalInt(m, v)
	}
}

func unmarshalInts(u *xdr.Unmarshaller) []int {
	l := u.UnmarshalUint32()
	if l == 0 {
		return nil
	}
	vs := make([]int, l)
	for i := range vs {
		vs[i] = unmarshalInt(u)
	}
	return vs
}
