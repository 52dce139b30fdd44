package xmltree

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/beevik/etree"

	"github.com/vvka-141/pbcore/pkg/pbcore"
)

// Attr is an attribute name/value pair. Used both as a query constraint and as
// an attribute to stamp on created nodes.
type Attr struct {
	Name  string
	Value string
}

// Parse reads an XML document. A document without a root element is rejected.
func Parse(data []byte) (*etree.Document, error) {
	doc := etree.NewDocument()
	doc.ReadSettings.PreserveCData = true
	if err := doc.ReadFromBytes(data); err != nil {
		return nil, fmt.Errorf("%w: %v", pbcore.ErrInvalidXML, err)
	}
	if doc.Root() == nil {
		return nil, fmt.Errorf("%w: no root element", pbcore.ErrInvalidXML)
	}
	return doc, nil
}

// Serialize writes the document with two-space indentation and an XML declaration.
// The document is re-indented in place.
func Serialize(doc *etree.Document) ([]byte, error) {
	if !hasDeclaration(doc) {
		doc.InsertChildAt(0, etree.NewProcInst("xml", `version="1.0" encoding="UTF-8"`))
	}
	doc.Indent(2)
	var buf bytes.Buffer
	if _, err := doc.WriteTo(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func hasDeclaration(doc *etree.Document) bool {
	for _, tok := range doc.Child {
		if pi, ok := tok.(*etree.ProcInst); ok && pi.Target == "xml" {
			return true
		}
	}
	return false
}

// NewDocument returns a document whose root element is built from tag and attrs.
func NewDocument(tag string, attrs ...Attr) (*etree.Document, *etree.Element) {
	doc := etree.NewDocument()
	doc.CreateProcInst("xml", `version="1.0" encoding="UTF-8"`)
	root := doc.CreateElement(tag)
	stamp(root, attrs)
	return doc, root
}

// Adopt returns a new document whose root is e. e is detached from any
// previous parent.
func Adopt(e *etree.Element) *etree.Document {
	doc := etree.NewDocument()
	doc.CreateProcInst("xml", `version="1.0" encoding="UTF-8"`)
	Remove(e)
	doc.SetRoot(e)
	return doc
}

// Matches reports whether e carries every constraint attribute with the exact value.
func Matches(e *etree.Element, constraints []Attr) bool {
	for _, c := range constraints {
		a := e.SelectAttr(c.Name)
		if a == nil || a.Value != c.Value {
			return false
		}
	}
	return true
}

// Select descends from parent along steps (element names, one per level) and
// returns matching elements in document order. Constraints apply to the last step.
func Select(parent *etree.Element, steps []string, constraints []Attr) []*etree.Element {
	current := []*etree.Element{parent}
	for i, step := range steps {
		var next []*etree.Element
		last := i == len(steps)-1
		for _, e := range current {
			for _, child := range e.ChildElements() {
				if child.Tag != step {
					continue
				}
				if last && !Matches(child, constraints) {
					continue
				}
				next = append(next, child)
			}
		}
		current = next
		if len(current) == 0 {
			return nil
		}
	}
	return current
}

// SplitPath splits a slash-separated element path into steps.
func SplitPath(path string) []string {
	return strings.Split(strings.Trim(path, "/"), "/")
}

// Descendants returns every element below root (root included) named tag, in document order.
func Descendants(root *etree.Element, tag string) []*etree.Element {
	var out []*etree.Element
	var walk func(e *etree.Element)
	walk = func(e *etree.Element) {
		if e.Tag == tag {
			out = append(out, e)
		}
		for _, c := range e.ChildElements() {
			walk(c)
		}
	}
	walk(root)
	return out
}

// FirstWithAttr returns the first child of parent named tag that carries attr,
// together with the attribute value. Returns nil when no child has it.
func FirstWithAttr(parent *etree.Element, tag, attr string) (*etree.Element, string) {
	for _, c := range parent.ChildElements() {
		if c.Tag != tag {
			continue
		}
		if a := c.SelectAttr(attr); a != nil {
			return c, a.Value
		}
	}
	return nil, ""
}

// AttrValue returns the value of attr on e and whether it is present.
func AttrValue(e *etree.Element, attr string) (string, bool) {
	a := e.SelectAttr(attr)
	if a == nil {
		return "", false
	}
	return a.Value, true
}

// SetAttr creates or overwrites attr on e.
func SetAttr(e *etree.Element, attr, value string) {
	e.CreateAttr(attr, value)
}

// Text returns the text content of e. For elements with child elements the
// non-blank text of all descendants is concatenated.
func Text(e *etree.Element) string {
	if len(e.ChildElements()) == 0 {
		return e.Text()
	}
	var b strings.Builder
	var walk func(el *etree.Element)
	walk = func(el *etree.Element) {
		for _, tok := range el.Child {
			switch t := tok.(type) {
			case *etree.CharData:
				if s := strings.TrimSpace(t.Data); s != "" {
					b.WriteString(s)
				}
			case *etree.Element:
				walk(t)
			}
		}
	}
	walk(e)
	return b.String()
}

// SetText replaces the text content of e.
func SetText(e *etree.Element, value string) {
	e.SetText(value)
}

// Create builds a child element of parent at child-token position; a negative
// position appends.
func Create(parent *etree.Element, tag string, attrs []Attr, position int) *etree.Element {
	e := etree.NewElement(tag)
	stamp(e, attrs)
	if position < 0 || position >= len(parent.Child) {
		parent.AddChild(e)
	} else {
		parent.InsertChildAt(position, e)
	}
	return e
}

// Append creates a child element of parent directly after the last existing
// child with the same tag, or at the end when there is none. Same-tag siblings
// therefore stay grouped and keep insertion order.
func Append(parent *etree.Element, tag string, attrs []Attr) *etree.Element {
	position := -1
	siblings := parent.SelectElements(tag)
	if n := len(siblings); n > 0 {
		position = siblings[n-1].Index() + 1
	}
	return Create(parent, tag, attrs, position)
}

// Remove detaches e from its parent. Removing a parentless element is a no-op.
func Remove(e *etree.Element) {
	if p := e.Parent(); p != nil {
		p.RemoveChild(e)
	}
}

func stamp(e *etree.Element, attrs []Attr) {
	for _, a := range attrs {
		e.CreateAttr(a.Name, a.Value)
	}
}
