package scl

import (
	"encoding/xml"
	"errors"
	"io"
)

// Write encodes doc as indented XML with a declaration.
func Write(w io.Writer, doc *Document) error {
	if doc == nil {
		return errors.New("scl: nil document")
	}
	if doc.Xmlns == "" {
		doc.Xmlns = Namespace
	}
	if _, err := io.WriteString(w, xml.Header); err != nil {
		return err
	}
	enc := xml.NewEncoder(w)
	enc.Indent("", "  ")
	if err := enc.Encode(doc); err != nil {
		return err
	}
	if err := enc.Close(); err != nil {
		return err
	}
	_, err := io.WriteString(w, "\n")
	return err
}

// Read decodes an SCL document.
func Read(r io.Reader) (*Document, error) {
	var doc Document
	if err := xml.NewDecoder(r).Decode(&doc); err != nil {
		return nil, err
	}
	return &doc, nil
}
