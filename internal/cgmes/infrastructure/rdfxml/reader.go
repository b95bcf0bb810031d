package rdfxml

import (
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/klauspost/compress/zip"

	cgmes "cim-mapping/internal/cgmes/domain"
)

const (
	rdfNamespace  = "http://www.w3.org/1999/02/22-rdf-syntax-ns#"
	typePredicate = "rdf:type"
)

// ErrNotRDF is returned when the document root is not rdf:RDF.
var ErrNotRDF = errors.New("rdfxml: document root is not rdf:RDF")

// ReadFile reads triples from an RDF/XML file or from every .xml member
// of a .zip archive.
func ReadFile(path string) ([]cgmes.Triple, error) {
	if strings.EqualFold(filepath.Ext(path), ".zip") {
		return readZip(path)
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	triples, err := Read(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return triples, nil
}

func readZip(path string) ([]cgmes.Triple, error) {
	archive, err := zip.OpenReader(path)
	if err != nil {
		return nil, err
	}
	defer archive.Close()

	var triples []cgmes.Triple
	for _, member := range archive.File {
		if member.FileInfo().IsDir() || !strings.EqualFold(filepath.Ext(member.Name), ".xml") {
			continue
		}
		rc, err := member.Open()
		if err != nil {
			return nil, fmt.Errorf("%s!%s: %w", path, member.Name, err)
		}
		read, err := Read(rc)
		rc.Close()
		if err != nil {
			return nil, fmt.Errorf("%s!%s: %w", path, member.Name, err)
		}
		triples = append(triples, read...)
	}
	return triples, nil
}

// Read decodes one RDF/XML document. Every child of rdf:RDF becomes a
// subject with an rdf:type triple, and each of its property elements one
// more triple. Resource references lose their leading '#'.
func Read(r io.Reader) ([]cgmes.Triple, error) {
	decoder := xml.NewDecoder(r)
	prefixes := map[string]string{rdfNamespace: "rdf"}

	var (
		triples   []cgmes.Triple
		depth     int
		subject   string
		predicate string
		resource  bool
		text      strings.Builder
	)

	for {
		token, err := decoder.Token()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, err
		}

		switch tok := token.(type) {
		case xml.StartElement:
			depth++
			switch depth {
			case 1:
				if tok.Name.Space != rdfNamespace || tok.Name.Local != "RDF" {
					return nil, ErrNotRDF
				}
				for _, attr := range tok.Attr {
					if attr.Name.Space == "xmlns" {
						prefixes[attr.Value] = attr.Name.Local
					}
				}
			case 2:
				subject = subjectOf(tok)
				if subject != "" {
					triples = append(triples, cgmes.Triple{
						Subject:   subject,
						Predicate: typePredicate,
						Object:    qualify(prefixes, tok.Name),
					})
				}
			case 3:
				predicate = qualify(prefixes, tok.Name)
				resource = false
				text.Reset()
				if ref, ok := attrValue(tok, "resource"); ok && subject != "" {
					resource = true
					triples = append(triples, cgmes.Triple{
						Subject:   subject,
						Predicate: predicate,
						Object:    strings.TrimPrefix(ref, "#"),
					})
				}
			}
		case xml.CharData:
			if depth == 3 && !resource {
				text.Write(tok)
			}
		case xml.EndElement:
			if depth == 3 && !resource && subject != "" {
				triples = append(triples, cgmes.Triple{
					Subject:   subject,
					Predicate: predicate,
					Object:    strings.TrimSpace(text.String()),
				})
			}
			if depth == 2 {
				subject = ""
			}
			depth--
		}
	}
	return triples, nil
}

func subjectOf(el xml.StartElement) string {
	if id, ok := attrValue(el, "ID"); ok {
		return strings.TrimPrefix(id, "#")
	}
	if about, ok := attrValue(el, "about"); ok {
		return strings.TrimPrefix(about, "#")
	}
	return ""
}

func attrValue(el xml.StartElement, local string) (string, bool) {
	for _, attr := range el.Attr {
		if attr.Name.Space == rdfNamespace && attr.Name.Local == local {
			return attr.Value, true
		}
	}
	return "", false
}

func qualify(prefixes map[string]string, name xml.Name) string {
	if prefix, ok := prefixes[name.Space]; ok && prefix != "" {
		return prefix + ":" + name.Local
	}
	return name.Local
}
