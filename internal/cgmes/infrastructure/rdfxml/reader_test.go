package rdfxml

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/klauspost/compress/zip"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	cgmes "cim-mapping/internal/cgmes/domain"
)

const equipmentProfile = `<?xml version="1.0" encoding="UTF-8"?>
<rdf:RDF xmlns:cim="http://iec.ch/TC57/2013/CIM-schema-cim16#"
         xmlns:md="http://iec.ch/TC57/61970-552/ModelDescription/1#"
         xmlns:rdf="http://www.w3.org/1999/02/22-rdf-syntax-ns#">
  <md:FullModel rdf:about="urn:uuid:model-1">
    <md:Model.created>2021-01-01T00:00:00Z</md:Model.created>
  </md:FullModel>
  <cim:Substation rdf:ID="_S1">
    <cim:IdentifiedObject.name>Sub 1</cim:IdentifiedObject.name>
  </cim:Substation>
  <cim:VoltageLevel rdf:ID="_VL1">
    <cim:IdentifiedObject.name>110kV</cim:IdentifiedObject.name>
    <cim:VoltageLevel.Substation rdf:resource="#_S1"/>
  </cim:VoltageLevel>
</rdf:RDF>`

func TestReadEquipmentProfile(t *testing.T) {
	triples, err := Read(strings.NewReader(equipmentProfile))
	require.NoError(t, err)

	assert.Contains(t, triples, cgmes.Triple{Subject: "_S1", Predicate: "rdf:type", Object: "cim:Substation"})
	assert.Contains(t, triples, cgmes.Triple{Subject: "_S1", Predicate: "cim:IdentifiedObject.name", Object: "Sub 1"})
	assert.Contains(t, triples, cgmes.Triple{Subject: "_VL1", Predicate: "cim:VoltageLevel.Substation", Object: "_S1"})
	assert.Contains(t, triples, cgmes.Triple{Subject: "urn:uuid:model-1", Predicate: "rdf:type", Object: "md:FullModel"})
	assert.Len(t, triples, 7)
}

func TestReadRejectsNonRDF(t *testing.T) {
	_, err := Read(strings.NewReader(`<SCL xmlns="http://www.iec.ch/61850/2003/SCL"/>`))
	assert.ErrorIs(t, err, ErrNotRDF)
}

func TestReadFileZipArchive(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "model.zip")

	f, err := os.Create(path)
	require.NoError(t, err)
	zw := zip.NewWriter(f)
	w, err := zw.Create("model_EQ.xml")
	require.NoError(t, err)
	_, err = w.Write([]byte(equipmentProfile))
	require.NoError(t, err)
	readme, err := zw.Create("README.txt")
	require.NoError(t, err)
	_, err = readme.Write([]byte("not rdf"))
	require.NoError(t, err)
	require.NoError(t, zw.Close())
	require.NoError(t, f.Close())

	triples, err := ReadFile(path)
	require.NoError(t, err)
	assert.Len(t, triples, 7)
}
