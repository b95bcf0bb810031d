package scl

import "encoding/xml"

// Namespace is the SCL 2007 schema namespace.
const Namespace = "http://www.iec.ch/61850/2003/SCL"

// SCL conducting equipment and transformer type codes.
const (
	TypeCircuitBreaker     = "CBR"
	TypeDisconnector       = "DIS"
	TypePowerTransformer   = "PTR"
	TypeTransformerWinding = "PTW"
	TypeLoadTapChanger     = "LTC"
)

// Named is implemented by every tree node that contributes a segment to
// a path name.
type Named interface {
	NodeName() string
}

// Document is the SCL root element.
type Document struct {
	XMLName     xml.Name     `xml:"SCL"`
	Xmlns       string       `xml:"xmlns,attr"`
	Version     string       `xml:"version,attr,omitempty"`
	Revision    string       `xml:"revision,attr,omitempty"`
	Release     string       `xml:"release,attr,omitempty"`
	Header      Header       `xml:"Header"`
	Substations []Substation `xml:"Substation"`
}

// Header identifies the document.
type Header struct {
	ID            string `xml:"id,attr"`
	Version       string `xml:"version,attr,omitempty"`
	Revision      string `xml:"revision,attr,omitempty"`
	ToolID        string `xml:"toolID,attr,omitempty"`
	NameStructure string `xml:"nameStructure,attr,omitempty"`
}

// Substation holds voltage levels and the transformers between them.
type Substation struct {
	Name              string             `xml:"name,attr"`
	Desc              string             `xml:"desc,attr,omitempty"`
	PowerTransformers []PowerTransformer `xml:"PowerTransformer"`
	VoltageLevels     []VoltageLevel     `xml:"VoltageLevel"`
}

func (s *Substation) NodeName() string { return s.Name }

// VoltageLevel holds bays.
type VoltageLevel struct {
	Name    string   `xml:"name,attr"`
	Desc    string   `xml:"desc,attr,omitempty"`
	Voltage *Voltage `xml:"Voltage,omitempty"`
	Bays    []Bay    `xml:"Bay"`
}

func (v *VoltageLevel) NodeName() string { return v.Name }

// Voltage is a value with SI unit and multiplier.
type Voltage struct {
	Unit       string  `xml:"unit,attr"`
	Multiplier string  `xml:"multiplier,attr,omitempty"`
	Value      float64 `xml:",chardata"`
}

// Bay holds equipment and the connectivity nodes defined inside it.
type Bay struct {
	Name                 string                `xml:"name,attr"`
	Desc                 string                `xml:"desc,attr,omitempty"`
	ConductingEquipments []ConductingEquipment `xml:"ConductingEquipment"`
	ConnectivityNodes    []ConnectivityNode    `xml:"ConnectivityNode"`
}

func (b *Bay) NodeName() string { return b.Name }

// ConductingEquipment is primary equipment such as a breaker.
type ConductingEquipment struct {
	Name      string     `xml:"name,attr"`
	Desc      string     `xml:"desc,attr,omitempty"`
	Type      string     `xml:"type,attr"`
	Terminals []Terminal `xml:"Terminal"`
}

func (c *ConductingEquipment) NodeName() string { return c.Name }

// Terminal references a connectivity node by path name.
type Terminal struct {
	Name             string `xml:"name,attr,omitempty"`
	ConnectivityNode string `xml:"connectivityNode,attr,omitempty"`
	SubstationName   string `xml:"substationName,attr,omitempty"`
	VoltageLevelName string `xml:"voltageLevelName,attr,omitempty"`
	BayName          string `xml:"bayName,attr,omitempty"`
	CNodeName        string `xml:"cNodeName,attr,omitempty"`
}

// ConnectivityNode is identified across the document by its path name.
type ConnectivityNode struct {
	Name     string `xml:"name,attr"`
	PathName string `xml:"pathName,attr"`
}

func (c *ConnectivityNode) NodeName() string { return c.Name }

// PowerTransformer holds one winding per transformer end.
type PowerTransformer struct {
	Name     string               `xml:"name,attr"`
	Desc     string               `xml:"desc,attr,omitempty"`
	Type     string               `xml:"type,attr"`
	Windings []TransformerWinding `xml:"TransformerWinding"`
}

func (p *PowerTransformer) NodeName() string { return p.Name }

// TransformerWinding is one end of a power transformer.
type TransformerWinding struct {
	Name       string      `xml:"name,attr"`
	Desc       string      `xml:"desc,attr,omitempty"`
	Type       string      `xml:"type,attr"`
	Terminals  []Terminal  `xml:"Terminal"`
	TapChanger *TapChanger `xml:"TapChanger,omitempty"`
}

func (w *TransformerWinding) NodeName() string { return w.Name }

// TapChanger regulates a winding.
type TapChanger struct {
	Name string `xml:"name,attr"`
	Desc string `xml:"desc,attr,omitempty"`
	Type string `xml:"type,attr"`
}
