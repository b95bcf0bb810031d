package sqlstore

import (
	"fmt"
	"strings"

	cgmes "cim-mapping/internal/cgmes/domain"
)

// template is one entity query over the triple table. %[1]s is the table
// name. filterColumn is compared against the caller's filter value.
type template struct {
	body         string
	filterColumn string
	orderBy      string
}

const nameJoin = `
LEFT JOIN %[1]s n ON n.subject = e.subject AND n.predicate = 'cim:IdentifiedObject.name'`

var templates = map[cgmes.Kind]template{
	cgmes.KindSubstation: {
		body: `
SELECT e.subject AS "Substation", n.object AS "name"
FROM %[1]s e` + nameJoin + `
WHERE e.predicate = 'rdf:type' AND e.object = 'cim:Substation'`,
		filterColumn: "e.subject",
		orderBy:      `"name", "Substation"`,
	},
	cgmes.KindVoltageLevel: {
		body: `
SELECT e.subject AS "VoltageLevel", n.object AS "name", nv.object AS "nominalVoltage", sub.object AS "Substation"
FROM %[1]s e` + nameJoin + `
LEFT JOIN %[1]s bv ON bv.subject = e.subject AND bv.predicate = 'cim:VoltageLevel.BaseVoltage'
LEFT JOIN %[1]s nv ON nv.subject = bv.object AND nv.predicate = 'cim:BaseVoltage.nominalVoltage'
LEFT JOIN %[1]s sub ON sub.subject = e.subject AND sub.predicate = 'cim:VoltageLevel.Substation'
WHERE e.predicate = 'rdf:type' AND e.object = 'cim:VoltageLevel'`,
		filterColumn: "sub.object",
		orderBy:      `"name", "VoltageLevel"`,
	},
	cgmes.KindBay: {
		body: `
SELECT e.subject AS "Bay", n.object AS "name", vl.object AS "VoltageLevel"
FROM %[1]s e` + nameJoin + `
LEFT JOIN %[1]s vl ON vl.subject = e.subject AND vl.predicate = 'cim:Bay.VoltageLevel'
WHERE e.predicate = 'rdf:type' AND e.object = 'cim:Bay'`,
		filterColumn: "vl.object",
		orderBy:      `"name", "Bay"`,
	},
	cgmes.KindBusbarSection: {
		body: `
SELECT e.subject AS "BusbarSection", n.object AS "name", ec.object AS "EquipmentContainer"
FROM %[1]s e` + nameJoin + `
LEFT JOIN %[1]s ec ON ec.subject = e.subject AND ec.predicate = 'cim:Equipment.EquipmentContainer'
WHERE e.predicate = 'rdf:type' AND e.object = 'cim:BusbarSection'`,
		filterColumn: "ec.object",
		orderBy:      `"name", "BusbarSection"`,
	},
	cgmes.KindPowerTransformer: {
		body: `
SELECT e.subject AS "PowerTransformer", n.object AS "name", d.object AS "description", ec.object AS "EquipmentContainer"
FROM %[1]s e` + nameJoin + `
LEFT JOIN %[1]s d ON d.subject = e.subject AND d.predicate = 'cim:IdentifiedObject.description'
LEFT JOIN %[1]s ec ON ec.subject = e.subject AND ec.predicate = 'cim:Equipment.EquipmentContainer'
WHERE e.predicate = 'rdf:type' AND e.object = 'cim:PowerTransformer'`,
		filterColumn: "ec.object",
		orderBy:      `"name", "PowerTransformer"`,
	},
	cgmes.KindTransformerEnd: {
		body: `
SELECT e.subject AS "TransformerEnd", n.object AS "name", pt.object AS "PowerTransformer", t.object AS "Terminal", en.object AS "endNumber"
FROM %[1]s e` + nameJoin + `
LEFT JOIN %[1]s pt ON pt.subject = e.subject AND pt.predicate = 'cim:PowerTransformerEnd.PowerTransformer'
LEFT JOIN %[1]s t ON t.subject = e.subject AND t.predicate = 'cim:TransformerEnd.Terminal'
LEFT JOIN %[1]s en ON en.subject = e.subject AND en.predicate = 'cim:TransformerEnd.endNumber'
WHERE e.predicate = 'rdf:type' AND e.object = 'cim:PowerTransformerEnd'`,
		filterColumn: "pt.object",
		orderBy:      `"endNumber", "TransformerEnd"`,
	},
	cgmes.KindRatioTapChanger: {
		body: `
SELECT e.subject AS "RatioTapChanger", n.object AS "name", te.object AS "TransformerEnd"
FROM %[1]s e` + nameJoin + `
LEFT JOIN %[1]s te ON te.subject = e.subject AND te.predicate = 'cim:RatioTapChanger.TransformerEnd'
WHERE e.predicate = 'rdf:type' AND e.object = 'cim:RatioTapChanger'`,
		filterColumn: "te.object",
		orderBy:      `"RatioTapChanger"`,
	},
	// Phase tap changers come in several concrete classes; all of them
	// carry the same end reference.
	cgmes.KindPhaseTapChanger: {
		body: `
SELECT e.subject AS "PhaseTapChanger", n.object AS "name", e.object AS "TransformerEnd"
FROM %[1]s e` + nameJoin + `
WHERE e.predicate = 'cim:PhaseTapChanger.TransformerEnd'`,
		filterColumn: "e.object",
		orderBy:      `"PhaseTapChanger"`,
	},
	cgmes.KindSwitch: {
		body: `
SELECT e.subject AS "Switch", n.object AS "name", REPLACE(e.object, 'cim:', '') AS "type", ec.object AS "EquipmentContainer"
FROM %[1]s e` + nameJoin + `
LEFT JOIN %[1]s ec ON ec.subject = e.subject AND ec.predicate = 'cim:Equipment.EquipmentContainer'
WHERE e.predicate = 'rdf:type' AND e.object IN (
	'cim:Switch', 'cim:Breaker', 'cim:Disconnector', 'cim:LoadBreakSwitch',
	'cim:GroundDisconnector', 'cim:Fuse', 'cim:Jumper')`,
		filterColumn: "ec.object",
		orderBy:      `"name", "Switch"`,
	},
	cgmes.KindTerminalByConductingEquipment: {
		body:         terminalBody,
		filterColumn: "ce.object",
		orderBy:      `"Terminal"`,
	},
	cgmes.KindTerminalByID: {
		body:         terminalBody,
		filterColumn: "e.subject",
		orderBy:      `"Terminal"`,
	},
	cgmes.KindConnectivityNodeByBusbar: {
		body: `
SELECT DISTINCT cn.object AS "ConnectivityNode", n.object AS "name", e.object AS "ConductingEquipment"
FROM %[1]s e
JOIN %[1]s bt ON bt.subject = e.object AND bt.predicate = 'rdf:type' AND bt.object = 'cim:BusbarSection'
JOIN %[1]s cn ON cn.subject = e.subject AND cn.predicate = 'cim:Terminal.ConnectivityNode'
LEFT JOIN %[1]s n ON n.subject = cn.object AND n.predicate = 'cim:IdentifiedObject.name'
WHERE e.predicate = 'cim:Terminal.ConductingEquipment'`,
		filterColumn: "e.object",
		orderBy:      `"name", "ConnectivityNode"`,
	},
	cgmes.KindConnectivityNodeByBay: {
		body: `
SELECT e.subject AS "ConnectivityNode", n.object AS "name", c.object AS "EquipmentContainer"
FROM %[1]s e` + nameJoin + `
LEFT JOIN %[1]s c ON c.subject = e.subject AND c.predicate = 'cim:ConnectivityNode.ConnectivityNodeContainer'
WHERE e.predicate = 'rdf:type' AND e.object = 'cim:ConnectivityNode'`,
		filterColumn: "c.object",
		orderBy:      `"name", "ConnectivityNode"`,
	},
}

const terminalBody = `
SELECT e.subject AS "Terminal", n.object AS "name", cn.object AS "ConnectivityNode", ce.object AS "ConductingEquipment"
FROM %[1]s e` + nameJoin + `
LEFT JOIN %[1]s cn ON cn.subject = e.subject AND cn.predicate = 'cim:Terminal.ConnectivityNode'
LEFT JOIN %[1]s ce ON ce.subject = e.subject AND ce.predicate = 'cim:Terminal.ConductingEquipment'
WHERE e.predicate = 'rdf:type' AND e.object = 'cim:Terminal'`

// Catalog renders SQL queries over the triple table. It implements
// cgmes.QueryCatalog.
type Catalog struct {
	table string
}

// NewCatalog constructs a catalog for the given triple table.
func NewCatalog(table string) (*Catalog, error) {
	if table == "" {
		table = defaultTriplesTable
	}
	if !validTableName(table) {
		return nil, fmt.Errorf("sqlstore: invalid table name %q", table)
	}
	return &Catalog{table: table}, nil
}

// Query returns the SQL text for kind, restricted to filter when non-empty.
func (c *Catalog) Query(kind cgmes.Kind, filter string) (string, error) {
	tpl, ok := templates[kind]
	if !ok {
		return "", fmt.Errorf("%w: %s", cgmes.ErrUnknownKind, kind)
	}
	var b strings.Builder
	b.WriteString(fmt.Sprintf(tpl.body, c.table))
	if filter != "" {
		b.WriteString("\n\tAND ")
		b.WriteString(tpl.filterColumn)
		b.WriteString(" = ")
		b.WriteString(quoteLiteral(filter))
	}
	if tpl.orderBy != "" {
		b.WriteString("\nORDER BY ")
		b.WriteString(tpl.orderBy)
	}
	return b.String(), nil
}

// quoteLiteral renders value as a standard SQL string literal.
func quoteLiteral(value string) string {
	return "'" + strings.ReplaceAll(value, "'", "''") + "'"
}
