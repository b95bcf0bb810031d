package cgmes

import "context"

// Kind identifies a queryable entity kind of the source model.
type Kind string

const (
	KindSubstation                    Kind = "Substation"
	KindVoltageLevel                  Kind = "VoltageLevel"
	KindBay                           Kind = "Bay"
	KindBusbarSection                 Kind = "BusbarSection"
	KindPowerTransformer              Kind = "PowerTransformer"
	KindTransformerEnd                Kind = "TransformerEnd"
	KindRatioTapChanger               Kind = "RatioTapChanger"
	KindPhaseTapChanger               Kind = "PhaseTapChanger"
	KindSwitch                        Kind = "Switch"
	KindTerminalByConductingEquipment Kind = "TerminalByConductingEquipment"
	KindTerminalByID                  Kind = "TerminalByID"
	KindConnectivityNodeByBusbar      Kind = "ConnectivityNodeByBusbarSection"
	KindConnectivityNodeByBay         Kind = "ConnectivityNodeByBay"
)

// Entity kinds without a query of their own; used in conversion errors.
const (
	KindTerminal         Kind = "Terminal"
	KindConnectivityNode Kind = "ConnectivityNode"
)

// Kinds lists every kind a catalog must support.
var Kinds = []Kind{
	KindSubstation,
	KindVoltageLevel,
	KindBay,
	KindBusbarSection,
	KindPowerTransformer,
	KindTransformerEnd,
	KindRatioTapChanger,
	KindPhaseTapChanger,
	KindSwitch,
	KindTerminalByConductingEquipment,
	KindTerminalByID,
	KindConnectivityNodeByBusbar,
	KindConnectivityNodeByBay,
}

// QueryExecutor runs query text against the source model and returns
// one record per result row, in result order.
type QueryExecutor interface {
	Query(ctx context.Context, text string) ([]Record, error)
}

// QueryCatalog builds the query text for an entity kind. An empty filter
// selects every entity of that kind; otherwise results are restricted to
// the given parent (or own, for KindTerminalByID) id.
type QueryCatalog interface {
	Query(kind Kind, filter string) (string, error)
}

// Triple is one statement of the source graph model.
type Triple struct {
	Subject   string
	Predicate string
	Object    string
}
