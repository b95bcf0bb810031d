package cgmes

// Property names returned by the query catalog. Each query result column
// is named after one of these.
const (
	PropSubstation          = "Substation"
	PropName                = "name"
	PropVoltageLevel        = "VoltageLevel"
	PropNominalVoltage      = "nominalVoltage"
	PropBusbarSection       = "BusbarSection"
	PropBay                 = "Bay"
	PropEquipmentContainer  = "EquipmentContainer"
	PropPowerTransformer    = "PowerTransformer"
	PropDescription         = "description"
	PropTransformerEnd      = "TransformerEnd"
	PropTerminal            = "Terminal"
	PropEndNumber           = "endNumber"
	PropRatioTapChanger     = "RatioTapChanger"
	PropPhaseTapChanger     = "PhaseTapChanger"
	PropConnectivityNode    = "ConnectivityNode"
	PropConductingEquipment = "ConductingEquipment"
	PropSwitch              = "Switch"
	PropType                = "type"
)
