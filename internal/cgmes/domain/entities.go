package cgmes

// Substation is the top of the container hierarchy.
type Substation struct {
	ID   string
	Name string
}

// VoltageLevel belongs to a substation. NominalVoltage is in kV.
type VoltageLevel struct {
	ID             string
	Name           string
	NominalVoltage float64
	SubstationID   string
}

// Bay belongs to a voltage level.
type Bay struct {
	ID             string
	Name           string
	VoltageLevelID string
}

// BusbarSection is equipment placed in a container.
type BusbarSection struct {
	ID                   string
	Name                 string
	EquipmentContainerID string
}

// PowerTransformer is equipment placed in a container.
type PowerTransformer struct {
	ID                   string
	Name                 string
	Description          string
	EquipmentContainerID string
}

// TransformerEnd is one winding end of a power transformer.
type TransformerEnd struct {
	ID            string
	UniqueName    string
	Name          string
	TerminalID    string
	EndNumber     string
	TransformerID string
}

// TapChangerKind tells ratio and phase tap changers apart.
type TapChangerKind string

const (
	TapChangerRatio TapChangerKind = "Ratio"
	TapChangerPhase TapChangerKind = "Phase"
)

// TapChanger regulates a transformer end.
type TapChanger struct {
	ID               string
	Name             string
	Kind             TapChangerKind
	TransformerEndID string
}

// SwitchKind is the CIM class of a switch. Values outside the known
// constants are kept as reported by the source model.
type SwitchKind string

const (
	SwitchKindBreaker            SwitchKind = "Breaker"
	SwitchKindDisconnector       SwitchKind = "Disconnector"
	SwitchKindLoadBreakSwitch    SwitchKind = "LoadBreakSwitch"
	SwitchKindGroundDisconnector SwitchKind = "GroundDisconnector"
	SwitchKindFuse               SwitchKind = "Fuse"
	SwitchKindJumper             SwitchKind = "Jumper"
	SwitchKindSwitch             SwitchKind = "Switch"
)

// IsBreaker reports whether the switch interrupts load current.
func (k SwitchKind) IsBreaker() bool {
	return k == SwitchKindBreaker
}

// Switch is switching equipment placed in a container.
type Switch struct {
	ID                   string
	Name                 string
	Kind                 SwitchKind
	EquipmentContainerID string
}

// Terminal connects conducting equipment to a connectivity node.
type Terminal struct {
	ID                    string
	Name                  string
	ConnectivityNodeID    string
	ConductingEquipmentID string
}

// ConnectivityNode is an electrical junction. ContainerID is the busbar
// section or bay it was looked up through, when known.
type ConnectivityNode struct {
	ID          string
	Name        string
	ContainerID string
}
