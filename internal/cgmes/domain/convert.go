package cgmes

import "strconv"

// SubstationFromRecord converts a substation query row.
func SubstationFromRecord(r Record) (Substation, error) {
	v, err := r.requiredAll(KindSubstation, PropSubstation, PropName)
	if err != nil {
		return Substation{}, err
	}
	return Substation{ID: v[0], Name: v[1]}, nil
}

// VoltageLevelFromRecord converts a voltage level query row.
func VoltageLevelFromRecord(r Record) (VoltageLevel, error) {
	v, err := r.requiredAll(KindVoltageLevel, PropVoltageLevel, PropName, PropNominalVoltage, PropSubstation)
	if err != nil {
		return VoltageLevel{}, err
	}
	nominal, err := strconv.ParseFloat(v[2], 64)
	if err != nil {
		return VoltageLevel{}, &InvalidFieldError{Kind: KindVoltageLevel, Property: PropNominalVoltage, Value: v[2], Err: err}
	}
	return VoltageLevel{ID: v[0], Name: v[1], NominalVoltage: nominal, SubstationID: v[3]}, nil
}

// BayFromRecord converts a bay query row.
func BayFromRecord(r Record) (Bay, error) {
	v, err := r.requiredAll(KindBay, PropBay, PropName, PropVoltageLevel)
	if err != nil {
		return Bay{}, err
	}
	return Bay{ID: v[0], Name: v[1], VoltageLevelID: v[2]}, nil
}

// BusbarSectionFromRecord converts a busbar section query row.
func BusbarSectionFromRecord(r Record) (BusbarSection, error) {
	v, err := r.requiredAll(KindBusbarSection, PropBusbarSection, PropName, PropEquipmentContainer)
	if err != nil {
		return BusbarSection{}, err
	}
	return BusbarSection{ID: v[0], Name: v[1], EquipmentContainerID: v[2]}, nil
}

// PowerTransformerFromRecord converts a power transformer query row.
// The description is optional.
func PowerTransformerFromRecord(r Record) (PowerTransformer, error) {
	v, err := r.requiredAll(KindPowerTransformer, PropPowerTransformer, PropName, PropEquipmentContainer)
	if err != nil {
		return PowerTransformer{}, err
	}
	return PowerTransformer{
		ID:                   v[0],
		Name:                 v[1],
		Description:          r.optional(PropDescription),
		EquipmentContainerID: v[2],
	}, nil
}

// TransformerEndFromRecord converts a transformer end query row. Ends of
// one transformer usually share a name, so UniqueName appends the end number.
func TransformerEndFromRecord(r Record) (TransformerEnd, error) {
	v, err := r.requiredAll(KindTransformerEnd, PropTransformerEnd, PropName, PropTerminal, PropEndNumber, PropPowerTransformer)
	if err != nil {
		return TransformerEnd{}, err
	}
	return TransformerEnd{
		ID:            v[0],
		UniqueName:    v[1] + "_" + v[3],
		Name:          v[1],
		TerminalID:    v[2],
		EndNumber:     v[3],
		TransformerID: v[4],
	}, nil
}

// RatioTapChangerFromRecord converts a ratio tap changer query row.
func RatioTapChangerFromRecord(r Record) (TapChanger, error) {
	return tapChangerFromRecord(r, KindRatioTapChanger, PropRatioTapChanger, TapChangerRatio)
}

// PhaseTapChangerFromRecord converts a phase tap changer query row.
func PhaseTapChangerFromRecord(r Record) (TapChanger, error) {
	return tapChangerFromRecord(r, KindPhaseTapChanger, PropPhaseTapChanger, TapChangerPhase)
}

func tapChangerFromRecord(r Record, kind Kind, idProp string, tcKind TapChangerKind) (TapChanger, error) {
	v, err := r.requiredAll(kind, idProp, PropName, PropTransformerEnd)
	if err != nil {
		return TapChanger{}, err
	}
	return TapChanger{ID: v[0], Name: v[1], Kind: tcKind, TransformerEndID: v[2]}, nil
}

// SwitchFromRecord converts a switch query row.
func SwitchFromRecord(r Record) (Switch, error) {
	v, err := r.requiredAll(KindSwitch, PropSwitch, PropName, PropType, PropEquipmentContainer)
	if err != nil {
		return Switch{}, err
	}
	return Switch{ID: v[0], Name: v[1], Kind: SwitchKind(v[2]), EquipmentContainerID: v[3]}, nil
}

// TerminalFromRecord converts a terminal query row. The conducting
// equipment column is absent from lookups by terminal id.
func TerminalFromRecord(r Record) (Terminal, error) {
	v, err := r.requiredAll(KindTerminal, PropTerminal, PropName, PropConnectivityNode)
	if err != nil {
		return Terminal{}, err
	}
	return Terminal{
		ID:                    v[0],
		Name:                  v[1],
		ConnectivityNodeID:    v[2],
		ConductingEquipmentID: r.optional(PropConductingEquipment),
	}, nil
}

// ConnectivityNodeFromRecord converts a connectivity node query row.
// containerProp names the column holding the container it was found through.
func ConnectivityNodeFromRecord(r Record, containerProp string) (ConnectivityNode, error) {
	v, err := r.requiredAll(KindConnectivityNode, PropConnectivityNode, PropName)
	if err != nil {
		return ConnectivityNode{}, err
	}
	return ConnectivityNode{ID: v[0], Name: v[1], ContainerID: r.optional(containerProp)}, nil
}
