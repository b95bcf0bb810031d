package application

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"time"

	"github.com/google/uuid"

	cgmes "cim-mapping/internal/cgmes/domain"
	"cim-mapping/internal/observability/metrics"
	scl "cim-mapping/internal/scl/domain"
)

// ErrScopeNotEmpty is returned when a run starts on a context whose scope
// stack still holds nodes from an earlier traversal.
var ErrScopeNotEmpty = errors.New("mapper: scope stack not empty")

// HeaderConfig fills the SCL root and header attributes.
type HeaderConfig struct {
	Version  string
	Revision string
	Release  string
	ToolID   string
}

// DefaultHeader targets SCL edition 2.1 (2007B4).
var DefaultHeader = HeaderConfig{
	Version:  "2007",
	Revision: "B",
	Release:  "4",
	ToolID:   "cim-mapping",
}

// Mapper builds an SCL document top-down, driving a Context. A Mapper
// holds no run state and may be reused across runs.
type Mapper struct {
	header HeaderConfig
	logger *log.Logger
	newID  func() string
}

// MapperOption configures the mapper.
type MapperOption func(*Mapper)

// WithHeader overrides the SCL header attributes.
func WithHeader(header HeaderConfig) MapperOption {
	return func(m *Mapper) {
		m.header = header
	}
}

// WithLogger sets the mapper logger.
func WithLogger(logger *log.Logger) MapperOption {
	return func(m *Mapper) {
		if logger != nil {
			m.logger = logger
		}
	}
}

// WithIDGenerator replaces the header id generator.
func WithIDGenerator(newID func() string) MapperOption {
	return func(m *Mapper) {
		if newID != nil {
			m.newID = newID
		}
	}
}

// NewMapper constructs a mapper.
func NewMapper(opts ...MapperOption) *Mapper {
	m := &Mapper{
		header: DefaultHeader,
		logger: log.New(io.Discard, "", 0),
		newID:  uuid.NewString,
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Map converts the whole source model behind mc into an SCL document.
func (m *Mapper) Map(ctx context.Context, mc *Context) (*scl.Document, error) {
	if mc == nil {
		return nil, errors.New("mapper: nil context")
	}
	if mc.ScopeDepth() != 0 {
		return nil, ErrScopeNotEmpty
	}

	start := time.Now()
	doc, err := m.mapDocument(ctx, mc)
	result := metrics.ResultSuccess
	if err != nil {
		result = metrics.ResultError
	}
	metrics.ObserveRun(result, time.Since(start))
	if err != nil {
		return nil, err
	}
	m.logger.Printf("mapping done: header=%s substations=%d took=%s", doc.Header.ID, len(doc.Substations), time.Since(start))
	return doc, nil
}

func (m *Mapper) mapDocument(ctx context.Context, mc *Context) (*scl.Document, error) {
	doc := &scl.Document{
		Xmlns:    scl.Namespace,
		Version:  m.header.Version,
		Revision: m.header.Revision,
		Release:  m.header.Release,
		Header: scl.Header{
			ID:            m.newID(),
			ToolID:        m.header.ToolID,
			NameStructure: "IEDName",
		},
	}

	substations, err := mc.Substations(ctx)
	if err != nil {
		return nil, err
	}
	for _, substation := range substations {
		tSubstation, err := m.mapSubstation(ctx, mc, substation)
		if err != nil {
			return nil, fmt.Errorf("mapper: substation %s: %w", substation.ID, err)
		}
		doc.Substations = append(doc.Substations, tSubstation)
	}
	return doc, nil
}

// Connectivity nodes never cross substations, so each substation starts
// with an empty cache.
func (m *Mapper) mapSubstation(ctx context.Context, mc *Context, substation cgmes.Substation) (scl.Substation, error) {
	mc.ResetConnectivityNodes()
	tSubstation := scl.Substation{Name: substation.Name}

	err := mc.WithScope(&tSubstation, func() error {
		voltageLevels, err := mc.VoltageLevelsBySubstation(ctx, substation.ID)
		if err != nil {
			return err
		}
		for _, voltageLevel := range voltageLevels {
			tVoltageLevel, err := m.mapVoltageLevel(ctx, mc, voltageLevel)
			if err != nil {
				return err
			}
			tSubstation.VoltageLevels = append(tSubstation.VoltageLevels, tVoltageLevel)
		}

		transformers, err := mc.PowerTransformers(ctx, substation.ID)
		if err != nil {
			return err
		}
		for _, transformer := range transformers {
			tTransformer, err := m.mapPowerTransformer(ctx, mc, transformer)
			if err != nil {
				return err
			}
			tSubstation.PowerTransformers = append(tSubstation.PowerTransformers, tTransformer)
		}
		return nil
	})
	return tSubstation, err
}

func (m *Mapper) mapVoltageLevel(ctx context.Context, mc *Context, voltageLevel cgmes.VoltageLevel) (scl.VoltageLevel, error) {
	tVoltageLevel := scl.VoltageLevel{Name: voltageLevel.Name}
	if voltageLevel.NominalVoltage > 0 {
		tVoltageLevel.Voltage = &scl.Voltage{Unit: "V", Multiplier: "k", Value: voltageLevel.NominalVoltage}
	}

	err := mc.WithScope(&tVoltageLevel, func() error {
		// Busbar sections first: their nodes are what bay equipment
		// usually connects to.
		busbars, err := mc.BusbarSectionsByEquipmentContainer(ctx, voltageLevel.ID)
		if err != nil {
			return err
		}
		for _, busbar := range busbars {
			tBay, err := m.mapBusbarSection(ctx, mc, busbar)
			if err != nil {
				return err
			}
			tVoltageLevel.Bays = append(tVoltageLevel.Bays, tBay)
		}

		bays, err := mc.BaysByVoltageLevel(ctx, voltageLevel.ID)
		if err != nil {
			return err
		}
		for _, bay := range bays {
			tBay, err := m.mapBay(ctx, mc, bay)
			if err != nil {
				return err
			}
			tVoltageLevel.Bays = append(tVoltageLevel.Bays, tBay)
		}
		return nil
	})
	return tVoltageLevel, err
}

func (m *Mapper) mapBusbarSection(ctx context.Context, mc *Context, busbar cgmes.BusbarSection) (scl.Bay, error) {
	tBay := scl.Bay{Name: busbar.Name}
	err := mc.WithScope(&tBay, func() error {
		nodes, err := mc.ConnectivityNodesByBusbarSection(ctx, busbar.ID)
		if err != nil {
			return err
		}
		for _, node := range nodes {
			if tNode, ok := m.mapConnectivityNode(mc, node); ok {
				tBay.ConnectivityNodes = append(tBay.ConnectivityNodes, tNode)
			}
		}
		return nil
	})
	return tBay, err
}

func (m *Mapper) mapBay(ctx context.Context, mc *Context, bay cgmes.Bay) (scl.Bay, error) {
	tBay := scl.Bay{Name: bay.Name}
	err := mc.WithScope(&tBay, func() error {
		nodes, err := mc.ConnectivityNodesByBay(ctx, bay.ID)
		if err != nil {
			return err
		}
		for _, node := range nodes {
			if tNode, ok := m.mapConnectivityNode(mc, node); ok {
				tBay.ConnectivityNodes = append(tBay.ConnectivityNodes, tNode)
			}
		}

		switches, err := mc.Switches(ctx, bay.ID)
		if err != nil {
			return err
		}
		for _, sw := range switches {
			tEquipment, err := m.mapSwitch(ctx, mc, sw)
			if err != nil {
				return err
			}
			tBay.ConductingEquipments = append(tBay.ConductingEquipments, tEquipment)
		}
		return nil
	})
	return tBay, err
}

// mapConnectivityNode defines a node under the current scope. A node that
// was already defined elsewhere is not repeated.
func (m *Mapper) mapConnectivityNode(mc *Context, node cgmes.ConnectivityNode) (scl.ConnectivityNode, bool) {
	if mc.HasConnectivityNode(node.ID) {
		return scl.ConnectivityNode{}, false
	}
	pathName := mc.PathName() + PathSeparator + node.Name
	mc.SaveConnectivityNode(node.ID, pathName, node.Name)
	return scl.ConnectivityNode{Name: node.Name, PathName: pathName}, true
}

func (m *Mapper) mapSwitch(ctx context.Context, mc *Context, sw cgmes.Switch) (scl.ConductingEquipment, error) {
	tEquipment := scl.ConductingEquipment{Name: sw.Name, Type: switchType(sw.Kind)}
	terminals, err := mc.TerminalsByConductingEquipment(ctx, sw.ID)
	if err != nil {
		return tEquipment, err
	}
	for _, terminal := range terminals {
		tEquipment.Terminals = append(tEquipment.Terminals, m.mapTerminal(mc, terminal))
	}
	return tEquipment, nil
}

func switchType(kind cgmes.SwitchKind) string {
	if kind.IsBreaker() {
		return scl.TypeCircuitBreaker
	}
	return scl.TypeDisconnector
}

func (m *Mapper) mapPowerTransformer(ctx context.Context, mc *Context, transformer cgmes.PowerTransformer) (scl.PowerTransformer, error) {
	tTransformer := scl.PowerTransformer{
		Name: transformer.Name,
		Desc: transformer.Description,
		Type: scl.TypePowerTransformer,
	}
	err := mc.WithScope(&tTransformer, func() error {
		ends, err := mc.TransformerEnds(ctx, transformer.ID)
		if err != nil {
			return err
		}
		for _, end := range ends {
			tWinding, err := m.mapTransformerEnd(ctx, mc, end)
			if err != nil {
				return err
			}
			tTransformer.Windings = append(tTransformer.Windings, tWinding)
		}
		return nil
	})
	return tTransformer, err
}

func (m *Mapper) mapTransformerEnd(ctx context.Context, mc *Context, end cgmes.TransformerEnd) (scl.TransformerWinding, error) {
	tWinding := scl.TransformerWinding{Name: end.UniqueName, Type: scl.TypeTransformerWinding}

	terminal, found, err := mc.TerminalByID(ctx, end.TerminalID)
	if err != nil {
		return tWinding, err
	}
	if found {
		tWinding.Terminals = append(tWinding.Terminals, m.mapTerminal(mc, terminal))
	}

	tapChanger, found, err := mc.TapChanger(ctx, end.ID)
	if err != nil {
		return tWinding, err
	}
	if found {
		tWinding.TapChanger = &scl.TapChanger{Name: tapChanger.Name, Type: scl.TypeLoadTapChanger}
	}
	return tWinding, nil
}

// mapTerminal points the terminal at its connectivity node and repeats the
// substation, voltage level and bay the node was defined in.
func (m *Mapper) mapTerminal(mc *Context, terminal cgmes.Terminal) scl.Terminal {
	tTerminal := scl.Terminal{Name: terminal.Name}
	pathName, ok := mc.ConnectivityNodePathName(terminal.ConnectivityNodeID)
	if !ok {
		m.logger.Printf("mapper: terminal %s: connectivity node %s not defined in scope %q", terminal.ID, terminal.ConnectivityNodeID, mc.PathName())
		return tTerminal
	}
	tTerminal.ConnectivityNode = pathName
	tTerminal.CNodeName, _ = mc.ConnectivityNodeName(terminal.ConnectivityNodeID)

	containers, _ := mc.ConnectivityNodeContainers(terminal.ConnectivityNodeID)
	if len(containers) != 3 {
		m.logger.Printf("mapper: terminal %s: connectivity node %s defined in %d containers, want substation/voltage level/bay", terminal.ID, terminal.ConnectivityNodeID, len(containers))
		return tTerminal
	}
	tTerminal.SubstationName = containers[0]
	tTerminal.VoltageLevelName = containers[1]
	tTerminal.BayName = containers[2]
	return tTerminal
}
