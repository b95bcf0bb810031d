package application

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"time"

	cgmes "cim-mapping/internal/cgmes/domain"
	"cim-mapping/internal/observability/metrics"
	scl "cim-mapping/internal/scl/domain"
)

// Context is the state of one mapping run: it queries the source model,
// converts the results into entities, tracks the output tree scope and
// caches connectivity node identities. It is not safe for concurrent use;
// parallel runs need one Context each.
type Context struct {
	executor cgmes.QueryExecutor
	catalog  cgmes.QueryCatalog
	logger   *log.Logger

	scope []scl.Named
	nodes map[string]connectivityNodeRef
}

type connectivityNodeRef struct {
	pathName   string
	name       string
	containers []string
}

// ContextOption configures a Context.
type ContextOption func(*Context)

// WithContextLogger sets the logger used for query tracing.
func WithContextLogger(logger *log.Logger) ContextOption {
	return func(c *Context) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// NewContext constructs a mapping context for one run.
func NewContext(executor cgmes.QueryExecutor, catalog cgmes.QueryCatalog, opts ...ContextOption) (*Context, error) {
	if executor == nil {
		return nil, errors.New("mapping context: nil executor")
	}
	if catalog == nil {
		return nil, errors.New("mapping context: nil catalog")
	}
	c := &Context{
		executor: executor,
		catalog:  catalog,
		logger:   log.New(io.Discard, "", 0),
		nodes:    make(map[string]connectivityNodeRef),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// Substations lists every substation of the model.
func (c *Context) Substations(ctx context.Context) ([]cgmes.Substation, error) {
	return list(ctx, c, cgmes.KindSubstation, "", cgmes.SubstationFromRecord)
}

// VoltageLevelsBySubstation lists voltage levels, restricted to the
// substation when substationID is set.
func (c *Context) VoltageLevelsBySubstation(ctx context.Context, substationID string) ([]cgmes.VoltageLevel, error) {
	return list(ctx, c, cgmes.KindVoltageLevel, substationID, cgmes.VoltageLevelFromRecord)
}

// BaysByVoltageLevel lists bays of a voltage level.
func (c *Context) BaysByVoltageLevel(ctx context.Context, voltageLevelID string) ([]cgmes.Bay, error) {
	return list(ctx, c, cgmes.KindBay, voltageLevelID, cgmes.BayFromRecord)
}

// BusbarSectionsByEquipmentContainer lists busbar sections of a container.
func (c *Context) BusbarSectionsByEquipmentContainer(ctx context.Context, containerID string) ([]cgmes.BusbarSection, error) {
	return list(ctx, c, cgmes.KindBusbarSection, containerID, cgmes.BusbarSectionFromRecord)
}

// PowerTransformers lists power transformers of a container.
func (c *Context) PowerTransformers(ctx context.Context, containerID string) ([]cgmes.PowerTransformer, error) {
	return list(ctx, c, cgmes.KindPowerTransformer, containerID, cgmes.PowerTransformerFromRecord)
}

// TransformerEnds lists the ends of a power transformer.
func (c *Context) TransformerEnds(ctx context.Context, transformerID string) ([]cgmes.TransformerEnd, error) {
	return list(ctx, c, cgmes.KindTransformerEnd, transformerID, cgmes.TransformerEndFromRecord)
}

// Switches lists switches of a container.
func (c *Context) Switches(ctx context.Context, containerID string) ([]cgmes.Switch, error) {
	return list(ctx, c, cgmes.KindSwitch, containerID, cgmes.SwitchFromRecord)
}

// ConnectivityNodesByBusbarSection lists the nodes a busbar section's
// terminals connect to.
func (c *Context) ConnectivityNodesByBusbarSection(ctx context.Context, busbarSectionID string) ([]cgmes.ConnectivityNode, error) {
	return list(ctx, c, cgmes.KindConnectivityNodeByBusbar, busbarSectionID, func(r cgmes.Record) (cgmes.ConnectivityNode, error) {
		return cgmes.ConnectivityNodeFromRecord(r, cgmes.PropConductingEquipment)
	})
}

// ConnectivityNodesByBay lists the nodes contained in a bay.
func (c *Context) ConnectivityNodesByBay(ctx context.Context, bayID string) ([]cgmes.ConnectivityNode, error) {
	return list(ctx, c, cgmes.KindConnectivityNodeByBay, bayID, func(r cgmes.Record) (cgmes.ConnectivityNode, error) {
		return cgmes.ConnectivityNodeFromRecord(r, cgmes.PropEquipmentContainer)
	})
}

// TerminalsByConductingEquipment lists the terminals owned by equipmentID.
// Rows naming a different owner, or none, are dropped.
func (c *Context) TerminalsByConductingEquipment(ctx context.Context, equipmentID string) ([]cgmes.Terminal, error) {
	terminals, err := list(ctx, c, cgmes.KindTerminalByConductingEquipment, equipmentID, cgmes.TerminalFromRecord)
	if err != nil {
		return nil, err
	}
	if equipmentID == "" {
		return terminals, nil
	}
	owned := terminals[:0]
	for _, terminal := range terminals {
		if terminal.ConductingEquipmentID != equipmentID {
			continue
		}
		owned = append(owned, terminal)
	}
	return owned, nil
}

// TerminalByID looks up a single terminal. The bool is false when the
// model has no such terminal.
func (c *Context) TerminalByID(ctx context.Context, terminalID string) (cgmes.Terminal, bool, error) {
	if terminalID == "" {
		return cgmes.Terminal{}, false, nil
	}
	records, err := c.query(ctx, cgmes.KindTerminalByID, terminalID)
	if err != nil || len(records) == 0 {
		return cgmes.Terminal{}, false, err
	}
	terminal, err := cgmes.TerminalFromRecord(records[0])
	if err != nil {
		return cgmes.Terminal{}, false, err
	}
	return terminal, true, nil
}

// TapChanger resolves the tap changer of a transformer end. Ratio tap
// changers win; phase tap changers are only queried when no ratio tap
// changer exists. Only the first row of a result is used.
func (c *Context) TapChanger(ctx context.Context, transformerEndID string) (cgmes.TapChanger, bool, error) {
	records, err := c.query(ctx, cgmes.KindRatioTapChanger, transformerEndID)
	if err != nil {
		return cgmes.TapChanger{}, false, err
	}
	if len(records) > 0 {
		tc, err := cgmes.RatioTapChangerFromRecord(records[0])
		if err != nil {
			return cgmes.TapChanger{}, false, err
		}
		return tc, true, nil
	}

	records, err = c.query(ctx, cgmes.KindPhaseTapChanger, transformerEndID)
	if err != nil || len(records) == 0 {
		return cgmes.TapChanger{}, false, err
	}
	tc, err := cgmes.PhaseTapChangerFromRecord(records[0])
	if err != nil {
		return cgmes.TapChanger{}, false, err
	}
	return tc, true, nil
}

func (c *Context) query(ctx context.Context, kind cgmes.Kind, filter string) ([]cgmes.Record, error) {
	text, err := c.catalog.Query(kind, filter)
	if err != nil {
		return nil, err
	}

	start := time.Now()
	records, err := c.executor.Query(ctx, text)
	elapsed := time.Since(start)
	if err != nil {
		metrics.ObserveQuery(string(kind), metrics.ResultError, 0, elapsed)
		return nil, fmt.Errorf("mapping context: query %s: %w", kind, err)
	}
	metrics.ObserveQuery(string(kind), metrics.ResultSuccess, len(records), elapsed)
	c.logger.Printf("query kind=%s filter=%q records=%d took=%s", kind, filter, len(records), elapsed)
	return records, nil
}

func list[T any](ctx context.Context, c *Context, kind cgmes.Kind, filter string, convert func(cgmes.Record) (T, error)) ([]T, error) {
	records, err := c.query(ctx, kind, filter)
	if err != nil {
		return nil, err
	}
	result := make([]T, 0, len(records))
	for _, record := range records {
		entity, err := convert(record)
		if err != nil {
			return nil, err
		}
		result = append(result, entity)
	}
	return result, nil
}
