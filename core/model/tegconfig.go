package model

// Topology of a TEG module.
type Topology string

const (
	TopologySingleStage Topology = "single_stage"
	TopologyMultiStage  Topology = "multi_stage"
	TopologyCascaded    Topology = "cascaded"
	TopologySegmented   Topology = "segmented"
)

// Wiring is the electrical connection mode of the thermoelectric pairs.
type Wiring string

const (
	WiringSeries         Wiring = "series"
	WiringParallel       Wiring = "parallel"
	WiringSeriesParallel Wiring = "series_parallel"
)

// Location is where a module is mounted on the braking system.
type Location string

const (
	LocationDisc    Location = "disc"
	LocationCaliper Location = "caliper"
	LocationPad     Location = "pad"
	LocationHub     Location = "hub"
)

// Dimensions of a module in metres.
type Dimensions struct {
	Length float64 `json:"length" yaml:"length"`
	Width  float64 `json:"width" yaml:"width"`
	Height float64 `json:"height" yaml:"height"`
}

// MaterialPair is the p-leg and n-leg material of a module.
type MaterialPair struct {
	P Material `json:"p" yaml:"p"`
	N Material `json:"n" yaml:"n"`
}

// OperatingRange is the intersection of both legs' ranges.
func (mp MaterialPair) OperatingRange() (Bound, bool) {
	return Overlap(mp.P.OperatingRange(), mp.N.OperatingRange())
}

// Leg geometry of a single thermoelectric leg.
type Leg struct {
	Length float64 `json:"length" yaml:"length"` // m
	Area   float64 `json:"area" yaml:"area"`     // m²
}

// HeatExchanger describes both faces of the module.
type HeatExchanger struct {
	Type               string  `json:"type" yaml:"type"`
	HotSideArea        float64 `json:"hot_side_area" yaml:"hot_side_area"`             // m²
	HotSideResistance  float64 `json:"hot_side_resistance" yaml:"hot_side_resistance"` // K/W
	ColdSideArea       float64 `json:"cold_side_area" yaml:"cold_side_area"`
	ColdSideResistance float64 `json:"cold_side_resistance" yaml:"cold_side_resistance"`
}

// Placement is mounting metadata.
type Placement struct {
	Location          Location `json:"location" yaml:"location"`
	Mounting          string   `json:"mounting" yaml:"mounting"`
	InterfaceMaterial string   `json:"interface_material" yaml:"interface_material"`
}

// TEGConfiguration is a TEG module design.
type TEGConfiguration struct {
	ID            string        `json:"id" yaml:"id"`
	Topology      Topology      `json:"topology" yaml:"topology"`
	Dimensions    Dimensions    `json:"dimensions" yaml:"dimensions"`
	Materials     MaterialPair  `json:"materials" yaml:"materials"`
	PairCount     int           `json:"pair_count" yaml:"pair_count"`
	Leg           Leg           `json:"leg" yaml:"leg"`
	Wiring        Wiring        `json:"wiring" yaml:"wiring"`
	HeatExchanger HeatExchanger `json:"heat_exchanger" yaml:"heat_exchanger"`
	Placement     Placement     `json:"placement" yaml:"placement"`
}

// Validate checks the configuration. Hard violations are returned as errors in
// the result, a non-overlapping material range only as a warning.
func (c TEGConfiguration) Validate() ValidationResult {
	var res ValidationResult
	if c.ID == "" {
		res.addError("id is required")
	}
	if c.Dimensions.Length <= 0 || c.Dimensions.Width <= 0 || c.Dimensions.Height <= 0 {
		res.addError("module dimensions must be positive")
	}
	if c.PairCount <= 0 {
		res.addError("pair count must be positive")
	}
	if c.Leg.Length <= 0 {
		res.addError("leg length must be positive")
	}
	if c.Leg.Area <= 0 {
		res.addError("leg cross-section area must be positive")
	}
	if c.Materials.P.Type != PType {
		res.addError("p-leg material " + c.Materials.P.Name + " is not p-type")
	}
	if c.Materials.N.Type != NType {
		res.addError("n-leg material " + c.Materials.N.Name + " is not n-type")
	}
	hx := c.HeatExchanger
	if hx.HotSideArea <= 0 || hx.ColdSideArea <= 0 {
		res.addError("heat exchanger areas must be positive")
	}
	if hx.HotSideResistance <= 0 || hx.ColdSideResistance <= 0 {
		res.addError("heat exchanger thermal resistances must be positive")
	}
	switch c.Wiring {
	case "", WiringSeries, WiringParallel, WiringSeriesParallel:
	default:
		res.addError("unknown wiring mode " + string(c.Wiring))
	}
	if _, ok := c.Materials.OperatingRange(); !ok {
		res.addWarning("material operating ranges do not overlap")
	}
	res.Valid = len(res.Errors) == 0
	return res
}
