// Package graphs defines the structured description the vision model returns
// for each NMR graph, and the per-page result record the pipeline persists.
package graphs

// Axis describes one axis of a graph as read off the image. Numeric fields
// are pointers because the model returns null when a scale is unreadable.
type Axis struct {
	Label        string   `json:"label"`
	VisibleMin   *float64 `json:"visible_min"`
	VisibleMax   *float64 `json:"visible_max"`
	StepInterval *float64 `json:"step_interval"`
}

// Axes holds both graph axes.
type Axes struct {
	XAxis Axis `json:"x_axis"`
	YAxis Axis `json:"y_axis"`
}

// YMetricsMax records the maximum Y value of each colored curve.
type YMetricsMax struct {
	Red   *float64 `json:"red"`
	Blue  *float64 `json:"blue"`
	Green *float64 `json:"green"`
}

// StructuredMetrics are the numeric fields extracted from the graph header.
type StructuredMetrics struct {
	SampleReference    string   `json:"sample_reference"`
	CrystallinityIndex *float64 `json:"crystallinity_index"`
	ProtonDensity      *float64 `json:"proton_density"`
}

// HeaderData is the header block above a graph.
type HeaderData struct {
	FullText          string            `json:"full_text"`
	StructuredMetrics StructuredMetrics `json:"structured_metrics"`
}

// GraphStatistics covers axes, curve maxima and visible UI tabs.
type GraphStatistics struct {
	Axes        Axes        `json:"axes"`
	YMetricsMax YMetricsMax `json:"y_metrics_max"`
	VisibleTabs []string    `json:"visible_tabs"`
}

// StructuredDetails are the sub-fields of the illustration caption.
type StructuredDetails struct {
	ObjectType          string `json:"object_type"`
	SourceItem          string `json:"source_item"`
	InvestigationObject string `json:"investigation_object"`
	Condition           string `json:"condition"`
}

// CaptionData is the caption below the graph.
type CaptionData struct {
	IllustrationNumber string            `json:"illustration_number"`
	FullText           string            `json:"full_text"`
	StructuredDetails  StructuredDetails `json:"structured_details"`
}

// GraphDescription is one element of the JSON array the model returns,
// describing one graph on the page.
type GraphDescription struct {
	GraphID         int             `json:"graph_id"`
	HeaderData      HeaderData      `json:"header_data"`
	GraphStatistics GraphStatistics `json:"graph_statistics"`
	CaptionData     CaptionData     `json:"caption_data"`
}

// PageResult associates a page with either a parsed sequence of graph
// descriptions or a failure marker. The raw model reply is always kept in
// Content so failed pages can be inspected by hand.
type PageResult struct {
	Page        int                `json:"page"`
	Graphs      []GraphDescription `json:"graphs,omitempty"`
	Content     string             `json:"content,omitempty"`
	ParseFailed bool               `json:"parse_failed,omitempty"`
	Error       string             `json:"error,omitempty"`
	Model       string             `json:"model,omitempty"`
}

// Failed reports whether this page carries the failure marker instead of a
// parsed sequence. Exactly one of the two holds for every recorded page.
func (r *PageResult) Failed() bool {
	return r.ParseFailed || r.Error != ""
}
