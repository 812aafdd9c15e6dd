package drawer

import (
	"fmt"
	"html"
	"io"
	"os"
	"sort"
	"strconv"
	"strings"
	"text/template"
	"time"

	"github.com/dominikbraun/graph"
	"github.com/pkg/errors"
	"gopkg.in/go-playground/colors.v1" //nolint

	"github.com/askiada/go-linepipe/internal/store"
	"github.com/askiada/go-linepipe/pkg/pipeline/measure"
)

// DOTDrawer is a drawer that writes the pipeline graph in the DOT language.
type DOTDrawer struct {
	graph    graph.Graph[string, string]
	store    *store.OrderedStore[string, string]
	fileName string
	writer   io.Writer
}

func newDOTDrawer() *DOTDrawer {
	st := store.NewOrderedStore[string, string]()

	return &DOTDrawer{
		store: st,
		graph: graph.NewWithStore(graph.StringHash, graph.Store[string, string](st), graph.Directed()),
	}
}

// NewDOTDrawer creates a drawer writing to the file fileName.
func NewDOTDrawer(fileName string) *DOTDrawer {
	d := newDOTDrawer()
	d.fileName = fileName

	return d
}

// NewDOTWriterDrawer creates a drawer writing to w.
func NewDOTWriterDrawer(w io.Writer) *DOTDrawer {
	d := newDOTDrawer()
	d.writer = w

	return d
}

// AddStage adds a stage to the pipeline graph.
func (d *DOTDrawer) AddStage(name string) error {
	err := d.graph.AddVertex(name)
	if err != nil {
		return errors.Wrapf(err, "unable to add vertex %s", name)
	}

	return nil
}

// AddLink adds a link between parent and children stages.
func (d *DOTDrawer) AddLink(parentName, childrenName string) error {
	err := d.graph.AddEdge(parentName, childrenName)
	if err != nil {
		return errors.Wrapf(err, "unable to add edge from %s to %s", parentName, childrenName)
	}

	return nil
}

// Draw writes the graph to the file or writer of the drawer.
func (d *DOTDrawer) Draw() error {
	if d.writer != nil {
		return dot(d.graph, d.store, d.writer)
	}

	file, err := os.Create(d.fileName)
	if err != nil {
		return errors.Wrapf(err, "unable to create file %s", d.fileName)
	}
	defer file.Close()

	err = dot(d.graph, d.store, file)
	if err != nil {
		return errors.Wrapf(err, "unable to write dot file %s", d.fileName)
	}

	return errors.Wrapf(file.Close(), "unable to close dot file %s", d.fileName)
}

// SetTotalTime sets the total time for the stage.
func (d *DOTDrawer) SetTotalTime(stageName string, startTime time.Time) error {
	elapsed := time.Since(startTime).String()

	err := d.store.UpdateVertexProperties(stageName, func(p *graph.VertexProperties) {
		setXLabel(p, "total: "+elapsed)
	})
	if err != nil {
		return errors.Wrap(err, "unable to set total time")
	}

	return nil
}

const maxRGB = 240

// AddMeasure labels stages with their average duration and colours the incoming edges
// from blue, the fastest stage, to red, the slowest.
func (d *DOTDrawer) AddMeasure(msr measure.Measure) error {
	durationColors := make(map[time.Duration]string)
	sortedDurations := []time.Duration{}

	for _, metric := range msr.AllMetrics() {
		avg := metric.AVGDuration()
		if metric.Runs() == 0 {
			continue
		}

		if _, ok := durationColors[avg]; ok {
			continue
		}

		durationColors[avg] = ""
		sortedDurations = append(sortedDurations, avg)
	}

	if len(sortedDurations) == 0 {
		return nil
	}

	sort.Slice(sortedDurations, func(i, j int) bool {
		return sortedDurations[i] > sortedDurations[j]
	})

	maxValue := sortedDurations[0]
	minValue := sortedDurations[len(sortedDurations)-1]

	for curr := range durationColors {
		fraction := 1.0
		if maxValue > minValue {
			fraction = float64(curr-minValue) / float64(maxValue-minValue)
		}

		red := maxRGB * fraction
		blue := maxRGB - red

		color, err := colors.RGB(uint8(red), 0, uint8(blue)) //nolint
		if err != nil {
			return errors.Wrap(err, "unable to get colour")
		}

		durationColors[curr] = color.ToHEX().String()
	}

	err := d.updateMetrics(msr, durationColors)
	if err != nil {
		return errors.Wrap(err, "unable to update metrics")
	}

	return nil
}

func (d *DOTDrawer) updateMetrics(msr measure.Measure, durationColors map[time.Duration]string) error {
	for name, metric := range msr.AllMetrics() {
		if _, err := d.graph.Vertex(name); errors.Is(err, graph.ErrVertexNotFound) {
			continue
		}

		if metric.Runs() > 0 {
			label := fmt.Sprintf("%s, %d lines", metric.AVGDuration(), metric.LinesOut()/metric.Runs())

			err := d.store.UpdateVertexProperties(name, func(p *graph.VertexProperties) {
				setXLabel(p, label)
			})
			if err != nil {
				return errors.Wrap(err, "unable to update vertex properties")
			}
		}

		for inputStage, info := range metric.AllTransports() {
			err := d.graph.UpdateEdge(inputStage, name,
				graph.EdgeAttribute("label", strconv.FormatInt(info.AVGLines(), 10)+" lines"),
				graph.EdgeAttribute("fontcolor", "blue"),
				graph.EdgeAttribute("color", durationColors[metric.AVGDuration()]), //nolint
			)
			if err != nil {
				return errors.Wrapf(err, "unable to update edge from %s to %s", inputStage, name)
			}
		}
	}

	return nil
}

func setXLabel(p *graph.VertexProperties, label string) {
	if p.Attributes == nil {
		p.Attributes = make(map[string]string)
	}

	if prev, ok := p.Attributes["xlabel"]; ok && prev != "" {
		label = prev + ", " + label
	}

	p.Attributes["xlabel"] = label
}

//nolint:lll //this is a template
const dotTemplate = `strict {{.GraphType}} {
	{{range $k, $v := .Attributes}}
		{{$k}}="{{$v}}";
	{{end}}
	{{range $s := .Statements}}
		"{{.Source}}" {{if .Target}}{{$.EdgeOperator}} "{{.Target}}" [ {{range $k, $v := .EdgeAttributes}}{{$k}}="{{$v}}", {{end}} weight={{.EdgeWeight}} ]{{else}}[ {{range $k, $v := .HTMLAttributes}}{{$k}}={{$v}}, {{end}} {{range $k, $v := .SourceAttributes}}{{$k}}="{{$v}}", {{end}} weight={{.SourceWeight}} ]{{end}};
	{{end}}
	}
	`

type description struct {
	GraphType    string
	Attributes   map[string]string
	EdgeOperator string
	Statements   []statement
}

type statement struct {
	Source           string
	Target           string
	SourceAttributes map[string]string
	HTMLAttributes   map[string]string
	EdgeAttributes   map[string]string
	SourceWeight     int
	EdgeWeight       int
}

func dot(gra graph.Graph[string, string], st *store.OrderedStore[string, string], wrt io.Writer, options ...func(*description)) error {
	desc, err := generateDOT(gra, st, options...)
	if err != nil {
		return errors.Wrap(err, "failed to generate DOT description")
	}

	return renderDOT(wrt, desc)
}

// GraphAttribute is a functional option for the DOT description.
func GraphAttribute(key, value string) func(*description) {
	return func(d *description) {
		d.Attributes[key] = value
	}
}

var dotEscaper = strings.NewReplacer(`\`, `\\`, `"`, `\"`)

// generateDOT lists vertices, each followed by its outgoing edges, in insertion order.
func generateDOT(gra graph.Graph[string, string], st *store.OrderedStore[string, string], options ...func(*description)) (description, error) {
	desc := description{
		GraphType:    "graph",
		Attributes:   make(map[string]string),
		EdgeOperator: "--",
		Statements:   make([]statement, 0),
	}

	for _, option := range options {
		option(&desc)
	}

	if gra.Traits().IsDirected {
		desc.GraphType = "digraph"
		desc.EdgeOperator = "->"
	}

	vertices, err := st.ListVertices()
	if err != nil {
		return desc, errors.Wrap(err, "unable to list vertices")
	}

	edges, err := st.ListEdges()
	if err != nil {
		return desc, errors.Wrap(err, "unable to list edges")
	}

	for _, vertex := range vertices {
		_, sourceProperties, err := gra.VertexWithProperties(vertex)
		if err != nil {
			return desc, errors.Wrap(err, "unable to get vertex properties")
		}

		htmlAttributes := make(map[string]string)
		sourceAttributes := make(map[string]string)

		for k, v := range sourceProperties.Attributes {
			if k == "xlabel" {
				htmlAttributes["label"] = fmt.Sprintf(`<%s <BR /> <FONT POINT-SIZE="12">%s</FONT>>`,
					html.EscapeString(vertex), html.EscapeString(v))

				continue
			}

			sourceAttributes[k] = dotEscaper.Replace(v)
		}

		desc.Statements = append(desc.Statements, statement{
			Source:           dotEscaper.Replace(vertex),
			SourceWeight:     sourceProperties.Weight,
			SourceAttributes: sourceAttributes,
			HTMLAttributes:   htmlAttributes,
		})

		for _, edge := range edges {
			if edge.Source != vertex {
				continue
			}

			desc.Statements = append(desc.Statements, statement{
				Source:         dotEscaper.Replace(vertex),
				Target:         dotEscaper.Replace(edge.Target),
				EdgeWeight:     edge.Properties.Weight,
				EdgeAttributes: edge.Properties.Attributes,
			})
		}
	}

	return desc, nil
}

func renderDOT(wrt io.Writer, desc description) error {
	tpl, err := template.New("dotTemplate").Parse(dotTemplate)
	if err != nil {
		return errors.Wrap(err, "failed to parse template")
	}

	err = tpl.Execute(wrt, desc)
	if err != nil {
		return errors.Wrap(err, "unable to execute template")
	}

	return nil
}

var _ Drawer = (*DOTDrawer)(nil)
