package routingalgorithm

import (
	"time"

	da "github.com/lintang-b-s/navigatorx-ch/pkg/datastructure"
	"github.com/lintang-b-s/navigatorx-ch/pkg/engine/search"
	"github.com/lintang-b-s/navigatorx-ch/pkg/metrics"
	"github.com/lintang-b-s/navigatorx-ch/pkg/util"
)

type chSearch = search.Dijkstra[*da.StaticGraph, *search.PredecessorPolicy]

/*
QueryEngine answers point to point queries with a bidirectional Dijkstra on the upward forward
graph and the reversed downward backward graph of a hierarchy.
a QueryEngine owns its scratch state and must not be shared between goroutines; create one per
goroutine, they can all read the same hierarchy.
*/
type QueryEngine struct {
	ch       ContractedGraph
	forward  *chSearch
	backward *chSearch

	distS   da.Weight
	distT   da.Weight
	dmin    da.Weight
	meeting da.Index

	hasSource bool
	hasTarget bool

	metrics *metrics.Metrics
}

type QueryOption func(*QueryEngine)

func WithQueryMetrics(m *metrics.Metrics) QueryOption {
	return func(q *QueryEngine) {
		q.metrics = m
	}
}

func NewQueryEngine(ch ContractedGraph, opts ...QueryOption) *QueryEngine {
	q := &QueryEngine{
		ch:       ch,
		forward:  search.NewDijkstra(ch.Forward(), search.NewPredecessorPolicy()),
		backward: search.NewDijkstra(ch.Backward(), search.NewPredecessorPolicy()),
		dmin:     da.Unreachable,
		meeting:  da.INVALID_INDEX,
	}
	for _, opt := range opts {
		opt(q)
	}
	return q
}

func (q *QueryEngine) validNode(v da.Index) error {
	if v < 0 || int(v) >= q.ch.NumNodes() {
		return util.WrapErrorf(util.ErrNodeOutOfRange, util.ErrBadInput, "node %d, graph has %d nodes", v, q.ch.NumNodes())
	}
	return nil
}

func (q *QueryEngine) init() {
	q.dmin = da.Unreachable
	q.meeting = da.INVALID_INDEX
}

func (q *QueryEngine) addSource(s da.Index) {
	q.forward.Clear()
	q.forward.AddSource(q.ch.Forward().NodeRef(s), 0)
	q.distS = 0
	q.hasSource = true
}

func (q *QueryEngine) addTarget(t da.Index) {
	q.backward.Clear()
	q.backward.AddSource(q.ch.Backward().NodeRef(t), 0)
	q.distT = 0
	q.hasTarget = true
}

// Run computes the distance from s to t, Unreachable if there is no path.
func (q *QueryEngine) Run(s, t da.Index) (da.Weight, error) {
	if err := q.validNode(s); err != nil {
		return da.Unreachable, err
	}
	if err := q.validNode(t); err != nil {
		return da.Unreachable, err
	}
	q.addSource(s)
	q.addTarget(t)
	q.init()
	q.runMeasured()
	return q.dmin, nil
}

// RunNewSource keeps the backward search of the previous query and searches from a new source.
func (q *QueryEngine) RunNewSource(s da.Index) (da.Weight, error) {
	if err := q.validNode(s); err != nil {
		return da.Unreachable, err
	}
	q.addSource(s)
	q.init()
	if q.hasSource && q.hasTarget {
		q.runMeasured()
	}
	return q.dmin, nil
}

// RunNewTarget keeps the forward search of the previous query and searches towards a new target.
func (q *QueryEngine) RunNewTarget(t da.Index) (da.Weight, error) {
	if err := q.validNode(t); err != nil {
		return da.Unreachable, err
	}
	q.addTarget(t)
	q.init()
	if q.hasSource && q.hasTarget {
		q.runMeasured()
	}
	return q.dmin, nil
}

// Dist is the distance found by the last query, Unreachable if none.
func (q *QueryEngine) Dist() da.Weight {
	return q.dmin
}

func (q *QueryEngine) MeetingNode() da.Index {
	return q.meeting
}

// Reset drops both searches. the next query has to be a Run.
func (q *QueryEngine) Reset() {
	q.forward.Clear()
	q.backward.Clear()
	q.hasSource = false
	q.hasTarget = false
	q.init()
}

// SettledCount is the number of nodes settled by both directions since they were last seeded.
func (q *QueryEngine) SettledCount() int {
	return q.forward.SettledCount() + q.backward.SettledCount()
}

func (q *QueryEngine) runMeasured() {
	st := time.Now()
	q.runSearch()
	if q.metrics == nil {
		return
	}
	q.metrics.QueryDuration.Observe(time.Since(st).Seconds())
	q.metrics.QuerySettled.Observe(float64(q.SettledCount()))
	if q.dmin == da.Unreachable {
		q.metrics.Queries.WithLabelValues(metrics.ResultUnreachable).Inc()
	} else {
		q.metrics.Queries.WithLabelValues(metrics.ResultFound).Inc()
	}
}

// check records v as meeting node if it is settled in both directions and improves dmin.
func (q *QueryEngine) check(v da.Index) {
	if !q.forward.Processed(v) || !q.backward.Processed(v) {
		return
	}
	d := q.forward.CurrentDist(v) + q.backward.CurrentDist(v)
	if q.dmin == da.Unreachable || d < q.dmin {
		q.dmin = d
		q.meeting = v
	}
}

func (q *QueryEngine) stepForward() {
	v, _ := q.forward.ProcessNextNode()
	q.distS = q.forward.CurrentDist(v)
	q.check(v)
}

func (q *QueryEngine) stepBackward() {
	v, _ := q.backward.ProcessNextNode()
	q.distT = q.backward.CurrentDist(v)
	q.check(v)
}

/*
runSearch alternates both directions until some node is settled by both of them.
afterwards a direction keeps going while its last settled distance is below dmin. once one
direction is exhausted or has reached dmin only the other one is continued, since any better
meeting node must have a smaller distance from both ends than dmin.
*/
func (q *QueryEngine) runSearch() {
	for q.dmin == da.Unreachable {
		if q.forward.Empty() {
			q.runBackward()
			return
		}
		q.stepForward()

		if q.backward.Empty() {
			q.runForward()
			return
		}
		q.stepBackward()
	}

	for min(q.distS, q.distT) < q.dmin {
		if q.distS >= q.dmin || q.forward.Empty() {
			q.runBackward()
			return
		}
		q.stepForward()

		if q.backward.Empty() || q.distT >= q.dmin {
			q.runForward()
			return
		}
		q.stepBackward()
	}
}

func (q *QueryEngine) runForward() {
	for q.dmin == da.Unreachable && !q.forward.Empty() {
		q.stepForward()
	}
	if q.dmin == da.Unreachable {
		return
	}
	for q.distS < q.dmin && !q.forward.Empty() {
		q.stepForward()
	}
}

func (q *QueryEngine) runBackward() {
	for q.dmin == da.Unreachable && !q.backward.Empty() {
		q.stepBackward()
	}
	if q.dmin == da.Unreachable {
		return
	}
	for q.distT < q.dmin && !q.backward.Empty() {
		q.stepBackward()
	}
}

// ForwardPath returns the forward graph arcs from the source to the meeting node.
func (q *QueryEngine) ForwardPath() []da.Index {
	path := make([]da.Index, 0)
	if q.meeting == da.INVALID_INDEX {
		return path
	}
	pred := q.forward.Policy()
	fg := q.ch.Forward()
	for v := q.meeting; pred.PredArc(v) != da.INVALID_INDEX; v = fg.Tail(pred.PredArc(v)) {
		path = append(path, pred.PredArc(v))
	}
	util.ReverseInPlace(path)
	return path
}

// BackwardPath returns the backward graph arcs from the meeting node to the target.
func (q *QueryEngine) BackwardPath() []da.Index {
	path := make([]da.Index, 0)
	if q.meeting == da.INVALID_INDEX {
		return path
	}
	pred := q.backward.Policy()
	bg := q.ch.Backward()
	for v := q.meeting; pred.PredArc(v) != da.INVALID_INDEX; v = bg.Tail(pred.PredArc(v)) {
		path = append(path, pred.PredArc(v))
	}
	return path
}
