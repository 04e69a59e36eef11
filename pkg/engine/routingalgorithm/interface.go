package routingalgorithm

import da "github.com/lintang-b-s/navigatorx-ch/pkg/datastructure"

// ContractedGraph is the read only view of a built hierarchy used at query time.
type ContractedGraph interface {
	Forward() *da.StaticGraph
	Backward() *da.StaticGraph
	Graph() *da.Graph
	NumNodes() int
}
