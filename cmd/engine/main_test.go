package main

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"golang.org/x/exp/rand"

	"github.com/lintang-b-s/navigatorx-ch/pkg/contractor"
	da "github.com/lintang-b-s/navigatorx-ch/pkg/datastructure"
	"github.com/lintang-b-s/navigatorx-ch/pkg/engine/routingalgorithm"
	"github.com/lintang-b-s/navigatorx-ch/pkg/engine/search"
	"github.com/lintang-b-s/navigatorx-ch/pkg/kv"
	"github.com/lintang-b-s/navigatorx-ch/pkg/util"
)

const testGraph = `c 0 -> 1 -> 2, 3 isolated
p sp 4 3
a 1 2 7
a 2 3 5
a 1 3 20
`

func newRouteAlgorithm(t *testing.T) *routingalgorithm.RouteAlgorithm {
	g, err := da.ReadDimacs(strings.NewReader(testGraph))
	require.NoError(t, err)
	h, err := contractor.Build(g)
	require.NoError(t, err)
	return routingalgorithm.NewRouteAlgorithm(h, nil)
}

func TestAnswerQueries(t *testing.T) {
	rt := newRouteAlgorithm(t)
	var out bytes.Buffer
	err := answerQueries(rt, strings.NewReader("0 2\n\n# comment\n2 0\n1 1\n0 3\n"), &out)
	require.NoError(t, err)
	assert.Equal(t, "12 2\n-1 -1\n0 0\n-1 -1\n", out.String())
}

func TestAnswerQueriesBadInput(t *testing.T) {
	rt := newRouteAlgorithm(t)
	for _, in := range []string{"0\n", "0 x\n", "0 9\n"} {
		err := answerQueries(rt, strings.NewReader(in), &bytes.Buffer{})
		require.Error(t, err, in)
		assert.Equal(t, util.ErrBadInput, util.CodeOf(err), in)
	}
}

func TestReplayStoredUsesStoredHopLimit(t *testing.T) {
	ctx := context.Background()
	rnd := rand.New(rand.NewSource(9))
	g := da.NewGraph(60)
	for i := 0; i < 240; i++ {
		g.AddArc(da.Index(rnd.Intn(60)), da.Index(rnd.Intn(60)), da.Weight(rnd.Intn(40)))
	}
	replayGraph := g.Clone()

	built, err := contractor.Build(g, contractor.WithHopLimit(2))
	require.NoError(t, err)

	store, err := kv.OpenBadger("", zap.NewNop())
	require.NoError(t, err)
	defer store.Close()
	err = store.SaveOrders(ctx, []kv.OrderEntry{{
		Name:     "random",
		NumNodes: replayGraph.NumNodes(),
		NumArcs:  replayGraph.NumArcs(),
		HopLimit: 2,
		Order:    built.Order(),
	}})
	require.NoError(t, err)

	// the engine's own config asks for the default hop limit
	served, err := replayStored(ctx, store, replayGraph, "random", search.DefaultHopLimit, zap.NewNop(), nil)
	require.NoError(t, err)
	assert.Equal(t, built.Order(), served.Order())
	assert.True(t, contractor.Equivalent(built, served))

	_, err = replayStored(ctx, store, da.NewGraph(3), "random", search.DefaultHopLimit, zap.NewNop(), nil)
	assert.True(t, errors.Is(err, util.ErrInvalidOrder))
}
