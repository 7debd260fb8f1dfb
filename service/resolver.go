package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"sea-routing/errs"
	"sea-routing/model"
)

// NodePair 起终点各自的最近节点
type NodePair struct {
	StartNode *model.NearestNode `json:"startNode"`
	EndNode   *model.NearestNode `json:"endNode"`
}

// Resolver 把命名地点绑定到航线图上最近的点
type Resolver struct {
	locations LocationStore
	graph     GraphStore
	log       zerolog.Logger
}

// NewResolver 创建最近节点解析器
func NewResolver(locations LocationStore, graph GraphStore, log zerolog.Logger) *Resolver {
	return &Resolver{locations: locations, graph: graph, log: log}
}

// Resolve 查找名称对应地点在图上的最近点
func (r *Resolver) Resolve(ctx context.Context, name string) (*model.NearestNode, error) {
	const op = "nearest.resolve"
	if strings.TrimSpace(name) == "" {
		return nil, errs.Validation(op, "location name is required")
	}

	loc, err := r.locations.FindByName(ctx, name)
	if err != nil {
		return nil, r.internal(op, err)
	}
	if loc == nil {
		return nil, errs.NotFound(op, errs.Describe(errs.ErrLocationNotFound, "Location %q not found", name))
	}

	if !loc.Coordinate().Valid() {
		return nil, r.internal(op, fmt.Errorf("location %q has invalid coordinates (%v, %v)", name, loc.Lat, loc.Lon))
	}

	node, err := r.graph.NearestPoint(ctx, loc.Coordinate())
	if err != nil {
		return nil, r.internal(op, err)
	}
	if node == nil {
		return nil, errs.NotFound(op, errs.ErrNodesNotFound)
	}

	r.log.Debug().
		Str("location", name).
		Int64("edge", node.EdgeID).
		Float64("distance_m", node.DistanceMeters).
		Msg("nearest node resolved")
	return node, nil
}

// ResolvePair 并发解析起终点, 两者都成功才返回
func (r *Resolver) ResolvePair(ctx context.Context, startName, endName string) (*NodePair, error) {
	var pair NodePair

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		n, err := r.Resolve(gctx, startName)
		pair.StartNode = n
		return err
	})
	g.Go(func() error {
		n, err := r.Resolve(gctx, endName)
		pair.EndNode = n
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return &pair, nil
}

func (r *Resolver) internal(op string, err error) error {
	if !errors.Is(err, context.Canceled) && !errors.Is(err, context.DeadlineExceeded) {
		r.log.Error().Err(err).Str("op", op).Msg("nearest node lookup failed")
	}
	return errs.Internal(op, err)
}
