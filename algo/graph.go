package algo

import (
	"context"
	"sort"

	"sea-routing/model"
	"sea-routing/utils"
)

// Graph 航线图结构, 构建后只读, 可被多个请求并发读取
type Graph struct {
	Turns   []*model.Turn           // 按 ID 排序的全部边
	AdjList map[int64][]*model.Turn // 邻接表 (fromnode -> 出边, 按 ID 排序)
	Nodes   map[int64]struct{}      // 由边端点推出的节点集合
}

// NewGraph 由边列表构建图
// 边按 ID 排序, 保证遍历顺序稳定, 不依赖 map 的无序迭代
func NewGraph(turns []model.Turn) *Graph {
	g := &Graph{
		Turns:   make([]*model.Turn, 0, len(turns)),
		AdjList: make(map[int64][]*model.Turn),
		Nodes:   make(map[int64]struct{}),
	}

	for i := range turns {
		g.Turns = append(g.Turns, &turns[i])
	}
	sort.SliceStable(g.Turns, func(i, j int) bool { return g.Turns[i].ID < g.Turns[j].ID })

	for _, t := range g.Turns {
		g.AdjList[t.FromNode] = append(g.AdjList[t.FromNode], t)
		g.Nodes[t.FromNode] = struct{}{}
		g.Nodes[t.ToNode] = struct{}{}
	}
	return g
}

// HasNode 判断节点是否存在
func (g *Graph) HasNode(id int64) bool {
	_, ok := g.Nodes[id]
	return ok
}

// GetNeighbors 获取节点的出边
func (g *Graph) GetNeighbors(nodeID int64) []*model.Turn {
	return g.AdjList[nodeID]
}

// NearestPoint 把每条边的几何拆成点, 找到离给定坐标最近的点
// 返回该点所在边的 id / fromnode / tonode 以及距离 (米); 图为空时返回 nil
func (g *Graph) NearestPoint(ctx context.Context, target model.Coordinate) (*model.NearestNode, error) {
	var best *model.NearestNode

	for i, t := range g.Turns {
		if i%1024 == 0 {
			if err := ctx.Err(); err != nil {
				return nil, err
			}
		}
		for _, p := range t.Path {
			meters := utils.GreatCircleDistance(target, p, utils.Kilometers) * 1000
			if best == nil || meters < best.DistanceMeters {
				best = &model.NearestNode{
					DistanceMeters: meters,
					EdgeID:         t.ID,
					FromNode:       t.FromNode,
					ToNode:         t.ToNode,
					Matched:        p,
				}
			}
		}
	}

	if best != nil {
		best.Point = utils.FormatPoint(best.Matched)
	}
	return best, nil
}
