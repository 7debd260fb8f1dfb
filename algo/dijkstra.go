package algo

import (
	"container/heap"
	"context"
	"math"
	"slices"

	"sea-routing/model"
)

// PriorityQueueItem 优先队列中的元素
type PriorityQueueItem struct {
	NodeID int64
	Cost   float64 // 累计长度 (公里)
	Seq    uint64  // 入队顺序, 代价相同时先入队者优先
	Index  int     // 在堆中的索引
}

// PriorityQueue 实现 heap.Interface 接口的优先队列
type PriorityQueue []*PriorityQueueItem

func (pq PriorityQueue) Len() int { return len(pq) }

func (pq PriorityQueue) Less(i, j int) bool {
	if pq[i].Cost != pq[j].Cost {
		return pq[i].Cost < pq[j].Cost
	}
	return pq[i].Seq < pq[j].Seq
}

func (pq PriorityQueue) Swap(i, j int) {
	pq[i], pq[j] = pq[j], pq[i]
	pq[i].Index = i
	pq[j].Index = j
}

func (pq *PriorityQueue) Push(x interface{}) {
	n := len(*pq)
	item := x.(*PriorityQueueItem)
	item.Index = n
	*pq = append(*pq, item)
}

func (pq *PriorityQueue) Pop() interface{} {
	old := *pq
	n := len(old)
	item := old[n-1]
	old[n-1] = nil  // 避免内存泄漏
	item.Index = -1 // 标记为已移除
	*pq = old[0 : n-1]
	return item
}

// ShortestPath 使用 Dijkstra 算法寻找 startID 到 endID 的最短路径, 边代价为 Length
//
// 只有严格更优时才更新前驱, 所以代价相同的候选边中先遍历到的会被保留.
// 找不到路径 (节点不存在、不连通、起终点相同) 时返回 nil.
func (g *Graph) ShortestPath(ctx context.Context, startID, endID int64) (*model.Path, error) {
	if !g.HasNode(startID) || !g.HasNode(endID) || startID == endID {
		return nil, nil
	}

	dist := map[int64]float64{startID: 0}
	prevEdge := make(map[int64]*model.Turn)
	visited := make(map[int64]bool)

	var seq uint64
	pq := make(PriorityQueue, 0)
	heap.Init(&pq)
	heap.Push(&pq, &PriorityQueueItem{NodeID: startID, Cost: 0, Seq: seq})

	for pq.Len() > 0 {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		current := heap.Pop(&pq).(*PriorityQueueItem)
		currentID := current.NodeID

		// 如果已访问过，跳过
		if visited[currentID] {
			continue
		}
		visited[currentID] = true

		// 如果到达终点，提前退出
		if currentID == endID {
			break
		}

		for _, edge := range g.GetNeighbors(currentID) {
			if visited[edge.ToNode] {
				continue
			}
			newCost := dist[currentID] + edge.Length
			old, seen := dist[edge.ToNode]
			if seen && newCost >= old {
				continue
			}
			dist[edge.ToNode] = newCost
			prevEdge[edge.ToNode] = edge
			seq++
			heap.Push(&pq, &PriorityQueueItem{NodeID: edge.ToNode, Cost: newCost, Seq: seq})
		}
	}

	cost, ok := dist[endID]
	if !ok || math.IsInf(cost, 1) {
		return nil, nil
	}

	// 回溯经过的边
	var turns []*model.Turn
	for at := endID; at != startID; {
		edge := prevEdge[at]
		if edge == nil {
			return nil, nil
		}
		turns = append(turns, edge)
		at = edge.FromNode
	}
	slices.Reverse(turns)

	return &model.Path{Turns: turns, Cost: cost}, nil
}
