package systems

import (
	"arena-server/internal/domain"
	"container/heap"
)

// pathItem обертка для клетки в открытом списке A*
type pathItem struct {
	Pos      domain.MapPosition
	Priority uint32 // f = g + h. Чем меньше, тем раньше раскрываем.
	Seq      uint64 // Порядок вставки. При равном f раньше тот, кто добавлен раньше.
	Index    int    // Индекс в куче (нужен для update)
}

// pathQueue реализует heap.Interface и хранит pathItems
type pathQueue []*pathItem

func (pq pathQueue) Len() int { return len(pq) }

func (pq pathQueue) Less(i, j int) bool {
	// MinHeap по f, затем FIFO. Без второго ключа путь зависел бы от устройства кучи.
	if pq[i].Priority != pq[j].Priority {
		return pq[i].Priority < pq[j].Priority
	}
	return pq[i].Seq < pq[j].Seq
}

func (pq pathQueue) Swap(i, j int) {
	pq[i], pq[j] = pq[j], pq[i]
	pq[i].Index = i
	pq[j].Index = j
}

func (pq *pathQueue) Push(x interface{}) {
	n := len(*pq)
	item := x.(*pathItem)
	item.Index = n
	*pq = append(*pq, item)
}

func (pq *pathQueue) Pop() interface{} {
	old := *pq
	n := len(old)
	item := old[n-1]
	old[n-1] = nil  // избегаем утечки памяти
	item.Index = -1 // для безопасности
	*pq = old[0 : n-1]
	return item
}

// Update изменяет приоритет элемента в очереди
func (pq *pathQueue) Update(item *pathItem, priority uint32) {
	item.Priority = priority
	heap.Fix(pq, item.Index)
}
