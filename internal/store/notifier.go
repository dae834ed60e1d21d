package store

import (
	"sync"

	"storefront/internal/domain/model"
)

// カート変更の通知。cartUpdatedイベントに相当する。
type CartEvent struct {
	SessionID string     `json:"sessionId"`
	Cart      model.Cart `json:"cart"`
}

// save/clearのたびに全購読者へ配る。購読者間の順序は保証しない。
type Notifier struct {
	mu   sync.Mutex
	subs map[int]chan CartEvent
	next int
}

func NewNotifier() *Notifier {
	return &Notifier{subs: map[int]chan CartEvent{}}
}

// 購読を開始する。戻り値の関数で解除。
func (n *Notifier) Subscribe() (<-chan CartEvent, func()) {
	n.mu.Lock()
	defer n.mu.Unlock()

	id := n.next
	n.next++

	ch := make(chan CartEvent, 16)
	n.subs[id] = ch

	cancel := func() {
		n.mu.Lock()
		defer n.mu.Unlock()
		if _, ok := n.subs[id]; ok {
			delete(n.subs, id)
			close(ch)
		}
	}
	return ch, cancel
}

// 受け取りが遅い購読者はスキップする（ポーリング不要にするための通知であり、取りこぼしは再読込で追いつける）
func (n *Notifier) Publish(ev CartEvent) {
	n.mu.Lock()
	defer n.mu.Unlock()

	for _, ch := range n.subs {
		select {
		case ch <- ev:
		default:
		}
	}
}
