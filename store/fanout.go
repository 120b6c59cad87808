package store

import (
	"context"
	"sync"
)

// fanout раздаёт снимки коллекции её подписчикам. Каждый подписчик получает
// собственную очередь и горутину-насос, поэтому медленный потребитель не
// блокирует ни писателя, ни остальных подписчиков, а порядок снимков внутри
// коллекции сохраняется.
type fanout struct {
	mu   sync.Mutex
	subs map[Collection][]*subscriber
}

type subscriber struct {
	out    chan Snapshot
	mu     sync.Mutex
	queue  []Snapshot
	wake   chan struct{}
	closed bool
}

func newFanout() *fanout {
	return &fanout{subs: make(map[Collection][]*subscriber)}
}

// add регистрирует подписчика и кладёт initial первым снимком в очередь.
// Горутина-насос живёт до отмены ctx.
func (f *fanout) add(ctx context.Context, collection Collection, initial Snapshot) <-chan Snapshot {
	sub := &subscriber{
		out:  make(chan Snapshot, 1),
		wake: make(chan struct{}, 1),
	}
	sub.push(initial)

	f.mu.Lock()
	f.subs[collection] = append(f.subs[collection], sub)
	f.mu.Unlock()

	go sub.pump(ctx, func() { f.remove(collection, sub) })
	return sub.out
}

// publish кладёт снимок в очередь каждого подписчика коллекции. Вызовы
// publish для одной коллекции должны идти в порядке коммитов.
func (f *fanout) publish(s Snapshot) {
	f.mu.Lock()
	subs := f.subs[s.Collection]
	f.mu.Unlock()
	for _, sub := range subs {
		sub.push(s)
	}
}

func (f *fanout) remove(collection Collection, target *subscriber) {
	f.mu.Lock()
	defer f.mu.Unlock()
	subs := f.subs[collection]
	for i, sub := range subs {
		if sub == target {
			f.subs[collection] = append(subs[:i], subs[i+1:]...)
			break
		}
	}
}

func (f *fanout) closeAll() {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, subs := range f.subs {
		for _, sub := range subs {
			sub.close()
		}
	}
	f.subs = make(map[Collection][]*subscriber)
}

func (s *subscriber) push(snap Snapshot) {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return
	}
	s.queue = append(s.queue, snap)
	s.mu.Unlock()
	select {
	case s.wake <- struct{}{}:
	default:
	}
}

func (s *subscriber) close() {
	s.mu.Lock()
	s.closed = true
	s.mu.Unlock()
	select {
	case s.wake <- struct{}{}:
	default:
	}
}

func (s *subscriber) pump(ctx context.Context, onExit func()) {
	defer func() {
		onExit()
		close(s.out)
	}()
	for {
		select {
		case <-ctx.Done():
			return
		case <-s.wake:
		}
		for {
			s.mu.Lock()
			if s.closed {
				s.mu.Unlock()
				return
			}
			if len(s.queue) == 0 {
				s.mu.Unlock()
				break
			}
			next := s.queue[0]
			s.queue = s.queue[1:]
			s.mu.Unlock()

			select {
			case s.out <- next:
			case <-ctx.Done():
				return
			}
		}
	}
}
