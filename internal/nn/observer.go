package nn

import "sync"

// Observer receives change notifications from a network. The notification
// carries no payload beyond "something changed"; observers re-read whatever
// network state they care about.
type Observer interface {
	NetworkChanged(net *Network)
}

// ObserverFunc adapts a plain function to the Observer interface.
type ObserverFunc func(net *Network)

func (f ObserverFunc) NetworkChanged(net *Network) {
	f(net)
}

// ObserverHandle identifies one registration for later removal.
type ObserverHandle uint64

type registeredObserver struct {
	handle   ObserverHandle
	observer Observer
}

var observerHandleSeq struct {
	mu   sync.Mutex
	next ObserverHandle
}

func nextObserverHandle() ObserverHandle {
	observerHandleSeq.mu.Lock()
	defer observerHandleSeq.mu.Unlock()
	observerHandleSeq.next++
	return observerHandleSeq.next
}

// Attach registers o and returns a handle for Detach. Observers are
// notified synchronously in registration order.
func (net *Network) Attach(o Observer) ObserverHandle {
	handle := nextObserverHandle()
	net.observers = append(net.observers, registeredObserver{handle: handle, observer: o})
	return handle
}

// Detach removes the registration for handle. Unknown handles are ignored.
func (net *Network) Detach(handle ObserverHandle) {
	for i, reg := range net.observers {
		if reg.handle == handle {
			net.observers = append(net.observers[:i], net.observers[i+1:]...)
			return
		}
	}
}

// NotifyChange broadcasts a change event to all registered observers,
// synchronously, in registration order. Learning rules and plugins call it
// to signal state transitions such as a completed epoch.
func (net *Network) NotifyChange() {
	for _, reg := range net.observers {
		reg.observer.NetworkChanged(net)
	}
}
