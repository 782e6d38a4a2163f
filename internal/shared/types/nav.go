package types

// Snapshot is an immutable copy of the page stack at a point in time.
// Seq counts mutations since the stack was created; the initial state is 0.
// Index 0 is the root, the last element is the visible top.
type Snapshot struct {
	Seq   uint64 `json:"seq"`
	Pages []Page `json:"pages"`
}

// Top returns the visible page
func (s Snapshot) Top() Page {
	return s.Pages[len(s.Pages)-1]
}

// Len returns the stack depth
func (s Snapshot) Len() int {
	return len(s.Pages)
}

// Keys returns the derived identity keys in stack order
func (s Snapshot) Keys() []string {
	keys := make([]string, len(s.Pages))
	for i, p := range s.Pages {
		keys[i] = p.Key()
	}
	return keys
}

// View is what the registry renders for a single page. Views are plain data;
// turning them into pixels belongs to the presentation layer.
type View struct {
	Kind        Kind                   `json:"kind"`
	Key         string                 `json:"key"`
	Title       string                 `json:"title"`
	Interactive bool                   `json:"interactive"`
	Props       map[string]interface{} `json:"props,omitempty"`
}

// StackStats contains stack manager statistics
type StackStats struct {
	Depth       int    `json:"depth"`
	Top         string `json:"top"`
	Seq         uint64 `json:"seq"`
	Subscribers int    `json:"subscribers"`
}

// RendezvousStats contains rendezvous manager statistics
type RendezvousStats struct {
	Pending          bool   `json:"pending"`
	PendingKey       string `json:"pending_key,omitempty"`
	Resolved         uint64 `json:"resolved"`
	Superseded       uint64 `json:"superseded"`
	Canceled         uint64 `json:"canceled"`
	UnmatchedReturns uint64 `json:"unmatched_returns"`
}

// WSMessage is the envelope for WebSocket commands from the presentation layer
type WSMessage struct {
	Type  string `json:"type"`
	Page  *Page  `json:"page,omitempty"`
	Value *bool  `json:"value,omitempty"`
}
