package server

import (
	"fmt"
	"sync"
)

// CallbackResult reports the first redirect the provider delivered.
type CallbackResult struct {
	Outcome Outcome
	err     error
}

func (c *CallbackResult) Error() error {
	return c.err
}

// resultNotifier delivers exactly one [CallbackResult] and then closes its channel.
type resultNotifier struct {
	ch   chan CallbackResult
	once sync.Once
}

func newResultNotifier() *resultNotifier {
	return &resultNotifier{ch: make(chan CallbackResult, 1)}
}

// observe records o when it came from the provider; other outcomes are ignored.
func (n *resultNotifier) observe(o Outcome, req CallbackRequest) {
	switch o {
	case CodeReceived:
		n.send(CallbackResult{Outcome: o})
	case UpstreamError:
		n.send(CallbackResult{Outcome: o, err: fmt.Errorf("authorization failed: %s", req.Error)})
	}
}

func (n *resultNotifier) send(result CallbackResult) {
	n.once.Do(func() {
		n.ch <- result
		close(n.ch)
	})
}
