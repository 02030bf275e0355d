package mqtt

import (
	"context"
	"sync"
	"time"

	"github.com/golang/glog"

	"github.com/robotalks/fpctl/pkg/events"
)

// Topic suffixes under <prefix><source>/.
const (
	EventsTopic = "events"
	StateTopic  = "state"
)

// ClearStateTimeout bounds clearing the retained state on stop.
const ClearStateTimeout = time.Second

// Publisher publishes session events of one source. Every event goes
// to <source>/events; state events are also retained on <source>/state
// so late subscribers see where the session is.
type Publisher struct {
	Queue  *Queue
	Source string

	stateLock sync.Mutex
	state     []byte
}

var _ events.Reporter = (*Publisher)(nil)

// NewPublisher creates a Publisher from a broker URL.
func NewPublisher(brokerURL, source string) (*Publisher, error) {
	opts, topicPrefix, err := ClientOptionsFromURL(brokerURL)
	if err != nil {
		return nil, err
	}
	if opts.ClientID == "" {
		opts.SetClientID("fpctl:" + source)
	}
	p := &Publisher{Source: source}
	opts.SetBinaryWill(topicPrefix+p.topic(StateTopic), nil, 1, true)
	p.Queue = NewQueue(opts, topicPrefix)
	p.Queue.OnConnect = p.republishState
	return p, nil
}

func (p *Publisher) topic(suffix string) string {
	return p.Source + "/" + suffix
}

// Report implements events.Reporter. It does not wait for delivery.
func (p *Publisher) Report(ev *events.Event) error {
	if ev.Source == "" {
		ev.Source = p.Source
	}
	data, err := events.Encode(ev)
	if err != nil {
		return err
	}
	p.Queue.Pub(p.topic(EventsTopic), data)
	if ev.Kind == events.KindState {
		p.stateLock.Lock()
		p.state = data
		p.stateLock.Unlock()
		p.Queue.PubWith(p.topic(StateTopic), data, 1, true)
	}
	return nil
}

// republishState restores the retained state after a reconnect, as
// the will message cleared it when the connection was lost.
func (p *Publisher) republishState(q *Queue) {
	p.stateLock.Lock()
	data := p.state
	p.stateLock.Unlock()
	if data != nil {
		q.PubWith(p.topic(StateTopic), data, 1, true)
	}
}

// Run implements Runnable. It keeps the broker connection until ctx
// is done, then clears the retained state.
func (p *Publisher) Run(ctx context.Context) error {
	token := p.Queue.Connect()
	token.Wait()
	if err := token.Error(); err != nil {
		glog.Warningf("mqtt connect: %v, events are dropped until reconnected", err)
	}
	<-ctx.Done()
	p.clearState()
	return p.Queue.Close()
}

func (p *Publisher) clearState() {
	if !p.Queue.Client.IsConnectionOpen() {
		glog.V(2).Info("mqtt not connected, retained state left to the will")
		return
	}
	token := p.Queue.PubWith(p.topic(StateTopic), nil, 1, true)
	if !token.WaitTimeout(ClearStateTimeout) {
		glog.Warningf("clear retained state: no ack in %v", ClearStateTimeout)
	}
}
