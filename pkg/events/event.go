package events

import (
	"time"

	"github.com/golang/protobuf/proto"
)

// Event kinds.
const (
	// KindState reports a state transition; State is the new state.
	KindState = "state"
	// KindRead reports a line read from the sensor.
	KindRead = "read"
	// KindWrite reports a command written to the sensor.
	KindWrite = "write"
)

// Event is a single session event.
type Event struct {
	Kind      string `protobuf:"bytes,1,opt,name=kind,proto3" json:"kind,omitempty"`
	State     string `protobuf:"bytes,2,opt,name=state,proto3" json:"state,omitempty"`
	Line      string `protobuf:"bytes,3,opt,name=line,proto3" json:"line,omitempty"`
	Command   string `protobuf:"bytes,4,opt,name=command,proto3" json:"command,omitempty"`
	Reply     string `protobuf:"bytes,5,opt,name=reply,proto3" json:"reply,omitempty"`
	Source    string `protobuf:"bytes,6,opt,name=source,proto3" json:"source,omitempty"`
	Timestamp int64  `protobuf:"varint,7,opt,name=timestamp,proto3" json:"timestamp,omitempty"`
}

// Reset implements proto.Message.
func (m *Event) Reset() { *m = Event{} }

// String implements proto.Message.
func (m *Event) String() string { return proto.CompactTextString(m) }

// ProtoMessage implements proto.Message.
func (*Event) ProtoMessage() {}

// Time returns Timestamp as time.Time.
func (m *Event) Time() time.Time {
	return time.Unix(0, m.Timestamp)
}

// NewEvent creates an event of kind stamped with the current time.
func NewEvent(kind string) *Event {
	return &Event{Kind: kind, Timestamp: time.Now().UnixNano()}
}

// Encode encodes the event to bytes.
func Encode(ev *Event) ([]byte, error) {
	return proto.Marshal(ev)
}

// Decode decodes bytes into an Event.
func Decode(data []byte) (*Event, error) {
	var ev Event
	if err := proto.Unmarshal(data, &ev); err != nil {
		return nil, err
	}
	return &ev, nil
}

// Reporter receives session events.
type Reporter interface {
	Report(*Event) error
}

// ReporterFunc is the func form of Reporter.
type ReporterFunc func(*Event) error

// Report implements Reporter.
func (f ReporterFunc) Report(ev *Event) error {
	return f(ev)
}
