package driver

// Stage identifies where a file is in the pipeline.
type Stage uint8

const (
	StageStart Stage = iota
	StageDone
	StageFailed
)

// Event reports per-file progress during a multi-file run.
type Event struct {
	Path  string
	Index int
	Total int
	Stage Stage
	Err   error
}

// Sink receives progress events. Implementations must be safe for
// concurrent use; the driver emits from multiple goroutines.
type Sink interface {
	Emit(Event)
}

// ChannelSink forwards events to a channel, dropping them when the
// receiver lags.
type ChannelSink chan Event

func (sink ChannelSink) Emit(event Event) {
	select {
	case sink <- event:
	default:
	}
}

type nopSink struct{}

func (nopSink) Emit(Event) {}

// NopSink discards all events.
var NopSink Sink = nopSink{}

func emit(sink Sink, event Event) {
	if sink == nil {
		return
	}
	sink.Emit(event)
}
