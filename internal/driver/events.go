package driver

// Stage is the step a file is in.
type Stage uint8

const (
	StageQueued Stage = iota
	StageParse
	StageLint
	StageFix
	StageWrite
)

func (s Stage) String() string {
	switch s {
	case StageParse:
		return "parsing"
	case StageLint:
		return "linting"
	case StageFix:
		return "fixing"
	case StageWrite:
		return "writing"
	default:
		return "queued"
	}
}

// Status tells whether a stage started or the file finished.
type Status uint8

const (
	StatusWorking Status = iota
	StatusDone
	StatusError
)

// Event reports progress of one file. The driver never blocks on a full
// sink; Sink implementations must be quick.
type Event struct {
	File   string
	Stage  Stage
	Status Status
}

// Sink receives progress events from worker goroutines.
type Sink interface {
	OnEvent(Event)
}

// ChannelSink forwards events to a channel and drops them when it is full.
type ChannelSink chan<- Event

func (s ChannelSink) OnEvent(ev Event) {
	select {
	case s <- ev:
	default:
	}
}

func emit(sink Sink, file string, stage Stage, status Status) {
	if sink != nil {
		sink.OnEvent(Event{File: file, Stage: stage, Status: status})
	}
}
