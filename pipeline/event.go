package pipeline

// Stage is a state of the single video pipeline. Stages run in declaration order.
type Stage string

const (
	StageInit         Stage = "init"
	StageConnectivity Stage = "connectivity"
	StageMetadata     Stage = "metadata"
	StageVideo        Stage = "video"
	StageAudio        Stage = "audio"
	StageSubtitles    Stage = "subtitles"
	StageMux          Stage = "mux"
	StagePublish      Stage = "publish"
	StageCleanup      Stage = "cleanup"
	StageDone         Stage = "done"
)

// Stages lists every stage in execution order.
var Stages = []Stage{
	StageInit,
	StageConnectivity,
	StageMetadata,
	StageVideo,
	StageAudio,
	StageSubtitles,
	StageMux,
	StagePublish,
	StageCleanup,
	StageDone,
}

// Event describes what the pipeline is doing. Observers cannot influence the run.
type Event struct {
	Stage  Stage
	Detail string

	// Byte progress of the fetch stages. Total is zero when unknown.
	Written int64
	Total   int64

	// Position inside a playlist, zero outside of one.
	Item  int
	Items int

	// Warning marks a non-fatal problem described by Detail.
	Warning bool
	// Err is set on the event reporting a failure.
	Err error
}

// Observer receives pipeline events.
type Observer func(Event)

// IsProgress reports whether the event carries byte progress.
func (e Event) IsProgress() bool {
	return e.Written > 0
}
