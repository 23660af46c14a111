package scaleapi

import "sort"

// TaskType identifies the kind of annotation work a task carries. It selects
// the creation endpoint and the expected payload shape.
type TaskType string

const (
	TaskTypeAnnotation             TaskType = "annotation"
	TaskTypeAudioTranscription     TaskType = "audiotranscription"
	TaskTypeCategorization         TaskType = "categorization"
	TaskTypeComparison             TaskType = "comparison"
	TaskTypeCuboidAnnotation       TaskType = "cuboidannotation"
	TaskTypeDataCollection         TaskType = "datacollection"
	TaskTypeImageAnnotation        TaskType = "imageannotation"
	TaskTypeLineAnnotation         TaskType = "lineannotation"
	TaskTypeNamedEntityRecognition TaskType = "namedentityrecognition"
	TaskTypePointAnnotation        TaskType = "pointannotation"
	TaskTypePolygonAnnotation      TaskType = "polygonannotation"
	TaskTypeSegmentAnnotation      TaskType = "segmentannotation"
	TaskTypeTranscription          TaskType = "transcription"
	TaskTypeVideoAnnotation        TaskType = "videoannotation"
	TaskTypeVideoBoxAnnotation     TaskType = "videoboxannotation"
	TaskTypeVideoCuboidAnnotation  TaskType = "videocuboidannotation"
)

var knownTaskTypes = map[TaskType]struct{}{
	TaskTypeAnnotation:             {},
	TaskTypeAudioTranscription:     {},
	TaskTypeCategorization:         {},
	TaskTypeComparison:             {},
	TaskTypeCuboidAnnotation:       {},
	TaskTypeDataCollection:         {},
	TaskTypeImageAnnotation:        {},
	TaskTypeLineAnnotation:         {},
	TaskTypeNamedEntityRecognition: {},
	TaskTypePointAnnotation:        {},
	TaskTypePolygonAnnotation:      {},
	TaskTypeSegmentAnnotation:      {},
	TaskTypeTranscription:          {},
	TaskTypeVideoAnnotation:        {},
	TaskTypeVideoBoxAnnotation:     {},
	TaskTypeVideoCuboidAnnotation:  {},
}

func (t TaskType) String() string {
	return string(t)
}

// Valid reports whether t is one of the known task types.
func (t TaskType) Valid() bool {
	_, ok := knownTaskTypes[t]
	return ok
}

// ParseTaskType returns the TaskType named by s.
func ParseTaskType(s string) (TaskType, bool) {
	t := TaskType(s)
	return t, t.Valid()
}

// TaskTypes returns every known task type in lexical order.
func TaskTypes() []TaskType {
	types := make([]TaskType, 0, len(knownTaskTypes))
	for t := range knownTaskTypes {
		types = append(types, t)
	}
	sort.Slice(types, func(i, j int) bool { return types[i] < types[j] })
	return types
}

// TaskStatus is the lifecycle status of a task.
type TaskStatus string

const (
	TaskStatusPending   TaskStatus = "pending"
	TaskStatusCompleted TaskStatus = "completed"
	TaskStatusCanceled  TaskStatus = "canceled"
)

func (s TaskStatus) String() string {
	return string(s)
}

// IsFinal returns true if no further transition is possible.
func (s TaskStatus) IsFinal() bool {
	return s == TaskStatusCompleted || s == TaskStatusCanceled
}

// ReviewStatus is the customer QA review outcome recorded on a task.
type ReviewStatus string

const (
	ReviewStatusPending  ReviewStatus = "pending"
	ReviewStatusFixed    ReviewStatus = "fixed"
	ReviewStatusAccepted ReviewStatus = "accepted"
	ReviewStatusRejected ReviewStatus = "rejected"
)

func (s ReviewStatus) String() string {
	return string(s)
}

// BatchStatus is the lifecycle status of a batch.
type BatchStatus string

const (
	BatchStatusStaging    BatchStatus = "staging"
	BatchStatusInProgress BatchStatus = "in_progress"
	BatchStatusCompleted  BatchStatus = "completed"
)

func (s BatchStatus) String() string {
	return string(s)
}
