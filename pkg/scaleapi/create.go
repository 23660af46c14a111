package scaleapi

import "context"

// One creator per known task type. Each is equivalent to calling CreateTask
// with the matching TaskType.

// CreateAnnotationTask creates an annotation task.
func (c *Client) CreateAnnotationTask(ctx context.Context, fields Fields) (*Task, error) {
	return c.CreateTask(ctx, TaskTypeAnnotation, fields)
}

// CreateAudioTranscriptionTask creates an audio transcription task.
func (c *Client) CreateAudioTranscriptionTask(ctx context.Context, fields Fields) (*Task, error) {
	return c.CreateTask(ctx, TaskTypeAudioTranscription, fields)
}

// CreateCategorizationTask creates a categorization task.
func (c *Client) CreateCategorizationTask(ctx context.Context, fields Fields) (*Task, error) {
	return c.CreateTask(ctx, TaskTypeCategorization, fields)
}

// CreateComparisonTask creates a comparison task.
func (c *Client) CreateComparisonTask(ctx context.Context, fields Fields) (*Task, error) {
	return c.CreateTask(ctx, TaskTypeComparison, fields)
}

// CreateCuboidAnnotationTask creates a cuboid annotation task.
func (c *Client) CreateCuboidAnnotationTask(ctx context.Context, fields Fields) (*Task, error) {
	return c.CreateTask(ctx, TaskTypeCuboidAnnotation, fields)
}

// CreateDataCollectionTask creates a data collection task.
func (c *Client) CreateDataCollectionTask(ctx context.Context, fields Fields) (*Task, error) {
	return c.CreateTask(ctx, TaskTypeDataCollection, fields)
}

// CreateImageAnnotationTask creates an image annotation task.
func (c *Client) CreateImageAnnotationTask(ctx context.Context, fields Fields) (*Task, error) {
	return c.CreateTask(ctx, TaskTypeImageAnnotation, fields)
}

// CreateLineAnnotationTask creates a line annotation task.
func (c *Client) CreateLineAnnotationTask(ctx context.Context, fields Fields) (*Task, error) {
	return c.CreateTask(ctx, TaskTypeLineAnnotation, fields)
}

// CreateNamedEntityRecognitionTask creates a named entity recognition task.
func (c *Client) CreateNamedEntityRecognitionTask(ctx context.Context, fields Fields) (*Task, error) {
	return c.CreateTask(ctx, TaskTypeNamedEntityRecognition, fields)
}

// CreatePointAnnotationTask creates a point annotation task.
func (c *Client) CreatePointAnnotationTask(ctx context.Context, fields Fields) (*Task, error) {
	return c.CreateTask(ctx, TaskTypePointAnnotation, fields)
}

// CreatePolygonAnnotationTask creates a polygon annotation task.
func (c *Client) CreatePolygonAnnotationTask(ctx context.Context, fields Fields) (*Task, error) {
	return c.CreateTask(ctx, TaskTypePolygonAnnotation, fields)
}

// CreateSegmentAnnotationTask creates a segment annotation task.
func (c *Client) CreateSegmentAnnotationTask(ctx context.Context, fields Fields) (*Task, error) {
	return c.CreateTask(ctx, TaskTypeSegmentAnnotation, fields)
}

// CreateTranscriptionTask creates a transcription task.
func (c *Client) CreateTranscriptionTask(ctx context.Context, fields Fields) (*Task, error) {
	return c.CreateTask(ctx, TaskTypeTranscription, fields)
}

// CreateVideoAnnotationTask creates a video annotation task.
func (c *Client) CreateVideoAnnotationTask(ctx context.Context, fields Fields) (*Task, error) {
	return c.CreateTask(ctx, TaskTypeVideoAnnotation, fields)
}

// CreateVideoBoxAnnotationTask creates a video box annotation task.
func (c *Client) CreateVideoBoxAnnotationTask(ctx context.Context, fields Fields) (*Task, error) {
	return c.CreateTask(ctx, TaskTypeVideoBoxAnnotation, fields)
}

// CreateVideoCuboidAnnotationTask creates a video cuboid annotation task.
func (c *Client) CreateVideoCuboidAnnotationTask(ctx context.Context, fields Fields) (*Task, error) {
	return c.CreateTask(ctx, TaskTypeVideoCuboidAnnotation, fields)
}
