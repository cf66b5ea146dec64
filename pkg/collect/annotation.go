package collect

import (
	"context"
	"encoding/json"
	"fmt"
	"path"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/phzwart/boteval/pkg/store"
)

// AnnotationPrefix is where annotation records live in the store.
const AnnotationPrefix = "annotate/"

// QuestionAnnotation is a human judgment for one question: a proposed
// benchmark answer and a quality vote in {-1, 0, 1}.
type QuestionAnnotation struct {
	Benchmark string `json:"benchmark"`
	Quality   int    `json:"quality"`
}

// Annotation is one annotator's pass over the questions of a topic.
type Annotation struct {
	Annotator   string                        `json:"annotator"`
	Timestamp   string                        `json:"timestamp"`
	Topic       string                        `json:"topic"`
	Annotations map[string]QuestionAnnotation `json:"annotations"`
}

// Validate rejects records that would poison downstream statistics.
func (a Annotation) Validate() error {
	if a.Annotator == "" {
		return fmt.Errorf("collect: annotator is required")
	}
	for qid, qa := range a.Annotations {
		if qa.Quality < -1 || qa.Quality > 1 {
			return fmt.Errorf("collect: quality for %q must be -1, 0 or 1, got %d", qid, qa.Quality)
		}
	}
	return nil
}

// SaveAnnotation writes the annotation under a unique path and returns
// that path.
func SaveAnnotation(ctx context.Context, st store.Store, ann Annotation) (string, error) {
	if err := ann.Validate(); err != nil {
		return "", err
	}
	if ann.Timestamp == "" {
		ann.Timestamp = time.Now().Format(time.RFC3339)
	}
	data, err := json.MarshalIndent(ann, "", "  ")
	if err != nil {
		return "", err
	}
	blobPath := fmt.Sprintf("%sannotation-%s-%s.json",
		AnnotationPrefix, safeTimestamp(ann.Timestamp), uuid.New().String())
	if err := st.Put(ctx, blobPath, data); err != nil {
		return "", err
	}
	return blobPath, nil
}

// LoadAnnotations lists and decodes every annotation record, skipping
// unreadable blobs with a warning.
func LoadAnnotations(ctx context.Context, st store.Store, logger *zap.Logger) ([]Annotation, error) {
	paths, err := st.List(ctx, AnnotationPrefix)
	if err != nil {
		return nil, err
	}
	anns := make([]Annotation, 0, len(paths))
	for _, p := range paths {
		if !strings.HasPrefix(path.Base(p), "annotation-") {
			continue
		}
		data, err := st.Get(ctx, p)
		if err != nil {
			log(logger).Warn("skipping annotation", zap.String("path", p), zap.Error(err))
			continue
		}
		var ann Annotation
		if err := json.Unmarshal(data, &ann); err != nil {
			log(logger).Warn("skipping annotation", zap.String("path", p), zap.Error(err))
			continue
		}
		anns = append(anns, ann)
	}
	return anns, nil
}
