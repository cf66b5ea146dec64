// Package collect handles the immutable JSON records this system writes
// back to the store: model response submissions and human annotations.
// Every record gets a unique path and is never overwritten.
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

// SubmissionPrefix is where response submissions live in the store.
const SubmissionPrefix = "gather/"

// Submission is one collected set of free-text model responses for the
// question list, keyed by question id.
type Submission struct {
	Timestamp string            `json:"timestamp"`
	ModelName string            `json:"model_name"`
	RunID     string            `json:"run_id"`
	Operator  string            `json:"operator"`
	Responses map[string]string `json:"responses"`
}

// SaveSubmission writes the submission under a unique path and returns
// that path.
func SaveSubmission(ctx context.Context, st store.Store, sub Submission) (string, error) {
	if sub.Timestamp == "" {
		sub.Timestamp = time.Now().Format(time.RFC3339)
	}
	data, err := json.MarshalIndent(sub, "", "  ")
	if err != nil {
		return "", err
	}
	blobPath := fmt.Sprintf("%ssubmission-%s-%s.json",
		SubmissionPrefix, safeTimestamp(sub.Timestamp), uuid.New().String())
	if err := st.Put(ctx, blobPath, data); err != nil {
		return "", err
	}
	return blobPath, nil
}

// LoadSubmissions lists and decodes every submission record. Unreadable
// blobs are skipped with a warning so one bad record never blocks the
// rest.
func LoadSubmissions(ctx context.Context, st store.Store, logger *zap.Logger) ([]Submission, error) {
	paths, err := st.List(ctx, SubmissionPrefix)
	if err != nil {
		return nil, err
	}
	subs := make([]Submission, 0, len(paths))
	for _, p := range paths {
		if !strings.HasPrefix(path.Base(p), "submission-") {
			continue
		}
		data, err := st.Get(ctx, p)
		if err != nil {
			log(logger).Warn("skipping submission", zap.String("path", p), zap.Error(err))
			continue
		}
		var sub Submission
		if err := json.Unmarshal(data, &sub); err != nil {
			log(logger).Warn("skipping submission", zap.String("path", p), zap.Error(err))
			continue
		}
		subs = append(subs, sub)
	}
	return subs, nil
}

// Timestamps go into blob names, so colons have to go.
func safeTimestamp(ts string) string {
	return strings.ReplaceAll(ts, ":", "-")
}

func log(logger *zap.Logger) *zap.Logger {
	if logger != nil {
		return logger
	}
	return zap.NewNop()
}
