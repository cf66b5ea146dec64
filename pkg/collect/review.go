package collect

import "github.com/phzwart/boteval/pkg/dataset"

// QuestionReview gathers everything known about one question: its
// canonical entry plus every annotation and model response that
// references it. The slice fields are always non-nil so the JSON export
// renders empty lists, not nulls.
type QuestionReview struct {
	ID          string             `json:"id"`
	Question    string             `json:"question"`
	Answer      string             `json:"answer"`
	Topic       []string           `json:"topic"`
	Annotations []ReviewAnnotation `json:"annotations"`
	Responses   []ReviewResponse   `json:"responses"`
}

type ReviewAnnotation struct {
	Annotator string `json:"annotator"`
	Benchmark string `json:"benchmark"`
	Quality   int    `json:"quality"`
}

type ReviewResponse struct {
	ModelName string `json:"model_name"`
	RunID     string `json:"run_id"`
	Response  string `json:"response"`
}

// BuildReview merges annotations and submissions into one record per
// question, in question-list order. Records that reference unknown
// question ids are ignored.
func BuildReview(questions []dataset.Question, annotations []Annotation, submissions []Submission) []QuestionReview {
	reviews := make([]QuestionReview, 0, len(questions))
	for _, q := range questions {
		review := QuestionReview{
			ID:          q.ID,
			Question:    q.Question,
			Answer:      q.Answer,
			Topic:       q.Topic,
			Annotations: []ReviewAnnotation{},
			Responses:   []ReviewResponse{},
		}
		if review.Topic == nil {
			review.Topic = []string{}
		}
		for _, ann := range annotations {
			if qa, ok := ann.Annotations[q.ID]; ok {
				review.Annotations = append(review.Annotations, ReviewAnnotation{
					Annotator: ann.Annotator,
					Benchmark: qa.Benchmark,
					Quality:   qa.Quality,
				})
			}
		}
		for _, sub := range submissions {
			if response, ok := sub.Responses[q.ID]; ok {
				review.Responses = append(review.Responses, ReviewResponse{
					ModelName: sub.ModelName,
					RunID:     sub.RunID,
					Response:  response,
				})
			}
		}
		reviews = append(reviews, review)
	}
	return reviews
}
