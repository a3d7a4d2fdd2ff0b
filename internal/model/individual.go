package model

import "time"

// TestAttempt is one dated test submission embedded in an Individual.
// Scores are kept as text, the way the report clients send and read them.
// swagger:model
type TestAttempt struct {
	ResultTestID      string `json:"result_test_id" bson:"result_test_id"`
	Date              string `json:"date" bson:"date"`
	ResultMcqScore    string `json:"result_mcq_score" bson:"result_mcq_score"`
	ResultCodingScore string `json:"result_coding_score" bson:"result_coding_score"`
	ScoredMark        string `json:"scored_mark" bson:"scored_mark"`
	TotalMark         string `json:"total_mark" bson:"total_mark"`
}

// Individual is the per-user report: module metadata plus every test attempt
// the user made, in the order they were submitted.
// swagger:model
type Individual struct {
	ID            string        `json:"id" bson:"_id"`
	ModuleName    string        `json:"module_name" bson:"module_name"`
	ModuleID      string        `json:"module_id" bson:"module_id"`
	ModulePocName string        `json:"module_poc_name" bson:"module_poc_name"`
	ModulePocID   string        `json:"module_poc_id" bson:"module_poc_id"`
	UserID        string        `json:"user_id" bson:"user_id"`
	Tests         []TestAttempt `json:"tests" bson:"tests"`
	CreatedAt     time.Time     `json:"createdAt" bson:"created_at"`
	UpdatedAt     time.Time     `json:"updatedAt" bson:"updated_at"`
}

// HasDate reports whether an attempt other than the one at index skip is
// dated date. Pass -1 to check every attempt.
func (i *Individual) HasDate(date string, skip int) bool {
	for idx, t := range i.Tests {
		if idx != skip && t.Date == date {
			return true
		}
	}
	return false
}
