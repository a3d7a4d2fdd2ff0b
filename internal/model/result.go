package model

import "time"

// Result is a standalone score row, keyed by ResultID.
// swagger:model
type Result struct {
	ID               string    `json:"id" bson:"_id" gorm:"primaryKey;type:varchar(36)"`
	ResultID         string    `json:"result_id" bson:"result_id" gorm:"uniqueIndex;type:varchar(128);not null"`
	ResultUserID     string    `json:"result_user_id" bson:"result_user_id" gorm:"index:idx_result_user_test;type:varchar(128)"`
	ResultTestID     string    `json:"result_test_id" bson:"result_test_id" gorm:"index:idx_result_user_test;type:varchar(128)"`
	ResultScore      float64   `json:"result_score" bson:"result_score"`
	ResultTotalScore float64   `json:"result_total_score" bson:"result_total_score"`
	ResultPocID      string    `json:"result_poc_id" bson:"result_poc_id" gorm:"type:varchar(128)"`
	CreatedAt        time.Time `json:"createdAt" bson:"created_at"`
	UpdatedAt        time.Time `json:"updatedAt" bson:"updated_at"`
}

func (Result) TableName() string {
	return "results"
}

// ResultPatch lists the result fields an update may overwrite. Nil fields are
// left unchanged.
type ResultPatch struct {
	ResultUserID     *string
	ResultTestID     *string
	ResultScore      *float64
	ResultTotalScore *float64
	ResultPocID      *string
}

func (p ResultPatch) Apply(r *Result) {
	if p.ResultUserID != nil {
		r.ResultUserID = *p.ResultUserID
	}
	if p.ResultTestID != nil {
		r.ResultTestID = *p.ResultTestID
	}
	if p.ResultScore != nil {
		r.ResultScore = *p.ResultScore
	}
	if p.ResultTotalScore != nil {
		r.ResultTotalScore = *p.ResultTotalScore
	}
	if p.ResultPocID != nil {
		r.ResultPocID = *p.ResultPocID
	}
}

// ScoreSummary aggregates every result of one user.
// swagger:model
type ScoreSummary struct {
	ResultUserID string    `json:"result_user_id"`
	Scores       []float64 `json:"scores"`
	TotalScore   float64   `json:"total_score"`
	Percentage   string    `json:"percentage"`
}
