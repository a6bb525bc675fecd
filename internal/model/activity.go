package model

// Activity is a project+activity pairing a user books time against.
// ProjectID and ActivityID are the identifiers used in external
// bookkeeping systems, as opposed to the database ID.
type Activity struct {
	ID           int64  `json:"id"`
	UserID       string `json:"userId"`
	ProjectName  string `json:"projectName"`
	ProjectID    string `json:"projectId"`
	ActivityName string `json:"activityName"`
	ActivityID   string `json:"activityId"`
	Hidden       bool   `json:"hidden"`
}
