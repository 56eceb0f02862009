package models

type DailyUsage struct {
	Date     string `json:"date"`
	Requests int    `json:"requests"`
	Tokens   int64  `json:"tokens"`
}

type UsageByType struct {
	Type     string `json:"type"`
	Requests int    `json:"requests"`
	Tokens   int64  `json:"tokens"`
}

type UsageTotals struct {
	Requests int   `json:"requests"`
	Tokens   int64 `json:"tokens"`
}

type Overview struct {
	Users           int `json:"users"`
	Projects        int `json:"projects"`
	Images          int `json:"images"`
	ActiveBlogs     int `json:"active_blogs"`
	Submissions     int `json:"submissions"`
	AuthorizedUsers int `json:"authorized_users"`
}
