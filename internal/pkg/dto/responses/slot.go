package responses

type Slot struct {
	StartTime string `json:"startTime"`
	EndTime   string `json:"endTime"`
	RuleID    string `json:"ruleId"`
}

type DaySlots struct {
	Date  string `json:"date"`
	Slots []Slot `json:"slots"`
}
