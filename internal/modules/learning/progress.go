package learning

import (
	"math"

	"github.com/yungbote/agrovet-backend/internal/domain/catalog"
	"github.com/yungbote/agrovet-backend/internal/domain/user"
)

// TopicKey is the composite key stored in a user's completed set.
func TopicKey(disciplineID, topicID string) string {
	return disciplineID + "-" + topicID
}

func IsTopicComplete(u *user.User, disciplineID, topicID string) bool {
	if u == nil {
		return false
	}
	key := TopicKey(disciplineID, topicID)
	for _, k := range u.CompletedTopics {
		if k == key {
			return true
		}
	}
	return false
}

// ToggleTopic returns a new set with the key added when absent and removed
// when present. The input is never modified.
func ToggleTopic(completed []string, disciplineID, topicID string) []string {
	key := TopicKey(disciplineID, topicID)
	out := make([]string, 0, len(completed)+1)
	removed := false
	for _, k := range completed {
		if k == key {
			removed = true
			continue
		}
		out = append(out, k)
	}
	if !removed {
		out = append(out, key)
	}
	return out
}

// Percentage rounds half away from zero; an empty total is 0%.
func Percentage(completed, total int) int {
	if total <= 0 {
		return 0
	}
	return int(math.Round(100 * float64(completed) / float64(total)))
}

type Summary struct {
	Completed  int `json:"completed"`
	Total      int `json:"total"`
	Percentage int `json:"percentage"`
}

func newSummary(completed, total int) Summary {
	return Summary{Completed: completed, Total: total, Percentage: Percentage(completed, total)}
}

func (s Summary) add(o Summary) Summary {
	return newSummary(s.Completed+o.Completed, s.Total+o.Total)
}

type TopicState struct {
	catalog.Topic
	Completed bool `json:"completed"`
}

type DisciplineProgress struct {
	ID      string        `json:"id"`
	Name    string        `json:"name"`
	Level   catalog.Level `json:"level"`
	Topics  []TopicState  `json:"topics"`
	Summary Summary       `json:"summary"`
}

type AreaProgress struct {
	ID          string               `json:"id"`
	Name        string               `json:"name"`
	Disciplines []DisciplineProgress `json:"disciplines"`
	Summary     Summary              `json:"summary"`
}

type CourseProgress struct {
	CourseID        catalog.CourseID `json:"courseId"`
	Name            string           `json:"name"`
	DisciplineCount int              `json:"disciplineCount"`
	Areas           []AreaProgress   `json:"areas"`
	Summary         Summary          `json:"summary"`
}

func set(completed []string) map[string]struct{} {
	out := make(map[string]struct{}, len(completed))
	for _, k := range completed {
		out[k] = struct{}{}
	}
	return out
}

func disciplineProgress(done map[string]struct{}, d catalog.Discipline) DisciplineProgress {
	topics := make([]TopicState, 0, len(d.Topics))
	n := 0
	for _, t := range d.Topics {
		_, ok := done[TopicKey(d.ID, t.ID)]
		if ok {
			n++
		}
		topics = append(topics, TopicState{Topic: t, Completed: ok})
	}
	return DisciplineProgress{
		ID:      d.ID,
		Name:    d.Name,
		Level:   d.Level,
		Topics:  topics,
		Summary: newSummary(n, len(d.Topics)),
	}
}

// DisciplineSummary counts only the topics listed by the discipline, so
// stale keys left in the set never inflate the result.
func DisciplineSummary(u *user.User, d catalog.Discipline) Summary {
	var completed []string
	if u != nil {
		completed = u.CompletedTopics
	}
	return disciplineProgress(set(completed), d).Summary
}

func Course(u *user.User, course catalog.Course) CourseProgress {
	var completed []string
	if u != nil {
		completed = u.CompletedTopics
	}
	done := set(completed)

	out := CourseProgress{
		CourseID:        course.ID,
		Name:            course.Name,
		DisciplineCount: course.DisciplineCount(),
		Areas:           make([]AreaProgress, 0, len(course.Areas)),
	}
	for _, a := range course.Areas {
		ap := AreaProgress{ID: a.ID, Name: a.Name, Disciplines: make([]DisciplineProgress, 0, len(a.Disciplines))}
		for _, d := range a.Disciplines {
			dp := disciplineProgress(done, d)
			ap.Disciplines = append(ap.Disciplines, dp)
			ap.Summary = ap.Summary.add(dp.Summary)
		}
		out.Areas = append(out.Areas, ap)
		out.Summary = out.Summary.add(ap.Summary)
	}
	return out
}
