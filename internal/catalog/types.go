// Package catalog holds the static course records shown on the dashboard and
// roadmap: courses with their topic timelines, the weekly study plan and the
// learner's aggregate progress.
package catalog

// Difficulty is a course's level.
type Difficulty string

const (
	Beginner     Difficulty = "beginner"
	Intermediate Difficulty = "intermediate"
	Advanced     Difficulty = "advanced"
)

// TopicStatus is where the learner stands on a topic.
type TopicStatus string

const (
	TopicLocked     TopicStatus = "locked"
	TopicAvailable  TopicStatus = "available"
	TopicInProgress TopicStatus = "in-progress"
	TopicCompleted  TopicStatus = "completed"
	TopicMastered   TopicStatus = "mastered"
)

// Label renders the status for display ("in progress").
func (s TopicStatus) Label() string {
	if s == TopicInProgress {
		return "in progress"
	}
	return string(s)
}

// Course is an enrolled course with its topic timeline.
type Course struct {
	ID              string     `json:"id"`
	Name            string     `json:"name"`
	Code            string     `json:"code"`
	Description     string     `json:"description"`
	Color           string     `json:"color"`
	Icon            string     `json:"icon"`
	Progress        int        `json:"progress"`
	TotalTopics     int        `json:"totalTopics"`
	CompletedTopics int        `json:"completedTopics"`
	WeeklyHours     int        `json:"weeklyHours"`
	Difficulty      Difficulty `json:"difficulty"`
	NextDeadline    string     `json:"nextDeadline,omitempty"`
	Topics          []Topic    `json:"topics"`
}

// OnTrack reports whether progress is high enough to render in the success color.
func (c Course) OnTrack() bool {
	return c.Progress >= 80
}

// Topic is one node in a course roadmap.
type Topic struct {
	ID             string      `json:"id"`
	Name           string      `json:"name"`
	Description    string      `json:"description"`
	Status         TopicStatus `json:"status"`
	MasteryLevel   int         `json:"masteryLevel"`
	EstimatedHours float64     `json:"estimatedHours"`
	Resources      []Resource  `json:"resources"`
	Prerequisites  []string    `json:"prerequisites"`
}

// Clickable reports whether the topic can be opened.
func (t Topic) Clickable() bool {
	return t.Status != TopicLocked
}

// Resource is study material attached to a topic.
type Resource struct {
	ID       string `json:"id"`
	Title    string `json:"title"`
	Type     string `json:"type"` // pdf, video, slides, notes, quiz
	URL      string `json:"url,omitempty"`
	Duration string `json:"duration,omitempty"`
}

// StudyPlan is one week of scheduled goals for a course.
type StudyPlan struct {
	ID             string      `json:"id"`
	CourseID       string      `json:"courseId"`
	WeekNumber     int         `json:"weekNumber"`
	StartDate      string      `json:"startDate"`
	EndDate        string      `json:"endDate"`
	Goals          []StudyGoal `json:"goals"`
	TotalHours     float64     `json:"totalHours"`
	CompletedHours float64     `json:"completedHours"`
}

// Percent returns completed hours as a share of total hours, 0..100.
func (p StudyPlan) Percent() int {
	return ratio(p.CompletedHours, p.TotalHours)
}

// StudyGoal targets a mastery level on one topic.
type StudyGoal struct {
	ID             string     `json:"id"`
	TopicID        string     `json:"topicId"`
	TopicName      string     `json:"topicName"`
	TargetMastery  int        `json:"targetMastery"`
	CurrentMastery int        `json:"currentMastery"`
	Hours          float64    `json:"hours"`
	Activities     []Activity `json:"activities"`
	Completed      bool       `json:"completed"`
}

// CompletedActivities counts the goal's finished activities.
func (g StudyGoal) CompletedActivities() int {
	n := 0
	for _, a := range g.Activities {
		if a.Completed {
			n++
		}
	}
	return n
}

// Activity is a single checklist item inside a goal.
type Activity struct {
	ID        string `json:"id"`
	Type      string `json:"type"` // read, watch, practice, quiz, review
	Title     string `json:"title"`
	Duration  string `json:"duration"`
	Completed bool   `json:"completed"`
}

// UserProgress is the learner's aggregate stats.
type UserProgress struct {
	TotalStudyHours  float64 `json:"totalStudyHours"`
	CoursesEnrolled  int     `json:"coursesEnrolled"`
	QuizzesCompleted int     `json:"quizzesCompleted"`
	AverageMastery   int     `json:"averageMastery"`
	CurrentStreak    int     `json:"currentStreak"`
	LongestStreak    int     `json:"longestStreak"`
	WeeklyGoal       float64 `json:"weeklyGoal"`
	WeeklyProgress   float64 `json:"weeklyProgress"`
}

// WeeklyPercent returns weekly progress against the goal, 0..100.
func (u UserProgress) WeeklyPercent() int {
	return ratio(u.WeeklyProgress, u.WeeklyGoal)
}

// WeeklyRemaining returns the hours left to reach the weekly goal, never negative.
func (u UserProgress) WeeklyRemaining() float64 {
	return max(u.WeeklyGoal-u.WeeklyProgress, 0)
}

func ratio(part, whole float64) int {
	if whole <= 0 {
		return 0
	}
	p := int(part/whole*100 + 0.5)
	return min(max(p, 0), 100)
}
