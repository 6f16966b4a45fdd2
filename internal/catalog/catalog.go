package catalog

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/abhisek/studynav/internal/quiz"
)

//go:embed seed.json
var seedJSON []byte

// Catalog is the full set of static records the app displays.
type Catalog struct {
	Courses   []Course     `json:"courses"`
	StudyPlan StudyPlan    `json:"studyPlan"`
	Quiz      quiz.Quiz    `json:"quiz"`
	Progress  UserProgress `json:"progress"`
	// Greeting opens a fresh copilot transcript.
	Greeting string `json:"greeting"`
}

// Default returns the catalog compiled into the binary.
func Default() (*Catalog, error) {
	c, err := decode(seedJSON)
	if err != nil {
		return nil, fmt.Errorf("seed catalog: %w", err)
	}
	return c, nil
}

// Decode reads a catalog document from r.
func Decode(r io.Reader) (*Catalog, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read catalog: %w", err)
	}
	return decode(data)
}

// LoadFile reads a catalog document from path. An empty path yields Default.
func LoadFile(path string) (*Catalog, error) {
	if path == "" {
		return Default()
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open catalog: %w", err)
	}
	defer f.Close()

	c, err := Decode(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return c, nil
}

func decode(data []byte) (*Catalog, error) {
	var c Catalog
	if err := json.Unmarshal(data, &c); err != nil {
		return nil, fmt.Errorf("decode catalog: %w", err)
	}
	// Every session screen starts from this quiz; NewSession needs a question.
	if err := quiz.Validate(&c.Quiz); err != nil {
		return nil, fmt.Errorf("catalog quiz: %w", err)
	}
	return &c, nil
}

// CourseByID returns the course with id.
func (c *Catalog) CourseByID(id string) (Course, bool) {
	for _, course := range c.Courses {
		if course.ID == id {
			return course, true
		}
	}
	return Course{}, false
}

// PlanCourse returns the course the weekly plan belongs to.
func (c *Catalog) PlanCourse() (Course, bool) {
	return c.CourseByID(c.StudyPlan.CourseID)
}

// TopicByID finds a topic across all courses.
func (c *Catalog) TopicByID(id string) (Topic, bool) {
	for _, course := range c.Courses {
		for _, t := range course.Topics {
			if t.ID == id {
				return t, true
			}
		}
	}
	return Topic{}, false
}
