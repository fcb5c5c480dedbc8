package catalog

import (
	_ "embed"
	"fmt"
	"sync"

	"gopkg.in/yaml.v3"
)

type CourseID string

const (
	Agronomia   CourseID = "agronomia"
	Zootecnia   CourseID = "zootecnia"
	Veterinaria CourseID = "veterinaria"
)

func (id CourseID) Valid() bool {
	switch id {
	case Agronomia, Zootecnia, Veterinaria:
		return true
	}
	return false
}

type Level string

const (
	LevelBasic        Level = "Básico"
	LevelIntermediate Level = "Intermediário"
	LevelAdvanced     Level = "Avançado"
)

type Topic struct {
	ID   string `yaml:"id" json:"id"`
	Name string `yaml:"name" json:"name"`
}

type Discipline struct {
	ID     string  `yaml:"id" json:"id"`
	Name   string  `yaml:"name" json:"name"`
	Level  Level   `yaml:"level" json:"level"`
	Topics []Topic `yaml:"topics" json:"topics"`
}

func (d Discipline) Topic(topicID string) (Topic, bool) {
	for _, t := range d.Topics {
		if t.ID == topicID {
			return t, true
		}
	}
	return Topic{}, false
}

type Area struct {
	ID          string       `yaml:"id" json:"id"`
	Name        string       `yaml:"name" json:"name"`
	Disciplines []Discipline `yaml:"disciplines" json:"disciplines"`
}

type Course struct {
	ID          CourseID `yaml:"id" json:"id"`
	Name        string   `yaml:"name" json:"name"`
	Description string   `yaml:"description" json:"description"`
	Color       string   `yaml:"color" json:"color"`
	Areas       []Area   `yaml:"areas" json:"areas"`
}

// DisciplineCount is the number of disciplines across all areas.
func (c Course) DisciplineCount() int {
	n := 0
	for _, a := range c.Areas {
		n += len(a.Disciplines)
	}
	return n
}

// Discipline finds a discipline anywhere in the course, with its area.
func (c Course) Discipline(disciplineID string) (Area, Discipline, bool) {
	for _, a := range c.Areas {
		for _, d := range a.Disciplines {
			if d.ID == disciplineID {
				return a, d, true
			}
		}
	}
	return Area{}, Discipline{}, false
}

type Catalog struct {
	Courses []Course `yaml:"courses" json:"courses"`
}

func (c *Catalog) Course(id CourseID) (Course, bool) {
	for _, course := range c.Courses {
		if course.ID == id {
			return course, true
		}
	}
	return Course{}, false
}

// HasTopic reports whether some course holds the discipline and topic pair.
func (c *Catalog) HasTopic(disciplineID, topicID string) bool {
	for _, course := range c.Courses {
		if _, d, ok := course.Discipline(disciplineID); ok {
			_, found := d.Topic(topicID)
			return found
		}
	}
	return false
}

//go:embed catalog.yaml
var catalogYAML []byte

var (
	defaultOnce sync.Once
	defaultCat  *Catalog
	defaultErr  error
)

// Default returns the embedded catalog, parsed once.
func Default() (*Catalog, error) {
	defaultOnce.Do(func() {
		defaultCat, defaultErr = Parse(catalogYAML)
	})
	return defaultCat, defaultErr
}

func Parse(raw []byte) (*Catalog, error) {
	var cat Catalog
	if err := yaml.Unmarshal(raw, &cat); err != nil {
		return nil, fmt.Errorf("parse catalog: %w", err)
	}
	if len(cat.Courses) == 0 {
		return nil, fmt.Errorf("parse catalog: no courses")
	}
	seen := map[string]CourseID{}
	for _, course := range cat.Courses {
		if !course.ID.Valid() {
			return nil, fmt.Errorf("parse catalog: unknown course id %q", course.ID)
		}
		for _, area := range course.Areas {
			for _, d := range area.Disciplines {
				if prev, dup := seen[d.ID]; dup {
					return nil, fmt.Errorf("parse catalog: discipline %q in both %s and %s", d.ID, prev, course.ID)
				}
				seen[d.ID] = course.ID
			}
		}
	}
	return &cat, nil
}
