package seed

import (
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"
)

// Fixture - начальные данные доски в YAML. Пользователи указываются по ref.
type Fixture struct {
	Users    []UserFixture    `yaml:"users"`
	Teams    []TeamFixture    `yaml:"teams"`
	Projects []ProjectFixture `yaml:"projects"`
}

type UserFixture struct {
	Ref        string `yaml:"ref"`
	ExternalID string `yaml:"external_id"`
	Email      string `yaml:"email"`
	Name       string `yaml:"name"`
	ImageURL   string `yaml:"image_url"`
}

type TeamFixture struct {
	Name    string   `yaml:"name"`
	Leader  string   `yaml:"leader"`
	Members []string `yaml:"members"`
}

type ProjectFixture struct {
	Name        string        `yaml:"name"`
	Description string        `yaml:"description"`
	Status      string        `yaml:"status"`
	Owner       string        `yaml:"owner"`
	Teams       []string      `yaml:"teams"`
	Lists       []ListFixture `yaml:"lists"`
}

type ListFixture struct {
	Name        string        `yaml:"name"`
	Description string        `yaml:"description"`
	Tasks       []TaskFixture `yaml:"tasks"`
}

type TaskFixture struct {
	Title       string           `yaml:"title"`
	Description string           `yaml:"description"`
	Priority    string           `yaml:"priority"`
	Assignees   []string         `yaml:"assignees"`
	Comments    []CommentFixture `yaml:"comments"`
}

type CommentFixture struct {
	Author  string           `yaml:"author"`
	Content string           `yaml:"content"`
	Replies []CommentFixture `yaml:"replies"`
}

// Load разбирает фикстуру. Неизвестные ключи считаются ошибкой.
func Load(r io.Reader) (*Fixture, error) {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)

	var f Fixture
	if err := dec.Decode(&f); err != nil {
		if err == io.EOF {
			return &f, nil
		}
		return nil, fmt.Errorf("decode fixture: %w", err)
	}
	return &f, nil
}

func LoadFile(path string) (*Fixture, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open fixture: %w", err)
	}
	defer file.Close()

	return Load(file)
}
