package seed

import (
	"context"
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/jrconcha-strat/taskboard/internal/domain"
	"github.com/jrconcha-strat/taskboard/internal/service"
)

// Summary - сколько сущностей создано из фикстуры.
type Summary struct {
	Users       int `json:"users"`
	Teams       int `json:"teams"`
	Projects    int `json:"projects"`
	Lists       int `json:"lists"`
	Tasks       int `json:"tasks"`
	Comments    int `json:"comments"`
	Assignments int `json:"assignments"`
}

// Seeder применяет фикстуру через сервисы, поэтому все инварианты
// (лидер команды, позиции, ссылки комментариев) соблюдаются так же, как при обычной работе.
// Каждая сущность создается в своей транзакции; при ошибке уже созданное остается.
type Seeder struct {
	svc *service.Services
	log logrus.FieldLogger

	users map[string]int64
	teams map[string]int64
}

func NewSeeder(svc *service.Services, log logrus.FieldLogger) *Seeder {
	return &Seeder{svc: svc, log: log}
}

func (s *Seeder) Apply(ctx context.Context, f *Fixture) (*Summary, error) {
	s.users = make(map[string]int64, len(f.Users))
	s.teams = make(map[string]int64, len(f.Teams))
	sum := &Summary{}

	for _, u := range f.Users {
		if _, dup := s.users[u.Ref]; dup {
			return sum, domain.NewValidationError("duplicate user ref %q", u.Ref)
		}

		res := s.svc.Users.Create(ctx, &domain.User{
			ExternalID: u.ExternalID,
			Email:      u.Email,
			Name:       u.Name,
			ImageURL:   u.ImageURL,
		})
		if err := res.Err(); err != nil {
			return sum, fmt.Errorf("user %q: %w", u.Ref, err)
		}
		s.users[u.Ref] = res.Data.ID
		sum.Users++
	}

	for _, tf := range f.Teams {
		if err := s.applyTeam(ctx, tf); err != nil {
			return sum, fmt.Errorf("team %q: %w", tf.Name, err)
		}
		sum.Teams++
	}

	for _, pf := range f.Projects {
		if err := s.applyProject(ctx, pf, sum); err != nil {
			return sum, fmt.Errorf("project %q: %w", pf.Name, err)
		}
		sum.Projects++
	}

	s.log.WithFields(logrus.Fields{
		"users":    sum.Users,
		"teams":    sum.Teams,
		"projects": sum.Projects,
		"tasks":    sum.Tasks,
	}).Info("fixture applied")

	return sum, nil
}

func (s *Seeder) applyTeam(ctx context.Context, tf TeamFixture) error {
	leaderID, err := s.user(tf.Leader)
	if err != nil {
		return err
	}

	created := s.svc.Leadership.CreateTeam(ctx, tf.Name, leaderID)
	if err := created.Err(); err != nil {
		return err
	}
	teamID := created.Data.Team.ID
	s.teams[tf.Name] = teamID

	if len(tf.Members) == 0 {
		return nil
	}

	memberIDs := make([]int64, 0, len(tf.Members))
	for _, ref := range tf.Members {
		id, err := s.user(ref)
		if err != nil {
			return err
		}
		memberIDs = append(memberIDs, id)
	}
	return s.svc.Leadership.AddMembers(ctx, teamID, memberIDs).Err()
}

func (s *Seeder) applyProject(ctx context.Context, pf ProjectFixture, sum *Summary) error {
	ownerID, err := s.user(pf.Owner)
	if err != nil {
		return err
	}

	status := domain.ProjectStatus(pf.Status)
	if status == "" {
		status = domain.ProjectPlanning
	}

	created := s.svc.Projects.Create(ctx, &domain.Project{
		Name:        pf.Name,
		Description: pf.Description,
		Status:      status,
		OwnerID:     ownerID,
	})
	if err := created.Err(); err != nil {
		return err
	}
	projectID := created.Data.ID

	for _, name := range pf.Teams {
		teamID, ok := s.teams[name]
		if !ok {
			return domain.NewValidationError("unknown team %q", name)
		}
		if err := s.svc.Links.LinkProject(ctx, teamID, projectID).Err(); err != nil {
			return err
		}
	}

	for _, lf := range pf.Lists {
		list := s.svc.ListPositions.Create(ctx, projectID, &domain.List{Name: lf.Name, Description: lf.Description})
		if err := list.Err(); err != nil {
			return fmt.Errorf("list %q: %w", lf.Name, err)
		}
		sum.Lists++

		for _, tf := range lf.Tasks {
			if err := s.applyTask(ctx, list.Data.ID, tf, sum); err != nil {
				return fmt.Errorf("task %q: %w", tf.Title, err)
			}
			sum.Tasks++
		}
	}
	return nil
}

func (s *Seeder) applyTask(ctx context.Context, listID int64, tf TaskFixture, sum *Summary) error {
	priority := domain.Priority(tf.Priority)
	if priority == "" {
		priority = domain.PriorityMedium
	}

	task := s.svc.TaskPositions.Create(ctx, listID, &domain.Task{
		Title:       tf.Title,
		Description: tf.Description,
		Priority:    priority,
	})
	if err := task.Err(); err != nil {
		return err
	}
	taskID := task.Data.ID

	for _, ref := range tf.Assignees {
		userID, err := s.user(ref)
		if err != nil {
			return err
		}
		if err := s.svc.Links.AssignTask(ctx, taskID, userID).Err(); err != nil {
			return err
		}
		sum.Assignments++
	}

	for _, cf := range tf.Comments {
		if err := s.applyComment(ctx, taskID, nil, cf, sum); err != nil {
			return err
		}
	}
	return nil
}

func (s *Seeder) applyComment(ctx context.Context, taskID int64, parentID *int64, cf CommentFixture, sum *Summary) error {
	authorID, err := s.user(cf.Author)
	if err != nil {
		return err
	}

	comment := &domain.Comment{TaskID: taskID, AuthorID: authorID, Content: cf.Content}

	var created domain.Result[*domain.Comment]
	if parentID == nil {
		created = s.svc.Comments.Create(ctx, comment)
	} else {
		created = s.svc.Threads.Reply(ctx, *parentID, comment)
	}
	if err := created.Err(); err != nil {
		return err
	}
	sum.Comments++

	id := created.Data.ID
	for _, reply := range cf.Replies {
		if err := s.applyComment(ctx, taskID, &id, reply, sum); err != nil {
			return err
		}
	}
	return nil
}

func (s *Seeder) user(ref string) (int64, error) {
	id, ok := s.users[ref]
	if !ok {
		return 0, domain.NewValidationError("unknown user ref %q", ref)
	}
	return id, nil
}
