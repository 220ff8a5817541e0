package domain

import "fmt"

// Kind перечисляет виды сущностей, с которыми работает репозиторий.
type Kind int

const (
	KindUser Kind = iota + 1
	KindTeam
	KindProject
	KindList
	KindTask
	KindComment
)

var AllKinds = []Kind{KindUser, KindTeam, KindProject, KindList, KindTask, KindComment}

func (k Kind) String() string {
	switch k {
	case KindUser:
		return "user"
	case KindTeam:
		return "team"
	case KindProject:
		return "project"
	case KindList:
		return "list"
	case KindTask:
		return "task"
	case KindComment:
		return "comment"
	default:
		return fmt.Sprintf("kind(%d)", int(k))
	}
}

// Table возвращает имя таблицы для вида сущности.
func (k Kind) Table() string {
	switch k {
	case KindUser:
		return "users"
	case KindTeam:
		return "teams"
	case KindProject:
		return "projects"
	case KindList:
		return "lists"
	case KindTask:
		return "tasks"
	case KindComment:
		return "comments"
	default:
		panic(fmt.Sprintf("unknown entity kind %d", int(k)))
	}
}

// Archivable - пользователи и команды не удаляются, а архивируются.
func (k Kind) Archivable() bool {
	return k == KindUser || k == KindTeam
}

// Positioned - списки и задачи упорядочены внутри родителя.
func (k Kind) Positioned() bool {
	return k == KindList || k == KindTask
}

func ParseKind(s string) (Kind, error) {
	for _, k := range AllKinds {
		if k.String() == s {
			return k, nil
		}
	}
	return 0, NewValidationError("unknown entity kind %q", s)
}
