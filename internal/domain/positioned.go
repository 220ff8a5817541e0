package domain

// Positioned - сущность с позицией внутри родительской области (проект для списков, список для задач).
type Positioned[T any] interface {
	*T
	ParentID() int64
	SetParentID(id int64)
	GetPosition() int
	SetPosition(position int)
}
