package domain

import "time"

// Change - одно изменившееся поле: колонка, новое значение и функция применения к строке.
type Change[T any] struct {
	Column string
	Value  any
	apply  func(*T)
}

// Changeset - набор реально изменившихся полей в порядке объявления.
type Changeset[T any] []Change[T]

func (c Changeset[T]) Empty() bool {
	return len(c) == 0
}

func (c Changeset[T]) Columns() []string {
	cols := make([]string, 0, len(c))
	for _, ch := range c {
		cols = append(cols, ch.Column)
	}
	return cols
}

func (c Changeset[T]) Values() []any {
	vals := make([]any, 0, len(c))
	for _, ch := range c {
		vals = append(vals, ch.Value)
	}
	return vals
}

// ApplyTo накладывает изменения на существующую строку.
func (c Changeset[T]) ApplyTo(entity *T) {
	for _, ch := range c {
		ch.apply(entity)
	}
}

// Patch - входящие данные для частичного обновления сущности T.
type Patch[T any] interface {
	Diff(existing *T) Changeset[T]
}

func diffField[T any, V comparable](cs Changeset[T], column string, incoming *V, current V, set func(*T, V)) Changeset[T] {
	if incoming == nil || *incoming == current {
		return cs
	}
	v := *incoming
	return append(cs, Change[T]{
		Column: column,
		Value:  v,
		apply:  func(e *T) { set(e, v) },
	})
}

// StoredTime приводит время к точности timestamptz (микросекунды),
// чтобы значение в ответе совпадало с тем, что потом прочитает getById.
func StoredTime(t time.Time) time.Time {
	return t.Truncate(time.Microsecond)
}

func StoredTimePtr(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	v := StoredTime(*t)
	return &v
}

// diffTime сравнивает необязательную дату; clear=true означает сброс в NULL.
func diffTime[T any](cs Changeset[T], column string, incoming *time.Time, clear bool, current *time.Time, set func(*T, *time.Time)) Changeset[T] {
	if clear {
		if current == nil {
			return cs
		}
		return append(cs, Change[T]{
			Column: column,
			Value:  nil,
			apply:  func(e *T) { set(e, nil) },
		})
	}
	if incoming == nil {
		return cs
	}
	v := StoredTime(*incoming)
	if current != nil && current.Equal(v) {
		return cs
	}
	return append(cs, Change[T]{
		Column: column,
		Value:  v,
		apply:  func(e *T) { set(e, &v) },
	})
}
