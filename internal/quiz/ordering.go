package quiz

import (
	"fmt"

	"lesson-author-service/internal/domain"
)

// Direction selects a neighbor for MoveItem.
type Direction string

const (
	MoveUp   Direction = "up"
	MoveDown Direction = "down"
)

// AddItem appends a new item to a sort or click_order question with its
// order set to its position.
func AddItem(q *domain.Question) (domain.OrderItem, error) {
	if err := requireKind(q, domain.KindSort, domain.KindClickOrder); err != nil {
		return domain.OrderItem{}, err
	}
	item := domain.OrderItem{
		ID:      domain.NewID(),
		Content: fmt.Sprintf("Item %d", len(q.Items)+1),
		Order:   len(q.Items),
	}
	q.Items = append(q.Items, item)
	return item, nil
}

// UpdateItemContent replaces the content of the item with the given id.
func UpdateItemContent(q *domain.Question, itemID, content string) error {
	if err := requireKind(q, domain.KindSort, domain.KindClickOrder); err != nil {
		return err
	}
	for i := range q.Items {
		if q.Items[i].ID == itemID {
			q.Items[i].Content = content
			return nil
		}
	}
	return domain.ErrItemNotFound
}

// RemoveItem deletes the item with the given id and renumbers the rest
// so order values stay equal to positions.
func RemoveItem(q *domain.Question, itemID string) error {
	if err := requireKind(q, domain.KindSort, domain.KindClickOrder); err != nil {
		return err
	}
	for i := range q.Items {
		if q.Items[i].ID == itemID {
			q.Items = append(q.Items[:i], q.Items[i+1:]...)
			renumber(q.Items)
			return nil
		}
	}
	return domain.ErrItemNotFound
}

// MoveItem swaps the item at index with its neighbor in the given
// direction when that neighbor exists. Every item's order is rewritten
// to its positional index afterwards, whether or not a swap happened.
func MoveItem(q *domain.Question, index int, dir Direction) error {
	if err := requireKind(q, domain.KindSort, domain.KindClickOrder); err != nil {
		return err
	}
	if index < 0 || index >= len(q.Items) {
		return domain.ErrItemNotFound
	}
	switch dir {
	case MoveUp:
		if index > 0 {
			q.Items[index], q.Items[index-1] = q.Items[index-1], q.Items[index]
		}
	case MoveDown:
		if index < len(q.Items)-1 {
			q.Items[index], q.Items[index+1] = q.Items[index+1], q.Items[index]
		}
	default:
		return fmt.Errorf("unknown move direction %q", dir)
	}
	renumber(q.Items)
	return nil
}

// ToggleDistractor flips the distractor flag on one item by id.
func ToggleDistractor(q *domain.Question, itemID string) error {
	if err := requireKind(q, domain.KindSort, domain.KindClickOrder); err != nil {
		return err
	}
	for i := range q.Items {
		if q.Items[i].ID == itemID {
			q.Items[i].IsDistractor = !q.Items[i].IsDistractor
			return nil
		}
	}
	return domain.ErrItemNotFound
}

func renumber(items []domain.OrderItem) {
	for i := range items {
		items[i].Order = i
	}
}
