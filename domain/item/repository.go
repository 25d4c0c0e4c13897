package item

import "errors"

var ErrNotFound = errors.New("item not found")

type Repository interface {
	List() []Item
	GetItem(itemId int32) (*Item, error)
	Create(name string, price float64, description string) int32
	Update(itemId int32, patch Patch) (*Item, error)
	Delete(itemId int32) error
}
