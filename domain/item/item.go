package item

type Item struct {
	Id          int32   `json:"id"`
	Name        string  `json:"name"`
	Description string  `json:"description"`
	Price       float64 `json:"price"`
}

// Patch carries a partial update. A nil field was not supplied and stays unchanged.
type Patch struct {
	Name        *string
	Price       *float64
	Description *string
}

func (i *Item) Apply(patch Patch) {
	if patch.Name != nil {
		i.Name = *patch.Name
	}
	if patch.Price != nil {
		i.Price = *patch.Price
	}
	if patch.Description != nil {
		i.Description = *patch.Description
	}
}
