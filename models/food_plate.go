package models

// FoodPlate is one menu item as the foods API stores it.
type FoodPlate struct {
	ID          int    `json:"id"`
	Name        string `json:"name"`
	Image       string `json:"image"`
	Price       string `json:"price"`
	Description string `json:"description"`
	Available   bool   `json:"available"`
}

// FoodPlateDraft holds the editable fields submitted by the add and edit modals.
type FoodPlateDraft struct {
	Name        string `json:"name" form:"name"`
	Description string `json:"description" form:"description"`
	Price       string `json:"price" form:"price"`
	Image       string `json:"image" form:"image"`
}

// WithDraft returns a copy of f with the editable fields taken from d.
func (f FoodPlate) WithDraft(d FoodPlateDraft) FoodPlate {
	f.Name = d.Name
	f.Description = d.Description
	f.Price = d.Price
	f.Image = d.Image
	return f
}
