// Package dashboard keeps the menu view state in step with the foods API.
//
// Every mutating operation issues exactly one request and, once the response
// arrives, reconciles the local list against whatever state is current at that
// moment. The lock is never held across a request, so two mutations on the same
// plate interleave and the response that lands last wins.
package dashboard

import (
	"context"
	"errors"
	"sync"

	"github.com/yeremiapane/foodplate-dashboard/models"
	"github.com/yeremiapane/foodplate-dashboard/utils"
)

// FoodsClient is the subset of the foods API the dashboard calls.
type FoodsClient interface {
	List(ctx context.Context) ([]models.FoodPlate, error)
	Create(ctx context.Context, draft models.FoodPlateDraft, available bool) (models.FoodPlate, error)
	Update(ctx context.Context, food models.FoodPlate) (models.FoodPlate, error)
	Delete(ctx context.Context, id int) error
}

// Listener is told about the list after every successful reconcile.
// FoodsChanged runs after the dashboard is unlocked, on the goroutine that
// made the change.
type Listener interface {
	FoodsChanged(foods []models.FoodPlate)
}

// State is a copy of the view state, safe to render.
type State struct {
	Foods         []models.FoodPlate `json:"foods"`
	EditingFood   models.FoodPlate   `json:"editing_food"`
	AddModalOpen  bool               `json:"add_modal_open"`
	EditModalOpen bool               `json:"edit_modal_open"`
}

type Dashboard struct {
	client FoodsClient

	// mountMu serializes first visits so they share one fetch.
	mountMu sync.Mutex
	mounted bool

	mu            sync.Mutex
	listener      Listener
	foods         []models.FoodPlate
	editingFood   models.FoodPlate
	addModalOpen  bool
	editModalOpen bool
}

func New(client FoodsClient) *Dashboard {
	return &Dashboard{client: client}
}

// SetListener registers l for change notifications. Pass nil to stop them.
func (d *Dashboard) SetListener(l Listener) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.listener = l
}

// Mount loads the list until one load has succeeded; after that it does
// nothing. Concurrent callers wait for the load in progress.
func (d *Dashboard) Mount(ctx context.Context) {
	d.mountMu.Lock()
	defer d.mountMu.Unlock()
	if d.mounted {
		return
	}
	d.mounted = d.Load(ctx) == nil
}

// Load replaces the list with the server's. A failed fetch is logged and
// leaves the list as it was.
func (d *Dashboard) Load(ctx context.Context) error {
	foods, err := d.client.List(ctx)
	if err != nil {
		utils.ErrorLogger.WithError(err).Warn("loading foods failed")
		return err
	}

	d.mu.Lock()
	d.foods = append([]models.FoodPlate(nil), foods...)
	d.unlockAndNotify()
	return nil
}

// Add creates an available plate and appends the server's record.
func (d *Dashboard) Add(ctx context.Context, draft models.FoodPlateDraft) error {
	created, err := d.client.Create(ctx, draft, true)
	if err != nil {
		// Only the message survives; the cause chain is not kept.
		return errors.New(err.Error())
	}

	d.mu.Lock()
	d.foods = append(d.foods, created)
	d.unlockAndNotify()
	return nil
}

// Update saves draft over the plate being edited and merges the returned
// fields into the entry with the returned id.
func (d *Dashboard) Update(ctx context.Context, draft models.FoodPlateDraft) error {
	d.mu.Lock()
	editing := d.editingFood
	d.mu.Unlock()

	updated, err := d.client.Update(ctx, editing.WithDraft(draft))
	if err != nil {
		return err
	}

	d.mu.Lock()
	for i := range d.foods {
		if d.foods[i].ID == updated.ID {
			d.foods[i] = d.foods[i].WithDraft(models.FoodPlateDraft{
				Name:        updated.Name,
				Description: updated.Description,
				Price:       updated.Price,
				Image:       updated.Image,
			})
		}
	}
	d.unlockAndNotify()
	return nil
}

// ToggleAvailability flips food's flag on the server, then locally. The new
// value is computed from food as passed in, not from the current list.
func (d *Dashboard) ToggleAvailability(ctx context.Context, food models.FoodPlate) error {
	available := !food.Available
	food.Available = available

	if _, err := d.client.Update(ctx, food); err != nil {
		return err
	}

	d.mu.Lock()
	for i := range d.foods {
		if d.foods[i].ID == food.ID {
			d.foods[i].Available = available
		}
	}
	d.unlockAndNotify()
	return nil
}

// Delete removes the plate on the server, then every local entry with that id.
func (d *Dashboard) Delete(ctx context.Context, id int) error {
	if err := d.client.Delete(ctx, id); err != nil {
		return err
	}

	d.mu.Lock()
	kept := make([]models.FoodPlate, 0, len(d.foods))
	for _, f := range d.foods {
		if f.ID != id {
			kept = append(kept, f)
		}
	}
	d.foods = kept
	d.unlockAndNotify()
	return nil
}

func (d *Dashboard) OpenAddModal() {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.addModalOpen = true
}

func (d *Dashboard) CloseAddModal() {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.addModalOpen = false
}

// OpenEditModal shows the edit modal and snapshots food as the plate being edited.
func (d *Dashboard) OpenEditModal(food models.FoodPlate) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.editModalOpen = true
	d.editingFood = food
}

func (d *Dashboard) CloseEditModal() {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.editModalOpen = false
}

// Find returns the local entry with id.
func (d *Dashboard) Find(id int) (models.FoodPlate, bool) {
	d.mu.Lock()
	defer d.mu.Unlock()
	for _, f := range d.foods {
		if f.ID == id {
			return f, true
		}
	}
	return models.FoodPlate{}, false
}

func (d *Dashboard) Snapshot() State {
	d.mu.Lock()
	defer d.mu.Unlock()
	return State{
		Foods:         d.foodsCopyLocked(),
		EditingFood:   d.editingFood,
		AddModalOpen:  d.addModalOpen,
		EditModalOpen: d.editModalOpen,
	}
}

func (d *Dashboard) foodsCopyLocked() []models.FoodPlate {
	return append([]models.FoodPlate{}, d.foods...)
}

// unlockAndNotify releases d.mu, then hands the list as it stood to the listener.
func (d *Dashboard) unlockAndNotify() {
	listener := d.listener
	foods := d.foodsCopyLocked()
	d.mu.Unlock()

	if listener != nil {
		listener.FoodsChanged(foods)
	}
}
