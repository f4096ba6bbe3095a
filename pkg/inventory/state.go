package inventory

import (
	"strconv"
	"strings"
)

// FormData holds the raw field values of the product form. Values are kept as
// strings the way form inputs produce them; coercion happens on submit.
type FormData struct {
	Name        string
	Description string
	Price       string
	Quantity    string
	Category    string
}

// State is the full client state: the last fetched list, the derived filtered
// view and category set, the current filters, and the form.
// EditingID is nil when the form represents a new record.
type State struct {
	Products       []Product
	Filtered       []Product
	Categories     []string
	SearchTerm     string
	CategoryFilter string
	EditingID      *int64
	Form           FormData
	Errors         map[string][]string
}

// NewState returns the initial idle state.
func NewState() State {
	return State{Errors: map[string][]string{}}
}

// Event is a state transition input for Reduce.
type Event interface {
	isInventoryEvent()
}

// ProductsLoaded replaces the product list with a fresh fetch result.
type ProductsLoaded struct{ Products []Product }

// SearchChanged updates the free-text search term.
type SearchChanged struct{ Term string }

// CategoryChanged updates the category filter selection.
type CategoryChanged struct{ Category string }

// FieldChanged updates a single form field. Field uses wire names
// (product_name, description, price, quantity, category).
type FieldChanged struct{ Field, Value string }

// EditRequested populates the form from a displayed record and marks it as
// the edit target.
type EditRequested struct{ Product Product }

// EditCancelled clears the edit target and resets the form.
type EditCancelled struct{}

// SubmitSucceeded resets the form after a successful create or update.
type SubmitSucceeded struct{}

// SubmitFailed attaches field validation errors to the current form state.
type SubmitFailed struct{ Errors map[string][]string }

func (ProductsLoaded) isInventoryEvent()  {}
func (SearchChanged) isInventoryEvent()   {}
func (CategoryChanged) isInventoryEvent() {}
func (FieldChanged) isInventoryEvent()    {}
func (EditRequested) isInventoryEvent()   {}
func (EditCancelled) isInventoryEvent()   {}
func (SubmitSucceeded) isInventoryEvent() {}
func (SubmitFailed) isInventoryEvent()    {}

// Reduce maps (state, event) to the next state. It is pure: no I/O, no
// mutation of its inputs. The filtered view and category set are recomputed
// whenever the list or a filter changes.
func Reduce(s State, e Event) State {
	switch ev := e.(type) {
	case ProductsLoaded:
		s.Products = ev.Products
		s.Categories = deriveCategories(ev.Products)
		s.Filtered = filterProducts(s.Products, s.SearchTerm, s.CategoryFilter)

	case SearchChanged:
		s.SearchTerm = ev.Term
		s.Filtered = filterProducts(s.Products, s.SearchTerm, s.CategoryFilter)

	case CategoryChanged:
		s.CategoryFilter = ev.Category
		s.Filtered = filterProducts(s.Products, s.SearchTerm, s.CategoryFilter)

	case FieldChanged:
		switch ev.Field {
		case "product_name":
			s.Form.Name = ev.Value
		case "description":
			s.Form.Description = ev.Value
		case "price":
			s.Form.Price = ev.Value
		case "quantity":
			s.Form.Quantity = ev.Value
		case "category":
			s.Form.Category = ev.Value
		}

	case EditRequested:
		id := ev.Product.ID
		s.EditingID = &id
		s.Form = formFromProduct(ev.Product)
		s.Errors = map[string][]string{}

	case EditCancelled:
		s.EditingID = nil
		s.Form = FormData{}
		s.Errors = map[string][]string{}

	case SubmitSucceeded:
		s.EditingID = nil
		s.Form = FormData{}
		s.Errors = map[string][]string{}

	case SubmitFailed:
		s.Errors = ev.Errors
	}

	return s
}

// filterProducts applies both filters: a record is included when the search
// term is empty or its name contains the term (case-insensitive), and the
// category filter is empty or its category matches exactly. Order is
// preserved from the input list.
func filterProducts(products []Product, term, category string) []Product {
	filtered := make([]Product, 0, len(products))
	term = strings.ToLower(term)
	for _, p := range products {
		if term != "" && !strings.Contains(strings.ToLower(p.Name), term) {
			continue
		}
		if category != "" && (p.Category == nil || *p.Category != category) {
			continue
		}
		filtered = append(filtered, p)
	}
	return filtered
}

// deriveCategories returns the distinct non-empty categories in first-seen
// order.
func deriveCategories(products []Product) []string {
	seen := map[string]bool{}
	categories := []string{}
	for _, p := range products {
		if p.Category == nil || *p.Category == "" {
			continue
		}
		if !seen[*p.Category] {
			seen[*p.Category] = true
			categories = append(categories, *p.Category)
		}
	}
	return categories
}

// formFromProduct fills the form with a record's current field values.
func formFromProduct(p Product) FormData {
	form := FormData{
		Name:     p.Name,
		Price:    p.Price.StringFixed(2),
		Quantity: strconv.Itoa(p.Quantity),
	}
	if p.Description != nil {
		form.Description = *p.Description
	}
	if p.Category != nil {
		form.Category = *p.Category
	}
	return form
}
