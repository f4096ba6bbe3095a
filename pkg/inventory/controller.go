package inventory

import (
	"context"
	"errors"
	"strconv"
	"strings"

	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
)

// ConfirmFunc asks the user to confirm an action. Deletes only proceed when
// it returns true.
type ConfirmFunc func(prompt string) bool

// Controller owns a State and drives it through the API client. It is meant
// for single-goroutine use: one user session, one controller. Requests are
// independent exchanges and the most recent completed load wins.
type Controller struct {
	client  *Client
	state   State
	confirm ConfirmFunc
}

// NewController constructs a Controller. confirm must not be nil.
func NewController(client *Client, confirm ConfirmFunc) *Controller {
	return &Controller{
		client:  client,
		state:   NewState(),
		confirm: confirm,
	}
}

// State returns the current state.
func (c *Controller) State() State {
	return c.state
}

// Dispatch applies a pure event to the state. Used for filter and form input
// changes; operations with side effects go through Load, Submit, and Delete.
func (c *Controller) Dispatch(e Event) {
	c.state = Reduce(c.state, e)
}

// Load fetches the full product list and re-derives categories. On transport
// failure the prior state is kept and the error is logged and returned.
func (c *Controller) Load(ctx context.Context) error {
	products, err := c.client.ListProducts(ctx)
	if err != nil {
		log.Error().Err(err).Msg("failed to fetch products")
		return err
	}
	c.state = Reduce(c.state, ProductsLoaded{Products: products})
	return nil
}

// Edit populates the form from a displayed record and marks it as the edit
// target.
func (c *Controller) Edit(p Product) {
	c.state = Reduce(c.state, EditRequested{Product: p})
}

// Cancel clears the edit target and resets the form.
func (c *Controller) Cancel() {
	c.state = Reduce(c.state, EditCancelled{})
}

// Submit sends the form: a create when no edit target is set, otherwise an
// update against the target id. On success the form resets and the list is
// re-fetched so the display reflects store truth. Validation failures attach
// to the form and leave it editable.
func (c *Controller) Submit(ctx context.Context) error {
	fields, fieldErrs := c.fieldsFromForm()
	if fieldErrs != nil {
		c.state = Reduce(c.state, SubmitFailed{Errors: fieldErrs})
		return &FieldErrors{Errors: fieldErrs}
	}

	var err error
	if c.state.EditingID != nil {
		_, err = c.client.UpdateProduct(ctx, *c.state.EditingID, fields)
	} else {
		_, err = c.client.CreateProduct(ctx, fields)
	}

	if err != nil {
		var serverErrs *FieldErrors
		if errors.As(err, &serverErrs) {
			c.state = Reduce(c.state, SubmitFailed{Errors: serverErrs.Errors})
			return err
		}
		log.Error().Err(err).Msg("failed to save product")
		return err
	}

	c.state = Reduce(c.state, SubmitSucceeded{})
	return c.Load(ctx)
}

// Delete asks for confirmation, then soft-deletes the record and re-fetches
// the list. A NotFound answer means the record was already stale, so the list
// is re-fetched anyway.
func (c *Controller) Delete(ctx context.Context, id int64) error {
	if !c.confirm("Are you sure you want to delete this product?") {
		return nil
	}

	if err := c.client.DeleteProduct(ctx, id); err != nil {
		if errors.Is(err, ErrNotFound) {
			return c.Load(ctx)
		}
		log.Error().Err(err).Int64("id", id).Msg("failed to delete product")
		return err
	}
	return c.Load(ctx)
}

// fieldsFromForm coerces the raw form strings into typed fields. Coercion
// failures are reported the same way as server validation errors.
func (c *Controller) fieldsFromForm() (ProductFields, map[string][]string) {
	form := c.state.Form
	errs := map[string][]string{}

	price, err := decimal.NewFromString(strings.TrimSpace(form.Price))
	if form.Price == "" || err != nil {
		errs["price"] = []string{"The price field must be a number."}
	}

	quantity, err := strconv.Atoi(strings.TrimSpace(form.Quantity))
	if form.Quantity == "" || err != nil {
		errs["quantity"] = []string{"The quantity field must be an integer."}
	}

	if len(errs) > 0 {
		return ProductFields{}, errs
	}

	fields := ProductFields{
		Name:     form.Name,
		Price:    price.Round(2),
		Quantity: quantity,
	}
	if desc := strings.TrimSpace(form.Description); desc != "" {
		fields.Description = &desc
	}
	if cat := strings.TrimSpace(form.Category); cat != "" {
		fields.Category = &cat
	}
	return fields, nil
}
