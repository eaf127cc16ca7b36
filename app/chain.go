package app

import (
	"reflect"

	"github.com/iov-one/custody"
)

// Decorators is an ordered list of decorators waiting for the handler they
// wrap.
type Decorators []custody.Decorator

// ChainDecorators starts a stack. The first decorator runs first:
//
//	app.ChainDecorators(
//		utils.NewRecovery(),
//		sigs.NewDecorator(),
//		utils.NewSavepoint().OnDeliver(),
//	).WithHandler(router)
//
// Nil decorators are skipped, so optional ones can be passed
// unconditionally.
func ChainDecorators(ds ...custody.Decorator) Decorators {
	return Decorators(nil).Chain(ds...)
}

// Chain returns a new stack with ds appended.
func (d Decorators) Chain(ds ...custody.Decorator) Decorators {
	out := make(Decorators, 0, len(d)+len(ds))
	out = append(out, d...)
	for _, dec := range ds {
		if !isNilDecorator(dec) {
			out = append(out, dec)
		}
	}
	return out
}

func isNilDecorator(d custody.Decorator) bool {
	if d == nil {
		return true
	}
	v := reflect.ValueOf(d)
	return v.Kind() == reflect.Ptr && v.IsNil()
}

// WithHandler closes the stack with h.
func (d Decorators) WithHandler(h custody.Handler) custody.Handler {
	for i := len(d) - 1; i >= 0; i-- {
		h = link{dec: d[i], next: h}
	}
	return h
}

// link runs a decorator with the rest of the stack as next.
type link struct {
	dec  custody.Decorator
	next custody.Handler
}

func (l link) Check(ctx custody.Context, db custody.KVStore, tx custody.Tx) (*custody.CheckResult, error) {
	return l.dec.Check(ctx, db, tx, l.next)
}

func (l link) Deliver(ctx custody.Context, db custody.KVStore, tx custody.Tx) (*custody.DeliverResult, error) {
	return l.dec.Deliver(ctx, db, tx, l.next)
}
