package gconf

import (
	"reflect"

	"github.com/iov-one/custody"
	"github.com/iov-one/custody/errors"
	"github.com/iov-one/custody/x"
)

// OwnedConfig is a Configuration that only its owner may change.
type OwnedConfig interface {
	Configuration
	GetOwner() custody.Address
}

// Clearer is implemented by update messages that can reset fields to
// their zero value. Cleared fields are reset before the patch is applied.
type Clearer interface {
	ClearFields() []string
}

// UpdateConfigurationHandler applies a configuration patch. The message
// must be a struct pointer with a Patch field of the configuration type.
// Zero value fields of the patch are ignored, use Clearer to reset a field.
// Only the merged configuration is validated.
type UpdateConfigurationHandler struct {
	pkg  string
	typ  reflect.Type
	auth x.Authenticator
}

var _ custody.Handler = UpdateConfigurationHandler{}

// NewUpdateConfigurationHandler returns a handler patching the
// configuration of pkg. config is only used as a type template. The
// configuration must already be stored, usually by InitConfig.
func NewUpdateConfigurationHandler(pkg string, config OwnedConfig, auth x.Authenticator) UpdateConfigurationHandler {
	return UpdateConfigurationHandler{
		pkg:  pkg,
		typ:  reflect.TypeOf(config).Elem(),
		auth: auth,
	}
}

func (h UpdateConfigurationHandler) Check(ctx custody.Context, db custody.KVStore, tx custody.Tx) (*custody.CheckResult, error) {
	if err := h.update(ctx, db, tx); err != nil {
		return nil, err
	}
	return &custody.CheckResult{}, nil
}

func (h UpdateConfigurationHandler) Deliver(ctx custody.Context, db custody.KVStore, tx custody.Tx) (*custody.DeliverResult, error) {
	if err := h.update(ctx, db, tx); err != nil {
		return nil, err
	}
	return &custody.DeliverResult{}, nil
}

func (h UpdateConfigurationHandler) update(ctx custody.Context, db custody.KVStore, tx custody.Tx) error {
	current := reflect.New(h.typ)
	conf := current.Interface().(OwnedConfig)
	if err := Load(db, h.pkg, conf); err != nil {
		return err
	}
	if owner := conf.GetOwner(); owner == nil || !h.auth.HasAddress(ctx, owner) {
		return errors.Wrapf(errors.ErrUnauthorized, "%s configuration owner signature required", h.pkg)
	}

	msg, err := tx.GetMsg()
	if err != nil {
		return err
	}
	if err := msg.Validate(); err != nil {
		return err
	}
	p, err := patchValue(msg, current.Type())
	if err != nil {
		return err
	}
	dst := current.Elem()
	if c, ok := msg.(Clearer); ok {
		for _, name := range c.ClearFields() {
			f := dst.FieldByName(name)
			if !f.IsValid() || !f.CanSet() {
				return errors.Wrapf(errors.ErrInput, "cannot clear %q", name)
			}
			f.Set(reflect.Zero(f.Type()))
		}
	}
	for i := 0; i < dst.NumField(); i++ {
		if f := p.Field(i); !isZero(f) {
			dst.Field(i).Set(f)
		}
	}
	return Save(db, h.pkg, conf)
}

// patchValue returns the struct pointed to by msg.Patch.
func patchValue(msg custody.Msg, want reflect.Type) (reflect.Value, error) {
	v := reflect.ValueOf(msg)
	if v.Kind() != reflect.Ptr || v.Elem().Kind() != reflect.Struct {
		return reflect.Value{}, errors.Wrapf(errors.ErrInput, "unsupported message %T", msg)
	}
	p := v.Elem().FieldByName("Patch")
	switch {
	case !p.IsValid():
		return reflect.Value{}, errors.Wrapf(errors.ErrInput, "%T has no Patch field", msg)
	case p.Type() != want:
		return reflect.Value{}, errors.Wrapf(errors.ErrMsg, "patch %s does not match %s", p.Type(), want)
	case p.IsNil():
		return reflect.Value{}, errors.Wrap(errors.ErrState, "patch is required")
	}
	return p.Elem(), nil
}

func isZero(v reflect.Value) bool {
	return reflect.DeepEqual(v.Interface(), reflect.Zero(v.Type()).Interface())
}
